// Package geo holds the small amount of geometry the delivery engine needs:
// path lengths, a curved fallback path and interpolation along a path.
package geo

import (
	"geoport-delivery/internal/domain"
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// Number of segments used to sample a synthesized curve.
const CurveSegments = 32

func toPoint(c domain.Coordinate) orb.Point { return orb.Point{c.Lon, c.Lat} }

func fromPoint(p orb.Point) domain.Coordinate { return domain.Coordinate{Lat: p.Lat(), Lon: p.Lon()} }

// HaversineKm returns the great-circle distance between two coordinates.
func HaversineKm(a, b domain.Coordinate) float64 {
	return orbgeo.DistanceHaversine(toPoint(a), toPoint(b)) / 1000
}

// PathLengthKm returns the summed great-circle length of a path.
func PathLengthKm(path []domain.Coordinate) float64 {
	if len(path) < 2 {
		return 0
	}

	ls := make(orb.LineString, 0, len(path))
	for _, c := range path {
		ls = append(ls, toPoint(c))
	}
	return orbgeo.LengthHaversine(ls) / 1000
}

// Midpoint returns the geodesic midpoint of two coordinates.
func Midpoint(a, b domain.Coordinate) domain.Coordinate {
	return fromPoint(orbgeo.Midpoint(toPoint(a), toPoint(b)))
}

// Curve samples a quadratic bezier from -> to that passes through via at t=0.5.
func Curve(from, via, to domain.Coordinate, segments int) []domain.Coordinate {
	if segments < 2 {
		segments = 2
	}

	// Control point chosen so the curve crosses via at its midpoint.
	ctrl := domain.Coordinate{
		Lat: 2*via.Lat - (from.Lat+to.Lat)/2,
		Lon: 2*via.Lon - (from.Lon+to.Lon)/2,
	}

	out := make([]domain.Coordinate, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		u := 1 - t
		out = append(out, domain.Coordinate{
			Lat: u*u*from.Lat + 2*u*t*ctrl.Lat + t*t*to.Lat,
			Lon: u*u*from.Lon + 2*u*t*ctrl.Lon + t*t*to.Lon,
		})
	}
	return out
}

// Normal returns the unit vector, in degree space, perpendicular to the
// segment from -> to. For coincident points it returns the north-east diagonal.
func Normal(from, to domain.Coordinate) (dLat, dLon float64) {
	vLat := to.Lat - from.Lat
	vLon := to.Lon - from.Lon

	n := math.Hypot(vLat, vLon)
	if n == 0 {
		return math.Sqrt2 / 2, math.Sqrt2 / 2
	}
	return vLon / n, -vLat / n
}

// Interpolate returns the position at progress (0..1) along path, linearly
// between the two points straddling progress*(len(path)-1).
func Interpolate(path []domain.Coordinate, progress float64) domain.Coordinate {
	switch len(path) {
	case 0:
		return domain.Coordinate{}
	case 1:
		return path[0]
	}

	if progress <= 0 {
		return path[0]
	}
	if progress >= 1 {
		return path[len(path)-1]
	}

	target := progress * float64(len(path)-1)
	idx := int(target)
	next := idx + 1
	if next > len(path)-1 {
		next = len(path) - 1
	}
	t := target - float64(idx)

	cur, nxt := path[idx], path[next]
	return domain.Coordinate{
		Lat: cur.Lat + (nxt.Lat-cur.Lat)*t,
		Lon: cur.Lon + (nxt.Lon-cur.Lon)*t,
	}
}

// RandomInBox samples a coordinate uniformly in center ± rangeDeg on both axes.
// rnd must return values in [0,1).
func RandomInBox(center domain.Coordinate, rangeDeg float64, rnd func() float64) domain.Coordinate {
	return domain.Coordinate{
		Lat: center.Lat - rangeDeg + rnd()*2*rangeDeg,
		Lon: center.Lon - rangeDeg + rnd()*2*rangeDeg,
	}
}
