package geo

import (
	"geoport-delivery/internal/domain"
	"math"
	"testing"
)

func approx(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestHaversineKm(t *testing.T) {
	// One degree of latitude is ~111.2 km.
	a := domain.Coordinate{Lat: 0, Lon: 0}
	b := domain.Coordinate{Lat: 1, Lon: 0}

	if got := HaversineKm(a, b); !approx(got, 111.2, 0.5) {
		t.Fatalf("HaversineKm = %v, want ~111.2", got)
	}
	if got := HaversineKm(a, a); got != 0 {
		t.Fatalf("HaversineKm same point = %v, want 0", got)
	}
}

func TestPathLengthKm(t *testing.T) {
	path := []domain.Coordinate{{Lat: 0, Lon: 0}, {Lat: 0.5, Lon: 0}, {Lat: 1, Lon: 0}}

	if got := PathLengthKm(path); !approx(got, HaversineKm(path[0], path[2]), 1e-6) {
		t.Fatalf("PathLengthKm = %v, want %v", got, HaversineKm(path[0], path[2]))
	}
	if got := PathLengthKm(path[:1]); got != 0 {
		t.Fatalf("single point length = %v, want 0", got)
	}
}

func TestCurvePassesThroughVia(t *testing.T) {
	from := domain.Coordinate{Lat: 39.96, Lon: 32.78}
	to := domain.Coordinate{Lat: 39.97, Lon: 32.79}
	via := domain.Coordinate{Lat: 39.967, Lon: 32.787}

	curve := Curve(from, via, to, 32)
	if len(curve) != 33 {
		t.Fatalf("len(curve) = %d, want 33", len(curve))
	}
	if curve[0] != from || curve[len(curve)-1] != to {
		t.Fatalf("curve endpoints = %v,%v want %v,%v", curve[0], curve[len(curve)-1], from, to)
	}

	mid := curve[16]
	if !approx(mid.Lat, via.Lat, 1e-9) || !approx(mid.Lon, via.Lon, 1e-9) {
		t.Fatalf("curve midpoint = %v, want %v", mid, via)
	}

	if PathLengthKm(curve) <= HaversineKm(from, to) {
		t.Fatalf("curve should be longer than the straight line")
	}
}

func TestInterpolate(t *testing.T) {
	path := []domain.Coordinate{{Lat: 0, Lon: 0}, {Lat: 2, Lon: 2}, {Lat: 4, Lon: 0}}

	cases := []struct {
		progress float64
		want     domain.Coordinate
	}{
		{0, domain.Coordinate{Lat: 0, Lon: 0}},
		{0.25, domain.Coordinate{Lat: 1, Lon: 1}},
		{0.5, domain.Coordinate{Lat: 2, Lon: 2}},
		{0.75, domain.Coordinate{Lat: 3, Lon: 1}},
		{1, domain.Coordinate{Lat: 4, Lon: 0}},
		{1.5, domain.Coordinate{Lat: 4, Lon: 0}},
	}

	for _, tc := range cases {
		got := Interpolate(path, tc.progress)
		if !approx(got.Lat, tc.want.Lat, 1e-9) || !approx(got.Lon, tc.want.Lon, 1e-9) {
			t.Errorf("Interpolate(%v) = %v, want %v", tc.progress, got, tc.want)
		}
	}

	if got := Interpolate(nil, 0.5); got != (domain.Coordinate{}) {
		t.Errorf("Interpolate(nil) = %v, want zero", got)
	}
}

func TestRandomInBox(t *testing.T) {
	center := domain.Coordinate{Lat: 10, Lon: 20}

	lo := RandomInBox(center, 0.5, func() float64 { return 0 })
	if lo.Lat != 9.5 || lo.Lon != 19.5 {
		t.Fatalf("RandomInBox low corner = %v", lo)
	}

	mid := RandomInBox(center, 0.5, func() float64 { return 0.5 })
	if mid != center {
		t.Fatalf("RandomInBox centre = %v, want %v", mid, center)
	}
}

func TestNormal(t *testing.T) {
	from := domain.Coordinate{Lat: 0, Lon: 0}

	dLat, dLon := Normal(from, domain.Coordinate{Lat: 0, Lon: 3})
	if !approx(dLat, 1, 1e-12) || !approx(dLon, 0, 1e-12) {
		t.Fatalf("Normal east = (%v,%v), want (1,0)", dLat, dLon)
	}

	dLat, dLon = Normal(from, from)
	if !approx(math.Hypot(dLat, dLon), 1, 1e-12) {
		t.Fatalf("Normal degenerate is not unit: (%v,%v)", dLat, dLon)
	}
}
