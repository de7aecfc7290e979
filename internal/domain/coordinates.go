package domain

// Immutable geographic position (latitude, longitude). No altitude.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Return coordinates as [lon, lat] for GeoJSON / OSRM compatibility.
func (c Coordinate) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Build a Coordinate from a GeoJSON [lon, lat] pair.
func CoordinateFromList(pair []float64) (Coordinate, bool) {
	if len(pair) < 2 {
		return Coordinate{}, false
	}
	return Coordinate{Lon: pair[0], Lat: pair[1]}, true
}

// Offset shifts the coordinate by the given degrees on both axes.
func (c Coordinate) Offset(dLat, dLon float64) Coordinate {
	return Coordinate{Lat: c.Lat + dLat, Lon: c.Lon + dLon}
}
