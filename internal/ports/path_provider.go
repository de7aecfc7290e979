package ports

import (
	"context"
	"geoport-delivery/internal/domain"
)

// One drivable path returned by a path provider.
type PathResult struct {
	Geometry        []domain.Coordinate `json:"geometry"`
	DistanceMeters  float64             `json:"distance_meters"`
	DurationSeconds float64             `json:"duration_seconds"`
}

// Contract for retrieving road paths through an ordered list of waypoints.
type PathProvider interface {
	// Return one or more paths from the first waypoint to the last, passing
	// through any intermediate waypoints. When alternatives is true the
	// provider may return more than one path.
	GetRoutes(ctx context.Context, waypoints []domain.Coordinate, alternatives bool) ([]PathResult, error)
}
