package pathing

import (
	"context"
	"errors"
	"geoport-delivery/internal/domain"
	"geoport-delivery/internal/ports"
	"sync"
	"time"
)

var ErrMockUnavailable = errors.New("mock path provider unavailable")

// MockPathProvider answers from fixed scripts, one per request shape:
//   - Primary: two waypoints, alternatives requested
//   - Direct: two waypoints, no alternatives
//   - ViaNorth / ViaSouth: three waypoints, via north or south of the
//     straight line's middle latitude
//
// A nil script answers with ErrMockUnavailable. Delay holds every request
// until it elapses or the context ends.
type MockPathProvider struct {
	Primary  []ports.PathResult
	Direct   []ports.PathResult
	ViaNorth []ports.PathResult
	ViaSouth []ports.PathResult
	Delay    time.Duration

	mu    sync.Mutex
	calls int
}

func NewMockPathProvider(primary []ports.PathResult) *MockPathProvider {
	return &MockPathProvider{Primary: primary}
}

// MockPath builds a straight two-point result with the given distance and duration.
func MockPath(from, to domain.Coordinate, meters, seconds float64) ports.PathResult {
	return ports.PathResult{
		Geometry:        []domain.Coordinate{from, to},
		DistanceMeters:  meters,
		DurationSeconds: seconds,
	}
}

func (p *MockPathProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func (p *MockPathProvider) GetRoutes(
	ctx context.Context,
	waypoints []domain.Coordinate,
	alternatives bool,
) ([]ports.PathResult, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	if p.Delay > 0 {
		timer := time.NewTimer(p.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	var script []ports.PathResult
	switch {
	case len(waypoints) == 2 && alternatives:
		script = p.Primary
	case len(waypoints) == 2:
		script = p.Direct
	case len(waypoints) == 3:
		first, via, last := waypoints[0], waypoints[1], waypoints[2]
		if via.Lat >= (first.Lat+last.Lat)/2 {
			script = p.ViaNorth
		} else {
			script = p.ViaSouth
		}
	}

	if script == nil {
		return nil, ErrMockUnavailable
	}
	return script, nil
}
