package services

import (
	"context"
	"geoport-delivery/internal/domain"
	"geoport-delivery/internal/geo"
	"time"
)

// DeliverySimulator paces the delivery animation along a route.
type DeliverySimulator struct {
	// Period between frames.
	Tick time.Duration
	// Nominal route time is divided by this factor.
	Acceleration float64
	// Clamp of the accelerated animation length.
	MinDuration time.Duration
	MaxDuration time.Duration
	// Nominal route time when the provider gave no duration.
	UnknownNominal time.Duration

	now func() time.Time
}

func NewDeliverySimulator() *DeliverySimulator {
	return &DeliverySimulator{
		Tick:           30 * time.Millisecond,
		Acceleration:   8,
		MinDuration:    2 * time.Second,
		MaxDuration:    6 * time.Second,
		UnknownNominal: 5 * time.Second,
		now:            time.Now,
	}
}

// AnimationDuration returns clamp(nominal/Acceleration, Min, Max).
func (s *DeliverySimulator) AnimationDuration(durationMin *float64) time.Duration {
	nominal := s.UnknownNominal
	if durationMin != nil {
		nominal = time.Duration(*durationMin * float64(time.Minute))
	}

	total := time.Duration(float64(nominal) / s.Acceleration)
	if total < s.MinDuration {
		total = s.MinDuration
	}
	if total > s.MaxDuration {
		total = s.MaxDuration
	}
	return total
}

// Progress returns min(elapsed/total, 1).
func Progress(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	p := float64(elapsed) / float64(total)
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

// Phase describes how far along the delivery is.
func Phase(progress float64) string {
	switch {
	case progress < 0.3:
		return "departing"
	case progress < 0.6:
		return "en route"
	case progress < 0.9:
		return "approaching"
	default:
		return "delivering"
	}
}

// Frame computes the animation frame at elapsed time.
func Frame(geometry []domain.Coordinate, elapsed, total time.Duration) domain.DeliveryFrame {
	p := Progress(elapsed, total)
	return domain.DeliveryFrame{
		Progress: p,
		Position: geo.Interpolate(geometry, p),
		Phase:    Phase(p),
	}
}

// Run ticks until progress reaches 1, calling onFrame for every frame
// including the final one. It returns nil on completion and ctx.Err() when
// aborted; no frame is emitted after Run returns.
func (s *DeliverySimulator) Run(
	ctx context.Context,
	geometry []domain.Coordinate,
	durationMin *float64,
	onFrame func(domain.DeliveryFrame),
) error {
	total := s.AnimationDuration(durationMin)
	now := s.now
	if now == nil {
		now = time.Now
	}
	start := now()

	ticker := time.NewTicker(s.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		frame := Frame(geometry, now().Sub(start), total)
		onFrame(frame)

		if frame.Progress >= 1 {
			return nil
		}
	}
}
