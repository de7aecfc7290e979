package services

import "geoport-delivery/internal/domain"

type RiskBand int

const (
	RiskLow RiskBand = iota
	RiskMedium
	RiskHigh
)

func (b RiskBand) String() string {
	switch b {
	case RiskHigh:
		return "high"
	case RiskLow:
		return "low"
	default:
		return "medium"
	}
}

// ClassifyRisk maps a route risk value to its band: HIGH above 0.6,
// LOW below 0.3, MEDIUM otherwise.
func ClassifyRisk(risk float64) RiskBand {
	switch {
	case risk > 0.6:
		return RiskHigh
	case risk < 0.3:
		return RiskLow
	default:
		return RiskMedium
	}
}

// EventGenerator draws route events from a fixed catalog.
type EventGenerator struct {
	catalog []domain.RouteEvent
	rng     Rand
}

func NewEventGenerator(catalog []domain.RouteEvent, rng Rand) *EventGenerator {
	return &EventGenerator{catalog: catalog, rng: rng}
}

// Eligible returns the catalog entries allowed for a risk band.
//
// High-risk routes never carry favorable events; low-risk routes only carry
// favorable events or tolls.
func (g *EventGenerator) Eligible(band RiskBand) []domain.RouteEvent {
	out := make([]domain.RouteEvent, 0, len(g.catalog))
	for _, e := range g.catalog {
		switch band {
		case RiskHigh:
			if e.Favorable() {
				continue
			}
		case RiskLow:
			if !e.Favorable() && e.Type != domain.EventToll {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// Generate picks one eligible event uniformly, then keeps it with the
// event's own probability. Returns nil when no event occurs.
func (g *EventGenerator) Generate(risk float64) *domain.RouteEvent {
	eligible := g.Eligible(ClassifyRisk(risk))
	if len(eligible) == 0 {
		return nil
	}

	picked := eligible[g.rng.IntN(len(eligible))]
	if g.rng.Float64() < picked.Probability {
		return &picked
	}
	return nil
}
