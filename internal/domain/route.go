package domain

// Fixed slot layout for route candidates. Slot risk does not depend on
// which path the provider returned first.
const CandidateSlots = 3

var (
	SlotNames        = [CandidateSlots]string{"Kestirme", "Standart Rota", "Güvenli Çevre Yolu"}
	SlotRisks        = [CandidateSlots]float64{0.8, 0.4, 0.1}
	SynthesizedNames = [CandidateSlots]string{"Kestirme", "Standart Rota", "Alternatif"}
)

// RouteCandidate is one possible route between the shop and the target.
//
// DurationMin is nil when the duration is unknown (synthesized paths);
// consumers display a placeholder instead of a number.
type RouteCandidate struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Geometry    []Coordinate `json:"geometry"`
	DistanceKm  float64      `json:"distance_km"`
	DurationMin *float64     `json:"duration_min"`
	Risk        float64      `json:"risk"`
	Event       *RouteEvent  `json:"event"`
	Synthesized bool         `json:"synthesized"`
}

func (r RouteCandidate) DurationKnown() bool { return r.DurationMin != nil }

// RiskLabel classifies a risk value for display.
func RiskLabel(risk float64) string {
	switch {
	case risk > 0.6:
		return "high"
	case risk > 0.3:
		return "medium"
	default:
		return "low"
	}
}
