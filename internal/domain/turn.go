package domain

// NoRoute marks a Turn without a chosen candidate.
const NoRoute = -1

// Turn is the mutable aggregate of one shop-to-delivery cycle.
// It exists from shop selection to result acknowledgment.
type Turn struct {
	ID          string           `json:"id"`
	Shop        *Coordinate      `json:"shop"`
	Target      *Coordinate      `json:"target"`
	Order       *OrderType       `json:"order"`
	Candidates  []RouteCandidate `json:"candidates"`
	ChosenIndex int              `json:"chosen_index"`
	Progress    float64          `json:"progress"`
	Position    *Coordinate      `json:"position"`
	Outcome     *Outcome         `json:"outcome"`
}

// Clear all turn fields.
func (t *Turn) Reset() {
	*t = Turn{ChosenIndex: NoRoute}
}

func (t *Turn) Active() bool { return t.ID != "" }

// ChosenRoute returns the selected candidate, if any.
func (t *Turn) ChosenRoute() (RouteCandidate, bool) {
	if t.ChosenIndex < 0 || t.ChosenIndex >= len(t.Candidates) {
		return RouteCandidate{}, false
	}
	return t.Candidates[t.ChosenIndex], true
}
