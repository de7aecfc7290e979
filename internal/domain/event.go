package domain

// EventType identifies a route event in the catalog.
type EventType string

const (
	EventTraffic   EventType = "traffic"
	EventAccident  EventType = "accident"
	EventBonus     EventType = "bonus"
	EventToll      EventType = "toll"
	EventWeather   EventType = "weather"
	EventPolice    EventType = "police"
	EventShortcut  EventType = "shortcut"
	EventBreakdown EventType = "breakdown"
)

// Number of route events in a catalog.
const EventCount = 8

// EventEffect lists the economic effects of a route event.
// A zero field means the effect is absent.
type EventEffect struct {
	TimeMultiplier float64 `json:"time_multiplier,omitempty" yaml:"time_multiplier"`
	CostPenalty    float64 `json:"cost_penalty,omitempty" yaml:"cost_penalty"`
	CostBonus      float64 `json:"cost_bonus,omitempty" yaml:"cost_bonus"`
}

// RouteEvent is a probabilistic hazard or bonus attached to a route candidate.
type RouteEvent struct {
	Type        EventType   `json:"type" yaml:"type"`
	Name        string      `json:"name" yaml:"name"`
	Icon        string      `json:"icon" yaml:"icon"`
	Description string      `json:"description" yaml:"description"`
	Effect      EventEffect `json:"effect" yaml:"effect"`
	Probability float64     `json:"probability" yaml:"probability"`
}

// Favorable reports whether the event is a bonus-type event.
func (e RouteEvent) Favorable() bool {
	return e.Type == EventBonus || e.Type == EventShortcut
}
