package domain

type DeliveryStatus string

const (
	StatusSuccess DeliveryStatus = "success"
	StatusDelayed DeliveryStatus = "delayed"
)

// Outcome is the resolved result of one delivery.
type Outcome struct {
	FinalProfit int            `json:"final_profit"`
	Status      DeliveryStatus `json:"status"`
	Messages    []string       `json:"messages"`
	DistanceKm  float64        `json:"distance_km"`
	OrderName   string         `json:"order_name"`
	Multiplier  float64        `json:"multiplier"`
	LeveledUp   bool           `json:"leveled_up"`
	Tier        int            `json:"tier"`

	// Distances of every candidate in slot order, for the comparison chart.
	CandidateDistancesKm []float64 `json:"candidate_distances_km"`
}

// DeliveryFrame is one tick of the delivery animation.
type DeliveryFrame struct {
	Progress float64    `json:"progress"`
	Position Coordinate `json:"position"`
	Phase    string     `json:"phase"`
}
