package domain

// Deliveries needed per tier advancement.
const DeliveriesPerTier = 3

// GameProgress is the session-wide economy: money, delivery count and tier.
// It lives in memory for one session only.
type GameProgress struct {
	Money               int `json:"money"`
	DeliveriesCompleted int `json:"deliveries_completed"`
	Tier                int `json:"tier"`
}

func NewGameProgress() GameProgress {
	return GameProgress{Tier: 1}
}

// Record a completed delivery and advance the tier every DeliveriesPerTier
// deliveries, capped at maxTier. Reports whether the tier changed.
func (p *GameProgress) RecordDelivery(profit int, maxTier int) bool {
	p.Money += profit
	p.DeliveriesCompleted++

	if p.DeliveriesCompleted%DeliveriesPerTier == 0 && p.Tier < maxTier {
		p.Tier++
		return true
	}
	return false
}
