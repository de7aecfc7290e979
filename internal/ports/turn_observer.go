package ports

import "geoport-delivery/internal/domain"

// TurnObserver receives everything the rendering, UI and audio collaborators
// display or play. Implementations must not block the caller.
type TurnObserver interface {
	ShopsSpawned(shops []domain.Coordinate, tier domain.Tier)
	CandidatesReady(turnID string, candidates []domain.RouteCandidate)
	PositionUpdated(turnID string, frame domain.DeliveryFrame)
	TurnResolved(turnID string, outcome domain.Outcome)
	TierChanged(tier domain.Tier)
	Cue(cue domain.Cue)
}

// NopObserver discards every notification.
type NopObserver struct{}

func (NopObserver) ShopsSpawned([]domain.Coordinate, domain.Tier) {}
func (NopObserver) CandidatesReady(string, []domain.RouteCandidate) {}
func (NopObserver) PositionUpdated(string, domain.DeliveryFrame) {}
func (NopObserver) TurnResolved(string, domain.Outcome) {}
func (NopObserver) TierChanged(domain.Tier) {}
func (NopObserver) Cue(domain.Cue) {}
