package services

import (
	"fmt"
	"geoport-delivery/internal/domain"
	"math"
)

const (
	// Profit per kilometre before the order multiplier.
	ProfitPerKm = 100.0
	// Share of the running profit lost when the risk roll hits.
	RiskPenaltyRate = 0.3
	// Minimum payout as a share of the order-adjusted base.
	ProfitFloorRate = 0.3
	// Share of the base charged per unit of extra time.
	TimePenaltyRate = 0.1
)

// ComputeOutcome turns a chosen route, the order and a risk roll in [0,1)
// into a delivery outcome. It does not touch the session economy.
//
// Effects are applied in a fixed order: order multiplier, event time
// penalty, event cost penalty, event bonus, risk roll, floor.
func ComputeOutcome(route domain.RouteCandidate, order domain.OrderType, riskRoll float64) domain.Outcome {
	base := route.DistanceKm * ProfitPerKm
	base *= order.Multiplier

	profit := base
	messages := []string{}

	if ev := route.Event; ev != nil {
		if tm := ev.Effect.TimeMultiplier; tm != 0 {
			profit -= (tm - 1) * base * TimePenaltyRate
			messages = append(messages, fmt.Sprintf("%s %s: time %.1fx", ev.Icon, ev.Name, tm))
		}
		if p := ev.Effect.CostPenalty; p != 0 {
			penalty := base * p
			profit -= penalty
			messages = append(messages, fmt.Sprintf("💰 -₺%d penalty", int(math.Floor(penalty))))
		}
		if b := ev.Effect.CostBonus; b != 0 {
			bonus := base * b
			profit += bonus
			messages = append(messages, fmt.Sprintf("✨ +₺%d bonus", int(math.Floor(bonus))))
		}
	}

	status := domain.StatusSuccess
	if riskRoll < route.Risk {
		penalty := profit * RiskPenaltyRate
		profit -= penalty
		status = domain.StatusDelayed
		messages = append(messages, fmt.Sprintf("⚠️ Risk: -₺%d", int(math.Floor(penalty))))
	}

	profit = math.Max(profit, base*ProfitFloorRate)

	return domain.Outcome{
		FinalProfit: int(math.Floor(profit)),
		Status:      status,
		Messages:    messages,
		DistanceKm:  route.DistanceKm,
		OrderName:   order.Name,
		Multiplier:  order.Multiplier,
	}
}

// ResolveDelivery computes the outcome and books it into progress: money,
// delivery counter and tier. The outcome reports the resulting tier and
// whether it changed.
func ResolveDelivery(
	progress *domain.GameProgress,
	maxTier int,
	route domain.RouteCandidate,
	order domain.OrderType,
	riskRoll float64,
) domain.Outcome {
	outcome := ComputeOutcome(route, order, riskRoll)

	outcome.LeveledUp = progress.RecordDelivery(outcome.FinalProfit, maxTier)
	outcome.Tier = progress.Tier

	return outcome
}
