package dto

import "geoport-delivery/internal/domain"

type ShopRequest struct {
	ShopIndex *int `json:"shop_index"`
}

type OrderRequest struct {
	OrderSlot *int `json:"order_slot"`
}

type RouteRequest struct {
	RouteIndex *int `json:"route_index"`
}

// Geometry is a GeoJSON-style list of [lon, lat] pairs.
type Geometry [][]float64

type EventResponse struct {
	Type           string  `json:"type"`
	Name           string  `json:"name"`
	Icon           string  `json:"icon"`
	Description    string  `json:"description"`
	TimeMultiplier float64 `json:"time_multiplier,omitempty"`
	CostPenalty    float64 `json:"cost_penalty,omitempty"`
	CostBonus      float64 `json:"cost_bonus,omitempty"`
}

type CandidateResponse struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	DistanceKm  float64        `json:"distance_km"`
	DurationMin *float64       `json:"duration_min"`
	Risk        float64        `json:"risk"`
	RiskLabel   string         `json:"risk_label"`
	Event       *EventResponse `json:"event"`
	Synthesized bool           `json:"synthesized"`
	Geometry    Geometry       `json:"geometry"`
}

type OrderResponse struct {
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
}

type OutcomeResponse struct {
	FinalProfit          int       `json:"final_profit"`
	Status               string    `json:"status"`
	Messages             []string  `json:"messages"`
	DistanceKm           float64   `json:"distance_km"`
	OrderName            string    `json:"order_name"`
	Multiplier           float64   `json:"multiplier"`
	LeveledUp            bool      `json:"leveled_up"`
	Tier                 int       `json:"tier"`
	CandidateDistancesKm []float64 `json:"candidate_distances_km"`
}

type TurnResponse struct {
	ID          string              `json:"id"`
	Shop        *domain.Coordinate  `json:"shop"`
	Target      *domain.Coordinate  `json:"target"`
	Order       *OrderResponse      `json:"order"`
	Candidates  []CandidateResponse `json:"candidates"`
	ChosenIndex int                 `json:"chosen_index"`
	Progress    float64             `json:"progress"`
	Phase       string              `json:"phase,omitempty"`
	Position    *domain.Coordinate  `json:"position"`
	Outcome     *OutcomeResponse    `json:"outcome"`
}

type TierResponse struct {
	Level             int     `json:"level"`
	DisplayName       string  `json:"display_name"`
	Icon              string  `json:"icon"`
	ColorTag          string  `json:"color_tag"`
	MapZoomHint       int     `json:"map_zoom_hint"`
	SpawnRangeDegrees float64 `json:"spawn_range_degrees"`
}

type SessionResponse struct {
	SessionID           string              `json:"session_id"`
	State               string              `json:"state"`
	Money               int                 `json:"money"`
	DeliveriesCompleted int                 `json:"deliveries_completed"`
	Tier                TierResponse        `json:"tier"`
	Shops               []domain.Coordinate `json:"shops"`
	Turn                *TurnResponse       `json:"turn"`
}

type ActionResponse struct {
	Applied bool            `json:"applied"`
	Session SessionResponse `json:"session"`
}

func NewGeometry(path []domain.Coordinate) Geometry {
	out := make(Geometry, 0, len(path))
	for _, c := range path {
		out = append(out, c.CoordsToList())
	}
	return out
}

func NewEventResponse(e *domain.RouteEvent) *EventResponse {
	if e == nil {
		return nil
	}
	return &EventResponse{
		Type:           string(e.Type),
		Name:           e.Name,
		Icon:           e.Icon,
		Description:    e.Description,
		TimeMultiplier: e.Effect.TimeMultiplier,
		CostPenalty:    e.Effect.CostPenalty,
		CostBonus:      e.Effect.CostBonus,
	}
}

func NewCandidateResponse(c domain.RouteCandidate) CandidateResponse {
	return CandidateResponse{
		ID:          c.ID,
		Name:        c.Name,
		DistanceKm:  c.DistanceKm,
		DurationMin: c.DurationMin,
		Risk:        c.Risk,
		RiskLabel:   domain.RiskLabel(c.Risk),
		Event:       NewEventResponse(c.Event),
		Synthesized: c.Synthesized,
		Geometry:    NewGeometry(c.Geometry),
	}
}

func NewOutcomeResponse(o *domain.Outcome) *OutcomeResponse {
	if o == nil {
		return nil
	}
	return &OutcomeResponse{
		FinalProfit:          o.FinalProfit,
		Status:               string(o.Status),
		Messages:             o.Messages,
		DistanceKm:           o.DistanceKm,
		OrderName:            o.OrderName,
		Multiplier:           o.Multiplier,
		LeveledUp:            o.LeveledUp,
		Tier:                 o.Tier,
		CandidateDistancesKm: o.CandidateDistancesKm,
	}
}

func NewTierResponse(t domain.Tier) TierResponse {
	return TierResponse{
		Level:             t.Level,
		DisplayName:       t.DisplayName,
		Icon:              t.Icon,
		ColorTag:          t.ColorTag,
		MapZoomHint:       t.MapZoomHint,
		SpawnRangeDegrees: t.SpawnRangeDegrees,
	}
}

// NewTurnResponse returns nil for an inactive turn.
func NewTurnResponse(t domain.Turn, phase string) *TurnResponse {
	if !t.Active() {
		return nil
	}

	res := &TurnResponse{
		ID:          t.ID,
		Shop:        t.Shop,
		Target:      t.Target,
		Candidates:  make([]CandidateResponse, 0, len(t.Candidates)),
		ChosenIndex: t.ChosenIndex,
		Progress:    t.Progress,
		Phase:       phase,
		Position:    t.Position,
		Outcome:     NewOutcomeResponse(t.Outcome),
	}
	if t.Order != nil {
		res.Order = &OrderResponse{Name: t.Order.Name, Multiplier: t.Order.Multiplier}
	}
	for _, c := range t.Candidates {
		res.Candidates = append(res.Candidates, NewCandidateResponse(c))
	}
	return res
}
