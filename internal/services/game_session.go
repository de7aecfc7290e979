package services

import (
	"context"
	"geoport-delivery/internal/domain"
	"geoport-delivery/internal/geo"
	"geoport-delivery/internal/platform/obs"
	"geoport-delivery/internal/ports"
	"log"
	"sync"

	"github.com/google/uuid"
)

type TurnState string

const (
	StateIdle          TurnState = "idle"
	StateShopSelected  TurnState = "shop_selected"
	StateOrderSelected TurnState = "order_selected"
	StateRouteChosen   TurnState = "route_chosen"
	StateMoving        TurnState = "moving"
	StateResult        TurnState = "result"
)

const (
	// Shops spawned on every return to Idle.
	ShopsPerSpawn = 5
	// Target spawn range relative to the tier's shop range.
	TargetRangeFactor = 1.5
)

// SessionConfig wires a GameSession. Nil Builder, Simulator, Rand and
// Observer fields fall back to an offline builder, the default simulator,
// a randomly seeded source and a no-op observer.
type SessionConfig struct {
	Catalog   domain.Catalog
	Reference domain.Coordinate
	Builder   *CandidateBuilder
	Simulator *DeliverySimulator
	Rand      Rand
	Observer  ports.TurnObserver
}

// GameSession owns the session economy and drives the turn state machine:
//
//	Idle -> ShopSelected -> OrderSelected -> RouteChosen -> Moving -> Result -> Idle
//
// Inputs that do not fit the current state are ignored and reported as
// false. The session is safe for concurrent use; the candidate builder and
// the delivery simulator re-enter through the lock and drop their results
// if the turn changed in the meantime.
type GameSession struct {
	mu sync.Mutex

	id        string
	catalog   domain.Catalog
	reference domain.Coordinate
	builder   *CandidateBuilder
	sim       *DeliverySimulator
	rng       Rand
	observer  ports.TurnObserver

	state    TurnState
	progress domain.GameProgress
	turn     domain.Turn
	shops    []domain.Coordinate

	moveContext func() (context.Context, context.CancelFunc)
	cancelMove  context.CancelFunc
	moveDone    chan struct{}
}

// SessionSnapshot is a copy of the session state for display.
type SessionSnapshot struct {
	SessionID string              `json:"session_id"`
	State     TurnState           `json:"state"`
	Progress  domain.GameProgress `json:"progress"`
	Tier      domain.Tier         `json:"tier"`
	Shops     []domain.Coordinate `json:"shops"`
	Turn      domain.Turn         `json:"turn"`
}

// NewGameSession starts a session in Idle at tier 1 with a fresh batch of
// shops around the reference point.
func NewGameSession(cfg SessionConfig) *GameSession {
	observer := cfg.Observer
	if observer == nil {
		observer = ports.NopObserver{}
	}
	sim := cfg.Simulator
	if sim == nil {
		sim = NewDeliverySimulator()
	}
	rng := cfg.Rand
	if rng == nil {
		rng = Locked(NewRand(0))
	}
	builder := cfg.Builder
	if builder == nil {
		builder = NewCandidateBuilder(nil, NewEventGenerator(cfg.Catalog.Events, rng), DefaultBuilderConfig())
	}

	s := &GameSession{
		id:          uuid.NewString(),
		catalog:     cfg.Catalog,
		reference:   cfg.Reference,
		builder:     builder,
		sim:         sim,
		rng:         rng,
		observer:    observer,
		state:       StateIdle,
		progress:    domain.NewGameProgress(),
		moveContext: newMoveContext,
	}
	s.turn.Reset()
	s.spawnShopsLocked()

	log.Printf("session=%s started tier=%d shops=%d", s.id, s.progress.Tier, len(s.shops))
	return s
}

func newMoveContext() (context.Context, context.CancelFunc) {
	return context.WithCancel(context.Background())
}

func (s *GameSession) ID() string { return s.id }

func (s *GameSession) ignoredLocked(op string) bool {
	log.Printf("session=%s op=%s state=%s ignored", s.id, op, s.state)
	return false
}

func (s *GameSession) spawnShopsLocked() {
	tier := s.catalog.Tier(s.progress.Tier)

	s.shops = make([]domain.Coordinate, 0, ShopsPerSpawn)
	for i := 0; i < ShopsPerSpawn; i++ {
		s.shops = append(s.shops, geo.RandomInBox(s.reference, tier.SpawnRangeDegrees, s.rng.Float64))
	}
}

func (s *GameSession) shopsCopyLocked() []domain.Coordinate {
	out := make([]domain.Coordinate, len(s.shops))
	copy(out, s.shops)
	return out
}

// SelectShop starts a turn at one of the spawned shops. Only valid in Idle.
func (s *GameSession) SelectShop(index int) bool {
	s.mu.Lock()
	if s.state != StateIdle || index < 0 || index >= len(s.shops) {
		defer s.mu.Unlock()
		return s.ignoredLocked("select_shop")
	}

	shop := s.shops[index]
	s.turn = domain.Turn{
		ID:          uuid.NewString(),
		Shop:        &shop,
		ChosenIndex: domain.NoRoute,
	}
	s.state = StateShopSelected
	s.mu.Unlock()

	s.observer.Cue(domain.CueSelect)
	return true
}

// SelectOrder takes one of the offered order slots, draws the hidden order
// template, samples the target and builds the route candidates. Only valid
// in ShopSelected. Blocks while the candidates are built.
func (s *GameSession) SelectOrder(ctx context.Context, slot int) bool {
	s.mu.Lock()
	if s.state != StateShopSelected || slot < 0 || slot >= domain.OrderSlots || len(s.catalog.Orders) == 0 {
		defer s.mu.Unlock()
		return s.ignoredLocked("select_order")
	}

	order := s.catalog.Orders[s.rng.IntN(len(s.catalog.Orders))]
	tier := s.catalog.Tier(s.progress.Tier)
	shop := *s.turn.Shop
	target := geo.RandomInBox(shop, tier.SpawnRangeDegrees*TargetRangeFactor, s.rng.Float64)

	s.turn.Order = &order
	s.turn.Target = &target
	s.state = StateOrderSelected
	turnID := s.turn.ID
	s.mu.Unlock()

	s.observer.Cue(domain.CueClick)

	candidates := s.builder.Build(obs.WithTurnID(ctx, turnID), shop, target)

	s.mu.Lock()
	if s.turn.ID != turnID || s.state != StateOrderSelected {
		log.Printf("session=%s turn=%s candidates discarded state=%s", s.id, turnID, s.state)
		s.mu.Unlock()
		return true
	}
	s.turn.Candidates = candidates
	s.mu.Unlock()

	s.observer.CandidatesReady(turnID, candidates)
	return true
}

// SelectRoute marks a candidate as chosen. The choice may be changed any
// number of times before ConfirmRoute.
func (s *GameSession) SelectRoute(index int) bool {
	s.mu.Lock()
	validState := s.state == StateOrderSelected || s.state == StateRouteChosen
	if !validState || index < 0 || index >= len(s.turn.Candidates) {
		defer s.mu.Unlock()
		return s.ignoredLocked("select_route")
	}

	s.turn.ChosenIndex = index
	s.state = StateRouteChosen
	s.mu.Unlock()

	s.observer.Cue(domain.CueRoutePick)
	return true
}

// ConfirmRoute locks the chosen candidate and starts the delivery.
func (s *GameSession) ConfirmRoute() bool {
	s.mu.Lock()
	route, ok := s.turn.ChosenRoute()
	if s.state != StateRouteChosen || !ok {
		defer s.mu.Unlock()
		return s.ignoredLocked("confirm_route")
	}

	geometry := route.Geometry
	if len(geometry) < 2 {
		geometry = []domain.Coordinate{*s.turn.Shop, *s.turn.Target}
	}

	ctx, cancel := s.moveContext()
	done := make(chan struct{})
	s.cancelMove = cancel
	s.moveDone = done
	s.state = StateMoving
	turnID := s.turn.ID
	s.mu.Unlock()

	s.observer.Cue(domain.CueConfirm)
	s.observer.Cue(domain.CueDeliveryStart)

	go s.runDelivery(ctx, turnID, geometry, route.DurationMin, done)
	return true
}

func (s *GameSession) runDelivery(
	ctx context.Context,
	turnID string,
	geometry []domain.Coordinate,
	durationMin *float64,
	done chan struct{},
) {
	defer close(done)

	err := s.sim.Run(ctx, geometry, durationMin, func(f domain.DeliveryFrame) {
		s.mu.Lock()
		if s.turn.ID != turnID || s.state != StateMoving {
			s.mu.Unlock()
			return
		}
		pos := f.Position
		s.turn.Progress = f.Progress
		s.turn.Position = &pos
		s.mu.Unlock()

		s.observer.PositionUpdated(turnID, f)
	})
	if err != nil {
		log.Printf("session=%s turn=%s delivery aborted: %v", s.id, turnID, err)
		return
	}

	s.finishDelivery(turnID)
}

// finishDelivery resolves the turn exactly once on entering Result.
func (s *GameSession) finishDelivery(turnID string) {
	s.mu.Lock()
	if s.turn.ID != turnID || s.state != StateMoving {
		s.mu.Unlock()
		return
	}

	route, _ := s.turn.ChosenRoute()
	order := domain.OrderType{Multiplier: 1}
	if s.turn.Order != nil {
		order = *s.turn.Order
	}

	outcome := ResolveDelivery(&s.progress, s.catalog.MaxTier(), route, order, s.rng.Float64())
	outcome.CandidateDistancesKm = make([]float64, 0, len(s.turn.Candidates))
	for _, c := range s.turn.Candidates {
		outcome.CandidateDistancesKm = append(outcome.CandidateDistancesKm, c.DistanceKm)
	}

	s.turn.Outcome = &outcome
	s.turn.Progress = 1
	s.state = StateResult
	if s.cancelMove != nil {
		s.cancelMove()
	}
	s.cancelMove = nil
	tier := s.catalog.Tier(s.progress.Tier)
	s.mu.Unlock()

	log.Printf(
		"session=%s turn=%s resolved status=%s profit=%d dist_km=%.2f tier=%d",
		s.id, turnID, outcome.Status, outcome.FinalProfit, outcome.DistanceKm, outcome.Tier,
	)

	if outcome.Status == domain.StatusDelayed {
		s.observer.Cue(domain.CueError)
	} else {
		s.observer.Cue(domain.CueSuccess)
	}
	s.observer.TurnResolved(turnID, outcome)

	if outcome.LeveledUp {
		s.observer.Cue(domain.CueLevelUp)
		s.observer.TierChanged(tier)
	}
}

// Acknowledge dismisses the result and returns to Idle with a new batch of
// shops for the current tier.
func (s *GameSession) Acknowledge() bool {
	s.mu.Lock()
	if s.state != StateResult {
		defer s.mu.Unlock()
		return s.ignoredLocked("acknowledge")
	}

	s.resetLocked()
	shops := s.shopsCopyLocked()
	tier := s.catalog.Tier(s.progress.Tier)
	s.mu.Unlock()

	s.observer.Cue(domain.CueClick)
	s.observer.ShopsSpawned(shops, tier)
	return true
}

// Abort abandons the active turn from any state but Idle. A running
// delivery is cancelled and waited for before Abort returns.
func (s *GameSession) Abort() bool {
	s.mu.Lock()
	if s.state == StateIdle {
		defer s.mu.Unlock()
		return s.ignoredLocked("abort")
	}

	if s.cancelMove != nil {
		s.cancelMove()
	}
	done := s.moveDone

	s.resetLocked()
	shops := s.shopsCopyLocked()
	tier := s.catalog.Tier(s.progress.Tier)
	s.mu.Unlock()

	if done != nil {
		<-done
	}

	s.observer.ShopsSpawned(shops, tier)
	return true
}

func (s *GameSession) resetLocked() {
	s.turn.Reset()
	s.state = StateIdle
	s.cancelMove = nil
	s.moveDone = nil
	s.spawnShopsLocked()
}

// AwaitDelivery blocks until the running delivery, if any, has finished.
func (s *GameSession) AwaitDelivery(ctx context.Context) error {
	s.mu.Lock()
	done := s.moveDone
	s.mu.Unlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *GameSession) State() TurnState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns a copy of the session for display.
func (s *GameSession) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	turn := s.turn
	if s.turn.Candidates != nil {
		turn.Candidates = make([]domain.RouteCandidate, len(s.turn.Candidates))
		copy(turn.Candidates, s.turn.Candidates)
	}

	return SessionSnapshot{
		SessionID: s.id,
		State:     s.state,
		Progress:  s.progress,
		Tier:      s.catalog.Tier(s.progress.Tier),
		Shops:     s.shopsCopyLocked(),
		Turn:      turn,
	}
}
