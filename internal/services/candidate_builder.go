package services

import (
	"context"
	"geoport-delivery/internal/domain"
	"geoport-delivery/internal/geo"
	"geoport-delivery/internal/platform/obs"
	"geoport-delivery/internal/ports"
	"log"
	"math"
	"sync"
	"time"
)

// Two candidates whose distances differ by less than this fraction of the
// longer one are considered the same route.
const DuplicateThreshold = 0.05

type BuilderConfig struct {
	// Bound on the alternatives=true request.
	PrimaryTimeout time.Duration
	// Bound on each supplementary via-point request.
	SupplementTimeout time.Duration
	// Bound on all provider traffic for one Build call.
	OverallTimeout time.Duration
	// Cap, in degrees, on the via-point nudge around the midpoint.
	MaxWaypointOffset float64
	// Initial bow, in degrees, of synthesized curves.
	FallbackOffset float64
	// Number of times a colliding synthesized curve is widened.
	MaxBowAttempts int
}

func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{
		PrimaryTimeout:    4 * time.Second,
		SupplementTimeout: 3 * time.Second,
		OverallTimeout:    5 * time.Second,
		MaxWaypointOffset: 0.02,
		FallbackOffset:    0.002,
		MaxBowAttempts:    8,
	}
}

// CandidateBuilder produces the three route candidates of a turn.
//
// It asks the path provider first, nudges via-points when the provider
// returns too few distinct paths and synthesizes curved paths locally when
// the provider is unavailable. Build never fails.
type CandidateBuilder struct {
	provider ports.PathProvider
	events   *EventGenerator
	cfg      BuilderConfig
}

func NewCandidateBuilder(provider ports.PathProvider, events *EventGenerator, cfg BuilderConfig) *CandidateBuilder {
	return &CandidateBuilder{provider: provider, events: events, cfg: cfg}
}

type candidatePath struct {
	geometry    []domain.Coordinate
	distanceKm  float64
	durationMin *float64
	synthesized bool
}

// IsDuplicate applies the relative distance rule to two distances in km.
func IsDuplicate(d1, d2 float64) bool {
	longest := math.Max(d1, d2)
	if longest == 0 {
		return true
	}
	return math.Abs(d1-d2)/longest < DuplicateThreshold
}

// distinctPaths collects up to limit paths, rejecting duplicates.
type distinctPaths struct {
	limit int
	items []candidatePath
}

func (d *distinctPaths) full() bool { return len(d.items) >= d.limit }

func (d *distinctPaths) add(p candidatePath) bool {
	if d.full() {
		return false
	}
	for _, seen := range d.items {
		if IsDuplicate(seen.distanceKm, p.distanceKm) {
			return false
		}
	}
	d.items = append(d.items, p)
	return true
}

// Build returns exactly domain.CandidateSlots candidates from -> to.
func (b *CandidateBuilder) Build(ctx context.Context, from, to domain.Coordinate) []domain.RouteCandidate {
	defer obs.Time(ctx, "candidates.Build")(nil)

	ctx, cancel := context.WithTimeout(ctx, b.cfg.OverallTimeout)
	defer cancel()

	set := &distinctPaths{limit: domain.CandidateSlots}

	if b.provider != nil {
		for _, p := range b.primary(ctx, from, to) {
			set.add(b.fromProvider(p, from, to))
		}

		if !set.full() {
			for _, p := range b.supplementary(ctx, from, to) {
				set.add(b.fromProvider(p, from, to))
			}
		}
	}

	allSynthesized := len(set.items) == 0
	if !set.full() {
		if allSynthesized {
			log.Printf("candidates: provider yielded no usable paths, synthesizing fallback")
		}
		b.synthesize(set, from, to)
	}

	return b.finalize(set.items, allSynthesized)
}

func (b *CandidateBuilder) primary(ctx context.Context, from, to domain.Coordinate) []ports.PathResult {
	ctx, cancel := context.WithTimeout(ctx, b.cfg.PrimaryTimeout)
	defer cancel()

	paths, err := b.provider.GetRoutes(ctx, []domain.Coordinate{from, to}, true)
	if err != nil {
		log.Printf("candidates: primary request failed: %v", err)
		return nil
	}
	return paths
}

// supplementary fans out one request per waypoint variant (direct, and the
// midpoint nudged to either side) and waits for all of them. Failed
// requests are logged and dropped.
func (b *CandidateBuilder) supplementary(ctx context.Context, from, to domain.Coordinate) []ports.PathResult {
	mid := geo.Midpoint(from, to)
	off := math.Min(geo.HaversineKm(from, to)*0.1, b.cfg.MaxWaypointOffset)

	variants := [][]domain.Coordinate{
		{from, to},
		{from, mid.Offset(off, off), to},
		{from, mid.Offset(-off, -off), to},
	}

	results := make([][]ports.PathResult, len(variants))
	var wg sync.WaitGroup

	for i, waypoints := range variants {
		wg.Add(1)
		go func(i int, waypoints []domain.Coordinate) {
			defer wg.Done()

			rctx, cancel := context.WithTimeout(ctx, b.cfg.SupplementTimeout)
			defer cancel()

			paths, err := b.provider.GetRoutes(rctx, waypoints, false)
			if err != nil {
				log.Printf("candidates: supplementary request %d failed: %v", i+1, err)
				return
			}
			if len(paths) > 0 {
				results[i] = paths[:1]
			}
		}(i, waypoints)
	}

	wg.Wait()

	out := make([]ports.PathResult, 0, len(variants))
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

func (b *CandidateBuilder) fromProvider(p ports.PathResult, from, to domain.Coordinate) candidatePath {
	geometry := p.Geometry
	if len(geometry) < 2 {
		geometry = []domain.Coordinate{from, to}
	}

	km := p.DistanceMeters / 1000
	if km <= 0 {
		km = geo.PathLengthKm(geometry)
	}

	var duration *float64
	if p.DurationSeconds > 0 {
		m := p.DurationSeconds / 60
		duration = &m
	}

	return candidatePath{geometry: geometry, distanceKm: km, durationMin: duration}
}

// synthesize fills the remaining slots with a straight line and curves bowed
// to alternating sides of it around the midpoint. A curve that collides with
// an accepted distance is widened until it is distinct.
func (b *CandidateBuilder) synthesize(set *distinctPaths, from, to domain.Coordinate) {
	straight := []domain.Coordinate{from, to}
	set.add(candidatePath{geometry: straight, distanceKm: geo.PathLengthKm(straight), synthesized: true})

	mid := geo.Midpoint(from, to)
	nLat, nLon := geo.Normal(from, to)
	signs := []float64{1, -1, 1, -1}

	for _, sign := range signs {
		if set.full() {
			return
		}

		// FallbackOffset on both axes, measured along the normal.
		bow := b.cfg.FallbackOffset * math.Sqrt2
		for attempt := 0; attempt < b.cfg.MaxBowAttempts; attempt++ {
			via := mid.Offset(sign*bow*nLat, sign*bow*nLon)
			curve := geo.Curve(from, via, to, geo.CurveSegments)
			if set.add(candidatePath{geometry: curve, distanceKm: geo.PathLengthKm(curve), synthesized: true}) {
				break
			}
			bow *= 2
		}
	}
}

// finalize assigns slot names, fixed slot risks and events in slot order.
func (b *CandidateBuilder) finalize(paths []candidatePath, allSynthesized bool) []domain.RouteCandidate {
	names := domain.SlotNames
	if allSynthesized {
		names = domain.SynthesizedNames
	}

	out := make([]domain.RouteCandidate, 0, len(paths))
	for i, p := range paths {
		risk := domain.SlotRisks[i]
		out = append(out, domain.RouteCandidate{
			ID:          i + 1,
			Name:        names[i],
			Geometry:    p.geometry,
			DistanceKm:  p.distanceKm,
			DurationMin: p.durationMin,
			Risk:        risk,
			Event:       b.events.Generate(risk),
			Synthesized: p.synthesized,
		})
	}
	return out
}
