package services

import (
	"geoport-delivery/internal/config"
	"geoport-delivery/internal/domain"
	"testing"
)

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		risk float64
		want RiskBand
	}{
		{0.8, RiskHigh},
		{0.61, RiskHigh},
		{0.6, RiskMedium},
		{0.4, RiskMedium},
		{0.3, RiskMedium},
		{0.29, RiskLow},
		{0.1, RiskLow},
	}

	for _, tt := range tests {
		if got := ClassifyRisk(tt.risk); got != tt.want {
			t.Fatalf("ClassifyRisk(%v) = %v, want %v", tt.risk, got, tt.want)
		}
	}
}

func TestEligibleByBand(t *testing.T) {
	g := NewEventGenerator(config.DefaultCatalog().Events, &scriptedRand{})

	high := g.Eligible(RiskHigh)
	if len(high) != 6 {
		t.Fatalf("high band eligible = %d, want 6", len(high))
	}
	for _, e := range high {
		if e.Favorable() {
			t.Fatalf("high band contains favorable event %q", e.Type)
		}
	}

	low := g.Eligible(RiskLow)
	if len(low) != 3 {
		t.Fatalf("low band eligible = %d, want 3", len(low))
	}
	for _, e := range low {
		if !e.Favorable() && e.Type != domain.EventToll {
			t.Fatalf("low band contains %q", e.Type)
		}
	}

	if got := len(g.Eligible(RiskMedium)); got != 8 {
		t.Fatalf("medium band eligible = %d, want 8", got)
	}
}

func TestGenerateAppliesEventProbability(t *testing.T) {
	events := config.DefaultCatalog().Events

	// Low band eligible order: bonus, toll, shortcut. Pick toll (p=0.3).
	hit := NewEventGenerator(events, &scriptedRand{ints: []int{1}, floats: []float64{0.29}})
	ev := hit.Generate(0.1)
	if ev == nil || ev.Type != domain.EventToll {
		t.Fatalf("Generate = %+v, want toll", ev)
	}

	miss := NewEventGenerator(events, &scriptedRand{ints: []int{1}, floats: []float64{0.3}})
	if ev := miss.Generate(0.1); ev != nil {
		t.Fatalf("Generate = %+v, want nil", ev)
	}
}

func TestGenerateNeverFavorableOnHighRisk(t *testing.T) {
	g := NewEventGenerator(config.DefaultCatalog().Events, NewRand(1))

	seen := 0
	for i := 0; i < 2000; i++ {
		ev := g.Generate(0.8)
		if ev == nil {
			continue
		}
		seen++
		if ev.Favorable() {
			t.Fatalf("high risk produced favorable event %q", ev.Type)
		}
	}
	if seen == 0 {
		t.Fatalf("expected some events over 2000 draws")
	}
}

func TestGenerateEmptyCatalog(t *testing.T) {
	g := NewEventGenerator(nil, &scriptedRand{})
	if ev := g.Generate(0.4); ev != nil {
		t.Fatalf("Generate = %+v, want nil", ev)
	}
}
