package config

import (
	_ "embed"
	"fmt"
	"geoport-delivery/internal/domain"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// DefaultCatalog returns the built-in game tables.
func DefaultCatalog() domain.Catalog {
	c, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("config: embedded catalog is invalid: %v", err))
	}
	return c
}

// LoadCatalog reads the catalog from path, or returns the embedded default
// when path is empty.
func LoadCatalog(path string) (domain.Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("load catalog: read %q: %w", path, err)
	}

	c, err := ParseCatalog(b)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("load catalog %q: %w", path, err)
	}
	return c, nil
}

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(b []byte) (domain.Catalog, error) {
	var c domain.Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return domain.Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}

	if err := validateCatalog(c); err != nil {
		return domain.Catalog{}, err
	}
	return c, nil
}

func validateCatalog(c domain.Catalog) error {
	if len(c.Tiers) != domain.MaxTierLevel {
		return fmt.Errorf("validate catalog: got %d tiers, want %d", len(c.Tiers), domain.MaxTierLevel)
	}
	for i, t := range c.Tiers {
		if t.Level != i+1 {
			return fmt.Errorf("validate catalog: tier at index %d has level %d, want %d", i, t.Level, i+1)
		}
		if t.SpawnRangeDegrees <= 0 {
			return fmt.Errorf("validate catalog: tier %d spawn range must be positive", t.Level)
		}
	}

	if len(c.Orders) != domain.OrderSlots {
		return fmt.Errorf("validate catalog: got %d order types, want %d", len(c.Orders), domain.OrderSlots)
	}
	for _, o := range c.Orders {
		if o.Multiplier <= 0 {
			return fmt.Errorf("validate catalog: order %q multiplier must be positive", o.Name)
		}
	}

	if len(c.Events) != domain.EventCount {
		return fmt.Errorf("validate catalog: got %d route events, want %d", len(c.Events), domain.EventCount)
	}
	for _, e := range c.Events {
		if e.Probability < 0 || e.Probability > 1 {
			return fmt.Errorf("validate catalog: event %q probability %v outside [0,1]", e.Type, e.Probability)
		}
	}

	return nil
}
