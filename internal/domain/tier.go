package domain

// Tier is a vehicle level gating speed, spawn range and visuals.
type Tier struct {
	Level             int     `json:"level" yaml:"level"`
	DisplayName       string  `json:"display_name" yaml:"display_name"`
	SpeedFactor       float64 `json:"speed_factor" yaml:"speed_factor"`
	ColorTag          string  `json:"color_tag" yaml:"color_tag"`
	MapZoomHint       int     `json:"map_zoom_hint" yaml:"map_zoom_hint"`
	SpawnRangeDegrees float64 `json:"spawn_range_degrees" yaml:"spawn_range_degrees"`
	Icon              string  `json:"icon" yaml:"icon"`
}

// Catalog holds the fixed game tables: tiers, order templates and route events.
type Catalog struct {
	Tiers  []Tier       `json:"tiers" yaml:"tiers"`
	Orders []OrderType  `json:"orders" yaml:"orders"`
	Events []RouteEvent `json:"events" yaml:"events"`
}

// MaxTierLevel caps vehicle progression.
const MaxTierLevel = 4

// MaxTier is the highest reachable tier level.
func (c Catalog) MaxTier() int {
	return min(len(c.Tiers), MaxTierLevel)
}

// Tier returns the tier for a level, clamped to the catalog bounds.
func (c Catalog) Tier(level int) Tier {
	if len(c.Tiers) == 0 {
		return Tier{Level: level}
	}
	if level < 1 {
		level = 1
	}
	if level > len(c.Tiers) {
		level = len(c.Tiers)
	}
	return c.Tiers[level-1]
}
