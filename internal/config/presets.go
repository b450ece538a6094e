package config

import (
	"fmt"
	"sort"
)

type Preset struct {
	Description string
	Apply       func(*Config)
}

var Presets = map[string]Preset{
	"reference": {
		Description: "dense, subtle stars; streaks only on demand",
		Apply:       func(c *Config) {},
	},
	"terminal": {
		Description: "sparser field sized for a Braille terminal canvas",
		Apply: func(c *Config) {
			c.Field.StarCount = 260
			c.Field.SpawnStreaks = true
			c.View.FPS = 30
		},
	},
	"shower": {
		Description: "meteor shower: frequent falling streaks",
		Apply: func(c *Config) {
			c.Field.StarCount = 900
			c.Field.SpawnStreaks = true
			c.Field.StreakRate = 6
		},
	},
	"sparse": {
		Description: "few stars, occasional streaks",
		Apply: func(c *Config) {
			c.Field.StarCount = 400
			c.Field.SpawnStreaks = true
			c.Field.StreakRate = 0.5
		},
	},
	"retina": {
		Description: "full density backing surface on high-dpi displays",
		Apply: func(c *Config) {
			c.Field.PixelRatio = 2
			c.Field.SpawnStreaks = true
		},
	},
}

// GetPreset returns the default configuration with the named preset applied.
func GetPreset(name string) (*Config, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	cfg := DefaultConfig()
	p.Apply(cfg)
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
