package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/starfield/internal/field"
)

const (
	DefaultFPS          = 60
	DefaultTheme        = "night"
	DefaultDotThreshold = 0.35
	DefaultCursorEase   = 0.14
	DefaultDataDir      = ".starfield"
	DefaultWindowWidth  = 960
	DefaultWindowHeight = 600
)

type Config struct {
	Seed    int64        `yaml:"seed"`
	DataDir string       `yaml:"data_dir"`
	Field   FieldConfig  `yaml:"field"`
	View    ViewConfig   `yaml:"view"`
	Window  WindowConfig `yaml:"window"`
}

type FieldConfig struct {
	StarCount            int     `yaml:"star_count"`
	StreakRate           float64 `yaml:"streak_rate"`
	SpawnStreaks         bool    `yaml:"spawn_streaks"`
	MaxStep              float64 `yaml:"max_step"`
	MaxDensity           float64 `yaml:"max_density"`
	PixelRatio           float64 `yaml:"pixel_ratio"`
	ClearStreaksOnResize bool    `yaml:"clear_streaks_on_resize"`
}

type ViewConfig struct {
	FPS          int     `yaml:"fps"`
	Theme        string  `yaml:"theme"`
	DotThreshold float64 `yaml:"dot_threshold"`
	Cursor       bool    `yaml:"cursor"`
	CursorEase   float64 `yaml:"cursor_ease"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir: DefaultDataDir,
		Field: FieldConfig{
			StarCount:  field.DefaultStarCount,
			StreakRate: field.DefaultStreakRate,
			MaxStep:    field.DefaultMaxStep,
			MaxDensity: field.DefaultMaxDensity,
			PixelRatio: 1,
		},
		View: ViewConfig{
			FPS:          DefaultFPS,
			Theme:        DefaultTheme,
			DotThreshold: DefaultDotThreshold,
			Cursor:       true,
			CursorEase:   DefaultCursorEase,
		},
		Window: WindowConfig{
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
			Title:  "starfield",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every knob that would otherwise produce a broken field.
func (c *Config) Validate() error {
	switch {
	case c.Field.StarCount < 0:
		return invalid("field.star_count", c.Field.StarCount)
	case c.Field.StreakRate < 0:
		return invalid("field.streak_rate", c.Field.StreakRate)
	case c.Field.MaxStep <= 0:
		return invalid("field.max_step", c.Field.MaxStep)
	case c.Field.MaxDensity <= 0:
		return invalid("field.max_density", c.Field.MaxDensity)
	case c.Field.PixelRatio < 0:
		return invalid("field.pixel_ratio", c.Field.PixelRatio)
	case c.View.FPS <= 0 || c.View.FPS > 240:
		return invalid("view.fps", c.View.FPS)
	case c.View.DotThreshold <= 0 || c.View.DotThreshold > 1:
		return invalid("view.dot_threshold", c.View.DotThreshold)
	case c.View.CursorEase <= 0 || c.View.CursorEase > 1:
		return invalid("view.cursor_ease", c.View.CursorEase)
	case c.View.Theme == "":
		return invalid("view.theme", c.View.Theme)
	case c.Window.Width <= 0:
		return invalid("window.width", c.Window.Width)
	case c.Window.Height <= 0:
		return invalid("window.height", c.Window.Height)
	}
	return nil
}

// FieldOptions converts the field section into field.Options.
func (c *Config) FieldOptions() field.Options {
	return field.Options{
		StarCount:            c.Field.StarCount,
		StreakRate:           c.Field.StreakRate,
		SpawnStreaks:         c.Field.SpawnStreaks,
		MaxStep:              c.Field.MaxStep,
		PixelRatio:           c.Field.PixelRatio,
		MaxDensity:           c.Field.MaxDensity,
		ClearStreaksOnResize: c.Field.ClearStreaksOnResize,
	}
}

func invalid(key string, val any) error {
	return fmt.Errorf("%w: %s = %v", ErrInvalidConfig, key, val)
}
