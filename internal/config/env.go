package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const envPrefix = "STARFIELD_"

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are skipped; existing variables win.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides values from STARFIELD_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) (string, bool) {
		v, ok := lookup(envPrefix + key)
		return v, ok && v != ""
	}

	if v, ok := get("SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return envErr("SEED", v)
		}
		c.Seed = n
	}
	if v, ok := get("STAR_COUNT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envErr("STAR_COUNT", v)
		}
		c.Field.StarCount = n
	}
	if v, ok := get("STREAK_RATE"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return envErr("STREAK_RATE", v)
		}
		c.Field.StreakRate = f
	}
	if v, ok := get("SPAWN"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envErr("SPAWN", v)
		}
		c.Field.SpawnStreaks = b
	}
	if v, ok := get("PIXEL_RATIO"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return envErr("PIXEL_RATIO", v)
		}
		c.Field.PixelRatio = f
	}
	if v, ok := get("FPS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envErr("FPS", v)
		}
		c.View.FPS = n
	}
	if v, ok := get("THEME"); ok {
		c.View.Theme = v
	}
	if v, ok := get("DATA_DIR"); ok {
		c.DataDir = v
	}
	return c.Validate()
}

func envErr(key, val string) error {
	return fmt.Errorf("%w: %s%s = %q", ErrInvalidConfig, envPrefix, key, val)
}
