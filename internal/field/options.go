package field

const (
	DefaultStarCount  = 1400
	DefaultStreakRate = 0.9  // spawns per second
	DefaultMaxStep    = 0.04 // seconds
	DefaultMaxDensity = 2.0

	twinkleAmplitude = 0.15
	twinkleBase      = 0.9
	twinkleSpatial   = 0.01
	referenceFPS     = 60.0
	wrapY            = -2.0
	fadeSpan         = 0.95
	pruneMargin      = 80.0
	tailStop         = 0.55
)

// Options configures a Field.
type Options struct {
	StarCount  int
	StreakRate float64
	// SpawnStreaks enables probabilistic spawning inside Frame. Streaks can
	// always be added with SpawnStreak regardless of this flag.
	SpawnStreaks         bool
	MaxStep              float64
	PixelRatio           float64
	MaxDensity           float64
	ClearStreaksOnResize bool
}

func DefaultOptions() Options {
	return Options{
		StarCount:  DefaultStarCount,
		StreakRate: DefaultStreakRate,
		MaxStep:    DefaultMaxStep,
		PixelRatio: 1,
		MaxDensity: DefaultMaxDensity,
	}
}

func (o Options) density() float64 {
	d := o.PixelRatio
	if d <= 0 {
		d = 1
	}
	limit := o.MaxDensity
	if limit <= 0 {
		limit = DefaultMaxDensity
	}
	if d > limit {
		d = limit
	}
	return d
}
