package field

import (
	"math"
	"slices"
)

// Field is the starfield particle simulation bound to one drawing surface.
type Field struct {
	surface Surface
	rnd     Random
	opts    Options

	width, height float64
	density       float64
	clock         float64

	stars   []Star
	streaks []Streak
	stops   []Stop

	spawned int
	pruned  int
}

// New creates a field drawing into surface. A nil surface produces a field
// whose operations are all no-ops.
func New(surface Surface, rnd Random, opts Options) *Field {
	if opts.StarCount < 0 {
		opts.StarCount = 0
	}
	if opts.MaxStep <= 0 {
		opts.MaxStep = DefaultMaxStep
	}
	return &Field{
		surface: surface,
		rnd:     rnd,
		opts:    opts,
		density: opts.density(),
		stars:   make([]Star, 0, opts.StarCount),
		streaks: make([]Streak, 0, 16),
		stops:   make([]Stop, 3),
	}
}

// Available reports whether the field has a surface to draw into.
func (f *Field) Available() bool { return f.surface != nil && f.rnd != nil }

func (f *Field) Options() Options            { return f.opts }
func (f *Field) Size() (float64, float64)    { return f.width, f.height }
func (f *Field) Density() float64            { return f.density }
func (f *Field) Clock() float64              { return f.clock }
func (f *Field) StarCount() int              { return len(f.stars) }
func (f *Field) StreakCount() int            { return len(f.streaks) }
func (f *Field) Stars() []Star               { return slices.Clone(f.stars) }
func (f *Field) Streaks() []Streak           { return slices.Clone(f.streaks) }
func (f *Field) SetSpawning(on bool)         { f.opts.SpawnStreaks = on }
func (f *Field) Spawning() bool              { return f.opts.SpawnStreaks }
func (f *Field) SetPixelRatio(ratio float64) { f.opts.PixelRatio = ratio }

// Seed resizes the surface to width x height scaled by the capped density
// factor and regenerates the whole star pool.
func (f *Field) Seed(width, height float64) {
	if !f.Available() {
		return
	}
	f.density = f.opts.density()
	f.width, f.height = width, height

	pw, ph := int(math.Floor(width*f.density)), int(math.Floor(height*f.density))
	if pw < 0 {
		pw = 0
	}
	if ph < 0 {
		ph = 0
	}
	f.surface.Resize(pw, ph)
	f.surface.SetScale(f.density)

	f.stars = f.stars[:0]
	for i := 0; i < f.opts.StarCount; i++ {
		f.stars = append(f.stars, f.newStar())
	}
	if f.opts.ClearStreaksOnResize {
		f.streaks = f.streaks[:0]
	}
}

func (f *Field) newStar() Star {
	var r float64
	if f.rnd.Float64() < 0.95 {
		r = f.rnd.Float64()*1.2 + 0.2
	} else {
		r = f.rnd.Float64()*1.9 + 0.7
	}
	s := Star{
		X:           f.rnd.Float64() * f.width,
		Y:           f.rnd.Float64() * f.height,
		Radius:      r,
		BaseOpacity: f.rnd.Float64()*0.55 + 0.15,
		Twinkle:     f.rnd.Float64()*0.9 + 0.1,
		Drift:       (f.rnd.Float64()*0.15 + 0.02) * referenceFPS,
	}
	s.Opacity = s.BaseOpacity
	return s
}

// SpawnStreak appends one streak above the visible area.
func (f *Field) SpawnStreak() {
	if !f.Available() {
		return
	}
	x := f.rnd.Float64() * f.width
	length := f.rnd.Float64()*130 + 70
	speed := f.rnd.Float64()*520 + 420
	y := -length - f.rnd.Float64()*200
	s := Streak{
		X:           x,
		Y:           y,
		Length:      length,
		Speed:       speed,
		BaseOpacity: f.rnd.Float64()*0.55 + 0.25,
		Width:       f.rnd.Float64()*1.2 + 0.7,
		Fade:        1,
	}
	s.Opacity = s.BaseOpacity
	f.streaks = append(f.streaks, s)
	f.spawned++
}

// InjectStreak adds a caller-built streak to the active set.
func (f *Field) InjectStreak(s Streak) {
	if !f.Available() {
		return
	}
	if s.Fade == 0 && s.Opacity == 0 {
		s.Fade, s.Opacity = 1, s.BaseOpacity
	}
	f.streaks = append(f.streaks, s)
	f.spawned++
}

// MaybeSpawn spawns one streak with probability StreakRate*elapsed when
// automatic spawning is enabled.
func (f *Field) MaybeSpawn(elapsed float64) bool {
	if !f.Available() || !f.opts.SpawnStreaks || elapsed <= 0 {
		return false
	}
	if f.rnd.Float64() < f.opts.StreakRate*elapsed {
		f.SpawnStreak()
		return true
	}
	return false
}

// Frame clamps elapsed to [0, MaxStep], rolls the spawn chance and ticks.
func (f *Field) Frame(elapsed float64) {
	if !f.Available() {
		return
	}
	elapsed = ClampStep(elapsed, f.opts.MaxStep)
	f.MaybeSpawn(elapsed)
	f.Tick(elapsed)
}

// ClampStep bounds a frame delta so a stalled host cannot make particles jump.
func ClampStep(elapsed, limit float64) float64 {
	if elapsed < 0 || math.IsNaN(elapsed) {
		return 0
	}
	if elapsed > limit {
		return limit
	}
	return elapsed
}

// Tick advances stars then streaks by elapsed seconds and redraws the
// surface from the resulting state.
func (f *Field) Tick(elapsed float64) {
	if !f.Available() {
		return
	}
	f.clock += elapsed

	for i := range f.stars {
		s := &f.stars[i]
		s.Y += s.Drift * elapsed
		if s.Y > f.height {
			s.Y = wrapY
		}
		tw := twinkleAmplitude * math.Sin(f.clock*(twinkleBase+s.Twinkle)+s.X*twinkleSpatial)
		s.Opacity = clamp01(s.BaseOpacity + tw)
	}

	span := f.height * fadeSpan
	for i := len(f.streaks) - 1; i >= 0; i-- {
		st := &f.streaks[i]
		st.Y += st.Speed * elapsed
		if st.Y > f.height+st.Length+pruneMargin {
			f.streaks = slices.Delete(f.streaks, i, i+1)
			f.pruned++
			continue
		}
		st.Fade = fadeFactor(st.Y, span)
		st.Opacity = clamp01(st.BaseOpacity * st.Fade)
	}

	f.draw()
}

// Redraw repaints the current state without advancing it.
func (f *Field) Redraw() {
	if !f.Available() {
		return
	}
	f.draw()
}

func (f *Field) draw() {
	f.surface.Clear()
	for _, s := range f.stars {
		f.surface.FillCircle(s.X, s.Y, s.Radius, s.Opacity)
	}
	for _, st := range f.streaks {
		f.stops[0] = Stop{Offset: 0, Alpha: st.Opacity}
		f.stops[1] = Stop{Offset: tailStop, Alpha: st.Opacity * tailStop}
		f.stops[2] = Stop{Offset: 1, Alpha: 0}
		f.surface.StrokeGradient(st.X, st.Y, st.X, st.Y+st.Length, st.Width, f.stops)
	}
}

// Stats summarizes the current particle state.
func (f *Field) Stats() Stats {
	st := Stats{
		Stars:   len(f.stars),
		Streaks: len(f.streaks),
		Clock:   f.clock,
		Spawned: f.spawned,
		Pruned:  f.pruned,
	}
	if len(f.stars) > 0 {
		sum := 0.0
		for _, s := range f.stars {
			sum += s.Opacity
		}
		st.MeanOpacity = sum / float64(len(f.stars))
	}
	return st
}

func fadeFactor(y, span float64) float64 {
	if span <= 0 {
		return 0
	}
	return math.Max(0, 1-y/span)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
