package field

// Star is an ambient point light.
type Star struct {
	X, Y        float64
	Radius      float64
	BaseOpacity float64
	Twinkle     float64 // frequency offset of the brightness oscillation
	Drift       float64 // px/s
	Opacity     float64
}

// Streak is a falling line with a finite lifetime. Y is the top of the line.
type Streak struct {
	X, Y        float64
	Length      float64
	Speed       float64 // px/s
	BaseOpacity float64
	Width       float64
	Fade        float64
	Opacity     float64
}

// Stop is one gradient color stop along a stroked line.
type Stop struct {
	Offset float64
	Alpha  float64
}

// Surface is the drawing target of a Field. All coordinates passed to the
// drawing primitives are density independent; SetScale maps them onto the
// physical raster set by Resize.
type Surface interface {
	Resize(width, height int)
	SetScale(scale float64)
	Clear()
	FillCircle(x, y, r, alpha float64)
	StrokeGradient(x0, y0, x1, y1, width float64, stops []Stop)
}

// Random yields uniformly distributed values in [0, 1).
// *math/rand.Rand satisfies it.
type Random interface {
	Float64() float64
}

// Stats is a snapshot of the field used by status panels and recordings.
type Stats struct {
	Stars       int
	Streaks     int
	Clock       float64
	MeanOpacity float64
	Spawned     int
	Pruned      int
}

// GradientAlpha interpolates the alpha of stops at offset t in [0, 1].
// Stops must be sorted by offset.
func GradientAlpha(stops []Stop, t float64) float64 {
	if len(stops) == 0 {
		return 0
	}
	if t <= stops[0].Offset {
		return stops[0].Alpha
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Alpha
			}
			k := (t - a.Offset) / span
			return a.Alpha + (b.Alpha-a.Alpha)*k
		}
	}
	return stops[len(stops)-1].Alpha
}
