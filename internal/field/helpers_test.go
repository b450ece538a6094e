package field

type recordingSurface struct {
	width, height int
	scale         float64
	clears        int
	circles       []circleCall
	strokes       []strokeCall
}

type circleCall struct{ x, y, r, alpha float64 }

type strokeCall struct {
	x0, y0, x1, y1, width float64
	stops                 []Stop
}

func (s *recordingSurface) Resize(w, h int)     { s.width, s.height = w, h }
func (s *recordingSurface) SetScale(sc float64) { s.scale = sc }

func (s *recordingSurface) Clear() {
	s.clears++
	s.circles = s.circles[:0]
	s.strokes = s.strokes[:0]
}

func (s *recordingSurface) FillCircle(x, y, r, alpha float64) {
	s.circles = append(s.circles, circleCall{x, y, r, alpha})
}

func (s *recordingSurface) StrokeGradient(x0, y0, x1, y1, width float64, stops []Stop) {
	cp := make([]Stop, len(stops))
	copy(cp, stops)
	s.strokes = append(s.strokes, strokeCall{x0, y0, x1, y1, width, cp})
}

// seqRandom replays a fixed sequence, cycling when exhausted.
type seqRandom struct {
	vals []float64
	i    int
}

func (r *seqRandom) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}
