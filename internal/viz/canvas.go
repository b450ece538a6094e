package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/starfield/internal/field"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a Braille sub-pixel surface. Each cell holds 2x4 dots; a dot is
// lit when the alpha drawn onto it reaches the threshold. Level keeps the
// brightest alpha per cell for coloring.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Level         [][]float64

	scale     float64
	threshold float64
}

func NewCanvas(w, h int, threshold float64) *Canvas {
	c := &Canvas{scale: 1, threshold: threshold}
	c.alloc(w, h)
	return c
}

func (c *Canvas) alloc(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.Level = make([][]float64, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Level[i] = make([]float64, w)
	}
	c.Clear()
}

// Resize takes the backing size in dots.
func (c *Canvas) Resize(dotsW, dotsH int) {
	c.alloc((dotsW+1)/2, (dotsH+3)/4)
}

func (c *Canvas) SetScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	c.scale = scale
}

// SetThreshold sets the alpha a dot needs to light. It applies from the next
// draw on.
func (c *Canvas) SetThreshold(t float64) { c.threshold = t }
func (c *Canvas) Threshold() float64     { return c.threshold }

// Set lights a dot at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int) {
	c.plot(x, y, 1)
}

func (c *Canvas) plot(x, y int, alpha float64) {
	if x < 0 || y < 0 || alpha < c.threshold {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if alpha > c.Level[row][col] {
		c.Level[row][col] = alpha
	}
}

// Lit reports whether the dot at (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Level[i][j] = 0
		}
	}
}

// FillCircle lights every dot inside the scaled disc; sub-dot stars light
// the single dot under their center.
func (c *Canvas) FillCircle(x, y, r, alpha float64) {
	cx, cy, rr := x*c.scale, y*c.scale, r*c.scale
	if rr < 0.75 {
		c.plot(int(math.Floor(cx)), int(math.Floor(cy)), alpha)
		return
	}
	for py := int(math.Floor(cy - rr)); py <= int(math.Ceil(cy+rr)); py++ {
		for px := int(math.Floor(cx - rr)); px <= int(math.Ceil(cx+rr)); px++ {
			if math.Hypot(float64(px)+0.5-cx, float64(py)+0.5-cy) <= rr {
				c.plot(px, py, alpha)
			}
		}
	}
}

// StrokeGradient walks the line with Bresenham's algorithm, fading each dot
// by its position along the gradient. Stroke width collapses to one dot.
func (c *Canvas) StrokeGradient(x0, y0, x1, y1, _ float64, stops []field.Stop) {
	ax, ay := int(math.Floor(x0*c.scale)), int(math.Floor(y0*c.scale))
	bx, by := int(math.Floor(x1*c.scale)), int(math.Floor(y1*c.scale))

	dx := absInt(bx - ax)
	dy := absInt(by - ay)
	n := max(dx, dy)
	sx := -1
	if ax < bx {
		sx = 1
	}
	sy := -1
	if ay < by {
		sy = 1
	}
	err := dx - dy

	for i := 0; ; i++ {
		t := 0.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		c.plot(ax, ay, field.GradientAlpha(stops, t))
		if ax == bx && ay == by {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			ax += sx
		}
		if e2 < dx {
			err += dx
			ay += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Overlay replaces one cell with a styled glyph at render time.
type Overlay struct {
	Col, Row int
	Glyph    rune
	Style    lipgloss.Style
}

// Render colors each run of cells by brightness band using the theme.
func (c *Canvas) Render(th Theme, overlays ...Overlay) string {
	bands := [4]lipgloss.Style{
		lipgloss.NewStyle().Foreground(th.StarDim),
		lipgloss.NewStyle().Foreground(th.Star),
		lipgloss.NewStyle().Foreground(th.StarBright),
		lipgloss.NewStyle().Foreground(th.Streak).Bold(true),
	}

	var b strings.Builder
	var run strings.Builder
	for row := range c.Grid {
		band := -1
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if band < 0 {
				b.WriteString(run.String())
			} else {
				b.WriteString(bands[band].Render(run.String()))
			}
			run.Reset()
		}
		for col, r := range c.Grid[row] {
			if ov, ok := findOverlay(overlays, col, row); ok {
				flush()
				band = -1
				b.WriteString(ov.Style.Render(string(ov.Glyph)))
				continue
			}
			nb := -1
			if r != blank {
				nb = levelBand(c.Level[row][col])
			}
			if nb != band {
				flush()
				band = nb
			}
			run.WriteRune(r)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

func levelBand(level float64) int {
	switch {
	case level >= 0.8:
		return 3
	case level >= 0.6:
		return 2
	case level >= 0.45:
		return 1
	default:
		return 0
	}
}

func findOverlay(overlays []Overlay, col, row int) (Overlay, bool) {
	for _, o := range overlays {
		if o.Col == col && o.Row == row {
			return o, true
		}
	}
	return Overlay{}, false
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
