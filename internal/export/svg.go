// Package export writes starfield frames as SVG documents.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/starfield/internal/field"
	"github.com/san-kum/starfield/internal/viz"
)

// SVG is a field.Surface that accumulates one frame as vector markup.
// Streak gradients become userSpaceOnUse linearGradients.
type SVG struct {
	Background string
	Fill       string

	width, height int
	scale         float64
	body          strings.Builder
	defs          strings.Builder
	gradients     int
	shapes        int
}

func NewSVG(fill, background string) *SVG {
	return &SVG{Fill: fill, Background: background, scale: 1}
}

func (s *SVG) Size() (int, int) { return s.width, s.height }
func (s *SVG) Shapes() int      { return s.shapes }

func (s *SVG) Resize(width, height int) {
	s.width, s.height = max(width, 0), max(height, 0)
	s.Clear()
}

func (s *SVG) SetScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	s.scale = scale
}

func (s *SVG) Clear() {
	s.body.Reset()
	s.defs.Reset()
	s.gradients = 0
	s.shapes = 0
}

func (s *SVG) FillCircle(x, y, r, alpha float64) {
	if alpha <= 0 || r <= 0 {
		return
	}
	fmt.Fprintf(&s.body, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill-opacity="%.3f"/>
`, x*s.scale, y*s.scale, r*s.scale, alpha)
	s.shapes++
}

func (s *SVG) StrokeGradient(x0, y0, x1, y1, width float64, stops []field.Stop) {
	if width <= 0 || (x0 == x1 && y0 == y1) || len(stops) == 0 {
		return
	}
	id := fmt.Sprintf("g%d", s.gradients)
	s.gradients++

	x0, y0, x1, y1 = x0*s.scale, y0*s.scale, x1*s.scale, y1*s.scale
	fmt.Fprintf(&s.defs, `<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f">
`, id, x0, y0, x1, y1)
	for _, st := range stops {
		fmt.Fprintf(&s.defs, `<stop offset="%.3f" stop-color="%s" stop-opacity="%.3f"/>
`, st.Offset, s.Fill, st.Alpha)
	}
	s.defs.WriteString("</linearGradient>\n")

	fmt.Fprintf(&s.body, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="url(#%s)" stroke-width="%.2f"/>
`, x0, y0, x1, y1, id, width*s.scale)
	s.shapes++
}

// WriteTo writes the current frame as a standalone SVG document.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, s.width, s.height, s.width, s.height)
	if s.gradients > 0 {
		sb.WriteString("<defs>\n")
		sb.WriteString(s.defs.String())
		sb.WriteString("</defs>\n")
	}
	fmt.Fprintf(&sb, `<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, s.Background, s.Fill)
	sb.WriteString(s.body.String())
	sb.WriteString("</g>\n</svg>\n")

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// CanvasToSVG converts a Braille canvas to SVG, one circle per lit dot,
// colored with the theme's star color.
func CanvasToSVG(canvas *viz.Canvas, th viz.Theme, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, width, height, width, height, string(th.Star))

	dotRadius := scale * 0.4

	for y := 0; y < canvas.Height*4; y++ {
		for x := 0; x < canvas.Width*2; x++ {
			if !canvas.Lit(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
