package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/san-kum/starfield/internal/field"
)

// gradientSegments is how many flat pieces approximate a gradient stroke.
const gradientSegments = 12

// Surface draws the field onto an offscreen ebiten image with GPU vector
// primitives.
type Surface struct {
	img   *ebiten.Image
	scale float64
	tint  color.RGBA
	bg    color.RGBA
}

func NewSurface(tint, bg color.RGBA) *Surface {
	return &Surface{scale: 1, tint: tint, bg: bg}
}

func (s *Surface) Image() *ebiten.Image { return s.img }

func (s *Surface) Resize(width, height int) {
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	if width <= 0 || height <= 0 {
		return
	}
	s.img = ebiten.NewImage(width, height)
}

func (s *Surface) SetScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	s.scale = scale
}

func (s *Surface) Clear() {
	if s.img == nil {
		return
	}
	s.img.Fill(s.bg)
}

func (s *Surface) FillCircle(x, y, r, alpha float64) {
	if s.img == nil || alpha <= 0 {
		return
	}
	sc := s.scale
	vector.DrawFilledCircle(s.img, float32(x*sc), float32(y*sc), float32(r*sc), s.color(alpha), true)
}

// StrokeGradient splits the line into flat segments sampled from the stops.
func (s *Surface) StrokeGradient(x0, y0, x1, y1, width float64, stops []field.Stop) {
	if s.img == nil || width <= 0 {
		return
	}
	sc := s.scale
	for i := 0; i < gradientSegments; i++ {
		t0 := float64(i) / gradientSegments
		t1 := float64(i+1) / gradientSegments
		a := field.GradientAlpha(stops, (t0+t1)/2)
		if a <= 0 {
			continue
		}
		ax, ay := x0+(x1-x0)*t0, y0+(y1-y0)*t0
		bx, by := x0+(x1-x0)*t1, y0+(y1-y0)*t1
		vector.StrokeLine(s.img,
			float32(ax*sc), float32(ay*sc), float32(bx*sc), float32(by*sc),
			float32(width*sc), s.color(a), true)
	}
}

// color premultiplies the tint by alpha as ebiten expects.
func (s *Surface) color(alpha float64) color.RGBA {
	if alpha > 1 {
		alpha = 1
	}
	return color.RGBA{
		R: uint8(float64(s.tint.R) * alpha),
		G: uint8(float64(s.tint.G) * alpha),
		B: uint8(float64(s.tint.B) * alpha),
		A: uint8(255 * alpha),
	}
}
