// Package raster implements an offscreen RGBA drawing surface for the
// starfield, used for GIF export, headless recording and tests.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/san-kum/starfield/internal/field"
)

var (
	White = color.RGBA{255, 255, 255, 255}
	Black = color.RGBA{0, 0, 0, 255}
)

// Raster is a software field.Surface backed by an *image.RGBA.
type Raster struct {
	img   *image.RGBA
	scale float64
	tint  color.RGBA
	bg    color.RGBA
}

func New(tint, bg color.RGBA) *Raster {
	return &Raster{
		img:   image.NewRGBA(image.Rectangle{}),
		scale: 1,
		tint:  tint,
		bg:    bg,
	}
}

func (r *Raster) Image() *image.RGBA { return r.img }
func (r *Raster) Scale() float64     { return r.scale }

func (r *Raster) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	r.img = image.NewRGBA(image.Rect(0, 0, width, height))
	r.Clear()
}

func (r *Raster) SetScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	r.scale = scale
}

func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), &image.Uniform{C: r.bg}, image.Point{}, draw.Src)
}

// FillCircle paints an antialiased disc in the tint color.
func (r *Raster) FillCircle(x, y, radius, alpha float64) {
	if alpha <= 0 || radius <= 0 {
		return
	}
	cx, cy, rr := x*r.scale, y*r.scale, radius*r.scale
	x0, x1 := int(math.Floor(cx-rr-1)), int(math.Ceil(cx+rr+1))
	y0, y1 := int(math.Floor(cy-rr-1)), int(math.Ceil(cy+rr+1))
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			d := math.Hypot(float64(px)+0.5-cx, float64(py)+0.5-cy)
			cov := coverage(rr - d)
			if cov > 0 {
				r.blend(px, py, alpha*cov)
			}
		}
	}
}

// StrokeGradient paints a butt-capped line whose alpha follows stops from
// (x0, y0) to (x1, y1).
func (r *Raster) StrokeGradient(x0, y0, x1, y1, width float64, stops []field.Stop) {
	ax, ay := x0*r.scale, y0*r.scale
	bx, by := x1*r.scale, y1*r.scale
	dx, dy := bx-ax, by-ay
	len2 := dx*dx + dy*dy
	if len2 == 0 || width <= 0 {
		return
	}
	length := math.Sqrt(len2)
	half := width * r.scale / 2

	minX := int(math.Floor(math.Min(ax, bx) - half - 1))
	maxX := int(math.Ceil(math.Max(ax, bx) + half + 1))
	minY := int(math.Floor(math.Min(ay, by) - half - 1))
	maxY := int(math.Ceil(math.Max(ay, by) + half + 1))

	b := r.img.Bounds()
	minX, maxX = max(minX, b.Min.X), min(maxX, b.Max.X-1)
	minY, maxY = max(minY, b.Min.Y), min(maxY, b.Max.Y-1)

	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			qx, qy := float64(px)+0.5-ax, float64(py)+0.5-ay
			t := (qx*dx + qy*dy) / len2
			if t < 0 || t > 1 {
				continue
			}
			dist := math.Abs(qx*dy-qy*dx) / length
			cov := coverage(half - dist)
			if cov <= 0 {
				continue
			}
			a := field.GradientAlpha(stops, t) * cov
			if a > 0 {
				r.blend(px, py, a)
			}
		}
	}
}

// blend composites the tint over the pixel at alpha a (source-over).
func (r *Raster) blend(x, y int, a float64) {
	if !(image.Point{X: x, Y: y}).In(r.img.Bounds()) {
		return
	}
	if a > 1 {
		a = 1
	}
	i := r.img.PixOffset(x, y)
	p := r.img.Pix[i : i+4 : i+4]
	inv := 1 - a
	p[0] = uint8(float64(r.tint.R)*a + float64(p[0])*inv + 0.5)
	p[1] = uint8(float64(r.tint.G)*a + float64(p[1])*inv + 0.5)
	p[2] = uint8(float64(r.tint.B)*a + float64(p[2])*inv + 0.5)
	p[3] = uint8(255*a + float64(p[3])*inv + 0.5)
}

// coverage approximates the pixel area inside an edge at signed distance d.
func coverage(d float64) float64 {
	c := d + 0.5
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
