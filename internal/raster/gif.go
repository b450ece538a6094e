package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
)

// Recorder collects frames for an animated GIF.
type Recorder struct {
	palette color.Palette
	frames  []*image.Paletted
	delay   int
}

// NewRecorder builds a 256-level palette ramping from bg to tint.
func NewRecorder(tint, bg color.RGBA, fps int) *Recorder {
	if fps <= 0 {
		fps = 30
	}
	pal := make(color.Palette, 256)
	for i := range pal {
		k := float64(i) / 255
		pal[i] = color.RGBA{
			R: lerp8(bg.R, tint.R, k),
			G: lerp8(bg.G, tint.G, k),
			B: lerp8(bg.B, tint.B, k),
			A: 255,
		}
	}
	delay := 100 / fps
	if delay < 2 {
		delay = 2
	}
	return &Recorder{palette: pal, delay: delay}
}

func (rec *Recorder) Len() int { return len(rec.frames) }

// Capture snapshots img as the next frame.
func (rec *Recorder) Capture(img image.Image) {
	b := img.Bounds()
	pm := image.NewPaletted(b, rec.palette)
	draw.Draw(pm, b, img, b.Min, draw.Src)
	rec.frames = append(rec.frames, pm)
}

func (rec *Recorder) Encode(w io.Writer) error {
	if len(rec.frames) == 0 {
		return ErrNoFrames
	}
	anim := &gif.GIF{
		Image: rec.frames,
		Delay: make([]int, len(rec.frames)),
	}
	for i := range anim.Delay {
		anim.Delay[i] = rec.delay
	}
	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}

func lerp8(a, b uint8, k float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*k + 0.5)
}
