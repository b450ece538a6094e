// Package window hosts the starfield in a desktop window.
package window

import (
	"errors"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/san-kum/starfield/internal/config"
	"github.com/san-kum/starfield/internal/field"
)

var (
	Background = color.RGBA{5, 6, 12, 255}
	StarColor  = color.RGBA{255, 255, 255, 255}
)

// errQuit ends the game loop on Escape or Q.
var errQuit = errors.New("window: quit")

// Game adapts a field.Animator to ebiten's Update/Draw/Layout loop. Layout
// is the resize notification and Update drains the frame queue.
type Game struct {
	field   *field.Field
	anim    *field.Animator
	queue   *field.FrameQueue
	surface *Surface

	width, height int
	scale         float64
	now           func() time.Time
}

func NewGame(cfg *config.Config, rnd field.Random) *Game {
	surf := NewSurface(StarColor, Background)
	f := field.New(surf, rnd, cfg.FieldOptions())
	q := field.NewFrameQueue()
	return &Game{
		field:   f,
		anim:    field.NewAnimator(f, q),
		queue:   q,
		surface: surf,
		scale:   cfg.Field.PixelRatio,
		now:     time.Now,
	}
}

func (g *Game) Field() *field.Field { return g.field }

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.anim.Stop()
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.anim.SetPaused(!g.anim.Paused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.field.SpawnStreak()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.field.SetSpawning(!g.field.Spawning())
	}
	if !g.anim.Running() {
		g.anim.Start()
	}
	g.queue.Fire(g.now())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if img := g.surface.Image(); img != nil {
		screen.DrawImage(img, nil)
	}
}

// Layout reseeds the field whenever the window's logical size changes and
// returns the physical backing size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.field.SetPixelRatio(g.deviceScale())
		g.anim.Resize(float64(outsideWidth), float64(outsideHeight))
		log.Printf("window resize: %dx%d, density %.2f", outsideWidth, outsideHeight, g.field.Density())
	}
	d := g.field.Density()
	return int(math.Floor(float64(outsideWidth) * d)), int(math.Floor(float64(outsideHeight) * d))
}

func (g *Game) deviceScale() float64 {
	if g.scale > 0 {
		return g.scale
	}
	return ebiten.Monitor().DeviceScaleFactor()
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, rnd field.Random) error {
	g := NewGame(cfg, rnd)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.View.FPS)
	err := ebiten.RunGame(g)
	g.anim.Stop()
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}
