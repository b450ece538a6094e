package cursor

import (
	"math"
	"testing"
)

func TestNew_Centered(t *testing.T) {
	c := New(200, 100, 0)

	if c.Dot != (Point{100, 50}) || c.Ring != (Point{100, 50}) {
		t.Errorf("expected centered cursor, got dot=%v ring=%v", c.Dot, c.Ring)
	}
	if c.Ease() != DefaultEase {
		t.Errorf("expected default ease, got %f", c.Ease())
	}
}

func TestStep_Eases(t *testing.T) {
	c := New(0, 0, 0.5)
	c.Move(10, 0)

	c.Step()
	if c.Ring.X != 5 {
		t.Errorf("expected ring at 5, got %f", c.Ring.X)
	}
	if c.Dot.X != 10 {
		t.Errorf("dot should not lag, got %f", c.Dot.X)
	}
}

func TestStep_Converges(t *testing.T) {
	c := New(0, 0, DefaultEase)
	c.Move(300, -120)

	prev := c.Lag()
	for i := 0; i < 200; i++ {
		c.Step()
		if c.Lag() > prev {
			t.Fatalf("lag grew at frame %d", i)
		}
		prev = c.Lag()
	}
	if math.Abs(c.Ring.X-300) > 1e-6 || math.Abs(c.Ring.Y+120) > 1e-6 {
		t.Errorf("ring did not converge: %v", c.Ring)
	}
}
