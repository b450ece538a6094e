package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/starfield/internal/field"
)

func TestCanvas_Resize(t *testing.T) {
	c := NewCanvas(0, 0, 0.3)
	c.Resize(41, 17)

	if c.Width != 21 || c.Height != 5 {
		t.Errorf("expected 21x5 cells, got %dx%d", c.Width, c.Height)
	}
	c.Resize(-4, 0)
	if c.Width != 0 || c.Height != 0 {
		t.Errorf("expected empty canvas, got %dx%d", c.Width, c.Height)
	}
}

func TestCanvas_SetClear(t *testing.T) {
	c := NewCanvas(2, 2, 0.3)
	c.Set(3, 5)

	if !c.Lit(3, 5) {
		t.Fatal("dot not lit")
	}
	if c.Grid[1][1] != blank|0x10 {
		t.Errorf("unexpected cell rune %U", c.Grid[1][1])
	}
	c.Clear()
	if c.Lit(3, 5) || c.Grid[1][1] != blank {
		t.Error("dot not cleared")
	}
	c.Set(-1, 0)
	c.Set(100, 100)
}

func TestCanvas_Threshold(t *testing.T) {
	c := NewCanvas(4, 4, 0.35)
	c.FillCircle(2, 2, 0.3, 0.2)
	if c.Lit(2, 2) {
		t.Error("dim star lit a dot")
	}

	c.FillCircle(2, 2, 0.3, 0.5)
	if !c.Lit(2, 2) {
		t.Error("bright star did not light a dot")
	}
	if c.Level[0][1] != 0.5 {
		t.Errorf("expected level 0.5, got %f", c.Level[0][1])
	}
}

func TestCanvas_LargeCircle(t *testing.T) {
	c := NewCanvas(4, 4, 0.1)
	c.FillCircle(4, 8, 2, 1)

	for _, p := range [][2]int{{4, 8}, {3, 8}, {5, 8}, {4, 7}, {4, 9}} {
		if !c.Lit(p[0], p[1]) {
			t.Errorf("dot %v not lit", p)
		}
	}
	if c.Lit(0, 0) {
		t.Error("dot outside circle lit")
	}
}

func TestCanvas_StrokeGradient(t *testing.T) {
	c := NewCanvas(2, 8, 0.35)
	stops := []field.Stop{{Offset: 0, Alpha: 0.8}, {Offset: 0.55, Alpha: 0.44}, {Offset: 1, Alpha: 0}}
	c.StrokeGradient(1, 0, 1, 30, 1, stops)

	if !c.Lit(1, 0) {
		t.Error("streak head not lit")
	}
	if c.Lit(1, 30) {
		t.Error("transparent tail lit")
	}
	if c.Level[0][0] <= c.Level[3][0] {
		t.Errorf("expected head brighter than body: %f <= %f", c.Level[0][0], c.Level[3][0])
	}
}

func TestCanvas_Render(t *testing.T) {
	c := NewCanvas(3, 1, 0.1)
	c.Set(0, 0)
	out := c.Render(ThemeNight, Overlay{Col: 2, Row: 0, Glyph: '•'})

	if !strings.Contains(out, "•") {
		t.Error("overlay glyph missing")
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected one row, got %q", out)
	}
	if !strings.ContainsRune(c.String(), rune(blank|0x1)) {
		t.Error("plain string missing lit cell")
	}
}

func TestLevelBand(t *testing.T) {
	tests := []struct {
		level    float64
		expected int
	}{
		{0.3, 0},
		{0.5, 1},
		{0.7, 2},
		{0.95, 3},
	}

	for _, tt := range tests {
		if got := levelBand(tt.level); got != tt.expected {
			t.Errorf("levelBand(%v) = %d, want %d", tt.level, got, tt.expected)
		}
	}
}
