package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var canvasStyle = lipgloss.NewStyle().Padding(0, 1)

func panelStyle(th Theme) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(th.Muted).
		Padding(0, 2).
		Width(panelWidth)
}

func labelStyle(th Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(th.Muted).Width(10)
}

func valueStyle(th Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(th.Text).Bold(true)
}

func hintStyle(th Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(th.Muted).Italic(true)
}

// GradientText renders text with each rune colored along a Lab-space blend
// from start to end.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	colors := gradient(start, end, len(runes))

	var sb strings.Builder
	for i, r := range runes {
		sb.WriteString(lipgloss.NewStyle().Foreground(colors[i]).Render(string(r)))
	}
	return sb.String()
}

// gradient returns n colors blended from start to end. Colors that do not
// parse as hex fall back to white.
func gradient(start, end lipgloss.Color, n int) []lipgloss.Color {
	from, to := hexOrWhite(start), hexOrWhite(end)
	out := make([]lipgloss.Color, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = lipgloss.Color(from.BlendLab(to, t).Clamped().Hex())
	}
	return out
}

// Decorative separator
func Separator(width int, th Theme) string {
	if width < 8 {
		width = 8
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return lipgloss.NewStyle().Foreground(th.Muted).Render(left + " ✦ " + right)
}

func hexOrWhite(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return col
}
