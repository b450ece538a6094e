package viz

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	StarDim    lipgloss.Color
	Star       lipgloss.Color
	StarBright lipgloss.Color
	Streak     lipgloss.Color
	Accent     lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Cursor     lipgloss.Color
}

// Available themes
var (
	ThemeNight = Theme{
		Name:       "night",
		StarDim:    lipgloss.Color("#4a4f66"),
		Star:       lipgloss.Color("#9aa3c7"),
		StarBright: lipgloss.Color("#e6ecff"),
		Streak:     lipgloss.Color("#ffffff"),
		Accent:     lipgloss.Color("#7aa2f7"),
		Text:       lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Cursor:     lipgloss.Color("#ff9e64"),
	}

	ThemeAurora = Theme{
		Name:       "aurora",
		StarDim:    lipgloss.Color("#1f4d3f"),
		Star:       lipgloss.Color("#3fbf8f"),
		StarBright: lipgloss.Color("#8fffd0"),
		Streak:     lipgloss.Color("#d0fff0"),
		Accent:     lipgloss.Color("#b388ff"),
		Text:       lipgloss.Color("#e0fff4"),
		Muted:      lipgloss.Color("#4a7a6a"),
		Cursor:     lipgloss.Color("#ff79c6"),
	}

	ThemeEmber = Theme{
		Name:       "ember",
		StarDim:    lipgloss.Color("#4d2a1a"),
		Star:       lipgloss.Color("#c76b3a"),
		StarBright: lipgloss.Color("#ffb070"),
		Streak:     lipgloss.Color("#fff0d0"),
		Accent:     lipgloss.Color("#ff6b6b"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b5c"),
		Cursor:     lipgloss.Color("#feca57"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		StarDim:    lipgloss.Color("#005500"), // Green phosphor
		Star:       lipgloss.Color("#00cc00"),
		StarBright: lipgloss.Color("#00ff00"),
		Streak:     lipgloss.Color("#88ff88"),
		Accent:     lipgloss.Color("#88ff88"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Cursor:     lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		StarDim:    lipgloss.Color("#555555"),
		Star:       lipgloss.Color("#999999"),
		StarBright: lipgloss.Color("#dddddd"),
		Streak:     lipgloss.Color("#ffffff"),
		Accent:     lipgloss.Color("#0088ff"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Cursor:     lipgloss.Color("#0088ff"),
	}
)

var themes = []Theme{ThemeNight, ThemeAurora, ThemeEmber, ThemeRetroGreen, ThemeMinimal}

// CurrentTheme is the active theme
var CurrentTheme = ThemeNight

// ThemeNames returns theme names in cycling order
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

func LookupTheme(name string) (Theme, error) {
	for _, t := range themes {
		if t.Name == name {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("%w: %s (available: %v)", ErrUnknownTheme, name, ThemeNames())
}

// SetTheme changes the active theme by name
func SetTheme(name string) error {
	t, err := LookupTheme(name)
	if err != nil {
		return err
	}
	CurrentTheme = t
	return nil
}

// NextTheme returns the theme after name in cycling order.
func NextTheme(name string) Theme {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}
