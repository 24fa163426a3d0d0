package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme of the viewer chrome. The recording itself
// keeps its own colors.
type Theme struct {
	Name     string
	Border   lipgloss.Color
	Title    lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Playing  lipgloss.Color
	Paused   lipgloss.Color
	Finished lipgloss.Color
	Error    lipgloss.Color

	// ScreenFG and ScreenBG are used when a screen is exported as an image.
	ScreenFG string
	ScreenBG string
}

var (
	ThemeCyberpunk = Theme{
		Name:     "cyberpunk",
		Border:   lipgloss.Color("#ff00ff"),
		Title:    lipgloss.Color("#00ffff"),
		Accent:   lipgloss.Color("#ffff00"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666666"),
		Playing:  lipgloss.Color("#00ff00"),
		Paused:   lipgloss.Color("#ff8800"),
		Finished: lipgloss.Color("#00ffff"),
		Error:    lipgloss.Color("#ff0000"),
		ScreenFG: "#00ffff",
		ScreenBG: "#0a0a0a",
	}
	ThemeRetroGreen = Theme{
		Name:     "retro",
		Border:   lipgloss.Color("#00cc00"),
		Title:    lipgloss.Color("#00ff00"),
		Accent:   lipgloss.Color("#88ff88"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Playing:  lipgloss.Color("#88ff88"),
		Paused:   lipgloss.Color("#ffff00"),
		Finished: lipgloss.Color("#00cc00"),
		Error:    lipgloss.Color("#ff0000"),
		ScreenFG: "#00ff00",
		ScreenBG: "#001100",
	}
	ThemeMinimal = Theme{
		Name:     "minimal",
		Border:   lipgloss.Color("#888888"),
		Title:    lipgloss.Color("#ffffff"),
		Accent:   lipgloss.Color("#0088ff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#888888"),
		Playing:  lipgloss.Color("#00ff00"),
		Paused:   lipgloss.Color("#ffaa00"),
		Finished: lipgloss.Color("#0088ff"),
		Error:    lipgloss.Color("#ff0000"),
		ScreenFG: "#ffffff",
		ScreenBG: "#000000",
	}
	ThemeOcean = Theme{
		Name:     "ocean",
		Border:   lipgloss.Color("#0077be"),
		Title:    lipgloss.Color("#00a8cc"),
		Accent:   lipgloss.Color("#ffd700"),
		Text:     lipgloss.Color("#e0f0ff"),
		Muted:    lipgloss.Color("#4488aa"),
		Playing:  lipgloss.Color("#00ff88"),
		Paused:   lipgloss.Color("#ffcc00"),
		Finished: lipgloss.Color("#00a8cc"),
		Error:    lipgloss.Color("#ff4444"),
		ScreenFG: "#e0f0ff",
		ScreenBG: "#001a33",
	}
	ThemeSunset = Theme{
		Name:     "sunset",
		Border:   lipgloss.Color("#ff6b6b"),
		Title:    lipgloss.Color("#feca57"),
		Accent:   lipgloss.Color("#ff9ff3"),
		Text:     lipgloss.Color("#fff5f5"),
		Muted:    lipgloss.Color("#8b6b8c"),
		Playing:  lipgloss.Color("#5fd068"),
		Paused:   lipgloss.Color("#ffc048"),
		Finished: lipgloss.Color("#feca57"),
		Error:    lipgloss.Color("#ff4757"),
		ScreenFG: "#fff5f5",
		ScreenBG: "#2d1b2e",
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns the named theme, or minimal when the name is unknown.
func GetTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return ThemeMinimal, false
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// nextTheme returns the theme after t in Themes, wrapping around.
func nextTheme(t Theme) Theme {
	for i, other := range Themes {
		if other.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
