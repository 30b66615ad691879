package viz

import "github.com/charmbracelet/lipgloss"

// Theme maps traversal cell states and chrome onto colors.
type Theme struct {
	Name    string
	Active  lipgloss.Color // cell under the cursor
	Visited lipgloss.Color
	Cell    lipgloss.Color // not yet visited
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Accent  lipgloss.Color
	Log     lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
}

var (
	// ThemeSlate is the default indigo-on-slate palette.
	ThemeSlate = Theme{
		Name:    "slate",
		Active:  lipgloss.Color("#6366f1"),
		Visited: lipgloss.Color("#334155"),
		Cell:    lipgloss.Color("#1e293b"),
		Text:    lipgloss.Color("#f8fafc"),
		Muted:   lipgloss.Color("#94a3b8"),
		Border:  lipgloss.Color("#475569"),
		Accent:  lipgloss.Color("#818cf8"),
		Log:     lipgloss.Color("#a5b4fc"),
		Success: lipgloss.Color("#22c55e"),
		Warning: lipgloss.Color("#f59e0b"),
	}

	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Active:  lipgloss.Color("#ff00ff"),
		Visited: lipgloss.Color("#3a0a3a"),
		Cell:    lipgloss.Color("#0a0a0a"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666666"),
		Border:  lipgloss.Color("#00ffff"),
		Accent:  lipgloss.Color("#ffff00"),
		Log:     lipgloss.Color("#00ffff"),
		Success: lipgloss.Color("#00ff00"),
		Warning: lipgloss.Color("#ff8800"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Active:  lipgloss.Color("#00ff00"),
		Visited: lipgloss.Color("#005500"),
		Cell:    lipgloss.Color("#001100"),
		Text:    lipgloss.Color("#88ff88"),
		Muted:   lipgloss.Color("#338833"),
		Border:  lipgloss.Color("#00cc00"),
		Accent:  lipgloss.Color("#88ff88"),
		Log:     lipgloss.Color("#00ff00"),
		Success: lipgloss.Color("#88ff88"),
		Warning: lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Active:  lipgloss.Color("#0088ff"),
		Visited: lipgloss.Color("#444444"),
		Cell:    lipgloss.Color("#111111"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Border:  lipgloss.Color("#cccccc"),
		Accent:  lipgloss.Color("#0088ff"),
		Log:     lipgloss.Color("#cccccc"),
		Success: lipgloss.Color("#00ff00"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Active:  lipgloss.Color("#ffd700"),
		Visited: lipgloss.Color("#0077be"),
		Cell:    lipgloss.Color("#001a33"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Border:  lipgloss.Color("#00a8cc"),
		Accent:  lipgloss.Color("#ffd700"),
		Log:     lipgloss.Color("#00a8cc"),
		Success: lipgloss.Color("#00ff88"),
		Warning: lipgloss.Color("#ffcc00"),
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Active:  lipgloss.Color("#ff6b6b"),
		Visited: lipgloss.Color("#8b6b8c"),
		Cell:    lipgloss.Color("#2d1b2e"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Border:  lipgloss.Color("#feca57"),
		Accent:  lipgloss.Color("#ff9ff3"),
		Log:     lipgloss.Color("#feca57"),
		Success: lipgloss.Color("#5fd068"),
		Warning: lipgloss.Color("#ffc048"),
	}

	Themes = []Theme{
		ThemeSlate,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to slate.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeSlate
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme cycles through Themes.
func NextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
