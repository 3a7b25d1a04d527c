// Package ui provides the interactive aptitude test and the terminal
// renderings of identity cards and emblems.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Sect palette.
var (
	// Light Mode Colors
	LightBackground = lipgloss.Color("#faf5ef") // rice paper
	LightForeground = lipgloss.Color("#1c1917")
	LightPrimary    = lipgloss.Color("#991B1B") // crimson
	LightAccent     = lipgloss.Color("#B45309")
	LightMuted      = lipgloss.Color("#78716c")
	LightBorder     = lipgloss.Color("#d6d3d1")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#0c0a09")
	DarkForeground = lipgloss.Color("#f5f5f4")
	DarkPrimary    = lipgloss.Color("#F87171")
	DarkAccent     = lipgloss.Color("#FBBF24") // gold leaf
	DarkMuted      = lipgloss.Color("#a8a29e")
	DarkBorder     = lipgloss.Color("#44403c")

	// Semantic Colors (same in both modes)
	Success = lipgloss.Color("#22C55E")
	Warning = lipgloss.Color("#FBBF24")
	Error   = lipgloss.Color("#EF4444")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// DetectTheme guesses the terminal background. Defaults to dark.
func DetectTheme() Theme {
	// Format is usually "foreground;background"
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
			if bgIdx == 7 || bgIdx >= 9 {
				return LightTheme()
			}
			return DarkTheme()
		}
	}
	if os.Getenv("LINGGEN_LIGHT_MODE") == "1" {
		return LightTheme()
	}
	return DarkTheme()
}

// ThemeFor resolves a configured theme name: "dark", "light" or "auto".
func ThemeFor(name string) Theme {
	switch strings.ToLower(name) {
	case "dark":
		return DarkTheme()
	case "light":
		return LightTheme()
	default:
		return DetectTheme()
	}
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	Header lipgloss.Style
	Footer lipgloss.Style

	Title lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
	Muted lipgloss.Style
	Lore  lipgloss.Style

	Serial  lipgloss.Style
	Spinner lipgloss.Style
	Status  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Badge   lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Width(6),

		Value: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Lore: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Italic(true).
			Width(36),

		Serial: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Status: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Padding(0, 2),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true).
			Padding(0, 2),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Padding(0, 2),

		Error: lipgloss.NewStyle().
			Foreground(Error).
			Bold(true),

		Badge: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
	}
}
