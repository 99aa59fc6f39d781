// Package theme provides centralized styling for the dashboard.
// Three palettes are available: dark, light and mono.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors defines the color palette for the application
type Colors struct {
	Name string

	// Primary colors
	Primary   lipgloss.Color // Main accent color (selection, active borders)
	Secondary lipgloss.Color // Softer accent (mode labels, help keys)
	Accent    lipgloss.Color // Highlights, search, special items

	// Text colors
	Text      lipgloss.Color // Normal text
	TextDim   lipgloss.Color // Dimmed/secondary text
	TextMuted lipgloss.Color // Very dim text (hints, disabled)

	// Status colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// Background colors
	BgPrimary   lipgloss.Color // Main background
	BgSecondary lipgloss.Color // Secondary background (bars, headers)
	BgHighlight lipgloss.Color // Highlighted items

	// Border colors
	Border       lipgloss.Color // Normal borders
	BorderActive lipgloss.Color // Active/focused borders
}

// Theme contains all styling for the application
type Theme struct {
	Colors Colors

	// Pre-built styles for common elements
	Title        lipgloss.Style
	TitleActive  lipgloss.Style
	Subtitle     lipgloss.Style
	Text         lipgloss.Style
	TextDim      lipgloss.Style
	TextMuted    lipgloss.Style
	Selected     lipgloss.Style
	Match        lipgloss.Style
	StatusBar    lipgloss.Style
	HelpBar      lipgloss.Style
	Breadcrumb   lipgloss.Style
	BorderNormal lipgloss.Style
	BorderActive lipgloss.Style
	FilterInput  lipgloss.Style
	FilterPrompt lipgloss.Style

	// Status styles
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style

	// Icons
	Icons IconSet
}

// IconSet defines the icons used throughout the app
type IconSet struct {
	Success  string
	Error    string
	Info     string
	Pending  string
	Search   string
	Refresh  string
	Selected string
	Bookmark string
}

// DarkColors is the default palette.
func DarkColors() Colors {
	return Colors{
		Name:      "dark",
		Primary:   lipgloss.Color("14"), // cyan
		Secondary: lipgloss.Color("12"), // blue
		Accent:    lipgloss.Color("141"),

		Text:      lipgloss.Color("15"),
		TextDim:   lipgloss.Color("245"),
		TextMuted: lipgloss.Color("8"), // gray

		Success: lipgloss.Color("10"),
		Warning: lipgloss.Color("11"),
		Error:   lipgloss.Color("9"),

		BgPrimary:   lipgloss.Color(""),
		BgSecondary: lipgloss.Color("#20232a"),
		BgHighlight: lipgloss.Color("#2b2f38"),

		Border:       lipgloss.Color("#2b2f38"),
		BorderActive: lipgloss.Color("14"),
	}
}

func LightColors() Colors {
	return Colors{
		Name:      "light",
		Primary:   lipgloss.Color("4"), // blue
		Secondary: lipgloss.Color("#88b7ff"),
		Accent:    lipgloss.Color("5"),

		Text:      lipgloss.Color("0"),
		TextDim:   lipgloss.Color("240"),
		TextMuted: lipgloss.Color("8"),

		Success: lipgloss.Color("2"),
		Warning: lipgloss.Color("#b58900"),
		Error:   lipgloss.Color("1"),

		BgPrimary:   lipgloss.Color(""),
		BgSecondary: lipgloss.Color("#f0f4ff"),
		BgHighlight: lipgloss.Color("#e6ecff"),

		Border:       lipgloss.Color("#e6ecff"),
		BorderActive: lipgloss.Color("4"),
	}
}

// MonoColors renders every status in the same color.
func MonoColors() Colors {
	return Colors{
		Name:      "mono",
		Primary:   lipgloss.Color("15"),
		Secondary: lipgloss.Color("#bbbbbb"),
		Accent:    lipgloss.Color("15"),

		Text:      lipgloss.Color("15"),
		TextDim:   lipgloss.Color("#bbbbbb"),
		TextMuted: lipgloss.Color("8"),

		Success: lipgloss.Color("15"),
		Warning: lipgloss.Color("15"),
		Error:   lipgloss.Color("15"),

		BgPrimary:   lipgloss.Color(""),
		BgSecondary: lipgloss.Color("#1c1c1c"),
		BgHighlight: lipgloss.Color("#262626"),

		Border:       lipgloss.Color("#262626"),
		BorderActive: lipgloss.Color("15"),
	}
}

// DefaultIcons returns the default icon set
func DefaultIcons() IconSet {
	return IconSet{
		Success:  "✓",
		Error:    "✗",
		Info:     "•",
		Pending:  "○",
		Search:   "🔍",
		Refresh:  "↻",
		Selected: "▸",
		Bookmark: "★",
	}
}

// Default returns the dark theme
func Default() *Theme {
	return New(DarkColors())
}

// ForName returns the theme for dark, light or mono. Unknown names get the
// dark theme.
func ForName(name string) *Theme {
	switch strings.ToLower(name) {
	case "light":
		return New(LightColors())
	case "mono":
		return New(MonoColors())
	default:
		return Default()
	}
}

// New builds every style from a palette.
func New(colors Colors) *Theme {
	return &Theme{
		Colors: colors,
		Icons:  DefaultIcons(),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Primary),

		TitleActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.BgSecondary).
			Background(colors.Primary).
			Padding(0, 1),

		Subtitle: lipgloss.NewStyle().
			Foreground(colors.Secondary),

		Text: lipgloss.NewStyle().
			Foreground(colors.Text),

		TextDim: lipgloss.NewStyle().
			Foreground(colors.TextDim),

		TextMuted: lipgloss.NewStyle().
			Foreground(colors.TextMuted),

		Selected: lipgloss.NewStyle().
			Foreground(colors.Primary).
			Bold(true),

		Match: lipgloss.NewStyle().
			Foreground(colors.Accent).
			Underline(true),

		StatusBar: lipgloss.NewStyle().
			Background(colors.BgSecondary).
			Foreground(colors.TextDim).
			Padding(0, 1),

		HelpBar: lipgloss.NewStyle().
			Background(colors.BgSecondary).
			Foreground(colors.TextMuted).
			Padding(0, 1),

		Breadcrumb: lipgloss.NewStyle().
			Background(colors.BgSecondary).
			Foreground(colors.Accent).
			Padding(0, 1),

		BorderNormal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Border),

		BorderActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.BorderActive),

		FilterInput: lipgloss.NewStyle().
			Foreground(colors.Text).
			Background(colors.BgHighlight).
			Padding(0, 1),

		FilterPrompt: lipgloss.NewStyle().
			Foreground(colors.Accent).
			Bold(true),

		StatusSuccess: lipgloss.NewStyle().
			Foreground(colors.Success),

		StatusWarning: lipgloss.NewStyle().
			Foreground(colors.Warning),

		StatusError: lipgloss.NewStyle().
			Foreground(colors.Error),

		StatusInfo: lipgloss.NewStyle().
			Foreground(colors.Secondary),
	}
}

// PipelineStatus colors a pipeline status: running is success, paused is a
// warning, anything else is muted.
func (t *Theme) PipelineStatus(status string) lipgloss.Style {
	switch status {
	case "running":
		return t.StatusSuccess
	case "paused":
		return t.StatusWarning
	default:
		return t.TextMuted
	}
}

// ActivityStatus returns the icon and style for an activity status.
func (t *Theme) ActivityStatus(status string) (string, lipgloss.Style) {
	switch status {
	case "success":
		return t.Icons.Success, t.StatusSuccess
	case "error":
		return t.Icons.Error, t.StatusError
	case "pending":
		return t.Icons.Pending, t.StatusWarning
	default:
		return t.Icons.Info, t.StatusInfo
	}
}

// ItemPrefix returns the cursor prefix for an item
func (t *Theme) ItemPrefix(selected bool) string {
	if selected {
		return t.Icons.Selected + " "
	}
	return "  "
}

// Divider returns a horizontal divider line
func (t *Theme) Divider(width int) string {
	if width <= 0 {
		return ""
	}
	return t.TextMuted.Render(strings.Repeat("─", width))
}
