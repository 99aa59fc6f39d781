package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/indexingco/indexingco-cli/internal/tui/theme"
)

type KeySection struct {
	Title    string
	Bindings []key.Binding
}

// HelpOverlay lists key bindings grouped by section, centered on screen.
type HelpOverlay struct {
	sections []KeySection
	width    int
	height   int
	theme    *theme.Theme
}

func NewHelpOverlay(t *theme.Theme, sections []KeySection) HelpOverlay {
	return HelpOverlay{
		theme:    t,
		sections: sections,
	}
}

func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

func (h *HelpOverlay) SetTheme(t *theme.Theme) {
	h.theme = t
}

func (h *HelpOverlay) View() string {
	overlayWidth := max(60, h.width*70/100)

	keyStyle := h.theme.Subtitle
	descStyle := h.theme.Text
	sectionStyle := h.theme.Title

	var lines []string
	for _, section := range h.sections {
		lines = append(lines, sectionStyle.Render(section.Title))
		for _, binding := range section.Bindings {
			help := binding.Help()
			lines = append(lines, "  "+keyStyle.Render(padRight(help.Key, 20))+descStyle.Render(help.Desc))
		}
		lines = append(lines, "")
	}

	// title, footer, padding and borders take 8 rows
	maxVisible := max(5, h.height-8)
	if len(lines) > maxVisible {
		lines = lines[:maxVisible]
	}

	var b strings.Builder
	title := h.theme.TitleActive.Render(" Keybindings ")
	b.WriteString(lipgloss.PlaceHorizontal(overlayWidth-4, lipgloss.Center, title))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")
	b.WriteString(h.theme.TextMuted.Render("Press esc to close"))

	overlayContent := lipgloss.NewStyle().
		Width(overlayWidth - 4).
		Padding(1, 2).
		Render(b.String())

	overlayBox := h.theme.BorderActive.
		Width(overlayWidth).
		Render(overlayContent)

	return lipgloss.Place(
		h.width,
		h.height,
		lipgloss.Center,
		lipgloss.Center,
		overlayBox,
	)
}

func padRight(s string, width int) string {
	if lipgloss.Width(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}
