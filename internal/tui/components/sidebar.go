package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/indexingco/indexingco-cli/internal/tui/state"
	"github.com/indexingco/indexingco-cli/internal/tui/theme"
)

// Sidebar lists the four tabs with their item counts.
type Sidebar struct {
	width   int
	height  int
	focused bool
	theme   *theme.Theme
}

func NewSidebar(t *theme.Theme) Sidebar {
	return Sidebar{theme: t}
}

func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

func (s *Sidebar) SetTheme(t *theme.Theme) {
	s.theme = t
}

func (s *Sidebar) View(active state.Tab, counts [state.TabCount]int) string {
	var b strings.Builder

	b.WriteString(s.theme.Title.Render("Resources"))
	b.WriteString("\n\n")

	for _, tab := range state.Tabs {
		selected := tab == active
		line := s.theme.ItemPrefix(selected) + tab.Label()
		count := fmt.Sprintf("%d", counts[tab])
		gap := max(1, s.width-4-lipgloss.Width(line)-len(count))
		line += strings.Repeat(" ", gap)

		if selected {
			b.WriteString(s.theme.Selected.Render(line) + s.theme.Selected.Render(count))
		} else {
			b.WriteString(s.theme.Text.Render(line) + s.theme.TextMuted.Render(count))
		}
		b.WriteString("\n")
	}

	border := s.theme.BorderNormal
	if s.focused {
		border = s.theme.BorderActive
	}
	return border.
		Width(max(0, s.width-2)).
		Height(max(0, s.height-2)).
		Padding(0, 1).
		Render(b.String())
}
