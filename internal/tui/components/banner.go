package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/indexingco/indexingco-cli/internal/tui/state"
	"github.com/indexingco/indexingco-cli/internal/tui/theme"
)

// Banner renders the transient info/error message under the header.
type Banner struct {
	width int
	theme *theme.Theme
}

func NewBanner(t *theme.Theme) Banner {
	return Banner{theme: t}
}

func (b *Banner) SetWidth(width int) {
	b.width = width
}

func (b *Banner) SetTheme(t *theme.Theme) {
	b.theme = t
}

// View returns "" when there is no message.
func (b *Banner) View(msg *state.Message) string {
	if msg == nil || msg.Text == "" {
		return ""
	}

	style := b.theme.StatusInfo
	icon := b.theme.Icons.Info
	if msg.Kind == state.MessageError {
		style = b.theme.StatusError
		icon = b.theme.Icons.Error
	}

	return lipgloss.NewStyle().
		Foreground(style.GetForeground()).
		Bold(true).
		Padding(0, 1).
		Width(b.width).
		Render(icon + " " + msg.Text)
}
