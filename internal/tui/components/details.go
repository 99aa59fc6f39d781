package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/indexingco/indexingco-cli/internal/jsonview"
	"github.com/indexingco/indexingco-cli/internal/tui/state"
	"github.com/indexingco/indexingco-cli/internal/tui/theme"
)

// MaxDetailLines caps the JSON shown for one item.
const MaxDetailLines = 200

// Details shows the selected item's payload as highlighted JSON, either as
// a split pane beside the table or as a modal replacing it.
type Details struct {
	width   int
	height  int
	focused bool
	theme   *theme.Theme
}

func NewDetails(t *theme.Theme) Details {
	return Details{theme: t}
}

func (d *Details) SetSize(width, height int) {
	d.width = width
	d.height = height
}

func (d *Details) SetFocused(focused bool) {
	d.focused = focused
}

func (d *Details) SetTheme(t *theme.Theme) {
	d.theme = t
}

// Body returns the formatted payload of item, without highlighting.
func Body(item state.Item) string {
	if item == nil {
		return "Nothing selected"
	}
	text, err := jsonview.Pretty(item.Document())
	if err != nil {
		return err.Error()
	}
	return jsonview.Truncate(text, MaxDetailLines)
}

func (d *Details) View(title string, item state.Item, modal bool) string {
	var b strings.Builder

	titleStyle := d.theme.Title
	if d.focused || modal {
		titleStyle = d.theme.TitleActive
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(d.theme.Divider(max(0, d.width-4)))
	b.WriteString("\n")

	body := Body(item)
	if item == nil {
		b.WriteString(d.theme.TextMuted.Render(body))
	} else {
		body = jsonview.Highlight(body, jsonview.StyleFor(d.theme.Colors.Name))
		// keep the pane inside its box
		lines := strings.Split(body, "\n")
		if room := d.height - 5; room > 0 && len(lines) > room {
			lines = lines[:room]
		}
		b.WriteString(strings.Join(lines, "\n"))
	}

	if modal {
		b.WriteString("\n")
		b.WriteString(d.theme.TextMuted.Render("[esc] close"))
	}

	border := d.theme.BorderNormal
	if d.focused || modal {
		border = d.theme.BorderActive
	}
	return border.
		Width(max(0, d.width-2)).
		Height(max(0, d.height-2)).
		MaxHeight(max(0, d.height)).
		Render(lipgloss.NewStyle().Padding(0, 1).Render(b.String()))
}
