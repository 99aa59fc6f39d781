package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/indexingco/indexingco-cli/internal/tui/state"
	"github.com/indexingco/indexingco-cli/internal/tui/theme"
)

// HeaderInfo is everything the header shows.
type HeaderInfo struct {
	ActiveTab   state.Tab
	Environment string
	APIKey      string // already masked
	Countdown   int
	Interval    int
	LogLevel    string
	LastUpdated time.Time
	Counts      [state.TabCount]int
	Activity    string // spinner view, may be empty
}

// Header is the two-line bar at the top of the dashboard.
type Header struct {
	width int
	info  HeaderInfo
	now   func() time.Time
	theme *theme.Theme
}

func NewHeader(t *theme.Theme) Header {
	return Header{theme: t, now: time.Now}
}

func (h *Header) SetWidth(width int) {
	h.width = width
}

func (h *Header) SetTheme(t *theme.Theme) {
	h.theme = t
}

func (h *Header) SetInfo(info HeaderInfo) {
	h.info = info
}

// LastUpdatedText renders a timestamp as "never", "just now" or a
// humanized relative time.
func LastUpdatedText(ts, now time.Time) string {
	if ts.IsZero() {
		return "never"
	}
	if now.Sub(ts) < 5*time.Second {
		return "just now"
	}
	return humanize.RelTime(ts, now, "ago", "from now")
}

func (h *Header) View() string {
	t := h.theme
	sep := t.TextMuted.Render(" · ")

	left := t.Title.Render("Indexingco") + sep +
		t.Text.Render(h.info.Environment) + sep +
		t.TextMuted.Render("Mode: ") + t.Subtitle.Render(strings.ToUpper(h.info.ActiveTab.String()))

	right := t.TextMuted.Render("Refresh ") +
		t.Title.Render(fmt.Sprintf("%ds", h.info.Countdown)) +
		t.TextMuted.Render(fmt.Sprintf(" / %ds", h.info.Interval)) +
		t.TextMuted.Render(" · Log ") + t.Subtitle.Render(strings.ToUpper(h.info.LogLevel)) +
		t.TextMuted.Render(" · API ") + t.Text.Render(h.info.APIKey)

	updated := t.TextMuted.Render("Last updated ") + t.Text.Render(LastUpdatedText(h.info.LastUpdated, h.now()))
	if h.info.Activity != "" {
		updated += "  " + h.info.Activity
	}

	var counts []string
	for _, tab := range state.Tabs {
		label := t.TextMuted
		if tab == h.info.ActiveTab {
			label = t.Title
		}
		counts = append(counts, label.Render(tab.Label())+t.TextMuted.Render(": ")+t.Text.Render(fmt.Sprint(h.info.Counts[tab])))
	}

	inner := max(0, h.width-4)
	content := spread(left, right, inner) + "\n" + spread(updated, strings.Join(counts, "  "), inner)

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(t.Colors.BorderActive).
		Padding(0, 1).
		Width(max(0, h.width-2)).
		Render(content)
}

// spread places left and right on one line of the given width.
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left + " " + right
	}
	return left + strings.Repeat(" ", gap) + right
}

// Footer shows the input mode, focus, tab and key hints.
type Footer struct {
	width int
	mode  state.Mode
	focus state.Focus
	tab   state.Tab
	hints []string
	theme *theme.Theme
}

func NewFooter(t *theme.Theme) Footer {
	return Footer{theme: t, hints: GlobalHints()}
}

func (f *Footer) SetWidth(width int) {
	f.width = width
}

func (f *Footer) SetTheme(t *theme.Theme) {
	f.theme = t
}

func (f *Footer) SetStatus(mode state.Mode, focus state.Focus, tab state.Tab) {
	f.mode = mode
	f.focus = focus
	f.tab = tab
}

func (f *Footer) View() string {
	t := f.theme
	left := t.TextMuted.Render("Mode ") + t.Title.Render(f.mode.String()) +
		t.TextMuted.Render(" · Focus ") + t.Title.Render(strings.ToUpper(f.focus.String())) +
		t.TextMuted.Render(" · Tab ") + t.Title.Render(strings.ToUpper(f.tab.String()))
	right := t.TextMuted.Render(strings.Join(f.hints, "  "))

	return t.HelpBar.
		Width(f.width).
		Render(spread(left, right, max(0, f.width-2)))
}

// GlobalHints returns the footer keybinding hints
func GlobalHints() []string {
	return []string{
		"hjkl navigate",
		"gg/G jump",
		"/ search",
		": command",
		"r refresh",
		"? help",
	}
}
