package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/indexingco/indexingco-cli/internal/tui/theme"
)

// Spinner marks a refresh in progress in the header. It only animates
// between Start and Stop; ticks arriving outside that window are dropped so
// the animation does not keep the program busy while idle.
type Spinner struct {
	model      spinner.Model
	refreshing bool
	label      string
	labelStyle lipgloss.Style
}

func NewSpinner(t *theme.Theme) Spinner {
	s := Spinner{model: spinner.New(spinner.WithSpinner(spinner.MiniDot))}
	s.SetTheme(t)
	return s
}

// Start begins a refresh labelled label. It returns the first tick, or nil
// when a refresh is already showing, in which case only the label changes.
func (s *Spinner) Start(label string) tea.Cmd {
	s.label = label
	if s.refreshing {
		return nil
	}
	s.refreshing = true
	return s.model.Tick
}

func (s *Spinner) Stop() {
	s.refreshing = false
	s.label = ""
}

func (s *Spinner) IsActive() bool { return s.refreshing }

func (s *Spinner) SetTheme(t *theme.Theme) {
	s.model.Style = lipgloss.NewStyle().Foreground(t.Colors.Primary).Bold(true)
	s.labelStyle = t.TextDim
}

// Update advances the animation on its own tick messages.
func (s *Spinner) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(spinner.TickMsg); !ok || !s.refreshing {
		return nil
	}
	var cmd tea.Cmd
	s.model, cmd = s.model.Update(msg)
	return cmd
}

func (s *Spinner) View() string {
	if !s.refreshing {
		return ""
	}
	return s.model.View() + " " + s.labelStyle.Render(s.label)
}
