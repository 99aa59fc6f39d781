package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

var errInterrupted = errors.New("interrupted")

type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
	err     error
}

type spinnerDoneMsg struct {
	err error
}

func newSpinnerModel(message string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return spinnerModel{
		spinner: s,
		message: message,
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.err = errInterrupted
			return m, tea.Quit
		}
		return m, nil

	case spinnerDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m spinnerModel) View() string {
	if m.done {
		return resultLine(m.message, m.err) + "\n"
	}
	return fmt.Sprintf("%s %s\n", m.spinner.View(), messageStyle.Render(m.message))
}

func resultLine(message string, err error) string {
	if err != nil {
		return errorStyle.Render("✗ " + message + " failed: " + err.Error())
	}
	return successStyle.Render("✓ " + message)
}

// RunWithSpinner runs fn while a spinner is shown on stderr, so stdout stays
// clean for JSON output. Without a terminal it prints plain progress lines.
func RunWithSpinner[T any](ctx context.Context, message string, fn func(context.Context) (T, error)) (T, error) {
	if !isTTY(os.Stderr.Fd()) {
		return runPlain(ctx, os.Stderr, message, fn)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var result T
	p := tea.NewProgram(newSpinnerModel(message), tea.WithOutput(os.Stderr))

	go func() {
		var err error
		result, err = fn(ctx)
		p.Send(spinnerDoneMsg{err: err})
	}()

	final, err := p.Run()
	if err != nil {
		var zero T
		return zero, err
	}
	sm, ok := final.(spinnerModel)
	if !ok {
		var zero T
		return zero, fmt.Errorf("unexpected model type %T", final)
	}
	if sm.err != nil {
		var zero T
		return zero, sm.err
	}
	return result, nil
}

func runPlain[T any](ctx context.Context, w io.Writer, message string, fn func(context.Context) (T, error)) (T, error) {
	fmt.Fprintln(w, messageStyle.Render(message+"..."))
	result, err := fn(ctx)
	fmt.Fprintln(w, resultLine(message, err))
	return result, err
}
