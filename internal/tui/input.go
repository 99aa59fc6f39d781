package tui

import (
	"regexp"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/indexingco/indexingco-cli/internal/tui/command"
	"github.com/indexingco/indexingco-cli/internal/tui/components"
	"github.com/indexingco/indexingco-cli/internal/tui/state"
	"github.com/indexingco/indexingco-cli/internal/tui/workflow"
)

var markKey = regexp.MustCompile(`(?i)^[a-z0-9]$`)

// handleKey maps one keystroke to at most one interpretation. Order
// matters: overlays first, then the text-entry modes, then global keys,
// then pending chords, then single-key bindings by focus.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.ForceQuit) {
		return a, tea.Quit
	}

	if a.state.ShowHelp && msg.Type == tea.KeyEsc {
		a.dispatch(state.SetHelp{Visible: false})
		return a, nil
	}

	if a.state.DetailMode == state.DetailModal && msg.Type == tea.KeyEsc {
		a.closeDetailModal()
		return a, nil
	}

	switch a.state.Mode {
	case state.ModeCommand:
		return a, a.handleCommandKey(msg)
	case state.ModeSearch:
		a.handleSearchKey(msg)
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.FocusNext):
		a.dispatch(state.SetFocus{Focus: a.state.Focus.Cycle(1)})
		return a, nil
	case key.Matches(msg, a.keys.FocusPrev):
		a.dispatch(state.SetFocus{Focus: a.state.Focus.Cycle(-1)})
		return a, nil
	}

	if a.state.KeyBuffer != "" {
		a.resolveChord(msg)
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.APIKey):
		a.commandHint = "enter API key and press enter"
		a.dispatch(
			state.SetMode{Mode: state.ModeCommand},
			state.SetCommandInput{Value: "set api-key "},
		)
		return a, nil

	case key.Matches(msg, a.keys.Command):
		a.commandHint = ""
		a.dispatch(
			state.SetMode{Mode: state.ModeCommand},
			state.SetCommandInput{Value: ""},
		)
		return a, nil

	case key.Matches(msg, a.keys.Search):
		a.dispatch(
			state.SetMode{Mode: state.ModeSearch},
			state.ClearSearch{Tab: a.state.ActiveTab},
		)
		return a, nil

	case key.Matches(msg, a.keys.Help):
		a.dispatch(state.ToggleHelp{})
		return a, nil

	case key.Matches(msg, a.keys.Refresh):
		return a, a.refreshAll()

	case key.Matches(msg, a.keys.ToggleView):
		view := state.ViewJSON
		if a.state.ViewMode == state.ViewJSON {
			view = state.ViewTable
		}
		a.dispatch(state.SetViewMode{View: view})
		return a, nil

	case key.Matches(msg, a.keys.Detail) && a.state.Focus != state.FocusSidebar:
		detail := state.DetailHidden
		if a.state.DetailMode == state.DetailHidden {
			detail = state.DetailSplit
		}
		a.dispatch(state.SetDetailMode{Detail: detail})
		return a, nil
	}

	if a.state.ActiveTab == state.TabPipelines {
		switch {
		case key.Matches(msg, a.keys.Backfill):
			a.beginWorkflow(workflow.NewBackfill)
			return a, nil
		case key.Matches(msg, a.keys.Test):
			a.beginWorkflow(workflow.NewTest)
			return a, nil
		case key.Matches(msg, a.keys.Delete):
			a.beginWorkflow(workflow.NewDelete)
			return a, nil
		}
	}

	tab := a.state.ActiveTab
	switch {
	case key.Matches(msg, a.keys.Top), key.Matches(msg, a.keys.Mark), key.Matches(msg, a.keys.Jump):
		return a, a.setKeyBuffer(msg.String())
	case key.Matches(msg, a.keys.Bottom):
		a.dispatch(state.SetSelection{Tab: tab, Index: len(a.state.Current().Items) - 1})
		return a, nil
	case key.Matches(msg, a.keys.NextMatch):
		a.dispatch(state.CycleSearchMatch{Tab: tab, Direction: 1})
		return a, nil
	case key.Matches(msg, a.keys.PrevMatch):
		a.dispatch(state.CycleSearchMatch{Tab: tab, Direction: -1})
		return a, nil
	}

	switch a.state.Focus {
	case state.FocusSidebar:
		switch {
		case key.Matches(msg, a.keys.Down):
			a.setActiveTab(tab.Next(1))
		case key.Matches(msg, a.keys.Up):
			a.setActiveTab(tab.Next(-1))
		}
	case state.FocusContent:
		switch {
		case key.Matches(msg, a.keys.Down):
			a.dispatch(state.MoveSelection{Tab: tab, Delta: 1})
		case key.Matches(msg, a.keys.Up):
			a.dispatch(state.MoveSelection{Tab: tab, Delta: -1})
		case key.Matches(msg, a.keys.PageDown):
			a.dispatch(state.MoveSelection{Tab: tab, Delta: pageSize})
		case key.Matches(msg, a.keys.PageUp):
			a.dispatch(state.MoveSelection{Tab: tab, Delta: -pageSize})
		case key.Matches(msg, a.keys.Open):
			a.dispatch(state.SetDetailMode{Detail: state.DetailModal})
		}
	case state.FocusDetail:
		if key.Matches(msg, a.keys.Close) {
			a.closeDetailModal()
		}
	}

	return a, nil
}

func (a *App) closeDetailModal() {
	if a.state.DetailMode == state.DetailModal {
		a.dispatch(state.SetDetailMode{Detail: state.DetailSplit})
	}
}

// setKeyBuffer starts a chord and schedules its expiry. Expiries of older
// chords are recognized by their sequence number and ignored.
func (a *App) setKeyBuffer(value string) tea.Cmd {
	a.dispatch(state.SetKeyBuffer{Value: value})
	a.keySeq++
	seq := a.keySeq
	return tea.Tick(chordTimeout, func(time.Time) tea.Msg {
		return keyBufferExpiredMsg{seq: seq}
	})
}

// resolveChord completes or aborts the pending chord. The buffer is
// cleared either way.
func (a *App) resolveChord(msg tea.KeyMsg) {
	buffer := a.state.KeyBuffer
	input := msg.String()
	a.dispatch(state.SetKeyBuffer{Value: ""})

	switch buffer {
	case "g":
		switch input {
		case "g":
			a.dispatch(state.SetSelection{Tab: a.state.ActiveTab, Index: 0})
		case "a":
			a.setActiveTab(state.TabActivity)
		case "p":
			a.setActiveTab(state.TabPipelines)
		case "f":
			a.setActiveTab(state.TabFilters)
		case "t":
			a.setActiveTab(state.TabTransformations)
		}

	case "m":
		if markKey.MatchString(input) {
			a.dispatch(
				state.AddBookmark{Key: input, Tab: a.state.ActiveTab, Index: a.state.Current().SelectedIndex},
				state.SetMessage{Message: state.Info("Saved mark '" + input + "'")},
			)
		}

	case "'":
		if markKey.MatchString(input) {
			a.jumpToBookmark(input)
		}
	}
}

func (a *App) jumpToBookmark(name string) {
	mark, ok := a.state.ResolveBookmark(name)
	if !ok {
		a.dispatch(state.SetMessage{Message: state.Error("No mark for '" + name + "'")})
		return
	}
	a.setActiveTab(mark.Tab)
	a.dispatch(state.SetSelection{Tab: mark.Tab, Index: mark.Index})
}

// handleCommandKey edits the command line. With a workflow active, enter
// submits the current step instead of running a command.
func (a *App) handleCommandKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		if a.workflow != nil {
			return a.submitWorkflow()
		}
		return a.executeCommand()

	case tea.KeyEsc:
		if a.workflow != nil {
			a.cancelWorkflow()
			return nil
		}
		a.commandHint = ""
		a.dispatch(
			state.SetCommandInput{Value: ""},
			state.SetMode{Mode: state.ModeNormal},
		)
		return nil

	case tea.KeyBackspace:
		if input := []rune(a.state.CommandInput); len(input) > 0 {
			a.dispatch(state.SetCommandInput{Value: string(input[:len(input)-1])})
		}
		return nil

	case tea.KeyTab:
		if a.workflow == nil {
			if suggestions := components.Suggest(a.state.CommandInput, command.Verbs); len(suggestions) > 0 {
				a.dispatch(state.SetCommandInput{Value: suggestions[0]})
			}
		}
		return nil

	case tea.KeyUp:
		if a.workflow != nil {
			return nil
		}
		history := a.state.CommandHistory
		next := min(len(history)-1, a.state.CommandCursor+1)
		if next >= 0 {
			a.dispatch(
				state.SetCommandCursor{Cursor: next},
				state.SetCommandInput{Value: history[next]},
			)
		}
		return nil

	case tea.KeyDown:
		if a.workflow != nil {
			return nil
		}
		next := max(-1, a.state.CommandCursor-1)
		value := ""
		if next >= 0 {
			value = a.state.CommandHistory[next]
		}
		a.dispatch(
			state.SetCommandCursor{Cursor: next},
			state.SetCommandInput{Value: value},
		)
		return nil

	case tea.KeySpace:
		a.dispatch(state.SetCommandInput{Value: a.state.CommandInput + " "})
		return nil

	case tea.KeyRunes:
		a.dispatch(state.SetCommandInput{Value: a.state.CommandInput + string(msg.Runes)})
		return nil
	}

	return nil
}

// handleSearchKey edits the search query of the active tab; matches are
// recomputed on every keystroke.
func (a *App) handleSearchKey(msg tea.KeyMsg) {
	tab := a.state.ActiveTab
	query := a.state.Current().SearchQuery

	switch msg.Type {
	case tea.KeyEnter:
		a.dispatch(state.SetMode{Mode: state.ModeNormal})
	case tea.KeyEsc:
		a.dispatch(
			state.ClearSearch{Tab: tab},
			state.SetMode{Mode: state.ModeNormal},
		)
	case tea.KeyBackspace:
		if runes := []rune(query); len(runes) > 0 {
			a.dispatch(state.SetSearchQuery{Tab: tab, Query: string(runes[:len(runes)-1])})
		}
	case tea.KeySpace:
		a.dispatch(state.SetSearchQuery{Tab: tab, Query: query + " "})
	case tea.KeyRunes:
		a.dispatch(state.SetSearchQuery{Tab: tab, Query: query + string(msg.Runes)})
	}
}
