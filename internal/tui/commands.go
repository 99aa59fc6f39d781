package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/indexingco/indexingco-cli/internal/config"
	"github.com/indexingco/indexingco-cli/internal/tui/command"
	"github.com/indexingco/indexingco-cli/internal/tui/state"
)

// executeCommand runs the command line and returns to NORMAL mode.
func (a *App) executeCommand() tea.Cmd {
	raw := strings.TrimSpace(a.state.CommandInput)
	if raw == "" {
		a.dispatch(state.SetMode{Mode: state.ModeNormal})
		return nil
	}
	a.dispatch(state.PushCommandHistory{Command: raw})
	a.logger.Debug("command", "text", raw)

	var cmd tea.Cmd
	switch c := command.Parse(raw).(type) {
	case command.Refresh:
		cmd = a.refreshAll()
		a.dispatch(state.SetMessage{Message: state.Info("Refreshing…")})

	case command.SetRefresh:
		a.dispatch(
			state.SetRefreshInterval{Interval: c.Seconds},
			state.SetMessage{Message: state.Info(fmt.Sprintf("Refresh interval %ds", c.Seconds))},
		)

	case command.SetTheme:
		a.setTheme(c.Theme)
		a.dispatch(state.SetMessage{Message: state.Info("Theme " + c.Theme)})

	case command.SetLogLevel:
		a.setLogLevel(c.Level)
		a.dispatch(state.SetMessage{Message: state.Info("Log level " + c.Level)})

	case command.SetAPIKey:
		a.apiKey = c.Key
		if a.newSvc != nil {
			a.svc = a.newSvc(c.Key)
		}
		a.logger.Info("api key updated", "api_key", config.MaskAPIKey(c.Key))
		a.dispatch(state.SetMessage{Message: state.Info("API key updated")})

	case command.Help:
		a.dispatch(state.SetHelp{Visible: true})

	case command.Logs:
		a.setActiveTab(state.TabActivity)

	case command.Filter:
		a.dispatch(state.SetSearchQuery{Tab: c.Tab, Query: c.Query})
		a.setActiveTab(c.Tab)

	case command.View:
		a.setActiveTab(c.Tab)

	case command.Quit:
		cmd = tea.Quit

	case command.Invalid:
		a.dispatch(state.SetMessage{Message: state.Error(c.Message)})

	case command.Unknown:
		a.dispatch(state.SetMessage{Message: state.Error("Unknown command: " + c.Text)})
	}

	a.commandHint = ""
	a.dispatch(
		state.SetCommandInput{Value: ""},
		state.SetMode{Mode: state.ModeNormal},
	)
	return cmd
}

// setActiveTab switches tab and focuses the content pane.
func (a *App) setActiveTab(tab state.Tab) {
	a.dispatch(
		state.SetActiveTab{Tab: tab},
		state.SetFocus{Focus: state.FocusContent},
	)
}
