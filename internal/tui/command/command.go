// Package command parses the dashboard's colon command line into typed
// commands. Parsing never fails: anything unrecognized becomes Unknown or
// Invalid, which the dashboard reports as an error banner.
package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/indexingco/indexingco-cli/internal/config"
	"github.com/indexingco/indexingco-cli/internal/tui/state"
)

type Command interface {
	isCommand()
}

type (
	// Empty is a blank line; the dashboard just leaves COMMAND mode.
	Empty   struct{}
	Refresh struct{}
	Help    struct{}
	Logs    struct{}
	Quit    struct{}

	SetRefresh  struct{ Seconds int }
	SetTheme    struct{ Theme string }
	SetLogLevel struct{ Level string }
	SetAPIKey   struct{ Key string }

	// Filter applies Query as the search query of a resource tab.
	Filter struct {
		Tab   state.Tab
		Query string
	}
	View struct{ Tab state.Tab }

	// Invalid is a recognized verb with bad arguments.
	Invalid struct{ Message string }
	// Unknown carries the full trimmed command text.
	Unknown struct{ Text string }
)

func (Empty) isCommand()       {}
func (Refresh) isCommand()     {}
func (Help) isCommand()        {}
func (Logs) isCommand()        {}
func (Quit) isCommand()        {}
func (SetRefresh) isCommand()  {}
func (SetTheme) isCommand()    {}
func (SetLogLevel) isCommand() {}
func (SetAPIKey) isCommand()   {}
func (Filter) isCommand()      {}
func (View) isCommand()        {}
func (Invalid) isCommand()     {}
func (Unknown) isCommand()     {}

// Verbs lists the command templates offered as suggestions.
var Verbs = []string{
	"refresh",
	"set refresh ",
	"set theme ",
	"set log-level ",
	"set api-key ",
	"help",
	"logs",
	"filter pipelines ",
	"filter filters ",
	"filter transformations ",
	"view pipelines",
	"view filters",
	"view transformations",
	"view activity",
	"quit",
}

// Parse tokenizes raw on whitespace. A leading ':' is ignored.
func Parse(raw string) Command {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Empty{}
	}

	fields := strings.Fields(strings.TrimPrefix(text, ":"))
	if len(fields) == 0 {
		return Empty{}
	}
	head, rest := fields[0], fields[1:]

	switch head {
	case "refresh":
		return Refresh{}
	case "set":
		return parseSet(rest)
	case "help":
		return Help{}
	case "logs":
		return Logs{}
	case "filter":
		if len(rest) == 0 {
			return Invalid{Message: "Usage: filter <tab> <query>"}
		}
		tab, ok := state.ParseTab(rest[0])
		if !ok || !tab.IsResource() {
			return Invalid{Message: fmt.Sprintf("Cannot filter '%s'. Use pipelines, filters, or transformations", rest[0])}
		}
		return Filter{Tab: tab, Query: strings.Join(rest[1:], " ")}
	case "view":
		if len(rest) == 0 {
			return Invalid{Message: "Usage: view <tab>"}
		}
		tab, ok := state.ParseTab(rest[0])
		if !ok {
			return Invalid{Message: fmt.Sprintf("Unknown tab '%s'", rest[0])}
		}
		return View{Tab: tab}
	case "quit", "q":
		return Quit{}
	default:
		return Unknown{Text: text}
	}
}

func parseSet(args []string) Command {
	var key, value string
	if len(args) > 0 {
		key = args[0]
	}
	if len(args) > 1 {
		value = args[1]
	}

	switch key {
	case "refresh":
		seconds, err := strconv.Atoi(value)
		if err != nil || seconds <= 0 {
			return Invalid{Message: "Refresh must be > 0"}
		}
		return SetRefresh{Seconds: seconds}
	case "theme":
		theme, err := config.ParseTheme(value)
		if err != nil {
			return Invalid{Message: capitalize(err.Error())}
		}
		return SetTheme{Theme: theme}
	case "log-level":
		level, err := config.ParseLogLevel(value)
		if err != nil {
			return Invalid{Message: capitalize(err.Error())}
		}
		return SetLogLevel{Level: level}
	case "api-key":
		if value == "" {
			return Invalid{Message: "API key must not be empty"}
		}
		return SetAPIKey{Key: strings.Join(args[1:], " ")}
	default:
		return Invalid{Message: fmt.Sprintf("Unknown setting %s", key)}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
