// Package tui is the interactive dashboard. App is the bubbletea model:
// Update is the only place state changes, and every network call runs as a
// tea.Cmd whose result comes back as a message.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/indexingco/indexingco-cli/internal/api"
	"github.com/indexingco/indexingco-cli/internal/config"
	"github.com/indexingco/indexingco-cli/internal/logging"
	"github.com/indexingco/indexingco-cli/internal/tui/components"
	"github.com/indexingco/indexingco-cli/internal/tui/state"
	"github.com/indexingco/indexingco-cli/internal/tui/theme"
	"github.com/indexingco/indexingco-cli/internal/tui/workflow"
)

const (
	chordTimeout = 600 * time.Millisecond
	tickInterval = time.Second
	pageSize     = 10
	environment  = "Production"
)

// ServiceFactory builds a client for a new API key.
type ServiceFactory func(apiKey string) api.Service

type AppOptions struct {
	APIKey          string
	RefreshInterval int
	Theme           string
	LogLevel        string
	// WithAPIKey is used by "set api-key". When nil the key only changes
	// in the header.
	WithAPIKey ServiceFactory
	Logger     *logging.Logger
}

type App struct {
	ctx    context.Context
	state  state.AppState
	svc    api.Service
	newSvc ServiceFactory
	apiKey string
	logger *logging.Logger
	keys   keyMap
	now    func() time.Time

	// active guided action, nil outside a workflow
	workflow    *workflow.Workflow
	workflowRun bool
	workflowSeq int
	commandHint string

	refreshing bool
	keySeq     int

	theme       *theme.Theme
	header      components.Header
	footer      components.Footer
	sidebar     components.Sidebar
	table       components.ResourceTable
	details     components.Details
	commandBar  components.CommandBar
	banner      components.Banner
	helpOverlay components.HelpOverlay
	spinner     components.Spinner

	width  int
	height int
}

func NewApp(ctx context.Context, svc api.Service, opts AppOptions) *App {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	st := state.New(state.Options{
		RefreshInterval: opts.RefreshInterval,
		Theme:           opts.Theme,
		LogLevel:        opts.LogLevel,
	})

	t := theme.ForName(st.Theme)
	keys := defaultKeyMap()

	return &App{
		ctx:         ctx,
		state:       st,
		svc:         svc,
		newSvc:      opts.WithAPIKey,
		apiKey:      opts.APIKey,
		logger:      logger,
		keys:        keys,
		now:         time.Now,
		theme:       t,
		header:      components.NewHeader(t),
		footer:      components.NewFooter(t),
		sidebar:     components.NewSidebar(t),
		table:       components.NewResourceTable(t),
		details:     components.NewDetails(t),
		commandBar:  components.NewCommandBar(t),
		banner:      components.NewBanner(t),
		helpOverlay: components.NewHelpOverlay(t, keys.helpSections()),
		spinner:     components.NewSpinner(t),
	}
}

// State returns a snapshot of the dashboard state.
func (a *App) State() state.AppState {
	return a.state
}

func (a *App) dispatch(actions ...state.Action) {
	for _, action := range actions {
		a.state = state.Reduce(a.state, action)
	}
}

func (a *App) Init() tea.Cmd {
	a.logger.Info("dashboard started", "refresh_interval", a.state.RefreshInterval, "theme", a.state.Theme)
	return tea.Batch(a.refreshAll(), a.tick())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case tickMsg:
		return a, a.handleTick()

	case refreshCompleteMsg:
		a.handleRefreshComplete(msg)
		return a, nil

	case workflowDoneMsg:
		a.handleWorkflowDone(msg)
		return a, nil

	case keyBufferExpiredMsg:
		if msg.seq == a.keySeq && a.state.KeyBuffer != "" {
			a.dispatch(state.SetKeyBuffer{Value: ""})
		}
		return a, nil

	case configReloadedMsg:
		a.applyConfig(msg.config)
		return a, nil

	default:
		return a, a.spinner.Update(msg)
	}
}

// applyConfig follows edits of the config file while the dashboard runs.
func (a *App) applyConfig(cfg *config.Config) {
	if cfg.Theme != a.state.Theme {
		a.setTheme(cfg.Theme)
	}
	if cfg.LogLevel != a.state.LogLevel {
		a.setLogLevel(cfg.LogLevel)
	}
	if cfg.RefreshInterval != a.state.RefreshInterval {
		a.dispatch(state.SetRefreshInterval{Interval: config.ParseRefreshInterval(cfg.RefreshInterval)})
	}
	a.dispatch(state.SetMessage{Message: state.Info("Config reloaded")})
}

func (a *App) setTheme(name string) {
	a.dispatch(state.SetTheme{Theme: name})
	t := theme.ForName(name)
	a.theme = t
	a.header.SetTheme(t)
	a.footer.SetTheme(t)
	a.sidebar.SetTheme(t)
	a.table.SetTheme(t)
	a.details.SetTheme(t)
	a.commandBar.SetTheme(t)
	a.banner.SetTheme(t)
	a.helpOverlay.SetTheme(t)
	a.spinner.SetTheme(t)
}

func (a *App) setLogLevel(level string) {
	a.dispatch(state.SetLogLevel{LogLevel: level})
	a.logger.SetLevel(level)
}

// Run starts the dashboard and blocks until the user quits. A non-nil watch
// registers a callback for config file edits, which are applied live.
func Run(ctx context.Context, app *App, watch func(onChange func(*config.Config))) error {
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	if watch != nil {
		watch(func(cfg *config.Config) {
			p.Send(configReloadedMsg{config: cfg})
		})
	}

	_, err := p.Run()
	return err
}
