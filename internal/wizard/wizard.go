// Package wizard holds the interactive prompts of the CLI: the init wizard
// that writes a config file, confirmations, and a spinner for slow calls.
package wizard

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/indexingco/indexingco-cli/internal/ascii"
	"github.com/indexingco/indexingco-cli/internal/config"
)

// answers holds the raw form values before validation.
type answers struct {
	APIKey          string
	BaseURL         string
	RefreshInterval string
	Theme           string
	LogLevel        string
	Confirm         bool
}

// Wizard walks the user through creating a config file.
type Wizard struct {
	defaults   *config.Config
	configPath string
}

// New creates a wizard prefilled from defaults, usually the currently
// loaded configuration.
func New(defaults *config.Config, configPath string) *Wizard {
	if defaults == nil {
		defaults = config.Default()
	}
	return &Wizard{
		defaults:   defaults,
		configPath: configPath,
	}
}

// ErrAborted is returned when the user declines to write the config.
var ErrAborted = errors.New("setup aborted")

// Run executes the interactive wizard
func (w *Wizard) Run() (*config.Config, error) {
	fmt.Println(lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Render(ascii.Logo()))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	fmt.Println(titleStyle.Render("Indexingco configuration"))
	fmt.Printf("Settings will be written to %s\n\n", w.configPath)

	a := w.initialAnswers()
	if err := w.form(&a).Run(); err != nil {
		return nil, err
	}
	if !a.Confirm {
		return nil, ErrAborted
	}
	return w.buildConfig(a)
}

func (w *Wizard) initialAnswers() answers {
	return answers{
		APIKey:          w.defaults.APIKey,
		BaseURL:         w.defaults.BaseURL,
		RefreshInterval: strconv.Itoa(config.ParseRefreshInterval(w.defaults.RefreshInterval)),
		Theme:           orDefault(w.defaults.Theme, config.DefaultTheme),
		LogLevel:        orDefault(w.defaults.LogLevel, config.DefaultLogLevel),
		Confirm:         true,
	}
}

func (w *Wizard) form(a *answers) *huh.Form {
	themes := make([]huh.Option[string], len(config.Themes))
	for i, name := range config.Themes {
		themes[i] = huh.NewOption(name, name)
	}
	levels := make([]huh.Option[string], len(config.LogLevels))
	for i, level := range config.LogLevels {
		levels[i] = huh.NewOption(level, level)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("API key").
				Description("Found in the Indexingco console. Stored in the config file with 0600 permissions").
				EchoMode(huh.EchoModePassword).
				Validate(validateAPIKey).
				Value(&a.APIKey),

			huh.NewInput().
				Title("API base URL").
				Placeholder(config.Default().BaseURL).
				Validate(validateBaseURL).
				Value(&a.BaseURL),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Dashboard refresh interval (seconds)").
				Validate(validateInterval).
				Value(&a.RefreshInterval),

			huh.NewSelect[string]().
				Title("Theme").
				Options(themes...).
				Value(&a.Theme),

			huh.NewSelect[string]().
				Title("Log level").
				Options(levels...).
				Value(&a.LogLevel),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Write configuration?").
				Description(w.configPath).
				Affirmative("Write").
				Negative("Cancel").
				Value(&a.Confirm),
		),
	)
}

// buildConfig validates the answers and merges them over the defaults.
func (w *Wizard) buildConfig(a answers) (*config.Config, error) {
	if err := validateAPIKey(a.APIKey); err != nil {
		return nil, err
	}
	if err := validateBaseURL(a.BaseURL); err != nil {
		return nil, err
	}
	if err := validateInterval(a.RefreshInterval); err != nil {
		return nil, err
	}
	theme, err := config.ParseTheme(a.Theme)
	if err != nil {
		return nil, err
	}
	level, err := config.ParseLogLevel(a.LogLevel)
	if err != nil {
		return nil, err
	}

	cfg := *w.defaults
	cfg.APIKey = strings.TrimSpace(a.APIKey)
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = config.Default().BaseURL
	}
	cfg.RefreshInterval, _ = strconv.Atoi(strings.TrimSpace(a.RefreshInterval))
	cfg.Theme = theme
	cfg.LogLevel = level
	return &cfg, nil
}

func validateAPIKey(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("API key is required")
	}
	return nil
}

// validateBaseURL accepts an empty value, which keeps the default.
func validateBaseURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("base URL must be an http(s) URL")
	}
	return nil
}

func validateInterval(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("refresh interval must be a positive number of seconds")
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Confirm asks a yes/no question, defaulting to no.
func Confirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).Run()
	return ok, err
}
