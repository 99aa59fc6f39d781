package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/indexingco/indexingco-cli/internal/api"
	"github.com/indexingco/indexingco-cli/internal/config"
	"github.com/indexingco/indexingco-cli/internal/logging"
	"github.com/indexingco/indexingco-cli/internal/paths"
	"github.com/indexingco/indexingco-cli/internal/wizard"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	configPath string
	apiKey     string
	baseURL    string
	logLevel   string
	force      bool

	rootCmd = &cobra.Command{
		Use:   "indexingco",
		Short: "Manage indexing pipelines, filters and transformations",
		Long: `indexingco talks to the Indexing Co. API. Use the resource commands for
one-off calls, or start the dashboard to watch everything at once.

The API key is read from --api-key, INDEXINGCO_API_KEY, API_KEY_INDEXINGCO
or the api_key entry of the config file.

Get started:
  indexingco init                 # Create a configuration file
  indexingco pipelines list       # List pipelines as JSON
  indexingco tui                  # Start the dashboard`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file interactively",
		Long: `Walk through the API key, base URL and dashboard preferences and write
them to the config file. An existing file is only replaced with --force.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default ~/.config/indexingco/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key sent as X-API-KEY")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (info|debug)")

	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing configuration file")

	rootCmd.AddCommand(initCmd)
	rootCmd.SetVersionTemplate(fmt.Sprintf("indexingco {{.Version}} (commit %s, built %s)\n", commit, date))
}

// session is what a command needs to talk to the API.
type session struct {
	cfg    *config.Config
	viper  *viper.Viper
	path   string
	client *api.Client
	logger *logging.Logger
}

func (s *session) Close() {
	_ = s.logger.Close()
}

// flagKeys maps config keys to the flag names that override them.
var flagKeys = map[string]string{
	"api_key":   "api-key",
	"base_url":  "base-url",
	"log_level": "log-level",
}

// bindFlags overrides config keys with flags the user actually set.
func bindFlags(cmd *cobra.Command, keys map[string]string) config.Binder {
	return func(v *viper.Viper) error {
		for key, name := range keys {
			f := cmd.Flags().Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
		return nil
	}
}

// openSession loads the config for cmd and builds an API client. When
// requireKey is set a missing API key is an error.
func openSession(cmd *cobra.Command, requireKey bool, extra map[string]string) (*session, error) {
	p, err := paths.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize paths: %w", err)
	}
	if err := p.EnsureDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	path, source := p.ResolveConfig(configPath)

	keys := make(map[string]string, len(flagKeys)+len(extra))
	for k, v := range flagKeys {
		keys[k] = v
	}
	for k, v := range extra {
		keys[k] = v
	}

	cfg, v, err := config.LoadWithViper(path, bindFlags(cmd, keys))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if requireKey {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	logger, err := logging.New(p.LogFile(), cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		logger = logging.Discard()
	}
	logger.Debug("config loaded", "path", path, "source", source.String(), "command", cmd.CommandPath())

	client, err := api.NewClient(cfg.BaseURL, cfg.APIKey,
		api.WithTimeout(cfg.Timeout),
		api.WithUserAgent("indexingco-cli/"+version),
		api.WithLogger(logger.Logger),
	)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	return &session{
		cfg:    cfg,
		viper:  v,
		path:   path,
		client: client,
		logger: logger,
	}, nil
}

func runInit(cmd *cobra.Command, args []string) error {
	p, err := paths.New()
	if err != nil {
		return fmt.Errorf("failed to initialize paths: %w", err)
	}

	target := configPath
	if target == "" {
		target = os.Getenv(paths.ConfigEnvVar)
	}
	if target == "" {
		target = p.UserConfigFile()
	}

	if fileExists(target) && !force {
		return fmt.Errorf("configuration file %s already exists. Use --force to overwrite", target)
	}
	if !wizard.IsInputTTY() {
		return fmt.Errorf("init needs an interactive terminal. Write %s by hand or pass --config", target)
	}

	defaults, err := config.Load(target, bindFlags(cmd, flagKeys))
	if err != nil {
		defaults = config.Default()
	}

	cfg, err := wizard.New(defaults, target).Run()
	if err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}

	if err := cfg.Save(target); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	printSuccessSummary(target, cfg)
	return nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func Execute() {
	ctx, cancel := signalContext()
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
