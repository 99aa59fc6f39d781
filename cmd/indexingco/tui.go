package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/indexingco/indexingco-cli/internal/api"
	"github.com/indexingco/indexingco-cli/internal/config"
	"github.com/indexingco/indexingco-cli/internal/tui"
	"github.com/indexingco/indexingco-cli/internal/wizard"
)

var (
	refreshSeconds int
	themeName      string

	tuiCmd = &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive dashboard",
		Long: `Start a dashboard that lists pipelines, filters and transformations and
refreshes them on an interval. Press ? inside the dashboard for key bindings.

Changes to theme, refresh_interval or log_level in the config file are
applied while the dashboard runs.`,
		Args: cobra.NoArgs,
		RunE: runTUI,
	}
)

func init() {
	tuiCmd.Flags().IntVar(&refreshSeconds, "refresh", config.DefaultRefreshInterval, "Refresh interval in seconds")
	tuiCmd.Flags().StringVar(&themeName, "theme", "", "Theme (dark|light|mono)")

	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !wizard.IsTTY() || !wizard.IsInputTTY() {
		return fmt.Errorf("the dashboard needs an interactive terminal")
	}

	if refreshSeconds < 1 {
		refreshSeconds = 1
	}

	s, err := openSession(cmd, true, map[string]string{
		"refresh_interval": "refresh",
		"theme":            "theme",
	})
	if err != nil {
		return err
	}
	defer s.Close()

	client := s.client
	app := tui.NewApp(cmd.Context(), client, tui.AppOptions{
		APIKey:          s.cfg.APIKey,
		RefreshInterval: s.cfg.RefreshInterval,
		Theme:           s.cfg.Theme,
		LogLevel:        s.cfg.LogLevel,
		WithAPIKey: func(key string) api.Service {
			return client.WithAPIKey(key)
		},
		Logger: s.logger,
	})

	var watch func(onChange func(*config.Config))
	if s.path != "" && fileExists(s.path) {
		watch = func(onChange func(*config.Config)) {
			config.WatchConfig(s.viper, s.logger.Logger, onChange)
		}
	}

	return tui.Run(cmd.Context(), app, watch)
}
