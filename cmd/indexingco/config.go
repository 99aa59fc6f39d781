package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/indexingco/indexingco-cli/internal/config"
	"github.com/indexingco/indexingco-cli/internal/paths"
)

var (
	showFormat string

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Inspect indexingco configuration",
		Long: `Inspect indexingco configuration files.

Configuration Locations:
  User config:     ~/.config/indexingco/config.yaml
  Project config:  ./.indexingco.yaml
  Override:        --config or INDEXINGCO_CONFIG

Configuration Precedence (lowest to highest):
  1. Defaults
  2. Config file
  3. Environment variables (INDEXINGCO_*, API_KEY_INDEXINGCO)
  4. CLI flags`,
	}

	configPathCmd = &cobra.Command{
		Use:   "path",
		Short: "Show configuration file locations",
		Long:  `Display the paths to all configuration files and their existence status.`,
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Long:  `Show the configuration after merging all sources. The API key is masked.`,
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
)

func init() {
	configShowCmd.Flags().StringVar(&showFormat, "format", "yaml", "Output format (yaml|toml)")

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	p, err := paths.New()
	if err != nil {
		return fmt.Errorf("failed to initialize paths: %w", err)
	}
	printPaths(cmd.OutOrStdout(), p, configPath)
	return nil
}

func printPaths(w io.Writer, p *paths.Paths, explicit string) {
	fmt.Fprintln(w, "Configuration File Locations")
	fmt.Fprintln(w, "════════════════════════════════════════════════════════════")
	fmt.Fprintln(w)

	userConfigPath := p.UserConfigFile()
	fmt.Fprintf(w, "User Config:        %s %s\n", userConfigPath, existsIndicator(fileExists(userConfigPath)))

	if project := p.ProjectConfigFile(); project != "" {
		fmt.Fprintf(w, "Project Config:     %s %s\n", project, existsIndicator(fileExists(project)))
	}
	if env := os.Getenv(paths.ConfigEnvVar); env != "" {
		fmt.Fprintf(w, "%-20s%s %s\n", paths.ConfigEnvVar+":", env, existsIndicator(fileExists(env)))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Log File:           %s\n", p.LogFile())
	if p.UsingFallback("state") {
		fmt.Fprintln(w, "  (state directory was not writable, using fallback)")
	}

	fmt.Fprintln(w)
	if active, source := p.ResolveConfig(explicit); active != "" {
		fmt.Fprintf(w, "Active: %s (%s)\n", active, source)
	} else {
		fmt.Fprintln(w, "Active: none, using defaults")
		fmt.Fprintln(w, "  Run 'indexingco init' to create one")
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, false, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	w := cmd.OutOrStdout()
	source := s.path
	if source == "" {
		source = "defaults"
	}
	fmt.Fprintf(w, "# source: %s\n", source)
	return writeConfig(w, s.cfg.Masked(), showFormat)
}

func writeConfig(w io.Writer, cfg *config.Config, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "yaml", "yml", "":
		data, err = cfg.MarshalYAML()
	case "toml":
		data, err = cfg.MarshalTOML()
	default:
		return fmt.Errorf("unsupported format '%s'. Use yaml or toml", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
