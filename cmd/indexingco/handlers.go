package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/indexingco/indexingco-cli/internal/config"
	"github.com/indexingco/indexingco-cli/internal/jsonview"
	"github.com/indexingco/indexingco-cli/internal/wizard"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	dividerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// output controls how responses are written.
type output struct {
	w     io.Writer
	query string
	color bool
	style string
}

func newOutput(cmd *cobra.Command, query, theme string) output {
	w := cmd.OutOrStdout()
	return output{
		w:     w,
		query: query,
		color: isTerminal(w),
		style: jsonview.StyleFor(theme),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// print writes raw as indented JSON, filtered through the query if set.
func (o output) print(raw json.RawMessage) error {
	if o.query != "" {
		filtered, err := jsonview.Query(raw, o.query)
		if err != nil {
			return err
		}
		raw = filtered
	}

	text, err := jsonview.PrettyRaw(raw)
	if err != nil {
		return err
	}
	if o.color {
		text = jsonview.Highlight(text, o.style)
	}
	_, err = fmt.Fprintln(o.w, text)
	return err
}

// runCall reports progress on stderr while fn runs.
var runCall = wizard.RunWithSpinner[json.RawMessage]

// call runs fn under the stderr spinner and prints its response.
func call(ctx context.Context, out output, message string, fn func(context.Context) (json.RawMessage, error)) error {
	raw, err := runCall(ctx, message, fn)
	if err != nil {
		return err
	}
	return out.print(raw)
}

func printSuccessSummary(configPath string, cfg *config.Config) {
	divider := dividerStyle.Render(strings.Repeat("━", 50))

	fmt.Println()
	fmt.Println(divider)
	fmt.Println(successStyle.Render("✓ Configuration saved"))
	fmt.Println(divider)
	fmt.Println()

	fmt.Println(labelStyle.Render("Config file: ") + infoStyle.Render(configPath))
	fmt.Println(labelStyle.Render("API key:     ") + infoStyle.Render(config.MaskAPIKey(cfg.APIKey)))
	fmt.Println(labelStyle.Render("Base URL:    ") + infoStyle.Render(cfg.BaseURL))
	fmt.Println(labelStyle.Render("Dashboard:   ") + infoStyle.Render(fmt.Sprintf("refresh %ds, theme %s", cfg.RefreshInterval, cfg.Theme)))

	fmt.Println()
	fmt.Println(headerStyle.Render("Next steps:"))
	fmt.Println(infoStyle.Render("   indexingco pipelines list   # Check the key works"))
	fmt.Println(infoStyle.Render("   indexingco tui              # Start the dashboard"))
	fmt.Println()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func existsIndicator(exists bool) string {
	if exists {
		return "✓"
	}
	return "✗"
}
