package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/indexingco/indexingco-cli/internal/tui/theme"
)

const maxSuggestions = 4

// CommandBar renders the COMMAND and SEARCH mode input lines.
type CommandBar struct {
	width int
	theme *theme.Theme
}

func NewCommandBar(t *theme.Theme) CommandBar {
	return CommandBar{theme: t}
}

func (c *CommandBar) SetWidth(width int) {
	c.width = width
}

func (c *CommandBar) SetTheme(t *theme.Theme) {
	c.theme = t
}

// Suggest ranks verbs against the typed input with fuzzy matching. Empty
// input yields nothing and a verb equal to the input is skipped.
func Suggest(input string, verbs []string) []string {
	input = strings.TrimPrefix(strings.TrimLeft(input, " "), ":")
	if input == "" {
		return nil
	}

	matches := fuzzy.FindFrom(input, verbSource(verbs))
	out := make([]string, 0, min(len(matches), maxSuggestions))
	for _, match := range matches {
		verb := verbs[match.Index]
		if strings.TrimSpace(verb) == strings.TrimSpace(input) {
			continue
		}
		out = append(out, verb)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

type verbSource []string

func (vs verbSource) String(i int) string { return vs[i] }
func (vs verbSource) Len() int            { return len(vs) }

// View renders the prompt, input, hint and suggestions.
func (c *CommandBar) View(input, hint string, suggestions []string) string {
	var b strings.Builder

	b.WriteString(c.theme.FilterPrompt.Render(":"))
	b.WriteString(c.theme.FilterInput.Render(input + "█"))
	if hint != "" {
		b.WriteString("  ")
		b.WriteString(c.theme.TextMuted.Render(hint))
	}
	if len(suggestions) > 0 {
		b.WriteString("\n")
		parts := make([]string, len(suggestions))
		for i, s := range suggestions {
			style := c.theme.TextDim
			if i == 0 {
				style = c.theme.Selected
			}
			parts[i] = style.Render(strings.TrimSpace(s))
		}
		b.WriteString(c.theme.TextMuted.Render("  [tab] ") + strings.Join(parts, c.theme.TextMuted.Render("  ")))
	}

	return c.theme.BorderActive.
		Width(max(0, c.width-2)).
		Render(b.String())
}

// SearchView renders the "/" prompt with the match position.
func (c *CommandBar) SearchView(query string, matches, current int) string {
	status := c.theme.TextMuted.Render("no matches")
	if matches > 0 {
		status = c.theme.Match.Render(fmt.Sprintf("%d/%d", current+1, matches))
	}

	line := c.theme.FilterPrompt.Render("/") +
		c.theme.FilterInput.Render(query+"█") + "  " + status

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c.theme.Colors.Accent).
		Width(max(0, c.width-2)).
		Render(line)
}
