package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/evertras/bubble-table/table"

	"github.com/indexingco/indexingco-cli/internal/api"
	"github.com/indexingco/indexingco-cli/internal/jsonview"
	"github.com/indexingco/indexingco-cli/internal/tui/state"
	"github.com/indexingco/indexingco-cli/internal/tui/theme"
)

// column widths are relative weights, scaled to the table width
type columnSpec struct {
	key    string
	title  string
	weight int
}

var tabColumns = [state.TabCount][]columnSpec{
	state.TabPipelines: {
		{"name", "Name", 4},
		{"status", "Status", 2},
		{"transformation", "Transformation", 3},
		{"filter", "Filter", 3},
		{"networks", "Networks", 3},
	},
	state.TabFilters: {
		{"name", "Name", 4},
		{"values", "Values", 4},
		{"count", "Count", 2},
	},
	state.TabTransformations: {
		{"name", "Name", 4},
		{"status", "Status", 2},
		{"version", "Version", 2},
		{"language", "Language", 2},
	},
	state.TabActivity: {
		{"when", "When", 2},
		{"source", "Source", 2},
		{"event", "Event", 4},
		{"status", "Status", 2},
	},
}

// ResourceTable renders the active tab as a bubble-table, or as a JSON
// listing in json view mode. Selection is owned by the app state; the
// table only mirrors it.
type ResourceTable struct {
	width   int
	height  int
	focused bool
	now     func() time.Time
	theme   *theme.Theme
}

func NewResourceTable(t *theme.Theme) ResourceTable {
	return ResourceTable{theme: t, now: time.Now}
}

func (r *ResourceTable) SetSize(width, height int) {
	r.width = width
	r.height = height
}

func (r *ResourceTable) SetFocused(focused bool) {
	r.focused = focused
}

func (r *ResourceTable) SetTheme(t *theme.Theme) {
	r.theme = t
}

func (r *ResourceTable) pageSize() int {
	// borders, header row and its separator, footer
	return max(1, r.height-7)
}

// Columns returns the header titles for a tab.
func Columns(tab state.Tab) []string {
	specs := tabColumns[tab]
	titles := make([]string, len(specs))
	for i, c := range specs {
		titles[i] = c.title
	}
	return titles
}

// Cells returns the display text of one row, keyed by column.
func Cells(item state.Item, now time.Time) map[string]string {
	switch it := item.(type) {
	case api.Pipeline:
		return map[string]string{
			"name":           it.Name,
			"status":         orDefault(it.Status, "unknown"),
			"transformation": orDefault(it.Transformation, "-"),
			"filter":         orDefault(it.Filter, "-"),
			"networks":       orDefault(strings.Join(it.Networks, ", "), "-"),
		}
	case api.Filter:
		return map[string]string{
			"name":   it.Name,
			"values": strings.Join(it.Values, ", "),
			"count":  fmt.Sprint(len(it.Values)),
		}
	case api.Transformation:
		return map[string]string{
			"name":     it.Name,
			"status":   orDefault(it.Status, "unknown"),
			"version":  orDefault(it.Version, "-"),
			"language": orDefault(it.Language, "js"),
		}
	case state.ActivityEntry:
		return map[string]string{
			"when":   humanize.RelTime(it.Timestamp, now, "ago", "from now"),
			"source": it.Source,
			"event":  it.Title,
			"status": string(it.Status),
		}
	case nil:
		return map[string]string{}
	default:
		return map[string]string{"name": item.Key()}
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func (r *ResourceTable) buildTable(tab state.Tab, ts state.TabState) table.Model {
	specs := tabColumns[tab]
	totalWeight := 0
	for _, c := range specs {
		totalWeight += c.weight
	}
	usable := max(len(specs)*6, r.width-len(specs)-3)

	columns := make([]table.Column, len(specs))
	for i, c := range specs {
		columns[i] = table.NewColumn(c.key, c.title, max(6, usable*c.weight/totalWeight))
	}

	now := r.now()
	rows := make([]table.Row, len(ts.Items))
	for i, item := range ts.Items {
		cells := Cells(item, now)
		data := table.RowData{}
		for _, c := range specs {
			data[c.key] = cells[c.key]
		}
		r.styleCells(tab, item, data)

		row := table.NewRow(data)
		if ts.IsMatch(i) {
			row = row.WithStyle(r.theme.Match)
		}
		rows[i] = row
	}

	highlightStyle := lipgloss.NewStyle().
		Background(r.theme.Colors.BgHighlight).
		Foreground(r.theme.Colors.Primary).
		Bold(true)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(r.theme.Colors.Primary)

	borderColor := r.theme.Colors.Border
	if r.focused {
		borderColor = r.theme.Colors.BorderActive
	}

	return table.New(columns).
		WithRows(rows).
		WithPageSize(r.pageSize()).
		Focused(r.focused).
		WithHighlightedRow(ts.SelectedIndex).
		BorderRounded().
		WithBaseStyle(lipgloss.NewStyle().
			Foreground(r.theme.Colors.Text).
			BorderForeground(borderColor)).
		HighlightStyle(highlightStyle).
		HeaderStyle(headerStyle)
}

func (r *ResourceTable) styleCells(tab state.Tab, item state.Item, data table.RowData) {
	switch tab {
	case state.TabPipelines:
		if status, ok := data["status"].(string); ok {
			data["status"] = table.NewStyledCell(status, r.theme.PipelineStatus(status))
		}
	case state.TabActivity:
		if entry, ok := item.(state.ActivityEntry); ok {
			icon, style := r.theme.ActivityStatus(string(entry.Status))
			data["status"] = table.NewStyledCell(icon+" "+string(entry.Status), style)
		}
	}
}

// View renders the tab in the given view mode.
func (r *ResourceTable) View(tab state.Tab, ts state.TabState, mode state.ViewMode) string {
	var b strings.Builder

	if ts.Error != "" {
		b.WriteString(r.theme.StatusError.Render(r.theme.Icons.Error + " " + ts.Error))
		b.WriteString("\n")
	}

	switch {
	case len(ts.Items) == 0:
		empty := "No entries"
		if ts.IsLoading {
			empty = "Loading…"
		}
		b.WriteString(r.theme.TextMuted.Render(empty))
	case mode == state.ViewJSON:
		b.WriteString(r.jsonView(ts))
	default:
		b.WriteString(r.buildTable(tab, ts).View())
		b.WriteString("\n")
		b.WriteString(r.theme.TextMuted.Render(fmt.Sprintf("%d/%d", ts.SelectedIndex+1, len(ts.Items))))
	}

	return lipgloss.NewStyle().
		Width(r.width).
		Height(r.height).
		MaxHeight(r.height).
		Render(b.String())
}

func (r *ResourceTable) jsonView(ts state.TabState) string {
	docs := make([]any, len(ts.Items))
	for i, item := range ts.Items {
		docs[i] = item.Document()
	}
	text, err := jsonview.Pretty(docs)
	if err != nil {
		return r.theme.StatusError.Render(err.Error())
	}
	text = jsonview.Truncate(text, max(1, r.height-1))
	return jsonview.Highlight(text, jsonview.StyleFor(r.theme.Colors.Name))
}
