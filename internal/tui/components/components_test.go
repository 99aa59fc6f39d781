package components

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/indexingco/indexingco-cli/internal/api"
	"github.com/indexingco/indexingco-cli/internal/tui/state"
	"github.com/indexingco/indexingco-cli/internal/tui/theme"
)

func TestSuggest(t *testing.T) {
	verbs := []string{"refresh", "set refresh ", "set theme ", "view activity", "quit"}

	tests := []struct {
		input string
		first string
		empty bool
	}{
		{"", "", true},
		{"ref", "refresh", false},
		{"set th", "set theme ", false},
		{"va", "view activity", false},
		{"zzz", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Suggest(tt.input, verbs)
			if tt.empty {
				if len(got) != 0 {
					t.Errorf("Suggest(%q) = %v, want none", tt.input, got)
				}
				return
			}
			if len(got) == 0 || got[0] != tt.first {
				t.Errorf("Suggest(%q) = %v, want first %q", tt.input, got, tt.first)
			}
		})
	}

	if got := Suggest("quit", verbs); len(got) != 0 {
		t.Errorf("exact verb should not be suggested, got %v", got)
	}
}

func TestLastUpdatedText(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"never", time.Time{}, "never"},
		{"just now", now.Add(-2 * time.Second), "just now"},
		{"seconds", now.Add(-30 * time.Second), "30 seconds ago"},
		{"minutes", now.Add(-3 * time.Minute), "3 minutes ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LastUpdatedText(tt.ts, now); got != tt.want {
				t.Errorf("LastUpdatedText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCells(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		item state.Item
		want map[string]string
	}{
		{
			name: "pipeline defaults",
			item: api.Pipeline{Name: "p"},
			want: map[string]string{"name": "p", "status": "unknown", "transformation": "-", "filter": "-", "networks": "-"},
		},
		{
			name: "pipeline",
			item: api.Pipeline{Name: "p", Status: "running", Filter: "f", Transformation: "t", Networks: []string{"base", "eth"}},
			want: map[string]string{"name": "p", "status": "running", "transformation": "t", "filter": "f", "networks": "base, eth"},
		},
		{
			name: "filter",
			item: api.Filter{Name: "f", Values: []string{"0x1", "0x2"}},
			want: map[string]string{"name": "f", "values": "0x1, 0x2", "count": "2"},
		},
		{
			name: "transformation",
			item: api.Transformation{Name: "t"},
			want: map[string]string{"name": "t", "status": "unknown", "version": "-", "language": "js"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cells(tt.item, now)
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("cell %s = %q, want %q", k, got[k], v)
				}
			}
		})
	}

	entry := state.ActivityEntry{Timestamp: now.Add(-time.Minute), Source: "filters", Title: "Synced filters", Status: state.StatusSuccess}
	cells := Cells(entry, now)
	if cells["event"] != "Synced filters" || cells["status"] != "success" || !strings.Contains(cells["when"], "ago") {
		t.Errorf("activity cells = %v", cells)
	}
}

func TestColumns(t *testing.T) {
	want := map[state.Tab]string{
		state.TabPipelines:       "Name Status Transformation Filter Networks",
		state.TabFilters:         "Name Values Count",
		state.TabTransformations: "Name Status Version Language",
		state.TabActivity:        "When Source Event Status",
	}
	for tab, titles := range want {
		if got := strings.Join(Columns(tab), " "); got != titles {
			t.Errorf("%s columns = %q, want %q", tab, got, titles)
		}
	}
}

func TestDetailBodyCapped(t *testing.T) {
	values := make([]any, 500)
	for i := range values {
		values[i] = fmt.Sprintf("v%d", i)
	}
	item := api.Filter{Name: "big", Raw: map[string]any{"values": values}}

	body := Body(item)
	lines := strings.Split(body, "\n")
	if len(lines) != MaxDetailLines+1 {
		t.Errorf("body has %d lines, want %d plus the truncation note", len(lines), MaxDetailLines)
	}
	if !strings.HasPrefix(lines[len(lines)-1], "… (") {
		t.Errorf("missing truncation note: %q", lines[len(lines)-1])
	}

	if Body(nil) != "Nothing selected" {
		t.Errorf("nil item body = %q", Body(nil))
	}
}

func TestBannerView(t *testing.T) {
	b := NewBanner(theme.Default())
	b.SetWidth(40)

	if got := b.View(nil); got != "" {
		t.Errorf("nil message rendered %q", got)
	}
	if got := b.View(state.Error("Refresh must be > 0")); !strings.Contains(got, "Refresh must be > 0") {
		t.Errorf("banner missing text: %q", got)
	}
}

func TestResourceTableEmptyStates(t *testing.T) {
	r := NewResourceTable(theme.Default())
	r.SetSize(80, 20)

	loading := r.View(state.TabPipelines, state.TabState{IsLoading: true}, state.ViewTable)
	if !strings.Contains(loading, "Loading…") {
		t.Errorf("loading view = %q", loading)
	}

	failed := r.View(state.TabFilters, state.TabState{Error: "HTTP 500"}, state.ViewTable)
	if !strings.Contains(failed, "HTTP 500") || !strings.Contains(failed, "No entries") {
		t.Errorf("error view = %q", failed)
	}
}

func TestSpinnerLifecycle(t *testing.T) {
	s := NewSpinner(theme.ForName("dark"))

	if s.View() != "" || s.Update(struct{}{}) != nil {
		t.Fatal("idle spinner rendered or ticked")
	}

	if s.Start("Refreshing…") == nil {
		t.Fatal("Start returned no tick")
	}
	if s.Start("Refreshing again") != nil {
		t.Error("second Start returned another tick")
	}
	if !strings.Contains(s.View(), "Refreshing again") {
		t.Errorf("View() = %q, want the latest label", s.View())
	}
	if s.Update(struct{}{}) != nil {
		t.Error("non-tick message advanced the spinner")
	}

	s.Stop()
	if s.IsActive() || s.View() != "" {
		t.Error("Stop left the spinner showing")
	}
}
