package state

import (
	"fmt"
	"math/rand/v2"
	"reflect"
	"strings"
	"testing"
	"time"
)

type testItem struct {
	name string
	doc  map[string]any
}

func (i testItem) Key() string   { return i.name }
func (i testItem) Document() any { return i.doc }

func named(names ...string) []Item {
	items := make([]Item, len(names))
	for i, n := range names {
		items[i] = testItem{name: n, doc: map[string]any{"name": n}}
	}
	return items
}

func newState() AppState {
	return New(Options{RefreshInterval: 5, Theme: "dark", LogLevel: "info"})
}

func TestNew(t *testing.T) {
	s := New(Options{RefreshInterval: 0, Theme: "mono", LogLevel: "debug"})

	if s.RefreshInterval != 1 || s.RefreshCountdown != 1 {
		t.Errorf("interval should be floored at 1, got %d/%d", s.RefreshInterval, s.RefreshCountdown)
	}
	if s.Mode != ModeNormal || s.ActiveTab != TabPipelines || s.Focus != FocusContent {
		t.Errorf("unexpected initial mode/tab/focus: %v %v %v", s.Mode, s.ActiveTab, s.Focus)
	}
	if s.DetailMode != DetailSplit || s.ViewMode != ViewTable {
		t.Errorf("unexpected initial detail/view mode")
	}
	if s.CommandCursor != -1 {
		t.Errorf("CommandCursor = %d, want -1", s.CommandCursor)
	}
	for _, tab := range Tabs {
		if got, want := s.Tab(tab).IsLoading, tab != TabActivity; got != want {
			t.Errorf("%s IsLoading = %v, want %v", tab, got, want)
		}
	}
}

func TestMoveSelectionClamps(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 500; i++ {
		size := rng.IntN(20)
		s := Reduce(newState(), UpdateTabItems{Tab: TabFilters, Items: make([]Item, size), Timestamp: time.Unix(1, 0)})

		for j := 0; j < 10; j++ {
			delta := rng.IntN(60) - 30
			s = Reduce(s, MoveSelection{Tab: TabFilters, Delta: delta})

			got := s.Tab(TabFilters).SelectedIndex
			if size == 0 && got != 0 {
				t.Fatalf("empty list: SelectedIndex = %d, want 0", got)
			}
			if size > 0 && (got < 0 || got > size-1) {
				t.Fatalf("size %d delta %d: SelectedIndex %d out of range", size, delta, got)
			}
		}
	}
}

func TestSetSelection(t *testing.T) {
	tests := []struct {
		name  string
		items int
		index int
		want  int
	}{
		{"in range", 5, 3, 3},
		{"negative", 5, -2, 0},
		{"past end", 5, 9, 4},
		{"empty", 0, 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Reduce(newState(), UpdateTabItems{Tab: TabPipelines, Items: make([]Item, tt.items)})
			s = Reduce(s, SetSelection{Tab: TabPipelines, Index: tt.index})
			if got := s.Tab(TabPipelines).SelectedIndex; got != tt.want {
				t.Errorf("SelectedIndex = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUpdateTabItemsReclampsSelection(t *testing.T) {
	s := Reduce(newState(), UpdateTabItems{Tab: TabPipelines, Items: named("a", "b", "c", "d")})
	s = Reduce(s, SetSelection{Tab: TabPipelines, Index: 3})
	s = Reduce(s, SetTabError{Tab: TabPipelines, Error: "boom"})
	s = Reduce(s, UpdateTabItems{Tab: TabPipelines, Items: named("a", "b")})

	ts := s.Tab(TabPipelines)
	if ts.SelectedIndex != 1 {
		t.Errorf("SelectedIndex = %d, want 1", ts.SelectedIndex)
	}
	if ts.Error != "" || ts.IsLoading {
		t.Errorf("update should clear error and loading, got %q/%v", ts.Error, ts.IsLoading)
	}
}

func TestUpdateTabItemsIdempotent(t *testing.T) {
	stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	items := named("alpha", "beta", "gamma")

	s := Reduce(newState(), SetSearchQuery{Tab: TabPipelines, Query: "a"})
	once := Reduce(s, UpdateTabItems{Tab: TabPipelines, Items: items, Timestamp: stamp})
	twice := Reduce(once, UpdateTabItems{Tab: TabPipelines, Items: items, Timestamp: stamp})

	if !reflect.DeepEqual(once.Tab(TabPipelines), twice.Tab(TabPipelines)) {
		t.Errorf("second update changed tab state:\n%+v\n%+v", once.Tab(TabPipelines), twice.Tab(TabPipelines))
	}
}

func TestUpdateTabItemsRecomputesMatches(t *testing.T) {
	s := Reduce(newState(), UpdateTabItems{Tab: TabFilters, Items: named("usdc", "weth")})
	s = Reduce(s, SetSearchQuery{Tab: TabFilters, Query: "weth"})
	if got := s.Tab(TabFilters).SearchMatches; !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("SearchMatches = %v, want [1]", got)
	}

	s = Reduce(s, UpdateTabItems{Tab: TabFilters, Items: named("weth", "dai", "weth-2")})
	if got := s.Tab(TabFilters).SearchMatches; !reflect.DeepEqual(got, []int{0, 2}) {
		t.Errorf("SearchMatches after update = %v, want [0 2]", got)
	}
}

func TestSearchEndToEnd(t *testing.T) {
	s := Reduce(newState(), UpdateTabItems{Tab: TabPipelines, Items: named("a", "b", "c")})
	s = Reduce(s, SetSearchQuery{Tab: TabPipelines, Query: "b"})

	ts := s.Tab(TabPipelines)
	if !reflect.DeepEqual(ts.SearchMatches, []int{1}) {
		t.Fatalf("SearchMatches = %v, want [1]", ts.SearchMatches)
	}
	if ts.CurrentMatch != 0 {
		t.Errorf("CurrentMatch = %d, want 0", ts.CurrentMatch)
	}
	if ts.SelectedIndex != 1 {
		t.Errorf("SelectedIndex = %d, want 1", ts.SelectedIndex)
	}

	s = Reduce(s, CycleSearchMatch{Tab: TabPipelines, Direction: 1})
	ts = s.Tab(TabPipelines)
	if ts.CurrentMatch != 0 || ts.SelectedIndex != 1 || !reflect.DeepEqual(ts.SearchMatches, []int{1}) {
		t.Errorf("cycling a single match should wrap to itself, got %+v", ts)
	}
}

func TestCycleSearchMatch(t *testing.T) {
	s := Reduce(newState(), UpdateTabItems{Tab: TabPipelines, Items: named("x1", "y", "x2", "x3")})

	// no matches: no-op
	before := Reduce(s, CycleSearchMatch{Tab: TabPipelines, Direction: 1})
	if !reflect.DeepEqual(before.Tab(TabPipelines), s.Tab(TabPipelines)) {
		t.Errorf("cycle without matches changed state")
	}

	s = Reduce(s, SetSearchQuery{Tab: TabPipelines, Query: "X"})
	steps := []struct {
		dir      int
		current  int
		selected int
	}{
		{1, 1, 2},
		{1, 2, 3},
		{1, 0, 0},
		{-1, 2, 3},
		{-1, 1, 2},
	}
	for i, step := range steps {
		s = Reduce(s, CycleSearchMatch{Tab: TabPipelines, Direction: step.dir})
		ts := s.Tab(TabPipelines)
		if ts.CurrentMatch != step.current || ts.SelectedIndex != step.selected {
			t.Errorf("step %d: current=%d selected=%d, want %d/%d", i, ts.CurrentMatch, ts.SelectedIndex, step.current, step.selected)
		}
	}
}

func TestSetCurrentMatchClamps(t *testing.T) {
	s := Reduce(newState(), UpdateTabItems{Tab: TabPipelines, Items: named("ab", "ac")})
	s = Reduce(s, SetSearchQuery{Tab: TabPipelines, Query: "a"})
	s = Reduce(s, SetCurrentMatch{Tab: TabPipelines, Current: 10})
	if got := s.Tab(TabPipelines).CurrentMatch; got != 1 {
		t.Errorf("CurrentMatch = %d, want 1", got)
	}

	s = Reduce(s, ClearSearch{Tab: TabPipelines})
	ts := s.Tab(TabPipelines)
	if ts.SearchQuery != "" || len(ts.SearchMatches) != 0 || ts.CurrentMatch != 0 {
		t.Errorf("ClearSearch left %+v", ts)
	}
}

func TestAppendActivityCap(t *testing.T) {
	s := newState()
	base := time.Unix(1700000000, 0)

	for i := 0; i < MaxActivityEntries+37; i++ {
		entry := ActivityEntry{ID: fmt.Sprintf("e%d", i), Timestamp: base.Add(time.Duration(i) * time.Second)}
		s = Reduce(s, AppendActivity{Entry: entry})

		items := s.Tab(TabActivity).Items
		if len(items) > MaxActivityEntries {
			t.Fatalf("activity log grew to %d entries", len(items))
		}
		if items[0].Key() != entry.ID {
			t.Fatalf("newest entry not at index 0: got %s want %s", items[0].Key(), entry.ID)
		}
	}

	ts := s.Tab(TabActivity)
	if len(ts.Items) != MaxActivityEntries {
		t.Errorf("len = %d, want %d", len(ts.Items), MaxActivityEntries)
	}
	if last := ts.Items[len(ts.Items)-1].Key(); last != "e37" {
		t.Errorf("oldest retained entry = %s, want e37", last)
	}
	if !ts.LastUpdated.Equal(base.Add(time.Duration(MaxActivityEntries+36) * time.Second)) {
		t.Errorf("LastUpdated not stamped from newest entry: %v", ts.LastUpdated)
	}
}

func TestRefreshCountdown(t *testing.T) {
	s := Reduce(newState(), SetRefreshInterval{Interval: 2})
	if s.RefreshInterval != 2 || s.RefreshCountdown != 2 {
		t.Fatalf("SetRefreshInterval did not reset countdown: %d/%d", s.RefreshInterval, s.RefreshCountdown)
	}

	for _, want := range []int{1, 0, 0} {
		s = Reduce(s, TickRefresh{})
		if s.RefreshCountdown != want {
			t.Errorf("RefreshCountdown = %d, want %d", s.RefreshCountdown, want)
		}
	}
}

func TestCommandHistory(t *testing.T) {
	s := Reduce(newState(), SetCommandCursor{Cursor: 3})
	for i := 0; i < MaxCommandHistory+5; i++ {
		s = Reduce(s, PushCommandHistory{Command: fmt.Sprintf("cmd %d", i)})
	}

	if len(s.CommandHistory) != MaxCommandHistory {
		t.Errorf("history length = %d, want %d", len(s.CommandHistory), MaxCommandHistory)
	}
	if s.CommandHistory[0] != fmt.Sprintf("cmd %d", MaxCommandHistory+4) {
		t.Errorf("most recent command should be first, got %q", s.CommandHistory[0])
	}
	if s.CommandCursor != -1 {
		t.Errorf("push should reset cursor, got %d", s.CommandCursor)
	}
}

func TestBookmarks(t *testing.T) {
	s := Reduce(newState(), UpdateTabItems{Tab: TabFilters, Items: named("a", "b", "c", "d")})
	original := s

	s = Reduce(s, AddBookmark{Key: "x", Tab: TabFilters, Index: 3})
	if len(original.Bookmarks) != 0 {
		t.Fatalf("AddBookmark mutated the previous state's map")
	}

	mark, ok := s.ResolveBookmark("x")
	if !ok || mark.Tab != TabFilters || mark.Index != 3 {
		t.Fatalf("ResolveBookmark = %+v, %v", mark, ok)
	}

	// the tab shrinks; the stored index stays, resolution re-clamps
	s = Reduce(s, UpdateTabItems{Tab: TabFilters, Items: named("a")})
	if mark, _ := s.ResolveBookmark("x"); mark.Index != 0 {
		t.Errorf("stale bookmark resolved to %d, want 0", mark.Index)
	}
	if s.Bookmarks["x"].Index != 3 {
		t.Errorf("stored bookmark index changed to %d", s.Bookmarks["x"].Index)
	}

	withMark := s
	s = Reduce(s, RemoveBookmark{Key: "x"})
	if _, ok := s.ResolveBookmark("x"); ok {
		t.Errorf("bookmark still present after removal")
	}
	if _, ok := withMark.Bookmarks["x"]; !ok {
		t.Errorf("RemoveBookmark mutated the previous state's map")
	}
}

func TestReducePurity(t *testing.T) {
	s := Reduce(newState(), UpdateTabItems{Tab: TabPipelines, Items: named("a", "b")})
	snapshot := s.Tab(TabPipelines).Items

	next := Reduce(s, UpdateTabItems{Tab: TabPipelines, Items: named("z")})
	next = Reduce(next, SetHelp{Visible: true})

	if len(s.Tab(TabPipelines).Items) != 2 || s.ShowHelp {
		t.Errorf("Reduce mutated its input state")
	}
	if !reflect.DeepEqual(snapshot, s.Tab(TabPipelines).Items) {
		t.Errorf("items slice of the previous state changed")
	}

	a := Reduce(s, SetSearchQuery{Tab: TabPipelines, Query: "b"})
	b := Reduce(s, SetSearchQuery{Tab: TabPipelines, Query: "b"})
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Reduce is not deterministic")
	}
}

func TestModesAndToggles(t *testing.T) {
	s := Reduce(newState(), SetMode{Mode: ModeCommand})
	s = Reduce(s, SetCommandInput{Value: "set theme mono"})
	s = Reduce(s, ToggleHelp{})
	s = Reduce(s, SetMessage{Message: Error("nope")})
	s = Reduce(s, SetKeyBuffer{Value: "g"})
	s = Reduce(s, SetDetailMode{Detail: DetailModal})
	s = Reduce(s, SetViewMode{View: ViewJSON})
	s = Reduce(s, SetTheme{Theme: "mono"})
	s = Reduce(s, SetLogLevel{LogLevel: "debug"})

	if s.Mode != ModeCommand || s.CommandInput != "set theme mono" || !s.ShowHelp {
		t.Errorf("unexpected state %+v", s)
	}
	if s.Message == nil || s.Message.Kind != MessageError || s.Message.Text != "nope" {
		t.Errorf("Message = %+v", s.Message)
	}
	if s.KeyBuffer != "g" || s.DetailMode != DetailModal || s.ViewMode != ViewJSON {
		t.Errorf("unexpected buffer/detail/view")
	}
	if s.Theme != "mono" || s.LogLevel != "debug" {
		t.Errorf("unexpected theme/log level")
	}

	s = Reduce(s, ToggleHelp{})
	if s.ShowHelp {
		t.Errorf("ToggleHelp should flip back")
	}
}

func TestTabHelpers(t *testing.T) {
	if TabActivity.Next(1) != TabPipelines || TabPipelines.Next(-1) != TabActivity {
		t.Errorf("Tab.Next does not wrap")
	}
	if FocusDetail.Cycle(1) != FocusSidebar || FocusSidebar.Cycle(-1) != FocusDetail {
		t.Errorf("Focus.Cycle does not wrap")
	}
	for _, tab := range Tabs {
		got, ok := ParseTab(tab.String())
		if !ok || got != tab {
			t.Errorf("ParseTab(%s) = %v, %v", tab, got, ok)
		}
	}
	if _, ok := ParseTab("PIPELINES"); ok {
		t.Errorf("ParseTab should be case-sensitive")
	}
	if TabActivity.IsResource() || !TabFilters.IsResource() {
		t.Errorf("IsResource mismatch")
	}
	if !strings.EqualFold(TabTransformations.Label(), "transforms") {
		t.Errorf("Label = %s", TabTransformations.Label())
	}
}
