// Package state holds the dashboard's application state and the pure
// reducer that advances it. Nothing in this package performs I/O.
package state

import (
	"fmt"
	"time"
)

// Tab identifies one of the four dashboard views.
type Tab int

const (
	TabPipelines Tab = iota
	TabFilters
	TabTransformations
	TabActivity
)

const TabCount = 4

// Tabs lists every tab in sidebar order.
var Tabs = [TabCount]Tab{TabPipelines, TabFilters, TabTransformations, TabActivity}

func (t Tab) String() string {
	switch t {
	case TabPipelines:
		return "pipelines"
	case TabFilters:
		return "filters"
	case TabTransformations:
		return "transformations"
	case TabActivity:
		return "activity"
	default:
		return fmt.Sprintf("tab(%d)", int(t))
	}
}

// Label is the short title used in the header and sidebar.
func (t Tab) Label() string {
	switch t {
	case TabPipelines:
		return "Pipelines"
	case TabFilters:
		return "Filters"
	case TabTransformations:
		return "Transforms"
	case TabActivity:
		return "Activity"
	default:
		return t.String()
	}
}

// IsResource reports whether the tab is backed by an API collection.
func (t Tab) IsResource() bool {
	return t == TabPipelines || t == TabFilters || t == TabTransformations
}

// Next cycles through Tabs, wrapping in both directions.
func (t Tab) Next(direction int) Tab {
	n := (int(t) + direction) % TabCount
	if n < 0 {
		n += TabCount
	}
	return Tab(n)
}

// ParseTab maps a tab name to its Tab.
func ParseTab(name string) (Tab, bool) {
	for _, t := range Tabs {
		if t.String() == name {
			return t, true
		}
	}
	return 0, false
}

type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeCommand
)

func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "SEARCH"
	case ModeCommand:
		return "COMMAND"
	default:
		return "NORMAL"
	}
}

type ViewMode int

const (
	ViewTable ViewMode = iota
	ViewJSON
)

type DetailMode int

const (
	DetailSplit DetailMode = iota
	DetailHidden
	DetailModal
)

type Focus int

const (
	FocusSidebar Focus = iota
	FocusContent
	FocusDetail
)

var focusOrder = [...]Focus{FocusSidebar, FocusContent, FocusDetail}

// Cycle returns the next focus region in sidebar, content, detail order.
func (f Focus) Cycle(direction int) Focus {
	n := len(focusOrder)
	return focusOrder[((int(f)+direction)%n+n)%n]
}

func (f Focus) String() string {
	switch f {
	case FocusSidebar:
		return "sidebar"
	case FocusDetail:
		return "detail"
	default:
		return "content"
	}
}

type MessageKind int

const (
	MessageInfo MessageKind = iota
	MessageError
)

// Message is the transient banner. A nil *Message means no banner.
type Message struct {
	Kind MessageKind
	Text string
}

func Info(text string) *Message  { return &Message{Kind: MessageInfo, Text: text} }
func Error(text string) *Message { return &Message{Kind: MessageError, Text: text} }

// Item is a row in a tab. Key is the identity within its tab; Document is
// the payload used for search and the JSON views.
type Item interface {
	Key() string
	Document() any
}

// TabState is the per-tab view state. SelectedIndex is always within
// [0, len(Items)-1] (0 when empty) and CurrentMatch indexes SearchMatches.
type TabState struct {
	Items         []Item
	IsLoading     bool
	Error         string
	SelectedIndex int
	SearchQuery   string
	SearchMatches []int
	CurrentMatch  int
	LastUpdated   time.Time
}

// Selected returns the item under the cursor.
func (ts TabState) Selected() (Item, bool) {
	if ts.SelectedIndex < 0 || ts.SelectedIndex >= len(ts.Items) {
		return nil, false
	}
	return ts.Items[ts.SelectedIndex], true
}

// IsMatch reports whether index is one of the current search matches.
func (ts TabState) IsMatch(index int) bool {
	for _, m := range ts.SearchMatches {
		if m == index {
			return true
		}
		if m > index {
			return false
		}
	}
	return false
}

type Bookmark struct {
	Tab   Tab
	Index int
}

const (
	MaxActivityEntries = 500
	MaxCommandHistory  = 100
)

type AppState struct {
	Mode             Mode
	ActiveTab        Tab
	ViewMode         ViewMode
	DetailMode       DetailMode
	Focus            Focus
	Theme            string
	LogLevel         string
	RefreshInterval  int
	RefreshCountdown int
	CommandInput     string
	CommandHistory   []string
	CommandCursor    int
	Message          *Message
	ShowHelp         bool
	KeyBuffer        string
	Bookmarks        map[string]Bookmark
	Tabs             [TabCount]TabState
}

// Options carries the startup configuration, already validated.
type Options struct {
	RefreshInterval int
	Theme           string
	LogLevel        string
}

// New returns the initial state. Resource tabs start loading; the activity
// tab does not.
func New(opts Options) AppState {
	interval := max(1, opts.RefreshInterval)
	s := AppState{
		Mode:             ModeNormal,
		ActiveTab:        TabPipelines,
		ViewMode:         ViewTable,
		DetailMode:       DetailSplit,
		Focus:            FocusContent,
		Theme:            opts.Theme,
		LogLevel:         opts.LogLevel,
		RefreshInterval:  interval,
		RefreshCountdown: interval,
		CommandCursor:    -1,
		Bookmarks:        map[string]Bookmark{},
	}
	for _, t := range Tabs {
		s.Tabs[t] = TabState{IsLoading: t.IsResource()}
	}
	return s
}

// Tab returns the state of tab t.
func (s AppState) Tab(t Tab) TabState {
	return s.Tabs[t]
}

// Current returns the state of the active tab.
func (s AppState) Current() TabState {
	return s.Tabs[s.ActiveTab]
}

// SelectedItem returns the item under the cursor on the active tab.
func (s AppState) SelectedItem() (Item, bool) {
	return s.Current().Selected()
}
