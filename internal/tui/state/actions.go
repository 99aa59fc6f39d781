package state

import "time"

// Action is the closed set of transitions accepted by Reduce.
type Action interface {
	isAction()
}

type (
	SetMode            struct{ Mode Mode }
	SetActiveTab       struct{ Tab Tab }
	SetViewMode        struct{ View ViewMode }
	SetDetailMode      struct{ Detail DetailMode }
	SetFocus           struct{ Focus Focus }
	SetTheme           struct{ Theme string }
	SetLogLevel        struct{ LogLevel string }
	SetCommandInput    struct{ Value string }
	PushCommandHistory struct{ Command string }
	SetCommandCursor   struct{ Cursor int }
	SetMessage         struct{ Message *Message }
	SetKeyBuffer       struct{ Value string }
	RemoveBookmark     struct{ Key string }
	AppendActivity     struct{ Entry ActivityEntry }

	// SetRefreshInterval also resets the countdown.
	SetRefreshInterval  struct{ Interval int }
	SetRefreshCountdown struct{ Countdown int }
	// TickRefresh decrements the countdown, floored at 0.
	TickRefresh struct{}

	// ToggleHelp flips the overlay; SetHelp forces it.
	ToggleHelp struct{}
	SetHelp    struct{ Visible bool }

	UpdateTabItems struct {
		Tab       Tab
		Items     []Item
		Timestamp time.Time
	}
	SetTabLoading struct {
		Tab       Tab
		IsLoading bool
	}
	SetTabError struct {
		Tab   Tab
		Error string
	}
	MoveSelection struct {
		Tab   Tab
		Delta int
	}
	SetSelection struct {
		Tab   Tab
		Index int
	}
	// SetSearchQuery recomputes matches and moves the cursor to the first one.
	SetSearchQuery struct {
		Tab   Tab
		Query string
	}
	SetCurrentMatch struct {
		Tab     Tab
		Current int
	}
	// CycleSearchMatch steps through matches with wraparound and selects the
	// matched row. No-op without matches.
	CycleSearchMatch struct {
		Tab       Tab
		Direction int
	}
	ClearSearch struct{ Tab Tab }
	AddBookmark struct {
		Key   string
		Tab   Tab
		Index int
	}
)

func (SetMode) isAction()             {}
func (SetActiveTab) isAction()        {}
func (SetViewMode) isAction()         {}
func (SetDetailMode) isAction()       {}
func (SetFocus) isAction()            {}
func (SetTheme) isAction()            {}
func (SetLogLevel) isAction()         {}
func (SetCommandInput) isAction()     {}
func (PushCommandHistory) isAction()  {}
func (SetCommandCursor) isAction()    {}
func (SetMessage) isAction()          {}
func (SetKeyBuffer) isAction()        {}
func (RemoveBookmark) isAction()      {}
func (AppendActivity) isAction()      {}
func (SetRefreshInterval) isAction()  {}
func (SetRefreshCountdown) isAction() {}
func (TickRefresh) isAction()         {}
func (ToggleHelp) isAction()          {}
func (SetHelp) isAction()             {}
func (UpdateTabItems) isAction()      {}
func (SetTabLoading) isAction()       {}
func (SetTabError) isAction()         {}
func (MoveSelection) isAction()       {}
func (SetSelection) isAction()        {}
func (SetSearchQuery) isAction()      {}
func (SetCurrentMatch) isAction()     {}
func (CycleSearchMatch) isAction()    {}
func (ClearSearch) isAction()         {}
func (AddBookmark) isAction()         {}
