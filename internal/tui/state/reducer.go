package state

import "maps"

// Reduce applies a to s and returns the new state. It never mutates s:
// slices and maps that change are rebuilt, and Tabs is copied by value.
func Reduce(s AppState, a Action) AppState {
	switch a := a.(type) {
	case SetMode:
		s.Mode = a.Mode
	case SetActiveTab:
		s.ActiveTab = a.Tab
	case SetViewMode:
		s.ViewMode = a.View
	case SetDetailMode:
		s.DetailMode = a.Detail
	case SetFocus:
		s.Focus = a.Focus
	case SetTheme:
		s.Theme = a.Theme
	case SetLogLevel:
		s.LogLevel = a.LogLevel
	case SetCommandInput:
		s.CommandInput = a.Value
	case SetCommandCursor:
		s.CommandCursor = a.Cursor
	case SetMessage:
		s.Message = a.Message
	case SetKeyBuffer:
		s.KeyBuffer = a.Value
	case ToggleHelp:
		s.ShowHelp = !s.ShowHelp
	case SetHelp:
		s.ShowHelp = a.Visible

	case SetRefreshInterval:
		s.RefreshInterval = a.Interval
		s.RefreshCountdown = a.Interval
	case SetRefreshCountdown:
		s.RefreshCountdown = max(0, a.Countdown)
	case TickRefresh:
		s.RefreshCountdown = max(0, s.RefreshCountdown-1)

	case PushCommandHistory:
		history := make([]string, 0, min(len(s.CommandHistory)+1, MaxCommandHistory))
		history = append(history, a.Command)
		for _, c := range s.CommandHistory {
			if len(history) == MaxCommandHistory {
				break
			}
			history = append(history, c)
		}
		s.CommandHistory = history
		s.CommandCursor = -1

	case AddBookmark:
		marks := maps.Clone(s.Bookmarks)
		if marks == nil {
			marks = map[string]Bookmark{}
		}
		marks[a.Key] = Bookmark{Tab: a.Tab, Index: a.Index}
		s.Bookmarks = marks
	case RemoveBookmark:
		if _, ok := s.Bookmarks[a.Key]; ok {
			marks := maps.Clone(s.Bookmarks)
			delete(marks, a.Key)
			s.Bookmarks = marks
		}

	case UpdateTabItems:
		s = updateTab(s, a.Tab, func(ts TabState) TabState {
			ts.Items = a.Items
			ts.IsLoading = false
			ts.Error = ""
			ts.LastUpdated = a.Timestamp
			if ts.SearchQuery != "" {
				ts.SearchMatches = Matches(a.Items, ts.SearchQuery)
			}
			return ts
		})
	case SetTabLoading:
		s = updateTab(s, a.Tab, func(ts TabState) TabState {
			ts.IsLoading = a.IsLoading
			return ts
		})
	case SetTabError:
		s = updateTab(s, a.Tab, func(ts TabState) TabState {
			ts.IsLoading = false
			ts.Error = a.Error
			return ts
		})
	case MoveSelection:
		s = updateTab(s, a.Tab, func(ts TabState) TabState {
			ts.SelectedIndex += a.Delta
			return ts
		})
	case SetSelection:
		s = updateTab(s, a.Tab, func(ts TabState) TabState {
			ts.SelectedIndex = a.Index
			return ts
		})
	case SetSearchQuery:
		s = updateTab(s, a.Tab, func(ts TabState) TabState {
			ts.SearchQuery = a.Query
			ts.SearchMatches = Matches(ts.Items, a.Query)
			ts.CurrentMatch = 0
			if len(ts.SearchMatches) > 0 {
				ts.SelectedIndex = ts.SearchMatches[0]
			}
			return ts
		})
	case SetCurrentMatch:
		s = updateTab(s, a.Tab, func(ts TabState) TabState {
			ts.CurrentMatch = a.Current
			return ts
		})
	case CycleSearchMatch:
		s = updateTab(s, a.Tab, func(ts TabState) TabState {
			n := len(ts.SearchMatches)
			if n == 0 {
				return ts
			}
			ts.CurrentMatch = ((ts.CurrentMatch+a.Direction)%n + n) % n
			ts.SelectedIndex = ts.SearchMatches[ts.CurrentMatch]
			return ts
		})
	case ClearSearch:
		s = updateTab(s, a.Tab, func(ts TabState) TabState {
			ts.SearchQuery = ""
			ts.SearchMatches = nil
			ts.CurrentMatch = 0
			return ts
		})

	case AppendActivity:
		s = updateTab(s, TabActivity, func(ts TabState) TabState {
			items := make([]Item, 0, min(len(ts.Items)+1, MaxActivityEntries))
			items = append(items, a.Entry)
			for _, it := range ts.Items {
				if len(items) == MaxActivityEntries {
					break
				}
				items = append(items, it)
			}
			ts.Items = items
			ts.IsLoading = false
			ts.LastUpdated = a.Entry.Timestamp
			if ts.SearchQuery != "" {
				ts.SearchMatches = Matches(items, ts.SearchQuery)
			}
			return ts
		})
	}
	return s
}

// updateTab replaces exactly one tab's state and re-clamps its indices. Every
// per-tab transition goes through here.
func updateTab(s AppState, tab Tab, fn func(TabState) TabState) AppState {
	if tab < 0 || int(tab) >= TabCount {
		return s
	}
	ts := fn(s.Tabs[tab])
	ts.SelectedIndex = clampIndex(ts.SelectedIndex, len(ts.Items))
	ts.CurrentMatch = clampIndex(ts.CurrentMatch, len(ts.SearchMatches))
	s.Tabs[tab] = ts
	return s
}

func clampIndex(index, size int) int {
	if size <= 0 || index < 0 {
		return 0
	}
	if index >= size {
		return size - 1
	}
	return index
}

// ResolveBookmark returns the bookmark for key with its index re-clamped
// against the tab's current items.
func (s AppState) ResolveBookmark(key string) (Bookmark, bool) {
	mark, ok := s.Bookmarks[key]
	if !ok || mark.Tab < 0 || int(mark.Tab) >= TabCount {
		return Bookmark{}, false
	}
	mark.Index = clampIndex(mark.Index, len(s.Tabs[mark.Tab].Items))
	return mark, true
}
