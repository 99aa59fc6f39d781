package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/indexingco/indexingco-cli/internal/api"
	"github.com/indexingco/indexingco-cli/internal/tui/state"
)

var resourceTabs = [...]state.Tab{state.TabPipelines, state.TabFilters, state.TabTransformations}

func (a *App) tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg{timestamp: t}
	})
}

// handleTick counts down and starts a refresh when the countdown reaches
// zero. While a refresh is in flight the countdown stays at zero and
// refreshAll ignores the trigger.
func (a *App) handleTick() tea.Cmd {
	a.dispatch(state.TickRefresh{})
	cmds := []tea.Cmd{a.tick()}
	if a.state.RefreshCountdown == 0 {
		cmds = append(cmds, a.refreshAll())
	}
	return tea.Batch(cmds...)
}

// refreshAll lists every resource kind concurrently. It returns nil when a
// refresh is already running.
func (a *App) refreshAll() tea.Cmd {
	if a.refreshing {
		a.logger.Debug("refresh skipped, already in flight")
		return nil
	}
	a.refreshing = true
	a.dispatch(state.SetMessage{Message: nil})
	for _, tab := range resourceTabs {
		a.dispatch(state.SetTabLoading{Tab: tab, IsLoading: true})
	}

	ctx, svc, now := a.ctx, a.svc, a.now
	fetchAll := func() tea.Msg {
		results := make([]fetchResult, len(resourceTabs))
		var g errgroup.Group
		for i, tab := range resourceTabs {
			g.Go(func() error {
				results[i] = fetchTab(ctx, svc, tab, now)
				return nil
			})
		}
		_ = g.Wait()
		return refreshCompleteMsg{results: results}
	}

	return tea.Batch(a.spinner.Start("Refreshing…"), fetchAll)
}

// fetchTab lists one resource kind. Errors are carried in the result.
func fetchTab(ctx context.Context, svc api.Service, tab state.Tab, now func() time.Time) fetchResult {
	result := fetchResult{tab: tab}

	switch tab {
	case state.TabPipelines:
		list, err := svc.ListPipelines(ctx)
		result.err = err
		for _, p := range list.Items {
			result.items = append(result.items, p)
		}
	case state.TabFilters:
		list, err := svc.ListFilters(ctx)
		result.err = err
		for _, f := range list.Items {
			result.items = append(result.items, f)
		}
	case state.TabTransformations:
		list, err := svc.ListTransformations(ctx)
		result.err = err
		for _, t := range list.Items {
			result.items = append(result.items, t)
		}
	default:
		result.err = fmt.Errorf("tab %s has no resource", tab)
	}

	result.at = now()
	return result
}

func (a *App) handleRefreshComplete(msg refreshCompleteMsg) {
	for _, result := range msg.results {
		a.applyFetch(result)
	}
	a.dispatch(state.SetRefreshCountdown{Countdown: a.state.RefreshInterval})
	a.refreshing = false
	a.spinner.Stop()
}

var syncFailedTitles = map[state.Tab]string{
	state.TabPipelines:       "Pipeline sync failed",
	state.TabFilters:         "Filter sync failed",
	state.TabTransformations: "Transformation sync failed",
}

// applyFetch turns one list outcome into tab state and an activity entry.
func (a *App) applyFetch(result fetchResult) {
	source := result.tab.String()

	if result.err != nil {
		a.logger.Warn("sync failed", "tab", source, "error", result.err)
		a.dispatch(
			state.SetTabError{Tab: result.tab, Error: result.err.Error()},
			state.AppendActivity{Entry: state.NewActivityEntry(result.at, source, syncFailedTitles[result.tab], state.StatusError, result.err.Error(), nil)},
		)
		return
	}

	a.logger.Debug("synced", "tab", source, "count", len(result.items))
	a.dispatch(
		state.UpdateTabItems{Tab: result.tab, Items: result.items, Timestamp: result.at},
		state.AppendActivity{Entry: state.NewActivityEntry(result.at, source, "Synced "+source, state.StatusSuccess, "", map[string]any{"count": len(result.items)})},
	)
}
