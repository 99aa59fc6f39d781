package tui

import (
	"encoding/json"
	"time"

	"github.com/indexingco/indexingco-cli/internal/config"
	"github.com/indexingco/indexingco-cli/internal/tui/state"
	"github.com/indexingco/indexingco-cli/internal/tui/workflow"
)

// tickMsg advances the refresh countdown once per second.
type tickMsg struct {
	timestamp time.Time
}

// fetchResult is the outcome of listing one resource tab.
type fetchResult struct {
	tab   state.Tab
	items []state.Item
	err   error
	at    time.Time
}

// refreshCompleteMsg is sent once all three list calls have settled.
type refreshCompleteMsg struct {
	results []fetchResult
}

// workflowDoneMsg carries a workflow call's result. seq identifies the
// workflow that issued it.
type workflowDoneMsg struct {
	seq      int
	call     workflow.Call
	response json.RawMessage
	err      error
	// pipelines is set when the call is followed by a pipelines re-fetch.
	pipelines *fetchResult
}

// keyBufferExpiredMsg clears a pending chord unless a newer key replaced it.
type keyBufferExpiredMsg struct {
	seq int
}

type configReloadedMsg struct {
	config *config.Config
}
