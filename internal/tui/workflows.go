package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/indexingco/indexingco-cli/internal/api"
	"github.com/indexingco/indexingco-cli/internal/tui/state"
	"github.com/indexingco/indexingco-cli/internal/tui/workflow"
)

// selectedPipeline returns the pipeline under the cursor, only on the
// pipelines tab.
func (a *App) selectedPipeline() (api.Pipeline, bool) {
	if a.state.ActiveTab != state.TabPipelines {
		return api.Pipeline{}, false
	}
	item, ok := a.state.SelectedItem()
	if !ok {
		return api.Pipeline{}, false
	}
	p, ok := item.(api.Pipeline)
	return p, ok
}

// beginWorkflow enters COMMAND mode with a guided action for the selected
// pipeline.
func (a *App) beginWorkflow(start func(pipeline string) workflow.Workflow) {
	p, ok := a.selectedPipeline()
	if !ok {
		a.dispatch(state.SetMessage{Message: state.Error("Select a pipeline first")})
		return
	}

	wf := start(p.Name)
	a.workflowSeq++
	a.workflow = &wf
	a.workflowRun = false
	a.commandHint = wf.Hint
	a.dispatch(
		state.SetMode{Mode: state.ModeCommand},
		state.SetCommandInput{Value: ""},
	)
	a.logger.Debug("workflow started", "kind", wf.Kind.String(), "pipeline", p.Name)
}

// submitWorkflow feeds the command line to the active workflow. Once the
// workflow is complete its call runs as a command; further submissions are
// ignored until the result arrives.
func (a *App) submitWorkflow() tea.Cmd {
	if a.workflow == nil || a.workflowRun {
		return nil
	}

	step := a.workflow.Submit(a.state.CommandInput)
	next := step.Next
	a.workflow = &next
	a.commandHint = next.Hint
	if step.ClearInput {
		a.dispatch(state.SetCommandInput{Value: ""})
	}
	if step.Call == nil {
		return nil
	}

	call := *step.Call
	a.workflowRun = true
	a.dispatch(state.SetMessage{Message: state.Info(call.PendingText())})
	a.logger.Info("workflow call", "kind", call.Kind.String(), "pipeline", call.Pipeline)

	ctx, svc, now, seq := a.ctx, a.svc, a.now, a.workflowSeq
	return func() tea.Msg {
		resp, err := call.Execute(ctx, svc)
		msg := workflowDoneMsg{seq: seq, call: call, response: resp, err: err}
		if err == nil && call.RefreshesPipelines() {
			result := fetchTab(ctx, svc, state.TabPipelines, now)
			msg.pipelines = &result
		}
		return msg
	}
}

// cancelWorkflow drops the workflow. A call already issued still reports
// its result.
func (a *App) cancelWorkflow() {
	a.workflow = nil
	a.workflowRun = false
	a.commandHint = ""
	a.dispatch(
		state.SetCommandInput{Value: ""},
		state.SetMode{Mode: state.ModeNormal},
	)
}

func (a *App) handleWorkflowDone(msg workflowDoneMsg) {
	at := a.now()
	source := state.TabPipelines.String()

	if msg.err != nil {
		a.logger.Error("workflow failed", "kind", msg.call.Kind.String(), "pipeline", msg.call.Pipeline, "error", msg.err)
		a.finishWorkflow(msg.seq, state.Error(msg.err.Error()))
		a.dispatch(state.AppendActivity{Entry: state.NewActivityEntry(at, source, "Action failed", state.StatusError, msg.err.Error(), nil)})
		return
	}

	a.dispatch(state.AppendActivity{Entry: state.NewActivityEntry(at, source, msg.call.ActivityTitle(), state.StatusSuccess, "", msg.call.Metadata(msg.response))})
	if msg.pipelines != nil {
		a.dispatch(state.SetTabLoading{Tab: state.TabPipelines, IsLoading: true})
		a.applyFetch(*msg.pipelines)
	}
	a.finishWorkflow(msg.seq, state.Info(msg.call.SuccessText()))
}

// finishWorkflow returns to NORMAL mode with a result banner. If the user
// already cancelled, or a newer workflow replaced the one that issued the
// call, only the banner is shown.
func (a *App) finishWorkflow(seq int, message *state.Message) {
	if a.workflow != nil && a.workflowRun && seq == a.workflowSeq {
		a.cancelWorkflow()
	}
	a.dispatch(state.SetMessage{Message: message})
}
