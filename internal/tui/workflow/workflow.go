// Package workflow implements the guided multi-step actions run from
// COMMAND mode against the selected pipeline: backfill, test and delete.
//
// A Workflow is a value. Submit returns the next value and, once every
// field is collected, the Call to issue. Validation failures only change
// the hint; they never advance the stage.
package workflow

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/indexingco/indexingco-cli/internal/api"
)

type Kind int

const (
	KindBackfill Kind = iota
	KindDelete
	KindTest
)

func (k Kind) String() string {
	switch k {
	case KindBackfill:
		return "backfill"
	case KindDelete:
		return "delete"
	case KindTest:
		return "test"
	default:
		return "unknown"
	}
}

type Stage int

const (
	StageNetwork Stage = iota
	StageValue
	StageTarget
	StageConfirm
)

// Hints shown under the command bar.
const (
	HintNetwork         = "network (e.g. base)"
	HintNetworkRequired = "network is required"
	HintValue           = "value (address or hash)"
	HintValueRequired   = "value is required"
	HintDelete          = "type 'yes' to delete"
	HintConfirm         = "type 'yes' to confirm"
	HintTarget          = "beat:<n> or hash:<value>"
	HintBeatRequired    = "beat value required"
	HintHashRequired    = "hash value required"
	HintTargetShape     = "prefix with beat: or hash:"
)

type Workflow struct {
	Kind     Kind
	Pipeline string
	Stage    Stage
	Network  string
	Hint     string
}

func NewBackfill(pipeline string) Workflow {
	return Workflow{Kind: KindBackfill, Pipeline: pipeline, Stage: StageNetwork, Hint: HintNetwork}
}

func NewDelete(pipeline string) Workflow {
	return Workflow{Kind: KindDelete, Pipeline: pipeline, Stage: StageConfirm, Hint: HintDelete}
}

func NewTest(pipeline string) Workflow {
	return Workflow{Kind: KindTest, Pipeline: pipeline, Stage: StageNetwork, Hint: HintNetwork}
}

// Step is the result of one submission.
type Step struct {
	Next Workflow
	// ClearInput is set when the stage advanced.
	ClearInput bool
	// Call is non-nil when the workflow is complete.
	Call *Call
}

var (
	hashPattern = regexp.MustCompile(`(?i)^0x`)
	beatPattern = regexp.MustCompile(`^\d+$`)
)

// Submit feeds one line of input to the workflow.
func (w Workflow) Submit(raw string) Step {
	input := strings.TrimSpace(raw)

	switch w.Kind {
	case KindBackfill:
		if w.Stage == StageNetwork {
			if input == "" {
				return w.reprompt(HintNetworkRequired)
			}
			w.Stage, w.Network, w.Hint = StageValue, input, HintValue
			return Step{Next: w, ClearInput: true}
		}
		if input == "" || w.Network == "" {
			return w.reprompt(HintValueRequired)
		}
		return Step{Next: w, Call: &Call{
			Kind:     KindBackfill,
			Pipeline: w.Pipeline,
			Backfill: api.PipelineBackfillRequest{Network: w.Network, Value: input},
		}}

	case KindDelete:
		if !strings.EqualFold(input, "yes") {
			return w.reprompt(HintConfirm)
		}
		return Step{Next: w, Call: &Call{Kind: KindDelete, Pipeline: w.Pipeline}}

	case KindTest:
		if w.Stage == StageNetwork {
			if input == "" {
				return w.reprompt(HintNetworkRequired)
			}
			w.Stage, w.Network, w.Hint = StageTarget, input, HintTarget
			return Step{Next: w, ClearInput: true}
		}
		if w.Network == "" {
			return w.reprompt(HintNetworkRequired)
		}
		req, hint := parseTarget(w.Network, input)
		if hint != "" {
			return w.reprompt(hint)
		}
		return Step{Next: w, Call: &Call{Kind: KindTest, Pipeline: w.Pipeline, Test: req}}
	}

	return Step{Next: w}
}

func (w Workflow) reprompt(hint string) Step {
	w.Hint = hint
	return Step{Next: w}
}

// parseTarget returns a request with exactly one of beat or hash, or the
// hint to show when input has no recognizable shape.
func parseTarget(network, input string) (api.PipelineTestRequest, string) {
	req := api.PipelineTestRequest{Network: network}
	switch {
	case strings.HasPrefix(input, "beat:"):
		req.Beat = strings.TrimSpace(input[len("beat:"):])
		if req.Beat == "" {
			return req, HintBeatRequired
		}
	case strings.HasPrefix(input, "hash:"):
		req.Hash = strings.TrimSpace(input[len("hash:"):])
		if req.Hash == "" {
			return req, HintHashRequired
		}
	case hashPattern.MatchString(input):
		req.Hash = input
	case beatPattern.MatchString(input):
		req.Beat = input
	default:
		return req, HintTargetShape
	}
	return req, ""
}

// Call is a fully collected mutating request.
type Call struct {
	Kind     Kind
	Pipeline string
	Backfill api.PipelineBackfillRequest
	Test     api.PipelineTestRequest
}

func (c Call) Execute(ctx context.Context, svc api.Service) (json.RawMessage, error) {
	switch c.Kind {
	case KindBackfill:
		return svc.BackfillPipeline(ctx, c.Pipeline, c.Backfill)
	case KindDelete:
		return svc.DeletePipeline(ctx, c.Pipeline)
	default:
		return svc.TestPipeline(ctx, c.Pipeline, c.Test)
	}
}

// PendingText is the banner shown while the call is in flight.
func (c Call) PendingText() string {
	switch c.Kind {
	case KindBackfill:
		return "Backfilling pipeline…"
	case KindDelete:
		return "Deleting pipeline…"
	default:
		return "Testing pipeline…"
	}
}

func (c Call) SuccessText() string {
	switch c.Kind {
	case KindBackfill:
		return "Backfill triggered"
	case KindDelete:
		return "Pipeline deleted"
	default:
		return "Pipeline test completed"
	}
}

func (c Call) ActivityTitle() string {
	switch c.Kind {
	case KindBackfill:
		return "Backfill " + c.Pipeline
	case KindDelete:
		return "Deleted " + c.Pipeline
	default:
		return "Test " + c.Pipeline
	}
}

// RefreshesPipelines reports whether the pipelines tab is re-fetched after
// a successful call.
func (c Call) RefreshesPipelines() bool {
	return c.Kind == KindBackfill || c.Kind == KindDelete
}

// Metadata is attached to the success activity entry.
func (c Call) Metadata(response json.RawMessage) map[string]any {
	switch c.Kind {
	case KindBackfill:
		return map[string]any{"network": c.Backfill.Network, "value": c.Backfill.Value}
	case KindTest:
		request := map[string]any{"network": c.Test.Network}
		if c.Test.Beat != "" {
			request["beat"] = c.Test.Beat
		}
		if c.Test.Hash != "" {
			request["hash"] = c.Test.Hash
		}
		var decoded any
		if len(response) > 0 {
			if err := json.Unmarshal(response, &decoded); err != nil {
				decoded = string(response)
			}
		}
		return map[string]any{"request": request, "response": decoded}
	default:
		return nil
	}
}
