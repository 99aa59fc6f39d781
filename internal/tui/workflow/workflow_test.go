package workflow

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/indexingco/indexingco-cli/internal/api"
)

func TestBackfill(t *testing.T) {
	w := NewBackfill("usdc-transfers")
	if w.Hint != HintNetwork {
		t.Fatalf("initial hint = %q", w.Hint)
	}

	step := w.Submit("   ")
	if step.Call != nil || step.ClearInput || step.Next.Stage != StageNetwork {
		t.Fatalf("empty network advanced the workflow: %+v", step)
	}
	if step.Next.Hint != HintNetworkRequired {
		t.Errorf("hint = %q, want %q", step.Next.Hint, HintNetworkRequired)
	}

	step = step.Next.Submit("base")
	if step.Call != nil || !step.ClearInput || step.Next.Stage != StageValue || step.Next.Network != "base" {
		t.Fatalf("network stage did not advance: %+v", step)
	}
	if step.Next.Hint != HintValue {
		t.Errorf("hint = %q, want %q", step.Next.Hint, HintValue)
	}

	empty := step.Next.Submit("")
	if empty.Call != nil || empty.Next.Hint != HintValueRequired || empty.Next.Stage != StageValue {
		t.Errorf("empty value should re-prompt: %+v", empty)
	}

	step = step.Next.Submit(" 0xabc ")
	if step.Call == nil {
		t.Fatal("expected a call after value")
	}
	want := api.PipelineBackfillRequest{Network: "base", Value: "0xabc"}
	if step.Call.Kind != KindBackfill || step.Call.Pipeline != "usdc-transfers" || !reflect.DeepEqual(step.Call.Backfill, want) {
		t.Errorf("call = %+v", step.Call)
	}
	if !step.Call.RefreshesPipelines() {
		t.Errorf("backfill should refresh pipelines")
	}
}

func TestDeleteConfirmation(t *testing.T) {
	tests := []struct {
		input   string
		confirm bool
	}{
		{"yes", true},
		{"Yes", true},
		{"YES", true},
		{"  yes  ", true},
		{"y", false},
		{"YES please", false},
		{"no", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			step := NewDelete("old-pipeline").Submit(tt.input)
			if got := step.Call != nil; got != tt.confirm {
				t.Fatalf("Submit(%q) call = %v, want %v", tt.input, got, tt.confirm)
			}
			if !tt.confirm {
				if step.Next.Hint != HintConfirm || step.Next.Stage != StageConfirm {
					t.Errorf("expected re-prompt, got %+v", step.Next)
				}
				return
			}
			if step.Call.Kind != KindDelete || step.Call.Pipeline != "old-pipeline" {
				t.Errorf("call = %+v", step.Call)
			}
		})
	}
}

func TestTestTargets(t *testing.T) {
	tests := []struct {
		input string
		want  *api.PipelineTestRequest
		hint  string
	}{
		{"34216034", &api.PipelineTestRequest{Network: "base", Beat: "34216034"}, ""},
		{"0xdead", &api.PipelineTestRequest{Network: "base", Hash: "0xdead"}, ""},
		{"0XBEEF", &api.PipelineTestRequest{Network: "base", Hash: "0XBEEF"}, ""},
		{"beat: 12", &api.PipelineTestRequest{Network: "base", Beat: "12"}, ""},
		{"hash:abc", &api.PipelineTestRequest{Network: "base", Hash: "abc"}, ""},
		{"beat:", nil, HintBeatRequired},
		{"hash:  ", nil, HintHashRequired},
		{"garbage", nil, HintTargetShape},
		{"12a", nil, HintTargetShape},
		{"", nil, HintTargetShape},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			w := NewTest("p1")
			step := w.Submit("base")
			if !step.ClearInput || step.Next.Stage != StageTarget || step.Next.Hint != HintTarget {
				t.Fatalf("network stage did not advance: %+v", step)
			}

			step = step.Next.Submit(tt.input)
			if tt.want == nil {
				if step.Call != nil {
					t.Fatalf("Submit(%q) issued %+v", tt.input, step.Call)
				}
				if step.Next.Hint != tt.hint || step.Next.Stage != StageTarget {
					t.Errorf("hint = %q stage = %v, want %q", step.Next.Hint, step.Next.Stage, tt.hint)
				}
				return
			}
			if step.Call == nil {
				t.Fatalf("Submit(%q) issued no call (hint %q)", tt.input, step.Next.Hint)
			}
			if !reflect.DeepEqual(step.Call.Test, *tt.want) {
				t.Errorf("request = %+v, want %+v", step.Call.Test, *tt.want)
			}
			if step.Call.RefreshesPipelines() {
				t.Errorf("test should not refresh pipelines")
			}
		})
	}
}

func TestTestEmptyNetwork(t *testing.T) {
	step := NewTest("p1").Submit("")
	if step.Call != nil || step.ClearInput || step.Next.Stage != StageNetwork || step.Next.Hint != HintNetworkRequired {
		t.Errorf("empty network should re-prompt: %+v", step)
	}
}

type recordingService struct {
	api.Service
	calls []string
}

func (r *recordingService) BackfillPipeline(_ context.Context, name string, req api.PipelineBackfillRequest) (json.RawMessage, error) {
	r.calls = append(r.calls, "backfill "+name+" "+req.Network+" "+req.Value)
	return json.RawMessage(`{"ok":true}`), nil
}

func (r *recordingService) DeletePipeline(_ context.Context, name string) (json.RawMessage, error) {
	r.calls = append(r.calls, "delete "+name)
	return nil, nil
}

func (r *recordingService) TestPipeline(_ context.Context, name string, req api.PipelineTestRequest) (json.RawMessage, error) {
	r.calls = append(r.calls, "test "+name+" "+req.Network+" "+req.Beat+req.Hash)
	return json.RawMessage(`{"matched":1}`), nil
}

func TestCallExecute(t *testing.T) {
	svc := &recordingService{}
	calls := []Call{
		{Kind: KindBackfill, Pipeline: "a", Backfill: api.PipelineBackfillRequest{Network: "base", Value: "0x1"}},
		{Kind: KindDelete, Pipeline: "b"},
		{Kind: KindTest, Pipeline: "c", Test: api.PipelineTestRequest{Network: "eth", Beat: "7"}},
	}
	for _, c := range calls {
		if _, err := c.Execute(context.Background(), svc); err != nil {
			t.Fatalf("Execute(%v) failed: %v", c.Kind, err)
		}
	}

	want := []string{"backfill a base 0x1", "delete b", "test c eth 7"}
	if !reflect.DeepEqual(svc.calls, want) {
		t.Errorf("calls = %v, want %v", svc.calls, want)
	}
}

func TestCallTexts(t *testing.T) {
	tests := []struct {
		call                   Call
		pending, success, title string
	}{
		{Call{Kind: KindBackfill, Pipeline: "p"}, "Backfilling pipeline…", "Backfill triggered", "Backfill p"},
		{Call{Kind: KindDelete, Pipeline: "p"}, "Deleting pipeline…", "Pipeline deleted", "Deleted p"},
		{Call{Kind: KindTest, Pipeline: "p"}, "Testing pipeline…", "Pipeline test completed", "Test p"},
	}
	for _, tt := range tests {
		t.Run(tt.call.Kind.String(), func(t *testing.T) {
			if tt.call.PendingText() != tt.pending || tt.call.SuccessText() != tt.success || tt.call.ActivityTitle() != tt.title {
				t.Errorf("texts = %q %q %q", tt.call.PendingText(), tt.call.SuccessText(), tt.call.ActivityTitle())
			}
		})
	}
}

func TestTestMetadata(t *testing.T) {
	c := Call{Kind: KindTest, Pipeline: "p", Test: api.PipelineTestRequest{Network: "base", Hash: "0xdead"}}
	meta := c.Metadata(json.RawMessage(`{"rows":[1]}`))

	want := map[string]any{
		"request":  map[string]any{"network": "base", "hash": "0xdead"},
		"response": map[string]any{"rows": []any{float64(1)}},
	}
	if !reflect.DeepEqual(meta, want) {
		t.Errorf("Metadata = %#v, want %#v", meta, want)
	}
}
