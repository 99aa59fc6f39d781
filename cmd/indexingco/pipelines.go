package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/jsonc"

	"github.com/indexingco/indexingco-cli/internal/api"
	"github.com/indexingco/indexingco-cli/internal/wizard"
)

var (
	query string

	createOpts  pipelineCreateOptions
	backfillOpt pipelineBackfillOptions
	testBeat    string
	testHash    string
	assumeYes   bool

	pipelinesCmd = &cobra.Command{
		Use:     "pipelines",
		Aliases: []string{"pipeline", "p"},
		Short:   "List, create, test, backfill and delete pipelines",
	}

	pipelinesListCmd = &cobra.Command{
		Use:   "list",
		Short: "List pipelines",
		Args:  cobra.NoArgs,
		RunE:  runPipelinesList,
	}

	pipelinesCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "Create a pipeline",
		Long: `Create a pipeline from flags, or from a JSON file with --from-file.
The file may contain comments and trailing commas.

Example:
  indexingco pipelines create --name transfers --transformation erc20 \
    --filter tokens --filter-keys contract_address --networks base \
    --webhook-url https://example.com/hook`,
		Args: cobra.NoArgs,
		RunE: runPipelinesCreate,
	}

	pipelinesBackfillCmd = &cobra.Command{
		Use:   "backfill <name>",
		Short: "Backfill a pipeline over past beats",
		Args:  cobra.ExactArgs(1),
		RunE:  runPipelinesBackfill,
	}

	pipelinesTestCmd = &cobra.Command{
		Use:   "test <name> <network> [beat|hash]",
		Short: "Run a pipeline against a single beat or hash",
		Long: `Run a pipeline end to end against one beat or hash. A positional value
starting with 0x is sent as a hash.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: runPipelinesTest,
	}

	pipelinesDeleteCmd = &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a pipeline",
		Args:    cobra.ExactArgs(1),
		RunE:    runPipelinesDelete,
	}
)

type pipelineCreateOptions struct {
	name           string
	transformation string
	filter         string
	filterKeys     []string
	networks       []string
	webhookURL     string
	authHeader     string
	authValue      string
	fromFile       string
}

type pipelineBackfillOptions struct {
	network   string
	value     string
	beatStart int64
	beatEnd   int64
	beats     []int64
}

func init() {
	pipelinesListCmd.Flags().StringVarP(&query, "query", "q", "", "JMESPath expression applied to the response")

	f := pipelinesCreateCmd.Flags()
	f.StringVar(&createOpts.name, "name", "", "Pipeline name")
	f.StringVar(&createOpts.transformation, "transformation", "", "Transformation to run")
	f.StringVar(&createOpts.filter, "filter", "", "Filter to match against")
	f.StringSliceVar(&createOpts.filterKeys, "filter-keys", nil, "Filter keys, e.g. contract_address")
	f.StringSliceVar(&createOpts.networks, "networks", nil, "Networks to watch, e.g. base_sepolia")
	f.StringVar(&createOpts.webhookURL, "webhook-url", "", "Webhook URL for HTTP delivery")
	f.StringVar(&createOpts.authHeader, "auth-header", "", "Header name sent with each delivery")
	f.StringVar(&createOpts.authValue, "auth-value", "", "Header value sent with each delivery")
	f.StringVar(&createOpts.fromFile, "from-file", "", "Read the pipeline definition from a JSON file")

	b := pipelinesBackfillCmd.Flags()
	b.StringVar(&backfillOpt.network, "network", "", "Network to backfill, e.g. BASE")
	b.StringVar(&backfillOpt.value, "value", "", "Filter value to backfill, e.g. 0x123...")
	b.Int64Var(&backfillOpt.beatStart, "beat-start", 0, "First beat to check")
	b.Int64Var(&backfillOpt.beatEnd, "beat-end", 0, "Last beat to check")
	b.Int64SliceVar(&backfillOpt.beats, "beats", nil, "Explicit beats to check")
	_ = pipelinesBackfillCmd.MarkFlagRequired("network")
	_ = pipelinesBackfillCmd.MarkFlagRequired("value")

	pipelinesTestCmd.Flags().StringVar(&testBeat, "beat", "", "Beat to test against")
	pipelinesTestCmd.Flags().StringVar(&testHash, "hash", "", "Block or cast hash to test against")

	pipelinesDeleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")

	pipelinesCmd.AddCommand(pipelinesListCmd, pipelinesCreateCmd, pipelinesBackfillCmd, pipelinesTestCmd, pipelinesDeleteCmd)
	rootCmd.AddCommand(pipelinesCmd)
}

func runPipelinesList(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, true, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	out := newOutput(cmd, query, s.cfg.Theme)
	return call(cmd.Context(), out, "Fetching pipelines", func(ctx context.Context) (json.RawMessage, error) {
		list, err := s.client.ListPipelines(ctx)
		if err != nil {
			return nil, err
		}
		return list.Raw, nil
	})
}

func runPipelinesCreate(cmd *cobra.Command, args []string) error {
	var (
		req api.PipelineCreateRequest
		err error
	)
	if createOpts.fromFile != "" {
		req, err = readPipelineFile(createOpts.fromFile)
	} else {
		req, err = createOpts.request()
	}
	if err != nil {
		return err
	}

	s, err := openSession(cmd, true, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	out := newOutput(cmd, "", s.cfg.Theme)
	return call(cmd.Context(), out, fmt.Sprintf("Creating pipeline '%s'", req.Name), func(ctx context.Context) (json.RawMessage, error) {
		return s.client.CreatePipeline(ctx, req)
	})
}

// request builds the create body. Headers are only sent when both the
// header name and value are given.
func (o pipelineCreateOptions) request() (api.PipelineCreateRequest, error) {
	var missing []string
	for _, f := range []struct{ flag, value string }{
		{"--name", o.name},
		{"--transformation", o.transformation},
		{"--filter", o.filter},
		{"--webhook-url", o.webhookURL},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.flag)
		}
	}
	if len(o.networks) == 0 {
		missing = append(missing, "--networks")
	}
	if len(missing) > 0 {
		return api.PipelineCreateRequest{}, fmt.Errorf("missing required flags: %s (or use --from-file)", strings.Join(missing, ", "))
	}

	conn := api.Connection{Host: o.webhookURL}
	if o.authHeader != "" && o.authValue != "" {
		conn.Headers = map[string]string{o.authHeader: o.authValue}
	}

	return api.PipelineCreateRequest{
		Name:           o.name,
		Transformation: o.transformation,
		Filter:         o.filter,
		FilterKeys:     orEmpty(o.filterKeys),
		Networks:       o.networks,
		Delivery: api.Delivery{
			Adapter:    "HTTP",
			Connection: conn,
		},
	}, nil
}

// readPipelineFile decodes a pipeline definition that may contain comments.
func readPipelineFile(path string) (api.PipelineCreateRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return api.PipelineCreateRequest{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return parsePipelineDefinition(data)
}

func parsePipelineDefinition(data []byte) (api.PipelineCreateRequest, error) {
	var req api.PipelineCreateRequest
	if err := json.Unmarshal(jsonc.ToJSON(data), &req); err != nil {
		return req, fmt.Errorf("invalid pipeline definition: %w", err)
	}
	if req.Name == "" {
		return req, fmt.Errorf("invalid pipeline definition: name is required")
	}
	if req.Delivery.Adapter == "" {
		req.Delivery.Adapter = "HTTP"
	}
	req.FilterKeys = orEmpty(req.FilterKeys)
	req.Networks = orEmpty(req.Networks)
	return req, nil
}

func runPipelinesBackfill(cmd *cobra.Command, args []string) error {
	name := args[0]
	req := backfillOpt.request(cmd.Flags().Changed("beat-start"), cmd.Flags().Changed("beat-end"))

	s, err := openSession(cmd, true, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	out := newOutput(cmd, "", s.cfg.Theme)
	return call(cmd.Context(), out, fmt.Sprintf("Starting backfill of '%s'", name), func(ctx context.Context) (json.RawMessage, error) {
		return s.client.BackfillPipeline(ctx, name, req)
	})
}

// request omits the beat range bounds that were not given on the command line.
func (o pipelineBackfillOptions) request(hasStart, hasEnd bool) api.PipelineBackfillRequest {
	req := api.PipelineBackfillRequest{
		Network: o.network,
		Value:   o.value,
		Beats:   o.beats,
	}
	if hasStart {
		start := o.beatStart
		req.BeatStart = &start
	}
	if hasEnd {
		end := o.beatEnd
		req.BeatEnd = &end
	}
	return req
}

func runPipelinesTest(cmd *cobra.Command, args []string) error {
	name := args[0]
	var positional string
	if len(args) == 3 {
		positional = args[2]
	}
	req, err := testRequest(args[1], positional, testBeat, testHash)
	if err != nil {
		return err
	}

	s, err := openSession(cmd, true, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	out := newOutput(cmd, "", s.cfg.Theme)
	return call(cmd.Context(), out, fmt.Sprintf("Testing pipeline '%s'", name), func(ctx context.Context) (json.RawMessage, error) {
		return s.client.TestPipeline(ctx, name, req)
	})
}

// testRequest resolves the target from the optional positional value and
// the --beat/--hash flags. Flags win over the positional value.
func testRequest(network, positional, beat, hash string) (api.PipelineTestRequest, error) {
	req := api.PipelineTestRequest{Network: network, Beat: beat, Hash: hash}
	if beat == "" && hash == "" && positional != "" {
		if looksLikeHash(positional) {
			req.Hash = positional
		} else {
			req.Beat = positional
		}
	}
	if req.Beat == "" && req.Hash == "" {
		return req, api.ErrMissingTarget
	}
	return req, nil
}

func looksLikeHash(value string) bool {
	return len(value) > 2 && strings.EqualFold(value[:2], "0x")
}

func runPipelinesDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	if !assumeYes && wizard.IsInputTTY() {
		ok, err := wizard.Confirm(fmt.Sprintf("Delete pipeline '%s'?", name), "This cannot be undone.")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.ErrOrStderr(), infoStyle.Render("Delete cancelled."))
			return nil
		}
	}

	s, err := openSession(cmd, true, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	out := newOutput(cmd, "", s.cfg.Theme)
	return call(cmd.Context(), out, fmt.Sprintf("Deleting pipeline '%s'", name), func(ctx context.Context) (json.RawMessage, error) {
		return s.client.DeletePipeline(ctx, name)
	})
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
