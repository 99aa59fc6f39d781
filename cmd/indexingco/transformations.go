package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/indexingco/indexingco-cli/internal/api"
)

var (
	transformNetwork string
	transformBeat    string
	transformHash    string

	transformationsCmd = &cobra.Command{
		Use:     "transformations",
		Aliases: []string{"transformation", "t"},
		Short:   "List, test and create transformations",
	}

	transformationsListCmd = &cobra.Command{
		Use:   "list",
		Short: "List transformations",
		Args:  cobra.NoArgs,
		RunE:  runTransformationsList,
	}

	transformationsTestCmd = &cobra.Command{
		Use:   "test <file>",
		Short: "Run transformation code against a beat or hash without saving it",
		Args:  cobra.ExactArgs(1),
		RunE:  runTransformationsTest,
	}

	transformationsCreateCmd = &cobra.Command{
		Use:   "create <name> <file>",
		Short: "Create or update a transformation from a JavaScript file",
		Args:  cobra.ExactArgs(2),
		RunE:  runTransformationsCreate,
	}
)

func init() {
	transformationsListCmd.Flags().StringVarP(&query, "query", "q", "", "JMESPath expression applied to the response")

	t := transformationsTestCmd.Flags()
	t.StringVar(&transformNetwork, "network", "", "Network to test against, e.g. base_sepolia")
	t.StringVar(&transformBeat, "beat", "", "Beat to test against")
	t.StringVar(&transformHash, "hash", "", "Block or cast hash to test against")
	_ = transformationsTestCmd.MarkFlagRequired("network")
	transformationsTestCmd.MarkFlagsOneRequired("beat", "hash")

	transformationsCmd.AddCommand(transformationsListCmd, transformationsTestCmd, transformationsCreateCmd)
	rootCmd.AddCommand(transformationsCmd)
}

func runTransformationsList(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, true, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	out := newOutput(cmd, query, s.cfg.Theme)
	return call(cmd.Context(), out, "Fetching transformations", func(ctx context.Context) (json.RawMessage, error) {
		list, err := s.client.ListTransformations(ctx)
		if err != nil {
			return nil, err
		}
		return list.Raw, nil
	})
}

func runTransformationsTest(cmd *cobra.Command, args []string) error {
	code, err := readCode(args[0])
	if err != nil {
		return err
	}
	req := api.TransformationTestRequest{
		Network: transformNetwork,
		Beat:    transformBeat,
		Hash:    transformHash,
		Code:    code,
	}

	s, err := openSession(cmd, true, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	out := newOutput(cmd, "", s.cfg.Theme)
	return call(cmd.Context(), out, "Testing transformation", func(ctx context.Context) (json.RawMessage, error) {
		return s.client.TestTransformation(ctx, req)
	})
}

func runTransformationsCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	code, err := readCode(args[1])
	if err != nil {
		return err
	}

	s, err := openSession(cmd, true, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	out := newOutput(cmd, "", s.cfg.Theme)
	return call(cmd.Context(), out, fmt.Sprintf("Creating transformation '%s'", name), func(ctx context.Context) (json.RawMessage, error) {
		return s.client.CreateTransformation(ctx, name, code)
	})
}

func readCode(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("file %s is empty", path)
	}
	return string(data), nil
}
