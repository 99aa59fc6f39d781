package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/indexingco/indexingco-cli/internal/api"
)

var (
	filterValues []string

	filtersCmd = &cobra.Command{
		Use:     "filters",
		Aliases: []string{"filter", "f"},
		Short:   "List filters and add or remove their values",
	}

	filtersListCmd = &cobra.Command{
		Use:   "list",
		Short: "List filters",
		Args:  cobra.NoArgs,
		RunE:  runFiltersList,
	}

	filtersCreateCmd = &cobra.Command{
		Use:   "create <name>",
		Short: "Create a filter or add values to it",
		Args:  cobra.ExactArgs(1),
		RunE:  runFiltersCreate,
	}

	filtersRemoveCmd = &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove values from a filter",
		Args:    cobra.ExactArgs(1),
		RunE:    runFiltersRemove,
	}
)

func init() {
	filtersListCmd.Flags().StringVarP(&query, "query", "q", "", "JMESPath expression applied to the response")
	filtersCreateCmd.Flags().StringSliceVar(&filterValues, "values", nil, "Values (e.g. contract addresses) to add")
	filtersRemoveCmd.Flags().StringSliceVar(&filterValues, "values", nil, "Values to remove")
	_ = filtersCreateCmd.MarkFlagRequired("values")
	_ = filtersRemoveCmd.MarkFlagRequired("values")

	filtersCmd.AddCommand(filtersListCmd, filtersCreateCmd, filtersRemoveCmd)
	rootCmd.AddCommand(filtersCmd)
}

func runFiltersList(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, true, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	out := newOutput(cmd, query, s.cfg.Theme)
	return call(cmd.Context(), out, "Fetching filters", func(ctx context.Context) (json.RawMessage, error) {
		list, err := s.client.ListFilters(ctx)
		if err != nil {
			return nil, err
		}
		return list.Raw, nil
	})
}

func runFiltersCreate(cmd *cobra.Command, args []string) error {
	return mutateFilter(cmd, args[0], fmt.Sprintf("Adding %d value(s) to filter '%s'", len(filterValues), args[0]), api.Service.CreateFilter)
}

func runFiltersRemove(cmd *cobra.Command, args []string) error {
	return mutateFilter(cmd, args[0], fmt.Sprintf("Removing %d value(s) from filter '%s'", len(filterValues), args[0]), api.Service.RemoveFilterValues)
}

type filterMutation func(api.Service, context.Context, api.FilterMutationRequest) (json.RawMessage, error)

func mutateFilter(cmd *cobra.Command, name, message string, mutate filterMutation) error {
	s, err := openSession(cmd, true, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	req := api.FilterMutationRequest{Name: name, Values: filterValues}
	out := newOutput(cmd, "", s.cfg.Theme)
	return call(cmd.Context(), out, message, func(ctx context.Context) (json.RawMessage, error) {
		return mutate(s.client, ctx, req)
	})
}
