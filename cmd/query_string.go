// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openaleph/openaleph-search/internal/cobraext"
	"github.com/openaleph/openaleph-search/internal/params"
	"github.com/openaleph/openaleph-search/internal/query"
)

// setupQueryStringCommand wires "query-string <q> [--args k=v]...": parse
// q plus any --args pairs into a View, build the free-text entities query
// (§4.4) and print the raw cluster response.
func setupQueryStringCommand() *cobraext.Command {
	cmd := &cobra.Command{
		Use:   "query-string",
		Short: "run a free-text entity search and print the raw response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extra, err := parseArgsFlag(cmd)
			if err != nil {
				return err
			}
			pairs := append([]params.KV{{Key: "q", Value: args[0]}}, extra...)

			view, err := params.Parse(pairs)
			if err != nil {
				return fmt.Errorf("query-string: %w", err)
			}

			cat, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			s, err := loadSettings()
			if err != nil {
				return err
			}
			client, err := newTransportClient(s)
			if err != nil {
				return err
			}

			eq := &query.EntitiesQuery{View: view, Opts: buildQueryOptions(s, cat)}
			resp, err := runSearch(cmd.Context(), newExecutor(s, cat, client), cat, eq, view.Dehydrate)
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	cmd.Flags().StringArray(cobraext.ArgsFlagName, nil, cobraext.ArgsFlagDescription)
	addCatalogFlag(cmd)
	return cobraext.NewCommand(cmd)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	cmd.Println(string(raw))
	return nil
}
