// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openaleph/openaleph-search/internal/cobraext"
	"github.com/openaleph/openaleph-search/internal/common"
	"github.com/openaleph/openaleph-search/internal/params"
	"github.com/openaleph/openaleph-search/internal/query"
)

// setupDumpActionsCommand wires "dump-actions --args k=v": run the
// free-text entities query built from --args (one key=value pair per
// entry; a whole URL query string is not split into pairs) and print the
// hits of the single result page it returns (offset/limit from --args;
// later pages are not fetched) as "{_index, _id, _source}" _bulk actions,
// the inverse of index-actions.
func setupDumpActionsCommand() *cobraext.Command {
	cmd := &cobra.Command{
		Use:   "dump-actions",
		Short: "dump the entities matched by --args as _bulk actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, err := parseArgsFlag(cmd)
			if err != nil {
				return err
			}
			view, err := params.Parse(pairs)
			if err != nil {
				return fmt.Errorf("dump-actions: %w", err)
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
			resp, err := runSearch(cmd.Context(), newExecutor(s, cat, client), cat, eq, false)
			if err != nil {
				return err
			}

			hits, err := hitsFromResponse(resp)
			if err != nil {
				return fmt.Errorf("dump-actions: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, h := range hits {
				hit, err := common.ToMapStr(h)
				if err != nil {
					continue
				}
				action := common.MapStr{
					"_index":  hit["_index"],
					"_id":     hit["_id"],
					"_source": hit["_source"],
				}
				if err := enc.Encode(action); err != nil {
					return fmt.Errorf("dump-actions: encoding action: %w", err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringArray(cobraext.ArgsFlagName, nil, cobraext.ArgsFlagDescription)
	addCatalogFlag(cmd)
	return cobraext.NewCommand(cmd)
}

// hitsFromResponse extracts hits.hits from a raw search response.
func hitsFromResponse(resp common.MapStr) ([]interface{}, error) {
	hitsWrapper, err := common.ToMapStr(resp["hits"])
	if err != nil {
		return nil, fmt.Errorf("unexpected response shape: %w", err)
	}
	hitList, ok := hitsWrapper["hits"].([]interface{})
	if !ok {
		return nil, nil
	}
	return hitList, nil
}
