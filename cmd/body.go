// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/openaleph/openaleph-search/internal/cobraext"
	"github.com/openaleph/openaleph-search/internal/common"
)

// rawBody wraps an already-decoded request body so it satisfies
// query.Builder, letting the "body" command post a caller-supplied query
// straight through the executor instead of running it through a builder.
type rawBody common.MapStr

func (b rawBody) Build() common.MapStr { return common.MapStr(b) }

// setupBodyCommand wires "body -i FILE": read a raw Elasticsearch query
// body (bypassing every query builder) and POST it across every bucket's
// configured index_read indices.
func setupBodyCommand() *cobraext.Command {
	cmd := &cobra.Command{
		Use:   "body",
		Short: "POST a raw request body read from --input and print the response",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd)
			if err != nil {
				return err
			}
			defer in.Close()

			raw, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("body: reading input: %w", err)
			}
			var body common.MapStr
			if err := json.Unmarshal(raw, &body); err != nil {
				return fmt.Errorf("body: decoding input as JSON: %w", err)
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

			resp, err := runSearch(cmd.Context(), newExecutor(s, cat, client), cat, rawBody(body), false)
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	cmd.Flags().StringP(cobraext.InputFlagName, "i", "", cobraext.InputFlagDescription)
	addCatalogFlag(cmd)
	return cobraext.NewCommand(cmd)
}
