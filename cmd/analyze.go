// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openaleph/openaleph-search/internal/bucket"
	"github.com/openaleph/openaleph-search/internal/cobraext"
)

const (
	analyzeFieldFlagName  = "field"
	analyzeSchemaFlagName = "schema"
)

// setupAnalyzeCommand wires "analyze --field F [--schema S] TEXT": preview
// how TEXT would be tokenized for field F, against the mapping of the
// bucket index S routes to (or the things bucket, with no --schema).
func setupAnalyzeCommand() *cobraext.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "preview how --field analyzes a piece of text",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cobraext.RequireStringFlag(analyzeFieldFlagName)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := cmd.Flags().GetString(analyzeFieldFlagName)
			if err != nil {
				return cobraext.FlagParsingError(err, analyzeFieldFlagName)
			}
			schemaName, err := cmd.Flags().GetString(analyzeSchemaFlagName)
			if err != nil {
				return cobraext.FlagParsingError(err, analyzeSchemaFlagName)
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

			b := bucket.Things
			if schemaName != "" {
				sc, ok := cat.Lookup(schemaName)
				if !ok {
					return fmt.Errorf("analyze: unknown schema %q", schemaName)
				}
				b = bucket.For(sc)
			}
			index := bucket.IndexName(s.IndexPrefix, b, s.IndexWrite)

			resp, err := client.Analyze(cmd.Context(), index, field, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
	cmd.Flags().String(analyzeFieldFlagName, "", "field to analyze, resolved against the target index's mapping")
	cmd.Flags().String(analyzeSchemaFlagName, "", "schema whose bucket index to analyze against (defaults to the things bucket)")
	addCatalogFlag(cmd)
	return cobraext.NewCommand(cmd)
}
