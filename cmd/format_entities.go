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
	"github.com/openaleph/openaleph-search/internal/ingest"
	"github.com/openaleph/openaleph-search/internal/nameproc"
)

// setupFormatEntitiesCommand wires "format-entities -d DS -i FILE": run the
// entity-to-document transform (§3 "Indexed document") over every entity
// read from --input and print the resulting {_id, _source} pairs, without
// ever contacting a cluster.
func setupFormatEntitiesCommand() *cobraext.Command {
	cmd := &cobra.Command{
		Use:   "format-entities",
		Short: "transform entities read from --input into indexable documents and print them",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cobraext.ComposeCommandActions(cmd, args,
				cobraext.RequireStringFlag(cobraext.DatasetFlagName),
				cobraext.RequireStringFlag(cobraext.InputFlagName))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, err := cmd.Flags().GetString(cobraext.DatasetFlagName)
			if err != nil {
				return cobraext.FlagParsingError(err, cobraext.DatasetFlagName)
			}

			in, err := openInput(cmd)
			if err != nil {
				return err
			}
			defer in.Close()

			cat, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			s, err := loadSettings()
			if err != nil {
				return err
			}

			scanner := scanLines(in)
			enc := json.NewEncoder(cmd.OutOrStdout())
			for scanner.Scan() {
				line := scanner.Bytes()
				if len(line) == 0 {
					continue
				}
				var rec entityRecord
				if err := json.Unmarshal(line, &rec); err != nil {
					return fmt.Errorf("format-entities: decoding entity: %w", err)
				}

				doc, err := ingest.ToDocument(cat, rec.toIngestEntity(dataset), nameproc.DefaultSymbolDictionary, s.IndexNamespaceIDs)
				if err != nil {
					return fmt.Errorf("format-entities: %w", err)
				}
				if err := enc.Encode(common.MapStr{"_id": doc.ID, "_source": doc.Source}); err != nil {
					return fmt.Errorf("format-entities: encoding document: %w", err)
				}
			}
			return scanner.Err()
		},
	}
	cmd.Flags().StringP(cobraext.InputFlagName, "i", "", cobraext.InputFlagDescription)
	cmd.Flags().StringP(cobraext.DatasetFlagName, "d", "", cobraext.DatasetFlagDescription)
	addCatalogFlag(cmd)
	return cobraext.NewCommand(cmd)
}
