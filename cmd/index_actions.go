// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/openaleph/openaleph-search/internal/cobraext"
	"github.com/openaleph/openaleph-search/internal/common"
)

// bulkAction is one pre-built "{_index, _id, _source}" action (§6 "Entity
// input for ingestion ... Output action"), read verbatim from --input and
// submitted straight to _bulk without running the entity-to-document
// transform again.
type bulkAction struct {
	Index  string          `json:"_index"`
	ID     string          `json:"_id"`
	Source json.RawMessage `json:"_source"`
}

// setupIndexActionsCommand wires "index-actions -i FILE": submit pre-built
// bulk actions (as produced by dump-actions) directly to _bulk. Each line
// must carry its own "_index"; format-entities output has none.
func setupIndexActionsCommand() *cobraext.Command {
	cmd := &cobra.Command{
		Use:   "index-actions",
		Short: "submit pre-built _bulk actions read from --input",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cobraext.RequireStringFlag(cobraext.InputFlagName)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(cmd)
			if err != nil {
				return err
			}
			defer in.Close()

			s, err := loadSettings()
			if err != nil {
				return err
			}
			client, err := newTransportClient(s)
			if err != nil {
				return err
			}
			es := client.ESClient()

			ctx := cmd.Context()
			var batch []bulkAction
			indexed := 0

			flush := func() error {
				if len(batch) == 0 {
					return nil
				}
				body, err := encodeBulkActions(batch)
				if err != nil {
					return err
				}
				resp, err := es.Bulk(bytes.NewReader(body), es.Bulk.WithContext(ctx))
				if err != nil {
					return fmt.Errorf("index-actions: bulk request: %w", err)
				}
				defer resp.Body.Close()
				if resp.IsError() {
					raw, _ := io.ReadAll(resp.Body)
					return fmt.Errorf("index-actions: bulk request failed: %s: %s", resp.Status(), raw)
				}
				indexed += len(batch)
				batch = batch[:0]
				return nil
			}

			scanner := scanLines(in)
			for scanner.Scan() {
				line := scanner.Bytes()
				if len(line) == 0 {
					continue
				}
				var action bulkAction
				if err := json.Unmarshal(line, &action); err != nil {
					return fmt.Errorf("index-actions: decoding action: %w", err)
				}
				batch = append(batch, action)
				if len(batch) >= s.IndexerChunkSize {
					if err := flush(); err != nil {
						return err
					}
				}
			}
			if err := scanner.Err(); err != nil {
				return err
			}
			if err := flush(); err != nil {
				return err
			}

			cmd.Printf("indexed=%d\n", indexed)
			return nil
		},
	}
	cmd.Flags().StringP(cobraext.InputFlagName, "i", "", cobraext.InputFlagDescription)
	return cobraext.NewCommand(cmd)
}

// encodeBulkActions renders batch as newline-delimited _bulk request body
// lines; each action line carries its own "_index", so one request may mix
// actions targeting different indices.
func encodeBulkActions(batch []bulkAction) ([]byte, error) {
	var buf bytes.Buffer
	for _, a := range batch {
		header := common.MapStr{"index": common.MapStr{"_index": a.Index, "_id": a.ID}}
		headerLine, err := json.Marshal(header)
		if err != nil {
			return nil, fmt.Errorf("index-actions: encoding bulk header line: %w", err)
		}
		buf.Write(headerLine)
		buf.WriteByte('\n')
		buf.Write(a.Source)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
