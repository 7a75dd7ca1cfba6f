// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openaleph/openaleph-search/internal/bucket"
	"github.com/openaleph/openaleph-search/internal/cobraext"
	"github.com/openaleph/openaleph-search/internal/ingest"
	"github.com/openaleph/openaleph-search/internal/logger"
	"github.com/openaleph/openaleph-search/internal/nameproc"
	"github.com/openaleph/openaleph-search/internal/schema"
	"github.com/openaleph/openaleph-search/internal/settings"
	"github.com/openaleph/openaleph-search/internal/transport"
)

// setupIndexEntitiesCommand wires "index-entities -d DS -i FILE": read
// entities from --input and feed them through the concurrent indexing
// pipeline (§5) into index_write, relaxing refresh_interval for the
// duration of the load and restoring it afterward regardless of outcome
// (§5 "index_refresh_interval may be set to -1 during bulk loads and
// restored after").
func setupIndexEntitiesCommand() *cobraext.Command {
	cmd := &cobra.Command{
		Use:   "index-entities",
		Short: "bulk-index entities read from --input into index_write",
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
			client, err := newTransportClient(s)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := setRefreshIntervalAllBuckets(ctx, client, s, "-1"); err != nil {
				return fmt.Errorf("index-entities: relaxing refresh_interval: %w", err)
			}
			defer func() {
				if err := setRefreshIntervalAllBuckets(ctx, client, s, s.IndexRefreshInterval); err != nil {
					logger.Warnf("index-entities: restoring refresh_interval: %v", err)
				}
			}()

			pipeline := &ingest.Pipeline{
				Catalog:       cat,
				Dict:          nameproc.DefaultSymbolDictionary,
				NamespaceIDs:  s.IndexNamespaceIDs,
				ResolveIndex:  indexResolver(cat, s),
				Transport:     ingest.NewESClient(client.ESClient()),
				Concurrency:   s.IndexerConcurrency,
				ChunkSize:     s.IndexerChunkSize,
				MaxChunkBytes: int64(s.IndexerMaxChunkBytes),
				MaxRetries:    s.MaxRetries,
			}

			entities := make(chan ingest.Entity)
			scanErrCh := make(chan error, 1)
			go func() {
				defer close(entities)
				scanner := scanLines(in)
				for scanner.Scan() {
					line := scanner.Bytes()
					if len(line) == 0 {
						continue
					}
					var rec entityRecord
					if err := json.Unmarshal(line, &rec); err != nil {
						scanErrCh <- fmt.Errorf("index-entities: decoding entity: %w", err)
						return
					}
					select {
					case entities <- rec.toIngestEntity(dataset):
					case <-ctx.Done():
						return
					}
				}
				scanErrCh <- scanner.Err()
			}()

			report, runErr := pipeline.Run(ctx, entities)
			if scanErr := <-scanErrCh; scanErr != nil && runErr == nil {
				runErr = scanErr
			}
			if runErr != nil {
				return fmt.Errorf("index-entities: %w", runErr)
			}

			cmd.Printf("indexed=%d dropped=%d\n", report.Indexed, report.Dropped)
			if summary := report.Errors.Summary(20); summary != "" {
				cmd.Println(summary)
			}
			return nil
		},
	}
	cmd.Flags().StringP(cobraext.InputFlagName, "i", "", cobraext.InputFlagDescription)
	cmd.Flags().StringP(cobraext.DatasetFlagName, "d", "", cobraext.DatasetFlagDescription)
	addCatalogFlag(cmd)
	return cobraext.NewCommand(cmd)
}

// indexResolver builds the ingest.IndexResolver routing a schema name to
// its bucket's index_write index (§4.9 bucket routing, reused by ingest).
func indexResolver(cat *schema.Catalog, s *settings.Settings) ingest.IndexResolver {
	return func(schemaName string) (string, bool) {
		sc, ok := cat.Lookup(schemaName)
		if !ok {
			return "", false
		}
		return bucket.IndexName(s.IndexPrefix, bucket.For(sc), s.IndexWrite), true
	}
}

// setRefreshIntervalAllBuckets applies interval to every bucket's
// index_write index.
func setRefreshIntervalAllBuckets(ctx context.Context, client *transport.Client, s *settings.Settings, interval string) error {
	es := ingest.NewESClient(client.ESClient())
	for _, b := range bucket.All {
		index := bucket.IndexName(s.IndexPrefix, b, s.IndexWrite)
		if err := es.SetRefreshInterval(ctx, index, interval); err != nil {
			return fmt.Errorf("%s: %w", index, err)
		}
	}
	return nil
}
