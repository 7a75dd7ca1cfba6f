// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openaleph/openaleph-search/internal/bucket"
	"github.com/openaleph/openaleph-search/internal/cobraext"
	"github.com/openaleph/openaleph-search/internal/logger"
	"github.com/openaleph/openaleph-search/internal/mapping"
)

// setupResetCommand wires "reset": delete and recreate every index_write
// index. Destructive; every document in index_write is lost.
func setupResetCommand() *cobraext.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "delete and recreate every index_write index (destructive)",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			cfg := mapping.Config{
				Shards:             s.IndexShards,
				Replicas:           s.IndexReplicas,
				RefreshInterval:    s.IndexRefreshInterval,
				ContentTermVectors: s.ContentTermVectors,
			}

			ctx := cmd.Context()
			for _, b := range bucket.All {
				index := bucket.IndexName(s.IndexPrefix, b, s.IndexWrite)
				if err := client.DeleteIndex(ctx, index); err != nil {
					return err
				}
				body := mapping.Render(cat, b, cfg)
				if err := client.CreateIndex(ctx, index, body); err != nil {
					return err
				}
				logger.Infof("reset: recreated %s", index)
			}
			return nil
		},
	}
	addCatalogFlag(cmd)
	return cobraext.NewCommand(cmd)
}
