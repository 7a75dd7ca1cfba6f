// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package cmd

import "github.com/openaleph/openaleph-search/internal/ingest"

// entityRecord is one line of the "entity input for ingestion" wire shape
// (§6), decoded by format-entities and index-entities from --input. A
// record's own "dataset" wins when present; otherwise the command's
// --dataset flag fills it in, matching the CLI signature "-d DS -i FILE".
type entityRecord struct {
	ID           string               `json:"id"`
	Schema       string               `json:"schema"`
	Properties   map[string][]string  `json:"properties"`
	Dataset      string               `json:"dataset"`
	CollectionID *int                 `json:"collection_id"`
	Context      *entityRecordContext `json:"context"`
}

type entityRecordContext struct {
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
	FirstSeen  string   `json:"first_seen"`
	LastSeen   string   `json:"last_seen"`
	LastChange string   `json:"last_change"`
	Referents  []string `json:"referents"`
	Origin     string   `json:"origin"`
}

// toIngestEntity converts the wire record into internal/ingest's Entity,
// falling back to defaultDataset when the record carries none.
func (r entityRecord) toIngestEntity(defaultDataset string) ingest.Entity {
	dataset := r.Dataset
	if dataset == "" {
		dataset = defaultDataset
	}
	e := ingest.Entity{
		ID:           r.ID,
		Schema:       r.Schema,
		Properties:   r.Properties,
		Dataset:      dataset,
		CollectionID: r.CollectionID,
	}
	if r.Context != nil {
		e.Context = ingest.Context{
			CreatedAt:  r.Context.CreatedAt,
			UpdatedAt:  r.Context.UpdatedAt,
			FirstSeen:  r.Context.FirstSeen,
			LastSeen:   r.Context.LastSeen,
			LastChange: r.Context.LastChange,
			Referents:  r.Context.Referents,
			Origin:     r.Context.Origin,
		}
	}
	return e
}
