// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package settings loads the process-wide OPENALEPH_SEARCH_* configuration
// (§6 "Configuration") into a typed Settings value, following the teacher's
// go-ucfg config:"..." tagged-struct convention used throughout
// internal/benchrunner and internal/testrunner.
package settings

import (
	"github.com/openaleph/openaleph-search/internal/bucket"
	"github.com/openaleph/openaleph-search/internal/common"
)

// EnvPrefix is the environment variable prefix every OPENALEPH_SEARCH_*
// setting is read under (§6 "Configuration (prefix OPENALEPH_SEARCH_)").
const EnvPrefix = "OPENALEPH_SEARCH_"

// Settings carries every OPENALEPH_SEARCH_* configuration key named in §6,
// grouped the way §4.2/§4.6/§4.7 consume them. Field order follows the
// order they are introduced in spec.md.
type Settings struct {
	// Transport (§6).
	URI        string `config:"uri"`
	Timeout    int    `config:"timeout"` // seconds
	MaxRetries int    `config:"max_retries"`

	// Indexing pipeline (§5, §6).
	IndexerConcurrency    int             `config:"indexer_concurrency"`
	IndexerChunkSize      int             `config:"indexer_chunk_size"`
	IndexerMaxChunkBytes  common.ByteSize `config:"indexer_max_chunk_bytes"`

	// Index naming and versioning (§3, §6).
	IndexPrefix        string   `config:"index_prefix"`
	IndexWrite         string   `config:"index_write"`
	IndexRead          []string `config:"index_read"`
	IndexShards        int      `config:"index_shards"`
	IndexReplicas      int      `config:"index_replicas"`
	IndexNamespaceIDs  bool     `config:"index_namespace_ids"`
	IndexRefreshInterval string `config:"index_refresh_interval"`

	// Per-bucket score boosts applied by function_score (§4.4, §4.5, §4.8).
	IndexBoostThings    float64 `config:"index_boost_things"`
	IndexBoostIntervals float64 `config:"index_boost_intervals"`
	IndexBoostDocuments float64 `config:"index_boost_documents"`
	IndexBoostPages     float64 `config:"index_boost_pages"`

	// Mapping (§4.2).
	ContentTermVectors bool `config:"content_term_vectors"`

	// Query construction (§4.4).
	QueryFunctionScore bool `config:"query_function_score"`
	OpenAlephMode      bool `config:"openaleph_mode"`

	// Highlighting (§4.7, §6 "highlighter_*").
	HighlighterFVHEnabled        bool `config:"highlighter_fvh_enabled"`
	HighlighterFragmentSize      int  `config:"highlighter_fragment_size"`
	HighlighterNumberOfFragments int  `config:"highlighter_number_of_fragments"`
	HighlighterPhraseLimit       int  `config:"highlighter_phrase_limit"`
	HighlighterBoundaryMaxScan   int  `config:"highlighter_boundary_max_scan"`
	HighlighterNoMatchSize       int  `config:"highlighter_no_match_size"`
	HighlighterMaxAnalyzedOffset int  `config:"highlighter_max_analyzed_offset"`

	// Authorization (§6 "Authorization object").
	SearchAuth      bool   `config:"search_auth"`
	SearchAuthField string `config:"search_auth_field"`

	// Significant terms/text sampling (§4.6).
	SignificantTermsSamplerSize   int  `config:"significant_terms_sampler_size"`
	SignificantTermsRandomSampler bool `config:"significant_terms_random_sampler"`
	MinDocCount                   int  `config:"min_doc_count"`
	ShardMinDocCount               int  `config:"shard_min_doc_count"`
}

// DefaultSettings returns the OPENALEPH_SEARCH_* defaults enumerated in §6,
// mirroring the teacher's internal/benchrunner/runners/common/scenario.go
// DefaultConfig() pattern of a zero-argument constructor callers Unpack
// environment overrides onto.
func DefaultSettings() *Settings {
	return &Settings{
		Timeout:    60,
		MaxRetries: 3,

		IndexerConcurrency:   8,
		IndexerChunkSize:     1000,
		IndexerMaxChunkBytes: 5 * common.MegaByte,

		IndexPrefix:          "openaleph",
		IndexWrite:           "v1",
		IndexRead:            []string{"v1"},
		IndexShards:          10,
		IndexReplicas:        0,
		IndexNamespaceIDs:    true,
		IndexRefreshInterval: "1s",

		IndexBoostThings:    1,
		IndexBoostIntervals: 1,
		IndexBoostDocuments: 1,
		IndexBoostPages:     1,

		ContentTermVectors: true,

		QueryFunctionScore: true,
		OpenAlephMode:      false,

		HighlighterFVHEnabled:        true,
		HighlighterFragmentSize:      200,
		HighlighterNumberOfFragments: 3,
		HighlighterPhraseLimit:       64,
		HighlighterBoundaryMaxScan:   100,
		HighlighterNoMatchSize:       300,
		HighlighterMaxAnalyzedOffset: 999999,

		SearchAuth:      false,
		SearchAuthField: "dataset",

		SignificantTermsSamplerSize:   1000,
		SignificantTermsRandomSampler: false,
		MinDocCount:                   3,
		ShardMinDocCount:              1,
	}
}

// IndexBoostByBucket returns the configured per-bucket boost weights keyed
// by bucket.Bucket, for callers that build query.Options (§4.4
// "weight=<index_boost_bucket>").
func (s *Settings) IndexBoostByBucket() map[bucket.Bucket]float64 {
	return map[bucket.Bucket]float64{
		bucket.Things:    s.IndexBoostThings,
		bucket.Intervals: s.IndexBoostIntervals,
		bucket.Documents: s.IndexBoostDocuments,
		bucket.Pages:     s.IndexBoostPages,
	}
}
