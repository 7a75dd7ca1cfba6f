// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

package query

import (
	"github.com/openaleph/openaleph-search/internal/common"
	"github.com/openaleph/openaleph-search/internal/params"
	"github.com/openaleph/openaleph-search/internal/schema"
)

var groupFieldSet = schema.GroupFields()

// Highlighter is one of the three ES highlighters a field may use (§4.7
// "Field-specific highlighter selection").
type Highlighter string

const (
	HighlighterFVH      Highlighter = "fvh"
	HighlighterUnified  Highlighter = "unified"
	HighlighterPlain    Highlighter = "plain"
)

// HighlightOptions carries the settings knobs the highlight block depends
// on (§4.7, §6 "highlighter_*").
type HighlightOptions struct {
	FVHEnabled          bool
	ContentTermVectors  bool
	FragmentSize        int
	NumberOfFragments   int
	PhraseLimit         int
	BoundaryMaxScan     int
	NoMatchSize         int
	MaxAnalyzedOffset   int
}

// DefaultHighlightOptions matches the defaults named in §4.7.
func DefaultHighlightOptions() HighlightOptions {
	return HighlightOptions{
		FVHEnabled:         true,
		ContentTermVectors: true,
		FragmentSize:       200,
		NumberOfFragments:  3,
		PhraseLimit:        64,
		BoundaryMaxScan:    100,
		NoMatchSize:        300,
		MaxAnalyzedOffset:  999999,
	}
}

// highlightFields lists every field the highlight block ever covers, in a
// stable order, together with its highlighter selection (§4.7).
var highlightFields = []string{"content", "name", "names", "text"}

func highlighterFor(field string, opts HighlightOptions) Highlighter {
	switch field {
	case "content":
		if opts.FVHEnabled && opts.ContentTermVectors {
			return HighlighterFVH
		}
		return HighlighterUnified
	case "name":
		return HighlighterUnified
	default:
		return HighlighterPlain
	}
}

// BuildHighlight renders the top-level "highlight" fragment (§4.7).
// maxAnalyzedOffsetOverride, when non-zero, replaces opts.MaxAnalyzedOffset
// per request (§4.7 "max_analyzed_offset ... overridable per request").
func BuildHighlight(v *params.View, opts HighlightOptions, maxAnalyzedOffsetOverride int) common.MapStr {
	maxOffset := opts.MaxAnalyzedOffset
	if maxAnalyzedOffsetOverride > 0 {
		maxOffset = maxAnalyzedOffsetOverride
	}

	fields := common.MapStr{}
	for _, f := range highlightFields {
		fields[f] = common.MapStr{"type": string(highlighterFor(f, opts))}
	}

	highlightQuery := buildHighlightQuery(v)

	body := common.MapStr{
		"fields":                  fields,
		"fragment_size":           opts.FragmentSize,
		"number_of_fragments":     opts.NumberOfFragments,
		"phrase_limit":            opts.PhraseLimit,
		"boundary_scanner":        "sentence",
		"boundary_max_scan":       opts.BoundaryMaxScan,
		"no_match_size":           opts.NoMatchSize,
		"max_analyzed_offset":     maxOffset,
		"pre_tags":                []string{"<em>"},
		"post_tags":               []string{"</em>"},
		"order":                   "score",
	}
	if highlightQuery != nil {
		body["highlight_query"] = highlightQuery
	}
	return body
}

// groupFieldHighlightTargets are the fields a filter value's multi_match
// clause searches when building the highlight query (§4.7 "multi_match
// clauses over {content, text, name}").
var groupFieldHighlightTargets = []string{"content", "text", "name"}

// buildHighlightQuery builds the query used purely to compute highlights:
// the user's query_string alone, or, when filters are present, that
// query_string as a should clause plus a multi_match per filter value on a
// group field or the name field (§4.7 "Highlight query").
func buildHighlightQuery(v *params.View) common.MapStr {
	if v.Q == "" {
		return nil
	}
	if len(v.Filters) == 0 {
		return queryString(v.Q)
	}

	bq := &boolQuery{}
	bq.Should(queryString(v.Q))
	for field, values := range v.Filters {
		if !isHighlightableFilterField(field) {
			continue
		}
		for _, val := range values {
			bq.Should(common.MapStr{
				"multi_match": common.MapStr{
					"query":  val,
					"fields": groupFieldHighlightTargets,
				},
			})
		}
	}
	return bq.Build()
}

func isHighlightableFilterField(field string) bool {
	if field == "name" {
		return true
	}
	return groupFieldSet[field]
}
