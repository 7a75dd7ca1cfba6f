// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

package query

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openaleph/openaleph-search/internal/auth"
	"github.com/openaleph/openaleph-search/internal/bucket"
	"github.com/openaleph/openaleph-search/internal/common"
	"github.com/openaleph/openaleph-search/internal/params"
	"github.com/openaleph/openaleph-search/internal/schema"
)

func testCatalog(t *testing.T) *schema.Catalog {
	t.Helper()
	cat, err := schema.DefaultCatalog()
	require.NoError(t, err)
	return cat
}

func defaultOpts() Options {
	return Options{
		QueryFunctionScore: true,
		IndexBoost: map[bucket.Bucket]float64{
			bucket.Things: 1,
		},
	}
}

// jsonEqual compares two bodies modulo map key ordering (Testable
// Property 8), the same technique the teacher's internal/fields mapping
// tests use for cmp.Diff against JSON-shaped values.
func jsonEqual(t *testing.T, got, want common.MapStr) {
	t.Helper()
	normalize := func(v common.MapStr) interface{} {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		var out interface{}
		require.NoError(t, json.Unmarshal(raw, &out))
		return out
	}
	if diff := cmp.Diff(normalize(want), normalize(got)); diff != "" {
		t.Fatalf("query body mismatch (-want +got):\n%s", diff)
	}
}

func TestEntitiesQueryBuildsIdempotently(t *testing.T) {
	view := &params.View{
		Q:      "vladimir",
		Offset: 0,
		Limit:  20,
		Filters: map[string][]string{
			"schema": {"Person"},
		},
	}
	q := &EntitiesQuery{View: view, Opts: defaultOpts()}

	first := q.Build()
	second := q.Build()
	jsonEqual(t, second, first)
}

func TestEntitiesQueryFunctionScoreOmittedWhenDisabled(t *testing.T) {
	view := &params.View{Q: "acme", Limit: 20}
	opts := defaultOpts()
	opts.QueryFunctionScore = false
	q := &EntitiesQuery{View: view, Opts: opts}

	body := q.Build()
	query := body["query"].(common.MapStr)
	_, hasFunctionScore := query["function_score"]
	assert.False(t, hasFunctionScore)
	_, hasBool := query["bool"]
	assert.True(t, hasBool)
}

func TestEntitiesQueryFacetIsolationExcludesOwnField(t *testing.T) {
	view := &params.View{
		Filters: map[string][]string{
			"dataset": {"A", "B"},
			"schema":  {"Person"},
		},
		Facets: []params.FacetConfig{{Field: "dataset"}},
	}
	q := &EntitiesQuery{View: view, Opts: defaultOpts()}
	body := q.Build()

	aggs := body["aggs"].(common.MapStr)
	datasetAgg := aggs["facet:dataset"].(common.MapStr)
	// Testable Property 1: no filter on the facet's own field within its
	// isolated filter set, even though the other active filter (schema)
	// still applies.
	filterBody, ok := datasetAgg["filter"]
	require.True(t, ok, "expected an isolation filter from the schema filter")
	raw, err := json.Marshal(filterBody)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"dataset"`)
	assert.Contains(t, string(raw), `"Person"`)
}

func TestEntitiesQueryAuthScoping(t *testing.T) {
	view := &params.View{
		Filters: map[string][]string{
			"dataset": {"A", "B"},
		},
	}
	a := auth.New(false, []string{"A"}, nil)
	q := &EntitiesQuery{View: view, Auth: a, Opts: defaultOpts()}
	body := q.Build()

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"A"`)
	assert.NotContains(t, string(raw), `"B"`)
}

func TestMatchQueryExcludesSelfAndCapsClauses(t *testing.T) {
	cat := testCatalog(t)
	personSchema, ok := cat.Lookup("Person")
	require.True(t, ok)

	properties := map[string][]string{}
	for i := 0; i < MaxClauses+50; i++ {
		properties["nationality"] = append(properties["nationality"], "us")
	}

	entity := Entity{
		ID:         "entity-1",
		Schema:     personSchema,
		Names:      []string{"Vladimir Putin"},
		Properties: properties,
	}
	q := &MatchQuery{Entity: entity, Opts: defaultOpts()}
	body := q.Build()

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"entity-1"`)

	inner := body["query"].(common.MapStr)["function_score"].(common.MapStr)["query"].(common.MapStr)["bool"].(common.MapStr)
	mustNot := inner["must_not"].([]common.MapStr)
	require.Len(t, mustNot, 1)
	assert.Equal(t, []string{"entity-1"}, mustNot[0]["ids"].(common.MapStr)["values"])

	should := inner["should"].([]common.MapStr)
	assert.LessOrEqual(t, len(should), MaxClauses)
}

func TestMatchQueryNameBlockUsesPickedNames(t *testing.T) {
	cat := testCatalog(t)
	personSchema, ok := cat.Lookup("Person")
	require.True(t, ok)

	entity := Entity{
		ID:     "entity-2",
		Schema: personSchema,
		Names:  []string{"Vladimir Putin", "Владимир Путин"},
	}
	q := &MatchQuery{Entity: entity, Opts: defaultOpts()}
	body := q.Build()

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"names"`)
	assert.Contains(t, string(raw), `"name_symbols"`)
}

func TestMoreLikeThisQueryTargetsDocumentsAndPages(t *testing.T) {
	cat := testCatalog(t)
	view := &params.View{MLTMaxQueryTerms: 25}
	q := &MoreLikeThisQuery{
		EntityID: "doc-1",
		View:     view,
		Catalog:  cat,
		Opts:     defaultOpts(),
	}
	body := q.Build()

	query := body["query"].(common.MapStr)["function_score"].(common.MapStr)["query"].(common.MapStr)["bool"].(common.MapStr)
	filters := query["filter"].([]common.MapStr)
	require.Len(t, filters, 1)
	terms := filters[0]["terms"].(common.MapStr)["schema"].([]interface{})

	names := make(map[string]bool, len(terms))
	for _, v := range terms {
		names[v.(string)] = true
	}
	assert.True(t, names["Document"])
	assert.True(t, names["Page"])
	assert.False(t, names["Person"])
}

func TestHighlightFieldSelection(t *testing.T) {
	opts := HighlightOptions{FVHEnabled: true, ContentTermVectors: true}
	assert.Equal(t, HighlighterFVH, highlighterFor("content", opts))

	opts.ContentTermVectors = false
	assert.Equal(t, HighlighterUnified, highlighterFor("content", opts))

	assert.Equal(t, HighlighterUnified, highlighterFor("name", opts))
	assert.Equal(t, HighlighterPlain, highlighterFor("names", opts))
	assert.Equal(t, HighlighterPlain, highlighterFor("text", opts))
}
