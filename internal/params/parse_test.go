// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestParseDefaults(t *testing.T) {
	v, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Offset)
	assert.Equal(t, DefaultLimit, v.Limit)
	assert.Equal(t, DefaultLimit, v.NextLimit)
	assert.Equal(t, 0, v.Page())
}

func TestParseFilterAndExclude(t *testing.T) {
	pairs := []KV{
		{Key: "filter:schema", Value: "Person"},
		{Key: "filter:schema", Value: "Company"},
		{Key: "exclude:schema", Value: "Page"},
	}
	v, err := Parse(pairs)
	require.NoError(t, err)
	assert.Equal(t, []string{"Person", "Company"}, v.Filters["schema"])
	assert.Equal(t, []string{"Page"}, v.Exclusions["schema"])
}

func TestParseRangeFilter(t *testing.T) {
	pairs := []KV{
		{Key: "filter:gte:dates", Value: "2020-01-01"},
	}
	v, err := Parse(pairs)
	require.NoError(t, err)
	require.Len(t, v.Ranges, 1)
	assert.Equal(t, RangeFilter{Field: "dates", Op: OpGTE, Value: "2020-01-01"}, v.Ranges[0])
}

func TestParseEmptyFilter(t *testing.T) {
	pairs := []KV{{Key: "empty:birthDate", Value: "true"}}
	v, err := Parse(pairs)
	require.NoError(t, err)
	assert.True(t, v.Empties["birthDate"])
}

func TestParseFacetWithSize(t *testing.T) {
	pairs := []KV{
		{Key: "facet", Value: "countries"},
		{Key: "facet_size:countries", Value: "50"},
	}
	v, err := Parse(pairs)
	require.NoError(t, err)
	require.Len(t, v.Facets, 1)
	assert.Equal(t, "countries", v.Facets[0].Field)
	require.NotNil(t, v.Facets[0].Size)
	assert.Equal(t, 50, *v.Facets[0].Size)
}

func TestParseSignificantTerms(t *testing.T) {
	pairs := []KV{{Key: "facet_significant", Value: "names"}}
	v, err := Parse(pairs)
	require.NoError(t, err)
	require.Len(t, v.SignificantTerms, 1)
	assert.Equal(t, "names", v.SignificantTerms[0].Field)
}

func TestParseSignificantTextDefaultField(t *testing.T) {
	pairs := []KV{{Key: "facet_significant_text", Value: ""}}
	v, err := Parse(pairs)
	require.NoError(t, err)
	require.NotNil(t, v.SignificantText)
	assert.Equal(t, defaultSignificantTextField, v.SignificantText.Field)
}

func TestParseSignificantTextExplicitField(t *testing.T) {
	pairs := []KV{{Key: "facet_significant_text", Value: "content"}}
	v, err := Parse(pairs)
	require.NoError(t, err)
	require.NotNil(t, v.SignificantText)
	assert.Equal(t, "content", v.SignificantText.Field)
}

func TestParseSort(t *testing.T) {
	pairs := []KV{{Key: "sort", Value: "created_at:desc"}}
	v, err := Parse(pairs)
	require.NoError(t, err)
	require.Len(t, v.Sort, 1)
	assert.Equal(t, SortField{Field: "created_at", Desc: true}, v.Sort[0])
}

func TestParseSortRejectsUnknownDirection(t *testing.T) {
	pairs := []KV{{Key: "sort", Value: "created_at:sideways"}}
	_, err := Parse(pairs)
	require.Error(t, err)
	var perr *ParamError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "sort", perr.Key)
}

func TestParseHighlight(t *testing.T) {
	pairs := []KV{
		{Key: "highlight", Value: "true"},
		{Key: "highlight_count", Value: "5"},
	}
	v, err := Parse(pairs)
	require.NoError(t, err)
	assert.True(t, v.Highlight)
	assert.Equal(t, 5, v.HighlightCount)
}

func TestParseMLTMinimumShouldMatchKeptAsString(t *testing.T) {
	pairs := []KV{{Key: "mlt_minimum_should_match", Value: "20%"}}
	v, err := Parse(pairs)
	require.NoError(t, err)
	assert.Equal(t, "20%", v.MLTMinimumShouldMatch)
}

func TestParseDehydrate(t *testing.T) {
	pairs := []KV{{Key: "dehydrate", Value: "true"}}
	v, err := Parse(pairs)
	require.NoError(t, err)
	assert.True(t, v.Dehydrate)
}

func TestParseRejectsPageBeyondMaxPage(t *testing.T) {
	pairs := []KV{
		{Key: "offset", Value: "9990"},
		{Key: "limit", Value: "20"},
	}
	_, err := Parse(pairs)
	require.Error(t, err)
	var perr *ParamError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "offset/limit", perr.Key)
}

func TestParseRejectsMalformedInt(t *testing.T) {
	pairs := []KV{{Key: "limit", Value: "not-a-number"}}
	_, err := Parse(pairs)
	require.Error(t, err)
	var perr *ParamError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "limit", perr.Key)
}

func TestParseRejectsMalformedBool(t *testing.T) {
	pairs := []KV{{Key: "highlight", Value: "maybe"}}
	_, err := Parse(pairs)
	require.Error(t, err)
	var perr *ParamError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "highlight", perr.Key)
}

func TestParseUnknownKeysIgnored(t *testing.T) {
	pairs := []KV{{Key: "totally_unknown", Value: "whatever"}}
	v, err := Parse(pairs)
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, v.Limit)
}

// TestRoundTrip covers Testable Property 7: parse(unparse(view)) == view
// for views reachable from valid input.
func TestRoundTrip(t *testing.T) {
	cases := []*View{
		{
			Filters:    map[string][]string{},
			Exclusions: map[string][]string{},
			Empties:    map[string]bool{},
			Limit:      DefaultLimit,
			NextLimit:  DefaultLimit,
		},
		{
			Q:          "acme",
			Prefix:     "ac",
			Offset:     40,
			Limit:      20,
			NextLimit:  20,
			Sort:       []SortField{{Field: "created_at", Desc: true}, {Field: "name", Desc: false}},
			Filters:    map[string][]string{"schema": {"Person", "Company"}},
			Exclusions: map[string][]string{"schema": {"Page"}},
			Empties:    map[string]bool{"birthDate": true},
			Ranges:     []RangeFilter{{Field: "dates", Op: OpGTE, Value: "2020-01-01"}},
			Facets: []FacetConfig{
				{Field: "countries", Size: intPtr(50), Total: true, Values: []string{"de", "fr"}, Type: "terms"},
			},
			SignificantTerms: []SignificantConfig{
				{Field: "names", Size: intPtr(10)},
			},
			SignificantText:            &SignificantTextConfig{Field: "content", Size: intPtr(25), MinDocCount: intPtr(3), ShardSize: intPtr(100)},
			Highlight:                  true,
			HighlightCount:             5,
			MaxHighlightAnalyzedOffset: 1000000,
			MLTMinDocFreq:              2,
			MLTMinTermFreq:             1,
			MLTMaxQueryTerms:           25,
			MLTMinimumShouldMatch:      "20%",
			Dehydrate:                  true,
		},
	}

	for i, original := range cases {
		pairs := Unparse(original)
		reparsed, err := Parse(pairs)
		require.NoErrorf(t, err, "case %d", i)
		assert.Equalf(t, original, reparsed, "case %d round trip mismatch", i)
	}
}
