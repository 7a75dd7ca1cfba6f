// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

package params

// MaxPage is the hard ceiling on offset+limit (§4.3 "MAX_PAGE=9999").
const MaxPage = 9999

// DefaultLimit is the page size used when the caller does not specify one.
const DefaultLimit = 20

// RangeOp is one of the four range-filter comparison operators (§4.3
// "ranges").
type RangeOp string

const (
	OpGT  RangeOp = "gt"
	OpGTE RangeOp = "gte"
	OpLT  RangeOp = "lt"
	OpLTE RangeOp = "lte"
)

// RangeFilter is one parsed "filter:<op>:<field>=<v>" entry.
type RangeFilter struct {
	Field string
	Op    RangeOp
	Value string
}

// SortField is one parsed "sort=<field>:<direction>" entry.
type SortField struct {
	Field string
	Desc  bool
}

// FacetConfig is one regular facet's parsed configuration (§4.3 "facets").
type FacetConfig struct {
	Field    string
	Size     *int
	Total    bool
	Values   []string
	Type     string
	Interval string
}

// SignificantConfig is one significant-terms field's parsed configuration.
type SignificantConfig struct {
	Field  string
	Size   *int
	Total  bool
	Values []string
	Type   string
}

// SignificantTextConfig is the single significant_text block's parsed
// configuration (§4.3 "significant_text").
type SignificantTextConfig struct {
	Field       string
	Size        *int
	MinDocCount *int
	ShardSize   *int
}

// View is the typed parameter view the query builders consume (§2 item 5,
// §4.3). It replaces the source system's dynamically typed parameter
// dictionary (§9 design note).
type View struct {
	Q      string
	Prefix string

	Offset    int
	Limit     int
	NextLimit int

	Sort []SortField

	Filters    map[string][]string
	Exclusions map[string][]string
	Empties    map[string]bool
	Ranges     []RangeFilter

	Facets           []FacetConfig
	SignificantTerms []SignificantConfig
	SignificantText  *SignificantTextConfig

	Highlight                  bool
	HighlightCount             int
	MaxHighlightAnalyzedOffset int

	MLTMinDocFreq          int
	MLTMinTermFreq         int
	MLTMaxQueryTerms       int
	MLTMinimumShouldMatch  string

	Dehydrate bool
}

// Page computes the zero-based page number from Offset/Limit (§4.3
// "Computed: page = offset/limit").
func (v *View) Page() int {
	if v.Limit == 0 {
		return 0
	}
	return v.Offset / v.Limit
}

// FacetConfig looks up a facet's parsed configuration by field name.
func (v *View) FacetConfig(field string) (FacetConfig, bool) {
	for _, f := range v.Facets {
		if f.Field == field {
			return f, true
		}
	}
	return FacetConfig{}, false
}
