// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

package params

import (
	"strconv"
)

// Unparse renders a View back into an ordered KV list such that
// Parse(Unparse(v)) reproduces v (Testable Property 7). Map iteration
// order across distinct fields is irrelevant to the result: DeepEqual
// on the re-parsed View does not depend on which field came first, only
// that each field's own value order is preserved, which this function
// does by construction.
func Unparse(v *View) []KV {
	var out []KV
	add := func(k, val string) { out = append(out, KV{Key: k, Value: val}) }

	if v.Q != "" {
		add("q", v.Q)
	}
	if v.Prefix != "" {
		add("prefix", v.Prefix)
	}
	add("offset", strconv.Itoa(v.Offset))
	add("limit", strconv.Itoa(v.Limit))
	if v.NextLimit != v.Limit {
		add("next_limit", strconv.Itoa(v.NextLimit))
	}

	for _, s := range v.Sort {
		dir := "asc"
		if s.Desc {
			dir = "desc"
		}
		add("sort", s.Field+":"+dir)
	}

	for field, values := range v.Filters {
		for _, val := range values {
			add("filter:"+field, val)
		}
	}
	for field, values := range v.Exclusions {
		for _, val := range values {
			add("exclude:"+field, val)
		}
	}
	for field, on := range v.Empties {
		if on {
			add("empty:"+field, "true")
		}
	}
	for _, r := range v.Ranges {
		add("filter:"+string(r.Op)+":"+r.Field, r.Value)
	}

	for _, f := range v.Facets {
		add("facet", f.Field)
		if f.Size != nil {
			add("facet_size:"+f.Field, strconv.Itoa(*f.Size))
		}
		if f.Total {
			add("facet_total:"+f.Field, "true")
		}
		for _, val := range f.Values {
			add("facet_values:"+f.Field, val)
		}
		if f.Type != "" {
			add("facet_type:"+f.Field, f.Type)
		}
		if f.Interval != "" {
			add("facet_interval:"+f.Field, f.Interval)
		}
	}

	for _, s := range v.SignificantTerms {
		add("facet_significant", s.Field)
		if s.Size != nil {
			add("facet_significant_size:"+s.Field, strconv.Itoa(*s.Size))
		}
		if s.Total {
			add("facet_significant_total:"+s.Field, "true")
		}
		for _, val := range s.Values {
			add("facet_significant_values:"+s.Field, val)
		}
		if s.Type != "" {
			add("facet_significant_type:"+s.Field, s.Type)
		}
	}

	if st := v.SignificantText; st != nil {
		add("facet_significant_text", st.Field)
		if st.Size != nil {
			add("facet_significant_text_size", strconv.Itoa(*st.Size))
		}
		if st.MinDocCount != nil {
			add("facet_significant_text_min_doc_count", strconv.Itoa(*st.MinDocCount))
		}
		if st.ShardSize != nil {
			add("facet_significant_text_shard_size", strconv.Itoa(*st.ShardSize))
		}
	}

	if v.Highlight {
		add("highlight", "true")
	}
	if v.HighlightCount != 0 {
		add("highlight_count", strconv.Itoa(v.HighlightCount))
	}
	if v.MaxHighlightAnalyzedOffset != 0 {
		add("max_highlight_analyzed_offset", strconv.Itoa(v.MaxHighlightAnalyzedOffset))
	}

	if v.MLTMinDocFreq != 0 {
		add("mlt_min_doc_freq", strconv.Itoa(v.MLTMinDocFreq))
	}
	if v.MLTMinTermFreq != 0 {
		add("mlt_min_term_freq", strconv.Itoa(v.MLTMinTermFreq))
	}
	if v.MLTMaxQueryTerms != 0 {
		add("mlt_max_query_terms", strconv.Itoa(v.MLTMaxQueryTerms))
	}
	if v.MLTMinimumShouldMatch != "" {
		add("mlt_minimum_should_match", v.MLTMinimumShouldMatch)
	}

	if v.Dehydrate {
		add("dehydrate", "true")
	}

	return out
}
