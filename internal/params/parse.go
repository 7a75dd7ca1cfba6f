// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

package params

import "strings"

var rangeOps = map[string]RangeOp{
	"gt": OpGT, "gte": OpGTE, "lt": OpLT, "lte": OpLTE,
}

// Parse builds a typed View from an ordered (key, value) pair list (§4.3).
// Unknown keys are ignored (§4.3 "Validation: unknown keys are ignored").
// A malformed known key (bad int, bad bool, page too large) returns a
// *ParamError and never reaches the cluster (§7 error kind 1).
func Parse(pairs []KV) (*View, error) {
	b := newBag(pairs)
	v := &View{
		Filters:    map[string][]string{},
		Exclusions: map[string][]string{},
		Empties:    map[string]bool{},
	}

	v.Q = b.getString("q")
	v.Prefix = b.getString("prefix")

	var err error
	if v.Offset, err = b.getInt("offset", 0); err != nil {
		return nil, err
	}
	if v.Limit, err = b.getInt("limit", DefaultLimit); err != nil {
		return nil, err
	}
	if v.Offset+v.Limit > MaxPage {
		return nil, paramErrorf("offset/limit", "offset+limit (%d) exceeds MAX_PAGE (%d)", v.Offset+v.Limit, MaxPage)
	}
	if v.NextLimit, err = b.getInt("next_limit", v.Limit); err != nil {
		return nil, err
	}

	for _, raw := range b.getList("sort") {
		field, desc, perr := parseSortEntry(raw)
		if perr != nil {
			return nil, perr
		}
		v.Sort = append(v.Sort, SortField{Field: field, Desc: desc})
	}

	if err := parseFilters(pairs, v); err != nil {
		return nil, err
	}

	if v.Facets, err = parseFacets(b); err != nil {
		return nil, err
	}
	if v.SignificantTerms, err = parseSignificantTerms(b); err != nil {
		return nil, err
	}
	if v.SignificantText, err = parseSignificantText(b); err != nil {
		return nil, err
	}

	if v.Highlight, err = b.getBool("highlight", false); err != nil {
		return nil, err
	}
	if v.HighlightCount, err = b.getInt("highlight_count", 0); err != nil {
		return nil, err
	}
	if v.MaxHighlightAnalyzedOffset, err = b.getInt("max_highlight_analyzed_offset", 0); err != nil {
		return nil, err
	}

	if v.MLTMinDocFreq, err = b.getInt("mlt_min_doc_freq", 0); err != nil {
		return nil, err
	}
	if v.MLTMinTermFreq, err = b.getInt("mlt_min_term_freq", 0); err != nil {
		return nil, err
	}
	if v.MLTMaxQueryTerms, err = b.getInt("mlt_max_query_terms", 0); err != nil {
		return nil, err
	}
	v.MLTMinimumShouldMatch = b.getString("mlt_minimum_should_match")

	if v.Dehydrate, err = b.getBool("dehydrate", false); err != nil {
		return nil, err
	}

	return v, nil
}

func parseSortEntry(raw string) (field string, desc bool, err *ParamError) {
	field, dir, found := strings.Cut(raw, ":")
	if !found {
		return field, false, nil
	}
	switch strings.ToLower(dir) {
	case "desc":
		return field, true, nil
	case "asc":
		return field, false, nil
	default:
		return "", false, paramErrorf("sort", "unknown sort direction %q", dir)
	}
}

// parseFilters groups the pair list's "filter:", "exclude:" and "empty:"
// keys, splitting "filter:<op>:<field>" range filters from plain
// "filter:<field>" value filters (§4.3 "filters", "ranges", "empties").
func parseFilters(pairs []KV, v *View) error {
	for _, kv := range pairs {
		switch {
		case strings.HasPrefix(kv.Key, "filter:"):
			rest := strings.TrimPrefix(kv.Key, "filter:")
			if op, field, ok := splitRangeKey(rest); ok {
				v.Ranges = append(v.Ranges, RangeFilter{Field: field, Op: op, Value: kv.Value})
				continue
			}
			v.Filters[rest] = append(v.Filters[rest], kv.Value)
		case strings.HasPrefix(kv.Key, "exclude:"):
			field := strings.TrimPrefix(kv.Key, "exclude:")
			v.Exclusions[field] = append(v.Exclusions[field], kv.Value)
		case strings.HasPrefix(kv.Key, "empty:"):
			field := strings.TrimPrefix(kv.Key, "empty:")
			if isTrue(kv.Value) {
				v.Empties[field] = true
			}
		}
	}
	return nil
}

func splitRangeKey(rest string) (RangeOp, string, bool) {
	prefix, field, found := strings.Cut(rest, ":")
	if !found {
		return "", "", false
	}
	op, ok := rangeOps[prefix]
	if !ok {
		return "", "", false
	}
	return op, field, true
}

func isTrue(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1":
		return true
	default:
		return false
	}
}

func parseFacets(b bag) ([]FacetConfig, error) {
	fields := b.getList("facet")
	if len(fields) == 0 {
		return nil, nil
	}
	sizes := b.getPrefixed("facet_size")
	totals := b.getPrefixed("facet_total")
	valuesByField := b.getPrefixed("facet_values")
	types := b.getPrefixed("facet_type")
	intervals := b.getPrefixed("facet_interval")

	out := make([]FacetConfig, 0, len(fields))
	for _, f := range fields {
		fc := FacetConfig{Field: f, Values: valuesByField[f]}
		if raw, ok := firstOf(sizes[f]); ok {
			n, perr := parseIntValue("facet_size:"+f, raw)
			if perr != nil {
				return nil, perr
			}
			fc.Size = &n
		}
		if raw, ok := firstOf(totals[f]); ok {
			total, perr := parseBoolValue("facet_total:"+f, raw)
			if perr != nil {
				return nil, perr
			}
			fc.Total = total
		}
		if raw, ok := firstOf(types[f]); ok {
			fc.Type = raw
		}
		if raw, ok := firstOf(intervals[f]); ok {
			fc.Interval = raw
		}
		out = append(out, fc)
	}
	return out, nil
}

func parseSignificantTerms(b bag) ([]SignificantConfig, error) {
	fields := b.getList("facet_significant")
	if len(fields) == 0 {
		return nil, nil
	}
	sizes := b.getPrefixed("facet_significant_size")
	totals := b.getPrefixed("facet_significant_total")
	valuesByField := b.getPrefixed("facet_significant_values")
	types := b.getPrefixed("facet_significant_type")

	out := make([]SignificantConfig, 0, len(fields))
	for _, f := range fields {
		sc := SignificantConfig{Field: f, Values: valuesByField[f]}
		if raw, ok := firstOf(sizes[f]); ok {
			n, perr := parseIntValue("facet_significant_size:"+f, raw)
			if perr != nil {
				return nil, perr
			}
			sc.Size = &n
		}
		if raw, ok := firstOf(totals[f]); ok {
			total, perr := parseBoolValue("facet_significant_total:"+f, raw)
			if perr != nil {
				return nil, perr
			}
			sc.Total = total
		}
		if raw, ok := firstOf(types[f]); ok {
			sc.Type = raw
		}
		out = append(out, sc)
	}
	return out, nil
}

const defaultSignificantTextField = "content"

func parseSignificantText(b bag) (*SignificantTextConfig, error) {
	field, hasField := b.first("facet_significant_text")
	_, hasSize := b["facet_significant_text_size"]
	_, hasMinDoc := b["facet_significant_text_min_doc_count"]
	_, hasShard := b["facet_significant_text_shard_size"]
	if !hasField && !hasSize && !hasMinDoc && !hasShard {
		return nil, nil
	}
	if field == "" {
		field = defaultSignificantTextField
	}
	cfg := &SignificantTextConfig{Field: field}

	size, err := b.getOptionalInt("facet_significant_text_size")
	if err != nil {
		return nil, err
	}
	cfg.Size = size

	minDoc, err := b.getOptionalInt("facet_significant_text_min_doc_count")
	if err != nil {
		return nil, err
	}
	cfg.MinDocCount = minDoc

	shard, err := b.getOptionalInt("facet_significant_text_shard_size")
	if err != nil {
		return nil, err
	}
	cfg.ShardSize = shard

	return cfg, nil
}

func firstOf(values []string) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func parseIntValue(key, raw string) (int, *ParamError) {
	b := bag{key: {raw}}
	n, err := b.getInt(key, 0)
	if err != nil {
		return 0, err.(*ParamError)
	}
	return n, nil
}

func parseBoolValue(key, raw string) (bool, *ParamError) {
	b := bag{key: {raw}}
	v, err := b.getBool(key, false)
	if err != nil {
		return false, err.(*ParamError)
	}
	return v, nil
}
