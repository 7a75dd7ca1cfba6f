// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

package query

import (
	"sort"

	"github.com/openaleph/openaleph-search/internal/auth"
	"github.com/openaleph/openaleph-search/internal/common"
	"github.com/openaleph/openaleph-search/internal/mapping"
	"github.com/openaleph/openaleph-search/internal/params"
)

// DefaultFacetSize is used when a facet has no explicit _size (§4.6
// "get_facet_size(F, default 20)").
const DefaultFacetSize = 20

// SmallFacetsCap is the size ceiling applied to facets outside SmallFacets
// for unauthenticated callers (§4.6 "cap size at 50").
const SmallFacetsCap = 50

// SmallFacets never get size-capped for unauthenticated callers, because
// their cardinality is small and bounded regardless of caller identity
// (§4.6 "F ∉ SMALL_FACETS = {schema, schemata, dataset, countries, languages}").
var SmallFacets = map[string]bool{
	"schema": true, "schemata": true, "dataset": true,
	"countries": true, "languages": true,
}

// AggsContext carries the pieces of request state the aggregation builder
// needs but that do not belong on the View itself: whether the caller is
// authenticated (controls the small-facets size cap), the scoped
// background filter fields, and the settings knobs governing significant
// terms/text sampling.
type AggsContext struct {
	Authenticated bool
	BackgroundFilter common.MapStr // nil when index-level stats should be used
	SamplerField     string        // auth field used by diversified_sampler

	SignificantTermsSamplerSize int
	MinDocCount                 int
	ShardMinDocCount            int
	RandomSampler                bool
	RandomSamplerProbability     func(field string) float64 // pre-query _count-derived probability, nil disables
}

// ActiveFilters groups every active filter clause by the field it applies
// to (value filters, range filters, exclusions and empties on that field
// all collapse into one entry), so the aggregation builder can isolate a
// facet from filters on its own field while keeping every other filter
// (§4.6 "Post-filter isolation").
type ActiveFilters map[string][]common.MapStr

// BuildAggs renders every regular facet, significant-terms field and the
// significant_text block into the top-level "aggs" fragment (§4.6), each
// wrapped in its own post-filter isolation (§4.6 "Post-filter isolation").
func BuildAggs(v *params.View, ctx AggsContext, activeFilters ActiveFilters) common.MapStr {
	out := common.MapStr{}
	for _, f := range v.Facets {
		out[facetAggName(f.Field)] = buildFacetAgg(f, ctx, activeFilters)
	}
	for _, s := range v.SignificantTerms {
		out[significantAggName(s.Field)] = buildSignificantTermsAgg(v, s, ctx, activeFilters)
	}
	if v.SignificantText != nil {
		out["significant_text:"+v.SignificantText.Field] = buildSignificantTextAgg(v, *v.SignificantText, ctx, activeFilters)
	}
	return out
}

// BuildActiveFilters collects every user-supplied filter/exclusion/empty/
// range clause from the View, grouped by field, for use both as the main
// query's filter list and as the aggregation builder's isolation input.
func BuildActiveFilters(v *params.View) ActiveFilters {
	out := ActiveFilters{}
	for field, values := range v.Filters {
		out[field] = append(out[field], termsClause(field, values))
	}
	for field, values := range v.Exclusions {
		out[field] = append(out[field], wrapMustNot(termsClause(field, values)))
	}
	for field, on := range v.Empties {
		if on {
			out[field] = append(out[field], wrapMustNot(existsClause(field)))
		}
	}
	for _, r := range v.Ranges {
		out[r.Field] = append(out[r.Field], rangeClause(r.Field, r.Op, r.Value))
	}
	return out
}

// Flatten concatenates every field's clauses into one filter list, for use
// as the main query's "filter" array. Fields are visited in sorted order
// so the result is deterministic across calls (Testable Property 8 scopes
// variance to map key ordering, not array ordering).
func (a ActiveFilters) Flatten() []common.MapStr {
	out := make([]common.MapStr, 0, len(a))
	for _, f := range a.sortedFields() {
		out = append(out, a[f]...)
	}
	return out
}

// sortedFields returns a's field names in sorted order.
func (a ActiveFilters) sortedFields() []string {
	fields := make([]string, 0, len(a))
	for f := range a {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func facetAggName(field string) string      { return "facet:" + field }
func significantAggName(field string) string { return "significant:" + field }

// isolationFilter builds the conjunction of every active filter except the
// ones on field itself, or nil if there is nothing left to isolate on
// (§4.6 "the conjunction of all active filters except filters on F").
func isolationFilter(field string, activeFilters ActiveFilters) []common.MapStr {
	out := make([]common.MapStr, 0, len(activeFilters))
	for _, f := range activeFilters.sortedFields() {
		if f == field {
			continue
		}
		out = append(out, activeFilters[f]...)
	}
	return out
}

func buildFacetAgg(f params.FacetConfig, ctx AggsContext, activeFilters ActiveFilters) common.MapStr {
	size := DefaultFacetSize
	if f.Size != nil {
		size = *f.Size
	}
	total := f.Total
	if !ctx.Authenticated && !SmallFacets[f.Field] {
		if size > SmallFacetsCap {
			size = SmallFacetsCap
		}
		total = false
	}

	var inner common.MapStr
	if f.Interval != "" && mapping.IsDateField(f.Field) {
		histogram := common.MapStr{
			"field":         f.Field,
			"min_doc_count": 0,
			"format":        mapping.DateFormat(),
		}
		if isCalendarInterval(f.Interval) {
			histogram["calendar_interval"] = f.Interval
		} else {
			histogram["fixed_interval"] = f.Interval
		}
		if bounds, ok := extendedBoundsFromRange(f.Field, activeFilters); ok {
			histogram["extended_bounds"] = bounds
		}
		inner = common.MapStr{"date_histogram": histogram}
	} else {
		inner = common.MapStr{
			"terms": common.MapStr{
				"field":          f.Field,
				"size":           size,
				"execution_hint": "map",
			},
		}
	}

	aggs := common.MapStr{f.Field: inner}
	if total {
		aggs[f.Field+":total"] = common.MapStr{"cardinality": common.MapStr{"field": f.Field}}
	}
	return wrapFacetIsolation(f.Field, aggs, activeFilters)
}

func wrapFacetIsolation(field string, aggs common.MapStr, activeFilters ActiveFilters) common.MapStr {
	isolation := isolationFilter(field, activeFilters)
	if len(isolation) == 0 {
		return common.MapStr{"aggs": aggs}
	}
	return common.MapStr{
		"filter": common.MapStr{"bool": common.MapStr{"filter": isolation}},
		"aggs":   aggs,
	}
}

var calendarIntervals = map[string]bool{
	"minute": true, "hour": true, "day": true, "week": true,
	"month": true, "quarter": true, "year": true,
}

func isCalendarInterval(interval string) bool {
	return calendarIntervals[interval]
}

// extendedBoundsFromRange looks for a range filter on field and, if
// present, derives {min,max} extended_bounds for the histogram (§4.6 "If a
// corresponding range filter on F exists, add extended_bounds").
func extendedBoundsFromRange(field string, activeFilters ActiveFilters) (common.MapStr, bool) {
	bounds := common.MapStr{}
	for _, clause := range activeFilters[field] {
		rangeBody, ok := clause["range"].(common.MapStr)
		if !ok {
			continue
		}
		fieldBody, ok := rangeBody[field].(common.MapStr)
		if !ok {
			continue
		}
		if v, ok := fieldBody["gte"]; ok {
			bounds["min"] = v
		} else if v, ok := fieldBody["gt"]; ok {
			bounds["min"] = v
		}
		if v, ok := fieldBody["lte"]; ok {
			bounds["max"] = v
		} else if v, ok := fieldBody["lt"]; ok {
			bounds["max"] = v
		}
	}
	if len(bounds) == 0 {
		return nil, false
	}
	return bounds, true
}

// samplerWrap chooses between diversified_sampler and plain sampler
// depending on whether the request already scopes to a dataset/collection
// (§4.6 "diversified_sampler ... when no collection/dataset filter is set;
// otherwise plain sampler").
func samplerWrap(ctx AggsContext, shardSize int, inner common.MapStr) common.MapStr {
	if ctx.RandomSampler && ctx.RandomSamplerProbability != nil {
		return common.MapStr{
			"random_sampler": common.MapStr{
				"probability": ctx.RandomSamplerProbability(ctx.SamplerField),
			},
			"aggs": common.MapStr{"inner": inner},
		}
	}
	if ctx.BackgroundFilter == nil {
		return common.MapStr{
			"diversified_sampler": common.MapStr{
				"shard_size": shardSize,
				"field":      ctx.SamplerField,
			},
			"aggs": common.MapStr{"inner": inner},
		}
	}
	return common.MapStr{
		"sampler": common.MapStr{"shard_size": shardSize},
		"aggs":    common.MapStr{"inner": inner},
	}
}

func buildSignificantTermsAgg(v *params.View, s params.SignificantConfig, ctx AggsContext, activeFilters ActiveFilters) common.MapStr {
	size := DefaultFacetSize
	if s.Size != nil {
		size = *s.Size
	}
	shardSize := size * 5
	if shardSize < 100 {
		shardSize = 100
	}

	body := common.MapStr{
		"field":             s.Field,
		"size":              size,
		"min_doc_count":     ctx.MinDocCount,
		"shard_min_doc_count": ctx.ShardMinDocCount,
		"shard_size":        shardSize,
		"execution_hint":    "map",
	}
	if ctx.BackgroundFilter != nil {
		body["background_filter"] = ctx.BackgroundFilter
	}
	inner := common.MapStr{"significant_terms": body}
	sampled := samplerWrap(ctx, ctx.SignificantTermsSamplerSize, inner)
	return wrapFacetIsolation(s.Field, common.MapStr{s.Field: sampled}, activeFilters)
}

func buildSignificantTextAgg(v *params.View, cfg params.SignificantTextConfig, ctx AggsContext, activeFilters ActiveFilters) common.MapStr {
	size := DefaultFacetSize
	if cfg.Size != nil {
		size = *cfg.Size
	}
	minDocCount := ctx.MinDocCount
	if cfg.MinDocCount != nil {
		minDocCount = *cfg.MinDocCount
	}
	shardSize := size * 5
	if cfg.ShardSize != nil {
		shardSize = *cfg.ShardSize
	}
	if shardSize < 100 {
		shardSize = 100
	}

	body := common.MapStr{
		"field":               cfg.Field,
		"filter_duplicate_text": true,
		"size":                size,
		"min_doc_count":       minDocCount,
		"shard_size":          shardSize,
	}
	if ctx.BackgroundFilter != nil {
		body["background_filter"] = ctx.BackgroundFilter
	}
	inner := common.MapStr{"significant_text": body}
	sampled := samplerWrap(ctx, ctx.SignificantTermsSamplerSize, inner)
	return wrapFacetIsolation(cfg.Field, common.MapStr{cfg.Field: sampled}, activeFilters)
}

// buildAuthBackgroundFilter implements the §4.6 "background_filter
// scoping" rule: restrict to active collection/dataset values on the auth
// field, or omit the filter entirely when nothing is active.
func buildAuthBackgroundFilter(a *auth.Authorization, openAlephMode bool, requested []string) common.MapStr {
	if len(requested) == 0 {
		return nil
	}
	field := "dataset"
	if a != nil {
		field = a.Field(openAlephMode)
	}
	return common.MapStr{"terms": common.MapStr{field: requested}}
}
