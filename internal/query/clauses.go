// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

// Package query builds Elasticsearch request bodies from a typed View and
// the schema catalog (§4.4–§4.8). Every builder composes the same small
// set of clause assemblers in this file rather than hand-writing
// common.MapStr literals, so the bool/filter/function_score shape stays
// consistent across EntitiesQuery, MatchQuery and MoreLikeThisQuery.
package query

import (
	"github.com/openaleph/openaleph-search/internal/auth"
	"github.com/openaleph/openaleph-search/internal/common"
	"github.com/openaleph/openaleph-search/internal/params"
)

// boolQuery is the accumulating bool-query builder. Nil slices render as
// absent clauses: ES ignores empty must/should/filter/must_not arrays
// semantically, but omitting them keeps rendered bodies compact and
// matches the Testable Property 8 byte-identical comparison.
type boolQuery struct {
	must               []common.MapStr
	should             []common.MapStr
	filter             []common.MapStr
	mustNot            []common.MapStr
	minimumShouldMatch interface{}
}

func (b *boolQuery) Must(clauses ...common.MapStr) *boolQuery {
	b.must = append(b.must, clauses...)
	return b
}

func (b *boolQuery) Should(clauses ...common.MapStr) *boolQuery {
	b.should = append(b.should, clauses...)
	return b
}

func (b *boolQuery) Filter(clauses ...common.MapStr) *boolQuery {
	b.filter = append(b.filter, clauses...)
	return b
}

func (b *boolQuery) MustNot(clauses ...common.MapStr) *boolQuery {
	b.mustNot = append(b.mustNot, clauses...)
	return b
}

func (b *boolQuery) MinimumShouldMatch(v interface{}) *boolQuery {
	b.minimumShouldMatch = v
	return b
}

func (b *boolQuery) Build() common.MapStr {
	body := common.MapStr{}
	if len(b.must) > 0 {
		body["must"] = b.must
	}
	if len(b.should) > 0 {
		body["should"] = b.should
	}
	if len(b.filter) > 0 {
		body["filter"] = b.filter
	}
	if len(b.mustNot) > 0 {
		body["must_not"] = b.mustNot
	}
	if b.minimumShouldMatch != nil {
		body["minimum_should_match"] = b.minimumShouldMatch
	}
	return common.MapStr{"bool": body}
}

func queryString(q string) common.MapStr {
	return common.MapStr{
		"query_string": common.MapStr{
			"query":           q,
			"default_operator": "AND",
		},
	}
}

func prefixClause(field, prefix string) common.MapStr {
	return common.MapStr{"prefix": common.MapStr{field: prefix}}
}

func termClause(field string, value interface{}) common.MapStr {
	return common.MapStr{"term": common.MapStr{field: value}}
}

func boostedTermClause(field string, value interface{}, boost float64) common.MapStr {
	return common.MapStr{"term": common.MapStr{field: common.MapStr{"value": value, "boost": boost}}}
}

func termsClause(field string, values []string) common.MapStr {
	vals := make([]interface{}, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return common.MapStr{"terms": common.MapStr{field: vals}}
}

func idsClause(ids []string) common.MapStr {
	return common.MapStr{"ids": common.MapStr{"values": ids}}
}

func existsClause(field string) common.MapStr {
	return common.MapStr{"exists": common.MapStr{"field": field}}
}

func rangeClause(field string, op params.RangeOp, value string) common.MapStr {
	return common.MapStr{"range": common.MapStr{field: common.MapStr{string(op): value}}}
}

func matchClause(field, value string, boost float64) common.MapStr {
	return common.MapStr{
		"match": common.MapStr{
			field: common.MapStr{
				"query":     value,
				"operator":  "AND",
				"fuzziness": "AUTO",
				"boost":     boost,
			},
		},
	}
}

// wrapMustNot builds a bool clause that negates a single inner clause; used
// for the "empty:<field>" filter shape (§4.3 "empties"), which forbids a
// value existing at all.
func wrapMustNot(clause common.MapStr) common.MapStr {
	return common.MapStr{"bool": common.MapStr{"must_not": []common.MapStr{clause}}}
}

// authFilter scopes a query by the caller's permitted dataset/collection
// values merged with any value the caller explicitly filtered on (§4.4
// "terms(dataset|collection_id, auth.datasets ∪ user filters)"). Returns
// nil when nothing should be restricted.
func authFilter(a *auth.Authorization, openAlephMode bool, requested []string) common.MapStr {
	field := "dataset"
	if a != nil {
		field = a.Field(openAlephMode)
	}
	var scoped []string
	if a != nil {
		scoped = a.Scope(openAlephMode, requested)
	} else {
		scoped = requested
	}
	if len(scoped) == 0 {
		return nil
	}
	return termsClause(field, scoped)
}

// functionScoreWrap wraps inner in a function_score query with the shared
// num_values field_value_factor boost and an optional per-bucket index
// boost function (§4.4, §4.5 "Wrapped in function_score with
// field_value_factor(num_values, factor=0.5, modifier=sqrt), boost_mode=sum").
// enabled gates the wrap entirely: without settings.query_function_score
// the outer function_score is omitted (§4.4 "Without query_function_score,
// the outer function_score is omitted").
func functionScoreWrap(inner common.MapStr, enabled bool, extraFunctions ...common.MapStr) common.MapStr {
	if !enabled {
		return inner
	}
	functions := []common.MapStr{
		{
			"field_value_factor": common.MapStr{
				"field":    "num_values",
				"factor":   0.5,
				"modifier": "sqrt",
				"missing":  1,
			},
		},
	}
	functions = append(functions, extraFunctions...)
	return common.MapStr{
		"function_score": common.MapStr{
			"query":      inner,
			"functions":  functions,
			"boost_mode": "sum",
		},
	}
}

// bucketBoostFunction builds one of EntitiesQuery's per-bucket index boost
// functions (§4.4 "filter(term(schema=<bucket-schema>)) weight=<index_boost_bucket>").
func bucketBoostFunction(schemaName string, weight float64) common.MapStr {
	return common.MapStr{
		"filter": termClause("schema", schemaName),
		"weight": weight,
	}
}

// sortClauses renders the View's sort entries, preferring the numeric.*
// duplicate field for sortable numeric/date group fields (§4.4 "numeric
// duplicates in numeric.* are preferred when sorting numeric/date").
func sortClauses(sorts []params.SortField, numericFields map[string]bool) []common.MapStr {
	out := make([]common.MapStr, 0, len(sorts))
	for _, s := range sorts {
		field := s.Field
		if numericFields[field] {
			field = "numeric." + field
		}
		order := "asc"
		if s.Desc {
			order = "desc"
		}
		out = append(out, common.MapStr{field: common.MapStr{"order": order}})
	}
	return out
}
