// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

package query

import (
	"github.com/openaleph/openaleph-search/internal/auth"
	"github.com/openaleph/openaleph-search/internal/bucket"
	"github.com/openaleph/openaleph-search/internal/common"
	"github.com/openaleph/openaleph-search/internal/params"
)

// Builder is the capability every query type in this package implements:
// render a View (plus whatever side context it needs) into the body POSTed
// to _search (§9 "QueryBuilder capability").
type Builder interface {
	Build() common.MapStr
}

// Options carries the process-wide knobs the query builders need that do
// not belong on a per-request View: whether function_score boosting is on,
// the per-bucket index boost weights, and whether collection_id (OpenAleph
// mode) or dataset is the authorization field.
type Options struct {
	QueryFunctionScore bool
	OpenAlephMode      bool
	IndexBoost         map[bucket.Bucket]float64
	NumericFields      map[string]bool
}

// EntitiesQuery renders the free-text entity search query (§4.4).
type EntitiesQuery struct {
	View *params.View
	Auth *auth.Authorization
	Opts Options
}

func (q *EntitiesQuery) Build() common.MapStr {
	bq := &boolQuery{}

	if q.View.Q != "" {
		bq.Must(queryString(q.View.Q))
	}
	if q.View.Prefix != "" {
		bq.Should(prefixClause("name", q.View.Prefix))
	}

	active := BuildActiveFilters(q.View)
	field := authField(q.Auth, q.Opts.OpenAlephMode)
	if clause := authFilter(q.Auth, q.Opts.OpenAlephMode, q.View.Filters[field]); clause != nil {
		active[field] = []common.MapStr{clause}
	} else {
		delete(active, field)
	}
	bq.Filter(active.Flatten()...)

	inner := bq.Build()

	var functions []common.MapStr
	for b, weight := range q.Opts.IndexBoost {
		if schemaName := bucket.RootSchema(b); schemaName != "" {
			functions = append(functions, bucketBoostFunction(schemaName, weight))
		}
	}

	body := common.MapStr{
		"query": functionScoreWrap(inner, q.Opts.QueryFunctionScore, functions...),
	}
	if sorts := sortClauses(q.View.Sort, q.Opts.NumericFields); len(sorts) > 0 {
		body["sort"] = sorts
	}
	body["from"] = q.View.Offset
	body["size"] = q.View.Limit

	if aggs := BuildAggs(q.View, q.aggsContext(), active); len(aggs) > 0 {
		body["aggs"] = aggs
	}

	return body
}

func (q *EntitiesQuery) aggsContext() AggsContext {
	field := authField(q.Auth, q.Opts.OpenAlephMode)
	scoped := q.View.Filters[field]
	if q.Auth != nil {
		scoped = q.Auth.Scope(q.Opts.OpenAlephMode, scoped)
	}
	return AggsContext{
		Authenticated:    q.Auth != nil,
		BackgroundFilter: buildAuthBackgroundFilter(q.Auth, q.Opts.OpenAlephMode, scoped),
		SamplerField:     field,
	}
}

func authField(a *auth.Authorization, openAlephMode bool) string {
	if a != nil {
		return a.Field(openAlephMode)
	}
	if openAlephMode {
		return "collection_id"
	}
	return "dataset"
}
