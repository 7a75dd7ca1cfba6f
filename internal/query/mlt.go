// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

package query

import (
	"github.com/openaleph/openaleph-search/internal/auth"
	"github.com/openaleph/openaleph-search/internal/bucket"
	"github.com/openaleph/openaleph-search/internal/common"
	"github.com/openaleph/openaleph-search/internal/params"
	"github.com/openaleph/openaleph-search/internal/schema"
)

// mltFields lists the fields more_like_this compares against (§4.8).
var mltFields = []string{"content", "text", "name", "names"}

// documentPageSchemas returns every schema in the catalog that belongs to
// the documents or pages bucket, the fixed scope MoreLikeThisQuery
// restricts to (§4.8 "Targets indices for {documents, pages} only").
func documentPageSchemas(cat *schema.Catalog) []string {
	var out []string
	for _, name := range cat.Names() {
		s, ok := cat.Lookup(name)
		if !ok {
			continue
		}
		switch bucket.For(s) {
		case bucket.Documents, bucket.Pages:
			out = append(out, name)
		}
	}
	return out
}

// MoreLikeThisQuery renders the "find similar documents" query (§4.8).
type MoreLikeThisQuery struct {
	EntityID string
	View     *params.View
	Catalog  *schema.Catalog
	Auth     *auth.Authorization
	Opts     Options
}

func (q *MoreLikeThisQuery) Build() common.MapStr {
	bq := &boolQuery{}
	bq.Must(q.mltClause())
	bq.MustNot(idsClause([]string{q.EntityID}))
	bq.Filter(termsClause("schema", documentPageSchemas(q.Catalog)))

	if clause := authFilter(q.Auth, q.Opts.OpenAlephMode, nil); clause != nil {
		bq.Filter(clause)
	}

	inner := bq.Build()
	return common.MapStr{
		"query": functionScoreWrap(inner, q.Opts.QueryFunctionScore),
	}
}

func (q *MoreLikeThisQuery) mltClause() common.MapStr {
	body := common.MapStr{
		"fields": mltFields,
		"like":   []common.MapStr{{"_id": q.EntityID}},
	}
	if q.View.MLTMinTermFreq != 0 {
		body["min_term_freq"] = q.View.MLTMinTermFreq
	}
	if q.View.MLTMaxQueryTerms != 0 {
		body["max_query_terms"] = q.View.MLTMaxQueryTerms
	}
	if q.View.MLTMinDocFreq != 0 {
		body["min_doc_freq"] = q.View.MLTMinDocFreq
	}
	if q.View.MLTMinimumShouldMatch != "" {
		body["minimum_should_match"] = q.View.MLTMinimumShouldMatch
	}
	return common.MapStr{"more_like_this": body}
}
