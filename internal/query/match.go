// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

package query

import (
	"sort"

	"github.com/openaleph/openaleph-search/internal/auth"
	"github.com/openaleph/openaleph-search/internal/bucket"
	"github.com/openaleph/openaleph-search/internal/common"
	"github.com/openaleph/openaleph-search/internal/nameproc"
	"github.com/openaleph/openaleph-search/internal/schema"
)

// MaxClauses caps the number of property-scoring should clauses
// MatchQuery emits. The name-block and identifier-block clauses are not
// counted against it, so a query's total clause count can exceed
// MaxClauses.
const MaxClauses = 500

// groupSpecificity ranks type groups from most to least specific, used to
// order the property-scoring should clauses before the MaxClauses cap is
// applied (§4.5 "sorted by property specificity descending"). Identifiers
// and other high-selectivity groups go first so truncation drops the
// least discriminating clauses, not the most discriminating ones; the
// exact ranking beyond that is this module's own decision (open question).
var groupSpecificity = map[schema.TypeGroup]int{
	schema.GroupIdentifier: 100,
	schema.GroupChecksum:   95,
	schema.GroupEmail:      90,
	schema.GroupPhone:      85,
	schema.GroupURL:        80,
	schema.GroupIP:         75,
	schema.GroupAddress:    60,
	schema.GroupDate:       55,
	schema.GroupCountry:    40,
	schema.GroupLanguage:   35,
	schema.GroupGender:     30,
	schema.GroupMimetype:   25,
	schema.GroupTopic:      20,
	schema.GroupEntity:     15,
}

// boostedScoringGroups get a boost=2.0 term clause; every other group gets
// an unboosted term clause (§4.5 "For type groups in {ip, url, email,
// phone}: boost=2.0. Otherwise: no boost").
var boostedScoringGroups = map[schema.TypeGroup]bool{
	schema.GroupIP:    true,
	schema.GroupURL:   true,
	schema.GroupEmail: true,
	schema.GroupPhone: true,
}

// MatchQuery renders the "find similar entities" query (§4.5).
type MatchQuery struct {
	Entity Entity
	Auth   *auth.Authorization
	Opts   Options
	Dict   nameproc.SymbolDictionary
}

func (q *MatchQuery) Build() common.MapStr {
	bq := &boolQuery{}

	names := nameproc.Process(q.Entity.Schema, q.Entity.Names, q.Dict)
	bq.Must(q.nameBlock(names))
	if idBlock := q.identifierBlock(); idBlock != nil {
		bq.Must(idBlock)
	}
	bq.Should(q.propertyScoringClauses()...)
	bq.MustNot(idsClause([]string{q.Entity.ID}))

	if clause := authFilter(q.Auth, q.Opts.OpenAlephMode, nil); clause != nil {
		bq.Filter(clause)
	}

	inner := bq.Build()

	var functions []common.MapStr
	for b, weight := range q.Opts.IndexBoost {
		if schemaName := bucket.RootSchema(b); schemaName != "" {
			functions = append(functions, bucketBoostFunction(schemaName, weight))
		}
	}

	return common.MapStr{
		"query": functionScoreWrap(inner, true, functions...),
	}
}

// nameBlock builds the must-clause name scoring sub-query with
// minimum_should_match: 1 (§4.5 "must (name block)").
func (q *MatchQuery) nameBlock(names nameproc.Result) common.MapStr {
	block := &boolQuery{}
	picked := nameproc.PickNames(names.Names, nameproc.DefaultPickLimit)
	for _, n := range picked {
		block.Should(matchClause("names", n, 3.0))
	}
	for _, k := range names.NameKeys {
		block.Should(boostedTermClause("name_keys", k, 4.0))
	}
	for _, p := range names.Parts {
		block.Should(boostedTermClause("name_parts", p, 1.0))
	}
	for _, ph := range names.Phonetic {
		block.Should(boostedTermClause("name_phonetic", ph, 0.8))
	}
	for _, s := range names.Symbols {
		block.Should(termClause("name_symbols", s))
	}
	block.MinimumShouldMatch(1)
	return block.Build()
}

// identifierBlock builds the must-clause identifier scoring sub-query with
// minimum_should_match: 0, i.e. it never excludes a result on its own, it
// only contributes score (§4.5 "must (identifier block, minimum_should_match: 0)").
func (q *MatchQuery) identifierBlock() common.MapStr {
	block := &boolQuery{}
	any := false
	for name, values := range q.Entity.Properties {
		prop, ok := q.Entity.Schema.Property(name)
		if !ok || prop.Group != schema.GroupIdentifier {
			continue
		}
		for _, v := range values {
			block.Should(boostedTermClause("properties."+name, v, 3.0))
			any = true
		}
	}
	if !any {
		return nil
	}
	block.MinimumShouldMatch(0)
	return block.Build()
}

type scoredClause struct {
	specificity int
	clause      common.MapStr
}

// propertyScoringClauses builds the should-clause property scoring list,
// ordered by group specificity and capped at MaxClauses (§4.5 "should
// (property scoring)"). Clauses in the name and identifier blocks do not
// count toward the cap.
func (q *MatchQuery) propertyScoringClauses() []common.MapStr {
	var scored []scoredClause
	for name, values := range q.Entity.Properties {
		prop, ok := q.Entity.Schema.Property(name)
		if !ok {
			continue
		}
		field := prop.Group.GroupField()
		if field == "" {
			continue
		}
		spec := groupSpecificity[prop.Group]
		for _, v := range values {
			var clause common.MapStr
			if boostedScoringGroups[prop.Group] {
				clause = boostedTermClause(field, v, 2.0)
			} else {
				clause = termClause(field, v)
			}
			scored = append(scored, scoredClause{specificity: spec, clause: clause})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].specificity > scored[j].specificity
	})
	if len(scored) > MaxClauses {
		scored = scored[:MaxClauses]
	}
	out := make([]common.MapStr, len(scored))
	for i, s := range scored {
		out[i] = s.clause
	}
	return out
}
