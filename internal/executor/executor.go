// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package executor selects target indices and issues the search request a
// query builder produced (§4.9).
package executor

import (
	"context"
	"fmt"

	"github.com/openaleph/openaleph-search/internal/bucket"
	"github.com/openaleph/openaleph-search/internal/common"
	"github.com/openaleph/openaleph-search/internal/query"
	"github.com/openaleph/openaleph-search/internal/schema"
	"github.com/openaleph/openaleph-search/internal/transport"
)

// Executor runs a Builder's output against the indices implied by a set of
// target schemata (§4.9).
type Executor struct {
	Transport   transport.Transport
	IndexPrefix string
	IndexRead   []string // versions currently readable, e.g. {"v1", "v2"}
	Catalog     *schema.Catalog
}

// RoutingSmallThreshold is the longest routing key, in bytes, a request
// may carry before routing is dropped rather than applied (§4.9 "non-null
// and small"); a longer key is ignored and the search runs without
// routing.
const RoutingSmallThreshold = 16

// Search builds the target index list for schemaNames, POSTs builder's
// body through the transport, and returns the raw response, optionally
// dehydrated (§4.9).
func (e *Executor) Search(ctx context.Context, builder query.Builder, schemaNames []string, routingKey string, dehydrate bool) (common.MapStr, error) {
	indices := e.TargetIndices(schemaNames)
	if len(indices) == 0 {
		return nil, fmt.Errorf("executor: no indices resolved for schemata %v", schemaNames)
	}

	body := builder.Build()
	resp, err := e.Transport.Search(ctx, indices, body, e.effectiveRoutingKey(routingKey))
	if err != nil {
		return nil, err
	}
	if dehydrate {
		Dehydrate(resp)
	}
	return resp, nil
}

func (e *Executor) effectiveRoutingKey(routingKey string) string {
	if routingKey == "" {
		return ""
	}
	if len(routingKey) > RoutingSmallThreshold {
		return ""
	}
	return routingKey
}

// TargetIndices resolves the concrete index names a search over
// schemaNames must hit: every configured index_read version, crossed with
// every bucket implied by schemaNames. Schema names the catalog does not
// know are silently skipped; whether each resulting index exists is not
// checked.
func (e *Executor) TargetIndices(schemaNames []string) []string {
	buckets := e.bucketsFor(schemaNames)
	if len(buckets) == 0 {
		return nil
	}
	return bucket.IndexNames(e.IndexPrefix, buckets, e.IndexRead)
}

func (e *Executor) bucketsFor(schemaNames []string) []bucket.Bucket {
	seen := make(map[bucket.Bucket]bool)
	var out []bucket.Bucket
	for _, name := range schemaNames {
		s, ok := e.Catalog.Lookup(name)
		if !ok {
			continue
		}
		b := bucket.For(s)
		if seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	return out
}

// Dehydrate strips _source.properties from every hit in-place when the
// caller requested a lighter response (§4.9 "strip _source.properties
// when dehydrate=true").
func Dehydrate(resp common.MapStr) {
	hitsWrapper, err := common.ToMapStr(resp["hits"])
	if err != nil {
		return
	}
	hitList, ok := hitsWrapper["hits"].([]interface{})
	if !ok {
		return
	}
	for _, h := range hitList {
		hit, err := common.ToMapStr(h)
		if err != nil {
			continue
		}
		source, err := common.ToMapStr(hit["_source"])
		if err != nil {
			continue
		}
		delete(source, "properties")
		hit["_source"] = source
	}
}
