// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package bucket routes FtM schemata to one of the four logical index
// partitions (§2 item 4, §GLOSSARY "Bucket") and names the concrete index
// for a bucket/version pair.
package bucket

import (
	"fmt"

	"github.com/openaleph/openaleph-search/internal/schema"
)

// Bucket is one of the four logical partitions indices are split across.
type Bucket string

const (
	Things     Bucket = "things"
	Intervals  Bucket = "intervals"
	Documents  Bucket = "documents"
	Pages      Bucket = "pages"
)

// All is the ordered list of every bucket, used wherever callers must
// enumerate indices across the whole cluster.
var All = []Bucket{Things, Intervals, Documents, Pages}

// rootSchemata names the schema each bucket is rooted at: a schema belongs
// to a bucket if it "is a" the bucket's root. Interval and Document roots
// are checked before the Thing root since both extend Thing in FtM.
var rootSchemata = []struct {
	bucket Bucket
	root   string
}{
	{Pages, "Page"},
	{Documents, "Document"},
	{Intervals, "Interval"},
	{Things, "Thing"},
}

// For reports the bucket a schema belongs to. Schemas that are not a
// descendant of any known root fall back to Things, the most general
// bucket, matching the source system's behavior of treating unclassified
// schemata as generic "things".
func For(s *schema.Schema) Bucket {
	for _, rs := range rootSchemata {
		if s.IsA(rs.root) {
			return rs.bucket
		}
	}
	return Things
}

// RootSchema returns the schema name a bucket is rooted at, used by the
// query builders to construct per-bucket index-boost filter functions
// (§4.4 "filter(term(schema=<bucket-schema>)) weight=<index_boost_bucket>").
func RootSchema(b Bucket) string {
	for _, rs := range rootSchemata {
		if rs.bucket == b {
			return rs.root
		}
	}
	return ""
}

// ShardFraction returns the fraction of the configured shard count a
// bucket's indices should use (§4.2 "number_of_shards bucket-scaled").
func ShardFraction(b Bucket) float64 {
	switch b {
	case Documents, Pages:
		return 1.0
	case Things:
		return 0.5
	case Intervals:
		return 0.33
	default:
		return 1.0
	}
}

// Shards computes the actual shard count for a bucket given the configured
// base shard count, always rounding up to at least 1.
func Shards(b Bucket, configured int) int {
	n := int(ShardFraction(b) * float64(configured))
	if n < 1 {
		n = 1
	}
	return n
}

// IndexName builds the concrete index name "{prefix}-entity-{bucket}-{version}"
// (§3 "Indexed document", §6 "Index names").
func IndexName(prefix string, b Bucket, version string) string {
	return fmt.Sprintf("%s-entity-%s-%s", prefix, b, version)
}

// IndexNames builds index names for every version in versions targeting the
// given buckets, used by the executor to assemble its target index list
// (§4.9 "Executor").
func IndexNames(prefix string, buckets []Bucket, versions []string) []string {
	var out []string
	for _, v := range versions {
		for _, b := range buckets {
			out = append(out, IndexName(prefix, b, v))
		}
	}
	return out
}
