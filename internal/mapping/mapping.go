// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package mapping

import (
	"github.com/openaleph/openaleph-search/internal/bucket"
	"github.com/openaleph/openaleph-search/internal/common"
	"github.com/openaleph/openaleph-search/internal/schema"
)

// sourceExcludes lists every field reconstructed from properties.* via
// copy_to, so _source can omit them (§3 "Group fields and derived name
// fields are excluded from _source").
func sourceExcludes() []string {
	out := append([]string{}, allGroupFields()...)
	out = append(out, "content", "text", "name", "name_keys", "name_parts", "name_symbols", "name_phonetic")
	return out
}

// contentFieldMapping builds the "content" field (§4.2 "Content field").
func contentFieldMapping(b bucket.Bucket, cfg Config) common.MapStr {
	m := common.MapStr{
		"type":          "text",
		"analyzer":      "icu-default",
		"index_phrases": true,
	}
	if cfg.ContentTermVectors {
		m["term_vector"] = "with_positions_offsets"
	}
	if b == bucket.Pages {
		m["store"] = true
	}
	return m
}

// baseMapping builds the identity, name-representation and content fields
// common to every bucket (§3 "Indexed document").
func baseMapping(b bucket.Bucket, cfg Config) common.MapStr {
	return common.MapStr{
		"dataset":        common.MapStr{"type": "keyword"},
		"collection_id":  common.MapStr{"type": "keyword"},
		"schema":         common.MapStr{"type": "keyword"},
		"schemata":       common.MapStr{"type": "keyword"},
		"caption":        common.MapStr{"type": "text", "analyzer": "icu-default"},
		"name":           common.MapStr{"type": "text", "similarity": "weak_length_norm", "store": true},
		"names":          common.MapStr{"type": "keyword", "normalizer": "name-kw-normalizer"},
		"name_keys":      common.MapStr{"type": "keyword"},
		"name_parts":     common.MapStr{"type": "keyword"},
		"name_phonetic":  common.MapStr{"type": "keyword"},
		"name_symbols":   common.MapStr{"type": "keyword"},
		"content":        contentFieldMapping(b, cfg),
		"text":           common.MapStr{"type": "text", "analyzer": "icu-default"},
		"geo_point":      common.MapStr{"type": "geo_point"},
		"created_at":     common.MapStr{"type": "date"},
		"updated_at":     common.MapStr{"type": "date"},
		"first_seen":     common.MapStr{"type": "date"},
		"last_seen":      common.MapStr{"type": "date"},
		"last_change":    common.MapStr{"type": "date"},
		"num_values":     common.MapStr{"type": "integer"},
		"referents":      common.MapStr{"type": "keyword"},
		"origin":         common.MapStr{"type": "keyword"},
		"index_bucket":   common.MapStr{"type": "keyword"},
		"index_version":  common.MapStr{"type": "keyword"},
		"indexed_at":     common.MapStr{"type": "date"},
	}
}

// settingsMapping builds the "settings" block (§4.2 "Settings").
func settingsMapping(b bucket.Bucket, cfg Config) common.MapStr {
	return common.MapStr{
		"index": common.MapStr{
			"number_of_shards":   bucket.Shards(b, cfg.Shards),
			"number_of_replicas": cfg.Replicas,
			"refresh_interval":   cfg.RefreshInterval,
		},
		"analysis": common.MapStr{
			"char_filter": charFilters(),
			"analyzer":    analyzers(),
			"normalizer":  normalizers(),
		},
		"similarity": similarity(),
	}
}

// schemataForBucket returns every catalog schema that routes to b.
func schemataForBucket(cat *schema.Catalog, b bucket.Bucket) []string {
	var out []string
	for _, name := range cat.Names() {
		s, ok := cat.Lookup(name)
		if !ok {
			continue
		}
		if bucket.For(s) == b {
			out = append(out, name)
		}
	}
	return out
}

// Render builds the full index body ("settings" + "mappings") for one
// bucket (§4.2).
func Render(cat *schema.Catalog, b bucket.Bucket, cfg Config) common.MapStr {
	schemaNames := schemataForBucket(cat, b)
	properties, numeric := propertiesMapping(cat, schemaNames, cfg)

	props := baseMapping(b, cfg)
	for k, v := range groupMapping() {
		props[k] = v
	}
	props["properties"] = common.MapStr{"properties": properties}
	props["numeric"] = common.MapStr{"properties": numeric}

	return common.MapStr{
		"settings": settingsMapping(b, cfg),
		"mappings": common.MapStr{
			"date_detection": false,
			"dynamic":        false,
			"_source":        common.MapStr{"excludes": sourceExcludes()},
			"properties":     props,
		},
	}
}
