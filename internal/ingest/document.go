// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package ingest

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/openaleph/openaleph-search/internal/common"
	"github.com/openaleph/openaleph-search/internal/nameproc"
	"github.com/openaleph/openaleph-search/internal/schema"
)

// Document is one entity transformed into the shape ready to hand to a
// bulk index action: the resolved _id plus the _source body. Fields
// reconstructed at index time via copy_to (content, text, the group
// fields) are not set here; they are populated by Elasticsearch from the
// properties.* values this document does carry.
type Document struct {
	ID     string
	Source common.MapStr
}

// ToDocument builds the indexable Document for an Entity (§3 "Indexed
// document"). namespaceIDs mirrors the index_namespace_ids setting: when
// true, the stored _id is namespaced by dataset so the same upstream id
// from two datasets never collides.
func ToDocument(cat *schema.Catalog, e Entity, dict nameproc.SymbolDictionary, namespaceIDs bool) (Document, error) {
	s, ok := cat.Lookup(e.Schema)
	if !ok {
		return Document{}, fmt.Errorf("ingest: unknown schema %q", e.Schema)
	}

	names, rest := splitNameProperties(s, e.Properties)
	processed := nameproc.Process(s, names, dict)

	source := common.MapStr{
		"dataset":  e.Dataset,
		"schema":   e.Schema,
		"schemata": s.Schemata(),
		"caption":  caption(processed.Names),

		"name":          captionField(processed.Names),
		"names":         processed.Names,
		"name_keys":     processed.NameKeys,
		"name_parts":    processed.Parts,
		"name_phonetic": processed.Phonetic,
		"name_symbols":  processed.Symbols,
	}
	if e.CollectionID != nil {
		source["collection_id"] = fmt.Sprintf("%d", *e.CollectionID)
	}

	properties := common.MapStr{}
	numeric := common.MapStr{}
	numValues := len(names)
	for name, values := range rest {
		properties[name] = values
		numValues += len(values)

		prop, ok := s.Property(name)
		if !ok || !prop.IsNumeric() {
			continue
		}
		if v, ok := firstNumeric(prop.Group, values); ok {
			numeric[name] = v
		}
	}
	source["properties"] = properties
	if len(numeric) > 0 {
		source["numeric"] = numeric
	}
	source["num_values"] = numValues

	applyContext(source, e.Context)
	source["indexed_at"] = time.Now().UTC().Format(time.RFC3339)

	return Document{ID: resolveID(e.ID, e.Dataset, namespaceIDs), Source: source}, nil
}

// splitNameProperties partitions an entity's raw properties into its
// name-group values and everything else.
func splitNameProperties(s *schema.Schema, properties map[string][]string) (names []string, rest map[string][]string) {
	rest = make(map[string][]string, len(properties))
	for name, values := range properties {
		prop, ok := s.Property(name)
		if ok && prop.Group == schema.GroupName {
			names = append(names, values...)
			continue
		}
		rest[name] = values
	}
	return names, rest
}

func caption(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// captionField renders the "name" text field's value: every processed
// name joined so full-text queries can match on any of them.
func captionField(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " "
		}
		out += n
	}
	return out
}

// dateLayouts are tried in order when duplicating a date-group value into
// numeric.<field> as seconds since epoch.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15",
	"2006-01-02",
	"2006-01",
	"2006",
}

func firstNumeric(g schema.TypeGroup, values []string) (float64, bool) {
	for _, v := range values {
		if g == schema.GroupDate {
			for _, layout := range dateLayouts {
				if t, err := time.Parse(layout, v); err == nil {
					return float64(t.Unix()), true
				}
			}
			continue
		}
		var f float64
		if _, err := fmt.Sscanf(v, "%g", &f); err == nil {
			return f, true
		}
	}
	return 0, false
}

func applyContext(source common.MapStr, ctx Context) {
	setIfNotEmpty(source, "created_at", ctx.CreatedAt)
	setIfNotEmpty(source, "updated_at", ctx.UpdatedAt)
	setIfNotEmpty(source, "first_seen", ctx.FirstSeen)
	setIfNotEmpty(source, "last_seen", ctx.LastSeen)
	setIfNotEmpty(source, "last_change", ctx.LastChange)
	setIfNotEmpty(source, "origin", ctx.Origin)
	if len(ctx.Referents) > 0 {
		source["referents"] = ctx.Referents
	}
}

func setIfNotEmpty(m common.MapStr, key, value string) {
	if value != "" {
		m[key] = value
	}
}

// resolveID computes the stored _id: the bare entity id, or dataset-hash
// prefixed when namespaceIDs is set (§3 "with index_namespace_ids=true,
// the stored _id becomes hash(dataset) + id").
func resolveID(id, dataset string, namespaceIDs bool) string {
	if !namespaceIDs {
		return id
	}
	sum := sha1.Sum([]byte(dataset))
	return hex.EncodeToString(sum[:8]) + id
}
