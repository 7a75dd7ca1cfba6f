// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package mapping

import (
	"sort"

	"github.com/openaleph/openaleph-search/internal/common"
	"github.com/openaleph/openaleph-search/internal/schema"
)

// collated is the union, across every schema in a bucket, of one property's
// type-group observations. When two schemata disagree on a property's
// group, §4.2's keyword-precedence tie-break resolves the ambiguity
// (§9 Open Questions: "keyword wins").
type collated struct {
	groups map[schema.TypeGroup]bool
}

func collateProperties(cat *schema.Catalog, schemaNames []string) map[string]*collated {
	byName := make(map[string]*collated)
	for _, sn := range schemaNames {
		s, ok := cat.Lookup(sn)
		if !ok {
			continue
		}
		for pname, p := range s.Properties {
			c, ok := byName[pname]
			if !ok {
				c = &collated{groups: map[schema.TypeGroup]bool{}}
				byName[pname] = c
			}
			c.groups[p.Group] = true
		}
	}
	return byName
}

// esType resolves the final Elasticsearch field type for a collated
// property: text only if every observed group is text-like, date only if
// every observed group is the date group, keyword otherwise (§4.2
// "Property fields", keyword-precedence tie-break).
func (c *collated) esType() string {
	allText, allDate := true, true
	for g := range c.groups {
		if !g.IsText() {
			allText = false
		}
		if g != schema.GroupDate {
			allDate = false
		}
	}
	switch {
	case allText:
		return "text"
	case allDate:
		return "date"
	default:
		return "keyword"
	}
}

// copyTo computes the merged copy_to target list for a collated property:
// "content" or "text" depending on the resolved ES type, plus every group
// field implied by any observed type group (§3 invariant, §4.2 "copy_to").
func (c *collated) copyTo() []string {
	targets := []string{}
	if c.esType() == "text" {
		targets = append(targets, "content")
	} else {
		targets = append(targets, "text")
	}
	seen := map[string]bool{targets[0]: true}
	var groupFields []string
	for g := range c.groups {
		if f := g.GroupField(); f != "" && !seen[f] {
			seen[f] = true
			groupFields = append(groupFields, f)
		}
	}
	sort.Strings(groupFields)
	return append(targets, groupFields...)
}

// hasNumericGroup reports whether any observed group requires a
// numeric.<field> shadow field (§4.2 "Numeric duplication").
func (c *collated) hasNumericGroup() bool {
	for g := range c.groups {
		if g.IsNumeric() {
			return true
		}
	}
	return false
}

// propertyFieldMapping builds the properties.<name> mapping entry.
func propertyFieldMapping(name string, c *collated, cfg Config) common.MapStr {
	esType := c.esType()
	m := common.MapStr{
		"type":    esType,
		"copy_to": c.copyTo(),
	}
	switch esType {
	case "text":
		m["analyzer"] = "icu-default"
	case "date":
		m["format"] = dateFormatString()
	default:
		m["normalizer"] = "kw-normalizer"
	}
	return m
}

// propertiesMapping builds the "properties.*" and "numeric.*" mapping
// fragments for every property observed across schemaNames (§4.2 "Property
// fields", "Numeric duplication").
func propertiesMapping(cat *schema.Catalog, schemaNames []string, cfg Config) (properties, numeric common.MapStr) {
	collatedByName := collateProperties(cat, schemaNames)
	properties = common.MapStr{}
	numeric = common.MapStr{}

	for name, c := range collatedByName {
		properties[name] = propertyFieldMapping(name, c, cfg)
		if c.hasNumericGroup() {
			numeric[name] = common.MapStr{"type": "double"}
		}
	}
	return properties, numeric
}
