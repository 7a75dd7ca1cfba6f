// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package mapping

import (
	"github.com/openaleph/openaleph-search/internal/common"
	"github.com/openaleph/openaleph-search/internal/schema"
)

// dateGroupFields are group fields typed as "date" rather than "keyword"
// (§3 "Group fields (keyword or date)").
var dateGroupFields = map[string]bool{
	"dates": true,
}

// dateFormats lists every accepted date format alternative (§4.2 "Date
// format alternatives").
var dateFormats = []string{
	"yyyy-MM-dd'T'HH",
	"yyyy-MM-dd'T'HH:mm",
	"yyyy-MM-dd'T'HH:mm:ss",
	"yyyy-MM-dd",
	"yyyy-MM",
	"yyyy",
	"strict_date_optional_time",
}

func dateFormatString() string {
	out := ""
	for i, f := range dateFormats {
		if i > 0 {
			out += "||"
		}
		out += f
	}
	return out
}

// IsDateField reports whether a group field is mapped as "date" rather
// than "keyword", for callers outside this package that need to choose
// between a terms and a date_histogram aggregation (§4.6).
func IsDateField(field string) bool {
	return dateGroupFields[field]
}

// DateFormat returns the "||"-joined format string accepted on date group
// fields (§4.2 "Date format alternatives").
func DateFormat() string {
	return dateFormatString()
}

// allGroupFields enumerates every group field name reachable from the
// default type-group table (§3 "Group fields").
func allGroupFields() []string {
	groups := []schema.TypeGroup{
		schema.GroupCountry, schema.GroupLanguage, schema.GroupEmail,
		schema.GroupPhone, schema.GroupDate, schema.GroupAddress,
		schema.GroupIdentifier, schema.GroupIP, schema.GroupURL,
		schema.GroupEntity, schema.GroupChecksum, schema.GroupGender,
		schema.GroupMimetype, schema.GroupTopic,
	}
	seen := make(map[string]bool)
	var out []string
	for _, g := range groups {
		f := g.GroupField()
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// groupFieldMapping builds the field mapping entry for one group field.
func groupFieldMapping(field string) common.MapStr {
	if dateGroupFields[field] {
		return common.MapStr{
			"type":   "date",
			"format": dateFormatString(),
		}
	}
	return common.MapStr{
		"type":       "keyword",
		"normalizer": "kw-normalizer",
	}
}

// groupMapping returns the "properties" fragment for every group field
// (§4.2, the base mapping's group section).
func groupMapping() common.MapStr {
	out := common.MapStr{}
	for _, f := range allGroupFields() {
		out[f] = groupFieldMapping(f)
	}
	return out
}
