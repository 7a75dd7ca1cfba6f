// Copyright OpenAleph contributors.
// SPDX-License-Identifier: MIT

package query

import "github.com/openaleph/openaleph-search/internal/schema"

// Entity is the minimal view of an FtM entity the query builders need:
// enough to derive name representations and iterate typed property
// values, without depending on a full entity/proxy model (§4.5, §4.8
// "Input: a schema-compatible entity").
type Entity struct {
	ID     string
	Schema *schema.Schema
	// Names holds every raw value of name-group properties.
	Names []string
	// Properties holds every other property's raw values keyed by
	// property name.
	Properties map[string][]string
}
