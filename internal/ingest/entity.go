// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

// Package ingest implements the entity-to-document transform and the
// concurrent bulk-submit pipeline that feeds it into a cluster. It is the
// producer side of the system: query and mapping describe how the result
// is shaped and searched, ingest is what puts it there.
package ingest

// Entity is the wire shape an embedder hands to the indexing pipeline: an
// FtM entity plus the dataset/collection scoping and lifecycle metadata
// needed to build an indexed document.
type Entity struct {
	ID           string
	Schema       string
	Properties   map[string][]string
	Dataset      string
	CollectionID *int

	Context Context
}

// Context carries the lifecycle metadata an entity may optionally supply.
// Every field is omitted from the built document when zero.
type Context struct {
	CreatedAt  string
	UpdatedAt  string
	FirstSeen  string
	LastSeen   string
	LastChange string
	Referents  []string
	Origin     string
}
