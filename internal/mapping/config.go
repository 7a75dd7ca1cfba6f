// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package mapping

// Config carries the subset of OPENALEPH_SEARCH_* settings the mapping
// builder needs (§6 Configuration). It is populated from
// internal/settings.Settings by the caller, keeping this package free of a
// dependency on the settings loader.
type Config struct {
	Shards             int
	Replicas           int
	RefreshInterval    string
	ContentTermVectors bool
}

// DefaultConfig mirrors the OPENALEPH_SEARCH_* defaults listed in §6.
func DefaultConfig() Config {
	return Config{
		Shards:             10,
		Replicas:           0,
		RefreshInterval:    "1s",
		ContentTermVectors: true,
	}
}
