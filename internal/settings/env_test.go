// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvironDefaults(t *testing.T) {
	s, err := loadFromEnviron(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadFromEnvironOverrides(t *testing.T) {
	s, err := loadFromEnviron([]string{
		"OPENALEPH_SEARCH_URI=https://es.internal:9200",
		"OPENALEPH_SEARCH_INDEX_READ=v1,v2",
		"OPENALEPH_SEARCH_SEARCH_AUTH=true",
		"OPENALEPH_SEARCH_INDEX_SHARDS=20",
		"IRRELEVANT_VAR=ignored",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://es.internal:9200", s.URI)
	assert.Equal(t, []string{"v1", "v2"}, s.IndexRead)
	assert.True(t, s.SearchAuth)
	assert.Equal(t, 20, s.IndexShards)
	// Untouched defaults survive the overlay.
	assert.Equal(t, 3, s.MaxRetries)
}

func TestIndexBoostByBucket(t *testing.T) {
	s := DefaultSettings()
	s.IndexBoostPages = 2.5
	boosts := s.IndexBoostByBucket()
	assert.Equal(t, 2.5, boosts["pages"])
}
