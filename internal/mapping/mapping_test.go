// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openaleph/openaleph-search/internal/bucket"
	"github.com/openaleph/openaleph-search/internal/common"
	"github.com/openaleph/openaleph-search/internal/schema"
)

func testCatalog(t *testing.T) *schema.Catalog {
	t.Helper()
	cat, err := schema.DefaultCatalog()
	require.NoError(t, err)
	return cat
}

func shardsOf(body common.MapStr) int {
	settings := body["settings"].(common.MapStr)
	idx := settings["index"].(common.MapStr)
	return idx["number_of_shards"].(int)
}

func TestRenderShardsScaleByBucket(t *testing.T) {
	cat := testCatalog(t)
	cfg := DefaultConfig()
	cfg.Shards = 10

	things := Render(cat, bucket.Things, cfg)
	intervals := Render(cat, bucket.Intervals, cfg)
	documents := Render(cat, bucket.Documents, cfg)

	assert.Equal(t, 5, shardsOf(things))
	assert.Equal(t, 3, shardsOf(intervals))
	assert.Equal(t, 10, shardsOf(documents))
}

func TestRenderExcludesDerivedFieldsFromSource(t *testing.T) {
	cat := testCatalog(t)
	body := Render(cat, bucket.Things, DefaultConfig())
	mappings := body["mappings"].(common.MapStr)
	excludes := mappings["_source"].(common.MapStr)["excludes"].([]string)
	assert.Contains(t, excludes, "content")
	assert.Contains(t, excludes, "countries")
	assert.Contains(t, excludes, "name_phonetic")
}

func TestRenderPropertyCopyToWiring(t *testing.T) {
	cat := testCatalog(t)
	body := Render(cat, bucket.Things, DefaultConfig())
	mappings := body["mappings"].(common.MapStr)
	props := mappings["properties"].(common.MapStr)
	propProps := props["properties"].(common.MapStr)["properties"].(common.MapStr)

	country := propProps["country"].(common.MapStr)
	assert.Equal(t, "keyword", country["type"])
	assert.Contains(t, country["copy_to"], "countries")
	assert.Contains(t, country["copy_to"], "text")
}

func TestRenderNumericDuplication(t *testing.T) {
	cat := testCatalog(t)
	body := Render(cat, bucket.Intervals, DefaultConfig())
	mappings := body["mappings"].(common.MapStr)
	props := mappings["properties"].(common.MapStr)
	numeric := props["numeric"].(common.MapStr)["properties"].(common.MapStr)

	assert.Contains(t, numeric, "startDate")
	assert.Contains(t, numeric, "amount")
}
