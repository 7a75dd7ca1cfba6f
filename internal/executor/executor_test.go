// Copyright Elasticsearch B.V. and/or licensed to Elasticsearch B.V. under one
// or more contributor license agreements. Licensed under the Elastic License;
// you may not use this file except in compliance with the Elastic License.

package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openaleph/openaleph-search/internal/common"
	"github.com/openaleph/openaleph-search/internal/query"
	"github.com/openaleph/openaleph-search/internal/schema"
)

type fakeTransport struct {
	gotIndices []string
	gotRouting string
	resp       common.MapStr
}

func (f *fakeTransport) Search(_ context.Context, indices []string, _ common.MapStr, routingKey string) (common.MapStr, error) {
	f.gotIndices = indices
	f.gotRouting = routingKey
	return f.resp, nil
}

type fakeBuilder struct{ body common.MapStr }

func (b *fakeBuilder) Build() common.MapStr { return b.body }

func testCatalog(t *testing.T) *schema.Catalog {
	t.Helper()
	cat, err := schema.DefaultCatalog()
	require.NoError(t, err)
	return cat
}

func TestTargetIndicesSkipsMissingBuckets(t *testing.T) {
	e := &Executor{IndexPrefix: "openaleph", IndexRead: []string{"v1"}, Catalog: testCatalog(t)}
	indices := e.TargetIndices([]string{"Person", "Document"})
	assert.ElementsMatch(t, []string{"openaleph-entity-things-v1", "openaleph-entity-documents-v1"}, indices)
}

func TestSearchAppliesRoutingOnlyWhenSmall(t *testing.T) {
	ft := &fakeTransport{resp: common.MapStr{"hits": common.MapStr{"hits": []interface{}{}}}}
	e := &Executor{Transport: ft, IndexPrefix: "openaleph", IndexRead: []string{"v1"}, Catalog: testCatalog(t)}

	_, err := e.Search(context.Background(), &fakeBuilder{body: common.MapStr{}}, []string{"Person"}, "dataset-a", false)
	require.NoError(t, err)
	assert.Equal(t, "dataset-a", ft.gotRouting)

	huge := ""
	for i := 0; i < RoutingSmallThreshold+1; i++ {
		huge += "x"
	}
	_, err = e.Search(context.Background(), &fakeBuilder{body: common.MapStr{}}, []string{"Person"}, huge, false)
	require.NoError(t, err)
	assert.Equal(t, "", ft.gotRouting)
}

func TestSearchDehydrateStripsProperties(t *testing.T) {
	ft := &fakeTransport{resp: common.MapStr{
		"hits": common.MapStr{
			"hits": []interface{}{
				common.MapStr{"_source": common.MapStr{"caption": "Jane", "properties": common.MapStr{"name": []interface{}{"Jane"}}}},
			},
		},
	}}
	e := &Executor{Transport: ft, IndexPrefix: "openaleph", IndexRead: []string{"v1"}, Catalog: testCatalog(t)}

	resp, err := e.Search(context.Background(), &fakeBuilder{body: common.MapStr{}}, []string{"Person"}, "", true)
	require.NoError(t, err)

	hits := resp["hits"].(common.MapStr)["hits"].([]interface{})
	require.Len(t, hits, 1)
	source := hits[0].(common.MapStr)["_source"].(common.MapStr)
	_, hasProperties := source["properties"]
	assert.False(t, hasProperties)
	assert.Equal(t, "Jane", source["caption"])
}

func TestSearchNoIndicesIsError(t *testing.T) {
	ft := &fakeTransport{}
	e := &Executor{Transport: ft, IndexPrefix: "openaleph", IndexRead: nil, Catalog: testCatalog(t)}
	_, err := e.Search(context.Background(), &fakeBuilder{body: common.MapStr{}}, []string{"Person"}, "", false)
	require.Error(t, err)
}

var _ = query.Builder(&fakeBuilder{})
