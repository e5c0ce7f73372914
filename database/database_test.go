package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexesTargetKnownCollections(t *testing.T) {
	known := map[string]bool{}
	for _, name := range append(append([]string{}, collectionNames...), edgeCollectionNames...) {
		known[name] = true
	}

	names := map[string]bool{}
	for _, idx := range idxList {
		assert.True(t, known[idx.Collection], "index %s targets unknown collection %s", idx.IdxName, idx.Collection)
		assert.NotEmpty(t, idx.IdxFields, "index %s has no fields", idx.IdxName)
		assert.False(t, names[idx.IdxName], "index name %s is used twice", idx.IdxName)
		names[idx.IdxName] = true
	}
}

func TestReleaseQueriesUseEdgeCollections(t *testing.T) {
	for _, edge := range edgeCollectionNames {
		assert.Contains(t, releaseProjection, edge)
	}
}
