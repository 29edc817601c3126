package domain_test

import (
	"slices"
	"testing"

	"github.com/jdot274/parcel/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGraph(t *testing.T) *domain.RequestGraph {
	t.Helper()
	g, err := domain.NewRequestGraph(
		[]domain.Node{
			domain.RequestNode{ID: domain.BuildRequestContentKey, RequestType: domain.RequestTypeBuild},
			nil,
			domain.RequestNode{ID: "asset_graph_request", RequestType: domain.RequestTypeAssetGraph, ResultCacheKey: "ag"},
			domain.FileNode{ID: "src/index.js"},
			domain.RequestNode{ID: "path_request", RequestType: domain.RequestTypePath},
		},
		[]domain.Edge{
			{From: 0, To: 2, Kind: domain.EdgeSubrequest},
			{From: 0, To: 4, Kind: domain.EdgeSubrequest},
			{From: 2, To: 3, Kind: domain.EdgeInvalidatedByUpdate},
		},
		nil,
	)
	require.NoError(t, err)
	return g
}

func TestRequestGraph_Nodes(t *testing.T) {
	t.Parallel()
	g := newGraph(t)

	assert.Equal(t, 5, g.Len())
	assert.Equal(t, 3, g.EdgeCount())

	_, ok := g.Node(1)
	assert.False(t, ok, "removed slot")
	_, ok = g.Node(99)
	assert.False(t, ok, "out of range")

	var ids []domain.NodeID
	for id := range g.Nodes() {
		ids = append(ids, id)
	}
	assert.Equal(t, []domain.NodeID{0, 2, 3, 4}, ids)
	assert.Len(t, slices.Collect(g.Edges()), 3)
}

func TestRequestGraph_ContentKeys(t *testing.T) {
	t.Parallel()
	g := newGraph(t)

	id, n, err := g.NodeByContentKey("src/index.js")
	require.NoError(t, err)
	assert.Equal(t, domain.NodeID(3), id)
	assert.Equal(t, domain.NodeKindFile, n.Kind())

	_, err = g.NodeIDByContentKey("missing")
	require.ErrorContains(t, err, domain.ErrNodeNotFound.Error())

	keys := g.ContentKeys()
	delete(keys, "src/index.js")
	_, err = g.NodeIDByContentKey("src/index.js")
	require.NoError(t, err, "ContentKeys returns a copy")
}

func TestRequestGraph_Adjacency(t *testing.T) {
	t.Parallel()
	g := newGraph(t)

	assert.Equal(t, []domain.NodeID{2, 4}, g.NodeIDsConnectedFrom(0, domain.EdgeSubrequest))
	assert.Empty(t, g.NodeIDsConnectedFrom(0, domain.EdgeInvalidatedByUpdate))
	assert.Equal(t, []domain.NodeID{2}, g.NodeIDsConnectedTo(3, domain.EdgeInvalidatedByUpdate))
	assert.Empty(t, g.NodeIDsConnectedFrom(42, domain.EdgeSubrequest))
}

func TestNewRequestGraph_Errors(t *testing.T) {
	t.Parallel()

	nodes := []domain.Node{domain.FileNode{ID: "a"}, nil}
	tests := []struct {
		name  string
		edges []domain.Edge
		keys  map[string]domain.NodeID
	}{
		{name: "edge to missing slot", edges: []domain.Edge{{From: 0, To: 5, Kind: domain.EdgeSubrequest}}},
		{name: "edge to removed slot", edges: []domain.Edge{{From: 1, To: 0, Kind: domain.EdgeSubrequest}}},
		{name: "index to removed slot", keys: map[string]domain.NodeID{"gone": 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := domain.NewRequestGraph(nodes, tt.edges, tt.keys)
			require.ErrorContains(t, err, domain.ErrTopologyMismatch.Error())
		})
	}
}

func TestAsRequest(t *testing.T) {
	t.Parallel()

	req := domain.RequestNode{ID: "r", RequestType: domain.RequestTypePath}
	got, ok := domain.AsRequest(req)
	require.True(t, ok)
	assert.Equal(t, req, got)

	got, ok = domain.AsRequest(&req)
	require.True(t, ok)
	assert.Equal(t, req, got)

	_, ok = domain.AsRequest(domain.EnvNode{ID: "env:X"})
	assert.False(t, ok)

	assert.False(t, req.HasResult())
	assert.True(t, domain.RequestNode{Result: domain.RawValue{0xc0}}.HasResult())
	assert.True(t, domain.RequestNode{ResultCacheKey: "k"}.HasResult())
}
