package domain_test

import (
	"testing"

	"github.com/jdot274/parcel/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundleGraph(t *testing.T) {
	t.Parallel()

	g, err := domain.NewBundleGraph(0,
		[]*domain.GraphNode{
			{ContentKey: "@@root", Type: domain.GraphNodeRoot},
			{ContentKey: "bundle:a", Type: domain.GraphNodeBundle},
			{ContentKey: "bundle:b", Type: domain.GraphNodeBundle},
			{ContentKey: "asset:a", Type: domain.GraphNodeAsset},
			nil,
		},
		[]domain.GraphEdge{
			{From: 0, To: 1, Type: domain.GraphEdgeBundle},
			{From: 1, To: 3, Type: domain.GraphEdgeContains},
			{From: 1, To: 2, Type: domain.GraphEdgeReferences},
		},
		map[string]string{"pa": "bundle:a"},
	)
	require.NoError(t, err)

	assert.Equal(t, domain.NodeID(0), g.Root())
	assert.Equal(t, []domain.NodeID{1, 2}, g.Bundles())
	assert.Equal(t, []domain.NodeID{3}, g.AssetsInBundle(1))
	assert.Equal(t, []domain.NodeID{1}, g.BundlesReferencing(2))
	assert.Equal(t, 2, g.CountByType()[domain.GraphNodeBundle])

	id, n, err := g.BundleByPublicID("pa")
	require.NoError(t, err)
	assert.Equal(t, domain.NodeID(1), id)
	assert.Equal(t, "bundle:a", n.ContentKey)

	_, _, err = g.BundleByPublicID("zz")
	require.ErrorContains(t, err, domain.ErrNodeNotFound.Error())
}

func TestNewContentGraph_Errors(t *testing.T) {
	t.Parallel()

	nodes := []*domain.GraphNode{{ContentKey: "@@root", Type: domain.GraphNodeRoot}}

	_, err := domain.NewContentGraph(3, nodes, nil)
	require.ErrorContains(t, err, domain.ErrTopologyMismatch.Error())

	_, err = domain.NewContentGraph(0, nodes, []domain.GraphEdge{{From: 0, To: 1}})
	require.ErrorContains(t, err, domain.ErrTopologyMismatch.Error())

	g, err := domain.NewContentGraph(0, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, g.Len())
}
