package query_test

import (
	"testing"

	"github.com/jdot274/parcel/internal/core/domain"
	"github.com/jdot274/parcel/internal/core/ports/mocks"
	"github.com/jdot274/parcel/internal/engine/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func trackerGraph(t *testing.T) *domain.RequestGraph {
	t.Helper()
	return newGraph(t, []domain.Node{
		domain.RequestNode{ID: domain.BuildRequestContentKey, RequestType: domain.RequestTypeBuild},
		domain.RequestNode{ID: "asset_graph_request", RequestType: domain.RequestTypeAssetGraph, ResultCacheKey: "ag"},
		domain.FileNode{ID: "src/index.js"},
		domain.EnvNode{ID: "env:NODE_ENV", Value: "production"},
		domain.RequestNode{ID: "path_request:a", RequestType: domain.RequestTypePath, Result: encodeValue(t, "src/a.js")},
		domain.RequestNode{ID: "path_request:b", RequestType: domain.RequestTypePath},
		domain.FileNameNode{ID: "file_name:package.json"},
		nil,
	}, []domain.Edge{
		{From: 0, To: 1, Kind: domain.EdgeSubrequest},
		{From: 1, To: 4, Kind: domain.EdgeSubrequest},
		{From: 1, To: 5, Kind: domain.EdgeSubrequest},
		{From: 1, To: 2, Kind: domain.EdgeSubrequest},
		{From: 1, To: 6, Kind: domain.EdgeInvalidatedByCreateAbove},
		{From: 1, To: 2, Kind: domain.EdgeInvalidatedByUpdate},
		{From: 1, To: 3, Kind: domain.EdgeInvalidatedByUpdate},
		{From: 1, To: 2, Kind: domain.EdgeInvalidatedByDelete},
	})
}

func TestRequestTracker_Queries(t *testing.T) {
	t.Parallel()

	tracker, err := query.NewRequestTracker(trackerGraph(t), newCodec(t), 0)
	require.NoError(t, err)

	var ids []domain.NodeID
	for r := range tracker.Requests() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []domain.NodeID{0, 1, 4, 5}, ids)

	paths := tracker.RequestsOfType(domain.RequestTypePath)
	require.Len(t, paths, 2)
	assert.Equal(t, "path_request:a", paths[0].Node.ID)
	assert.Equal(t, "path_request:b", paths[1].Node.ID)
	assert.Empty(t, tracker.RequestsOfType(domain.RequestTypeBundleGraph))

	assert.Equal(t, map[domain.RequestType]int{
		domain.RequestTypeBuild:      1,
		domain.RequestTypeAssetGraph: 1,
		domain.RequestTypePath:       2,
	}, tracker.CountByType())

	subs := tracker.Subrequests(1)
	require.Len(t, subs, 2, "non-request targets are skipped")
	assert.Equal(t, domain.NodeID(4), subs[0].ID)
	assert.Equal(t, domain.NodeID(5), subs[1].ID)

	inv := tracker.Invalidations(1)
	require.Len(t, inv, 4)
	assert.Equal(t, []domain.EdgeKind{
		domain.EdgeInvalidatedByUpdate,
		domain.EdgeInvalidatedByUpdate,
		domain.EdgeInvalidatedByDelete,
		domain.EdgeInvalidatedByCreateAbove,
	}, []domain.EdgeKind{inv[0].Kind, inv[1].Kind, inv[2].Kind, inv[3].Kind})
	assert.Equal(t, domain.EnvNode{ID: "env:NODE_ENV", Value: "production"}, inv[1].Node)
	assert.Empty(t, tracker.Invalidations(0))
}

func TestRequestTracker_ResultIsMemoised(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	g := trackerGraph(t)
	codec := mocks.NewMockGraphCodec(ctrl)
	codec.EXPECT().DecodeValue(gomock.Any()).Return("src/a.js", nil).Times(1)

	tracker, err := query.NewRequestTracker(g, codec, 4)
	require.NoError(t, err)

	for range 3 {
		v, err := tracker.Result(4)
		require.NoError(t, err)
		assert.Equal(t, "src/a.js", v)
	}
}

func TestRequestTracker_Result(t *testing.T) {
	t.Parallel()

	tracker, err := query.NewRequestTracker(trackerGraph(t), newCodec(t), 1)
	require.NoError(t, err)

	v, err := tracker.Result(4)
	require.NoError(t, err)
	assert.Equal(t, "src/a.js", v)

	v, err = tracker.Result(5)
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = tracker.Result(2)
	require.ErrorContains(t, err, domain.ErrTopologyMismatch.Error())

	_, err = tracker.Result(7)
	require.ErrorContains(t, err, domain.ErrNodeNotFound.Error())

	_, err = tracker.Result(100)
	require.ErrorContains(t, err, domain.ErrNodeNotFound.Error())
}
