package query_test

import (
	"context"
	"testing"

	"github.com/jdot274/parcel/internal/adapters/codec"
	"github.com/jdot274/parcel/internal/core/domain"
	"github.com/jdot274/parcel/internal/core/ports"
	"github.com/jdot274/parcel/internal/core/ports/mocks"
	"github.com/jdot274/parcel/internal/testutil/cachefixture"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newGraph(t *testing.T, nodes []domain.Node, edges []domain.Edge) *domain.RequestGraph {
	t.Helper()
	g, err := domain.NewRequestGraph(nodes, edges, nil)
	require.NoError(t, err)
	return g
}

func newCodec(t *testing.T) *codec.Codec {
	t.Helper()
	c, err := codec.New()
	require.NoError(t, err)
	return c
}

func encodeValue(t *testing.T, v any) domain.RawValue {
	t.Helper()
	raw, err := codec.EncodeValue(v)
	require.NoError(t, err)
	return raw
}

// quietLogger returns a logger mock that accepts any call.
func quietLogger(ctrl *gomock.Controller) *mocks.MockLogger {
	lg := mocks.NewMockLogger(ctrl)
	lg.EXPECT().Info(gomock.Any()).AnyTimes()
	lg.EXPECT().Warn(gomock.Any()).AnyTimes()
	lg.EXPECT().Error(gomock.Any()).AnyTimes()
	return lg
}

// quietTracer returns a tracer mock whose spans accept any call.
func quietTracer(ctrl *gomock.Controller) *mocks.MockTracer {
	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()

	tracer := mocks.NewMockTracer(ctrl)
	// Start has variadic signature: Start(ctx, name, ...opts).
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		},
	).AnyTimes()
	return tracer
}

// cacheContents is an in-memory cache built from the shared fixture graphs.
type cacheContents struct {
	manifest    *domain.ManifestInfo
	blobs       map[string][]byte
	keys        map[string]string
	graph       *domain.RequestGraph
	assetGraph  *domain.AssetGraph
	bundleGraph *domain.BundleGraph
	bundles     domain.BundleManifest
}

type contentsOption func(*contentsConfig)

type contentsConfig struct {
	withoutWriteBundles bool
	dropBlobs           []string
}

func withoutWriteBundles() contentsOption {
	return func(c *contentsConfig) { c.withoutWriteBundles = true }
}

func withoutBlob(structure string) contentsOption {
	return func(c *contentsConfig) { c.dropBlobs = append(c.dropBlobs, structure) }
}

func buildContents(t *testing.T, opts ...contentsOption) *cacheContents {
	t.Helper()

	var cfg contentsConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &cacheContents{blobs: make(map[string][]byte), keys: make(map[string]string)}
	keys := c.keys
	put := func(structure string, data []byte) string {
		key := cachefixture.ContentKey(data)
		keys[structure] = key
		c.blobs[key] = data
		return key
	}

	var err error
	c.assetGraph, err = cachefixture.SampleAssetGraph("current", 2)
	require.NoError(t, err)
	assetBlob, err := codec.EncodeContainer(&domain.SnapshotContainer{AssetGraph: c.assetGraph})
	require.NoError(t, err)
	assetKey := put(domain.StructureAssetGraph, assetBlob)

	c.bundleGraph, err = cachefixture.SampleBundleGraph()
	require.NoError(t, err)
	bundleBlob, err := codec.EncodeContainer(&domain.SnapshotContainer{BundleGraph: c.bundleGraph}, codec.WithCompression())
	require.NoError(t, err)
	bundleKey := put(domain.StructureBundleGraph, bundleBlob)

	nodes := []domain.Node{
		domain.RequestNode{ID: domain.BuildRequestContentKey, RequestType: domain.RequestTypeBuild},
		domain.RequestNode{ID: "asset_graph_request", RequestType: domain.RequestTypeAssetGraph, ResultCacheKey: assetKey},
		domain.RequestNode{ID: "bundle_graph_request", RequestType: domain.RequestTypeBundleGraph, ResultCacheKey: bundleKey},
	}
	edges := []domain.Edge{
		{From: 0, To: 1, Kind: domain.EdgeSubrequest},
		{From: 0, To: 2, Kind: domain.EdgeSubrequest},
	}
	if !cfg.withoutWriteBundles {
		c.bundles = cachefixture.SampleBundleManifest()
		raw, err := codec.EncodeBundleManifest(c.bundles)
		require.NoError(t, err)
		nodes = append(nodes, domain.RequestNode{
			ID:          "write_bundles_request",
			RequestType: domain.RequestTypeWriteBundles,
			Result:      raw,
		})
		edges = append(edges, domain.Edge{From: 0, To: 3, Kind: domain.EdgeSubrequest})
	}
	c.graph = newGraph(t, nodes, edges)

	graphBlob, err := codec.EncodeRequestGraph(c.graph)
	require.NoError(t, err)
	c.manifest = &domain.ManifestInfo{RequestGraphKey: put(domain.StructureRequestGraph, graphBlob)}

	for _, structure := range cfg.dropBlobs {
		delete(c.blobs, keys[structure])
	}
	return c
}

// size returns the length of the blob holding a structure.
func (c *cacheContents) size(t *testing.T, structure string) int {
	t.Helper()
	data, ok := c.blobs[c.keys[structure]]
	require.True(t, ok, "no blob for %s", structure)
	return len(data)
}

// store returns a blob store mock serving c. Small blob reads are not expected.
func (c *cacheContents) store(ctrl *gomock.Controller) *mocks.MockBlobStore {
	store := mocks.NewMockBlobStore(ctrl)
	store.EXPECT().ManifestInfo(gomock.Any()).Return(c.manifest, nil).AnyTimes()
	store.EXPECT().GetLargeBlob(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, key string) ([]byte, error) {
			data, ok := c.blobs[key]
			if !ok {
				return nil, zerr.With(domain.ErrBlobNotFound, "key", key)
			}
			return data, nil
		},
	).AnyTimes()
	return store
}
