package cachefixture

import (
	"context"

	"github.com/jdot274/parcel/internal/adapters/codec"
	"github.com/jdot274/parcel/internal/core/domain"
)

// Sample describes the cache written by WriteSample.
type Sample struct {
	RequestGraph    *domain.RequestGraph
	RequestGraphKey string

	// AssetGraph is the newest asset graph; StaleAssetGraphKey names an older,
	// superseded snapshot that is also in the cache.
	AssetGraph         *domain.AssetGraph
	AssetGraphKey      string
	StaleAssetGraphKey string

	BundleGraph    *domain.BundleGraph
	BundleGraphKey string

	BundleManifest domain.BundleManifest

	// Sizes holds the blob length of each structure, keyed by structure name.
	Sizes map[string]int
}

// SampleBundleManifest is the bundle manifest embedded in the sample request graph.
func SampleBundleManifest() domain.BundleManifest {
	return domain.BundleManifest{
		"bundle:index.js": {
			FilePath: "dist/index.js",
			Type:     "js",
			Stats:    domain.BundleStats{Size: 2048, Time: 12},
		},
		"bundle:index.css": {
			FilePath: "dist/index.css",
			Type:     "css",
			Stats:    domain.BundleStats{Size: 512, Time: 3},
		},
	}
}

// SampleAssetGraph returns an asset graph with the given number of assets,
// each depending on the next.
func SampleAssetGraph(hash string, assets int) (*domain.AssetGraph, error) {
	nodes := []*domain.GraphNode{
		{ContentKey: "@@root", Type: domain.GraphNodeRoot},
		{ContentKey: "entry_specifier:src/index.js", Type: domain.GraphNodeEntrySpecifier, Specifier: "src/index.js"},
	}
	edges := []domain.GraphEdge{{From: 0, To: 1, Type: domain.GraphEdgeNull}}

	prev := domain.NodeID(1)
	for i := range assets {
		path := "src/module" + string(rune('a'+i%26)) + ".js"
		asset := domain.NodeID(len(nodes)) //nolint:gosec // fixture sizes are small
		nodes = append(nodes, &domain.GraphNode{
			ContentKey: "asset:" + path,
			Type:       domain.GraphNodeAsset,
			FilePath:   path,
			ValueType:  "js",
			Size:       int64(100 * (i + 1)),
		})
		edges = append(edges, domain.GraphEdge{From: prev, To: asset, Type: domain.GraphEdgeNull})

		dep := domain.NodeID(len(nodes)) //nolint:gosec // fixture sizes are small
		nodes = append(nodes, &domain.GraphNode{
			ContentKey: "dependency:" + path,
			Type:       domain.GraphNodeDependency,
			Specifier:  "./" + path,
		})
		edges = append(edges, domain.GraphEdge{From: asset, To: dep, Type: domain.GraphEdgeNull})
		prev = dep
	}

	return domain.NewAssetGraph(hash, 0, nodes, edges)
}

// SampleBundleGraph returns a bundle graph with a js bundle that references a css bundle.
func SampleBundleGraph() (*domain.BundleGraph, error) {
	nodes := []*domain.GraphNode{
		{ContentKey: "@@root", Type: domain.GraphNodeRoot},
		{ContentKey: "bundle_group:index", Type: domain.GraphNodeBundleGroup},
		{ContentKey: "bundle:index.js", Type: domain.GraphNodeBundle, ValueType: "js", Name: "index.js", PublicID: "b1"},
		{ContentKey: "bundle:index.css", Type: domain.GraphNodeBundle, ValueType: "css", Name: "index.css", PublicID: "b2"},
		{ContentKey: "asset:src/index.js", Type: domain.GraphNodeAsset, FilePath: "src/index.js", ValueType: "js", Size: 300},
		{ContentKey: "asset:src/index.css", Type: domain.GraphNodeAsset, FilePath: "src/index.css", ValueType: "css", Size: 80},
	}
	edges := []domain.GraphEdge{
		{From: 0, To: 1, Type: domain.GraphEdgeBundle},
		{From: 1, To: 2, Type: domain.GraphEdgeBundle},
		{From: 1, To: 3, Type: domain.GraphEdgeBundle},
		{From: 2, To: 4, Type: domain.GraphEdgeContains},
		{From: 3, To: 5, Type: domain.GraphEdgeContains},
		{From: 2, To: 3, Type: domain.GraphEdgeReferences},
	}
	return domain.NewBundleGraph(0, nodes, edges, map[string]string{
		"b1": "bundle:index.js",
		"b2": "bundle:index.css",
	})
}

// WriteSample writes a cache holding two builds' worth of requests: a stale
// and a current asset graph, a bundle graph and an embedded bundle manifest.
func WriteSample(ctx context.Context, dir, backend string) (*Sample, error) {
	c := New(dir, backend)
	s := &Sample{Sizes: make(map[string]int)}

	stale, err := SampleAssetGraph("stale", 1)
	if err != nil {
		return nil, err
	}
	staleBlob, err := codec.EncodeContainer(&domain.SnapshotContainer{AssetGraph: stale})
	if err != nil {
		return nil, err
	}
	s.StaleAssetGraphKey = c.AddLargeBlob(staleBlob)

	if s.AssetGraph, err = SampleAssetGraph("current", 3); err != nil {
		return nil, err
	}
	assetBlob, err := codec.EncodeContainer(&domain.SnapshotContainer{AssetGraph: s.AssetGraph}, codec.WithCompression())
	if err != nil {
		return nil, err
	}
	s.AssetGraphKey = c.AddLargeBlob(assetBlob)
	s.Sizes[domain.StructureAssetGraph] = len(assetBlob)

	if s.BundleGraph, err = SampleBundleGraph(); err != nil {
		return nil, err
	}
	bundleBlob, err := codec.EncodeContainer(&domain.SnapshotContainer{BundleGraph: s.BundleGraph})
	if err != nil {
		return nil, err
	}
	s.BundleGraphKey = c.AddLargeBlob(bundleBlob)
	s.Sizes[domain.StructureBundleGraph] = len(bundleBlob)

	s.BundleManifest = SampleBundleManifest()
	manifestValue, err := codec.EncodeBundleManifest(s.BundleManifest)
	if err != nil {
		return nil, err
	}

	if s.RequestGraph, err = sampleRequestGraph(s, manifestValue); err != nil {
		return nil, err
	}
	graphBlob, err := codec.EncodeRequestGraph(s.RequestGraph, codec.WithCompression())
	if err != nil {
		return nil, err
	}
	s.RequestGraphKey = c.AddLargeBlob(graphBlob)
	s.Sizes[domain.StructureRequestGraph] = len(graphBlob)

	if err := c.PutManifest(domain.ManifestInfo{
		RequestGraphKey: s.RequestGraphKey,
		SnapshotKey:     "snapshot-" + s.RequestGraphKey,
		Timestamp:       1700000000000,
	}); err != nil {
		return nil, err
	}

	if err := c.Write(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func sampleRequestGraph(s *Sample, manifestValue domain.RawValue) (*domain.RequestGraph, error) {
	nodes := []domain.Node{
		domain.RequestNode{ID: "asset_graph_request:1", RequestType: domain.RequestTypeAssetGraph, ResultCacheKey: s.StaleAssetGraphKey},
		domain.FileNode{ID: "src/index.js"},
		domain.RequestNode{ID: domain.BuildRequestContentKey, RequestType: domain.RequestTypeBuild},
		domain.RequestNode{ID: "asset_graph_request:2", RequestType: domain.RequestTypeAssetGraph, ResultCacheKey: s.AssetGraphKey},
		domain.RequestNode{ID: "bundle_graph_request", RequestType: domain.RequestTypeBundleGraph, ResultCacheKey: s.BundleGraphKey},
		domain.RequestNode{ID: "write_bundles_request", RequestType: domain.RequestTypeWriteBundles, Result: manifestValue},
		domain.EnvNode{ID: "env:NODE_ENV", Value: "production"},
		domain.FileNameNode{ID: "file_name:.parcelrc"},
		domain.RequestNode{ID: "path_request:src/index.js", RequestType: domain.RequestTypePath},
	}
	edges := []domain.Edge{
		{From: 2, To: 3, Kind: domain.EdgeSubrequest},
		{From: 2, To: 4, Kind: domain.EdgeSubrequest},
		{From: 2, To: 5, Kind: domain.EdgeSubrequest},
		{From: 3, To: 8, Kind: domain.EdgeSubrequest},
		{From: 3, To: 1, Kind: domain.EdgeInvalidatedByUpdate},
		{From: 3, To: 6, Kind: domain.EdgeInvalidatedByUpdate},
		{From: 8, To: 7, Kind: domain.EdgeInvalidatedByCreateAbove},
		{From: 8, To: 1, Kind: domain.EdgeInvalidatedByDelete},
	}
	return domain.NewRequestGraph(nodes, edges, nil)
}
