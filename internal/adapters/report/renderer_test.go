package report_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/jdot274/parcel/internal/adapters/report"
	"github.com/jdot274/parcel/internal/core/domain"
	"github.com/jdot274/parcel/internal/engine/query"
	"github.com/jdot274/parcel/internal/testutil/cachefixture"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTracker(t *testing.T) *query.RequestTracker {
	t.Helper()
	g, err := domain.NewRequestGraph([]domain.Node{
		domain.RequestNode{ID: domain.BuildRequestContentKey, RequestType: domain.RequestTypeBuild},
		domain.RequestNode{ID: "asset_graph_request", RequestType: domain.RequestTypeAssetGraph, ResultCacheKey: "ag1"},
		domain.FileNode{ID: "src/index.js"},
		domain.RequestNode{ID: "write_bundles_request", RequestType: domain.RequestTypeWriteBundles, Result: domain.RawValue{0x80}},
		domain.RequestNode{ID: "path_request:a", RequestType: domain.RequestTypePath},
	}, []domain.Edge{
		{From: 0, To: 1, Kind: domain.EdgeSubrequest},
		{From: 0, To: 3, Kind: domain.EdgeSubrequest},
		{From: 1, To: 4, Kind: domain.EdgeSubrequest},
		{From: 4, To: 2, Kind: domain.EdgeInvalidatedByUpdate},
	}, nil)
	require.NoError(t, err)

	tracker, err := query.NewRequestTracker(g, nil, 0)
	require.NoError(t, err)
	return tracker
}

func TestRenderer_Stats(t *testing.T) {
	t.Run("full report", func(t *testing.T) {
		assets, err := cachefixture.SampleAssetGraph("current", 3)
		require.NoError(t, err)
		bundles, err := cachefixture.SampleBundleGraph()
		require.NoError(t, err)

		rep := &query.Report{
			Manifest:       &domain.ManifestInfo{RequestGraphKey: "rg", SnapshotKey: "snap", Timestamp: 1700000000000},
			RequestTracker: sampleTracker(t),
			AssetGraph:     assets,
			BundleGraph:    bundles,
			BundleManifest: cachefixture.SampleBundleManifest(),
			CacheInfo:      domain.NewCacheInfo(),
		}
		rep.CacheInfo.Record(domain.StructureRequestGraph, 2048, 3*time.Millisecond)
		rep.CacheInfo.Record(domain.StructureAssetGraph, 12345, 7*time.Millisecond)
		rep.CacheInfo.Record(domain.StructureBundleGraph, 512, 0)

		var buf bytes.Buffer
		require.NoError(t, report.NewPlain(&buf).Stats(rep, report.Source{Dir: ".parcel-cache", Backend: domain.BackendFS}))

		goldie.New(t).Assert(t, "stats_full", buf.Bytes())
	})

	t.Run("empty cache", func(t *testing.T) {
		rep := &query.Report{CacheInfo: domain.NewCacheInfo()}
		rep.AddNote("no build has populated this cache; nothing to inspect")

		var buf bytes.Buffer
		require.NoError(t, report.NewPlain(&buf).Stats(rep, report.Source{Dir: "/tmp/empty", Backend: domain.BackendBadger}))

		goldie.New(t).Assert(t, "stats_empty", buf.Bytes())
	})
}

func TestRenderer_Requests(t *testing.T) {
	var requests []query.Request
	for r := range sampleTracker(t).Requests() {
		requests = append(requests, r)
	}

	var buf bytes.Buffer
	require.NoError(t, report.NewPlain(&buf).Requests(requests))

	goldie.New(t).Assert(t, "requests", buf.Bytes())
}

func TestRenderer_RequestsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.NewPlain(&buf).Requests(nil))
	assert.Equal(t, "no requests\n", buf.String())
}

func TestRenderer_Bundles(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.NewPlain(&buf).Bundles(cachefixture.SampleBundleManifest()))

	goldie.New(t).Assert(t, "bundles", buf.Bytes())
}

func TestRenderer_BundlesUnavailable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.NewPlain(&buf).Bundles(nil))
	assert.Equal(t, "bundle manifest unavailable\n", buf.String())
}

func TestRenderer_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	rep := &query.Report{CacheInfo: domain.NewCacheInfo()}
	rep.AddNote("nothing here")

	var buf bytes.Buffer
	require.NoError(t, report.New(&buf).Stats(rep, report.Source{Dir: "d", Backend: domain.BackendFS}))
	assert.NotContains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "! nothing here")
}

func TestRenderer_Request(t *testing.T) {
	tracker := sampleTracker(t)
	find := func(id domain.NodeID) query.Request {
		for r := range tracker.Requests() {
			if r.ID == id {
				return r
			}
		}
		t.Fatalf("request %d not found", id)
		return query.Request{}
	}

	tests := []struct {
		name       string
		detail     report.RequestDetail
		goldenName string
	}{
		{
			name: "with subrequests and result",
			detail: report.RequestDetail{
				Request:     find(1),
				Subrequests: tracker.Subrequests(1),
				Result:      map[string]any{"hash": "current", "assets": []any{"a", "b"}},
			},
			goldenName: "request_result",
		},
		{
			name: "with invalidations",
			detail: report.RequestDetail{
				Request:       find(4),
				Invalidations: tracker.Invalidations(4),
			},
			goldenName: "request_invalidations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, report.NewPlain(&buf).Request(tt.detail))

			goldie.New(t).Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}
