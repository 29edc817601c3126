package query

import (
	"context"
	"sync"
	"time"

	"github.com/jdot274/parcel/internal/core/domain"
	"github.com/jdot274/parcel/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Report is the best-effort result of loading a cache. Every field except
// CacheInfo may be nil; callers must check each one before use.
type Report struct {
	Manifest       *domain.ManifestInfo
	RequestTracker *RequestTracker
	AssetGraph     *domain.AssetGraph
	BundleGraph    *domain.BundleGraph
	BundleManifest domain.BundleManifest
	CacheInfo      *domain.CacheInfo

	mu    sync.Mutex
	notes []string
}

// Notes returns the explanations recorded for the artifacts that could not be recovered.
func (r *Report) Notes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.notes))
	copy(out, r.notes)
	return out
}

// AddNote records why an artifact is missing from the report.
func (r *Report) AddNote(note string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, note)
}

// LoadOption configures a single Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	resultCacheSize int
}

// WithResultCacheSize bounds the number of decoded embedded results the
// report's RequestTracker keeps in memory.
func WithResultCacheSize(n int) LoadOption {
	return func(o *loadOptions) {
		o.resultCacheSize = n
	}
}

// Loader recovers the request graph and the most recent derived graphs from a blob store.
type Loader struct {
	codec  ports.GraphCodec
	logger ports.Logger
	tracer ports.Tracer
}

// NewLoader creates a new Loader with the given dependencies.
func NewLoader(codec ports.GraphCodec, logger ports.Logger, tracer ports.Tracer) *Loader {
	return &Loader{
		codec:  codec,
		logger: logger,
		tracer: tracer,
	}
}

// Load runs every recovery stage against store and assembles the report.
// It never fails: each stage that cannot complete leaves its field nil, logs
// why and moves on. Only a missing manifest stops the pipeline early, since
// nothing else can be found without a request graph.
func (l *Loader) Load(ctx context.Context, store ports.BlobStore, opts ...LoadOption) *Report {
	o := loadOptions{resultCacheSize: domain.DefaultResultCacheSize}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, span := l.tracer.Start(ctx, "Loading cache")
	defer span.End()

	report := &Report{CacheInfo: domain.NewCacheInfo()}

	manifest := l.readManifest(ctx, store)
	if manifest == nil || manifest.RequestGraphKey == "" {
		span.RecordError(domain.ErrManifestMissing)
		l.logger.Warn(domain.ErrManifestMissing.Error() + ", has this cache been built?")
		report.AddNote("no build has populated this cache; nothing to inspect")
		return report
	}
	report.Manifest = manifest

	graph := l.loadRequestGraph(ctx, store, manifest.RequestGraphKey, report.CacheInfo)
	if graph == nil {
		report.AddNote(domain.StructureRequestGraph + " could not be recovered; no further stage can run")
		return report
	}

	tracker, err := NewRequestTracker(graph, l.codec, o.resultCacheSize)
	if err != nil {
		l.logger.Error(err)
	} else {
		report.RequestTracker = tracker
	}

	var g errgroup.Group
	g.Go(func() error {
		report.BundleGraph = loadSnapshot(ctx, l, store, graph, report, domain.RequestTypeBundleGraph,
			domain.StructureBundleGraph, func(c *domain.SnapshotContainer) *domain.BundleGraph { return c.BundleGraph })
		return nil
	})
	g.Go(func() error {
		report.AssetGraph = loadSnapshot(ctx, l, store, graph, report, domain.RequestTypeAssetGraph,
			domain.StructureAssetGraph, func(c *domain.SnapshotContainer) *domain.AssetGraph { return c.AssetGraph })
		return nil
	})
	_ = g.Wait()

	report.BundleManifest = l.resolveBundleManifest(ctx, graph, report)

	return report
}

func (l *Loader) readManifest(ctx context.Context, store ports.BlobStore) *domain.ManifestInfo {
	_, span := l.tracer.Start(ctx, "Reading manifest")
	defer span.End()

	manifest, err := store.ManifestInfo(ctx)
	if err != nil {
		span.RecordError(err)
		l.logger.Error(zerr.With(err, "stage", "manifest"))
		return nil
	}
	return manifest
}

func (l *Loader) loadRequestGraph(
	ctx context.Context,
	store ports.BlobStore,
	key string,
	info *domain.CacheInfo,
) *domain.RequestGraph {
	ctx, span := l.tracer.Start(ctx, "Loading "+domain.StructureRequestGraph, ports.WithAttribute("key", key))
	defer span.End()

	l.logger.Info("Loading " + domain.StructureRequestGraph)

	data, err := store.GetLargeBlob(ctx, key)
	if err != nil {
		span.RecordError(err)
		l.logger.Error(zerr.With(zerr.With(err, "stage", domain.StructureRequestGraph), "key", key))
		return nil
	}

	start := time.Now()
	graph, err := l.codec.DecodeRequestGraph(data)
	if err != nil {
		span.RecordError(err)
		l.logger.Error(zerr.With(zerr.With(err, "stage", domain.StructureRequestGraph), "key", key))
		return nil
	}

	info.Record(domain.StructureRequestGraph, len(data), time.Since(start))
	span.SetAttribute("bytes", len(data))
	return graph
}

// loadSnapshot locates the newest snapshot of request type rt, fetches and
// decodes it, and picks the structure out of the container. Any failure
// yields the zero value of T.
func loadSnapshot[T comparable](
	ctx context.Context,
	l *Loader,
	store ports.BlobStore,
	graph *domain.RequestGraph,
	report *Report,
	rt domain.RequestType,
	structure string,
	pick func(*domain.SnapshotContainer) T,
) T {
	var zero T

	key, ok := Locate(graph, rt)
	if !ok {
		report.AddNote("no " + rt.String() + " with a cached result; " + structure + " is unavailable")
		return zero
	}

	ctx, span := l.tracer.Start(ctx, "Loading "+structure, ports.WithAttribute("key", key))
	defer span.End()

	l.logger.Info("Loading " + structure)

	fail := func(err error) T {
		span.RecordError(err)
		l.logger.Error(zerr.With(zerr.With(err, "stage", structure), "key", key))
		report.AddNote(structure + " could not be recovered")
		return zero
	}

	data, err := store.GetLargeBlob(ctx, key)
	if err != nil {
		return fail(err)
	}

	start := time.Now()
	container, err := l.codec.DecodeContainer(data)
	if err != nil {
		return fail(err)
	}
	elapsed := time.Since(start)

	value := pick(container)
	if value == zero {
		return fail(zerr.With(domain.ErrTopologyMismatch, "reason", "container has no "+structure))
	}

	report.CacheInfo.Record(structure, len(data), elapsed)
	span.SetAttribute("bytes", len(data))
	return value
}

func (l *Loader) resolveBundleManifest(ctx context.Context, graph *domain.RequestGraph, report *Report) domain.BundleManifest {
	_, span := l.tracer.Start(ctx, "Resolving bundle manifest")
	defer span.End()

	manifest, err := ResolveBundleManifest(graph, l.codec)
	if err != nil {
		span.RecordError(err)
		l.logger.Warn("bundle manifest unavailable: " + err.Error())
		report.AddNote("bundle manifest is unavailable")
		return nil
	}
	return manifest
}
