// Package app implements the application layer for parcel-query.
package app

import (
	"context"
	"io"
	"os"

	"github.com/jdot274/parcel/internal/adapters/report"    //nolint:depguard // Wired in app layer
	"github.com/jdot274/parcel/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"github.com/jdot274/parcel/internal/core/domain"
	"github.com/jdot274/parcel/internal/core/ports"
	"github.com/jdot274/parcel/internal/engine/query"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	opener       ports.BlobStoreOpener
	loader       *query.Loader
	logger       ports.Logger
	getwd        func() (string, error)
}

// New creates a new App instance.
func New(
	configLoader ports.ConfigLoader,
	opener ports.BlobStoreOpener,
	loader *query.Loader,
	log ports.Logger,
) *App {
	return &App{
		configLoader: configLoader,
		opener:       opener,
		loader:       loader,
		logger:       log,
		getwd:        os.Getwd,
	}
}

// WithWorkingDir makes the App search for its config file from dir instead
// of the process working directory.
func (a *App) WithWorkingDir(dir string) *App {
	a.getwd = func() (string, error) { return dir, nil }
	return a
}

// Options are the per-invocation settings. Non-zero fields override the
// config file.
type Options struct {
	ConfigPath      string
	CacheDir        string
	Backend         string
	JSONLogs        bool
	Trace           bool
	ResultCacheSize int
}

// Stats loads the cache at the configured directory and writes an overview to w.
func (a *App) Stats(ctx context.Context, w io.Writer, opts Options) error {
	return a.inspect(ctx, opts, func(rep *query.Report, src report.Source) error {
		return report.New(w).Stats(rep, src)
	})
}

// Requests writes the request nodes of the cache to w, optionally filtered by
// request type name.
func (a *App) Requests(ctx context.Context, w io.Writer, opts Options, typeNames []string) error {
	filter := make(map[domain.RequestType]bool, len(typeNames))
	for _, name := range typeNames {
		rt, err := domain.ParseRequestType(name)
		if err != nil {
			return err
		}
		filter[rt] = true
	}

	return a.inspect(ctx, opts, func(rep *query.Report, _ report.Source) error {
		a.warnNotes(rep)

		var requests []query.Request
		if rep.RequestTracker != nil {
			for r := range rep.RequestTracker.Requests() {
				if len(filter) == 0 || filter[r.Node.RequestType] {
					requests = append(requests, r)
				}
			}
		}
		return report.New(w).Requests(requests)
	})
}

// Request writes the request with the given content key, its subrequests,
// invalidations and decoded embedded result to w.
func (a *App) Request(ctx context.Context, w io.Writer, opts Options, contentKey string) error {
	return a.inspect(ctx, opts, func(rep *query.Report, _ report.Source) error {
		if rep.RequestTracker == nil {
			a.warnNotes(rep)
			return zerr.With(domain.ErrNodeNotFound, "content_key", contentKey)
		}

		tracker := rep.RequestTracker
		id, node, err := tracker.Graph().NodeByContentKey(contentKey)
		if err != nil {
			return err
		}
		req, ok := domain.AsRequest(node)
		if !ok {
			return zerr.With(zerr.With(domain.ErrTopologyMismatch, "content_key", contentKey), "reason", "not a request")
		}

		result, err := tracker.Result(id)
		if err != nil {
			a.logger.Error(err)
		}

		return report.New(w).Request(report.RequestDetail{
			Request:       query.Request{ID: id, Node: req},
			Subrequests:   tracker.Subrequests(id),
			Invalidations: tracker.Invalidations(id),
			Result:        result,
		})
	})
}

// Bundles writes the bundle manifest of the last build to w.
func (a *App) Bundles(ctx context.Context, w io.Writer, opts Options) error {
	return a.inspect(ctx, opts, func(rep *query.Report, _ report.Source) error {
		a.warnNotes(rep)
		return report.New(w).Bundles(rep.BundleManifest)
	})
}

func (a *App) warnNotes(rep *query.Report) {
	for _, note := range rep.Notes() {
		a.logger.Warn(note)
	}
}

// jsonSwitcher is implemented by loggers that can switch to JSON output.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

// backendNamer is implemented by stores that know which backend they opened.
type backendNamer interface {
	Backend() string
}

// inspect resolves the configuration, opens the store, runs the loader and
// hands the report to render. The store is closed before inspect returns.
func (a *App) inspect(ctx context.Context, opts Options, render func(*query.Report, report.Source) error) error {
	cfg, err := a.resolveConfig(opts)
	if err != nil {
		return err
	}

	if cfg.LogFormat == domain.LogFormatJSON {
		if s, ok := a.logger.(jsonSwitcher); ok {
			s.SetJSON(true)
		}
	}

	if cfg.Trace {
		shutdown := telemetry.Install(a.logger)
		defer func() {
			if err := shutdown(context.WithoutCancel(ctx)); err != nil {
				a.logger.Error(zerr.Wrap(err, "failed to flush traces"))
			}
		}()
	}

	store, err := a.opener.Open(ctx, cfg.CacheDir, cfg.Backend)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			a.logger.Error(zerr.Wrap(err, "failed to close blob store"))
		}
	}()

	src := report.Source{Dir: cfg.CacheDir, Backend: cfg.Backend}
	if n, ok := store.(backendNamer); ok {
		src.Backend = n.Backend()
	}

	rep := a.loader.Load(ctx, store, query.WithResultCacheSize(cfg.ResultCacheSize))
	return render(rep, src)
}

func (a *App) resolveConfig(opts Options) (domain.Config, error) {
	cwd, err := a.getwd()
	if err != nil {
		return domain.Config{}, zerr.Wrap(err, "failed to get working directory")
	}

	cfg, err := a.configLoader.Load(cwd, opts.ConfigPath)
	if err != nil {
		return domain.Config{}, zerr.Wrap(err, "failed to load configuration")
	}

	if opts.CacheDir != "" {
		cfg.CacheDir = opts.CacheDir
	}
	if opts.Backend != "" {
		cfg.Backend = opts.Backend
	}
	if opts.JSONLogs {
		cfg.LogFormat = domain.LogFormatJSON
	}
	if opts.Trace {
		cfg.Trace = true
	}
	if opts.ResultCacheSize > 0 {
		cfg.ResultCacheSize = opts.ResultCacheSize
	}
	return cfg, nil
}
