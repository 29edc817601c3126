package app_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/jdot274/parcel/internal/adapters/blobstore"
	"github.com/jdot274/parcel/internal/adapters/codec"
	"github.com/jdot274/parcel/internal/adapters/telemetry"
	"github.com/jdot274/parcel/internal/app"
	"github.com/jdot274/parcel/internal/core/domain"
	"github.com/jdot274/parcel/internal/core/ports/mocks"
	"github.com/jdot274/parcel/internal/engine/query"
	"github.com/jdot274/parcel/internal/testutil/cachefixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type harness struct {
	app    *app.App
	loader *mocks.MockConfigLoader
	logger *mocks.MockLogger
	sample *cachefixture.Sample
	dir    string
}

func newHarness(t *testing.T, backend string) *harness {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	ctrl := gomock.NewController(t)

	dir := t.TempDir()
	sample, err := cachefixture.WriteSample(context.Background(), dir, backend)
	require.NoError(t, err)

	graphCodec, err := codec.New()
	require.NoError(t, err)

	log := mocks.NewMockLogger(ctrl)
	cfgLoader := mocks.NewMockConfigLoader(ctrl)

	loader := query.NewLoader(graphCodec, log, telemetry.NewNoOpTracer())
	a := app.New(cfgLoader, blobstore.NewOpener(), loader, log).WithWorkingDir(dir)

	return &harness{app: a, loader: cfgLoader, logger: log, sample: sample, dir: dir}
}

func (h *harness) defaults() {
	cfg := domain.DefaultConfig()
	h.loader.EXPECT().Load(h.dir, "").Return(cfg, nil)
}

func (h *harness) allowInfo() {
	h.logger.EXPECT().Info(gomock.Any()).AnyTimes()
}

func TestApp_Stats(t *testing.T) {
	h := newHarness(t, domain.BackendSQLite)
	h.defaults()
	h.allowInfo()

	var out bytes.Buffer
	err := h.app.Stats(context.Background(), &out, app.Options{CacheDir: h.dir})
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "backend    sqlite")
	assert.Contains(t, s, h.sample.RequestGraphKey)
	assert.Contains(t, s, "hash          current")
	assert.Contains(t, s, "bundles     2")
	assert.NotContains(t, s, "unavailable")
	assert.NotContains(t, s, "Notes")
}

func TestApp_ConfigOverrides(t *testing.T) {
	h := newHarness(t, domain.BackendBadger)
	h.allowInfo()

	cfg := domain.DefaultConfig()
	cfg.CacheDir = filepath.Join(h.dir, "elsewhere")
	cfg.Backend = domain.BackendFS
	h.loader.EXPECT().Load(h.dir, "custom.yaml").Return(cfg, nil)

	var out bytes.Buffer
	err := h.app.Stats(context.Background(), &out, app.Options{
		ConfigPath: "custom.yaml",
		CacheDir:   h.dir,
		Backend:    domain.BackendBadger,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "backend    badger")
}

func TestApp_Requests(t *testing.T) {
	t.Run("all", func(t *testing.T) {
		h := newHarness(t, domain.BackendFS)
		h.defaults()
		h.allowInfo()

		var out bytes.Buffer
		require.NoError(t, h.app.Requests(context.Background(), &out, app.Options{CacheDir: h.dir}, nil))

		s := out.String()
		assert.Contains(t, s, "parcel_build_request")
		assert.Contains(t, s, "path_request:src/index.js")
		assert.Contains(t, s, h.sample.StaleAssetGraphKey)
	})

	t.Run("filtered", func(t *testing.T) {
		h := newHarness(t, domain.BackendFS)
		h.defaults()
		h.allowInfo()

		var out bytes.Buffer
		err := h.app.Requests(context.Background(), &out, app.Options{CacheDir: h.dir}, []string{"asset_graph_request"})
		require.NoError(t, err)

		s := out.String()
		assert.Contains(t, s, h.sample.AssetGraphKey)
		assert.NotContains(t, s, "bundle_graph_request")
	})

	t.Run("unknown type", func(t *testing.T) {
		h := newHarness(t, domain.BackendFS)

		err := h.app.Requests(context.Background(), &bytes.Buffer{}, app.Options{CacheDir: h.dir}, []string{"nope"})
		require.ErrorContains(t, err, domain.ErrUnknownRequestType.Error())
	})
}

func TestApp_Request(t *testing.T) {
	t.Run("embedded result", func(t *testing.T) {
		h := newHarness(t, domain.BackendFS)
		h.defaults()
		h.allowInfo()

		var out bytes.Buffer
		err := h.app.Request(context.Background(), &out, app.Options{CacheDir: h.dir}, "write_bundles_request")
		require.NoError(t, err)

		s := out.String()
		assert.Contains(t, s, "write_bundles_request")
		assert.Contains(t, s, "Embedded result")
		assert.Contains(t, s, "dist/index.js")
	})

	t.Run("subrequests and invalidations", func(t *testing.T) {
		h := newHarness(t, domain.BackendFS)
		h.defaults()
		h.allowInfo()

		var out bytes.Buffer
		err := h.app.Request(context.Background(), &out, app.Options{CacheDir: h.dir}, "asset_graph_request:2")
		require.NoError(t, err)

		s := out.String()
		assert.Contains(t, s, "Subrequests")
		assert.Contains(t, s, "path_request:src/index.js")
		assert.Contains(t, s, "invalidated_by_update")
		assert.Contains(t, s, "env:NODE_ENV")
	})

	t.Run("unknown content key", func(t *testing.T) {
		h := newHarness(t, domain.BackendFS)
		h.defaults()
		h.allowInfo()

		err := h.app.Request(context.Background(), &bytes.Buffer{}, app.Options{CacheDir: h.dir}, "nope")
		require.ErrorContains(t, err, domain.ErrNodeNotFound.Error())
	})

	t.Run("not a request", func(t *testing.T) {
		h := newHarness(t, domain.BackendFS)
		h.defaults()
		h.allowInfo()

		err := h.app.Request(context.Background(), &bytes.Buffer{}, app.Options{CacheDir: h.dir}, "src/index.js")
		require.ErrorContains(t, err, domain.ErrTopologyMismatch.Error())
	})
}

func TestApp_Bundles(t *testing.T) {
	h := newHarness(t, domain.BackendBadger)
	h.defaults()
	h.allowInfo()

	var out bytes.Buffer
	require.NoError(t, h.app.Bundles(context.Background(), &out, app.Options{CacheDir: h.dir}))

	s := out.String()
	assert.Contains(t, s, "bundle:index.js")
	assert.Contains(t, s, "dist/index.css")
}

func TestApp_EmptyCache(t *testing.T) {
	h := newHarness(t, domain.BackendFS)
	h.defaults()
	h.logger.EXPECT().Warn(gomock.Any()).MinTimes(1)

	empty := t.TempDir()
	var out bytes.Buffer
	require.NoError(t, h.app.Bundles(context.Background(), &out, app.Options{CacheDir: empty}))
	assert.Equal(t, "bundle manifest unavailable\n", out.String())
}

func TestApp_Errors(t *testing.T) {
	t.Run("config fails", func(t *testing.T) {
		h := newHarness(t, domain.BackendFS)
		h.loader.EXPECT().Load(h.dir, "").Return(domain.Config{}, errors.New("bad yaml"))

		err := h.app.Stats(context.Background(), &bytes.Buffer{}, app.Options{})
		require.ErrorContains(t, err, "failed to load configuration")
	})

	t.Run("store cannot be opened", func(t *testing.T) {
		h := newHarness(t, domain.BackendFS)
		h.defaults()

		err := h.app.Stats(context.Background(), &bytes.Buffer{}, app.Options{CacheDir: filepath.Join(h.dir, "missing")})
		require.ErrorContains(t, err, domain.ErrStoreOpen.Error())
	})
}

//nolint:paralleltest // installs a global tracer provider
func TestApp_Trace(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	ctrl := gomock.NewController(t)

	dir := t.TempDir()
	_, err := cachefixture.WriteSample(context.Background(), dir, domain.BackendFS)
	require.NoError(t, err)

	graphCodec, err := codec.New()
	require.NoError(t, err)

	log := mocks.NewMockLogger(ctrl)
	var infos []string
	log.EXPECT().Info(gomock.Any()).Do(func(msg string) { infos = append(infos, msg) }).AnyTimes()

	cfgLoader := mocks.NewMockConfigLoader(ctrl)
	cfgLoader.EXPECT().Load(dir, "").Return(domain.DefaultConfig(), nil)

	loader := query.NewLoader(graphCodec, log, telemetry.NewOTelTracer(telemetry.InstrumentationName))
	a := app.New(cfgLoader, blobstore.NewOpener(), loader, log).WithWorkingDir(dir)

	require.NoError(t, a.Stats(context.Background(), &bytes.Buffer{}, app.Options{CacheDir: dir, Trace: true}))
	assert.Contains(t, infos, "Loading RequestGraph")

	finished := slices.ContainsFunc(infos, func(msg string) bool {
		return strings.HasPrefix(msg, "Loading cache finished in ")
	})
	assert.True(t, finished, "expected the root span to be reported, got %v", infos)
}
