// Package config loads the optional parcel-query.yaml settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/jdot274/parcel/internal/core/domain"
	"github.com/jdot274/parcel/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	fs     FileSystem
}

// NewLoader creates a Loader that reads from the real filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return NewLoaderWithFS(logger, NewOSFS())
}

// NewLoaderWithFS creates a Loader that reads through fsys.
func NewLoaderWithFS(logger ports.Logger, fsys FileSystem) *Loader {
	return &Loader{Logger: logger, fs: fsys}
}

// Load reads explicitPath, or the nearest parcel-query.yaml at or above cwd,
// and applies it over domain.DefaultConfig. No file means defaults.
func (l *Loader) Load(cwd, explicitPath string) (domain.Config, error) {
	path := explicitPath
	if path == "" {
		path = l.find(cwd)
		if path == "" {
			return domain.DefaultConfig(), nil
		}
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}

	file, err := l.read(path)
	if err != nil {
		return domain.Config{}, zerr.With(err, "path", path)
	}

	cfg, err := l.apply(domain.DefaultConfig(), file, filepath.Dir(path))
	if err != nil {
		return domain.Config{}, zerr.With(err, "path", path)
	}
	return cfg, nil
}

// find walks up from cwd and returns the first config file it sees.
func (l *Loader) find(cwd string) string {
	dir := cwd
	for {
		candidate := filepath.Join(dir, domain.ConfigFileName)
		if info, err := l.fs.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func (l *Loader) read(path string) (*File, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return &file, nil
}

func (l *Loader) apply(cfg domain.Config, file *File, base string) (domain.Config, error) {
	if file.Version != "" && file.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("%s declares version %q, reading it as version %s",
			domain.ConfigFileName, file.Version, SupportedVersion))
	}

	if file.CacheDir != "" {
		cfg.CacheDir = file.CacheDir
		if !filepath.IsAbs(cfg.CacheDir) {
			cfg.CacheDir = filepath.Join(base, cfg.CacheDir)
		}
	}

	if file.Backend != "" {
		if !slices.Contains(Backends(), file.Backend) {
			return cfg, zerr.With(domain.ErrUnknownBackend, "backend", file.Backend)
		}
		cfg.Backend = file.Backend
	}

	if file.LogFormat != "" {
		if file.LogFormat != domain.LogFormatPretty && file.LogFormat != domain.LogFormatJSON {
			return cfg, zerr.With(domain.ErrInvalidLogFormat, "log_format", file.LogFormat)
		}
		cfg.LogFormat = file.LogFormat
	}

	if file.Trace != nil {
		cfg.Trace = *file.Trace
	}

	if file.ResultCacheSize != nil {
		if *file.ResultCacheSize > 0 {
			cfg.ResultCacheSize = *file.ResultCacheSize
		} else {
			l.Logger.Warn(fmt.Sprintf("resultCacheSize must be positive, using %d", cfg.ResultCacheSize))
		}
	}

	return cfg, nil
}

// Backends lists the accepted backend names.
func Backends() []string {
	return []string{domain.BackendAuto, domain.BackendFS, domain.BackendBadger, domain.BackendSQLite}
}
