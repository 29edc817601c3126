// Package blobstore reads the blob store of a build cache directory.
package blobstore

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/jdot274/parcel/internal/core/domain"
	"go.trai.ch/zerr"
)

// kv is a small-blob backend.
type kv interface {
	// get returns the value stored under key. ok is false when there is none.
	get(ctx context.Context, key string) (value []byte, ok bool, err error)
	close() error
}

// Store implements ports.BlobStore over a cache directory.
// Small blobs and the manifest live in a kv backend; large blobs are chunk
// files in the cache directory itself.
type Store struct {
	dir     string
	backend string
	kv      kv
}

// Open opens the cache directory read-only with the given backend.
// BackendAuto picks badger if a kv directory exists, then sqlite if a
// database file exists, and falls back to plain files.
func Open(ctx context.Context, dir, backend string) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreOpen.Error()), "dir", dir)
	}
	if !info.IsDir() {
		return nil, zerr.With(domain.ErrStoreOpen, "dir", dir)
	}

	if backend == "" || backend == domain.BackendAuto {
		backend = Detect(dir)
	}

	var store kv
	switch backend {
	case domain.BackendFS:
		store = newFileKV(dir)
	case domain.BackendBadger:
		store, err = openBadger(domain.KVPath(dir))
	case domain.BackendSQLite:
		store, err = openSQLite(ctx, domain.SQLitePath(dir))
	default:
		return nil, zerr.With(domain.ErrUnknownBackend, "backend", backend)
	}
	if err != nil {
		return nil, zerr.With(zerr.With(zerr.Wrap(err, domain.ErrStoreOpen.Error()), "dir", dir), "backend", backend)
	}

	return &Store{dir: dir, backend: backend, kv: store}, nil
}

// Detect returns the backend that Open would choose for dir under BackendAuto.
func Detect(dir string) string {
	if info, err := os.Stat(domain.KVPath(dir)); err == nil && info.IsDir() {
		return domain.BackendBadger
	}
	if info, err := os.Stat(domain.SQLitePath(dir)); err == nil && info.Mode().IsRegular() {
		return domain.BackendSQLite
	}
	return domain.BackendFS
}

// Backend returns the name of the backend in use.
func (s *Store) Backend() string {
	return s.backend
}

// Dir returns the cache directory.
func (s *Store) Dir() string {
	return s.dir
}

// ManifestInfo reads the request tracker manifest. It returns nil, nil when
// no build has written one.
func (s *Store) ManifestInfo(ctx context.Context) (*domain.ManifestInfo, error) {
	data, ok, err := s.kv.get(ctx, domain.ManifestKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var info domain.ManifestInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDecode.Error()), "key", domain.ManifestKey)
	}
	return &info, nil
}

// GetBlob reads a small blob.
func (s *Store) GetBlob(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	data, ok, err := s.kv.get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound(key)
	}
	return data, nil
}

// GetLargeBlob reads a blob written as one or more chunk files.
func (s *Store) GetLargeBlob(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	return readChunks(ctx, s.dir, key)
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.kv.close()
}

// validateKey rejects keys that would escape the cache directory.
func validateKey(key string) error {
	if key == "" || key == "." || key == ".." ||
		strings.ContainsAny(key, "/\\\x00") {
		return zerr.With(domain.ErrInvalidKey, "key", key)
	}
	return nil
}

func notFound(key string) error {
	return zerr.With(domain.ErrBlobNotFound, "key", key)
}

func readFailed(err error, key string) error {
	return zerr.With(zerr.Wrap(err, domain.ErrBlobRead.Error()), "key", key)
}
