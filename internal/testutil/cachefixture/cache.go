// Package cachefixture writes build cache directories for tests.
package cachefixture

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/jdot274/parcel/internal/adapters/blobstore"
	"github.com/jdot274/parcel/internal/core/domain"
	"go.trai.ch/zerr"
	"lukechampine.com/blake3"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// DefaultChunkSize is the chunk size used for large blobs unless overridden.
const DefaultChunkSize = 4096

// Cache accumulates blobs in memory and writes them out in one go.
type Cache struct {
	// Dir is the cache directory to write.
	Dir string
	// Backend is the small-blob backend: fs, badger or sqlite.
	Backend string
	// ChunkSize splits large blobs into <key>-<n> files. Zero or less writes
	// a single un-chunked <key> file.
	ChunkSize int

	blobs map[string][]byte
	large map[string][]byte
}

// New creates an empty Cache for dir.
func New(dir, backend string) *Cache {
	return &Cache{
		Dir:       dir,
		Backend:   backend,
		ChunkSize: DefaultChunkSize,
		blobs:     make(map[string][]byte),
		large:     make(map[string][]byte),
	}
}

// ContentKey returns the content-addressed key of data.
func ContentKey(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:16])
}

// PutBlob stages a small blob.
func (c *Cache) PutBlob(key string, data []byte) {
	c.blobs[key] = data
}

// PutLargeBlob stages a large blob.
func (c *Cache) PutLargeBlob(key string, data []byte) {
	c.large[key] = data
}

// AddLargeBlob stages data as a large blob under its content key and returns the key.
func (c *Cache) AddLargeBlob(data []byte) string {
	key := ContentKey(data)
	c.PutLargeBlob(key, data)
	return key
}

// PutManifest stages the request tracker manifest.
func (c *Cache) PutManifest(info domain.ManifestInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return zerr.Wrap(err, "failed to encode manifest")
	}
	c.PutBlob(domain.ManifestKey, data)
	return nil
}

// Write writes every staged blob to disk.
func (c *Cache) Write(ctx context.Context) error {
	if err := os.MkdirAll(c.Dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create cache directory")
	}

	for _, key := range slices.Sorted(maps.Keys(c.large)) {
		if err := c.writeLarge(key, c.large[key]); err != nil {
			return err
		}
	}

	switch c.Backend {
	case domain.BackendFS:
		return c.writeFS()
	case domain.BackendBadger:
		return c.writeBadger()
	case domain.BackendSQLite:
		return c.writeSQLite(ctx)
	default:
		return zerr.With(domain.ErrUnknownBackend, "backend", c.Backend)
	}
}

func (c *Cache) writeLarge(key string, data []byte) error {
	if c.ChunkSize <= 0 {
		return writeFile(filepath.Join(c.Dir, key), data)
	}

	n := 0
	for chunk := range slices.Chunk(data, c.ChunkSize) {
		if err := writeFile(blobstore.ChunkPath(c.Dir, key, n), chunk); err != nil {
			return err
		}
		n++
	}
	if n == 0 {
		return writeFile(blobstore.ChunkPath(c.Dir, key, 0), nil)
	}
	return nil
}

func (c *Cache) writeFS() error {
	for _, key := range slices.Sorted(maps.Keys(c.blobs)) {
		if err := writeFile(blobstore.BlobPath(c.Dir, key), c.blobs[key]); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cache) writeBadger() error {
	db, err := badger.Open(badger.DefaultOptions(domain.KVPath(c.Dir)).WithLogger(nil))
	if err != nil {
		return zerr.Wrap(err, "failed to open badger database")
	}

	err = db.Update(func(txn *badger.Txn) error {
		for _, key := range slices.Sorted(maps.Keys(c.blobs)) {
			if err := txn.Set([]byte(key), c.blobs[key]); err != nil {
				return err
			}
		}
		return nil
	})
	if closeErr := db.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return zerr.Wrap(err, "failed to write badger database")
	}
	return nil
}

func (c *Cache) writeSQLite(ctx context.Context) (err error) {
	db, err := sql.Open("sqlite", domain.SQLitePath(c.Dir))
	if err != nil {
		return zerr.Wrap(err, "failed to open sqlite database")
	}
	defer func() {
		if closeErr := db.Close(); err == nil && closeErr != nil {
			err = zerr.Wrap(closeErr, "failed to close sqlite database")
		}
	}()

	if _, err := db.ExecContext(ctx, blobstore.Schema); err != nil {
		return zerr.Wrap(err, "failed to create sqlite schema")
	}
	for _, key := range slices.Sorted(maps.Keys(c.blobs)) {
		if _, err := db.ExecContext(ctx,
			`INSERT OR REPLACE INTO blobs (key, value) VALUES (?, ?)`, key, c.blobs[key]); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to write sqlite blob"), "key", key)
		}
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create blob directory")
	}
	if err := os.WriteFile(path, data, domain.PrivateFilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write blob"), "path", path)
	}
	return nil
}
