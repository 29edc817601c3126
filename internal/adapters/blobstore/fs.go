package blobstore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/jdot274/parcel/internal/core/domain"
)

// BlobPath returns where the fs backend keeps the small blob stored under key.
// Blobs are fanned out over 256 directories by the low byte of the key's xxhash.
func BlobPath(dir, key string) string {
	prefix := strconv.FormatUint(xxhash.Sum64String(key)&0xff|0x100, 16)[1:]
	return filepath.Join(domain.BlobsPath(dir), prefix, key)
}

type fileKV struct {
	dir string
}

func newFileKV(dir string) *fileKV {
	return &fileKV{dir: dir}
}

func (f *fileKV) get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, readFailed(err, key)
	}

	//nolint:gosec // key is validated to stay inside dir
	data, err := os.ReadFile(BlobPath(f.dir, key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, readFailed(err, key)
	}
	return data, true, nil
}

func (f *fileKV) close() error {
	return nil
}
