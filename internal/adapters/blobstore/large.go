package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

// ChunkPath returns the path of chunk n of a large blob.
func ChunkPath(dir, key string, n int) string {
	return filepath.Join(dir, key+"-"+strconv.Itoa(n))
}

// readChunks concatenates <key>-0, <key>-1, ... until the first missing chunk.
// A single un-chunked <key> file is accepted when chunk 0 does not exist.
func readChunks(ctx context.Context, dir, key string) ([]byte, error) {
	var buf bytes.Buffer
	for n := 0; ; n++ {
		if err := ctx.Err(); err != nil {
			return nil, readFailed(err, key)
		}

		//nolint:gosec // key is validated to stay inside dir
		chunk, err := os.ReadFile(ChunkPath(dir, key, n))
		if errors.Is(err, fs.ErrNotExist) {
			if n > 0 {
				return buf.Bytes(), nil
			}
			return readWhole(dir, key)
		}
		if err != nil {
			return nil, readFailed(err, key)
		}
		buf.Write(chunk)
	}
}

func readWhole(dir, key string) ([]byte, error) {
	//nolint:gosec // key is validated to stay inside dir
	data, err := os.ReadFile(filepath.Join(dir, key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound(key)
	}
	if err != nil {
		return nil, readFailed(err, key)
	}
	return data, nil
}
