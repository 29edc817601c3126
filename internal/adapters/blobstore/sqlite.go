package blobstore

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"path/filepath"

	"go.trai.ch/zerr"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Schema is the table layout of the sqlite backend.
const Schema = `CREATE TABLE IF NOT EXISTS blobs (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
)`

type sqliteKV struct {
	db *sql.DB
}

func openSQLite(ctx context.Context, path string) (*sqliteKV, error) {
	// A file URI with a relative path is rejected by the driver.
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve sqlite database path")
	}
	dsn := (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: "mode=ro"}).String()
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open sqlite database")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, zerr.Wrap(err, "failed to open sqlite database")
	}
	return &sqliteKV{db: db}, nil
}

func (s *sqliteKV) get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, readFailed(err, key)
	}
	return value, true, nil
}

func (s *sqliteKV) close() error {
	return s.db.Close()
}
