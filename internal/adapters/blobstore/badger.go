package blobstore

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"go.trai.ch/zerr"
)

type badgerKV struct {
	db *badger.DB
}

func openBadger(path string) (*badgerKV, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open badger database")
	}
	return &badgerKV{db: db}, nil
}

func (b *badgerKV) get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, readFailed(err, key)
	}

	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, readFailed(err, key)
	}
	return value, true, nil
}

func (b *badgerKV) close() error {
	return b.db.Close()
}
