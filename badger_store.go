package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// BadgerStore keeps collection blobs in an embedded BadgerDB, the default
// single-user setup: everything stays on the local disk.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a Badger database at path.
func NewBadgerStore(path string, logger *zap.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(badgerLogger{logger.Sugar()})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", path, err)
	}
	return &BadgerStore{db: db}, nil
}

// newInMemoryBadgerStore backs the store with RAM only. Used in tests.
func newInMemoryBadgerStore(logger *zap.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(badgerLogger{logger.Sugar()})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Load retrieves the blob for a kind. A missing key is not an error.
func (s *BadgerStore) Load(ctx context.Context, kind string) ([]byte, error) {
	var blob []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(storageKey(kind)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		blob, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("badger get %s: %w", kind, err)
	}
	return blob, nil
}

// Save overwrites the blob for a kind.
func (s *BadgerStore) Save(ctx context.Context, kind string, blob []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(storageKey(kind)), blob)
	})
	if err != nil {
		return fmt.Errorf("badger set %s: %w", kind, err)
	}
	return nil
}

// Close releases the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// badgerLogger adapts zap to Badger's logger interface. Badger's own
// chatter goes out at debug so it never drowns application logs.
type badgerLogger struct {
	s *zap.SugaredLogger
}

func (l badgerLogger) Errorf(format string, args ...interface{})   { l.s.Errorf(format, args...) }
func (l badgerLogger) Warningf(format string, args ...interface{}) { l.s.Warnf(format, args...) }
func (l badgerLogger) Infof(format string, args ...interface{})    { l.s.Debugf(format, args...) }
func (l badgerLogger) Debugf(format string, args ...interface{})   { l.s.Debugf(format, args...) }
