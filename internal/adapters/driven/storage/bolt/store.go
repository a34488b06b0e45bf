// Package bolt provides a bbolt-backed implementation of the driven storage
// ports. It is a single-file alternative to the SQLite store for hosts
// where a pure key/value file is preferred.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/custodia-labs/pdfshelf/internal/core/domain"
	"github.com/custodia-labs/pdfshelf/internal/core/ports/driven"
)

// settingsBucket holds all persisted settings.
const settingsBucket = "settings"

// Store wraps a bbolt database.
type Store struct {
	db   *bbolt.DB
	path string
}

// NewStore opens (or creates) pdfshelf.bolt in dataDir.
// The open times out if another process holds the file lock.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	path := filepath.Join(dataDir, "pdfshelf.bolt")

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(settingsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SelectionStore returns a SelectionStore backed by this store.
func (s *Store) SelectionStore() driven.SelectionStore {
	return &selectionStore{store: s, key: driven.SelectionKey}
}

// selectionValue is the JSON document stored under the selection key.
type selectionValue struct {
	Locator   string    `json:"locator"`
	UpdatedAt time.Time `json:"updated_at"`
}

type selectionStore struct {
	store *Store
	key   string
}

var _ driven.SelectionStore = (*selectionStore)(nil)

func (s *selectionStore) Get(_ context.Context) (domain.Locator, bool, error) {
	var value selectionValue
	var found bool
	err := s.store.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket([]byte(settingsBucket)).Get([]byte(s.key))
		if raw == nil {
			return nil
		}
		found = true
		return json.Unmarshal(raw, &value)
	})
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", s.key, err)
	}
	if !found {
		return "", false, nil
	}
	return domain.Locator(value.Locator), true, nil
}

func (s *selectionStore) Set(_ context.Context, loc domain.Locator) error {
	raw, err := json.Marshal(selectionValue{Locator: loc.String(), UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encoding %s: %w", s.key, err)
	}
	return s.store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(settingsBucket)).Put([]byte(s.key), raw)
	})
}

func (s *selectionStore) Clear(_ context.Context) error {
	return s.store.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(settingsBucket)).Delete([]byte(s.key))
	})
}
