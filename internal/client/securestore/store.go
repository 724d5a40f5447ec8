package securestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/gophnotes/internal/cryptox"
	"github.com/dmitrijs2005/gophnotes/internal/filex"
)

const (
	DatabaseFileName = "gophnotes.db"
	KeyFileName      = "device.key"
)

// ErrBadKeyFile is returned when the device key file has the wrong size.
var ErrBadKeyFile = errors.New("device key file is corrupted")

// Store is an encrypted key/value store. It is safe for concurrent use as
// far as the underlying *sql.DB is.
type Store struct {
	db   *sql.DB
	meta *metadataTable
	key  []byte
}

// Open prepares dir, opens (or creates) the database and the device key in it.
func Open(ctx context.Context, dir string) (*Store, error) {
	dir, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}

	key, err := loadOrCreateKey(filepath.Join(dir, KeyFileName))
	if err != nil {
		return nil, err
	}

	db, err := InitDatabase(ctx, filepath.Join(dir, DatabaseFileName))
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	return New(db, key), nil
}

// New wraps an already migrated database.
func New(db *sql.DB, key []byte) *Store {
	return &Store{db: db, meta: &metadataTable{db: db}, key: key}
}

// Get returns the decrypted value under key, or nil when there is none.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	sealed, err := s.meta.get(ctx, key)
	if err != nil || sealed == nil {
		return nil, err
	}

	value, err := cryptox.Open(sealed, s.key)
	if err != nil {
		return nil, fmt.Errorf("decrypt %s: %w", key, err)
	}
	return value, nil
}

// Set encrypts value and stores it under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	sealed, err := cryptox.Seal(value, s.key)
	if err != nil {
		return fmt.Errorf("encrypt %s: %w", key, err)
	}
	return s.meta.set(ctx, key, sealed)
}

// Remove deletes key. Removing a missing key is not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	return s.meta.delete(ctx, key)
}

// Clear deletes every stored value.
func (s *Store) Clear(ctx context.Context) error {
	return s.meta.clear(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func loadOrCreateKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != cryptox.KeySize {
			return nil, ErrBadKeyFile
		}
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read device key: %w", err)
	}

	key = cryptox.NewKey()
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, fmt.Errorf("write device key: %w", err)
	}
	return key, nil
}
