package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/timshannon/badgerhold/v4"

	"github.com/tlsguqwn-ship-it/rising-report/internal/common"
)

// record is the single badgerhold type behind the key-value surface. All
// application data lives here as JSON strings under namespaced keys
// ("report:*", "share:*"), so one schema covers documents, recent-save
// lists, and published snapshots alike.
type record struct {
	Key   string `badgerhold:"key"`
	Value string
}

// KVStorage implements interfaces.KeyValueStorage on BadgerDB.
type KVStorage struct {
	db     *BadgerDB
	logger *common.Logger
}

func NewKVStorage(db *BadgerDB, logger *common.Logger) *KVStorage {
	return &KVStorage{
		db:     db,
		logger: logger,
	}
}

// Get retrieves the value stored under key. A missing key is an error so
// callers can distinguish "never saved" from an empty value.
func (s *KVStorage) Get(_ context.Context, key string) (string, error) {
	var rec record
	if err := s.db.Store().Get(key, &rec); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return "", fmt.Errorf("key not found: %s", key)
		}
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return rec.Value, nil
}

// Set writes value under key, replacing any prior value.
func (s *KVStorage) Set(_ context.Context, key, value string) error {
	rec := record{Key: key, Value: value}
	if err := s.db.Store().Upsert(key, &rec); err != nil {
		s.logger.Warn().Str("key", key).Err(err).Msg("KV write failed")
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *KVStorage) Delete(_ context.Context, key string) error {
	if err := s.db.Store().Delete(key, record{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// GetAll returns every stored pair. Used for diagnostics and data export,
// not on any request path.
func (s *KVStorage) GetAll(_ context.Context) (map[string]string, error) {
	var recs []record
	if err := s.db.Store().Find(&recs, nil); err != nil {
		return nil, fmt.Errorf("failed to get all keys: %w", err)
	}

	out := make(map[string]string, len(recs))
	for _, rec := range recs {
		out[rec.Key] = rec.Value
	}
	return out, nil
}
