package interfaces

import "context"

// StorageManager owns the lifetime of the persistence backend. The editor
// only needs a key-value surface; richer backends can still satisfy this.
type StorageManager interface {
	KeyValueStorage() KeyValueStorage
	Close() error
}

// KeyValueStorage is the persistence surface for report documents,
// recent-save lists, and published share snapshots. Keys are namespaced
// strings ("report:*", "share:*") and values are JSON. Get returns an error
// for a missing key so callers can tell "never saved" from an empty value.
type KeyValueStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	GetAll(ctx context.Context) (map[string]string, error)
}
