package store

import (
	"context"
	"errors"
)

// Storage is the durable client-state medium, the analogue of the
// browser's origin-scoped storage: a small set of fixed string keys
// holding serialized blobs. Implementations join keys with a configured
// namespace prefix.
type Storage interface {
	// Get returns the stored value, or ErrKeyNotFound when the key is
	// absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// ErrKeyNotFound is returned by Get for an absent key.
var ErrKeyNotFound = errors.New("storage key not found")

// Fixed storage keys. Every piece of client-persisted state lives under
// one of these, namespaced by the storage prefix.
const (
	KeyCart    = "cart"
	KeyToken   = "auth_token"
	KeyProfile = "user_profile"
)
