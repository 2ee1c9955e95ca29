// internal/pkg/kvstore/kvstore.go
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no snapshot exists under the requested key
var ErrNotFound = errors.New("kvstore: key not found")

// ErrMalformed is returned when a stored snapshot cannot be decoded.
// Callers are expected to fall back to an empty collection and log it.
var ErrMalformed = errors.New("kvstore: malformed payload")

// Adapter persists JSON-encoded snapshots under namespaced keys.
// Writes are last-writer-wins; there is no merge between concurrent sessions.
type Adapter interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Key builds the storage key for a feature domain and session.
// All feature stores (cart, favorites, booking drafts) share this one
// namespace scheme instead of ad hoc per-catalog keys.
func Key(domain, sessionID string) string {
	return fmt.Sprintf("%s:session:%s", domain, sessionID)
}
