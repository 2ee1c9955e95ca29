// internal/domain/favorites/store.go
package favorites

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/baxtbl4b/app-goroshina-sub001/internal/domain/catalog"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/pkg/kvstore"
)

// DefaultDomain is the storewide favorites namespace. Feature-scoped
// favorites (a catalog slice with its own list) construct a Store with their
// own domain tag instead of inventing a separate storage scheme.
const DefaultDomain = "favorites"

// Entry is a favorited product: a copy of the record at favoriting time
// plus its variant tag.
type Entry struct {
	Product catalog.Product `json:"product"`
	Type    catalog.Kind    `json:"type"`
	AddedAt time.Time       `json:"added_at"`
}

// Snapshot is the persisted favorites set for one session
type Snapshot struct {
	SessionID string    `json:"session_id"`
	Entries   []Entry   `json:"entries"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store maintains a favorites set with at most one entry per product.
// Persistence and broadcast semantics match the cart store.
type Store struct {
	domain   string
	adapter  kvstore.Adapter
	notifier *kvstore.Notifier
	logger   *logrus.Logger
	ttl      time.Duration
}

// NewStore creates a favorites store for a feature domain
func NewStore(domain string, adapter kvstore.Adapter, notifier *kvstore.Notifier, logger *logrus.Logger, ttl time.Duration) *Store {
	return &Store{
		domain:   domain,
		adapter:  adapter,
		notifier: notifier,
		logger:   logger,
		ttl:      ttl,
	}
}

// List returns all favorited entries for a session
func (s *Store) List(ctx context.Context, sessionID string) []Entry {
	return s.load(ctx, sessionID).Entries
}

// Toggle flips the favorited state of a product and returns the new state:
// true when the product is now favorited, false when it was removed.
func (s *Store) Toggle(ctx context.Context, sessionID string, product *catalog.Product) (bool, error) {
	snapshot := s.load(ctx, sessionID)

	favorited := true
	for i := range snapshot.Entries {
		if snapshot.Entries[i].Product.ID == product.ID {
			snapshot.Entries = append(snapshot.Entries[:i], snapshot.Entries[i+1:]...)
			favorited = false
			break
		}
	}

	if favorited {
		snapshot.Entries = append(snapshot.Entries, Entry{
			Product: *product,
			Type:    product.Kind,
			AddedAt: time.Now().UTC(),
		})
	}

	if err := s.save(ctx, snapshot); err != nil {
		return false, err
	}

	s.notifier.Publish(kvstore.Event{
		Domain:     s.domain,
		Kind:       kvstore.EventChanged,
		SessionID:  sessionID,
		TotalCount: len(snapshot.Entries),
	})

	return favorited, nil
}

// IsFavorite reports whether a product is in the session's favorites
func (s *Store) IsFavorite(ctx context.Context, sessionID, productID string) bool {
	for _, entry := range s.load(ctx, sessionID).Entries {
		if entry.Product.ID == productID {
			return true
		}
	}
	return false
}

// Count returns the number of favorited products
func (s *Store) Count(ctx context.Context, sessionID string) int {
	return len(s.load(ctx, sessionID).Entries)
}

// Subscribe registers an observer for favorites change events
func (s *Store) Subscribe(fn func(kvstore.Event)) func() {
	return s.notifier.Subscribe(s.domain, fn)
}

func (s *Store) load(ctx context.Context, sessionID string) *Snapshot {
	var snapshot Snapshot
	err := s.adapter.Get(ctx, kvstore.Key(s.domain, sessionID), &snapshot)
	if err != nil {
		if errors.Is(err, kvstore.ErrMalformed) {
			s.logger.WithError(err).Warn("Discarding malformed favorites snapshot")
		} else if !errors.Is(err, kvstore.ErrNotFound) {
			s.logger.WithError(err).Warn("Failed to read favorites snapshot")
		}
		return &Snapshot{SessionID: sessionID, Entries: []Entry{}}
	}

	snapshot.SessionID = sessionID
	if snapshot.Entries == nil {
		snapshot.Entries = []Entry{}
	}

	return &snapshot
}

func (s *Store) save(ctx context.Context, snapshot *Snapshot) error {
	snapshot.UpdatedAt = time.Now().UTC()
	if err := s.adapter.Set(ctx, kvstore.Key(s.domain, snapshot.SessionID), snapshot, s.ttl); err != nil {
		return fmt.Errorf("failed to persist favorites: %w", err)
	}
	return nil
}
