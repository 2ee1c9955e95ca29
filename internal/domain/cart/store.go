// internal/domain/cart/store.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/baxtbl4b/app-goroshina-sub001/internal/domain/catalog"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/pkg/kvstore"
)

// ErrOutOfStock is returned when a tracked product has no stock left
var ErrOutOfStock = errors.New("product out of stock")

// ProductLookup resolves catalog records for cart validation
type ProductLookup interface {
	GetProduct(id string) (*catalog.Product, error)
}

// Store maintains the authoritative cart lines per session. Persistence and
// change notification are decoupled: every mutation writes the full snapshot
// through the adapter, then broadcasts through the notifier so every mounted
// observer (badge, fixed cart button, per-item counters) re-reads the same
// state.
type Store struct {
	adapter  kvstore.Adapter
	notifier *kvstore.Notifier
	products ProductLookup
	logger   *logrus.Logger
	ttl      time.Duration
}

// NewStore creates a cart store backed by the given snapshot adapter
func NewStore(adapter kvstore.Adapter, notifier *kvstore.Notifier, products ProductLookup, logger *logrus.Logger, ttl time.Duration) *Store {
	return &Store{
		adapter:  adapter,
		notifier: notifier,
		products: products,
		logger:   logger,
		ttl:      ttl,
	}
}

// Get returns the current snapshot for a session. A missing or unreadable
// snapshot yields an empty cart, never an error surfaced to the shopper.
func (s *Store) Get(ctx context.Context, sessionID string) *Snapshot {
	return s.load(ctx, sessionID)
}

// Add inserts a line with quantity 1 or increments an existing line.
// When the product tracks stock the quantity is capped at the available
// amount; the add is then a no-op instead of an error. A vehicle context,
// when provided, replaces the one captured earlier.
func (s *Store) Add(ctx context.Context, sessionID, productID string, vehicle *VehicleContext) (*Snapshot, error) {
	product, err := s.products.GetProduct(productID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve product %s: %w", productID, err)
	}

	snapshot := s.load(ctx, sessionID)

	found := false
	for i := range snapshot.Lines {
		if snapshot.Lines[i].ProductID == productID {
			// A fresh vehicle context replaces the captured one even when
			// the quantity is already capped
			if vehicle != nil {
				snapshot.Lines[i].Vehicle = vehicle
			}
			if !product.TracksStock() || snapshot.Lines[i].Quantity < product.Stock() {
				snapshot.Lines[i].Quantity++
			}
			found = true
			break
		}
	}

	if !found {
		if product.TracksStock() && product.Stock() < 1 {
			return nil, ErrOutOfStock
		}
		snapshot.Lines = append(snapshot.Lines, Line{
			ProductID: product.ID,
			Kind:      product.Kind,
			Name:      product.Name,
			Brand:     product.Brand,
			Price:     product.Price,
			Image:     product.Image,
			Quantity:  1,
			Vehicle:   vehicle,
			AddedAt:   time.Now().UTC(),
		})
	}

	if err := s.save(ctx, snapshot); err != nil {
		return nil, err
	}

	s.notifier.Publish(kvstore.Event{
		Domain:     Domain,
		Kind:       kvstore.EventItemAdded,
		SessionID:  sessionID,
		TotalCount: snapshot.Totals().TotalQuantity,
	})

	return snapshot, nil
}

// Remove decrements a line's quantity by 1, deleting the line when it
// reaches 0. Removing an absent product is a no-op, not an error.
func (s *Store) Remove(ctx context.Context, sessionID, productID string) (*Snapshot, error) {
	snapshot := s.load(ctx, sessionID)

	changed := false
	for i := range snapshot.Lines {
		if snapshot.Lines[i].ProductID != productID {
			continue
		}
		snapshot.Lines[i].Quantity--
		if snapshot.Lines[i].Quantity <= 0 {
			snapshot.Lines = append(snapshot.Lines[:i], snapshot.Lines[i+1:]...)
		}
		changed = true
		break
	}

	if !changed {
		return snapshot, nil
	}

	if err := s.save(ctx, snapshot); err != nil {
		return nil, err
	}

	s.publishChanged(snapshot)

	return snapshot, nil
}

// Clear empties all lines for a session
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.adapter.Delete(ctx, kvstore.Key(Domain, sessionID)); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	s.publishChanged(&Snapshot{SessionID: sessionID})

	return nil
}

// QuantityOf returns the quantity for a product, 0 when absent
func (s *Store) QuantityOf(ctx context.Context, sessionID, productID string) int {
	return s.load(ctx, sessionID).QuantityOf(productID)
}

// TotalItemCount returns the sum of all line quantities
func (s *Store) TotalItemCount(ctx context.Context, sessionID string) int {
	return s.load(ctx, sessionID).Totals().TotalQuantity
}

// TotalPrice returns the sum of quantity x unit price across lines
func (s *Store) TotalPrice(ctx context.Context, sessionID string) int64 {
	return s.load(ctx, sessionID).Totals().TotalPrice
}

// Subscribe registers an observer for cart change events
func (s *Store) Subscribe(fn func(kvstore.Event)) func() {
	return s.notifier.Subscribe(Domain, fn)
}

func (s *Store) publishChanged(snapshot *Snapshot) {
	s.notifier.Publish(kvstore.Event{
		Domain:     Domain,
		Kind:       kvstore.EventChanged,
		SessionID:  snapshot.SessionID,
		TotalCount: snapshot.Totals().TotalQuantity,
	})
}

func (s *Store) load(ctx context.Context, sessionID string) *Snapshot {
	var snapshot Snapshot
	err := s.adapter.Get(ctx, kvstore.Key(Domain, sessionID), &snapshot)
	if err != nil {
		if errors.Is(err, kvstore.ErrMalformed) {
			s.logger.WithError(err).Warn("Discarding malformed cart snapshot")
		} else if !errors.Is(err, kvstore.ErrNotFound) {
			s.logger.WithError(err).Warn("Failed to read cart snapshot")
		}
		now := time.Now().UTC()
		return &Snapshot{SessionID: sessionID, Lines: []Line{}, CreatedAt: now, UpdatedAt: now}
	}

	snapshot.SessionID = sessionID
	if snapshot.Lines == nil {
		snapshot.Lines = []Line{}
	}

	return &snapshot
}

func (s *Store) save(ctx context.Context, snapshot *Snapshot) error {
	snapshot.UpdatedAt = time.Now().UTC()
	if err := s.adapter.Set(ctx, kvstore.Key(Domain, snapshot.SessionID), snapshot, s.ttl); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}
