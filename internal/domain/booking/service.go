// internal/domain/booking/service.go
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/baxtbl4b/app-goroshina-sub001/internal/config"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/pkg/kvstore"
)

// Domain tags booking change events
const Domain = "booking"

// ValidationError lists the required wizard fields still missing.
// It blocks confirmation and is surfaced inline, never persisted.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("booking is incomplete: missing %s", strings.Join(e.Missing, ", "))
}

// Quote is the priced booking with an optional promo discount applied
type Quote struct {
	Breakdown    Breakdown `json:"breakdown"`
	PromoApplied bool      `json:"promo_applied"`
	DiscountRate int       `json:"discount_rate"`
	Total        int64     `json:"total"`
}

// Service handles booking business logic: wizard drafts, price quotes and
// order confirmation. Drafts live in session storage under feature-prefixed
// keys; confirmed orders are written to the database.
type Service struct {
	db       *gorm.DB
	adapter  kvstore.Adapter
	notifier *kvstore.Notifier
	config   *config.Config
	logger   *logrus.Logger
}

// NewService creates a new booking service
func NewService(db *gorm.DB, adapter kvstore.Adapter, notifier *kvstore.Notifier, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		db:       db,
		adapter:  adapter,
		notifier: notifier,
		config:   cfg,
		logger:   logger,
	}
}

// GetDraft returns the in-progress selection for a service, or an empty one
func (s *Service) GetDraft(ctx context.Context, sessionID string, t ServiceType) *Selection {
	var sel Selection
	err := s.adapter.Get(ctx, s.draftKey(t, sessionID), &sel)
	if err != nil {
		if errors.Is(err, kvstore.ErrMalformed) {
			s.logger.WithError(err).Warn("Discarding malformed booking draft")
		} else if !errors.Is(err, kvstore.ErrNotFound) {
			s.logger.WithError(err).Warn("Failed to read booking draft")
		}
		return &Selection{ServiceType: t, Quantities: map[string]int{}}
	}

	sel.ServiceType = t
	if sel.Quantities == nil {
		sel.Quantities = map[string]int{}
	}

	return &sel
}

// SaveDraft persists the wizard state for a session
func (s *Service) SaveDraft(ctx context.Context, sessionID string, sel *Selection) error {
	if !sel.ServiceType.Valid() {
		return fmt.Errorf("unknown service type %q", sel.ServiceType)
	}

	sel.UpdatedAt = time.Now().UTC()
	if err := s.adapter.Set(ctx, s.draftKey(sel.ServiceType, sessionID), sel, s.config.Booking.DraftTTL); err != nil {
		return fmt.Errorf("failed to persist booking draft: %w", err)
	}

	s.notifier.Publish(kvstore.Event{
		Domain:    Domain,
		Kind:      kvstore.EventChanged,
		SessionID: sessionID,
	})

	return nil
}

// ApplyPackage increments every constituent quantity of a bundle in the
// draft in one step and persists the result, keeping breakdown and total
// consistent after a single user action.
func (s *Service) ApplyPackage(ctx context.Context, sessionID string, t ServiceType, pkg Package, count int) (*Selection, error) {
	if count < 1 {
		return nil, fmt.Errorf("package count must be positive")
	}

	sel := s.GetDraft(ctx, sessionID, t)
	sel.Quantities = pkg.Apply(sel.Quantities, count)

	if err := s.SaveDraft(ctx, sessionID, sel); err != nil {
		return nil, err
	}

	return sel, nil
}

// QuoteSelection prices a selection against the service's pricing table and
// applies the promo code when one is set.
func (s *Service) QuoteSelection(sel *Selection) (*Quote, error) {
	breakdown, err := ComputeTotal(sel.Quantities, DefaultTable(sel.ServiceType), sel.DimensionKey)
	if err != nil {
		return nil, err
	}

	quote := &Quote{
		Breakdown: *breakdown,
		Total:     breakdown.Total,
	}

	if sel.PromoCode != "" {
		rate, discounted := ApplyPromoCode(sel.PromoCode, breakdown.Total)
		quote.DiscountRate = rate
		quote.PromoApplied = rate > 0
		quote.Total = discounted
	}

	return quote, nil
}

// Validate checks that every field required for confirmation is present
func (s *Service) Validate(sel *Selection) error {
	var missing []string

	if sel.StoreID == 0 {
		missing = append(missing, "store")
	}
	if sel.Date == "" {
		missing = append(missing, "date")
	} else if _, err := time.Parse("2006-01-02", sel.Date); err != nil {
		missing = append(missing, "date")
	}
	if sel.TimeSlot == "" {
		missing = append(missing, "time")
	} else if !s.slotWithinHours(sel.TimeSlot) {
		missing = append(missing, "time")
	}
	if strings.TrimSpace(sel.CustomerName) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(sel.Phone) == "" {
		missing = append(missing, "phone")
	}

	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}

	return nil
}

// Confirm turns a complete draft into an order record, clears the draft and
// returns the created order.
func (s *Service) Confirm(ctx context.Context, sessionID string, t ServiceType) (*Order, error) {
	sel := s.GetDraft(ctx, sessionID, t)

	if err := s.Validate(sel); err != nil {
		return nil, err
	}

	quote, err := s.QuoteSelection(sel)
	if err != nil {
		return nil, err
	}

	// Validate the store exists and is active
	var store StoreLocation
	if err := s.db.Where("id = ? AND is_active = ?", sel.StoreID, true).First(&store).Error; err != nil {
		return nil, fmt.Errorf("store not found")
	}

	order := &Order{
		OrderNumber:  s.newOrderNumber(),
		ServiceType:  t,
		StoreID:      sel.StoreID,
		Date:         sel.Date,
		TimeSlot:     sel.TimeSlot,
		CustomerName: sel.CustomerName,
		Phone:        sel.Phone,
		DimensionKey: sel.DimensionKey,
		Lines:        quote.Breakdown.Lines,
		PromoCode:    sel.PromoCode,
		DiscountRate: quote.DiscountRate,
		TotalAmount:  quote.Total,
	}

	if err := s.db.Create(order).Error; err != nil {
		return nil, fmt.Errorf("failed to create booking order: %w", err)
	}
	order.Store = store

	// The in-progress selection is discarded once the order exists
	if err := s.adapter.Delete(ctx, s.draftKey(t, sessionID)); err != nil {
		s.logger.WithError(err).Warn("Failed to clear booking draft after confirmation")
	}

	s.notifier.Publish(kvstore.Event{
		Domain:    Domain,
		Kind:      kvstore.EventChanged,
		SessionID: sessionID,
	})

	return order, nil
}

// GetOrder retrieves a confirmed booking by its order number
func (s *Service) GetOrder(orderNumber string) (*Order, error) {
	var order Order
	result := s.db.Preload("Store").Where("order_number = ?", orderNumber).First(&order)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("booking not found")
		}
		return nil, fmt.Errorf("failed to retrieve booking: %w", result.Error)
	}

	return &order, nil
}

// ListStores returns the active service centers available for booking
func (s *Service) ListStores() ([]StoreLocation, error) {
	var stores []StoreLocation
	if err := s.db.Where("is_active = ?", true).Order("id ASC").Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve stores: %w", err)
	}

	return stores, nil
}

// draftKey builds the feature-prefixed storage key for a service's draft
func (s *Service) draftKey(t ServiceType, sessionID string) string {
	return kvstore.Key("booking-draft:"+string(t), sessionID)
}

func (s *Service) newOrderNumber() string {
	return fmt.Sprintf("BK-%s", strings.ToUpper(uuid.New().String()[:8]))
}

func (s *Service) slotWithinHours(slot string) bool {
	t, err := time.Parse("15:04", slot)
	if err != nil {
		return false
	}
	hour := t.Hour()
	return hour >= s.config.Booking.SlotOpenHour && hour < s.config.Booking.SlotCloseHour
}
