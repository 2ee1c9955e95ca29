package booking

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxtbl4b/app-goroshina-sub001/internal/config"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/pkg/kvstore"
)

func newTestService() (*Service, *kvstore.MemoryAdapter, *kvstore.Notifier) {
	adapter := kvstore.NewMemoryAdapter()
	notifier := kvstore.NewNotifier()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	cfg := &config.Config{
		Booking: config.BookingConfig{
			DraftTTL:      time.Hour,
			SlotOpenHour:  9,
			SlotCloseHour: 21,
		},
	}

	return NewService(nil, adapter, notifier, cfg, logger), adapter, notifier
}

func TestGetDraftReturnsEmptySelection(t *testing.T) {
	service, _, _ := newTestService()

	sel := service.GetDraft(context.Background(), "s1", ServiceStudding)

	assert.Equal(t, ServiceStudding, sel.ServiceType)
	assert.Empty(t, sel.Quantities)
	assert.Zero(t, sel.StoreID)
}

func TestDraftRoundTrip(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	sel := &Selection{
		ServiceType:  ServiceTireMounting,
		StoreID:      1,
		Date:         "2026-09-12",
		TimeSlot:     "12:30",
		CustomerName: "Иван",
		Phone:        "+79990001122",
		DimensionKey: "r17",
		Quantities:   map[string]int{"balancing": 4},
		PromoCode:    "жизнь",
	}
	require.NoError(t, service.SaveDraft(ctx, "s1", sel))

	loaded := service.GetDraft(ctx, "s1", ServiceTireMounting)
	assert.Equal(t, sel.StoreID, loaded.StoreID)
	assert.Equal(t, sel.Date, loaded.Date)
	assert.Equal(t, sel.Quantities, loaded.Quantities)
	assert.Equal(t, sel.PromoCode, loaded.PromoCode)
	assert.False(t, loaded.UpdatedAt.IsZero())
}

func TestDraftsAreScopedPerService(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, service.SaveDraft(ctx, "s1", &Selection{
		ServiceType: ServiceStudding,
		Quantities:  map[string]int{"studding": 4},
	}))

	other := service.GetDraft(ctx, "s1", ServicePainting)
	assert.Empty(t, other.Quantities)
}

func TestSaveDraftRejectsUnknownServiceType(t *testing.T) {
	service, _, _ := newTestService()

	err := service.SaveDraft(context.Background(), "s1", &Selection{ServiceType: "car-wash"})

	assert.Error(t, err)
}

func TestMalformedDraftFallsBackToEmpty(t *testing.T) {
	service, adapter, _ := newTestService()

	adapter.Put(kvstore.Key("booking-draft:studding", "s1"), []byte("???"))

	sel := service.GetDraft(context.Background(), "s1", ServiceStudding)
	assert.Empty(t, sel.Quantities)
}

func TestApplyPackageUpdatesDraftAtomically(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	sel, err := service.ApplyPackage(ctx, "s1", ServiceTireMounting, MountingPackage, 4)
	require.NoError(t, err)

	for _, key := range MountingPackage.ServiceKeys {
		assert.Equal(t, 4, sel.Quantities[key], key)
	}

	// The updated quantities are persisted
	loaded := service.GetDraft(ctx, "s1", ServiceTireMounting)
	assert.Equal(t, sel.Quantities, loaded.Quantities)
}

func TestApplyPackageRejectsNonPositiveCount(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.ApplyPackage(context.Background(), "s1", ServiceTireMounting, MountingPackage, 0)

	assert.Error(t, err)
}

func TestQuoteSelectionWithPromo(t *testing.T) {
	service, _, _ := newTestService()

	quote, err := service.QuoteSelection(&Selection{
		ServiceType:  ServiceTireMounting,
		DimensionKey: "r17",
		Quantities:   map[string]int{"wheel-removal": 4, "balancing": 4},
		PromoCode:    "жизнь",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3400), quote.Breakdown.Total)
	assert.True(t, quote.PromoApplied)
	assert.Equal(t, 15, quote.DiscountRate)
	assert.Equal(t, int64(2890), quote.Total)
}

func TestQuoteSelectionUnknownPromoKeepsTotal(t *testing.T) {
	service, _, _ := newTestService()

	quote, err := service.QuoteSelection(&Selection{
		ServiceType:  ServiceTireMounting,
		DimensionKey: "r17",
		Quantities:   map[string]int{"balancing": 4},
		PromoCode:    "nope",
	})
	require.NoError(t, err)

	assert.False(t, quote.PromoApplied)
	assert.Equal(t, quote.Breakdown.Total, quote.Total)
}

func TestQuoteSelectionSurfacesUnpricedServices(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.QuoteSelection(&Selection{
		ServiceType:  ServiceTireMounting,
		DimensionKey: "r17",
		Quantities:   map[string]int{"chrome-plating": 4},
	})

	var unpriced *ErrUnpricedService
	assert.ErrorAs(t, err, &unpriced)
}

func TestValidateListsEveryMissingField(t *testing.T) {
	service, _, _ := newTestService()

	err := service.Validate(&Selection{ServiceType: ServiceTireMounting})

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.ElementsMatch(t, []string{"store", "date", "time", "name", "phone"}, validation.Missing)
}

func TestValidateRejectsSlotOutsideWorkingHours(t *testing.T) {
	service, _, _ := newTestService()

	sel := &Selection{
		ServiceType:  ServiceTireMounting,
		StoreID:      1,
		Date:         "2026-09-12",
		TimeSlot:     "23:30",
		CustomerName: "Иван",
		Phone:        "+79990001122",
	}

	err := service.Validate(sel)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, []string{"time"}, validation.Missing)
}

func TestValidateAcceptsCompleteSelection(t *testing.T) {
	service, _, _ := newTestService()

	err := service.Validate(&Selection{
		ServiceType:  ServiceTireMounting,
		StoreID:      1,
		Date:         "2026-09-12",
		TimeSlot:     "12:30",
		CustomerName: "Иван",
		Phone:        "+79990001122",
	})

	assert.NoError(t, err)
}

func TestValidateRejectsMalformedDate(t *testing.T) {
	service, _, _ := newTestService()

	err := service.Validate(&Selection{
		ServiceType:  ServiceTireMounting,
		StoreID:      1,
		Date:         "12.09.2026",
		TimeSlot:     "12:30",
		CustomerName: "Иван",
		Phone:        "+79990001122",
	})

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, []string{"date"}, validation.Missing)
}
