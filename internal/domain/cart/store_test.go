package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxtbl4b/app-goroshina-sub001/internal/domain/catalog"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/pkg/kvstore"
)

type fakeCatalog struct {
	products map[string]*catalog.Product
	err      error
}

func (f *fakeCatalog) GetProduct(id string) (*catalog.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, catalog.ErrProductNotFound
}

func intPtr(n int) *int { return &n }

func newTestStore(products ...*catalog.Product) (*Store, *kvstore.MemoryAdapter, *kvstore.Notifier) {
	lookup := &fakeCatalog{products: map[string]*catalog.Product{}}
	for _, p := range products {
		lookup.products[p.ID] = p
	}

	adapter := kvstore.NewMemoryAdapter()
	notifier := kvstore.NewNotifier()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	return NewStore(adapter, notifier, lookup, logger, time.Hour), adapter, notifier
}

func TestAddNewProductCreatesLine(t *testing.T) {
	store, _, _ := newTestStore(&catalog.Product{
		ID: "tire-1", Kind: catalog.KindTire, Name: "Nokian", Price: 5000,
	})
	ctx := context.Background()

	snapshot, err := store.Add(ctx, "s1", "tire-1", nil)
	require.NoError(t, err)

	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, "tire-1", snapshot.Lines[0].ProductID)
	assert.Equal(t, 1, snapshot.Lines[0].Quantity)
	assert.Equal(t, int64(5000), snapshot.Lines[0].Price)
}

func TestAddSameProductIncrementsQuantity(t *testing.T) {
	store, _, _ := newTestStore(&catalog.Product{
		ID: "tire-1", Kind: catalog.KindTire, Name: "Nokian", Price: 5000,
	})
	ctx := context.Background()

	_, err := store.Add(ctx, "s1", "tire-1", nil)
	require.NoError(t, err)
	snapshot, err := store.Add(ctx, "s1", "tire-1", nil)
	require.NoError(t, err)

	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, 2, snapshot.Lines[0].Quantity)
	assert.Equal(t, 2, store.TotalItemCount(ctx, "s1"))
	assert.Equal(t, int64(10000), store.TotalPrice(ctx, "s1"))
}

func TestAddUnknownProductFails(t *testing.T) {
	store, _, _ := newTestStore()

	_, err := store.Add(context.Background(), "s1", "ghost", nil)

	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	assert.Zero(t, store.TotalItemCount(context.Background(), "s1"))
}

func TestAddLookupFailureKeepsCause(t *testing.T) {
	lookupErr := errors.New("catalog unavailable")
	store, _, _ := newTestStore()
	store.products = &fakeCatalog{err: lookupErr}

	_, err := store.Add(context.Background(), "s1", "tire-1", nil)

	assert.ErrorIs(t, err, lookupErr)
	assert.NotErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestAddCapsAtAvailableStock(t *testing.T) {
	store, _, _ := newTestStore(&catalog.Product{
		ID: "fast-1", Kind: catalog.KindFastener, Name: "AXIOM", Price: 900, Quantity: intPtr(2),
	})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.Add(ctx, "s1", "fast-1", nil)
		require.NoError(t, err)
	}

	assert.Equal(t, 2, store.QuantityOf(ctx, "s1", "fast-1"))
}

func TestAddOutOfStockProductFails(t *testing.T) {
	store, _, _ := newTestStore(&catalog.Product{
		ID: "fast-1", Kind: catalog.KindFastener, Name: "AXIOM", Price: 900, Quantity: intPtr(0),
	})

	_, err := store.Add(context.Background(), "s1", "fast-1", nil)

	assert.ErrorIs(t, err, ErrOutOfStock)
}

func TestAddUntrackedStockIsUnlimited(t *testing.T) {
	store, _, _ := newTestStore(&catalog.Product{
		ID: "chem-1", Kind: catalog.KindChemical, Name: "Cleaner", Price: 300,
	})
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := store.Add(ctx, "s1", "chem-1", nil)
		require.NoError(t, err)
	}

	assert.Equal(t, 10, store.QuantityOf(ctx, "s1", "chem-1"))
}

func TestAddCapturesVehicleContext(t *testing.T) {
	store, _, _ := newTestStore(&catalog.Product{
		ID: "sensor-1", Kind: catalog.KindSensor, Name: "TPMS", Price: 2500,
	})
	ctx := context.Background()

	vehicle := &VehicleContext{CarBrand: "Kia", CarModel: "Rio", CarYear: 2019}
	snapshot, err := store.Add(ctx, "s1", "sensor-1", vehicle)
	require.NoError(t, err)

	require.NotNil(t, snapshot.Lines[0].Vehicle)
	assert.Equal(t, "Kia", snapshot.Lines[0].Vehicle.CarBrand)

	// A later add with a new context replaces the captured one
	replacement := &VehicleContext{CarBrand: "Lada", CarModel: "Vesta", CarYear: 2021}
	snapshot, err = store.Add(ctx, "s1", "sensor-1", replacement)
	require.NoError(t, err)
	assert.Equal(t, "Lada", snapshot.Lines[0].Vehicle.CarBrand)
}

func TestAddAtStockCapStillReplacesVehicleContext(t *testing.T) {
	store, _, _ := newTestStore(&catalog.Product{
		ID: "fast-1", Kind: catalog.KindFastener, Name: "AXIOM", Price: 900, Quantity: intPtr(1),
	})
	ctx := context.Background()

	first := &VehicleContext{CarBrand: "Kia", CarModel: "Rio", CarYear: 2019}
	_, err := store.Add(ctx, "s1", "fast-1", first)
	require.NoError(t, err)

	// Quantity is capped at 1 but the fresh context must still land
	replacement := &VehicleContext{CarBrand: "Lada", CarModel: "Vesta", CarYear: 2021}
	snapshot, err := store.Add(ctx, "s1", "fast-1", replacement)
	require.NoError(t, err)

	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, 1, snapshot.Lines[0].Quantity)
	require.NotNil(t, snapshot.Lines[0].Vehicle)
	assert.Equal(t, "Lada", snapshot.Lines[0].Vehicle.CarBrand)
}

func TestRemoveDecrementsAndDeletesAtZero(t *testing.T) {
	store, _, _ := newTestStore(&catalog.Product{
		ID: "tire-1", Kind: catalog.KindTire, Name: "Nokian", Price: 5000,
	})
	ctx := context.Background()

	_, err := store.Add(ctx, "s1", "tire-1", nil)
	require.NoError(t, err)
	_, err = store.Add(ctx, "s1", "tire-1", nil)
	require.NoError(t, err)

	snapshot, err := store.Remove(ctx, "s1", "tire-1")
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.QuantityOf("tire-1"))

	snapshot, err = store.Remove(ctx, "s1", "tire-1")
	require.NoError(t, err)
	assert.Empty(t, snapshot.Lines)
}

func TestRemoveAbsentProductIsNoop(t *testing.T) {
	store, _, notifier := newTestStore(&catalog.Product{
		ID: "tire-1", Kind: catalog.KindTire, Name: "Nokian", Price: 5000,
	})
	ctx := context.Background()

	_, err := store.Add(ctx, "s1", "tire-1", nil)
	require.NoError(t, err)

	var events int
	notifier.Subscribe(Domain, func(kvstore.Event) { events++ })

	snapshot, err := store.Remove(ctx, "s1", "ghost")
	require.NoError(t, err)

	assert.Equal(t, 1, snapshot.QuantityOf("tire-1"))
	assert.Zero(t, events, "a no-op remove must not broadcast")
}

func TestClearEmptiesCart(t *testing.T) {
	store, _, _ := newTestStore(&catalog.Product{
		ID: "tire-1", Kind: catalog.KindTire, Name: "Nokian", Price: 5000,
	})
	ctx := context.Background()

	_, err := store.Add(ctx, "s1", "tire-1", nil)
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx, "s1"))

	assert.Empty(t, store.Get(ctx, "s1").Lines)
	assert.Zero(t, store.TotalItemCount(ctx, "s1"))
}

func TestSnapshotSurvivesReload(t *testing.T) {
	product := &catalog.Product{ID: "tire-1", Kind: catalog.KindTire, Name: "Nokian", Price: 5000}
	store, adapter, notifier := newTestStore(product)
	ctx := context.Background()

	_, err := store.Add(ctx, "s1", "tire-1", nil)
	require.NoError(t, err)
	_, err = store.Add(ctx, "s1", "tire-1", nil)
	require.NoError(t, err)

	// A fresh store over the same adapter sees the same state
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	lookup := &fakeCatalog{products: map[string]*catalog.Product{product.ID: product}}
	reloaded := NewStore(adapter, notifier, lookup, logger, time.Hour)

	assert.Equal(t, 2, reloaded.QuantityOf(ctx, "s1", "tire-1"))
	assert.Equal(t, int64(10000), reloaded.TotalPrice(ctx, "s1"))
}

func TestMalformedSnapshotFallsBackToEmpty(t *testing.T) {
	store, adapter, _ := newTestStore(&catalog.Product{
		ID: "tire-1", Kind: catalog.KindTire, Name: "Nokian", Price: 5000,
	})
	ctx := context.Background()

	adapter.Put(kvstore.Key(Domain, "s1"), []byte("{broken"))

	snapshot := store.Get(ctx, "s1")
	assert.Empty(t, snapshot.Lines)

	// The store recovers: the next add starts a fresh cart
	snapshot, err := store.Add(ctx, "s1", "tire-1", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.QuantityOf("tire-1"))
}

func TestSessionsAreIsolated(t *testing.T) {
	store, _, _ := newTestStore(&catalog.Product{
		ID: "tire-1", Kind: catalog.KindTire, Name: "Nokian", Price: 5000,
	})
	ctx := context.Background()

	_, err := store.Add(ctx, "s1", "tire-1", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, store.TotalItemCount(ctx, "s1"))
	assert.Zero(t, store.TotalItemCount(ctx, "s2"))
}

func TestMutationsBroadcast(t *testing.T) {
	store, _, _ := newTestStore(&catalog.Product{
		ID: "tire-1", Kind: catalog.KindTire, Name: "Nokian", Price: 5000,
	})
	ctx := context.Background()

	var events []kvstore.Event
	unsubscribe := store.Subscribe(func(e kvstore.Event) { events = append(events, e) })
	defer unsubscribe()

	_, err := store.Add(ctx, "s1", "tire-1", nil)
	require.NoError(t, err)
	_, err = store.Add(ctx, "s1", "tire-1", nil)
	require.NoError(t, err)
	_, err = store.Remove(ctx, "s1", "tire-1")
	require.NoError(t, err)
	require.NoError(t, store.Clear(ctx, "s1"))

	require.Len(t, events, 4)
	assert.Equal(t, kvstore.EventItemAdded, events[0].Kind)
	assert.Equal(t, 1, events[0].TotalCount)
	assert.Equal(t, 2, events[1].TotalCount)
	assert.Equal(t, kvstore.EventChanged, events[2].Kind)
	assert.Equal(t, 1, events[2].TotalCount)
	assert.Zero(t, events[3].TotalCount)
}
