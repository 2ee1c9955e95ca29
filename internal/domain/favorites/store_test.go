package favorites

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxtbl4b/app-goroshina-sub001/internal/domain/catalog"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/pkg/kvstore"
)

func newTestStore(domain string) (*Store, *kvstore.MemoryAdapter, *kvstore.Notifier) {
	adapter := kvstore.NewMemoryAdapter()
	notifier := kvstore.NewNotifier()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	return NewStore(domain, adapter, notifier, logger, time.Hour), adapter, notifier
}

func product(id string, kind catalog.Kind) *catalog.Product {
	return &catalog.Product{ID: id, Kind: kind, Name: id, Price: 1000}
}

func TestToggleAddsThenRemoves(t *testing.T) {
	store, _, _ := newTestStore(DefaultDomain)
	ctx := context.Background()
	tire := product("tire-1", catalog.KindTire)

	favorited, err := store.Toggle(ctx, "s1", tire)
	require.NoError(t, err)
	assert.True(t, favorited)
	assert.True(t, store.IsFavorite(ctx, "s1", "tire-1"))
	assert.Equal(t, 1, store.Count(ctx, "s1"))

	favorited, err = store.Toggle(ctx, "s1", tire)
	require.NoError(t, err)
	assert.False(t, favorited)
	assert.False(t, store.IsFavorite(ctx, "s1", "tire-1"))
	assert.Zero(t, store.Count(ctx, "s1"))
}

func TestToggleKeepsOtherEntries(t *testing.T) {
	store, _, _ := newTestStore(DefaultDomain)
	ctx := context.Background()

	_, err := store.Toggle(ctx, "s1", product("tire-1", catalog.KindTire))
	require.NoError(t, err)
	_, err = store.Toggle(ctx, "s1", product("fast-1", catalog.KindFastener))
	require.NoError(t, err)
	_, err = store.Toggle(ctx, "s1", product("tire-1", catalog.KindTire))
	require.NoError(t, err)

	entries := store.List(ctx, "s1")
	require.Len(t, entries, 1)
	assert.Equal(t, "fast-1", entries[0].Product.ID)
	assert.Equal(t, catalog.KindFastener, entries[0].Type)
}

func TestEntriesSurviveReload(t *testing.T) {
	store, adapter, notifier := newTestStore(DefaultDomain)
	ctx := context.Background()

	_, err := store.Toggle(ctx, "s1", product("tire-1", catalog.KindTire))
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	reloaded := NewStore(DefaultDomain, adapter, notifier, logger, time.Hour)

	assert.True(t, reloaded.IsFavorite(ctx, "s1", "tire-1"))
}

func TestDomainsAreIsolated(t *testing.T) {
	adapter := kvstore.NewMemoryAdapter()
	notifier := kvstore.NewNotifier()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	favoritesStore := NewStore(DefaultDomain, adapter, notifier, logger, time.Hour)
	comparisonStore := NewStore("comparison", adapter, notifier, logger, time.Hour)
	ctx := context.Background()

	_, err := favoritesStore.Toggle(ctx, "s1", product("tire-1", catalog.KindTire))
	require.NoError(t, err)

	assert.True(t, favoritesStore.IsFavorite(ctx, "s1", "tire-1"))
	assert.False(t, comparisonStore.IsFavorite(ctx, "s1", "tire-1"))
}

func TestToggleBroadcastsWithCount(t *testing.T) {
	store, _, _ := newTestStore(DefaultDomain)
	ctx := context.Background()

	var events []kvstore.Event
	unsubscribe := store.Subscribe(func(e kvstore.Event) { events = append(events, e) })
	defer unsubscribe()

	_, err := store.Toggle(ctx, "s1", product("tire-1", catalog.KindTire))
	require.NoError(t, err)
	_, err = store.Toggle(ctx, "s1", product("tire-1", catalog.KindTire))
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, 1, events[0].TotalCount)
	assert.Zero(t, events[1].TotalCount)
	assert.Equal(t, DefaultDomain, events[0].Domain)
}

func TestMalformedSnapshotFallsBackToEmpty(t *testing.T) {
	store, adapter, _ := newTestStore(DefaultDomain)
	ctx := context.Background()

	adapter.Put(kvstore.Key(DefaultDomain, "s1"), []byte("not json"))

	assert.Empty(t, store.List(ctx, "s1"))

	favorited, err := store.Toggle(ctx, "s1", product("tire-1", catalog.KindTire))
	require.NoError(t, err)
	assert.True(t, favorited)
}
