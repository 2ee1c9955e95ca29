package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIsFeaturePrefixed(t *testing.T) {
	assert.Equal(t, "cart:session:abc", Key("cart", "abc"))
	assert.Equal(t, "booking-draft:studding:session:abc", Key("booking-draft:studding", "abc"))
}

func TestMemoryAdapterRoundTrip(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, adapter.Set(ctx, "cart:session:s1", payload{Name: "x", Count: 3}, time.Minute))

	var got payload
	require.NoError(t, adapter.Get(ctx, "cart:session:s1", &got))
	assert.Equal(t, payload{Name: "x", Count: 3}, got)
}

func TestMemoryAdapterMissingKey(t *testing.T) {
	adapter := NewMemoryAdapter()

	var dest map[string]string
	err := adapter.Get(context.Background(), "cart:session:absent", &dest)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryAdapterMalformedPayload(t *testing.T) {
	adapter := NewMemoryAdapter()
	adapter.Put("cart:session:s1", []byte("{not json"))

	var dest map[string]string
	err := adapter.Get(context.Background(), "cart:session:s1", &dest)

	assert.ErrorIs(t, err, ErrMalformed)
}

func TestMemoryAdapterDelete(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "k", "v", 0))
	require.NoError(t, adapter.Delete(ctx, "k"))

	var dest string
	assert.ErrorIs(t, adapter.Get(ctx, "k", &dest), ErrNotFound)

	// Deleting an absent key is not an error
	assert.NoError(t, adapter.Delete(ctx, "k"))
}

func TestNotifierDeliversToMatchingDomain(t *testing.T) {
	notifier := NewNotifier()

	var cartEvents, allEvents []Event
	notifier.Subscribe("cart", func(e Event) { cartEvents = append(cartEvents, e) })
	notifier.Subscribe("", func(e Event) { allEvents = append(allEvents, e) })

	notifier.Publish(Event{Domain: "cart", Kind: EventItemAdded, TotalCount: 2})
	notifier.Publish(Event{Domain: "favorites", Kind: EventChanged})

	require.Len(t, cartEvents, 1)
	assert.Equal(t, EventItemAdded, cartEvents[0].Kind)
	assert.Equal(t, 2, cartEvents[0].TotalCount)

	assert.Len(t, allEvents, 2)
}

func TestNotifierUnsubscribeStopsDelivery(t *testing.T) {
	notifier := NewNotifier()

	var events []Event
	unsubscribe := notifier.Subscribe("cart", func(e Event) { events = append(events, e) })

	notifier.Publish(Event{Domain: "cart", Kind: EventChanged})
	unsubscribe()
	notifier.Publish(Event{Domain: "cart", Kind: EventChanged})

	assert.Len(t, events, 1)
}

func TestNotifierMultipleSubscribersSeeSameEvent(t *testing.T) {
	notifier := NewNotifier()

	var a, b int
	notifier.Subscribe("cart", func(Event) { a++ })
	notifier.Subscribe("cart", func(Event) { b++ })

	notifier.Publish(Event{Domain: "cart", Kind: EventChanged})

	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}
