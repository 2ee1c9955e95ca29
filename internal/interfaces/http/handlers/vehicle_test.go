package handlers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxtbl4b/app-goroshina-sub001/internal/config"
)

type staticFitment struct{}

func (staticFitment) SearchBrands(ctx context.Context, query string) ([]string, error) {
	return nil, nil
}

func (staticFitment) Models(ctx context.Context, brand string) ([]string, error) {
	return nil, nil
}

func (staticFitment) Years(ctx context.Context, brand, model string) ([]int, error) {
	return nil, nil
}

func newTestVehicleHandler(ttl time.Duration) *VehicleHandler {
	cfg := &config.Config{}
	cfg.Session.TTL = ttl
	cfg.External.Fitment.SearchDebounce = time.Millisecond
	return NewVehicleHandler(staticFitment{}, cfg)
}

func TestSelectorReusedWithinSession(t *testing.T) {
	h := newTestVehicleHandler(time.Hour)

	first := h.selector("s1")
	second := h.selector("s1")

	assert.Same(t, first, second)
	assert.Len(t, h.selectors, 1)
}

func TestIdleSelectorsEvicted(t *testing.T) {
	h := newTestVehicleHandler(30 * time.Minute)

	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return current }

	for i := 0; i < 1000; i++ {
		h.selector(fmt.Sprintf("crawler-%d", i))
	}
	require.Len(t, h.selectors, 1000)

	// A fresh session past the TTL sweeps out every idle entry
	current = current.Add(31 * time.Minute)
	h.selector("shopper")

	assert.Len(t, h.selectors, 1)
	_, ok := h.selectors["shopper"]
	assert.True(t, ok)
}

func TestActiveSelectorSurvivesSweep(t *testing.T) {
	h := newTestVehicleHandler(30 * time.Minute)

	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return current }

	kept := h.selector("active")
	h.selector("idle")

	// The active session keeps touching its selector while the idle one ages out
	current = current.Add(20 * time.Minute)
	h.selector("active")
	current = current.Add(20 * time.Minute)
	h.selector("newcomer")

	require.Len(t, h.selectors, 2)
	assert.Same(t, kept, h.selector("active"))
	_, ok := h.selectors["idle"]
	assert.False(t, ok)
}
