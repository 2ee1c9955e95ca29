// internal/interfaces/http/handlers/vehicle.go
package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/baxtbl4b/app-goroshina-sub001/internal/config"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/domain/vehicle"
)

// VehicleHandler handles the vehicle selector endpoints. Each session owns
// one selector state machine; brand search results arrive after the debounce
// interval, so clients poll GET /vehicle for the refreshed snapshot.
//
// Selector state is ephemeral UI state, so entries untouched for a full
// session TTL are evicted rather than persisted. Session cookies are minted
// for every anonymous visitor and the map would otherwise grow without bound.
type VehicleHandler struct {
	fitment vehicle.Fitment
	config  *config.Config
	now     func() time.Time

	mu        sync.Mutex
	selectors map[string]*selectorEntry
}

type selectorEntry struct {
	sel      *vehicle.Selector
	lastSeen time.Time
}

// NewVehicleHandler creates a new vehicle selector handler
func NewVehicleHandler(fitment vehicle.Fitment, cfg *config.Config) *VehicleHandler {
	return &VehicleHandler{
		fitment:   fitment,
		config:    cfg,
		now:       time.Now,
		selectors: make(map[string]*selectorEntry),
	}
}

// InputRequest represents a brand search text update
type InputRequest struct {
	Text string `json:"text"`
}

// SelectBrandRequest represents a brand pick
type SelectBrandRequest struct {
	Brand string `json:"brand" binding:"required"`
}

// SelectModelRequest represents a model pick
type SelectModelRequest struct {
	Model string `json:"model" binding:"required"`
}

// SelectYearRequest represents a year pick
type SelectYearRequest struct {
	Year int `json:"year" binding:"required"`
}

// selector returns the session's state machine, creating it on first use.
// Every new session sweeps out entries idle past the session TTL.
func (h *VehicleHandler) selector(sessionID string) *vehicle.Selector {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	entry, ok := h.selectors[sessionID]
	if !ok {
		h.evictIdle(now)
		entry = &selectorEntry{
			sel: vehicle.NewSelector(h.fitment, h.config.External.Fitment.SearchDebounce),
		}
		h.selectors[sessionID] = entry
	}
	entry.lastSeen = now
	return entry.sel
}

// evictIdle drops selectors untouched for longer than the session TTL.
// Caller holds h.mu.
func (h *VehicleHandler) evictIdle(now time.Time) {
	for id, entry := range h.selectors {
		if now.Sub(entry.lastSeen) > h.config.Session.TTL {
			delete(h.selectors, id)
		}
	}
}

func (h *VehicleHandler) snapshotResponse(c *gin.Context, sel *vehicle.Selector) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Selector state retrieved successfully",
		"data":    sel.Snapshot(),
	})
}

// GetState handles GET /vehicle
func (h *VehicleHandler) GetState(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)
	h.snapshotResponse(c, h.selector(sessionID))
}

// Input handles POST /vehicle/input
func (h *VehicleHandler) Input(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	var req InputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sel := h.selector(sessionID)
	sel.Input(req.Text)
	h.snapshotResponse(c, sel)
}

// SelectBrand handles POST /vehicle/brand
func (h *VehicleHandler) SelectBrand(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	var req SelectBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sel := h.selector(sessionID)
	sel.SelectBrand(c.Request.Context(), req.Brand)
	h.snapshotResponse(c, sel)
}

// SelectModel handles POST /vehicle/model
func (h *VehicleHandler) SelectModel(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	var req SelectModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sel := h.selector(sessionID)
	sel.SelectModel(c.Request.Context(), req.Model)
	h.snapshotResponse(c, sel)
}

// SelectYear handles POST /vehicle/year
func (h *VehicleHandler) SelectYear(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	var req SelectYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sel := h.selector(sessionID)
	sel.SelectYear(req.Year)
	h.snapshotResponse(c, sel)
}

// Back handles POST /vehicle/back
func (h *VehicleHandler) Back(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	sel := h.selector(sessionID)
	sel.Back()
	h.snapshotResponse(c, sel)
}

// Reset handles POST /vehicle/reset
func (h *VehicleHandler) Reset(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	sel := h.selector(sessionID)
	sel.Reset()
	h.snapshotResponse(c, sel)
}
