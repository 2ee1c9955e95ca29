// internal/interfaces/http/handlers/favorites.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baxtbl4b/app-goroshina-sub001/internal/config"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/domain/catalog"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/domain/favorites"
)

// FavoritesHandler handles endpoints for one product-set store. The same
// handler serves /favorites and /comparison: both are the same domain-tagged
// store under different key namespaces.
type FavoritesHandler struct {
	store          *favorites.Store
	catalogService *catalog.Service
	config         *config.Config
}

// NewFavoritesHandler creates a handler bound to one domain-tagged store
func NewFavoritesHandler(store *favorites.Store, catalogService *catalog.Service, cfg *config.Config) *FavoritesHandler {
	return &FavoritesHandler{
		store:          store,
		catalogService: catalogService,
		config:         cfg,
	}
}

// ToggleRequest represents a toggle request body
type ToggleRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// List handles GET /favorites
func (h *FavoritesHandler) List(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	entries := h.store.List(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Items retrieved successfully",
		"data": gin.H{
			"items": entries,
			"count": len(entries),
		},
	})
}

// Toggle handles POST /favorites/toggle
func (h *FavoritesHandler) Toggle(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, err := h.catalogService.GetProduct(req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve product",
		})
		return
	}

	active, err := h.store.Toggle(c.Request.Context(), sessionID, product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update items",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item toggled successfully",
		"data": gin.H{
			"product_id": product.ID,
			"active":     active,
		},
	})
}

// Check handles GET /favorites/check/:id
func (h *FavoritesHandler) Check(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	c.JSON(http.StatusOK, gin.H{
		"message": "Item state retrieved successfully",
		"data": gin.H{
			"product_id": c.Param("id"),
			"active":     h.store.IsFavorite(c.Request.Context(), sessionID, c.Param("id")),
		},
	})
}

// Count handles GET /favorites/count
func (h *FavoritesHandler) Count(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	c.JSON(http.StatusOK, gin.H{
		"message": "Item count retrieved successfully",
		"data": gin.H{
			"count": h.store.Count(c.Request.Context(), sessionID),
		},
	})
}
