// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baxtbl4b/app-goroshina-sub001/internal/config"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/domain/cart"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/domain/catalog"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartStore *cart.Store
	config    *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(store *cart.Store, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartStore: store,
		config:    cfg,
	}
}

// AddItemRequest represents an add-to-cart request body
type AddItemRequest struct {
	ProductID string               `json:"product_id" binding:"required"`
	Vehicle   *cart.VehicleContext `json:"vehicle,omitempty"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	snapshot := h.cartStore.Get(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    snapshot,
		"totals":  snapshot.Totals(),
	})
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	snapshot, err := h.cartStore.Add(c.Request.Context(), sessionID, req.ProductID, req.Vehicle)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrProductNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Product not found",
			})
		case errors.Is(err, cart.ErrOutOfStock):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Product out of stock",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update cart",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    snapshot,
		"totals":  snapshot.Totals(),
	})
}

// RemoveItem handles DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	snapshot, err := h.cartStore.Remove(c.Request.Context(), sessionID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    snapshot,
		"totals":  snapshot.Totals(),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	if err := h.cartStore.Clear(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}

// GetCartCount handles GET /cart/count
//
// The header badge polls this endpoint, so it returns the bare count
// instead of the full snapshot.
func (h *CartHandler) GetCartCount(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	count := h.cartStore.TotalItemCount(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data": gin.H{
			"count": count,
		},
	})
}
