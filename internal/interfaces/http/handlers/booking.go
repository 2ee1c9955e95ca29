// internal/interfaces/http/handlers/booking.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/baxtbl4b/app-goroshina-sub001/internal/config"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/domain/booking"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/pkg/pdf"
)

// BookingHandler handles service booking endpoints: wizard drafts, price
// quotes, confirmation and receipts
type BookingHandler struct {
	bookingService *booking.Service
	pdfService     *pdf.Service
	config         *config.Config
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *booking.Service, pdfService *pdf.Service, cfg *config.Config) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		pdfService:     pdfService,
		config:         cfg,
	}
}

// DraftRequest represents a wizard draft update body
type DraftRequest struct {
	StoreID      uint           `json:"store_id"`
	Date         string         `json:"date"`
	TimeSlot     string         `json:"time_slot"`
	CustomerName string         `json:"customer_name"`
	Phone        string         `json:"phone"`
	DimensionKey string         `json:"dimension_key"`
	Quantities   map[string]int `json:"quantities"`
	PromoCode    string         `json:"promo_code"`
}

// ApplyPackageRequest represents a bundle application body
type ApplyPackageRequest struct {
	Package string `json:"package" binding:"required"`
	Count   int    `json:"count" binding:"required,min=1"`
}

// serviceType parses and validates the :type path parameter
func (h *BookingHandler) serviceType(c *gin.Context) (booking.ServiceType, bool) {
	t := booking.ServiceType(c.Param("type"))
	if !t.Valid() {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Unknown service type",
		})
		return "", false
	}
	return t, true
}

// GetDraft handles GET /booking/:type/draft
func (h *BookingHandler) GetDraft(c *gin.Context) {
	t, ok := h.serviceType(c)
	if !ok {
		return
	}
	sessionID := getOrCreateSessionID(c, h.config)

	sel := h.bookingService.GetDraft(c.Request.Context(), sessionID, t)

	c.JSON(http.StatusOK, gin.H{
		"message": "Draft retrieved successfully",
		"data":    sel,
	})
}

// SaveDraft handles PUT /booking/:type/draft
func (h *BookingHandler) SaveDraft(c *gin.Context) {
	t, ok := h.serviceType(c)
	if !ok {
		return
	}
	sessionID := getOrCreateSessionID(c, h.config)

	var req DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sel := &booking.Selection{
		ServiceType:  t,
		StoreID:      req.StoreID,
		Date:         req.Date,
		TimeSlot:     req.TimeSlot,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		DimensionKey: req.DimensionKey,
		Quantities:   req.Quantities,
		PromoCode:    req.PromoCode,
	}

	if err := h.bookingService.SaveDraft(c.Request.Context(), sessionID, sel); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save draft",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Draft saved successfully",
		"data":    sel,
	})
}

// ApplyPackage handles POST /booking/:type/package
func (h *BookingHandler) ApplyPackage(c *gin.Context) {
	t, ok := h.serviceType(c)
	if !ok {
		return
	}
	sessionID := getOrCreateSessionID(c, h.config)

	var req ApplyPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	pkg, found := booking.PackageByName(req.Package)
	if !found {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown package",
		})
		return
	}

	sel, err := h.bookingService.ApplyPackage(c.Request.Context(), sessionID, t, pkg, req.Count)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Package applied successfully",
		"data":    sel,
	})
}

// Quote handles GET /booking/:type/quote
func (h *BookingHandler) Quote(c *gin.Context) {
	t, ok := h.serviceType(c)
	if !ok {
		return
	}
	sessionID := getOrCreateSessionID(c, h.config)

	sel := h.bookingService.GetDraft(c.Request.Context(), sessionID, t)

	quote, err := h.bookingService.QuoteSelection(sel)
	if err != nil {
		var unpriced *booking.ErrUnpricedService
		if errors.As(err, &unpriced) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": err.Error(),
				"details": gin.H{
					"service_keys":  unpriced.ServiceKeys,
					"dimension_key": unpriced.DimensionKey,
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to price booking",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Quote calculated successfully",
		"data":    quote,
	})
}

// Confirm handles POST /booking/:type/confirm
func (h *BookingHandler) Confirm(c *gin.Context) {
	t, ok := h.serviceType(c)
	if !ok {
		return
	}
	sessionID := getOrCreateSessionID(c, h.config)

	order, err := h.bookingService.Confirm(c.Request.Context(), sessionID, t)
	if err != nil {
		var validation *booking.ValidationError
		if errors.As(err, &validation) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Booking is incomplete",
				"details": gin.H{
					"missing": validation.Missing,
				},
			})
			return
		}
		var unpriced *booking.ErrUnpricedService
		if errors.As(err, &unpriced) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking confirmed successfully",
		"data":    order,
	})
}

// GetOrder handles GET /booking/orders/:number
func (h *BookingHandler) GetOrder(c *gin.Context) {
	order, err := h.bookingService.GetOrder(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    order,
	})
}

// DownloadReceipt handles GET /booking/orders/:number/receipt
func (h *BookingHandler) DownloadReceipt(c *gin.Context) {
	order, err := h.bookingService.GetOrder(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	buf, err := h.pdfService.GenerateReceipt(order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate receipt",
		})
		return
	}

	filename := fmt.Sprintf("receipt-%s.pdf", order.OrderNumber)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Length", strconv.Itoa(buf.Len()))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// ListStores handles GET /booking/stores
func (h *BookingHandler) ListStores(c *gin.Context) {
	stores, err := h.bookingService.ListStores()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve stores",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stores retrieved successfully",
		"data":    stores,
	})
}
