// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/baxtbl4b/app-goroshina-sub001/internal/domain/catalog"
)

// Domain tags cart snapshots and change events
const Domain = "cart"

// VehicleContext captures the car a product was picked for, e.g. a pressure
// sensor bought for a specific brand/model/year.
type VehicleContext struct {
	CarBrand string `json:"carBrand"`
	CarModel string `json:"carModel"`
	CarYear  int    `json:"carYear"`
}

// Line is one (product, quantity) pair in the cart. Product fields are
// snapshotted at add time so the cart stays renderable even if the catalog
// record changes or disappears.
type Line struct {
	ProductID string          `json:"id"`
	Kind      catalog.Kind    `json:"kind"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand,omitempty"`
	Price     int64           `json:"price"`
	Image     string          `json:"image,omitempty"`
	Quantity  int             `json:"quantity"`
	Vehicle   *VehicleContext `json:"vehicle,omitempty"`
	AddedAt   time.Time       `json:"added_at"`
}

// Snapshot is the full persisted cart state for one session. Every mutation
// rewrites the whole snapshot; observers re-read it on notification.
type Snapshot struct {
	SessionID string    `json:"session_id"`
	Lines     []Line    `json:"lines"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Totals represents calculated cart totals
type Totals struct {
	LineCount     int   `json:"line_count"`     // Number of distinct lines
	TotalQuantity int   `json:"total_quantity"` // Sum of all quantities
	TotalPrice    int64 `json:"total_price"`    // Sum of quantity x unit price
}

// Totals computes running totals over the snapshot
func (s *Snapshot) Totals() Totals {
	var t Totals
	t.LineCount = len(s.Lines)
	for _, line := range s.Lines {
		t.TotalQuantity += line.Quantity
		t.TotalPrice += line.Price * int64(line.Quantity)
	}
	return t
}

// QuantityOf returns the quantity for a product, 0 when absent
func (s *Snapshot) QuantityOf(productID string) int {
	for _, line := range s.Lines {
		if line.ProductID == productID {
			return line.Quantity
		}
	}
	return 0
}
