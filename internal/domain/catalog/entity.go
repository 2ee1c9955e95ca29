// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"gorm.io/gorm"
)

// Kind discriminates the product union. Every catalog slice carries a
// different payload, but they all share the common Product head.
type Kind string

const (
	KindTire      Kind = "tire"
	KindFastener  Kind = "fastener"
	KindAccessory Kind = "accessory"
	KindChemical  Kind = "chemical"
	KindSensor    Kind = "sensor"
	KindDokatka   Kind = "dokatka"
)

// Kinds lists every catalog slice
var Kinds = []Kind{KindTire, KindFastener, KindAccessory, KindChemical, KindSensor, KindDokatka}

// Valid reports whether k names a known catalog slice
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Product is the catalog record. Upstream sources use different id types per
// slice (string vs integer); ids are normalized to strings at the load
// boundary and kept that way everywhere else. Variant payloads are stored as
// JSON columns and exactly one of them is set, matching Kind.
type Product struct {
	ID        string         `gorm:"primaryKey;size:64" json:"id"`
	Kind      Kind           `gorm:"not null;index;size:20" json:"kind"`
	Name      string         `gorm:"not null;size:255" json:"name"`
	Brand     string         `gorm:"index;size:100" json:"brand"`
	Price     int64          `gorm:"not null" json:"price"` // Price in rubles
	OldPrice  int64          `json:"old_price,omitempty"`   // Reference price before discount
	Quantity  *int           `json:"quantity,omitempty"`    // nil means stock is not tracked
	Tags      []string       `gorm:"serializer:json" json:"tags,omitempty"`
	Image     string         `gorm:"size:500" json:"image,omitempty"`
	Tire      *TireSpec      `gorm:"serializer:json" json:"tire,omitempty"`
	Fastener  *FastenerSpec  `gorm:"serializer:json" json:"fastener,omitempty"`
	Sensor    *SensorSpec    `gorm:"serializer:json" json:"sensor,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "catalog_products"
}

// TireSpec carries tire-only attributes
type TireSpec struct {
	Width    int    `json:"width"`
	Profile  int    `json:"profile"`
	Diameter string `json:"diameter"` // "r13".."r22"
	Season   string `json:"season"`   // summer, winter, allseason
	Spiked   bool   `json:"spiked"`
	RunFlat  bool   `json:"runflat"`
	Cargo    bool   `json:"cargo"`
}

// FastenerSpec carries bolt/nut attributes
type FastenerSpec struct {
	Thread   string `json:"thread"` // e.g. "M12x1.5"
	Shape    string `json:"shape"`  // cone, sphere, flat
	Color    string `json:"color,omitempty"`
	Category string `json:"category"` // bolt, nut, lock
}

// SensorSpec carries tire-pressure-sensor attributes
type SensorSpec struct {
	Compatibility []string `json:"compatibility,omitempty"` // compatible car brands
}

// TracksStock reports whether the record carries a stock quantity.
// Absent quantity means "unknown / always available".
func (p *Product) TracksStock() bool {
	return p.Quantity != nil
}

// InStock reports whether the product can be added to a cart
func (p *Product) InStock() bool {
	return p.Quantity == nil || *p.Quantity > 0
}

// Stock returns the available quantity, or -1 when stock is not tracked
func (p *Product) Stock() int {
	if p.Quantity == nil {
		return -1
	}
	return *p.Quantity
}

// DiscountPercent returns the advertised discount against the old price
func (p *Product) DiscountPercent() int {
	if p.OldPrice > 0 && p.Price < p.OldPrice {
		return int(((p.OldPrice - p.Price) * 100) / p.OldPrice)
	}
	return 0
}
