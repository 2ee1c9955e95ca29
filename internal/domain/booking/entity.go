// internal/domain/booking/entity.go
package booking

import (
	"time"

	"gorm.io/gorm"
)

// ServiceType names a bookable physical service
type ServiceType string

const (
	ServicePainting      ServiceType = "painting"
	ServiceStudding      ServiceType = "studding"
	ServiceSoundproofing ServiceType = "soundproofing"
	ServiceTireMounting  ServiceType = "tire-mounting"
	ServiceTireStorage   ServiceType = "tire-storage"
)

// ServiceTypes lists every bookable service
var ServiceTypes = []ServiceType{
	ServicePainting,
	ServiceStudding,
	ServiceSoundproofing,
	ServiceTireMounting,
	ServiceTireStorage,
}

// Valid reports whether t names a known service
func (t ServiceType) Valid() bool {
	for _, known := range ServiceTypes {
		if t == known {
			return true
		}
	}
	return false
}

// PricingTable maps serviceKey -> dimensionKey -> unit price in rubles.
// The dimension is wheel diameter ("r13".."r22") for wheel work and paint
// type for painting.
type PricingTable map[string]map[string]int64

// LineItem is one priced service line in a booking
type LineItem struct {
	ServiceKey string `json:"service_key"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
	LineTotal  int64  `json:"line_total"`
}

// Breakdown is the priced result of a quantities map
type Breakdown struct {
	Lines []LineItem `json:"lines"`
	Total int64      `json:"total"`
}

// Selection is the in-progress wizard state for one service booking.
// It is persisted as a draft under a feature-prefixed key and discarded
// once the order record is created.
type Selection struct {
	ServiceType  ServiceType    `json:"service_type"`
	StoreID      uint           `json:"store_id"`
	Date         string         `json:"date"` // "2006-01-02"
	TimeSlot     string         `json:"time_slot"` // "15:04"
	CustomerName string         `json:"customer_name"`
	Phone        string         `json:"phone"`
	DimensionKey string         `json:"dimension_key"`
	Quantities   map[string]int `json:"quantities"`
	PromoCode    string         `json:"promo_code,omitempty"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// StoreLocation is a physical service center a booking is placed at
type StoreLocation struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;size:255" json:"name"`
	Address   string         `gorm:"not null;size:500" json:"address"`
	Phone     string         `gorm:"size:30" json:"phone"`
	OpenHour  int            `gorm:"default:9" json:"open_hour"`
	CloseHour int            `gorm:"default:21" json:"close_hour"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (StoreLocation) TableName() string {
	return "store_locations"
}

// Order is the confirmed booking record written once a wizard completes
type Order struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	OrderNumber  string         `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	ServiceType  ServiceType    `gorm:"not null;size:30;index" json:"service_type"`
	StoreID      uint           `gorm:"not null;index" json:"store_id"`
	Date         string         `gorm:"not null;size:10" json:"date"`
	TimeSlot     string         `gorm:"not null;size:5" json:"time_slot"`
	CustomerName string         `gorm:"not null;size:255" json:"customer_name"`
	Phone        string         `gorm:"not null;size:30" json:"phone"`
	DimensionKey string         `gorm:"size:30" json:"dimension_key"`
	Lines        []LineItem     `gorm:"serializer:json" json:"lines"`
	PromoCode    string         `gorm:"size:50" json:"promo_code,omitempty"`
	DiscountRate int            `gorm:"default:0" json:"discount_rate"`
	TotalAmount  int64          `gorm:"not null" json:"total_amount"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Store StoreLocation `gorm:"foreignKey:StoreID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"store"`
}

// TableName overrides the table name
func (Order) TableName() string {
	return "booking_orders"
}
