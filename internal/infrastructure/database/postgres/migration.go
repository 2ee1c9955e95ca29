// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/baxtbl4b/app-goroshina-sub001/internal/domain/booking"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/domain/catalog"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/domain/user"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Define all models that need migration in dependency order
	models := []interface{}{
		// User domain
		&user.User{},

		// Catalog domain
		&catalog.Product{},

		// Booking domain
		&booking.StoreLocation{},
		&booking.Order{},
	}

	// Run auto-migration for each model
	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_phone_active ON users(phone, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",

		// Catalog indexes
		"CREATE INDEX IF NOT EXISTS idx_catalog_products_kind_brand ON catalog_products(kind, brand)",
		"CREATE INDEX IF NOT EXISTS idx_catalog_products_price ON catalog_products(price)",
		"CREATE INDEX IF NOT EXISTS idx_catalog_products_created_at ON catalog_products(created_at ASC)",

		// Booking indexes
		"CREATE INDEX IF NOT EXISTS idx_booking_orders_store_date ON booking_orders(store_id, date)",
		"CREATE INDEX IF NOT EXISTS idx_booking_orders_phone ON booking_orders(phone)",
		"CREATE INDEX IF NOT EXISTS idx_booking_orders_created_at ON booking_orders(created_at DESC)",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	log.Println("✅ Database indexes created successfully")
	return nil
}

// SeedInitialData seeds development data: service centers and a small
// catalog slice per kind
func (m *Migration) SeedInitialData() error {
	log.Println("🔄 Seeding initial data...")

	if err := m.seedStores(); err != nil {
		return err
	}
	if err := m.seedCatalog(); err != nil {
		return err
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedStores() error {
	var count int64
	m.db.Model(&booking.StoreLocation{}).Count(&count)
	if count > 0 {
		return nil
	}

	stores := []booking.StoreLocation{
		{Name: "Горошина на Ленина", Address: "ул. Ленина, 42", Phone: "+79990000001", OpenHour: 9, CloseHour: 21, IsActive: true},
		{Name: "Горошина на Московской", Address: "ул. Московская, 17", Phone: "+79990000002", OpenHour: 9, CloseHour: 21, IsActive: true},
	}

	for i := range stores {
		if err := m.db.Create(&stores[i]).Error; err != nil {
			return fmt.Errorf("failed to seed store %q: %w", stores[i].Name, err)
		}
	}

	return nil
}

func (m *Migration) seedCatalog() error {
	var count int64
	m.db.Model(&catalog.Product{}).Count(&count)
	if count > 0 {
		return nil
	}

	qty := func(n int) *int { return &n }

	products := []catalog.Product{
		{
			ID: "tire-nk-185-65-15-w", Kind: catalog.KindTire, Name: "Nordman 7 185/65 R15",
			Brand: "Nokian", Price: 5200, OldPrice: 5900, Quantity: qty(16),
			Tire: &catalog.TireSpec{Width: 185, Profile: 65, Diameter: "r15", Season: "winter", Spiked: true},
		},
		{
			ID: "tire-cn-205-55-16-s", Kind: catalog.KindTire, Name: "Cordiant Sport 3 205/55 R16",
			Brand: "Cordiant", Price: 4100, Quantity: qty(8),
			Tire: &catalog.TireSpec{Width: 205, Profile: 55, Diameter: "r16", Season: "summer"},
		},
		{
			ID: "fast-ax-m12-cone-black", Kind: catalog.KindFastener, Name: "Болт AXIOM M12x1.5 конус",
			Brand: "AXIOM", Price: 180, Quantity: qty(200), Tags: []string{"bolt"},
			Fastener: &catalog.FastenerSpec{Thread: "M12x1.5", Shape: "cone", Color: "black", Category: "bolt"},
		},
		{
			ID: "fast-ax-m14-sphere", Kind: catalog.KindFastener, Name: "Гайка AXIOM M14x1.5 сфера",
			Brand: "AXIOM", Price: 210, Quantity: qty(120), Tags: []string{"nut"},
			Fastener: &catalog.FastenerSpec{Thread: "M14x1.5", Shape: "sphere", Category: "nut"},
		},
		{
			ID: "sensor-tpms-a001", Kind: catalog.KindSensor, Name: "Датчик давления TPMS-A1",
			Brand: "Autel", Price: 2900, Quantity: qty(25),
			Sensor: &catalog.SensorSpec{Compatibility: []string{"Kia", "Hyundai", "Toyota"}},
		},
		{
			ID: "dokatka-r15-4x100", Kind: catalog.KindDokatka, Name: "Докатка R15 4x100",
			Brand: "Dorezerv", Price: 6500, Quantity: qty(3), Tags: []string{"r15"},
		},
		{
			ID: "chem-felix-wheel", Kind: catalog.KindChemical, Name: "Очиститель дисков Felix",
			Brand: "Felix", Price: 450, Tags: []string{"cleaner"},
		},
	}

	for i := range products {
		if err := m.db.Create(&products[i]).Error; err != nil {
			return fmt.Errorf("failed to seed product %q: %w", products[i].ID, err)
		}
	}

	return nil
}

// GetTableInfo logs row counts for the main tables in development
func (m *Migration) GetTableInfo() {
	tables := []string{"users", "catalog_products", "store_locations", "booking_orders"}
	for _, table := range tables {
		var count int64
		m.db.Table(table).Count(&count)
		log.Printf("📊 %s: %d rows", table, count)
	}
}
