package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxtbl4b/app-goroshina-sub001/internal/config"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/domain/booking"
)

func testOrder() *booking.Order {
	return &booking.Order{
		OrderNumber:  "BK-20260301-0001",
		ServiceType:  booking.ServiceTireMounting,
		Date:         "2026-03-01",
		TimeSlot:     "12:00",
		CustomerName: "Иван",
		Phone:        "+79990000000",
		Lines: []booking.LineItem{
			{ServiceKey: "balancing", Quantity: 4, UnitPrice: 550, LineTotal: 2200},
		},
		TotalAmount: 2200,
		Store:       booking.StoreLocation{Name: "Горошина Центр", Address: "ул. Ленина, 1"},
	}
}

func TestGenerateHTMLUsesEmbeddedDefault(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "Горошина"
	cfg.Booking.ReceiptTemplate = filepath.Join(t.TempDir(), "missing.html")

	svc := NewService(cfg)
	html, err := svc.generateHTML(ReceiptData{
		ReceiptNumber: "RCP-BK-20260301-0001",
		ReceiptDate:   "01.03.2026",
		Order:         testOrder(),
		ShopName:      cfg.App.Name,
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Горошина")
	assert.Contains(t, html, "BK-20260301-0001")
	assert.Contains(t, html, "balancing")
	assert.Contains(t, html, "2200")
}

func TestGenerateHTMLUsesConfiguredTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipt.html")
	custom := `<html><body>custom layout {{.ReceiptNumber}}</body></html>`
	require.NoError(t, os.WriteFile(path, []byte(custom), 0o644))

	cfg := &config.Config{}
	cfg.Booking.ReceiptTemplate = path

	svc := NewService(cfg)
	html, err := svc.generateHTML(ReceiptData{ReceiptNumber: "RCP-1", Order: testOrder()})
	require.NoError(t, err)

	assert.Contains(t, html, "custom layout RCP-1")
	assert.NotContains(t, html, "Квитанция")
}

func TestUnparsableTemplateFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipt.html")
	require.NoError(t, os.WriteFile(path, []byte(`{{.Broken`), 0o644))

	cfg := &config.Config{}
	cfg.Booking.ReceiptTemplate = path

	svc := NewService(cfg)
	html, err := svc.generateHTML(ReceiptData{ReceiptNumber: "RCP-2", Order: testOrder()})
	require.NoError(t, err)

	assert.Contains(t, html, "Квитанция")
}
