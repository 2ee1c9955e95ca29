// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"github.com/baxtbl4b/app-goroshina-sub001/internal/config"
	"github.com/baxtbl4b/app-goroshina-sub001/internal/domain/booking"
)

// Service handles PDF generation
type Service struct {
	config   *config.Config
	template *template.Template
}

// NewService creates a new PDF service. The receipt layout is read from the
// configured template path; when the file is missing or unparsable the
// embedded default is used.
func NewService(cfg *config.Config) *Service {
	return &Service{
		config:   cfg,
		template: loadReceiptTemplate(cfg.Booking.ReceiptTemplate),
	}
}

func loadReceiptTemplate(path string) *template.Template {
	if path != "" {
		if raw, err := os.ReadFile(path); err == nil {
			if tmpl, err := template.New("receipt").Parse(string(raw)); err == nil {
				return tmpl
			}
		}
	}
	return template.Must(template.New("receipt").Parse(defaultReceiptTemplate))
}

// ReceiptData holds the template inputs for a booking receipt
type ReceiptData struct {
	ReceiptNumber string
	ReceiptDate   string
	Order         *booking.Order
	ShopName      string
}

// GenerateReceipt renders a PDF receipt for a confirmed booking
func (s *Service) GenerateReceipt(order *booking.Order) (*bytes.Buffer, error) {
	data := ReceiptData{
		ReceiptNumber: fmt.Sprintf("RCP-%s", order.OrderNumber),
		ReceiptDate:   time.Now().Format("02.01.2006"),
		Order:         order,
		ShopName:      s.config.App.Name,
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

func (s *Service) generateHTML(data ReceiptData) (string, error) {
	var buf bytes.Buffer
	if err := s.template.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

const defaultReceiptTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Arial, sans-serif; color: #222; }
  h1 { font-size: 20px; }
  table { width: 100%; border-collapse: collapse; margin-top: 16px; }
  th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
  .total { font-weight: bold; }
  .meta { margin-top: 12px; color: #555; }
</style>
</head>
<body>
  <h1>{{.ShopName}} — подтверждение записи</h1>
  <div class="meta">
    <div>Квитанция: {{.ReceiptNumber}} от {{.ReceiptDate}}</div>
    <div>Заказ: {{.Order.OrderNumber}}</div>
    <div>Услуга: {{.Order.ServiceType}}</div>
    <div>Дата и время: {{.Order.Date}} {{.Order.TimeSlot}}</div>
    <div>Центр: {{.Order.Store.Name}}, {{.Order.Store.Address}}</div>
    <div>Клиент: {{.Order.CustomerName}}, {{.Order.Phone}}</div>
  </div>
  <table>
    <tr><th>Услуга</th><th>Кол-во</th><th>Цена</th><th>Сумма</th></tr>
    {{range .Order.Lines}}
    <tr>
      <td>{{.ServiceKey}}</td>
      <td>{{.Quantity}}</td>
      <td>{{.UnitPrice}}</td>
      <td>{{.LineTotal}}</td>
    </tr>
    {{end}}
    {{if .Order.DiscountRate}}
    <tr><td colspan="3">Скидка по промокоду</td><td>{{.Order.DiscountRate}}%</td></tr>
    {{end}}
    <tr class="total"><td colspan="3">Итого</td><td>{{.Order.TotalAmount}}</td></tr>
  </table>
</body>
</html>`
