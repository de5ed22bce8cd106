package services

import (
	"fmt"

	"github.com/brewtable/brewtable-api/config"
	qrcode "github.com/skip2/go-qrcode"
)

// QRService renders the QR codes printed on café tables. Each code encodes
// the public ordering URL with the table number baked in, so a scan drops
// the customer straight onto that table's menu.
type QRService struct {
	baseURL string
}

// NewQRService creates a QR service using the configured ordering base URL
func NewQRService(cfg *config.Config) *QRService {
	return &QRService{baseURL: cfg.OrderBaseURL}
}

// TableURL returns the ordering URL a table's QR code encodes.
func (s *QRService) TableURL(tableNumber int) string {
	return fmt.Sprintf("%s?table=%d", s.baseURL, tableNumber)
}

// TablePNG renders the QR code for a table as a PNG of the given size in
// pixels. Medium error correction is plenty for a laminated card on a
// table.
func (s *QRService) TablePNG(tableNumber, size int) ([]byte, error) {
	png, err := qrcode.Encode(s.TableURL(tableNumber), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code for table %d: %w", tableNumber, err)
	}
	return png, nil
}
