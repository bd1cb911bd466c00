package services

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRCodeService renders order-tracking QR codes
type QRCodeService interface {
	// GenerateOrderQR returns a PNG QR code pointing at the order tracking page
	GenerateOrderQR(orderID string) ([]byte, error)
}

var qrCodeServiceInstance QRCodeService

// InitQRCodeService initializes the QR code service with the public base URL
func InitQRCodeService(baseURL string) QRCodeService {
	qrCodeServiceInstance = &DefaultQRCodeService{BaseURL: baseURL}
	return qrCodeServiceInstance
}

// GetQRCodeService returns the initialized QR code service instance
func GetQRCodeService() QRCodeService {
	return qrCodeServiceInstance
}

// SetQRCodeService sets the QR code service instance (primarily for testing)
func SetQRCodeService(service QRCodeService) {
	qrCodeServiceInstance = service
}

// DefaultQRCodeService encodes tracking URLs with skip2/go-qrcode
type DefaultQRCodeService struct {
	BaseURL string
}

// GenerateOrderQR encodes the tracking URL for an order as a 256px PNG
func (s *DefaultQRCodeService) GenerateOrderQR(orderID string) ([]byte, error) {
	trackingURL := fmt.Sprintf("%s/track?order_id=%s", s.BaseURL, orderID)
	return qrcode.Encode(trackingURL, qrcode.Medium, 256)
}
