package service

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// qrSize is the side length in pixels of generated QR codes.
const qrSize = 256

// QRService renders QR codes pointing at public storefront pages.
type QRService struct {
	baseURL string
}

// NewQRService creates a new QRService. baseURL is the externally
// reachable origin, e.g. https://tavolo.example.com.
func NewQRService(baseURL string) *QRService {
	return &QRService{baseURL: strings.TrimRight(baseURL, "/")}
}

// StorefrontURL returns the public URL for a restaurant slug.
func (s *QRService) StorefrontURL(slug string) string {
	return fmt.Sprintf("%s/public/%s", s.baseURL, slug)
}

// StorefrontQR renders a PNG QR code for a restaurant's storefront.
func (s *QRService) StorefrontQR(slug string) ([]byte, error) {
	png, err := qrcode.Encode(s.StorefrontURL(slug), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
