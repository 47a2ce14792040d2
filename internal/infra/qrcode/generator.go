// Package qrcode renders discount codes as scannable PNG images.
package qrcode

import (
	qr "github.com/skip2/go-qrcode"

	"workbuddy/config"
	"workbuddy/internal/domain/service"
	"workbuddy/internal/errors"
)

const defaultSize = 256

type generator struct {
	size int
}

// NewGenerator builds a CodeImageService with the configured default size.
func NewGenerator(cfg *config.Config) service.CodeImageService {
	size := defaultSize
	if cfg.QRCode != nil && cfg.QRCode.Size > 0 {
		size = cfg.QRCode.Size
	}

	return &generator{size: size}
}

// GeneratePNG returns a PNG-encoded QR image for the payload. A size of
// zero falls back to the configured default.
func (g *generator) GeneratePNG(payload string, size int) ([]byte, error) {
	if payload == "" {
		return nil, errors.New("qr payload must not be empty")
	}
	if size <= 0 {
		size = g.size
	}

	png, err := qr.Encode(payload, qr.Medium, size)
	if err != nil {
		return nil, errors.Wrap(err, "encode qr code")
	}

	return png, nil
}
