package service

// CodeImageService renders a discount code as a scannable image.
type CodeImageService interface {
	// GeneratePNG returns a PNG-encoded QR image for the payload.
	GeneratePNG(payload string, size int) ([]byte, error)
}
