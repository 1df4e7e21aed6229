// Package qrcode renders QR code images for table menu links.
package qrcode

import (
	"fmt"

	qr "github.com/skip2/go-qrcode"
)

// Generator encodes arbitrary content into PNG QR codes.
type Generator struct {
	level qr.RecoveryLevel
}

// NewGenerator creates a Generator with medium error correction, which
// tolerates printed codes being partially covered or smudged.
func NewGenerator() *Generator {
	return &Generator{level: qr.Medium}
}

// GeneratePNG encodes content into a square PNG of the given pixel size.
func (g *Generator) GeneratePNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("qr content must not be empty")
	}
	if size <= 0 {
		size = 256
	}

	png, err := qr.Encode(content, g.level, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}
