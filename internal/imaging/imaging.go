// Package imaging detects and validates binary image payloads before they
// are inlined into a structured record. Magic-byte sniffing keeps plain text
// from being misclassified as image data.
package imaging

import (
	"bytes"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Format is a recognized image container format.
type Format int

const (
	Unknown Format = iota
	PNG
	JPEG
	GIF
	WEBP
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case GIF:
		return "gif"
	case WEBP:
		return "webp"
	default:
		return "unknown"
	}
}

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Sniff determines the image format from leading magic bytes. Returns
// Unknown for anything that does not start with a recognized signature.
func Sniff(data []byte) Format {
	switch {
	case len(data) >= 8 && bytes.Equal(data[:8], pngMagic):
		return PNG
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return JPEG
	case len(data) >= 6 && (bytes.Equal(data[:6], []byte("GIF87a")) || bytes.Equal(data[:6], []byte("GIF89a"))):
		return GIF
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return WEBP
	default:
		return Unknown
	}
}

// IsImage reports whether data carries a recognized image signature.
func IsImage(data []byte) bool {
	return Sniff(data) != Unknown
}

// Validate sniffs and decodes the image header, returning its dimensions.
// A sniff or decode failure means the payload is unusable; callers drop the
// item and continue.
func Validate(data []byte) (width, height int, err error) {
	format := Sniff(data)
	if format == Unknown {
		return 0, 0, fmt.Errorf("unrecognized image signature")
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode %s header: %w", format, err)
	}
	return cfg.Width, cfg.Height, nil
}
