// Package encoder writes adjusted images in the format implied by the
// output file name.
package encoder

import (
	"context"
	"errors"
	"image"
)

// ErrUnsupported is returned when no available encoder handles a format.
var ErrUnsupported = errors.New("unsupported output format")

// DefaultQuality is used when the caller passes a quality outside 1-100.
const DefaultQuality = 90

// Encoder encodes an image to a specific format.
type Encoder interface {
	// Format returns the output format name (e.g. "jpeg", "webp", "png").
	Format() string

	// Extensions returns the file extensions, without dot, the format is
	// written under. The first one is canonical.
	Extensions() []string

	// Encode converts the image to bytes at the given quality (1-100).
	// Lossless formats ignore quality.
	Encode(ctx context.Context, img image.Image, quality int) ([]byte, error)

	// Available returns true if the encoder is ready to use.
	// External encoders (cwebp, avifenc) may not be installed.
	Available() bool
}

func clampQuality(q int) int {
	if q <= 0 || q > 100 {
		return DefaultQuality
	}
	return q
}
