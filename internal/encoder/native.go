package encoder

import (
	"bytes"
	"context"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// NativeEncoder encodes through imaging, without external tools.
type NativeEncoder struct {
	format imaging.Format
	name   string
	exts   []string
}

// Native encoders, one per format imaging can write.
func newNativeEncoders() []Encoder {
	return []Encoder{
		&NativeEncoder{format: imaging.PNG, name: "png", exts: []string{"png"}},
		&NativeEncoder{format: imaging.JPEG, name: "jpeg", exts: []string{"jpg", "jpeg"}},
		&NativeEncoder{format: imaging.GIF, name: "gif", exts: []string{"gif"}},
		&NativeEncoder{format: imaging.BMP, name: "bmp", exts: []string{"bmp"}},
		&NativeEncoder{format: imaging.TIFF, name: "tiff", exts: []string{"tif", "tiff"}},
	}
}

func (e *NativeEncoder) Format() string       { return e.name }
func (e *NativeEncoder) Extensions() []string { return e.exts }
func (e *NativeEncoder) Available() bool      { return true }

func (e *NativeEncoder) Encode(ctx context.Context, img image.Image, quality int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(256 * 1024)

	opts := []imaging.EncodeOption{
		imaging.JPEGQuality(clampQuality(quality)),
		imaging.PNGCompressionLevel(png.BestCompression),
	}
	if err := imaging.Encode(&buf, img, e.format, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
