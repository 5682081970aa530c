package tone

import (
	"fmt"
	"image"
	"math"

	"github.com/AnyUserName/sharpgrade/internal/colorspace"
	"github.com/AnyUserName/sharpgrade/internal/raster"
)

// Brightness applies an exposure change of ev stops in BCH space:
// B' = clamp(2^ev · B, 0, 255) with chroma and hue unchanged.
func Brightness(img image.Image, ev float64) (*image.NRGBA, error) {
	if err := finite("ev", ev); err != nil {
		return nil, err
	}
	src, err := raster.FromImage(img)
	if err != nil {
		return nil, err
	}
	bch := colorspace.Decompose(src)
	gain := math.Pow(2, ev)
	bch.B = bch.B.Map(func(b float64) float64 {
		return raster.ClampFloat(gain*b, 0, maxBrightness)
	})
	return bch.Compose(src), nil
}

// ScaleRGB multiplies every colour channel by m0 without any colour-space
// conversion. Alpha is kept.
func ScaleRGB(img image.Image, m0 float64) (*image.NRGBA, error) {
	if err := finite("multiplier", m0); err != nil {
		return nil, err
	}
	if m0 < 0 {
		return nil, fmt.Errorf("%w: multiplier must be non-negative, got %v", ErrInvalidParameter, m0)
	}
	src, err := raster.FromImage(img)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i+0] = raster.ToUint8(float64(src.Pix[i+0]) * m0)
		src.Pix[i+1] = raster.ToUint8(float64(src.Pix[i+1]) * m0)
		src.Pix[i+2] = raster.ToUint8(float64(src.Pix[i+2]) * m0)
	}
	return src, nil
}

// AdjustBrightness dispatches on mode. value is an ev for BCHMode and a
// multiplier for LinearMode.
func AdjustBrightness(img image.Image, mode BrightnessMode, value float64) (*image.NRGBA, error) {
	switch mode {
	case BCHMode:
		return Brightness(img, value)
	case LinearMode:
		return ScaleRGB(img, value)
	}
	return nil, fmt.Errorf("%w: brightness mode %v", ErrInvalidParameter, mode)
}
