package tone

import (
	"fmt"
	"image"
	"math"

	"github.com/AnyUserName/sharpgrade/internal/colorspace"
	"github.com/AnyUserName/sharpgrade/internal/raster"
)

// LocalMeanBrightness returns the window×window mean of the BCH brightness
// around every pixel.
func LocalMeanBrightness(img image.Image, window int) (raster.Plane, error) {
	if err := checkWindow(window); err != nil {
		return raster.Plane{}, err
	}
	src, err := raster.FromImage(img)
	if err != nil {
		return raster.Plane{}, err
	}
	return raster.BoxBlur(colorspace.Decompose(src).B, window), nil
}

// Contrast rescales BCH brightness around its local mean:
// B' = avg · (B/avg)^k, clamped to [0,255]. k > 1 raises local contrast,
// k < 1 flattens it and k = 1 is the identity.
func Contrast(img image.Image, k float64, window int) (*image.NRGBA, error) {
	if err := checkContrast(k, window); err != nil {
		return nil, err
	}
	src, err := raster.FromImage(img)
	if err != nil {
		return nil, err
	}
	bch := colorspace.Decompose(src)
	bch.B = stretch(bch.B, k, window, maxBrightness)
	return bch.Compose(src), nil
}

// ContrastLab is Contrast carried out on CIE lightness, clamped to
// [0,100]; a and b are untouched.
func ContrastLab(img image.Image, k float64, window int) (*image.NRGBA, error) {
	if err := checkContrast(k, window); err != nil {
		return nil, err
	}
	src, err := raster.FromImage(img)
	if err != nil {
		return nil, err
	}
	lab := colorspace.ToLab(src)
	lab[0] = stretch(lab[0], k, window, maxLightness)
	return colorspace.FromLab(lab, src), nil
}

// AdjustContrast dispatches on strategy. A window of 0 selects the
// strategy default.
func AdjustContrast(img image.Image, s ContrastStrategy, k float64, window int) (*image.NRGBA, error) {
	if window == 0 {
		window = s.DefaultWindow()
	}
	switch s {
	case BCHStrategy:
		return Contrast(img, k, window)
	case LABStrategy:
		return ContrastLab(img, k, window)
	}
	return nil, fmt.Errorf("%w: contrast strategy %v", ErrInvalidParameter, s)
}

func stretch(v raster.Plane, k float64, window int, hi float64) raster.Plane {
	avg := raster.BoxBlur(v, window)
	out := raster.NewPlane(v.Width, v.Height)
	for i, x := range v.Pix {
		ratio := math.Max(x/(avg.Pix[i]+guard), 0)
		out.Pix[i] = raster.ClampFloat(avg.Pix[i]*math.Pow(ratio, k), 0, hi)
	}
	return out
}

func checkContrast(k float64, window int) error {
	if err := finite("contrast strength", k); err != nil {
		return err
	}
	if k <= 0 {
		return fmt.Errorf("%w: contrast strength must be > 0, got %v", ErrInvalidParameter, k)
	}
	return checkWindow(window)
}

func checkWindow(window int) error {
	if window < 1 {
		return fmt.Errorf("%w: window must be >= 1, got %d", ErrInvalidParameter, window)
	}
	return nil
}
