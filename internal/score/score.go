// Package score reduces an image to a single comparable number along one
// perceptual axis and picks the winner of a batch.
//
// Sharpness is the variance of a high-pass residual (gaussian, mean,
// median) or the wavelet quality score. Contrast is the variance of the
// 256-bin gray histogram. Brightness is the mean BCH brightness.
package score

import (
	"fmt"
	"image"

	"github.com/AnyUserName/sharpgrade/internal/colorspace"
	"github.com/AnyUserName/sharpgrade/internal/highpass"
	"github.com/AnyUserName/sharpgrade/internal/raster"
	"github.com/AnyUserName/sharpgrade/internal/wavelet"
)

// Params carries the tunables of the estimators.
type Params struct {
	Window  int // high-pass smoothing window
	Wavelet wavelet.Params
}

// DefaultParams returns window 5, block size 8, alpha 1.
func DefaultParams() Params {
	return Params{Window: highpass.DefaultWindow, Wavelet: wavelet.DefaultParams()}
}

// Validate checks the parameters the estimator of c relies on.
func (p Params) Validate(c Criterion) error {
	if c.Metric != Sharpness {
		return nil
	}
	if c.Method == Wavelet {
		return p.Wavelet.Validate()
	}
	return highpass.CheckWindow(p.Window)
}

// SharpnessScore scores img with the given estimator. Higher is sharper.
func SharpnessScore(img image.Image, m Method, p Params) (float64, error) {
	var f highpass.Filter
	switch m {
	case Gaussian:
		f = highpass.Gaussian
	case Mean:
		f = highpass.Mean
	case Median:
		f = highpass.Median
	case Wavelet:
		return wavelet.ImageQuality(img, p.Wavelet)
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnknownMethod, m)
	}
	gray, err := raster.Gray(img)
	if err != nil {
		return 0, err
	}
	return highpass.Energy(gray, f, p.Window)
}

// ContrastScore is the intensity variance of img's gray histogram.
func ContrastScore(img image.Image) (float64, error) {
	gray, err := raster.Gray(img)
	if err != nil {
		return 0, err
	}
	return HistogramVariance(Histogram(gray)), nil
}

// Histogram counts integral gray levels, saturating to [0,255].
func Histogram(gray raster.Plane) [256]int {
	var hist [256]int
	for _, v := range gray.Pix {
		hist[raster.ToUint8(v)]++
	}
	return hist
}

// HistogramVariance returns Σ(v-μ)²·h[v]/N for a level histogram.
func HistogramVariance(hist [256]int) float64 {
	n, sum := 0, 0.0
	for v, c := range hist {
		n += c
		sum += float64(v * c)
	}
	if n == 0 {
		return 0
	}
	mean := sum / float64(n)
	acc := 0.0
	for v, c := range hist {
		d := float64(v) - mean
		acc += d * d * float64(c)
	}
	return acc / float64(n)
}

// BrightnessScore is the spatial mean of the BCH brightness ‖DEF‖.
func BrightnessScore(img image.Image) (float64, error) {
	src, err := raster.FromImage(img)
	if err != nil {
		return 0, err
	}
	return colorspace.ToBrightness(colorspace.ToDEF(colorspace.ToTristimulus(src))).Mean(), nil
}
