// Package highpass isolates fine detail in a grayscale plane by subtracting
// a smoothed copy from it.
//
// The plane is treated as 8-bit storage: the smoothed copy is rounded to
// integral levels and the difference saturates at 0, so only pixels
// brighter than their neighbourhood contribute.
package highpass

import (
	"errors"
	"fmt"
	"math"

	"github.com/AnyUserName/sharpgrade/internal/raster"
)

// DefaultWindow is the smoothing window used by the sharpness scorer.
const DefaultWindow = 5

// ErrInvalidWindow is returned for windows that are not odd and positive.
var ErrInvalidWindow = errors.New("window must be a positive odd integer")

// Filter computes original minus smoothed(original).
type Filter func(gray raster.Plane, window int) (raster.Plane, error)

// Gaussian subtracts a Gaussian-weighted window×window blur.
func Gaussian(gray raster.Plane, window int) (raster.Plane, error) {
	return subtract(gray, window, raster.GaussianBlur)
}

// Mean subtracts an unweighted box blur.
func Mean(gray raster.Plane, window int) (raster.Plane, error) {
	return subtract(gray, window, raster.BoxBlur)
}

// Median subtracts the per-window median.
func Median(gray raster.Plane, window int) (raster.Plane, error) {
	return subtract(gray, window, raster.MedianBlur)
}

// CheckWindow returns ErrInvalidWindow unless window is positive and odd.
func CheckWindow(window int) error {
	if window < 1 || window%2 == 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWindow, window)
	}
	return nil
}

func subtract(gray raster.Plane, window int, smooth func(raster.Plane, int) raster.Plane) (raster.Plane, error) {
	if err := CheckWindow(window); err != nil {
		return raster.Plane{}, err
	}
	if gray.Empty() {
		return raster.Plane{}, fmt.Errorf("%w: empty plane", raster.ErrInvalidImage)
	}
	s := smooth(gray, window)
	out := raster.NewPlane(gray.Width, gray.Height)
	for i, v := range gray.Pix {
		out.Pix[i] = math.Max(v-math.Round(s.Pix[i]), 0)
	}
	return out, nil
}

// Energy applies f and returns the population variance of the result.
func Energy(gray raster.Plane, f Filter, window int) (float64, error) {
	hf, err := f(gray, window)
	if err != nil {
		return 0, err
	}
	return hf.Variance(), nil
}
