// Package wavelet estimates perceptual sharpness from the diagonal detail
// of a one-level Haar decomposition of the Y, Cb and Cr channels.
//
// Per channel, block deviation (MH) and sliding local deviation (S) of the
// HH subband are combined into a stimulus field T. The channel average is
// mapped through a log ratio that saturates for strong stimulus, the
// border is trimmed, and the maximum of what remains is the score. Max
// pooling makes the score follow the single sharpest region of the image.
package wavelet

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/AnyUserName/sharpgrade/internal/raster"
)

const (
	// DefaultBlockSize is the tile and sliding-window edge for the T matrix.
	DefaultBlockSize = 8
	// DefaultAlpha is the MH exponent.
	DefaultAlpha = 1.0

	sumGuard = 1e-8
	mapEps   = 1e-6
)

// ErrInvalidParams is returned for a non-positive block size or alpha.
var ErrInvalidParams = errors.New("invalid wavelet parameters")

// Params tunes the estimator.
type Params struct {
	BlockSize int
	Alpha     float64
}

// DefaultParams returns block size 8 and alpha 1.
func DefaultParams() Params {
	return Params{BlockSize: DefaultBlockSize, Alpha: DefaultAlpha}
}

// Validate checks that the parameters are usable.
func (p Params) Validate() error {
	if p.BlockSize < 1 {
		return fmt.Errorf("%w: block size %d", ErrInvalidParams, p.BlockSize)
	}
	if !(p.Alpha > 0) || math.IsInf(p.Alpha, 0) {
		return fmt.Errorf("%w: alpha %v", ErrInvalidParams, p.Alpha)
	}
	return nil
}

// ImageQuality scores a colour image. img is converted to Y, Cb, Cr first.
func ImageQuality(img image.Image, p Params) (float64, error) {
	src, err := raster.FromImage(img)
	if err != nil {
		return 0, err
	}
	return Quality(raster.YCbCr(src), p)
}

// Quality scores three same-shaped luma/chroma planes.
func Quality(channels [3]raster.Plane, p Params) (float64, error) {
	smap, err := SharpnessMap(channels, p)
	if err != nil {
		return 0, err
	}
	m := p.BlockSize - 1
	trimmed := smap.Crop(m, m, smap.Width-m, smap.Height-m)
	if trimmed.Empty() {
		// too small to trim; pool over the whole map
		trimmed = smap
	}
	return trimmed.Max(), nil
}

// SharpnessMap returns the log-ratio sharpness field before trimming.
// Its shape is that of the HH subband, roughly half the input per axis.
func SharpnessMap(channels [3]raster.Plane, p Params) (raster.Plane, error) {
	if err := p.Validate(); err != nil {
		return raster.Plane{}, err
	}
	for i, c := range channels {
		if c.Empty() {
			return raster.Plane{}, fmt.Errorf("%w: channel %d is empty", raster.ErrInvalidImage, i)
		}
		if c.Width != channels[0].Width || c.Height != channels[0].Height {
			return raster.Plane{}, fmt.Errorf("%w: channel %d is %dx%d, want %dx%d", raster.ErrInvalidImage,
				i, c.Width, c.Height, channels[0].Width, channels[0].Height)
		}
	}

	var total raster.Plane
	for i, c := range channels {
		t := TMatrix(HaarDiagonal(c), p)
		if i == 0 {
			total = t
			continue
		}
		for k, v := range t.Pix {
			total.Pix[k] += v
		}
	}

	num := math.Abs(math.Log(mapEps) + mapEps)
	inv := 1 / p.Alpha
	return total.Map(func(v float64) float64 {
		v = math.Pow(v/3, inv)
		return num / (math.Abs(math.Log(v+mapEps)+mapEps) + mapEps)
	}), nil
}
