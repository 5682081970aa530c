package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ErrInvalidImage is returned before any numeric work when the input is nil,
// has a zero dimension, or its buffer does not match the declared shape.
var ErrInvalidImage = errors.New("invalid image")

// FromImage validates img and returns an independent NRGBA copy anchored at
// the origin. The caller's image is never written to.
func FromImage(img image.Image) (*image.NRGBA, error) {
	if err := Validate(img); err != nil {
		return nil, err
	}
	return imaging.Clone(img), nil
}

// Validate rejects nil images and images with a zero dimension.
func Validate(img image.Image) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("%w: empty bounds %v", ErrInvalidImage, b)
	}
	return nil
}

// FromRGB builds an opaque image from an interleaved R,G,B buffer of
// height rows by width columns.
func FromRGB(width, height int, pix []uint8) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidImage, width, height)
	}
	if len(pix) != width*height*3 {
		return nil, fmt.Errorf("%w: expected %d bytes for %dx%dx3, got %d",
			ErrInvalidImage, width*height*3, width, height, len(pix))
	}
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, j := 0, 0; i < len(pix); i, j = i+3, j+4 {
		out.Pix[j+0] = pix[i+0]
		out.Pix[j+1] = pix[i+1]
		out.Pix[j+2] = pix[i+2]
		out.Pix[j+3] = 0xff
	}
	return out, nil
}

// FromGray builds a single-channel image from a row-major intensity buffer.
func FromGray(width, height int, pix []uint8) (*image.Gray, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidImage, width, height)
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("%w: expected %d bytes for %dx%d, got %d",
			ErrInvalidImage, width*height, width, height, len(pix))
	}
	out := image.NewGray(image.Rect(0, 0, width, height))
	copy(out.Pix, pix)
	return out, nil
}

// Gray converts img to BT.601 luma rounded to integral levels
// (Y = 0.299R + 0.587G + 0.114B).
func Gray(img image.Image) (Plane, error) {
	if err := Validate(img); err != nil {
		return Plane{}, err
	}
	g := imaging.Grayscale(img)
	w, h := g.Rect.Dx(), g.Rect.Dy()
	out := NewPlane(w, h)
	for y := 0; y < h; y++ {
		row := g.Pix[y*g.Stride:]
		for x := 0; x < w; x++ {
			out.Pix[y*w+x] = float64(row[x*4])
		}
	}
	return out, nil
}

// YCbCr splits an image into JFIF luma and chroma planes, in the order
// Y, Cb, Cr.
func YCbCr(img *image.NRGBA) [3]Plane {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	planes := [3]Plane{NewPlane(w, h), NewPlane(w, h), NewPlane(w, h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
			yy, cb, cr := color.RGBToYCbCr(img.Pix[i+0], img.Pix[i+1], img.Pix[i+2])
			k := y*w + x
			planes[0].Pix[k] = float64(yy)
			planes[1].Pix[k] = float64(cb)
			planes[2].Pix[k] = float64(cr)
		}
	}
	return planes
}

// NewLike allocates an image with the bounds of src and copies its alpha
// channel, leaving colour channels zeroed.
func NewLike(src *image.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(src.Rect)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = src.Pix[i]
	}
	return out
}
