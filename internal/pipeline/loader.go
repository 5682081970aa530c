package pipeline

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Loaded is a decoded input together with its on-disk dimensions.
type Loaded struct {
	Image  image.Image
	Width  int // before any downscale
	Height int
}

// Open decodes the image at path, applying its EXIF orientation. When
// maxDim > 0 images larger than maxDim on either side are shrunk to fit.
func Open(path string, maxDim int) (Loaded, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return Loaded{}, fmt.Errorf("decode %s: %w", path, err)
	}
	b := img.Bounds()
	out := Loaded{Image: img, Width: b.Dx(), Height: b.Dy()}
	if maxDim > 0 && (out.Width > maxDim || out.Height > maxDim) {
		out.Image = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}
	return out, nil
}
