package colorspace

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/AnyUserName/sharpgrade/internal/raster"
)

// Lab planes use the CIE convention: L in [0,100], a and b unbounded.
// Conversion is sRGB with gamma, D65 white.

// ToLab converts every pixel of img to CIE-LAB.
func ToLab(img *image.NRGBA) Triple {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	out := newTriple(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
			c := colorful.Color{
				R: float64(img.Pix[i]) / 255,
				G: float64(img.Pix[i+1]) / 255,
				B: float64(img.Pix[i+2]) / 255,
			}
			l, a, b := c.Lab()
			k := y*w + x
			out[0].Pix[k], out[1].Pix[k], out[2].Pix[k] = l*100, a*100, b*100
		}
	}
	return out
}

// FromLab converts LAB planes back to an image with the bounds and alpha
// of like. Out-of-gamut colours are clamped.
func FromLab(lab Triple, like *image.NRGBA) *image.NRGBA {
	out := raster.NewLike(like)
	w := lab[0].Width
	for k := range lab[0].Pix {
		c := colorful.Lab(lab[0].Pix[k]/100, lab[1].Pix[k]/100, lab[2].Pix[k]/100).Clamped()
		i := out.PixOffset(k%w, k/w)
		out.Pix[i] = raster.ToUint8(c.R * 255)
		out.Pix[i+1] = raster.ToUint8(c.G * 255)
		out.Pix[i+2] = raster.ToUint8(c.B * 255)
	}
	return out
}
