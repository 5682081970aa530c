package colorspace

import (
	"image"

	"github.com/AnyUserName/sharpgrade/internal/raster"
)

// Triple is three same-shaped planes holding one colour model's components.
type Triple [3]raster.Plane

func newTriple(w, h int) Triple {
	return Triple{raster.NewPlane(w, h), raster.NewPlane(w, h), raster.NewPlane(w, h)}
}

// ToTristimulus converts every pixel of img to XYZ.
func ToTristimulus(img *image.NRGBA) Triple {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	out := newTriple(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
			k := y*w + x
			out[0].Pix[k], out[1].Pix[k], out[2].Pix[k] = Tristimulus(img.Pix[i], img.Pix[i+1], img.Pix[i+2])
		}
	}
	return out
}

// ToDEF applies XYZToDEF per pixel.
func ToDEF(xyz Triple) Triple {
	return apply(&XYZToDEF, xyz)
}

// DEFToTristimulus applies DEFToXYZ per pixel.
func DEFToTristimulus(def Triple) Triple {
	return apply(&DEFToXYZ, def)
}

func apply(m *Matrix3, in Triple) Triple {
	out := newTriple(in[0].Width, in[0].Height)
	for k := range in[0].Pix {
		out[0].Pix[k], out[1].Pix[k], out[2].Pix[k] = m.Apply(in[0].Pix[k], in[1].Pix[k], in[2].Pix[k])
	}
	return out
}

// ToBrightness returns the per-pixel Euclidean norm of a DEF triple.
func ToBrightness(def Triple) raster.Plane {
	out := raster.NewPlane(def[0].Width, def[0].Height)
	for k := range out.Pix {
		out.Pix[k] = Norm(def[0].Pix[k], def[1].Pix[k], def[2].Pix[k])
	}
	return out
}

// ToChromaHue returns the chroma and hue angle planes.
func ToChromaHue(def Triple, b raster.Plane) (c, h raster.Plane) {
	c = raster.NewPlane(b.Width, b.Height)
	h = raster.NewPlane(b.Width, b.Height)
	for k := range b.Pix {
		c.Pix[k], h.Pix[k] = ChromaHue(def[0].Pix[k], def[1].Pix[k], def[2].Pix[k], b.Pix[k])
	}
	return c, h
}

// FromBCHPlanes rebuilds DEF planes from brightness, chroma and hue.
func FromBCHPlanes(b, c, h raster.Plane) Triple {
	out := newTriple(b.Width, b.Height)
	for k := range b.Pix {
		out[0].Pix[k], out[1].Pix[k], out[2].Pix[k] = FromBCH(b.Pix[k], c.Pix[k], h.Pix[k])
	}
	return out
}

// ToRGB converts XYZ planes to an image with the bounds and alpha of like.
func ToRGB(xyz Triple, like *image.NRGBA) *image.NRGBA {
	out := raster.NewLike(like)
	w := xyz[0].Width
	for k := range xyz[0].Pix {
		i := out.PixOffset(k%w, k/w)
		out.Pix[i], out.Pix[i+1], out.Pix[i+2] = RGB(xyz[0].Pix[k], xyz[1].Pix[k], xyz[2].Pix[k])
	}
	return out
}

// BCH bundles the decomposition used by the tone operators.
type BCH struct {
	B, C, H raster.Plane
}

// Decompose runs RGB → XYZ → DEF → BCH.
func Decompose(img *image.NRGBA) BCH {
	def := ToDEF(ToTristimulus(img))
	b := ToBrightness(def)
	c, h := ToChromaHue(def, b)
	return BCH{B: b, C: c, H: h}
}

// Compose runs BCH → DEF → XYZ → RGB; like supplies bounds and alpha.
func (v BCH) Compose(like *image.NRGBA) *image.NRGBA {
	return ToRGB(DEFToTristimulus(FromBCHPlanes(v.B, v.C, v.H)), like)
}
