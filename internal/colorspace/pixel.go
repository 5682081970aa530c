package colorspace

import (
	"math"

	"github.com/AnyUserName/sharpgrade/internal/raster"
)

// Tristimulus maps an 8-bit RGB triple to XYZ.
func Tristimulus(r, g, b uint8) (x, y, z float64) {
	return RGBToXYZ.Apply(float64(r)/255, float64(g)/255, float64(b)/255)
}

// DEF maps XYZ to the DEF perceptual code.
func DEF(x, y, z float64) (d, e, f float64) {
	return XYZToDEF.Apply(x, y, z)
}

// Norm is the BCH brightness of a DEF triple.
func Norm(d, e, f float64) float64 {
	return math.Sqrt(d*d + e*e + f*f)
}

// ChromaHue returns the chroma and hue angles of a DEF triple with
// brightness b. Achromatic pixels (sin C below Epsilon) get hue 0.
func ChromaHue(d, e, f, b float64) (c, h float64) {
	c = math.Acos(raster.ClampFloat(d/(b+Epsilon), -1, 1))
	if math.Sin(c) > Epsilon {
		h = math.Atan2(f, e)
	}
	return c, h
}

// FromBCH is the inverse of (Norm, ChromaHue).
func FromBCH(b, c, h float64) (d, e, f float64) {
	sc := math.Sin(c)
	return b * math.Cos(c), b * sc * math.Cos(h), b * sc * math.Sin(h)
}

// XYZ maps a DEF triple back to tristimulus values.
func XYZ(d, e, f float64) (x, y, z float64) {
	return DEFToXYZ.Apply(d, e, f)
}

// RGB maps XYZ back to 8-bit RGB, clamping and rounding each channel.
func RGB(x, y, z float64) (r, g, b uint8) {
	rf, gf, bf := XYZToRGB.Apply(x, y, z)
	return raster.ToUint8(rf * 255), raster.ToUint8(gf * 255), raster.ToUint8(bf * 255)
}
