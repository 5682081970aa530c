// Package colorspace converts between RGB, CIE XYZ, the DEF perceptual code
// and its polar BCH (brightness, chroma angle, hue angle) form, and CIE-LAB.
//
// RGB input is 8-bit and normalised to [0,1] before the linear XYZ mapping;
// no gamma is applied on that path. The forward DEF matrix and the DEF→XYZ
// matrix are independently fitted tables and are not exact inverses: an
// unmodified RGB→BCH→RGB round trip deviates by at most 3 channel units.
package colorspace

// Matrix3 is a 3×3 row-major linear map.
type Matrix3 [3][3]float64

// Apply multiplies m by the column vector (a, b, c).
func (m *Matrix3) Apply(a, b, c float64) (float64, float64, float64) {
	return m[0][0]*a + m[0][1]*b + m[0][2]*c,
		m[1][0]*a + m[1][1]*b + m[1][2]*c,
		m[2][0]*a + m[2][1]*b + m[2][2]*c
}

var (
	// RGBToXYZ is the linear sRGB-primaries (D65) tristimulus mapping.
	RGBToXYZ = Matrix3{
		{0.412453, 0.357580, 0.180423},
		{0.212671, 0.715160, 0.072169},
		{0.019334, 0.119193, 0.950227},
	}
	XYZToRGB = Matrix3{
		{3.240479, -1.53715, -0.498535},
		{-0.969256, 1.875991, 0.041556},
		{0.055648, -0.204043, 1.057311},
	}

	XYZToDEF = Matrix3{
		{0.2053, 0.7125, 0.4670},
		{1.8537, -1.2797, -0.4429},
		{-0.3655, 1.0120, -0.6014},
	}
	// DEFToXYZ is fitted separately from XYZToDEF.
	DEFToXYZ = Matrix3{
		{0.6712, 0.4955, 0.1540},
		{0.7061, 0.0248, 0.5223},
		{0.7689, -0.2556, -0.8645},
	}
)

// Epsilon guards the chroma angle division and the degenerate-hue test.
const Epsilon = 1e-10
