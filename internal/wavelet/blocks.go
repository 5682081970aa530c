package wavelet

import (
	"math"

	"github.com/AnyUserName/sharpgrade/internal/raster"
)

// BlockwiseMean fills each non-overlapping b×b tile with its mean. Rows and
// columns past the last full tile stay zero.
func BlockwiseMean(p raster.Plane, b int) raster.Plane {
	out := raster.NewPlane(p.Width, p.Height)
	tx, ty := p.Width/b, p.Height/b
	area := float64(b * b)
	for by := 0; by < ty; by++ {
		for bx := 0; bx < tx; bx++ {
			sum := 0.0
			for y := by * b; y < (by+1)*b; y++ {
				for x := bx * b; x < (bx+1)*b; x++ {
					sum += p.At(x, y)
				}
			}
			mean := sum / area
			for y := by * b; y < (by+1)*b; y++ {
				for x := bx * b; x < (bx+1)*b; x++ {
					out.Set(x, y, mean)
				}
			}
		}
	}
	return out
}

// BlockDeviation is |x - tile mean| inside full tiles and 0 past them.
func BlockDeviation(p raster.Plane, b int) raster.Plane {
	means := BlockwiseMean(p, b)
	out := raster.NewPlane(p.Width, p.Height)
	cw, ch := (p.Width/b)*b, (p.Height/b)*b
	for y := 0; y < ch; y++ {
		for x := 0; x < cw; x++ {
			out.Set(x, y, math.Abs(p.At(x, y)-means.At(x, y)))
		}
	}
	return out
}

// LocalStdDev is the standard deviation over sliding b×b windows, computed
// as sqrt(max(E[x²] - E[x]², 0)).
func LocalStdDev(p raster.Plane, b int) raster.Plane {
	mean := raster.BoxBlur(p, b)
	sq := raster.BoxBlur(p.Map(func(v float64) float64 { return v * v }), b)
	out := raster.NewPlane(p.Width, p.Height)
	for k := range out.Pix {
		out.Pix[k] = math.Sqrt(math.Max(sq.Pix[k]-mean.Pix[k]*mean.Pix[k], 0))
	}
	return out
}

// TMatrix combines block deviation and local deviation of one subband:
// T = MH^alpha · S / ΣS.
func TMatrix(hh raster.Plane, p Params) raster.Plane {
	mh := BlockDeviation(hh, p.BlockSize)
	s := LocalStdDev(hh, p.BlockSize)
	norm := s.Sum() + sumGuard
	out := raster.NewPlane(hh.Width, hh.Height)
	for k := range out.Pix {
		out.Pix[k] = math.Pow(mh.Pix[k], p.Alpha) * s.Pix[k] / norm
	}
	return out
}
