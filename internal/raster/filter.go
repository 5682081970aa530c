package raster

import (
	"math"
	"slices"
)

// All smoothing kernels below replicate the nearest edge sample outside the
// plane, so the three high-pass estimators see identical border artifacts.
// A window of n samples covers offsets [-n/2, n-1-n/2] around the centre.

func windowSpan(n int) (lo, hi int) {
	lo = -(n / 2)
	hi = n - 1 - n/2
	return lo, hi
}

// BoxBlur returns the unweighted mean over an n×n window.
func BoxBlur(p Plane, n int) Plane {
	if n <= 1 {
		return p.Clone()
	}
	kern := make([]float64, n)
	for i := range kern {
		kern[i] = 1 / float64(n)
	}
	return separable(p, kern)
}

// GaussianKernel returns the normalised 1-D Gaussian weights for an n-tap
// window. The sigma is derived from the window the way OpenCV does for a
// zero sigma, including its fixed binomial tables for 3, 5 and 7 taps.
func GaussianKernel(n int) []float64 {
	switch n {
	case 1:
		return []float64{1}
	case 3:
		return []float64{0.25, 0.5, 0.25}
	case 5:
		return []float64{0.0625, 0.25, 0.375, 0.25, 0.0625}
	case 7:
		return []float64{0.03125, 0.109375, 0.21875, 0.28125, 0.21875, 0.109375, 0.03125}
	}
	sigma := 0.3*((float64(n)-1)*0.5-1) + 0.8
	lo, hi := windowSpan(n)
	kern := make([]float64, 0, n)
	sum := 0.0
	for i := lo; i <= hi; i++ {
		v := math.Exp(-0.5 * float64(i*i) / (sigma * sigma))
		kern = append(kern, v)
		sum += v
	}
	for i := range kern {
		kern[i] /= sum
	}
	return kern
}

// GaussianBlur smooths p with an n×n separable Gaussian window.
func GaussianBlur(p Plane, n int) Plane {
	if n <= 1 {
		return p.Clone()
	}
	return separable(p, GaussianKernel(n))
}

// separable runs kern horizontally then vertically with replicated borders.
func separable(p Plane, kern []float64) Plane {
	w, h := p.Width, p.Height
	lo, _ := windowSpan(len(kern))
	tmp := NewPlane(w, h)
	for y := 0; y < h; y++ {
		row := p.Pix[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			acc := 0.0
			for k, wt := range kern {
				acc += row[ClampInt(x+lo+k, 0, w-1)] * wt
			}
			tmp.Pix[y*w+x] = acc
		}
	}
	out := NewPlane(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			acc := 0.0
			for k, wt := range kern {
				acc += tmp.Pix[ClampInt(y+lo+k, 0, h-1)*w+x] * wt
			}
			out.Pix[y*w+x] = acc
		}
	}
	return out
}

// MedianBlur returns the per-window median over an n×n window. For even n
// the upper median is used.
func MedianBlur(p Plane, n int) Plane {
	if n <= 1 {
		return p.Clone()
	}
	w, h := p.Width, p.Height
	lo, hi := windowSpan(n)
	buf := make([]float64, 0, n*n)
	out := NewPlane(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf = buf[:0]
			for dy := lo; dy <= hi; dy++ {
				sy := ClampInt(y+dy, 0, h-1)
				for dx := lo; dx <= hi; dx++ {
					buf = append(buf, p.Pix[sy*w+ClampInt(x+dx, 0, w-1)])
				}
			}
			slices.Sort(buf)
			out.Pix[y*w+x] = buf[len(buf)/2]
		}
	}
	return out
}
