// Package raster holds the pixel containers shared by the scoring and tone
// packages. Colour images travel as *image.NRGBA anchored at the origin
// (channel order R, G, B, values 0..255); derived scalar fields are Planes.
package raster

import "math"

// Plane is a row-major single-channel field of float64 samples.
type Plane struct {
	Width  int
	Height int
	Pix    []float64
}

// NewPlane allocates a zeroed w×h plane.
func NewPlane(w, h int) Plane {
	return Plane{Width: w, Height: h, Pix: make([]float64, w*h)}
}

func (p Plane) At(x, y int) float64 { return p.Pix[y*p.Width+x] }

func (p Plane) Set(x, y int, v float64) { p.Pix[y*p.Width+x] = v }

// Empty reports whether the plane has no samples.
func (p Plane) Empty() bool { return p.Width <= 0 || p.Height <= 0 }

// Clone returns a deep copy.
func (p Plane) Clone() Plane {
	out := NewPlane(p.Width, p.Height)
	copy(out.Pix, p.Pix)
	return out
}

// Map returns a new plane with f applied to every sample.
func (p Plane) Map(f func(float64) float64) Plane {
	out := NewPlane(p.Width, p.Height)
	for i, v := range p.Pix {
		out.Pix[i] = f(v)
	}
	return out
}

func (p Plane) Sum() float64 {
	s := 0.0
	for _, v := range p.Pix {
		s += v
	}
	return s
}

// Mean returns the arithmetic mean, 0 for an empty plane.
func (p Plane) Mean() float64 {
	if len(p.Pix) == 0 {
		return 0
	}
	return p.Sum() / float64(len(p.Pix))
}

// Variance returns the population variance of the samples.
func (p Plane) Variance() float64 {
	n := len(p.Pix)
	if n == 0 {
		return 0
	}
	mean := p.Mean()
	acc := 0.0
	for _, v := range p.Pix {
		d := v - mean
		acc += d * d
	}
	return acc / float64(n)
}

// Max returns the largest sample, -Inf for an empty plane.
func (p Plane) Max() float64 {
	m := math.Inf(-1)
	for _, v := range p.Pix {
		if v > m {
			m = v
		}
	}
	return m
}

// Crop copies the half-open window [x0,x1)×[y0,y1). Bounds are clamped to
// the plane; an inverted window yields an empty plane.
func (p Plane) Crop(x0, y0, x1, y1 int) Plane {
	x0 = ClampInt(x0, 0, p.Width)
	x1 = ClampInt(x1, 0, p.Width)
	y0 = ClampInt(y0, 0, p.Height)
	y1 = ClampInt(y1, 0, p.Height)
	if x1 <= x0 || y1 <= y0 {
		return Plane{}
	}
	out := NewPlane(x1-x0, y1-y0)
	for y := y0; y < y1; y++ {
		copy(out.Pix[(y-y0)*out.Width:(y-y0+1)*out.Width], p.Pix[y*p.Width+x0:y*p.Width+x1])
	}
	return out
}

// ClampInt clamps v to [lo,hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampFloat clamps v to [lo,hi].
func ClampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ToUint8 rounds and saturates v to the 8-bit channel range.
func ToUint8(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
