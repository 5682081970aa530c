package wavelet

import "github.com/AnyUserName/sharpgrade/internal/raster"

// HaarDiagonal returns the HH subband of a one-level orthonormal Haar
// transform. Odd dimensions are extended by repeating the last row or
// column, so the subband is ceil(w/2)×ceil(h/2).
func HaarDiagonal(p raster.Plane) raster.Plane {
	w, h := (p.Width+1)/2, (p.Height+1)/2
	out := raster.NewPlane(w, h)
	for j := 0; j < h; j++ {
		y0 := 2 * j
		y1 := min(y0+1, p.Height-1)
		for i := 0; i < w; i++ {
			x0 := 2 * i
			x1 := min(x0+1, p.Width-1)
			a := p.At(x0, y0)
			b := p.At(x1, y0)
			c := p.At(x0, y1)
			d := p.At(x1, y1)
			out.Set(i, j, (a-b-c+d)/2)
		}
	}
	return out
}
