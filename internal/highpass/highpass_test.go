package highpass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnyUserName/sharpgrade/internal/raster"
)

func checkerboard(w, h, cell int) raster.Plane {
	p := raster.NewPlane(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/cell+y/cell)%2 == 0 {
				p.Set(x, y, 255)
			}
		}
	}
	return p
}

var filters = map[string]Filter{
	"gaussian": Gaussian,
	"mean":     Mean,
	"median":   Median,
}

func TestConstantPlaneHasNoHighFrequency(t *testing.T) {
	p := raster.NewPlane(20, 12).Map(func(float64) float64 { return 128 })
	for name, f := range filters {
		out, err := f(p, DefaultWindow)
		require.NoError(t, err, name)
		require.Equal(t, p.Width, out.Width, name)
		require.Equal(t, p.Height, out.Height, name)
		assert.Zero(t, out.Sum(), name)
	}
}

func TestNegativeDifferencesClipToZero(t *testing.T) {
	p := raster.NewPlane(9, 9).Map(func(float64) float64 { return 200 })
	p.Set(4, 4, 0) // dark dot: original < smoothed everywhere near it
	for name, f := range filters {
		out, err := f(p, 3)
		require.NoError(t, err, name)
		for _, v := range out.Pix {
			assert.GreaterOrEqual(t, v, 0.0, name)
		}
	}
}

func TestBrightDotSurvives(t *testing.T) {
	p := raster.NewPlane(9, 9)
	p.Set(4, 4, 255)
	for name, f := range filters {
		out, err := f(p, 3)
		require.NoError(t, err, name)
		assert.Greater(t, out.At(4, 4), 100.0, name)
	}
}

func TestInvalidWindow(t *testing.T) {
	p := raster.NewPlane(4, 4)
	for _, w := range []int{0, -3, 4} {
		_, err := Mean(p, w)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	}
	_, err := Gaussian(raster.Plane{}, 5)
	assert.ErrorIs(t, err, raster.ErrInvalidImage)
}

func TestCheckerboardIsMedianRoot(t *testing.T) {
	// From cell size 3 up every 5x5 window, border windows included, holds
	// at least 13 samples of the centre's colour.
	for _, cell := range []int{3, 4, 5, 8} {
		e, err := Energy(checkerboard(64, 64, cell), Median, DefaultWindow)
		require.NoError(t, err)
		assert.Zero(t, e, "cell=%d", cell)
	}
}

func TestFineCheckerboardIsNotMedianRoot(t *testing.T) {
	// Replicated borders break the colour balance of windows near the edge.
	for _, cell := range []int{1, 2} {
		e, err := Energy(checkerboard(64, 64, cell), Median, DefaultWindow)
		require.NoError(t, err)
		assert.Positive(t, e, "cell=%d", cell)
	}
}

func TestMedianEnergyOfBlurredCheckerboard(t *testing.T) {
	board := checkerboard(64, 64, 1)
	sharp, err := Energy(board, Median, DefaultWindow)
	require.NoError(t, err)
	blurred, err := Energy(raster.GaussianBlur(board, 5), Median, DefaultWindow)
	require.NoError(t, err)
	assert.Greater(t, sharp, blurred)
}

func speckledCheckerboard(w, h int) raster.Plane {
	p := checkerboard(w, h, 8)
	for y := 2; y < h; y += 5 {
		for x := 3; x < w; x += 7 {
			p.Set(x, y, 255-p.At(x, y))
		}
	}
	return p
}

func TestMedianEnergyDropsAfterBlur(t *testing.T) {
	board := speckledCheckerboard(64, 64)
	sharp, err := Energy(board, Median, DefaultWindow)
	require.NoError(t, err)
	blurred, err := Energy(raster.GaussianBlur(board, 7), Median, DefaultWindow)
	require.NoError(t, err)
	assert.Greater(t, sharp, blurred)
}

func TestFiltersAgreeOnBorderPolicy(t *testing.T) {
	// A vertical step touching the left edge: all filters replicate the
	// border, so the first column only sees the step from one side and the
	// outputs stay symmetric top to bottom.
	p := raster.NewPlane(8, 8)
	for y := 0; y < 8; y++ {
		p.Set(0, y, 255)
	}
	for name, f := range filters {
		out, err := f(p, 3)
		require.NoError(t, err, name)
		for x := 0; x < 8; x++ {
			assert.Equal(t, out.At(x, 0), out.At(x, 7), "%s column %d", name, x)
		}
	}
}

func BenchmarkMedian5(b *testing.B) {
	p := checkerboard(256, 256, 3)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Median(p, 5)
	}
}
