package encoder

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 6, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(40 * x), G: uint8(60 * y), B: 90, A: uint8(255 - 30*x)})
		}
	}
	return img
}

type stubEncoder struct{ ok bool }

func (s stubEncoder) Format() string       { return "stub" }
func (s stubEncoder) Extensions() []string { return []string{"stub"} }
func (s stubEncoder) Available() bool      { return s.ok }
func (s stubEncoder) Encode(context.Context, image.Image, int) ([]byte, error) {
	return []byte("stub"), nil
}

func TestForPath(t *testing.T) {
	r := NewRegistry()
	cases := map[string]string{
		"out.png":         "png",
		"out.JPG":         "jpeg",
		"dir/x.jpeg":      "jpeg",
		"scan.tif":        "tiff",
		"anim.gif":        "gif",
		"legacy.bmp":      "bmp",
		"a.b.c/final.PNG": "png",
	}
	for path, want := range cases {
		enc, err := r.ForPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, enc.Format(), path)
	}

	_, err := r.ForPath("out.xyz")
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = r.ForPath("noext")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestUnavailableEncodersAreSkipped(t *testing.T) {
	r := newRegistry(stubEncoder{ok: false})
	_, err := r.ForPath("a.stub")
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Equal(t, "no encoders available", r.String())

	r = newRegistry(stubEncoder{ok: true})
	enc, err := r.ForPath("a.stub")
	require.NoError(t, err)
	assert.Equal(t, "stub", enc.Format())
	assert.Equal(t, []string{"stub"}, r.Available())
}

func TestPNGKeepsPixelsAndAlpha(t *testing.T) {
	r := NewRegistry()
	path := filepath.Join(t.TempDir(), "out.png")
	n, err := r.WriteFile(context.Background(), path, sample(), 0)
	require.NoError(t, err)
	assert.Positive(t, n)

	back, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, sample().Pix, imaging.Clone(back).Pix)
}

func TestJPEGQualityMatters(t *testing.T) {
	enc, err := NewRegistry().ForPath("x.jpg")
	require.NoError(t, err)
	src := imaging.Resize(sample(), 64, 64, imaging.Linear)

	lo, err := enc.Encode(context.Background(), src, 10)
	require.NoError(t, err)
	hi, err := enc.Encode(context.Background(), src, 100)
	require.NoError(t, err)
	assert.Less(t, len(lo), len(hi))

	_, _, err = image.Decode(bytes.NewReader(hi))
	require.NoError(t, err)
}

func TestNativeEncodeHonoursCancel(t *testing.T) {
	enc, err := NewRegistry().ForPath("x.png")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = enc.Encode(ctx, sample(), 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMissingExternalTool(t *testing.T) {
	e := NewWebPEncoder()
	e.binary = "sharpgrade-no-such-encoder"
	assert.False(t, e.Available())
	_, err := e.Encode(context.Background(), sample(), 80)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in PATH")
}

func TestClampQuality(t *testing.T) {
	assert.Equal(t, DefaultQuality, clampQuality(0))
	assert.Equal(t, DefaultQuality, clampQuality(101))
	assert.Equal(t, 55, clampQuality(55))
}
