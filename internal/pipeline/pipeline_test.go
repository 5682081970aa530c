package pipeline

import (
	"context"
	"image"
	"image/color"
	"math/rand"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnyUserName/sharpgrade/internal/highpass"
	"github.com/AnyUserName/sharpgrade/internal/score"
)

func noise(w, h int, seed int64) *image.NRGBA {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		if i%4 == 3 {
			img.Pix[i] = 255
			continue
		}
		img.Pix[i] = uint8(rng.Intn(256))
	}
	return img
}

func solid(w, h int, v uint8) *image.NRGBA {
	return imaging.New(w, h, color.NRGBA{R: v, G: v, B: v, A: 255})
}

func save(t *testing.T, img image.Image, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, imaging.Save(img, path))
	return path
}

func touch(t *testing.T, path string, data string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

var sharpness = score.Criterion{Metric: score.Sharpness, Method: score.Gaussian, Target: score.Maximum}

func TestScanOrderAndFilters(t *testing.T) {
	dir := t.TempDir()
	album := filepath.Join(dir, "album")
	save(t, solid(4, 4, 10), filepath.Join(album, "b.png"))
	save(t, solid(4, 4, 10), filepath.Join(album, "a.png"))
	save(t, solid(4, 4, 10), filepath.Join(album, "sub", "c.jpg"))
	save(t, solid(4, 4, 10), filepath.Join(album, ".cache", "d.png"))
	touch(t, filepath.Join(album, "notes.txt"), "hi")
	extra := save(t, solid(4, 4, 10), filepath.Join(dir, "extra.PNG"))

	sources, err := Scan([]string{extra, album})
	require.NoError(t, err)

	var got []string
	for _, s := range sources {
		got = append(got, s.Path)
	}
	assert.Equal(t, []string{
		extra,
		filepath.Join(album, "a.png"),
		filepath.Join(album, "b.png"),
		filepath.Join(album, "sub", "c.jpg"),
	}, got)
	assert.Equal(t, "png", sources[0].Format)
	assert.Equal(t, "jpeg", sources[3].Format)
	assert.Positive(t, sources[1].Size)
}

func TestScanMissingInput(t *testing.T) {
	_, err := Scan([]string{filepath.Join(t.TempDir(), "gone.png")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunPicksSharpest(t *testing.T) {
	dir := t.TempDir()
	sharp := noise(64, 48, 1)
	blurred := save(t, imaging.Blur(sharp, 4), filepath.Join(dir, "blurred.png"))
	crisp := save(t, sharp, filepath.Join(dir, "sharp.png"))

	r, err := New(Config{Inputs: []string{blurred, crisp}, Criterion: sharpness, Params: score.DefaultParams(), Workers: 2}).
		Run(context.Background())
	require.NoError(t, err)

	require.NotNil(t, r.Winner)
	assert.Equal(t, crisp, r.Winner.Path)
	assert.Equal(t, 1, r.Winner.Index)
	require.Len(t, r.Entries, 2)
	assert.Equal(t, blurred, r.Entries[0].Path)
	assert.Equal(t, 64, r.Entries[1].Width)
	assert.Equal(t, 48, r.Entries[1].Height)
	assert.Len(t, r.Entries[1].Hash, 16)
	assert.Equal(t, 2, r.Stats.Scored)
	assert.Empty(t, r.Check())
}

func TestRunRecordsPartialFailures(t *testing.T) {
	dir := t.TempDir()
	bad := touch(t, filepath.Join(dir, "a_broken.png"), "definitely not a png")
	white := save(t, solid(8, 8, 250), filepath.Join(dir, "b_white.png"))
	black := save(t, solid(8, 8, 5), filepath.Join(dir, "c_black.png"))

	c := score.Criterion{Metric: score.Brightness, Target: score.Maximum}
	r, err := New(Config{Inputs: []string{dir}, Criterion: c, Params: score.DefaultParams()}).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, r.Entries, 3)
	assert.Equal(t, bad, r.Entries[0].Path)
	assert.False(t, r.Entries[0].Scored())
	assert.Contains(t, r.Entries[0].Error, "decode")
	assert.Equal(t, 1, r.Stats.Failed)
	assert.Equal(t, white, r.Winner.Path)
	assert.Greater(t, r.Entries[1].Score, r.Entries[2].Score)
	assert.Equal(t, black, r.Entries[2].Path)
}

func TestRunAllFailed(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "x.png"), "nope")
	touch(t, filepath.Join(dir, "y.jpg"), "nope")

	r, err := New(Config{Inputs: []string{dir}, Criterion: sharpness, Params: score.DefaultParams()}).Run(context.Background())
	require.Error(t, err)
	require.NotNil(t, r)
	assert.Equal(t, 2, r.Stats.Failed)
	assert.Nil(t, r.Winner)
}

func TestRunNoInputs(t *testing.T) {
	_, err := New(Config{Inputs: []string{t.TempDir()}, Criterion: sharpness, Params: score.DefaultParams()}).
		Run(context.Background())
	assert.ErrorIs(t, err, ErrNoInputs)
}

func TestRunRejectsBadParams(t *testing.T) {
	params := score.DefaultParams()
	params.Window = 4
	_, err := New(Config{Inputs: []string{t.TempDir()}, Criterion: sharpness, Params: params}).Run(context.Background())
	assert.ErrorIs(t, err, highpass.ErrInvalidWindow)
}

func TestRunRejectsBadCriterion(t *testing.T) {
	c := score.Criterion{Metric: score.Sharpness, Method: score.Median, Target: score.Minimum}
	_, err := New(Config{Inputs: []string{t.TempDir()}, Criterion: c}).Run(context.Background())
	assert.ErrorIs(t, err, score.ErrUnknownTarget)
}

func TestRunCancelled(t *testing.T) {
	dir := t.TempDir()
	save(t, solid(8, 8, 100), filepath.Join(dir, "a.png"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{Inputs: []string{dir}, Criterion: sharpness, Params: score.DefaultParams()}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunMaxDimKeepsOriginalSize(t *testing.T) {
	dir := t.TempDir()
	path := save(t, noise(200, 100, 3), filepath.Join(dir, "wide.png"))

	r, err := New(Config{Inputs: []string{path}, Criterion: sharpness, Params: score.DefaultParams(), MaxDim: 50}).
		Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 200, r.Entries[0].Width)
	assert.Equal(t, 100, r.Entries[0].Height)
	assert.Equal(t, 50, r.Params.MaxDim)
}

func TestOpenFit(t *testing.T) {
	path := save(t, noise(120, 30, 4), filepath.Join(t.TempDir(), "strip.png"))
	l, err := Open(path, 60)
	require.NoError(t, err)
	assert.Equal(t, 120, l.Width)
	assert.Equal(t, 60, l.Image.Bounds().Dx())
	assert.Equal(t, 15, l.Image.Bounds().Dy())

	l, err = Open(path, 0)
	require.NoError(t, err)
	assert.Equal(t, 120, l.Image.Bounds().Dx())
}

func TestScoresIndependentOfWorkerCount(t *testing.T) {
	dir := t.TempDir()
	for i, name := range []string{"a.png", "b.png", "c.png", "d.png", "e.png"} {
		save(t, noise(32, 32, int64(i)), filepath.Join(dir, name))
	}
	run := func(workers int) []float64 {
		r, err := New(Config{Inputs: []string{dir}, Criterion: sharpness, Params: score.DefaultParams(), Workers: workers}).
			Run(context.Background())
		require.NoError(t, err)
		var out []float64
		for _, e := range r.Entries {
			out = append(out, e.Score)
		}
		return out
	}
	assert.Equal(t, run(1), run(4))
}

func TestRankImages(t *testing.T) {
	imgs := []image.Image{solid(10, 10, 128), noise(10, 10, 5), solid(10, 10, 40)}
	c := score.Criterion{Metric: score.Contrast, Target: score.Minimum}
	scores, best, err := RankImages(context.Background(), imgs, c, score.DefaultParams(), 2)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Zero(t, scores[0])
	assert.Zero(t, scores[2])
	assert.Equal(t, 0, best, "first-seen wins the tie")

	_, _, err = RankImages(context.Background(), nil, c, score.DefaultParams(), 2)
	assert.ErrorIs(t, err, score.ErrEmptyBatch)

	_, _, err = RankImages(context.Background(), []image.Image{image.NewNRGBA(image.Rect(0, 0, 0, 0))}, c, score.DefaultParams(), 1)
	assert.Error(t, err)
}

func TestForEachBoundsConcurrency(t *testing.T) {
	var running, peak int32
	out := make([]int, 50)
	err := forEach(context.Background(), len(out), 3, func(i int) {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		out[i] = i * i
		atomic.AddInt32(&running, -1)
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, peak, int32(3))
	for i, v := range out {
		assert.Equal(t, i*i, v)
	}
}
