package encoder

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strconv"
	"sync"
)

// ExternalEncoder shells out to a command-line encoder that reads a PNG
// file and writes its output file. This avoids CGO for WebP and AVIF.
type ExternalEncoder struct {
	name    string
	exts    []string
	binary  string
	install string
	args    func(quality int, src, dst string) []string

	once sync.Once
	path string
}

// NewWebPEncoder wraps cwebp. Install: brew install webp / apt install webp
func NewWebPEncoder() *ExternalEncoder {
	return &ExternalEncoder{
		name:    "webp",
		exts:    []string{"webp"},
		binary:  "cwebp",
		install: "brew install webp",
		args: func(q int, src, dst string) []string {
			return []string{"-q", strconv.Itoa(q), "-m", "6", "-mt", "-exact", "-quiet", src, "-o", dst}
		},
	}
}

// NewAVIFEncoder wraps avifenc. Install: brew install libavif / apt
// install libavif-bin
func NewAVIFEncoder() *ExternalEncoder {
	return &ExternalEncoder{
		name:    "avif",
		exts:    []string{"avif"},
		binary:  "avifenc",
		install: "brew install libavif",
		args: func(q int, src, dst string) []string {
			// avifenc quantizers run 0 (best) to 63.
			aq := strconv.Itoa(63 - q*63/100)
			return []string{"--min", aq, "--max", aq, "--speed", "6", "-j", "all", src, dst}
		},
	}
}

func (e *ExternalEncoder) Format() string       { return e.name }
func (e *ExternalEncoder) Extensions() []string { return e.exts }

func (e *ExternalEncoder) Available() bool {
	e.once.Do(func() {
		if path, err := exec.LookPath(e.binary); err == nil {
			e.path = path
		}
	})
	return e.path != ""
}

func (e *ExternalEncoder) Encode(ctx context.Context, img image.Image, quality int) ([]byte, error) {
	if !e.Available() {
		return nil, fmt.Errorf("%s not found in PATH; install with: %s", e.binary, e.install)
	}

	dir, err := os.MkdirTemp("", "sharpgrade_"+e.name+"_*")
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	defer os.RemoveAll(dir)
	src := dir + string(os.PathSeparator) + "src.png"
	dst := dir + string(os.PathSeparator) + "out." + e.exts[0]

	f, err := os.Create(src)
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return nil, fmt.Errorf("encode temp png: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, e.path, e.args(clampQuality(quality), src, dst)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", e.binary, err, string(out))
	}
	return os.ReadFile(dst)
}
