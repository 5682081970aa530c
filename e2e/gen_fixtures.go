//go:build ignore

// gen_fixtures creates a small burst of test images for the E2E smoke test:
// one sharp frame, two progressively blurred copies, an under- and an
// over-exposed frame, an alpha image and one undecodable file.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	burst := filepath.Join(dir, "burst")
	os.MkdirAll(burst, 0o755)

	scene := rings(320, 240)
	save(filepath.Join(burst, "frame-1-soft.png"), imaging.Blur(scene, 1.5))
	save(filepath.Join(burst, "frame-2-sharp.png"), scene)
	save(filepath.Join(burst, "frame-3-blurry.jpg"), imaging.Blur(scene, 4))

	save(filepath.Join(dir, "dark.png"), imaging.AdjustBrightness(scene, -60))
	save(filepath.Join(dir, "bright.png"), imaging.AdjustBrightness(scene, 40))
	save(filepath.Join(dir, "logo.png"), alphaGradient(100, 100))

	if err := os.WriteFile(filepath.Join(burst, "frame-4-corrupt.jpg"), []byte("not a jpeg"), 0o644); err != nil {
		panic(err)
	}

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 7 fixtures in %s\n", dir)
}

// rings is a colourful concentric pattern with plenty of edges.
func rings(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	cx, cy := float64(w)/2, float64(h)/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			band := uint8(0)
			if int(d/6)%2 == 0 {
				band = 180
			}
			img.SetNRGBA(x, y, color.NRGBA{
				R: band/2 + uint8(x*70/w),
				G: band/3 + uint8(y*90/h),
				B: 200 - band,
				A: 255,
			})
		}
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: 30,
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}

func save(path string, img image.Image) {
	if err := imaging.Save(img, path, imaging.JPEGQuality(85)); err != nil {
		panic(err)
	}
}
