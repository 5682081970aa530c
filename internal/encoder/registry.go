package encoder

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
)

// Registry holds all available encoders keyed by file extension.
type Registry struct {
	byExt   map[string]Encoder
	formats []string
}

// NewRegistry creates a registry, probing all encoders for availability.
func NewRegistry() *Registry {
	all := append(newNativeEncoders(), NewWebPEncoder(), NewAVIFEncoder())
	return newRegistry(all...)
}

func newRegistry(encoders ...Encoder) *Registry {
	r := &Registry{byExt: make(map[string]Encoder)}
	for _, enc := range encoders {
		// Only available ones will be used.
		if !enc.Available() {
			continue
		}
		r.formats = append(r.formats, enc.Format())
		for _, ext := range enc.Extensions() {
			r.byExt[ext] = enc
		}
	}
	return r
}

// ForPath returns the encoder for the extension of path.
func (r *Registry) ForPath(path string) (Encoder, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return nil, fmt.Errorf("%w: %s has no extension", ErrUnsupported, path)
	}
	enc, ok := r.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%w: .%s (%s)", ErrUnsupported, ext, r)
	}
	return enc, nil
}

// Available returns all available format names in registration order.
func (r *Registry) Available() []string {
	return append([]string(nil), r.formats...)
}

// WriteFile encodes img by the extension of path and writes it there.
func (r *Registry) WriteFile(ctx context.Context, path string, img image.Image, quality int) (int, error) {
	enc, err := r.ForPath(path)
	if err != nil {
		return 0, err
	}
	data, err := enc.Encode(ctx, img, quality)
	if err != nil {
		return 0, fmt.Errorf("encode %s: %w", enc.Format(), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, err
	}
	return len(data), nil
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	if len(r.formats) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(r.formats, ", "))
}
