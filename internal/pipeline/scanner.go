package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Source represents one input image file.
type Source struct {
	// Path is the file path as given or as found under a given directory.
	Path string
	// Format is the source format derived from the extension (png, jpeg, ...).
	Format string
	// Size is the file size in bytes.
	Size int64
}

// imageExtensions lists recognized image file extensions.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
}

// IsImagePath reports whether path has a recognized image extension.
func IsImagePath(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// Scan expands inputs into image sources. Files are taken as-is, in
// argument order; directories are walked recursively in lexical order,
// skipping hidden subdirectories and files without an image extension.
func Scan(inputs []string) ([]Source, error) {
	var sources []Source
	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			sources = append(sources, newSource(in, info.Size()))
			continue
		}
		found, err := scanDir(in)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", in, err)
		}
		sources = append(sources, found...)
	}
	return sources, nil
}

func scanDir(root string) ([]Source, error) {
	var sources []Source
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip hidden directories.
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsImagePath(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		sources = append(sources, newSource(path, info.Size()))
		return nil
	})
	return sources, err
}

func newSource(path string, size int64) Source {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch format {
	case "jpg":
		format = "jpeg"
	case "tif":
		format = "tiff"
	}
	return Source{Path: filepath.Clean(path), Format: format, Size: size}
}
