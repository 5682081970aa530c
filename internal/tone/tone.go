// Package tone edits the brightness or local contrast of an image while
// keeping its chromaticity: only the BCH brightness or the LAB lightness
// channel is rewritten, chroma/hue (or a/b) pass through untouched.
//
// Results are clamped, never rejected. Large exposure boosts saturate to
// white and the DEF→XYZ table adds up to 3 units of round-trip error per
// channel; both are expected, lossy behaviour.
package tone

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	// DefaultContrastWindow is the neighbourhood edge for the BCH strategy.
	DefaultContrastWindow = 15
	// DefaultLabWindow is the neighbourhood edge for the LAB strategy.
	DefaultLabWindow = 20

	maxBrightness = 255.0
	maxLightness  = 100.0
	guard         = 1e-10
)

// ErrInvalidParameter is returned for non-finite or out-of-domain user
// parameters.
var ErrInvalidParameter = errors.New("invalid tone parameter")

// BrightnessMode selects how brightness is changed.
type BrightnessMode int

const (
	// BCHMode scales the BCH brightness by 2^ev. Default.
	BCHMode BrightnessMode = iota
	// LinearMode multiplies the RGB channels directly.
	LinearMode
)

func (m BrightnessMode) String() string {
	switch m {
	case BCHMode:
		return "bch"
	case LinearMode:
		return "linear"
	}
	return fmt.Sprintf("BrightnessMode(%d)", int(m))
}

func ParseBrightnessMode(s string) (BrightnessMode, error) {
	switch strings.ToLower(s) {
	case "bch", "":
		return BCHMode, nil
	case "linear", "rgb":
		return LinearMode, nil
	}
	return 0, fmt.Errorf("%w: brightness mode %q", ErrInvalidParameter, s)
}

// ContrastStrategy selects the colour space local contrast is edited in.
type ContrastStrategy int

const (
	// BCHStrategy edits BCH brightness in [0,255]. Default.
	BCHStrategy ContrastStrategy = iota
	// LABStrategy edits CIE lightness in [0,100].
	LABStrategy
)

func (s ContrastStrategy) String() string {
	switch s {
	case BCHStrategy:
		return "bch"
	case LABStrategy:
		return "lab"
	}
	return fmt.Sprintf("ContrastStrategy(%d)", int(s))
}

func ParseContrastStrategy(s string) (ContrastStrategy, error) {
	switch strings.ToLower(s) {
	case "bch", "":
		return BCHStrategy, nil
	case "lab":
		return LABStrategy, nil
	}
	return 0, fmt.Errorf("%w: contrast strategy %q", ErrInvalidParameter, s)
}

// DefaultWindow returns the neighbourhood size used by s when the caller
// leaves it unset.
func (s ContrastStrategy) DefaultWindow() int {
	if s == LABStrategy {
		return DefaultLabWindow
	}
	return DefaultContrastWindow
}

func finite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidParameter, name, v)
	}
	return nil
}
