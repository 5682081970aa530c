package profile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AnyUserName/sharpgrade/internal/score"
	"github.com/AnyUserName/sharpgrade/internal/wavelet"
)

// Environment variables read by ApplyEnv.
const (
	EnvProfile        = "SHARPGRADE_PROFILE"
	EnvWorkers        = "SHARPGRADE_WORKERS"
	EnvWindow         = "SHARPGRADE_WINDOW"
	EnvBlockSize      = "SHARPGRADE_BLOCK_SIZE"
	EnvAlpha          = "SHARPGRADE_ALPHA"
	EnvContrastWindow = "SHARPGRADE_CONTRAST_WINDOW"
	EnvLabWindow      = "SHARPGRADE_LAB_WINDOW"
	EnvLogLevel       = "SHARPGRADE_LOG_LEVEL"
)

// Profile is a named set of estimator and tone parameters.
type Profile struct {
	Name           string
	Window         int     // high-pass smoothing window, odd
	BlockSize      int     // wavelet tile and std-dev window
	Alpha          float64 // wavelet exponent
	ContrastWindow int     // BCH local-contrast neighbourhood
	LabWindow      int     // LAB local-contrast neighbourhood
	Workers        int     // 0 = NumCPU
}

// Built-in profiles.
var profiles = map[string]Profile{
	"default": {
		Name:           "default",
		Window:         5,
		BlockSize:      8,
		Alpha:          1,
		ContrastWindow: 15,
		LabWindow:      20,
	},
	"fine": {
		Name:           "fine",
		Window:         3,
		BlockSize:      4,
		Alpha:          1,
		ContrastWindow: 9,
		LabWindow:      11,
	},
	"coarse": {
		Name:           "coarse",
		Window:         7,
		BlockSize:      16,
		Alpha:          1,
		ContrastWindow: 25,
		LabWindow:      31,
	},
}

// Get returns a profile by name. Falls back to default if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles["default"]
	p.Name = name // preserve requested name
	return p
}

// Names lists the built-in profiles.
func Names() []string {
	return []string{"default", "fine", "coarse"}
}

// ApplyEnv overrides fields of p from the SHARPGRADE_* variables returned
// by getenv. Empty variables are ignored; malformed ones are an error.
func ApplyEnv(p Profile, getenv func(string) string) (Profile, error) {
	ints := []struct {
		key string
		dst *int
	}{
		{EnvWorkers, &p.Workers},
		{EnvWindow, &p.Window},
		{EnvBlockSize, &p.BlockSize},
		{EnvContrastWindow, &p.ContrastWindow},
		{EnvLabWindow, &p.LabWindow},
	}
	for _, f := range ints {
		v := strings.TrimSpace(getenv(f.key))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = n
	}
	if v := strings.TrimSpace(getenv(EnvAlpha)); v != "" {
		a, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, fmt.Errorf("%s: %w", EnvAlpha, err)
		}
		p.Alpha = a
	}
	return p, nil
}

// FromEnv resolves the profile named by SHARPGRADE_PROFILE (or fallback
// when unset) and applies the remaining overrides.
func FromEnv(fallback string, getenv func(string) string) (Profile, error) {
	name := strings.TrimSpace(getenv(EnvProfile))
	if name == "" {
		name = fallback
	}
	return ApplyEnv(Get(name), getenv)
}

// ScoreParams returns the estimator parameters of p.
func (p Profile) ScoreParams() score.Params {
	return score.Params{
		Window:  p.Window,
		Wavelet: wavelet.Params{BlockSize: p.BlockSize, Alpha: p.Alpha},
	}
}
