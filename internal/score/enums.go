package score

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownMethod = errors.New("unknown sharpness method")
	ErrUnknownTarget = errors.New("unknown selection target")
	ErrUnknownMetric = errors.New("unknown metric")
)

// Method selects a sharpness estimator.
type Method int

const (
	Gaussian Method = iota
	Mean
	Median
	Wavelet
)

var methodNames = [...]string{"gaussian", "mean", "median", "wavelet"}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// ParseMethod accepts the lower-case method names, case-insensitively.
func ParseMethod(s string) (Method, error) {
	for i, n := range methodNames {
		if strings.EqualFold(s, n) {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// Target chooses whether the highest or lowest score wins a batch.
type Target int

const (
	Maximum Target = iota
	Minimum
)

func (t Target) String() string {
	switch t {
	case Maximum:
		return "maximum"
	case Minimum:
		return "minimum"
	}
	return fmt.Sprintf("Target(%d)", int(t))
}

// ParseTarget accepts "maximum"/"max" and "minimum"/"min".
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(s) {
	case "maximum", "max":
		return Maximum, nil
	case "minimum", "min":
		return Minimum, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTarget, s)
}

// Metric is the perceptual axis a batch is ranked on.
type Metric int

const (
	Sharpness Metric = iota
	Contrast
	Brightness
)

var metricNames = [...]string{"sharpness", "contrast", "brightness"}

func (m Metric) String() string {
	if m < 0 || int(m) >= len(metricNames) {
		return fmt.Sprintf("Metric(%d)", int(m))
	}
	return metricNames[m]
}

func ParseMetric(s string) (Metric, error) {
	for i, n := range metricNames {
		if strings.EqualFold(s, n) {
			return Metric(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}
