package score

import (
	"errors"
	"fmt"
	"image"
)

// ErrEmptyBatch is returned when there is nothing to choose from.
var ErrEmptyBatch = errors.New("empty batch")

// Criterion fully describes how a batch is ranked.
type Criterion struct {
	Metric Metric
	Method Method // sharpness only
	Target Target
}

// Validate rejects combinations the scorers do not offer: only contrast
// may select a minimum.
func (c Criterion) Validate() error {
	switch c.Metric {
	case Sharpness:
		if c.Method < Gaussian || c.Method > Wavelet {
			return fmt.Errorf("%w: %v", ErrUnknownMethod, c.Method)
		}
	case Contrast:
	case Brightness:
	default:
		return fmt.Errorf("%w: %v", ErrUnknownMetric, c.Metric)
	}
	switch c.Target {
	case Maximum:
	case Minimum:
		if c.Metric != Contrast {
			return fmt.Errorf("%w: %v only supports maximum", ErrUnknownTarget, c.Metric)
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnknownTarget, c.Target)
	}
	return nil
}

func (c Criterion) String() string {
	if c.Metric == Sharpness {
		return fmt.Sprintf("%s/%s/%s", c.Metric, c.Method, c.Target)
	}
	return fmt.Sprintf("%s/%s", c.Metric, c.Target)
}

// Score evaluates img under c.
func (c Criterion) Score(img image.Image, p Params) (float64, error) {
	switch c.Metric {
	case Sharpness:
		return SharpnessScore(img, c.Method, p)
	case Contrast:
		return ContrastScore(img)
	case Brightness:
		return BrightnessScore(img)
	}
	return 0, fmt.Errorf("%w: %v", ErrUnknownMetric, c.Metric)
}

// Scored pairs an input position with its score.
type Scored struct {
	Index int
	Value float64
}

// Better reports whether a strictly beats b under t. Equal scores never
// beat each other, which makes the earliest input win ties.
func (t Target) Better(a, b float64) bool {
	if t == Minimum {
		return a < b
	}
	return a > b
}

// Select folds items, in the order given, down to the winner. Items must
// be in input order for the first-seen tie-break to hold.
func Select(items []Scored, t Target) (Scored, error) {
	if len(items) == 0 {
		return Scored{}, ErrEmptyBatch
	}
	best := items[0]
	for _, it := range items[1:] {
		if t.Better(it.Value, best.Value) {
			best = it
		}
	}
	return best, nil
}

// Best returns the index of the winning score.
func Best(scores []float64, t Target) (int, error) {
	items := make([]Scored, len(scores))
	for i, v := range scores {
		items[i] = Scored{Index: i, Value: v}
	}
	w, err := Select(items, t)
	if err != nil {
		return -1, err
	}
	return w.Index, nil
}
