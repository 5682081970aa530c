// Package pipeline scores a batch of image files concurrently and picks
// the winner under a criterion.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"runtime"

	"github.com/AnyUserName/sharpgrade/internal/report"
	"github.com/AnyUserName/sharpgrade/internal/score"
)

// ErrNoInputs is returned when the inputs expand to no image at all.
var ErrNoInputs = errors.New("no images found")

// Config holds all parameters for a ranking run.
type Config struct {
	Inputs    []string
	Criterion score.Criterion
	Params    score.Params
	Profile   string
	Workers   int
	MaxDim    int    // 0 = score at full resolution
	Tool      string // recorded in the report build info
	Logger    *slog.Logger
}

// Pipeline orchestrates scanning, scoring and selection.
type Pipeline struct {
	cfg Config
	log *slog.Logger
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{cfg: cfg, log: log}
}

// Run executes the full ranking pipeline and returns the report.
func (p *Pipeline) Run(ctx context.Context) (*report.Report, error) {
	if err := p.cfg.Criterion.Validate(); err != nil {
		return nil, err
	}
	if err := p.cfg.Params.Validate(p.cfg.Criterion); err != nil {
		return nil, err
	}

	sources, err := Scan(p.cfg.Inputs)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w in %v", ErrNoInputs, p.cfg.Inputs)
	}
	p.log.InfoContext(ctx, "scoring images",
		"count", len(sources), "criterion", p.cfg.Criterion.String(), "workers", p.cfg.Workers)

	entries := make([]report.Entry, len(sources))
	err = forEach(ctx, len(sources), p.cfg.Workers, func(idx int) {
		s := sources[idx]
		p.log.DebugContext(ctx, "processing", "path", s.Path)
		entries[idx] = scoreSource(idx, s, p.cfg.Criterion, p.cfg)
		if entries[idx].Scored() {
			p.log.DebugContext(ctx, "scored", "path", s.Path, "score", entries[idx].Score)
		}
	})
	if err != nil {
		return nil, err
	}

	r := report.New(p.cfg.Profile, p.cfg.Criterion)
	r.Params = report.Params{
		Window:    p.cfg.Params.Window,
		BlockSize: p.cfg.Params.Wavelet.BlockSize,
		Alpha:     p.cfg.Params.Wavelet.Alpha,
		MaxDim:    p.cfg.MaxDim,
	}
	r.BuildInfo = &report.BuildInfo{Workers: p.cfg.Workers, Tool: p.cfg.Tool}
	r.Entries = entries
	r.ComputeStats()

	// Report errors but don't fail the run for partial failures.
	for _, e := range entries {
		if !e.Scored() {
			p.log.WarnContext(ctx, "skipping image", "path", e.Path, "error", e.Error)
		}
	}
	if r.Stats.Scored == 0 {
		return r, fmt.Errorf("all %d images failed to score", len(entries))
	}
	if r.Stats.Failed > 0 {
		p.log.WarnContext(ctx, "partial failure", "failed", r.Stats.Failed, "total", r.Stats.Total)
	}

	w, err := r.SelectWinner()
	if err != nil {
		return r, err
	}
	r.Winner = w
	p.log.InfoContext(ctx, "winner", "path", w.Path, "score", w.Score)
	return r, nil
}

// RankImages scores in-memory images concurrently and returns the scores
// in input order plus the index of the winner. Any scoring error fails
// the whole call.
func RankImages(ctx context.Context, imgs []image.Image, c score.Criterion, params score.Params, workers int) ([]float64, int, error) {
	if err := c.Validate(); err != nil {
		return nil, -1, err
	}
	if err := params.Validate(c); err != nil {
		return nil, -1, err
	}
	if len(imgs) == 0 {
		return nil, -1, score.ErrEmptyBatch
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	scores := make([]float64, len(imgs))
	errs := make([]error, len(imgs))
	if err := forEach(ctx, len(imgs), workers, func(i int) {
		scores[i], errs[i] = c.Score(imgs[i], params)
	}); err != nil {
		return nil, -1, err
	}
	for i, err := range errs {
		if err != nil {
			return nil, -1, fmt.Errorf("image %d: %w", i, err)
		}
	}
	best, err := score.Best(scores, c.Target)
	return scores, best, err
}
