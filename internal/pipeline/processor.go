package pipeline

import (
	"fmt"

	"github.com/AnyUserName/sharpgrade/internal/hasher"
	"github.com/AnyUserName/sharpgrade/internal/report"
	"github.com/AnyUserName/sharpgrade/internal/score"
)

// scoreSource handles a single input: hash, decode, score. Failures are
// carried in the entry rather than returned, so one bad file never
// aborts a batch.
func scoreSource(idx int, src Source, c score.Criterion, cfg Config) report.Entry {
	entry := report.Entry{Index: idx, Path: src.Path}

	hash, err := hasher.FileHash(src.Path, hasher.DefaultLen)
	if err != nil {
		entry.Error = fmt.Sprintf("open %s: %v", src.Path, err)
		return entry
	}
	entry.Hash = hash

	loaded, err := Open(src.Path, cfg.MaxDim)
	if err != nil {
		entry.Error = err.Error()
		return entry
	}
	entry.Width, entry.Height = loaded.Width, loaded.Height

	v, err := c.Score(loaded.Image, cfg.Params)
	if err != nil {
		entry.Error = fmt.Sprintf("score %s: %v", src.Path, err)
		return entry
	}
	entry.Score = v
	return entry
}
