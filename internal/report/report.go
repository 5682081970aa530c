// Package report holds the JSON ranking report written by `sharpgrade
// rank` and read back by `stats` and `validate`.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/AnyUserName/sharpgrade/internal/score"
)

// New creates an empty report for criterion c with a fresh run id.
func New(profileName string, c score.Criterion) *Report {
	return &Report{
		Version:     SupportedVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		RunID:       uuid.NewString(),
		Profile:     profileName,
		Criterion:   CriterionOf(c),
		Entries:     []Entry{},
	}
}

// CriterionOf converts c to its serialized form.
func CriterionOf(c score.Criterion) Criterion {
	out := Criterion{Metric: c.Metric.String(), Target: c.Target.String()}
	if c.Metric == score.Sharpness {
		out.Method = c.Method.String()
	}
	return out
}

// ScoreCriterion parses the serialized criterion back.
func (c Criterion) ScoreCriterion() (score.Criterion, error) {
	var out score.Criterion
	var err error
	if out.Metric, err = score.ParseMetric(c.Metric); err != nil {
		return out, err
	}
	if c.Method != "" {
		if out.Method, err = score.ParseMethod(c.Method); err != nil {
			return out, err
		}
	}
	if out.Target, err = score.ParseTarget(c.Target); err != nil {
		return out, err
	}
	return out, out.Validate()
}

// ComputeStats recalculates aggregate statistics from entries.
func (r *Report) ComputeStats() {
	s := Stats{Total: len(r.Entries)}
	sum := 0.0
	for _, e := range r.Entries {
		if !e.Scored() {
			s.Failed++
			continue
		}
		if s.Scored == 0 {
			s.Min, s.Max = e.Score, e.Score
		}
		s.Min = math.Min(s.Min, e.Score)
		s.Max = math.Max(s.Max, e.Score)
		sum += e.Score
		s.Scored++
	}
	if s.Scored > 0 {
		s.Mean = sum / float64(s.Scored)
	}
	r.Stats = s
}

// SelectWinner runs the first-seen selection over the scored entries in
// index order and returns the winner.
func (r *Report) SelectWinner() (*Winner, error) {
	c, err := r.Criterion.ScoreCriterion()
	if err != nil {
		return nil, err
	}
	items := make([]score.Scored, 0, len(r.Entries))
	for _, e := range r.Entries {
		if e.Scored() {
			items = append(items, score.Scored{Index: e.Index, Value: e.Score})
		}
	}
	best, err := score.Select(items, c.Target)
	if err != nil {
		return nil, err
	}
	for _, e := range r.Entries {
		if e.Index == best.Index {
			return &Winner{Index: e.Index, Path: e.Path, Score: e.Score}, nil
		}
	}
	return nil, fmt.Errorf("winner index %d not among entries", best.Index)
}

// Ranked returns the scored entries ordered best first. Ties keep input
// order, so Ranked()[0] is the winner.
func (r *Report) Ranked() []Entry {
	t, err := score.ParseTarget(r.Criterion.Target)
	if err != nil {
		t = score.Maximum
	}
	var out []Entry
	for _, e := range r.Entries {
		if e.Scored() {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return t.Better(out[i].Score, out[j].Score)
	})
	return out
}

// Check verifies the report is self-consistent: supported version, stats
// matching the entries and a winner equal to the recomputed one. File
// existence and hashes are the caller's business.
func (r *Report) Check() []error {
	var errs []error
	if r.Version != SupportedVersion {
		errs = append(errs, fmt.Errorf("unsupported version %d (want %d)", r.Version, SupportedVersion))
	}
	for i, e := range r.Entries {
		if e.Index != i {
			errs = append(errs, fmt.Errorf("entry %d has index %d", i, e.Index))
		}
	}

	stored := r.Stats
	fresh := *r
	fresh.ComputeStats()
	if !statsEqual(stored, fresh.Stats) {
		errs = append(errs, fmt.Errorf("stats mismatch: stored %+v, recomputed %+v", stored, fresh.Stats))
	}

	want, err := r.SelectWinner()
	switch {
	case errors.Is(err, score.ErrEmptyBatch):
		if r.Winner != nil {
			errs = append(errs, fmt.Errorf("winner %q recorded but no entry was scored", r.Winner.Path))
		}
	case err != nil:
		errs = append(errs, err)
	case r.Winner == nil:
		errs = append(errs, fmt.Errorf("winner missing, expected %q", want.Path))
	case *r.Winner != *want:
		errs = append(errs, fmt.Errorf("winner %q (index %d), recomputed %q (index %d)",
			r.Winner.Path, r.Winner.Index, want.Path, want.Index))
	}
	return errs
}

func statsEqual(a, b Stats) bool {
	const tol = 1e-9
	near := func(x, y float64) bool {
		return math.Abs(x-y) <= tol*math.Max(1, math.Max(math.Abs(x), math.Abs(y)))
	}
	return a.Total == b.Total && a.Scored == b.Scored && a.Failed == b.Failed &&
		near(a.Min, b.Min) && near(a.Max, b.Max) && near(a.Mean, b.Mean)
}

// Encode writes r as indented JSON with a trailing newline.
func Encode(w io.Writer, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteJSON recomputes stats and serializes the report to path.
func WriteJSON(r *Report, path string) error {
	r.ComputeStats()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadJSON parses a report file.
func ReadJSON(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &r, nil
}
