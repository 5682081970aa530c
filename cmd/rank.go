package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/sharpgrade/internal/pipeline"
	"github.com/AnyUserName/sharpgrade/internal/report"
	"github.com/AnyUserName/sharpgrade/internal/score"
)

var (
	rankMetric string
	rankMethod string
	rankTarget string
	rankReport string
	rankMaxDim int
	rankTop    int
)

var rankCmd = &cobra.Command{
	Use:   "rank <image_or_dir>...",
	Short: "Score a batch of images and pick the best one",
	Long: `Scores every input (files, or directories scanned recursively for
png, jpg, jpeg, webp, gif, bmp and tiff) under one criterion and prints
the ranking. The winner is the highest score; for --metric contrast
--target minimum it is the lowest. Ties go to the earliest input.

Files that cannot be decoded are reported and skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRank,
}

func init() {
	f := rankCmd.Flags()
	f.StringVar(&rankMetric, "metric", "sharpness", "sharpness, contrast or brightness")
	f.StringVarP(&rankMethod, "method", "m", "wavelet", "sharpness estimator: gaussian, mean, median, wavelet")
	f.StringVarP(&rankTarget, "target", "t", "maximum", "maximum or minimum (minimum: contrast only)")
	f.StringVarP(&rankReport, "report", "r", "", "write a JSON report to this path")
	f.IntVar(&rankMaxDim, "max-dim", 0, "downscale inputs to fit this size before scoring (0 = off)")
	f.IntVar(&rankTop, "top", 10, "rows shown in the ranking table (0 = all)")
	f.IntP("workers", "w", 0, "parallel workers (0 = NumCPU)")
	addScoreFlags(rankCmd)
	rootCmd.AddCommand(rankCmd)
}

// addScoreFlags registers the estimator tunables; unset flags fall back
// to the profile.
func addScoreFlags(c *cobra.Command) {
	f := c.Flags()
	f.Int("window", 5, "high-pass smoothing window (odd)")
	f.Int("block-size", 8, "wavelet block size")
	f.Float64("alpha", 1, "wavelet exponent")
}

func scoreParams(c *cobra.Command) score.Params {
	p := prof.ScoreParams()
	overrideInt(c, "window", &p.Window)
	overrideInt(c, "block-size", &p.Wavelet.BlockSize)
	overrideFloat(c, "alpha", &p.Wavelet.Alpha)
	return p
}

func parseCriterion(metric, method, target string) (score.Criterion, error) {
	var c score.Criterion
	var err error
	if c.Metric, err = score.ParseMetric(metric); err != nil {
		return c, err
	}
	if c.Method, err = score.ParseMethod(method); err != nil {
		return c, err
	}
	if c.Target, err = score.ParseTarget(target); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func runRank(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx := cmd.Context()

	crit, err := parseCriterion(rankMetric, rankMethod, rankTarget)
	if err != nil {
		return err
	}
	workers := prof.Workers
	overrideInt(cmd, "workers", &workers)
	params := scoreParams(cmd)

	logger.Debug("rank", "inputs", args, "criterion", crit.String(),
		"window", params.Window, "block_size", params.Wavelet.BlockSize, "alpha", params.Wavelet.Alpha)

	p := pipeline.New(pipeline.Config{
		Inputs:    args,
		Criterion: crit,
		Params:    params,
		Profile:   prof.Name,
		Workers:   workers,
		MaxDim:    rankMaxDim,
		Tool:      version,
		Logger:    logger,
	})
	r, runErr := p.Run(ctx)
	if r == nil {
		return fmt.Errorf("pipeline: %w", runErr)
	}

	if rankReport != "" {
		if err := report.WriteJSON(r, rankReport); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logger.Info("report written", "path", rankReport, "run_id", r.RunID)
	}
	printRanking(cmd.OutOrStdout(), r, rankTop, time.Since(start))
	if runErr != nil {
		return fmt.Errorf("pipeline: %w", runErr)
	}
	return nil
}

func printRanking(w io.Writer, r *report.Report, top int, elapsed time.Duration) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Criterion:   %s\n", describeCriterion(r.Criterion))
	fmt.Fprintf(w, "  Images:      %d scored, %d failed\n", r.Stats.Scored, r.Stats.Failed)
	if r.Stats.Scored > 0 {
		fmt.Fprintf(w, "  Scores:      min %.6g  max %.6g  mean %.6g\n", r.Stats.Min, r.Stats.Max, r.Stats.Mean)
	}
	if elapsed > 0 {
		fmt.Fprintf(w, "  Time:        %s\n", elapsed.Round(time.Millisecond))
	}
	fmt.Fprintln(w)

	ranked := r.Ranked()
	n := len(ranked)
	if top > 0 && top < n {
		n = top
	}
	if n > 0 {
		fmt.Fprintf(w, "  Top %d:\n", n)
		for i, e := range ranked[:n] {
			mark := " "
			if r.Winner != nil && e.Index == r.Winner.Index {
				mark = "*"
			}
			fmt.Fprintf(w, "  %s %3d. %-48s %14.6g  %dx%d\n", mark, i+1, truncPath(e.Path, 48), e.Score, e.Width, e.Height)
		}
		fmt.Fprintln(w)
	}
	for _, e := range r.Entries {
		if !e.Scored() {
			fmt.Fprintf(w, "  ! %s: %s\n", truncPath(e.Path, 48), e.Error)
		}
	}
	if r.Winner != nil {
		fmt.Fprintf(w, "  Winner:      %s (%.6g)\n", r.Winner.Path, r.Winner.Score)
	}
	fmt.Fprintln(w)
}

func describeCriterion(c report.Criterion) string {
	if c.Method != "" {
		return fmt.Sprintf("%s (%s), %s", c.Metric, c.Method, c.Target)
	}
	return fmt.Sprintf("%s, %s", c.Metric, c.Target)
}

func truncPath(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}

// resolvePath joins a relative report path onto base.
func resolvePath(base, p string) string {
	if filepath.IsAbs(p) || base == "" {
		return p
	}
	return filepath.Join(base, p)
}
