package cmd

import (
	"fmt"
	"image"
	"io"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/sharpgrade/internal/pipeline"
	"github.com/AnyUserName/sharpgrade/internal/score"
)

var scoreMaxDim int

var scoreCmd = &cobra.Command{
	Use:   "score <image>",
	Short: "Print every sharpness, contrast and brightness score of one image",
	Args:  cobra.ExactArgs(1),
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().IntVar(&scoreMaxDim, "max-dim", 0, "downscale to fit this size before scoring (0 = off)")
	addScoreFlags(scoreCmd)
	rootCmd.AddCommand(scoreCmd)
}

// metricScore is one line of `sharpgrade score` output.
type metricScore struct {
	Name  string
	Value float64
}

func allScores(img image.Image, p score.Params) ([]metricScore, error) {
	var out []metricScore
	for _, m := range []score.Method{score.Gaussian, score.Mean, score.Median, score.Wavelet} {
		v, err := score.SharpnessScore(img, m, p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m, err)
		}
		out = append(out, metricScore{Name: "sharpness/" + m.String(), Value: v})
	}
	c, err := score.ContrastScore(img)
	if err != nil {
		return nil, err
	}
	b, err := score.BrightnessScore(img)
	if err != nil {
		return nil, err
	}
	return append(out,
		metricScore{Name: "contrast", Value: c},
		metricScore{Name: "brightness", Value: b},
	), nil
}

func runScore(cmd *cobra.Command, args []string) error {
	loaded, err := pipeline.Open(args[0], scoreMaxDim)
	if err != nil {
		return err
	}
	params := scoreParams(cmd)
	scores, err := allScores(loaded.Image, params)
	if err != nil {
		return err
	}
	logger.Debug("scored", "path", args[0], "width", loaded.Width, "height", loaded.Height)
	printScores(cmd.OutOrStdout(), args[0], loaded, scores)
	return nil
}

func printScores(w io.Writer, path string, l pipeline.Loaded, scores []metricScore) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s (%dx%d)\n", path, l.Width, l.Height)
	for _, s := range scores {
		fmt.Fprintf(w, "    %-22s %14.6g\n", s.Name, s.Value)
	}
	fmt.Fprintln(w)
}
