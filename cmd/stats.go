package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/sharpgrade/internal/report"
)

// defaultReportName is looked up when stats/validate get a directory.
const defaultReportName = "sharpgrade.report.json"

var statsTop int

var statsCmd = &cobra.Command{
	Use:   "stats <report_or_dir>",
	Short: "Display the ranking stored in a report",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsTop, "top", 0, "rows shown in the ranking table (0 = all)")
	rootCmd.AddCommand(statsCmd)
}

// reportPath accepts a report file or a directory holding one.
func reportPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return filepath.Join(path, defaultReportName), nil
	}
	return path, nil
}

func runStats(cmd *cobra.Command, args []string) error {
	path, err := reportPath(args[0])
	if err != nil {
		return err
	}
	r, err := report.ReadJSON(path)
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}
	printStats(cmd.OutOrStdout(), r, statsTop)
	return nil
}

func printStats(w io.Writer, r *report.Report, top int) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Report version:   %d\n", r.Version)
	fmt.Fprintf(w, "  Generated:        %s\n", r.GeneratedAt)
	fmt.Fprintf(w, "  Run:              %s\n", r.RunID)
	fmt.Fprintf(w, "  Profile:          %s\n", r.Profile)
	fmt.Fprintf(w, "  Params:           window=%d block=%d alpha=%g", r.Params.Window, r.Params.BlockSize, r.Params.Alpha)
	if r.Params.MaxDim > 0 {
		fmt.Fprintf(w, " max-dim=%d", r.Params.MaxDim)
	}
	fmt.Fprintln(w)
	if r.BuildInfo != nil {
		fmt.Fprintf(w, "  Workers:          %d\n", r.BuildInfo.Workers)
	}
	printRanking(w, r, top, 0)

	// Warnings.
	var warnings []string
	if r.Stats.Total != len(r.Entries) {
		warnings = append(warnings, fmt.Sprintf("stats.total %d but %d entries", r.Stats.Total, len(r.Entries)))
	}
	if r.Winner == nil && r.Stats.Scored > 0 {
		warnings = append(warnings, "no winner recorded")
	}
	for _, e := range r.Entries {
		if e.Scored() && e.Hash == "" {
			warnings = append(warnings, fmt.Sprintf("entry %q missing hash", e.Path))
		}
	}
	if len(warnings) > 0 {
		fmt.Fprintf(w, "  Warnings (%d):\n", len(warnings))
		for _, s := range warnings {
			fmt.Fprintf(w, "    ! %s\n", s)
		}
		fmt.Fprintln(w)
	}
}
