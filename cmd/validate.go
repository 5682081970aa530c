package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/sharpgrade/internal/hasher"
	"github.com/AnyUserName/sharpgrade/internal/report"
)

var validateBase string

var validateCmd = &cobra.Command{
	Use:   "validate <report_or_dir>",
	Short: "Check a report against the files it ranked",
	Long: `Checks the schema version, that every scored file still exists with
the recorded hash, that the stats match the entries and that the stored
winner is the one the entries select. Relative entry paths are resolved
against --base (default: the working directory, as rank records them).`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateBase, "base", "", "directory relative entry paths are resolved against")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path, err := reportPath(args[0])
	if err != nil {
		return err
	}
	r, err := report.ReadJSON(path)
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}

	errs := validateReport(r, validateBase)
	return printValidation(cmd.OutOrStdout(), r, errs)
}

func printValidation(w io.Writer, r *report.Report, errs []string) error {
	if len(errs) == 0 {
		fmt.Fprintln(w, "  ✓ Report is valid")
		fmt.Fprintf(w, "  ✓ %d entries, %d scored, all files unchanged\n", r.Stats.Total, r.Stats.Scored)
		return nil
	}
	fmt.Fprintf(w, "  ✗ Report has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(w, "    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

func validateReport(r *report.Report, base string) []string {
	var errs []string
	for _, err := range r.Check() {
		errs = append(errs, err.Error())
	}

	seen := map[string]bool{}
	for _, e := range r.Entries {
		if e.Path == "" {
			errs = append(errs, fmt.Sprintf("entry %d: missing path", e.Index))
			continue
		}
		if seen[e.Path] {
			errs = append(errs, fmt.Sprintf("entry %d: duplicate path %q", e.Index, e.Path))
		}
		seen[e.Path] = true

		if !e.Scored() {
			continue
		}
		if e.Width <= 0 || e.Height <= 0 {
			errs = append(errs, fmt.Sprintf("entry %q: invalid dimensions %dx%d", e.Path, e.Width, e.Height))
		}
		if e.Hash == "" {
			errs = append(errs, fmt.Sprintf("entry %q: missing hash", e.Path))
			continue
		}
		sum, err := hasher.FileHash(resolvePath(base, e.Path), len(e.Hash))
		switch {
		case err != nil:
			errs = append(errs, fmt.Sprintf("entry %q: %v", e.Path, err))
		case sum != e.Hash:
			errs = append(errs, fmt.Sprintf("entry %q: hash mismatch: report=%s, disk=%s", e.Path, e.Hash, sum))
		}
	}
	return errs
}
