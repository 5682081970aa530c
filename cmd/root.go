package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/sharpgrade/internal/logging"
	"github.com/AnyUserName/sharpgrade/internal/profile"
)

var (
	version = "0.1.0"
	verbose bool

	logLevel    string
	logJSON     bool
	logFile     string
	envFile     string
	profileName string

	logger    = slog.Default()
	logCloser io.Closer
	prof      profile.Profile
)

var rootCmd = &cobra.Command{
	Use:   "sharpgrade",
	Short: "Rank photos by sharpness, contrast or brightness and retouch their tone",
	Long: `sharpgrade scores a batch of images with a high-pass or wavelet
sharpness estimator, histogram contrast or perceptual brightness, and
picks the best one. It also adjusts exposure and local contrast in the
BCH or CIE-LAB colour spaces without shifting hue.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

// Execute runs the CLI; ctx is cancelled on SIGINT/SIGTERM.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output (same as --log-level DEBUG)")
	pf.StringVar(&logLevel, "log-level", "INFO", "log level (DEBUG, INFO, WARN, ERROR)")
	pf.BoolVar(&logJSON, "log-json", false, "emit logs as JSON")
	pf.StringVar(&logFile, "log-file", "", "write logs to a rotated file instead of stderr")
	pf.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading SHARPGRADE_* variables")
	pf.StringVarP(&profileName, "profile", "p", "default", "parameter profile (default, fine, coarse)")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"sharpgrade %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// setup loads the dotenv file, builds the logger and resolves the
// profile: built-in < environment < flags.
func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envFile, err)
	}

	flags := cmd.Flags()
	levelText := logLevel
	if !flags.Changed("log-level") {
		if v := os.Getenv(profile.EnvLogLevel); v != "" {
			levelText = v
		}
	}
	level, ok := logging.ParseLevel(levelText)
	if verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	if logFile != "" {
		fw := logging.FileWriter(logFile, 0)
		w, logCloser = fw, fw
	}
	logger = logging.Logger(w, logJSON, level)
	slog.SetDefault(logger)
	if !ok {
		logger.Warn("invalid log level, defaulting to INFO", "level", levelText)
	}

	name := profileName
	if flags.Changed("profile") {
		// An explicit flag beats SHARPGRADE_PROFILE.
		p, err := profile.ApplyEnv(profile.Get(name), os.Getenv)
		if err != nil {
			return err
		}
		prof = p
	} else {
		p, err := profile.FromEnv(name, os.Getenv)
		if err != nil {
			return err
		}
		prof = p
	}
	logger.Debug("profile resolved",
		"profile", prof.Name, "window", prof.Window, "block_size", prof.BlockSize,
		"alpha", prof.Alpha, "contrast_window", prof.ContrastWindow, "lab_window", prof.LabWindow)
	return nil
}

// overrideInt copies a flag value over dst only when the user set it.
func overrideInt(cmd *cobra.Command, name string, dst *int) {
	if cmd.Flags().Changed(name) {
		*dst, _ = cmd.Flags().GetInt(name)
	}
}

func overrideFloat(cmd *cobra.Command, name string, dst *float64) {
	if cmd.Flags().Changed(name) {
		*dst, _ = cmd.Flags().GetFloat64(name)
	}
}
