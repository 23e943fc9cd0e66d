package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/catalogetl/catalogetl/internal/config"
	"github.com/catalogetl/catalogetl/internal/logging"
	"github.com/catalogetl/catalogetl/internal/model"
	"github.com/catalogetl/catalogetl/internal/report"
	"github.com/catalogetl/catalogetl/internal/runlog"
	"github.com/catalogetl/catalogetl/internal/runner"
	"github.com/catalogetl/catalogetl/internal/transform"
)

// runOptions are the flags shared by run and clean.
type runOptions struct {
	configPath string
	input      string
	output     string
	runLog     string
	logLevel   string
	logFormat  string
}

func (o *runOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.configPath, "config", "c", "", "config file (default ./"+config.FileName+" if present)")
	cmd.Flags().StringVarP(&o.input, "input", "i", "", "input catalog path")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output catalog path")
	cmd.Flags().StringVar(&o.runLog, "run-log", "", "append a run record to this CSV file")
	cmd.Flags().StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.Flags().StringVar(&o.logFormat, "log-format", "", "log format: text or json")
}

// resolve layers flags over the file and environment config.
func (o *runOptions) resolve() (*config.Config, error) {
	cfg, err := config.Resolve(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if o.input != "" {
		cfg.Input = o.input
	}
	if o.output != "" {
		cfg.Output = o.output
	}
	if o.runLog != "" {
		cfg.RunLog.Enabled = true
		cfg.RunLog.Path = o.runLog
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Logging.Format = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newRunCommand() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Apply pricing rules and price ranges to a product catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, "catalog", &opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func newCleanCommand() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Copy a file with blank lines removed and whitespace trimmed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(cmd, "clean", &opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func runTransform(cmd *cobra.Command, format string, opts *runOptions) error {
	cfg, err := opts.resolve()
	if err != nil {
		return err
	}

	logger := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)

	t := transform.DefaultRegistry().Get(format)
	if t == nil {
		return fmt.Errorf("unknown transform %q", format)
	}

	r := runner.New(t, logger)
	sum, runErr := r.Run(cfg.Input, cfg.Output)

	if cfg.RunLog.Enabled {
		appendRunLog(logger, cfg, t.Format(), sum, r.State())
	}

	out := cmd.OutOrStdout()
	switch {
	case errors.Is(runErr, runner.ErrInputMissing):
		_ = report.InputMissing(out, cfg.Input)
		return fmt.Errorf("%w: %w", ErrReported, runErr)
	case runErr != nil:
		logger.Error("processing failed", "error", runErr)
		_ = report.ProcessingFailed(out)
		return fmt.Errorf("%w: %w", ErrReported, runErr)
	}

	if err := report.Summary(out, sum, cfg.Output); err != nil {
		return fmt.Errorf("printing summary: %w", err)
	}
	return nil
}

func appendRunLog(logger *slog.Logger, cfg *config.Config, format string, sum model.RunSummary, state runner.State) {
	entry := runlog.NewEntry(time.Now(), format, cfg.Input, cfg.Output, sum, runStatus(state))
	if err := runlog.Append(cfg.RunLog.Path, []runlog.Entry{entry}); err != nil {
		logger.Warn("failed to write run log", "path", cfg.RunLog.Path, "error", err)
	}
}

func runStatus(state runner.State) runlog.Status {
	switch state {
	case runner.StateCompleted:
		return runlog.StatusCompleted
	case runner.StateInputMissing:
		return runlog.StatusInputMissing
	default:
		return runlog.StatusIOFailure
	}
}
