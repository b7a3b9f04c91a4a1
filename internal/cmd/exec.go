package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/texsnip/texsnip/internal/config"
	"github.com/texsnip/texsnip/internal/errors"
	"github.com/texsnip/texsnip/internal/logging"
	"github.com/texsnip/texsnip/internal/run"
	"github.com/texsnip/texsnip/internal/tempdir"
)

var (
	execExpectStatus    int
	execSkipStatusCheck bool
	execInTempDir       bool
)

var execCmd = &cobra.Command{
	Use:   "exec -- <command> [args...]",
	Short: "Run an external tool the way the extension does",
	Long: `Run an external tool with texsnip's subprocess handling: combined
output capture, typed failure reporting, and optional execution inside a
throwaway scratch directory that is removed afterwards.

Useful for checking that a renderer invocation behaves before wiring it
into the extension, e.g.:

  texsnip exec -- pdflatex -interaction=nonstopmode snippet.tex
  texsnip exec --in-temp-dir -- pdflatex --version`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)
	execCmd.Flags().IntVar(&execExpectStatus, "expect-status", 0, "exit status treated as success")
	execCmd.Flags().BoolVar(&execSkipStatusCheck, "skip-status-check", false, "return captured output regardless of exit status")
	execCmd.Flags().BoolVar(&execInTempDir, "in-temp-dir", false, "run inside a scratch directory that is removed afterwards")
}

func runExec(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout := cfg.Renderer.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	runner := run.New(log)
	opts := run.Options{
		ExpectStatus:    execExpectStatus,
		SkipStatusCheck: execSkipStatusCheck,
	}

	var output []byte
	if execInTempDir {
		err = tempdir.Run(func(dir string) error {
			opts.Dir = dir
			var runErr error
			output, runErr = runner.RunWithOptions(ctx, opts, args[0], args[1:]...)
			return runErr
		})
	} else {
		output, err = runner.RunWithOptions(ctx, opts, args[0], args[1:]...)
	}

	if err != nil {
		// Show partial output before the failure; CommandFailedError
		// repeats it, CommandNotFoundError has none.
		var failed *errors.CommandFailedError
		if errors.As(err, &failed) && len(failed.Output) > 0 {
			_, _ = os.Stdout.Write(failed.Output)
		}
		return err
	}

	if len(output) > 0 {
		_, _ = os.Stdout.Write(output)
	}
	return nil
}

// openLogger builds the logger the subcommands share: file-backed with
// rotation when logging is enabled, a no-op logger otherwise. The returned
// close function is safe to call in all cases.
func openLogger(cfg *config.Config) (*logging.Logger, func(), error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), func() {}, nil
	}

	level := logging.ParseLevel(cfg.Logging.Level)

	log, err := logging.NewLoggerWithRotation(cfg.Paths.ResolveLogDir(), level, logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return log, func() { _ = log.Close() }, nil
}
