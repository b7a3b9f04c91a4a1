// Package run executes external tools on behalf of the extension.
//
// It wraps os/exec with the error contract the rest of texsnip relies on: a
// command that cannot be launched surfaces as a CommandNotFoundError, and a
// command that exits with an unexpected status surfaces as a
// CommandFailedError carrying the exit code and the captured output.
package run

import (
	"context"
	"os/exec"
	"strings"

	"github.com/texsnip/texsnip/internal/errors"
	"github.com/texsnip/texsnip/internal/logging"
)

// Options controls a single command invocation.
type Options struct {
	// Dir is the working directory for the command. Empty means inherit.
	Dir string

	// Env is the environment for the command. Nil means inherit.
	Env []string

	// ExpectStatus is the exit status considered successful. Defaults to 0.
	ExpectStatus int

	// SkipStatusCheck disables the exit status comparison entirely; the
	// captured output is returned regardless of how the command exited.
	SkipStatusCheck bool
}

// Runner executes external commands with shared logging.
type Runner struct {
	log *logging.Logger
}

// New creates a Runner. A nil logger discards command tracing.
func New(log *logging.Logger) *Runner {
	if log == nil {
		log = logging.NopLogger()
	}
	return &Runner{log: log}
}

// Run executes the command and returns its combined stdout and stderr.
// A non-zero exit status is reported as a CommandFailedError.
func (r *Runner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return r.RunWithOptions(ctx, Options{}, name, args...)
}

// RunWithOptions executes the command with explicit options and returns its
// combined stdout and stderr.
//
// Failure modes:
//   - the executable cannot be launched: *errors.CommandNotFoundError
//   - the command exits with a status other than opts.ExpectStatus:
//     *errors.CommandFailedError with the exit code and captured output
func (r *Runner) RunWithOptions(ctx context.Context, opts Options, name string, args ...string) ([]byte, error) {
	cmdline := commandLine(name, args)

	end := r.log.BeginDebug("running " + cmdline)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = opts.Dir
	cmd.Env = opts.Env
	// Keeps the console window of CLI tools hidden on Windows.
	cmd.SysProcAttr = hiddenWindowAttr()

	output, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		// Launched and exited with status 0.
	case errors.As(err, &exitErr):
		// Launched but exited non-zero; handled by the status check below.
	default:
		notFound := errors.NewCommandNotFoundError(cmdline, err)
		end(notFound)
		return nil, notFound
	}

	exitCode := cmd.ProcessState.ExitCode()
	if !opts.SkipStatusCheck && exitCode != opts.ExpectStatus {
		failed := errors.NewCommandFailedError(cmdline, exitCode, output)
		end(failed)
		return nil, failed
	}

	r.log.Debug("command completed", "exit_code", exitCode, "output_bytes", len(output))
	end(nil)
	return output, nil
}

// Command executes a command without a configured Runner, expecting exit
// status 0. Convenience for call sites that have no logger at hand.
func Command(ctx context.Context, name string, args ...string) ([]byte, error) {
	return New(nil).Run(ctx, name, args...)
}

// commandLine renders the argument vector for error messages and logs.
func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
