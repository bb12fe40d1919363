// Package executil is the minimal process-execution capability used to drive
// external command-line tools such as git. Everything that shells out goes
// through Runner so it can be replaced by a fake in tests.
package executil

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/arthur-debert/matrix/pkg/logging"
	"github.com/rs/zerolog"
)

// ErrTimeout is returned by Run when the command's timeout elapsed before it
// finished.
var ErrTimeout = errors.New("command timed out")

// Command describes one subprocess invocation.
type Command struct {
	Name    string
	Args    []string
	Dir     string
	Timeout time.Duration
}

// Result carries the captured output of a finished command. ExitCode is -1
// when the process could not be started or was killed.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner runs commands with captured output.
//
// Run returns a nil error for a command that ran to completion, whatever its
// exit code; callers inspect Result.ExitCode. A non-nil error means the
// command could not run or hit its timeout (ErrTimeout).
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
	LookPath(name string) error
}

type execRunner struct {
	logger zerolog.Logger
}

// NewRunner returns a Runner backed by os/exec.
func NewRunner() Runner {
	return &execRunner{logger: logging.GetLogger("executil")}
}

func (r *execRunner) LookPath(name string) error {
	_, err := exec.LookPath(name)
	return err
}

func (r *execRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	logging.LogCommand(r.logger, cmd.Name, cmd.Args)

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: -1,
	}
	if c.ProcessState != nil {
		result.ExitCode = c.ProcessState.ExitCode()
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return result, ErrTimeout
	}
	if ctx.Err() != nil {
		return result, ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return result, nil
	}
	return result, err
}
