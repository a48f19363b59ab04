package subprocess

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/wagiedev/mcpdev-go/internal/errors"
)

const (
	// maxOutputBufferSize caps captured stdout and stderr per stream.
	// Output beyond the cap is read and discarded.
	maxOutputBufferSize = 1024 * 1024 // 1MB

	// waitDelay bounds how long Run waits for output pipes after the process exits.
	waitDelay = 5 * time.Second
)

// Command describes a process to run.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

// String returns the command line for logs and errors.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Result is the outcome of a process that ran to completion.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the process exited with status 0.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Runner runs commands.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct {
	log *slog.Logger
}

// Compile-time verification that ExecRunner implements Runner.
var _ Runner = (*ExecRunner)(nil)

// NewRunner creates an ExecRunner.
func NewRunner(log *slog.Logger) *ExecRunner {
	return &ExecRunner{log: log.With("component", "subprocess")}
}

// Run spawns cmd and waits for it to exit.
//
// A non-zero exit is reported through Result.ExitCode. A process that cannot
// be started or awaited returns a *errors.ProcessError.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	r.log.Debug("Running command", "command", cmd.String(), "dir", cmd.Dir)

	//nolint:gosec // G204: Subprocess launching with dynamic args is expected for tool execution
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.WaitDelay = waitDelay

	if len(cmd.Env) > 0 {
		c.Env = append(c.Environ(), cmd.Env...)
	}

	stdout := &cappedBuffer{limit: maxOutputBufferSize}
	stderr := &cappedBuffer{limit: maxOutputBufferSize}
	c.Stdout = stdout
	c.Stderr = stderr

	err := c.Run()

	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err == nil {
		return result, nil
	}

	if exitErr, ok := stderrors.AsType[*exec.ExitError](err); ok && ctx.Err() == nil {
		result.ExitCode = exitErr.ExitCode()
		r.log.Debug("Command exited non-zero", "command", cmd.String(), "exit_code", result.ExitCode)

		return result, nil
	}

	r.log.Error("Command failed", "command", cmd.String(), "error", err)

	return nil, &errors.ProcessError{
		Command:  cmd.String(),
		ExitCode: -1,
		Stderr:   result.Stderr,
		Err:      err,
	}
}

// cappedBuffer keeps at most limit bytes and silently drops the rest.
type cappedBuffer struct {
	buf   bytes.Buffer
	limit int
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if room := b.limit - b.buf.Len(); room > 0 {
		if len(p) > room {
			b.buf.Write(p[:room])
		} else {
			b.buf.Write(p)
		}
	}

	return len(p), nil
}

func (b *cappedBuffer) String() string {
	return b.buf.String()
}
