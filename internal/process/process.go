// Package process runs the external toolchain commands a build depends on.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"git.home.luguber.info/inful/cosmofactory/internal/logfields"
)

// ErrNotFound is wrapped when the command binary cannot be located on PATH.
var ErrNotFound = errors.New("command not found")

// Result is the captured outcome of a finished process.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Output returns stdout and stderr joined, trimmed of surrounding whitespace.
func (r *Result) Output() string {
	out := strings.TrimSpace(string(r.Stdout))
	errOut := strings.TrimSpace(string(r.Stderr))
	switch {
	case out == "":
		return errOut
	case errOut == "":
		return out
	default:
		return out + "\n" + errOut
	}
}

// Runner starts a command in dir and waits for it. A non-zero exit is reported
// through Result.ExitCode, not as an error; errors mean the process could not be
// run at all or the context ended.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (*Result, error)
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, dir, name string, args ...string) (*Result, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, dir, name string, args ...string) (*Result, error) {
	return f(ctx, dir, name, args...)
}

// Exec runs commands with os/exec.
type Exec struct{}

// Run implements Runner.
func (Exec) Run(ctx context.Context, dir, name string, args ...string) (*Result, error) {
	if _, err := exec.LookPath(name); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, name, err)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	commandLine := strings.Join(append([]string{name}, args...), " ")
	slog.Debug("Running command", logfields.Command(commandLine), logfields.Path(dir))

	err := cmd.Run()
	res := &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("run %s: %w", name, err)
		}
		res.ExitCode = exitErr.ExitCode()
	}
	slog.Debug("Command finished", logfields.Command(commandLine), slog.Int("exit_code", res.ExitCode))
	return res, nil
}
