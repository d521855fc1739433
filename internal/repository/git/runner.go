package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/oshokin/get-version/internal/domain/release"
	"github.com/oshokin/get-version/internal/logger"
)

// waitDelay bounds how long output is drained after the process is killed.
const waitDelay = time.Second

// Runner executes an external binary and returns its standard output.
type Runner interface {
	// Output returns stdout with surrounding whitespace trimmed.
	Output(ctx context.Context, args ...string) (string, error)
	// Lines returns stdout split into trimmed, non-empty lines.
	Lines(ctx context.Context, args ...string) ([]string, error)
}

// ExecRunner runs a binary through os/exec.
type ExecRunner struct {
	// binary is the executable name or path.
	binary string
	// dir is the working directory; empty means the current one.
	dir string
	// timeout bounds a single invocation; zero disables it.
	timeout time.Duration
}

// Option configures runner behaviour.
type Option func(*ExecRunner)

// WithDir runs commands inside the given directory.
func WithDir(dir string) Option {
	return func(r *ExecRunner) {
		r.dir = dir
	}
}

// WithTimeout bounds every invocation.
func WithTimeout(timeout time.Duration) Option {
	return func(r *ExecRunner) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// NewExecRunner creates a runner for the given binary.
func NewExecRunner(binary string, opts ...Option) *ExecRunner {
	r := &ExecRunner{
		binary: binary,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Output runs the binary and returns trimmed stdout.
// A non-zero exit status is reported as release.ErrCommandFailed.
func (r *ExecRunner) Output(ctx context.Context, args ...string) (string, error) {
	callCtx, cancel := r.callContext(ctx)
	defer cancel()

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(callCtx, r.binary, args...)
	cmd.Dir = r.dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	logger.DebugKV(ctx, "Running command", "binary", r.binary, "args", args, "dir", r.dir)

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s %s: %w: %s",
			release.ErrCommandFailed, r.binary, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Lines runs the binary and splits stdout into trimmed, non-empty lines.
func (r *ExecRunner) Lines(ctx context.Context, args ...string) ([]string, error) {
	out, err := r.Output(ctx, args...)
	if err != nil {
		return nil, err
	}

	return splitLines(out), nil
}

// callContext returns a context with the runner's timeout if configured,
// otherwise a cancellable child context without a deadline.
func (r *ExecRunner) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, r.timeout)
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}

	raw := strings.Split(s, "\n")
	lines := make([]string, 0, len(raw))

	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
