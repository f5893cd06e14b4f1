package shell

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/kubedeck/kubedeck/internal/domain/port/outbound"
)

// Runner executes trusted external binaries (kubectl, helm, k3d) with
// argument arrays. It never invokes a shell, so sanitized input stays a
// secondary defense rather than the injection barrier.
type Runner struct {
	timeout time.Duration
	logger  *slog.Logger
}

// NewRunner creates a Runner. timeout bounds every invocation.
func NewRunner(timeout time.Duration, logger *slog.Logger) *Runner {
	return &Runner{timeout: timeout, logger: logger}
}

var _ outbound.CommandRunner = (*Runner)(nil)

// Run executes program with args, capturing stdout and stderr. A non-zero
// exit is reported through ExitCode, not the error return; the error return is
// reserved for failures to start or complete the process.
func (r *Runner) Run(ctx context.Context, program string, args ...string) (outbound.RunResult, error) {
	return r.run(ctx, "", program, args...)
}

// RunWithInput is Run with stdin supplied, used for manifests piped to
// kubectl apply -f -.
func (r *Runner) RunWithInput(ctx context.Context, stdin, program string, args ...string) (outbound.RunResult, error) {
	return r.run(ctx, stdin, program, args...)
}

func (r *Runner) run(ctx context.Context, stdin, program string, args ...string) (outbound.RunResult, error) {
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, program, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			return outbound.RunResult{
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
				ExitCode: 1,
			}, fmt.Errorf("running %s: %w", program, err)
		}
	}

	r.logger.Debug("external command finished",
		"program", program, "args", args,
		"exitCode", exitCode, "duration", elapsed.Round(time.Millisecond))

	return outbound.RunResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}, nil
}
