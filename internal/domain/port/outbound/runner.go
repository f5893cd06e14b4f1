package outbound

import "context"

// RunResult captures one external process invocation.
type RunResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CommandRunner executes a trusted external binary with an argument array.
// Implementations must never pass the command through a shell; the gatekeeper's
// sanitization is a secondary defense, not the injection barrier.
type CommandRunner interface {
	Run(ctx context.Context, program string, args ...string) (RunResult, error)
	RunWithInput(ctx context.Context, stdin, program string, args ...string) (RunResult, error)
}
