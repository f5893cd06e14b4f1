package shell

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func testRunner() *Runner {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRunner(5*time.Second, logger)
}

func TestRun_CapturesStdout(t *testing.T) {
	r := testRunner()

	result, err := r.Run(context.Background(), "echo", "hello", "world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ExitCode != 0 {
		t.Errorf("expected exit 0, got %d", result.ExitCode)
	}
	if strings.TrimSpace(result.Stdout) != "hello world" {
		t.Errorf("unexpected stdout: %q", result.Stdout)
	}
}

func TestRun_NonZeroExit(t *testing.T) {
	r := testRunner()

	result, err := r.Run(context.Background(), "false")
	if err != nil {
		t.Fatalf("expected exit code via result, got error: %v", err)
	}
	if result.ExitCode == 0 {
		t.Error("expected non-zero exit code from false")
	}
}

func TestRun_MissingBinary(t *testing.T) {
	r := testRunner()

	_, err := r.Run(context.Background(), "definitely-not-a-binary-kubedeck")
	if err == nil {
		t.Error("expected start error for missing binary")
	}
}

func TestRunWithInput(t *testing.T) {
	r := testRunner()

	result, err := r.RunWithInput(context.Background(), "piped input\n", "cat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Stdout != "piped input\n" {
		t.Errorf("expected stdin echoed back, got %q", result.Stdout)
	}
}

func TestRun_Timeout(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := NewRunner(50*time.Millisecond, logger)

	result, err := r.Run(context.Background(), "sleep", "5")
	// Killed by the context deadline: either a process error or a non-zero exit.
	if err == nil && result.ExitCode == 0 {
		t.Error("expected timeout to terminate the process")
	}
}
