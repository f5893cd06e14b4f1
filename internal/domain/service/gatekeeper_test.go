package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/kubedeck/kubedeck/internal/domain/model"
)

type recordingAuditor struct {
	commands []string
	remotes  []string
}

func (r *recordingAuditor) AuditDestructive(_ context.Context, command, remote string) {
	r.commands = append(r.commands, command)
	r.remotes = append(r.remotes, remote)
}

func testGatekeeper(auditor CommandAuditor) *Gatekeeper {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewGatekeeper(DefaultGatekeeperConfig(), auditor, logger)
}

func TestValidate_MissingPrefix(t *testing.T) {
	g := testGatekeeper(nil)
	_, err := g.Validate(context.Background(), "get pods", "")

	var cmdErr *model.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected CommandError, got %v", err)
	}
	if cmdErr.Kind != model.ErrInvalidCommand {
		t.Errorf("expected invalid_command, got %s", cmdErr.Kind)
	}
	if !strings.Contains(cmdErr.Detail, "kubectl get pods") {
		t.Errorf("expected detail to carry a usage example, got %q", cmdErr.Detail)
	}
}

func TestValidate_PrefixOnly(t *testing.T) {
	g := testGatekeeper(nil)
	_, err := g.Validate(context.Background(), "kubectl", "")

	var cmdErr *model.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Kind != model.ErrInvalidCommand {
		t.Fatalf("expected invalid_command for bare prefix, got %v", err)
	}
}

func TestValidate_Whitelist(t *testing.T) {
	g := testGatekeeper(nil)
	ctx := context.Background()

	allowed := []string{
		"kubectl get pods -A",
		"kubectl describe pod mypod",
		"kubectl logs mypod",
		"kubectl rollout restart deployment/web",
		"kubectl version",
		"kubectl port-forward pod/mypod 8080:80",
		"kubectl api-resources",
		"kubectl api-versions",
		"kubectl cluster-info",
	}
	for _, cmd := range allowed {
		if _, err := g.Validate(ctx, model.RawCommand(cmd), ""); err != nil {
			t.Errorf("expected %q to validate, got %v", cmd, err)
		}
	}

	denied := []string{
		"kubectl drain node1",
		"kubectl cordon node1",
		"kubectl taint nodes node1 key=value:NoSchedule",
		"kubectl proxy",
	}
	for _, cmd := range denied {
		_, err := g.Validate(ctx, model.RawCommand(cmd), "")
		var cmdErr *model.CommandError
		if !errors.As(err, &cmdErr) {
			t.Errorf("expected CommandError for %q, got %v", cmd, err)
			continue
		}
		if cmdErr.Kind != model.ErrForbidden {
			t.Errorf("expected forbidden for %q, got %s", cmd, cmdErr.Kind)
		}
	}
}

// Hyphenated subcommands must be extracted whole; a word-only match would
// truncate "port-forward" to "port" and wrongly reject it.
func TestValidate_HyphenatedSubcommands(t *testing.T) {
	g := testGatekeeper(nil)
	ctx := context.Background()

	tests := []struct {
		command string
		sub     string
	}{
		{"kubectl port-forward pod/foo 8080:80", "port-forward"},
		{"kubectl api-resources", "api-resources"},
		{"kubectl api-versions", "api-versions"},
		{"kubectl cluster-info", "cluster-info"},
	}
	for _, tt := range tests {
		v, err := g.Validate(ctx, model.RawCommand(tt.command), "")
		if err != nil {
			t.Errorf("expected %q to validate, got %v", tt.command, err)
			continue
		}
		if v.Subcommand != tt.sub {
			t.Errorf("subcommand for %q: got %q want %q", tt.command, v.Subcommand, tt.sub)
		}
	}
}

func TestValidate_ForbiddenNamesSubcommand(t *testing.T) {
	g := testGatekeeper(nil)
	_, err := g.Validate(context.Background(), "kubectl drain node1", "")

	var cmdErr *model.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected CommandError, got %v", err)
	}
	if !strings.Contains(cmdErr.Detail, "drain") {
		t.Errorf("expected rejected subcommand named in detail, got %q", cmdErr.Detail)
	}
}

func TestValidate_DeleteAudited(t *testing.T) {
	auditor := &recordingAuditor{}
	g := testGatekeeper(auditor)
	ctx := context.Background()

	v, err := g.Validate(ctx, "kubectl delete pod foo", "10.0.0.1")
	if err != nil {
		t.Fatalf("expected delete to validate, got %v", err)
	}
	if !v.Destructive {
		t.Error("expected delete without --dry-run to be marked destructive")
	}
	if len(auditor.commands) != 1 || auditor.commands[0] != "kubectl delete pod foo" {
		t.Errorf("expected one audited command, got %v", auditor.commands)
	}
	if auditor.remotes[0] != "10.0.0.1" {
		t.Errorf("expected remote recorded, got %v", auditor.remotes)
	}
}

func TestValidate_DryRunDeleteNotAudited(t *testing.T) {
	auditor := &recordingAuditor{}
	g := testGatekeeper(auditor)

	v, err := g.Validate(context.Background(), "kubectl delete pod foo --dry-run=client", "")
	if err != nil {
		t.Fatalf("expected dry-run delete to validate, got %v", err)
	}
	if v.Destructive {
		t.Error("expected dry-run delete to not be marked destructive")
	}
	if len(auditor.commands) != 0 {
		t.Errorf("expected no audit, got %v", auditor.commands)
	}
}

func TestValidate_Sanitization(t *testing.T) {
	g := testGatekeeper(nil)

	v, err := g.Validate(context.Background(), "kubectl get pods; rm -rf / | cat $(whoami) `id`", "")
	if err != nil {
		t.Fatalf("expected command to validate, got %v", err)
	}
	for _, ch := range ";&|`$(){}[]\\!#*?\"'<>" {
		if strings.ContainsRune(v.Line, ch) {
			t.Errorf("sanitized line still contains %q: %q", ch, v.Line)
		}
	}
}

// Sanitization strips shell metacharacters only; spaces and tabs survive so
// multi-token commands remain executable. This is a deliberate correction of
// behavior that would otherwise collapse every command into a single token.
func TestValidate_SanitizationPreservesSpaces(t *testing.T) {
	g := testGatekeeper(nil)

	v, err := g.Validate(context.Background(), "kubectl get pods -A", "")
	if err != nil {
		t.Fatalf("expected command to validate, got %v", err)
	}
	if v.Line != "kubectl get pods -A" {
		t.Errorf("expected spaces preserved, got %q", v.Line)
	}
	want := []string{"get", "pods", "-A"}
	if len(v.Args) != len(want) {
		t.Fatalf("expected args %v, got %v", want, v.Args)
	}
	for i := range want {
		if v.Args[i] != want[i] {
			t.Errorf("arg %d: expected %q, got %q", i, want[i], v.Args[i])
		}
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	g := testGatekeeper(nil)

	once := g.sanitize("kubectl get pods; echo $(whoami) | cat")
	twice := g.sanitize(once)
	if once != twice {
		t.Errorf("sanitize not idempotent: %q != %q", once, twice)
	}
}

func TestValidate_CustomWhitelist(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	g := NewGatekeeper(GatekeeperConfig{
		Prefix:             "kubectl",
		AllowedSubcommands: []string{"get"},
		StripCharacters:    DefaultStripCharacters,
	}, nil, logger)
	ctx := context.Background()

	if _, err := g.Validate(ctx, "kubectl get pods", ""); err != nil {
		t.Errorf("expected get to pass reduced whitelist, got %v", err)
	}
	_, err := g.Validate(ctx, "kubectl describe pod foo", "")
	var cmdErr *model.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Kind != model.ErrForbidden {
		t.Errorf("expected describe to be forbidden under reduced whitelist, got %v", err)
	}
}
