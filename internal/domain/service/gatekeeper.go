package service

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/kubedeck/kubedeck/internal/domain/model"
)

// GatekeeperConfig holds the immutable validation rules for operator commands.
// Passing the rules in explicitly (rather than reading package globals) keeps
// the gatekeeper testable with a reduced whitelist.
type GatekeeperConfig struct {
	// Prefix is the required program token, e.g. "kubectl". Case-sensitive.
	Prefix string
	// AllowedSubcommands is the closed set of permitted leading tokens.
	AllowedSubcommands []string
	// StripCharacters are removed during sanitization, after the whitelist
	// check has approved the raw string.
	StripCharacters string
}

// DefaultStripCharacters is the shell metacharacter set removed from approved
// commands. Space and tab are intentionally absent: stripping them would
// destroy every multi-token command.
const DefaultStripCharacters = ";&|`$(){}[]\\!#*?\"'<>\n\r"

// DefaultSubcommands is the closed set of kubectl subcommands the dashboard
// permits.
var DefaultSubcommands = []string{
	"get", "describe", "logs", "exec", "port-forward", "cp",
	"apply", "create", "delete", "edit", "label", "annotate",
	"scale", "rollout", "top",
	"api-resources", "api-versions", "cluster-info", "config",
	"explain", "version",
}

// DefaultGatekeeperConfig returns the production rule set.
func DefaultGatekeeperConfig() GatekeeperConfig {
	return GatekeeperConfig{
		Prefix:             "kubectl",
		AllowedSubcommands: DefaultSubcommands,
		StripCharacters:    DefaultStripCharacters,
	}
}

// subcommandPattern matches the leading token after the program prefix.
// Hyphens are part of the token: kubectl has port-forward, api-resources,
// api-versions, and cluster-info, and a word-only match would truncate them
// to tokens the whitelist rejects.
var subcommandPattern = regexp.MustCompile(`^([\w-]+)`)

// CommandAuditor receives destructive commands that passed validation, before
// they execute.
type CommandAuditor interface {
	AuditDestructive(ctx context.Context, command, remote string)
}

// Gatekeeper validates and sanitizes free-form operator commands before any
// process is spawned. It is pure apart from the destructive-command audit hook.
type Gatekeeper struct {
	prefix  string
	allowed map[string]bool
	strip   map[rune]bool
	auditor CommandAuditor
	logger  *slog.Logger
}

// NewGatekeeper creates a Gatekeeper. auditor may be nil.
func NewGatekeeper(cfg GatekeeperConfig, auditor CommandAuditor, logger *slog.Logger) *Gatekeeper {
	allowed := make(map[string]bool, len(cfg.AllowedSubcommands))
	for _, sub := range cfg.AllowedSubcommands {
		allowed[sub] = true
	}
	strip := make(map[rune]bool, len(cfg.StripCharacters))
	for _, r := range cfg.StripCharacters {
		strip[r] = true
	}
	return &Gatekeeper{
		prefix:  cfg.Prefix,
		allowed: allowed,
		strip:   strip,
		auditor: auditor,
		logger:  logger,
	}
}

// Validate checks raw against the prefix, extracts and whitelists the
// subcommand, audits destructive deletes, and returns the sanitized command.
// Failures carry a machine-distinguishable kind and are terminal for the
// request; nothing is ever executed on failure.
func (g *Gatekeeper) Validate(ctx context.Context, raw model.RawCommand, remote string) (model.ValidatedCommand, error) {
	trimmed := strings.TrimSpace(string(raw))

	if trimmed != g.prefix && !strings.HasPrefix(trimmed, g.prefix+" ") {
		return model.ValidatedCommand{}, model.NewInvalidCommand(
			"command must start with " + g.prefix + `, e.g. "` + g.prefix + ` get pods"`)
	}

	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, g.prefix))
	sub := subcommandPattern.FindString(rest)
	if sub == "" {
		return model.ValidatedCommand{}, model.NewInvalidCommand(
			"missing subcommand after " + g.prefix)
	}

	if !g.allowed[sub] {
		return model.ValidatedCommand{}, model.NewForbidden(
			"subcommand not allowed: " + sub)
	}

	// Destructive deletes are permitted but must leave an audit trail before
	// execution.
	destructive := sub == "delete" && !strings.Contains(trimmed, "--dry-run")
	if destructive {
		g.logger.Warn("security audit: destructive command",
			"command", trimmed, "remote", remote)
		if g.auditor != nil {
			g.auditor.AuditDestructive(ctx, trimmed, remote)
		}
	}

	// Sanitize only after whitelist approval: rejecting on the raw string
	// preserves the real subcommand token for the check above.
	line := g.sanitize(trimmed)
	return model.ValidatedCommand{
		Line:        line,
		Subcommand:  sub,
		Args:        strings.Fields(strings.TrimPrefix(line, g.prefix)),
		Destructive: destructive,
	}, nil
}

// sanitize removes every configured metacharacter and trims the result. It is
// idempotent.
func (g *Gatekeeper) sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !g.strip[r] {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
