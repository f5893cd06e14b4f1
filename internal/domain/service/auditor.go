package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/kubedeck/kubedeck/internal/domain/model"
	"github.com/kubedeck/kubedeck/internal/domain/port/outbound"
)

// SecurityAuditor persists and announces destructive commands approved by the
// gatekeeper. Both sinks are best-effort: a failed write or notification is
// logged and execution proceeds.
type SecurityAuditor struct {
	audits   outbound.AuditRepository
	notifier outbound.Notifier
	logger   *slog.Logger
}

// NewSecurityAuditor creates a SecurityAuditor.
func NewSecurityAuditor(audits outbound.AuditRepository, notifier outbound.Notifier, logger *slog.Logger) *SecurityAuditor {
	return &SecurityAuditor{audits: audits, notifier: notifier, logger: logger}
}

var _ CommandAuditor = (*SecurityAuditor)(nil)

// AuditDestructive implements CommandAuditor.
func (a *SecurityAuditor) AuditDestructive(ctx context.Context, command, remote string) {
	entry := model.NewAuditEntry(model.AuditCommandDestructive, command, "delete").
		WithRemote(remote)
	if err := a.audits.Create(ctx, entry); err != nil {
		a.logger.Error("writing destructive-command audit entry", "error", err)
	}

	err := a.notifier.NotifyDestructiveCommand(ctx, outbound.DestructiveCommandNotice{
		Command: command,
		Remote:  remote,
		When:    time.Now().UTC(),
	})
	if err != nil {
		a.logger.Error("notifying destructive command", "error", err)
	}
}
