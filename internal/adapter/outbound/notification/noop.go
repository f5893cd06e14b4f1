package notification

import (
	"context"
	"log/slog"

	"github.com/kubedeck/kubedeck/internal/domain/port/outbound"
)

// NoopNotifier logs notifications instead of sending them. Used when Slack is
// not configured.
type NoopNotifier struct {
	logger *slog.Logger
}

// NewNoopNotifier creates a NoopNotifier.
func NewNoopNotifier(logger *slog.Logger) *NoopNotifier {
	return &NoopNotifier{logger: logger}
}

var _ outbound.Notifier = (*NoopNotifier)(nil)

func (n *NoopNotifier) NotifyDestructiveCommand(_ context.Context, notice outbound.DestructiveCommandNotice) error {
	n.logger.Info("noop: destructive command notification",
		"command", notice.Command,
		"remote", notice.Remote,
		"when", notice.When,
	)
	return nil
}
