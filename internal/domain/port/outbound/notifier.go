package outbound

import (
	"context"
	"time"
)

// DestructiveCommandNotice describes an audited destructive command.
type DestructiveCommandNotice struct {
	Command string
	Remote  string
	When    time.Time
}

// Notifier delivers security-audit notifications. Delivery is best-effort;
// callers log failures and proceed.
type Notifier interface {
	NotifyDestructiveCommand(ctx context.Context, notice DestructiveCommandNotice) error
}
