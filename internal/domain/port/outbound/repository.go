package outbound

import (
	"context"

	"github.com/kubedeck/kubedeck/internal/domain/model"
)

// AuditRepository persists the audit trail of mutating operations.
type AuditRepository interface {
	Create(ctx context.Context, entry model.AuditEntry) error
	// ListRecent returns up to limit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.AuditEntry, error)
}
