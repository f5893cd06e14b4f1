package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kubedeck/kubedeck/internal/domain/model"
)

// AuditRepo implements outbound.AuditRepository using SQLite.
type AuditRepo struct {
	db *sql.DB
}

// NewAuditRepo creates a new AuditRepo backed by the given store.
func NewAuditRepo(store *Store) *AuditRepo {
	return &AuditRepo{db: store.DB}
}

// Create inserts a new audit entry row.
func (r *AuditRepo) Create(ctx context.Context, entry model.AuditEntry) error {
	const q = `INSERT INTO audit_entries
		(id, event_type, command, subcommand, namespace, remote, detail, created_at)
		VALUES (?,?,?,?,?,?,?,?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.ID, string(entry.EventType),
		entry.Command, entry.Subcommand,
		entry.Namespace, entry.Remote, entry.Detail,
		entry.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}
	return nil
}

// ListRecent returns up to limit entries, newest first.
func (r *AuditRepo) ListRecent(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	const q = `SELECT id, event_type, command, subcommand, namespace, remote, detail, created_at
		FROM audit_entries ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries: %w", err)
	}
	defer rows.Close()

	var items []model.AuditEntry
	for rows.Next() {
		var e model.AuditEntry
		var eventType string
		err := rows.Scan(
			&e.ID, &eventType, &e.Command, &e.Subcommand,
			&e.Namespace, &e.Remote, &e.Detail, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}
		e.EventType = model.AuditEventType(eventType)
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit entries: %w", err)
	}
	return items, nil
}
