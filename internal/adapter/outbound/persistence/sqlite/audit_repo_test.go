package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/kubedeck/kubedeck/internal/adapter/outbound/persistence/sqlite"
	"github.com/kubedeck/kubedeck/internal/domain/model"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.NewStore(sqlite.Config{
		Path:              ":memory:",
		MaxOpenConns:      1,
		PragmaJournalMode: "WAL",
		PragmaBusyTimeout: 5000,
	})
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAuditRepo_CreateAndListRecent(t *testing.T) {
	store := newTestStore(t)
	repo := sqlite.NewAuditRepo(store)
	ctx := context.Background()

	first := model.NewAuditEntry(model.AuditCommandExecuted, "kubectl get pods", "get").
		WithRemote("10.0.0.1")
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}

	second := model.NewAuditEntry(model.AuditCommandDestructive, "kubectl delete pod web-0", "delete").
		WithNamespace("default").
		WithRemote("10.0.0.2").
		WithDetail("no --dry-run flag")
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create: %v", err)
	}

	entries, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ListRecent len: got %d want 2", len(entries))
	}
	if entries[0].ID != second.ID {
		t.Errorf("newest first: got %s want %s", entries[0].ID, second.ID)
	}
	if entries[0].EventType != model.AuditCommandDestructive {
		t.Errorf("EventType: got %s", entries[0].EventType)
	}
	if entries[0].Namespace != "default" || entries[0].Remote != "10.0.0.2" {
		t.Errorf("fields: got %+v", entries[0])
	}
	if entries[0].Detail != "no --dry-run flag" {
		t.Errorf("Detail: got %q", entries[0].Detail)
	}
}

func TestAuditRepo_ListRecentLimit(t *testing.T) {
	store := newTestStore(t)
	repo := sqlite.NewAuditRepo(store)
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		entry := model.NewAuditEntry(model.AuditResourceScaled, "", "")
		entry.CreatedAt = base.Add(time.Duration(i) * time.Second)
		if err := repo.Create(ctx, entry); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	entries, err := repo.ListRecent(ctx, 3)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("limit: got %d want 3", len(entries))
	}
}

func TestAuditRepo_ListRecentEmpty(t *testing.T) {
	store := newTestStore(t)
	repo := sqlite.NewAuditRepo(store)

	entries, err := repo.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestNewStore_RejectsInvalidJournalMode(t *testing.T) {
	_, err := sqlite.NewStore(sqlite.Config{
		Path:              ":memory:",
		PragmaJournalMode: "bogus",
	})
	if err == nil {
		t.Fatal("expected error for invalid journal mode")
	}
}
