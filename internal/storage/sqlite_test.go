package storage

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Veraticus/the-ledger-must-balance/internal/model"
)

// Helper function to create test storage.
func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return store
}

func TestSQLiteStore_Migrate(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	version, err := store.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion() error = %v", err)
	}
	if version != ExpectedSchemaVersion {
		t.Errorf("schema version = %d, want %d", version, ExpectedSchemaVersion)
	}

	// Re-running is a no-op.
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	var indexCount int
	err = store.db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='index' AND name IN ('idx_transactions_category', 'idx_transactions_account')
	`).Scan(&indexCount)
	if err != nil {
		t.Fatalf("Failed to check indexes: %v", err)
	}
	if indexCount != 2 {
		t.Errorf("found %d transaction indexes, want 2", indexCount)
	}
}

func TestSQLiteStore_EmptyLoad(t *testing.T) {
	store := createTestStore(t)

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	for name, n := range got.Counts() {
		if n != 0 {
			t.Errorf("%s has %d records, want 0", name, n)
		}
	}
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	want := sampleSnapshot()
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestSQLiteStore_SaveReplaces(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}

	// Reverse the transaction order and drop one; the stored order must follow.
	original := sampleSnapshot()
	reordered := original.WithTransactions([]model.Transaction{
		original.Transactions[2],
		original.Transactions[0],
	})
	if err := store.Save(ctx, reordered); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Transactions) != 2 {
		t.Fatalf("Load() returned %d transactions, want 2", len(got.Transactions))
	}
	if got.Transactions[0].ID != "t3" || got.Transactions[1].ID != "t1" {
		t.Errorf("transaction order = [%s %s], want [t3 t1]", got.Transactions[0].ID, got.Transactions[1].ID)
	}
	if !got.Transactions[0].Deleted {
		t.Error("soft-delete flag was not preserved")
	}
}

func TestSQLiteStore_SaveRollsBackOnConflict(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	bad := sampleSnapshot()
	bad.Budgets = append(bad.Budgets, bad.Budgets[0])
	if err := store.Save(ctx, bad); err == nil {
		t.Fatal("Save() with duplicate primary key should fail")
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, sampleSnapshot()) {
		t.Error("failed Save() modified the stored snapshot")
	}
}

func TestSQLiteStore_LoadValidates(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	bad := sampleSnapshot()
	bad.Transactions[0].Timestamp = "not a date"
	if err := store.Save(ctx, bad); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := store.Load(ctx); !errors.Is(err, ErrInvalidTimestamp) {
		t.Errorf("Load() error = %v, want ErrInvalidTimestamp", err)
	}
}
