package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Veraticus/the-ledger-must-balance/internal/model"
)

func TestJSONStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "ledger.json")
	store := NewJSONStore(path)

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

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("document permissions = %v, want 0600", info.Mode().Perm())
	}

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".ledger-*"))
	if err != nil {
		t.Fatalf("Glob() error = %v", err)
	}
	if len(leftovers) != 0 {
		t.Errorf("temporary files left behind: %v", leftovers)
	}
}

func TestJSONStore_MissingFileIsEmpty(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "absent.json"))

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

func TestJSONStore_NilContext(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "ledger.json"))

	//nolint:staticcheck // exercising nil context handling
	if _, err := store.Load(nil); !errors.Is(err, ErrNilContext) {
		t.Errorf("Load(nil) error = %v, want ErrNilContext", err)
	}
	//nolint:staticcheck // exercising nil context handling
	if err := store.Save(nil, model.Snapshot{}); !errors.Is(err, ErrNilContext) {
		t.Errorf("Save(nil) error = %v, want ErrNilContext", err)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		wantErr  error
		name     string
		document string
		contains string
	}{
		{
			name:     "minimal document",
			document: `{"accounts": [], "categories": [], "transactions": [], "budgets": []}`,
		},
		{
			name:     "legacy top-level parent",
			document: withCollection("categories", `[{"id": "c1", "name": "Food", "parent_id": "null", "type": "expense"}]`),
		},
		{
			name:     "transaction without deleted flag",
			document: withCollection("transactions", `[{"id": "t1", "account_id": "a", "user_id": "u", "cat_id": "c", "amount": -5, "ts": "2024-02-01", "note": ""}]`),
		},
		{
			name:     "missing collections",
			document: `{"accounts": [], "categories": []}`,
			wantErr:  ErrInvalidRecord,
			contains: "missing collection(s) transactions, budgets",
		},
		{
			name:     "null collection counts as missing",
			document: `{"accounts": [], "categories": [], "transactions": null, "budgets": []}`,
			wantErr:  ErrInvalidRecord,
			contains: "transactions",
		},
		{
			name:     "users are optional",
			document: withCollection("users", `[{"username": "u", "password": "p", "is_admin": true}]`),
		},
		{
			name:     "unknown collection",
			document: `{"accounts": [], "ledgers": []}`,
			wantErr:  ErrInvalidRecord,
			contains: "ledgers",
		},
		{
			name:     "missing field",
			document: withCollection("accounts", `[{"id": "a1", "name": "Cash", "balance": 0, "currency": "EUR"}]`),
			wantErr:  ErrInvalidRecord,
			contains: "accounts[0]: missing field(s) user_id",
		},
		{
			name:     "extra field",
			document: withCollection("budgets", `[{"id": "b1", "user_id": "u", "cat_id": "c", "limit": 10, "period": "month", "rollover": true}]`),
			wantErr:  ErrInvalidRecord,
			contains: "budgets[0]: unknown field(s) rollover",
		},
		{
			name:     "deleted flag is not optional for accounts",
			document: withCollection("accounts", `[{"id": "a1", "name": "Cash", "balance": 0, "currency": "EUR", "user_id": "u", "deleted": false}]`),
			wantErr:  ErrInvalidRecord,
			contains: "deleted",
		},
		{
			name:     "wrong value type",
			document: withCollection("transactions", `[{"id": "t1", "account_id": "a", "user_id": "u", "cat_id": "c", "amount": "12.50", "ts": "2024-02-01", "note": ""}]`),
			wantErr:  ErrInvalidRecord,
			contains: "transactions[0]",
		},
		{
			name:     "malformed json",
			document: `{"accounts": [`,
			wantErr:  ErrInvalidRecord,
		},
		{
			name:     "reserved category id",
			document: withCollection("categories", `[{"id": "null", "name": "Root", "parent_id": null, "type": "expense"}]`),
			wantErr:  ErrReservedID,
		},
		{
			name:     "duplicate budget",
			document: withCollection("budgets", `[{"id": "b1", "user_id": "u", "cat_id": "c", "limit": 10, "period": "month"}, {"id": "b1", "user_id": "u", "cat_id": "d", "limit": 5, "period": "month"}]`),
			wantErr:  ErrDuplicateID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.document))
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Decode() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Decode() error = %v, want %v", err, tt.wantErr)
			}
			if tt.contains != "" && !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Decode() error = %q, want it to mention %q", err, tt.contains)
			}
		})
	}
}

func TestEncode_EmptyCollections(t *testing.T) {
	data, err := Encode(model.Snapshot{})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	for _, name := range []string{"accounts", "categories", "transactions", "budgets", "users"} {
		if !strings.Contains(string(data), `"`+name+`": []`) {
			t.Errorf("Encode() output missing empty %s collection:\n%s", name, data)
		}
	}

	if _, err := Decode(strings.NewReader(string(data))); err != nil {
		t.Errorf("Decode(Encode(empty)) error = %v", err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	jsonStore, err := Open(ctx, DriverJSON, filepath.Join(dir, "ledger.json"))
	if err != nil {
		t.Fatalf("Open(json) error = %v", err)
	}
	if _, ok := jsonStore.(*JSONStore); !ok {
		t.Errorf("Open(json) returned %T", jsonStore)
	}

	sqliteStore, err := Open(ctx, DriverSQLite, filepath.Join(dir, "ledger.db"))
	if err != nil {
		t.Fatalf("Open(sqlite) error = %v", err)
	}
	defer func() { _ = sqliteStore.Close() }()
	if _, ok := sqliteStore.(*SQLiteStore); !ok {
		t.Errorf("Open(sqlite) returned %T", sqliteStore)
	}

	if _, err := Open(ctx, Driver("csv"), filepath.Join(dir, "ledger.csv")); !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("Open(csv) error = %v, want ErrUnknownDriver", err)
	}
	if _, err := Open(ctx, DriverJSON, "  "); !errors.Is(err, ErrEmptyString) {
		t.Errorf("Open(empty path) error = %v, want ErrEmptyString", err)
	}
}

// withCollection returns an otherwise empty ledger document with records under collection.
func withCollection(collection, records string) string {
	parts := make([]string, 0, 4)
	for _, name := range []string{"accounts", "categories", "transactions", "budgets"} {
		if name != collection {
			parts = append(parts, `"`+name+`": []`)
		}
	}
	return `{` + strings.Join(append(parts, `"`+collection+`": `+records), ", ") + `}`
}
