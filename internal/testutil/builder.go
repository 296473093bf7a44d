package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Veraticus/the-ledger-must-balance/internal/model"
	"github.com/Veraticus/the-ledger-must-balance/internal/storage"
)

// LedgerBuilder provides a fluent interface for constructing test snapshots.
// Records keep the order in which they were added.
type LedgerBuilder struct {
	t        *testing.T
	snapshot model.Snapshot
}

// NewLedgerBuilder creates an empty builder for the given test.
func NewLedgerBuilder(t *testing.T) *LedgerBuilder {
	t.Helper()
	return &LedgerBuilder{
		t: t,
		snapshot: model.Snapshot{
			Accounts:     []model.Account{},
			Categories:   []model.Category{},
			Transactions: []model.Transaction{},
			Budgets:      []model.Budget{},
			Users:        []model.User{},
		},
	}
}

// WithAccount adds an account.
func (b *LedgerBuilder) WithAccount(a model.Account) *LedgerBuilder {
	b.snapshot.Accounts = append(b.snapshot.Accounts, a)
	return b
}

// WithCategory adds a category. An empty parent makes it top-level.
func (b *LedgerBuilder) WithCategory(id, name string, categoryType model.CategoryType, parent string) *LedgerBuilder {
	c := model.Category{ID: id, Name: name, Type: categoryType}
	if parent != "" {
		c.ParentID = model.ParentRef(parent)
	}
	b.snapshot.Categories = append(b.snapshot.Categories, c)
	return b
}

// WithTransaction adds a transaction.
func (b *LedgerBuilder) WithTransaction(t model.Transaction) *LedgerBuilder {
	b.snapshot.Transactions = append(b.snapshot.Transactions, t)
	return b
}

// WithBudget adds a budget.
func (b *LedgerBuilder) WithBudget(budget model.Budget) *LedgerBuilder {
	b.snapshot.Budgets = append(b.snapshot.Budgets, budget)
	return b
}

// WithUser adds a user.
func (b *LedgerBuilder) WithUser(username, password string, admin bool) *LedgerBuilder {
	b.snapshot.Users = append(b.snapshot.Users, model.User{Username: username, Password: password, IsAdmin: admin})
	return b
}

// WithFixture adds every record of the fixture.
func (b *LedgerBuilder) WithFixture(f Fixture) *LedgerBuilder {
	s := f.Snapshot()
	b.snapshot.Accounts = append(b.snapshot.Accounts, s.Accounts...)
	b.snapshot.Categories = append(b.snapshot.Categories, s.Categories...)
	b.snapshot.Transactions = append(b.snapshot.Transactions, s.Transactions...)
	b.snapshot.Budgets = append(b.snapshot.Budgets, s.Budgets...)
	b.snapshot.Users = append(b.snapshot.Users, s.Users...)
	return b
}

// Build returns the snapshot, failing the test when the stores would reject it.
func (b *LedgerBuilder) Build() model.Snapshot {
	b.t.Helper()
	if err := storage.ValidateSnapshot(b.snapshot); err != nil {
		b.t.Fatalf("invalid test ledger: %v", err)
	}
	return b.snapshot
}

// SetupLedger saves snapshot into a fresh store in a temporary directory and
// returns the store's path.
func SetupLedger(t *testing.T, driver storage.Driver, snapshot model.Snapshot) string {
	t.Helper()

	name := "ledger.json"
	if driver == storage.DriverSQLite {
		name = "ledger.db"
	}
	path := filepath.Join(t.TempDir(), name)

	ctx := context.Background()
	store, err := storage.Open(ctx, driver, path)
	if err != nil {
		t.Fatalf("failed to open %s store: %v", driver, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}()

	if err := store.Save(ctx, snapshot); err != nil {
		t.Fatalf("failed to save test ledger: %v", err)
	}
	return path
}
