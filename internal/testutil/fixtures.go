package testutil

import "github.com/Veraticus/the-ledger-must-balance/internal/model"

// Record ids used by the predefined fixtures.
const (
	AccountChecking = "acc1"
	AccountWallet   = "acc2"

	CategoryFood      = "food"
	CategoryGroceries = "groceries"
	CategoryDining    = "dining"
	CategorySalary    = "salary"

	UserAdmin    = "alice"
	UserStandard = "bob"

	PasswordAdmin    = "wonderland"
	PasswordStandard = "builder"
)

// Fixture is a predefined set of ledger records.
type Fixture interface {
	// Name returns the fixture's descriptive name.
	Name() string

	// Description returns what the fixture is for.
	Description() string

	// Snapshot returns a fresh copy of the fixture's records.
	Snapshot() model.Snapshot
}

type fixture struct {
	snapshot    func() model.Snapshot
	name        string
	description string
}

func (f *fixture) Name() string             { return f.name }
func (f *fixture) Description() string      { return f.description }
func (f *fixture) Snapshot() model.Snapshot { return f.snapshot() }

// Predefined fixtures for common test scenarios.
var (
	// FixtureCategoryTree holds a small category hierarchy and nothing else.
	// Food uses the legacy "null" parent marker.
	FixtureCategoryTree Fixture = &fixture{
		name:        "CategoryTree",
		description: "Food with two children plus a top-level income category",
		snapshot: func() model.Snapshot {
			return model.Snapshot{Categories: categoryTree()}
		},
	}

	// FixtureHousehold is a two-user ledger: an administrator with a checking
	// account and a standard user with a wallet, one over-budget category and
	// one soft-deleted transaction.
	FixtureHousehold Fixture = &fixture{
		name:        "Household",
		description: "Two users, two accounts, five transactions and two budgets",
		snapshot:    household,
	}
)

func categoryTree() []model.Category {
	return []model.Category{
		{ID: CategoryFood, Name: "Food", ParentID: model.ParentRef("null"), Type: model.CategoryTypeExpense},
		{ID: CategoryGroceries, Name: "Groceries", ParentID: model.ParentRef(CategoryFood), Type: model.CategoryTypeExpense},
		{ID: CategoryDining, Name: "Dining", ParentID: model.ParentRef(CategoryFood), Type: model.CategoryTypeExpense},
		{ID: CategorySalary, Name: "Salary", Type: model.CategoryTypeIncome},
	}
}

func household() model.Snapshot {
	return model.Snapshot{
		Accounts: []model.Account{
			{ID: AccountChecking, Name: "Checking", Balance: 100000, Currency: "EUR", UserID: UserAdmin},
			{ID: AccountWallet, Name: "Wallet", Balance: 5000, Currency: "EUR", UserID: UserStandard},
		},
		Categories: categoryTree(),
		Transactions: []model.Transaction{
			{ID: "t1", AccountID: AccountChecking, UserID: UserAdmin, CategoryID: CategorySalary, Amount: 250000, Timestamp: "2024-01-01T09:00:00", Note: "pay"},
			{ID: "t2", AccountID: AccountChecking, UserID: UserAdmin, CategoryID: CategoryGroceries, Amount: -4500, Timestamp: "2024-01-05T10:00:00", Note: "market"},
			{ID: "t3", AccountID: AccountWallet, UserID: UserStandard, CategoryID: CategoryDining, Amount: -1800, Timestamp: "2024-01-07T20:00:00", Note: "pizza"},
			{ID: "t4", AccountID: AccountWallet, UserID: UserStandard, CategoryID: CategoryGroceries, Amount: -2200, Timestamp: "2024-02-02T11:00:00", Note: "bakery"},
			{ID: "t5", AccountID: AccountWallet, UserID: UserStandard, CategoryID: CategoryGroceries, Amount: -900, Timestamp: "2023-12-20T08:00:00", Note: "old", Deleted: true},
		},
		Budgets: []model.Budget{
			{ID: "b1", UserID: UserStandard, CategoryID: CategoryGroceries, Limit: 2000, Period: "month"},
			{ID: "b2", UserID: UserAdmin, CategoryID: CategoryFood, Limit: 10000, Period: "month"},
		},
		Users: []model.User{
			{Username: UserAdmin, Password: PasswordAdmin, IsAdmin: true},
			{Username: UserStandard, Password: PasswordStandard},
		},
	}
}
