package storage

import (
	"github.com/Veraticus/the-ledger-must-balance/internal/model"
)

func sampleSnapshot() model.Snapshot {
	return model.Snapshot{
		Accounts: []model.Account{
			{ID: "acc1", Name: "Checking", Balance: 150000, Currency: "EUR", UserID: "alice"},
			{ID: "acc2", Name: "Savings", Balance: 900000, Currency: "EUR", UserID: "bob"},
		},
		Categories: []model.Category{
			{ID: "cat1", Name: "Salary", Type: model.CategoryTypeIncome},
			{ID: "cat2", Name: "Living", ParentID: model.ParentRef("null"), Type: model.CategoryTypeExpense},
			{ID: "cat3", Name: "Groceries", ParentID: model.ParentRef("cat2"), Type: model.CategoryTypeExpense},
		},
		Transactions: []model.Transaction{
			{ID: "t1", AccountID: "acc1", UserID: "alice", CategoryID: "cat1", Amount: 250000, Timestamp: "2024-01-01T09:00:00", Note: "January salary"},
			{ID: "t2", AccountID: "acc1", UserID: "alice", CategoryID: "cat3", Amount: -4550, Timestamp: "2024-01-03T18:30:00", Note: "market"},
			{ID: "t3", AccountID: "acc2", UserID: "bob", CategoryID: "cat3", Amount: -1200, Timestamp: "2024-01-04", Deleted: true},
		},
		Budgets: []model.Budget{
			{ID: "b1", UserID: "alice", CategoryID: "cat3", Limit: 30000, Period: "month"},
		},
		Users: []model.User{
			{Username: "alice", Password: "secret", IsAdmin: true},
			{Username: "bob", Password: "hunter2"},
		},
	}
}
