package ledger

import "github.com/Veraticus/the-ledger-must-balance/internal/model"

// categoryTree builds:
//
//	food
//	  groceries
//	    produce
//	  dining
//	salary
//	transport (parent "null")
//	  fuel
func categoryTree() []model.Category {
	return []model.Category{
		{ID: "food", Name: "Food", Type: model.CategoryTypeExpense},
		{ID: "groceries", Name: "Groceries", ParentID: model.ParentRef("food"), Type: model.CategoryTypeExpense},
		{ID: "salary", Name: "Salary", ParentID: model.ParentRef(""), Type: model.CategoryTypeIncome},
		{ID: "dining", Name: "Dining", ParentID: model.ParentRef("food"), Type: model.CategoryTypeExpense},
		{ID: "transport", Name: "Transport", ParentID: model.ParentRef("null"), Type: model.CategoryTypeExpense},
		{ID: "produce", Name: "Produce", ParentID: model.ParentRef("groceries"), Type: model.CategoryTypeExpense},
		{ID: "fuel", Name: "Fuel", ParentID: model.ParentRef("transport"), Type: model.CategoryTypeExpense},
	}
}

func sampleTransactions() []model.Transaction {
	return []model.Transaction{
		{ID: "t1", AccountID: "a1", UserID: "alice", CategoryID: "groceries", Amount: -500, Timestamp: "2024-12-30T09:00:00"},
		{ID: "t2", AccountID: "a1", UserID: "alice", CategoryID: "salary", Amount: 1000, Timestamp: "2025-01-01T00:00:00"},
		{ID: "t3", AccountID: "a2", UserID: "bob", CategoryID: "produce", Amount: -200, Timestamp: "2025-01-05T12:00:00"},
		{ID: "t4", AccountID: "a2", UserID: "bob", CategoryID: "dining", Amount: -300, Timestamp: "2025-02-01T19:30:00", Deleted: true},
		{ID: "t5", AccountID: "a1", UserID: "alice", CategoryID: "fuel", Amount: -50, Timestamp: "2025-02-10T08:00:00"},
		{ID: "t6", AccountID: "a1", UserID: "alice", CategoryID: "groceries", Amount: 40, Timestamp: "2025-02-11T08:00:00", Note: "refund"},
	}
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, id(item))
	}
	return out
}

func categoryIDs(cats []model.Category) []string {
	return ids(cats, func(c model.Category) string { return c.ID })
}

func transactionIDs(txns []model.Transaction) []string {
	return ids(txns, func(t model.Transaction) string { return t.ID })
}
