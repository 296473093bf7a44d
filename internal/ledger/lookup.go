package ledger

import (
	"github.com/Veraticus/the-ledger-must-balance/internal/fp"
	"github.com/Veraticus/the-ledger-must-balance/internal/model"
)

// FindAccount looks up an account by id.
func FindAccount(accounts []model.Account, id string) fp.Maybe[model.Account] {
	return fp.Find(accounts, func(a model.Account) bool { return a.ID == id })
}

// FindCategory looks up a category by id.
func FindCategory(categories []model.Category, id string) fp.Maybe[model.Category] {
	return fp.Find(categories, func(c model.Category) bool { return c.ID == id })
}

// FindTransaction looks up a transaction by id.
func FindTransaction(txns []model.Transaction, id string) fp.Maybe[model.Transaction] {
	return fp.Find(txns, func(t model.Transaction) bool { return t.ID == id })
}

// FindBudget looks up a budget by id.
func FindBudget(budgets []model.Budget, id string) fp.Maybe[model.Budget] {
	return fp.Find(budgets, func(b model.Budget) bool { return b.ID == id })
}
