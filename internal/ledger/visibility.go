package ledger

import (
	"github.com/Veraticus/the-ledger-must-balance/internal/fp"
	"github.com/Veraticus/the-ledger-must-balance/internal/model"
)

// VisibleTransactions applies the role policy: admins see every transaction including
// soft-deleted ones; standard users see only their own live transactions.
func VisibleTransactions(txns []model.Transaction, user model.User) []model.Transaction {
	if user.IsAdmin {
		return Filter(txns, All())
	}
	return Filter(txns, All(OwnedBy(user.Username), NotDeleted))
}

// VisibleBudgets returns every budget for admins and the user's own budgets otherwise.
func VisibleBudgets(budgets []model.Budget, user model.User) []model.Budget {
	if user.IsAdmin {
		return fp.Filter(budgets, func(model.Budget) bool { return true })
	}
	return fp.Filter(budgets, func(b model.Budget) bool { return b.UserID == user.Username })
}

// VisibleAccounts returns every account for admins and the user's own accounts otherwise.
func VisibleAccounts(accounts []model.Account, user model.User) []model.Account {
	if user.IsAdmin {
		return fp.Filter(accounts, func(model.Account) bool { return true })
	}
	return fp.Filter(accounts, func(a model.Account) bool { return a.UserID == user.Username })
}
