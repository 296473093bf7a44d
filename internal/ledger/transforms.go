// Package ledger holds the pure transforms over ledger collections. No function in this
// package mutates its inputs; every "update" returns a freshly allocated slice.
package ledger

import (
	"time"

	"github.com/Veraticus/the-ledger-must-balance/internal/fp"
	"github.com/Veraticus/the-ledger-must-balance/internal/model"
)

// AddTransaction returns a new slice equal to txns with t appended. No validation is done here.
func AddTransaction(txns []model.Transaction, t model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txns), len(txns)+1)
	copy(out, txns)
	return append(out, t)
}

// UpdateBudget replaces the limit of the budget with the given id.
// When nothing matches, an equal copy of budgets is returned.
func UpdateBudget(budgets []model.Budget, id string, newLimit int64) []model.Budget {
	return fp.MapSlice(budgets, func(b model.Budget) model.Budget {
		if b.ID == id {
			return b.WithLimit(newLimit)
		}
		return b
	})
}

// AccountBalance sums the amounts of every transaction booked on accountID.
// Soft-deleted transactions count; visibility policy belongs to the caller.
func AccountBalance(txns []model.Transaction, accountID string) int64 {
	return fp.Fold(txns, int64(0), func(sum int64, t model.Transaction) int64 {
		if t.AccountID == accountID {
			return sum + t.Amount
		}
		return sum
	})
}

// CategoryBalance sums the amounts of every transaction in categoryID.
func CategoryBalance(txns []model.Transaction, categoryID string) int64 {
	return fp.Fold(txns, int64(0), func(sum int64, t model.Transaction) int64 {
		if t.CategoryID == categoryID {
			return sum + t.Amount
		}
		return sum
	})
}

// DeleteOldTransactions keeps the transactions stamped at or after cutoff, in order.
// Transactions whose timestamp cannot be parsed are kept rather than silently dropped.
func DeleteOldTransactions(txns []model.Transaction, cutoff time.Time) []model.Transaction {
	return fp.Filter(txns, func(t model.Transaction) bool {
		ts, err := t.Time()
		if err != nil {
			return true
		}
		return !ts.Before(cutoff)
	})
}

// SoftDeleteTransaction marks the transaction with the given id as deleted.
// The boolean reports whether a transaction matched.
func SoftDeleteTransaction(txns []model.Transaction, id string) ([]model.Transaction, bool) {
	return setDeleted(txns, id, true)
}

// RestoreTransaction clears the soft-delete flag of the transaction with the given id.
func RestoreTransaction(txns []model.Transaction, id string) ([]model.Transaction, bool) {
	return setDeleted(txns, id, false)
}

func setDeleted(txns []model.Transaction, id string, deleted bool) ([]model.Transaction, bool) {
	found := false
	out := fp.MapSlice(txns, func(t model.Transaction) model.Transaction {
		if t.ID == id {
			found = true
			t.Deleted = deleted
		}
		return t
	})
	return out, found
}
