package ledger

import (
	"github.com/Veraticus/the-ledger-must-balance/internal/fp"
	"github.com/Veraticus/the-ledger-must-balance/internal/model"
)

// SumExpensesRecursive totals the outflows of every category in the subtree under root.
// The result is zero or negative.
func SumExpensesRecursive(categories []model.Category, txns []model.Transaction, root Root) int64 {
	ids := SubtreeIDs(categories, root)

	amounts := make([]int64, 0, len(txns))
	for _, t := range txns {
		if ids[t.CategoryID] && t.IsOutflow() {
			amounts = append(amounts, t.Amount)
		}
	}
	return fp.SumRecursive(amounts)
}

// OutflowTotal returns the sum of absolute outflow amounts in categoryID.
func OutflowTotal(txns []model.Transaction, categoryID string) int64 {
	amounts := make([]int64, 0)
	for _, t := range txns {
		if t.CategoryID == categoryID && t.IsOutflow() {
			amounts = append(amounts, fp.Abs(t.Amount))
		}
	}
	return fp.SumRecursive(amounts)
}
