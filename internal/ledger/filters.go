package ledger

import (
	"time"

	"github.com/Veraticus/the-ledger-must-balance/internal/fp"
	"github.com/Veraticus/the-ledger-must-balance/internal/model"
)

// Predicate selects transactions.
type Predicate func(model.Transaction) bool

// ByCategory matches transactions in categoryID.
func ByCategory(categoryID string) Predicate {
	return func(t model.Transaction) bool { return t.CategoryID == categoryID }
}

// ByAccount matches transactions booked on accountID.
func ByAccount(accountID string) Predicate {
	return func(t model.Transaction) bool { return t.AccountID == accountID }
}

// ByDateRange matches transactions stamped within [start, end]. Timestamps are parsed,
// so every accepted layout compares correctly; unparseable ones never match.
func ByDateRange(start, end time.Time) Predicate {
	return All(stampedFrom(start), stampedUntil(end))
}

func stampedFrom(start time.Time) Predicate {
	return func(t model.Transaction) bool {
		ts, err := t.Time()
		return err == nil && !ts.Before(start)
	}
}

func stampedUntil(end time.Time) Predicate {
	return func(t model.Transaction) bool {
		ts, err := t.Time()
		return err == nil && !ts.After(end)
	}
}

// ByAmountRange matches amounts within [minAmount, maxAmount].
func ByAmountRange(minAmount, maxAmount int64) Predicate {
	return func(t model.Transaction) bool { return minAmount <= t.Amount && t.Amount <= maxAmount }
}

// OwnedBy matches transactions belonging to username.
func OwnedBy(username string) Predicate {
	return func(t model.Transaction) bool { return t.UserID == username }
}

// NotDeleted matches transactions that have not been soft-deleted.
func NotDeleted(t model.Transaction) bool {
	return !t.Deleted
}

// Outflows matches expenses.
func Outflows(t model.Transaction) bool {
	return t.IsOutflow()
}

// All matches when every predicate matches. With no predicates it matches everything.
func All(preds ...Predicate) Predicate {
	return func(t model.Transaction) bool {
		for _, p := range preds {
			if !p(t) {
				return false
			}
		}
		return true
	}
}

// Filter returns the transactions matching pred, preserving order.
func Filter(txns []model.Transaction, pred Predicate) []model.Transaction {
	return fp.Filter(txns, pred)
}

// FilterOptions describes an ad-hoc transaction query. Nil fields are ignored.
type FilterOptions struct {
	CategoryID *string
	AccountID  *string
	MinAmount  *int64
	MaxAmount  *int64
	Start      *time.Time
	End        *time.Time
}

// Predicate builds the conjunction of every set option.
func (o FilterOptions) Predicate() Predicate {
	var preds []Predicate
	if o.CategoryID != nil {
		preds = append(preds, ByCategory(*o.CategoryID))
	}
	if o.AccountID != nil {
		preds = append(preds, ByAccount(*o.AccountID))
	}
	if o.MinAmount != nil {
		lo := *o.MinAmount
		preds = append(preds, func(t model.Transaction) bool { return t.Amount >= lo })
	}
	if o.MaxAmount != nil {
		hi := *o.MaxAmount
		preds = append(preds, func(t model.Transaction) bool { return t.Amount <= hi })
	}
	if o.Start != nil {
		preds = append(preds, stampedFrom(*o.Start))
	}
	if o.End != nil {
		preds = append(preds, stampedUntil(*o.End))
	}
	return All(preds...)
}
