package ledger

import (
	"errors"
	"fmt"

	"github.com/Veraticus/the-ledger-must-balance/internal/fp"
	"github.com/Veraticus/the-ledger-must-balance/internal/model"
)

// ErrorKind tags a ValidationError.
type ErrorKind string

// Validation error kinds.
const (
	KindAccountNotFound  ErrorKind = "account_not_found"
	KindCategoryNotFound ErrorKind = "category_not_found"
	KindOverBudget       ErrorKind = "over_budget"
)

// Sentinel errors matched by ValidationError through errors.Is.
var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrOverBudget       = errors.New("over budget")
)

// ValidationError is the structured error branch of a validation result.
// Spent and Limit are only set for KindOverBudget.
type ValidationError struct {
	Kind  ErrorKind
	ID    string
	Spent int64
	Limit int64
}

func (e ValidationError) Error() string {
	switch e.Kind {
	case KindAccountNotFound:
		return fmt.Sprintf("account %q not found", e.ID)
	case KindCategoryNotFound:
		return fmt.Sprintf("category %q not found", e.ID)
	case KindOverBudget:
		return fmt.Sprintf("budget %q over limit: spent %d of %d", e.ID, e.Spent, e.Limit)
	}
	return string(e.Kind)
}

// Is lets errors.Is match a ValidationError against the package sentinels.
func (e ValidationError) Is(target error) bool {
	switch e.Kind {
	case KindAccountNotFound:
		return target == ErrAccountNotFound
	case KindCategoryNotFound:
		return target == ErrCategoryNotFound
	case KindOverBudget:
		return target == ErrOverBudget
	}
	return false
}

// TransactionResult is the outcome of ValidateTransaction.
type TransactionResult = fp.Either[ValidationError, model.Transaction]

// BudgetResult is the outcome of CheckBudget.
type BudgetResult = fp.Either[ValidationError, model.Budget]

// ValidateTransaction checks that t references an existing account and category.
// The account is always checked first.
func ValidateTransaction(t model.Transaction, accounts []model.Account, categories []model.Category) TransactionResult {
	if !FindAccount(accounts, t.AccountID).IsSome() {
		return fp.Left[ValidationError, model.Transaction](ValidationError{Kind: KindAccountNotFound, ID: t.AccountID})
	}
	if !FindCategory(categories, t.CategoryID).IsSome() {
		return fp.Left[ValidationError, model.Transaction](ValidationError{Kind: KindCategoryNotFound, ID: t.CategoryID})
	}
	return fp.Right[ValidationError](t)
}

// CheckBudget compares the absolute outflows in the budget's category against its limit.
// Spending exactly the limit is allowed.
func CheckBudget(b model.Budget, txns []model.Transaction) BudgetResult {
	spent := OutflowTotal(txns, b.CategoryID)
	if spent > b.Limit {
		return fp.Left[ValidationError, model.Budget](ValidationError{
			Kind:  KindOverBudget,
			ID:    b.ID,
			Spent: spent,
			Limit: b.Limit,
		})
	}
	return fp.Right[ValidationError](b)
}

// ExceededBudgets returns the budgets whose CheckBudget fails, in input order.
func ExceededBudgets(budgets []model.Budget, txns []model.Transaction) []model.Budget {
	return fp.Filter(budgets, func(b model.Budget) bool {
		return CheckBudget(b, txns).IsLeft()
	})
}
