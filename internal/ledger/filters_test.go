package ledger

import (
	"testing"
	"time"

	"github.com/Veraticus/the-ledger-must-balance/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestPredicates(t *testing.T) {
	txns := sampleTransactions()

	tests := []struct {
		name string
		pred Predicate
		want []string
	}{
		{name: "by category", pred: ByCategory("groceries"), want: []string{"t1", "t6"}},
		{name: "by account", pred: ByAccount("a2"), want: []string{"t3", "t4"}},
		{name: "by date range inclusive", pred: ByDateRange(date(2025, 1, 1, 0, 0, 0), date(2025, 1, 31, 23, 59, 59)), want: []string{"t2", "t3"}},
		{name: "by amount range", pred: ByAmountRange(-300, -50), want: []string{"t3", "t4", "t5"}},
		{name: "owned by", pred: OwnedBy("bob"), want: []string{"t3", "t4"}},
		{name: "not deleted", pred: NotDeleted, want: []string{"t1", "t2", "t3", "t5", "t6"}},
		{name: "outflows", pred: Outflows, want: []string{"t1", "t3", "t4", "t5"}},
		{name: "conjunction", pred: All(ByAccount("a1"), Outflows), want: []string{"t1", "t5"}},
		{name: "empty conjunction matches all", pred: All(), want: []string{"t1", "t2", "t3", "t4", "t5", "t6"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transactionIDs(Filter(txns, tt.pred)))
		})
	}
}

func TestFilterOptions_Predicate(t *testing.T) {
	cat := "groceries"
	lo := int64(0)
	start := date(2025, 1, 1, 0, 0, 0)
	end := date(2025, 2, 28, 0, 0, 0)

	tests := []struct {
		name string
		opts FilterOptions
		want []string
	}{
		{name: "no options", opts: FilterOptions{}, want: []string{"t1", "t2", "t3", "t4", "t5", "t6"}},
		{name: "category only", opts: FilterOptions{CategoryID: &cat}, want: []string{"t1", "t6"}},
		{name: "category and min amount", opts: FilterOptions{CategoryID: &cat, MinAmount: &lo}, want: []string{"t6"}},
		{name: "date window", opts: FilterOptions{Start: &start, End: &end}, want: []string{"t2", "t3", "t4", "t5", "t6"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transactionIDs(Filter(sampleTransactions(), tt.opts.Predicate())))
		})
	}
}

func TestByDateRange_MixedLayouts(t *testing.T) {
	txns := []model.Transaction{
		{ID: "space", Timestamp: "2024-01-05 10:00:00"},
		{ID: "zulu", Timestamp: "2024-01-31T23:59:59Z"},
		{ID: "offset", Timestamp: "2024-01-31T12:00:00+00:00"},
		{ID: "date-only", Timestamp: "2024-01-20"},
		{ID: "plain", Timestamp: "2024-01-10T08:00:00"},
		{ID: "before", Timestamp: "2024-01-04 23:59:59"},
		{ID: "after", Timestamp: "2024-02-01T00:00:00+00:00"},
		{ID: "east", Timestamp: "2024-02-01T00:30:00+02:00"},
		{ID: "garbage", Timestamp: "last tuesday"},
	}
	start := date(2024, 1, 5, 0, 0, 0)
	end := date(2024, 1, 31, 23, 59, 59)
	want := []string{"space", "zulu", "offset", "date-only", "plain", "east"}

	assert.Equal(t, want, transactionIDs(Filter(txns, ByDateRange(start, end))))
	assert.Equal(t, want, transactionIDs(Filter(txns, FilterOptions{Start: &start, End: &end}.Predicate())))

	// Filtering and purging agree on what lies at or after the start.
	kept := Filter(DeleteOldTransactions(txns, start), stampedFrom(start))
	assert.Equal(t, []string{"space", "zulu", "offset", "date-only", "plain", "after", "east"}, transactionIDs(kept))
}

func TestVisibility(t *testing.T) {
	txns := sampleTransactions()
	admin := model.User{Username: "root", IsAdmin: true}
	bob := model.User{Username: "bob"}

	assert.Len(t, VisibleTransactions(txns, admin), len(txns), "admins see soft-deleted history")
	assert.Equal(t, []string{"t3"}, transactionIDs(VisibleTransactions(txns, bob)))

	budgets := []model.Budget{{ID: "b1", UserID: "bob"}, {ID: "b2", UserID: "alice"}}
	assert.Len(t, VisibleBudgets(budgets, admin), 2)
	assert.Equal(t, []model.Budget{{ID: "b1", UserID: "bob"}}, VisibleBudgets(budgets, bob))

	accounts := []model.Account{{ID: "a1", UserID: "alice"}, {ID: "a2", UserID: "bob"}}
	assert.Equal(t, []model.Account{{ID: "a2", UserID: "bob"}}, VisibleAccounts(accounts, bob))
}

func date(year int, month time.Month, day, hour, minute, second int) time.Time {
	return time.Date(year, month, day, hour, minute, second, 0, time.UTC)
}
