package ledger

import (
	"testing"
	"time"

	"github.com/Veraticus/the-ledger-must-balance/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTransaction(t *testing.T) {
	original := sampleTransactions()
	snapshot := append([]model.Transaction(nil), original...)
	added := model.Transaction{ID: "tx_test", AccountID: "a1", CategoryID: "salary", Amount: -100, Timestamp: "2025-09-01T10:00:00"}

	got := AddTransaction(original, added)

	require.Len(t, got, len(original)+1)
	assert.Equal(t, added, got[len(got)-1])
	assert.Equal(t, snapshot, original, "input must not change")

	got[0].Amount = 999999
	assert.Equal(t, snapshot, original, "result must not alias the input")
}

func TestAddTransaction_Empty(t *testing.T) {
	added := model.Transaction{ID: "t1"}
	got := AddTransaction(nil, added)
	assert.Equal(t, []model.Transaction{added}, got)
}

func TestUpdateBudget(t *testing.T) {
	budgets := []model.Budget{
		{ID: "b1", CategoryID: "food", Limit: 1000, Period: "month"},
		{ID: "b2", CategoryID: "fuel", Limit: 200, Period: "month"},
	}
	before := append([]model.Budget(nil), budgets...)

	tests := []struct {
		name string
		id   string
		want []model.Budget
	}{
		{
			name: "matching id gets new limit",
			id:   "b2",
			want: []model.Budget{
				{ID: "b1", CategoryID: "food", Limit: 1000, Period: "month"},
				{ID: "b2", CategoryID: "fuel", Limit: 1111, Period: "month"},
			},
		},
		{
			name: "unknown id leaves budgets unchanged",
			id:   "missing",
			want: before,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UpdateBudget(budgets, tt.id, 1111)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, before, budgets, "input must not change")
		})
	}
}

func TestAccountBalance(t *testing.T) {
	tests := []struct {
		name      string
		txns      []model.Transaction
		accountID string
		want      int64
	}{
		{
			name: "scenario from the ledger docs",
			txns: []model.Transaction{
				{ID: "t1", AccountID: "a1", Amount: -500},
				{ID: "t2", AccountID: "a1", Amount: 1000},
			},
			accountID: "a1",
			want:      500,
		},
		{
			name:      "soft-deleted transactions count",
			txns:      sampleTransactions(),
			accountID: "a2",
			want:      -500,
		},
		{
			name:      "no matches",
			txns:      sampleTransactions(),
			accountID: "nope",
			want:      0,
		},
		{
			name:      "empty sequence",
			txns:      nil,
			accountID: "a1",
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AccountBalance(tt.txns, tt.accountID))
		})
	}
}

func TestAccountBalance_MatchesPlainSum(t *testing.T) {
	txns := sampleTransactions()
	var manual int64
	for _, txn := range txns {
		if txn.AccountID == "a1" {
			manual += txn.Amount
		}
	}
	assert.Equal(t, manual, AccountBalance(txns, "a1"))
}

func TestCategoryBalance(t *testing.T) {
	txns := sampleTransactions()
	assert.Equal(t, int64(-460), CategoryBalance(txns, "groceries"))
	assert.Equal(t, int64(1000), CategoryBalance(txns, "salary"))
	assert.Equal(t, int64(0), CategoryBalance(txns, "non_existing_category"))
}

func TestDeleteOldTransactions(t *testing.T) {
	txns := sampleTransactions()
	cutoff := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	got := DeleteOldTransactions(txns, cutoff)

	assert.Equal(t, []string{"t2", "t3", "t4", "t5", "t6"}, transactionIDs(got), "boundary is inclusive and order preserved")
	for _, txn := range got {
		ts, err := txn.Time()
		require.NoError(t, err)
		assert.False(t, ts.Before(cutoff))
	}
	assert.Len(t, txns, 6, "input must not change")
}

func TestDeleteOldTransactions_Edges(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		got := DeleteOldTransactions(nil, time.Now())
		assert.Empty(t, got)
	})

	t.Run("unparseable timestamps are kept", func(t *testing.T) {
		txns := []model.Transaction{{ID: "bad", Timestamp: "someday"}}
		got := DeleteOldTransactions(txns, time.Now())
		assert.Equal(t, []string{"bad"}, transactionIDs(got))
	})

	t.Run("future cutoff removes everything", func(t *testing.T) {
		got := DeleteOldTransactions(sampleTransactions(), time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC))
		assert.Empty(t, got)
	})
}

func TestSoftDeleteAndRestore(t *testing.T) {
	txns := sampleTransactions()

	deleted, ok := SoftDeleteTransaction(txns, "t1")
	require.True(t, ok)
	assert.True(t, deleted[0].Deleted)
	assert.False(t, txns[0].Deleted, "input must not change")
	assert.Len(t, deleted, len(txns), "soft delete keeps the record")

	restored, ok := RestoreTransaction(deleted, "t1")
	require.True(t, ok)
	assert.False(t, restored[0].Deleted)

	_, ok = SoftDeleteTransaction(txns, "missing")
	assert.False(t, ok)
}

func TestFindHelpers(t *testing.T) {
	accounts := []model.Account{{ID: "a1"}, {ID: "a2"}}
	assert.True(t, FindAccount(accounts, "a2").IsSome())
	assert.False(t, FindAccount(accounts, "a3").IsSome())

	cat, ok := FindCategory(categoryTree(), "fuel").Get()
	require.True(t, ok)
	assert.Equal(t, "Fuel", cat.Name)

	assert.False(t, FindTransaction(sampleTransactions(), "t99").IsSome())
	assert.True(t, FindBudget([]model.Budget{{ID: "b1"}}, "b1").IsSome())
}
