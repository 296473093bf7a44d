package forecast

import (
	"testing"

	"github.com/Veraticus/the-ledger-must-balance/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTransactions() []model.Transaction {
	return []model.Transaction{
		{ID: "t1", CategoryID: "cat6", Amount: -900, Timestamp: "2025-01-03T10:00:00"},
		{ID: "t2", CategoryID: "cat6", Amount: -400, Timestamp: "2025-02-03T10:00:00"},
		{ID: "t3", CategoryID: "cat6", Amount: 250, Timestamp: "2025-02-04T10:00:00"},
		{ID: "t4", CategoryID: "cat2", Amount: -70, Timestamp: "2025-03-01T10:00:00"},
		{ID: "t5", CategoryID: "cat6", Amount: -5, Timestamp: "2025-03-03T10:00:00"},
	}
}

func TestExpenses(t *testing.T) {
	txns := sampleTransactions()

	tests := []struct {
		name     string
		category string
		period   int
		want     int64
	}{
		{name: "single period", category: "cat6", period: 1, want: 1305},
		{name: "truncating division", category: "cat6", period: 2, want: 652},
		{name: "three periods", category: "cat6", period: 3, want: 435},
		{name: "zero period treated as one", category: "cat6", period: 0, want: 1305},
		{name: "negative period treated as one", category: "cat6", period: -4, want: 1305},
		{name: "no matching outflows", category: "not_a_cat", period: 2, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Expenses(tt.category, txns, tt.period))
		})
	}
}

func TestExpenses_MonotonicInPeriod(t *testing.T) {
	txns := sampleTransactions()
	prev := Expenses("cat6", txns, 1)
	for p := 2; p <= 12; p++ {
		got := Expenses("cat6", txns, p)
		assert.LessOrEqual(t, got, prev, "period %d", p)
		prev = got
	}
}

func TestKey(t *testing.T) {
	txns := sampleTransactions()
	clone := append([]model.Transaction(nil), txns...)

	assert.Equal(t, Key("cat6", txns, 3), Key("cat6", clone, 3), "equal content, different backing array")
	assert.NotEqual(t, Key("cat6", txns, 3), Key("cat6", txns, 4))
	assert.NotEqual(t, Key("cat6", txns, 3), Key("cat2", txns, 3))

	clone[0].Amount = -901
	assert.NotEqual(t, Key("cat6", txns, 3), Key("cat6", clone, 3))

	// Field boundaries are length-prefixed.
	a := []model.Transaction{{ID: "ab", AccountID: "c"}}
	b := []model.Transaction{{ID: "a", AccountID: "bc"}}
	assert.NotEqual(t, Key("x", a, 1), Key("x", b, 1))
}

func TestForecaster_Memoizes(t *testing.T) {
	f := New(8)
	txns := sampleTransactions()

	first := f.Forecast("cat6", txns, 3)
	second := f.Forecast("cat6", append([]model.Transaction(nil), txns...), 3)

	assert.Equal(t, first, second)
	stats := f.Stats()
	assert.Equal(t, int64(1), stats.Computations, "equal arguments must not recompute")
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Entries)
}

func TestForecaster_MatchesPureFunction(t *testing.T) {
	f := New(8)
	txns := sampleTransactions()
	for _, period := range []int{0, 1, 2, 3, 6} {
		assert.Equal(t, Expenses("cat6", txns, period), f.Forecast("cat6", txns, period))
	}
}

func TestForecaster_BoundedCache(t *testing.T) {
	f := New(2)
	txns := sampleTransactions()

	f.Forecast("cat6", txns, 1)
	f.Forecast("cat6", txns, 2)
	f.Forecast("cat6", txns, 3)

	assert.Equal(t, 2, f.Stats().Entries)

	// Period 1 was evicted, so asking again recomputes.
	f.Forecast("cat6", txns, 1)
	assert.Equal(t, int64(4), f.Stats().Computations)
}

func TestForecaster_TimedDoesNotAffectCache(t *testing.T) {
	f := New(8)
	txns := sampleTransactions()

	v1, elapsed := f.ForecastTimed("cat6", txns, 3)
	require.GreaterOrEqual(t, int64(elapsed), int64(0))

	v2, _ := f.ForecastTimed("cat6", txns, 3)
	assert.Equal(t, v1, v2)
	assert.Equal(t, Expenses("cat6", txns, 3), f.Forecast("cat6", txns, 3))
	assert.Equal(t, int64(1), f.Stats().Computations)
}

func TestForecaster_Reset(t *testing.T) {
	f := New(8)
	f.Forecast("cat6", sampleTransactions(), 1)
	f.Reset()
	assert.Equal(t, Stats{}, f.Stats())
}
