// Package forecast projects the average periodic expense of a category.
package forecast

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Veraticus/the-ledger-must-balance/internal/cache"
	"github.com/Veraticus/the-ledger-must-balance/internal/fp"
	"github.com/Veraticus/the-ledger-must-balance/internal/model"
)

// Expenses returns the truncated average outflow of categoryID per period.
// It is a pure function of its inputs; a period below one is treated as one.
func Expenses(categoryID string, txns []model.Transaction, period int) int64 {
	amounts := make([]int64, 0)
	for _, t := range txns {
		if t.CategoryID == categoryID && t.IsOutflow() {
			amounts = append(amounts, fp.Abs(t.Amount))
		}
	}
	if len(amounts) == 0 {
		return 0
	}
	return fp.SumRecursive(amounts) / int64(max(1, period))
}

// Key derives the content-addressed cache key for a forecast. Equal transaction
// slices produce equal keys regardless of their backing arrays.
func Key(categoryID string, txns []model.Transaction, period int) string {
	h := sha256.New()
	writeString(h, categoryID)
	writeInt(h, int64(period))
	writeInt(h, int64(len(txns)))
	for _, t := range txns {
		writeString(h, t.ID)
		writeString(h, t.AccountID)
		writeString(h, t.UserID)
		writeString(h, t.CategoryID)
		writeInt(h, t.Amount)
		writeString(h, t.Timestamp)
		writeString(h, t.Note)
		if t.Deleted {
			writeInt(h, 1)
		} else {
			writeInt(h, 0)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// writeString length-prefixes s so adjacent fields cannot run together.
func writeString(h hash.Hash, s string) {
	writeInt(h, int64(len(s)))
	_, _ = h.Write([]byte(s))
}

func writeInt(h hash.Hash, n int64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(n))
	_, _ = h.Write(buf[:])
}

// Stats reports cache behavior of a Forecaster.
type Stats struct {
	Hits         int64
	Misses       int64
	Computations int64
	Entries      int
}

// Forecaster memoizes Expenses behind a bounded LRU cache.
type Forecaster struct {
	cache        *cache.LRU[int64]
	hits         atomic.Int64
	misses       atomic.Int64
	computations atomic.Int64
}

// New creates a Forecaster caching at most capacity results.
func New(capacity int) *Forecaster {
	return &Forecaster{cache: cache.NewLRU[int64](capacity)}
}

// Forecast returns Expenses(categoryID, txns, period), computing it at most once per
// distinct content key while the entry stays cached.
func (f *Forecaster) Forecast(categoryID string, txns []model.Transaction, period int) int64 {
	key := Key(categoryID, txns, period)
	if v, ok := f.cache.Get(key); ok {
		f.hits.Add(1)
		return v
	}

	f.misses.Add(1)
	f.computations.Add(1)
	v := Expenses(categoryID, txns, period)
	if evicted := f.cache.Set(key, v); evicted {
		slog.Debug("forecast cache evicted entry", "capacity", f.cache.Capacity())
	}
	return v
}

// ForecastTimed is Forecast plus the wall-clock time it took. Timing is observational
// only and never influences the cached value.
func (f *Forecaster) ForecastTimed(categoryID string, txns []model.Transaction, period int) (int64, time.Duration) {
	start := time.Now()
	v := f.Forecast(categoryID, txns, period)
	return v, time.Since(start)
}

// Stats returns a snapshot of the cache counters.
func (f *Forecaster) Stats() Stats {
	return Stats{
		Hits:         f.hits.Load(),
		Misses:       f.misses.Load(),
		Computations: f.computations.Load(),
		Entries:      f.cache.Len(),
	}
}

// Reset empties the cache and zeroes the counters.
func (f *Forecaster) Reset() {
	f.cache.Clear()
	f.hits.Store(0)
	f.misses.Store(0)
	f.computations.Store(0)
}
