package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnparseableTimestamp is returned when a transaction timestamp matches no supported layout.
var ErrUnparseableTimestamp = errors.New("unparseable timestamp")

// timestampLayouts lists the ISO-8601 shapes accepted in persisted documents.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Transaction is a single signed money movement. Positive amounts are inflows,
// negative amounts are outflows.
type Transaction struct {
	ID         string `json:"id"`
	AccountID  string `json:"account_id"`
	UserID     string `json:"user_id"`
	CategoryID string `json:"cat_id"`
	Timestamp  string `json:"ts"`
	Note       string `json:"note"`
	Amount     int64  `json:"amount"`
	Deleted    bool   `json:"deleted"`
}

// Time parses the transaction timestamp.
func (t Transaction) Time() (time.Time, error) {
	return ParseTimestamp(t.Timestamp)
}

// IsOutflow reports whether the transaction is an expense.
func (t Transaction) IsOutflow() bool {
	return t.Amount < 0
}

// ParseTimestamp parses an ISO-8601 timestamp in any of the supported layouts.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableTimestamp, s)
}

// FormatTimestamp renders ts the way new transactions are stored.
func FormatTimestamp(ts time.Time) string {
	return ts.Format("2006-01-02T15:04:05")
}
