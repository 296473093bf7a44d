package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Veraticus/the-ledger-must-balance/internal/model"
)

// Field names of each persisted collection. They are the document contract:
// a record with a field outside its set, or missing a required one, is rejected.
var (
	accountFields     = []string{"id", "name", "balance", "currency", "user_id"}
	categoryFields    = []string{"id", "name", "parent_id", "type"}
	transactionFields = []string{"id", "account_id", "user_id", "cat_id", "amount", "ts", "note"}
	budgetFields      = []string{"id", "user_id", "cat_id", "limit", "period"}
	userFields        = []string{"username", "password", "is_admin"}

	optionalTransactionFields = []string{"deleted"}
)

// document is the raw shape of a ledger file before per-record validation.
// A nil collection was absent (or null) in the file.
type document struct {
	Accounts     *[]json.RawMessage `json:"accounts"`
	Categories   *[]json.RawMessage `json:"categories"`
	Transactions *[]json.RawMessage `json:"transactions"`
	Budgets      *[]json.RawMessage `json:"budgets"`
	Users        *[]json.RawMessage `json:"users"`
}

// missing names the required collections absent from the document. Users are optional.
func (d document) missing() []string {
	var names []string
	for _, c := range []struct {
		raws *[]json.RawMessage
		name string
	}{
		{name: "accounts", raws: d.Accounts},
		{name: "categories", raws: d.Categories},
		{name: "transactions", raws: d.Transactions},
		{name: "budgets", raws: d.Budgets},
	} {
		if c.raws == nil {
			names = append(names, c.name)
		}
	}
	return names
}

// JSONStore keeps a snapshot in a single JSON document.
type JSONStore struct {
	path string
}

// NewJSONStore creates a store backed by the document at path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the document location.
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads and validates the document. A missing file yields an empty snapshot.
func (s *JSONStore) Load(ctx context.Context) (model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return model.Snapshot{}, err
	}

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("ledger document not found, starting empty", "path", s.path)
		return model.Snapshot{}, nil
	}
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to open ledger document: %w", err)
	}
	defer f.Close()

	snapshot, err := Decode(f)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to load %s: %w", s.path, err)
	}

	slog.Debug("loaded ledger document",
		"path", s.path,
		"accounts", len(snapshot.Accounts),
		"categories", len(snapshot.Categories),
		"transactions", len(snapshot.Transactions),
		"budgets", len(snapshot.Budgets))
	return snapshot, nil
}

// Save writes the snapshot atomically: a temporary file in the same directory is
// written, synced and renamed over the document.
func (s *JSONStore) Save(ctx context.Context, snapshot model.Snapshot) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	data, err := Encode(snapshot)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".ledger-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write ledger document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync ledger document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close ledger document: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace ledger document: %w", err)
	}

	slog.Debug("saved ledger document", "path", s.path, "bytes", len(data))
	return nil
}

// Close is a no-op; the document is not held open between calls.
func (s *JSONStore) Close() error {
	return nil
}

// Decode parses a ledger document strictly and validates the resulting snapshot.
func Decode(r io.Reader) (model.Snapshot, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if missing := doc.missing(); len(missing) > 0 {
		return model.Snapshot{}, fmt.Errorf("%w: missing collection(s) %s", ErrInvalidRecord, strings.Join(missing, ", "))
	}

	var (
		snapshot model.Snapshot
		err      error
	)
	if snapshot.Accounts, err = decodeCollection[model.Account]("accounts", *doc.Accounts, accountFields, nil); err != nil {
		return model.Snapshot{}, err
	}
	if snapshot.Categories, err = decodeCollection[model.Category]("categories", *doc.Categories, categoryFields, nil); err != nil {
		return model.Snapshot{}, err
	}
	if snapshot.Transactions, err = decodeCollection[model.Transaction]("transactions", *doc.Transactions, transactionFields, optionalTransactionFields); err != nil {
		return model.Snapshot{}, err
	}
	if snapshot.Budgets, err = decodeCollection[model.Budget]("budgets", *doc.Budgets, budgetFields, nil); err != nil {
		return model.Snapshot{}, err
	}
	var users []json.RawMessage
	if doc.Users != nil {
		users = *doc.Users
	}
	if snapshot.Users, err = decodeCollection[model.User]("users", users, userFields, nil); err != nil {
		return model.Snapshot{}, err
	}

	if err := ValidateSnapshot(snapshot); err != nil {
		return model.Snapshot{}, err
	}
	return snapshot, nil
}

// Encode renders a snapshot as an indented ledger document.
func Encode(snapshot model.Snapshot) ([]byte, error) {
	// Empty collections are written as [] rather than null.
	out := struct {
		Accounts     []model.Account     `json:"accounts"`
		Categories   []model.Category    `json:"categories"`
		Transactions []model.Transaction `json:"transactions"`
		Budgets      []model.Budget      `json:"budgets"`
		Users        []model.User        `json:"users"`
	}{
		Accounts:     nonNil(snapshot.Accounts),
		Categories:   nonNil(snapshot.Categories),
		Transactions: nonNil(snapshot.Transactions),
		Budgets:      nonNil(snapshot.Budgets),
		Users:        nonNil(snapshot.Users),
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("failed to encode ledger document: %w", err)
	}
	return buf.Bytes(), nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func decodeCollection[T any](collection string, raws []json.RawMessage, required, optional []string) ([]T, error) {
	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		item, err := decodeRecord[T](raw, required, optional)
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %v", ErrInvalidRecord, collection, i, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func decodeRecord[T any](raw json.RawMessage, required, optional []string) (T, error) {
	var zero T

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return zero, err
	}

	allowed := make(map[string]bool, len(required)+len(optional))
	for _, name := range required {
		allowed[name] = true
	}
	for _, name := range optional {
		allowed[name] = true
	}

	var missing, extra []string
	for _, name := range required {
		if _, ok := fields[name]; !ok {
			missing = append(missing, name)
		}
	}
	for name := range fields {
		if !allowed[name] {
			extra = append(extra, name)
		}
	}
	if len(missing) > 0 {
		return zero, fmt.Errorf("missing field(s) %s", strings.Join(missing, ", "))
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return zero, fmt.Errorf("unknown field(s) %s", strings.Join(extra, ", "))
	}

	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return zero, err
	}
	return item, nil
}
