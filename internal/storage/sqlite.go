package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/the-ledger-must-balance/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore keeps a snapshot in a SQLite database, one table per collection.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens the database at dbPath. Call Migrate before Load or Save.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads every collection in stored order and validates the result.
func (s *SQLiteStore) Load(ctx context.Context) (model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return model.Snapshot{}, err
	}

	var (
		snapshot model.Snapshot
		err      error
	)
	if snapshot.Accounts, err = s.loadAccounts(ctx); err != nil {
		return model.Snapshot{}, err
	}
	if snapshot.Categories, err = s.loadCategories(ctx); err != nil {
		return model.Snapshot{}, err
	}
	if snapshot.Transactions, err = s.loadTransactions(ctx); err != nil {
		return model.Snapshot{}, err
	}
	if snapshot.Budgets, err = s.loadBudgets(ctx); err != nil {
		return model.Snapshot{}, err
	}
	if snapshot.Users, err = s.loadUsers(ctx); err != nil {
		return model.Snapshot{}, err
	}

	if err := ValidateSnapshot(snapshot); err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to load %s: %w", s.dbPath, err)
	}
	return snapshot, nil
}

// Save replaces the stored snapshot inside a single database transaction.
func (s *SQLiteStore) Save(ctx context.Context, snapshot model.Snapshot) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"accounts", "categories", "transactions", "budgets", "users"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err = insertAll(ctx, tx,
		`INSERT INTO accounts (id, position, name, balance, currency, user_id) VALUES (?, ?, ?, ?, ?, ?)`,
		snapshot.Accounts, func(i int, a model.Account) []any {
			return []any{a.ID, i, a.Name, a.Balance, a.Currency, a.UserID}
		}); err != nil {
		return fmt.Errorf("failed to save accounts: %w", err)
	}

	if err = insertAll(ctx, tx,
		`INSERT INTO categories (id, position, name, parent_id, type) VALUES (?, ?, ?, ?, ?)`,
		snapshot.Categories, func(i int, c model.Category) []any {
			var parent sql.NullString
			if c.ParentID != nil {
				parent = sql.NullString{String: *c.ParentID, Valid: true}
			}
			return []any{c.ID, i, c.Name, parent, string(c.Type)}
		}); err != nil {
		return fmt.Errorf("failed to save categories: %w", err)
	}

	if err = insertAll(ctx, tx,
		`INSERT INTO transactions (id, position, account_id, user_id, cat_id, amount, ts, note, deleted) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snapshot.Transactions, func(i int, t model.Transaction) []any {
			return []any{t.ID, i, t.AccountID, t.UserID, t.CategoryID, t.Amount, t.Timestamp, t.Note, t.Deleted}
		}); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}

	if err = insertAll(ctx, tx,
		`INSERT INTO budgets (id, position, user_id, cat_id, "limit", period) VALUES (?, ?, ?, ?, ?, ?)`,
		snapshot.Budgets, func(i int, b model.Budget) []any {
			return []any{b.ID, i, b.UserID, b.CategoryID, b.Limit, b.Period}
		}); err != nil {
		return fmt.Errorf("failed to save budgets: %w", err)
	}

	if err = insertAll(ctx, tx,
		`INSERT INTO users (username, position, password, is_admin) VALUES (?, ?, ?, ?)`,
		snapshot.Users, func(i int, u model.User) []any {
			return []any{u.Username, i, u.Password, u.IsAdmin}
		}); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	slog.Debug("saved ledger database", "path", s.dbPath, "counts", snapshot.Counts())
	return nil
}

func insertAll[T any](ctx context.Context, tx *sql.Tx, query string, items []T, args func(int, T) []any) error {
	if len(items) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, item := range items {
		if _, err := stmt.ExecContext(ctx, args(i, item)...); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) loadAccounts(ctx context.Context) ([]model.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, balance, currency, user_id FROM accounts ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	accounts := []model.Account{}
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Balance, &a.Currency, &a.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (s *SQLiteStore) loadCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, parent_id, type FROM categories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	categories := []model.Category{}
	for rows.Next() {
		var (
			c        model.Category
			parent   sql.NullString
			category string
		)
		if err := rows.Scan(&c.ID, &c.Name, &parent, &category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		if parent.Valid {
			c.ParentID = model.ParentRef(parent.String)
		}
		c.Type = model.CategoryType(category)
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *SQLiteStore) loadTransactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, account_id, user_id, cat_id, amount, ts, note, deleted FROM transactions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	txns := []model.Transaction{}
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.AccountID, &t.UserID, &t.CategoryID, &t.Amount, &t.Timestamp, &t.Note, &t.Deleted); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

func (s *SQLiteStore) loadBudgets(ctx context.Context) ([]model.Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, cat_id, "limit", period FROM budgets ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	budgets := []model.Budget{}
	for rows.Next() {
		var b model.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Limit, &b.Period); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func (s *SQLiteStore) loadUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT username, password, is_admin FROM users ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.Username, &u.Password, &u.IsAdmin); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
