// Package session holds the application state a command works against: the loaded
// snapshot and the user it acts for. State is a value; every change returns a new State.
package session

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/the-ledger-must-balance/internal/common"
	"github.com/Veraticus/the-ledger-must-balance/internal/fp"
	"github.com/Veraticus/the-ledger-must-balance/internal/ledger"
	"github.com/Veraticus/the-ledger-must-balance/internal/model"
)

// AnonymousUsername names the operator of a ledger that has no users configured.
const AnonymousUsername = "operator"

// State is the explicit application state: a snapshot plus the logged-in user.
type State struct {
	user     model.User
	snapshot model.Snapshot
}

// Login authenticates username against users. Passwords are compared verbatim.
func Login(users []model.User, username, password string) fp.Either[error, model.User] {
	found := fp.Find(users, func(u model.User) bool { return u.Username == username })
	user, ok := found.Get()
	if !ok || user.Password != password {
		return fp.Left[error, model.User](fmt.Errorf("%w for %q", common.ErrAuthFailed, username))
	}
	return fp.Right[error](user)
}

// Open starts a session over snapshot. A snapshot without users runs as an
// anonymous administrator so a fresh ledger is usable before any user exists.
func Open(snapshot model.Snapshot, username, password string) (State, error) {
	if len(snapshot.Users) == 0 {
		slog.Debug("ledger has no users, running as anonymous admin")
		return State{
			user:     model.User{Username: AnonymousUsername, IsAdmin: true},
			snapshot: snapshot,
		}, nil
	}

	result := fp.MapEither(Login(snapshot.Users, username, password), func(u model.User) State {
		return State{user: u, snapshot: snapshot}
	})
	if err, failed := result.Left(); failed {
		return State{}, err
	}
	state, _ := result.Right()
	slog.Debug("logged in", "user", state.user.Username, "admin", state.user.IsAdmin)
	return state, nil
}

// User returns the logged-in user.
func (s State) User() model.User {
	return s.user
}

// IsAdmin reports whether the logged-in user is an administrator.
func (s State) IsAdmin() bool {
	return s.user.IsAdmin
}

// Snapshot returns the full, unfiltered snapshot for persistence.
func (s State) Snapshot() model.Snapshot {
	return s.snapshot
}

// Categories returns every category; categories are shared between users.
func (s State) Categories() []model.Category {
	return s.snapshot.Categories
}

// Transactions returns the transactions the user may see.
func (s State) Transactions() []model.Transaction {
	return ledger.VisibleTransactions(s.snapshot.Transactions, s.user)
}

// Budgets returns the budgets the user may see.
func (s State) Budgets() []model.Budget {
	return ledger.VisibleBudgets(s.snapshot.Budgets, s.user)
}

// Accounts returns the accounts the user may see.
func (s State) Accounts() []model.Account {
	return ledger.VisibleAccounts(s.snapshot.Accounts, s.user)
}

// RequireAdmin fails with ErrPermissionDenied unless the user is an administrator.
func (s State) RequireAdmin(action string) error {
	if !s.user.IsAdmin {
		return fmt.Errorf("%w: %s requires an administrator", common.ErrPermissionDenied, action)
	}
	return nil
}

// CanModify reports whether the user may change a record owned by owner.
func (s State) CanModify(owner string) bool {
	return s.user.IsAdmin || s.user.Username == owner
}

// WithSnapshot returns a copy of the state holding snapshot.
func (s State) WithSnapshot(snapshot model.Snapshot) State {
	s.snapshot = snapshot
	return s
}

// WithTransactions returns a copy of the state holding txns.
func (s State) WithTransactions(txns []model.Transaction) State {
	return s.WithSnapshot(s.snapshot.WithTransactions(txns))
}

// WithBudgets returns a copy of the state holding budgets.
func (s State) WithBudgets(budgets []model.Budget) State {
	return s.WithSnapshot(s.snapshot.WithBudgets(budgets))
}
