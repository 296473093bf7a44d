package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/the-ledger-must-balance/internal/cli"
	"github.com/Veraticus/the-ledger-must-balance/internal/common"
	"github.com/Veraticus/the-ledger-must-balance/internal/fp"
	"github.com/Veraticus/the-ledger-must-balance/internal/ledger"
	"github.com/Veraticus/the-ledger-must-balance/internal/model"
	"github.com/Veraticus/the-ledger-must-balance/internal/session"
	"github.com/Veraticus/the-ledger-must-balance/internal/storage"
	"github.com/spf13/cobra"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// openStore opens the configured store.
func (a *app) openStore(ctx context.Context) (storage.Store, error) {
	driver, err := storage.ParseDriver(a.cfg.Driver)
	if err != nil {
		return nil, common.NewUserError("Unsupported storage driver", err)
	}

	store, err := storage.Open(ctx, driver, a.cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store at %s: %w", driver, a.cfg.DataPath, err)
	}
	slog.Debug("opened store", "driver", driver, "path", a.cfg.DataPath)
	return store, nil
}

// loadSession opens the store, loads the snapshot and logs the configured user in.
// Callers own the returned store and must close it.
func (a *app) loadSession(cmd *cobra.Command) (storage.Store, session.State, error) {
	ctx := cmd.Context()

	store, err := a.openStore(ctx)
	if err != nil {
		return nil, session.State{}, err
	}

	snapshot, err := store.Load(ctx)
	if err != nil {
		_ = store.Close()
		return nil, session.State{}, common.NewUserError("Failed to load ledger", err)
	}

	password := a.cfg.Password
	if len(snapshot.Users) > 0 && a.cfg.User != "" && password == "" {
		prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
		password, err = prompter.Password(ctx, "Password for "+a.cfg.User)
		if err != nil {
			_ = store.Close()
			return nil, session.State{}, fmt.Errorf("failed to read password: %w", err)
		}
	}

	state, err := session.Open(snapshot, a.cfg.User, password)
	if err != nil {
		_ = store.Close()
		return nil, session.State{}, common.NewUserError("Login failed", err)
	}
	return store, state, nil
}

// save persists the state's snapshot.
func save(ctx context.Context, store storage.Store, state session.State) error {
	if err := store.Save(ctx, state.Snapshot()); err != nil {
		return common.NewUserError("Failed to save ledger", err)
	}
	return nil
}

// newTable returns a tab-aligned writer for command output.
func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// writeHeader writes a styled header row followed by a dashed rule.
func writeHeader(w io.Writer, columns ...string) {
	styled := make([]string, len(columns))
	rules := make([]string, len(columns))
	for i, c := range columns {
		styled[i] = cli.TableHeaderStyle.Render(c)
		rules[i] = strings.Repeat("-", max(len(c), 4))
	}
	fmt.Fprintln(w, strings.Join(styled, "\t"))
	fmt.Fprintln(w, strings.Join(rules, "\t"))
}

// currencyOf returns the currency of the account with id, or "" when unknown.
func currencyOf(accounts []model.Account, id string) string {
	return fp.MapMaybe(ledger.FindAccount(accounts, id), func(a model.Account) string {
		return a.Currency
	}).GetOrElse("")
}

// categoryName returns the category's name, falling back to its id.
func categoryName(categories []model.Category, id string) string {
	return fp.MapMaybe(ledger.FindCategory(categories, id), func(c model.Category) string {
		return c.Name
	}).GetOrElse(id)
}
