package main

import (
	"fmt"
	"io"

	"github.com/Veraticus/the-ledger-must-balance/internal/cli"
	"github.com/Veraticus/the-ledger-must-balance/internal/common"
	"github.com/Veraticus/the-ledger-must-balance/internal/fp"
	"github.com/Veraticus/the-ledger-must-balance/internal/ledger"
	"github.com/Veraticus/the-ledger-must-balance/internal/model"
	"github.com/Veraticus/the-ledger-must-balance/internal/session"
	"github.com/spf13/cobra"
)

func usersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect ledger users (admin)",
	}

	cmd.AddCommand(listUsersCmd(a))
	cmd.AddCommand(showUserCmd(a))

	return cmd
}

func listUsersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users with the records each one can see",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, state, err := a.loadSession(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := state.RequireAdmin("listing users"); err != nil {
				return common.NewUserError("Cannot list users", err)
			}

			out := cmd.OutOrStdout()
			snapshot := state.Snapshot()
			if len(snapshot.Users) == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("No users found."))
				return nil
			}

			w := newTable(out)
			writeHeader(w, "Username", "Role", "Accounts", "Transactions", "Budgets")
			for _, u := range snapshot.Users {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n",
					u.Username,
					roleOf(u),
					len(ledger.VisibleAccounts(snapshot.Accounts, u)),
					len(ledger.VisibleTransactions(snapshot.Transactions, u)),
					len(ledger.VisibleBudgets(snapshot.Budgets, u)))
			}
			return w.Flush()
		},
	}
}

func showUserCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <username>",
		Short: "Show a user and the records visible to them",
		Long: `Show a user record followed by the accounts, transactions and budgets that
user sees when logged in. Standard users never see soft-deleted transactions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, state, err := a.loadSession(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := state.RequireAdmin("showing users"); err != nil {
				return common.NewUserError("Cannot show user", err)
			}

			selected, ok := fp.Find(state.Snapshot().Users, func(u model.User) bool {
				return u.Username == args[0]
			}).Get()
			if !ok {
				return common.NewUserError("Cannot show user", common.NotFound("user", args[0]))
			}
			return writeUserView(cmd.OutOrStdout(), state, selected)
		},
	}
}

// writeUserView prints what selected would see after logging in.
func writeUserView(out io.Writer, state session.State, selected model.User) error {
	snapshot := state.Snapshot()

	fmt.Fprintln(out, cli.TitleStyle.Render("User "+selected.Username))
	fmt.Fprintf(out, "Role: %s\n\n", roleOf(selected))

	fmt.Fprintln(out, cli.BoldStyle.Render("Accounts"))
	w := newTable(out)
	writeHeader(w, "ID", "Name", "Balance")
	for _, acc := range ledger.VisibleAccounts(snapshot.Accounts, selected) {
		fmt.Fprintf(w, "%s\t%s\t%s\n", acc.ID, acc.Name, cli.FormatMoney(acc.Balance, acc.Currency))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.BoldStyle.Render("Transactions"))
	w = newTable(out)
	writeHeader(w, "ID", "Date", "Category", "Amount", "Note")
	for _, t := range ledger.VisibleTransactions(snapshot.Transactions, selected) {
		note := t.Note
		if t.Deleted {
			note = cli.SubtleStyle.Render("(deleted) ") + note
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			t.Timestamp,
			categoryName(snapshot.Categories, t.CategoryID),
			cli.FormatSignedMoney(t.Amount, currencyOf(snapshot.Accounts, t.AccountID)),
			note)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.BoldStyle.Render("Budgets"))
	w = newTable(out)
	writeHeader(w, "ID", "Category", "Period", "Limit")
	for _, b := range ledger.VisibleBudgets(snapshot.Budgets, selected) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			b.ID,
			categoryName(snapshot.Categories, b.CategoryID),
			b.Period,
			cli.FormatMoney(b.Limit, ""))
	}
	return w.Flush()
}

func roleOf(u model.User) string {
	if u.IsAdmin {
		return "admin"
	}
	return "standard"
}
