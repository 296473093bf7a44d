package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/the-ledger-must-balance/internal/cli"
	"github.com/Veraticus/the-ledger-must-balance/internal/common"
	"github.com/Veraticus/the-ledger-must-balance/internal/fp"
	"github.com/Veraticus/the-ledger-must-balance/internal/ledger"
	"github.com/Veraticus/the-ledger-must-balance/internal/model"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func transactionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "List, add and remove transactions",
	}

	cmd.AddCommand(listTransactionsCmd(a))
	cmd.AddCommand(addTransactionCmd(a))
	cmd.AddCommand(deleteTransactionCmd(a))
	cmd.AddCommand(restoreTransactionCmd(a))
	cmd.AddCommand(purgeTransactionsCmd(a))

	return cmd
}

// filterFlags collects the optional query flags of 'transactions list'.
type filterFlags struct {
	category string
	account  string
	minimum  string
	maximum  string
	from     string
	to       string
}

// options converts the flags that were set into ledger filter options.
func (f filterFlags) options(cmd *cobra.Command) (ledger.FilterOptions, error) {
	var opts ledger.FilterOptions
	set := cmd.Flags().Changed

	if set("category") {
		opts.CategoryID = &f.category
	}
	if set("account") {
		opts.AccountID = &f.account
	}
	if set("min") {
		v, err := cli.ParseAmount(f.minimum)
		if err != nil {
			return opts, err
		}
		opts.MinAmount = &v
	}
	if set("max") {
		v, err := cli.ParseAmount(f.maximum)
		if err != nil {
			return opts, err
		}
		opts.MaxAmount = &v
	}
	if set("from") {
		start, err := model.ParseTimestamp(f.from)
		if err != nil {
			return opts, err
		}
		opts.Start = &start
	}
	if set("to") {
		end, err := model.ParseTimestamp(f.to)
		if err != nil {
			return opts, err
		}
		// A bare date includes the whole day.
		if _, err := time.Parse(time.DateOnly, f.to); err == nil {
			end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		opts.End = &end
	}
	return opts, nil
}

func listTransactionsCmd(a *app) *cobra.Command {
	var f filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long: `List the transactions visible to the current user, optionally filtered.

Examples:
  ledger transactions list --category groceries --from 2024-01-01 --to 2024-01-31
  ledger transactions list --max -100.00`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := f.options(cmd)
			if err != nil {
				return common.NewUserError("Invalid filter", err)
			}

			store, state, err := a.loadSession(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			txns := ledger.Filter(state.Transactions(), opts.Predicate())
			if len(txns) == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("No transactions found."))
				return nil
			}

			accounts := state.Snapshot().Accounts
			categories := state.Categories()
			w := newTable(out)
			writeHeader(w, "ID", "Date", "Account", "Category", "Amount", "Note")
			for _, t := range txns {
				note := t.Note
				if t.Deleted {
					note = cli.SubtleStyle.Render("(deleted) ") + note
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					t.ID,
					t.Timestamp,
					t.AccountID,
					categoryName(categories, t.CategoryID),
					cli.FormatSignedMoney(t.Amount, currencyOf(accounts, t.AccountID)),
					note)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%d transaction(s), net %s\n", len(txns),
				cli.FormatMoney(fp.Fold(txns, int64(0), func(acc int64, t model.Transaction) int64 { return acc + t.Amount }), ""))
			return nil
		},
	}

	cmd.Flags().StringVar(&f.category, "category", "", "only this category id")
	cmd.Flags().StringVar(&f.account, "account", "", "only this account id")
	cmd.Flags().StringVar(&f.minimum, "min", "", "minimum signed amount, e.g. -50.00")
	cmd.Flags().StringVar(&f.maximum, "max", "", "maximum signed amount")
	cmd.Flags().StringVar(&f.from, "from", "", "earliest timestamp (inclusive), e.g. 2024-01-01")
	cmd.Flags().StringVar(&f.to, "to", "", "latest timestamp (inclusive)")

	return cmd
}

func addTransactionCmd(a *app) *cobra.Command {
	var (
		accountID  string
		categoryID string
		amount     string
		note       string
		timestamp  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Long: `Record a transaction for the current user. Negative amounts are outflows.

Example:
  ledger transactions add --account checking --category groceries --amount -42.15 --note "market"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			minor, err := cli.ParseAmount(amount)
			if err != nil {
				return common.NewUserError("Invalid amount", err)
			}

			ts := timestamp
			if ts == "" {
				ts = model.FormatTimestamp(time.Now())
			} else if _, err := model.ParseTimestamp(ts); err != nil {
				return common.NewUserError("Invalid timestamp", err)
			}

			store, state, err := a.loadSession(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			candidate := model.Transaction{
				ID:         uuid.NewString(),
				AccountID:  accountID,
				UserID:     state.User().Username,
				CategoryID: categoryID,
				Amount:     minor,
				Timestamp:  ts,
				Note:       note,
			}

			result := ledger.ValidateTransaction(candidate, state.Accounts(), state.Categories())
			if verr, invalid := result.Left(); invalid {
				return common.NewUserError("Transaction rejected", verr)
			}
			t, _ := result.Right()

			next := state.WithTransactions(ledger.AddTransaction(state.Snapshot().Transactions, t))
			if err := save(cmd.Context(), store, next); err != nil {
				return err
			}
			slog.Info("added transaction", "id", t.ID, "account", t.AccountID, "amount", t.Amount)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatSuccess("Added transaction "+t.ID))

			// Warn, but keep the transaction, when it pushes a budget over its limit.
			for _, b := range next.Budgets() {
				if b.CategoryID != t.CategoryID {
					continue
				}
				if verr, over := ledger.CheckBudget(b, next.Transactions()).Left(); over {
					fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Budget %s is over its limit: spent %s of %s",
						b.ID, cli.FormatMoney(verr.Spent, ""), cli.FormatMoney(verr.Limit, ""))))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account id (required)")
	cmd.Flags().StringVar(&categoryID, "category", "", "category id (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "signed amount, e.g. -12.50 (required)")
	cmd.Flags().StringVar(&note, "note", "", "free-form note")
	cmd.Flags().StringVar(&timestamp, "ts", "", "timestamp (default: now)")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func deleteTransactionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <transaction-id>",
		Short: "Soft-delete a transaction",
		Long: `Mark a transaction deleted. It stays in the ledger, hidden from standard users,
and an administrator can restore it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, state, err := a.loadSession(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			t, ok := ledger.FindTransaction(state.Transactions(), args[0]).Get()
			if !ok {
				return common.NewUserError("Cannot delete", common.NotFound("transaction", args[0]))
			}
			if !state.CanModify(t.UserID) {
				return common.NewUserError("Cannot delete", fmt.Errorf("%w: transaction belongs to %s", common.ErrPermissionDenied, t.UserID))
			}

			txns, _ := ledger.SoftDeleteTransaction(state.Snapshot().Transactions, t.ID)
			if err := save(cmd.Context(), store, state.WithTransactions(txns)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted transaction "+t.ID))
			return nil
		},
	}
}

func restoreTransactionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <transaction-id>",
		Short: "Restore a soft-deleted transaction (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, state, err := a.loadSession(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := state.RequireAdmin("restore"); err != nil {
				return common.NewUserError("Cannot restore", err)
			}

			txns, found := ledger.RestoreTransaction(state.Snapshot().Transactions, args[0])
			if !found {
				return common.NewUserError("Cannot restore", common.NotFound("transaction", args[0]))
			}
			if err := save(cmd.Context(), store, state.WithTransactions(txns)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Restored transaction "+args[0]))
			return nil
		},
	}
}

func purgeTransactionsCmd(a *app) *cobra.Command {
	var (
		before string
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Permanently remove transactions older than a date (admin)",
		Long: `Remove every transaction dated before --before from the ledger, including
soft-deleted ones. Transactions with unreadable timestamps are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cutoff, err := model.ParseTimestamp(before)
			if err != nil {
				return common.NewUserError("Invalid --before date", err)
			}

			store, state, err := a.loadSession(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := state.RequireAdmin("purge"); err != nil {
				return common.NewUserError("Cannot purge", err)
			}

			all := state.Snapshot().Transactions
			kept := ledger.DeleteOldTransactions(all, cutoff)
			removed := len(all) - len(kept)

			out := cmd.OutOrStdout()
			if removed == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("Nothing to purge."))
				return nil
			}

			if !yes {
				prompter := cli.NewPrompter(cmd.InOrStdin(), out)
				ok, err := prompter.Confirm(cmd.Context(), fmt.Sprintf("Permanently remove %d transaction(s) dated before %s?", removed, before))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, cli.InfoStyle.Render("Purge canceled."))
					return nil
				}
			}

			if err := save(cmd.Context(), store, state.WithTransactions(kept)); err != nil {
				return err
			}
			slog.Info("purged transactions", "removed", removed, "before", before)
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Purged %d transaction(s)", removed)))
			return nil
		},
	}

	cmd.Flags().StringVar(&before, "before", "", "cutoff date; older transactions are removed (required)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("before")

	return cmd
}
