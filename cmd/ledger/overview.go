package main

import (
	"fmt"

	"github.com/Veraticus/the-ledger-must-balance/internal/cli"
	"github.com/Veraticus/the-ledger-must-balance/internal/ledger"
	"github.com/spf13/cobra"
)

func overviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Summarize the ledger for the current user",
		Long:  `Show record counts and the balance of every account visible to the current user.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, state, err := a.loadSession(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			user := state.User()
			role := "standard"
			if user.IsAdmin {
				role = "admin"
			}

			summary := fmt.Sprintf("User: %s (%s)\nAccounts: %d  Categories: %d  Transactions: %d  Budgets: %d",
				user.Username, role,
				len(state.Accounts()),
				len(state.Categories()),
				len(state.Transactions()),
				len(state.Budgets()))
			fmt.Fprintln(out, cli.RenderBox(cli.LedgerIcon+" Ledger overview", summary))
			fmt.Fprintln(out)

			accounts := state.Accounts()
			if len(accounts) == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("No accounts found."))
				return nil
			}

			txns := state.Transactions()
			w := newTable(out)
			writeHeader(w, "Account", "Name", "Recorded", "Transactions")
			for _, acc := range accounts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					acc.ID,
					acc.Name,
					cli.FormatMoney(acc.Balance, acc.Currency),
					cli.FormatSignedMoney(ledger.AccountBalance(txns, acc.ID), acc.Currency))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if exceeded := ledger.ExceededBudgets(state.Budgets(), txns); len(exceeded) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%d budget(s) over limit, see 'ledger budgets check'", len(exceeded))))
			}
			return nil
		},
	}
}
