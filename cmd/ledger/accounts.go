package main

import (
	"fmt"

	"github.com/Veraticus/the-ledger-must-balance/internal/cli"
	"github.com/Veraticus/the-ledger-must-balance/internal/common"
	"github.com/Veraticus/the-ledger-must-balance/internal/ledger"
	"github.com/spf13/cobra"
)

func accountsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Inspect accounts",
	}

	cmd.AddCommand(listAccountsCmd(a))
	cmd.AddCommand(accountBalanceCmd(a))

	return cmd
}

func listAccountsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, state, err := a.loadSession(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			accounts := state.Accounts()
			if len(accounts) == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("No accounts found."))
				return nil
			}

			w := newTable(out)
			writeHeader(w, "ID", "Name", "Owner", "Balance")
			for _, acc := range accounts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", acc.ID, acc.Name, acc.UserID, cli.FormatMoney(acc.Balance, acc.Currency))
			}
			return w.Flush()
		},
	}
}

func accountBalanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Sum the transactions booked to an account",
		Long: `Sum the amounts of every transaction booked to the account. Soft-deleted
transactions count for administrators, who can see them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, state, err := a.loadSession(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			acc, ok := ledger.FindAccount(state.Accounts(), args[0]).Get()
			if !ok {
				return common.NewUserError("Cannot show balance", common.NotFound("account", args[0]))
			}

			balance := ledger.AccountBalance(state.Transactions(), acc.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %s\n", acc.Name, acc.ID, cli.FormatSignedMoney(balance, acc.Currency))
			return nil
		},
	}
}
