package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/the-ledger-must-balance/internal/cli"
	"github.com/Veraticus/the-ledger-must-balance/internal/common"
	"github.com/Veraticus/the-ledger-must-balance/internal/ledger"
	"github.com/spf13/cobra"
)

func budgetsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Review and adjust budgets",
	}

	cmd.AddCommand(listBudgetsCmd(a))
	cmd.AddCommand(setBudgetLimitCmd(a))
	cmd.AddCommand(checkBudgetsCmd(a))

	return cmd
}

func listBudgetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budgets with their spending",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, state, err := a.loadSession(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			budgets := state.Budgets()
			if len(budgets) == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("No budgets found."))
				return nil
			}

			txns := state.Transactions()
			w := newTable(out)
			writeHeader(w, "ID", "Category", "Period", "Limit", "Spent", "Owner")
			for _, b := range budgets {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					b.ID,
					categoryName(state.Categories(), b.CategoryID),
					b.Period,
					cli.FormatMoney(b.Limit, ""),
					cli.FormatMoney(ledger.OutflowTotal(txns, b.CategoryID), ""),
					b.UserID)
			}
			return w.Flush()
		},
	}
}

func setBudgetLimitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-limit <budget-id> <limit>",
		Short: "Change a budget's limit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := cli.ParseAmount(args[1])
			if err != nil {
				return common.NewUserError("Invalid limit", err)
			}
			if limit < 0 {
				return common.NewUserError("Invalid limit", fmt.Errorf("limit must not be negative, got %s", args[1]))
			}

			store, state, err := a.loadSession(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			b, ok := ledger.FindBudget(state.Budgets(), args[0]).Get()
			if !ok {
				return common.NewUserError("Cannot update budget", common.NotFound("budget", args[0]))
			}
			if !state.CanModify(b.UserID) {
				return common.NewUserError("Cannot update budget", fmt.Errorf("%w: budget belongs to %s", common.ErrPermissionDenied, b.UserID))
			}

			next := state.WithBudgets(ledger.UpdateBudget(state.Snapshot().Budgets, b.ID, limit))
			if err := save(cmd.Context(), store, next); err != nil {
				return err
			}
			slog.Info("updated budget limit", "id", b.ID, "old", b.Limit, "new", limit)
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Budget %s limit set to %s", b.ID, cli.FormatMoney(limit, ""))))
			return nil
		},
	}
}

func checkBudgetsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report budgets whose spending exceeds the limit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, state, err := a.loadSession(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			txns := state.Transactions()
			for _, b := range state.Budgets() {
				result := ledger.CheckBudget(b, txns)
				if verr, over := result.Left(); over {
					fmt.Fprintln(out, cli.FormatError(fmt.Sprintf("%s over limit: spent %s of %s",
						b.ID, cli.FormatMoney(verr.Spent, ""), cli.FormatMoney(verr.Limit, ""))))
					continue
				}
				fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%s within limit (%s)", b.ID, cli.FormatMoney(b.Limit, ""))))
			}

			exceeded := ledger.ExceededBudgets(state.Budgets(), txns)
			fmt.Fprintf(out, "\n%d of %d budget(s) over limit\n", len(exceeded), len(state.Budgets()))
			return nil
		},
	}
}
