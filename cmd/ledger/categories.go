package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/the-ledger-must-balance/internal/cli"
	"github.com/Veraticus/the-ledger-must-balance/internal/common"
	"github.com/Veraticus/the-ledger-must-balance/internal/ledger"
	"github.com/spf13/cobra"
)

func categoriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Explore the category tree",
		Long:  `Show the category hierarchy and the spending recorded under it.`,
	}

	cmd.AddCommand(categoryTreeCmd(a))
	cmd.AddCommand(categoryExpensesCmd(a))
	cmd.AddCommand(categoryBalanceCmd(a))

	return cmd
}

// rootFor returns the tree root named by args, or the virtual root when none is given.
func rootFor(args []string) ledger.Root {
	if len(args) == 0 {
		return ledger.VirtualRoot()
	}
	return ledger.RootAt(args[0])
}

func categoryTreeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree [category-id]",
		Short: "Print the category tree",
		Long: `Print every category depth-first below the given category, or the whole tree
when no category is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, state, err := a.loadSession(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			categories := state.Categories()
			flat := ledger.FlattenCategories(categories, rootFor(args))
			out := cmd.OutOrStdout()
			if len(flat) == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("No categories found."))
				return nil
			}

			// Indent relative to the requested root. Children of an unknown id sit at depth 2.
			depths := ledger.Depths(categories)
			base := 0
			if len(args) > 0 {
				base = 2
				if d, ok := depths[args[0]]; ok {
					base = d
				}
			}

			for _, c := range flat {
				if c.IsVirtual() {
					fmt.Fprintln(out, cli.BoldStyle.Render(c.Name))
					continue
				}
				indent := strings.Repeat("  ", max(depths[c.ID]-base, 0))
				fmt.Fprintf(out, "%s%s %s\n", indent, c.Name, cli.SubtleStyle.Render(fmt.Sprintf("[%s, %s]", c.ID, c.Type)))
			}
			return nil
		},
	}
}

func categoryExpensesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "expenses [category-id]",
		Short: "Total outflows of a category and all its descendants",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, state, err := a.loadSession(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			root := rootFor(args)
			total := ledger.SumExpensesRecursive(state.Categories(), state.Transactions(), root)

			label := "All categories"
			if !root.IsVirtual() {
				label = categoryName(state.Categories(), root.ID())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", label, cli.FormatSignedMoney(total, ""))
			return nil
		},
	}
}

func categoryBalanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <category-id>",
		Short: "Net amount booked directly to a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, state, err := a.loadSession(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			c, ok := ledger.FindCategory(state.Categories(), args[0]).Get()
			if !ok {
				return common.NewUserError("Cannot show balance", common.NotFound("category", args[0]))
			}

			balance := ledger.CategoryBalance(state.Transactions(), c.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %s\n", c.Name, c.Type, cli.FormatSignedMoney(balance, ""))
			return nil
		},
	}
}
