package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/the-ledger-must-balance/internal/cli"
	"github.com/Veraticus/the-ledger-must-balance/internal/common"
	"github.com/Veraticus/the-ledger-must-balance/internal/ledger"
	"github.com/Veraticus/the-ledger-must-balance/internal/model"
	"github.com/Veraticus/the-ledger-must-balance/internal/ofx"
	"github.com/spf13/cobra"
)

func importCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import transactions from bank exports",
	}

	cmd.AddCommand(importOFXCmd(a))

	return cmd
}

func importOFXCmd(a *app) *cobra.Command {
	var (
		opts   ofx.Options
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "ofx <files...>",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import the transactions of OFX or QFX (Quicken) statements exported from your bank
into one ledger account and category. Lines already imported are skipped.

Examples:
  # Import single file
  ledger import ofx ~/Downloads/checking_jan_2024.qfx --account checking --category uncategorized

  # Import all QFX files in a directory
  ledger import ofx ~/Downloads/*.qfx --account checking --category uncategorized --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandFiles(args)
			if err != nil {
				return err
			}

			store, state, err := a.loadSession(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			if opts.UserID == "" {
				opts.UserID = state.User().Username
			}
			if opts.UserID != state.User().Username {
				if err := state.RequireAdmin("importing for another user"); err != nil {
					return common.NewUserError("Cannot import", err)
				}
			}

			// Every line shares the target account and category, so one check covers them all.
			template := model.Transaction{AccountID: opts.AccountID, CategoryID: opts.CategoryID}
			if verr, invalid := ledger.ValidateTransaction(template, state.Accounts(), state.Categories()).Left(); invalid {
				return common.NewUserError("Cannot import", verr)
			}

			parser := ofx.NewParser()
			txns := state.Snapshot().Transactions
			added := 0
			for _, path := range files {
				imported, err := parseOFXFile(cmd, parser, path, opts)
				if err != nil {
					slog.Error("Failed to import file", "file", path, "error", err)
					continue
				}

				fresh := ofx.NewOnly(txns, imported)
				for _, t := range fresh {
					txns = ledger.AddTransaction(txns, t)
				}
				added += len(fresh)
				slog.Info("Processed file",
					"file", filepath.Base(path),
					"transactions_found", len(imported),
					"added", len(fresh),
					"duplicates", len(imported)-len(fresh))
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Dry run: %d new transaction(s) would be imported", added)))
				return nil
			}
			if added == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("No new transactions."))
				return nil
			}

			if err := save(cmd.Context(), store, state.WithTransactions(txns)); err != nil {
				return err
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d transaction(s) into %s", added, opts.AccountID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.AccountID, "account", "", "ledger account to book into (required)")
	cmd.Flags().StringVar(&opts.CategoryID, "category", "", "category for imported lines (required)")
	cmd.Flags().StringVar(&opts.UserID, "owner", "", "user owning the imported transactions (default: current user)")
	cmd.Flags().StringToStringVar(&opts.TypeCategories, "type-category", nil, "category per OFX transaction type, e.g. FEE=bank-fees")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview import without saving")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func parseOFXFile(cmd *cobra.Command, parser *ofx.Parser, path string, opts ofx.Options) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parser.ParseFile(cmd.Context(), f, opts)
}

// expandFiles resolves glob patterns, keeping literal paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, common.NewUserError("No files found to import", nil)
	}
	return files, nil
}
