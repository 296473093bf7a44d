package main

import (
	"fmt"

	"github.com/Veraticus/the-ledger-must-balance/internal/cli"
	"github.com/Veraticus/the-ledger-must-balance/internal/common"
	"github.com/Veraticus/the-ledger-must-balance/internal/config"
	"github.com/Veraticus/the-ledger-must-balance/internal/storage"
	"github.com/spf13/cobra"
)

func exportCmd(a *app) *cobra.Command {
	var (
		driver string
		target string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Copy the ledger into another store (admin)",
		Long: `Write the complete ledger into a second store, for example to move from the
JSON document to SQLite. The target is overwritten.

Example:
  ledger export --to-driver sqlite --to ~/.local/share/ledger/ledger.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			to, err := storage.ParseDriver(driver)
			if err != nil {
				return common.NewUserError("Unsupported storage driver", err)
			}

			store, state, err := a.loadSession(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := state.RequireAdmin("export"); err != nil {
				return common.NewUserError("Cannot export", err)
			}

			path := config.ExpandPath(target)
			dest, err := storage.Open(cmd.Context(), to, path)
			if err != nil {
				return fmt.Errorf("failed to open export target: %w", err)
			}
			defer dest.Close()

			if err := dest.Save(cmd.Context(), state.Snapshot()); err != nil {
				return common.NewUserError("Export failed", err)
			}

			counts := state.Snapshot().Counts()
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"Exported %d account(s), %d categor(ies), %d transaction(s), %d budget(s) to %s",
				counts["accounts"], counts["categories"], counts["transactions"], counts["budgets"], path)))
			return nil
		},
	}

	cmd.Flags().StringVar(&driver, "to-driver", "sqlite", "target storage driver (json, sqlite)")
	cmd.Flags().StringVar(&target, "to", "", "target path (required)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
