package main

import (
	"fmt"

	"github.com/Veraticus/the-ledger-must-balance/internal/cli"
	"github.com/Veraticus/the-ledger-must-balance/internal/common"
	"github.com/Veraticus/the-ledger-must-balance/internal/fp"
	"github.com/Veraticus/the-ledger-must-balance/internal/forecast"
	"github.com/Veraticus/the-ledger-must-balance/internal/ledger"
	"github.com/Veraticus/the-ledger-must-balance/internal/model"
	"github.com/spf13/cobra"
)

func forecastCmd(a *app) *cobra.Command {
	var (
		period int
		timed  bool
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "forecast [category-id]",
		Short: "Project per-period spending of a category",
		Long: `Divide the outflows booked to a category by the number of periods.

Results are memoized for the life of one invocation only. Each category is
forecast once, so --all --timed reports one miss per expense category and no
hits; the statistics show how many forecasts were computed.

Examples:
  ledger forecast groceries --period 3
  ledger forecast --all --period 12`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return common.NewUserError("Give either a category id or --all", nil)
			}

			store, state, err := a.loadSession(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			f := forecast.New(a.cfg.CacheSize)
			out := cmd.OutOrStdout()
			txns := state.Transactions()

			if !all {
				c, ok := ledger.FindCategory(state.Categories(), args[0]).Get()
				if !ok {
					return common.NewUserError("Cannot forecast", common.NotFound("category", args[0]))
				}
				value, elapsed := f.ForecastTimed(c.ID, txns, period)
				fmt.Fprintf(out, "%s: %s per period over %d period(s)\n", c.Name, cli.FormatMoney(value, ""), max(period, 1))
				if timed {
					fmt.Fprintln(out, cli.SubtleStyle.Render("computed in "+elapsed.String()))
				}
				return nil
			}

			expenses := fp.Filter(state.Categories(), func(c model.Category) bool {
				return c.Type == model.CategoryTypeExpense
			})
			bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(expenses), "Forecasting categories...")
			values := make([]int64, len(expenses))
			for i, c := range expenses {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				values[i] = f.Forecast(c.ID, txns, period)
				_ = bar.Add(1)
			}

			fmt.Fprintln(out, cli.StyleTitle(fmt.Sprintf("%s Forecast over %d period(s)", cli.ChartIcon, max(period, 1))))
			w := newTable(out)
			writeHeader(w, "Category", "Name", "Per period")
			for i, c := range expenses {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, cli.FormatMoney(values[i], ""))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if timed {
				stats := f.Stats()
				fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("cache: %d hit(s), %d miss(es), %d entries (this invocation)",
					stats.Hits, stats.Misses, stats.Entries)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&period, "period", "p", 1, "number of periods the history covers")
	cmd.Flags().BoolVar(&timed, "timed", false, "report computation time and per-invocation cache statistics")
	cmd.Flags().BoolVar(&all, "all", false, "forecast every expense category")

	return cmd
}
