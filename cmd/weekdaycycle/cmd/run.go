package cmd

import (
	"github.com/spf13/cobra"

	"WeekdayCycle/internal/report"
)

var showStats bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the backtest once and write the chart and CSV",
	Long: `Run fetches the daily bars, backtests the weekday cycle strategy, prints
the summary and writes the cumulative profit chart and the merged cycle CSV.`,
	RunE: runBacktest,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&showStats, "stats", false, "also print per-cycle statistics")
}

func runBacktest(cmd *cobra.Command, _ []string) error {
	start, _ := cfg.StartDate()
	end, _ := cfg.EndDate()

	p, rec := newPipeline(cfg, logger)
	defer rec.Close()
	p.Stdout = cmd.OutOrStdout()

	res, err := p.Run(cmd.Context(), start, end)
	if err != nil {
		return err
	}
	if showStats {
		cmd.Print(report.FormatStats(res))
	}
	return nil
}
