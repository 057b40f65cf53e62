package report

import (
	"fmt"
	"strings"

	"WeekdayCycle/internal/model"
)

// FormatSummary renders the zero-open count, initial and final capital and total profit.
func FormatSummary(res *model.Result) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Number of zero values in %s open: %d\n", strings.ToLower(res.BuyWeekday.String()), res.ZeroOpenCount))
	b.WriteString(fmt.Sprintf("Initial Capital: $%.2f\n", res.InitialCapital))
	b.WriteString(fmt.Sprintf("Final Capital: $%.2f\n", res.FinalCapital))
	b.WriteString(fmt.Sprintf("Total Profit: $%.2f\n", res.TotalProfit))
	return b.String()
}

// FormatStats renders the per-cycle statistics block.
func FormatStats(res *model.Result) string {
	s := res.Stats
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Cycles: %d (%d won, %d lost, win rate %.1f%%)\n", s.Cycles, s.Wins, s.Losses, s.WinRate*100))
	b.WriteString(fmt.Sprintf("Return per cycle: mean %+.2f%%, stddev %.2f%%, best %+.2f%%, worst %+.2f%%\n",
		s.MeanReturn*100, s.StdDevReturn*100, s.BestReturn*100, s.WorstReturn*100))
	b.WriteString(fmt.Sprintf("Max Drawdown: %.2f%%\n", s.MaxDrawdown*100))
	return b.String()
}
