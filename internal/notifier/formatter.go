package notifier

import (
	"fmt"
	"strings"

	"WeekdayCycle/internal/model"
)

// FormatRunReport formats a backtest result into a Telegram HTML message.
func FormatRunReport(res *model.Result) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s weekday cycle</b> | buy %s, sell %s\n",
		res.Symbol, res.BuyWeekday, res.SellWeekday))
	b.WriteString(fmt.Sprintf("%s → %s\n\n", res.Start.Format(model.DateLayout), res.End.Format(model.DateLayout)))

	b.WriteString(fmt.Sprintf("Initial Capital: $%.2f\n", res.InitialCapital))
	b.WriteString(fmt.Sprintf("Final Capital: $%.2f\n", res.FinalCapital))
	b.WriteString(fmt.Sprintf("Total Profit: $%.2f (%+.1f%%)\n\n", res.TotalProfit, res.TotalProfit/res.InitialCapital*100))

	s := res.Stats
	b.WriteString(fmt.Sprintf("Cycles: %d | win rate %.1f%%\n", s.Cycles, s.WinRate*100))
	b.WriteString(fmt.Sprintf("Mean return: %+.2f%% | max drawdown %.1f%%\n", s.MeanReturn*100, s.MaxDrawdown*100))

	if n := len(res.Cycles); n > 0 {
		last := res.Cycles[n-1]
		b.WriteString(fmt.Sprintf("\nLast cycle %s → %s: %+.2f\n",
			last.Buy.Date.Format(model.DateLayout), last.Sell.Date.Format(model.DateLayout), last.Profit))
	}
	if res.ZeroOpenCount > 0 {
		b.WriteString(fmt.Sprintf("\n⚠️ %d near-zero buy opens were clamped\n", res.ZeroOpenCount))
	}
	return b.String()
}
