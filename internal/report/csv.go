package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"WeekdayCycle/internal/model"
)

var cycleHeader = []string{
	"buy_date", "buy_open", "buy_high", "buy_low", "buy_close", "buy_volume",
	"sell_date", "sell_open", "sell_high", "sell_low", "sell_close", "sell_volume",
	"capital_in", "btc_owned", "capital_out", "profit", "cumulative_profit",
}

// CSVWriter writes the cycle table, one row per cycle.
type CSVWriter struct {
	w *csv.Writer
	f *os.File
}

func NewCSV(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create csv: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(cycleHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	return &CSVWriter{w: w, f: f}, nil
}

func (j *CSVWriter) WriteCycle(c model.Cycle) error {
	return j.w.Write([]string{
		c.Buy.Date.Format(model.DateLayout),
		num(c.Buy.Open),
		num(c.Buy.High),
		num(c.Buy.Low),
		num(c.Buy.Close),
		num(c.Buy.Volume),
		c.Sell.Date.Format(model.DateLayout),
		num(c.Sell.Open),
		num(c.Sell.High),
		num(c.Sell.Low),
		num(c.Sell.Close),
		num(c.Sell.Volume),
		num(c.CapitalIn),
		num(c.BTCOwned),
		num(c.CapitalOut),
		num(c.Profit),
		num(c.CumulativeProfit),
	})
}

func (j *CSVWriter) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		j.f.Close()
		return err
	}
	return j.f.Close()
}

// WriteCSV writes all cycles of a result to path in one pass.
func WriteCSV(path string, res *model.Result) error {
	j, err := NewCSV(path)
	if err != nil {
		return err
	}
	for _, c := range res.Cycles {
		if err := j.WriteCycle(c); err != nil {
			j.Close()
			return fmt.Errorf("write csv row %s: %w", c.Buy.Date.Format(model.DateLayout), err)
		}
	}
	if err := j.Close(); err != nil {
		return fmt.Errorf("close csv: %w", err)
	}
	return nil
}

func num(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
