package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"WeekdayCycle/internal/model"
)

func testResult() *model.Result {
	sun := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	wed := time.Date(2023, 1, 4, 0, 0, 0, 0, time.UTC)
	return &model.Result{
		Symbol:         "BTC-USD",
		BuyWeekday:     time.Sunday,
		SellWeekday:    time.Wednesday,
		InitialCapital: 1000,
		FinalCapital:   1100,
		TotalProfit:    100,
		ZeroOpenCount:  1,
		Cycles: []model.Cycle{
			{
				Buy:              model.PriceBar{Date: sun, Open: 30000, High: 30500, Low: 29800, Close: 30100, Volume: 12},
				Sell:             model.PriceBar{Date: wed, Open: 31000, High: 33100, Low: 30900, Close: 33000, Volume: 15.5},
				CapitalIn:        1000,
				BTCOwned:         1.0 / 30,
				CapitalOut:       1100,
				Profit:           100,
				CumulativeProfit: 100,
			},
			{
				Buy:              model.PriceBar{Date: sun.AddDate(0, 0, 7), Open: 33000, High: 33000, Low: 33000, Close: 33000},
				Sell:             model.PriceBar{Date: wed.AddDate(0, 0, 7), Open: 33000, High: 33000, Low: 33000, Close: 33000},
				CapitalIn:        1100,
				BTCOwned:         1.0 / 30,
				CapitalOut:       1100,
				Profit:           0,
				CumulativeProfit: 100,
			},
		},
		Stats: model.Stats{Cycles: 2, Wins: 1, WinRate: 0.5, MeanReturn: 0.05, StdDevReturn: 0.0707, BestReturn: 0.1},
	}
}

func TestFormatSummary(t *testing.T) {
	want := "Number of zero values in sunday open: 1\n" +
		"Initial Capital: $1000.00\n" +
		"Final Capital: $1100.00\n" +
		"Total Profit: $100.00\n"
	assert.Equal(t, want, FormatSummary(testResult()))
}

func TestFormatStats(t *testing.T) {
	out := FormatStats(testResult())
	assert.Contains(t, out, "Cycles: 2 (1 won, 0 lost, win rate 50.0%)")
	assert.Contains(t, out, "mean +5.00%")
	assert.Contains(t, out, "Max Drawdown: 0.00%")
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "merged_data.csv")
	require.NoError(t, WriteCSV(path, testResult()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, cycleHeader, rows[0])
	assert.Equal(t, []string{
		"2023-01-01", "30000", "30500", "29800", "30100", "12",
		"2023-01-04", "31000", "33100", "30900", "33000", "15.5",
		"1000", "0.03333333333333333", "1100", "100", "100",
	}, rows[1])

	for _, row := range rows[1:] {
		require.Len(t, row, len(cycleHeader))
		for i, cell := range row {
			assert.NotEmpty(t, cell, "column %s", cycleHeader[i])
		}
	}
}

func TestWriteCSV_BadPath(t *testing.T) {
	err := WriteCSV(filepath.Join(t.TempDir(), "missing", "out.csv"), testResult())
	assert.ErrorContains(t, err, "create csv")
}

func TestPlotCumulativeProfit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cumulative_profit.png")
	require.NoError(t, PlotCumulativeProfit(testResult(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	assert.Error(t, PlotCumulativeProfit(&model.Result{}, path))
}

func TestChartTitle(t *testing.T) {
	assert.Equal(t, "BTC-USD Investment Performance (Buy on Sunday, Sell on Wednesday)", ChartTitle(testResult()))
}
