package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"WeekdayCycle/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dailyBars builds one bar per day from start, open = close = 100 + index.
func dailyBars(start time.Time, n int) []model.PriceBar {
	bars := make([]model.PriceBar, n)
	for i := range bars {
		p := 100 + float64(i)
		bars[i] = model.PriceBar{Date: start.AddDate(0, 0, i), Open: p, High: p, Low: p, Close: p, Volume: 1}
	}
	return bars
}

func TestFilterWeekday(t *testing.T) {
	bars := dailyBars(day(2023, 1, 1), 21) // starts on a Sunday
	sundays := FilterWeekday(bars, time.Sunday)
	wednesdays := FilterWeekday(bars, time.Wednesday)

	require.Len(t, sundays, 3)
	require.Len(t, wednesdays, 3)
	for _, b := range sundays {
		assert.Equal(t, time.Sunday, b.Date.Weekday())
	}
	assert.Equal(t, day(2023, 1, 4), wednesdays[0].Date)
	assert.Empty(t, FilterWeekday(nil, time.Monday))
}

func TestMatchForward_SundayToWednesday(t *testing.T) {
	bars := dailyBars(day(2023, 1, 1), 21) // Sun 1 .. Sat 21
	pairs := MatchForward(FilterWeekday(bars, time.Sunday), FilterWeekday(bars, time.Wednesday))

	require.Len(t, pairs, 3)
	for _, p := range pairs {
		assert.Equal(t, 3, int(p.Sell.Date.Sub(p.Buy.Date).Hours()/24))
	}
}

func TestMatchForward_DropsTrailingBuy(t *testing.T) {
	bars := dailyBars(day(2023, 1, 1), 16) // last Sunday is Jan 15 with no Wednesday after it
	pairs := MatchForward(FilterWeekday(bars, time.Sunday), FilterWeekday(bars, time.Wednesday))

	require.Len(t, pairs, 2)
	assert.Equal(t, day(2023, 1, 8), pairs[1].Buy.Date)
	assert.Equal(t, day(2023, 1, 11), pairs[1].Sell.Date)
}

func TestMatchForward_SameDateMatches(t *testing.T) {
	buys := []model.PriceBar{{Date: day(2023, 1, 4), Open: 1}}
	sells := []model.PriceBar{{Date: day(2023, 1, 4), Close: 2}, {Date: day(2023, 1, 11), Close: 3}}

	pairs := MatchForward(buys, sells)
	require.Len(t, pairs, 1)
	assert.Equal(t, 2.0, pairs[0].Sell.Close)
}

func TestMatchForward_ReusesSellAcrossGap(t *testing.T) {
	// The Wednesday between the two Sundays is missing, so both buys close on Jan 11.
	buys := []model.PriceBar{{Date: day(2023, 1, 1)}, {Date: day(2023, 1, 8)}}
	sells := []model.PriceBar{{Date: day(2023, 1, 11), Close: 42}}

	pairs := MatchForward(buys, sells)
	require.Len(t, pairs, 2)
	assert.Equal(t, pairs[0].Sell, pairs[1].Sell)
}

func TestMatchForward_UnsortedInput(t *testing.T) {
	buys := []model.PriceBar{{Date: day(2023, 1, 8)}, {Date: day(2023, 1, 1)}}
	sells := []model.PriceBar{{Date: day(2023, 1, 11)}, {Date: day(2023, 1, 4)}}

	pairs := MatchForward(buys, sells)
	require.Len(t, pairs, 2)
	assert.Equal(t, day(2023, 1, 1), pairs[0].Buy.Date)
	assert.Equal(t, day(2023, 1, 4), pairs[0].Sell.Date)
	assert.Equal(t, day(2023, 1, 11), pairs[1].Sell.Date)
}

func TestMatchForward_Empty(t *testing.T) {
	assert.Empty(t, MatchForward(nil, []model.PriceBar{{Date: day(2023, 1, 4)}}))
	assert.Empty(t, MatchForward([]model.PriceBar{{Date: day(2023, 1, 1)}}, nil))
}

func TestSanitizeOpen(t *testing.T) {
	pairs := []Pair{
		{Buy: model.PriceBar{Open: 0}},
		{Buy: model.PriceBar{Open: 5e-7}},
		{Buy: model.PriceBar{Open: -5e-7}},
		{Buy: model.PriceBar{Open: 1e-6}},
		{Buy: model.PriceBar{Open: 30000}},
	}
	zeros := SanitizeOpen(pairs, 1e-6)

	assert.Equal(t, 3, zeros)
	assert.Equal(t, 1e-6, pairs[0].Buy.Open)
	assert.Equal(t, 1e-6, pairs[1].Buy.Open)
	assert.Equal(t, 1e-6, pairs[2].Buy.Open)
	assert.Equal(t, 1e-6, pairs[3].Buy.Open, "boundary value is kept as-is")
	assert.Equal(t, 30000.0, pairs[4].Buy.Open)
}
