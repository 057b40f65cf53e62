package model

import "time"

// DateLayout is the day format used for bar dates in files and flags.
const DateLayout = "2006-01-02"

// PriceBar represents one trading day of one asset.
type PriceBar struct {
	Date   time.Time // 00:00 UTC of the trading day
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds the raw daily bars for a backtest.
type PriceSeries struct {
	Symbol    string
	Bars      []PriceBar
	Start     time.Time
	End       time.Time
	Source    string
	FetchedAt time.Time
}

// Day truncates t to a timezone-naive calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
