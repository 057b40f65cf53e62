package model

import "time"

// Stats summarizes per-cycle performance.
type Stats struct {
	Cycles       int
	Wins         int
	Losses       int
	WinRate      float64 // 0.0 ~ 1.0
	MeanReturn   float64
	StdDevReturn float64
	BestReturn   float64
	WorstReturn  float64
	MaxDrawdown  float64 // 0.0 ~ 1.0, peak to trough of capital
}

// Result is the outcome of one backtest run.
type Result struct {
	RunID          string
	Symbol         string
	BuyWeekday     time.Weekday
	SellWeekday    time.Weekday
	Start          time.Time
	End            time.Time
	InitialCapital float64
	FinalCapital   float64
	TotalProfit    float64
	ZeroOpenCount  int
	Cycles         []Cycle
	Stats          Stats
	FinishedAt     time.Time
}
