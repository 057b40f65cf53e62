package strategy

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"WeekdayCycle/internal/model"
)

// ComputeStats summarizes per-cycle returns and the capital drawdown.
func ComputeStats(initial float64, cycles []model.Cycle) model.Stats {
	s := model.Stats{Cycles: len(cycles)}
	if len(cycles) == 0 {
		return s
	}

	returns := make([]float64, len(cycles))
	s.BestReturn = math.Inf(-1)
	s.WorstReturn = math.Inf(1)
	for i, c := range cycles {
		r := c.Return()
		returns[i] = r
		switch {
		case c.Profit > 0:
			s.Wins++
		case c.Profit < 0:
			s.Losses++
		}
		s.BestReturn = math.Max(s.BestReturn, r)
		s.WorstReturn = math.Min(s.WorstReturn, r)
	}

	s.WinRate = float64(s.Wins) / float64(len(cycles))
	s.MeanReturn = stat.Mean(returns, nil)
	if len(returns) > 1 {
		s.StdDevReturn = stat.StdDev(returns, nil)
	}
	s.MaxDrawdown = maxDrawdown(initial, cycles)
	return s
}

// maxDrawdown is the largest peak-to-trough fall of capital, starting from the initial capital.
func maxDrawdown(initial float64, cycles []model.Cycle) float64 {
	peak := initial
	worst := 0.0
	for _, c := range cycles {
		if c.CapitalOut > peak {
			peak = c.CapitalOut
			continue
		}
		if peak > 0 {
			worst = math.Max(worst, (peak-c.CapitalOut)/peak)
		}
	}
	return worst
}
