package calculator

import (
	"math"
	"slices"
	"time"

	"WeekdayCycle/internal/model"
)

// Pair is a buy-weekday bar matched with the sell-weekday bar that closes it.
type Pair struct {
	Buy  model.PriceBar
	Sell model.PriceBar
}

// FilterWeekday returns the bars dated on the given weekday, preserving order.
func FilterWeekday(bars []model.PriceBar, weekday time.Weekday) []model.PriceBar {
	out := make([]model.PriceBar, 0, len(bars)/7+1)
	for _, b := range bars {
		if b.Date.Weekday() == weekday {
			out = append(out, b)
		}
	}
	return out
}

// MatchForward pairs every buy bar with the earliest sell bar dated on or after it.
// Buys with no such sell bar are dropped. A sell bar may close several buys when
// buys are denser than sells.
func MatchForward(buys, sells []model.PriceBar) []Pair {
	buys = sortedByDate(buys)
	sells = sortedByDate(sells)

	pairs := make([]Pair, 0, len(buys))
	j := 0
	for _, b := range buys {
		for j < len(sells) && sells[j].Date.Before(b.Date) {
			j++
		}
		if j == len(sells) {
			break
		}
		pairs = append(pairs, Pair{Buy: b, Sell: sells[j]})
	}
	return pairs
}

// SanitizeOpen replaces every buy open with |open| < eps by exactly eps and
// returns how many were replaced.
func SanitizeOpen(pairs []Pair, eps float64) int {
	zeros := 0
	for i := range pairs {
		if math.Abs(pairs[i].Buy.Open) < eps {
			pairs[i].Buy.Open = eps
			zeros++
		}
	}
	return zeros
}

func sortedByDate(bars []model.PriceBar) []model.PriceBar {
	if slices.IsSortedFunc(bars, compareDate) {
		return bars
	}
	out := slices.Clone(bars)
	slices.SortStableFunc(out, compareDate)
	return out
}

func compareDate(a, b model.PriceBar) int {
	return a.Date.Compare(b.Date)
}
