package model

// Cycle is one buy-then-sell round trip.
type Cycle struct {
	Buy              PriceBar
	Sell             PriceBar
	CapitalIn        float64
	BTCOwned         float64
	CapitalOut       float64
	Profit           float64
	CumulativeProfit float64
}

// Return is the fractional return of the cycle.
func (c Cycle) Return() float64 {
	if c.CapitalIn == 0 {
		return 0
	}
	return c.Profit / c.CapitalIn
}
