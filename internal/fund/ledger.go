package fund

import (
	"errors"
	"fmt"
)

// Fill is the capital movement of one buy/sell cycle.
type Fill struct {
	CapitalIn        float64
	Units            float64
	CapitalOut       float64
	Profit           float64
	CumulativeProfit float64
}

// Ledger rolls a single capital value through successive cycles.
// Each cycle invests everything the previous one returned.
type Ledger struct {
	initial    float64
	capital    float64
	cumulative float64
	cycles     int
}

// NewLedger creates a Ledger holding the initial capital.
func NewLedger(initial float64) (*Ledger, error) {
	if initial <= 0 {
		return nil, fmt.Errorf("initial capital must be positive, got %v", initial)
	}
	return &Ledger{initial: initial, capital: initial}, nil
}

// Roll buys at buyOpen with all current capital, sells at sellClose and
// carries the proceeds forward.
func (l *Ledger) Roll(buyOpen, sellClose float64) (Fill, error) {
	if buyOpen == 0 {
		return Fill{}, errors.New("buy price is zero")
	}
	in := l.capital
	units := in / buyOpen
	out := units * sellClose
	profit := out - in

	l.capital = out
	l.cumulative += profit
	l.cycles++

	return Fill{
		CapitalIn:        in,
		Units:            units,
		CapitalOut:       out,
		Profit:           profit,
		CumulativeProfit: l.cumulative,
	}, nil
}

// Initial returns the starting capital.
func (l *Ledger) Initial() float64 { return l.initial }

// Capital returns the capital after the last rolled cycle.
func (l *Ledger) Capital() float64 { return l.capital }

// TotalProfit is final capital minus initial capital.
func (l *Ledger) TotalProfit() float64 { return l.capital - l.initial }

// Cycles returns how many cycles have been rolled.
func (l *Ledger) Cycles() int { return l.cycles }
