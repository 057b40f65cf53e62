package strategy

import (
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"WeekdayCycle/internal/calculator"
	"WeekdayCycle/internal/fund"
	"WeekdayCycle/internal/model"
)

// ErrNoCycles is returned when no buy bar has a sell bar on or after it.
var ErrNoCycles = errors.New("no buy/sell cycles matched")

// Params configures the weekday cycle strategy.
type Params struct {
	BuyWeekday     time.Weekday
	SellWeekday    time.Weekday
	InitialCapital float64
	ZeroEpsilon    float64 // buy opens below this magnitude are clamped to it
}

// DefaultParams buys on Sunday, sells on Wednesday and starts with 1000.
func DefaultParams() Params {
	return Params{
		BuyWeekday:     time.Sunday,
		SellWeekday:    time.Wednesday,
		InitialCapital: 1000,
		ZeroEpsilon:    1e-6,
	}
}

func (p Params) Validate() error {
	if p.BuyWeekday < time.Sunday || p.BuyWeekday > time.Saturday {
		return fmt.Errorf("invalid buy weekday %d", p.BuyWeekday)
	}
	if p.SellWeekday < time.Sunday || p.SellWeekday > time.Saturday {
		return fmt.Errorf("invalid sell weekday %d", p.SellWeekday)
	}
	if p.InitialCapital <= 0 {
		return errors.New("initial capital must be positive")
	}
	if p.ZeroEpsilon <= 0 {
		return errors.New("zero epsilon must be positive")
	}
	return nil
}

// Run backtests the strategy over the series.
//
//  1. split bars into buy-weekday and sell-weekday subsets
//  2. match every buy with the next sell on or after it
//  3. clamp near-zero buy opens
//  4. roll capital through the cycles in buy-date order
func Run(series *model.PriceSeries, p Params, log *zap.Logger) (*model.Result, error) {
	if series == nil {
		return nil, errors.New("strategy: series is required")
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("strategy: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	buys := calculator.FilterWeekday(series.Bars, p.BuyWeekday)
	sells := calculator.FilterWeekday(series.Bars, p.SellWeekday)
	pairs := calculator.MatchForward(buys, sells)
	if dropped := len(buys) - len(pairs); dropped > 0 {
		log.Debug("buy bars without a forward sell dropped", zap.Int("dropped", dropped))
	}
	if len(pairs) == 0 {
		return nil, ErrNoCycles
	}

	zeros := calculator.SanitizeOpen(pairs, p.ZeroEpsilon)
	if zeros > 0 {
		log.Warn("near-zero buy opens clamped", zap.Int("count", zeros), zap.Float64("epsilon", p.ZeroEpsilon))
	}

	ledger, err := fund.NewLedger(p.InitialCapital)
	if err != nil {
		return nil, fmt.Errorf("strategy: %w", err)
	}

	cycles := make([]model.Cycle, 0, len(pairs))
	for _, pair := range pairs {
		fill, err := ledger.Roll(pair.Buy.Open, pair.Sell.Close)
		if err != nil {
			return nil, fmt.Errorf("roll cycle %s: %w", pair.Buy.Date.Format(model.DateLayout), err)
		}
		cycles = append(cycles, model.Cycle{
			Buy:              pair.Buy,
			Sell:             pair.Sell,
			CapitalIn:        fill.CapitalIn,
			BTCOwned:         fill.Units,
			CapitalOut:       fill.CapitalOut,
			Profit:           fill.Profit,
			CumulativeProfit: fill.CumulativeProfit,
		})
	}

	res := &model.Result{
		RunID:          ulid.Make().String(),
		Symbol:         series.Symbol,
		BuyWeekday:     p.BuyWeekday,
		SellWeekday:    p.SellWeekday,
		Start:          series.Start,
		End:            series.End,
		InitialCapital: ledger.Initial(),
		FinalCapital:   ledger.Capital(),
		TotalProfit:    ledger.TotalProfit(),
		ZeroOpenCount:  zeros,
		Cycles:         cycles,
		Stats:          ComputeStats(p.InitialCapital, cycles),
		FinishedAt:     time.Now(),
	}

	log.Info("backtest finished",
		zap.String("run_id", res.RunID),
		zap.Int("cycles", len(cycles)),
		zap.Float64("final_capital", res.FinalCapital),
		zap.Float64("total_profit", res.TotalProfit),
	)
	return res, nil
}
