package collector

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"WeekdayCycle/internal/model"
)

// MockFetcher returns fixed data for development and testing.
type MockFetcher struct {
	Bars []model.PriceBar
	Err  error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyRange(_ context.Context, _ string, start, end time.Time) ([]model.PriceBar, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	bars := make([]model.PriceBar, len(m.Bars))
	copy(bars, m.Bars)
	return clipRange(bars, start, end), nil
}

// Collector fetches the daily series a backtest runs on.
type Collector struct {
	Fetcher Fetcher
	Symbol  string
	Log     *zap.Logger
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol string, log *zap.Logger) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{Fetcher: fetcher, Symbol: symbol, Log: log}
}

// Collect fetches bars for [start, end). An empty result is an error.
func (c *Collector) Collect(ctx context.Context, start, end time.Time) (*model.PriceSeries, error) {
	bars, err := c.Fetcher.FetchDailyRange(ctx, c.Symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("fetch daily bars for %s: %w", c.Symbol, ErrNoData)
	}

	c.Log.Info("daily bars fetched",
		zap.String("source", c.Fetcher.Name()),
		zap.String("symbol", c.Symbol),
		zap.Int("bars", len(bars)),
		zap.String("first", bars[0].Date.Format(model.DateLayout)),
		zap.String("last", bars[len(bars)-1].Date.Format(model.DateLayout)),
	)

	return &model.PriceSeries{
		Symbol:    c.Symbol,
		Bars:      bars,
		Start:     start,
		End:       end,
		Source:    c.Fetcher.Name(),
		FetchedAt: time.Now(),
	}, nil
}
