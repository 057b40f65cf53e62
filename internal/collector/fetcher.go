package collector

import (
	"context"
	"errors"
	"time"

	"WeekdayCycle/internal/model"
)

// ErrNoData is returned when a source yields no usable bars for the range.
var ErrNoData = errors.New("no price data returned")

// Fetcher defines the interface for fetching daily market data.
// start is inclusive and end is exclusive; bars come back in ascending date order.
type Fetcher interface {
	FetchDailyRange(ctx context.Context, symbol string, start, end time.Time) ([]model.PriceBar, error)
	Name() string
}
