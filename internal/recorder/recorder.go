package recorder

import (
	"context"

	"WeekdayCycle/internal/model"
)

// Recorder exports finished backtest runs for later analysis.
type Recorder interface {
	RecordRun(ctx context.Context, res *model.Result) error
	Close() error
}
