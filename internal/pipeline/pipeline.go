package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"WeekdayCycle/internal/collector"
	"WeekdayCycle/internal/metrics"
	"WeekdayCycle/internal/model"
	"WeekdayCycle/internal/notifier"
	"WeekdayCycle/internal/recorder"
	"WeekdayCycle/internal/report"
	"WeekdayCycle/internal/strategy"
)

// Outputs are the files written after every run. An empty PlotPath skips the chart.
type Outputs struct {
	CSVPath  string
	PlotPath string
}

// Pipeline runs one backtest end to end: collect, backtest, report, export.
type Pipeline struct {
	Collector *collector.Collector
	Params    strategy.Params
	Outputs   Outputs
	Recorder  recorder.Recorder
	Notifier  *notifier.TelegramNotifier
	Retries   int // notification retries
	Metrics   *metrics.Metrics
	Stdout    io.Writer
	Log       *zap.Logger
}

// New creates a Pipeline with a noop recorder, noop metrics and stdout for the summary.
func New(col *collector.Collector, params strategy.Params, out Outputs, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		Collector: col,
		Params:    params,
		Outputs:   out,
		Recorder:  recorder.NewNoopRecorder(),
		Retries:   3,
		Metrics:   metrics.NewNoop(),
		Stdout:    os.Stdout,
		Log:       log,
	}
}

// Run executes a backtest over bars in [start, end).
// Fetch, backtest and file output failures abort the run. Export and
// notification failures are logged only.
func (p *Pipeline) Run(ctx context.Context, start, end time.Time) (*model.Result, error) {
	p.Metrics.Runs.Inc()
	res, err := p.run(ctx, start, end)
	if err != nil {
		p.Metrics.RunFailures.Inc()
		return nil, err
	}
	p.Metrics.Cycles.Set(float64(len(res.Cycles)))
	p.Metrics.FinalCapital.Set(res.FinalCapital)
	return res, nil
}

func (p *Pipeline) run(ctx context.Context, start, end time.Time) (*model.Result, error) {
	series, err := p.Collector.Collect(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}

	res, err := strategy.Run(series, p.Params, p.Log)
	if err != nil {
		return nil, fmt.Errorf("backtest: %w", err)
	}

	if _, err := io.WriteString(p.Stdout, report.FormatSummary(res)); err != nil {
		return nil, fmt.Errorf("print summary: %w", err)
	}

	if p.Outputs.PlotPath != "" {
		if err := report.PlotCumulativeProfit(res, p.Outputs.PlotPath); err != nil {
			return nil, fmt.Errorf("plot: %w", err)
		}
		p.Log.Info("chart saved", zap.String("path", p.Outputs.PlotPath))
	}

	if err := report.WriteCSV(p.Outputs.CSVPath, res); err != nil {
		return nil, fmt.Errorf("export csv: %w", err)
	}
	p.Log.Info("cycles exported", zap.String("path", p.Outputs.CSVPath), zap.Int("rows", len(res.Cycles)))

	if err := p.Recorder.RecordRun(ctx, res); err != nil {
		p.Log.Error("record run", zap.String("run_id", res.RunID), zap.Error(err))
	}

	if p.Notifier.Enabled() {
		if err := p.Notifier.SendWithRetry(ctx, notifier.FormatRunReport(res), p.Retries); err != nil {
			p.Log.Error("send notification", zap.Error(err))
		}
	}
	return res, nil
}
