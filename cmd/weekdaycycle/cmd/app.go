package cmd

import (
	"go.uber.org/zap"

	"WeekdayCycle/internal/collector"
	"WeekdayCycle/internal/config"
	"WeekdayCycle/internal/notifier"
	"WeekdayCycle/internal/pipeline"
	"WeekdayCycle/internal/recorder"
	"WeekdayCycle/internal/strategy"
)

func newFetcher(c *config.Config) collector.Fetcher {
	if c.DataSource.CSVPath != "" {
		return collector.NewCSVFetcher(c.DataSource.CSVPath)
	}
	return collector.NewYahooFetcher(c.Proxy)
}

func strategyParams(c *config.Config) strategy.Params {
	return strategy.Params{
		BuyWeekday:     c.BuyDay(),
		SellWeekday:    c.SellDay(),
		InitialCapital: c.Strategy.InitialCapital,
		ZeroEpsilon:    c.Strategy.ZeroEpsilon,
	}
}

// newPipeline wires the collector, recorder and notifier from config.
// The returned recorder must be closed by the caller.
func newPipeline(c *config.Config, log *zap.Logger) (*pipeline.Pipeline, recorder.Recorder) {
	fetcher := newFetcher(c)
	log.Info("data source", zap.String("name", fetcher.Name()), zap.String("symbol", c.DataSource.Symbol))

	col := collector.NewCollector(fetcher, c.DataSource.Symbol, log)
	p := pipeline.New(col, strategyParams(c), pipeline.Outputs{
		CSVPath:  c.Output.CSVPath,
		PlotPath: c.Output.PlotPath,
	}, log)

	if c.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(c.Database.SQLitePath, log)
		if err != nil {
			log.Warn("init sqlite recorder failed, using noop", zap.Error(err))
		} else {
			p.Recorder = sr
		}
	}

	if c.Telegram.BotToken != "" && c.Telegram.ChatID != "" {
		p.Notifier = notifier.NewTelegramNotifier(c.Telegram.BotToken, c.Telegram.ChatID, c.Proxy, log)
	}
	return p, p.Recorder
}
