package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"WeekdayCycle/internal/metrics"
	"WeekdayCycle/internal/scheduler"
)

var runOnStart bool

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Re-run the backtest on a cron schedule with the end date rolled to today",
	Long: `Schedule keeps running and re-runs the backtest on schedule.cron
(seconds field first). When Telegram is configured every result is sent to the
chat and the bot answers /run and /last. When metrics.listen is set, Prometheus
metrics are served on /metrics.`,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.Flags().BoolVar(&runOnStart, "run-on-start", false, "run the backtest once immediately")
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start, _ := cfg.StartDate()
	p, rec := newPipeline(cfg, logger)
	defer rec.Close()
	p.Stdout = cmd.OutOrStdout()

	if cfg.Metrics.Listen != "" {
		prom := metrics.NewPrometheus()
		p.Metrics = prom.Metrics
		srv := serveMetrics(cfg.Metrics.Listen, prom)
		defer shutdown(srv)
	}

	sched := scheduler.NewScheduler(ctx, p, start, logger)
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if p.Notifier.Enabled() {
		go p.Notifier.StartPolling(ctx, sched.HandleCommand)
		logger.Info("telegram polling started")
	}

	if runOnStart {
		go func() {
			if _, err := sched.RunNow(); err != nil {
				logger.Error("initial backtest", zap.Error(err))
			}
		}()
	}

	logger.Info("weekdaycycle is running, press Ctrl+C to stop", zap.String("cron", cfg.Schedule.Cron))
	<-ctx.Done()
	logger.Info("shutdown signal received, stopping")
	return nil
}

func serveMetrics(addr string, prom *metrics.Prometheus) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", prom.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", zap.Error(err))
		}
	}()
	logger.Info("metrics server listening", zap.String("addr", addr))
	return srv
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("metrics server shutdown", zap.Error(err))
	}
}
