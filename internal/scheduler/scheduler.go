package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"WeekdayCycle/internal/model"
	"WeekdayCycle/internal/notifier"
	"WeekdayCycle/internal/pipeline"
)

// ErrBusy is returned when a run is requested while another one is in progress.
var ErrBusy = errors.New("a backtest run is already in progress")

// Scheduler re-runs the backtest on a cron spec with the end date rolled to today.
type Scheduler struct {
	Cron      *cron.Cron
	Pipeline  *pipeline.Pipeline
	StartDate time.Time
	Now       func() time.Time
	Log       *zap.Logger
	Ctx       context.Context

	runMu  sync.Mutex
	lastMu sync.RWMutex
	last   *model.Result
}

// NewScheduler creates a new Scheduler. StartDate is the first day of every backtest window.
func NewScheduler(ctx context.Context, p *pipeline.Pipeline, start time.Time, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	cl := cronLogger{log.Sugar()}
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		Pipeline:  p,
		StartDate: start,
		Now:       time.Now,
		Log:       log,
		Ctx:       ctx,
	}
}

// Register adds the backtest job under the given cron spec (with seconds field).
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.task); err != nil {
		return fmt.Errorf("register backtest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info("scheduler started", zap.Int("jobs", len(s.Cron.Entries())))
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Log.Info("scheduler stopped")
}

// RunNow runs the backtest immediately over [Start, today).
func (s *Scheduler) RunNow() (*model.Result, error) {
	if !s.runMu.TryLock() {
		return nil, ErrBusy
	}
	defer s.runMu.Unlock()

	end := model.Day(s.Now())
	s.Log.Info("running backtest",
		zap.String("start", s.StartDate.Format(model.DateLayout)),
		zap.String("end", end.Format(model.DateLayout)),
	)
	res, err := s.Pipeline.Run(s.Ctx, s.StartDate, end)
	if err != nil {
		return nil, err
	}

	s.lastMu.Lock()
	s.last = res
	s.lastMu.Unlock()
	return res, nil
}

// Last returns the result of the most recent successful run, or nil.
func (s *Scheduler) Last() *model.Result {
	s.lastMu.RLock()
	defer s.lastMu.RUnlock()
	return s.last
}

func (s *Scheduler) task() {
	if _, err := s.RunNow(); err != nil {
		s.Log.Error("scheduled backtest", zap.Error(err))
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch strings.ToLower(strings.TrimSpace(command)) {
	case "/run":
		// A successful run sends its own report.
		if _, err := s.RunNow(); err != nil {
			return fmt.Sprintf("❌ backtest failed: %v", err)
		}
		return ""
	case "/last":
		res := s.Last()
		if res == nil {
			return "No backtest has finished yet. Send /run to start one."
		}
		return notifier.FormatRunReport(res)
	default:
		return "Available commands:\n• /run: run the backtest now\n• /last: show the last result"
	}
}

// cronLogger routes cron's internal logging through zap.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
