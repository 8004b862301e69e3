/*
scheduler.go - Automated month-close scheduler

PURPOSE:
  Periodically closes the previous calendar month for every unit, so that
  metrics rows exist (and carry HAC forward) without anyone asking for them.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Each tick closes the month before the current one, for all units
  - Closing is idempotent: recomputing a stored month yields the same row
  - A month already closed is still recomputed so late entries are picked up

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - Enabled: Whether scheduler is active
  - Source: Hours source used for HT (registry or roster)

USAGE:
  scheduler := NewMonthCloseScheduler(svc, logger)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: CloseMonth endpoint (manual close)
  - accounting/service.go: CloseMonth
*/
package api

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/warp/shift-hours/accounting"
	"github.com/warp/shift-hours/balance"
	"github.com/warp/shift-hours/shift"
)

// MonthCloseScheduler closes the previous month on a timer.
type MonthCloseScheduler struct {
	Service       *accounting.Service
	Logger        *slog.Logger
	CheckInterval time.Duration
	Enabled       bool
	Source        balance.HoursSource

	mu     sync.Mutex // guards ticker and stop
	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup

	closedMu   sync.Mutex
	lastClosed shift.Month
}

// NewMonthCloseScheduler creates a new scheduler.
func NewMonthCloseScheduler(svc *accounting.Service, logger *slog.Logger) *MonthCloseScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MonthCloseScheduler{
		Service:       svc,
		Logger:        logger.With(slog.String("component", "scheduler")),
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		Source:        balance.SourceRegistry,
	}
}

// Start begins the scheduler. Starting a running scheduler does nothing.
func (s *MonthCloseScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Enabled {
		s.Logger.Info("scheduler disabled, not starting")
		return
	}
	if s.ticker != nil {
		return
	}

	s.ticker = time.NewTicker(s.CheckInterval)
	s.stop = make(chan struct{})
	s.wg.Add(1)

	go s.run(s.ticker, s.stop)

	s.Logger.Info("scheduler started",
		slog.Duration("interval", s.CheckInterval),
		slog.String("source", string(s.Source)))
}

// Stop stops the scheduler and waits for a running close to finish.
func (s *MonthCloseScheduler) Stop() {
	s.mu.Lock()
	ticker, stop := s.ticker, s.stop
	s.ticker, s.stop = nil, nil
	s.mu.Unlock()

	if ticker == nil {
		return
	}
	ticker.Stop()
	close(stop)
	s.wg.Wait()
	s.Logger.Info("scheduler stopped")
}

// Running reports whether the scheduler has been started and not stopped.
func (s *MonthCloseScheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticker != nil
}

func (s *MonthCloseScheduler) run(ticker *time.Ticker, stop <-chan struct{}) {
	defer s.wg.Done()

	// Run immediately on start
	s.checkAndProcess()

	for {
		select {
		case <-ticker.C:
			s.checkAndProcess()
		case <-stop:
			return
		}
	}
}

func (s *MonthCloseScheduler) checkAndProcess() {
	ctx := context.Background()
	month := shift.DateOf(s.Service.Now()).CalendarMonth().Previous()

	if _, err := s.CloseOnce(ctx, month); err != nil {
		s.Logger.Error("month close failed",
			slog.String("month", month.String()),
			slog.Any("error", err))
	}
}

// CloseOnce closes one month for every unit and returns the number of rows
// computed.
func (s *MonthCloseScheduler) CloseOnce(ctx context.Context, month shift.Month) (int, error) {
	rows, err := s.Service.CloseMonth(ctx, "", month, s.Source)
	if err != nil {
		return 0, err
	}

	s.closedMu.Lock()
	first := s.lastClosed != month
	s.lastClosed = month
	s.closedMu.Unlock()

	level := slog.LevelDebug
	if first {
		level = slog.LevelInfo
	}
	s.Logger.Log(ctx, level, "month closed by scheduler",
		slog.String("month", month.String()),
		slog.Int("rows", len(rows)))
	return len(rows), nil
}
