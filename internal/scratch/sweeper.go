package scratch

import (
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/alekspetrov/tgassistant/internal/logging"
)

// Sweeper periodically removes stale scratch files.
type Sweeper struct {
	dir      *Dir
	schedule string
	maxAge   time.Duration
	cron     *cron.Cron
	mu       sync.Mutex
	running  bool
	entryID  cron.EntryID
	logger   *slog.Logger
}

// NewSweeper creates a sweeper for dir. An empty schedule disables it.
func NewSweeper(dir *Dir, schedule string, maxAge time.Duration) *Sweeper {
	return &Sweeper{
		dir:      dir,
		schedule: schedule,
		maxAge:   maxAge,
		cron:     cron.New(),
		logger:   logging.WithComponent("scratch"),
	}
}

// Start registers the sweep job and starts the scheduler.
func (s *Sweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}
	if s.schedule == "" {
		s.logger.Info("scratch sweeper disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.RunOnce)
	if err != nil {
		return err
	}

	s.entryID = entryID
	s.cron.Start()
	s.running = true

	s.logger.Info("scratch sweeper started",
		"dir", s.dir.Path(),
		"schedule", s.schedule,
		"max_age", s.maxAge,
		"next_run", s.cron.Entry(s.entryID).Next,
	)
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	<-s.cron.Stop().Done()
	s.running = false
	s.logger.Info("scratch sweeper stopped")
}

// NextRun returns the next scheduled sweep, zero when not running.
func (s *Sweeper) NextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

// RunOnce sweeps immediately.
func (s *Sweeper) RunOnce() {
	removed, err := s.dir.Sweep(s.maxAge)
	if err != nil {
		s.logger.Warn("scratch sweep incomplete", slog.Int("removed", removed), slog.Any("error", err))
		return
	}
	if removed > 0 {
		s.logger.Info("removed stale scratch files", slog.Int("removed", removed))
	}
}
