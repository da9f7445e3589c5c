// Package scheduler provides cron-based scheduling for the data import resync.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Importer runs a full source-data import.
type Importer interface {
	ImportAll(ctx context.Context) error
}

// Config holds the scheduler configuration
type Config struct {
	// Schedule is a cron expression for when to resync (e.g., "0 3 * * *" for nightly)
	Schedule string
	// Timeout is the maximum duration for a complete import cycle
	Timeout time.Duration
	// Enabled determines if the scheduler should run
	Enabled bool
}

// DefaultConfig returns the default scheduler configuration
func DefaultConfig() Config {
	return Config{
		Schedule: "0 3 * * *", // Nightly at 03:00
		Timeout:  5 * time.Minute,
		Enabled:  true,
	}
}

// Scheduler manages the scheduled import job
type Scheduler struct {
	cron     *cron.Cron
	importer Importer
	config   Config
	logger   *slog.Logger
	entryID  cron.EntryID
}

// New creates a new Scheduler instance
func New(cfg Config, importer Importer, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		cron:     cron.New(),
		importer: importer,
		config:   cfg,
		logger:   logger,
	}
}

// Start begins the scheduler
func (s *Scheduler) Start() error {
	if !s.config.Enabled {
		s.logger.Info("Scheduler is disabled, skipping start")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, func() {
		s.runImportJob()
	})
	if err != nil {
		return err
	}

	s.entryID = entryID
	s.cron.Start()

	s.logger.Info("Scheduler started",
		slog.String("schedule", s.config.Schedule),
		slog.Duration("timeout", s.config.Timeout),
	)

	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("Stopping scheduler...")
	return s.cron.Stop()
}

// RunNow triggers an immediate import (useful for manual triggers)
func (s *Scheduler) RunNow() {
	go s.runImportJob()
}

// runImportJob executes one import cycle
func (s *Scheduler) runImportJob() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Timeout)
	defer cancel()

	startTime := time.Now()
	s.logger.Info("Starting scheduled import job",
		slog.Time("start_time", startTime),
	)

	err := s.importer.ImportAll(ctx)
	duration := time.Since(startTime)

	if err != nil {
		s.logger.Error("Import job failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", duration),
		)
		return
	}

	s.logger.Info("Import job completed successfully",
		slog.Duration("duration", duration),
	)
}

// GetNextRunTime returns the next scheduled run time
func (s *Scheduler) GetNextRunTime() time.Time {
	if s.entryID == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

// IsRunning returns true if the scheduler is running
func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
