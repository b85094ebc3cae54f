// Package scheduler regenerates leaderboard summaries on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/aoc-web/internal/models"
)

// Generator rebuilds the summaries of one year
type Generator interface {
	Generate(ctx context.Context, year int, trigger string) ([]models.SummaryKey, error)
}

// Scheduler manages scheduled summary generation jobs
type Scheduler struct {
	cron       *cron.Cron
	generator  Generator
	logger     logrus.FieldLogger
	mu         sync.RWMutex
	isRunning  bool
	jobIDs     []cron.EntryID
	jobTimeout time.Duration
}

// NewScheduler creates a new scheduler
func NewScheduler(generator Generator, logger logrus.FieldLogger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		generator:  generator,
		logger:     logger.WithField("component", "scheduler"),
		jobIDs:     make([]cron.EntryID, 0),
		jobTimeout: 5 * time.Minute,
	}
}

// generateJob returns the job body for one year
func (s *Scheduler) generateJob(year int) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()

		log := s.logger.WithField("year", year)
		keys, err := s.generator.Generate(ctx, year, "schedule")
		if err != nil {
			log.WithError(err).Error("Scheduled summary generation failed")
			return
		}
		log.WithField("summaries", len(keys)).Info("Scheduled summary generation completed")
	}
}

// ScheduleSummaries schedules generation of every year on cronExpression
func (s *Scheduler) ScheduleSummaries(cronExpression string, years []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	for _, year := range years {
		entryID, err := s.cron.AddFunc(cronExpression, s.generateJob(year))
		if err != nil {
			return fmt.Errorf("failed to add job for %d: %w", year, err)
		}
		s.jobIDs = append(s.jobIDs, entryID)
	}

	s.logger.WithFields(logrus.Fields{
		"schedule": cronExpression,
		"years":    years,
	}).Info("Scheduled summary generation")

	return nil
}

// RunNow generates every scheduled year immediately, outside the cron loop
func (s *Scheduler) RunNow(years []int) {
	for _, year := range years {
		s.generateJob(year)()
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")
}

// running reports whether the scheduler is currently running
func (s *Scheduler) running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			if nextRun.IsZero() || entry.Next.Before(nextRun) {
				nextRun = entry.Next
			}
		}
	}

	return nextRun
}

// entries returns the valid cron entries for the scheduled jobs.
func (s *Scheduler) entries() []cron.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]cron.Entry, 0, len(s.jobIDs))
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			entries = append(entries, entry)
		}
	}

	return entries
}
