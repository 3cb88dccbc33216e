// Package scheduler triggers tracking cycles on a cron schedule.
package scheduler

import (
	"context"

	"github.com/jkowalczyk/price-tracker/internal/platform/models"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

//go:generate mockery --name CycleRunner --filename cyclerunner.go

// CycleRunner runs tracking cycles.
type CycleRunner interface {
	RunCycle(ctx context.Context) (*models.CycleReport, error)
}

// Scheduler runs tracking cycles on schedule.
type Scheduler struct {
	runner CycleRunner
	logger *zerolog.Logger
	cron   *cron.Cron
}

// NewScheduler returns new Scheduler running cycles with provided runner.
func NewScheduler(runner CycleRunner, logger *zerolog.Logger) *Scheduler {
	return &Scheduler{
		runner: runner,
		logger: logger,
		cron:   cron.New(),
	}
}

// Start schedules cycles with provided cron schedule and starts the scheduler.
// Scheduled cycles stop when context is closed.
func (s *Scheduler) Start(ctx context.Context, schedule string) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.runOnce(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	go func() {
		<-ctx.Done()
		s.cron.Stop()
	}()

	return nil
}

func (s *Scheduler) runOnce(ctx context.Context) {
	s.logger.Debug().Msg("scheduled tracking cycle started")

	report, err := s.runner.RunCycle(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("scheduled tracking cycle failed")
		return
	}

	s.logger.Info().
		Int32("updated", report.Updated).
		Int32("skipped", report.Skipped).
		Int32("failed", report.Failed).
		Dur("duration", report.FinishedAt.Sub(report.StartedAt)).
		Msg("scheduled tracking cycle finished")
}
