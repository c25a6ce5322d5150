package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"VolumeProfile/internal/collector"
)

// EmitFunc receives every successfully computed snapshot.
type EmitFunc func(snap *collector.Snapshot) error

// Scheduler recomputes the volume profile on a cron schedule. Every run
// reloads the series and recomputes all windows from scratch.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Emit      EmitFunc
	Ctx       context.Context

	runs     atomic.Int64
	failures atomic.Int64
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, emit EmitFunc) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		Collector: col,
		Emit:      emit,
		Ctx:       ctx,
	}
}

// Register schedules the recompute job. spec uses the six-field cron
// format with seconds, e.g. "0 */5 * * * *".
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.profileTask); err != nil {
		return fmt.Errorf("register profile task: %w", err)
	}
	log.Info().Str("cron", spec).Msg("profile task registered")
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Int64("runs", s.runs.Load()).Int64("failures", s.failures.Load()).Msg("scheduler stopped")
}

// RunNow executes the profile task immediately and returns its error.
func (s *Scheduler) RunNow() error {
	return s.run()
}

// Stats returns how many runs happened and how many of them failed.
func (s *Scheduler) Stats() (runs, failures int64) {
	return s.runs.Load(), s.failures.Load()
}

func (s *Scheduler) profileTask() {
	_ = s.run()
}

func (s *Scheduler) run() error {
	runID := uuid.NewString()
	logger := log.With().Str("run_id", runID).Logger()
	s.runs.Add(1)

	logger.Info().Msg("running profile task")
	snap, err := s.Collector.Collect(s.Ctx)
	if err != nil {
		s.failures.Add(1)
		logger.Error().Err(err).Msg("profile task failed")
		return err
	}
	if err := s.Emit(snap); err != nil {
		s.failures.Add(1)
		logger.Error().Err(err).Msg("emit profile")
		return fmt.Errorf("emit profile: %w", err)
	}
	return nil
}
