// Package scheduler runs cancellable periodic tasks on top of robfig/cron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler owns a single cron runner shared by every periodic task
type Scheduler struct {
	cron *cron.Cron
}

// Task is a handle to a scheduled job
type Task struct {
	id        cron.EntryID
	scheduler *Scheduler
}

// New creates a scheduler. Panics inside jobs are recovered and logged.
func New() *Scheduler {
	log := cronLogger{}
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.Recover(log)), cron.WithLogger(log)),
	}
}

// Start begins running scheduled jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Log.Info().Msg("Scheduler started")
}

// Stop stops the runner and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		logger.Log.Warn().Msg("Scheduler stop timed out with jobs still running")
	}
	logger.Log.Info().Msg("Scheduler stopped")
}

// Every runs fn at a fixed interval. A tick is skipped while the previous
// run of the same task is still in progress.
func (s *Scheduler) Every(interval time.Duration, fn func()) (*Task, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %s", interval)
	}
	job := cron.NewChain(cron.SkipIfStillRunning(cronLogger{})).Then(cron.FuncJob(fn))
	id := s.cron.Schedule(cron.Every(interval), job)
	return &Task{id: id, scheduler: s}, nil
}

// Cron runs fn on a standard five-field cron spec
func (s *Scheduler) Cron(spec string, fn func()) (*Task, error) {
	job := cron.NewChain(cron.SkipIfStillRunning(cronLogger{})).Then(cron.FuncJob(fn))
	id, err := s.cron.AddJob(spec, job)
	if err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return &Task{id: id, scheduler: s}, nil
}

// Len returns the number of scheduled tasks
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Cancel removes the task. Safe to call more than once.
func (t *Task) Cancel() {
	if t == nil || t.scheduler == nil {
		return
	}
	t.scheduler.cron.Remove(t.id)
}

// cronLogger adapts zerolog to cron.Logger
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
