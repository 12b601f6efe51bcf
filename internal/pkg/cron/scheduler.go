package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Job is a task run every Interval. A run is cancelled once it takes longer
// than Interval.
type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

// Scheduler runs background jobs for the lifetime of the server.
type Scheduler struct {
	mu     sync.Mutex
	jobs   []Job
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AddJob registers a job. Jobs added after Start are not run.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{Name: name, Interval: interval, Fn: fn})
	slog.Info("Cron job registered", "name", name, "interval", interval)
}

// Start runs every job once right away and then on its interval, until Stop.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	for _, job := range s.jobs {
		s.wg.Go(func() { s.loop(ctx, job) })
	}
	slog.Info("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}

	cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

// RunOnce runs every job once in order and reports the failures.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	s.mu.Lock()
	jobs := append([]Job(nil), s.jobs...)
	s.mu.Unlock()

	var errs []error
	for _, job := range jobs {
		if err := s.run(ctx, job); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", job.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		_ = s.run(ctx, job)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// run executes one job run and logs its outcome. A panicking job is reported
// as failed and does not stop the scheduler.
func (s *Scheduler) run(ctx context.Context, job Job) (err error) {
	ctx, cancel := context.WithTimeout(ctx, job.Interval)
	defer cancel()

	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
		if err != nil {
			slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
			return
		}
		slog.Debug("Cron job completed", "name", job.Name, "duration", time.Since(start))
	}()

	return job.Fn(ctx)
}
