// Package scheduler drives the provider cycle on a fixed interval.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"news_moves/internal/domain"
	"news_moves/internal/logger"
)

var ErrInvalidInterval = errors.New("interval must be at least one second")

// Job is one unit of scheduled work.
type Job interface {
	RunCycle(ctx context.Context) domain.CycleResult
}

type Scheduler struct {
	job        Job
	interval   time.Duration
	runOnStart bool
	log        *logger.Logger
	now        func() time.Time
}

func New(job Job, interval time.Duration, runOnStart bool, log *logger.Logger) (*Scheduler, error) {
	if interval < time.Second {
		return nil, ErrInvalidInterval
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Scheduler{job: job, interval: interval, runOnStart: runOnStart, log: log, now: time.Now}, nil
}

// onceAt fires a single time at the given instant. Once it has fired, Next
// returns the zero time and cron never runs the entry again.
type onceAt time.Time

func (o onceAt) Next(t time.Time) time.Time {
	at := time.Time(o)
	if t.Before(at) {
		return at
	}
	return time.Time{}
}

// Run blocks until ctx is cancelled. The next cycle is armed only after the
// previous one returns, so the full interval always separates the end of one
// cycle from the start of the next. A cycle in flight at cancellation is
// allowed to finish before Run returns.
func (s *Scheduler) Run(ctx context.Context) error {
	cronLog := logger.CronLogger{L: s.log}
	c := cron.New(cron.WithLogger(cronLog))
	chain := cron.NewChain(cron.Recover(cronLog))

	var (
		mu      sync.Mutex
		current cron.EntryID
	)

	var arm func()
	arm = func() {
		job := chain.Then(cron.FuncJob(func() {
			s.runOnce(ctx)

			mu.Lock()
			c.Remove(current)
			mu.Unlock()

			if ctx.Err() == nil {
				arm()
			}
		}))

		mu.Lock()
		current = c.Schedule(onceAt(s.now().Add(s.interval)), job)
		mu.Unlock()
	}

	if s.runOnStart {
		s.runOnce(ctx)
	}
	if ctx.Err() == nil {
		arm()
	}

	c.Start()
	s.log.Info("scheduler started", "interval", s.interval.String())

	<-ctx.Done()

	stopped := c.Stop()
	<-stopped.Done()
	s.log.Info("scheduler stopped")
	return nil
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	result := s.job.RunCycle(ctx)
	s.log.Debug("cycle finished", "status", string(result.Status), "duration", result.Duration.String())
}
