package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var ErrStopped = errors.New("scheduler stopped")

// Job is the work run when a scheduled time arrives.
type Job func(ctx context.Context)

type dailyJob struct {
	id     string
	hour   int
	minute int
	run    Job
	next   time.Time
	timer  *time.Timer
}

// Scheduler runs jobs once a day at a fixed local wall-clock time. Jobs are
// keyed by id; scheduling an id that already exists replaces it.
type Scheduler struct {
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	jobs    map[string]*dailyJob
	stopped bool
	wg      sync.WaitGroup
}

func NewScheduler(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		logger: logger,
		now:    time.Now,
		jobs:   make(map[string]*dailyJob),
	}
}

// ScheduleDaily arms run to fire every day at hour:minute.
func (s *Scheduler) ScheduleDaily(id string, hour, minute int, run Job) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("invalid hour %d: must be between 0 and 23", hour)
	}
	if minute < 0 || minute > 59 {
		return fmt.Errorf("invalid minute %d: must be between 0 and 59", minute)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrStopped
	}

	if existing, ok := s.jobs[id]; ok {
		existing.timer.Stop()
		s.logger.Info("replacing scheduled job", "id", id, "previous_next", existing.next)
	}

	job := &dailyJob{id: id, hour: hour, minute: minute, run: run}
	s.jobs[id] = job
	s.arm(job)
	return nil
}

// arm must be called with s.mu held.
func (s *Scheduler) arm(job *dailyJob) {
	now := s.now()
	job.next = NextRun(now, job.hour, job.minute)
	delay := job.next.Sub(now)

	job.timer = time.AfterFunc(delay, func() {
		s.fire(job)
	})

	s.logger.Debug("job scheduled", "id", job.id, "next", job.next, "delay", delay)
}

func (s *Scheduler) fire(job *dailyJob) {
	s.mu.Lock()
	if s.stopped || s.jobs[job.id] != job {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	s.execute(job)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped && s.jobs[job.id] == job {
		s.arm(job)
	}
}

func (s *Scheduler) execute(job *dailyJob) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scheduled job panicked", "id", job.id, "panic", r)
		}
	}()

	start := time.Now()
	job.run(context.Background())
	s.logger.Debug("scheduled job finished", "id", job.id, "duration", time.Since(start))
}

// Next reports when the job with the given id fires next.
func (s *Scheduler) Next(id string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return time.Time{}, false
	}
	return job.next, true
}

func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// Stop cancels every timer and waits for running jobs to return. It is meant
// for process shutdown; a stopped scheduler accepts no new jobs.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	for id, job := range s.jobs {
		job.timer.Stop()
		delete(s.jobs, id)
	}
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

// NextRun returns the first hour:minute in now's location strictly after now.
func NextRun(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month(), now.Day()+1, hour, minute, 0, 0, now.Location())
	}
	return next
}
