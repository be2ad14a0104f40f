package processor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	ErrAlreadyScheduled = errors.New("task already scheduled for key")
	ErrSchedulerClosed  = errors.New("scheduler closed")
)

type Task func(ctx context.Context) error

// Scheduler runs a task once after delay. Only one task per key may be pending
// or running at a time.
type Scheduler interface {
	Schedule(ctx context.Context, key string, delay time.Duration, task Task) error
}

// TimerScheduler fires tasks from real timers into a worker pool.
type TimerScheduler struct {
	pool  WorkerPoolI
	guard Guard

	mu     sync.Mutex
	base   context.Context
	timers map[string]*time.Timer
	queued map[string]struct{}
	closed bool
}

func NewTimerScheduler(pool WorkerPoolI, guard Guard) *TimerScheduler {
	return &TimerScheduler{
		pool:   pool,
		guard:  guard,
		base:   context.Background(),
		timers: make(map[string]*time.Timer),
		queued: make(map[string]struct{}),
	}
}

// Start binds fired tasks to ctx and shuts the scheduler down when ctx is done.
func (s *TimerScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.base = ctx
	s.mu.Unlock()

	zap.L().Info("Scheduler started")
	go func() {
		<-ctx.Done()
		s.Close()
	}()
}

func (s *TimerScheduler) Schedule(ctx context.Context, key string, delay time.Duration, task Task) error {
	ok, err := s.guard.Acquire(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to acquire %s: %w", key, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrAlreadyScheduled, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.release(key)
		return ErrSchedulerClosed
	}
	s.timers[key] = time.AfterFunc(delay, func() { s.fire(key, task) })
	return nil
}

// fire hands a due task to the pool. Its key stays in queued until a worker picks
// it up, so Close can release keys of tasks the pool dropped.
func (s *TimerScheduler) fire(key string, task Task) {
	s.mu.Lock()
	delete(s.timers, key)
	if s.closed {
		s.mu.Unlock()
		s.release(key)
		return
	}
	s.queued[key] = struct{}{}
	ctx := s.base
	s.mu.Unlock()

	err := s.pool.AddTask(ctx, func() error {
		s.mu.Lock()
		delete(s.queued, key)
		s.mu.Unlock()

		defer s.release(key)
		if err := task(ctx); err != nil {
			return fmt.Errorf("task %s: %w", key, err)
		}
		return nil
	})
	if err != nil {
		zap.L().Warn("Failed to dispatch task", zap.String("key", key), zap.Error(err))
		if s.unqueue(key) {
			s.release(key)
		}
	}
}

func (s *TimerScheduler) unqueue(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.queued[key]
	delete(s.queued, key)
	return ok
}

func (s *TimerScheduler) release(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.guard.Release(ctx, key); err != nil {
		zap.L().Error("Failed to release task key", zap.String("key", key), zap.Error(err))
	}
}

// Pending reports how many tasks have not started yet, waiting on a timer or on a worker.
func (s *TimerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers) + len(s.queued)
}

// Close stops timers that have not fired and waits for running tasks. Keys of
// tasks that never started are released, so another instance can pick them up.
func (s *TimerScheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for key, timer := range s.timers {
		if timer.Stop() {
			s.release(key)
		}
		delete(s.timers, key)
	}
	s.mu.Unlock()

	s.pool.Close()

	s.mu.Lock()
	dropped := make([]string, 0, len(s.queued))
	for key := range s.queued {
		dropped = append(dropped, key)
		delete(s.queued, key)
	}
	s.mu.Unlock()
	for _, key := range dropped {
		s.release(key)
	}
	if len(dropped) > 0 {
		zap.L().Info("Released keys of dropped tasks", zap.Int("count", len(dropped)))
	}
	zap.L().Info("Scheduler stopped")
}
