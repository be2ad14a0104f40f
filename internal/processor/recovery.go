package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Resumer reschedules the unresolved work it owns, e.g. after a restart.
type Resumer interface {
	Resume(ctx context.Context) (int, error)
}

type ResumerFunc func(ctx context.Context) (int, error)

func (f ResumerFunc) Resume(ctx context.Context) (int, error) {
	return f(ctx)
}

// Recover runs all resumers concurrently and stops at the first error.
func Recover(ctx context.Context, resumers ...Resumer) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, r := range resumers {
		r := r
		g.Go(func() error {
			n, err := r.Resume(ctx)
			if err != nil {
				return err
			}
			if n > 0 {
				zap.L().Info("Rescheduled unresolved entities", zap.Int("count", n))
			}
			return nil
		})
	}
	return g.Wait()
}

// ScheduleOrRetry schedules task like Scheduler.Schedule. When key is still held,
// typically by a guard entry a stopped instance has not released yet, it tries once
// more after retry instead of giving up. The task must tolerate running twice.
func ScheduleOrRetry(ctx context.Context, s Scheduler, key string, delay, retry time.Duration, task Task) error {
	err := s.Schedule(ctx, key, delay, task)
	if !errors.Is(err, ErrAlreadyScheduled) {
		return err
	}

	zap.L().Warn("Task key is held, retrying later", zap.String("key", key), zap.Duration("retry", retry))
	return s.Schedule(ctx, "retry:"+key, retry, func(ctx context.Context) error {
		if err := s.Schedule(ctx, key, delay, task); err != nil {
			return fmt.Errorf("retry of %s: %w", key, err)
		}
		return nil
	})
}
