package processor

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

type manualTask struct {
	key  string
	due  time.Time
	seq  int
	task Task
}

// ManualScheduler runs tasks on a virtual clock that only moves on Advance.
// It also serves as the Clock of the services it drives.
type ManualScheduler struct {
	mu       sync.Mutex
	now      time.Time
	seq      int
	queue    []*manualTask
	inflight map[string]struct{}
}

func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{
		now:      start,
		inflight: make(map[string]struct{}),
	}
}

func (m *ManualScheduler) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *ManualScheduler) Schedule(_ context.Context, key string, delay time.Duration, task Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.inflight[key]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyScheduled, key)
	}
	m.inflight[key] = struct{}{}
	m.seq++
	m.queue = append(m.queue, &manualTask{key: key, due: m.now.Add(delay), seq: m.seq, task: task})
	return nil
}

// Advance moves the clock forward by d, running every task that comes due on the
// way in due order. Tasks scheduled by running tasks are picked up too.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		next := m.popDue(target)
		if next == nil {
			break
		}
		if err := next.task(context.Background()); err != nil {
			zap.L().Error("Task execution failed", zap.String("key", next.key), zap.Error(err))
		}
		m.mu.Lock()
		delete(m.inflight, next.key)
		m.mu.Unlock()
	}

	m.mu.Lock()
	if target.After(m.now) {
		m.now = target
	}
	m.mu.Unlock()
}

// Flush runs everything queued, however far in the future.
func (m *ManualScheduler) Flush() {
	for {
		m.mu.Lock()
		if len(m.queue) == 0 {
			m.mu.Unlock()
			return
		}
		var last time.Time
		for _, t := range m.queue {
			if t.due.After(last) {
				last = t.due
			}
		}
		d := last.Sub(m.now)
		m.mu.Unlock()
		m.Advance(d)
	}
}

func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

func (m *ManualScheduler) popDue(target time.Time) *manualTask {
	m.mu.Lock()
	defer m.mu.Unlock()

	sort.SliceStable(m.queue, func(i, j int) bool {
		if m.queue[i].due.Equal(m.queue[j].due) {
			return m.queue[i].seq < m.queue[j].seq
		}
		return m.queue[i].due.Before(m.queue[j].due)
	})
	if len(m.queue) == 0 || m.queue[0].due.After(target) {
		return nil
	}
	next := m.queue[0]
	m.queue = m.queue[1:]
	if next.due.After(m.now) {
		m.now = next.due
	}
	return next
}
