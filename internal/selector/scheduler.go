package selector

import (
	"sort"
	"sync"
	"time"
)

// Timer is a pending scheduled callback.
type Timer interface {
	// Stop cancels the callback. It reports whether the call was still pending.
	Stop() bool
}

// Scheduler runs callbacks after a delay. After must return before fn runs.
type Scheduler interface {
	After(d time.Duration, fn func()) Timer
}

// TimerScheduler schedules on the wall clock with time.AfterFunc.
// Callbacks run on their own goroutine.
type TimerScheduler struct {
	mu      sync.Mutex
	pending map[*time.Timer]struct{}
}

// NewTimerScheduler creates a wall-clock scheduler.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{pending: make(map[*time.Timer]struct{})}
}

type wallTimer struct {
	s *TimerScheduler
	t *time.Timer
}

func (w wallTimer) Stop() bool {
	w.s.mu.Lock()
	delete(w.s.pending, w.t)
	w.s.mu.Unlock()
	return w.t.Stop()
}

// After schedules fn to run once d has elapsed.
func (s *TimerScheduler) After(d time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	var t *time.Timer
	t = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.pending, t)
		s.mu.Unlock()
		fn()
	})
	s.pending[t] = struct{}{}
	return wallTimer{s: s, t: t}
}

// StopAll cancels every pending callback.
func (s *TimerScheduler) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for t := range s.pending {
		t.Stop()
		delete(s.pending, t)
	}
}

// Pending returns the number of callbacks not yet fired or stopped.
func (s *TimerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// ManualScheduler runs callbacks against a virtual clock that only moves
// when Advance is called. Callbacks run on the caller's goroutine.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	s       *ManualScheduler
	due     time.Duration
	seq     int
	fn      func()
	stopped bool
}

func (t *manualTask) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	for i, task := range t.s.tasks {
		if task == t {
			t.s.tasks = append(t.s.tasks[:i], t.s.tasks[i+1:]...)
			break
		}
	}
	return true
}

// NewManualScheduler creates a scheduler whose clock starts at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// After schedules fn at now+d on the virtual clock.
func (s *ManualScheduler) After(d time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTask{s: s, due: s.now + d, seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves the clock forward by d, firing due callbacks in order.
// Callbacks scheduled by a firing callback run too if they fall due within d.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.nextDueLocked(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.due
		next.stopped = true
		s.removeLocked(next)
		s.mu.Unlock()

		next.fn()
	}
}

// Next returns the delay until the earliest pending callback.
func (s *ManualScheduler) Next() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.nextDueLocked(-1)
	if next == nil {
		return 0, false
	}
	return next.due - s.now, true
}

// Pending returns the number of callbacks not yet fired or stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Now returns the virtual time elapsed since creation.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// nextDueLocked returns the earliest task due at or before limit; a negative
// limit means no limit.
func (s *ManualScheduler) nextDueLocked(limit time.Duration) *manualTask {
	if len(s.tasks) == 0 {
		return nil
	}
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].due != s.tasks[j].due {
			return s.tasks[i].due < s.tasks[j].due
		}
		return s.tasks[i].seq < s.tasks[j].seq
	})
	first := s.tasks[0]
	if limit >= 0 && first.due > limit {
		return nil
	}
	return first
}

func (s *ManualScheduler) removeLocked(t *manualTask) {
	for i, task := range s.tasks {
		if task == t {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return
		}
	}
}
