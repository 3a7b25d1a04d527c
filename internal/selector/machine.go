// Package selector drives the randomized aptitude test: a three-phase
// lifecycle (Idle -> Testing -> Complete -> Idle) with timed transitions
// that commits one uniformly chosen descriptor row and one peak.
package selector

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"linggen/internal/aptitude"
	"linggen/internal/logging"
)

// Phase is the test-run lifecycle state.
type Phase int

const (
	Idle Phase = iota
	Testing
	Complete
)

func (p Phase) String() string {
	switch p {
	case Testing:
		return "testing"
	case Complete:
		return "complete"
	default:
		return "idle"
	}
}

// Default delays between phases.
const (
	DefaultCommitDelay = 1000 * time.Millisecond
	DefaultResetDelay  = 800 * time.Millisecond
)

// Source picks uniform indices. *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Result is a committed test outcome.
type Result struct {
	RunID string
	Pair  aptitude.Pair
	Peak  string
}

// Transition is delivered to subscribers on every phase change.
type Transition struct {
	From, To Phase
	// Result is the committed result once a run has completed.
	Result    Result
	HasResult bool
}

// Machine is the test state machine. It is safe for concurrent use, though
// callers are expected to drive it from a single logical thread.
type Machine struct {
	mu          sync.Mutex
	phase       Phase
	result      Result
	hasResult   bool
	runID       string
	pending     Timer
	disposed    bool
	listeners   map[int]func(Transition)
	nextListen  int
	sched       Scheduler
	src         Source
	pairs       []aptitude.Pair
	peaks       []string
	commitDelay time.Duration
	resetDelay  time.Duration
	logger      *zap.Logger
}

// Option configures a Machine.
type Option func(*Machine)

// WithScheduler sets the scheduler used for phase delays.
func WithScheduler(s Scheduler) Option {
	return func(m *Machine) { m.sched = s }
}

// WithSource sets the random source for table and peak selection.
func WithSource(src Source) Option {
	return func(m *Machine) { m.src = src }
}

// WithDelays overrides the Testing->Complete and Complete->Idle delays.
func WithDelays(commit, reset time.Duration) Option {
	return func(m *Machine) {
		m.commitDelay = commit
		m.resetDelay = reset
	}
}

// WithTable replaces the descriptor rows and peaks to choose from.
func WithTable(pairs []aptitude.Pair, peaks []string) Option {
	return func(m *Machine) {
		m.pairs = pairs
		m.peaks = peaks
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

// New creates an Idle machine over the built-in aptitude table.
func New(opts ...Option) *Machine {
	m := &Machine{
		listeners:   make(map[int]func(Transition)),
		pairs:       aptitude.Pairs(),
		peaks:       aptitude.Peaks(),
		commitDelay: DefaultCommitDelay,
		resetDelay:  DefaultResetDelay,
	}
	for _, opt := range opts {
		opt(m)
	}
	if len(m.pairs) == 0 {
		m.pairs = aptitude.Pairs()
	}
	if len(m.peaks) == 0 {
		m.peaks = aptitude.Peaks()
	}
	if m.sched == nil {
		m.sched = NewTimerScheduler()
	}
	if m.src == nil {
		m.src = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if m.logger == nil {
		m.logger = logging.Get(logging.CategorySelector)
	}
	return m
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// Result returns the most recently committed result.
func (m *Machine) Result() (Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.result, m.hasResult
}

// Subscribe registers fn for transitions and returns a function removing it.
// Listeners run outside the machine's lock and may call back into it.
func (m *Machine) Subscribe(fn func(Transition)) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextListen
	m.nextListen++
	m.listeners[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// Start begins a test run. It returns false, doing nothing, unless the
// machine is Idle and not disposed.
func (m *Machine) Start() bool {
	m.mu.Lock()
	if m.disposed || m.phase != Idle {
		m.mu.Unlock()
		return false
	}
	runID := uuid.NewString()
	m.runID = runID
	t := m.transitionLocked(Testing)
	listeners := m.snapshotListenersLocked()
	m.mu.Unlock()

	m.logger.Debug("test started", zap.String("run", runID))
	notify(listeners, t)
	m.schedule(runID, Testing, m.commitDelay, func() { m.commit(runID) })
	return true
}

func (m *Machine) commit(runID string) {
	m.mu.Lock()
	if m.disposed || m.phase != Testing || m.runID != runID {
		m.mu.Unlock()
		return
	}
	m.result = Result{
		RunID: runID,
		Pair:  m.pairs[m.src.IntN(len(m.pairs))],
		Peak:  m.peaks[m.src.IntN(len(m.peaks))],
	}
	m.hasResult = true
	t := m.transitionLocked(Complete)
	m.pending = nil
	listeners := m.snapshotListenersLocked()
	m.mu.Unlock()

	m.logger.Info("test committed",
		zap.String("run", runID),
		zap.String("descriptor", t.Result.Pair.Descriptor),
		zap.String("peak", t.Result.Peak))
	notify(listeners, t)
	m.schedule(runID, Complete, m.resetDelay, func() { m.reset(runID) })
}

// schedule arms the next transition of runID. Callers notify listeners of the
// current phase first. Nothing is armed if the run was disposed or moved on.
func (m *Machine) schedule(runID string, phase Phase, d time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed || m.phase != phase || m.runID != runID {
		return
	}
	m.pending = m.sched.After(d, fn)
}

func (m *Machine) reset(runID string) {
	m.mu.Lock()
	if m.disposed || m.phase != Complete || m.runID != runID {
		m.mu.Unlock()
		return
	}
	t := m.transitionLocked(Idle)
	m.pending = nil
	listeners := m.snapshotListenersLocked()
	m.mu.Unlock()

	m.logger.Debug("test reset", zap.String("run", runID))
	notify(listeners, t)
}

// Dispose abandons any pending transition. Callbacks that still fire after
// Dispose leave the machine untouched and notify nobody.
func (m *Machine) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return
	}
	m.disposed = true
	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
	m.listeners = make(map[int]func(Transition))
}

func (m *Machine) transitionLocked(to Phase) Transition {
	t := Transition{From: m.phase, To: to, Result: m.result, HasResult: m.hasResult}
	m.phase = to
	return t
}

func (m *Machine) snapshotListenersLocked() []func(Transition) {
	out := make([]func(Transition), 0, len(m.listeners))
	for i := 0; i < m.nextListen; i++ {
		if fn, ok := m.listeners[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(listeners []func(Transition), t Transition) {
	for _, fn := range listeners {
		fn(t)
	}
}
