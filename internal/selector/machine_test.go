package selector

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"linggen/internal/aptitude"
)

// scriptedSource returns the queued values in order.
type scriptedSource struct {
	values []int
	calls  []int
}

func (s *scriptedSource) IntN(n int) int {
	s.calls = append(s.calls, n)
	v := s.values[0]
	s.values = s.values[1:]
	return v % n
}

func newTestMachine(t *testing.T, values ...int) (*Machine, *ManualScheduler, *scriptedSource) {
	t.Helper()
	sched := NewManualScheduler()
	src := &scriptedSource{values: values}
	m := New(WithScheduler(sched), WithSource(src), WithLogger(zap.NewNop()))
	t.Cleanup(m.Dispose)
	return m, sched, src
}

func TestMachine_Lifecycle(t *testing.T) {
	m, sched, src := newTestMachine(t, 8, 2)

	var seen []Phase
	m.Subscribe(func(tr Transition) { seen = append(seen, tr.To) })

	require.Equal(t, Idle, m.Phase())
	_, ok := m.Result()
	require.False(t, ok)

	require.True(t, m.Start())
	assert.Equal(t, Testing, m.Phase())

	sched.Advance(999 * time.Millisecond)
	assert.Equal(t, Testing, m.Phase(), "commit must wait the full delay")

	sched.Advance(time.Millisecond)
	assert.Equal(t, Complete, m.Phase())
	res, ok := m.Result()
	require.True(t, ok)
	assert.Equal(t, "隐灵根 (隐暗)", res.Pair.Descriptor)
	assert.Equal(t, "先天道体", res.Pair.Constitution)
	assert.Equal(t, "紫薇峰", res.Peak)
	_, err := uuid.Parse(res.RunID)
	assert.NoError(t, err)
	assert.Equal(t, []int{16, 9}, src.calls, "uniform over table and peaks")

	sched.Advance(799 * time.Millisecond)
	assert.Equal(t, Complete, m.Phase())
	sched.Advance(time.Millisecond)
	assert.Equal(t, Idle, m.Phase())

	assert.Equal(t, []Phase{Testing, Complete, Idle}, seen)
	assert.Equal(t, 0, sched.Pending())

	res2, ok := m.Result()
	require.True(t, ok, "result stays committed after returning to idle")
	assert.Equal(t, res, res2)
}

func TestMachine_StartIgnoredWhileRunning(t *testing.T) {
	m, sched, _ := newTestMachine(t, 0, 0, 1, 1)

	require.True(t, m.Start())
	assert.False(t, m.Start())
	assert.Equal(t, Testing, m.Phase())
	assert.Equal(t, 1, sched.Pending(), "only one run's timers are live")

	sched.Advance(DefaultCommitDelay)
	assert.False(t, m.Start())
	assert.Equal(t, Complete, m.Phase())

	sched.Advance(DefaultResetDelay)
	require.Equal(t, Idle, m.Phase())

	require.True(t, m.Start(), "a new run can start once idle")
	sched.Advance(DefaultCommitDelay)
	res, _ := m.Result()
	assert.Equal(t, "变异灵根 (冰)", res.Pair.Descriptor)
	assert.Equal(t, "血月峰", res.Peak)
}

func TestMachine_TransitionsCarryResult(t *testing.T) {
	m, sched, _ := newTestMachine(t, 0, 0)

	var got []Transition
	unsubscribe := m.Subscribe(func(tr Transition) { got = append(got, tr) })

	m.Start()
	sched.Advance(DefaultCommitDelay)
	unsubscribe()
	sched.Advance(DefaultResetDelay)

	require.Len(t, got, 2)
	assert.Equal(t, Transition{From: Idle, To: Testing}, got[0])
	assert.Equal(t, Testing, got[1].From)
	assert.Equal(t, Complete, got[1].To)
	assert.True(t, got[1].HasResult)
	assert.Equal(t, aptitude.Pairs()[0], got[1].Result.Pair)
}

func TestMachine_ListenerMayCallBack(t *testing.T) {
	m, sched, _ := newTestMachine(t, 0, 0)

	var phaseSeen Phase
	m.Subscribe(func(tr Transition) {
		if tr.To == Complete {
			phaseSeen = m.Phase()
			assert.False(t, m.Start())
		}
	})
	m.Start()
	sched.Advance(DefaultCommitDelay)
	assert.Equal(t, Complete, phaseSeen)
}

func TestMachine_DisposeAbandonsPendingTransition(t *testing.T) {
	m, sched, _ := newTestMachine(t, 0, 0)

	notified := 0
	m.Subscribe(func(Transition) { notified++ })

	m.Start()
	require.Equal(t, 1, notified)
	m.Dispose()
	assert.Equal(t, 0, sched.Pending())

	sched.Advance(time.Hour)
	assert.Equal(t, Testing, m.Phase(), "disposed machine is never mutated")
	_, ok := m.Result()
	assert.False(t, ok)
	assert.Equal(t, 1, notified)
	assert.False(t, m.Start())

	m.Dispose()
}

func TestMachine_SchedulesAfterListenersReturn(t *testing.T) {
	m, sched, _ := newTestMachine(t, 0, 0)

	var pendingDuring []int
	m.Subscribe(func(tr Transition) {
		pendingDuring = append(pendingDuring, sched.Pending())
	})

	m.Start()
	assert.Equal(t, 1, sched.Pending())
	sched.Advance(DefaultCommitDelay)
	assert.Equal(t, 1, sched.Pending())
	sched.Advance(DefaultResetDelay)

	assert.Equal(t, []int{0, 0, 0}, pendingDuring, "no transition is armed while listeners run")
}

func TestMachine_DisposeFromListener(t *testing.T) {
	m, sched, _ := newTestMachine(t, 0, 0)

	m.Subscribe(func(tr Transition) {
		if tr.To == Testing {
			m.Dispose()
		}
	})
	require.True(t, m.Start())
	assert.Equal(t, 0, sched.Pending(), "a disposed run arms nothing")
}

func TestMachine_StaleCallbackIgnored(t *testing.T) {
	sched := NewManualScheduler()
	m := New(WithScheduler(sched), WithSource(&scriptedSource{values: []int{0, 0}}), WithLogger(zap.NewNop()))

	m.Start()
	// A callback carrying another run's id must not commit this run.
	m.commit("someone-else")
	assert.Equal(t, Testing, m.Phase())
	m.reset("someone-else")
	assert.Equal(t, Testing, m.Phase())
}

func TestMachine_CustomDelaysAndTable(t *testing.T) {
	sched := NewManualScheduler()
	pairs := []aptitude.Pair{{Descriptor: "天灵根 (金)", Constitution: "凡体 (优)"}}
	m := New(
		WithScheduler(sched),
		WithSource(&scriptedSource{values: []int{0, 0}}),
		WithDelays(10*time.Millisecond, 5*time.Millisecond),
		WithTable(pairs, []string{"青云峰"}),
		WithLogger(zap.NewNop()),
	)
	defer m.Dispose()

	m.Start()
	next, ok := sched.Next()
	require.True(t, ok)
	assert.Equal(t, 10*time.Millisecond, next)

	sched.Advance(10 * time.Millisecond)
	res, _ := m.Result()
	assert.Equal(t, "天灵根 (金)", res.Pair.Descriptor)
	assert.Equal(t, "青云峰", res.Peak)

	sched.Advance(5 * time.Millisecond)
	assert.Equal(t, Idle, m.Phase())
	assert.Equal(t, 15*time.Millisecond, sched.Now())
}

func TestMachine_EmptyTableFallsBack(t *testing.T) {
	m := New(WithTable(nil, nil), WithScheduler(NewManualScheduler()))
	defer m.Dispose()
	assert.Len(t, m.pairs, len(aptitude.Pairs()))
	assert.Len(t, m.peaks, len(aptitude.Peaks()))
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "testing", Testing.String())
	assert.Equal(t, "complete", Complete.String())
}
