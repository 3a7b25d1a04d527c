package cardwatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"linggen/internal/card"
	"linggen/internal/formation"
)

type fixedRand struct{}

func (fixedRand) Float64() float64 { return 0.5 }
func (fixedRand) IntN(n int) int   { return 0 }

func writeCard(t *testing.T, path string, c card.Card) {
	t.Helper()
	require.NoError(t, c.Save(path))
}

func newSheetWatcher(t *testing.T, path string) (*Watcher, <-chan card.Sheet) {
	t.Helper()
	sheets := make(chan card.Sheet, 8)
	w, err := New(path, card.NewComposer(fixedRand{}), func(_ context.Context, s card.Sheet) {
		sheets <- s
	}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	return w, sheets
}

func waitSheet(t *testing.T, sheets <-chan card.Sheet) card.Sheet {
	t.Helper()
	select {
	case s := <-sheets:
		return s
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
		return card.Sheet{}
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "card.yaml")
	c := card.Card{Name: "林动", EntryDate: "2024-03-15", Descriptor: "天灵根 (火)", Constitution: "纯阳之体"}
	writeCard(t, path, c)

	w, sheets := newSheetWatcher(t, path)
	defer w.Stop()
	require.NoError(t, w.Start(context.Background()))
	assert.True(t, w.IsWatching())

	c.Descriptor = "变异灵根 (冰)"
	writeCard(t, path, c)

	s := waitSheet(t, sheets)
	assert.Equal(t, formation.Ice, s.Formation)
	assert.Equal(t, "异-20240315-1000", s.Serial)

	stats := w.GetStats()
	assert.GreaterOrEqual(t, stats.Events, 1)
	assert.GreaterOrEqual(t, stats.Reloads, 1)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "card.yaml")
	writeCard(t, path, card.Card{Name: "韩立", EntryDate: "2024-01-01"})

	w, sheets := newSheetWatcher(t, path)
	defer w.Stop()
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("name: x\n"), 0644))

	select {
	case <-sheets:
		t.Fatal("unrelated file triggered a reload")
	case <-time.After(150 * time.Millisecond):
	}
	assert.Equal(t, 0, w.GetStats().Events)
}

func TestWatcher_BadYAMLCountsError(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "card.yaml")
	writeCard(t, path, card.Card{Name: "石昊", EntryDate: "2024-02-02"})

	w, sheets := newSheetWatcher(t, path)
	defer w.Stop()
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(path, []byte("name: [broken"), 0644))
	assert.Eventually(t, func() bool { return w.GetStats().Errors >= 1 }, 5*time.Second, 10*time.Millisecond)
	assert.Empty(t, sheets)
}

func TestWatcher_Reload(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "card.yaml")
	writeCard(t, path, card.Card{Name: "萧炎", EntryDate: "2024-05-01", Descriptor: "隐灵根 (隐暗)"})

	w, sheets := newSheetWatcher(t, path)
	defer w.Stop()

	require.NoError(t, w.Reload(context.Background()))
	s := waitSheet(t, sheets)
	assert.Equal(t, formation.Abyss, s.Formation)
	assert.Equal(t, path, w.Path())
}

func TestWatcher_ContextCancelStopsLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "card.yaml")
	writeCard(t, path, card.Card{Name: "叶凡", EntryDate: "2024-01-01"})

	w, _ := newSheetWatcher(t, path)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()

	select {
	case <-w.doneCh:
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not exit on cancel")
	}
	w.Stop()
	assert.False(t, w.IsWatching())
	assert.Error(t, w.Start(context.Background()), "stopped watcher cannot restart")
	w.Stop()
}

func TestWatcher_StartMissingDir(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, _ := newSheetWatcher(t, filepath.Join(t.TempDir(), "nope", "card.yaml"))
	defer w.Stop()
	assert.ErrorContains(t, w.Start(context.Background()), "failed to watch")
}

// countingRand draws a different suffix on every call.
type countingRand struct{ n int }

func (r *countingRand) Float64() float64 { return 0.5 }
func (r *countingRand) IntN(n int) int {
	r.n++
	return r.n % n
}

func TestWatcher_ReloadKeepsSerialAcrossCosmeticEdits(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "card.yaml")
	c := card.Card{Name: "林动", EntryDate: "2024-03-15", Descriptor: "天灵根 (火)", Border: card.BorderFire}
	writeCard(t, path, c)

	var got []card.Sheet
	w, err := New(path, card.NewComposer(&countingRand{}), func(_ context.Context, s card.Sheet) {
		got = append(got, s)
	})
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.Reload(context.Background()))
	c.Border = card.BorderGold
	writeCard(t, path, c)
	require.NoError(t, w.Reload(context.Background()))
	c.Descriptor = "真灵根 (金、木)"
	writeCard(t, path, c)
	require.NoError(t, w.Reload(context.Background()))

	require.Len(t, got, 3)
	assert.Equal(t, got[0].Serial, got[1].Serial, "border edit keeps the serial")
	assert.Equal(t, card.BorderGold, got[1].Card.Border)
	assert.NotEqual(t, got[1].Serial, got[2].Serial)
	assert.Equal(t, formation.True, got[2].Formation)
}
