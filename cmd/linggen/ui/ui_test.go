package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linggen/internal/aptitude"
	"linggen/internal/card"
	"linggen/internal/descriptor"
	"linggen/internal/selector"
)

type fixedRand struct{ n int }

func (r fixedRand) Float64() float64 { return 0.5 }
func (r fixedRand) IntN(n int) int   { return r.n % n }

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("LINGGEN_LIGHT_MODE", "1")
	assert.False(t, DetectTheme().IsDark)

	t.Setenv("LINGGEN_LIGHT_MODE", "")
	assert.True(t, DetectTheme().IsDark)

	t.Setenv("COLORFGBG", "0;15")
	assert.False(t, DetectTheme().IsDark)
	t.Setenv("COLORFGBG", "15;0")
	assert.True(t, DetectTheme().IsDark)
}

func TestThemeFor(t *testing.T) {
	assert.True(t, ThemeFor("dark").IsDark)
	assert.False(t, ThemeFor("LIGHT").IsDark)
}

func TestRenderEmblem_Shape(t *testing.T) {
	for _, d := range []string{"天灵根 (火)", "真灵根 (金、木、水)", "伪灵根 (金、木、水、火、土)",
		"变异灵根 (冰)", "隐灵根 (隐雷)", "隐灵根 (隐暗)", aptitude.Unmeasured} {
		t.Run(d, func(t *testing.T) {
			lines := strings.Split(RenderEmblem(descriptor.Parse(d)), "\n")
			require.Len(t, lines, EmblemSize)
			for _, l := range lines {
				assert.Equal(t, 2*EmblemSize, lipgloss.Width(l), "row %q", l)
			}
		})
	}
}

func TestRenderEmblem_Content(t *testing.T) {
	base := RenderEmblem(descriptor.Parse("真灵根 (金、木)"))
	for _, g := range []string{"金", "木", "水", "火", "土", "·"} {
		assert.Contains(t, base, g)
	}

	assert.Contains(t, RenderEmblem(descriptor.Parse("变异灵根 (雷)")), "雷")
	assert.Contains(t, RenderEmblem(descriptor.Parse("隐灵根 (隐暗)")), "暗")

	unmeasured := RenderEmblem(descriptor.Parse(aptitude.Unmeasured))
	assert.Contains(t, unmeasured, "？")
	assert.NotContains(t, unmeasured, "金")
}

func TestRenderCard(t *testing.T) {
	c := card.Card{Name: "林动", Gender: "男", EntryDate: "2024-03-15", Border: card.BorderGold,
		Descriptor: "天灵根 (火)", Constitution: "纯阳之体", Peak: "逍遥峰"}
	out := RenderCard(card.NewComposer(fixedRand{}).Compose(c), NewStyles(DarkTheme()))

	for _, want := range []string{SectName, "皓金", "林动", "2024-03-15", "天灵根 (火)", "纯阳之体", "逍遥峰", "天-20240315-1000"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderCard_Placeholders(t *testing.T) {
	out := RenderCard(card.NewComposer(fixedRand{}).Compose(card.Card{}), NewStyles(LightTheme()))
	assert.Contains(t, out, card.UnnamedLabel)
	assert.Contains(t, out, card.NoGenderLabel)
	assert.Contains(t, out, "赤炎")
}

func newModel() TestModel {
	return NewTestModel(TestOptions{
		Card:     card.New("女", card.BorderFire, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)),
		Composer: card.NewComposer(fixedRand{}),
		Styles:   NewStyles(DarkTheme()),
		Source:   fixedRand{n: 8},
	})
}

func update(t *testing.T, m TestModel, msg tea.Msg) (TestModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	tm, ok := next.(TestModel)
	require.True(t, ok)
	return tm, cmd
}

func TestTestModel_Lifecycle(t *testing.T) {
	m := newModel()
	assert.Contains(t, m.View(), IdleHint)
	assert.Contains(t, m.View(), "未入籍")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	require.NotNil(t, cmd)
	assert.Equal(t, selector.Testing, m.Phase())
	assert.Contains(t, m.View(), TestingMessage)

	// A second press while testing is ignored.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, m.Runs())

	m, cmd = update(t, m, advanceMsg{d: selector.DefaultCommitDelay})
	require.NotNil(t, cmd, "reset is scheduled")
	assert.Equal(t, selector.Complete, m.Phase())
	view := m.View()
	assert.Contains(t, view, CompleteMessage)
	assert.Contains(t, view, "隐灵根 (隐暗)")
	assert.Contains(t, view, "先天道体")
	assert.Equal(t, "玄-20240315-1000", m.Sheet().Serial)

	m, cmd = update(t, m, advanceMsg{d: selector.DefaultResetDelay})
	assert.Nil(t, cmd)
	assert.Equal(t, selector.Idle, m.Phase())
	assert.Contains(t, m.View(), IdleHint)
	assert.Equal(t, "隐灵根 (隐暗)", m.Sheet().Card.Descriptor, "result persists after reset")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 2, m.Runs())
}

func TestTestModel_CycleBorder(t *testing.T) {
	m := newModel()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	assert.Equal(t, card.BorderEarth, m.Sheet().Card.Border)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	assert.Equal(t, card.BorderGold, m.Sheet().Card.Border)
}

func TestTestModel_QuitDisposes(t *testing.T) {
	m := newModel()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Empty(t, m.View())

	// Pending commit was abandoned with the machine.
	m, _ = update(t, m, advanceMsg{d: time.Hour})
	assert.Equal(t, selector.Testing, m.Phase())
}

// countingRand draws a different value on every call.
type countingRand struct{ n int }

func (r *countingRand) Float64() float64 { return 0.5 }
func (r *countingRand) IntN(n int) int {
	r.n++
	return r.n % n
}

func TestTestModel_BorderCycleKeepsSerial(t *testing.T) {
	m := NewTestModel(TestOptions{
		Card:     card.New("女", card.BorderFire, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)),
		Composer: card.NewComposer(&countingRand{}),
		Styles:   NewStyles(DarkTheme()),
		Source:   fixedRand{n: 8},
	})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = update(t, m, advanceMsg{d: selector.DefaultCommitDelay})
	shown := m.Sheet().Serial
	require.NotEqual(t, "未入籍", shown)

	for i := 0; i < len(card.Borders()); i++ {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
		assert.Equal(t, shown, m.Sheet().Serial, "border change %d", i+1)
		assert.Contains(t, RenderCard(m.Sheet(), NewStyles(DarkTheme())), shown)
	}
}

func TestTestModel_ShowsNotice(t *testing.T) {
	m := NewTestModel(TestOptions{
		Card:     card.New("女", card.BorderFire, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)),
		Composer: card.NewComposer(fixedRand{}),
		Styles:   NewStyles(DarkTheme()),
		Notice:   "名帖有误: name cannot be empty",
	})
	assert.Contains(t, m.View(), "name cannot be empty")
	assert.NotContains(t, newModel().View(), "名帖有误")
}
