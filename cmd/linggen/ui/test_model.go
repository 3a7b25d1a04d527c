package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"linggen/internal/card"
	"linggen/internal/logging"
	"linggen/internal/selector"
)

// Status lines shown while a test runs.
const (
	TestingMessage  = "灵力汇聚中，请稍候..."
	CompleteMessage = "检测完成！"
	IdleHint        = "按 空格 或 回车 开始测灵"
)

// advanceMsg moves the selector's virtual clock forward by d.
type advanceMsg struct {
	d time.Duration
}

// clock feeds the machine's scheduled transitions back into the bubbletea
// loop: the machine schedules on a ManualScheduler, Update advances it when
// a tea.Tick fires, and transitions are queued for Update to apply. Every
// state change therefore happens on the program goroutine.
type clock struct {
	sched  *selector.ManualScheduler
	queued []selector.Transition
}

func (c *clock) next() tea.Cmd {
	d, ok := c.sched.Next()
	if !ok {
		return nil
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return advanceMsg{d: d} })
}

func (c *clock) drain() []selector.Transition {
	out := c.queued
	c.queued = nil
	return out
}

// TestModel is the interactive aptitude test.
type TestModel struct {
	machine  *selector.Machine
	clock    *clock
	composer *card.Composer
	sheet    card.Sheet
	spinner  spinner.Model
	styles   Styles
	phase    selector.Phase
	runs     int
	notice   string
	width    int
	quitting bool
	logger   *zap.Logger
}

// TestOptions configures NewTestModel.
type TestOptions struct {
	Card        card.Card
	Composer    *card.Composer
	Styles      Styles
	CommitDelay time.Duration
	ResetDelay  time.Duration
	// Source picks table rows; nil uses a random source.
	Source selector.Source
	// Notice is shown under the card, e.g. why the card form is incomplete.
	Notice string
}

// NewTestModel builds the model around a fresh selector machine.
func NewTestModel(opts TestOptions) TestModel {
	if opts.Composer == nil {
		opts.Composer = card.NewComposer(nil)
	}
	if opts.CommitDelay <= 0 {
		opts.CommitDelay = selector.DefaultCommitDelay
	}
	if opts.ResetDelay <= 0 {
		opts.ResetDelay = selector.DefaultResetDelay
	}

	clk := &clock{sched: selector.NewManualScheduler()}
	machineOpts := []selector.Option{
		selector.WithScheduler(clk.sched),
		selector.WithDelays(opts.CommitDelay, opts.ResetDelay),
	}
	if opts.Source != nil {
		machineOpts = append(machineOpts, selector.WithSource(opts.Source))
	}
	machine := selector.New(machineOpts...)
	machine.Subscribe(func(t selector.Transition) {
		clk.queued = append(clk.queued, t)
	})

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = opts.Styles.Spinner

	return TestModel{
		machine:  machine,
		clock:    clk,
		composer: opts.Composer,
		sheet:    opts.Composer.Compose(opts.Card),
		spinner:  sp,
		styles:   opts.Styles,
		notice:   opts.Notice,
		logger:   logging.Get(logging.CategoryUI),
	}
}

func (m TestModel) Init() tea.Cmd {
	return nil
}

func (m TestModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			m.machine.Dispose()
			return m, tea.Quit
		case " ", "enter":
			if !m.machine.Start() {
				return m, nil
			}
			m.runs++
			m.apply()
			return m, tea.Batch(m.spinner.Tick, m.clock.next())
		case "b":
			c := m.sheet.Card
			c.Border = nextBorder(c.Border)
			m.sheet = m.composer.Recompose(m.sheet, c)
			return m, nil
		}

	case advanceMsg:
		m.clock.sched.Advance(msg.d)
		m.apply()
		return m, m.clock.next()

	case spinner.TickMsg:
		if m.phase == selector.Testing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// apply folds queued transitions into the model.
func (m *TestModel) apply() {
	for _, t := range m.clock.drain() {
		logging.Selector("phase %s -> %s", t.From, t.To)
		m.phase = t.To
		if t.To == selector.Complete && t.HasResult {
			m.sheet = m.composer.Apply(m.sheet, t.Result)
			m.logger.Info("result shown",
				zap.String("descriptor", m.sheet.Card.Descriptor),
				zap.String("serial", m.sheet.Serial))
		}
	}
}

func (m TestModel) View() string {
	if m.quitting {
		return ""
	}

	header := m.styles.Header.Render("测灵台")

	var status string
	switch m.phase {
	case selector.Testing:
		status = m.styles.Status.Render(m.spinner.View() + " " + TestingMessage)
	case selector.Complete:
		status = m.styles.Success.Render(CompleteMessage)
	default:
		status = m.styles.Footer.Render(IdleHint)
	}

	footer := m.styles.Footer.Render("空格/回车 测灵 · b 换边框 · q 退出")

	parts := []string{header, "", RenderCard(m.sheet, m.styles), ""}
	if m.notice != "" {
		parts = append(parts, m.styles.Warning.Render(m.notice))
	}
	parts = append(parts, status, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Phase returns the phase the view currently reflects.
func (m TestModel) Phase() selector.Phase { return m.phase }

// Sheet returns the card as currently shown.
func (m TestModel) Sheet() card.Sheet { return m.sheet }

// Runs returns how many tests have been started.
func (m TestModel) Runs() int { return m.runs }

func nextBorder(b card.BorderStyle) card.BorderStyle {
	all := card.Borders()
	for i, s := range all {
		if s == b {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// RunTest starts the interactive test program and returns the sheet it
// ended on.
func RunTest(opts TestOptions) (card.Sheet, error) {
	model := NewTestModel(opts)
	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return card.Sheet{}, err
	}
	if m, ok := final.(TestModel); ok {
		m.machine.Dispose()
		return m.sheet, nil
	}
	return model.sheet, nil
}
