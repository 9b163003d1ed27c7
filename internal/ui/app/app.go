// Package app is the root bubbletea model: the rating widget with cue
// feedback on the left, the word quiz on the right.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/carillon/internal/config"
	"github.com/zjrosen/carillon/internal/log"
	"github.com/zjrosen/carillon/internal/quiz"
	"github.com/zjrosen/carillon/internal/rating"
	"github.com/zjrosen/carillon/internal/sound"
	"github.com/zjrosen/carillon/internal/words"
)

// Model is the root application model.
type Model struct {
	cfg     config.Config
	machine *rating.Machine
	state   rating.State
	engine  sound.Engine

	// runQuiz executes one quiz run; indirection so tests can stub it.
	runQuiz func(ctx context.Context, n int) quiz.Result
	// events receives drawn/progress notifications from the run goroutine.
	events chan quizEvent

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	zones   *zone.Manager

	// Quiz view state. The trigger controls are hidden while speaking.
	quizWords   []string
	speaking    bool
	speakingIdx int
	lastResult  *quiz.Result
	// finishedRun is the ID of the most recently completed run; its
	// straggler events are dropped. Runs are serial, so one ID suffices.
	finishedRun uuid.UUID

	audioErr error
	showHelp bool
	width    int
	height   int
}

// New wires the root model over the word source and clip player. The
// sequencer is built here so its callbacks feed the model's event channel.
func New(cfg config.Config, machine *rating.Machine, engine sound.Engine, source *words.Source, player quiz.WordPlayer) Model {
	events := make(chan quizEvent, 16)
	seq := quiz.NewSequencer(source, player,
		quiz.WithDrawn(func(runID uuid.UUID, drawn []string) {
			events <- drawnEvent{runID: runID, words: append([]string(nil), drawn...)}
		}),
		quiz.WithProgress(func(p quiz.Progress) {
			events <- progressEvent{runID: p.RunID, index: p.Index, word: p.Word}
		}),
	)

	labels := make([]string, 0, len(machine.Options()))
	for _, opt := range machine.Options() {
		labels = append(labels, opt.Label)
	}

	return Model{
		cfg:         cfg,
		machine:     machine,
		engine:      engine,
		runQuiz:     seq.Run,
		events:      events,
		keys:        newKeyMap(labels, cfg.UI.QuizCounts),
		help:        help.New(),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		zones:       zone.New(),
		speakingIdx: -1,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		m.initAudioCmd(),
		m.listenEventsCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case audioReadyMsg:
		if msg.err != nil {
			m.audioErr = msg.err
			log.Warn(log.CatUI, "audio engine unavailable, cues disabled", "error", msg.err)
			return m, nil
		}
		m.audioErr = nil
		var cmds []tea.Cmd
		m, cmds = m.dispatch(rating.AudioStateChanged{Ready: true})
		return m, tea.Batch(cmds...)

	case cuePlayedMsg:
		if msg.err != nil {
			// Cue failures never touch selection or timer bookkeeping.
			log.Warn(log.CatUI, "cue playback failed", "error", msg.err)
		}
		return m, nil

	case autoClearMsg:
		var cmds []tea.Cmd
		m, cmds = m.dispatch(rating.AutoClearFired{Gen: msg.gen})
		return m, tea.Batch(cmds...)

	case quizEventMsg:
		if !m.speaking || msg.event.run() == m.finishedRun {
			return m, m.listenEventsCmd()
		}
		switch ev := msg.event.(type) {
		case drawnEvent:
			m.quizWords = ev.words
			m.speakingIdx = -1
		case progressEvent:
			m.speakingIdx = ev.index
		}
		return m, m.listenEventsCmd()

	case quizDoneMsg:
		// Guaranteed cleanup: whatever happened mid-run, the word list
		// clears and the trigger controls come back.
		m.speaking = false
		m.speakingIdx = -1
		m.quizWords = nil
		result := msg.result
		m.lastResult = &result
		m.finishedRun = result.RunID
		return m, nil

	case spinner.TickMsg:
		if !m.speaking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		var cmds []tea.Cmd
		m, cmds = m.dispatch(rating.Clear{})
		return m, tea.Batch(cmds...)
	}

	for i, binding := range m.keys.Ratings {
		if key.Matches(msg, binding) {
			return m.selectOption(i)
		}
	}

	for i, binding := range m.keys.Quiz {
		if key.Matches(msg, binding) {
			return m.triggerQuiz(i)
		}
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	for i, opt := range m.machine.Options() {
		if m.zones.Get(optionZoneID(opt.ID)).InBounds(msg) {
			return m.selectOption(i)
		}
	}
	for i := range m.cfg.UI.QuizCounts {
		if m.zones.Get(quizZoneID(i)).InBounds(msg) {
			return m.triggerQuiz(i)
		}
	}
	return m, nil
}

// selectOption dispatches a Select for the i-th rating option.
func (m Model) selectOption(i int) (tea.Model, tea.Cmd) {
	opts := m.machine.Options()
	if i < 0 || i >= len(opts) {
		return m, nil
	}
	var cmds []tea.Cmd
	m, cmds = m.dispatch(rating.Select{ID: opts[i].ID})
	return m, tea.Batch(cmds...)
}

// triggerQuiz starts a run for the i-th configured count. Ignored while a
// run is already speaking: the controls are hidden then.
func (m Model) triggerQuiz(i int) (tea.Model, tea.Cmd) {
	if m.speaking || i < 0 || i >= len(m.cfg.UI.QuizCounts) {
		return m, nil
	}
	n := m.cfg.UI.QuizCounts[i]

	// Hide the controls and reset view state immediately; the drawn
	// words arrive as an event.
	m.speaking = true
	m.speakingIdx = -1
	m.quizWords = nil

	run := m.runQuiz
	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			return quizDoneMsg{result: run(context.Background(), n)}
		},
	)
}

// dispatch feeds an action through the rating machine and converts the
// effects into commands.
func (m Model) dispatch(action rating.Action) (Model, []tea.Cmd) {
	next, effects := m.machine.Apply(m.state, action)
	m.state = next

	var cmds []tea.Cmd
	for _, effect := range effects {
		switch e := effect.(type) {
		case rating.PlayCue:
			cmds = append(cmds, m.playCueCmd(e.Notes, e.Dur))
		case rating.ScheduleClear:
			gen := e.Gen
			cmds = append(cmds, tea.Tick(e.After, func(time.Time) tea.Msg {
				return autoClearMsg{gen: gen}
			}))
		case rating.CancelClear:
			// tea.Tick timers can't be stopped; the machine ignores
			// stale generations when they fire.
		}
	}
	return m, cmds
}

func (m Model) playCueCmd(notes []sound.Note, dur time.Duration) tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := engine.EnsureStarted(ctx); err != nil {
			return cuePlayedMsg{err: err}
		}
		return cuePlayedMsg{err: engine.PlayNotes(ctx, notes, dur)}
	}
}

func (m Model) initAudioCmd() tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return audioReadyMsg{err: engine.EnsureStarted(ctx)}
	}
}

// listenEventsCmd waits for the next sequencer event. Reissued after each
// event so exactly one listener is outstanding.
func (m Model) listenEventsCmd() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return quizEventMsg{event: ev}
	}
}

func optionZoneID(id rating.OptionID) string { return "opt:" + string(id) }

func quizZoneID(i int) string { return fmt.Sprintf("quiz:%d", i) }
