package rating

import (
	"time"

	"github.com/zjrosen/carillon/internal/sound"
)

// State is the full selection state. It is a value type: Apply returns the
// next state rather than mutating, so there are no ambient globals and
// drivers (the TUI event loop, tests) own the single live copy.
type State struct {
	// Selected is the active option, or "" when idle.
	Selected OptionID

	// ClearGen is the generation of the pending auto-clear, 0 when none is
	// scheduled. A timer firing with a stale generation is ignored, which
	// is what makes cancellation safe to express as "supersede the handle".
	ClearGen uint64

	// AudioReady gates cue-playing transitions. While false, Select is
	// rejected outright: no state change and no effects.
	AudioReady bool

	// gen is the monotonic source for ClearGen values.
	gen uint64
}

// Idle reports whether no option is selected.
func (s State) Idle() bool { return s.Selected == "" }

// Action is an input to Apply.
type Action interface{ isAction() }

// Select is a tap on a rating option. Selecting the already-selected
// option toggles it off.
type Select struct{ ID OptionID }

// Clear is an explicit deselect. No-op while idle.
type Clear struct{}

// AutoClearFired is delivered by the driver when a scheduled auto-clear
// timer fires. Gen must match the generation the timer was scheduled with.
type AutoClearFired struct{ Gen uint64 }

// AudioStateChanged updates the AudioReady gate.
type AudioStateChanged struct{ Ready bool }

func (Select) isAction()            {}
func (Clear) isAction()             {}
func (AutoClearFired) isAction()    {}
func (AudioStateChanged) isAction() {}

// Effect is a side effect the driver must carry out, in order.
type Effect interface{ isEffect() }

// PlayCue asks the driver to play a note sequence on the audio engine.
type PlayCue struct {
	Notes []sound.Note
	Dur   time.Duration
}

// ScheduleClear asks the driver to arrange an AutoClearFired{Gen} action
// after After elapses.
type ScheduleClear struct {
	Gen   uint64
	After time.Duration
}

// CancelClear tells the driver the timer for Gen is dead. Drivers with
// real cancellable handles should stop the timer; drivers relying on
// generation staleness may ignore this.
type CancelClear struct{ Gen uint64 }

func (PlayCue) isEffect()       {}
func (ScheduleClear) isEffect() {}
func (CancelClear) isEffect()   {}

// Machine holds the immutable option set and the auto-clear delay.
type Machine struct {
	options map[OptionID]Option
	// order preserves the startup declaration order for display.
	order     []OptionID
	autoClear time.Duration
}

// NewMachine builds a machine over the given options. delay is the
// auto-clear duration.
func NewMachine(options []Option, delay time.Duration) *Machine {
	m := &Machine{
		options:   make(map[OptionID]Option, len(options)),
		order:     make([]OptionID, 0, len(options)),
		autoClear: delay,
	}
	for _, opt := range options {
		m.options[opt.ID] = opt
		m.order = append(m.order, opt.ID)
	}
	return m
}

// Options returns the option set in declaration order.
func (m *Machine) Options() []Option {
	out := make([]Option, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.options[id])
	}
	return out
}

// Option looks up a single option by ID.
func (m *Machine) Option(id OptionID) (Option, bool) {
	opt, ok := m.options[id]
	return opt, ok
}

// Apply is the transition function. It returns the next state and the
// ordered effects the driver must execute. Apply never blocks and never
// touches the audio engine itself; cue failures therefore cannot corrupt
// the selection or timer bookkeeping.
func (m *Machine) Apply(s State, a Action) (State, []Effect) {
	switch act := a.(type) {
	case AudioStateChanged:
		s.AudioReady = act.Ready
		return s, nil

	case Select:
		opt, ok := m.options[act.ID]
		if !ok {
			return s, nil
		}
		// Cue-playing transitions are rejected while audio is down.
		if !s.AudioReady {
			return s, nil
		}

		if s.Selected == act.ID {
			// Toggle-off shortcut.
			return m.deselect(s)
		}

		var effects []Effect
		if s.ClearGen != 0 {
			effects = append(effects, CancelClear{Gen: s.ClearGen})
		}

		s.Selected = act.ID
		s.gen++
		s.ClearGen = s.gen
		effects = append(effects,
			PlayCue{Notes: opt.Cue, Dur: CueNoteDuration},
			ScheduleClear{Gen: s.ClearGen, After: m.autoClear},
		)
		return s, effects

	case Clear:
		if s.Idle() {
			return s, nil
		}
		return m.deselect(s)

	case AutoClearFired:
		if s.Idle() || act.Gen == 0 || act.Gen != s.ClearGen {
			// Stale timer from a superseded selection.
			return s, nil
		}
		s.Selected = ""
		s.ClearGen = 0
		return s, []Effect{PlayCue{Notes: DeselectCue, Dur: DeselectCueDuration}}
	}

	return s, nil
}

// deselect cancels any pending auto-clear, goes idle and emits the
// deselect cue.
func (m *Machine) deselect(s State) (State, []Effect) {
	var effects []Effect
	if s.ClearGen != 0 {
		effects = append(effects, CancelClear{Gen: s.ClearGen})
	}
	s.Selected = ""
	s.ClearGen = 0
	effects = append(effects, PlayCue{Notes: DeselectCue, Dur: DeselectCueDuration})
	return s, effects
}
