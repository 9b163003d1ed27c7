package rating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func testMachine() *Machine {
	return NewMachine(DefaultOptions(), 500*time.Millisecond)
}

// readyState returns an idle state with the audio gate open.
func readyState() State {
	return State{AudioReady: true}
}

func cues(effects []Effect) []PlayCue {
	var out []PlayCue
	for _, e := range effects {
		if c, ok := e.(PlayCue); ok {
			out = append(out, c)
		}
	}
	return out
}

func isDeselectCue(c PlayCue) bool {
	return len(c.Notes) == 1 && c.Notes[0] == DeselectCue[0]
}

func scheduled(effects []Effect) (ScheduleClear, bool) {
	for _, e := range effects {
		if sc, ok := e.(ScheduleClear); ok {
			return sc, true
		}
	}
	return ScheduleClear{}, false
}

func TestApply_SelectFromIdle(t *testing.T) {
	m := testMachine()

	s, effects := m.Apply(readyState(), Select{ID: OptionGood})

	assert.Equal(t, OptionGood, s.Selected)
	require.Len(t, cues(effects), 1)
	assert.Equal(t, m.options[OptionGood].Cue, cues(effects)[0].Notes)

	sc, ok := scheduled(effects)
	require.True(t, ok, "expected an auto-clear to be scheduled")
	assert.Equal(t, s.ClearGen, sc.Gen)
	assert.Equal(t, 500*time.Millisecond, sc.After)
}

func TestApply_SelectSwitchesOption(t *testing.T) {
	m := testMachine()
	s, _ := m.Apply(readyState(), Select{ID: OptionGood})
	firstGen := s.ClearGen

	s, effects := m.Apply(s, Select{ID: OptionPoor})

	assert.Equal(t, OptionPoor, s.Selected)
	assert.NotEqual(t, firstGen, s.ClearGen, "new selection must supersede the pending timer")

	// Old timer canceled before the new one is scheduled.
	require.IsType(t, CancelClear{}, effects[0])
	assert.Equal(t, firstGen, effects[0].(CancelClear).Gen)
}

func TestApply_SelectSameTogglesOff(t *testing.T) {
	m := testMachine()
	s, _ := m.Apply(readyState(), Select{ID: OptionOkay})

	s, effects := m.Apply(s, Select{ID: OptionOkay})

	assert.True(t, s.Idle())
	assert.Zero(t, s.ClearGen)
	require.Len(t, cues(effects), 1)
	assert.True(t, isDeselectCue(cues(effects)[0]))
	_, hasSchedule := scheduled(effects)
	assert.False(t, hasSchedule, "toggle-off must not schedule a new timer")
}

// Selecting the selected option and calling Clear are the same transition.
func TestApply_ToggleOffEquivalentToClear(t *testing.T) {
	m := testMachine()
	base, _ := m.Apply(readyState(), Select{ID: OptionGreat})

	viaToggle, toggleEffects := m.Apply(base, Select{ID: OptionGreat})
	viaClear, clearEffects := m.Apply(base, Clear{})

	assert.Equal(t, viaClear, viaToggle)
	assert.Equal(t, clearEffects, toggleEffects)
}

func TestApply_ClearWhileIdleIsNoop(t *testing.T) {
	m := testMachine()

	s, effects := m.Apply(readyState(), Clear{})

	assert.True(t, s.Idle())
	assert.Empty(t, effects)
}

func TestApply_AutoClearFires(t *testing.T) {
	m := testMachine()
	s, effects := m.Apply(readyState(), Select{ID: OptionGood})
	sc, _ := scheduled(effects)

	s, effects = m.Apply(s, AutoClearFired{Gen: sc.Gen})

	assert.True(t, s.Idle())
	assert.Zero(t, s.ClearGen)
	require.Len(t, cues(effects), 1)
	assert.True(t, isDeselectCue(cues(effects)[0]))
}

func TestApply_StaleAutoClearIgnored(t *testing.T) {
	m := testMachine()
	s, effects := m.Apply(readyState(), Select{ID: OptionGood})
	staleSC, _ := scheduled(effects)

	// A new selection supersedes the first timer.
	s, _ = m.Apply(s, Select{ID: OptionPoor})

	next, effects := m.Apply(s, AutoClearFired{Gen: staleSC.Gen})

	assert.Equal(t, s, next, "stale timer must not change state")
	assert.Empty(t, effects)
}

func TestApply_AutoClearWhileIdleIgnored(t *testing.T) {
	m := testMachine()

	s, effects := m.Apply(readyState(), AutoClearFired{Gen: 1})

	assert.True(t, s.Idle())
	assert.Empty(t, effects)
}

func TestApply_SelectRejectedWhileAudioNotReady(t *testing.T) {
	m := testMachine()

	s, effects := m.Apply(State{}, Select{ID: OptionGood})

	assert.True(t, s.Idle(), "gated select must not change state")
	assert.Empty(t, effects, "gated select must produce no effects")
}

func TestApply_AudioStateChanged(t *testing.T) {
	m := testMachine()

	s, effects := m.Apply(State{}, AudioStateChanged{Ready: true})
	assert.True(t, s.AudioReady)
	assert.Empty(t, effects)

	s, _ = m.Apply(s, Select{ID: OptionGood})
	assert.Equal(t, OptionGood, s.Selected)
}

func TestApply_UnknownOptionIgnored(t *testing.T) {
	m := testMachine()

	s, effects := m.Apply(readyState(), Select{ID: "nonsense"})

	assert.True(t, s.Idle())
	assert.Empty(t, effects)
}

func TestMachine_Options(t *testing.T) {
	m := testMachine()

	opts := m.Options()
	require.Len(t, opts, 4)
	assert.Equal(t, OptionGreat, opts[0].ID, "declaration order preserved")

	opt, ok := m.Option(OptionOkay)
	require.True(t, ok)
	assert.Equal(t, "Okay", opt.Label)

	_, ok = m.Option("missing")
	assert.False(t, ok)
}

// driver simulates an event loop over the machine: it tracks live timers
// and can fire or drop them, mirroring how the TUI layer executes effects.
type driver struct {
	m       *Machine
	s       State
	pending map[uint64]bool
	played  []PlayCue
}

func newDriver(m *Machine) *driver {
	return &driver{m: m, s: readyState(), pending: make(map[uint64]bool)}
}

func (d *driver) dispatch(a Action) {
	next, effects := d.m.Apply(d.s, a)
	d.s = next
	for _, e := range effects {
		switch e := e.(type) {
		case PlayCue:
			d.played = append(d.played, e)
		case ScheduleClear:
			d.pending[e.Gen] = true
		case CancelClear:
			delete(d.pending, e.Gen)
		}
	}
}

// fireAll fires every live timer, as if time passed with no interaction.
func (d *driver) fireAll() {
	for gen := range d.pending {
		delete(d.pending, gen)
		d.dispatch(AutoClearFired{Gen: gen})
	}
}

func TestDriver_AutoClearFiresExactlyOnce(t *testing.T) {
	d := newDriver(testMachine())

	d.dispatch(Select{ID: OptionGood})
	require.Len(t, d.pending, 1)

	d.fireAll()
	assert.True(t, d.s.Idle())

	// Nothing left to fire; state stays idle with no extra cues.
	playedBefore := len(d.played)
	d.fireAll()
	assert.Len(t, d.played, playedBefore)
}

// At most one option is ever selected, for any action sequence.
func TestProperty_AtMostOneSelection(t *testing.T) {
	ids := []OptionID{OptionGreat, OptionGood, OptionOkay, OptionPoor}

	rapid.Check(t, func(t *rapid.T) {
		d := newDriver(testMachine())
		steps := rapid.IntRange(1, 60).Draw(t, "steps")

		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 3).Draw(t, "kind") {
			case 0:
				id := rapid.SampledFrom(ids).Draw(t, "id")
				d.dispatch(Select{ID: id})
			case 1:
				d.dispatch(Clear{})
			case 2:
				d.fireAll()
			case 3:
				// A stale or bogus timer firing must be harmless.
				gen := rapid.Uint64Range(0, 100).Draw(t, "gen")
				d.dispatch(AutoClearFired{Gen: gen})
			}

			if d.s.Idle() {
				if d.s.ClearGen != 0 {
					t.Fatalf("idle state with live timer gen %d", d.s.ClearGen)
				}
			} else {
				if _, ok := d.m.Option(d.s.Selected); !ok {
					t.Fatalf("selected unknown option %q", d.s.Selected)
				}
			}
			if len(d.pending) > 1 {
				t.Fatalf("%d timers pending, expected at most 1", len(d.pending))
			}
		}
	})
}

// Rapid alternating selects never produce two deselect cues for one
// selection: every deselect cue corresponds to exactly one earlier
// transition out of idle.
func TestProperty_OneDeselectCuePerSelection(t *testing.T) {
	ids := []OptionID{OptionGreat, OptionGood, OptionOkay, OptionPoor}

	rapid.Check(t, func(t *rapid.T) {
		d := newDriver(testMachine())
		steps := rapid.IntRange(1, 80).Draw(t, "steps")

		entries := 0 // idle -> selected transitions
		for i := 0; i < steps; i++ {
			wasIdle := d.s.Idle()
			if rapid.Bool().Draw(t, "fire") {
				d.fireAll()
			} else {
				d.dispatch(Select{ID: rapid.SampledFrom(ids).Draw(t, "id")})
			}
			if wasIdle && !d.s.Idle() {
				entries++
			}
		}

		deselects := 0
		for _, c := range d.played {
			if isDeselectCue(c) {
				deselects++
			}
		}

		want := entries
		if !d.s.Idle() {
			// The live selection hasn't produced its deselect cue yet.
			want--
		}
		if deselects != want {
			t.Fatalf("%d deselect cues for %d completed selections", deselects, want)
		}
	})
}
