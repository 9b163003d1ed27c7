// Package rating implements the rating-selection state machine: a single
// selected option with musical cue feedback and timed auto-clear.
package rating

import (
	"time"

	"github.com/zjrosen/carillon/internal/sound"
)

// OptionID identifies a rating option. The empty string means no selection.
type OptionID string

// Option is one entry on the rating scale. Options are immutable and
// defined at startup.
type Option struct {
	ID    OptionID
	Label string
	// Cue is the note sequence played when this option is selected.
	Cue []sound.Note
}

// Rating option identifiers.
const (
	OptionGreat OptionID = "great"
	OptionGood  OptionID = "good"
	OptionOkay  OptionID = "okay"
	OptionPoor  OptionID = "poor"
)

// DefaultOptions returns the standard four-step rating scale. Cues descend
// through the scale so each step is audibly distinct.
func DefaultOptions() []Option {
	return []Option{
		{ID: OptionGreat, Label: "Great", Cue: sound.MustNotes("C4", "E4", "G4", "C5")},
		{ID: OptionGood, Label: "Good", Cue: sound.MustNotes("C4", "E4", "G4")},
		{ID: OptionOkay, Label: "Okay", Cue: sound.MustNotes("C4", "E4")},
		{ID: OptionPoor, Label: "Poor", Cue: sound.MustNotes("C4", "Eb4")},
	}
}

// DeselectCue is the single low note played when a selection clears,
// whether by toggle, explicit clear, or auto-clear.
var DeselectCue = sound.MustNotes("C3")

const (
	// CueNoteDuration is how long each note of a selection cue is held.
	CueNoteDuration = 150 * time.Millisecond
	// DeselectCueDuration is shorter: the deselect cue is a quick tick.
	DeselectCueDuration = 80 * time.Millisecond
)
