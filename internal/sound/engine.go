// Package sound provides audio output for carillon: short synthesized note
// cues for the rating widget and playback of pre-rendered word clips.
// Playback goes through OS-native audio commands.
package sound

import (
	"context"
	"errors"
	"time"
)

// ErrNotStarted is returned when a cue is requested before the engine
// finished initializing.
var ErrNotStarted = errors.New("audio engine not started")

// ErrNoPlayer is returned when no OS audio command could be found.
var ErrNoPlayer = errors.New("no audio player command available")

// Engine produces short note cues for UI events.
//
// EnsureStarted is idempotent and must be called before every cue: platform
// audio policies may suspend output between interactions, and callers should
// not have to track whether initialization already happened.
type Engine interface {
	// EnsureStarted initializes the engine if needed. Safe to call repeatedly.
	EnsureStarted(ctx context.Context) error

	// PlayNotes plays the note sequence as a quick arpeggio, each note held
	// for dur. Blocks until playback finishes.
	PlayNotes(ctx context.Context, notes []Note, dur time.Duration) error

	// Ready reports whether initialization has completed successfully.
	Ready() bool
}

// Player plays a pre-rendered audio clip from a local file path.
type Player interface {
	// Play blocks until the clip finishes or ctx is canceled.
	Play(ctx context.Context, path string) error
}

// NopEngine is an Engine that reports ready and plays nothing. Used for
// --silent mode and tests.
type NopEngine struct{}

// EnsureStarted implements Engine.
func (NopEngine) EnsureStarted(context.Context) error { return nil }

// PlayNotes implements Engine.
func (NopEngine) PlayNotes(context.Context, []Note, time.Duration) error { return nil }

// Ready implements Engine.
func (NopEngine) Ready() bool { return true }

// NopPlayer is a Player that plays nothing.
type NopPlayer struct{}

// Play implements Player.
func (NopPlayer) Play(context.Context, string) error { return nil }
