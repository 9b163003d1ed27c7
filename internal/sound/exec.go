package sound

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/zjrosen/carillon/internal/log"
)

// playerCommand is an OS audio command candidate. Args come before the
// file path argument.
type playerCommand struct {
	bin  string
	args []string
}

// playerCandidates are probed in order. afplay covers macOS; the rest are
// common on Linux. ffplay handles both wav and mp3.
var playerCandidates = []playerCommand{
	{bin: "afplay"},
	{bin: "ffplay", args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
	{bin: "paplay"},
	{bin: "aplay", args: []string{"-q"}},
	{bin: "mpg123", args: []string{"-q"}},
}

// ExecEngine plays cues and clips by shelling out to an OS audio command.
// Initialization (locating the command) happens at most once per process;
// EnsureStarted after that is a cheap no-op, matching platform audio
// policies that require a fresh start gesture.
type ExecEngine struct {
	once    sync.Once
	player  playerCommand
	initErr error
}

// NewExecEngine returns an engine backed by OS-native audio commands.
// No probing happens until EnsureStarted.
func NewExecEngine() *ExecEngine {
	return &ExecEngine{}
}

// EnsureStarted locates an audio command. Idempotent; the first result is
// retained for the process lifetime.
func (e *ExecEngine) EnsureStarted(ctx context.Context) error {
	e.once.Do(func() {
		for _, cand := range playerCandidates {
			if _, err := exec.LookPath(cand.bin); err == nil {
				e.player = cand
				log.Debug(log.CatAudio, "audio player selected", "bin", cand.bin)
				return
			}
		}
		e.initErr = ErrNoPlayer
		log.Warn(log.CatAudio, "no audio player command found, cues disabled")
	})
	if e.initErr != nil {
		return e.initErr
	}
	return ctx.Err()
}

// Ready reports whether a player command has been located.
func (e *ExecEngine) Ready() bool {
	return e.player.bin != "" && e.initErr == nil
}

// PlayNotes synthesizes the notes to a temporary WAV file and plays it.
func (e *ExecEngine) PlayNotes(ctx context.Context, notes []Note, dur time.Duration) error {
	if err := e.EnsureStarted(ctx); err != nil {
		return err
	}
	if len(notes) == 0 {
		return nil
	}

	data, err := renderNotes(notes, dur)
	if err != nil {
		return fmt.Errorf("rendering notes: %w", err)
	}

	f, err := os.CreateTemp("", "carillon-cue-*.wav")
	if err != nil {
		return fmt.Errorf("creating cue file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing cue file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing cue file: %w", err)
	}

	return e.Play(ctx, f.Name())
}

// Play runs the selected audio command on path, blocking until it exits.
func (e *ExecEngine) Play(ctx context.Context, path string) error {
	if err := e.EnsureStarted(ctx); err != nil {
		return err
	}

	args := append(append([]string{}, e.player.args...), path)
	cmd := exec.CommandContext(ctx, e.player.bin, args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", e.player.bin, path, err)
	}
	return nil
}
