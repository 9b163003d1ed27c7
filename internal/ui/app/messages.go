package app

import (
	"github.com/google/uuid"

	"github.com/zjrosen/carillon/internal/quiz"
)

// audioReadyMsg reports the outcome of audio engine initialization.
type audioReadyMsg struct{ err error }

// cuePlayedMsg reports a cue playback result. Failures are logged and
// swallowed; they never affect selection state.
type cuePlayedMsg struct{ err error }

// autoClearMsg is delivered when a scheduled auto-clear timer fires. Gen
// identifies the selection it was scheduled for; stale generations are
// ignored by the machine.
type autoClearMsg struct{ gen uint64 }

// quizEvent is a mid-run notification from the sequencer goroutine. Each
// event carries its run ID so events straggling in after a run completes
// can be dropped.
type quizEvent interface {
	isQuizEvent()
	run() uuid.UUID
}

// drawnEvent carries the full drawn word list, delivered before playback.
type drawnEvent struct {
	runID uuid.UUID
	words []string
}

// progressEvent marks the word whose clip is about to play.
type progressEvent struct {
	runID uuid.UUID
	index int
	word  string
}

func (e drawnEvent) run() uuid.UUID    { return e.runID }
func (e progressEvent) run() uuid.UUID { return e.runID }

func (drawnEvent) isQuizEvent()    {}
func (progressEvent) isQuizEvent() {}

// quizEventMsg wraps a quizEvent for the update loop.
type quizEventMsg struct{ event quizEvent }

// quizDoneMsg is delivered when a run finishes, however it went.
type quizDoneMsg struct{ result quiz.Result }
