// Package quiz implements the word-quiz sequencer: draw N distinct words
// from the pool, then play each word's audio clip strictly in order.
package quiz

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/carillon/internal/log"
	"github.com/zjrosen/carillon/internal/words"
)

const tracerName = "github.com/zjrosen/carillon/internal/quiz"

// WordPlayer plays the clip for a single word. Implemented by
// clips.Resolver.
type WordPlayer interface {
	PlayWord(ctx context.Context, word string) error
}

// WordResult records the outcome for one word of a run.
type WordResult struct {
	Word   string
	Played bool
	Err    error
}

// Result summarizes a completed run. A Result is always produced, whatever
// went wrong mid-run.
type Result struct {
	RunID     uuid.UUID
	Requested int
	Words     []WordResult
	Elapsed   time.Duration
}

// Played counts the words whose clip played successfully.
func (r Result) Played() int {
	n := 0
	for _, w := range r.Words {
		if w.Played {
			n++
		}
	}
	return n
}

// Progress reports per-word progress during a run. Index is the position
// within the drawn words.
type Progress struct {
	RunID uuid.UUID
	Index int
	Word  string
}

// Sequencer owns one quiz run at a time. It is not safe for concurrent
// runs; the UI event loop serializes triggers.
type Sequencer struct {
	source *words.Source
	player WordPlayer
	rng    *rand.Rand
	// onDrawn, when set, is called once per run with the drawn words,
	// before any playback. The UI displays the full list first.
	onDrawn func(runID uuid.UUID, drawn []string)
	// onProgress, when set, is called before each word's playback starts.
	onProgress func(Progress)
	now        func() time.Time
}

// SequencerOption configures a Sequencer.
type SequencerOption func(*Sequencer)

// WithDrawn installs a callback receiving each run's drawn words.
func WithDrawn(fn func(runID uuid.UUID, drawn []string)) SequencerOption {
	return func(s *Sequencer) { s.onDrawn = fn }
}

// WithProgress installs a per-word progress callback.
func WithProgress(fn func(Progress)) SequencerOption {
	return func(s *Sequencer) { s.onProgress = fn }
}

// WithRand overrides the random source (tests).
func WithRand(rng *rand.Rand) SequencerOption {
	return func(s *Sequencer) { s.rng = rng }
}

// NewSequencer wires a sequencer over the word source and clip player.
func NewSequencer(source *words.Source, player WordPlayer, opts ...SequencerOption) *Sequencer {
	s := &Sequencer{
		source: source,
		player: player,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one quiz run for n words. It always returns a Result, even
// when the pool fetch or playback goes wrong: every failure is recorded
// per word and logged, never propagated. A panic anywhere in the run is
// recovered so the caller's UI cleanup can still happen.
func (s *Sequencer) Run(ctx context.Context, n int) (result Result) {
	start := s.now()
	runID := uuid.New()
	result.RunID = runID
	result.Requested = n

	ctx, span := otel.Tracer(tracerName).Start(ctx, "quiz.run",
		trace.WithAttributes(
			attribute.String("quiz.run_id", runID.String()),
			attribute.Int("quiz.requested", n),
		))
	defer func() {
		if r := recover(); r != nil {
			log.Error(log.CatQuiz, "quiz run panicked",
				"run", runID, "panic", fmt.Sprint(r))
		}
		result.Elapsed = s.now().Sub(start)
		span.SetAttributes(attribute.Int("quiz.played", result.Played()))
		span.End()
		log.Info(log.CatQuiz, "quiz run finished",
			"run", runID, "requested", n,
			"drawn", len(result.Words), "played", result.Played(),
			"elapsed", result.Elapsed)
	}()

	pool := s.source.Pool(ctx)
	drawn := Draw(s.rng, pool, n)
	span.SetAttributes(attribute.Int("quiz.drawn", len(drawn)))
	log.Debug(log.CatQuiz, "words drawn", "run", runID, "words", drawn)
	if s.onDrawn != nil {
		s.onDrawn(runID, drawn)
	}

	result.Words = make([]WordResult, 0, len(drawn))
	for i, word := range drawn {
		if err := ctx.Err(); err != nil {
			result.Words = append(result.Words, WordResult{Word: word, Err: err})
			continue
		}

		if s.onProgress != nil {
			s.onProgress(Progress{RunID: runID, Index: i, Word: word})
		}

		err := s.playOne(ctx, word)
		result.Words = append(result.Words, WordResult{Word: word, Played: err == nil, Err: err})
		if err != nil {
			log.Warn(log.CatQuiz, "word skipped", "run", runID, "word", word, "error", err)
		}
	}
	return result
}

// playOne plays a single word inside its own span. Playback is strictly
// sequential: this does not return until the word concludes.
func (s *Sequencer) playOne(ctx context.Context, word string) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "quiz.word",
		trace.WithAttributes(attribute.String("quiz.word", word)))
	defer span.End()

	if err := s.player.PlayWord(ctx, word); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}
