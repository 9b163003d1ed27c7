// Package clips locates and plays pre-rendered audio clips for quiz words.
// Clip files are named after their word, but generators disagree about
// percent-encoding, so resolution tries several name variants in order.
package clips

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/zjrosen/carillon/internal/log"
	"github.com/zjrosen/carillon/internal/sound"
)

// ErrNoClip is returned when no name variant resolves to a playable file.
var ErrNoClip = errors.New("no clip found for word")

// Resolver finds and plays the clip for a word.
type Resolver struct {
	dir            string
	ext            string
	attemptTimeout time.Duration
	player         sound.Player
	// resolved caches word -> clip path so repeated runs skip the probe
	// sequence for words already located.
	resolved *cache.Cache
}

// NewResolver creates a Resolver over the clip directory. ext includes the
// dot (".mp3"). attemptTimeout bounds each per-variant attempt.
func NewResolver(dir, ext string, attemptTimeout time.Duration, player sound.Player) *Resolver {
	return &Resolver{
		dir:            dir,
		ext:            ext,
		attemptTimeout: attemptTimeout,
		player:         player,
		resolved:       cache.New(10*time.Minute, 30*time.Minute),
	}
}

// Candidates returns the clip filenames tried for word, in order: the
// literal word, the percent-encoded form, and the doubly-percent-encoded
// form. Clip generators have produced all three at various times.
func (r *Resolver) Candidates(word string) []string {
	once := url.PathEscape(word)
	twice := url.PathEscape(once)

	names := []string{word + r.ext, once + r.ext}
	if twice != once {
		names = append(names, twice+r.ext)
	}

	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, filepath.Join(r.dir, name))
	}
	return out
}

// Resolve returns the path of the first candidate clip that exists,
// bounding each probe by the attempt timeout. The result is cached.
func (r *Resolver) Resolve(ctx context.Context, word string) (string, error) {
	if cached, ok := r.resolved.Get(word); ok {
		return cached.(string), nil
	}

	for _, path := range r.Candidates(word) {
		attemptCtx, cancel := context.WithTimeout(ctx, r.attemptTimeout)
		ok := probe(attemptCtx, path)
		cancel()
		if ok {
			r.resolved.SetDefault(word, path)
			return path, nil
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: %q", ErrNoClip, word)
}

// PlayWord resolves and plays the clip for word. An attempt counts as
// successful once playback starts within the attempt timeout; completion
// is then awaited without a further bound. Playback errors advance to the
// next variant rather than aborting.
func (r *Resolver) PlayWord(ctx context.Context, word string) error {
	// Fast path: known-good clip from an earlier run.
	if cached, ok := r.resolved.Get(word); ok {
		if err := r.player.Play(ctx, cached.(string)); err == nil {
			return nil
		}
		// The cached clip stopped working (file moved, player error).
		// Drop it and walk the variants again.
		r.resolved.Delete(word)
		log.Debug(log.CatAudio, "cached clip failed, re-resolving", "word", word)
	}

	var lastErr error
	for _, path := range r.Candidates(word) {
		attemptCtx, cancel := context.WithTimeout(ctx, r.attemptTimeout)
		ok := probe(attemptCtx, path)
		cancel()
		if !ok {
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		}

		if err := r.player.Play(ctx, path); err != nil {
			lastErr = err
			log.Warn(log.CatAudio, "clip playback failed, trying next variant",
				"word", word, "path", path, "error", err)
			continue
		}

		r.resolved.SetDefault(word, path)
		return nil
	}

	if lastErr != nil {
		return fmt.Errorf("%w: %q: %w", ErrNoClip, word, lastErr)
	}
	return fmt.Errorf("%w: %q", ErrNoClip, word)
}

// probe reports whether path is an existing regular file. The context
// bound matters on network filesystems where stat can hang.
func probe(ctx context.Context, path string) bool {
	type statResult struct {
		info os.FileInfo
		err  error
	}
	ch := make(chan statResult, 1)
	go func() {
		info, err := os.Stat(path)
		ch <- statResult{info, err}
	}()

	select {
	case <-ctx.Done():
		return false
	case res := <-ch:
		return res.err == nil && res.info.Mode().IsRegular()
	}
}
