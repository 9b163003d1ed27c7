package clips

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/carillon/internal/sound"
)

// recordingPlayer records played paths and can fail selectively.
type recordingPlayer struct {
	played  []string
	failOn  map[string]bool
	failAll bool
}

func (p *recordingPlayer) Play(_ context.Context, path string) error {
	p.played = append(p.played, path)
	if p.failAll || p.failOn[filepath.Base(path)] {
		return errors.New("player exploded")
	}
	return nil
}

func writeClip(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("fake mp3"), 0o644))
	return path
}

func newTestResolver(dir string, player sound.Player) *Resolver {
	return NewResolver(dir, ".mp3", 1500*time.Millisecond, player)
}

func TestCandidates_OrderAndEncoding(t *testing.T) {
	r := newTestResolver("/clips", sound.NopPlayer{})

	got := r.Candidates("שלום עולם")

	require.Len(t, got, 3)
	assert.Equal(t, filepath.Join("/clips", "שלום עולם.mp3"), got[0])
	assert.Equal(t, filepath.Join("/clips", "%D7%A9%D7%9C%D7%95%D7%9D%20%D7%A2%D7%95%D7%9C%D7%9D.mp3"), got[1])
	assert.Equal(t, filepath.Join("/clips", "%25D7%25A9%25D7%259C%25D7%2595%25D7%259D%2520%25D7%25A2%25D7%2595%25D7%259C%25D7%259D.mp3"), got[2])
}

func TestCandidates_ASCIIWordCollapses(t *testing.T) {
	r := newTestResolver("/clips", sound.NopPlayer{})

	// Plain ASCII encodes to itself, so only one candidate remains.
	got := r.Candidates("hello")

	assert.Equal(t, []string{filepath.Join("/clips", "hello.mp3")}, got)
}

func TestResolve_LiteralFirst(t *testing.T) {
	dir := t.TempDir()
	literal := writeClip(t, dir, "héllo.mp3")
	writeClip(t, dir, "h%C3%A9llo.mp3")

	r := newTestResolver(dir, sound.NopPlayer{})
	path, err := r.Resolve(context.Background(), "héllo")

	require.NoError(t, err)
	assert.Equal(t, literal, path, "literal filename wins over encoded variants")
}

func TestResolve_FallsThroughToEncoded(t *testing.T) {
	dir := t.TempDir()
	encoded := writeClip(t, dir, "h%C3%A9llo.mp3")

	r := newTestResolver(dir, sound.NopPlayer{})
	path, err := r.Resolve(context.Background(), "héllo")

	require.NoError(t, err)
	assert.Equal(t, encoded, path)
}

func TestResolve_NoClip(t *testing.T) {
	r := newTestResolver(t.TempDir(), sound.NopPlayer{})

	_, err := r.Resolve(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNoClip)
}

func TestPlayWord_PlaysResolvedClip(t *testing.T) {
	dir := t.TempDir()
	path := writeClip(t, dir, "apple.mp3")
	player := &recordingPlayer{}

	r := newTestResolver(dir, player)
	require.NoError(t, r.PlayWord(context.Background(), "apple"))

	assert.Equal(t, []string{path}, player.played)
}

func TestPlayWord_PlaybackFailureAdvancesVariant(t *testing.T) {
	dir := t.TempDir()
	writeClip(t, dir, "héllo.mp3")
	good := writeClip(t, dir, "h%C3%A9llo.mp3")
	player := &recordingPlayer{failOn: map[string]bool{"héllo.mp3": true}}

	r := newTestResolver(dir, player)
	require.NoError(t, r.PlayWord(context.Background(), "héllo"))

	require.Len(t, player.played, 2)
	assert.Equal(t, good, player.played[1])
}

func TestPlayWord_AllVariantsFail(t *testing.T) {
	dir := t.TempDir()
	writeClip(t, dir, "word.mp3")
	player := &recordingPlayer{failAll: true}

	r := newTestResolver(dir, player)
	err := r.PlayWord(context.Background(), "word")

	assert.ErrorIs(t, err, ErrNoClip)
}

func TestPlayWord_CachesResolution(t *testing.T) {
	dir := t.TempDir()
	path := writeClip(t, dir, "apple.mp3")
	player := &recordingPlayer{}
	r := newTestResolver(dir, player)

	require.NoError(t, r.PlayWord(context.Background(), "apple"))

	// Remove the file; the cached path is still handed straight to the
	// player without re-probing.
	require.NoError(t, os.Remove(path))
	require.NoError(t, r.PlayWord(context.Background(), "apple"))

	assert.Equal(t, []string{path, path}, player.played)
}

func TestPlayWord_StaleCacheReresolves(t *testing.T) {
	dir := t.TempDir()
	writeClip(t, dir, "héllo.mp3")
	encoded := writeClip(t, dir, "h%C3%A9llo.mp3")

	player := &recordingPlayer{}
	r := newTestResolver(dir, player)
	require.NoError(t, r.PlayWord(context.Background(), "héllo"))

	// First resolution played the literal file. Make it fail from now on:
	// the resolver must drop the cache entry and find the encoded variant.
	player.failOn = map[string]bool{"héllo.mp3": true}
	require.NoError(t, r.PlayWord(context.Background(), "héllo"))

	assert.Equal(t, encoded, player.played[len(player.played)-1])
}

func TestPlayWord_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeClip(t, dir, "apple.mp3")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newTestResolver(dir, &recordingPlayer{failAll: true})
	err := r.PlayWord(ctx, "apple")

	assert.Error(t, err)
}
