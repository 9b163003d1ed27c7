package tts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ttsServer(t *testing.T, handler func(text string, w http.ResponseWriter)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler(r.URL.Query().Get("text"), w)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSynthesize(t *testing.T) {
	var gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLang = r.URL.Query().Get("lang")
		w.Write([]byte("mp3 bytes for " + r.URL.Query().Get("text")))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "he")
	audio, err := c.Synthesize(context.Background(), "שלום")

	require.NoError(t, err)
	assert.Equal(t, "mp3 bytes for שלום", string(audio))
	assert.Equal(t, "he", gotLang)
}

func TestSynthesize_ErrorStatus(t *testing.T) {
	srv := ttsServer(t, func(_ string, w http.ResponseWriter) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	c := NewClient(srv.URL, "en")
	_, err := c.Synthesize(context.Background(), "word")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestSynthesize_EmptyBody(t *testing.T) {
	srv := ttsServer(t, func(_ string, w http.ResponseWriter) {})

	c := NewClient(srv.URL, "en")
	_, err := c.Synthesize(context.Background(), "word")

	assert.Error(t, err)
}

func TestGenerate_WritesEncodedFilenames(t *testing.T) {
	srv := ttsServer(t, func(text string, w http.ResponseWriter) {
		w.Write([]byte("audio:" + text))
	})
	dir := t.TempDir()

	c := NewClient(srv.URL, "en")
	result, err := c.Generate(context.Background(), dir, ".mp3", []string{"hello", "héllo"})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Generated)
	assert.Empty(t, result.Failed)

	// ASCII words keep their name; non-ASCII words are percent-encoded.
	assert.FileExists(t, filepath.Join(dir, "hello.mp3"))
	assert.FileExists(t, filepath.Join(dir, url.PathEscape("héllo")+".mp3"))
}

func TestGenerate_SkipsExisting(t *testing.T) {
	hits := 0
	srv := ttsServer(t, func(text string, w http.ResponseWriter) {
		hits++
		w.Write([]byte("audio"))
	})
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.mp3"), []byte("old"), 0o644))

	c := NewClient(srv.URL, "en")
	result, err := c.Generate(context.Background(), dir, ".mp3", []string{"hello", "world"})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Generated)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, hits, "existing clip must not be re-synthesized")

	// The existing file is untouched.
	data, err := os.ReadFile(filepath.Join(dir, "hello.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestGenerate_PerWordFailureContinues(t *testing.T) {
	srv := ttsServer(t, func(text string, w http.ResponseWriter) {
		if text == "bad" {
			http.Error(w, "nope", http.StatusBadRequest)
			return
		}
		w.Write([]byte("audio"))
	})
	dir := t.TempDir()

	c := NewClient(srv.URL, "en")
	result, err := c.Generate(context.Background(), dir, ".mp3", []string{"good", "bad", "fine"})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Generated)
	assert.Equal(t, []string{"bad"}, result.Failed)
}

func TestGenerate_CanceledContextStops(t *testing.T) {
	srv := ttsServer(t, func(text string, w http.ResponseWriter) {
		w.Write([]byte("audio"))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, "en")
	_, err := c.Generate(ctx, t.TempDir(), ".mp3", []string{"a", "b"})

	assert.Error(t, err)
}
