// Package tts generates per-word audio clips through an HTTP text-to-speech
// service. The clip filenames use the percent-encoded word so the clip
// resolver can match them.
package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/carillon/internal/log"
)

// Client fetches synthesized speech from an HTTP endpoint that takes
// text and lang query parameters and returns audio bytes.
type Client struct {
	endpoint string
	lang     string
	http     *http.Client
}

// NewClient creates a Client for the endpoint (e.g.
// "http://127.0.0.1:5002/tts") synthesizing in lang.
func NewClient(endpoint, lang string) *Client {
	return &Client{
		endpoint: endpoint,
		lang:     lang,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Synthesize returns the audio bytes for text.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", c.endpoint, err)
	}
	q := u.Query()
	q.Set("text", text)
	q.Set("lang", c.lang)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tts request: status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading tts response: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("tts response was empty")
	}
	return audio, nil
}

// GenerateResult summarizes a batch generation pass.
type GenerateResult struct {
	Generated int
	Skipped   int
	Failed    []string
}

// Generate synthesizes a clip for every word, writing
// <dir>/<percent-encoded word><ext>. Existing files are skipped. Per-word
// failures are recorded and generation continues; only a context error
// stops the batch early.
func (c *Client) Generate(ctx context.Context, dir, ext string, pool []string) (GenerateResult, error) {
	var result GenerateResult
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return result, fmt.Errorf("creating clip directory: %w", err)
	}

	for _, word := range pool {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		path := filepath.Join(dir, url.PathEscape(word)+ext)
		if _, err := os.Stat(path); err == nil {
			result.Skipped++
			log.Debug(log.CatTTS, "clip exists, skipping", "word", word, "path", path)
			continue
		}

		audio, err := c.Synthesize(ctx, word)
		if err != nil {
			result.Failed = append(result.Failed, word)
			log.Warn(log.CatTTS, "synthesis failed", "word", word, "error", err)
			continue
		}
		if err := os.WriteFile(path, audio, 0o644); err != nil {
			result.Failed = append(result.Failed, word)
			log.Warn(log.CatTTS, "writing clip failed", "word", word, "path", path, "error", err)
			continue
		}

		result.Generated++
		log.Info(log.CatTTS, "clip generated", "word", word, "path", path)
	}
	return result, nil
}
