// Package words provides the quiz word pool: a newline-delimited word list
// fetched from a URL or local file, with a built-in fallback when the
// source is missing or serves something that isn't a word list.
package words

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/zjrosen/carillon/internal/log"
)

// FallbackPool is used when the configured source is unavailable or
// malformed. Never empty, so a quiz run always has words to draw from.
var FallbackPool = []string{
	"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel",
}

// poolCacheKey is the single go-cache key for the parsed pool.
const poolCacheKey = "pool"

// Source loads and caches the word pool.
type Source struct {
	// location is a URL (http:// or https://) or a local file path.
	location string
	fallback []string
	client   *http.Client
	cache    *cache.Cache
}

// Option configures a Source.
type Option func(*Source)

// WithFallback overrides the built-in fallback pool. Empty lists are
// ignored: the fallback must never be empty.
func WithFallback(pool []string) Option {
	return func(s *Source) {
		if len(pool) > 0 {
			s.fallback = pool
		}
	}
}

// WithHTTPClient overrides the HTTP client used for URL sources.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) { s.client = c }
}

// NewSource creates a Source for location. ttl bounds how long a fetched
// pool is reused before the source is consulted again.
func NewSource(location string, ttl time.Duration, opts ...Option) *Source {
	s := &Source{
		location: location,
		fallback: FallbackPool,
		client:   &http.Client{Timeout: 10 * time.Second},
		cache:    cache.New(ttl, 2*ttl),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pool returns the current word pool. Fetch or parse failures fall back to
// the fallback pool; those are logged, never surfaced. The returned slice
// must not be mutated by callers.
func (s *Source) Pool(ctx context.Context) []string {
	if cached, ok := s.cache.Get(poolCacheKey); ok {
		return cached.([]string)
	}

	pool, err := s.fetch(ctx)
	if err != nil {
		log.Warn(log.CatWords, "word source unavailable, using fallback",
			"source", s.location, "error", err)
		return s.fallback
	}

	s.cache.SetDefault(poolCacheKey, pool)
	log.Debug(log.CatWords, "word pool loaded", "source", s.location, "words", len(pool))
	return pool
}

// Invalidate drops the cached pool so the next Pool call refetches.
func (s *Source) Invalidate() {
	s.cache.Delete(poolCacheKey)
}

// Location returns the configured source location.
func (s *Source) Location() string { return s.location }

func (s *Source) fetch(ctx context.Context) ([]string, error) {
	var raw []byte
	var err error
	if isURL(s.location) {
		raw, err = s.fetchHTTP(ctx)
	} else {
		raw, err = os.ReadFile(s.location)
	}
	if err != nil {
		return nil, err
	}

	text := string(raw)
	if looksLikeHTML(text) {
		// Static hosts serve an HTML error or redirect page instead of a
		// 404 for missing word lists; treat that as "no source".
		return nil, fmt.Errorf("source returned an HTML document, not a word list")
	}

	pool := ParseLines(text)
	if len(pool) == 0 {
		return nil, fmt.Errorf("source contained no words")
	}
	return pool, nil
}

func (s *Source) fetchHTTP(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching word list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching word list: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}
	return body, nil
}

// ParseLines splits text into trimmed, non-empty lines.
func ParseLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if w := strings.TrimSpace(line); w != "" {
			out = append(out, w)
		}
	}
	return out
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// looksLikeHTML is the cheap heuristic for "this is an error page": any
// opening HTML tag marker near the start of the document.
func looksLikeHTML(text string) bool {
	head := strings.ToLower(strings.TrimSpace(text))
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.Contains(head, "<html") || strings.Contains(head, "<!doctype")
}
