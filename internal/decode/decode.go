// Package decode normalizes percent-encoded clip filenames. Clip
// generators have produced singly and doubly encoded names over time;
// normalizing to the fully decoded form lets the resolver's literal
// variant match first.
package decode

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/zjrosen/carillon/internal/log"
)

// Rename describes one planned filename normalization.
type Rename struct {
	From string
	To   string
}

// DecodeName fully percent-decodes a filename, unwrapping double encoding.
// Undecodable names are returned unchanged.
func DecodeName(name string) string {
	for i := 0; i < 4; i++ {
		decoded, err := url.PathUnescape(name)
		if err != nil || decoded == name {
			return name
		}
		name = decoded
	}
	return name
}

// Plan scans dir and returns the renames that would normalize every
// encoded filename. Files whose decoded name already exists are skipped
// with a warning: overwriting an existing clip would lose data.
func Plan(dir string) ([]Rename, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading clip directory: %w", err)
	}

	taken := make(map[string]bool, len(entries))
	for _, e := range entries {
		taken[e.Name()] = true
	}

	var plan []Rename
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		decoded := DecodeName(e.Name())
		if decoded == e.Name() {
			continue
		}
		if taken[decoded] {
			log.Warn(log.CatTTS, "decoded name already exists, skipping",
				"from", e.Name(), "to", decoded)
			continue
		}
		taken[decoded] = true
		plan = append(plan, Rename{
			From: filepath.Join(dir, e.Name()),
			To:   filepath.Join(dir, decoded),
		})
	}
	return plan, nil
}

// Apply executes a rename plan. It stops at the first failure and reports
// how many renames completed.
func Apply(plan []Rename) (int, error) {
	for i, r := range plan {
		if err := os.Rename(r.From, r.To); err != nil {
			return i, fmt.Errorf("renaming %s: %w", r.From, err)
		}
		log.Info(log.CatTTS, "renamed clip", "from", r.From, "to", r.To)
	}
	return len(plan), nil
}
