package sound

import (
	"fmt"
	"math"
	"strconv"
)

// Note is a symbolic pitch in scientific notation, e.g. "C4", "F#5", "Bb3".
type Note string

// semitone offsets from C within one octave.
var semitones = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// Frequency returns the equal-temperament frequency in Hz (A4 = 440).
func (n Note) Frequency() (float64, error) {
	s := string(n)
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid note %q", s)
	}

	base, ok := semitones[s[0]]
	if !ok {
		return 0, fmt.Errorf("invalid note %q: unknown pitch class %q", s, s[0])
	}

	rest := s[1:]
	switch rest[0] {
	case '#':
		base++
		rest = rest[1:]
	case 'b':
		base--
		rest = rest[1:]
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("invalid note %q: bad octave: %w", s, err)
	}

	// MIDI number, then distance from A4 (MIDI 69).
	midi := (octave+1)*12 + base
	return 440 * math.Pow(2, float64(midi-69)/12), nil
}

// Notes converts a list of note names, failing on the first invalid one.
func Notes(names ...string) ([]Note, error) {
	out := make([]Note, 0, len(names))
	for _, name := range names {
		n := Note(name)
		if _, err := n.Frequency(); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// MustNotes is Notes for compile-time constant sequences; panics on error.
func MustNotes(names ...string) []Note {
	ns, err := Notes(names...)
	if err != nil {
		panic(err)
	}
	return ns
}
