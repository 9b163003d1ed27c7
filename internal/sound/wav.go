package sound

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"
)

const (
	sampleRate    = 44100
	bitsPerSample = 16
)

// renderNotes synthesizes the note sequence as 16-bit mono PCM WAV data.
// Notes play back to back, each held for dur, with a short linear
// attack/release ramp so note boundaries don't click.
func renderNotes(notes []Note, dur time.Duration) ([]byte, error) {
	perNote := int(float64(sampleRate) * dur.Seconds())
	if perNote < 1 {
		perNote = 1
	}
	ramp := perNote / 20
	if ramp < 1 {
		ramp = 1
	}

	samples := make([]int16, 0, perNote*len(notes))
	for _, note := range notes {
		freq, err := note.Frequency()
		if err != nil {
			return nil, err
		}
		for i := 0; i < perNote; i++ {
			v := math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)

			env := 1.0
			if i < ramp {
				env = float64(i) / float64(ramp)
			} else if left := perNote - i; left < ramp {
				env = float64(left) / float64(ramp)
			}

			samples = append(samples, int16(v*env*0.6*math.MaxInt16))
		}
	}
	return wavEncode(samples), nil
}

// wavEncode wraps mono PCM samples in a RIFF/WAVE container.
// binary.Write to a bytes.Buffer cannot fail, so errors are not checked.
func wavEncode(samples []int16) []byte {
	dataLen := len(samples) * 2
	var buf bytes.Buffer
	buf.Grow(44 + dataLen)

	write := func(v any) { _ = binary.Write(&buf, binary.LittleEndian, v) }

	buf.WriteString("RIFF")
	write(uint32(36 + dataLen))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	write(uint32(16))            // fmt chunk size
	write(uint16(1))             // PCM
	write(uint16(1))             // mono
	write(uint32(sampleRate))
	write(uint32(sampleRate * 2)) // byte rate
	write(uint16(2))              // block align
	write(uint16(bitsPerSample))

	buf.WriteString("data")
	write(uint32(dataLen))
	write(samples)

	return buf.Bytes()
}
