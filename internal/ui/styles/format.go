package styles

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DisplayWidth returns the terminal cell width of s, counting grapheme
// clusters so combining marks and emoji don't inflate the result. Quiz
// words can be Hebrew or emoji-laden, where len() and rune counts lie.
func DisplayWidth(s string) int {
	return uniseg.StringWidth(s)
}

// TruncateLabel shortens s to at most width cells, appending an ellipsis
// when something was cut.
func TruncateLabel(s string, width int) string {
	if DisplayWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// PadLabel right-pads s with spaces to exactly width cells.
func PadLabel(s string, width int) string {
	return runewidth.FillRight(s, width)
}
