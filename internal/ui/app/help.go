package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/zjrosen/carillon/internal/log"
)

// helpMarkdown builds the overlay content from the live key bindings so it
// never drifts from the actual keymap.
func (m Model) helpMarkdown() string {
	var b strings.Builder
	b.WriteString("# carillon\n\n")
	b.WriteString("Rate with a musical cue, or run a word quiz.\n\n")

	b.WriteString("## Rating\n\n")
	for _, binding := range m.keys.Ratings {
		fmt.Fprintf(&b, "- `%s` %s\n", binding.Help().Key, binding.Help().Desc)
	}
	fmt.Fprintf(&b, "- `%s` %s\n", m.keys.Clear.Help().Key, m.keys.Clear.Help().Desc)
	b.WriteString("\nPressing the current rating again deselects it. ")
	b.WriteString("A selection clears itself after the auto-clear delay.\n\n")

	b.WriteString("## Word quiz\n\n")
	for _, binding := range m.keys.Quiz {
		fmt.Fprintf(&b, "- `%s` %s\n", binding.Help().Key, binding.Help().Desc)
	}
	b.WriteString("\nWords are drawn at random and spoken one at a time. ")
	b.WriteString("A word with no clip is skipped after a short wait.\n\n")

	b.WriteString("## General\n\n")
	fmt.Fprintf(&b, "- `%s` %s\n", m.keys.Help.Help().Key, "close this help")
	fmt.Fprintf(&b, "- `%s` %s\n", m.keys.Quit.Help().Key, m.keys.Quit.Help().Desc)
	return b.String()
}

// helpOverlay renders the help markdown through glamour. Falls back to the
// raw markdown when the renderer can't be built.
func (m Model) helpOverlay() string {
	md := m.helpMarkdown()

	width := m.width - 4
	if width < 20 {
		width = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Warn(log.CatUI, "help renderer unavailable", "error", err)
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		log.Warn(log.CatUI, "help render failed", "error", err)
		return md
	}
	return out
}
