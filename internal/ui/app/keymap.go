package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
)

// quizTriggerKeys are assigned to quiz counts in config order.
var quizTriggerKeys = []string{"w", "e", "r", "t", "y"}

// keyMap holds the key bindings. Rating options bind to digits in
// declaration order; quiz triggers take home-row letters.
type keyMap struct {
	Ratings []key.Binding
	Quiz    []key.Binding
	Clear   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap(optionLabels []string, quizCounts []int) keyMap {
	km := keyMap{
		Clear: key.NewBinding(
			key.WithKeys("esc", "c"),
			key.WithHelp("esc", "clear rating"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}

	for i, label := range optionLabels {
		if i >= 9 {
			break
		}
		k := fmt.Sprintf("%d", i+1)
		km.Ratings = append(km.Ratings, key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, label),
		))
	}

	for i, n := range quizCounts {
		if i >= len(quizTriggerKeys) {
			break
		}
		k := quizTriggerKeys[i]
		km.Quiz = append(km.Quiz, key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, fmt.Sprintf("%d words", n)),
		))
	}
	return km
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	out := []key.Binding{}
	if len(k.Ratings) > 0 {
		first, last := k.Ratings[0], k.Ratings[len(k.Ratings)-1]
		out = append(out, key.NewBinding(
			key.WithKeys(),
			key.WithHelp(
				fmt.Sprintf("%s-%s", first.Help().Key, last.Help().Key),
				"rate",
			),
		))
	}
	out = append(out, k.Quiz...)
	return append(out, k.Clear, k.Help, k.Quit)
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.Ratings, k.Quiz, {k.Clear, k.Help, k.Quit}}
}
