package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/carillon/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.showHelp {
		return m.helpOverlay()
	}

	var b strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.AccentColor).
		Render("carillon")
	b.WriteString(title)
	b.WriteString("\n\n")

	b.WriteString(m.ratingBar())
	b.WriteString("\n\n")
	b.WriteString(m.quizPanel())
	b.WriteString("\n\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	container := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Padding(1, 2)

	// Scan registers the zone markers so mouse hits resolve.
	return m.zones.Scan(container.Render(b.String()))
}

// ratingBar renders one button per rating option, the selected one
// highlighted. Each button is a mouse zone.
func (m Model) ratingBar() string {
	normal := lipgloss.NewStyle().
		Foreground(styles.TextPrimaryColor).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderDefaultColor).
		Padding(0, 1)
	selected := normal.
		Foreground(styles.SelectedColor).
		BorderForeground(styles.SelectedColor).
		Bold(true)
	disabled := normal.Foreground(styles.TextMutedColor)

	buttons := make([]string, 0, len(m.machine.Options()))
	for i, opt := range m.machine.Options() {
		label := fmt.Sprintf("%d %s", i+1, opt.Label)
		style := normal
		switch {
		case !m.state.AudioReady:
			style = disabled
		case m.state.Selected == opt.ID:
			style = selected
		}
		buttons = append(buttons, m.zones.Mark(optionZoneID(opt.ID), style.Render(label)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

// quizPanel shows the trigger controls when idle and the word list while
// speaking.
func (m Model) quizPanel() string {
	header := lipgloss.NewStyle().
		Foreground(styles.TextDescriptionColor).
		Render("Word quiz")

	if m.speaking {
		return header + "\n" + m.wordList()
	}

	buttonStyle := lipgloss.NewStyle().
		Foreground(styles.AccentColor).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderDefaultColor).
		Padding(0, 1)

	buttons := make([]string, 0, len(m.cfg.UI.QuizCounts))
	for i, n := range m.cfg.UI.QuizCounts {
		key := ""
		if i < len(m.keys.Quiz) {
			key = m.keys.Quiz[i].Help().Key + " "
		}
		label := fmt.Sprintf("%s%d words", key, n)
		buttons = append(buttons, m.zones.Mark(quizZoneID(i), buttonStyle.Render(label)))
	}
	return header + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

// wordList renders the drawn words, marking the one being spoken.
func (m Model) wordList() string {
	if len(m.quizWords) == 0 {
		return m.spinner.View() + " drawing words"
	}

	wordStyle := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)
	speakingStyle := lipgloss.NewStyle().Foreground(styles.SpeakingColor).Bold(true)
	doneStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)

	var lines []string
	for i, word := range m.quizWords {
		display := styles.TruncateLabel(word, max(m.width-8, 8))
		switch {
		case i == m.speakingIdx:
			lines = append(lines, m.spinner.View()+" "+speakingStyle.Render(display))
		case m.speakingIdx >= 0 && i < m.speakingIdx:
			lines = append(lines, "  "+doneStyle.Render(display))
		default:
			lines = append(lines, "  "+wordStyle.Render(display))
		}
	}
	return strings.Join(lines, "\n")
}

// statusLine reports audio state and the last run's outcome.
func (m Model) statusLine() string {
	muted := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	errStyle := lipgloss.NewStyle().Foreground(styles.StatusErrorColor)

	var parts []string
	switch {
	case m.audioErr != nil:
		parts = append(parts, errStyle.Render("audio unavailable"))
	case !m.state.AudioReady:
		parts = append(parts, muted.Render("audio starting…"))
	default:
		parts = append(parts, muted.Render("audio ready"))
	}

	if m.lastResult != nil && !m.speaking {
		summary := fmt.Sprintf("last quiz: %d/%d words played",
			m.lastResult.Played(), len(m.lastResult.Words))
		parts = append(parts, muted.Render(summary))
	}

	line := strings.Join(parts, "  ·  ")
	return wordwrap.String(line, max(m.width-4, 20))
}
