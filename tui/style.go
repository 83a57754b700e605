package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/petcore/engine/state"
	"github.com/nathoo/petcore/host"
	"github.com/nathoo/petcore/types"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleAnnouncement = lipgloss.NewStyle().
				Foreground(lipgloss.Color("220")).
				Bold(true)

	styleUnlock = lipgloss.NewStyle().
			Foreground(lipgloss.Color("213")).
			Bold(true)

	stylePanel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// emotionStyle tints text with the emotion's display colour.
func emotionStyle(e types.Emotion) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(state.EmotionDisplay(e).Color))
}

// renderLine wraps and styles one output line. Pet speech is prefixed with
// the pet's name.
func renderLine(rl rawLine, name string, width int) string {
	switch rl.kind {
	case host.KindPet:
		return emotionStyle(rl.emotion).Render(wordWrap(name+": "+rl.text, width))
	case host.KindAnnouncement:
		return styleAnnouncement.Render(wordWrap("** "+rl.text+" **", width))
	case host.KindUnlock:
		return styleUnlock.Render(wordWrap(rl.text, width))
	case host.KindSystem:
		return styledSystemMsg(wordWrap(rl.text, width))
	case host.KindTrace:
		return styleTrace.Render(wordWrap(rl.text, width))
	default:
		return stylePanel.Render(wordWrap(rl.text, width))
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
