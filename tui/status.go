package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/petcore/engine/progress"
	"github.com/nathoo/petcore/engine/state"
)

// renderStatusBar produces a full-width inverted status line showing the
// pet's name and stage, level progress, vital stats and current emotion.
func (m Model) renderStatusBar() string {
	eng := m.host.Engine
	p := &eng.State.Pet
	stage := eng.Stage()

	left := fmt.Sprintf(" %s the %s | Lv %d (%d/%d XP)",
		p.Name, stage.Name, p.Level, p.Experience, progress.Threshold(p.Level))
	stats := fmt.Sprintf("Hap %d Nrg %d Hun %d Int %d",
		p.Stats.Happiness, p.Stats.Energy, p.Stats.Hunger, p.Stats.Intelligence)

	mood := state.EmotionDisplay(p.Emotion).Label
	if m.pending {
		mood = "typing..."
	}
	right := mood + " "

	// Show stats if they fit.
	if candidate := stats + " | " + right; lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
		right = candidate
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
