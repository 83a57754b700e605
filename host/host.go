// Package host implements the meta-commands and panel rendering shared by
// the plain CLI and the TUI. It turns engine results into display lines and
// leaves styling and timing to the shell.
package host

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nathoo/petcore/engine"
	"github.com/nathoo/petcore/engine/progress"
	"github.com/nathoo/petcore/engine/state"
	"github.com/nathoo/petcore/types"
)

// Kind classifies a display line for styling.
type Kind int

const (
	KindPet Kind = iota
	KindAnnouncement
	KindUnlock
	KindSystem
	KindPanel
	KindTrace
)

// Line is one unstyled output line.
type Line struct {
	Kind Kind
	Text string
}

// Host dispatches meta-commands against an engine.
type Host struct {
	Engine *engine.Engine
	Trace  bool
	Loc    *time.Location // history grouping; nil means time.Local
}

// New creates a host for eng.
func New(eng *engine.Engine) *Host {
	return &Host{Engine: eng, Loc: time.Local}
}

// IsCommand reports whether input is a meta-command.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), "/")
}

// Name is the pet's current name, used as the speaker label.
func (h *Host) Name() string {
	return h.Engine.State.Pet.Name
}

// Render turns an engine result into display lines: the utterance, level-up
// announcements, unlocked achievements, requested panels and, when tracing
// is on, a trace line.
func (h *Host) Render(r types.Result) []Line {
	var lines []Line
	if r.Utterance != "" {
		lines = append(lines, Line{Kind: KindPet, Text: r.Utterance})
	}
	for _, a := range r.Announcements {
		lines = append(lines, Line{Kind: KindAnnouncement, Text: a})
	}
	for _, id := range r.Unlocked {
		lines = append(lines, Line{Kind: KindUnlock, Text: h.unlockText(id)})
	}
	for _, p := range r.Panels {
		lines = append(lines, h.Panel(p)...)
	}
	if h.Trace && !r.Noop {
		lines = append(lines, Line{Kind: KindTrace, Text: h.traceText(r)})
	}
	return lines
}

// Panel renders a panel request.
func (h *Host) Panel(p types.Panel) []Line {
	switch p {
	case types.PanelGames:
		return panel(
			"Mini-games: memory, fetch, puzzle.",
			"Play one, then report your score with /game <type> <score>.",
		)
	case types.PanelAccessories:
		return h.accessories()
	case types.PanelAchievements:
		return h.achievements()
	case types.PanelShare:
		return h.share()
	case types.PanelMemory:
		return h.memories()
	default:
		return panel(fmt.Sprintf("(no view for %q)", p))
	}
}

// Exec runs a meta-command. Returns output lines and quit flag.
func (h *Host) Exec(ctx context.Context, input string) ([]Line, bool) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil, false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "/quit", "/exit":
		return system("Goodbye."), true

	case "/help":
		return h.cmdHelp(), false

	case "/save":
		if err := h.Engine.Save(ctx); err != nil {
			return system(fmt.Sprintf("Save failed: %v", err)), false
		}
		return system("Saved."), false

	case "/stats":
		return h.cmdStats(), false

	case "/memory":
		return h.memories(), false

	case "/achievements":
		return h.achievements(), false

	case "/accessories":
		return h.accessories(), false

	case "/wear":
		return h.Render(h.Engine.ApplyAccessory(strings.Join(args, " "))), false

	case "/photo":
		return h.Render(h.Engine.CapturePhoto()), false

	case "/game":
		return h.cmdGame(args), false

	case "/settings":
		return h.cmdSettings(args), false

	case "/trace":
		h.Trace = !h.Trace
		if h.Trace {
			return system("Trace output enabled."), false
		}
		return system("Trace output disabled."), false

	default:
		return system(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", parts[0])), false
	}
}

func (h *Host) cmdHelp() []Line {
	return panel(
		"Commands:",
		"  /stats                             Show level, stats and personality",
		"  /memory                            What your pet remembers, by day",
		"  /achievements                      Achievement catalog and progress",
		"  /accessories                       Owned and locked accessories",
		"  /wear <id|none>                    Put on or take off an accessory",
		"  /photo                             Take a photo",
		"  /game <memory|fetch|puzzle> <n>    Report a mini-game score",
		"  /settings <name> <species> [color] Rename or change species",
		"  /save                              Save now",
		"  /trace                             Toggle debug trace output",
		"  /quit                              Exit",
		"",
		"Anything else is said to your pet.",
	)
}

func (h *Host) cmdStats() []Line {
	p := &h.Engine.State.Pet
	stage := h.Engine.Stage()
	lines := []string{
		fmt.Sprintf("%s the %s %s (%s)", p.Name, p.Color, p.Species, stage.Name),
		fmt.Sprintf("Level %d  XP %d/%d", p.Level, p.Experience, progress.Threshold(p.Level)),
		fmt.Sprintf("Happiness %d  Energy %d  Hunger %d  Intelligence %d",
			p.Stats.Happiness, p.Stats.Energy, p.Stats.Hunger, p.Stats.Intelligence),
		fmt.Sprintf("Playfulness %d  Affection %d  Curiosity %d  Independence %d",
			p.Personality.Playfulness, p.Personality.Affection, p.Personality.Curiosity, p.Personality.Independence),
		"Feeling: " + state.EmotionDisplay(p.Emotion).Label,
		"Wearing: " + h.equippedName(),
	}
	if len(stage.Abilities) > 0 {
		lines = append(lines, "Abilities: "+strings.Join(stage.Abilities, ", "))
	}
	return panel(lines...)
}

func (h *Host) cmdGame(args []string) []Line {
	if len(args) != 2 {
		return system("Usage: /game <memory|fetch|puzzle> <score>")
	}
	score, err := strconv.Atoi(args[1])
	if err != nil {
		return system(fmt.Sprintf("Score must be a number, got %q.", args[1]))
	}
	return h.Render(h.Engine.ProcessGameResult(score, types.GameType(strings.ToLower(args[0]))))
}

func (h *Host) cmdSettings(args []string) []Line {
	if len(args) < 2 || len(args) > 3 {
		return system("Usage: /settings <name> <species> [color]")
	}
	color := ""
	if len(args) == 3 {
		color = args[2]
	}
	return h.Render(h.Engine.ApplySettings(args[0], args[1], color))
}

func (h *Host) accessories() []Line {
	p := &h.Engine.State.Pet
	lines := []string{fmt.Sprintf("Accessories for a %s:", p.Species)}
	n := 0
	for _, a := range h.Engine.Defs.Accessories {
		if !fitsSpecies(a, p.Species) {
			continue
		}
		n++
		switch {
		case p.Equipped == a.ID:
			lines = append(lines, fmt.Sprintf("  * %s [%s] (wearing)", a.Name, a.ID))
		case state.Owns(p, a.ID):
			lines = append(lines, fmt.Sprintf("    %s [%s]", a.Name, a.ID))
		default:
			lines = append(lines, fmt.Sprintf("    %s (unlocks at level %d)", a.Name, a.MinLevel))
		}
	}
	if n == 0 {
		lines = append(lines, "  none yet")
	}
	return panel(lines...)
}

func (h *Host) achievements() []Line {
	p := &h.Engine.State.Pet
	defs := h.Engine.Defs.Achievements
	lines := make([]string, 0, len(defs)+1)
	got := 0
	for _, a := range defs {
		mark := "[ ]"
		if state.HasAchievement(p, a.ID) {
			mark = "[x]"
			got++
		}
		line := fmt.Sprintf("%s %s (%s, %d XP)", mark, a.Name, a.Rarity, a.XPReward)
		if a.Description != "" {
			line += ": " + a.Description
		}
		lines = append(lines, line)
	}
	lines = append(lines, fmt.Sprintf("%d/%d unlocked", got, len(defs)))
	return panel(lines...)
}

func (h *Host) share() []Line {
	p := &h.Engine.State.Pet
	return panel(
		fmt.Sprintf("Photo: %s the %s %s, level %d %s, feeling %s.",
			p.Name, p.Color, p.Species, p.Level, h.Engine.Stage().Name,
			strings.ToLower(state.EmotionDisplay(p.Emotion).Label)),
		"Copy it and share it with your friends!",
	)
}

func (h *Host) memories() []Line {
	loc := h.Loc
	if loc == nil {
		loc = time.Local
	}
	facts := h.Engine.Facts()
	days := h.Engine.History(loc)
	if len(facts) == 0 && len(days) == 0 {
		return panel("No memories yet. Tell me about yourself!")
	}

	var lines []string
	if len(facts) > 0 {
		lines = append(lines, "Things I know about you:")
		for _, f := range facts {
			lines = append(lines, fmt.Sprintf("  %s: %s", f.Type, f.Content))
		}
	}
	for _, d := range days {
		lines = append(lines, d.Date.Format("Mon Jan 2, 2006"))
		for _, m := range d.Messages {
			who := "You"
			if m.Sender == types.SenderPet {
				who = h.Name()
			}
			at := time.UnixMilli(m.Timestamp).In(loc).Format("15:04")
			lines = append(lines, fmt.Sprintf("  %s %s: %s", at, who, m.Text))
		}
	}
	return panel(lines...)
}

func (h *Host) unlockText(id string) string {
	if a, ok := state.Achievement(h.Engine.Defs, id); ok {
		return fmt.Sprintf("Achievement unlocked: %s (%s)", a.Name, a.Rarity)
	}
	return "Achievement unlocked: " + id
}

func (h *Host) traceText(r types.Result) string {
	rule := r.RuleID
	if rule == "" {
		rule = "-"
	}
	return fmt.Sprintf("[trace] rule=%s emotion=%s xp=%d levels=%d rng=%d",
		rule, r.Emotion, r.XP, r.LevelUps, h.Engine.RNG.Position())
}

func (h *Host) equippedName() string {
	p := &h.Engine.State.Pet
	if p.Equipped == "" {
		return "nothing"
	}
	if a, ok := state.Accessory(h.Engine.Defs, p.Equipped); ok {
		return a.Name
	}
	return p.Equipped
}

func fitsSpecies(a types.AccessoryDef, sp types.Species) bool {
	if len(a.Species) == 0 {
		return true
	}
	for _, s := range a.Species {
		if s == sp {
			return true
		}
	}
	return false
}

func system(text string) []Line {
	return []Line{{Kind: KindSystem, Text: text}}
}

func panel(texts ...string) []Line {
	lines := make([]Line, len(texts))
	for i, t := range texts {
		lines[i] = Line{Kind: KindPanel, Text: t}
	}
	return lines
}
