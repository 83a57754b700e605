// Package engine provides the interaction orchestrator that wires together
// context extraction, rule selection, stat updates, progression and
// persistence into a single synchronous pass per event.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nathoo/petcore/engine/dialogue"
	"github.com/nathoo/petcore/engine/effects"
	"github.com/nathoo/petcore/engine/events"
	"github.com/nathoo/petcore/engine/memory"
	"github.com/nathoo/petcore/engine/parser"
	"github.com/nathoo/petcore/engine/progress"
	"github.com/nathoo/petcore/engine/resolve"
	"github.com/nathoo/petcore/engine/rules"
	"github.com/nathoo/petcore/engine/save"
	"github.com/nathoo/petcore/engine/state"
	"github.com/nathoo/petcore/store"
	"github.com/nathoo/petcore/types"
	"github.com/rs/zerolog"
)

// Engine holds the content definitions and the mutable pet state.
type Engine struct {
	Defs   *state.Defs
	State  *types.State
	RNG    *RNG
	Tuning types.Tuning
	Store  store.Store // nil disables persistence
	Log    zerolog.Logger
	Now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithStore persists the pet after every mutating operation.
func WithStore(st store.Store) Option {
	return func(e *Engine) { e.Store = st }
}

// WithLogger sets the operational logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.Log = log }
}

// WithTuning replaces the default tuning.
func WithTuning(t types.Tuning) Option {
	return func(e *Engine) { e.Tuning = t }
}

// WithSeed makes the random source deterministic.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.RNG = NewRNG(seed) }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.Now = now }
}

// New creates an engine with a default pet.
func New(defs *state.Defs, opts ...Option) *Engine {
	e := &Engine{
		Defs:   defs,
		State:  state.NewState(defs),
		Tuning: state.DefaultTuning(),
		Log:    zerolog.Nop(),
		Now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.RNG == nil {
		e.RNG = NewRNG(e.Now().UnixNano())
	}
	return e
}

// Start loads the persisted pet and produces the session greeting: a
// welcome when no conversation was saved, or a missed-you line after more
// than a day away.
func (e *Engine) Start(ctx context.Context) (types.Result, error) {
	now := e.Now()
	p := &e.State.Pet

	var rep save.Report
	if e.Store != nil {
		var err error
		rep, err = save.Load(ctx, e.Store, e.State, e.Defs)
		if err != nil {
			return types.Result{}, fmt.Errorf("loading pet: %w", err)
		}
		for _, k := range rep.Ignored {
			e.Log.Warn().Str("key", k).Msg("ignored malformed persisted field")
		}
		if len(rep.Unknown) > 0 {
			e.Log.Debug().Strs("keys", rep.Unknown).Str("emotion", string(p.Emotion)).Msg("kept unrecognised persisted values")
		}
	}
	e.Log.Debug().Int64("seed", e.RNG.Seed()).Bool("restored", rep.Found).Msg("session started")

	var result types.Result
	switch {
	case !rep.LogFound:
		result.Utterance = dialogue.WelcomeLine(p.Name)
	case !p.LastInteraction.IsZero() && now.Sub(p.LastInteraction) > 24*time.Hour:
		days := int(now.Sub(p.LastInteraction) / (24 * time.Hour))
		lost := effects.AbsencePenalty(p, days, e.Tuning)
		e.Log.Info().Int("days", days).Int("happiness_lost", lost).Msg("absence penalty")
		result.Utterance = dialogue.MissedLine(days)
	}

	if granted := state.SyncAccessories(p, e.Defs); len(granted) > 0 {
		e.Log.Debug().Strs("accessories", granted).Msg("granted accessories")
	}
	if result.Utterance != "" {
		e.say(result.Utterance, now)
	}
	p.LastInteraction = now
	e.persist()

	result.Emotion = p.Emotion
	return result, nil
}

// ProcessMessage runs one user message through the pipeline. Empty or
// whitespace-only input is a no-op.
func (e *Engine) ProcessMessage(raw string) types.Result {
	text := strings.TrimSpace(raw)
	if text == "" {
		return types.Result{Noop: true, Emotion: e.State.Pet.Emotion}
	}

	now := e.Now()
	p := &e.State.Pet

	// 1. Context from the window preceding this message.
	recent := parser.Recent(e.State.Log, e.Tuning.RecentWindow)
	ctx := parser.Extract(text, p, recent, now, e.Tuning)

	// 2. Select and decorate the reply.
	env := &rules.Env{
		Ctx:    ctx,
		Pet:    p,
		Recent: recent,
		Defs:   e.Defs,
		Tuning: e.Tuning,
		Rand:   e.RNG,
	}
	reply, ruleID := rules.Select(env)
	utterance := dialogue.Decorate(reply.Text, ctx, e.Tuning, e.RNG)

	// 3. Emotion, then stat and personality deltas.
	p.Emotion = reply.Emotion
	delta := effects.Apply(p, ctx.Lower, reply.Emotion)

	// 4. Experience, counted on the message as typed.
	xp := progress.MessageXP(raw, e.Tuning)
	levels := progress.AwardXP(p, xp)

	// 5. Log the exchange, then any level-up announcements.
	logLen := len(e.State.Log)
	e.State.Log = append(e.State.Log, types.Message{Text: text, Sender: types.SenderUser, Timestamp: now.UnixMilli()})
	e.say(utterance, now)
	announcements := e.levelUps(levels, now)

	// 6. Achievements (single pass).
	evs := []events.Event{{Kind: events.Message, Lower: ctx.Lower, LogLen: logLen, Now: now}}
	evs = append(evs, levelUpEvents(levels, now)...)
	out := events.Dispatch(evs, e.State)

	p.LastInteraction = now
	e.persist()

	e.Log.Debug().
		Str("rule", ruleID).
		Str("emotion", string(p.Emotion)).
		Int("xp", xp).
		Interface("delta", delta).
		Strs("unlocked", out.Unlocked).
		Msg("message processed")

	return types.Result{
		Utterance:     utterance,
		Emotion:       p.Emotion,
		Panels:        mergePanels(reply.Panels, out.Panels),
		Announcements: announcements,
		Unlocked:      out.Unlocked,
		XP:            xp,
		LevelUps:      len(levels),
		RuleID:        ruleID,
	}
}

// ProcessGameResult awards a finished mini-game's score as experience and
// applies the game's stat change. Unknown games are refused.
func (e *Engine) ProcessGameResult(score int, game types.GameType) types.Result {
	p := &e.State.Pet
	if !progress.ValidGame(game) {
		return e.refuse(fmt.Sprintf("I don't know how to play %q yet! Try memory, fetch or puzzle.", game))
	}
	score = progress.ClampScore(score)
	now := e.Now()

	levels := progress.AwardXP(p, score)
	effects.Adjust(p, progress.GameDelta(game, score))
	p.Emotion = types.EmotionExcited

	line := dialogue.GameLine(score, e.RNG)
	e.say(line, now)
	announcements := e.levelUps(levels, now)

	evs := []events.Event{{Kind: events.Game, Score: score, Now: now}}
	evs = append(evs, levelUpEvents(levels, now)...)
	out := events.Dispatch(evs, e.State)

	p.LastInteraction = now
	e.persist()

	e.Log.Debug().Str("game", string(game)).Int("score", score).Strs("unlocked", out.Unlocked).Msg("game recorded")

	return types.Result{
		Utterance:     line,
		Emotion:       p.Emotion,
		Panels:        out.Panels,
		Announcements: announcements,
		Unlocked:      out.Unlocked,
		XP:            score,
		LevelUps:      len(levels),
	}
}

// ApplySettings renames the pet and changes its species and colour. An
// invalid colour falls back to the species default.
func (e *Engine) ApplySettings(name, species, color string) types.Result {
	p := &e.State.Pet
	name = strings.TrimSpace(name)
	if name == "" {
		return e.refuse("I need a name! What would you like to call me?")
	}
	sp, err := resolve.Species(e.Defs, species)
	if err != nil {
		return e.refuse(fmt.Sprintf("Hmm, I can't become that: %v.", err))
	}

	p.Name = name
	p.Species = sp
	p.Color = resolve.Color(e.Defs, sp, color)
	state.SyncAccessories(p, e.Defs)
	if a, ok := state.Accessory(e.Defs, p.Equipped); ok && !state.Available(p, a) {
		p.Equipped = ""
	}

	now := e.Now()
	line := dialogue.SettingsLine(p)
	e.say(line, now)
	p.LastInteraction = now
	e.persist()

	return types.Result{Utterance: line, Emotion: p.Emotion}
}

// ApplyAccessory equips an owned accessory by ID or name. An empty id (or
// "none") takes off whatever is worn.
func (e *Engine) ApplyAccessory(id string) types.Result {
	p := &e.State.Pet
	id = strings.TrimSpace(id)

	var line string
	if id == "" || strings.EqualFold(id, "none") {
		if p.Equipped == "" {
			return e.refuse("I'm not wearing anything right now!")
		}
		name := p.Equipped
		if a, ok := state.Accessory(e.Defs, p.Equipped); ok {
			name = a.Name
		}
		p.Equipped = ""
		line = dialogue.UnequipLine(name)
	} else {
		a, err := resolve.Accessory(e.Defs, p, id)
		if err != nil {
			return e.refuse(fmt.Sprintf("I can't wear that yet: %v.", err))
		}
		if !state.Available(p, a) {
			return e.refuse(fmt.Sprintf("The %s doesn't fit a %s!", a.Name, p.Species))
		}
		p.Equipped = a.ID
		p.Emotion = types.EmotionHappy
		line = dialogue.AccessoryLine(a.Name, e.RNG)
	}

	now := e.Now()
	e.say(line, now)
	p.LastInteraction = now
	e.persist()

	return types.Result{Utterance: line, Emotion: p.Emotion}
}

// CapturePhoto records a photo of the pet.
func (e *Engine) CapturePhoto() types.Result {
	p := &e.State.Pet
	now := e.Now()

	p.Emotion = types.EmotionHappy
	e.say(dialogue.PhotoLine, now)
	out := events.Dispatch([]events.Event{{Kind: events.Photo, Now: now}}, e.State)

	p.LastInteraction = now
	e.persist()

	return types.Result{
		Utterance: dialogue.PhotoLine,
		Emotion:   p.Emotion,
		Panels:    mergePanels([]types.Panel{types.PanelShare}, out.Panels),
		Unlocked:  out.Unlocked,
	}
}

// Facts returns everything the pet remembers about the user.
func (e *Engine) Facts() []types.Fact {
	return memory.Extract(e.State.Log)
}

// History returns the conversation grouped by calendar day in loc.
func (e *Engine) History(loc *time.Location) []memory.Day {
	return memory.GroupByDay(e.State.Log, loc)
}

// Stage returns the pet's current evolution stage.
func (e *Engine) Stage() types.StageDef {
	return state.Stage(e.Defs, &e.State.Pet)
}

// Save persists the pet now, returning any store error.
func (e *Engine) Save(ctx context.Context) error {
	if e.Store == nil {
		return nil
	}
	if err := save.Save(ctx, e.Store, e.State); err != nil {
		return fmt.Errorf("saving pet: %w", err)
	}
	return nil
}

// persist saves after a mutation. Failures are logged; state is unaffected.
func (e *Engine) persist() {
	if err := e.Save(context.Background()); err != nil {
		e.Log.Error().Err(err).Msg("persist failed")
	}
}

// say appends a pet line to the conversation log.
func (e *Engine) say(text string, now time.Time) {
	e.State.Log = append(e.State.Log, types.Message{Text: text, Sender: types.SenderPet, Timestamp: now.UnixMilli()})
}

// levelUps announces each level reached and grants newly unlocked
// accessories.
func (e *Engine) levelUps(levels []int, now time.Time) []string {
	if len(levels) == 0 {
		return nil
	}
	out := make([]string, 0, len(levels))
	for _, l := range levels {
		line := dialogue.LevelUpLine(l)
		e.say(line, now)
		out = append(out, line)
	}
	if granted := state.SyncAccessories(&e.State.Pet, e.Defs); len(granted) > 0 {
		e.Log.Info().Strs("accessories", granted).Int("level", e.State.Pet.Level).Msg("accessories unlocked")
	}
	return out
}

// refuse answers without touching state.
func (e *Engine) refuse(text string) types.Result {
	return types.Result{Utterance: text, Emotion: e.State.Pet.Emotion, Noop: true}
}

func levelUpEvents(levels []int, now time.Time) []events.Event {
	evs := make([]events.Event, 0, len(levels))
	for range levels {
		evs = append(evs, events.Event{Kind: events.LevelUp, Now: now})
	}
	return evs
}

// mergePanels concatenates panel requests, dropping duplicates.
func mergePanels(lists ...[]types.Panel) []types.Panel {
	var out []types.Panel
	seen := map[types.Panel]bool{}
	for _, l := range lists {
		for _, p := range l {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}
