// Package dialogue renders pet lines: template interpolation, the
// time-aware greeting prefix, the remarks appended to a reply, and the
// reaction lines for games, accessories, photos and settings.
package dialogue

import (
	"fmt"
	"strings"

	"github.com/nathoo/petcore/engine/state"
	"github.com/nathoo/petcore/types"
)

// Rand is the random source used for remark chances and line picks.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Remarks appended by Decorate.
const (
	NightRemark   = " It's getting late, isn't it? The stars must be beautiful tonight."
	MorningRemark = " The morning light is so energizing, don't you think?"
	HungryRemark  = " By the way, I'm getting a bit hungry. Could I have a treat soon?"
	TiredRemark   = " *yawns* Sorry, I'm feeling a bit sleepy today."
)

// Interpolate replaces {name}, {species}, {color}, {level} and
// {species.<prop>} placeholders with values from the pet and its species.
func Interpolate(text string, p *types.Profile, defs *state.Defs) string {
	if !strings.Contains(text, "{") {
		return text
	}
	text = strings.ReplaceAll(text, "{name}", p.Name)
	text = strings.ReplaceAll(text, "{species}", string(p.Species))
	text = strings.ReplaceAll(text, "{color}", p.Color)
	text = strings.ReplaceAll(text, "{level}", fmt.Sprintf("%d", p.Level))

	for {
		start := strings.Index(text, "{species.")
		if start < 0 {
			break
		}
		end := strings.Index(text[start:], "}")
		if end < 0 {
			break
		}
		prop := text[start+len("{species.") : start+end]
		text = text[:start] + state.SpeciesProp(defs, p.Species, prop) + text[start+end+1:]
	}
	return text
}

// Greeting returns the time-aware greeting prefix, trailing space included.
func Greeting(tod types.TimeOfDay) string {
	switch tod {
	case types.Morning:
		return "Good morning! "
	case types.Evening:
		return "Good evening! "
	case types.Night:
		return "Hello there, night owl! "
	default:
		return "Hello! "
	}
}

// Decorate appends at most one time-of-day remark and at most one need
// remark to text. Each remark is skipped when text already mentions it.
func Decorate(text string, ctx types.Context, t types.Tuning, r Rand) string {
	lower := strings.ToLower(text)

	switch {
	case ctx.TimeOfDay == types.Night && !strings.Contains(lower, "night") && r.Float64() < t.TimeRemarkChance:
		text += NightRemark
	case ctx.TimeOfDay == types.Morning && !strings.Contains(lower, "morning") && r.Float64() < t.TimeRemarkChance:
		text += MorningRemark
	}

	switch {
	case ctx.Hungry && !strings.Contains(lower, "hungry") && !strings.Contains(lower, "food") && r.Float64() < t.NeedRemarkChance:
		text += HungryRemark
	case ctx.Tired && !strings.Contains(lower, "tired") && !strings.Contains(lower, "sleep") && r.Float64() < t.NeedRemarkChance:
		text += TiredRemark
	}

	return text
}

// GameLine picks the pet's reaction to a finished game.
func GameLine(score int, r Rand) string {
	lines := []string{
		"That was so much fun! We scored %d points! Want to play again?",
		"Wow! %d points! We make a great team!",
		"That was awesome! We got %d points! I'm getting better at this!",
	}
	return fmt.Sprintf(lines[r.Intn(len(lines))], score)
}

// AccessoryLine picks the pet's reaction to wearing a new accessory.
func AccessoryLine(name string, r Rand) string {
	lines := []string{
		"How do I look in my new %s? I think it suits me!",
		"Do you like my %s? I feel so stylish!",
		"This %s is perfect! Thank you for helping me look fabulous!",
	}
	return fmt.Sprintf(lines[r.Intn(len(lines))], name)
}

// UnequipLine is the reaction to taking an accessory off.
func UnequipLine(name string) string {
	return fmt.Sprintf("Ahh, that feels lighter! I'll keep my %s safe for later.", name)
}

// PhotoLine is the reaction to a captured photo.
const PhotoLine = "That's a great photo! I look amazing, don't I? You can share it with your friends now!"

// SettingsLine announces a name, species or colour change.
func SettingsLine(p *types.Profile) string {
	return fmt.Sprintf("Great! My name is now %s, and I'm a %s %s!", p.Name, p.Color, p.Species)
}

// LevelUpLine announces reaching level.
func LevelUpLine(level int) string {
	return fmt.Sprintf("Wow! I just reached level %d! Thank you for helping me grow!", level)
}

// WelcomeLine greets the user on first run.
func WelcomeLine(name string) string {
	return fmt.Sprintf("Hi there! I'm %s. I'm so excited to meet you! What would you like to do today?", name)
}

// MissedLine greets the user after an absence of days.
func MissedLine(days int) string {
	unit := "days"
	if days == 1 {
		unit = "day"
	}
	return fmt.Sprintf("I missed you so much! It's been %d %s since we last played together!", days, unit)
}
