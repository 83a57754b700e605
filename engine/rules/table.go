package rules

import (
	"fmt"

	"github.com/nathoo/petcore/engine/dialogue"
	"github.com/nathoo/petcore/engine/memory"
	"github.com/nathoo/petcore/engine/state"
	"github.com/nathoo/petcore/types"
)

// Table is the default response table in priority order.
var Table = []Rule{
	{ID: "greeting", When: keywords("hello", "hi", "hey"), Then: greeting},
	{ID: "how_are_you", When: keywords("how are you"), Then: howAreYou},
	{ID: "play", When: func(env *Env) bool { return env.Ctx.WantsToPlay }, Then: play},
	{ID: "accessory", When: keywords("accessory", "wear", "dress", "outfit"), Then: accessory},
	{ID: "achievement", When: keywords("achievement", "award", "trophy"), Then: achievements},
	{ID: "photo", When: keywords("share", "photo", "picture", "snapshot"), Then: photo},
	{ID: "stats", When: keywords("stats", "level", "progress"), Then: stats},
	{ID: "food", When: keywords("food", "treat", "hungry"), Then: food},
	{ID: "negative_mood", When: keywords("bad", "sad", "upset"), Then: negativeMood},
	{ID: "positive_mood", When: keywords("good", "happy", "great"), Then: positiveMood},
	{ID: "dance", When: keywords("dance", "music", "sing"), Then: dance},
	{ID: "surprise", When: keywords("wow", "amazing", "surprise"), Then: surprise},
	{ID: "affection", When: keywords("love", "cuddle", "hug"), Then: affection},
	{ID: "sleep", When: keywords("sleep", "tired", "rest"), Then: sleep},
	{ID: "joke", When: keywords("joke", "funny", "laugh"), Then: joke},
	{ID: "fear", When: keywords("scared", "fear", "afraid"), Then: fear},
	{ID: "curiosity", When: keywords("curious", "wonder", "what if"), Then: curiosity},
	{ID: "memory", When: keywords("remember", "memory"), Then: recall},
	{ID: "name_query", When: keywords("name"), Then: nameQuery},
	{ID: "name_mention", When: func(env *Env) bool { return env.Ctx.MentionsName }, Then: nameMention},
}

// DefaultJoke is told when the content pack has no jokes.
const DefaultJoke = "Why don't pets play poker in the jungle? Too many cheetahs! Haha!"

func greeting(env *Env) Reply {
	prefix := dialogue.Greeting(env.Ctx.TimeOfDay)
	if env.Ctx.MentionsName {
		return Reply{Text: prefix + "I'm so happy you remembered my name! What would you like to do today?", Emotion: types.EmotionExcited}
	}
	return Reply{Text: prefix + "It's great to see you! How can I make your day better?", Emotion: types.EmotionExcited}
}

func howAreYou(env *Env) Reply {
	ctx := env.Ctx
	current := env.Pet.Emotion

	if ctx.RepeatedTopic {
		feeling := "great"
		switch {
		case ctx.Hungry:
			feeling = "a bit hungry"
		case ctx.Tired:
			feeling = "a little tired"
		case ctx.Unhappy:
			feeling = "a bit down"
		}
		return Reply{
			Text:    fmt.Sprintf("You asked me that recently! But I'm still feeling %s. How about you, any changes?", feeling),
			Emotion: current,
		}
	}

	switch {
	case ctx.Hungry:
		return Reply{
			Text:    fmt.Sprintf("I'm feeling a bit hungry actually. Maybe a treat would be nice? Otherwise, I'm %s!", current),
			Emotion: types.EmotionHungry,
		}
	case ctx.Tired:
		return Reply{
			Text:    fmt.Sprintf("I'm a little tired today. Maybe we could do something relaxing? I'm feeling %s though!", current),
			Emotion: types.EmotionSleepy,
		}
	case ctx.Unhappy:
		return Reply{
			Text:    "I've been feeling a bit down lately. Maybe we could do something fun together?",
			Emotion: types.EmotionSad,
		}
	default:
		return Reply{
			Text:    fmt.Sprintf("I'm feeling %s today! Thanks for asking. I'm at level %d now!", current, env.Pet.Level),
			Emotion: current,
		}
	}
}

func play(env *Env) Reply {
	if playful(env) {
		return Reply{
			Text:    `YES! I'd LOVE to play! I have some fun games we can try! Just type /game or say "show me games"!`,
			Emotion: types.EmotionExcited,
			Panels:  []types.Panel{types.PanelGames},
		}
	}
	return Reply{
		Text:    "I'd enjoy playing a game with you! I have a few we could try. Want to see them?",
		Emotion: types.EmotionPlayful,
	}
}

func accessory(env *Env) Reply {
	return Reply{
		Text:    "I love getting dressed up! Check out my accessory collection and help me look fabulous!",
		Emotion: types.EmotionExcited,
		Panels:  []types.Panel{types.PanelAccessories},
	}
}

func achievements(env *Env) Reply {
	return Reply{
		Text:    fmt.Sprintf("I've earned %d achievements so far! Want to see them?", len(env.Pet.Achievements)),
		Emotion: types.EmotionProud,
		Panels:  []types.Panel{types.PanelAchievements},
	}
}

func photo(env *Env) Reply {
	return Reply{
		Text:    "Let's take a picture together! You can share it with your friends!",
		Emotion: types.EmotionExcited,
		Panels:  []types.Panel{types.PanelShare},
	}
}

func stats(env *Env) Reply {
	p := env.Pet
	stage := state.Stage(env.Defs, p)
	return Reply{
		Text: fmt.Sprintf("I'm currently at level %d with %d experience points, and I'm a %s now! My happiness is at %d%%, and my energy is at %d%%. Want to see more stats?",
			p.Level, p.Experience, stage.Name, p.Stats.Happiness, p.Stats.Energy),
		Emotion: types.EmotionCurious,
	}
}

func food(env *Env) Reply {
	if env.Ctx.Hungry {
		return Reply{
			Text:    dialogue.Interpolate("Yes please! I'm starving! My favorite is {species.treat}!", env.Pet, env.Defs),
			Emotion: types.EmotionHungry,
		}
	}
	return Reply{
		Text:    dialogue.Interpolate("I'm not super hungry right now, but I never say no to a treat! Especially {species.treat_short}!", env.Pet, env.Defs),
		Emotion: types.EmotionHappy,
	}
}

func negativeMood(env *Env) Reply {
	if affectionate(env) {
		return Reply{
			Text:    "Oh no! I'm here for you! *nuzzles close* Remember that tomorrow is a new day, and I'll be right here with you.",
			Emotion: types.EmotionLoving,
		}
	}
	return Reply{
		Text:    "I'm sorry to hear that. Maybe I can cheer you up with my silly antics? Remember, I'm always here for you.",
		Emotion: types.EmotionSad,
	}
}

func positiveMood(env *Env) Reply {
	if affectionate(env) {
		return Reply{
			Text:    "That's wonderful! Your happiness means everything to me! Let's keep that positive energy going!",
			Emotion: types.EmotionLoving,
		}
	}
	return Reply{
		Text:    "That's wonderful! I'm happy when you're happy! What should we do to celebrate?",
		Emotion: types.EmotionHappy,
	}
}

func dance(env *Env) Reply {
	return Reply{
		Text:    dialogue.Interpolate("I love to dance! Watch me show off my moves! ♪ {species.sound} ♪", env.Pet, env.Defs),
		Emotion: types.EmotionDancing,
	}
}

func surprise(env *Env) Reply {
	return Reply{
		Text:    "I know, right? Isn't that incredible? I'm always amazed by new things!",
		Emotion: types.EmotionShocked,
	}
}

func affection(env *Env) Reply {
	if affectionate(env) {
		return Reply{
			Text:    "Aww, I love you too! You're my absolute favorite person in the whole wide world! *snuggles closer*",
			Emotion: types.EmotionLoving,
		}
	}
	return Reply{
		Text:    "Aww, I love you too! You're the best friend ever! I'm so lucky to have you.",
		Emotion: types.EmotionLoving,
	}
}

func sleep(env *Env) Reply {
	return Reply{
		Text:    "*yawn* I could use a little nap too... Maybe we can cuddle up together?",
		Emotion: types.EmotionSleepy,
	}
}

func joke(env *Env) Reply {
	text := DefaultJoke
	if n := len(env.Defs.Jokes); n > 0 {
		text = dialogue.Interpolate(env.Defs.Jokes[env.Rand.Intn(n)], env.Pet, env.Defs)
	}
	return Reply{Text: text, Emotion: types.EmotionLaughing}
}

func fear(env *Env) Reply {
	return Reply{
		Text:    "Don't worry, I'll protect you! Even though I'm a bit scared too... We can be brave together!",
		Emotion: types.EmotionScared,
	}
}

func curiosity(env *Env) Reply {
	if curious(env) {
		return Reply{
			Text:    "Ooh, that's fascinating! Tell me more! I love learning new things and exploring ideas with you!",
			Emotion: types.EmotionCurious,
		}
	}
	return Reply{
		Text:    "Hmm, that's interesting! Tell me more about that! I'm always curious about new things.",
		Emotion: types.EmotionCurious,
	}
}

func recall(env *Env) Reply {
	if text, ok := memory.Recall(env.Recent); ok {
		return Reply{Text: text, Emotion: types.EmotionThinking}
	}
	return Reply{
		Text:    "I remember all our conversations! Would you like to see my memory bank?",
		Emotion: types.EmotionHappy,
		Panels:  []types.Panel{types.PanelMemory},
	}
}

func nameQuery(env *Env) Reply {
	p := env.Pet
	experience := "still learning"
	if p.Level > 5 {
		experience = "quite experienced"
	}
	return Reply{
		Text:    fmt.Sprintf("My name is %s! I'm a %s %s. I'm %s at level %d. What's your name?", p.Name, p.Color, p.Species, experience, p.Level),
		Emotion: types.EmotionHappy,
	}
}

func nameMention(env *Env) Reply {
	return Reply{
		Text:    fmt.Sprintf("Yes, that's me! %s at your service! How can I help you today? I'm always excited to chat with you!", env.Pet.Name),
		Emotion: types.EmotionExcited,
	}
}
