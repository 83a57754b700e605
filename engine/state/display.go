package state

import "github.com/nathoo/petcore/types"

// Display is the presentation metadata for an emotion.
type Display struct {
	Label string
	Color string // hex, consumed by the TUI
}

var emotionDisplay = map[types.Emotion]Display{
	types.EmotionHappy:    {Label: "Happy", Color: "#FACC15"},
	types.EmotionSad:      {Label: "Sad", Color: "#60A5FA"},
	types.EmotionExcited:  {Label: "Excited", Color: "#FB923C"},
	types.EmotionPlayful:  {Label: "Playful", Color: "#4ADE80"},
	types.EmotionHungry:   {Label: "Hungry", Color: "#F87171"},
	types.EmotionShocked:  {Label: "Shocked", Color: "#C084FC"},
	types.EmotionDancing:  {Label: "Dancing", Color: "#F472B6"},
	types.EmotionLoving:   {Label: "Loving", Color: "#FB7185"},
	types.EmotionSleepy:   {Label: "Sleepy", Color: "#818CF8"},
	types.EmotionLaughing: {Label: "Laughing", Color: "#FDE047"},
	types.EmotionScared:   {Label: "Scared", Color: "#9CA3AF"},
	types.EmotionCurious:  {Label: "Curious", Color: "#2DD4BF"},
	types.EmotionThinking: {Label: "Thinking", Color: "#A78BFA"},
	types.EmotionProud:    {Label: "Proud", Color: "#F59E0B"},
}

// EmotionDisplay returns the label and colour for an emotion. Unknown values
// get a generic entry labelled with the raw value.
func EmotionDisplay(e types.Emotion) Display {
	if d, ok := emotionDisplay[e]; ok {
		return d
	}
	return Display{Label: string(e), Color: "#A3A3A3"}
}

// KnownEmotion reports whether e is one of the enumerated emotions.
func KnownEmotion(e types.Emotion) bool {
	_, ok := emotionDisplay[e]
	return ok
}
