// Package types defines the shared data structures for the petcore engine.
// This package contains only type definitions, no logic and no methods.
package types

import "time"

// Emotion is the pet's single active affective display state.
type Emotion string

const (
	EmotionHappy    Emotion = "happy"
	EmotionSad      Emotion = "sad"
	EmotionExcited  Emotion = "excited"
	EmotionPlayful  Emotion = "playful"
	EmotionHungry   Emotion = "hungry"
	EmotionShocked  Emotion = "shocked"
	EmotionDancing  Emotion = "dancing"
	EmotionLoving   Emotion = "loving"
	EmotionSleepy   Emotion = "sleepy"
	EmotionLaughing Emotion = "laughing"
	EmotionScared   Emotion = "scared"
	EmotionCurious  Emotion = "curious"
	EmotionThinking Emotion = "thinking"
	EmotionProud    Emotion = "proud"
)

// Species is the kind of animal the pet is.
type Species string

const (
	SpeciesDog  Species = "dog"
	SpeciesCat  Species = "cat"
	SpeciesBird Species = "bird"
)

// Sender identifies who authored a conversation entry.
type Sender string

const (
	SenderUser Sender = "user"
	SenderPet  Sender = "pet"
)

// Panel is a declarative request for the host shell to show a view.
type Panel string

const (
	PanelGames        Panel = "games"
	PanelAccessories  Panel = "accessories"
	PanelAchievements Panel = "achievements"
	PanelShare        Panel = "share"
	PanelMemory       Panel = "memory"
)

// GameType identifies a mini-game reporting a score.
type GameType string

const (
	GameMemory GameType = "memory"
	GameFetch  GameType = "fetch"
	GamePuzzle GameType = "puzzle"
)

// TimeOfDay is the coarse wall-clock period used by greetings and remarks.
type TimeOfDay string

const (
	Morning TimeOfDay = "morning"
	Day     TimeOfDay = "day"
	Evening TimeOfDay = "evening"
	Night   TimeOfDay = "night"
)

// FactType classifies an extracted memory.
type FactType string

const (
	FactPersonalInfo FactType = "Personal Information"
	FactPreference   FactType = "Preference"
	FactEvent        FactType = "Event"
)

// Stats are the four vital gauges, each in [0,100].
type Stats struct {
	Happiness    int `json:"happiness"`
	Energy       int `json:"energy"`
	Hunger       int `json:"hunger"`
	Intelligence int `json:"intelligence"`
}

// Personality holds the long-term traits, each in [0,100].
type Personality struct {
	Playfulness  int `json:"playfulness"`
	Affection    int `json:"affection"`
	Curiosity    int `json:"curiosity"`
	Independence int `json:"independence"`
}

// Profile is the complete mutable pet state.
type Profile struct {
	Name            string
	Species         Species
	Color           string
	Level           int
	Experience      int
	Emotion         Emotion
	Stats           Stats
	Personality     Personality
	Achievements    []string
	Equipped        string // empty when nothing is worn
	Owned           []string
	LastInteraction time.Time
}

// State is the complete persisted session: the pet plus its conversation log.
type State struct {
	Pet Profile
	Log []Message
}

// Message is one entry of the conversation log.
type Message struct {
	Text      string `json:"text"`
	Sender    Sender `json:"sender"`
	Timestamp int64  `json:"timestamp"` // epoch millis
}

// Fact is a structured memory extracted from a user message.
type Fact struct {
	Type    FactType
	Content string
	Subject string // captured name/preference/event text
}

// Context is the feature record derived for one incoming message.
type Context struct {
	Raw           string
	Lower         string
	MentionsName  bool
	RepeatedTopic bool
	Hungry        bool
	Tired         bool
	Unhappy       bool
	WantsToPlay   bool
	TimeOfDay     TimeOfDay
}

// Result is the output of a single engine operation.
type Result struct {
	Utterance     string
	Emotion       Emotion
	Panels        []Panel
	Announcements []string // level-up lines, in order
	Unlocked      []string // achievement IDs unlocked by this operation
	XP            int
	LevelUps      int
	RuleID        string // response rule that produced the utterance
	Noop          bool   // true when the input was ignored
}

// Tuning holds the engine's adjustable constants.
type Tuning struct {
	RepeatThreshold      float64       `yaml:"repeat_threshold"`
	MinWordLen           int           `yaml:"min_word_len"`
	RecentWindow         int           `yaml:"recent_window"`
	PersonalityThreshold int           `yaml:"personality_threshold"`
	LowStatThreshold     int           `yaml:"low_stat_threshold"`
	TimeRemarkChance     float64       `yaml:"time_remark_chance"`
	NeedRemarkChance     float64       `yaml:"need_remark_chance"`
	ReplyDelay           time.Duration `yaml:"reply_delay"`
	BaseXP               int           `yaml:"base_xp"`
	XPCharsPerPoint      int           `yaml:"xp_chars_per_point"`
	AbsencePerDay        int           `yaml:"absence_per_day"`
	AbsenceCap           int           `yaml:"absence_cap"`
	AbsenceFloor         int           `yaml:"absence_floor"`
}

// SpeciesDef describes a species and the words its dialogue templates use.
type SpeciesDef struct {
	ID           Species
	Colors       []string
	DefaultColor string
	Props        map[string]string // treat, sound, magic, ... for {species.<prop>}
	Stages       []StageDef
}

// StageDef is an evolution stage reached at MinLevel.
type StageDef struct {
	Name      string
	MinLevel  int
	Abilities []string
}

// AccessoryDef is a catalog entry for a wearable or toy.
type AccessoryDef struct {
	ID       string
	Name     string
	Category string
	MinLevel int
	Species  []Species // empty means all species
}

// AchievementDef is a catalog entry for an unlockable achievement.
type AchievementDef struct {
	ID          string
	Name        string
	Description string
	Rarity      string
	XPReward    int
	SourceOrder int
}
