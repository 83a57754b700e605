package memory

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/nathoo/petcore/types"
)

func user(text string) types.Message {
	return types.Message{Text: text, Sender: types.SenderUser}
}

func pet(text string) types.Message {
	return types.Message{Text: text, Sender: types.SenderPet}
}

func TestExtract(t *testing.T) {
	log := []types.Message{
		user("Hi! My name is Alice."),
		pet("My name is Buddy!"),
		user("I love pizza and pasta. I hate broccoli!"),
		user("Today is my birthday!"),
		user("my name is Alice"),
		user("Nothing to see here"),
	}

	got := Extract(log)
	want := []types.Fact{
		{Type: types.FactPersonalInfo, Content: "User's name is Alice", Subject: "Alice"},
		{Type: types.FactPreference, Content: "User likes pizza and pasta", Subject: "pizza and pasta"},
		{Type: types.FactPreference, Content: "User dislikes broccoli", Subject: "broccoli"},
		{Type: types.FactEvent, Content: "Today is my birthday!", Subject: "my birthday"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Extract mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_Variants(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"i am called", "I am called Sam", "User's name is Sam"},
		{"contraction", "I'm Jordan, hello", "User's name is Jordan"},
		{"enjoy", "i enjoy long walks", "User likes long walks"},
		{"don't like", "I don't like thunder?", "User dislikes thunder"},
		{"tomorrow", "tomorrow will be sunny", "tomorrow will be sunny"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts := Extract([]types.Message{user(tt.text)})
			if len(facts) == 0 {
				t.Fatalf("no fact extracted from %q", tt.text)
			}
			if facts[0].Content != tt.want {
				t.Errorf("Content = %q, want %q", facts[0].Content, tt.want)
			}
		})
	}
}

func TestExtract_NoMatch(t *testing.T) {
	if facts := Extract([]types.Message{user("the weather is nice")}); len(facts) != 0 {
		t.Errorf("facts = %v, want none", facts)
	}
	if facts := Extract(nil); facts != nil {
		t.Errorf("facts = %v, want nil", facts)
	}
}

func TestRecall(t *testing.T) {
	tests := []struct {
		name   string
		recent []types.Message
		want   string
		ok     bool
	}{
		{
			name:   "name wins over preference",
			recent: []types.Message{user("I like cats"), user("my name is Bo")},
			want:   "Of course I remember you, Bo! It's great to chat with you again!",
			ok:     true,
		},
		{
			name:   "preference",
			recent: []types.Message{user("I like cats!")},
			want:   "I remember you told me you like cats. That's really interesting!",
			ok:     true,
		},
		{
			name:   "favorite without like pattern",
			recent: []types.Message{user("My favorite color is green")},
			want:   "I remember you mentioned that My favorite color is green. That's really interesting!",
			ok:     true,
		},
		{
			name:   "pet lines ignored",
			recent: []types.Message{pet("my name is Buddy")},
			ok:     false,
		},
		{
			name:   "nothing",
			recent: []types.Message{user("do you remember?")},
			ok:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Recall(tt.recent)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Recall = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestGroupByDay(t *testing.T) {
	loc := time.UTC
	ms := func(d, h int) int64 {
		return time.Date(2026, 5, d, h, 0, 0, 0, loc).UnixMilli()
	}
	log := []types.Message{
		{Text: "a", Sender: types.SenderUser, Timestamp: ms(1, 9)},
		{Text: "b", Sender: types.SenderPet, Timestamp: ms(1, 23)},
		{Text: "c", Sender: types.SenderUser, Timestamp: ms(3, 0)},
	}

	days := GroupByDay(log, loc)
	if len(days) != 2 {
		t.Fatalf("days = %d, want 2", len(days))
	}
	if len(days[0].Messages) != 2 || len(days[1].Messages) != 1 {
		t.Errorf("message split = %d/%d, want 2/1", len(days[0].Messages), len(days[1].Messages))
	}
	if !days[1].Date.Equal(time.Date(2026, 5, 3, 0, 0, 0, 0, loc)) {
		t.Errorf("second day = %v", days[1].Date)
	}
}
