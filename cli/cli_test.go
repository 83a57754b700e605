package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/nathoo/petcore/engine"
	"github.com/nathoo/petcore/engine/state"
	"github.com/nathoo/petcore/host"
	"github.com/nathoo/petcore/types"
)

// testDefs returns a minimal catalog for CLI testing.
func testDefs() *state.Defs {
	return &state.Defs{
		Species: map[types.Species]types.SpeciesDef{
			types.SpeciesDog: {
				ID:           types.SpeciesDog,
				Colors:       []string{"golden"},
				DefaultColor: "golden",
				Props:        map[string]string{"treat": "bacon treats", "treat_short": "bacon", "sound": "Woof woof!"},
				Stages:       []types.StageDef{{Name: "Puppy", MinLevel: 1}},
			},
		},
		Accessories: []types.AccessoryDef{{ID: "party_hat", Name: "Party Hat", MinLevel: 1}},
	}
}

func newTestCLI(t *testing.T, input string) (*CLI, *bytes.Buffer) {
	t.Helper()
	noon := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.Local)
	eng := engine.New(testDefs(), engine.WithSeed(1), engine.WithClock(func() time.Time { return noon }))
	var out bytes.Buffer
	c := &CLI{
		Host: host.New(eng),
		In:   strings.NewReader(input),
		Out:  &out,
	}
	return c, &out
}

func run(t *testing.T, c *CLI, greeting types.Result) {
	t.Helper()
	if err := c.Run(context.Background(), greeting); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestCLI_Greeting(t *testing.T) {
	c, out := newTestCLI(t, "/quit\n")
	run(t, c, types.Result{Utterance: "Hi there! I'm Buddy."})

	if !strings.HasPrefix(out.String(), "Buddy: Hi there! I'm Buddy.\n") {
		t.Errorf("expected greeting first, got:\n%s", out.String())
	}
}

func TestCLI_Conversation(t *testing.T) {
	c, out := newTestCLI(t, "hello\n/quit\n")
	run(t, c, types.Result{})

	output := out.String()
	if !strings.Contains(output, "Buddy: Hello! It's great to see you!") {
		t.Errorf("expected greeting reply, got:\n%s", output)
	}
	if !strings.Contains(output, "[Goodbye.]") {
		t.Error("expected goodbye")
	}
	if got := c.Host.Engine.State.Pet.Experience; got != 5 {
		t.Errorf("Experience = %d, want 5", got)
	}
}

func TestCLI_PaddedMessageXP(t *testing.T) {
	c, _ := newTestCLI(t, "   hello   \n/quit\n")
	run(t, c, types.Result{})

	if got := c.Host.Engine.State.Pet.Experience; got != 6 {
		t.Errorf("Experience = %d, want 6", got)
	}
}

func TestCLI_HelpCommand(t *testing.T) {
	c, out := newTestCLI(t, "/help\n/quit\n")
	run(t, c, types.Result{})

	output := out.String()
	for _, cmd := range []string{"/stats", "/memory", "/achievements", "/wear", "/game", "/settings", "/trace"} {
		if !strings.Contains(output, cmd) {
			t.Errorf("help should mention %s", cmd)
		}
	}
}

func TestCLI_UnknownMetaCommand(t *testing.T) {
	c, out := newTestCLI(t, "/foo\n/quit\n")
	run(t, c, types.Result{})

	if !strings.Contains(out.String(), "[Unknown command: /foo. Type /help for available commands.]") {
		t.Errorf("expected unknown command message, got:\n%s", out.String())
	}
}

func TestCLI_TraceToggle(t *testing.T) {
	c, out := newTestCLI(t, "/trace\nhello\n/trace\n/quit\n")
	run(t, c, types.Result{})

	output := out.String()
	if !strings.Contains(output, "[Trace output enabled.]") {
		t.Error("expected trace enabled")
	}
	if !strings.Contains(output, "[trace] rule=greeting") {
		t.Errorf("expected trace line, got:\n%s", output)
	}
	if !strings.Contains(output, "[Trace output disabled.]") {
		t.Error("expected trace disabled")
	}
}

func TestCLI_EmptyAndCommentLines(t *testing.T) {
	c, _ := newTestCLI(t, "\n   \n# a comment\n/quit\n")
	run(t, c, types.Result{})

	if n := len(c.Host.Engine.State.Log); n != 0 {
		t.Errorf("blank and comment lines should not reach the engine, log has %d entries", n)
	}
}

func TestCLI_EchoInput(t *testing.T) {
	c, out := newTestCLI(t, "hello\n/quit\n")
	c.EchoInput = true
	run(t, c, types.Result{})

	if !strings.Contains(out.String(), "> hello\n") {
		t.Errorf("expected echoed input, got:\n%s", out.String())
	}
}

func TestCLI_EndOfInput(t *testing.T) {
	c, _ := newTestCLI(t, "hello\n")
	run(t, c, types.Result{})

	if n := len(c.Host.Engine.State.Log); n != 2 {
		t.Errorf("log has %d entries, want 2", n)
	}
}

func TestCLI_LevelUpAnnouncement(t *testing.T) {
	c, out := newTestCLI(t, "/game memory 100\n/quit\n")
	run(t, c, types.Result{})

	if !strings.Contains(out.String(), "Buddy: *** Wow! I just reached level 2! Thank you for helping me grow! ***") {
		t.Errorf("expected level-up announcement, got:\n%s", out.String())
	}
}

func TestCLI_CancelDuringReply(t *testing.T) {
	c, _ := newTestCLI(t, "hello\n")
	c.Delay = time.Hour
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx, types.Result{}) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if n := len(c.Host.Engine.State.Log); n != 0 {
		t.Errorf("cancelled reply should not be processed, log has %d entries", n)
	}
}
