package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pet.log")
	log, closer, err := New(Options{File: path, Level: "debug"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info().Str("rule", "greeting").Msg("reply")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &line); err != nil {
		t.Fatalf("log line not JSON: %q", data)
	}
	if line["rule"] != "greeting" || line["message"] != "reply" || line["level"] != "info" {
		t.Errorf("line = %v", line)
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, _, err := New(Options{Level: "WARN", Console: true, Stderr: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info().Msg("quiet")
	log.Warn().Msg("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") || !strings.Contains(out, "loud") {
		t.Errorf("console output = %q", out)
	}
}

func TestNew_NoSinks(t *testing.T) {
	log, closer, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if log.GetLevel() != zerolog.Disabled {
		t.Errorf("level = %v, want disabled", log.GetLevel())
	}
	if err := closer.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	if l, err := ParseLevel(""); err != nil || l != zerolog.InfoLevel {
		t.Errorf("empty = %v, %v", l, err)
	}
	if l, err := ParseLevel("Debug"); err != nil || l != zerolog.DebugLevel {
		t.Errorf("Debug = %v, %v", l, err)
	}
	if _, err := ParseLevel("chatty"); err == nil {
		t.Error("expected error for unknown level")
	}
}
