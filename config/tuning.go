package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/nathoo/petcore/engine/state"
	"github.com/nathoo/petcore/types"
	"gopkg.in/yaml.v3"
)

//go:embed tuning.yaml
var defaultTuning []byte

// LoadTuning decodes the embedded defaults and then, if path is set, the
// override file on top of them. Keys absent from the override keep their
// default values.
func LoadTuning(path string) (types.Tuning, error) {
	t := state.DefaultTuning()
	if err := yaml.Unmarshal(defaultTuning, &t); err != nil {
		return t, fmt.Errorf("failed to unmarshal embedded tuning: %w", err)
	}
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("reading tuning file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parsing tuning file %s: %w", path, err)
	}
	if err := validateTuning(t); err != nil {
		return t, fmt.Errorf("tuning file %s: %w", path, err)
	}
	return t, nil
}

func validateTuning(t types.Tuning) error {
	switch {
	case t.RepeatThreshold < 0 || t.RepeatThreshold > 1:
		return fmt.Errorf("repeat_threshold %v outside [0,1]", t.RepeatThreshold)
	case t.TimeRemarkChance < 0 || t.TimeRemarkChance > 1:
		return fmt.Errorf("time_remark_chance %v outside [0,1]", t.TimeRemarkChance)
	case t.NeedRemarkChance < 0 || t.NeedRemarkChance > 1:
		return fmt.Errorf("need_remark_chance %v outside [0,1]", t.NeedRemarkChance)
	case t.XPCharsPerPoint <= 0:
		return fmt.Errorf("xp_chars_per_point must be positive")
	case t.RecentWindow < 0 || t.ReplyDelay < 0:
		return fmt.Errorf("recent_window and reply_delay must not be negative")
	}
	return nil
}
