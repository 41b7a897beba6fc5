package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/akyairhashvil/pomo/internal/models"
	"github.com/akyairhashvil/pomo/internal/util"
)

var (
	ErrNoPresets     = errors.New("no presets configured")
	ErrUnknownPreset = errors.New("unknown preset")
)

// PresetTable maps a preset identifier to its work/break durations.
type PresetTable map[string]models.Preset

// DefaultPresets is the built-in preset table.
func DefaultPresets() PresetTable {
	return PresetTable{
		"25/5":  {Work: 25, Break: 5},
		"50/10": {Work: 50, Break: 10},
	}
}

// Lookup returns the preset for key.
func (t PresetTable) Lookup(key string) (models.Preset, error) {
	p, ok := t[key]
	if !ok {
		return models.Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, key)
	}
	return p, nil
}

// Keys returns preset identifiers ordered by work duration, then name.
func (t PresetTable) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := t[keys[i]], t[keys[j]]
		if a.Work != b.Work {
			return a.Work < b.Work
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Next returns the identifier after key in Keys order, wrapping around.
func (t PresetTable) Next(key string) string {
	keys := t.Keys()
	if len(keys) == 0 {
		return ""
	}
	for i, k := range keys {
		if k == key {
			return keys[(i+1)%len(keys)]
		}
	}
	return keys[0]
}

// Validate rejects empty tables and non-positive durations.
func (t PresetTable) Validate() error {
	if len(t) == 0 {
		return ErrNoPresets
	}
	for key, p := range t {
		if key == "" {
			return errors.New("preset with empty name")
		}
		if p.Work < 1 || p.Break < 1 {
			return fmt.Errorf("preset %q: durations must be at least one minute (work=%d break=%d)", key, p.Work, p.Break)
		}
	}
	return nil
}

// CoerceSessionGoal clamps a user-supplied goal to the accepted range.
func CoerceSessionGoal(goal int) int {
	return util.Clamp(goal, MinSessionGoal, MaxSessionGoal)
}
