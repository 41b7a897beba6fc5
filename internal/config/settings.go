package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/akyairhashvil/pomo/internal/models"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Settings is the user-editable configuration file.
type Settings struct {
	Presets       PresetTable `yaml:"presets"`
	DefaultPreset string      `yaml:"default_preset"`
	SessionGoal   int         `yaml:"session_goal"`
	Resume        string      `yaml:"resume"`
	Sound         bool        `yaml:"sound"`
	Theme         string      `yaml:"theme"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		Presets:       DefaultPresets(),
		DefaultPreset: DefaultPresetKey,
		SessionGoal:   DefaultSessionGoal,
		Resume:        ResumeAuto,
		Sound:         true,
		Theme:         "default",
	}
}

// Load reads settings from path. A missing file yields DefaultSettings.
// Fields absent from the file keep their defaults.
func Load(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return Settings{}, fmt.Errorf("read config: %w", err)
	}

	// Decode into a copy so a presets map in the file replaces the
	// built-in table instead of merging into it.
	var file Settings
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Settings{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if file.Presets != nil {
		s.Presets = file.Presets
	}
	if file.DefaultPreset != "" {
		s.DefaultPreset = file.DefaultPreset
	}
	if file.SessionGoal != 0 {
		s.SessionGoal = file.SessionGoal
	}
	if file.Resume != "" {
		s.Resume = file.Resume
	}
	if file.Theme != "" {
		s.Theme = file.Theme
	}
	if hasKey(data, "sound") {
		s.Sound = file.Sound
	}

	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("config %s: %w", path, err)
	}
	return s, nil
}

// Validate rejects unusable preset tables and coerces the remaining fields.
func (s *Settings) Validate() error {
	if err := s.Presets.Validate(); err != nil {
		return err
	}
	if _, ok := s.Presets[s.DefaultPreset]; !ok {
		fallback := s.Presets.Keys()[0]
		log.Warn().Str("preset", s.DefaultPreset).Str("fallback", fallback).Msg("unknown default preset")
		s.DefaultPreset = fallback
	}
	if coerced := CoerceSessionGoal(s.SessionGoal); coerced != s.SessionGoal {
		log.Warn().Int("goal", s.SessionGoal).Int("coerced", coerced).Msg("session goal out of range")
		s.SessionGoal = coerced
	}
	if s.Resume != ResumeAuto && s.Resume != ResumeManual {
		log.Warn().Str("resume", s.Resume).Msg("unknown resume policy, using auto")
		s.Resume = ResumeAuto
	}
	return nil
}

// Configuration builds the initial timer configuration from the settings.
func (s Settings) Configuration() models.Configuration {
	return models.Configuration{
		PresetKey:   s.DefaultPreset,
		Preset:      s.Presets[s.DefaultPreset],
		SessionGoal: s.SessionGoal,
	}
}

func hasKey(data []byte, key string) bool {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return false
	}
	_, ok := raw[key]
	return ok
}
