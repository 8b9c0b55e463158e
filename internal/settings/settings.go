// Package settings handles knurl's persisted knob settings.
// Settings are stored in ~/.config/knurl/settings.toml.
package settings

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Settings holds the persisted state of one knob instance.
type Settings struct {
	// SpeakerAddress is the network address of the bound speaker.
	// Empty means no device is configured (local-only mode).
	SpeakerAddress string `toml:"speaker_address"`
	// VolumeStep is how many volume units one detent moves (1, 2, 5 or 10).
	VolumeStep int `toml:"volume_step"`
	// Value is the last-known volume level, 0-100.
	Value int `toml:"value"`
	// Theme is the UI color theme name.
	Theme string `toml:"theme"`
}

const (
	defaultSettingsPath = "~/.config/knurl/settings.toml"

	// DefaultVolume seeds the cache before the first authoritative read.
	DefaultVolume = 50
	// DefaultStep is used when the persisted step is missing or invalid.
	DefaultStep = 5
)

var validSteps = []int{1, 2, 5, 10}

// DefaultPath returns the default settings file path.
func DefaultPath() string {
	return defaultSettingsPath
}

// Defaults returns the settings used when nothing has been persisted yet.
func Defaults() Settings {
	return Settings{VolumeStep: DefaultStep, Value: DefaultVolume}
}

// Load reads settings from the given path, falling back to defaults if missing.
// It never fails hard: an unreadable or malformed file degrades to defaults so
// the knob always starts.
func Load(path string) (Settings, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Defaults(), nil
	}

	s := Defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return s, nil // Graceful degradation
	}

	if err := toml.Unmarshal(bytes, &s); err != nil {
		return Defaults(), nil // Graceful degradation
	}

	return Normalize(s), nil
}

// Save writes settings to the given path, creating directories as needed.
func Save(path string, s Settings) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	bytes, err := toml.Marshal(Normalize(s))
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Normalize clamps out-of-range fields back to valid values.
func Normalize(s Settings) Settings {
	s.SpeakerAddress = strings.TrimSpace(s.SpeakerAddress)
	if !ValidStep(s.VolumeStep) {
		s.VolumeStep = DefaultStep
	}
	if s.Value < 0 || s.Value > 100 {
		s.Value = DefaultVolume
	}
	return s
}

// ValidStep reports whether step is one of the supported detent sizes.
func ValidStep(step int) bool {
	for _, v := range validSteps {
		if step == v {
			return true
		}
	}
	return false
}

// NextStep returns the step size after the given one, cycling 1 -> 2 -> 5 -> 10 -> 1.
func NextStep(step int) int {
	for i, v := range validSteps {
		if step == v {
			return validSteps[(i+1)%len(validSteps)]
		}
	}
	return DefaultStep
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultSettingsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
