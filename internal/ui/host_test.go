package ui

import (
	"path/filepath"
	"sync"
	"testing"

	"knurl/internal/settings"
)

func TestHostSettingsWritersPreserveEachOther(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	h := &programHost{settingsPath: path}

	h.PersistSettings("10.0.0.9", 5, 40)
	h.SaveTheme("Slate")
	h.PersistSettings("10.0.0.9", 2, 73)

	s, err := settings.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Theme != "Slate" {
		t.Fatalf("Theme = %q, want Slate (clobbered by PersistSettings)", s.Theme)
	}
	if s.VolumeStep != 2 || s.Value != 73 {
		t.Fatalf("step/value = %d/%d, want 2/73", s.VolumeStep, s.Value)
	}

	h.SaveTheme("Dracula")
	s, err = settings.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.SpeakerAddress != "10.0.0.9" || s.Value != 73 {
		t.Fatalf("engine fields lost across theme save: %+v", s)
	}
}

func TestHostSettingsWritesSerialize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	h := &programHost{settingsPath: path}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(v int) {
			defer wg.Done()
			h.PersistSettings("10.0.0.9", 5, v)
		}(i % 101)
		go func() {
			defer wg.Done()
			h.SaveTheme("Slate")
		}()
	}
	wg.Wait()

	// Only SaveTheme writes the theme, so it survives every interleaving
	// as long as each load-modify-save is atomic.
	s, err := settings.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Theme != "Slate" {
		t.Fatalf("Theme = %q, want Slate", s.Theme)
	}
	if s.SpeakerAddress != "10.0.0.9" {
		t.Fatalf("SpeakerAddress = %q, want 10.0.0.9", s.SpeakerAddress)
	}
}
