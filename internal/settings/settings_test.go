package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if s.SpeakerAddress != "" {
		t.Fatalf("SpeakerAddress = %q, want empty", s.SpeakerAddress)
	}
	if s.VolumeStep != DefaultStep {
		t.Fatalf("VolumeStep = %d, want %d", s.VolumeStep, DefaultStep)
	}
	if s.Value != DefaultVolume {
		t.Fatalf("Value = %d, want %d", s.Value, DefaultVolume)
	}
}

func TestLoadReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "knurl")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	file := filepath.Join(dir, "settings.toml")
	content := "speaker_address = \"192.168.1.40\"\nvolume_step = 2\nvalue = 73\n"
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if s.SpeakerAddress != "192.168.1.40" {
		t.Fatalf("SpeakerAddress = %q, want 192.168.1.40", s.SpeakerAddress)
	}
	if s.VolumeStep != 2 {
		t.Fatalf("VolumeStep = %d, want 2", s.VolumeStep)
	}
	if s.Value != 73 {
		t.Fatalf("Value = %d, want 73", s.Value)
	}
}

func TestLoadMalformedFileDegradesToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("volume_step = not toml {"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if s != Defaults() {
		t.Fatalf("Load = %+v, want defaults", s)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Settings
		want Settings
	}{
		{
			"valid passes through",
			Settings{SpeakerAddress: "10.0.0.9", VolumeStep: 10, Value: 80},
			Settings{SpeakerAddress: "10.0.0.9", VolumeStep: 10, Value: 80},
		},
		{
			"invalid step falls back",
			Settings{VolumeStep: 3, Value: 80},
			Settings{VolumeStep: DefaultStep, Value: 80},
		},
		{
			"value above range falls back",
			Settings{VolumeStep: 5, Value: 140},
			Settings{VolumeStep: 5, Value: DefaultVolume},
		},
		{
			"negative value falls back",
			Settings{VolumeStep: 5, Value: -1},
			Settings{VolumeStep: 5, Value: DefaultVolume},
		},
		{
			"address is trimmed",
			Settings{SpeakerAddress: "  10.0.0.9 ", VolumeStep: 5, Value: 10},
			Settings{SpeakerAddress: "10.0.0.9", VolumeStep: 5, Value: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.toml")

	in := Settings{SpeakerAddress: "10.0.0.9", VolumeStep: 2, Value: 31, Theme: "Slate"}
	if err := Save(path, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out != in {
		t.Fatalf("round trip = %+v, want %+v", out, in)
	}
}

func TestValidStep(t *testing.T) {
	for _, step := range []int{1, 2, 5, 10} {
		if !ValidStep(step) {
			t.Errorf("ValidStep(%d) = false, want true", step)
		}
	}
	for _, step := range []int{-1, 0, 3, 4, 7, 11, 100} {
		if ValidStep(step) {
			t.Errorf("ValidStep(%d) = true, want false", step)
		}
	}
}

func TestNextStepCycles(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{1, 2},
		{2, 5},
		{5, 10},
		{10, 1},
		{7, DefaultStep}, // invalid resets
	}
	for _, tt := range tests {
		if got := NextStep(tt.in); got != tt.want {
			t.Errorf("NextStep(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
