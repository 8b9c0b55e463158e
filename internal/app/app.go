package app

import (
	"context"
	"time"

	"knurl/internal/settings"
	"knurl/internal/ui"
)

// Options configure the knurl application.
type Options struct {
	SettingsPath string // empty uses default ~/.config/knurl/settings.toml
	Speaker      string // overrides the persisted speaker address
	Step         int    // overrides the persisted volume step
	PollEvery    int    // seconds; zero uses the engine default
}

// Run boots the knurl TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	s, err := settings.Load(opts.SettingsPath)
	if err != nil {
		// Load degrades to defaults rather than failing; keep the contract.
		s = settings.Defaults()
	}
	if opts.Speaker != "" {
		s.SpeakerAddress = opts.Speaker
	}
	if settings.ValidStep(opts.Step) {
		s.VolumeStep = opts.Step
	}

	var pollEvery time.Duration
	if opts.PollEvery > 0 {
		pollEvery = time.Duration(opts.PollEvery) * time.Second
	}

	return ui.Run(ui.Options{
		Context:      ctx,
		Settings:     s,
		SettingsPath: opts.SettingsPath,
		PollInterval: pollEvery,
	})
}
