package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"knurl/internal/settings"
)

// programHost adapts the engine's Host boundary onto a running Bubble Tea
// program: feedback and alerts become program messages, settings go to disk.
// It is the only writer of the settings file, so fileMu makes every
// load-modify-save atomic and no writer loses another's fields.
type programHost struct {
	mu           sync.Mutex
	p            *tea.Program
	fileMu       sync.Mutex
	settingsPath string
}

// attach binds the host to a program. Pushes arriving before attach are
// dropped; the engine re-pushes on its next state change anyway.
func (h *programHost) attach(p *tea.Program) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.p = p
}

func (h *programHost) send(msg tea.Msg) {
	h.mu.Lock()
	p := h.p
	h.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func (h *programHost) PushFeedback(volume int, muted bool) {
	h.send(feedbackMsg{Volume: volume, Muted: muted})
}

func (h *programHost) ShowAlert() {
	h.send(alertMsg{})
}

// PersistSettings load-modifies-saves so UI-owned fields (theme) survive.
func (h *programHost) PersistSettings(address string, step, volume int) {
	h.fileMu.Lock()
	defer h.fileMu.Unlock()

	s, _ := settings.Load(h.settingsPath)
	s.SpeakerAddress = address
	s.VolumeStep = step
	s.Value = volume
	_ = settings.Save(h.settingsPath, s)
}

// SaveTheme persists the theme choice without disturbing engine-owned fields.
func (h *programHost) SaveTheme(name string) {
	h.fileMu.Lock()
	defer h.fileMu.Unlock()

	s, _ := settings.Load(h.settingsPath)
	s.Theme = name
	_ = settings.Save(h.settingsPath, s)
}
