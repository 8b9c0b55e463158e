package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"knurl/internal/engine"
	"knurl/internal/settings"
	"knurl/internal/speaker"
)

const alertDuration = 2 * time.Second

// Options configures the UI.
type Options struct {
	Context      context.Context
	Settings     settings.Settings
	SettingsPath string
	PollInterval time.Duration
	Dial         engine.DialFunc // nil uses the real speaker client
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx     context.Context
	engine  *engine.Engine
	host    *programHost
	address string
	step    int

	// UI state
	keys     keyMap
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool

	// Knob state, pushed by the engine
	volume int
	muted  bool

	// Alert banner
	alertActive bool
	alertSeq    int

	// Address editor
	editingAddress bool
	addressInput   textinput.Model

	bar progress.Model
}

// Messages pushed by the engine host adapter.
type (
	feedbackMsg struct {
		Volume int
		Muted  bool
	}
	alertMsg      struct{}
	alertClearMsg int
)

// New creates a new Bubble Tea model.
func New(opts Options, eng *engine.Engine) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	input := textinput.New()
	input.Placeholder = "192.168.1.40"
	input.CharLimit = 128

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	return Model{
		ctx:          ctx,
		engine:       eng,
		address:      opts.Settings.SpeakerAddress,
		step:         opts.Settings.VolumeStep,
		keys:         DefaultKeyMap(),
		theme:        GetTheme(opts.Settings.Theme),
		volume:       opts.Settings.Value,
		addressInput: input,
		bar:          bar,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		// A fresh instance assumes unmuted until the first authoritative read.
		m.engine.OnAppear(m.address, m.volume, false, m.step)
		return nil
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = barWidth(msg.Width)
		m.ready = true
		return m, nil

	case feedbackMsg:
		m.volume = msg.Volume
		m.muted = msg.Muted
		return m, nil

	case alertMsg:
		m.alertActive = true
		m.alertSeq++
		seq := m.alertSeq
		return m, tea.Tick(alertDuration, func(time.Time) tea.Msg {
			return alertClearMsg(seq)
		})

	case alertClearMsg:
		// A newer alert restarts the clock; only the latest tick clears.
		if int(msg) == m.alertSeq {
			m.alertActive = false
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.editingAddress {
		return m.handleAddressKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.VolumeUp):
		return m, m.rotateCmd(1)

	case key.Matches(msg, m.keys.VolumeDown):
		return m, m.rotateCmd(-1)

	case key.Matches(msg, m.keys.CoarseUp):
		return m, m.rotateCmd(5)

	case key.Matches(msg, m.keys.CoarseDown):
		return m, m.rotateCmd(-5)

	case key.Matches(msg, m.keys.MutePress), key.Matches(msg, m.keys.MuteTap):
		// Press and tap are deliberately identical.
		eng := m.engine
		return m, engineCmd(func() { eng.OnMuteToggle() })

	case key.Matches(msg, m.keys.CycleStep):
		m.step = settings.NextStep(m.step)
		eng, addr, step := m.engine, m.address, m.step
		return m, engineCmd(func() { eng.OnSettingsChanged(addr, step) })

	case key.Matches(msg, m.keys.EditAddress):
		m.editingAddress = true
		m.addressInput.SetValue(m.address)
		m.addressInput.CursorEnd()
		return m, m.addressInput.Focus()

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		host, name := m.host, m.theme.Name
		return m, engineCmd(func() {
			if host != nil {
				host.SaveTheme(name)
			}
		})
	}

	return m, nil
}

// handleAddressKey processes keys while the address editor is open.
func (m Model) handleAddressKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.editingAddress = false
		m.addressInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		m.address = m.addressInput.Value()
		m.editingAddress = false
		m.addressInput.Blur()
		eng, addr, step := m.engine, m.address, m.step
		return m, engineCmd(func() { eng.OnSettingsChanged(addr, step) })
	}

	var cmd tea.Cmd
	m.addressInput, cmd = m.addressInput.Update(msg)
	return m, cmd
}

// engineCmd runs an engine operation off the program loop. Engine pushes
// arrive back as program messages, so calling the engine inline from Update
// would deadlock the loop on its own Send.
func engineCmd(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return nil
	}
}

func (m Model) rotateCmd(ticks int) tea.Cmd {
	eng, step := m.engine, m.step
	return engineCmd(func() { eng.OnRotate(ticks, step) })
}

// Run starts the Bubble Tea program and blocks until the user exits.
func Run(opts Options) error {
	dial := opts.Dial
	if dial == nil {
		dial = func(address string) (speaker.Controller, error) {
			return speaker.NewClient(address)
		}
	}

	host := &programHost{settingsPath: opts.SettingsPath}
	eng := engine.New(engine.Options{
		Host:         host,
		Dial:         dial,
		PollInterval: opts.PollInterval,
	})

	m := New(opts, eng)
	m.host = host
	p := tea.NewProgram(m, tea.WithAltScreen())
	host.attach(p)

	_, err := p.Run()
	eng.OnDisappear()
	return err
}
