package engine

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"knurl/internal/settings"
)

const (
	defaultDebounceWindow = 300 * time.Millisecond
	defaultPollInterval   = 2 * time.Second
	defaultRequestTimeout = 5 * time.Second
)

// Options configure a synchronization Engine.
type Options struct {
	Host Host
	Dial DialFunc

	// DebounceWindow is how long the engine waits for a rotation burst to
	// settle before writing. Zero uses the default.
	DebounceWindow time.Duration
	// PollInterval is the reconciliation poll cadence. Zero uses the default.
	PollInterval time.Duration
	// RequestTimeout bounds each network operation. Zero uses the default.
	RequestTimeout time.Duration
	// Logf receives diagnostic output. Nil uses log.Printf.
	Logf func(format string, args ...any)
}

// Engine keeps one knob's local reading, the bound speaker's actual state,
// and the persisted settings mutually consistent. All input arrives through
// the On* operations; all output leaves through the Host.
//
// One mutex serializes every event callback, so callbacks run to completion
// without interleaving. Network I/O happens only in spawned goroutines that
// re-acquire the lock and re-check the instance generation before touching
// state, so a completion bound to a torn-down or rebound instance is a no-op.
type Engine struct {
	mu sync.Mutex

	host Host
	conn *connHolder
	logf func(format string, args ...any)

	debounce  time.Duration
	pollEvery time.Duration
	timeout   time.Duration

	cache Cache

	addr  string
	step  int
	alive bool

	// gen is bumped on every teardown or address rebind; timer and
	// completion callbacks captured an older gen and bail out.
	gen uint64

	ctx    context.Context
	cancel context.CancelFunc

	rotating      bool
	writeTimer    *time.Timer
	pendingVolume int
	writeSeq      uint64

	pollActive bool
	pollTimer  *time.Timer
}

// New builds an Engine. Host and Dial are required.
func New(opts Options) *Engine {
	e := &Engine{
		host:      opts.Host,
		conn:      &connHolder{dial: opts.Dial},
		logf:      opts.Logf,
		debounce:  opts.DebounceWindow,
		pollEvery: opts.PollInterval,
		timeout:   opts.RequestTimeout,
	}
	if e.logf == nil {
		e.logf = log.Printf
	}
	if e.debounce <= 0 {
		e.debounce = defaultDebounceWindow
	}
	if e.pollEvery <= 0 {
		e.pollEvery = defaultPollInterval
	}
	if e.timeout <= 0 {
		e.timeout = defaultRequestTimeout
	}
	return e
}

// OnAppear binds the engine to the persisted settings, pushes initial
// feedback immediately, and, when an address is configured, runs one
// asynchronous authoritative read to correct the optimistic initial guess
// and then starts the reconciliation poller. A failed connect alerts but
// keeps the optimistic values; settings are persisted either way.
func (e *Engine) OnAppear(address string, volume int, muted bool, step int) {
	e.mu.Lock()

	e.alive = true
	e.gen++
	gen := e.gen
	ctx, cancel := context.WithCancel(context.Background())
	e.ctx, e.cancel = ctx, cancel

	e.addr = strings.TrimSpace(address)
	e.step = step
	if !settings.ValidStep(e.step) {
		e.step = settings.DefaultStep
	}
	v := clampVolume(volume)
	e.cache.ApplyOptimistic(&v, &muted)

	e.host.PushFeedback(v, muted)
	e.host.PersistSettings(e.addr, e.step, v)

	if e.addr == "" {
		e.mu.Unlock()
		return
	}
	addr := e.addr
	e.mu.Unlock()

	go e.initialSync(ctx, gen, addr)
}

// OnMuteToggle flips the local mute flag immediately and writes the new
// state to the device in the background. Press and tap are identical. On
// failure the optimistic state stands; the next poll cycle corrects it,
// which avoids visible flicker on transient failures.
func (e *Engine) OnMuteToggle() {
	e.mu.Lock()

	if !e.alive {
		e.mu.Unlock()
		return
	}

	volume, muted := e.cache.Read()
	target := !muted
	e.cache.ApplyOptimistic(nil, &target)
	e.host.PushFeedback(volume, target)

	if e.addr == "" {
		e.host.ShowAlert()
		e.mu.Unlock()
		return
	}

	ctx, gen, addr := e.ctx, e.gen, e.addr
	e.mu.Unlock()

	go e.writeMute(ctx, gen, addr, target)
}

// OnSettingsChanged adopts a new step and, when the address actually
// changed, tears down the connection and poller and reinitializes against
// the new address. An unchanged address never reconnects.
func (e *Engine) OnSettingsChanged(address string, step int) {
	e.mu.Lock()

	if !e.alive {
		e.mu.Unlock()
		return
	}

	if settings.ValidStep(step) {
		e.step = step
	}
	addr := strings.TrimSpace(address)
	volume, _ := e.cache.Read()

	if addr == e.addr {
		e.host.PersistSettings(e.addr, e.step, volume)
		e.mu.Unlock()
		return
	}

	// Rebind: nothing scheduled against the old address may touch state
	// after this point.
	e.gen++
	gen := e.gen
	if e.writeTimer != nil {
		e.writeTimer.Stop()
		e.writeTimer = nil
	}
	e.stopPollingLocked()
	e.rotating = false
	e.conn.invalidate()
	if e.cancel != nil {
		e.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.ctx, e.cancel = ctx, cancel

	e.addr = addr
	e.host.PersistSettings(e.addr, e.step, volume)

	if e.addr == "" {
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()

	go e.initialSync(ctx, gen, addr)
}

// OnDisappear tears the instance down: poller stopped, debounce timer
// cancelled, in-flight operations cancelled, connection released. Idempotent.
// No operation runs against this instance afterwards; any timer that already
// fired bails out on the generation check.
func (e *Engine) OnDisappear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.alive {
		return
	}
	e.alive = false
	e.gen++
	if e.writeTimer != nil {
		e.writeTimer.Stop()
		e.writeTimer = nil
	}
	e.stopPollingLocked()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.conn.invalidate()
	e.rotating = false
}

// initialSync performs the one authoritative read after appear or rebind,
// then starts the reconciliation poller. Unlike poll failures, its failure
// alerts: the read was user-initiated. The poller starts either way so a
// transient failure here still self-heals.
func (e *Engine) initialSync(ctx context.Context, gen uint64, addr string) {
	volume, muted, err := e.readBoth(ctx, addr)

	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.gen {
		return
	}
	switch {
	case err != nil:
		e.conn.invalidate()
		e.logf("initial speaker read failed: %v", err)
		e.host.ShowAlert()
	case e.rotating:
		// A rotation got in first; its value wins until it settles.
	default:
		e.cache.ApplyAuthoritative(volume, muted)
		e.host.PushFeedback(volume, muted)
	}
	e.startPollingLocked(gen)
}

// writeMute performs the background mute write with an advisory read-back.
func (e *Engine) writeMute(ctx context.Context, gen uint64, addr string, muted bool) {
	err := func() error {
		client, err := e.conn.ensure(addr)
		if err != nil {
			return err
		}
		opctx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()
		if err := client.SetMuted(opctx, muted); err != nil {
			return err
		}
		if actual, err := client.GetMuted(opctx); err == nil && actual != muted {
			e.logf("speaker reports mute %v after setting %v", actual, muted)
		}
		return nil
	}()
	if err == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.gen {
		return
	}
	e.conn.invalidate()
	e.logf("mute write failed: %v", err)
	e.host.ShowAlert()
}

// readBoth reads volume and mute concurrently; both must land before the
// caller reconciles anything.
func (e *Engine) readBoth(ctx context.Context, addr string) (int, bool, error) {
	client, err := e.conn.ensure(addr)
	if err != nil {
		return 0, false, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	opctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var (
		wg      sync.WaitGroup
		volume  int
		muted   bool
		volErr  error
		muteErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		volume, volErr = client.GetVolume(opctx)
	}()
	go func() {
		defer wg.Done()
		muted, muteErr = client.GetMuted(opctx)
	}()
	wg.Wait()

	if volErr != nil {
		return 0, false, volErr
	}
	if muteErr != nil {
		return 0, false, muteErr
	}
	return volume, muted, nil
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
