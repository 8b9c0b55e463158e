package engine

import (
	"context"
	"time"

	"knurl/internal/settings"
)

// OnRotate handles one batch of rotation detents. The cache and UI update
// synchronously and unconditionally; the network write is debounced so a
// fast spin produces exactly one outbound command carrying the final settled
// value. Intermediate values are never sent.
func (e *Engine) OnRotate(ticks, step int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.alive {
		return
	}
	if step != e.step && settings.ValidStep(step) {
		e.step = step
	}

	volume, muted := e.cache.Read()
	target := clampVolume(volume + ticks*e.step)
	e.cache.ApplyOptimistic(&target, nil)
	e.pendingVolume = target
	e.rotating = true
	e.host.PushFeedback(target, muted)

	// Last burst wins: restarting the window drops the previous timer.
	if e.writeTimer != nil {
		e.writeTimer.Stop()
	}
	gen := e.gen
	e.writeTimer = time.AfterFunc(e.debounce, func() { e.flushRotation(gen) })
}

// flushRotation runs when the debounce window closes. It issues the single
// volume write for the latest accumulated value, unmuting first if the
// device was muted.
func (e *Engine) flushRotation(gen uint64) {
	e.mu.Lock()

	if gen != e.gen || !e.alive {
		e.mu.Unlock()
		return
	}
	e.writeTimer = nil
	target := e.pendingVolume

	if e.addr == "" {
		e.rotating = false
		e.host.ShowAlert()
		e.mu.Unlock()
		return
	}

	_, muted := e.cache.Read()
	if muted {
		// Rotating the dial implies the user wants to hear the change.
		unmuted := false
		e.cache.ApplyOptimistic(nil, &unmuted)
		e.host.PushFeedback(target, false)
	}

	e.writeSeq++
	seq := e.writeSeq
	ctx, addr := e.ctx, e.addr
	e.mu.Unlock()

	go e.writeVolume(ctx, gen, seq, addr, target, muted)
}

// writeVolume performs the debounced volume write: optional unmute, the
// volume set, and an advisory read-back that logs a mismatch without
// reverting the UI (the next poll reconciles). Completion clears the
// rotation gate and resumes polling unless a newer burst superseded it.
func (e *Engine) writeVolume(ctx context.Context, gen, seq uint64, addr string, target int, unmuteFirst bool) {
	err := func() error {
		client, err := e.conn.ensure(addr)
		if err != nil {
			return err
		}
		opctx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()
		if unmuteFirst {
			if err := client.SetMuted(opctx, false); err != nil {
				return err
			}
		}
		if err := client.SetVolume(opctx, target); err != nil {
			return err
		}
		if actual, err := client.GetVolume(opctx); err == nil && actual != target {
			e.logf("speaker reports volume %d after setting %d", actual, target)
		}
		return nil
	}()

	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.gen {
		return
	}
	if seq != e.writeSeq || e.writeTimer != nil {
		// Superseded by a newer burst; its completion owns the gate.
		return
	}
	e.rotating = false
	if err != nil {
		e.conn.invalidate()
		e.logf("volume write failed: %v", err)
		e.host.ShowAlert()
	} else {
		volume, _ := e.cache.Read()
		e.host.PersistSettings(e.addr, e.step, volume)
	}
	e.startPollingLocked(e.gen)
}
