package engine

import "time"

// Reconciliation poller: a self-rescheduling timer chain, not a fixed-rate
// ticker. Each wake schedules the next one only after its own reads have
// completed, so cycles can never overlap no matter how slow the speaker is.
// Changes made outside this program (the speaker's own app, another remote)
// become visible here.

// startPollingLocked transitions the poll loop from idle to scheduled.
// Calling it while a loop is already active is a no-op, so at most one loop
// exists per instance. Caller holds e.mu.
func (e *Engine) startPollingLocked(gen uint64) {
	if e.pollActive || !e.alive || e.addr == "" {
		return
	}
	e.pollActive = true
	e.schedulePollLocked(gen)
}

// stopPollingLocked cancels any pending wake and returns the loop to idle.
// Idempotent. Caller holds e.mu.
func (e *Engine) stopPollingLocked() {
	e.pollActive = false
	if e.pollTimer != nil {
		e.pollTimer.Stop()
		e.pollTimer = nil
	}
}

func (e *Engine) schedulePollLocked(gen uint64) {
	e.pollTimer = time.AfterFunc(e.pollEvery, func() { e.pollWake(gen) })
}

// pollWake runs one reconciliation cycle: re-read the device, merge into the
// cache unless a rotation write is in flight, reschedule. Read failures are
// logged but never alerted; surfacing every background failure would be
// noisy, and the next wake retries reconnection anyway.
func (e *Engine) pollWake(gen uint64) {
	e.mu.Lock()
	if gen != e.gen || !e.pollActive {
		e.mu.Unlock()
		return
	}
	if e.addr == "" {
		// Nothing to poll against; shut the loop down rather than spin.
		e.stopPollingLocked()
		e.mu.Unlock()
		return
	}
	ctx, addr := e.ctx, e.addr
	e.mu.Unlock()

	volume, muted, err := e.readBoth(ctx, addr)

	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.gen {
		return
	}
	switch {
	case err != nil:
		e.conn.invalidate()
		e.logf("poll failed: %v", err)
	case e.rotating:
		// A local write is in flight; applying this read would clobber the
		// optimistic value the user just dialed in.
	default:
		if cv, cm := e.cache.Read(); cv != volume || cm != muted {
			e.cache.ApplyAuthoritative(volume, muted)
			e.host.PushFeedback(volume, muted)
		}
	}

	if e.pollActive {
		e.schedulePollLocked(gen)
	}
}
