// Package engine synchronizes a knob's local volume/mute reading with one
// networked speaker.
//
// # Overview
//
// The engine owns an optimistic local copy of volume and mute, debounces and
// serializes outbound commands, periodically re-reads the device to catch
// externally-caused drift, and recovers transparently from transient
// connectivity loss. The control surface drives it through five operations
// (OnAppear, OnRotate, OnMuteToggle, OnSettingsChanged, OnDisappear) and
// receives output through the Host interface.
//
// # Components
//
//   - cache.go: last-known volume/mute, fed by an optimistic writer (user
//     input) and an authoritative writer (device reads)
//   - conn.go: lazy connection holder with invalidate-on-failure
//   - debounce.go: rotation bursts coalesce into one write per settle
//   - poller.go: self-rescheduling reconciliation loop
//   - engine.go: orchestration, lifecycle, mute write path
//
// # Consistency rules
//
// User intent wins while a write is in flight: rotation sets a gate that
// makes concurrent poll results be discarded, which prevents a stale read
// from briefly snapping the UI back to the pre-write value. Once the write
// settles the poller's authoritative reads win again. At most one debounce
// timer and one poll loop exist per instance; starting a new one supersedes
// the old.
//
// # Failure policy
//
// No error escapes the engine as a fault. Any failed operation invalidates
// the cached connection so the next attempt on either path redials.
// User-initiated failures alert; background poll failures only log. A
// mismatch between a written value and the device's read-back is logged and
// left for the next poll to reconcile, never abruptly reverted. The worst
// outcome is "temporarily out of sync", self-healed by the next successful
// poll or user action.
package engine
