package engine

// Host is the control-surface boundary the engine pushes to: feedback
// rendering, settings persistence, and transient failure signaling.
//
// Host methods are called with the engine's internal lock held, so
// implementations must return promptly and must never call back into the
// Engine synchronously.
type Host interface {
	// PushFeedback renders the current volume and mute state.
	PushFeedback(volume int, muted bool)

	// PersistSettings round-trips the knob settings through the host's store.
	PersistSettings(address string, step, volume int)

	// ShowAlert signals a user-visible transient failure.
	ShowAlert()
}
