package engine

import (
	"fmt"
	"sync"

	"knurl/internal/speaker"
)

// DialFunc constructs a device client for the given speaker address.
// Construction alone never proves liveness; only a subsequent successful
// read or write does.
type DialFunc func(address string) (speaker.Controller, error)

// connHolder lazily owns zero-or-one live device client handle. Any caller
// that observes an operation failure through a handle must call invalidate,
// so the next caller on either path (write or poll) reconnects instead of
// reusing a handle that is known bad. No retry loop lives here.
type connHolder struct {
	mu     sync.Mutex
	dial   DialFunc
	addr   string
	client speaker.Controller
}

// ensure returns the cached handle when it was dialed for the requested
// address, dialing fresh otherwise. The address check matters after a rebind:
// a late callback for the old address may re-cache a handle to the old
// device, and the new binding must not inherit it.
func (h *connHolder) ensure(address string) (speaker.Controller, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.client != nil && h.addr == address {
		return h.client, nil
	}
	client, err := h.dial(address)
	if err != nil {
		h.addr = ""
		h.client = nil
		return nil, fmt.Errorf("connect to speaker %q: %w", address, err)
	}
	h.addr = address
	h.client = client
	return client, nil
}

// invalidate drops the cached handle. Idempotent.
func (h *connHolder) invalidate() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.addr = ""
	h.client = nil
}
