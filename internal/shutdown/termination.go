package shutdown

import (
	"fmt"
	"sync"
)

// Handler defines a function that handles verification termination
type Handler func(code int, reason string)

// DefaultHandler panics with a descriptive message. The CLI boundary replaces
// it with an os.Exit handler; embedding applications may install their own.
func DefaultHandler(code int, reason string) {
	panic(fmt.Sprintf("LICENSE VERIFICATION FAILED (exit code %d): %s", code, reason))
}

// Manager handles termination behavior
type Manager struct {
	handler Handler
	mu      sync.RWMutex
}

// New creates a new termination manager with the default handler
func New() *Manager {
	return &Manager{
		handler: DefaultHandler,
	}
}

// SetHandler updates the termination handler
// This should be called during application startup, before any verification occurs
func (m *Manager) SetHandler(handler Handler) {
	if handler == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = handler
}

// Terminate invokes the termination handler with the exit code the
// verification outcome maps to
func (m *Manager) Terminate(code int, reason string) {
	m.mu.RLock()
	handler := m.handler
	m.mu.RUnlock()

	handler(code, reason)
}
