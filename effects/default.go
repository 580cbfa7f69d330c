package effects

import "sync"

var (
	defaultMu         sync.RWMutex
	defaultDispatcher = New(NewConfig())
)

// Default returns the process-wide dispatcher.
func Default() *Dispatcher {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultDispatcher
}

// SetDefault replaces the process-wide dispatcher, typically with one built
// from a loaded config. Call it before any handler registers.
func SetDefault(d *Dispatcher) {
	if d == nil {
		panic("effects: SetDefault with nil dispatcher")
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultDispatcher = d
}

// Request dispatches eff through the process-wide dispatcher.
func Request(eff *RequestEffect) *Outcome { return Default().Request(eff) }

// Send dispatches eff through the process-wide dispatcher.
func Send(eff *SendEffect) { Default().Send(eff) }

// RegisterHandler registers h on the process-wide dispatcher.
func RegisterHandler(h Handler) { Default().RegisterHandler(h) }

// DeregisterHandler deregisters h from the process-wide dispatcher.
func DeregisterHandler(h Handler) { Default().DeregisterHandler(h) }

// Reset clears the process-wide dispatcher's registration set, closing each
// handler. Test isolation only.
func Reset() { Default().Reset() }
