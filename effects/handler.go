package effects

// Handler consumes dispatched effects. Both entry points are synchronous at
// the call boundary; the work they trigger may complete asynchronously.
//
// The module ships two implementations: surface.Handler renders effects
// against a live render context, probe.Handler records and stubs them for
// tests.
type Handler interface {
	// HandleRequest must eventually settle the effect's outcome exactly
	// once, with a value or an error.
	HandleRequest(*RequestEffect)

	// HandleSend executes the effect's callback. There is no outcome.
	HandleSend(*SendEffect)

	// Close releases handler-held resources. Idempotent. The component
	// that created the handler owns calling it; the dispatcher never
	// closes handlers on deregistration.
	Close()
}
