package effects

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FailMode selects how dispatch behaves when no handler is registered.
type FailMode string

const (
	// FailFast panics when an effect is dispatched without a registered
	// handler. Intended for development builds, where a missing handler is
	// a wiring bug that should surface immediately.
	FailFast FailMode = "fast"

	// FailSoft degrades gracefully: request outcomes resolve to nil and
	// sends are dropped. Intended for release builds.
	FailSoft FailMode = "soft"
)

var (
	// ErrNoHandler reports dispatch with zero registered handlers.
	ErrNoHandler = errors.New("no effect handler registered")

	// ErrHandlerRegistered reports a double registration of one instance.
	ErrHandlerRegistered = errors.New("effect handler already registered")

	// ErrHandlerUnregistered reports deregistration of an unknown instance.
	ErrHandlerUnregistered = errors.New("effect handler not registered")
)

// Config carries the dispatcher's policy knobs.
type Config struct {
	// OnMissingHandler selects the no-handler policy. Empty means FailFast.
	OnMissingHandler FailMode

	// WarnOnMultipleHandlers logs a warning when a second handler is
	// registered. The registration still succeeds: some apps intentionally
	// run two render surfaces in parallel.
	WarnOnMultipleHandlers bool

	// Logger receives dispatcher diagnostics. Nil means no logging.
	Logger *zap.Logger
}

// NewConfig returns the development defaults: fail fast on missing handlers
// and warn on multiple registrations.
func NewConfig() Config {
	return Config{
		OnMissingHandler:       FailFast,
		WarnOnMultipleHandlers: true,
	}
}

// Dispatcher routes effects from producers to the active handler. The
// registration set preserves registration order; dispatch always targets the
// first-registered handler. All state is serialized under one mutex so the
// dispatcher can be shared across goroutines.
type Dispatcher struct {
	id     string
	conf   Config
	logger *zap.Logger

	mu       sync.Mutex
	handlers []Handler
}

func New(conf Config) *Dispatcher {
	if conf.OnMissingHandler == "" {
		conf.OnMissingHandler = FailFast
	}
	logger := conf.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		id:     uuid.New().String(),
		conf:   conf,
		logger: logger,
	}
}

// Request forwards eff to the first registered handler and returns the
// effect's outcome. The handler's entry point runs synchronously before
// Request returns; the caller awaits the outcome separately, so the call
// itself never blocks on rendering.
//
// With no handler registered, FailFast panics with ErrNoHandler and
// FailSoft resolves the outcome to nil.
func (d *Dispatcher) Request(eff *RequestEffect) *Outcome {
	h := d.first()
	if h == nil {
		d.missing("request", eff.Attrs())
		eff.Outcome().Resolve(nil)
		return eff.Outcome()
	}
	d.logger.Debug("dispatching request effect",
		zap.String("dispatcher", d.id),
		zap.Stringer("type", eff.ResultType()),
		zap.Uint64("fingerprint", eff.Attrs().Fingerprint()))
	h.HandleRequest(eff)
	return eff.Outcome()
}

// Send forwards eff to the first registered handler. With no handler
// registered, FailFast panics with ErrNoHandler and FailSoft drops the
// effect silently.
func (d *Dispatcher) Send(eff *SendEffect) {
	h := d.first()
	if h == nil {
		d.missing("send", eff.Attrs())
		return
	}
	d.logger.Debug("dispatching send effect",
		zap.String("dispatcher", d.id),
		zap.Uint64("fingerprint", eff.Attrs().Fingerprint()))
	h.HandleSend(eff)
}

// RegisterHandler adds h to the registration set. Registering the same
// instance twice is a wiring defect and panics with ErrHandlerRegistered.
func (d *Dispatcher) RegisterHandler(h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, existing := range d.handlers {
		if existing == h {
			panic(fmt.Errorf("%w: %T", ErrHandlerRegistered, h))
		}
	}
	d.handlers = append(d.handlers, h)
	if len(d.handlers) > 1 && d.conf.WarnOnMultipleHandlers {
		d.logger.Warn("multiple effect handlers registered; dispatch only targets the first",
			zap.String("dispatcher", d.id),
			zap.Int("handlers", len(d.handlers)))
	}
}

// DeregisterHandler removes h from the registration set. Deregistering an
// instance that is not registered is a wiring defect and panics with
// ErrHandlerUnregistered. The handler is not closed: the component that
// created it owns disposal.
func (d *Dispatcher) DeregisterHandler(h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, existing := range d.handlers {
		if existing == h {
			d.handlers = append(d.handlers[:i], d.handlers[i+1:]...)
			return
		}
	}
	panic(fmt.Errorf("%w: %T", ErrHandlerUnregistered, h))
}

// HandlerCount returns the size of the registration set.
func (d *Dispatcher) HandlerCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.handlers)
}

// Reset clears the registration set and closes every handler that was
// registered. Meant for test isolation, not for production teardown.
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	handlers := d.handlers
	d.handlers = nil
	d.mu.Unlock()

	for _, h := range handlers {
		h.Close()
	}
}

func (d *Dispatcher) first() Handler {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.handlers) == 0 {
		return nil
	}
	return d.handlers[0]
}

func (d *Dispatcher) missing(op string, attrs *Attrs) {
	if d.conf.OnMissingHandler == FailFast {
		panic(fmt.Errorf("%w: %s %s", ErrNoHandler, op, attrs))
	}
	d.logger.Debug("dropped effect: no handler registered",
		append(attrs.Fields(), zap.String("op", op))...)
}
