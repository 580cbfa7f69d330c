// Package probe implements the inspectable test handler: instead of
// rendering, it records incoming effects onto observable streams and
// answers request effects from declaratively stubbed match jobs.
package probe

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/Yoeri-z/ui-effects/effects"
	"github.com/Yoeri-z/ui-effects/effects/internal/sink"
)

// ErrNoStubMatch settles request effects no match job accepted, so an unmet
// test expectation fails fast instead of timing out.
var ErrNoStubMatch = errors.New("no stub matched request effect")

// Matcher inspects an effect's debug properties.
type Matcher func(*effects.Attrs) bool

type matchJob struct {
	resultType reflect.Type
	match      Matcher
	answer     any
}

// Handler records effects for assertions instead of rendering them.
type Handler struct {
	mu   sync.Mutex
	jobs []matchJob

	requests *sink.Buffer[*effects.RequestEffect]
	sends    *sink.Buffer[*effects.SendEffect]
}

var _ effects.Handler = (*Handler)(nil)

func New() *Handler {
	return &Handler{
		requests: sink.NewBuffer[*effects.RequestEffect](),
		sends:    sink.NewBuffer[*effects.SendEffect](),
	}
}

// Stub appends a match job answering request effects declared with result
// type T. Jobs are consulted in registration order and the first whose
// matcher accepts the effect's properties wins; a nil matcher matches
// unconditionally. Jobs accumulate for the handler's lifetime and are never
// removed.
func Stub[T any](h *Handler, match Matcher, answer T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.jobs = append(h.jobs, matchJob{
		resultType: reflect.TypeOf((*T)(nil)).Elem(),
		match:      match,
		answer:     answer,
	})
}

// HandleRequest settles eff from the first matching stub, or with
// ErrNoStubMatch when nothing matches, then records eff on Requests. The
// recording happens after settlement, so tests can still read the effect's
// echo even when a job auto-resolved it.
func (h *Handler) HandleRequest(eff *effects.RequestEffect) {
	if job, ok := h.matchFor(eff); ok {
		eff.Outcome().Resolve(job.answer)
	} else {
		eff.Outcome().Reject(fmt.Errorf("%w: %s", ErrNoStubMatch, eff))
	}
	h.requests.Append(eff)
}

// HandleSend records eff on Sends without running its callback.
func (h *Handler) HandleSend(eff *effects.SendEffect) {
	h.sends.Append(eff)
}

// Requests yields every request effect exactly once, in arrival order,
// whether or not a stub settled it.
func (h *Handler) Requests() <-chan *effects.RequestEffect {
	return h.requests.Source()
}

// Sends yields every fire-and-forget effect exactly once, in arrival order.
func (h *Handler) Sends() <-chan *effects.SendEffect {
	return h.sends.Source()
}

// Close closes both observation streams. Idempotent.
func (h *Handler) Close() {
	h.requests.Close()
	h.sends.Close()
}

func (h *Handler) matchFor(eff *effects.RequestEffect) (matchJob, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, job := range h.jobs {
		if job.resultType != eff.ResultType() {
			continue
		}
		if job.match == nil || job.match(eff.Attrs()) {
			return job, true
		}
	}
	return matchJob{}, false
}
