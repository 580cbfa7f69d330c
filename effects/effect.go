package effects

import (
	"fmt"
	"reflect"
)

// RenderContext is the opaque rendering capability supplied by the host
// toolkit. The core never inspects it; it only hands it to effect callbacks.
type RenderContext any

// SendFunc is the callback of a fire-and-forget effect.
type SendFunc func(rc RenderContext)

// RequestFunc is the callback of an awaitable effect. The value it returns
// becomes the effect's outcome.
type RequestFunc func(rc RenderContext) (any, error)

// SendEffect is a fire-and-forget effect: its callback runs against the
// render context and nothing observes the result. Immutable.
type SendEffect struct {
	fn    SendFunc
	attrs *Attrs
}

func NewSendEffect(fn SendFunc, attrs ...Attr) *SendEffect {
	return &SendEffect{fn: fn, attrs: NewAttrs(attrs...)}
}

func (e *SendEffect) Attrs() *Attrs { return e.attrs }

// Invoke runs the effect callback with the given render context.
func (e *SendEffect) Invoke(rc RenderContext) {
	if e.fn != nil {
		e.fn(rc)
	}
}

func (e *SendEffect) String() string {
	return fmt.Sprintf("SendEffect%s", e.attrs)
}

// RequestEffect is an awaitable effect. Immutable after construction except
// for its outcome's own settle-once semantics.
type RequestEffect struct {
	fn         RequestFunc
	attrs      *Attrs
	resultType reflect.Type
	outcome    *Outcome
}

// NewRequestEffect builds an awaitable effect whose callback produces a T.
// The declared result type is captured for stub matching and typed await.
func NewRequestEffect[T any](fn func(RenderContext) (T, error), attrs ...Attr) *RequestEffect {
	var wrapped RequestFunc
	if fn != nil {
		wrapped = func(rc RenderContext) (any, error) {
			return fn(rc)
		}
	}
	return &RequestEffect{
		fn:         wrapped,
		attrs:      NewAttrs(attrs...),
		resultType: reflect.TypeOf((*T)(nil)).Elem(),
		outcome:    newOutcome(),
	}
}

func (e *RequestEffect) Attrs() *Attrs { return e.attrs }

// ResultType is the result type the effect was declared with.
func (e *RequestEffect) ResultType() reflect.Type { return e.resultType }

// Outcome is the effect's settle-once result cell.
func (e *RequestEffect) Outcome() *Outcome { return e.outcome }

// Invoke runs the effect callback with the given render context.
func (e *RequestEffect) Invoke(rc RenderContext) (any, error) {
	if e.fn == nil {
		return nil, nil
	}
	return e.fn(rc)
}

func (e *RequestEffect) String() string {
	return fmt.Sprintf("RequestEffect[%s]%s", e.resultType, e.attrs)
}
