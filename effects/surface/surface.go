// Package surface implements the production effect handler: effects are
// rendered by invoking their callbacks against a live render context.
package surface

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Yoeri-z/ui-effects/effects"
)

// ErrClosed settles request effects that reach the handler after Close.
var ErrClosed = errors.New("surface handler closed")

// Provider returns the current render context for effect callbacks. It is
// supplied by the component that owns the render surface.
type Provider func() effects.RenderContext

// Config sizes the handler's effect queue.
type Config struct {
	BufferSize int // default: 16
}

func (c Config) normalize() Config {
	if c.BufferSize <= 0 {
		c.BufferSize = 16
	}
	return c
}

type message struct {
	request *effects.RequestEffect
	send    *effects.SendEffect
}

// Handler renders dispatched effects against a live render context.
//
// Effects are processed by a single worker goroutine fed by a FIFO queue,
// so they run in arrival order and the dispatch call returns immediately
// while rendering proceeds. Callback panics are captured: a request's panic
// settles its outcome as an error, a send's panic is logged. Neither
// escapes into the render surface.
type Handler struct {
	id      string
	provide Provider
	logger  *zap.Logger
	queue   chan message
	cancel  context.CancelFunc
	closed  bool
}

var _ effects.Handler = (*Handler)(nil)

// New starts a handler bound to provide. The worker stops when ctx is
// canceled or Close is called.
func New(ctx context.Context, provide Provider, conf Config, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	conf = conf.normalize()

	ctx, cancel := context.WithCancel(ctx)
	h := &Handler{
		id:      uuid.New().String(),
		provide: provide,
		logger:  logger,
		queue:   make(chan message, conf.BufferSize),
		cancel:  cancel,
	}
	go h.run(ctx)
	return h
}

// HandleRequest enqueues eff for the worker. After Close the queue is gone;
// the outcome settles with ErrClosed instead of hanging the caller.
func (h *Handler) HandleRequest(eff *effects.RequestEffect) {
	defer func() {
		if r := recover(); r != nil {
			eff.Outcome().Reject(fmt.Errorf("%w: %s", ErrClosed, eff))
			h.logger.Warn("request effect after close",
				append(eff.Attrs().Fields(), zap.String("handler", h.id))...)
		}
	}()
	h.queue <- message{request: eff}
}

// HandleSend enqueues eff for the worker. Dropped with a log entry after
// Close.
func (h *Handler) HandleSend(eff *effects.SendEffect) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Warn("send effect after close",
				append(eff.Attrs().Fields(), zap.String("handler", h.id))...)
		}
	}()
	h.queue <- message{send: eff}
}

// Close stops the worker. Queued requests that were not processed settle
// with ErrClosed. Idempotent.
func (h *Handler) Close() {
	if !h.closed {
		h.cancel()
		h.closed = true
	}
}

func (h *Handler) run(ctx context.Context) {
	for {
		select {
		case msg := <-h.queue:
			h.process(msg)
		case <-ctx.Done():
			h.drain()
			return
		}
	}
}

// drain closes the queue and rejects whatever is still buffered so callers
// are not left waiting after Close.
func (h *Handler) drain() {
	close(h.queue)
	for msg := range h.queue {
		if msg.request != nil {
			msg.request.Outcome().Reject(ErrClosed)
		}
	}
}

func (h *Handler) process(msg message) {
	switch {
	case msg.request != nil:
		value, err := h.invokeRequest(msg.request)
		var settleErr error
		if err != nil {
			settleErr = msg.request.Outcome().Reject(err)
		} else {
			settleErr = msg.request.Outcome().Resolve(value)
		}
		if settleErr != nil {
			h.logger.Warn("request effect settled twice",
				append(msg.request.Attrs().Fields(), zap.String("handler", h.id))...)
		}
	case msg.send != nil:
		h.invokeSend(msg.send)
	}
}

func (h *Handler) invokeRequest(eff *effects.RequestEffect) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("effect callback panicked: %v", r)
		}
	}()
	return eff.Invoke(h.provide())
}

func (h *Handler) invokeSend(eff *effects.SendEffect) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("send effect callback panicked",
				append(eff.Attrs().Fields(),
					zap.Any("panic", r),
					zap.String("handler", h.id))...)
		}
	}()
	eff.Invoke(h.provide())
}
