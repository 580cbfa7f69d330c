// Package sink provides the append-only observation buffer backing the
// probe handler's streams.
package sink

import "sync"

// Buffer is an unbounded FIFO with a single channel source. Append never
// blocks; a pump goroutine forwards entries to Source in insertion order,
// each exactly once.
type Buffer[T any] struct {
	mu     sync.Mutex
	data   []T
	closed bool

	wake chan struct{}
	stop chan struct{}
	out  chan T
	once sync.Once
}

func NewBuffer[T any]() *Buffer[T] {
	b := &Buffer[T]{
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
		out:  make(chan T),
	}
	go b.pump()
	return b
}

// Append enqueues v. Returns false once the buffer is closed.
func (b *Buffer[T]) Append(v T) bool {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return false
	}
	b.data = append(b.data, v)
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
	return true
}

// Source yields appended entries in order. Closed by Close.
func (b *Buffer[T]) Source() <-chan T { return b.out }

// Close stops the pump and closes the source channel. Entries no consumer
// has read yet are dropped. Idempotent.
func (b *Buffer[T]) Close() {
	b.once.Do(func() {
		b.mu.Lock()
		b.closed = true
		b.mu.Unlock()
		close(b.stop)
	})
}

func (b *Buffer[T]) pump() {
	defer close(b.out)
	for {
		b.mu.Lock()
		var (
			next T
			ok   bool
		)
		if len(b.data) > 0 {
			next = b.data[0]
			b.data = b.data[1:]
			ok = true
		}
		b.mu.Unlock()

		if !ok {
			select {
			case <-b.wake:
				continue
			case <-b.stop:
				return
			}
		}

		select {
		case b.out <- next:
		case <-b.stop:
			return
		}
	}
}
