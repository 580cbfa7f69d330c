package sink_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yoeri-z/ui-effects/effects/internal/sink"
)

func collect(t *testing.T, src <-chan int, n int) []int {
	t.Helper()
	out := make([]int, 0, n)
	for len(out) < n {
		select {
		case v, ok := <-src:
			require.True(t, ok, "source closed early")
			out = append(out, v)
		case <-time.After(time.Second):
			t.Fatalf("timeout after %d of %d items", len(out), n)
		}
	}
	return out
}

func TestBuffer_DeliversInOrder(t *testing.T) {
	b := sink.NewBuffer[int]()
	defer b.Close()

	for i := 0; i < 100; i++ {
		require.True(t, b.Append(i))
	}

	got := collect(t, b.Source(), 100)
	for i, v := range got {
		require.Equal(t, i, v)
	}
}

func TestBuffer_AppendNeverBlocksWithoutConsumer(t *testing.T) {
	b := sink.NewBuffer[int]()
	defer b.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			b.Append(i)
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("append blocked without a consumer")
	}
}

func TestBuffer_CloseClosesSource(t *testing.T) {
	b := sink.NewBuffer[int]()
	b.Close()

	select {
	case _, ok := <-b.Source():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("source not closed")
	}
}

func TestBuffer_AppendAfterClose(t *testing.T) {
	b := sink.NewBuffer[int]()
	b.Close()
	assert.False(t, b.Append(1))
}

func TestBuffer_CloseIdempotent(t *testing.T) {
	b := sink.NewBuffer[int]()
	b.Close()
	assert.NotPanics(t, func() { b.Close() })
}
