package probe_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yoeri-z/ui-effects/effects"
	"github.com/Yoeri-z/ui-effects/effects/probe"
)

func newDispatcherWithProbe(t *testing.T) (*effects.Dispatcher, *probe.Handler) {
	t.Helper()
	d := effects.New(effects.NewConfig())
	h := probe.New()
	d.RegisterHandler(h)
	t.Cleanup(h.Close)
	return d, h
}

func receiveRequest(t *testing.T, h *probe.Handler) *effects.RequestEffect {
	t.Helper()
	select {
	case eff := <-h.Requests():
		return eff
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for recorded request")
		return nil
	}
}

func TestHandler_StubAnswersWithoutInvokingCallback(t *testing.T) {
	d, h := newDispatcherWithProbe(t)
	probe.Stub(h, nil, true)

	eff := effects.NewRequestEffect(func(effects.RenderContext) (bool, error) {
		panic("callback must not run under the probe")
	}, effects.Attr{Key: "caller", Value: "showConfirm"},
		effects.Attr{Key: "title", Value: "Delete?"})
	d.Request(eff)

	v, err := effects.Await[bool](context.Background(), eff)
	require.NoError(t, err)
	assert.True(t, v)

	recorded := receiveRequest(t, h)
	assert.Same(t, eff, recorded)
	assert.True(t, recorded.Attrs().Has("caller"))
	assert.True(t, recorded.Attrs().Has("title"))
}

func TestHandler_FirstMatchWins(t *testing.T) {
	d, h := newDispatcherWithProbe(t)

	// both matchers accept; the earlier-registered job must answer
	probe.Stub(h, func(*effects.Attrs) bool { return true }, "first")
	probe.Stub(h, func(*effects.Attrs) bool { return true }, "second")

	eff := effects.NewRequestEffect(func(effects.RenderContext) (string, error) {
		return "", nil
	})
	d.Request(eff)

	v, err := effects.Await[string](context.Background(), eff)
	require.NoError(t, err)
	assert.Equal(t, "first", v)
}

func TestHandler_MatcherSelectsByProperties(t *testing.T) {
	d, h := newDispatcherWithProbe(t)

	probe.Stub(h, func(attrs *effects.Attrs) bool {
		caller, _ := attrs.Get("caller")
		return caller == "showDialog"
	}, "dialog answer")
	probe.Stub(h, nil, "fallback answer")

	sheet := effects.NewRequestEffect(func(effects.RenderContext) (string, error) {
		return "", nil
	}, effects.Attr{Key: "caller", Value: "showSheet"})
	d.Request(sheet)

	v, err := effects.Await[string](context.Background(), sheet)
	require.NoError(t, err)
	assert.Equal(t, "fallback answer", v)

	dialog := effects.NewRequestEffect(func(effects.RenderContext) (string, error) {
		return "", nil
	}, effects.Attr{Key: "caller", Value: "showDialog"})
	d.Request(dialog)

	v, err = effects.Await[string](context.Background(), dialog)
	require.NoError(t, err)
	assert.Equal(t, "dialog answer", v)
}

func TestHandler_UnmatchedTypeRejectsAndStillRecords(t *testing.T) {
	d, h := newDispatcherWithProbe(t)
	probe.Stub(h, nil, "only strings stubbed")

	eff := effects.NewRequestEffect(func(effects.RenderContext) (int, error) {
		return 0, nil
	}, effects.Attr{Key: "caller", Value: "showSheet"})
	d.Request(eff)

	_, err := effects.Await[int](context.Background(), eff)
	assert.ErrorIs(t, err, probe.ErrNoStubMatch)

	// the rejected request still appears on the inspection stream,
	// already settled
	recorded := receiveRequest(t, h)
	assert.Same(t, eff, recorded)
	assert.True(t, recorded.Outcome().Settled())
}

func TestHandler_NoStubsRejects(t *testing.T) {
	d, _ := newDispatcherWithProbe(t)

	eff := effects.NewRequestEffect(func(effects.RenderContext) (string, error) {
		return "", nil
	})
	d.Request(eff)

	_, err := effects.Await[string](context.Background(), eff)
	assert.ErrorIs(t, err, probe.ErrNoStubMatch)
}

func TestHandler_SendIsRecordedNotExecuted(t *testing.T) {
	d, h := newDispatcherWithProbe(t)

	called := false
	eff := effects.NewSendEffect(func(effects.RenderContext) {
		called = true
	}, effects.Attr{Key: "caller", Value: "showToast"})
	d.Send(eff)

	select {
	case recorded := <-h.Sends():
		assert.Same(t, eff, recorded)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for recorded send")
	}
	assert.False(t, called, "probe must not run send callbacks")
}

func TestHandler_RecordsInArrivalOrder(t *testing.T) {
	d, h := newDispatcherWithProbe(t)
	probe.Stub(h, nil, "answer")

	first := effects.NewRequestEffect(func(effects.RenderContext) (string, error) {
		return "", nil
	}, effects.Attr{Key: "seq", Value: 1})
	second := effects.NewRequestEffect(func(effects.RenderContext) (string, error) {
		return "", nil
	}, effects.Attr{Key: "seq", Value: 2})
	d.Request(first)
	d.Request(second)

	assert.Same(t, first, receiveRequest(t, h))
	assert.Same(t, second, receiveRequest(t, h))
}

func TestHandler_StubNilAnswer(t *testing.T) {
	d, h := newDispatcherWithProbe(t)
	probe.Stub[*int](h, nil, nil)

	eff := effects.NewRequestEffect(func(effects.RenderContext) (*int, error) {
		return nil, nil
	})
	d.Request(eff)

	v, err := effects.Await[*int](context.Background(), eff)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestHandler_CloseIdempotentAndClosesStreams(t *testing.T) {
	h := probe.New()
	h.Close()
	assert.NotPanics(t, h.Close)

	select {
	case _, ok := <-h.Requests():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("requests stream not closed")
	}
	select {
	case _, ok := <-h.Sends():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("sends stream not closed")
	}
}
