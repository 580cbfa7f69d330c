// Package show holds the per-effect convenience wrappers. Each one is a
// thin parameter-forwarding constructor: it tags the effect with the caller
// that produced it, dispatches it, and hands the effect back for awaiting.
package show

import "github.com/Yoeri-z/ui-effects/effects"

// CallerKey is the debug property naming the wrapper that built an effect.
// It is prepended, so an explicit caller attr supplied by the caller shadows
// it on lookup.
const CallerKey = "caller"

// Dialog dispatches an awaitable dialog effect. Await the returned effect
// for the dialog's result; a dismissed dialog resolves to the zero value.
func Dialog[T any](d *effects.Dispatcher, fn func(effects.RenderContext) (T, error), attrs ...effects.Attr) *effects.RequestEffect {
	return request(d, "showDialog", fn, attrs)
}

// Sheet dispatches an awaitable bottom-sheet effect.
func Sheet[T any](d *effects.Dispatcher, fn func(effects.RenderContext) (T, error), attrs ...effects.Attr) *effects.RequestEffect {
	return request(d, "showSheet", fn, attrs)
}

// Confirm dispatches an awaitable yes/no dialog effect.
func Confirm(d *effects.Dispatcher, fn func(effects.RenderContext) (bool, error), attrs ...effects.Attr) *effects.RequestEffect {
	return request(d, "showConfirm", fn, attrs)
}

// Toast dispatches a fire-and-forget toast effect.
func Toast(d *effects.Dispatcher, fn effects.SendFunc, attrs ...effects.Attr) *effects.SendEffect {
	return send(d, "showToast", fn, attrs)
}

// Banner dispatches a fire-and-forget banner effect.
func Banner(d *effects.Dispatcher, fn effects.SendFunc, attrs ...effects.Attr) *effects.SendEffect {
	return send(d, "showBanner", fn, attrs)
}

func request[T any](d *effects.Dispatcher, caller string, fn func(effects.RenderContext) (T, error), attrs []effects.Attr) *effects.RequestEffect {
	if d == nil {
		d = effects.Default()
	}
	eff := effects.NewRequestEffect(fn, tag(caller, attrs)...)
	d.Request(eff)
	return eff
}

func send(d *effects.Dispatcher, caller string, fn effects.SendFunc, attrs []effects.Attr) *effects.SendEffect {
	if d == nil {
		d = effects.Default()
	}
	eff := effects.NewSendEffect(fn, tag(caller, attrs)...)
	d.Send(eff)
	return eff
}

func tag(caller string, attrs []effects.Attr) []effects.Attr {
	tagged := make([]effects.Attr, 0, len(attrs)+1)
	tagged = append(tagged, effects.Attr{Key: CallerKey, Value: caller})
	return append(tagged, attrs...)
}
