// Package effects decouples UI-triggering code from direct access to a
// rendering context.
//
// Callers describe a visual effect — a dialog, sheet, toast, or banner — as
// an immutable value carrying an opaque callback plus ordered debug
// properties, and hand it to a dispatcher. The dispatcher forwards it to
// whichever handler is currently registered; the handler either renders the
// effect against a live render context (see the surface subpackage) or
// records and stubs it for test assertions (see the probe subpackage).
//
// # Effect kinds
//
// A SendEffect is fire-and-forget: its callback runs, nothing observes the
// result. A RequestEffect is awaitable: it owns an Outcome, a
// single-assignment result cell the handler settles exactly once, which the
// original caller awaits.
//
// # Registration discipline
//
// Exactly one handler is expected to be registered at a time. Dispatch
// always targets the first-registered handler, so a second simultaneously
// registered handler silently never receives effects; registering one logs
// a warning unless disabled via Config. Registering the same instance twice,
// or deregistering an instance that is not registered, is a wiring defect
// and panics.
//
// # Usage
//
//	h := surface.New(ctx, provider, surface.Config{}, logger)
//	effects.RegisterHandler(h)
//	defer func() {
//		effects.DeregisterHandler(h)
//		h.Close()
//	}()
//
//	eff := effects.NewRequestEffect(pickColor,
//		effects.Attr{Key: "caller", Value: "showDialog"})
//	effects.Request(eff)
//	color, err := effects.Await[Color](ctx, eff)
package effects
