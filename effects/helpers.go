package effects

import (
	"context"
	"fmt"
)

// Await waits for eff's outcome and asserts the settled value to T, the
// type the effect was declared with. A nil settlement (the FailSoft
// no-handler path, or a stubbed nil answer) yields the zero value of T.
func Await[T any](ctx context.Context, eff *RequestEffect) (T, error) {
	var zero T

	raw, err := eff.Outcome().Wait(ctx)
	if err != nil {
		return zero, err
	}
	if raw == nil {
		return zero, nil
	}

	val, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected outcome type: %T", raw)
	}
	return val, nil
}
