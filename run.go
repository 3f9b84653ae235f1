package glint

import (
	"context"

	"github.com/reoring/glint/runtime"
)

// Run evaluates the root, hands the value to onValue, then ticks the streams
// with every timestamp received from clock, handing over each new root
// value. It returns nil when clock is closed and ctx.Err() when ctx ends.
// Streams stay alive after Run returns; call Release to stop them.
func (p *Program) Run(ctx context.Context, clock <-chan float64, onValue func(runtime.Value)) error {
	v, err := p.Evaluate(ctx)
	if err != nil {
		return err
	}
	if onValue != nil {
		onValue(v)
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ts, ok := <-clock:
			if !ok {
				return nil
			}
			v, changed, err := p.Tick(ctx, ts)
			if err != nil {
				return err
			}
			if changed && onValue != nil {
				onValue(v)
			}
		}
	}
}
