package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/reoring/glint/runtime"
	"github.com/reoring/glint/syntax"
)

// counter emits 1, 2, 3... on every tick.
type counter struct {
	*runtime.StreamBase
	n int
}

func (c *counter) Tick(float64) bool {
	if c.Stopped() {
		return false
	}
	c.n++
	c.Add(runtime.Number{Value: float64(c.n)})
	return true
}

func counterDefinition() *syntax.StreamDefinition {
	body := runtime.NewNativeExpression(syntax.NewStreamType(syntax.NewNumberType("")),
		func(requestor syntax.Node, f *runtime.Evaluation) runtime.Value {
			ev := f.Evaluator()
			if s := ev.StreamFor(requestor); s != nil {
				return s
			}
			s := &counter{StreamBase: runtime.NewStreamBase(requestor, runtime.Number{}, syntax.NewNumberType(""), ev.HistoryLimit())}
			ev.AddStreamFor(requestor, s)
			return s
		})
	return syntax.NewStreamDefinition("Counter", nil, body, syntax.NewNumberType(""))
}

func TestStreams_SettleAndKeepIdentity(t *testing.T) {
	root := syntax.NewBlock(syntax.NewBinary(syntax.OpAdd,
		syntax.NewEvaluate(syntax.NewReference("Counter")),
		syntax.NewNumber(1, "")))
	ev := newEvaluator(t, runtime.Options{}, root, counterDefinition())
	ctx := context.Background()

	v, err := ev.Evaluate(ctx)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	expectValue(t, v, num(1, ""))
	streams := ev.Streams()
	if len(streams) != 1 {
		t.Fatalf("streams: %d", len(streams))
	}

	for want := 2.0; want <= 4; want++ {
		v, changed, err := ev.Tick(ctx, want*10)
		if err != nil || !changed {
			t.Fatalf("Tick: %v %v", changed, err)
		}
		expectValue(t, v, num(want, ""))
	}
	after := ev.Streams()
	if len(after) != 1 || after[0] != streams[0] {
		t.Fatalf("re-evaluation must reuse the stream of its creator")
	}
	if got := len(after[0].History()); got != 3 {
		t.Fatalf("history: %d", got)
	}

	ev.ReleaseStreams()
	if len(ev.Streams()) != 0 || !streams[0].(*counter).Stopped() {
		t.Fatalf("release must stop and forget streams")
	}
	if _, changed, _ := ev.Tick(ctx, 100); changed {
		t.Fatalf("no streams, no change")
	}
}

func TestStreams_Changed(t *testing.T) {
	root := syntax.NewBlock(syntax.NewConditional(
		syntax.NewChanged(syntax.NewEvaluate(syntax.NewReference("Counter"))),
		syntax.NewText("yes"),
		syntax.NewText("no"),
	))
	ev := newEvaluator(t, runtime.Options{}, root, counterDefinition())
	ctx := context.Background()

	v, _ := ev.Evaluate(ctx)
	expectValue(t, v, runtime.Text("no"))
	v, _, _ = ev.Tick(ctx, 1)
	expectValue(t, v, runtime.Text("yes"))
	v, _ = ev.Evaluate(ctx)
	expectValue(t, v, runtime.Text("no"))

	notStream := syntax.NewChanged(syntax.NewNumber(1, ""))
	expectException(t, evaluate(t, notStream), runtime.ExceptionType)
}

func TestStreams_TickStreamAndHistoryLimit(t *testing.T) {
	call := syntax.NewEvaluate(syntax.NewReference("Counter"))
	ev := newEvaluator(t, runtime.Options{HistoryLimit: 2}, syntax.NewBlock(call), counterDefinition())
	ctx := context.Background()
	if _, err := ev.Evaluate(ctx); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, changed, err := ev.TickStream(ctx, call, float64(i)); err != nil || !changed {
			t.Fatalf("TickStream: %v %v", changed, err)
		}
	}
	h := ev.StreamFor(call).History()
	if len(h) != 2 || !runtime.Equal(h[1], num(5, "")) {
		t.Fatalf("history: %v", h)
	}
	if _, changed, _ := ev.TickStream(ctx, syntax.NewNone(), 9); changed {
		t.Fatalf("unknown creator must not tick")
	}
	ev.ReleaseStream(call)
	if ev.StreamFor(call) != nil {
		t.Fatalf("stream not released")
	}
}

func TestStreams_TickWaitsForSteppedEvaluation(t *testing.T) {
	root := syntax.NewBlock(syntax.NewBinary(syntax.OpAdd,
		syntax.NewEvaluate(syntax.NewReference("Counter")),
		syntax.NewNumber(1, "")))
	ev := newEvaluator(t, runtime.Options{}, root, counterDefinition())
	ctx := context.Background()
	if _, err := ev.Evaluate(ctx); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	ev.Start()
	for i := 0; i < 2; i++ {
		if _, err := ev.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if _, changed, err := ev.Tick(ctx, 1); !errors.Is(err, runtime.ErrEvaluationInProgress) || changed {
		t.Fatalf("expected ErrEvaluationInProgress, got %v %v", changed, err)
	}
	if ev.Finished() || ev.StepCount() != 2 {
		t.Fatalf("stepped evaluation replaced: finished=%v steps=%d", ev.Finished(), ev.StepCount())
	}
	if h := ev.Streams()[0].History(); len(h) != 0 {
		t.Fatalf("stream ticked during stepping: %v", h)
	}
	for done := false; !done; {
		var err error
		if done, err = ev.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	expectValue(t, ev.Result(), num(1, ""))

	v, changed, err := ev.Tick(ctx, 2)
	if err != nil || !changed {
		t.Fatalf("Tick after stepping: %v %v", changed, err)
	}
	expectValue(t, v, num(2, ""))
}

func TestStreams_ChangedDuringTick(t *testing.T) {
	call := syntax.NewEvaluate(syntax.NewReference("Counter"))
	var seen []syntax.ID
	observe := runtime.NewNativeExpression(syntax.NewNoneType(),
		func(_ syntax.Node, f *runtime.Evaluation) runtime.Value {
			seen = f.Evaluator().Changed()
			return runtime.None{}
		})
	ev := newEvaluator(t, runtime.Options{}, syntax.NewBlock(call, observe), counterDefinition())
	ctx := context.Background()

	if _, err := ev.Evaluate(ctx); err != nil || len(seen) != 0 {
		t.Fatalf("nothing changed outside a tick: %v %v", seen, err)
	}
	if _, _, err := ev.Tick(ctx, 1); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(seen) != 1 || seen[0] != call.ID() {
		t.Fatalf("changed during tick: %v", seen)
	}
	if got := ev.Changed(); len(got) != 0 {
		t.Fatalf("changed after tick: %v", got)
	}
}
