package input_test

import (
	"context"
	"testing"

	"github.com/reoring/glint/input"
	"github.com/reoring/glint/runtime"
	"github.com/reoring/glint/syntax"
)

func samples(vs []runtime.Value) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = v.(runtime.Number).Value
	}
	return out
}

func sameFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTime_SamplesAtFrequency(t *testing.T) {
	tm := input.NewTime(syntax.NewNone(), nil, 0)
	if tm.Frequency() != input.DefaultFrequency {
		t.Fatalf("default frequency: %v", tm.Frequency())
	}
	var emitted []bool
	for _, ts := range []float64{0, 10, 35, 40, 70} {
		emitted = append(emitted, tm.Tick(ts))
	}
	want := []bool{true, false, true, false, true}
	for i := range want {
		if emitted[i] != want[i] {
			t.Fatalf("tick %d emitted %v", i, emitted[i])
		}
	}
	if got := samples(tm.History()); !sameFloats(got, []float64{0, 35, 70}) {
		t.Fatalf("samples: %v", got)
	}
	if tm.Latest().String() != "70ms" {
		t.Fatalf("latest: %s", tm.Latest())
	}
}

func TestTime_RelativeToFirstTick(t *testing.T) {
	f := 10.0
	tm := input.NewTime(syntax.NewNone(), &f, 0)
	tm.Tick(1000.4)
	tm.Tick(1012.6)
	if got := samples(tm.History()); !sameFloats(got, []float64{0, 12}) {
		t.Fatalf("samples: %v", got)
	}
	tm.SetFrequency(nil)
	if tm.Frequency() != input.DefaultFrequency {
		t.Fatalf("nil frequency must restore the default")
	}
	tm.Stop()
	if tm.Tick(5000) {
		t.Fatalf("stopped streams do not tick")
	}
}

func TestTimeDefinition_DrivesEvaluation(t *testing.T) {
	call := syntax.NewEvaluate(syntax.NewReference("Time"))
	ev, err := runtime.NewEvaluator(syntax.NewTree(syntax.NewBlock(call), input.TimeDefinition()), runtime.Options{})
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}
	ctx := context.Background()
	v, err := ev.Evaluate(ctx)
	if err != nil || v.String() != "0ms" {
		t.Fatalf("initial value: %v %v", v, err)
	}
	var values []string
	for _, ts := range []float64{0, 10, 35, 40, 70} {
		v, changed, err := ev.Tick(ctx, ts)
		if err != nil {
			t.Fatalf("Tick: %v", err)
		}
		if changed {
			values = append(values, v.String())
		}
	}
	if len(values) != 3 || values[0] != "0ms" || values[1] != "35ms" || values[2] != "70ms" {
		t.Fatalf("values: %v", values)
	}
	if n := len(ev.Streams()); n != 1 {
		t.Fatalf("one call, one stream: %d", n)
	}
}

func TestTimeDefinition_Frequency(t *testing.T) {
	call := syntax.NewEvaluate(syntax.NewReference("Time"), syntax.NewNumber(100, "ms"))
	ev, err := runtime.NewEvaluator(syntax.NewTree(call, input.TimeDefinition()), runtime.Options{})
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}
	if _, err := ev.Evaluate(context.Background()); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	tm, ok := ev.StreamFor(call).(*input.Time)
	if !ok || tm.Frequency() != 100 {
		t.Fatalf("frequency input not applied")
	}

	bad := syntax.NewEvaluate(syntax.NewReference("Time"), syntax.NewText("fast"))
	ev, _ = runtime.NewEvaluator(syntax.NewTree(bad, input.TimeDefinition()), runtime.Options{})
	v, _ := ev.Evaluate(context.Background())
	if ex, ok := v.(*runtime.Exception); !ok || ex.Kind != runtime.ExceptionType {
		t.Fatalf("expected a type exception, got %v", v)
	}
}

func TestKey_FiltersAndEmitsOnTick(t *testing.T) {
	call := syntax.NewEvaluate(syntax.NewReference("Key"), syntax.NewText("a"))
	root := syntax.NewPropertyAccess(call, "key")
	ev, err := runtime.NewEvaluator(syntax.NewTree(root, input.KeyDefinition()), runtime.Options{})
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}
	ctx := context.Background()
	v, _ := ev.Evaluate(ctx)
	if !runtime.Equal(v, runtime.Text("")) {
		t.Fatalf("initial key: %v", v)
	}
	if _, changed, _ := ev.Tick(ctx, 1); changed {
		t.Fatalf("no events, no change")
	}
	if n := input.RecordKey(ev, "b", true); n != 1 {
		t.Fatalf("recorded on %d streams", n)
	}
	if _, changed, _ := ev.Tick(ctx, 2); changed {
		t.Fatalf("filtered key must not emit")
	}
	input.RecordKey(ev, "a", true)
	v, changed, err := ev.Tick(ctx, 3)
	if err != nil || !changed || !runtime.Equal(v, runtime.Text("a")) {
		t.Fatalf("key event: %v %v %v", v, changed, err)
	}
	k := ev.StreamFor(call).(*input.Key)
	down, _ := k.Latest().(*runtime.Record).Field("down")
	if down != runtime.Bool(true) {
		t.Fatalf("down: %v", down)
	}
}

func TestTimeDefinition_SameCallKeepsItsStream(t *testing.T) {
	period := 10.0
	freq := syntax.NewBind("freq", nil, runtime.NewNativeExpression(syntax.NewNumberType("ms"),
		func(syntax.Node, *runtime.Evaluation) runtime.Value {
			return runtime.Number{Value: period, Unit: "ms"}
		}))
	call := syntax.NewEvaluate(syntax.NewReference("Time"), syntax.NewReference("freq"))
	ev, err := runtime.NewEvaluator(syntax.NewTree(call, input.TimeDefinition(), freq), runtime.Options{})
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}
	ctx := context.Background()
	if _, err := ev.Evaluate(ctx); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	first := ev.StreamFor(call).(*input.Time)
	for _, ts := range []float64{0, 20} {
		if _, _, err := ev.Tick(ctx, ts); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}

	period = 50
	if _, err := ev.Evaluate(ctx); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	again, ok := ev.StreamFor(call).(*input.Time)
	if !ok || again != first {
		t.Fatalf("re-evaluation must reuse the stream")
	}
	if again.Frequency() != 50 || len(again.History()) != 2 || len(ev.Streams()) != 1 {
		t.Fatalf("freq=%v history=%d streams=%d", again.Frequency(), len(again.History()), len(ev.Streams()))
	}
}

func TestTimeDefinition_EachCallHasItsOwnStream(t *testing.T) {
	a := syntax.NewEvaluate(syntax.NewReference("Time"))
	b := syntax.NewEvaluate(syntax.NewReference("Time"))
	ev, err := runtime.NewEvaluator(syntax.NewTree(syntax.NewList(a, b), input.TimeDefinition()), runtime.Options{})
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}
	if _, err := ev.Evaluate(context.Background()); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if n := len(ev.Streams()); n != 2 {
		t.Fatalf("streams: %d", n)
	}
	sa, sb := ev.StreamFor(a), ev.StreamFor(b)
	if sa == nil || sb == nil || sa == sb {
		t.Fatalf("each call needs a distinct stream")
	}
}

func TestStreamNatives_NeedACallingNode(t *testing.T) {
	for _, def := range []*syntax.StreamDefinition{input.TimeDefinition(), input.KeyDefinition()} {
		ev, err := runtime.NewEvaluator(syntax.NewTree(def.Expression), runtime.Options{})
		if err != nil {
			t.Fatalf("NewEvaluator: %v", err)
		}
		v, _ := ev.Evaluate(context.Background())
		ex, ok := v.(*runtime.Exception)
		if !ok || ex.Code() != "exception.context.empty" {
			t.Fatalf("%s body at the root: %v", def.Name(), v)
		}
		if len(ev.Streams()) != 0 {
			t.Fatalf("no stream without a creator")
		}
	}
}
