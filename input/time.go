// Package input provides the native streams that bring the outside world into
// a program: a sampling clock and key presses.
package input

import (
	"math"
	"sync"

	"github.com/reoring/glint/runtime"
	"github.com/reoring/glint/syntax"
)

// DefaultFrequency is the sampling period of Time in milliseconds.
const DefaultFrequency = 33.0

// Time emits the milliseconds elapsed since its first tick, at most once per
// frequency period.
type Time struct {
	*runtime.StreamBase

	mu        sync.Mutex
	frequency float64
	first     float64
	last      float64
	started   bool
	sampled   bool
}

// NewTime creates a Time stream for creator. A nil frequency selects
// DefaultFrequency.
func NewTime(creator syntax.Node, frequency *float64, historyLimit int) *Time {
	t := &Time{
		StreamBase: runtime.NewStreamBase(creator, runtime.Number{Unit: "ms"}, syntax.NewNumberType("ms"), historyLimit),
	}
	t.SetFrequency(frequency)
	return t
}

// SetFrequency changes the sampling period; nil restores the default.
func (t *Time) SetFrequency(frequency *float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if frequency == nil || *frequency <= 0 {
		t.frequency = DefaultFrequency
		return
	}
	t.frequency = *frequency
}

func (t *Time) Frequency() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frequency
}

// Tick emits round(timestamp - first) ms when nothing was sampled yet or a
// full period passed since the last sample.
func (t *Time) Tick(timestamp float64) bool {
	if t.Stopped() {
		return false
	}
	t.mu.Lock()
	if !t.started {
		t.first, t.started = timestamp, true
	}
	if t.sampled && timestamp-t.last < t.frequency {
		t.mu.Unlock()
		return false
	}
	t.last, t.sampled = timestamp, true
	elapsed := math.Round(timestamp - t.first)
	t.mu.Unlock()
	t.Add(runtime.Number{Value: elapsed, Unit: "ms"})
	return true
}

// TimeDefinition is the shared Time stream definition with the default
// frequency.
func TimeDefinition() *syntax.StreamDefinition { return NewTimeDefinition(DefaultFrequency) }

// NewTimeDefinition declares
//
//	Time(frequency: #ms | ø = ø) … #ms
//
// whose body reuses the stream of the calling node, updating its frequency,
// or creates one. An omitted frequency selects fallback.
func NewTimeDefinition(fallback float64) *syntax.StreamDefinition {
	frequency := syntax.NewBind("frequency",
		syntax.NewUnion(syntax.NewNumberType("ms"), syntax.NewNoneType()),
		syntax.NewNone())
	body := runtime.NewNativeExpression(syntax.NewStreamType(syntax.NewNumberType("ms")),
		func(requestor syntax.Node, f *runtime.Evaluation) runtime.Value {
			if requestor == nil {
				return runtime.ContextException(nil, false)
			}
			freq, ex := frequencyInput(f, fallback)
			if ex != nil {
				return ex
			}
			ev := f.Evaluator()
			if t, ok := ev.StreamFor(requestor).(*Time); ok {
				t.SetFrequency(freq)
				return t
			}
			t := NewTime(requestor, freq, ev.HistoryLimit())
			ev.AddStreamFor(requestor, t)
			return t
		})
	return syntax.NewStreamDefinition("Time", []*syntax.Bind{frequency}, body, syntax.NewNumberType("ms"))
}

func frequencyInput(f *runtime.Evaluation, fallback float64) (*float64, *runtime.Exception) {
	v, _ := f.Resolve("frequency")
	switch x := v.(type) {
	case runtime.Number:
		return &x.Value, nil
	case nil, runtime.None:
		return &fallback, nil
	}
	return nil, runtime.TypeException(f.Creator(),
		syntax.NewUnion(syntax.NewNumberType("ms"), syntax.NewNoneType()), v.Type())
}
