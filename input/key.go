package input

import (
	"sync"

	"github.com/reoring/glint/runtime"
	"github.com/reoring/glint/syntax"
)

// Key emits a {key down} record for every key event recorded since the
// previous tick.
type Key struct {
	*runtime.StreamBase

	mu      sync.Mutex
	filter  *string
	pending []runtime.Value
}

// KeyType is the type of the values Key emits.
func KeyType() *syntax.RecordType {
	return syntax.NewRecordType(
		syntax.NewBind("key", syntax.NewTextType(), nil),
		syntax.NewBind("down", syntax.NewBooleanType(), nil),
	)
}

func keyEvent(key string, down bool) *runtime.Record {
	return runtime.NewRecord().With("key", runtime.Text(key)).With("down", runtime.Bool(down))
}

// NewKey creates a Key stream for creator. A non-nil filter keeps only events
// of that key.
func NewKey(creator syntax.Node, filter *string, historyLimit int) *Key {
	k := &Key{StreamBase: runtime.NewStreamBase(creator, keyEvent("", false), KeyType(), historyLimit)}
	k.SetFilter(filter)
	return k
}

func (k *Key) SetFilter(filter *string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if filter == nil {
		k.filter = nil
		return
	}
	f := *filter
	k.filter = &f
}

// Record queues a key event for the next tick.
func (k *Key) Record(key string, down bool) {
	if k.Stopped() {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.filter != nil && *k.filter != key {
		return
	}
	k.pending = append(k.pending, keyEvent(key, down))
}

// Tick emits the queued events in order.
func (k *Key) Tick(float64) bool {
	k.mu.Lock()
	pending := k.pending
	k.pending = nil
	k.mu.Unlock()
	if k.Stopped() {
		return false
	}
	for _, v := range pending {
		k.Add(v)
	}
	return len(pending) > 0
}

// KeyDefinition declares
//
//	Key(key: '' | ø = ø) … {key:'' down:?}
func KeyDefinition() *syntax.StreamDefinition {
	key := syntax.NewBind("key", syntax.NewUnion(syntax.NewTextType(), syntax.NewNoneType()), syntax.NewNone())
	body := runtime.NewNativeExpression(syntax.NewStreamType(KeyType()),
		func(requestor syntax.Node, f *runtime.Evaluation) runtime.Value {
			if requestor == nil {
				return runtime.ContextException(nil, false)
			}
			var filter *string
			switch v, _ := f.Resolve("key"); x := v.(type) {
			case runtime.Text:
				s := string(x)
				filter = &s
			case nil, runtime.None:
			default:
				return runtime.TypeException(requestor, syntax.NewUnion(syntax.NewTextType(), syntax.NewNoneType()), x.Type())
			}
			ev := f.Evaluator()
			if k, ok := ev.StreamFor(requestor).(*Key); ok {
				k.SetFilter(filter)
				return k
			}
			k := NewKey(requestor, filter, ev.HistoryLimit())
			ev.AddStreamFor(requestor, k)
			return k
		})
	return syntax.NewStreamDefinition("Key", []*syntax.Bind{key}, body, KeyType())
}

// RecordKey queues a key event on every Key stream of ev.
func RecordKey(ev *runtime.Evaluator, key string, down bool) int {
	n := 0
	for _, s := range ev.Streams() {
		if k, ok := s.(*Key); ok {
			k.Record(key, down)
			n++
		}
	}
	return n
}
