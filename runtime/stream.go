package runtime

import (
	"context"
	"sort"
	"sync"

	"github.com/reoring/glint/syntax"
)

// Stream is a value that changes over time. Each stream belongs to the node
// that created it; re-evaluating that node finds the same stream.
type Stream interface {
	Value
	Creator() syntax.Node
	// Latest is the newest sample, or the initial value before any.
	Latest() Value
	// History lists the emitted samples, oldest first.
	History() []Value
	// Tick offers a timestamp in milliseconds and reports whether the stream
	// emitted a value.
	Tick(timestamp float64) bool
	Stop()
}

// StreamBase implements the bookkeeping shared by streams. Embedders supply
// Tick.
type StreamBase struct {
	mu        sync.Mutex
	creator   syntax.Node
	initial   Value
	history   []Value
	limit     int
	valueType syntax.Node
	stopped   bool
}

// NewStreamBase creates a stream whose latest value is initial until a sample
// is added. limit bounds the history.
func NewStreamBase(creator syntax.Node, initial Value, valueType syntax.Node, limit int) *StreamBase {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &StreamBase{creator: creator, initial: initial, valueType: valueType, limit: limit}
}

func (s *StreamBase) Creator() syntax.Node { return s.creator }

// Add appends a sample, dropping the oldest beyond the limit.
func (s *StreamBase) Add(v Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, v)
	if over := len(s.history) - s.limit; over > 0 {
		s.history = append(s.history[:0:0], s.history[over:]...)
	}
}

func (s *StreamBase) Latest() Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return s.initial
	}
	return s.history[len(s.history)-1]
}

func (s *StreamBase) History() []Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Value, len(s.history))
	copy(out, s.history)
	return out
}

func (s *StreamBase) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
}

func (s *StreamBase) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

func (s *StreamBase) Type() syntax.Node { return syntax.NewStreamType(s.valueType) }
func (s *StreamBase) String() string    { return syntax.StreamSymbol + s.Latest().String() }

// StreamFor returns the stream registered for creator, or nil.
func (ev *Evaluator) StreamFor(creator syntax.Node) Stream {
	if creator == nil {
		return nil
	}
	ev.streamsMu.Lock()
	defer ev.streamsMu.Unlock()
	return ev.streams[creator.ID()]
}

// AddStreamFor registers s as the stream of creator, stopping any stream it
// replaces.
func (ev *Evaluator) AddStreamFor(creator syntax.Node, s Stream) {
	ev.streamsMu.Lock()
	old, existed := ev.streams[creator.ID()]
	ev.streams[creator.ID()] = s
	if !existed {
		ev.order = append(ev.order, creator.ID())
	}
	ev.streamsMu.Unlock()
	if existed && old != s {
		old.Stop()
	}
	ev.log.Debug("stream added", "creator", creator.ID(), "kind", creator.Kind().String())
}

// ReleaseStream stops and forgets the stream of creator.
func (ev *Evaluator) ReleaseStream(creator syntax.Node) {
	ev.streamsMu.Lock()
	s, ok := ev.streams[creator.ID()]
	if ok {
		delete(ev.streams, creator.ID())
		ev.order = removeID(ev.order, creator.ID())
	}
	ev.streamsMu.Unlock()
	if ok {
		s.Stop()
		ev.log.Debug("stream released", "creator", creator.ID())
	}
}

// ReleaseStreams stops and forgets every stream.
func (ev *Evaluator) ReleaseStreams() {
	ev.streamsMu.Lock()
	all := ev.streams
	ev.streams = map[syntax.ID]Stream{}
	ev.order = nil
	ev.streamsMu.Unlock()
	for _, s := range all {
		s.Stop()
	}
	if len(all) > 0 {
		ev.log.Debug("streams released", "count", len(all))
	}
}

// Streams lists the registered streams in registration order.
func (ev *Evaluator) Streams() []Stream {
	ev.streamsMu.Lock()
	defer ev.streamsMu.Unlock()
	out := make([]Stream, 0, len(ev.order))
	for _, id := range ev.order {
		out = append(out, ev.streams[id])
	}
	return out
}

// Changed lists the creators whose streams emitted in the tick being
// evaluated. It is empty outside a tick.
func (ev *Evaluator) Changed() []syntax.ID {
	ev.streamsMu.Lock()
	defer ev.streamsMu.Unlock()
	out := make([]syntax.ID, 0, len(ev.changed))
	for id := range ev.changed {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Tick offers timestamp to every stream. When any emitted, the root is
// re-evaluated and its value returned with true.
func (ev *Evaluator) Tick(ctx context.Context, timestamp float64) (Value, bool, error) {
	return ev.tick(ctx, timestamp, ev.Streams())
}

// TickStream offers timestamp only to the stream of creator.
func (ev *Evaluator) TickStream(ctx context.Context, creator syntax.Node, timestamp float64) (Value, bool, error) {
	s := ev.StreamFor(creator)
	if s == nil {
		return nil, false, nil
	}
	return ev.tick(ctx, timestamp, []Stream{s})
}

func (ev *Evaluator) tick(ctx context.Context, timestamp float64, streams []Stream) (Value, bool, error) {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	if ev.stepping() {
		return nil, false, ErrEvaluationInProgress
	}
	changed := map[syntax.ID]bool{}
	for _, s := range streams {
		if s.Tick(timestamp) {
			changed[s.Creator().ID()] = true
			ev.log.Trace("stream emitted", "creator", s.Creator().ID(), "value", s.Latest().String())
		}
	}
	if len(changed) == 0 {
		return nil, false, nil
	}
	ev.setChanged(changed)
	defer ev.setChanged(map[syntax.ID]bool{})
	v, err := ev.run(ctx)
	return v, err == nil, err
}

func removeID(ids []syntax.ID, id syntax.ID) []syntax.ID {
	for i, x := range ids {
		if x == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}

// setChanged swaps the changed set. Writers hold both locks, so steps may read
// it under mu and other goroutines under streamsMu.
func (ev *Evaluator) setChanged(changed map[syntax.ID]bool) {
	ev.streamsMu.Lock()
	ev.changed = changed
	ev.streamsMu.Unlock()
}
