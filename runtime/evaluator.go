package runtime

import (
	"context"
	"errors"
	"sync"

	"github.com/reoring/glint/logging"
	"github.com/reoring/glint/syntax"
)

// Default evaluator limits.
const (
	DefaultMaxDepth     = 256
	DefaultHistoryLimit = 256
)

var (
	// ErrNotStarted is returned by Step before Start.
	ErrNotStarted = errors.New("runtime: evaluation not started")
	// ErrEvaluationInProgress is returned by ticks offered while a stepped
	// evaluation has not finished.
	ErrEvaluationInProgress = errors.New("runtime: evaluation in progress")
)

// Options configures an Evaluator. Zero fields take their defaults.
type Options struct {
	// MaxDepth bounds the frame stack; deeper calls yield a full-context
	// exception.
	MaxDepth int
	// HistoryLimit bounds the samples each stream keeps.
	HistoryLimit int
	Logger       *logging.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.HistoryLimit <= 0 {
		o.HistoryLimit = DefaultHistoryLimit
	}
	if o.Logger == nil {
		o.Logger = logging.Default()
	}
	return o
}

// Evaluator runs the root of a tree and re-runs it when streams tick. Ticks
// and evaluations are serialized by one mutex; the stream registry has its
// own lock so natives may use it while an evaluation runs.
type Evaluator struct {
	mu   sync.Mutex
	tree *syntax.Tree
	opts Options
	log  *logging.Logger

	compiled     map[syntax.ID][]Step
	compilations int

	frames  []*Evaluation
	started bool
	result  Value
	steps   int

	streamsMu sync.Mutex
	streams   map[syntax.ID]Stream
	order     []syntax.ID
	// changed holds the creators of the streams that emitted in the tick
	// being evaluated.
	changed map[syntax.ID]bool
}

// NewEvaluator prepares an evaluator for tree, caching its parents if needed.
func NewEvaluator(tree *syntax.Tree, opts Options) (*Evaluator, error) {
	if !tree.ParentsCached() {
		if err := tree.CacheParents(); err != nil {
			return nil, err
		}
	}
	opts = opts.withDefaults()
	return &Evaluator{
		tree:     tree,
		opts:     opts,
		log:      opts.Logger,
		compiled: map[syntax.ID][]Step{},
		streams:  map[syntax.ID]Stream{},
		changed:  map[syntax.ID]bool{},
	}, nil
}

func (ev *Evaluator) Tree() *syntax.Tree { return ev.tree }
func (ev *Evaluator) HistoryLimit() int  { return ev.opts.HistoryLimit }
func (ev *Evaluator) MaxDepth() int      { return ev.opts.MaxDepth }

// Evaluate runs the root to completion. The Go error is non-nil only when ctx
// ends first; exceptions are values.
func (ev *Evaluator) Evaluate(ctx context.Context) (Value, error) {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	return ev.run(ctx)
}

func (ev *Evaluator) run(ctx context.Context) (Value, error) {
	ev.start()
	for !ev.Finished() {
		if err := ctx.Err(); err != nil {
			ev.frames = nil
			return nil, err
		}
		ev.step()
	}
	if ex, ok := ev.result.(*Exception); ok {
		ev.log.Debug("evaluation ended with an exception", "code", ex.Code(), "node", nodeID(ex.Node))
	}
	return ev.result, nil
}

// Start resets the frame stack to a single frame for the root, abandoning
// any unfinished evaluation.
func (ev *Evaluator) Start() {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	ev.start()
}

func (ev *Evaluator) start() {
	root := ev.tree.Root()
	ev.frames = nil
	ev.result = nil
	ev.steps = 0
	ev.started = true
	ev.frames = append(ev.frames, &Evaluation{
		ev:         ev,
		definition: root,
		steps:      ev.Compile(root),
		scope:      NewScope(nil),
	})
}

// Step runs one step and reports whether the evaluation finished.
func (ev *Evaluator) Step() (bool, error) {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	if !ev.started {
		return false, ErrNotStarted
	}
	if !ev.Finished() {
		ev.step()
	}
	return ev.Finished(), nil
}

func (ev *Evaluator) Finished() bool { return ev.started && len(ev.frames) == 0 }

// stepping reports whether a started evaluation still has frames.
func (ev *Evaluator) stepping() bool { return ev.started && len(ev.frames) > 0 }

// Result is the value of the last finished evaluation.
func (ev *Evaluator) Result() Value { return ev.result }

// StepCount is the number of steps run by the current evaluation.
func (ev *Evaluator) StepCount() int { return ev.steps }

// NextStep is the step the current frame will run next, if any.
func (ev *Evaluator) NextStep() Step {
	f := ev.current()
	if f == nil || f.done() {
		return nil
	}
	return f.steps[f.index]
}

// Depth is the size of the frame stack.
func (ev *Evaluator) Depth() int { return len(ev.frames) }

func (ev *Evaluator) current() *Evaluation {
	if len(ev.frames) == 0 {
		return nil
	}
	return ev.frames[len(ev.frames)-1]
}

func (ev *Evaluator) step() {
	f := ev.current()
	if f.done() {
		ev.returnFrom(f)
		return
	}
	s := f.steps[f.index]
	f.index++
	ev.steps++
	v := s.Evaluate(ev)
	if v == nil {
		return
	}
	if ex, ok := v.(*Exception); ok {
		ev.abort(ex)
		return
	}
	f.push(v)
}

// returnFrom pops a finished frame and hands its result to the caller.
func (ev *Evaluator) returnFrom(f *Evaluation) {
	ev.frames = ev.frames[:len(ev.frames)-1]
	v := f.result()
	if ex, ok := v.(*Exception); ok {
		ev.abort(ex)
		return
	}
	v = ev.settle(f.creator, v)
	caller := ev.current()
	if caller == nil {
		ev.result = v
		return
	}
	caller.push(v)
}

// settle replaces a stream produced by a call with its latest value unless
// the call is the operand of a change check.
func (ev *Evaluator) settle(creator syntax.Node, v Value) Value {
	s, ok := v.(Stream)
	if !ok || creator == nil || creator.Kind() != syntax.KindEvaluate {
		return v
	}
	if p, ok := ev.tree.Parent(creator); ok && p.Kind() == syntax.KindChanged {
		return v
	}
	return s.Latest()
}

// abort ends every frame; the exception becomes the result.
func (ev *Evaluator) abort(ex *Exception) {
	ev.frames = nil
	ev.result = ex
}

// call pushes a frame running steps for definition on behalf of creator.
func (ev *Evaluator) call(definition, creator syntax.Node, scope *Scope, steps []Step) Value {
	if len(ev.frames) >= ev.opts.MaxDepth {
		return ContextException(creator, true)
	}
	ev.frames = append(ev.frames, &Evaluation{
		ev:         ev,
		definition: definition,
		creator:    creator,
		steps:      steps,
		scope:      scope,
	})
	return nil
}

func nodeID(n syntax.Node) syntax.ID {
	if n == nil {
		return 0
	}
	return n.ID()
}
