package runtime

import "github.com/reoring/glint/syntax"

// thisName binds the value being converted inside a conversion body.
const thisName = syntax.ThisSymbol

// Scope is one level of name bindings chained to its enclosing scope.
type Scope struct {
	parent *Scope
	names  map[string]Value
}

func NewScope(parent *Scope) *Scope { return &Scope{parent: parent, names: map[string]Value{}} }

func (s *Scope) Parent() *Scope { return s.parent }

// Define binds name in this scope, shadowing outer bindings.
func (s *Scope) Define(name string, v Value) { s.names[name] = v }

// Lookup resolves name from this scope outward.
func (s *Scope) Lookup(name string) (Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.names[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Evaluation is one frame: the steps of a definition's body run for one
// creator node, with its own value stack and scopes.
type Evaluation struct {
	ev          *Evaluator
	definition  syntax.Node
	creator     syntax.Node
	steps       []Step
	index       int
	values      []Value
	scope       *Scope
	conversions []*Conversion
}

func (f *Evaluation) Evaluator() *Evaluator { return f.ev }

// Definition is the node whose body this frame runs: the root, a function,
// stream or conversion definition, or a shared bind.
func (f *Evaluation) Definition() syntax.Node { return f.definition }

// Creator is the node that started the frame, e.g. the Evaluate of a call.
// Natives use it to identify the stream they own.
func (f *Evaluation) Creator() syntax.Node { return f.creator }

func (f *Evaluation) Scope() *Scope { return f.scope }

// Resolve looks up name in the frame's scopes and the scopes it closes over.
func (f *Evaluation) Resolve(name string) (Value, bool) { return f.scope.Lookup(name) }

func (f *Evaluation) Bind(name string, v Value) { f.scope.Define(name, v) }

// This is the value being converted, when the frame runs inside a conversion.
func (f *Evaluation) This() (Value, bool) { return f.scope.Lookup(thisName) }

func (f *Evaluation) Conversions() []*Conversion { return f.conversions }

func (f *Evaluation) push(v Value) { f.values = append(f.values, v) }

func (f *Evaluation) pop() Value {
	if len(f.values) == 0 {
		return nil
	}
	v := f.values[len(f.values)-1]
	f.values = f.values[:len(f.values)-1]
	return v
}

func (f *Evaluation) peek() Value {
	if len(f.values) == 0 {
		return nil
	}
	return f.values[len(f.values)-1]
}

// popN removes the top n values and returns them in push order.
func (f *Evaluation) popN(n int) []Value {
	if n > len(f.values) {
		n = len(f.values)
	}
	out := make([]Value, n)
	copy(out, f.values[len(f.values)-n:])
	f.values = f.values[:len(f.values)-n]
	return out
}

func (f *Evaluation) enter() { f.scope = NewScope(f.scope) }

func (f *Evaluation) leave() {
	if f.scope.parent != nil {
		f.scope = f.scope.parent
	}
}

func (f *Evaluation) done() bool { return f.index >= len(f.steps) }

// result is the last value left on the stack, or none.
func (f *Evaluation) result() Value {
	if v := f.peek(); v != nil {
		return v
	}
	return None{}
}
