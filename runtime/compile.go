package runtime

import "github.com/reoring/glint/syntax"

// Compile returns the steps of n: operands first, then the node's own Finish.
// Step lists are memoized per node.
func (ev *Evaluator) Compile(n syntax.Node) []Step {
	if steps, ok := ev.compiled[n.ID()]; ok {
		return steps
	}
	ev.compilations++
	steps := ev.compile(n)
	ev.compiled[n.ID()] = steps
	return steps
}

// Compilations reports how many nodes were compiled rather than served from
// the cache.
func (ev *Evaluator) Compilations() int { return ev.compilations }

func (ev *Evaluator) compile(n syntax.Node) []Step {
	finish := &Finish{node: n}
	switch e := n.(type) {
	case *syntax.BooleanLiteral, *syntax.NumberLiteral, *syntax.TextLiteral, *syntax.NoneLiteral,
		*syntax.Reference, *syntax.This, *syntax.FunctionDefinition, *syntax.StreamDefinition,
		*syntax.ConversionDefinition:
		return []Step{finish}
	case *syntax.Block:
		steps := []Step{&Start{node: e, action: func(f *Evaluation) Value { f.enter(); return nil }}}
		for _, s := range e.Statements {
			steps = append(steps, ev.Compile(s)...)
		}
		return append(steps, finish)
	case *syntax.Bind:
		if e.Value == nil {
			return []Step{&Halt{node: e, exception: ValueException(e, e.Name())}}
		}
		return seq(ev.Compile(e.Value), finish)
	case *syntax.Evaluate:
		steps := ev.copyOf(e.Func)
		for _, in := range e.Inputs {
			steps = append(steps, ev.Compile(argument(in))...)
		}
		return append(steps, finish)
	case *syntax.BinaryOperation:
		left, right := ev.Compile(e.Left), ev.Compile(e.Right)
		switch e.Op() {
		case syntax.OpAnd, syntax.OpOr:
			// Short circuit: the left operand decides unless it is neutral.
			skip := &JumpIf{node: e, Count: len(right) + 1, JumpWhen: e.Op() == syntax.OpOr, Peek: true}
			return seq(left, skip, right, finish)
		}
		return seq(left, right, finish)
	case *syntax.Conditional:
		yes, no := ev.Compile(e.Yes), ev.Compile(e.No)
		return seq(
			ev.Compile(e.Condition),
			&JumpIf{node: e, Count: len(yes) + 1, JumpWhen: false},
			yes,
			&Jump{node: e, Count: len(no)},
			no,
			finish,
		)
	case *syntax.Is, *syntax.Convert, *syntax.PropertyAccess, *syntax.Changed:
		return seq(ev.Compile(operand(e)), finish)
	case *syntax.DocumentedExpression:
		return ev.Compile(e.Expression)
	case *syntax.ListLiteral:
		var steps []Step
		for _, it := range e.Items {
			steps = append(steps, ev.Compile(it)...)
		}
		return append(steps, finish)
	case *syntax.MapLiteral:
		var steps []Step
		for _, en := range e.Entries {
			kv, ok := en.(*syntax.KeyValue)
			if !ok {
				return []Step{&Halt{node: en, exception: unexpected(en)}}
			}
			steps = append(steps, ev.Compile(kv.Key)...)
			steps = append(steps, ev.Compile(kv.Value)...)
		}
		return append(steps, finish)
	case *syntax.RecordLiteral:
		var steps []Step
		for _, fd := range e.Fields {
			steps = append(steps, ev.Compile(argument(fd))...)
		}
		return append(steps, finish)
	case *syntax.ExpressionPlaceholder:
		return []Step{&Halt{node: e, exception: UnimplementedException(e)}}
	case *syntax.Unparsable:
		return []Step{&Halt{node: e, exception: SemanticException(e)}}
	case *NativeExpression:
		return []Step{finish}
	}
	return []Step{&Halt{node: n, exception: unexpected(n)}}
}

// argument is the expression that supplies a call input or record field: the
// value of a named Bind, or the node itself. A Bind without a value compiles
// to a halt.
func argument(n syntax.Node) syntax.Node {
	if b, ok := n.(*syntax.Bind); ok && b.Value != nil {
		return b.Value
	}
	return n
}

func operand(n syntax.Node) syntax.Node {
	switch e := n.(type) {
	case *syntax.Is:
		return e.Expression
	case *syntax.Convert:
		return e.Expression
	case *syntax.PropertyAccess:
		return e.Structure
	case *syntax.Changed:
		return e.Stream
	}
	return nil
}

func unexpected(n syntax.Node) *Exception {
	if n.Kind() == syntax.KindUnparsable {
		return SemanticException(n)
	}
	return ValueException(n, n.Kind().String())
}

func (ev *Evaluator) copyOf(n syntax.Node) []Step {
	src := ev.Compile(n)
	out := make([]Step, len(src), len(src)+4)
	copy(out, src)
	return out
}

// seq concatenates steps and step lists into a fresh slice.
func seq(parts ...any) []Step {
	var out []Step
	for _, p := range parts {
		switch x := p.(type) {
		case Step:
			out = append(out, x)
		case []Step:
			out = append(out, x...)
		}
	}
	return out
}
