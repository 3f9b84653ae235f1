package runtime

import (
	"math"

	"github.com/reoring/glint/syntax"
	"github.com/reoring/glint/types"
)

// finish computes the value of n from the operands on f's stack. It returns
// nil when it started a frame whose result will be pushed on return.
func (ev *Evaluator) finish(f *Evaluation, n syntax.Node) Value {
	switch e := n.(type) {
	case *syntax.BooleanLiteral:
		return Bool(e.Value)
	case *syntax.NumberLiteral:
		return Number{Value: e.Value, Unit: e.Unit}
	case *syntax.TextLiteral:
		return Text(e.Value)
	case *syntax.NoneLiteral:
		return None{}
	case *syntax.Reference:
		return ev.resolve(f, e)
	case *syntax.This:
		if v, ok := f.This(); ok {
			return v
		}
		return NameException(e, syntax.ThisSymbol)
	case *syntax.Block:
		vals := f.popN(len(e.Statements))
		f.leave()
		if len(vals) == 0 {
			return None{}
		}
		return vals[len(vals)-1]
	case *syntax.Bind:
		v := f.pop()
		for _, name := range e.Names {
			f.Bind(name.Text, v)
		}
		return v
	case *syntax.FunctionDefinition:
		fn := &Function{Def: e, Closure: f.scope}
		for _, name := range e.Names {
			f.Bind(name.Text, fn)
		}
		return fn
	case *syntax.StreamDefinition:
		sf := &StreamFunction{Def: e, Closure: f.scope}
		for _, name := range e.Names {
			f.Bind(name.Text, sf)
		}
		return sf
	case *syntax.ConversionDefinition:
		f.conversions = append(f.conversions, &Conversion{Def: e, Closure: f.scope})
		return None{}
	case *syntax.Evaluate:
		args := f.popN(len(e.Inputs))
		return ev.evaluate(e, f.pop(), args)
	case *syntax.BinaryOperation:
		right, left := f.pop(), f.pop()
		return binary(e, left, right)
	case *syntax.Conditional:
		return f.pop()
	case *syntax.Is:
		v := f.pop()
		return Bool(types.Accepts(e.Type, v.Type(), nil))
	case *syntax.Convert:
		return ev.convert(e, f.pop())
	case *syntax.ListLiteral:
		return NewList(f.popN(len(e.Items))...)
	case *syntax.MapLiteral:
		vals := f.popN(2 * len(e.Entries))
		m := NewMap()
		for i := 0; i+1 < len(vals); i += 2 {
			m.Set(vals[i], vals[i+1])
		}
		return m
	case *syntax.RecordLiteral:
		vals := f.popN(len(e.Fields))
		r := NewRecord()
		for i, fd := range e.Fields {
			r.With(fd.Name(), vals[i])
		}
		return r
	case *syntax.PropertyAccess:
		v := f.pop()
		r, ok := v.(*Record)
		if !ok {
			return TypeException(e.Structure, syntax.NewRecordType(), typeOf(v))
		}
		if field, ok := r.Field(e.Name.Text); ok {
			return field
		}
		return NameException(e.Name, e.Name.Text)
	case *syntax.Changed:
		v := f.pop()
		s, ok := v.(Stream)
		if !ok {
			return TypeException(e.Stream, syntax.NewStreamType(nil), typeOf(v))
		}
		return Bool(ev.changed[s.Creator().ID()])
	case *NativeExpression:
		if e.Evaluate == nil {
			return UnimplementedException(e)
		}
		v := e.Evaluate(f.creator, f)
		if v == nil {
			return None{}
		}
		return v
	}
	return ValueException(n, n.Kind().String())
}

// resolve looks a name up in the frame's scopes, then in the shares.
func (ev *Evaluator) resolve(f *Evaluation, r *syntax.Reference) Value {
	name := r.Name.Text
	if v, ok := f.Resolve(name); ok {
		return v
	}
	for _, s := range ev.tree.Shares() {
		d, ok := s.(syntax.Definition)
		if !ok || !d.HasName(name) {
			continue
		}
		switch def := d.(type) {
		case *syntax.FunctionDefinition:
			return &Function{Def: def}
		case *syntax.StreamDefinition:
			return &StreamFunction{Def: def}
		case *syntax.Bind:
			// Shared binds evaluate in a frame of their own each time they
			// are referenced.
			return ev.call(def, r, NewScope(nil), ev.Compile(argument(def)))
		}
	}
	return NameException(r, name)
}

// evaluate calls fn with the arguments of e.
func (ev *Evaluator) evaluate(e *syntax.Evaluate, fn Value, args []Value) Value {
	var (
		params  []*syntax.Bind
		body    syntax.Node
		closure *Scope
		def     syntax.Node
	)
	switch callee := fn.(type) {
	case *Function:
		params, body, closure, def = callee.Def.Inputs, callee.Def.Expression, callee.Closure, callee.Def
	case *StreamFunction:
		params, body, closure, def = callee.Def.Inputs, callee.Def.Expression, callee.Closure, callee.Def
	default:
		return TypeException(e.Func, syntax.NewFunctionType(nil, syntax.NewAnyType()), typeOf(fn))
	}
	if body == nil {
		return UnimplementedException(def)
	}
	scope := NewScope(closure)
	given := make([]bool, len(params))
	for i, in := range e.Inputs {
		idx := i
		if named, ok := in.(*syntax.Bind); ok {
			idx = inputIndex(params, named.Name())
			if idx < 0 {
				return NameException(in, named.Name())
			}
		} else if i >= len(params) {
			return ValueException(in, "input")
		}
		for _, name := range params[idx].Names {
			scope.Define(name.Text, args[i])
		}
		given[idx] = true
	}
	var steps []Step
	for j, p := range params {
		if given[j] {
			continue
		}
		if !p.HasDefault() {
			return ValueException(e, p.Name())
		}
		steps = append(steps, ev.Compile(p)...)
	}
	steps = append(steps, ev.Compile(body)...)
	return ev.call(def, e, scope, steps)
}

func inputIndex(params []*syntax.Bind, name string) int {
	for j, p := range params {
		if p.HasName(name) {
			return j
		}
	}
	return -1
}

func binary(e *syntax.BinaryOperation, left, right Value) Value {
	op := e.Op()
	switch op {
	case syntax.OpEqual:
		return Bool(Equal(left, right))
	case syntax.OpNotEqual:
		return Bool(!Equal(left, right))
	case syntax.OpAnd, syntax.OpOr:
		l, lok := left.(Bool)
		r, rok := right.(Bool)
		if !lok {
			return TypeException(e.Left, syntax.NewBooleanType(), typeOf(left))
		}
		if !rok {
			return TypeException(e.Right, syntax.NewBooleanType(), typeOf(right))
		}
		if op == syntax.OpAnd {
			return l && r
		}
		return l || r
	}
	if op == syntax.OpAdd {
		if l, ok := left.(Text); ok {
			if r, ok := right.(Text); ok {
				return l + r
			}
			return TypeException(e.Right, syntax.NewTextType(), typeOf(right))
		}
	}
	l, ok := left.(Number)
	if !ok {
		return TypeException(e.Left, syntax.NewNumberType(""), typeOf(left))
	}
	r, ok := right.(Number)
	if !ok {
		return TypeException(e.Right, syntax.NewNumberType(l.Unit), typeOf(right))
	}
	switch op {
	case syntax.OpMultiply:
		return Number{Value: l.Value * r.Value, Unit: types.ResultUnit(op, l.Unit, r.Unit)}
	case syntax.OpDivide:
		if r.Value == 0 {
			return Number{Value: math.NaN(), Unit: types.ResultUnit(op, l.Unit, r.Unit)}
		}
		return Number{Value: l.Value / r.Value, Unit: types.ResultUnit(op, l.Unit, r.Unit)}
	}
	if l.Unit != r.Unit {
		return TypeException(e.Right, syntax.NewNumberType(l.Unit), r.Type())
	}
	switch op {
	case syntax.OpAdd:
		return Number{Value: l.Value + r.Value, Unit: l.Unit}
	case syntax.OpSubtract:
		return Number{Value: l.Value - r.Value, Unit: l.Unit}
	case syntax.OpLess:
		return Bool(l.Value < r.Value)
	case syntax.OpGreater:
		return Bool(l.Value > r.Value)
	case syntax.OpLessEq:
		return Bool(l.Value <= r.Value)
	case syntax.OpGreaterEq:
		return Bool(l.Value >= r.Value)
	}
	return UnimplementedException(e)
}
