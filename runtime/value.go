// Package runtime evaluates syntax trees step by step. Expressions compile
// into flat step lists run by an Evaluator over a stack of frames; streams
// feed new values into re-evaluations when they tick.
package runtime

import (
	"strconv"
	"strings"

	"github.com/reoring/glint/syntax"
	"github.com/reoring/glint/types"
)

// Value is the result of evaluating an expression.
type Value interface {
	// Type describes the value as a type node.
	Type() syntax.Node
	String() string
}

type Bool bool

func (Bool) Type() syntax.Node { return syntax.NewBooleanType() }
func (b Bool) String() string {
	if b {
		return syntax.TrueSymbol
	}
	return syntax.FalseSymbol
}

// Number is a float with an optional unit such as "ms".
type Number struct {
	Value float64
	Unit  string
}

func (n Number) Type() syntax.Node { return syntax.NewNumberType(n.Unit) }
func (n Number) String() string    { return strconv.FormatFloat(n.Value, 'f', -1, 64) + n.Unit }

type Text string

func (Text) Type() syntax.Node  { return syntax.NewTextType() }
func (t Text) String() string   { return "'" + string(t) + "'" }
func (t Text) Unquoted() string { return string(t) }

type None struct{}

func (None) Type() syntax.Node { return syntax.NewNoneType() }
func (None) String() string    { return syntax.NoneSymbol }

type List struct {
	Items []Value
}

func NewList(items ...Value) *List { return &List{Items: items} }

func (l *List) Type() syntax.Node {
	if len(l.Items) == 0 {
		return syntax.NewListType(nil)
	}
	ts := make([]syntax.Node, len(l.Items))
	for i, v := range l.Items {
		ts[i] = v.Type()
	}
	return syntax.NewListType(types.NewTypeSet(ts...).Type())
}

func (l *List) String() string {
	parts := make([]string, len(l.Items))
	for i, v := range l.Items {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Map keeps its entries in insertion order. Keys compare with Equal.
type Map struct {
	keys   []Value
	values []Value
}

func NewMap() *Map { return &Map{} }

// Set adds or replaces the value for key.
func (m *Map) Set(key, value Value) {
	for i, k := range m.keys {
		if Equal(k, key) {
			m.values[i] = value
			return
		}
	}
	m.keys = append(m.keys, key)
	m.values = append(m.values, value)
}

func (m *Map) Get(key Value) (Value, bool) {
	for i, k := range m.keys {
		if Equal(k, key) {
			return m.values[i], true
		}
	}
	return nil, false
}

func (m *Map) Len() int { return len(m.keys) }

// Each visits the entries in order until visit returns false.
func (m *Map) Each(visit func(key, value Value) bool) {
	for i := range m.keys {
		if !visit(m.keys[i], m.values[i]) {
			return
		}
	}
}

func (m *Map) Type() syntax.Node {
	if len(m.keys) == 0 {
		return syntax.NewMapType(syntax.NewAnyType(), syntax.NewAnyType())
	}
	ks := make([]syntax.Node, len(m.keys))
	vs := make([]syntax.Node, len(m.values))
	for i := range m.keys {
		ks[i], vs[i] = m.keys[i].Type(), m.values[i].Type()
	}
	return syntax.NewMapType(types.NewTypeSet(ks...).Type(), types.NewTypeSet(vs...).Type())
}

func (m *Map) String() string {
	if len(m.keys) == 0 {
		return "{:}"
	}
	parts := make([]string, len(m.keys))
	for i := range m.keys {
		parts[i] = m.keys[i].String() + ":" + m.values[i].String()
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// Record is a value with named fields in declaration order.
type Record struct {
	Names  []string
	Values []Value
}

func NewRecord() *Record { return &Record{} }

// With appends a field and returns the record.
func (r *Record) With(name string, v Value) *Record {
	r.Names = append(r.Names, name)
	r.Values = append(r.Values, v)
	return r
}

func (r *Record) Field(name string) (Value, bool) {
	for i, n := range r.Names {
		if n == name {
			return r.Values[i], true
		}
	}
	return nil, false
}

func (r *Record) Type() syntax.Node {
	fields := make([]*syntax.Bind, len(r.Names))
	for i, n := range r.Names {
		fields[i] = syntax.NewBind(n, r.Values[i].Type(), nil)
	}
	return syntax.NewRecordType(fields...)
}

func (r *Record) String() string {
	parts := make([]string, len(r.Names))
	for i, n := range r.Names {
		parts[i] = n + ":" + r.Values[i].String()
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// Function is a function definition closed over the scope it was evaluated in.
type Function struct {
	Def     *syntax.FunctionDefinition
	Closure *Scope
}

func (f *Function) Type() syntax.Node {
	out := f.Def.Output
	if out == nil {
		out = syntax.NewAnyType()
	}
	return syntax.NewFunctionType(f.Def.Inputs, out)
}

func (f *Function) String() string { return "ƒ " + nameOr(f.Def.Name(), "anonymous") }

// StreamFunction is a stream definition closed over its scope. Evaluating it
// produces the stream registered for the calling node.
type StreamFunction struct {
	Def     *syntax.StreamDefinition
	Closure *Scope
}

func (s *StreamFunction) Type() syntax.Node {
	return syntax.NewFunctionType(s.Def.Inputs, syntax.NewStreamType(s.Def.Output))
}

func (s *StreamFunction) String() string { return syntax.StreamSymbol + nameOr(s.Def.Name(), "stream") }

// Conversion is a registered conversion definition.
type Conversion struct {
	Def     *syntax.ConversionDefinition
	Closure *Scope
}

func (c *Conversion) Type() syntax.Node { return syntax.NewConversionType(c.Def.Input, c.Def.Output) }
func (c *Conversion) String() string {
	return types.String(c.Def.Input) + syntax.ConvertSymbol + types.String(c.Def.Output)
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

// Equal compares values structurally. Functions, streams and exceptions are
// equal only to themselves.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Number:
		y, ok := b.(Number)
		return ok && x.Value == y.Value && x.Unit == y.Unit
	case Text:
		y, ok := b.(Text)
		return ok && x == y
	case None:
		_, ok := b.(None)
		return ok
	case *List:
		y, ok := b.(*List)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case *Map:
		y, ok := b.(*Map)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for i, k := range x.keys {
			v, ok := y.Get(k)
			if !ok || !Equal(x.values[i], v) {
				return false
			}
		}
		return true
	case *Record:
		y, ok := b.(*Record)
		if !ok || len(x.Names) != len(y.Names) {
			return false
		}
		for i, n := range x.Names {
			v, ok := y.Field(n)
			if !ok || !Equal(x.Values[i], v) {
				return false
			}
		}
		return true
	}
	return a == b
}
