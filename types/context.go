// Package types infers structural types for expressions and decides the
// accepts relation between them.
package types

import (
	"github.com/reoring/glint/syntax"
)

// Declared is implemented by expressions whose type is supplied rather than
// inferred, such as native expressions.
type Declared interface {
	DeclaredType() syntax.Node
}

// Context memoizes the type of every expression of one tree. Absence from the
// cache means "not computed"; an *syntax.UnknownType value means "computed
// but unknown". A Context is used from one goroutine at a time.
type Context struct {
	tree         *syntax.Tree
	cache        map[syntax.ID]syntax.Node
	computing    map[syntax.ID]bool
	visited      []syntax.Node
	computations int
}

func NewContext(tree *syntax.Tree) *Context {
	return &Context{tree: tree, cache: map[syntax.ID]syntax.Node{}, computing: map[syntax.ID]bool{}}
}

func (c *Context) Tree() *syntax.Tree { return c.tree }

// TypeComputations reports how many types were computed rather than served
// from the cache.
func (c *Context) TypeComputations() int { return c.computations }

// TypeOf returns the memoized type of n. A request for n made while n is
// still being computed yields an UnknownCycle type, which is not cached.
func (c *Context) TypeOf(n syntax.Node) syntax.Node {
	if n == nil {
		return syntax.NewNoneType()
	}
	if t, ok := c.cache[n.ID()]; ok {
		return t
	}
	if c.computing[n.ID()] {
		return syntax.NewUnknownType(syntax.UnknownCycle, n)
	}
	c.computing[n.ID()] = true
	c.computations++
	t := c.compute(n)
	delete(c.computing, n.ID())
	c.cache[n.ID()] = t
	return t
}

// TypeOfUnlessCycle is TypeOf guarded by the visit stack: re-entering n while
// its type is being computed yields an UnknownCycle type.
func (c *Context) TypeOfUnlessCycle(n syntax.Node) syntax.Node {
	if c.Visited(n) {
		return syntax.NewUnknownType(syntax.UnknownCycle, n)
	}
	c.visit(n)
	defer c.unvisit()
	return c.TypeOf(n)
}

// Visited reports whether n is on the visit stack.
func (c *Context) Visited(n syntax.Node) bool {
	for _, v := range c.visited {
		if v.ID() == n.ID() {
			return true
		}
	}
	return false
}

func (c *Context) visit(n syntax.Node) { c.visited = append(c.visited, n) }
func (c *Context) unvisit()            { c.visited = c.visited[:len(c.visited)-1] }

// IsUnknown reports whether t is an unknown type.
func IsUnknown(t syntax.Node) bool {
	_, ok := t.(*syntax.UnknownType)
	return ok
}

func (c *Context) compute(n syntax.Node) syntax.Node {
	switch e := n.(type) {
	case *syntax.BooleanLiteral:
		return syntax.NewBooleanType()
	case *syntax.NumberLiteral:
		return syntax.NewNumberType(e.Unit)
	case *syntax.TextLiteral:
		return syntax.NewTextType()
	case *syntax.NoneLiteral:
		return syntax.NewNoneType()
	case *syntax.Reference:
		return c.referenceType(e)
	case *syntax.Block:
		if last := e.Last(); last != nil {
			return c.TypeOf(last)
		}
		return syntax.NewNoneType()
	case *syntax.Bind:
		return c.bindType(e)
	case *syntax.FunctionDefinition:
		return syntax.NewFunctionType(e.Inputs, c.outputOf(e.Output, e.Expression))
	case *syntax.StreamDefinition:
		return syntax.NewFunctionType(e.Inputs, syntax.NewStreamType(e.Output))
	case *syntax.Evaluate:
		return c.evaluateType(e)
	case *syntax.BinaryOperation:
		return c.binaryType(e)
	case *syntax.Conditional:
		return c.Union(c.TypeOf(e.Yes), c.TypeOf(e.No))
	case *syntax.Is, *syntax.Changed:
		return syntax.NewBooleanType()
	case *syntax.Convert:
		return e.Type
	case *syntax.ConversionDefinition:
		return syntax.NewConversionType(e.Input, e.Output)
	case *syntax.This:
		if conv := c.EnclosingConversion(e); conv != nil {
			return conv.Input
		}
		return syntax.NewUnknownType(syntax.UnknownName, e)
	case *syntax.ListLiteral:
		var items []syntax.Node
		for _, it := range e.Items {
			items = append(items, c.TypeOf(it))
		}
		return syntax.NewListType(NewTypeSet(items...).Type())
	case *syntax.MapLiteral:
		var keys, values []syntax.Node
		for _, en := range e.Entries {
			if kv, ok := en.(*syntax.KeyValue); ok {
				keys = append(keys, c.TypeOf(kv.Key))
				values = append(values, c.TypeOf(kv.Value))
			}
		}
		return syntax.NewMapType(NewTypeSet(keys...).Type(), NewTypeSet(values...).Type())
	case *syntax.RecordLiteral:
		fields := make([]*syntax.Bind, 0, len(e.Fields))
		for _, f := range e.Fields {
			fields = append(fields, syntax.NewBindNames(tokenTexts(f.Names), c.FieldType(f), nil))
		}
		return syntax.NewRecordType(fields...)
	case *syntax.PropertyAccess:
		return c.propertyType(e)
	case *syntax.DocumentedExpression:
		return c.TypeOf(e.Expression)
	case *syntax.ExpressionPlaceholder:
		if e.Type != nil {
			return e.Type
		}
		return syntax.NewUnknownType(syntax.UnknownPlaceholder, e)
	case *syntax.Unparsable:
		return syntax.NewUnknownType(syntax.UnknownUnparsable, e)
	case Declared:
		return e.DeclaredType()
	}
	return syntax.NewUnknownType(syntax.UnknownOperation, n)
}

func (c *Context) outputOf(declared, body syntax.Node) syntax.Node {
	if declared != nil {
		return declared
	}
	if body == nil {
		return syntax.NewUnknownType(syntax.UnknownPlaceholder, nil)
	}
	return c.TypeOf(body)
}

func (c *Context) bindType(b *syntax.Bind) syntax.Node {
	if b.Type != nil {
		return b.Type
	}
	if b.Value != nil {
		return c.TypeOf(b.Value)
	}
	return syntax.NewAnyType()
}

// FieldType is the type of a record field, function input or bind.
func (c *Context) FieldType(b *syntax.Bind) syntax.Node {
	if b == nil {
		return syntax.NewAnyType()
	}
	return c.bindType(b)
}

func (c *Context) referenceType(r *syntax.Reference) syntax.Node {
	def := c.tree.DefinitionOf(r.Name.Text, r)
	if def == nil {
		return syntax.NewUnknownType(syntax.UnknownName, r)
	}
	t := c.TypeOfUnlessCycle(def)
	if b, ok := def.(*syntax.Bind); ok && !IsUnknown(t) {
		return c.narrow(r, b, t)
	}
	return t
}

// narrow applies the conditions of every conditional whose yes branch holds
// the reference.
func (c *Context) narrow(r *syntax.Reference, b *syntax.Bind, t syntax.Node) syntax.Node {
	ancestors, ok := c.tree.Ancestors(r)
	if !ok {
		return t
	}
	original := NewTypeSet(t)
	current := original
	narrowed := false
	for _, a := range ancestors {
		if a.ID() == b.ID() {
			break
		}
		cond, ok := a.(*syntax.Conditional)
		if !ok || !c.tree.ContainsIn(cond.Yes, r) {
			continue
		}
		current = c.EvaluateTypeSet(b, cond.Condition, original, current)
		narrowed = true
	}
	if !narrowed || len(current) == 0 {
		return t
	}
	return current.Type()
}

func (c *Context) evaluateType(e *syntax.Evaluate) syntax.Node {
	fn := c.TypeOf(e.Func)
	ft, ok := fn.(*syntax.FunctionType)
	if !ok {
		return syntax.NewUnknownType(syntax.UnknownFunction, e)
	}
	out := ft.Output
	if st, ok := out.(*syntax.StreamType); ok {
		if p, ok := c.tree.Parent(e); ok && p.Kind() == syntax.KindChanged {
			return out
		}
		return st.Value
	}
	return out
}

func (c *Context) binaryType(b *syntax.BinaryOperation) syntax.Node {
	switch b.Op() {
	case syntax.OpEqual, syntax.OpNotEqual, syntax.OpLess, syntax.OpGreater,
		syntax.OpLessEq, syntax.OpGreaterEq, syntax.OpAnd, syntax.OpOr:
		return syntax.NewBooleanType()
	}
	left, right := c.TypeOf(b.Left), c.TypeOf(b.Right)
	if b.Op() == syntax.OpAdd {
		_, lt := left.(*syntax.TextType)
		_, rt := right.(*syntax.TextType)
		if lt && rt {
			return syntax.NewTextType()
		}
	}
	ln, lok := left.(*syntax.NumberType)
	rn, rok := right.(*syntax.NumberType)
	if !lok || !rok {
		return syntax.NewUnknownType(syntax.UnknownOperation, b)
	}
	return syntax.NewNumberType(ResultUnit(b.Op(), ln.Unit, rn.Unit))
}

// ResultUnit is the unit of an arithmetic result.
func ResultUnit(op, left, right string) string {
	switch op {
	case syntax.OpMultiply:
		switch {
		case left == "":
			return right
		case right == "":
			return left
		}
		return left + "·" + right
	case syntax.OpDivide:
		switch {
		case right == "":
			return left
		case left == right:
			return ""
		}
		return left + "/" + right
	}
	return left
}

func (c *Context) propertyType(p *syntax.PropertyAccess) syntax.Node {
	rt, ok := c.TypeOf(p.Structure).(*syntax.RecordType)
	if !ok {
		return syntax.NewUnknownType(syntax.UnknownProperty, p)
	}
	f := rt.Field(p.Name.Text)
	if f == nil {
		return syntax.NewUnknownType(syntax.UnknownProperty, p)
	}
	return c.FieldType(f)
}

// EnclosingConversion returns the conversion whose body holds n.
func (c *Context) EnclosingConversion(n syntax.Node) *syntax.ConversionDefinition {
	found := c.tree.NearestAncestor(n, func(a syntax.Node) bool {
		conv, ok := a.(*syntax.ConversionDefinition)
		return ok && c.tree.ContainsIn(conv.Expression, n)
	})
	conv, _ := found.(*syntax.ConversionDefinition)
	return conv
}

// Union returns the narrowest type accepting both a and b.
func (c *Context) Union(a, b syntax.Node) syntax.Node {
	switch {
	case Accepts(a, b, c):
		return a
	case Accepts(b, a, c):
		return b
	}
	return syntax.NewUnion(a, b)
}

func tokenTexts(ts []*syntax.Token) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Text
	}
	return out
}
