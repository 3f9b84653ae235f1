package types

import "github.com/reoring/glint/syntax"

// TypeSet is the set of types a binding may hold along one control-flow path.
// Members are never unions and are distinct by structure.
type TypeSet []syntax.Node

// NewTypeSet flattens unions among types into a set.
func NewTypeSet(types ...syntax.Node) TypeSet {
	var out TypeSet
	for _, t := range types {
		if t == nil {
			continue
		}
		if u, ok := t.(*syntax.UnionType); ok {
			out = out.Union(NewTypeSet(u.Members()...))
			continue
		}
		if !out.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// Has reports whether a structurally equal type is a member.
func (s TypeSet) Has(t syntax.Node) bool {
	for _, m := range s {
		if syntax.Equal(m, t) {
			return true
		}
	}
	return false
}

func (s TypeSet) Union(other TypeSet) TypeSet {
	out := append(TypeSet{}, s...)
	for _, t := range other {
		if !out.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s TypeSet) Filter(keep func(syntax.Node) bool) TypeSet {
	var out TypeSet
	for _, t := range s {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// Type folds the set back into a single type; an empty set yields nil.
func (s TypeSet) Type() syntax.Node { return syntax.NewUnion(s...) }

// EvaluateTypeSet narrows the types bind may hold after expr has been found
// true. An Is test on a reference to bind keeps the members the tested type
// accepts; & narrows by both operands in turn; | unions the narrowing of each
// operand. Anything else leaves current unchanged.
func (c *Context) EvaluateTypeSet(bind *syntax.Bind, expr syntax.Node, original, current TypeSet) TypeSet {
	switch e := expr.(type) {
	case *syntax.Is:
		ref, ok := e.Expression.(*syntax.Reference)
		if !ok {
			return current
		}
		if def := c.tree.DefinitionOf(ref.Name.Text, ref); def == nil || def.ID() != bind.ID() {
			return current
		}
		return current.Filter(func(t syntax.Node) bool { return Accepts(e.Type, t, c) })
	case *syntax.BinaryOperation:
		switch e.Op() {
		case syntax.OpAnd:
			left := c.EvaluateTypeSet(bind, e.Left, original, current)
			return c.EvaluateTypeSet(bind, e.Right, original, left)
		case syntax.OpOr:
			left := c.EvaluateTypeSet(bind, e.Left, original, current)
			right := c.EvaluateTypeSet(bind, e.Right, original, current)
			return left.Union(right)
		}
	case *syntax.DocumentedExpression:
		return c.EvaluateTypeSet(bind, e.Expression, original, current)
	}
	return current
}
