package types

import "github.com/reoring/glint/syntax"

// Convertible reports whether a built-in conversion turns values of type from
// into values of type to: identity when to accepts from, anything primitive to
// text, and text to number.
func Convertible(from, to syntax.Node, c *Context) bool {
	if Accepts(to, from, c) {
		return true
	}
	switch to.(type) {
	case *syntax.TextType:
		switch from.(type) {
		case *syntax.NumberType, *syntax.BooleanType, *syntax.NoneType:
			return true
		}
	case *syntax.NumberType:
		_, ok := from.(*syntax.TextType)
		return ok
	}
	return false
}

// Conversions lists every conversion definition in the tree, in traversal
// order.
func (c *Context) Conversions() []*syntax.ConversionDefinition {
	var out []*syntax.ConversionDefinition
	for _, n := range c.tree.Nodes(func(n syntax.Node) bool { return n.Kind() == syntax.KindConversionDefinition }) {
		out = append(out, n.(*syntax.ConversionDefinition))
	}
	return out
}

// ConversionFor finds a user conversion from a value of type from to to.
func (c *Context) ConversionFor(from, to syntax.Node) *syntax.ConversionDefinition {
	for _, conv := range c.Conversions() {
		if Accepts(conv.Input, from, c) && Accepts(to, conv.Output, c) {
			return conv
		}
	}
	return nil
}
