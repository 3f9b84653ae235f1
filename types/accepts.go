package types

import "github.com/reoring/glint/syntax"

// Accepts reports whether a value of type b may be used where a is expected.
// The relation is structural and asymmetric.
func Accepts(a, b syntax.Node, c *Context) bool {
	if a == nil || b == nil {
		return false
	}
	switch a.(type) {
	case *syntax.AnyType, *syntax.TypePlaceholder, *syntax.Unparsable:
		return true
	}
	if bu, ok := b.(*syntax.UnionType); ok {
		for _, m := range bu.Members() {
			if !Accepts(a, m, c) {
				return false
			}
		}
		return true
	}
	if au, ok := a.(*syntax.UnionType); ok {
		for _, m := range au.Members() {
			if Accepts(m, b, c) {
				return true
			}
		}
		return false
	}
	if _, ok := b.(*syntax.UnknownType); ok {
		return a.Kind() == syntax.KindUnknownType
	}

	switch at := a.(type) {
	case *syntax.BooleanType, *syntax.TextType, *syntax.NoneType, *syntax.UnknownType:
		return a.Kind() == b.Kind()
	case *syntax.NumberType:
		bt, ok := b.(*syntax.NumberType)
		return ok && at.Unit == bt.Unit
	case *syntax.ListType:
		bt, ok := b.(*syntax.ListType)
		return ok && optionalAccepts(at.Item, bt.Item, c)
	case *syntax.MapType:
		bt, ok := b.(*syntax.MapType)
		return ok && optionalAccepts(at.Key, bt.Key, c) && optionalAccepts(at.Value, bt.Value, c)
	case *syntax.RecordType:
		bt, ok := b.(*syntax.RecordType)
		return ok && recordAccepts(at, bt, c)
	case *syntax.FunctionType:
		bt, ok := b.(*syntax.FunctionType)
		if !ok || len(at.Inputs) != len(bt.Inputs) {
			return false
		}
		for i := range at.Inputs {
			if !Accepts(fieldType(at.Inputs[i], c), fieldType(bt.Inputs[i], c), c) {
				return false
			}
		}
		return optionalAccepts(at.Output, bt.Output, c)
	case *syntax.ConversionType:
		bt, ok := b.(*syntax.ConversionType)
		return ok && Accepts(at.Input, bt.Input, c) && Accepts(at.Output, bt.Output, c)
	case *syntax.StreamType:
		bt, ok := b.(*syntax.StreamType)
		return ok && optionalAccepts(at.Value, bt.Value, c)
	}
	return false
}

// optionalAccepts treats a missing item, value or output type as
// unconstrained.
func optionalAccepts(a, b syntax.Node, c *Context) bool {
	if a == nil || b == nil {
		return true
	}
	return Accepts(a, b, c)
}

// recordAccepts requires every required field of a to be present in b with
// an accepted type. Optional fields are checked only when b has them.
func recordAccepts(a, b *syntax.RecordType, c *Context) bool {
	for _, fa := range a.Fields {
		var fb *syntax.Bind
		for _, n := range fa.Names {
			if fb = b.Field(n.Text); fb != nil {
				break
			}
		}
		if fb == nil {
			if fa.HasDefault() {
				continue
			}
			return false
		}
		if !Accepts(fieldType(fa, c), fieldType(fb, c), c) {
			return false
		}
	}
	return true
}

func fieldType(b *syntax.Bind, c *Context) syntax.Node {
	if c == nil {
		if b.Type != nil {
			return b.Type
		}
		return syntax.NewAnyType()
	}
	return c.FieldType(b)
}
