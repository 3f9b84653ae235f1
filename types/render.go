package types

import (
	"strings"

	"github.com/reoring/glint/syntax"
)

// String renders a type descriptor in source notation, e.g. "#ms | ø".
func String(t syntax.Node) string {
	var b strings.Builder
	write(&b, t)
	return b.String()
}

func write(b *strings.Builder, t syntax.Node) {
	switch x := t.(type) {
	case nil:
		b.WriteString(syntax.AnySymbol)
	case *syntax.BooleanType:
		b.WriteString(syntax.BooleanSymbol)
	case *syntax.NumberType:
		b.WriteString(syntax.NumberSymbol + x.Unit)
	case *syntax.TextType:
		b.WriteString(syntax.TextSymbol)
	case *syntax.NoneType:
		b.WriteString(syntax.NoneSymbol)
	case *syntax.AnyType:
		b.WriteString(syntax.AnySymbol)
	case *syntax.UnionType:
		for i, m := range x.Members() {
			if i > 0 {
				b.WriteString(" | ")
			}
			write(b, m)
		}
	case *syntax.ListType:
		b.WriteByte('[')
		if x.Item != nil {
			write(b, x.Item)
		}
		b.WriteByte(']')
	case *syntax.MapType:
		b.WriteByte('{')
		write(b, x.Key)
		b.WriteByte(':')
		write(b, x.Value)
		b.WriteByte('}')
	case *syntax.RecordType:
		b.WriteByte('{')
		writeBinds(b, x.Fields)
		b.WriteByte('}')
	case *syntax.FunctionType:
		b.WriteString("ƒ(")
		writeBinds(b, x.Inputs)
		b.WriteString(") ")
		write(b, x.Output)
	case *syntax.ConversionType:
		write(b, x.Input)
		b.WriteString(syntax.ConvertSymbol)
		write(b, x.Output)
	case *syntax.StreamType:
		b.WriteString(syntax.StreamSymbol)
		write(b, x.Value)
	case *syntax.UnknownType:
		b.WriteString("unknown(" + x.Reason.String() + ")")
	case *syntax.TypePlaceholder:
		b.WriteString(syntax.PlaceholderSymbol)
	default:
		b.WriteString(syntax.Print(t))
	}
}

func writeBinds(b *strings.Builder, binds []*syntax.Bind) {
	for i, f := range binds {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(f.Name())
		if f.Type != nil {
			b.WriteByte(':')
			write(b, f.Type)
		}
		if f.HasDefault() {
			b.WriteString("?")
		}
	}
}
