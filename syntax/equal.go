package syntax

import (
	"strconv"
	"strings"
)

// Equal reports whether a and b have the same structure and payloads,
// ignoring identities. Native nodes are equal only to themselves.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	if a.Kind() == KindNative {
		return a.ID() == b.ID()
	}
	if !samePayload(a, b) {
		return false
	}
	ga, gb := a.Grammar(), b.Grammar()
	if len(ga) != len(gb) {
		return false
	}
	for i := range ga {
		if len(ga[i].Nodes) != len(gb[i].Nodes) {
			return false
		}
		for j := range ga[i].Nodes {
			if !Equal(ga[i].Nodes[j], gb[i].Nodes[j]) {
				return false
			}
		}
	}
	return true
}

func samePayload(a, b Node) bool {
	switch x := a.(type) {
	case *Token:
		y := b.(*Token)
		return x.Text == y.Text && x.Type == y.Type
	case *Doc:
		y := b.(*Doc)
		return x.Text == y.Text && x.Language == y.Language
	case *BooleanLiteral:
		return x.Value == b.(*BooleanLiteral).Value
	case *NumberLiteral:
		y := b.(*NumberLiteral)
		return x.Value == y.Value && x.Unit == y.Unit
	case *TextLiteral:
		return x.Value == b.(*TextLiteral).Value
	case *NumberType:
		return x.Unit == b.(*NumberType).Unit
	case *UnknownType:
		return x.Reason == b.(*UnknownType).Reason
	case *Unparsable:
		return x.Text == b.(*Unparsable).Text
	}
	return true
}

// Print renders n as an s-expression for logs and test failures. Tokens print
// as their text.
func Print(n Node) string {
	var b strings.Builder
	printTo(&b, n)
	return b.String()
}

func printTo(b *strings.Builder, n Node) {
	switch x := n.(type) {
	case nil:
		b.WriteString("nil")
		return
	case *Token:
		b.WriteString(x.Text)
		return
	case *Doc:
		b.WriteString("`" + x.Text + "`")
		return
	case *Unparsable:
		b.WriteString("(Unparsable " + strconv.Quote(x.Text) + ")")
		return
	case *UnknownType:
		b.WriteString("(UnknownType " + x.Reason.String() + ")")
		return
	}
	b.WriteByte('(')
	b.WriteString(n.Kind().String())
	for _, c := range ComputeChildren(n) {
		b.WriteByte(' ')
		printTo(b, c)
	}
	b.WriteByte(')')
}
