package runtime

import (
	"github.com/reoring/glint/syntax"
	"github.com/reoring/glint/types"
)

// NativeFunc computes the value of a native expression. requestor is the
// node that created the running frame, typically the Evaluate of a call.
type NativeFunc func(requestor syntax.Node, f *Evaluation) Value

// NativeExpression is an expression implemented in Go, used as the body of
// shared function and stream definitions. It has no children and is equal
// only to itself.
type NativeExpression struct {
	id       syntax.ID
	declared syntax.Node
	Evaluate NativeFunc
}

func NewNativeExpression(declared syntax.Node, fn NativeFunc) *NativeExpression {
	return &NativeExpression{id: syntax.NewID(), declared: declared, Evaluate: fn}
}

func (n *NativeExpression) ID() syntax.ID                               { return n.id }
func (*NativeExpression) Kind() syntax.Kind                             { return syntax.KindNative }
func (*NativeExpression) Grammar() []syntax.Slot                        { return nil }
func (n *NativeExpression) Clone(_, _ syntax.Node) (syntax.Node, error) { return n, nil }

// DeclaredType is the type the expression promises to produce.
func (n *NativeExpression) DeclaredType() syntax.Node { return n.declared }

var _ types.Declared = (*NativeExpression)(nil)
