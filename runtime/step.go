package runtime

import (
	"strconv"

	"github.com/reoring/glint/i18n"
	"github.com/reoring/glint/syntax"
)

// Step is one instruction of a compiled expression. Evaluate returns the value
// to push onto the current frame, nil when nothing is pushed, or an
// *Exception that ends the evaluation.
type Step interface {
	Node() syntax.Node
	Evaluate(ev *Evaluator) Value
	Explain(tr i18n.Translator) string
}

// Start prepares a node before its operands run.
type Start struct {
	node   syntax.Node
	action func(f *Evaluation) Value
}

func (s *Start) Node() syntax.Node { return s.node }
func (s *Start) Evaluate(ev *Evaluator) Value {
	if s.action == nil {
		return nil
	}
	return s.action(ev.current())
}
func (s *Start) Explain(tr i18n.Translator) string {
	return tr.Message("step.start", map[string]string{"node": s.node.Kind().String()})
}

// Finish combines the operands of a node into its value.
type Finish struct {
	node syntax.Node
}

func (s *Finish) Node() syntax.Node            { return s.node }
func (s *Finish) Evaluate(ev *Evaluator) Value { return ev.finish(ev.current(), s.node) }
func (s *Finish) Explain(tr i18n.Translator) string {
	return tr.Message("step.finish", map[string]string{"node": s.node.Kind().String()})
}

// Halt stops the evaluation with an exception.
type Halt struct {
	node      syntax.Node
	exception *Exception
}

func (s *Halt) Node() syntax.Node         { return s.node }
func (s *Halt) Evaluate(*Evaluator) Value { return s.exception }
func (s *Halt) Exception() *Exception     { return s.exception }
func (s *Halt) Explain(tr i18n.Translator) string {
	return tr.Message("step.halt", map[string]string{"reason": s.exception.Explain(tr)})
}

// Jump skips the next Count steps of the frame.
type Jump struct {
	node  syntax.Node
	Count int
}

func (s *Jump) Node() syntax.Node { return s.node }
func (s *Jump) Evaluate(ev *Evaluator) Value {
	ev.current().index += s.Count
	return nil
}
func (s *Jump) Explain(tr i18n.Translator) string {
	return tr.Message("step.jump", map[string]string{"count": strconv.Itoa(s.Count)})
}

// JumpIf skips the next Count steps when the top of the stack equals
// JumpWhen. With Peek the tested value stays on the stack.
type JumpIf struct {
	node     syntax.Node
	Count    int
	JumpWhen bool
	Peek     bool
}

func (s *JumpIf) Node() syntax.Node { return s.node }
func (s *JumpIf) Evaluate(ev *Evaluator) Value {
	f := ev.current()
	var v Value
	if s.Peek {
		v = f.peek()
	} else {
		v = f.pop()
	}
	b, ok := v.(Bool)
	if !ok {
		return TypeException(s.node, syntax.NewBooleanType(), typeOf(v))
	}
	if bool(b) == s.JumpWhen {
		f.index += s.Count
	}
	return nil
}
func (s *JumpIf) Explain(tr i18n.Translator) string {
	return tr.Message("step.jumpif", map[string]string{
		"count": strconv.Itoa(s.Count),
		"when":  Bool(s.JumpWhen).String(),
	})
}

func typeOf(v Value) syntax.Node {
	if v == nil {
		return syntax.NewNoneType()
	}
	return v.Type()
}
