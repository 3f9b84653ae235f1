package conflict

import (
	"strconv"

	"github.com/reoring/glint/syntax"
	"github.com/reoring/glint/types"
)

// detector reports the conflicts of one concern local to a node. Detectors
// run in the order of this table, which fixes the order of conflicts that
// share a primary node.
type detector func(k *Checker, n syntax.Node) []Conflict

var detectors = []detector{
	placeholder,
	unparsable,
	duplicateDocs,
	misplacedConversion,
	notAKeyValue,
	notAFunction,
	inputs,
	unknownName,
	duplicateName,
	referenceCycle,
	incompatibleBind,
	incompatibleOperand,
	expectedBoolean,
	unknownProperty,
	misplacedThis,
	unknownConversion,
	expectedEndExpression,
	notAStream,
}

func placeholder(_ *Checker, n syntax.Node) []Conflict {
	switch n.(type) {
	case *syntax.ExpressionPlaceholder, *syntax.TypePlaceholder:
		return []Conflict{newConflict(CodePlaceholder, n)}
	}
	return nil
}

func unparsable(_ *Checker, n syntax.Node) []Conflict {
	if u, ok := n.(*syntax.Unparsable); ok {
		return []Conflict{newConflict(CodeUnparsable, u, "text", u.Text)}
	}
	return nil
}

func docsOf(n syntax.Node) []*syntax.Doc {
	switch x := n.(type) {
	case *syntax.Block:
		return x.Docs
	case *syntax.Bind:
		return x.Docs
	case *syntax.FunctionDefinition:
		return x.Docs
	case *syntax.StreamDefinition:
		return x.Docs
	case *syntax.ConversionDefinition:
		return x.Docs
	case *syntax.DocumentedExpression:
		return x.Docs
	}
	return nil
}

// duplicateDocs reports a second documentation block in a language already
// documented.
func duplicateDocs(_ *Checker, n syntax.Node) []Conflict {
	docs := docsOf(n)
	var out []Conflict
	for i, d := range docs {
		for _, earlier := range docs[:i] {
			if earlier.Language == d.Language {
				out = append(out, newConflict(CodeDuplicateDocs, d, "language", d.Language).with(earlier))
				break
			}
		}
	}
	return out
}

// misplacedConversion requires conversions to be statements of a block.
func misplacedConversion(k *Checker, n syntax.Node) []Conflict {
	if _, ok := n.(*syntax.ConversionDefinition); !ok {
		return nil
	}
	if _, ok := k.tree.BindingEnclosureOf(n).(*syntax.Block); ok {
		return nil
	}
	return []Conflict{newConflict(CodeMisplacedConversion, n)}
}

func notAKeyValue(_ *Checker, n syntax.Node) []Conflict {
	m, ok := n.(*syntax.MapLiteral)
	if !ok {
		return nil
	}
	var out []Conflict
	for _, e := range m.Entries {
		if _, ok := e.(*syntax.KeyValue); !ok {
			out = append(out, newConflict(CodeNotAKeyValue, e).with(m.Open))
		}
	}
	return out
}

func notAFunction(k *Checker, n syntax.Node) []Conflict {
	e, ok := n.(*syntax.Evaluate)
	if !ok {
		return nil
	}
	t := k.types.TypeOf(e.Func)
	if _, ok := t.(*syntax.FunctionType); ok || types.IsUnknown(t) {
		return nil
	}
	return []Conflict{newConflict(CodeNotAFunction, e.Func, "type", types.String(t))}
}

// inputs matches the arguments of a call to the inputs of its function.
// Positional arguments bind in order; a Bind argument names its input and
// must sit at that input's position.
func inputs(k *Checker, n syntax.Node) []Conflict {
	e, ok := n.(*syntax.Evaluate)
	if !ok {
		return nil
	}
	ft, ok := k.types.TypeOf(e.Func).(*syntax.FunctionType)
	if !ok {
		return nil
	}
	params := ft.Inputs
	given := make([]bool, len(params))
	var out []Conflict
	for i, arg := range e.Inputs {
		value := arg
		idx := -1
		if named, ok := arg.(*syntax.Bind); ok {
			for j, p := range params {
				if p.HasName(named.Name()) {
					idx = j
					break
				}
			}
			if idx < 0 {
				out = append(out, newConflict(CodeUnknownInput, arg, "name", named.Name()))
				continue
			}
			if idx != i {
				out = append(out, newConflict(CodeMisplacedInput, named.Names[0], "name", named.Name()).with(params[idx]))
			}
			value = named.Value
		} else {
			if i >= len(params) {
				out = append(out, newConflict(CodeUnknownInput, arg, "name", "#"+strconv.Itoa(i+1)))
				continue
			}
			idx = i
		}
		given[idx] = true
		if value == nil {
			continue
		}
		expected := k.types.FieldType(params[idx])
		actual := k.types.TypeOf(value)
		if !types.IsUnknown(actual) && !types.Accepts(expected, actual, k.types) {
			out = append(out, newConflict(CodeIncompatibleInput, value,
				"name", params[idx].Name(),
				"expected", types.String(expected),
				"given", types.String(actual),
			).with(params[idx]))
		}
	}
	for j, p := range params {
		if !given[j] && !p.HasDefault() {
			out = append(out, newConflict(CodeMissingInput, e, "name", p.Name()).with(p))
		}
	}
	return out
}

func unknownName(k *Checker, n syntax.Node) []Conflict {
	r, ok := n.(*syntax.Reference)
	if !ok {
		return nil
	}
	if k.tree.DefinitionOf(r.Name.Text, r) != nil {
		return nil
	}
	return []Conflict{newConflict(CodeUnknownName, r, "name", r.Name.Text)}
}

// duplicateName reports a definition whose name an earlier definition of the
// same enclosure already uses.
func duplicateName(k *Checker, n syntax.Node) []Conflict {
	d, ok := n.(syntax.Definition)
	if !ok || d.Name() == "" {
		return nil
	}
	enc := k.tree.BindingEnclosureOf(n)
	if enc == nil {
		return nil
	}
	var out []Conflict
	for _, other := range syntax.DefinitionsOf(enc) {
		if other.ID() == n.ID() {
			return out
		}
		if other.HasName(d.Name()) {
			out = append(out, newConflict(CodeDuplicateName, n, "name", d.Name()).with(other))
		}
	}
	// n is not one of the enclosure's definitions, e.g. a named argument.
	return nil
}

// referenceCycle is the policy for binds whose value depends on themselves.
// Functions may recurse.
func referenceCycle(k *Checker, n syntax.Node) []Conflict {
	r, ok := n.(*syntax.Reference)
	if !ok {
		return nil
	}
	b, ok := k.tree.DefinitionOf(r.Name.Text, r).(*syntax.Bind)
	if !ok {
		return nil
	}
	cyclic := b.Value != nil && k.tree.ContainsIn(b.Value, r)
	if u, ok := k.types.TypeOf(r).(*syntax.UnknownType); ok && u.Reason == syntax.UnknownCycle {
		cyclic = true
	}
	if !cyclic {
		return nil
	}
	return []Conflict{newConflict(CodeReferenceCycle, r, "name", r.Name.Text).with(b)}
}

func incompatibleBind(k *Checker, n syntax.Node) []Conflict {
	b, ok := n.(*syntax.Bind)
	if !ok || b.Type == nil || b.Value == nil {
		return nil
	}
	actual := k.types.TypeOf(b.Value)
	if types.IsUnknown(actual) || types.Accepts(b.Type, actual, k.types) {
		return nil
	}
	return []Conflict{newConflict(CodeIncompatibleBind, b.Value,
		"name", b.Name(),
		"expected", types.String(b.Type),
		"given", types.String(actual),
	).with(b.Type)}
}

func incompatibleOperand(k *Checker, n syntax.Node) []Conflict {
	b, ok := n.(*syntax.BinaryOperation)
	if !ok {
		return nil
	}
	left, right := k.types.TypeOf(b.Left), k.types.TypeOf(b.Right)
	if types.IsUnknown(left) || types.IsUnknown(right) {
		return nil
	}
	if operandsFit(b.Op(), left, right) {
		return nil
	}
	return []Conflict{newConflict(CodeIncompatibleOperand, b.Right,
		"operator", b.Op(),
		"left", types.String(left),
		"right", types.String(right),
	).with(b.Left)}
}

func operandsFit(op string, left, right syntax.Node) bool {
	ln, lnum := left.(*syntax.NumberType)
	rn, rnum := right.(*syntax.NumberType)
	switch op {
	case syntax.OpAdd:
		_, lt := left.(*syntax.TextType)
		_, rt := right.(*syntax.TextType)
		return (lt && rt) || (lnum && rnum && ln.Unit == rn.Unit)
	case syntax.OpSubtract, syntax.OpLess, syntax.OpGreater, syntax.OpLessEq, syntax.OpGreaterEq:
		return lnum && rnum && ln.Unit == rn.Unit
	case syntax.OpMultiply, syntax.OpDivide:
		return lnum && rnum
	case syntax.OpAnd, syntax.OpOr:
		_, lb := left.(*syntax.BooleanType)
		_, rb := right.(*syntax.BooleanType)
		return lb && rb
	}
	return true
}

func expectedBoolean(k *Checker, n syntax.Node) []Conflict {
	c, ok := n.(*syntax.Conditional)
	if !ok {
		return nil
	}
	t := k.types.TypeOf(c.Condition)
	if _, ok := t.(*syntax.BooleanType); ok || types.IsUnknown(t) {
		return nil
	}
	return []Conflict{newConflict(CodeExpectedBoolean, c.Condition, "given", types.String(t))}
}

func unknownProperty(k *Checker, n syntax.Node) []Conflict {
	p, ok := n.(*syntax.PropertyAccess)
	if !ok {
		return nil
	}
	t := k.types.TypeOf(p.Structure)
	if types.IsUnknown(t) {
		return nil
	}
	if rt, ok := t.(*syntax.RecordType); ok && rt.Field(p.Name.Text) != nil {
		return nil
	}
	return []Conflict{newConflict(CodeUnknownProperty, p.Name, "name", p.Name.Text, "type", types.String(t))}
}

func misplacedThis(k *Checker, n syntax.Node) []Conflict {
	if _, ok := n.(*syntax.This); !ok || k.types.EnclosingConversion(n) != nil {
		return nil
	}
	return []Conflict{newConflict(CodeMisplacedThis, n)}
}

func unknownConversion(k *Checker, n syntax.Node) []Conflict {
	c, ok := n.(*syntax.Convert)
	if !ok {
		return nil
	}
	from := k.types.TypeOf(c.Expression)
	if types.IsUnknown(from) || types.Convertible(from, c.Type, k.types) || k.types.ConversionFor(from, c.Type) != nil {
		return nil
	}
	return []Conflict{newConflict(CodeUnknownConversion, c, "from", types.String(from), "to", types.String(c.Type))}
}

// expectedEndExpression requires a block to end with a value. An empty
// program is allowed.
func expectedEndExpression(k *Checker, n syntax.Node) []Conflict {
	b, ok := n.(*syntax.Block)
	if !ok {
		return nil
	}
	last := b.Last()
	if last == nil {
		if b.ID() == k.tree.Root().ID() {
			return nil
		}
		return []Conflict{newConflict(CodeExpectedEndExpression, b)}
	}
	switch last.(type) {
	case *syntax.Bind, *syntax.ConversionDefinition:
		return []Conflict{newConflict(CodeExpectedEndExpression, last).with(b)}
	}
	return nil
}

func notAStream(k *Checker, n syntax.Node) []Conflict {
	c, ok := n.(*syntax.Changed)
	if !ok {
		return nil
	}
	t := k.types.TypeOf(c.Stream)
	if _, ok := t.(*syntax.StreamType); ok || types.IsUnknown(t) {
		return nil
	}
	return []Conflict{newConflict(CodeNotAStream, c.Stream, "type", types.String(t))}
}
