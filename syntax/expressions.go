package syntax

import (
	"strconv"
)

const (
	valueSlot     = Expression | UnparsableCategory
	typeSlot      = TypeCategory | UnparsableCategory
	statementSlot = Expression | UnparsableCategory
)

// ---- literals ----

type BooleanLiteral struct {
	base
	Value bool
	Token *Token
}

func NewBoolean(v bool) *BooleanLiteral {
	text := FalseSymbol
	if v {
		text = TrueSymbol
	}
	return &BooleanLiteral{base: newBase(), Value: v, Token: NewToken(text, TokenBoolean)}
}

func (*BooleanLiteral) Kind() Kind { return KindBooleanLiteral }
func (b *BooleanLiteral) Grammar() []Slot {
	return []Slot{one("value", TokenCategory, b.Token)}
}
func (b *BooleanLiteral) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &BooleanLiteral{base: newBase(), Value: b.Value, Token: c.token(b.Token, "value")}
	return out, c.err
}

// NumberLiteral is a number with an optional unit such as "ms".
type NumberLiteral struct {
	base
	Value float64
	Unit  string
	Token *Token
}

func NewNumber(v float64, unit string) *NumberLiteral {
	text := strconv.FormatFloat(v, 'f', -1, 64) + unit
	return &NumberLiteral{base: newBase(), Value: v, Unit: unit, Token: NewToken(text, TokenNumber)}
}

func (*NumberLiteral) Kind() Kind { return KindNumberLiteral }
func (n *NumberLiteral) Grammar() []Slot {
	return []Slot{one("number", TokenCategory, n.Token)}
}
func (n *NumberLiteral) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &NumberLiteral{base: newBase(), Value: n.Value, Unit: n.Unit, Token: c.token(n.Token, "number")}
	return out, c.err
}

type TextLiteral struct {
	base
	Value string
	Token *Token
}

func NewText(v string) *TextLiteral {
	return &TextLiteral{base: newBase(), Value: v, Token: NewToken(strconv.Quote(v), TokenText)}
}

func (*TextLiteral) Kind() Kind { return KindTextLiteral }
func (t *TextLiteral) Grammar() []Slot {
	return []Slot{one("text", TokenCategory, t.Token)}
}
func (t *TextLiteral) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &TextLiteral{base: newBase(), Value: t.Value, Token: c.token(t.Token, "text")}
	return out, c.err
}

type NoneLiteral struct {
	base
	Token *Token
}

func NewNone() *NoneLiteral {
	return &NoneLiteral{base: newBase(), Token: NewToken(NoneSymbol, TokenNone)}
}

func (*NoneLiteral) Kind() Kind { return KindNoneLiteral }
func (n *NoneLiteral) Grammar() []Slot {
	return []Slot{one("none", TokenCategory, n.Token)}
}
func (n *NoneLiteral) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &NoneLiteral{base: newBase(), Token: c.token(n.Token, "none")}
	return out, c.err
}

// ---- names and scopes ----

// Reference names a definition visible from its binding enclosures.
type Reference struct {
	base
	Name *Token
}

func NewReference(name string) *Reference {
	return &Reference{base: newBase(), Name: NewToken(name, TokenName)}
}

func (*Reference) Kind() Kind { return KindReference }
func (r *Reference) Grammar() []Slot {
	return []Slot{one("name", TokenCategory, r.Name)}
}
func (r *Reference) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &Reference{base: newBase(), Name: c.token(r.Name, "name")}
	return out, c.err
}

// Block evaluates its statements in order and yields the last one.
type Block struct {
	base
	Docs       []*Doc
	Statements []Node
}

func NewBlock(statements ...Node) *Block {
	return &Block{base: newBase(), Statements: statements}
}

func (*Block) Kind() Kind { return KindBlock }
func (b *Block) Grammar() []Slot {
	return []Slot{
		list("docs", DocCategory, b.Docs),
		list("statements", statementSlot, b.Statements),
	}
}
func (b *Block) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &Block{base: newBase(), Docs: c.docs(b.Docs), Statements: c.nodes(b.Statements, "statements", statementSlot)}
	return out, c.err
}

// Last returns the final statement, or nil for an empty block.
func (b *Block) Last() Node {
	if len(b.Statements) == 0 {
		return nil
	}
	return b.Statements[len(b.Statements)-1]
}

// Bind names a value, optionally with a declared type. Binds also declare
// function inputs and record fields; there a nil Value means the input is
// required.
type Bind struct {
	base
	Docs  []*Doc
	Names []*Token
	Type  Node
	Value Node
}

func NewBind(name string, typ, value Node) *Bind {
	return &Bind{base: newBase(), Names: names([]string{name}), Type: typ, Value: value}
}

// NewBindNames declares several aliases for the same value.
func NewBindNames(aliases []string, typ, value Node) *Bind {
	return &Bind{base: newBase(), Names: names(aliases), Type: typ, Value: value}
}

func (*Bind) Kind() Kind                 { return KindBind }
func (b *Bind) HasName(name string) bool { return hasName(b.Names, name) }
func (b *Bind) Name() string             { return firstName(b.Names) }
func (b *Bind) HasDefault() bool         { return b.Value != nil }
func (b *Bind) Grammar() []Slot {
	return []Slot{
		list("docs", DocCategory, b.Docs),
		list("names", TokenCategory, b.Names),
		optional("type", typeSlot, b.Type),
		optional("value", valueSlot, b.Value),
	}
}
func (b *Bind) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &Bind{
		base:  newBase(),
		Docs:  c.docs(b.Docs),
		Names: c.tokens(b.Names, "names"),
		Type:  c.node(b.Type, "type", typeSlot),
		Value: c.node(b.Value, "value", valueSlot),
	}
	return out, c.err
}

// FunctionDefinition declares a function. An empty name makes it anonymous.
type FunctionDefinition struct {
	base
	Docs       []*Doc
	Names      []*Token
	Inputs     []*Bind
	Output     Node
	Expression Node
}

func NewFunction(name string, inputs []*Bind, output, expression Node) *FunctionDefinition {
	var ns []*Token
	if name != "" {
		ns = names([]string{name})
	}
	return &FunctionDefinition{base: newBase(), Names: ns, Inputs: inputs, Output: output, Expression: expression}
}

func (*FunctionDefinition) Kind() Kind                 { return KindFunctionDefinition }
func (f *FunctionDefinition) HasName(name string) bool { return hasName(f.Names, name) }
func (f *FunctionDefinition) Name() string             { return firstName(f.Names) }
func (f *FunctionDefinition) Grammar() []Slot {
	return []Slot{
		list("docs", DocCategory, f.Docs),
		list("names", TokenCategory, f.Names),
		list("inputs", BindCategory, f.Inputs),
		optional("output", typeSlot, f.Output),
		optional("expression", valueSlot, f.Expression),
	}
}
func (f *FunctionDefinition) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &FunctionDefinition{
		base:       newBase(),
		Docs:       c.docs(f.Docs),
		Names:      c.tokens(f.Names, "names"),
		Inputs:     c.binds(f.Inputs, "inputs"),
		Output:     c.node(f.Output, "output", typeSlot),
		Expression: c.node(f.Expression, "expression", valueSlot),
	}
	return out, c.err
}

// StreamDefinition declares a stream-producing function whose body is
// usually native.
type StreamDefinition struct {
	base
	Docs       []*Doc
	Names      []*Token
	Inputs     []*Bind
	Expression Node
	Output     Node
}

func NewStreamDefinition(name string, inputs []*Bind, expression, output Node) *StreamDefinition {
	return &StreamDefinition{base: newBase(), Names: names([]string{name}), Inputs: inputs, Expression: expression, Output: output}
}

func (*StreamDefinition) Kind() Kind                 { return KindStreamDefinition }
func (s *StreamDefinition) HasName(name string) bool { return hasName(s.Names, name) }
func (s *StreamDefinition) Name() string             { return firstName(s.Names) }
func (s *StreamDefinition) Grammar() []Slot {
	return []Slot{
		list("docs", DocCategory, s.Docs),
		list("names", TokenCategory, s.Names),
		list("inputs", BindCategory, s.Inputs),
		one("expression", valueSlot, s.Expression),
		one("output", typeSlot, s.Output),
	}
}
func (s *StreamDefinition) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &StreamDefinition{
		base:       newBase(),
		Docs:       c.docs(s.Docs),
		Names:      c.tokens(s.Names, "names"),
		Inputs:     c.binds(s.Inputs, "inputs"),
		Expression: c.node(s.Expression, "expression", valueSlot),
		Output:     c.node(s.Output, "output", typeSlot),
	}
	return out, c.err
}

// ---- operations ----

// Evaluate calls a function or stream definition. A Bind among the inputs is
// a named argument.
type Evaluate struct {
	base
	Func   Node
	Inputs []Node
}

func NewEvaluate(fun Node, inputs ...Node) *Evaluate {
	return &Evaluate{base: newBase(), Func: fun, Inputs: inputs}
}

func (*Evaluate) Kind() Kind { return KindEvaluate }
func (e *Evaluate) Grammar() []Slot {
	return []Slot{
		one("function", valueSlot, e.Func),
		list("inputs", valueSlot, e.Inputs),
	}
}
func (e *Evaluate) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &Evaluate{base: newBase(), Func: c.node(e.Func, "function", valueSlot), Inputs: c.nodes(e.Inputs, "inputs", valueSlot)}
	return out, c.err
}

// Binary operators.
const (
	OpAdd       = "+"
	OpSubtract  = "-"
	OpMultiply  = "×"
	OpDivide    = "÷"
	OpEqual     = "="
	OpNotEqual  = "≠"
	OpLess      = "<"
	OpGreater   = ">"
	OpLessEq    = "≤"
	OpGreaterEq = "≥"
	OpAnd       = "&"
	OpOr        = "|"
)

type BinaryOperation struct {
	base
	Left     Node
	Operator *Token
	Right    Node
}

func NewBinary(op string, left, right Node) *BinaryOperation {
	return &BinaryOperation{base: newBase(), Left: left, Operator: NewToken(op, TokenOperator), Right: right}
}

func (*BinaryOperation) Kind() Kind   { return KindBinaryOperation }
func (b *BinaryOperation) Op() string { return b.Operator.Text }
func (b *BinaryOperation) Grammar() []Slot {
	return []Slot{
		one("left", valueSlot, b.Left),
		one("operator", TokenCategory, b.Operator),
		one("right", valueSlot, b.Right),
	}
}
func (b *BinaryOperation) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &BinaryOperation{
		base:     newBase(),
		Left:     c.node(b.Left, "left", valueSlot),
		Operator: c.token(b.Operator, "operator"),
		Right:    c.node(b.Right, "right", valueSlot),
	}
	return out, c.err
}

type Conditional struct {
	base
	Condition Node
	Yes       Node
	No        Node
}

func NewConditional(condition, yes, no Node) *Conditional {
	return &Conditional{base: newBase(), Condition: condition, Yes: yes, No: no}
}

func (*Conditional) Kind() Kind { return KindConditional }
func (c *Conditional) Grammar() []Slot {
	return []Slot{
		one("condition", valueSlot, c.Condition),
		one("yes", valueSlot, c.Yes),
		one("no", valueSlot, c.No),
	}
}
func (c *Conditional) Clone(original, replacement Node) (Node, error) {
	cl := &cloner{original: original, replacement: replacement}
	out := &Conditional{
		base:      newBase(),
		Condition: cl.node(c.Condition, "condition", valueSlot),
		Yes:       cl.node(c.Yes, "yes", valueSlot),
		No:        cl.node(c.No, "no", valueSlot),
	}
	return out, cl.err
}

// Is tests whether a value has a type.
type Is struct {
	base
	Expression Node
	Type       Node
}

func NewIs(expression, typ Node) *Is {
	return &Is{base: newBase(), Expression: expression, Type: typ}
}

func (*Is) Kind() Kind { return KindIs }
func (i *Is) Grammar() []Slot {
	return []Slot{
		one("expression", valueSlot, i.Expression),
		one("type", typeSlot, i.Type),
	}
}
func (i *Is) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &Is{base: newBase(), Expression: c.node(i.Expression, "expression", valueSlot), Type: c.node(i.Type, "type", typeSlot)}
	return out, c.err
}

// Convert converts a value to another type through a registered or built-in
// conversion.
type Convert struct {
	base
	Expression Node
	Arrow      *Token
	Type       Node
}

func NewConvert(expression, typ Node) *Convert {
	return &Convert{base: newBase(), Expression: expression, Arrow: NewToken(ConvertSymbol, TokenSymbol), Type: typ}
}

func (*Convert) Kind() Kind { return KindConvert }
func (v *Convert) Grammar() []Slot {
	return []Slot{
		one("expression", valueSlot, v.Expression),
		one("convert", TokenCategory, v.Arrow),
		one("type", typeSlot, v.Type),
	}
}
func (v *Convert) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &Convert{
		base:       newBase(),
		Expression: c.node(v.Expression, "expression", valueSlot),
		Arrow:      c.token(v.Arrow, "convert"),
		Type:       c.node(v.Type, "type", typeSlot),
	}
	return out, c.err
}

// ConversionDefinition registers a conversion from Input to Output in the
// evaluation that runs it. Inside Expression, This is the value converted.
type ConversionDefinition struct {
	base
	Docs       []*Doc
	Arrow      *Token
	Input      Node
	Output     Node
	Expression Node
}

func NewConversion(input, output, expression Node) *ConversionDefinition {
	return &ConversionDefinition{base: newBase(), Arrow: NewToken(ConvertSymbol, TokenSymbol), Input: input, Output: output, Expression: expression}
}

func (*ConversionDefinition) Kind() Kind { return KindConversionDefinition }
func (d *ConversionDefinition) Grammar() []Slot {
	return []Slot{
		list("docs", DocCategory, d.Docs),
		one("arrow", TokenCategory, d.Arrow),
		one("input", typeSlot, d.Input),
		one("output", typeSlot, d.Output),
		one("expression", valueSlot, d.Expression),
	}
}
func (d *ConversionDefinition) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &ConversionDefinition{
		base:       newBase(),
		Docs:       c.docs(d.Docs),
		Arrow:      c.token(d.Arrow, "arrow"),
		Input:      c.node(d.Input, "input", typeSlot),
		Output:     c.node(d.Output, "output", typeSlot),
		Expression: c.node(d.Expression, "expression", valueSlot),
	}
	return out, c.err
}

type This struct {
	base
	Token *Token
}

func NewThis() *This { return &This{base: newBase(), Token: NewToken(ThisSymbol, TokenSymbol)} }

func (*This) Kind() Kind { return KindThis }
func (t *This) Grammar() []Slot {
	return []Slot{one("this", TokenCategory, t.Token)}
}
func (t *This) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &This{base: newBase(), Token: c.token(t.Token, "this")}
	return out, c.err
}

// ---- structures ----

type ListLiteral struct {
	base
	Items []Node
}

func NewList(items ...Node) *ListLiteral { return &ListLiteral{base: newBase(), Items: items} }

func (*ListLiteral) Kind() Kind { return KindListLiteral }
func (l *ListLiteral) Grammar() []Slot {
	return []Slot{list("items", valueSlot, l.Items)}
}
func (l *ListLiteral) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &ListLiteral{base: newBase(), Items: c.nodes(l.Items, "items", valueSlot)}
	return out, c.err
}

// MapLiteral holds KeyValue entries. Other expressions are accepted in the
// entry slot so that malformed maps stay representable.
type MapLiteral struct {
	base
	Open    *Token
	Entries []Node
}

const entrySlot = KeyValueCategory | Expression | UnparsableCategory

func NewMap(entries ...Node) *MapLiteral {
	return &MapLiteral{base: newBase(), Open: NewToken("{", TokenSymbol), Entries: entries}
}

func (*MapLiteral) Kind() Kind { return KindMapLiteral }
func (m *MapLiteral) Grammar() []Slot {
	return []Slot{
		one("open", TokenCategory, m.Open),
		list("entries", entrySlot, m.Entries),
	}
}
func (m *MapLiteral) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &MapLiteral{base: newBase(), Open: c.token(m.Open, "open"), Entries: c.nodes(m.Entries, "entries", entrySlot)}
	return out, c.err
}

type KeyValue struct {
	base
	Key   Node
	Value Node
}

func NewKeyValue(key, value Node) *KeyValue {
	return &KeyValue{base: newBase(), Key: key, Value: value}
}

func (*KeyValue) Kind() Kind { return KindKeyValue }
func (kv *KeyValue) Grammar() []Slot {
	return []Slot{
		one("key", valueSlot, kv.Key),
		one("value", valueSlot, kv.Value),
	}
}
func (kv *KeyValue) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &KeyValue{base: newBase(), Key: c.node(kv.Key, "key", valueSlot), Value: c.node(kv.Value, "value", valueSlot)}
	return out, c.err
}

// RecordLiteral builds a structural record from named fields.
type RecordLiteral struct {
	base
	Fields []*Bind
}

func NewRecord(fields ...*Bind) *RecordLiteral { return &RecordLiteral{base: newBase(), Fields: fields} }

func (*RecordLiteral) Kind() Kind { return KindRecordLiteral }
func (r *RecordLiteral) Grammar() []Slot {
	return []Slot{list("fields", BindCategory, r.Fields)}
}
func (r *RecordLiteral) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &RecordLiteral{base: newBase(), Fields: c.binds(r.Fields, "fields")}
	return out, c.err
}

type PropertyAccess struct {
	base
	Structure Node
	Name      *Token
}

func NewPropertyAccess(structure Node, name string) *PropertyAccess {
	return &PropertyAccess{base: newBase(), Structure: structure, Name: NewToken(name, TokenName)}
}

func (*PropertyAccess) Kind() Kind { return KindPropertyAccess }
func (p *PropertyAccess) Grammar() []Slot {
	return []Slot{
		one("structure", valueSlot, p.Structure),
		one("name", TokenCategory, p.Name),
	}
}
func (p *PropertyAccess) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &PropertyAccess{base: newBase(), Structure: c.node(p.Structure, "structure", valueSlot), Name: c.token(p.Name, "name")}
	return out, c.err
}

// Changed is true when its stream produced a value in the current tick.
type Changed struct {
	base
	Change *Token
	Stream Node
}

func NewChanged(stream Node) *Changed {
	return &Changed{base: newBase(), Change: NewToken(ChangeSymbol, TokenSymbol), Stream: stream}
}

func (*Changed) Kind() Kind { return KindChanged }
func (c *Changed) Grammar() []Slot {
	return []Slot{
		one("change", TokenCategory, c.Change),
		one("stream", valueSlot, c.Stream),
	}
}
func (c *Changed) Clone(original, replacement Node) (Node, error) {
	cl := &cloner{original: original, replacement: replacement}
	out := &Changed{base: newBase(), Change: cl.token(c.Change, "change"), Stream: cl.node(c.Stream, "stream", valueSlot)}
	return out, cl.err
}

type DocumentedExpression struct {
	base
	Docs       []*Doc
	Expression Node
}

func NewDocumented(expression Node, docs ...*Doc) *DocumentedExpression {
	return &DocumentedExpression{base: newBase(), Docs: docs, Expression: expression}
}

func (*DocumentedExpression) Kind() Kind { return KindDocumentedExpression }
func (d *DocumentedExpression) Grammar() []Slot {
	return []Slot{
		list("docs", DocCategory, d.Docs),
		one("expression", valueSlot, d.Expression),
	}
}
func (d *DocumentedExpression) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &DocumentedExpression{base: newBase(), Docs: c.docs(d.Docs), Expression: c.node(d.Expression, "expression", valueSlot)}
	return out, c.err
}

// ---- placeholders ----

// ExpressionPlaceholder stands for an expression not yet written. Type
// optionally records what the author intends to put there.
type ExpressionPlaceholder struct {
	base
	Etc  *Token
	Type Node
}

func NewPlaceholder(typ Node) *ExpressionPlaceholder {
	return &ExpressionPlaceholder{base: newBase(), Etc: NewToken(PlaceholderSymbol, TokenPlaceholder), Type: typ}
}

func (*ExpressionPlaceholder) Kind() Kind { return KindExpressionPlaceholder }
func (p *ExpressionPlaceholder) Grammar() []Slot {
	return []Slot{
		one("placeholder", TokenCategory, p.Etc),
		optional("type", typeSlot, p.Type),
	}
}
func (p *ExpressionPlaceholder) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &ExpressionPlaceholder{base: newBase(), Etc: c.token(p.Etc, "placeholder"), Type: c.node(p.Type, "type", typeSlot)}
	return out, c.err
}

// Unparsable records source text the parser could not interpret. It has no
// children and fits any slot that admits unparsable input.
type Unparsable struct {
	base
	Text string
}

func NewUnparsable(text string) *Unparsable { return &Unparsable{base: newBase(), Text: text} }

func (*Unparsable) Kind() Kind      { return KindUnparsable }
func (*Unparsable) Grammar() []Slot { return nil }
func (u *Unparsable) Clone(_, _ Node) (Node, error) {
	return NewUnparsable(u.Text), nil
}

var (
	_ Definition = (*Bind)(nil)
	_ Definition = (*FunctionDefinition)(nil)
	_ Definition = (*StreamDefinition)(nil)
)
