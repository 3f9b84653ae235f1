package syntax

// Type descriptors are ordinary nodes of the type category. Those built by
// type inference are never attached to a tree, so they have no parent.

type BooleanType struct {
	base
	Token *Token
}

func NewBooleanType() *BooleanType {
	return &BooleanType{base: newBase(), Token: NewToken(BooleanSymbol, TokenSymbol)}
}

func (*BooleanType) Kind() Kind { return KindBooleanType }
func (b *BooleanType) Grammar() []Slot {
	return []Slot{one("type", TokenCategory, b.Token)}
}
func (b *BooleanType) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &BooleanType{base: newBase(), Token: c.token(b.Token, "type")}
	return out, c.err
}

// NumberType is a number with a unit; the empty unit is unitless.
type NumberType struct {
	base
	Token *Token
	Unit  string
}

func NewNumberType(unit string) *NumberType {
	return &NumberType{base: newBase(), Token: NewToken(NumberSymbol+unit, TokenSymbol), Unit: unit}
}

func (*NumberType) Kind() Kind { return KindNumberType }
func (n *NumberType) Grammar() []Slot {
	return []Slot{one("type", TokenCategory, n.Token)}
}
func (n *NumberType) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &NumberType{base: newBase(), Token: c.token(n.Token, "type"), Unit: n.Unit}
	return out, c.err
}

type TextType struct {
	base
	Token *Token
}

func NewTextType() *TextType {
	return &TextType{base: newBase(), Token: NewToken(TextSymbol, TokenSymbol)}
}

func (*TextType) Kind() Kind { return KindTextType }
func (t *TextType) Grammar() []Slot {
	return []Slot{one("type", TokenCategory, t.Token)}
}
func (t *TextType) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &TextType{base: newBase(), Token: c.token(t.Token, "type")}
	return out, c.err
}

type NoneType struct {
	base
	Token *Token
}

func NewNoneType() *NoneType {
	return &NoneType{base: newBase(), Token: NewToken(NoneSymbol, TokenNone)}
}

func (*NoneType) Kind() Kind { return KindNoneType }
func (n *NoneType) Grammar() []Slot {
	return []Slot{one("type", TokenCategory, n.Token)}
}
func (n *NoneType) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &NoneType{base: newBase(), Token: c.token(n.Token, "type")}
	return out, c.err
}

// AnyType accepts every type.
type AnyType struct {
	base
	Token *Token
}

func NewAnyType() *AnyType {
	return &AnyType{base: newBase(), Token: NewToken(AnySymbol, TokenSymbol)}
}

func (*AnyType) Kind() Kind { return KindAnyType }
func (a *AnyType) Grammar() []Slot {
	return []Slot{one("type", TokenCategory, a.Token)}
}
func (a *AnyType) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &AnyType{base: newBase(), Token: c.token(a.Token, "type")}
	return out, c.err
}

// UnionType is a binary union; larger unions nest to the right.
type UnionType struct {
	base
	Left  Node
	Bar   *Token
	Right Node
}

// NewUnion folds types into nested unions. A single type is returned as is
// and no types yield nil.
func NewUnion(types ...Node) Node {
	switch len(types) {
	case 0:
		return nil
	case 1:
		return types[0]
	}
	return &UnionType{base: newBase(), Left: types[0], Bar: NewToken(OpOr, TokenOperator), Right: NewUnion(types[1:]...)}
}

func (*UnionType) Kind() Kind { return KindUnionType }
func (u *UnionType) Grammar() []Slot {
	return []Slot{
		one("left", typeSlot, u.Left),
		one("or", TokenCategory, u.Bar),
		one("right", typeSlot, u.Right),
	}
}
func (u *UnionType) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &UnionType{
		base:  newBase(),
		Left:  c.node(u.Left, "left", typeSlot),
		Bar:   c.token(u.Bar, "or"),
		Right: c.node(u.Right, "right", typeSlot),
	}
	return out, c.err
}

// Members flattens nested unions into their non-union members.
func (u *UnionType) Members() []Node {
	var out []Node
	for _, side := range []Node{u.Left, u.Right} {
		if inner, ok := side.(*UnionType); ok {
			out = append(out, inner.Members()...)
			continue
		}
		if side != nil {
			out = append(out, side)
		}
	}
	return out
}

// ListType describes lists of Item; a nil Item accepts any item.
type ListType struct {
	base
	Item Node
}

func NewListType(item Node) *ListType { return &ListType{base: newBase(), Item: item} }

func (*ListType) Kind() Kind { return KindListType }
func (l *ListType) Grammar() []Slot {
	return []Slot{optional("item", typeSlot, l.Item)}
}
func (l *ListType) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &ListType{base: newBase(), Item: c.node(l.Item, "item", typeSlot)}
	return out, c.err
}

type MapType struct {
	base
	Key   Node
	Value Node
}

func NewMapType(key, value Node) *MapType { return &MapType{base: newBase(), Key: key, Value: value} }

func (*MapType) Kind() Kind { return KindMapType }
func (m *MapType) Grammar() []Slot {
	return []Slot{
		optional("key", typeSlot, m.Key),
		optional("value", typeSlot, m.Value),
	}
}
func (m *MapType) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &MapType{base: newBase(), Key: c.node(m.Key, "key", typeSlot), Value: c.node(m.Value, "value", typeSlot)}
	return out, c.err
}

// RecordType is a structural record. A field with a default value is
// optional.
type RecordType struct {
	base
	Fields []*Bind
}

func NewRecordType(fields ...*Bind) *RecordType { return &RecordType{base: newBase(), Fields: fields} }

func (*RecordType) Kind() Kind { return KindRecordType }
func (r *RecordType) Grammar() []Slot {
	return []Slot{list("fields", BindCategory, r.Fields)}
}
func (r *RecordType) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &RecordType{base: newBase(), Fields: c.binds(r.Fields, "fields")}
	return out, c.err
}

// Field returns the field declaring name, or nil.
func (r *RecordType) Field(name string) *Bind {
	for _, f := range r.Fields {
		if f.HasName(name) {
			return f
		}
	}
	return nil
}

type FunctionType struct {
	base
	Inputs []*Bind
	Output Node
}

func NewFunctionType(inputs []*Bind, output Node) *FunctionType {
	return &FunctionType{base: newBase(), Inputs: inputs, Output: output}
}

func (*FunctionType) Kind() Kind { return KindFunctionType }
func (f *FunctionType) Grammar() []Slot {
	return []Slot{
		list("inputs", BindCategory, f.Inputs),
		one("output", typeSlot, f.Output),
	}
}
func (f *FunctionType) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &FunctionType{base: newBase(), Inputs: c.binds(f.Inputs, "inputs"), Output: c.node(f.Output, "output", typeSlot)}
	return out, c.err
}

type ConversionType struct {
	base
	Input  Node
	Arrow  *Token
	Output Node
}

func NewConversionType(input, output Node) *ConversionType {
	return &ConversionType{base: newBase(), Input: input, Arrow: NewToken(ConvertSymbol, TokenSymbol), Output: output}
}

func (*ConversionType) Kind() Kind { return KindConversionType }
func (t *ConversionType) Grammar() []Slot {
	return []Slot{
		one("input", typeSlot, t.Input),
		one("arrow", TokenCategory, t.Arrow),
		one("output", typeSlot, t.Output),
	}
}
func (t *ConversionType) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &ConversionType{
		base:   newBase(),
		Input:  c.node(t.Input, "input", typeSlot),
		Arrow:  c.token(t.Arrow, "arrow"),
		Output: c.node(t.Output, "output", typeSlot),
	}
	return out, c.err
}

// StreamType describes a stream whose samples have type Value.
type StreamType struct {
	base
	Dots  *Token
	Value Node
}

func NewStreamType(value Node) *StreamType {
	return &StreamType{base: newBase(), Dots: NewToken(StreamSymbol, TokenSymbol), Value: value}
}

func (*StreamType) Kind() Kind { return KindStreamType }
func (s *StreamType) Grammar() []Slot {
	return []Slot{
		one("stream", TokenCategory, s.Dots),
		one("value", typeSlot, s.Value),
	}
}
func (s *StreamType) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &StreamType{base: newBase(), Dots: c.token(s.Dots, "stream"), Value: c.node(s.Value, "value", typeSlot)}
	return out, c.err
}

// UnknownReason says why a type could not be determined.
type UnknownReason uint8

const (
	UnknownCycle UnknownReason = iota
	UnknownPlaceholder
	UnknownUnparsable
	UnknownName
	UnknownOperation
	UnknownProperty
	UnknownFunction
)

func (r UnknownReason) String() string {
	switch r {
	case UnknownCycle:
		return "cycle"
	case UnknownPlaceholder:
		return "placeholder"
	case UnknownUnparsable:
		return "unparsable"
	case UnknownName:
		return "name"
	case UnknownOperation:
		return "operation"
	case UnknownProperty:
		return "property"
	case UnknownFunction:
		return "function"
	}
	return "unknown"
}

// UnknownType is the result of a type computation that could not complete.
// Cause points at the node responsible; it is not a child.
type UnknownType struct {
	base
	Reason UnknownReason
	Cause  Node
}

func NewUnknownType(reason UnknownReason, cause Node) *UnknownType {
	return &UnknownType{base: newBase(), Reason: reason, Cause: cause}
}

func (*UnknownType) Kind() Kind      { return KindUnknownType }
func (*UnknownType) Grammar() []Slot { return nil }
func (u *UnknownType) Clone(_, _ Node) (Node, error) {
	return NewUnknownType(u.Reason, u.Cause), nil
}

// TypePlaceholder stands for a type not yet written.
type TypePlaceholder struct {
	base
	Etc *Token
}

func NewTypePlaceholder() *TypePlaceholder {
	return &TypePlaceholder{base: newBase(), Etc: NewToken(PlaceholderSymbol, TokenPlaceholder)}
}

func (*TypePlaceholder) Kind() Kind { return KindTypePlaceholder }
func (p *TypePlaceholder) Grammar() []Slot {
	return []Slot{one("placeholder", TokenCategory, p.Etc)}
}
func (p *TypePlaceholder) Clone(original, replacement Node) (Node, error) {
	c := &cloner{original: original, replacement: replacement}
	out := &TypePlaceholder{base: newBase(), Etc: c.token(p.Etc, "placeholder")}
	return out, c.err
}
