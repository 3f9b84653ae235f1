package syntax

// TokenType classifies the text of a Token.
type TokenType uint8

const (
	TokenName TokenType = iota
	TokenNumber
	TokenText
	TokenBoolean
	TokenNone
	TokenOperator
	TokenSymbol
	TokenPlaceholder
)

// Symbols used by constructors when no source text is available.
const (
	TrueSymbol        = "⊤"
	FalseSymbol       = "⊥"
	NoneSymbol        = "ø"
	PlaceholderSymbol = "_"
	ConvertSymbol     = "→"
	ThisSymbol        = "."
	ChangeSymbol      = "∆"
	BooleanSymbol     = "?"
	NumberSymbol      = "#"
	TextSymbol        = "''"
	AnySymbol         = "*"
	StreamSymbol      = "…"
)

// Token is a leaf carrying source text.
type Token struct {
	base
	Text string
	Type TokenType
}

func NewToken(text string, typ TokenType) *Token {
	return &Token{base: newBase(), Text: text, Type: typ}
}

func (*Token) Kind() Kind       { return KindToken }
func (*Token) Grammar() []Slot  { return nil }
func (t *Token) String() string { return t.Text }
func (t *Token) Clone(_, _ Node) (Node, error) {
	return NewToken(t.Text, t.Type), nil
}

// Doc is a documentation block attached to a definition or expression.
type Doc struct {
	base
	Text     string
	Language string
}

func NewDoc(text, language string) *Doc {
	return &Doc{base: newBase(), Text: text, Language: language}
}

func (*Doc) Kind() Kind      { return KindDoc }
func (*Doc) Grammar() []Slot { return nil }
func (d *Doc) Clone(_, _ Node) (Node, error) {
	return NewDoc(d.Text, d.Language), nil
}

func names(ns []string) []*Token {
	out := make([]*Token, 0, len(ns))
	for _, n := range ns {
		out = append(out, NewToken(n, TokenName))
	}
	return out
}

func hasName(ts []*Token, name string) bool {
	for _, t := range ts {
		if t.Text == name {
			return true
		}
	}
	return false
}

func firstName(ts []*Token) string {
	if len(ts) == 0 {
		return ""
	}
	return ts[0].Text
}
