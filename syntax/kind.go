package syntax

import "strings"

// Kind enumerates the closed set of node variants.
type Kind uint8

const (
	KindToken Kind = iota
	KindDoc

	KindBooleanLiteral
	KindNumberLiteral
	KindTextLiteral
	KindNoneLiteral
	KindReference
	KindBlock
	KindBind
	KindFunctionDefinition
	KindStreamDefinition
	KindEvaluate
	KindBinaryOperation
	KindConditional
	KindIs
	KindConvert
	KindConversionDefinition
	KindThis
	KindListLiteral
	KindMapLiteral
	KindRecordLiteral
	KindPropertyAccess
	KindChanged
	KindDocumentedExpression
	KindExpressionPlaceholder
	KindNative

	KindKeyValue

	KindBooleanType
	KindNumberType
	KindTextType
	KindNoneType
	KindAnyType
	KindUnionType
	KindListType
	KindMapType
	KindRecordType
	KindFunctionType
	KindConversionType
	KindStreamType
	KindUnknownType
	KindTypePlaceholder

	KindUnparsable

	numKinds
)

var kindNames = [...]string{
	KindToken:                 "Token",
	KindDoc:                   "Doc",
	KindBooleanLiteral:        "BooleanLiteral",
	KindNumberLiteral:         "NumberLiteral",
	KindTextLiteral:           "TextLiteral",
	KindNoneLiteral:           "NoneLiteral",
	KindReference:             "Reference",
	KindBlock:                 "Block",
	KindBind:                  "Bind",
	KindFunctionDefinition:    "FunctionDefinition",
	KindStreamDefinition:      "StreamDefinition",
	KindEvaluate:              "Evaluate",
	KindBinaryOperation:       "BinaryOperation",
	KindConditional:           "Conditional",
	KindIs:                    "Is",
	KindConvert:               "Convert",
	KindConversionDefinition:  "ConversionDefinition",
	KindThis:                  "This",
	KindListLiteral:           "ListLiteral",
	KindMapLiteral:            "MapLiteral",
	KindRecordLiteral:         "RecordLiteral",
	KindPropertyAccess:        "PropertyAccess",
	KindChanged:               "Changed",
	KindDocumentedExpression:  "DocumentedExpression",
	KindExpressionPlaceholder: "ExpressionPlaceholder",
	KindNative:                "Native",
	KindKeyValue:              "KeyValue",
	KindBooleanType:           "BooleanType",
	KindNumberType:            "NumberType",
	KindTextType:              "TextType",
	KindNoneType:              "NoneType",
	KindAnyType:               "AnyType",
	KindUnionType:             "UnionType",
	KindListType:              "ListType",
	KindMapType:               "MapType",
	KindRecordType:            "RecordType",
	KindFunctionType:          "FunctionType",
	KindConversionType:        "ConversionType",
	KindStreamType:            "StreamType",
	KindUnknownType:           "UnknownType",
	KindTypePlaceholder:       "TypePlaceholder",
	KindUnparsable:            "Unparsable",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Category groups kinds by the slots they may fill.
type Category uint16

const (
	Expression Category = 1 << iota
	TypeCategory
	TokenCategory
	DocCategory
	BindCategory
	KeyValueCategory
	UnparsableCategory
)

// Category returns the categories a node of this kind belongs to.
func (k Kind) Category() Category {
	switch {
	case k == KindToken:
		return TokenCategory
	case k == KindDoc:
		return DocCategory
	case k == KindBind:
		return Expression | BindCategory
	case k >= KindBooleanLiteral && k <= KindNative:
		return Expression
	case k == KindKeyValue:
		return KeyValueCategory
	case k >= KindBooleanType && k <= KindTypePlaceholder:
		return TypeCategory
	case k == KindUnparsable:
		return UnparsableCategory
	}
	return 0
}

// Contains reports whether n belongs to at least one category of c.
func (c Category) Contains(n Node) bool {
	return n != nil && n.Kind().Category()&c != 0
}

func (c Category) String() string {
	names := []struct {
		c    Category
		name string
	}{
		{Expression, "expression"},
		{TypeCategory, "type"},
		{TokenCategory, "token"},
		{DocCategory, "doc"},
		{BindCategory, "bind"},
		{KeyValueCategory, "key-value"},
		{UnparsableCategory, "unparsable"},
	}
	var parts []string
	for _, n := range names {
		if c&n.c != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// IsExpression reports whether n can be evaluated.
func IsExpression(n Node) bool { return Expression.Contains(n) }

// IsType reports whether n is a type descriptor.
func IsType(n Node) bool { return TypeCategory.Contains(n) }
