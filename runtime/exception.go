package runtime

import (
	"github.com/reoring/glint/i18n"
	"github.com/reoring/glint/syntax"
	"github.com/reoring/glint/types"
)

// ExceptionKind classifies exceptional values.
type ExceptionKind uint8

const (
	ExceptionName          ExceptionKind = iota + 1 // unresolved name
	ExceptionType                                   // type mismatch
	ExceptionUnimplemented                          // placeholder or missing native
	ExceptionContext                                // empty or full frame stack
	ExceptionConversion                             // no conversion applies
	ExceptionValue                                  // missing value or ill-formed construct
	ExceptionSemantic                               // unparsable code reached
)

var exceptionCodes = map[ExceptionKind]string{
	ExceptionName:          "exception.name",
	ExceptionType:          "exception.type",
	ExceptionUnimplemented: "exception.unimplemented",
	ExceptionContext:       "exception.context",
	ExceptionConversion:    "exception.conversion",
	ExceptionValue:         "exception.value",
	ExceptionSemantic:      "exception.semantic",
}

func (k ExceptionKind) String() string {
	if c, ok := exceptionCodes[k]; ok {
		return c[len("exception."):]
	}
	return "unknown"
}

// Exception is an exceptional value. Producing one ends the current frame and
// every frame below it; it becomes the result of the evaluation.
type Exception struct {
	Kind ExceptionKind
	// Node is where the exception arose.
	Node   syntax.Node
	Params map[string]string
	// Full distinguishes a full frame stack from an empty one for
	// ExceptionContext.
	Full bool
}

func newException(kind ExceptionKind, n syntax.Node, kv ...string) *Exception {
	e := &Exception{Kind: kind, Node: n}
	if len(kv) > 0 {
		e.Params = map[string]string{}
		for i := 0; i+1 < len(kv); i += 2 {
			e.Params[kv[i]] = kv[i+1]
		}
	}
	return e
}

func NameException(n syntax.Node, name string) *Exception {
	return newException(ExceptionName, n, "name", name)
}

func TypeException(n syntax.Node, expected, given syntax.Node) *Exception {
	return newException(ExceptionType, n, "expected", types.String(expected), "given", types.String(given))
}

func UnimplementedException(n syntax.Node) *Exception {
	return newException(ExceptionUnimplemented, n)
}

func ContextException(n syntax.Node, full bool) *Exception {
	e := newException(ExceptionContext, n)
	e.Full = full
	return e
}

func ConversionException(n syntax.Node, from, to syntax.Node) *Exception {
	return newException(ExceptionConversion, n, "from", types.String(from), "to", types.String(to))
}

func ValueException(n syntax.Node, detail string) *Exception {
	return newException(ExceptionValue, n, "detail", detail)
}

func SemanticException(n syntax.Node) *Exception {
	return newException(ExceptionSemantic, n)
}

// Code is the translation code of the exception.
func (e *Exception) Code() string {
	code := exceptionCodes[e.Kind]
	if e.Kind == ExceptionContext {
		if e.Full {
			return code + ".full"
		}
		return code + ".empty"
	}
	return code
}

// Explain renders the exception through tr, or the current translator when tr
// is nil.
func (e *Exception) Explain(tr i18n.Translator) string {
	if tr == nil {
		tr = i18n.Current()
	}
	return tr.Message(e.Code(), e.Params)
}

func (e *Exception) Type() syntax.Node { return syntax.NewUnknownType(syntax.UnknownOperation, e.Node) }
func (e *Exception) String() string    { return "!" + e.Kind.String() }

// Error makes an exception usable where Go code expects an error.
func (e *Exception) Error() string { return e.Explain(nil) }
