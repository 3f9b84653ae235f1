// Package conflict detects semantic problems in a syntax tree. Conflicts are
// data: detection never fails, and a conflicted program may still run.
package conflict

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/glint/i18n"
	"github.com/reoring/glint/syntax"
)

// Conflict codes.
const (
	CodePlaceholder           = "placeholder"
	CodeUnparsable            = "unparsable"
	CodeDuplicateDocs         = "duplicate_docs"
	CodeMisplacedConversion   = "misplaced_conversion"
	CodeNotAKeyValue          = "not_a_key_value"
	CodeUnknownInput          = "unknown_input"
	CodeMisplacedInput        = "misplaced_input"
	CodeMissingInput          = "missing_input"
	CodeIncompatibleInput     = "incompatible_input"
	CodeNotAFunction          = "not_a_function"
	CodeUnknownName           = "unknown_name"
	CodeDuplicateName         = "duplicate_name"
	CodeReferenceCycle        = "reference_cycle"
	CodeIncompatibleBind      = "incompatible_bind"
	CodeIncompatibleOperand   = "incompatible_operand"
	CodeExpectedBoolean       = "expected_boolean"
	CodeUnknownProperty       = "unknown_property"
	CodeMisplacedThis         = "misplaced_this"
	CodeUnknownConversion     = "unknown_conversion"
	CodeExpectedEndExpression = "expected_end_expression"
	CodeNotAStream            = "not_a_stream"
	// A detector panicked on a malformed node.
	CodeInternal = "internal"
)

// Part is one offending node together with the translation code that
// explains its role in the conflict.
type Part struct {
	Node        syntax.Node
	Explanation string
}

// Conflict is a semantic problem local to its primary node.
type Conflict struct {
	Code      string
	Primary   Part
	Secondary []Part
	// Params carries values substituted into explanations, e.g. {"name": "x"}.
	Params map[string]string
}

func newConflict(code string, primary syntax.Node, kv ...string) Conflict {
	c := Conflict{Code: code, Primary: Part{Node: primary, Explanation: primaryCode(code)}}
	if len(kv) > 0 {
		c.Params = map[string]string{}
		for i := 0; i+1 < len(kv); i += 2 {
			c.Params[kv[i]] = kv[i+1]
		}
	}
	return c
}

func (c Conflict) with(secondary syntax.Node) Conflict {
	if secondary != nil {
		c.Secondary = append(c.Secondary, Part{Node: secondary, Explanation: secondaryCode(c.Code)})
	}
	return c
}

func primaryCode(code string) string   { return "conflict." + code }
func secondaryCode(code string) string { return "conflict." + code + ".secondary" }

// Explain renders the primary explanation through tr, or through the current
// translator when tr is nil.
func (c Conflict) Explain(tr i18n.Translator) string {
	return message(tr, c.Primary.Explanation, c.Params)
}

// ExplainSecondary renders the explanation of each secondary part.
func (c Conflict) ExplainSecondary(tr i18n.Translator) []string {
	out := make([]string, len(c.Secondary))
	for i, p := range c.Secondary {
		out[i] = message(tr, p.Explanation, c.Params)
	}
	return out
}

// Nodes lists the primary node followed by the secondary ones.
func (c Conflict) Nodes() []syntax.Node {
	out := []syntax.Node{c.Primary.Node}
	for _, p := range c.Secondary {
		out = append(out, p.Node)
	}
	return out
}

func message(tr i18n.Translator, code string, data map[string]string) string {
	if tr == nil {
		return i18n.T(code, data)
	}
	return tr.Message(code, data)
}

// Conflicts is a list of conflicts that implements error.
type Conflicts []Conflict

// Error summarizes the first few conflicts.
func (cs Conflicts) Error() string {
	if len(cs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := len(cs)
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", cs[i].Code, describe(cs[i].Primary.Node))
	}
	if len(cs) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(cs))
	}
	return b.String()
}

// Codes lists the code of every conflict in order.
func (cs Conflicts) Codes() []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Code
	}
	return out
}

// Has reports whether a conflict with code is present.
func (cs Conflicts) Has(code string) bool {
	for _, c := range cs {
		if c.Code == code {
			return true
		}
	}
	return false
}

// AppendConflicts appends conflicts to dst, initializing the slice when
// needed.
func AppendConflicts(dst Conflicts, more ...Conflict) Conflicts {
	if dst == nil {
		dst = Conflicts{}
	}
	return append(dst, more...)
}

// AsConflicts extracts Conflicts from an error using errors.As.
func AsConflicts(err error) (Conflicts, bool) {
	if err == nil {
		return nil, false
	}
	var cs Conflicts
	if errors.As(err, &cs) {
		return cs, true
	}
	return nil, false
}

func describe(n syntax.Node) string {
	if n == nil {
		return "nothing"
	}
	return fmt.Sprintf("%s#%d", n.Kind(), n.ID())
}
