package runtime

import (
	"math"
	"strconv"
	"strings"

	"github.com/reoring/glint/syntax"
	"github.com/reoring/glint/types"
)

// convert applies the innermost registered conversion that fits, then the
// built-in ones.
func (ev *Evaluator) convert(c *syntax.Convert, v Value) Value {
	from := v.Type()
	if conv := ev.conversionFor(from, c.Type); conv != nil {
		scope := NewScope(conv.Closure)
		scope.Define(thisName, v)
		return ev.call(conv.Def, c, scope, ev.Compile(conv.Def.Expression))
	}
	if out, ok := builtinConversion(v, c.Type); ok {
		return out
	}
	return ConversionException(c, from, c.Type)
}

// conversionFor searches the frames from the innermost outward.
func (ev *Evaluator) conversionFor(from, to syntax.Node) *Conversion {
	for i := len(ev.frames) - 1; i >= 0; i-- {
		convs := ev.frames[i].conversions
		for j := len(convs) - 1; j >= 0; j-- {
			def := convs[j].Def
			if types.Accepts(def.Input, from, nil) && types.Accepts(to, def.Output, nil) {
				return convs[j]
			}
		}
	}
	return nil
}

func builtinConversion(v Value, to syntax.Node) (Value, bool) {
	if types.Accepts(to, v.Type(), nil) {
		return v, true
	}
	switch t := to.(type) {
	case *syntax.TextType:
		switch x := v.(type) {
		case Number, Bool, None:
			return Text(x.String()), true
		}
	case *syntax.NumberType:
		if x, ok := v.(Text); ok {
			n, err := strconv.ParseFloat(strings.TrimSpace(string(x)), 64)
			if err != nil {
				n = math.NaN()
			}
			return Number{Value: n, Unit: t.Unit}, true
		}
	}
	return nil, false
}
