package conflict_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/reoring/glint/conflict"
	"github.com/reoring/glint/i18n"
	"github.com/reoring/glint/syntax"
	"github.com/reoring/glint/types"
)

func checker(t *testing.T, root syntax.Node, shares ...syntax.Node) *conflict.Checker {
	t.Helper()
	tree := syntax.NewTree(root, shares...)
	if err := tree.CacheParents(); err != nil {
		t.Fatalf("CacheParents: %v", err)
	}
	return conflict.NewChecker(types.NewContext(tree))
}

func codes(cs conflict.Conflicts) string { return strings.Join(cs.Codes(), ",") }

func TestConflicts_Memoized(t *testing.T) {
	ref := syntax.NewReference("missing")
	k := checker(t, syntax.NewBlock(ref))
	first := k.Conflicts(ref)
	n := k.Computations()
	second := k.Conflicts(ref)
	if k.Computations() != n {
		t.Fatalf("conflicts recomputed")
	}
	if codes(first) != "unknown_name" || codes(second) != codes(first) {
		t.Fatalf("conflicts: %s / %s", codes(first), codes(second))
	}
}

func TestAll_ChildrenBeforeSelf(t *testing.T) {
	// { { _ } nope } with a doc pair in the outer block
	inner := syntax.NewBlock(syntax.NewPlaceholder(nil))
	outer := syntax.NewBlock(inner, syntax.NewReference("nope"))
	outer.Docs = []*syntax.Doc{syntax.NewDoc("a", "en"), syntax.NewDoc("b", "en")}
	k := checker(t, outer)
	all := k.All()
	if got := codes(all); got != "placeholder,unknown_name,duplicate_docs" {
		t.Fatalf("order: %s", got)
	}
	if all[0].Primary.Node.Kind() != syntax.KindExpressionPlaceholder {
		t.Fatalf("descendant conflict must come first")
	}
}

func TestAll_TotalOverMalformedTrees(t *testing.T) {
	root := syntax.NewBlock(
		syntax.NewUnparsable("1 +"),
		syntax.NewEvaluate(syntax.NewUnparsable("??"), syntax.NewPlaceholder(nil)),
		syntax.NewBinary(syntax.OpAdd, syntax.NewUnparsable(")"), syntax.NewNumber(1, "")),
		syntax.NewConvert(syntax.NewPlaceholder(nil), syntax.NewTypePlaceholder()),
		syntax.NewMap(syntax.NewUnparsable("[")),
		syntax.NewNone(),
	)
	k := checker(t, root)
	all := k.All()
	for _, c := range all {
		if c.Code == conflict.CodeInternal {
			t.Fatalf("detector failed: %s", c.Explain(nil))
		}
	}
	if !all.Has(conflict.CodeUnparsable) || !all.Has(conflict.CodePlaceholder) || !all.Has(conflict.CodeNotAKeyValue) {
		t.Fatalf("missing conflicts: %s", codes(all))
	}
}

func TestConflicts_Inputs(t *testing.T) {
	a := syntax.NewBind("a", syntax.NewNumberType(""), nil)
	b := syntax.NewBind("b", syntax.NewTextType(), syntax.NewText("x"))
	f := syntax.NewFunction("f", []*syntax.Bind{a, b}, nil, syntax.NewReference("a"))

	late := syntax.NewBind("a", nil, syntax.NewNumber(2, ""))
	misplaced := syntax.NewEvaluate(syntax.NewReference("f"), syntax.NewNumber(1, ""), late)
	unknown := syntax.NewEvaluate(syntax.NewReference("f"), syntax.NewNumber(1, ""), syntax.NewBind("c", nil, syntax.NewNone()))
	missing := syntax.NewEvaluate(syntax.NewReference("f"))
	incompatible := syntax.NewEvaluate(syntax.NewReference("f"), syntax.NewText("no"))
	extra := syntax.NewEvaluate(syntax.NewReference("f"), syntax.NewNumber(1, ""), syntax.NewText("x"), syntax.NewNone())
	fine := syntax.NewEvaluate(syntax.NewReference("f"), syntax.NewNumber(1, ""), syntax.NewBind("b", nil, syntax.NewText("z")))
	notFn := syntax.NewEvaluate(syntax.NewNumber(1, ""))

	k := checker(t, syntax.NewBlock(f, misplaced, unknown, missing, incompatible, extra, fine, notFn))
	cases := []struct {
		call syntax.Node
		want string
	}{
		{misplaced, "misplaced_input"},
		{unknown, "unknown_input"},
		{missing, "missing_input"},
		{incompatible, "incompatible_input"},
		{extra, "unknown_input"},
		{fine, ""},
		{notFn, "not_a_function"},
	}
	for i, tc := range cases {
		if got := codes(k.Conflicts(tc.call)); got != tc.want {
			t.Fatalf("case %d %s: got %q want %q", i, syntax.Print(tc.call), got, tc.want)
		}
	}

	mis := k.Conflicts(misplaced)[0]
	if mis.Primary.Node != syntax.Node(late.Names[0]) {
		t.Fatalf("misplaced input must point at the given name, got %s", syntax.Print(mis.Primary.Node))
	}
	if len(mis.Secondary) != 1 || mis.Secondary[0].Node != syntax.Node(a) {
		t.Fatalf("misplaced input must point at the declared input")
	}
	if got := mis.Explain(i18n.Dictionary("en")); got != "input a is given out of order" {
		t.Fatalf("explanation: %q", got)
	}
	if got := mis.ExplainSecondary(i18n.Dictionary("en")); len(got) != 1 || got[0] != "this is where a is declared" {
		t.Fatalf("secondary explanation: %q", got)
	}
}

func TestConflicts_NotAKeyValue(t *testing.T) {
	stray := syntax.NewNumber(3, "")
	m := syntax.NewMap(syntax.NewKeyValue(syntax.NewText("a"), syntax.NewNumber(1, "")), stray)
	k := checker(t, syntax.NewBlock(m))
	cs := k.Conflicts(m)
	if codes(cs) != "not_a_key_value" {
		t.Fatalf("conflicts: %s", codes(cs))
	}
	if cs[0].Primary.Node != syntax.Node(stray) || cs[0].Secondary[0].Node != syntax.Node(m.Open) {
		t.Fatalf("primary must be the entry and secondary the open token")
	}
}

func TestConflicts_ConversionPlacement(t *testing.T) {
	ok := syntax.NewConversion(syntax.NewNumberType("m"), syntax.NewTextType(), syntax.NewText("meters"))
	bad := syntax.NewConversion(syntax.NewNumberType("s"), syntax.NewTextType(), syntax.NewText("seconds"))
	f := syntax.NewFunction("f", nil, nil, bad)
	convert := syntax.NewConvert(syntax.NewNumber(1, "m"), syntax.NewTextType())
	unknown := syntax.NewConvert(syntax.NewNumber(1, "m"), syntax.NewBooleanType())
	k := checker(t, syntax.NewBlock(ok, f, convert, unknown))
	if cs := k.Conflicts(ok); len(cs) != 0 {
		t.Fatalf("block conversion: %s", codes(cs))
	}
	if got := codes(k.Conflicts(bad)); got != "misplaced_conversion" {
		t.Fatalf("function conversion: %s", got)
	}
	if cs := k.Conflicts(convert); len(cs) != 0 {
		t.Fatalf("convert: %s", codes(cs))
	}
	if got := codes(k.Conflicts(unknown)); got != "unknown_conversion" {
		t.Fatalf("unknown conversion: %s", got)
	}
}

func TestConflicts_NamesAndCycles(t *testing.T) {
	x1 := syntax.NewBind("x", nil, syntax.NewNumber(1, ""))
	x2 := syntax.NewBind("x", nil, syntax.NewNumber(2, ""))
	selfRef := syntax.NewReference("y")
	y := syntax.NewBind("y", nil, syntax.NewBinary(syntax.OpAdd, selfRef, syntax.NewNumber(1, "")))
	k := checker(t, syntax.NewBlock(x1, x2, y, syntax.NewReference("x")))
	if got := codes(k.Conflicts(x1)); got != "" {
		t.Fatalf("first definition: %s", got)
	}
	dup := k.Conflicts(x2)
	if codes(dup) != "duplicate_name" || dup[0].Secondary[0].Node != syntax.Node(x1) {
		t.Fatalf("duplicate: %s", codes(dup))
	}
	if got := codes(k.Conflicts(selfRef)); got != "reference_cycle" {
		t.Fatalf("cycle: %s", got)
	}
}

func TestConflicts_TypeMismatches(t *testing.T) {
	bind := syntax.NewBind("n", syntax.NewNumberType(""), syntax.NewText("one"))
	op := syntax.NewBinary(syntax.OpAdd, syntax.NewNumber(1, "m"), syntax.NewNumber(1, "s"))
	cond := syntax.NewConditional(syntax.NewNumber(1, ""), syntax.NewNone(), syntax.NewNone())
	rec := syntax.NewRecord(syntax.NewBind("a", nil, syntax.NewNumber(1, "")))
	prop := syntax.NewPropertyAccess(rec, "b")
	this := syntax.NewThis()
	changed := syntax.NewChanged(syntax.NewNumber(1, ""))
	k := checker(t, syntax.NewBlock(bind, op, cond, prop, this, changed))
	cases := []struct {
		node syntax.Node
		want string
	}{
		{bind, "incompatible_bind"},
		{op, "incompatible_operand"},
		{cond, "expected_boolean"},
		{prop, "unknown_property"},
		{this, "misplaced_this"},
		{changed, "not_a_stream"},
	}
	for _, tc := range cases {
		if got := codes(k.Conflicts(tc.node)); got != tc.want {
			t.Fatalf("%s: got %q want %q", syntax.Print(tc.node), got, tc.want)
		}
	}
}

func TestConflicts_ExpectedEndExpression(t *testing.T) {
	last := syntax.NewBind("x", nil, syntax.NewNumber(1, ""))
	inner := syntax.NewBlock(last)
	empty := syntax.NewBlock()
	k := checker(t, syntax.NewBlock(inner, empty))
	if got := codes(k.Conflicts(inner)); got != "expected_end_expression" {
		t.Fatalf("bind ending a block: %s", got)
	}
	if got := codes(k.Conflicts(empty)); got != "expected_end_expression" {
		t.Fatalf("empty block: %s", got)
	}
	if got := codes(checker(t, syntax.NewBlock()).All()); got != "" {
		t.Fatalf("empty program: %s", got)
	}
}

func TestConflicts_ErrorModel(t *testing.T) {
	k := checker(t, syntax.NewBlock(syntax.NewReference("a"), syntax.NewReference("b")))
	var err error = k.All()
	cs, ok := conflict.AsConflicts(err)
	if !ok || len(cs) != 2 {
		t.Fatalf("AsConflicts: %v", err)
	}
	var target conflict.Conflicts
	if !errors.As(err, &target) {
		t.Fatalf("errors.As failed")
	}
	if !strings.HasPrefix(err.Error(), "unknown_name at Reference#") {
		t.Fatalf("error text: %s", err.Error())
	}
	if _, ok := conflict.AsConflicts(nil); ok {
		t.Fatalf("nil error must not yield conflicts")
	}
	if got := conflict.AppendConflicts(nil, cs[0]); len(got) != 1 {
		t.Fatalf("AppendConflicts")
	}
}
