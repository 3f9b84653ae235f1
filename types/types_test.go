package types_test

import (
	"fmt"
	"testing"

	"github.com/reoring/glint/syntax"
	"github.com/reoring/glint/types"
)

func linked(t *testing.T, root syntax.Node, shares ...syntax.Node) *types.Context {
	t.Helper()
	tree := syntax.NewTree(root, shares...)
	if err := tree.CacheParents(); err != nil {
		t.Fatalf("CacheParents: %v", err)
	}
	return types.NewContext(tree)
}

func TestTypeOf_Memoized(t *testing.T) {
	sum := syntax.NewBinary(syntax.OpAdd, syntax.NewNumber(1, "ms"), syntax.NewNumber(2, "ms"))
	ctx := linked(t, syntax.NewBlock(sum))
	first := ctx.TypeOf(sum)
	n := ctx.TypeComputations()
	second := ctx.TypeOf(sum)
	if ctx.TypeComputations() != n {
		t.Fatalf("second TypeOf recomputed")
	}
	if first != second {
		t.Fatalf("cached type differs")
	}
	if got := types.String(first); got != "#ms" {
		t.Fatalf("sum type: %s", got)
	}
}

func TestTypeOf_Literals(t *testing.T) {
	record := syntax.NewRecord(
		syntax.NewBind("name", nil, syntax.NewText("ada")),
		syntax.NewBind("age", nil, syntax.NewNumber(36, "")),
	)
	cases := []struct {
		expr syntax.Node
		want string
	}{
		{syntax.NewBoolean(true), "?"},
		{syntax.NewNumber(3, "m"), "#m"},
		{syntax.NewText("a"), "''"},
		{syntax.NewNone(), "ø"},
		{syntax.NewList(syntax.NewNumber(1, ""), syntax.NewText("a")), "[# | '']"},
		{syntax.NewMap(syntax.NewKeyValue(syntax.NewText("a"), syntax.NewNumber(1, ""))), "{'':#}"},
		{record, "{name:'' age:#}"},
		{syntax.NewPropertyAccess(record, "age"), "#"},
		{syntax.NewConditional(syntax.NewBoolean(true), syntax.NewNumber(1, ""), syntax.NewNone()), "# | ø"},
		{syntax.NewIs(syntax.NewNone(), syntax.NewNoneType()), "?"},
		{syntax.NewPlaceholder(nil), "unknown(placeholder)"},
		{syntax.NewUnparsable("(("), "unknown(unparsable)"},
	}
	for i, tc := range cases {
		ctx := linked(t, syntax.NewBlock(tc.expr))
		if got := types.String(ctx.TypeOf(tc.expr)); got != tc.want {
			t.Fatalf("case %d %s: got %s want %s", i, syntax.Print(tc.expr), got, tc.want)
		}
	}
}

func TestTypeOf_ReferenceAndCall(t *testing.T) {
	a := syntax.NewBind("a", syntax.NewNumberType("m"), nil)
	body := syntax.NewBinary(syntax.OpMultiply, syntax.NewReference("a"), syntax.NewNumber(2, ""))
	f := syntax.NewFunction("double", []*syntax.Bind{a}, nil, body)
	call := syntax.NewEvaluate(syntax.NewReference("double"), syntax.NewNumber(3, "m"))
	ctx := linked(t, syntax.NewBlock(f, call))
	if got := types.String(ctx.TypeOf(call)); got != "#m" {
		t.Fatalf("call type: %s", got)
	}
	missing := syntax.NewReference("nope")
	ctx = linked(t, syntax.NewBlock(missing))
	if u, ok := ctx.TypeOf(missing).(*syntax.UnknownType); !ok || u.Reason != syntax.UnknownName {
		t.Fatalf("unresolved reference: %s", syntax.Print(ctx.TypeOf(missing)))
	}
}

func TestTypeOf_CycleSafety(t *testing.T) {
	self := syntax.NewReference("x")
	ctx := linked(t, syntax.NewBlock(syntax.NewBind("x", nil, self)))
	if u, ok := ctx.TypeOf(self).(*syntax.UnknownType); !ok || u.Reason != syntax.UnknownCycle {
		t.Fatalf("self reference: %s", syntax.Print(ctx.TypeOf(self)))
	}

	// a chain v0: v1, v1: v2, ... v(n-1): v0
	const n = 200
	var stmts []syntax.Node
	for i := 0; i < n; i++ {
		stmts = append(stmts, syntax.NewBind(fmt.Sprintf("v%d", i), nil, syntax.NewReference(fmt.Sprintf("v%d", (i+1)%n))))
	}
	ctx = linked(t, syntax.NewBlock(stmts...))
	for _, s := range stmts {
		if !types.IsUnknown(ctx.TypeOf(s)) {
			t.Fatalf("cycle member typed as %s", syntax.Print(ctx.TypeOf(s)))
		}
	}
}

func TestTypeOf_RecursiveFunctionTerminates(t *testing.T) {
	n := syntax.NewBind("n", syntax.NewNumberType(""), nil)
	rec := syntax.NewEvaluate(syntax.NewReference("f"), syntax.NewBinary(syntax.OpSubtract, syntax.NewReference("n"), syntax.NewNumber(1, "")))
	body := syntax.NewConditional(
		syntax.NewBinary(syntax.OpLess, syntax.NewReference("n"), syntax.NewNumber(1, "")),
		syntax.NewNumber(0, ""),
		rec,
	)
	f := syntax.NewFunction("f", []*syntax.Bind{n}, nil, body)
	ctx := linked(t, syntax.NewBlock(f))
	if _, ok := ctx.TypeOf(f).(*syntax.FunctionType); !ok {
		t.Fatalf("function type: %s", syntax.Print(ctx.TypeOf(f)))
	}
}

func TestTypeOf_NarrowsThroughConditional(t *testing.T) {
	x := syntax.NewBind("x", syntax.NewUnion(syntax.NewNumberType(""), syntax.NewNoneType()), syntax.NewNone())
	inYes := syntax.NewReference("x")
	inNo := syntax.NewReference("x")
	cond := syntax.NewConditional(syntax.NewIs(syntax.NewReference("x"), syntax.NewNumberType("")), inYes, inNo)
	ctx := linked(t, syntax.NewBlock(x, cond))
	if got := types.String(ctx.TypeOf(inYes)); got != "#" {
		t.Fatalf("narrowed: %s", got)
	}
	if got := types.String(ctx.TypeOf(inNo)); got != "# | ø" {
		t.Fatalf("no branch: %s", got)
	}
}

func TestEvaluateTypeSet(t *testing.T) {
	x := syntax.NewBind("x", syntax.NewUnion(syntax.NewNumberType(""), syntax.NewTextType(), syntax.NewNoneType()), nil)
	isNum := syntax.NewIs(syntax.NewReference("x"), syntax.NewNumberType(""))
	isText := syntax.NewIs(syntax.NewReference("x"), syntax.NewTextType())
	isNumOrNone := syntax.NewIs(syntax.NewReference("x"), syntax.NewUnion(syntax.NewNumberType(""), syntax.NewNoneType()))
	or := syntax.NewBinary(syntax.OpOr, isNum, isText)
	and := syntax.NewBinary(syntax.OpAnd, isNumOrNone, syntax.NewIs(syntax.NewReference("x"), syntax.NewNumberType("")))
	other := syntax.NewBinary(syntax.OpLess, syntax.NewNumber(1, ""), syntax.NewNumber(2, ""))
	f := syntax.NewFunction("f", []*syntax.Bind{x}, nil, syntax.NewList(or, and, other))
	ctx := linked(t, syntax.NewBlock(f))

	all := types.NewTypeSet(x.Type)
	if got := types.String(ctx.EvaluateTypeSet(x, or, all, all).Type()); got != "# | ''" {
		t.Fatalf("| narrowing: %s", got)
	}
	if got := types.String(ctx.EvaluateTypeSet(x, and, all, all).Type()); got != "#" {
		t.Fatalf("& narrowing: %s", got)
	}
	if got := ctx.EvaluateTypeSet(x, other, all, all); len(got) != 3 {
		t.Fatalf("non-narrowing expression changed the set: %d", len(got))
	}
}

func TestAccepts_Laws(t *testing.T) {
	ctx := linked(t, syntax.NewBlock())
	all := []syntax.Node{
		syntax.NewBooleanType(),
		syntax.NewNumberType("ms"),
		syntax.NewTextType(),
		syntax.NewNoneType(),
		syntax.NewAnyType(),
		syntax.NewUnion(syntax.NewTextType(), syntax.NewNoneType()),
		syntax.NewListType(syntax.NewNumberType("")),
		syntax.NewMapType(syntax.NewTextType(), syntax.NewBooleanType()),
		syntax.NewRecordType(syntax.NewBind("a", syntax.NewNumberType(""), nil)),
		syntax.NewFunctionType([]*syntax.Bind{syntax.NewBind("a", syntax.NewTextType(), nil)}, syntax.NewNumberType("")),
		syntax.NewConversionType(syntax.NewNumberType(""), syntax.NewTextType()),
		syntax.NewStreamType(syntax.NewNumberType("ms")),
		syntax.NewUnknownType(syntax.UnknownCycle, nil),
		// streams and functions of an undeclared value type
		syntax.NewStreamType(nil),
		syntax.NewFunctionType(nil, syntax.NewStreamType(nil)),
	}
	for _, typ := range all {
		if !types.Accepts(typ, typ, ctx) {
			t.Fatalf("not reflexive: %s", types.String(typ))
		}
	}

	num, text, none := syntax.NewNumberType(""), syntax.NewTextType(), syntax.NewNoneType()
	u := syntax.NewUnion(num, none)
	if !types.Accepts(u, num, ctx) || !types.Accepts(u, none, ctx) || types.Accepts(u, text, ctx) {
		t.Fatalf("union must accept exactly what one member accepts")
	}
	if types.Accepts(num, u, ctx) {
		t.Fatalf("a member must not accept the whole union")
	}
	if types.Accepts(syntax.NewNumberType("ms"), syntax.NewNumberType("s"), ctx) {
		t.Fatalf("units must match")
	}

	small := syntax.NewRecordType(syntax.NewBind("a", syntax.NewNumberType(""), nil))
	big := syntax.NewRecordType(
		syntax.NewBind("a", syntax.NewNumberType(""), nil),
		syntax.NewBind("b", syntax.NewTextType(), nil),
	)
	if !types.Accepts(small, big, ctx) {
		t.Fatalf("record with more fields must be accepted where fewer are required")
	}
	if types.Accepts(big, small, ctx) {
		t.Fatalf("record with fewer required fields must not be accepted")
	}
	optional := syntax.NewRecordType(
		syntax.NewBind("a", syntax.NewNumberType(""), nil),
		syntax.NewBind("b", syntax.NewTextType(), syntax.NewText("")),
	)
	if !types.Accepts(optional, small, ctx) {
		t.Fatalf("optional fields must not be required")
	}

	c1 := syntax.NewConversionType(syntax.NewNumberType(""), syntax.NewTextType())
	c2 := syntax.NewConversionType(syntax.NewNumberType(""), syntax.NewNumberType(""))
	if types.Accepts(c1, c2, ctx) {
		t.Fatalf("conversion outputs must match")
	}
	if types.Accepts(syntax.NewNumberType(""), syntax.NewUnknownType(syntax.UnknownCycle, nil), ctx) {
		t.Fatalf("unknown must only be accepted by unknown")
	}
}
