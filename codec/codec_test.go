package codec_test

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/reoring/glint/codec"
	"github.com/reoring/glint/conflict"
	"github.com/reoring/glint/i18n"
	"github.com/reoring/glint/runtime"
	"github.com/reoring/glint/syntax"
	"github.com/reoring/glint/types"
)

func TestEncodeValue(t *testing.T) {
	m := runtime.NewMap()
	m.Set(runtime.Text("a"), runtime.Number{Value: 1})
	cases := []struct {
		v    runtime.Value
		want string
	}{
		{runtime.Bool(true), `true`},
		{runtime.None{}, `null`},
		{runtime.Text("hi"), `"hi"`},
		{runtime.Number{Value: 2.5}, `2.5`},
		{runtime.Number{Value: 3, Unit: "m"}, `{"number":3,"unit":"m"}`},
		{runtime.Number{Value: math.NaN()}, `{"number":"NaN"}`},
		{runtime.NewList(runtime.Number{Value: 1}, runtime.None{}), `[1,null]`},
		{m, `{"entries":[{"key":"a","value":1}]}`},
		{runtime.NewRecord().With("z", runtime.Bool(false)).With("a", runtime.Text("x")), `{"z":false,"a":"x"}`},
		{runtime.ValueException(nil, "input"), `{"exception":"value","node":0}`},
	}
	for _, c := range cases {
		got, err := codec.EncodeValue(c.v)
		if err != nil {
			t.Fatalf("%s: %v", c.v, err)
		}
		if string(got) != c.want {
			t.Fatalf("%s: got %s want %s", c.v, got, c.want)
		}
	}
}

func TestDecodeValue(t *testing.T) {
	v, err := codec.DecodeValue([]byte(`{"speed":{"number":"+Inf","unit":"m/s"},"tags":["a",true,null],"n":4}`))
	if err != nil {
		t.Fatalf("DecodeValue: %v", err)
	}
	r, ok := v.(*runtime.Record)
	if !ok || len(r.Names) != 3 || r.Names[0] != "speed" {
		t.Fatalf("record: %v", v)
	}
	speed, _ := r.Field("speed")
	if n, ok := speed.(runtime.Number); !ok || !math.IsInf(n.Value, 1) || n.Unit != "m/s" {
		t.Fatalf("speed: %v", speed)
	}
	tags, _ := r.Field("tags")
	want := runtime.NewList(runtime.Text("a"), runtime.Bool(true), runtime.None{})
	if !runtime.Equal(tags, want) {
		t.Fatalf("tags: %v", tags)
	}
	n, _ := r.Field("n")
	if !runtime.Equal(n, runtime.Number{Value: 4}) {
		t.Fatalf("n: %v", n)
	}

	if _, err := codec.DecodeValue([]byte(`1 2`)); err == nil {
		t.Fatalf("trailing data must fail")
	}
	if _, err := codec.DecodeValue([]byte(`[1,`)); err == nil {
		t.Fatalf("truncated input must fail")
	}
}

func TestEncodeValue_Unencodable(t *testing.T) {
	if _, err := codec.EncodeValue(opaque{}); !errors.Is(err, codec.ErrUnencodable) {
		t.Fatalf("expected ErrUnencodable, got %v", err)
	}
}

type opaque struct{}

func (opaque) Type() syntax.Node { return syntax.NewAnyType() }
func (opaque) String() string    { return "?" }

func TestConflictReport(t *testing.T) {
	x1 := syntax.NewBind("x", nil, syntax.NewNumber(1, ""))
	x2 := syntax.NewBind("x", nil, syntax.NewNumber(2, ""))
	tree := syntax.NewTree(syntax.NewBlock(x1, x2, syntax.NewReference("x")))
	if err := tree.CacheParents(); err != nil {
		t.Fatalf("CacheParents: %v", err)
	}
	cs := conflict.NewChecker(types.NewContext(tree)).All()

	report := codec.NewConflictReport(tree, cs, i18n.Dictionary("en"))
	if report.Count != 1 || report.Conflicts[0].Code != "duplicate_name" {
		t.Fatalf("report: %+v", report)
	}
	e := report.Conflicts[0]
	if e.Primary.ID != x2.ID() || e.Primary.Kind != "Bind" || e.Primary.Explanation != "x is already defined" {
		t.Fatalf("primary: %+v", e.Primary)
	}
	if len(e.Secondary) != 1 || e.Secondary[0].ID != x1.ID() {
		t.Fatalf("secondary: %+v", e.Secondary)
	}
	p, ok := syntax.ParsePath(e.Primary.Path)
	if !ok || tree.NodeAt(p) != syntax.Node(x2) {
		t.Fatalf("path %q does not lead back to the node", e.Primary.Path)
	}

	var buf bytes.Buffer
	if err := codec.EncodeConflicts(&buf, report); err != nil {
		t.Fatalf("EncodeConflicts: %v", err)
	}
	back, err := codec.DecodeConflicts(&buf)
	if err != nil {
		t.Fatalf("DecodeConflicts: %v", err)
	}
	if back.Count != 1 || back.Conflicts[0].Primary != e.Primary || back.Conflicts[0].Secondary[0] != e.Secondary[0] {
		t.Fatalf("decoded: %+v", back)
	}
}

func TestDecodeConflicts_Rejects(t *testing.T) {
	for _, doc := range []string{
		`{"count":2,"conflicts":[]}`,
		`{"count":0,"conflicts":[],"extra":1}`,
		`{`,
	} {
		if _, err := codec.DecodeConflicts(strings.NewReader(doc)); err == nil {
			t.Fatalf("%s: expected an error", doc)
		}
	}
}
