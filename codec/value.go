// Package codec converts runtime values and conflict reports to and from
// JSON.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/reoring/glint/runtime"
)

// ErrUnencodable is returned for values that have no JSON form.
var ErrUnencodable = errors.New("codec: value has no JSON form")

// EncodeValue renders v as JSON:
//
//	⊤/⊥           true/false
//	unitless #    number
//	#unit         {"number": n, "unit": "unit"}
//	'text'        "text"
//	ø             null
//	[…]           array
//	{k:v}         {"entries": [{"key": k, "value": v}]}
//	{name:v}      object, in field order
//	stream        its latest value
//	exception     {"exception": kind, "node": id}
//	function      {"function": "ƒ name"}
//
// Non-finite numbers are written as {"number": "NaN"} and the like.
func EncodeValue(v runtime.Value) ([]byte, error) {
	t, err := tree(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(t)
}

type member struct {
	key   string
	value any
}

// object keeps member order, which map[string]any would not.
type object []member

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func tree(v runtime.Value) (any, error) {
	switch x := v.(type) {
	case nil, runtime.None:
		return nil, nil
	case runtime.Bool:
		return bool(x), nil
	case runtime.Text:
		return string(x), nil
	case runtime.Number:
		return number(x), nil
	case *runtime.List:
		out := make([]any, len(x.Items))
		for i, item := range x.Items {
			t, err := tree(item)
			if err != nil {
				return nil, err
			}
			out[i] = t
		}
		return out, nil
	case *runtime.Map:
		entries := []any{}
		var err error
		x.Each(func(k, v runtime.Value) bool {
			var kt, vt any
			if kt, err = tree(k); err != nil {
				return false
			}
			if vt, err = tree(v); err != nil {
				return false
			}
			entries = append(entries, object{{"key", kt}, {"value", vt}})
			return true
		})
		if err != nil {
			return nil, err
		}
		return object{{"entries", entries}}, nil
	case *runtime.Record:
		out := make(object, len(x.Names))
		for i, name := range x.Names {
			t, err := tree(x.Values[i])
			if err != nil {
				return nil, err
			}
			out[i] = member{name, t}
		}
		return out, nil
	case runtime.Stream:
		return tree(x.Latest())
	case *runtime.Exception:
		var id uint64
		if x.Node != nil {
			id = uint64(x.Node.ID())
		}
		return object{{"exception", x.Kind.String()}, {"node", id}}, nil
	case *runtime.Function, *runtime.StreamFunction, *runtime.Conversion:
		return object{{"function", x.String()}}, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnencodable, v)
}

func number(n runtime.Number) any {
	finite := !math.IsNaN(n.Value) && !math.IsInf(n.Value, 0)
	if finite && n.Unit == "" {
		return n.Value
	}
	var value any = n.Value
	if !finite {
		value = strconv.FormatFloat(n.Value, 'g', -1, 64)
	}
	if n.Unit == "" {
		return object{{"number", value}}
	}
	return object{{"number", value}, {"unit", n.Unit}}
}

// DecodeValue reads one JSON document into a value. Objects become records,
// except the {"number", "unit"} form which becomes a Number.
func DecodeValue(data []byte) (runtime.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decode(dec)
	if err != nil {
		return nil, fmt.Errorf("codec: decode value: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("codec: decode value: trailing data")
	}
	return v, nil
}

func decode(dec *json.Decoder) (runtime.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch x := tok.(type) {
	case nil:
		return runtime.None{}, nil
	case bool:
		return runtime.Bool(x), nil
	case string:
		return runtime.Text(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil, err
		}
		return runtime.Number{Value: f}, nil
	case float64:
		return runtime.Number{Value: x}, nil
	case json.Delim:
		switch x {
		case '[':
			var items []runtime.Value
			for dec.More() {
				item, err := decode(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return runtime.NewList(items...), nil
		case '{':
			r := runtime.NewRecord()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, _ := kt.(string)
				v, err := decode(dec)
				if err != nil {
					return nil, err
				}
				r = r.With(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return unitNumber(r), nil
		}
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// unitNumber turns {"number": n, "unit": u} back into a Number.
func unitNumber(r *runtime.Record) runtime.Value {
	if len(r.Names) == 0 || len(r.Names) > 2 {
		return r
	}
	n, ok := r.Field("number")
	if !ok {
		return r
	}
	var unit string
	if len(r.Names) == 2 {
		u, ok := r.Field("unit")
		t, isText := u.(runtime.Text)
		if !ok || !isText {
			return r
		}
		unit = string(t)
	}
	switch x := n.(type) {
	case runtime.Number:
		return runtime.Number{Value: x.Value, Unit: unit}
	case runtime.Text:
		f, err := strconv.ParseFloat(string(x), 64)
		if err != nil {
			return r
		}
		return runtime.Number{Value: f, Unit: unit}
	}
	return r
}
