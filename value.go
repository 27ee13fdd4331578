package jsonapiv

import (
	"bytes"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	NullKind ValueKind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

func (k ValueKind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "boolean"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	default:
		return "unknown"
	}
}

// Number keeps the literal text of a JSON number together with whether the
// literal was integral. 1 and 1.0 are different Numbers.
type Number struct {
	text  string
	isInt bool
}

var numberLiteral = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// ParseNumber classifies a JSON number literal. A literal is integral when it
// carries neither a fraction nor an exponent.
func ParseNumber(text string) (Number, error) {
	if !numberLiteral.MatchString(text) {
		return Number{}, errors.Errorf("%q is not a JSON number", text)
	}
	isInt := !strings.ContainsAny(text, ".eE")
	if !isInt {
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			return Number{}, errors.Wrapf(err, "number %q", text)
		}
	}
	return Number{text: text, isInt: isInt}, nil
}

func (n Number) String() string { return n.text }

// IsInteger reports whether the source literal was integral.
func (n Number) IsInteger() bool { return n.isInt }

// IsFloat reports whether the source literal had a fraction or exponent.
func (n Number) IsFloat() bool { return !n.isInt }

// Int64 returns the integer value of an integral literal.
func (n Number) Int64() (int64, error) { return strconv.ParseInt(n.text, 10, 64) }

// Float64 returns the numeric value regardless of representation.
func (n Number) Float64() (float64, error) { return strconv.ParseFloat(n.text, 64) }

// Value is one node of a parsed document tree. The zero Value is null.
type Value struct {
	kind ValueKind
	b    bool
	num  Number
	str  string
	arr  []Value
	obj  *Object
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: BoolKind, b: b} }

// String wraps a string.
func String(s string) Value { return Value{kind: StringKind, str: s} }

// Int wraps an integral number.
func Int(i int64) Value {
	return Value{kind: NumberKind, num: Number{text: strconv.FormatInt(i, 10), isInt: true}}
}

// Float wraps a floating number. Float(1) is not an integer and renders as
// 1.0 so it stays a float when decoded again. Float panics on NaN and
// infinities, which JSON cannot carry.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic("jsonapiv: non-finite float " + strconv.FormatFloat(f, 'g', -1, 64))
	}
	return Value{kind: NumberKind, num: Number{text: floatText(f), isInt: false}}
}

func floatText(f float64) string {
	text := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(text, ".eE") {
		text += ".0"
	}
	return text
}

// NumberValue wraps an already classified Number.
func NumberValue(n Number) Value { return Value{kind: NumberKind, num: n} }

// Array wraps a sequence of values.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: ArrayKind, arr: items}
}

// ObjectValue wraps an ordered object.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: ObjectKind, obj: o}
}

// Obj builds an object Value from alternating key/value pairs, preserving
// the given order. It panics on an odd argument count or a non-string key.
func Obj(kv ...any) Value {
	if len(kv)%2 != 0 {
		panic("jsonapiv: Obj requires key/value pairs")
	}
	o := NewObject()
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic("jsonapiv: Obj keys must be strings")
		}
		v, ok := kv[i+1].(Value)
		if !ok {
			conv, err := FromAny(kv[i+1])
			if err != nil {
				panic(err)
			}
			v = conv
		}
		o.Set(k, v)
	}
	return ObjectValue(o)
}

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNull() bool    { return v.kind == NullKind }
func (v Value) IsBool() bool    { return v.kind == BoolKind }
func (v Value) IsNumber() bool  { return v.kind == NumberKind }
func (v Value) IsString() bool  { return v.kind == StringKind }
func (v Value) IsArray() bool   { return v.kind == ArrayKind }
func (v Value) IsObject() bool  { return v.kind == ObjectKind }

// IsInteger reports whether v is a number written as an integer literal.
func (v Value) IsInteger() bool { return v.kind == NumberKind && v.num.isInt }

// IsFloat reports whether v is a number written with a fraction or exponent.
func (v Value) IsFloat() bool { return v.kind == NumberKind && !v.num.isInt }

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == BoolKind }

func (v Value) AsString() (string, bool) { return v.str, v.kind == StringKind }

func (v Value) AsNumber() (Number, bool) { return v.num, v.kind == NumberKind }

func (v Value) AsArray() ([]Value, bool) {
	if v.kind != ArrayKind {
		return nil, false
	}
	return v.arr, true
}

func (v Value) AsObject() (*Object, bool) {
	if v.kind != ObjectKind {
		return nil, false
	}
	return v.obj, true
}

// Get returns the member named key when v is an object holding it.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != ObjectKind {
		return Value{}, false
	}
	return v.obj.Get(key)
}

// Equal compares kind and exact content. Numbers compare by literal
// representation class and numeric value: 5 equals 5 but not "5" nor 5.0.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case NullKind:
		return true
	case BoolKind:
		return v.b == o.b
	case StringKind:
		return v.str == o.str
	case NumberKind:
		if v.num.isInt != o.num.isInt {
			return false
		}
		if v.num.text == o.num.text {
			return true
		}
		if v.num.isInt {
			return intEqual(v.num.text, o.num.text)
		}
		a, err1 := v.num.Float64()
		b, err2 := o.num.Float64()
		return err1 == nil && err2 == nil && a == b
	case ArrayKind:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case ObjectKind:
		if v.obj.Len() != o.obj.Len() {
			return false
		}
		for _, k := range v.obj.Keys() {
			a, _ := v.obj.Get(k)
			b, ok := o.obj.Get(k)
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders v as compact JSON.
func (v Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return "<" + v.kind.String() + ">"
	}
	return string(b)
}

// MarshalJSON encodes v keeping object member order and number literals.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case NullKind:
		buf.WriteString("null")
	case BoolKind:
		buf.WriteString(strconv.FormatBool(v.b))
	case NumberKind:
		buf.WriteString(v.num.text)
	case StringKind:
		b, err := gojson.Marshal(v.str)
		if err != nil {
			return err
		}
		buf.Write(b)
	case ArrayKind:
		buf.WriteByte('[')
		for i, it := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := it.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectKind:
		buf.WriteByte('{')
		for i, k := range v.obj.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := gojson.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			m, _ := v.obj.Get(k)
			if err := m.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

// Object is an insertion-ordered string-keyed map of Values.
type Object struct {
	keys []string
	vals map[string]Value
}

func NewObject() *Object { return &Object{vals: map[string]Value{}} }

// Set adds or replaces a member. Replacing keeps the original position.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	v, ok := o.vals[key]
	return v, ok
}

func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Keys returns member names in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// intEqual compares integral literals exactly, beyond the float64 range.
func intEqual(a, b string) bool {
	x, ok1 := new(big.Int).SetString(a, 10)
	y, ok2 := new(big.Int).SetString(b, 10)
	return ok1 && ok2 && x.Cmp(y) == 0
}
