package jsonapiv

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	gojson "github.com/goccy/go-json"
)

// FromAny converts a native Go tree (as produced by a generic JSON decoder)
// into a Value. Map members are ordered by key because Go maps carry no order.
// float64 inputs are classified by value: 3 is integral, 3.5 is not.
func FromAny(in any) (Value, error) {
	switch x := in.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case *Object:
		return ObjectValue(x), nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case gojson.Number:
		n, err := ParseNumber(string(x))
		if err != nil {
			return Value{}, fmt.Errorf("jsonapiv: invalid number %q: %w", string(x), err)
		}
		return NumberValue(n), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return uintValue(uint64(x)), nil
	case uint8:
		return uintValue(uint64(x)), nil
	case uint16:
		return uintValue(uint64(x)), nil
	case uint32:
		return uintValue(uint64(x)), nil
	case uint64:
		return uintValue(x), nil
	case float32:
		return floatFromAny(float64(x))
	case float64:
		return floatFromAny(x)
	case []Value:
		return Array(x...), nil
	case []any:
		items := make([]Value, 0, len(x))
		for i, it := range x {
			v, err := FromAny(it)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items = append(items, v)
		}
		return Array(items...), nil
	case []string:
		items := make([]Value, 0, len(x))
		for _, s := range x {
			items = append(items, String(s))
		}
		return Array(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		o := NewObject()
		for _, k := range keys {
			v, err := FromAny(x[k])
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", k, err)
			}
			o.Set(k, v)
		}
		return ObjectValue(o), nil
	default:
		return Value{}, fmt.Errorf("jsonapiv: unsupported type %T", in)
	}
}

func uintValue(u uint64) Value {
	return NumberValue(Number{text: strconv.FormatUint(u, 10), isInt: true})
}

// floatFromAny treats whole floats inside the int64 range as integers.
func floatFromAny(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("jsonapiv: non-finite number %v", f)
	}
	if f >= -(1<<63) && f < 1<<63 && f == math.Trunc(f) {
		return Int(int64(f)), nil
	}
	return Float(f), nil
}
