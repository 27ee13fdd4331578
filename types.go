package jsonapiv

import (
	"context"
	"time"
)

// Default date layouts: ISO 8601 with a zone offset, then the same with
// millisecond precision.
const (
	DateLayout       = "2006-01-02T15:04:05Z07:00"
	DateLayoutMillis = "2006-01-02T15:04:05.000Z07:00"
)

// TypeOption configures a leaf type validator.
type TypeOption func(*TypeValidator)

// Nullable makes the validator accept null.
func Nullable() TypeOption { return func(t *TypeValidator) { t.nullable = true } }

// Formats sets the layouts tried, in order, by DateType.
func Formats(layouts ...string) TypeOption {
	return func(t *TypeValidator) { t.layouts = append([]string(nil), layouts...) }
}

// TypeValidator checks the type of a single value.
type TypeValidator struct {
	name     string
	detailID string
	nullable bool
	layouts  []string
	accept   func(t *TypeValidator, v Value) bool
}

var _ Validator = (*TypeValidator)(nil)

func newType(name string, accept func(*TypeValidator, Value) bool, opts []TypeOption) *TypeValidator {
	t := &TypeValidator{name: name, detailID: "expect-" + name, accept: accept}
	for _, o := range opts {
		o(t)
	}
	return t
}

// StringType accepts strings.
func StringType(opts ...TypeOption) *TypeValidator {
	return newType("string", func(_ *TypeValidator, v Value) bool { return v.IsString() }, opts)
}

// NumberType accepts any number, integral or not.
func NumberType(opts ...TypeOption) *TypeValidator {
	return newType("number", func(_ *TypeValidator, v Value) bool { return v.IsNumber() }, opts)
}

// IntegerType accepts numbers written as integers; 1.0 is rejected.
func IntegerType(opts ...TypeOption) *TypeValidator {
	return newType("integer", func(_ *TypeValidator, v Value) bool { return v.IsInteger() }, opts)
}

// FloatType accepts numbers written with a fraction or exponent; 1 is rejected.
func FloatType(opts ...TypeOption) *TypeValidator {
	return newType("float", func(_ *TypeValidator, v Value) bool { return v.IsFloat() }, opts)
}

func BooleanType(opts ...TypeOption) *TypeValidator {
	return newType("boolean", func(_ *TypeValidator, v Value) bool { return v.IsBool() }, opts)
}

func ArrayType(opts ...TypeOption) *TypeValidator {
	return newType("array", func(_ *TypeValidator, v Value) bool { return v.IsArray() }, opts)
}

func ObjectType(opts ...TypeOption) *TypeValidator {
	return newType("object", func(_ *TypeValidator, v Value) bool { return v.IsObject() }, opts)
}

// DateType accepts strings that parse under one of the configured layouts.
// Without Formats it uses DateLayout and DateLayoutMillis.
func DateType(opts ...TypeOption) *TypeValidator {
	t := newType("date", func(t *TypeValidator, v Value) bool {
		s, ok := v.AsString()
		if !ok {
			return false
		}
		_, ok = t.parseDate(s)
		return ok
	}, opts)
	if len(t.layouts) == 0 {
		t.layouts = []string{DateLayout, DateLayoutMillis}
	}
	return t
}

// AnyType accepts every value. Null is accepted too.
func AnyType() *TypeValidator {
	return newType("any", func(*TypeValidator, Value) bool { return true }, []TypeOption{Nullable()})
}

// Name reports the checked type.
func (t *TypeValidator) Name() string { return t.name }

// IsNullable reports whether null is accepted.
func (t *TypeValidator) IsNullable() bool { return t.nullable }

// ParseDate parses s with the first matching layout.
func (t *TypeValidator) ParseDate(s string) (time.Time, bool) { return t.parseDate(s) }

func (t *TypeValidator) parseDate(s string) (time.Time, bool) {
	for _, layout := range t.layouts {
		if tm, err := time.Parse(layout, s); err == nil {
			return tm, true
		}
	}
	return time.Time{}, false
}

func (t *TypeValidator) Validate(_ context.Context, v Value) Errors {
	if v.IsNull() && t.nullable {
		return nil
	}
	if t.accept(t, v) {
		return nil
	}
	return errorsAt(Root(), newErrorDetail(KindInvalidValue, t.detailID, nil))
}
