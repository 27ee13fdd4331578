package jsonapiv

import "context"

// ResourceValidator validates a resource object against the endpoint's
// expected type and id, then delegates "attributes" and "relationships".
type ResourceValidator struct {
	expectedType  string
	expectedID    *Value
	attributes    Validator
	relationships Validator
}

var _ Validator = (*ResourceValidator)(nil)

// ResourceOption configures a ResourceValidator.
type ResourceOption func(*ResourceValidator)

// ExpectID sets the id the resource must carry (update requests). id must be
// a string or an integer; comparison is exact, so "5" does not match 5.
func ExpectID(id any) ResourceOption {
	return func(r *ResourceValidator) {
		v, err := FromAny(id)
		if err != nil || !(v.IsString() || v.IsInteger()) {
			misconfigured("expected id must be a string or an integer, got %T", id)
		}
		r.expectedID = &v
	}
}

// WithAttributes sets the validator for the "attributes" member.
func WithAttributes(v Validator) ResourceOption {
	return func(r *ResourceValidator) { r.attributes = v }
}

// WithRelationships sets the validator for the "relationships" member,
// usually built with Relationships().
func WithRelationships(v Validator) ResourceOption {
	return func(r *ResourceValidator) { r.relationships = v }
}

// Resource validates resource objects of expectedType. Without ExpectID it
// suits create requests where the id may be absent.
func Resource(expectedType string, opts ...ResourceOption) *ResourceValidator {
	if expectedType == "" {
		misconfigured("resource validator without an expected type")
	}
	r := &ResourceValidator{expectedType: expectedType}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *ResourceValidator) ExpectedType() string { return r.expectedType }

func (r *ResourceValidator) HasExpectedID() bool { return r.expectedID != nil }

// ExpectedID returns the configured id. Calling it on a validator built
// without ExpectID is a programming error and panics.
func (r *ResourceValidator) ExpectedID() Value {
	if r.expectedID == nil {
		misconfigured("expected id requested but none was set")
	}
	return *r.expectedID
}

func (r *ResourceValidator) Validate(ctx context.Context, v Value) Errors {
	obj, ok := v.AsObject()
	if !ok {
		return errorsAt(Root(), newErrorDetail(KindInvalidValue, "expect-object", nil))
	}
	var out Errors
	out.Add(r.validateType(obj)...)
	if r.HasExpectedID() {
		out.Add(r.validateID(obj)...)
	}
	if attrs, ok := obj.Get("attributes"); ok && r.attributes != nil {
		out.Merge(r.attributes.Validate(ctx, attrs), PathOf("attributes"))
	}
	if rels, ok := obj.Get("relationships"); ok && r.relationships != nil {
		out.Merge(r.relationships.Validate(ctx, rels), PathOf("relationships"))
	}
	return out
}

func (r *ResourceValidator) validateType(obj *Object) Errors {
	at := PathOf("type")
	m, ok := obj.Get("type")
	if !ok {
		return errorsAt(at, NewError(KindRequired, keyData("type")))
	}
	typ, ok := m.AsString()
	if !ok {
		return errorsAt(at, newErrorDetail(KindInvalidValue, "expect-string", nil))
	}
	if typ != r.expectedType {
		return errorsAt(at, NewError(KindTypeConflict, map[string]string{
			"actual":   typ,
			"expected": r.expectedType,
		}))
	}
	return nil
}

func (r *ResourceValidator) validateID(obj *Object) Errors {
	at := PathOf("id")
	m, ok := obj.Get("id")
	if !ok {
		return errorsAt(at, NewError(KindRequired, keyData("id")))
	}
	want := r.ExpectedID()
	if !m.Equal(want) {
		return errorsAt(at, NewError(KindIDConflict, map[string]string{
			"actual":   displayValue(m),
			"expected": displayValue(want),
		}))
	}
	return nil
}

// displayValue renders strings bare and everything else as JSON.
func displayValue(v Value) string {
	if s, ok := v.AsString(); ok {
		return s
	}
	return v.String()
}
