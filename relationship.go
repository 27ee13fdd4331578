package jsonapiv

import (
	"context"
	"strings"
)

// Identifier is a resource identifier: a {type, id} pair.
type Identifier struct {
	Type string
	ID   string
}

func (i Identifier) String() string { return i.Type + ":" + i.ID }

// ExistsFunc reports whether the identified resource exists. A non-nil error
// means the answer is unknown.
type ExistsFunc func(ctx context.Context, id Identifier) (bool, error)

// AcceptableFunc reports whether an existing resource may be related.
type AcceptableFunc func(ctx context.Context, id Identifier) (bool, error)

// RelationshipOption configures HasOne and HasMany.
type RelationshipOption func(*relationship)

// Required makes the "data" member mandatory.
func Required() RelationshipOption { return func(r *relationship) { r.required = true } }

// AllowEmpty controls whether null (has-one) or [] (has-many) is accepted.
// Empty relationships are accepted by default.
func AllowEmpty(allow bool) RelationshipOption {
	return func(r *relationship) { r.allowEmpty = allow }
}

// OrType adds further accepted resource types.
func OrType(types ...string) RelationshipOption {
	return func(r *relationship) {
		for _, t := range types {
			r.addType(t)
		}
	}
}

// Exists installs the existence check run for each identifier.
func Exists(f ExistsFunc) RelationshipOption { return func(r *relationship) { r.exists = f } }

// Acceptable installs the check run after a successful existence check.
func Acceptable(f AcceptableFunc) RelationshipOption {
	return func(r *relationship) { r.acceptable = f }
}

type relationship struct {
	types      []string
	required   bool
	allowEmpty bool
	exists     ExistsFunc
	acceptable AcceptableFunc
}

func newRelationship(expected string, opts []RelationshipOption) relationship {
	r := relationship{allowEmpty: true}
	r.addType(expected)
	for _, o := range opts {
		o(&r)
	}
	if len(r.types) == 0 {
		misconfigured("relationship without an expected type")
	}
	return r
}

func (r *relationship) addType(t string) {
	if t == "" || contains(r.types, t) {
		return
	}
	r.types = append(r.types, t)
}

// ExpectedTypes returns the accepted resource types.
func (r *relationship) ExpectedTypes() []string { return append([]string(nil), r.types...) }

func (r *relationship) IsRequired() bool { return r.required }

func (r *relationship) AllowsEmpty() bool { return r.allowEmpty }

// data extracts the "data" member of a relationship object. done is true
// when validation has nothing more to inspect.
func (r *relationship) data(rel Value) (data Value, errs Errors, done bool) {
	obj, ok := rel.AsObject()
	if !ok {
		return Value{}, errorsAt(Root(), newErrorDetail(KindInvalidValue, "expect-object", nil)), true
	}
	data, ok = obj.Get("data")
	if !ok {
		if r.required {
			return Value{}, errorsAt(Root(), NewError(KindRelationshipRequired, nil)), true
		}
		return Value{}, nil, true
	}
	return data, nil, false
}

// identifier validates one resource identifier object located at v.
func (r *relationship) identifier(ctx context.Context, v Value) Errors {
	obj, ok := v.AsObject()
	if !ok {
		return errorsAt(Root(), newErrorDetail(KindInvalidValue, "expect-identifier", nil))
	}
	var out Errors
	typ := stringMember(obj, "type", &out)
	id := stringMember(obj, "id", &out)
	if !out.IsEmpty() {
		return out
	}
	if !contains(r.types, typ) {
		e := NewError(KindTypeMismatch, map[string]string{
			"actual":   typ,
			"expected": strings.Join(r.types, ", "),
		})
		return errorsAt(PathOf("type"), e)
	}
	ident := Identifier{Type: typ, ID: id}
	if r.exists != nil {
		found, err := r.exists(ctx, ident)
		if err != nil {
			return errorsAt(Root(), NewError(KindDependencyUnavailable, identData(ident)))
		}
		if !found {
			return errorsAt(Root(), NewError(KindNotFound, identData(ident)))
		}
	}
	if r.acceptable != nil {
		ok, err := r.acceptable(ctx, ident)
		if err != nil {
			return errorsAt(Root(), NewError(KindDependencyUnavailable, identData(ident)))
		}
		if !ok {
			return errorsAt(Root(), NewError(KindNotAcceptable, identData(ident)))
		}
	}
	return nil
}

// stringMember reads a mandatory string member, recording failures in errs.
func stringMember(obj *Object, key string, errs *Errors) string {
	m, ok := obj.Get(key)
	if !ok {
		errs.Add(NewError(KindRequired, keyData(key)).WithSource(PathOf(key)))
		return ""
	}
	s, ok := m.AsString()
	if !ok {
		errs.Add(newErrorDetail(KindInvalidValue, "expect-string", nil).WithSource(PathOf(key)))
		return ""
	}
	return s
}

func identData(id Identifier) map[string]string {
	return map[string]string{"type": id.Type, "id": id.ID}
}

// HasOneValidator validates a to-one relationship object.
type HasOneValidator struct{ relationship }

var _ Validator = (*HasOneValidator)(nil)

// HasOne validates {"data": null | {"type", "id"}} relationships.
func HasOne(expectedType string, opts ...RelationshipOption) *HasOneValidator {
	return &HasOneValidator{newRelationship(expectedType, opts)}
}

func (h *HasOneValidator) Validate(ctx context.Context, rel Value) Errors {
	data, errs, done := h.data(rel)
	if done {
		return errs
	}
	at := PathOf("data")
	switch {
	case data.IsNull():
		if !h.allowEmpty {
			return errorsAt(at, NewError(KindRelationshipEmpty, nil))
		}
		return nil
	case data.IsArray():
		return errorsAt(at, NewError(KindHasOneExpected, nil))
	}
	var out Errors
	out.Merge(h.identifier(ctx, data), at)
	return out
}

// HasManyValidator validates a to-many relationship object.
type HasManyValidator struct{ relationship }

var _ Validator = (*HasManyValidator)(nil)

// HasMany validates {"data": [{"type", "id"}, ...]} relationships.
func HasMany(expectedType string, opts ...RelationshipOption) *HasManyValidator {
	return &HasManyValidator{newRelationship(expectedType, opts)}
}

func (h *HasManyValidator) Validate(ctx context.Context, rel Value) Errors {
	data, errs, done := h.data(rel)
	if done {
		return errs
	}
	at := PathOf("data")
	items, ok := data.AsArray()
	if !ok {
		return errorsAt(at, NewError(KindHasManyExpected, nil))
	}
	if len(items) == 0 {
		if !h.allowEmpty {
			return errorsAt(at, NewError(KindRelationshipEmpty, nil))
		}
		return nil
	}
	var out Errors
	for i, it := range items {
		out.Merge(h.identifier(ctx, it), at.Index(i))
	}
	return out
}
