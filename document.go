package jsonapiv

import "context"

// DocumentValidator checks the top-level envelope of a request document and
// delegates its primary data.
type DocumentValidator struct {
	data  Validator
	whole bool
}

var _ Validator = (*DocumentValidator)(nil)

// Document validates {"data": ...} documents. data, when non-nil, receives
// the "data" member and its errors are located under /data.
func Document(data Validator) *DocumentValidator {
	return &DocumentValidator{data: data}
}

// RelationshipDocument validates relationship endpoint documents, where the
// document itself is the relationship object. rel locates its own errors
// under /data.
func RelationshipDocument(rel Validator) *DocumentValidator {
	if rel == nil {
		misconfigured("relationship document without a relationship validator")
	}
	return &DocumentValidator{data: rel, whole: true}
}

func (d *DocumentValidator) Validate(ctx context.Context, v Value) Errors {
	obj, ok := v.AsObject()
	if !ok {
		return errorsAt(Root(), newErrorDetail(KindInvalidValue, "expect-object", nil))
	}
	data, ok := obj.Get("data")
	if !ok {
		return errorsAt(Root(), NewError(KindMissingData, nil))
	}
	if d.data == nil {
		return nil
	}
	if d.whole {
		return d.data.Validate(ctx, v)
	}
	var out Errors
	out.Merge(d.data.Validate(ctx, data), PathOf("data"))
	return out
}
