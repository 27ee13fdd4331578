package jsonapiv

import "context"

// Validator checks one node of a document. Validate returns the failures
// located relative to v; parents merge them under their own segment.
// Implementations hold configuration only and are safe for concurrent use.
type Validator interface {
	Validate(ctx context.Context, v Value) Errors
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(ctx context.Context, v Value) Errors

func (f ValidatorFunc) Validate(ctx context.Context, v Value) Errors { return f(ctx, v) }

// IsValid runs val against v and reports whether no error was produced.
// Each call starts from an empty collection.
func IsValid(ctx context.Context, val Validator, v Value) (bool, Errors) {
	errs := val.Validate(ctx, v)
	return errs.IsEmpty(), errs
}

func errorsAt(p Path, e Error) Errors { return Errors{e.WithSource(p)} }

func keyData(key string) map[string]string { return map[string]string{"key": key} }
