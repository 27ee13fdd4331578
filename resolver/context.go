package resolver

import (
	"context"

	"github.com/pkg/errors"

	"github.com/reoring/jsonapiv"
)

// ErrNoStore is returned by the context predicates when no Store is
// attached. Relationship validators report it as dependency-unavailable.
var ErrNoStore = errors.New("resolver: no store in context")

// storeKey is the context key for the request's Store.
type storeKey struct{}

// WithStore attaches s to ctx so validators built once can resolve against a
// per-request Store.
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

// FromContext retrieves the Store attached by WithStore.
func FromContext(ctx context.Context) (*Store, bool) {
	s, ok := ctx.Value(storeKey{}).(*Store)
	return s, ok && s != nil
}

// RequireStore returns the attached Store or ErrNoStore.
func RequireStore(ctx context.Context) (*Store, error) {
	if s, ok := FromContext(ctx); ok {
		return s, nil
	}
	return nil, ErrNoStore
}

// Exists is a jsonapiv.ExistsFunc resolving against the Store in ctx.
func Exists(ctx context.Context, id jsonapiv.Identifier) (bool, error) {
	s, err := RequireStore(ctx)
	if err != nil {
		return false, err
	}
	return s.Exists(ctx, id)
}

// Acceptable is a jsonapiv.AcceptableFunc resolving against the Store in ctx.
func Acceptable(ctx context.Context, id jsonapiv.Identifier) (bool, error) {
	s, err := RequireStore(ctx)
	if err != nil {
		return false, err
	}
	return s.Acceptable(ctx, id)
}

var (
	_ jsonapiv.ExistsFunc     = Exists
	_ jsonapiv.AcceptableFunc = Acceptable
)
