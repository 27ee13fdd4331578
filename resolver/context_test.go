package resolver_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/reoring/jsonapiv"
	"github.com/reoring/jsonapiv/resolver"
)

func TestContextPredicates(t *testing.T) {
	v := jsonapiv.HasOne("users", jsonapiv.Exists(resolver.Exists), jsonapiv.Acceptable(resolver.Acceptable))
	rel := jsonapiv.Obj("data", jsonapiv.Obj("type", "users", "id", "2"))

	errs := v.Validate(context.Background(), rel)
	if got := errs.Codes(); !reflect.DeepEqual(got, []string{"dependency-unavailable"}) {
		t.Fatalf("without a store: %v", got)
	}

	var calls int64
	ctx := resolver.WithStore(context.Background(), userStore(&calls))
	errs = v.Validate(ctx, rel)
	if got := errs.Codes(); !reflect.DeepEqual(got, []string{"invalid"}) {
		t.Fatalf("inactive user should be rejected: %v", got)
	}
	if errs[0].Status != jsonapiv.StatusUnprocessable {
		t.Fatalf("status: %d", errs[0].Status)
	}
}

func TestRequireStore(t *testing.T) {
	if _, err := resolver.RequireStore(context.Background()); !errors.Is(err, resolver.ErrNoStore) {
		t.Fatalf("expected ErrNoStore, got %v", err)
	}
	s := resolver.New()
	got, err := resolver.RequireStore(resolver.WithStore(context.Background(), s))
	if err != nil || got != s {
		t.Fatalf("got %v %v", got, err)
	}
}
