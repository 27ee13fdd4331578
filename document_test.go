package jsonapiv_test

import (
	"context"
	"reflect"
	"sync"
	"testing"

	"github.com/reoring/jsonapiv"
)

func postsDocument() *jsonapiv.DocumentValidator {
	return jsonapiv.Document(jsonapiv.Resource("posts",
		jsonapiv.WithAttributes(jsonapiv.Attributes().Require("title", "body").Build()),
	))
}

func TestDocument_MissingRequiredAttribute(t *testing.T) {
	ctx := context.Background()
	doc, err := jsonapiv.DecodeJSON(ctx, []byte(`{"data":{"type":"posts","attributes":{"title":"Hi"}}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	errs := postsDocument().Validate(ctx, doc)
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	e := errs[0]
	if e.Code != "required" || e.Pointer() != "/data/attributes/body" || e.Status != 400 {
		t.Fatalf("unexpected error: %+v", e)
	}
	if e.Detail != "The attribute body is required." {
		t.Fatalf("detail: %q", e.Detail)
	}
}

func TestDocument_Envelope(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name     string
		v        *jsonapiv.DocumentValidator
		in       jsonapiv.Value
		codes    []string
		pointers []string
	}{
		{"not an object", postsDocument(), jsonapiv.Array(), []string{"invalid-value"}, []string{"/"}},
		{"missing data", postsDocument(), jsonapiv.Obj("meta", jsonapiv.Obj()), []string{"missing-data"}, []string{"/"}},
		{"null data reaches the resource", postsDocument(), jsonapiv.Obj("data", jsonapiv.Null()), []string{"invalid-value"}, []string{"/data"}},
		{"errors prefixed with data", postsDocument(), jsonapiv.Obj("data", jsonapiv.Obj("type", "users")), []string{"unsupported-type"}, []string{"/data/type"}},
		{"no data validator", jsonapiv.Document(nil), jsonapiv.Obj("data", 1), []string{}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.v.Validate(ctx, tt.in)
			if !reflect.DeepEqual(errs.Codes(), tt.codes) {
				t.Fatalf("codes: got %v want %v", errs.Codes(), tt.codes)
			}
			if !reflect.DeepEqual(errs.Pointers(), tt.pointers) {
				t.Fatalf("pointers: got %v want %v", errs.Pointers(), tt.pointers)
			}
		})
	}
}

func TestRelationshipDocument_PointersStartAtData(t *testing.T) {
	ctx := context.Background()
	v := jsonapiv.RelationshipDocument(jsonapiv.HasMany("tags", jsonapiv.Exists(existsIn("tags:1"))))
	doc := jsonapiv.Obj("data", jsonapiv.Array(ident("tags", "1"), ident("tags", "9"), ident("posts", "1")))
	errs := v.Validate(ctx, doc)
	if got, want := errs.Pointers(), []string{"/data/1", "/data/2/type"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("pointers: got %v want %v", got, want)
	}
	if got, want := errs.Codes(), []string{"not-found", "unsupported-type"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("codes: got %v want %v", got, want)
	}
}

func TestRelationshipDocument_MissingData(t *testing.T) {
	v := jsonapiv.RelationshipDocument(jsonapiv.HasOne("users"))
	errs := v.Validate(context.Background(), jsonapiv.Obj())
	if got := errs.Codes(); !reflect.DeepEqual(got, []string{"missing-data"}) {
		t.Fatalf("codes: %v", got)
	}
}

func TestDocument_ConcurrentUseIsIndependent(t *testing.T) {
	ctx := context.Background()
	v := postsDocument()
	good := jsonapiv.Obj("data", jsonapiv.Obj("type", "posts", "attributes", jsonapiv.Obj("title", "a", "body", "b")))
	bad := jsonapiv.Obj("data", jsonapiv.Obj("type", "posts", "attributes", jsonapiv.Obj()))

	var wg sync.WaitGroup
	failures := make(chan string, 64)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				if errs := v.Validate(ctx, good); !errs.IsEmpty() {
					failures <- errs.Error()
				}
				return
			}
			if errs := v.Validate(ctx, bad); errs.Len() != 2 {
				failures <- errs.Error()
			}
		}(i)
	}
	wg.Wait()
	close(failures)
	for f := range failures {
		t.Errorf("unexpected result: %s", f)
	}
}
