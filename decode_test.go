package jsonapiv_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/reoring/jsonapiv"
	"github.com/reoring/jsonapiv/source/gojson"
)

func decodeErrors(t *testing.T, err error) jsonapiv.Errors {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error")
	}
	errs, ok := jsonapiv.AsErrors(err)
	if !ok {
		t.Fatalf("expected Errors, got %T: %v", err, err)
	}
	return errs
}

// withDrivers runs fn once per JSON driver.
func withDrivers(t *testing.T, fn func(t *testing.T)) {
	t.Run("encoding/json", func(t *testing.T) {
		jsonapiv.UseDefaultJSONDriver()
		fn(t)
	})
	t.Run("go-json", func(t *testing.T) {
		jsonapiv.SetJSONDriver(gojson.Driver())
		defer jsonapiv.UseDefaultJSONDriver()
		fn(t)
	})
}

func TestDecodeJSON_DuplicateMemberRejected(t *testing.T) {
	withDrivers(t, func(t *testing.T) {
		ctx := context.Background()
		cases := []struct {
			in      string
			pointer string
		}{
			{`{"a":1,"a":2}`, "/a"},
			{`{"data":{"attributes":{"x":1,"y":[],"x":2}}}`, "/data/attributes/x"},
			{`{"data":[{"id":"1"},{"id":"2","id":"3"}]}`, "/data/1/id"},
		}
		for _, c := range cases {
			_, err := jsonapiv.DecodeJSON(ctx, []byte(c.in))
			errs := decodeErrors(t, err)
			if len(errs) != 1 || errs[0].Code != jsonapiv.CodeDuplicateKey || errs[0].Pointer() != c.pointer {
				t.Fatalf("%s: got %v", c.in, errs)
			}
		}
	})
}

func TestDecodeJSON_DuplicateMemberWarnKeepsLast(t *testing.T) {
	ctx := context.Background()
	var warned []jsonapiv.Error
	opt := jsonapiv.DefaultDecodeOpt()
	opt.OnDuplicateKey = jsonapiv.SeverityWarn
	opt.Warnings = func(e jsonapiv.Error) { warned = append(warned, e) }

	v, err := jsonapiv.DecodeJSON(ctx, []byte(`{"a":1,"b":true,"a":2}`), opt)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(warned) != 1 || warned[0].Pointer() != "/a" {
		t.Fatalf("warnings: %v", warned)
	}
	a, _ := v.Get("a")
	if !a.Equal(jsonapiv.Int(2)) {
		t.Fatalf("last occurrence should win, got %s", a)
	}
	obj, _ := v.AsObject()
	if got := obj.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("keys: %v", got)
	}
}

func TestDecodeJSON_DuplicateMemberIgnored(t *testing.T) {
	opt := jsonapiv.DefaultDecodeOpt()
	opt.OnDuplicateKey = jsonapiv.SeverityIgnore
	if _, err := jsonapiv.DecodeJSON(context.Background(), []byte(`{"a":1,"a":2}`), opt); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestDecodeJSON_PreservesOrderAndNumbers(t *testing.T) {
	withDrivers(t, func(t *testing.T) {
		v, err := jsonapiv.DecodeJSON(context.Background(), []byte(`{"z":1,"a":1.0,"m":1e2,"s":"x","n":null,"b":false}`))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		obj, _ := v.AsObject()
		if got := obj.Keys(); !reflect.DeepEqual(got, []string{"z", "a", "m", "s", "n", "b"}) {
			t.Fatalf("keys: %v", got)
		}
		z, _ := v.Get("z")
		a, _ := v.Get("a")
		m, _ := v.Get("m")
		if !z.IsInteger() || !a.IsFloat() || !m.IsFloat() {
			t.Fatalf("number classes: z=%v a=%v m=%v", z.IsInteger(), a.IsFloat(), m.IsFloat())
		}
		if z.Equal(a) {
			t.Fatalf("1 and 1.0 must differ")
		}
		if got := v.String(); got != `{"z":1,"a":1.0,"m":1e2,"s":"x","n":null,"b":false}` {
			t.Fatalf("round trip: %s", got)
		}
	})
}

func TestDecodeJSON_Malformed(t *testing.T) {
	ctx := context.Background()
	for _, in := range []string{``, `{"a":}`, `{"a":1`, `{} {}`, `[1,2]x`} {
		_, err := jsonapiv.DecodeJSON(ctx, []byte(in))
		errs := decodeErrors(t, err)
		if got := errs.Codes(); !reflect.DeepEqual(got, []string{"parse-error"}) {
			t.Fatalf("%q: codes %v", in, got)
		}
		if errs[0].Status != jsonapiv.StatusBadRequest {
			t.Fatalf("%q: status %d", in, errs[0].Status)
		}
	}
}

func TestDecodeJSON_Limits(t *testing.T) {
	ctx := context.Background()

	opt := jsonapiv.DefaultDecodeOpt()
	opt.MaxBytes = 4
	_, err := jsonapiv.DecodeJSON(ctx, []byte(`{"a":1}`), opt)
	errs := decodeErrors(t, err)
	if errs[0].Meta["maxBytes"] != int64(4) {
		t.Fatalf("meta: %v", errs[0].Meta)
	}

	_, err = jsonapiv.DecodeJSONReader(ctx, strings.NewReader(`{"a":1}`), opt)
	if errs := decodeErrors(t, err); errs[0].Code != "parse-error" {
		t.Fatalf("reader: %v", errs)
	}

	opt = jsonapiv.DefaultDecodeOpt()
	opt.MaxDepth = 2
	_, err = jsonapiv.DecodeJSON(ctx, []byte(`[[[1]]]`), opt)
	errs = decodeErrors(t, err)
	if errs[0].Pointer() != "/0/0" || !strings.Contains(errs[0].Detail, "max depth") {
		t.Fatalf("depth: %+v", errs[0])
	}
	if _, err := jsonapiv.DecodeJSON(ctx, []byte(`[[1]]`), opt); err != nil {
		t.Fatalf("depth 2 should pass: %v", err)
	}
}

func TestDecodeSource_EnforcesMaxBytes(t *testing.T) {
	withDrivers(t, func(t *testing.T) {
		ctx := context.Background()
		opt := jsonapiv.DefaultDecodeOpt()
		opt.MaxBytes = 8
		body := []byte(`{"data":"xxxxxxxxxxxxxxxxxxxxxxxx"}`)
		_, err := jsonapiv.DecodeSource(ctx, jsonapiv.CurrentJSONDriver().NewBytes(body), opt)
		errs := decodeErrors(t, err)
		if errs[0].Code != "parse-error" || errs[0].Meta["maxBytes"] != int64(8) {
			t.Fatalf("unexpected: %+v", errs[0])
		}

		opt.MaxBytes = int64(len(body))
		if _, err := jsonapiv.DecodeSource(ctx, jsonapiv.CurrentJSONDriver().NewBytes(body), opt); err != nil {
			t.Fatalf("body within the cap: %v", err)
		}
	})
}

func TestDecodeJSONReader_Decodes(t *testing.T) {
	v, err := jsonapiv.DecodeJSONReader(context.Background(), strings.NewReader(`{"data":null}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d, ok := v.Get("data"); !ok || !d.IsNull() {
		t.Fatalf("data: %v", v)
	}
}

func TestDecodeJSON_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := jsonapiv.DecodeJSON(ctx, []byte(`{"data":{}}`))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDecodeJSON_DecodedDocumentValidates(t *testing.T) {
	ctx := context.Background()
	v := jsonapiv.Document(jsonapiv.Resource("posts", jsonapiv.ExpectID(5)))
	doc, err := jsonapiv.DecodeJSON(ctx, []byte(`{"data":{"type":"posts","id":5}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if errs := v.Validate(ctx, doc); !errs.IsEmpty() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	doc, _ = jsonapiv.DecodeJSON(ctx, []byte(`{"data":{"type":"posts","id":5.0}}`))
	if got := v.Validate(ctx, doc).Codes(); !reflect.DeepEqual(got, []string{"unsupported-id"}) {
		t.Fatalf("5.0 must not match 5: %v", got)
	}
}
