package source_test

import (
	"context"
	"testing"

	"github.com/reoring/jsonapiv"
	_ "github.com/reoring/jsonapiv/source"
)

func TestImportSelectsGoJSON(t *testing.T) {
	if got := jsonapiv.CurrentJSONDriver().Name(); got != "go-json" {
		t.Fatalf("driver: %s", got)
	}
	v, err := jsonapiv.DecodeJSON(context.Background(), []byte(`{"data":{"type":"posts","id":"1"}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	data, _ := v.Get("data")
	obj, _ := data.AsObject()
	if keys := obj.Keys(); len(keys) != 2 || keys[0] != "type" || keys[1] != "id" {
		t.Fatalf("keys: %v", keys)
	}
}
