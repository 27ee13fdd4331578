package jsonapiv_test

import (
	"testing"

	"github.com/reoring/jsonapiv"
)

func TestPath_PointerEscaping(t *testing.T) {
	tests := []struct {
		path jsonapiv.Path
		want string
	}{
		{jsonapiv.Root(), "/"},
		{jsonapiv.PathOf("data", "attributes", "title"), "/data/attributes/title"},
		{jsonapiv.PathOf("a/b", "m~n"), "/a~1b/m~0n"},
		{jsonapiv.PathOf("data").Index(3).Field("type"), "/data/3/type"},
	}
	for _, tt := range tests {
		if got := tt.path.Pointer(); got != tt.want {
			t.Errorf("got %q want %q", got, tt.want)
		}
	}
}

func TestPath_ParsePointerRoundTrip(t *testing.T) {
	for _, p := range []string{"/", "/data", "/a~1b/m~0n/0"} {
		if got := jsonapiv.ParsePointer(p).Pointer(); got != p {
			t.Errorf("round trip %q -> %q", p, got)
		}
	}
	if !jsonapiv.ParsePointer("").IsRoot() {
		t.Fatalf("empty pointer is the root")
	}
}

func TestPath_JoinDoesNotAlias(t *testing.T) {
	base := jsonapiv.PathOf("data")
	a := base.Field("a")
	b := base.Field("b")
	if a.Pointer() != "/data/a" || b.Pointer() != "/data/b" {
		t.Fatalf("sibling paths interfere: %s %s", a, b)
	}
	if !base.Join(jsonapiv.Root()).Equal(base) || !jsonapiv.Root().Join(base).Equal(base) {
		t.Fatalf("joining with root must be identity")
	}
}
