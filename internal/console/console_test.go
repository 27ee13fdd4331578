package console

import (
	"strings"
	"testing"

	"github.com/reoring/jsonapiv"
)

func TestFormatValidationError(t *testing.T) {
	Styled = false
	e := jsonapiv.NewError(jsonapiv.KindRequired, map[string]string{"key": "body"}).
		WithSource(jsonapiv.PathOf("data", "attributes", "body"))
	got := FormatValidationError("post.json", e)
	want := "post.json:/data/attributes/body: error[400 required]: The member body is required."
	if got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestMessages(t *testing.T) {
	Styled = false
	tests := []struct {
		got  string
		want string
	}{
		{FormatSuccessMessage("ok"), "✓ ok"},
		{FormatInfoMessage("note"), "ℹ note"},
		{FormatWarningMessage("careful"), "⚠ careful"},
		{FormatErrorMessage("bad"), "✗ bad"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q want %q", tt.got, tt.want)
		}
	}
}

func TestRenderSummary(t *testing.T) {
	Styled = false
	out := RenderSummary([]SummaryRow{
		{File: "a.json", Status: "ok", Errors: 0},
		{File: "long-name.json", Status: "409", Errors: 2},
	})
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines: %q", lines)
	}
	if lines[0] != "FILE            STATUS  ERRORS" {
		t.Fatalf("header: %q", lines[0])
	}
	if lines[2] != "long-name.json  409     2" {
		t.Fatalf("row: %q", lines[2])
	}
	if RenderSummary(nil) != "" {
		t.Fatalf("empty summary should render nothing")
	}
}
