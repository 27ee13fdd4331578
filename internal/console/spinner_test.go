package console

import (
	"bytes"
	"testing"
)

func TestSpinnerDisabledIsNoop(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner("checking", &buf, false)
	if s.Enabled() {
		t.Fatal("spinner should be disabled")
	}
	s.Start()
	s.Update("still checking")
	s.Stop()
	if buf.Len() != 0 {
		t.Fatalf("disabled spinner wrote %q", buf.String())
	}
}

func TestSpinnerEnabledWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner("checking", &buf, true)
	if !s.Enabled() {
		t.Fatal("spinner should be enabled")
	}
	s.Update("two files")
	if got := s.s.Suffix; got != " two files" {
		t.Fatalf("suffix = %q", got)
	}
}
