package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/jsonapiv/internal/console"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func baseOptions() *validateOptions {
	cfg := defaultFileConfig()
	return &validateOptions{
		typ:         "posts",
		require:     []string{"title", "body"},
		hasOne:      []string{"author:users|admins"},
		lang:        cfg.Language,
		maxDepth:    cfg.MaxDepth,
		duplicates:  cfg.DuplicateKeys,
		concurrency: 2,
	}
}

func TestRunValidate_ConsoleOutput(t *testing.T) {
	console.Styled = false
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `{"data":{"type":"posts","attributes":{"title":"Hi","body":"x"},"relationships":{"author":{"data":{"type":"admins","id":"1"}}}}}`)
	bad := writeFile(t, dir, "bad.yaml", "data:\n  type: posts\n  attributes:\n    title: Hi\n")

	var out bytes.Buffer
	err := runValidate(context.Background(), &out, baseOptions(), []string{good, bad})
	if err != errInvalid {
		t.Fatalf("expected errInvalid, got %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	want := []string{
		"✓ " + good,
		bad + ":/data/attributes/body: error[400 required]: The attribute body is required.",
	}
	if len(lines) != len(want) {
		t.Fatalf("output:\n%s", out.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d:\n got %q\nwant %q", i, lines[i], want[i])
		}
	}
}

func TestRunValidate_JSONOutput(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "dup.json", `{"data":{"type":"posts","type":"posts"}}`)
	o := baseOptions()
	o.jsonOut = true

	var out bytes.Buffer
	if err := runValidate(context.Background(), &out, o, []string{f}); err != errInvalid {
		t.Fatalf("expected errInvalid, got %v", err)
	}
	var res jsonResult
	if err := gojson.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal %q: %v", out.String(), err)
	}
	if res.Valid || res.Status != "400" || len(res.Errors) != 1 || res.Errors[0].Code != "duplicate-key" {
		t.Fatalf("result: %+v", res)
	}
	if res.Errors[0].Source.Pointer != "/data/type" {
		t.Fatalf("pointer: %s", res.Errors[0].Source.Pointer)
	}
}

func TestRunValidate_WarnDuplicates(t *testing.T) {
	console.Styled = false
	dir := t.TempDir()
	f := writeFile(t, dir, "dup.json", `{"data":{"type":"posts","type":"posts","attributes":{"title":"a","body":"b"}}}`)
	o := baseOptions()
	o.duplicates = "warn"

	var out bytes.Buffer
	if err := runValidate(context.Background(), &out, o, []string{f}); err != nil {
		t.Fatalf("warnings must not fail validation: %v", err)
	}
	if !strings.Contains(out.String(), "⚠ "+f+":/data/type: error[400 duplicate-key]") {
		t.Fatalf("output: %s", out.String())
	}
}

func TestRunValidate_MissingFile(t *testing.T) {
	var out bytes.Buffer
	err := runValidate(context.Background(), &out, baseOptions(), []string{filepath.Join(t.TempDir(), "nope.json")})
	if err == nil || err == errInvalid || !strings.Contains(err.Error(), "nope.json") {
		t.Fatalf("unexpected: %v", err)
	}
}

func TestBuildValidator(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *validateOptions)
		wantErr string
	}{
		{"ok", func(*validateOptions) {}, ""},
		{"missing type", func(o *validateOptions) { o.typ = "" }, "--type is required"},
		{"bad relationship", func(o *validateOptions) { o.hasMany = []string{"tags"} }, "expected name:type"},
		{"empty relationship type", func(o *validateOptions) { o.hasOne = []string{"author:"} }, "missing type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := baseOptions()
			tt.mutate(o)
			_, err := buildValidator(o)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("got %v want %q", err, tt.wantErr)
			}
		})
	}
}

func TestBuildValidator_AllowListRejectsUnknownAttributes(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "post.json", `{"data":{"type":"posts","id":"5","attributes":{"title":"a","body":"b","color":"red"}}}`)
	o := baseOptions()
	o.allow = []string{}
	o.id = "5"
	o.jsonOut = true

	var out bytes.Buffer
	if err := runValidate(context.Background(), &out, o, []string{f}); err != errInvalid {
		t.Fatalf("expected errInvalid, got %v", err)
	}
	var res jsonResult
	if err := gojson.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(res.Errors) != 1 || res.Errors[0].Code != "not-recognised" || res.Errors[0].Source.Pointer != "/data/attributes/color" {
		t.Fatalf("result: %+v", res)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := loadConfig(filepath.Join(dir, defaultConfigFile), false)
	if err != nil || cfg != defaultFileConfig() {
		t.Fatalf("missing implicit config should yield defaults: %+v %v", cfg, err)
	}
	if _, err := loadConfig(filepath.Join(dir, "missing.yaml"), true); err == nil {
		t.Fatalf("missing explicit config must fail")
	}

	p := writeFile(t, dir, "cfg.yaml", "language: ja\nmax_depth: 8\nduplicate_keys: warn\n")
	cfg, err = loadConfig(p, true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Language != "ja" || cfg.MaxDepth != 8 || cfg.DuplicateKeys != "warn" || cfg.Concurrency != 4 {
		t.Fatalf("config: %+v", cfg)
	}

	p = writeFile(t, dir, "bad.yaml", "duplicate_keys: sometimes\n")
	if _, err := loadConfig(p, true); err == nil || !strings.Contains(err.Error(), "duplicate_keys") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateCmd_FlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "cfg.yaml", "max_depth: 8\nconcurrency: 3\n")
	cmd := newValidateCmd()
	if err := cmd.ParseFlags([]string{"--type", "posts", "--config", p, "--max-depth", "2"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := loadConfig(p, true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	o := &validateOptions{maxDepth: 2}
	o.merge(cmd, cfg)
	if o.maxDepth != 2 || o.concurrency != 3 || o.duplicates != "error" {
		t.Fatalf("merged: %+v", o)
	}
}
