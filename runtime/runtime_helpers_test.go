package runtime

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sergev/lispy/lang"
)

func TestReadFileSkippingShebang(t *testing.T) {
	dir := t.TempDir()

	withShebang := filepath.Join(dir, "script.lspy")
	if err := os.WriteFile(withShebang, []byte("#!/usr/bin/env lispy\n(+ 1 2)\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	data, err := readFileSkippingShebang(withShebang)
	if err != nil {
		t.Fatalf("readFileSkippingShebang error: %v", err)
	}
	if string(data) != "(+ 1 2)\n" {
		t.Fatalf("expected shebang to be stripped, got %q", data)
	}

	onlyShebang := filepath.Join(dir, "only_shebang.lspy")
	if err := os.WriteFile(onlyShebang, []byte("#!/bin/true"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	data, err = readFileSkippingShebang(onlyShebang)
	if err != nil {
		t.Fatalf("readFileSkippingShebang error: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty body for shebang-only script, got %q", data)
	}
}

func TestEvaluateFile(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "prog.lspy")
	src := "(def {xs} {1 2 3})\n(+ (len xs) 39)\n"
	if err := os.WriteFile(script, []byte(src), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}

	ev := NewEvaluator()
	val, err := EvaluateFile(ev, script)
	if err != nil {
		t.Fatalf("EvaluateFile error: %v", err)
	}
	if val.String() != "42" {
		t.Fatalf("expected 42, got %v", val)
	}

	if _, err := EvaluateFile(ev, filepath.Join(dir, "missing.lspy")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestEvaluateStringResults(t *testing.T) {
	ev := NewEvaluator()

	val, err := EvaluateString(ev, "(head {}) (+ 1 2)")
	if err != nil {
		t.Fatalf("EvaluateString error: %v", err)
	}
	if !lang.IsError(val) || !strings.Contains(val.Err(), "empty list") {
		t.Fatalf("expected first error to stop evaluation, got %v", val)
	}

	if _, err := EvaluateString(ev, "(+ 1"); err == nil || !strings.Contains(err.Error(), "unterminated") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestSetArgvProducesQuotedList(t *testing.T) {
	env := lang.NewEnv(nil)
	SetArgv(env, []string{"foo", "bar"})

	val := env.Get("*argv*")
	if val.Type != lang.TypeQExpr || val.String() != "{foo bar}" {
		t.Fatalf("unexpected argv contents: %v", val)
	}
}

func TestEvaluateLineForms(t *testing.T) {
	ev := NewEvaluator()
	cases := []struct {
		src, want string
	}{
		{"+ 1 2", "3"},
		{"(+ 1 2)", "3"},
		{"(def {x}\n1) (+ x 1)", "2"},
		{"head {1 2}", "{1}"},
	}
	for _, tc := range cases {
		val, err := EvaluateLine(ev, tc.src)
		if err != nil {
			t.Fatalf("EvaluateLine(%q) error: %v", tc.src, err)
		}
		if val.String() != tc.want {
			t.Fatalf("%q => %s, want %s", tc.src, val, tc.want)
		}
	}
}
