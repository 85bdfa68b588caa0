// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creachadair/jtext"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

const (
	messy     = `{"b":[1,2],"a":{"c":null, "d": [{"e": 0.5}]}}`
	formatted = `{
  "b": [1, 2],
  "a": {
    "c": null,
    "d": [
      {
        "e": 0.5
      }
    ]
  }
}
`
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		cfg   settings
		input string
		want  string
	}{
		{"Tree", settings{Indent: "  "}, messy, formatted},
		{"Stream", settings{Indent: "  ", Stream: true}, messy, formatted},
		{"Relaxed", settings{Indent: "  ", Relaxed: true},
			"// comment\n{\"b\":[1,2,],\"a\":{\"c\":null, /* x */ \"d\": [{\"e\": 0.5}]},}", formatted},
		{"Tabs", settings{Indent: "\t"}, `[{"a": 1}]`, "[\n\t{\n\t\t\"a\": 1\n\t}\n]\n"},
		{"Idempotent", settings{Indent: "  "}, formatted, formatted},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.cfg.format([]byte(tc.input))
			if err != nil {
				t.Fatalf("format: unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, string(got)); diff != "" {
				t.Errorf("format (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestFormatErrors(t *testing.T) {
	tests := []struct {
		cfg   settings
		input string
		kind  jtext.ErrorKind
	}{
		{settings{}, `{"a": 1,}`, jtext.BadKey},
		{settings{Stream: true}, `{"a": 1,}`, jtext.BadKey},
		{settings{}, `[1] 2`, jtext.ExtraInput},
		{settings{Stream: true}, `[1e3]`, jtext.Exponent},
		{settings{Relaxed: true}, `{"a": }`, jtext.BadInput},
		{settings{Relaxed: true}, `"x"`, jtext.Unexpected},
	}
	for _, tc := range tests {
		got, err := tc.cfg.format([]byte(tc.input))
		if !errors.Is(err, tc.kind) {
			t.Errorf("format %#q: got %q, %v; want %v", tc.input, got, err, tc.kind)
		}
	}
}

// runCommand executes the root command with the given arguments and stdin,
// and returns its standard output.
func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	newLogger = func(bool) (*zap.Logger, error) { return zaptest.NewLogger(t), nil }

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	broken := filepath.Join(dir, "broken.json")
	for name, text := range map[string]string{good: formatted, bad: messy, broken: `{"x": tru}`} {
		if err := os.WriteFile(name, []byte(text), 0644); err != nil {
			t.Fatalf("Write input: %v", err)
		}
	}

	t.Run("Stdin", func(t *testing.T) {
		out, err := runCommand(t, messy)
		if err != nil {
			t.Fatalf("Execute: unexpected error: %v", err)
		}
		if diff := cmp.Diff(formatted, out); diff != "" {
			t.Errorf("Output (-want, +got):\n%s", diff)
		}
	})

	t.Run("Check", func(t *testing.T) {
		out, err := runCommand(t, "", "--check", good, bad)
		if err == nil {
			t.Error("Execute: got nil, want error")
		}
		if out != bad+"\n" {
			t.Errorf("Output: got %q, want %q", out, bad+"\n")
		}
	})

	t.Run("Broken", func(t *testing.T) {
		if _, err := runCommand(t, "", "--stream", broken); err == nil {
			t.Error("Execute: got nil, want error")
		}
	})

	t.Run("Conflict", func(t *testing.T) {
		if _, err := runCommand(t, "", "--stream", "--relaxed", good); err == nil {
			t.Error("Execute: got nil, want error")
		}
	})

	t.Run("InPlace", func(t *testing.T) {
		out, err := runCommand(t, "", "-w", good, bad)
		if err != nil {
			t.Fatalf("Execute: unexpected error: %v", err)
		}
		if out != "" {
			t.Errorf("Output: got %q, want empty", out)
		}
		for _, name := range []string{good, bad} {
			data, err := os.ReadFile(name)
			if err != nil {
				t.Fatalf("Read %q: %v", name, err)
			}
			if diff := cmp.Diff(formatted, string(data)); diff != "" {
				t.Errorf("File %q (-want, +got):\n%s", name, diff)
			}
		}
		if _, err := runCommand(t, "", "--check", good, bad); err != nil {
			t.Errorf("Check after rewrite: unexpected error: %v", err)
		}
	})
}
