// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jtext_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/creachadair/jtext"
)

func TestPrinter(t *testing.T) {
	var sb strings.Builder
	p := jtext.NewPrinter(&sb)
	p.SetIndent("\t")
	p.Raw("{")
	p.Indent()
	p.Newline()
	p.Quote("a")
	p.Raw(": ")
	p.Int(-5)
	p.Raw(",")
	p.Newline()
	p.Quote("b")
	p.Raw(": [")
	p.Bool(true)
	p.Raw(", ")
	p.Null()
	p.Raw("]")
	if d := p.Depth(); d != 1 {
		t.Errorf("Depth: got %d, want 1", d)
	}
	p.Dedent()
	p.Dedent() // no effect at depth 0
	p.Newline()
	p.Raw("}")
	if err := p.Flush(); err != nil {
		t.Fatalf("Flush: unexpected error: %v", err)
	}
	const want = "{\n\t\"a\": -5,\n\t\"b\": [true, null]\n}"
	if got := sb.String(); got != want {
		t.Errorf("Output: got %q, want %q", got, want)
	}
}

func TestPrinterFloat(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{-2, "-2.0"},
		{0.5, "0.5"},
		{3.14159, "3.14159"},
		{1e21, "1000000000000000000000.0"},
		{1e-7, "0.0000001"},
	}
	for _, tc := range tests {
		var sb strings.Builder
		p := jtext.NewPrinter(&sb)
		p.Float(tc.input)
		if err := p.Flush(); err != nil {
			t.Errorf("Float(%v): unexpected error: %v", tc.input, err)
		} else if got := sb.String(); got != tc.want {
			t.Errorf("Float(%v): got %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestPrinterErrors(t *testing.T) {
	t.Run("BadValue", func(t *testing.T) {
		for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			var sb strings.Builder
			p := jtext.NewPrinter(&sb)
			p.Raw("[")
			p.Float(v)
			p.Raw("]") // discarded
			if err := p.Err(); !errors.Is(err, jtext.BadValue) {
				t.Errorf("Float(%v): got %v, want %v", v, err, jtext.BadValue)
			}
			if err := p.Flush(); !errors.Is(err, jtext.BadValue) {
				t.Errorf("Flush: got %v, want %v", err, jtext.BadValue)
			}
			if got := sb.String(); got != "" {
				t.Errorf("Output: got %q, want empty", got)
			}
		}
	})
	t.Run("Writer", func(t *testing.T) {
		bad := errors.New("write failed")
		p := jtext.NewPrinter(failWriter{bad})
		p.Raw("null")
		if err := p.Flush(); !errors.Is(err, bad) {
			t.Errorf("Flush: got %v, want %v", err, bad)
		}
		p.Fail(errors.New("ignored"))
		if err := p.Err(); !errors.Is(err, bad) {
			t.Errorf("Err: got %v, want %v", err, bad)
		}
	})
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }
