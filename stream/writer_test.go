// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package stream_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/creachadair/jtext"
	"github.com/creachadair/jtext/stream"
	"github.com/creachadair/jtext/tree"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

func TestWriterMatchesSerialize(t *testing.T) {
	value := tree.ArrayValue(tree.NewArray(
		tree.ArrayValue(tree.NewArray(tree.Int32(1))),
		tree.Int32(2),
	))

	want := tree.NewObject().
		AddString("name", "jtext").
		AddInt32("count", 3).
		AddInt64("big", 1<<40).
		AddFloat64("ratio", 0.5).
		AddBool("ok", true).
		AddNull("none")
	want.AddArray("list").AppendInt32(1).AppendInt32(2).AppendString("three")
	want.AddObject("nested").AddArray("a").AppendObject().AddString("b", "c")
	want.AddObject("empty")
	want.AddArray("emptyList")
	want.Add("value", value)

	var sb strings.Builder
	w := stream.NewObjectWriter(jtext.NewPrinter(&sb), stream.AutoFlush())
	w.WriteString("name", "jtext")
	w.WriteInt32("count", 3)
	w.WriteInt64("big", 1<<40)
	w.WriteFloat64("ratio", 0.5)
	w.WriteBool("ok", true)
	w.WriteNull("none")

	list := w.WriteArray("list", stream.SingleLine())
	list.WriteInt32(1)
	list.WriteInt64(2)
	list.WriteString("three")
	if err := list.Close(); err != nil {
		t.Fatalf("Close list: unexpected error: %v", err)
	}

	nested := w.WriteObject("nested")
	a := nested.WriteArray("a")
	elt := a.WriteObject()
	elt.WriteString("b", "c")
	elt.Close()
	a.Close()
	nested.Close()

	w.WriteObject("empty").Close()
	w.WriteArray("emptyList").Close()
	w.WriteValue("value", value)
	if err := w.Close(); err != nil {
		t.Fatalf("Close: unexpected error: %v", err)
	}

	wantText := strings.TrimSuffix(tree.Format(tree.ObjectValue(want)), "\n")
	if diff := cmp.Diff(wantText, sb.String()); diff != "" {
		t.Errorf("Writer output (-want, +got):\n%s", diff)
	}

	// The output parses back to the same value.
	got, err := tree.Parse(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	if diff := cmp.Diff(tree.ObjectValue(want), got, equalValues); diff != "" {
		t.Errorf("Parsed output (-want, +got):\n%s", diff)
	}
}

func TestWriterSingleLine(t *testing.T) {
	var sb strings.Builder
	p := jtext.NewPrinter(&sb)
	w := stream.NewArrayWriter(p, stream.SingleLine())
	w.WriteInt32(1)
	obj := w.WriteObject()
	obj.WriteString("a", "b")
	c := obj.WriteArray("c")
	c.WriteNull()
	mtest.MustPanic(t, func() { obj.Close() })
	c.Close()
	obj.Close()

	v := tree.ObjectValue(tree.NewObject().Add("x", tree.ArrayValue(tree.NewArray(
		tree.Int32(1), tree.ObjectValue(tree.NewObject().AddInt32("y", 2))))))
	w.WriteValue(v)
	w.WriteArray().Close()
	if err := w.Close(); err != nil {
		t.Fatalf("Close: unexpected error: %v", err)
	}
	if err := p.Flush(); err != nil {
		t.Fatalf("Flush: unexpected error: %v", err)
	}
	const want = `[1, { "a": "b", "c": [null] }, { "x": [1, { "y": 2 }] }, []]`
	if got := sb.String(); got != want {
		t.Errorf("Single-line output (-want, +got):\n%s", cmp.Diff(want, got))
	}
}

func TestWriterEmpty(t *testing.T) {
	tests := []struct {
		name  string
		close func(p *jtext.Printer) error
		want  string
	}{
		{"Object", func(p *jtext.Printer) error { return stream.NewObjectWriter(p).Close() }, "{}"},
		{"Array", func(p *jtext.Printer) error { return stream.NewArrayWriter(p).Close() }, "[]"},
		{"SingleObject", func(p *jtext.Printer) error {
			return stream.NewObjectWriter(p, stream.SingleLine()).Close()
		}, "{}"},
		{"Nested", func(p *jtext.Printer) error {
			w := stream.NewArrayWriter(p)
			w.WriteObject().Close()
			return w.Close()
		}, "[\n  {}\n]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var sb strings.Builder
			p := jtext.NewPrinter(&sb)
			if err := tc.close(p); err != nil {
				t.Fatalf("Close: unexpected error: %v", err)
			}
			p.Flush()
			if got := sb.String(); got != tc.want {
				t.Errorf("Output: got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestWriterMisuse(t *testing.T) {
	var sb strings.Builder
	p := jtext.NewPrinter(&sb)

	w := stream.NewObjectWriter(p)
	child := w.WriteArray("list")
	mtest.MustPanic(t, func() { w.WriteInt32("x", 1) })
	mtest.MustPanic(t, func() { w.WriteObject("y") })
	mtest.MustPanic(t, func() { w.Close() })

	child.WriteBool(true)
	if err := child.Close(); err != nil {
		t.Fatalf("Close child: unexpected error: %v", err)
	}
	mtest.MustPanic(t, func() { child.WriteNull() })

	w.WriteInt32("x", 1)
	if err := w.Close(); err != nil {
		t.Fatalf("Close: unexpected error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close again: unexpected error: %v", err)
	}
	mtest.MustPanic(t, func() { w.WriteString("z", "after close") })

	p.Flush()
	if got, want := sb.String(), "{\n  \"list\": [\n    true\n  ],\n  \"x\": 1\n}"; got != want {
		t.Errorf("Output (-want, +got):\n%s", cmp.Diff(want, got))
	}
}

func TestWriterBadValue(t *testing.T) {
	var sb strings.Builder
	w := stream.NewArrayWriter(jtext.NewPrinter(&sb))
	w.WriteFloat64(math.NaN())
	w.WriteInt32(1)
	if err := w.Close(); !errors.Is(err, jtext.BadValue) {
		t.Errorf("Close: got %v, want %v", err, jtext.BadValue)
	}
	if err := w.Close(); !errors.Is(err, jtext.BadValue) {
		t.Errorf("Close again: got %v, want %v", err, jtext.BadValue)
	}
}
