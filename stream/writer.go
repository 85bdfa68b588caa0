// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package stream

import (
	"github.com/creachadair/jtext"
	"github.com/creachadair/jtext/tree"
)

// An Option configures a writer.
type Option func(*options)

type options struct {
	singleLine bool
	autoFlush  bool
}

// SingleLine writes the container and all its descendants on a single line,
// as { "name": value, ... } or [value, ...].
func SingleLine() Option { return func(o *options) { o.singleLine = true } }

// AutoFlush flushes the printer when the writer is closed.
func AutoFlush() Option { return func(o *options) { o.autoFlush = true } }

// writer is the common implementation of ObjectWriter and ArrayWriter.
type writer struct {
	p           *jtext.Printer
	open, close string
	pad         string // padding inside brackets in single-line mode
	opts        options

	parent *writer
	child  *writer // the open child writer, or nil
	n      int     // number of elements started
	closed bool
}

func newWriter(p *jtext.Printer, parent *writer, open, close, pad string, opts []Option) *writer {
	w := &writer{p: p, open: open, close: close, pad: pad, parent: parent}
	if parent != nil {
		w.opts.singleLine = parent.opts.singleLine
	}
	for _, opt := range opts {
		opt(&w.opts)
	}
	return w
}

// NewObjectWriter returns a writer that emits an object to p. Nothing is
// written until the first member is written or the writer is closed.
func NewObjectWriter(p *jtext.Printer, opts ...Option) *ObjectWriter {
	return &ObjectWriter{newWriter(p, nil, "{", "}", " ", opts)}
}

// NewArrayWriter returns a writer that emits an array to p. Nothing is written
// until the first element is written or the writer is closed.
func NewArrayWriter(p *jtext.Printer, opts ...Option) *ArrayWriter {
	return &ArrayWriter{newWriter(p, nil, "[", "]", "", opts)}
}

// begin writes the opening bracket or separator before a new element.
func (w *writer) begin() {
	if w.closed {
		panic("stream: write to a closed writer")
	} else if w.child != nil {
		panic("stream: write while a nested writer is open")
	}
	switch {
	case w.n == 0 && w.opts.singleLine:
		w.p.Raw(w.open + w.pad)
	case w.n == 0:
		w.p.Raw(w.open)
		w.p.Indent()
		w.p.Newline()
	case w.opts.singleLine:
		w.p.Raw(", ")
	default:
		w.p.Raw(",")
		w.p.Newline()
	}
	w.n++
}

func (w *writer) value(v tree.Value) {
	if w.opts.singleLine {
		tree.EncodeSingleLine(w.p, v)
	} else {
		tree.Encode(w.p, v)
	}
}

func (w *writer) openChild(open, close, pad string, opts []Option) *writer {
	w.child = newWriter(w.p, w, open, close, pad, opts)
	return w.child
}

// Close writes the closing bracket of the container, and reports the first
// error encountered by the underlying printer. An empty container is written
// as {} or []. Calling Close more than once has no further effect.
//
// Close panics if a nested writer is still open.
func (w *writer) Close() error {
	if w.closed {
		return w.p.Err()
	} else if w.child != nil {
		panic("stream: close while a nested writer is open")
	}
	switch {
	case w.n == 0:
		w.p.Raw(w.open + w.close)
	case w.opts.singleLine:
		w.p.Raw(w.pad + w.close)
	default:
		w.p.Dedent()
		w.p.Newline()
		w.p.Raw(w.close)
	}
	w.closed = true
	if w.parent != nil {
		w.parent.child = nil
	}
	if w.opts.autoFlush {
		return w.p.Flush()
	}
	return w.p.Err()
}

// An ObjectWriter writes the members of a JSON object in order. Errors from
// the underlying printer are reported by Close.
type ObjectWriter struct{ *writer }

func (w *ObjectWriter) member(name string) {
	w.begin()
	w.p.Quote(name)
	w.p.Raw(": ")
}

// WriteString writes a member with a string value.
func (w *ObjectWriter) WriteString(name, s string) { w.member(name); w.p.Quote(s) }

// WriteInt32 writes a member with an int32 value.
func (w *ObjectWriter) WriteInt32(name string, n int32) { w.member(name); w.p.Int(int64(n)) }

// WriteInt64 writes a member with an int64 value.
func (w *ObjectWriter) WriteInt64(name string, n int64) { w.member(name); w.p.Int(n) }

// WriteFloat64 writes a member with a floating-point value.
func (w *ObjectWriter) WriteFloat64(name string, f float64) { w.member(name); w.p.Float(f) }

// WriteBool writes a member with a Boolean value.
func (w *ObjectWriter) WriteBool(name string, b bool) { w.member(name); w.p.Bool(b) }

// WriteNull writes a member with a null value.
func (w *ObjectWriter) WriteNull(name string) { w.member(name); w.p.Null() }

// WriteValue writes a member with an arbitrary value.
func (w *ObjectWriter) WriteValue(name string, v tree.Value) { w.member(name); w.value(v) }

// WriteObject writes a member whose value is an object, and returns a writer
// for its members. The returned writer must be closed before w is used again.
func (w *ObjectWriter) WriteObject(name string, opts ...Option) *ObjectWriter {
	w.member(name)
	return &ObjectWriter{w.openChild("{", "}", " ", opts)}
}

// WriteArray writes a member whose value is an array, and returns a writer
// for its elements. The returned writer must be closed before w is used again.
func (w *ObjectWriter) WriteArray(name string, opts ...Option) *ArrayWriter {
	w.member(name)
	return &ArrayWriter{w.openChild("[", "]", "", opts)}
}

// An ArrayWriter writes the elements of a JSON array in order. Errors from
// the underlying printer are reported by Close.
type ArrayWriter struct{ *writer }

// WriteString writes a string element.
func (w *ArrayWriter) WriteString(s string) { w.begin(); w.p.Quote(s) }

// WriteInt32 writes an int32 element.
func (w *ArrayWriter) WriteInt32(n int32) { w.begin(); w.p.Int(int64(n)) }

// WriteInt64 writes an int64 element.
func (w *ArrayWriter) WriteInt64(n int64) { w.begin(); w.p.Int(n) }

// WriteFloat64 writes a floating-point element.
func (w *ArrayWriter) WriteFloat64(f float64) { w.begin(); w.p.Float(f) }

// WriteBool writes a Boolean element.
func (w *ArrayWriter) WriteBool(b bool) { w.begin(); w.p.Bool(b) }

// WriteNull writes a null element.
func (w *ArrayWriter) WriteNull() { w.begin(); w.p.Null() }

// WriteValue writes an arbitrary element.
func (w *ArrayWriter) WriteValue(v tree.Value) { w.begin(); w.value(v) }

// WriteObject writes an object element, and returns a writer for its members.
// The returned writer must be closed before w is used again.
func (w *ArrayWriter) WriteObject(opts ...Option) *ObjectWriter {
	w.begin()
	return &ObjectWriter{w.openChild("{", "}", " ", opts)}
}

// WriteArray writes an array element, and returns a writer for its elements.
// The returned writer must be closed before w is used again.
func (w *ArrayWriter) WriteArray(opts ...Option) *ArrayWriter {
	w.begin()
	return &ArrayWriter{w.openChild("[", "]", "", opts)}
}
