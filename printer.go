// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package jtext

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/creachadair/jtext/internal/escape"

	"go4.org/mem"
)

// A Printer emits JSON text to an underlying writer. It tracks the current
// indentation depth but has no knowledge of the JSON grammar; the tree
// serializer and the stream writers use it to render complete values.
//
// Errors are sticky: after the first error, all further output is discarded
// and Err and Flush report that error.
type Printer struct {
	w     *bufio.Writer
	unit  string
	depth int
	err   error
	tmp   []byte
}

// NewPrinter constructs a Printer that writes to w, indenting nested values by
// two spaces per level.
func NewPrinter(w io.Writer) *Printer {
	bw, ok := w.(*bufio.Writer)
	if !ok {
		bw = bufio.NewWriter(w)
	}
	return &Printer{w: bw, unit: "  "}
}

// SetIndent sets the string written once per level of indentation.
func (p *Printer) SetIndent(unit string) { p.unit = unit }

// Depth reports the current indentation depth.
func (p *Printer) Depth() int { return p.depth }

// Indent increases the indentation depth by one level.
func (p *Printer) Indent() { p.depth++ }

// Dedent decreases the indentation depth by one level.
func (p *Printer) Dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

// Newline writes a line break followed by the indentation for the current
// depth.
func (p *Printer) Newline() {
	p.Raw("\n")
	p.Raw(strings.Repeat(p.unit, p.depth))
}

// Raw writes s without modification.
func (p *Printer) Raw(s string) {
	if p.err == nil {
		_, p.err = p.w.WriteString(s)
	}
}

// Quote writes s as a quoted JSON string.
func (p *Printer) Quote(s string) {
	p.tmp = append(p.tmp[:0], '"')
	p.tmp = escape.AppendQuote(p.tmp, mem.S(s))
	p.tmp = append(p.tmp, '"')
	p.write(p.tmp)
}

// Int writes the decimal representation of v.
func (p *Printer) Int(v int64) { p.write(strconv.AppendInt(p.tmp[:0], v, 10)) }

// Float writes the decimal representation of v. The output is the shortest
// decimal that parses back to v, always includes a decimal point, and never
// uses an exponent. If v is infinite or NaN, Float fails with BadValue.
func (p *Printer) Float(v float64) {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		p.Fail(Errorf(BadValue, "cannot encode %v as JSON", v))
		return
	}
	buf := strconv.AppendFloat(p.tmp[:0], v, 'f', -1, 64)
	if mem.IndexByte(mem.B(buf), '.') < 0 {
		buf = append(buf, '.', '0')
	}
	p.write(buf)
}

// Bool writes true or false.
func (p *Printer) Bool(v bool) {
	if v {
		p.Raw("true")
	} else {
		p.Raw("false")
	}
}

// Null writes null.
func (p *Printer) Null() { p.Raw("null") }

// Fail records err as the error of p, if p has not already failed.
func (p *Printer) Fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// Err reports the first error encountered by p, or nil.
func (p *Printer) Err() error { return p.err }

// Flush flushes buffered output to the underlying writer. It reports the
// first error encountered by p, if any.
func (p *Printer) Flush() error {
	if p.err == nil {
		p.err = p.w.Flush()
	}
	return p.err
}

func (p *Printer) write(buf []byte) {
	p.tmp = buf
	if p.err == nil {
		_, p.err = p.w.Write(buf)
	}
}
