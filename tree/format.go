// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"io"
	"math"
	"strings"

	"github.com/creachadair/jtext"
)

// Serialize writes v to w as pretty-printed JSON text followed by a single
// newline, and flushes the output.
func Serialize(w io.Writer, v Value) error {
	p := jtext.NewPrinter(w)
	encode(p, v, false)
	p.Raw("\n")
	return p.Flush()
}

// Format renders v as pretty-printed JSON text with a trailing newline, as
// Serialize would write it. If v cannot be encoded, Format returns "".
func Format(v Value) string {
	var sb strings.Builder
	if err := Serialize(&sb, v); err != nil {
		return ""
	}
	return sb.String()
}

// Encode writes v to p, starting at the current indentation depth of p. It
// does not write a trailing newline or flush p, and it reports the error
// state of p after writing.
//
// A non-empty object is written with one member per line. A non-empty array
// is written on a single line if all its elements are primitive values or
// empty containers; otherwise it is written with one element per line.
func Encode(p *jtext.Printer, v Value) error {
	encode(p, v, false)
	return p.Err()
}

// EncodeSingleLine writes v to p without line breaks. Object members are
// written as { "name": value, ... } and array elements as [a, b, ...].
func EncodeSingleLine(p *jtext.Printer, v Value) error {
	encode(p, v, true)
	return p.Err()
}

func encode(p *jtext.Printer, v Value, single bool) {
	switch v.kind {
	case KindNull:
		p.Null()
	case KindBool:
		p.Bool(v.num != 0)
	case KindInt32, KindInt64:
		p.Int(int64(v.num))
	case KindFloat64:
		p.Float(math.Float64frombits(v.num))
	case KindString:
		p.Quote(v.str)
	case KindObject:
		encodeObject(p, v.obj, single)
	case KindArray:
		encodeArray(p, v.arr, single)
	default:
		p.Fail(jtext.Errorf(jtext.BadValue, "cannot encode %v value", v.kind))
	}
}

func encodeObject(p *jtext.Printer, o *Object, single bool) {
	if o.Len() == 0 {
		p.Raw("{}")
		return
	}
	if single {
		p.Raw("{ ")
		for i, name := range o.names {
			if i > 0 {
				p.Raw(", ")
			}
			p.Quote(name)
			p.Raw(": ")
			encode(p, o.values[i], true)
		}
		p.Raw(" }")
		return
	}
	p.Raw("{")
	p.Indent()
	for i, name := range o.names {
		if i > 0 {
			p.Raw(",")
		}
		p.Newline()
		p.Quote(name)
		p.Raw(": ")
		encode(p, o.values[i], false)
	}
	p.Dedent()
	p.Newline()
	p.Raw("}")
}

func encodeArray(p *jtext.Printer, a *Array, single bool) {
	if a.Len() == 0 {
		p.Raw("[]")
		return
	}
	if single || allSimple(a.values) {
		p.Raw("[")
		for i, elt := range a.values {
			if i > 0 {
				p.Raw(", ")
			}
			encode(p, elt, true)
		}
		p.Raw("]")
		return
	}
	p.Raw("[")
	p.Indent()
	for i, elt := range a.values {
		if i > 0 {
			p.Raw(",")
		}
		p.Newline()
		encode(p, elt, false)
	}
	p.Dedent()
	p.Newline()
	p.Raw("]")
}

func allSimple(vs []Value) bool {
	for _, v := range vs {
		if !v.isSimple() {
			return false
		}
	}
	return true
}
