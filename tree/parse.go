// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"bytes"
	"io"

	"github.com/creachadair/jtext"
	"github.com/tailscale/hujson"
)

// Parse parses a single JSON object or array from r. The input must contain
// exactly one root value, which must be an object or an array, optionally
// surrounded by whitespace. Errors have concrete type *jtext.Error.
func Parse(r io.Reader) (Value, error) {
	s, err := jtext.NewScanner(r)
	if err != nil {
		return Value{}, err
	}
	return ParseRoot(s)
}

// ParseRelaxed parses a single JSON object or array from data, which may
// contain comments and trailing commas in objects and arrays. Other than
// those extensions, the grammar is the same as for Parse.
//
// Comments and trailing commas are replaced by whitespace before parsing, so
// the locations in errors refer to the original input.
func ParseRelaxed(data []byte) (Value, error) {
	std, err := hujson.Standardize(bytes.Clone(data))
	if err != nil {
		return Value{}, jtext.Errorf(jtext.BadInput, "relaxed: %w", err)
	}
	return Parse(bytes.NewReader(std))
}

// ParseRoot parses a root value from s, which must be positioned on the first
// token of the input. The root value must be an object or an array, and no
// further input may follow it.
func ParseRoot(s *jtext.Scanner) (_ Value, err error) {
	defer recoverParseError(&err)
	p := parser{s: s, root: true}
	p.check(s.Err())
	p.check(s.Require(jtext.LBrace, jtext.LSquare))
	v := p.parseValue()
	if s.Token() != jtext.EOF {
		panic(s.Errorf(jtext.ExtraInput, "unexpected %s after root value", s.Describe()))
	}
	return v, nil
}

// ParseValue parses a single value of any kind from s, starting at its current
// token. On success, s is positioned on the first token after the value.
func ParseValue(s *jtext.Scanner) (_ Value, err error) {
	defer recoverParseError(&err)
	p := parser{s: s}
	p.check(s.Err())
	return p.parseValue(), nil
}

// A parser is a recursive-descent parser over a scanner. Errors are
// propagated as panics and recovered at the API boundary.
type parser struct {
	s     *jtext.Scanner
	root  bool // the outermost value is a complete document
	depth int  // open containers
}

func recoverParseError(errp *error) {
	if v := recover(); v != nil {
		if err, ok := v.(*jtext.Error); ok {
			*errp = err
			return
		}
		panic(v)
	}
}

func (p *parser) check(err error) {
	if err != nil {
		panic(err)
	}
}

// next advances to the next token.
func (p *parser) next() { p.check(p.s.Next()) }

// enter consumes the opening bracket of a container.
func (p *parser) enter() {
	if p.depth == jtext.MaxDepth {
		panic(p.s.Errorf(jtext.TooDeep, "nesting exceeds %d levels", jtext.MaxDepth))
	}
	p.depth++
	p.next()
}

// leave consumes the closing bracket of a container. Once the bracket that
// closes a root document is consumed, a scan failure is trailing input.
func (p *parser) leave() {
	p.depth--
	if err := p.s.Next(); err != nil {
		if p.root && p.depth == 0 {
			err = jtext.TrailingError(err)
		}
		panic(err)
	}
}

// parseValue consumes a single value of any kind.
// Postcondition: the scanner is on the token after the value.
func (p *parser) parseValue() Value {
	var v Value
	switch p.s.Token() {
	case jtext.LBrace:
		return p.parseObject()
	case jtext.LSquare:
		return p.parseArray()
	case jtext.String:
		v = String(p.s.Str())
	case jtext.Int32:
		v = Int32(int32(p.s.Int()))
	case jtext.Int64:
		v = Int64(p.s.Int())
	case jtext.Float64:
		v = Float64(p.s.Float())
	case jtext.True, jtext.False:
		v = Bool(p.s.Bool())
	case jtext.Null:
		v = Null
	default:
		panic(p.s.Errorf(jtext.Unexpected, `expected "{", "[" or primitive value, got %s`, p.s.Describe()))
	}
	p.next()
	return v
}

// parseObject consumes an object and its members.
// Precondition: token == LBrace.
func (p *parser) parseObject() Value {
	obj := new(Object)
	p.enter()
	if p.s.Token() == jtext.RBrace {
		p.leave()
		return ObjectValue(obj)
	}
	for {
		if p.s.Token() != jtext.String {
			panic(p.s.Errorf(jtext.BadKey, "expected string key, got %s", p.s.Describe()))
		}
		name := p.s.Str()
		p.next()
		p.check(p.s.Require(jtext.Colon))
		p.next()
		obj.Add(name, p.parseValue())

		p.check(p.s.Require(jtext.Comma, jtext.RBrace))
		if p.s.Token() == jtext.RBrace {
			p.leave()
			return ObjectValue(obj)
		}
		p.next()
	}
}

// parseArray consumes an array and its elements.
// Precondition: token == LSquare.
func (p *parser) parseArray() Value {
	arr := new(Array)
	p.enter()
	if p.s.Token() == jtext.RSquare {
		p.leave()
		return ArrayValue(arr)
	}
	for {
		arr.Append(p.parseValue())

		p.check(p.s.Require(jtext.Comma, jtext.RSquare))
		if p.s.Token() == jtext.RSquare {
			p.leave()
			return ArrayValue(arr)
		}
		p.next()
	}
}
