// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtext

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/creachadair/jtext/internal/escape"

	"go4.org/mem"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	String               // quoted string
	Int32                // integer in the range of int32
	Int64                // integer in the range of int64 but not int32
	Float64              // number with a fractional part
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null
	EOF                  // end of input

	// Do not modify the order of these constants without updating the
	// primitive token check below.
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	String:  "string",
	Int32:   "int32",
	Int64:   "int64",
	Float64: "float64",
	True:    "true",
	False:   "false",
	Null:    "null",
	EOF:     "end of input",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// IsPrimitive reports whether t is a token that carries a value: a string,
// number, Boolean, or null.
func (t Token) IsPrimitive() bool { return t >= String && t <= Null }

// A Scanner reads lexical tokens from an input stream. The scanner always
// stands on a current token; each call to Next discards that token and
// decodes the following one.
//
// Once the scanner reports an error, it reports the same error from every
// subsequent call to Next, and the scanner must be discarded.
type Scanner struct {
	r   *bufio.Reader
	buf bytes.Buffer // current token
	tok Token
	err error

	// Decoded values of primitive tokens.
	str string
	num int64
	flt float64

	pos, end int // start and end offsets of current token
	last     int // size in bytes of last-read input rune

	// Apparent line and column offsets (0-based)
	pline, pcol int
	eline, ecol int
}

// NewScanner constructs a new lexical scanner that consumes input from r, and
// advances it to the first token of the input. If the first token is not
// valid, NewScanner reports an error.
func NewScanner(r io.Reader) (*Scanner, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	s := &Scanner{r: br}
	if err := s.Next(); err != nil {
		return nil, err
	}
	return s, nil
}

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, the current token becomes EOF; calling Next when
// the scanner is at EOF has no effect.
func (s *Scanner) Next() error {
	if s.err != nil {
		return s.err
	} else if s.tok == EOF {
		return nil
	}
	s.buf.Reset()
	s.tok = Invalid
	s.str, s.num, s.flt = "", 0, 0
	s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol

	for {
		ch, err := s.rune()
		if err == io.EOF {
			s.tok = EOF
			return nil
		} else if err != nil {
			return s.readFailed(err)
		}

		// Discard whitespace.
		if isSpace(ch) {
			s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol
			if ch == '\n' {
				s.eline++
				s.ecol = 0
				s.pline, s.pcol = s.eline, s.ecol
			}
			continue
		}

		// Handle punctuation.
		if t, ok := selfDelim(ch); ok {
			s.buf.WriteRune(ch)
			s.tok = t
			return nil
		}

		// Handle numbers.
		if isNumStart(ch) {
			return s.scanNumber(ch)
		}

		// Handle string values.
		if ch == '"' {
			return s.scanString(ch)
		}

		// Handle constants: true, false, null
		switch ch {
		case 't':
			return s.scanConstant(ch, mem.S("true"), True)
		case 'f':
			return s.scanConstant(ch, mem.S("false"), False)
		case 'n':
			return s.scanConstant(ch, mem.S("null"), Null)
		}
		return s.failf(BadInput, "unexpected %q (a string value must be quoted)", ch)
	}
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the error that stopped the scanner, or nil.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token.  The return value is
// only valid until the next call of Next. The caller must copy the contents of
// the returned slice if it is needed beyond that.
func (s *Scanner) Text() []byte { return s.buf.Bytes() }

// Str returns the decoded value of a String token.
// The result is meaningless for other tokens.
func (s *Scanner) Str() string { return s.str }

// Int returns the value of an Int32 or Int64 token.
// The result is meaningless for other tokens.
func (s *Scanner) Int() int64 { return s.num }

// Float returns the value of a Float64 token.
// The result is meaningless for other tokens.
func (s *Scanner) Float() float64 { return s.flt }

// Bool reports whether the current token is True.
func (s *Scanner) Bool() bool { return s.tok == True }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol},
		Last:  LineCol{Line: s.eline + 1, Column: s.ecol},
	}
}

// Describe returns a human-readable description of the current token, for
// use in error messages.
func (s *Scanner) Describe() string {
	switch s.tok {
	case String, Int32, Int64, Float64:
		const maxText = 24
		text := s.buf.String()
		if len(text) > maxText {
			n := maxText
			for n > 0 && !utf8.RuneStart(text[n]) {
				n--
			}
			text = text[:n] + "..."
		}
		return fmt.Sprintf("%v %s", s.tok, text)
	}
	return s.tok.String()
}

// Errorf returns an *Error of the given kind located at the current token.
// It does not change the state of s.
func (s *Scanner) Errorf(kind ErrorKind, msg string, args ...any) *Error {
	return Errorf(kind, msg, args...).At(s)
}

// Require reports an error of kind Unexpected if the current token is not
// one of the specified tokens. Otherwise it returns nil.
func (s *Scanner) Require(tokens ...Token) error {
	for _, tok := range tokens {
		if s.tok == tok {
			return nil
		}
	}
	return s.Errorf(Unexpected, "%s", tokLabel(tokens, s.Describe()))
}

func (s *Scanner) scanString(open rune) error {
	s.buf.WriteRune(open)
	for {
		ch, err := s.rune()
		if err == io.EOF {
			return s.failf(BadString, "unterminated string")
		} else if err != nil {
			return s.readFailed(err)
		}
		switch {
		case ch == open:
			s.buf.WriteRune(ch)
			text := s.buf.Bytes()
			dec, err := escape.Unquote(mem.B(text[1 : len(text)-1]))
			if err != nil {
				return s.failf(BadEscape, "%w", err)
			}
			s.str = string(dec)
			s.tok = String
			return nil

		case ch == '\\':
			// We are awaiting the completion of a \-escape.
			s.buf.WriteRune(ch)
			esc, err := s.rune()
			if err == io.EOF {
				return s.failf(BadEscape, "incomplete escape sequence")
			} else if err != nil {
				return s.readFailed(err)
			}
			switch esc {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				s.buf.WriteRune(esc)
			case 'u':
				s.buf.WriteRune(esc)
				if err := s.readHex4(); err != nil {
					return err
				}
			default:
				return s.failf(BadEscape, "invalid %q after escape", esc)
			}

		case ch == '\n' || ch == '\r':
			return s.failf(BadString, "unterminated string (line break before closing quote)")

		case escape.IsControl(ch):
			return s.failf(BadControl, "unescaped control %U in string", ch)

		default:
			s.buf.WriteRune(ch)
		}
	}
}

// scanNumber scans an integer or decimal number. Integers are accumulated as
// they are read, and checked for overflow of the int64 range.
func (s *Scanner) scanNumber(start rune) error {
	s.buf.WriteRune(start)
	neg := start == '-'

	var acc int64
	var over ErrorKind
	addDigit := func(ch rune) {
		d := int64(ch - '0')
		if over != NoError {
			return
		} else if neg {
			if acc < (math.MinInt64+d)/10 {
				over = Underflow
				return
			}
			acc = acc*10 - d
		} else {
			if acc > (math.MaxInt64-d)/10 {
				over = Overflow
				return
			}
			acc = acc*10 + d
		}
	}

	if neg {
		// If there is a leading sign, we need at least one digit.
		// Otherwise, we already have one in start.
		ch, err := s.require(isDigit, "digit after '-'")
		if err != nil {
			return err
		}
		s.buf.WriteRune(ch)
		addDigit(ch)
	} else {
		addDigit(start)
	}

	// Consume the remainder of the integer part.
	_, ch, err := s.readWhile(isDigit, addDigit)
	if err != nil && err != io.EOF {
		return s.readFailed(err)
	}

	// Check for extra leading zeroes, which are disallowed by the JSON spec.
	// That is: 0.12 is OK, 01.2 is not.
	if hasExtraLeadingZeroes(s.buf.Bytes()) {
		return s.failf(BadNumber, "extra leading zeroes")
	}

	// If a decimal point follows, consume a fractional part.
	if err == nil && ch == '.' {
		s.buf.WriteRune(ch)
		var nr int
		nr, ch, err = s.readWhile(isDigit, nil)
		if err != nil && err != io.EOF {
			return s.readFailed(err)
		} else if nr == 0 {
			return s.failf(BadNumber, "no digits after decimal point")
		}
		if err == nil {
			if isExpMark(ch) {
				return s.failf(Exponent, "scientific notation is not supported")
			}
			s.unrune()
		}
		v, perr := mem.ParseFloat(mem.B(s.buf.Bytes()), 64)
		if perr != nil {
			if neg {
				return s.failf(Underflow, "number %s is out of range", s.buf.Bytes())
			}
			return s.failf(Overflow, "number %s is out of range", s.buf.Bytes())
		}
		s.flt = v
		s.tok = Float64
		return nil
	}

	if err == nil {
		if isExpMark(ch) {
			return s.failf(Exponent, "scientific notation is not supported")
		}
		s.unrune()
	}
	switch over {
	case Overflow:
		return s.failf(Overflow, "integer %s is greater than %d", s.buf.Bytes(), int64(math.MaxInt64))
	case Underflow:
		return s.failf(Underflow, "integer %s is less than %d", s.buf.Bytes(), int64(math.MinInt64))
	}
	s.num = acc
	if acc >= math.MinInt32 && acc <= math.MaxInt32 {
		s.tok = Int32
	} else {
		s.tok = Int64
	}
	return nil
}

// scanConstant scans one of the constants true, false, or null, reporting the
// first character that differs from want.
func (s *Scanner) scanConstant(first rune, want mem.RO, tok Token) error {
	s.buf.WriteRune(first)
	for i := 1; i < want.Len(); i++ {
		wc := rune(want.At(i))
		ch, err := s.rune()
		if err == io.EOF {
			return s.failf(BadLiteral, "expected %q in %q, got end of input", wc, want.StringCopy())
		} else if err != nil {
			return s.readFailed(err)
		} else if ch != wc {
			return s.failf(BadLiteral, "expected %q in %q, got %q", wc, want.StringCopy(), ch)
		}
		s.buf.WriteRune(ch)
	}
	s.tok = tok
	return nil
}

func (s *Scanner) rune() (rune, error) {
	ch, nb, err := s.r.ReadRune()
	s.last = nb
	s.end += nb
	s.ecol += nb
	return ch, err
}

func (s *Scanner) unrune() {
	s.end -= s.last
	s.ecol -= s.last
	s.last = 0
	s.r.UnreadRune()
}

// require reads a single rune matching f from the input, or returns an error
// mentioning the desired label.
func (s *Scanner) require(f func(rune) bool, label string) (rune, error) {
	ch, err := s.rune()
	if err == io.EOF {
		return 0, s.failf(BadNumber, "want %s, got end of input", label)
	} else if err != nil {
		return 0, s.readFailed(err)
	} else if !f(ch) {
		return 0, s.failf(BadNumber, "want %s, got %q", label, ch)
	}
	return ch, nil
}

// readWhile consumes runes matching f from the input until EOF or until a rune
// not matching f is found. The first non-matching rune (if any) is returned.
// It is the caller's responsibility to unread this rune, if desired.
// The int reports the number of runes consumed. If each is not nil, it is
// called with each matching rune.
func (s *Scanner) readWhile(f func(rune) bool, each func(rune)) (int, rune, error) {
	var nr int
	for {
		ch, err := s.rune()
		if err != nil {
			return nr, 0, err
		} else if !f(ch) {
			return nr, ch, nil
		}
		s.buf.WriteRune(ch)
		if each != nil {
			each(ch)
		}
		nr++
	}
}

// readHex4 reads exactly 4 hexadecimal digits from the input.
func (s *Scanner) readHex4() error {
	for i := 0; i < 4; i++ {
		ch, err := s.rune()
		if err == io.EOF {
			return s.failf(BadEscape, "incomplete Unicode escape")
		} else if err != nil {
			return s.readFailed(err)
		} else if !isHexDigit(ch) {
			return s.failf(BadEscape, "invalid Unicode escape: not a hex digit: %q", ch)
		}
		s.buf.WriteRune(ch)
	}
	return nil
}

func (s *Scanner) setErr(err *Error) error {
	s.tok = Invalid
	s.err = err
	return err
}

func (s *Scanner) failf(kind ErrorKind, msg string, args ...any) error {
	e := Errorf(kind, msg, args...)
	e.Location = LineCol{Line: s.eline + 1, Column: s.ecol}
	e.Offset = s.end
	return s.setErr(e)
}

func (s *Scanner) readFailed(err error) error { return s.failf(ReadError, "read: %w", err) }

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch rune) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }
func isExpMark(ch rune) bool  { return ch == 'e' || ch == 'E' }

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// hasExtraLeadingZeroes reports whether the representation of an integer in
// buf has redundant leading zeroes, which JSON does not allow.
//
// OK: 0, 0.1, -1.0, -0.1 are all OK.
// Bad: -01, 01.2, -01.0, 00.1.
func hasExtraLeadingZeroes(buf []byte) bool {
	if buf[0] == '-' {
		buf = buf[1:] // skip leading sign
	}
	if buf[0] == '0' {
		// A leading zero is OK if it's the only digit.
		return len(buf) > 1 && isDigit(rune(buf[1]))
	}
	return false
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch rune) (Token, bool) {
	i := strings.IndexRune("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(tokens []Token, got string) string {
	if len(tokens) == 0 {
		return got
	}
	var exp string
	if len(tokens) == 1 {
		exp = tokens[0].String()
	} else {
		last := len(tokens) - 1
		ss := make([]string, last)
		for i, tok := range tokens[:last] {
			ss[i] = tok.String()
		}
		exp = strings.Join(ss, ", ") + " or " + tokens[last].String()
	}
	return fmt.Sprintf("expected %s, got %s", exp, got)
}
