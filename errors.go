// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtext

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the errors reported by this module and its
// subpackages. An ErrorKind is itself an error, so that callers may write
//
//	if errors.Is(err, jtext.Overflow) { ... }
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	NoError ErrorKind = iota

	// Lexical errors, reported by the Scanner.
	BadInput   // unexpected character outside any token
	BadString  // unterminated string
	BadEscape  // invalid or incomplete escape sequence
	BadControl // unescaped control character in a string
	BadLiteral // malformed true, false, or null
	BadNumber  // malformed number
	Exponent   // number with an exponent (not supported)
	Overflow   // integer greater than the largest int64
	Underflow  // integer less than the smallest int64
	ReadError  // the input reader failed

	// Grammar errors, reported by parsers and stream readers.
	Unexpected // wrong token for the grammar
	BadKey     // object key is not a string
	ExtraInput // input remains after the root value
	PastEnd    // read after the end of an object or array
	Busy       // stream cursor used while a nested cursor is open
	TooDeep    // objects and arrays nested deeper than MaxDepth

	// Value errors, reported by the object model.
	TypeMismatch // value has the wrong kind for the accessor
	NotFound     // no object member has the requested name
	OutOfRange   // array index out of range
	BadValue     // value cannot be encoded as JSON
)

// MaxDepth is the deepest nesting of objects and arrays accepted by the tree
// parser and the stream readers.
const MaxDepth = 10000

var kindStr = [...]string{
	NoError:      "no error",
	BadInput:     "invalid input",
	BadString:    "invalid string",
	BadEscape:    "invalid escape",
	BadControl:   "invalid control character",
	BadLiteral:   "invalid literal",
	BadNumber:    "invalid number",
	Exponent:     "unsupported exponent",
	Overflow:     "integer overflow",
	Underflow:    "integer underflow",
	ReadError:    "read error",
	Unexpected:   "unexpected token",
	BadKey:       "invalid object key",
	ExtraInput:   "extra input",
	PastEnd:      "read past end",
	Busy:         "cursor busy",
	TooDeep:      "nesting too deep",
	TypeMismatch: "type mismatch",
	NotFound:     "not found",
	OutOfRange:   "index out of range",
	BadValue:     "invalid value",
}

func (k ErrorKind) String() string {
	if int(k) >= len(kindStr) {
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
	return kindStr[k]
}

// Error satisfies the error interface, so an ErrorKind can be used as the
// target of errors.Is.
func (k ErrorKind) Error() string { return k.String() }

// Error is the concrete type of errors reported by the scanner, the tree
// parser and model, and the stream readers and writers. None of these errors
// is recoverable: the value that reported it must be discarded.
type Error struct {
	Kind     ErrorKind
	Location LineCol // zero if the error is not tied to the input
	Offset   int     // byte offset of the error in the input
	Message  string

	err error
}

// Errorf constructs an *Error of the given kind with a formatted message.
// If the format contains a %w verb, the corresponding error is wrapped.
func Errorf(kind ErrorKind, msg string, args ...any) *Error {
	e := fmt.Errorf(msg, args...)
	return &Error{Kind: kind, Message: e.Error(), err: errors.Unwrap(e)}
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	if e.Location.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("at %s: %s", e.Location, e.Message)
}

// Unwrap supports error wrapping.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the ErrorKind of e.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

// TrailingError reports err, a failure to scan the input after a complete root
// value, as an ExtraInput error at the same location that wraps err. Read
// errors are returned unchanged.
func TrailingError(err error) error {
	if errors.Is(err, ReadError) {
		return err
	}
	out := &Error{Kind: ExtraInput, Message: "invalid input after root value: " + err.Error(), err: err}
	var e *Error
	if errors.As(err, &e) {
		out.Location, out.Offset = e.Location, e.Offset
		out.Message = "invalid input after root value: " + e.Message
	}
	return out
}

// At returns a copy of e positioned at the start of the current token of s.
func (e *Error) At(s *Scanner) *Error {
	cp := *e
	cp.Location = LineCol{Line: s.pline + 1, Column: s.pcol}
	cp.Offset = s.pos
	return &cp
}
