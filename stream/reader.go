// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package stream implements incremental readers and writers for JSON objects
// and arrays, so that large documents can be processed without building the
// complete value in memory.
//
// # Readers
//
// An ObjectReader or ArrayReader consumes tokens from a jtext.Scanner. Each
// element is read by a typed method, and nested containers are read by child
// readers:
//
//	r, err := stream.OpenObject(input)
//	...
//	for {
//	   end, err := r.AtEnd()
//	   if err != nil {
//	      return err
//	   } else if end {
//	      break
//	   }
//	   name, err := r.ReadName()
//	   ...
//	   n, err := r.ReadInt64()
//	   ...
//	}
//	return r.Finish()
//
// All the readers created from one root share the underlying scanner. While a
// child reader is open, only the child may be used: any use of its ancestors
// reports a Busy error. A child is finished when its AtEnd method reports
// true.
//
// Errors in the input are fatal: once a reader reports one, every later
// operation on any reader in the tree reports the same error. Misuse errors
// (Busy, PastEnd, TypeMismatch) leave the readers unchanged, so a read that
// failed with TypeMismatch may be retried with a method of the right type.
//
// # Writers
//
// An ObjectWriter or ArrayWriter emits the elements of a container to a
// jtext.Printer as they are written. As with readers, a child writer must be
// closed before its parent is used again. Misuse of a writer is a programming
// error, and causes a panic.
package stream

import (
	"io"

	"github.com/creachadair/jtext"
	"github.com/creachadair/jtext/tree"
)

// A session holds the state shared by all the readers over a scanner.
type session struct {
	s     *jtext.Scanner
	stack []*reader // open readers, innermost last
	err   error     // the first grammar or input error
}

func (ss *session) top() *reader {
	if len(ss.stack) == 0 {
		return nil
	}
	return ss.stack[len(ss.stack)-1]
}

// reader is the common implementation of ObjectReader and ArrayReader.
type reader struct {
	ss    *session
	close jtext.Token // RBrace or RSquare
	root  bool

	first   bool   // no element has been started
	pending bool   // the next token is the value of the current element
	name    string // for objects, the name of the pending member
	done    bool   // the closing bracket has been consumed
}

func (r *reader) label() string {
	if r.close == jtext.RBrace {
		return "object"
	}
	return "array"
}

func (r *reader) isObject() bool { return r.close == jtext.RBrace }

// open constructs a reader for the container whose opening token is current
// in ss, and pushes it on the stack of ss.
func (ss *session) open(close jtext.Token) (*reader, error) {
	if len(ss.stack) == jtext.MaxDepth {
		return nil, ss.fail(ss.s.Errorf(jtext.TooDeep, "nesting exceeds %d levels", jtext.MaxDepth))
	}
	if err := ss.next(); err != nil {
		return nil, err
	}
	r := &reader{ss: ss, close: close, first: true, root: len(ss.stack) == 0}
	ss.stack = append(ss.stack, r)
	return r, nil
}

// next advances the scanner, latching any error.
func (ss *session) next() error {
	if err := ss.s.Next(); err != nil {
		ss.err = err
		return err
	}
	return nil
}

// fail latches err as the error of ss and returns it.
func (ss *session) fail(err error) error {
	ss.err = err
	return err
}

// NewObjectReader returns a reader for the object starting at the current
// token of s, which must be an open brace.
func NewObjectReader(s *jtext.Scanner) (*ObjectReader, error) {
	if err := openRoot(s, jtext.LBrace); err != nil {
		return nil, err
	}
	r, err := (&session{s: s}).open(jtext.RBrace)
	if err != nil {
		return nil, err
	}
	return &ObjectReader{r}, nil
}

// NewArrayReader returns a reader for the array starting at the current token
// of s, which must be an open bracket.
func NewArrayReader(s *jtext.Scanner) (*ArrayReader, error) {
	if err := openRoot(s, jtext.LSquare); err != nil {
		return nil, err
	}
	r, err := (&session{s: s}).open(jtext.RSquare)
	if err != nil {
		return nil, err
	}
	return &ArrayReader{r}, nil
}

func openRoot(s *jtext.Scanner, tok jtext.Token) error {
	if err := s.Err(); err != nil {
		return err
	}
	return s.Require(tok)
}

// OpenObject returns a reader for a JSON object read from r.
func OpenObject(r io.Reader) (*ObjectReader, error) {
	s, err := jtext.NewScanner(r)
	if err != nil {
		return nil, err
	}
	return NewObjectReader(s)
}

// OpenArray returns a reader for a JSON array read from r.
func OpenArray(r io.Reader) (*ArrayReader, error) {
	s, err := jtext.NewScanner(r)
	if err != nil {
		return nil, err
	}
	return NewArrayReader(s)
}

// check reports whether r may be used to read.
func (r *reader) check() error {
	if r.ss.err != nil {
		return r.ss.err
	} else if r.done {
		return jtext.Errorf(jtext.PastEnd, "read past end of %s", r.label())
	} else if r.ss.top() != r {
		return jtext.Errorf(jtext.Busy, "%s reader is busy with a nested reader", r.label())
	}
	return nil
}

// AtEnd reports whether r has no further elements. When it first reports
// true, it consumes the closing bracket and r becomes unusable for reading;
// subsequent calls continue to report true.
func (r *reader) AtEnd() (bool, error) {
	if r.done {
		return true, nil
	} else if err := r.check(); err != nil {
		return false, err
	} else if r.pending || r.ss.s.Token() != r.close {
		return false, nil
	}
	r.done = true
	r.ss.stack = r.ss.stack[:len(r.ss.stack)-1]

	// An error in the token following the container is latched for the next
	// operation, which for a root reader is Finish.
	if err := r.ss.s.Next(); err != nil {
		if r.root {
			err = jtext.TrailingError(err)
		}
		r.ss.err = err
	}
	return true, nil
}

// Finish reports whether the input was consumed completely after the end of
// a root reader. It reports ExtraInput if any input remains, whether or not
// that input is valid JSON.
func (r *reader) Finish() error {
	if r.ss.err != nil {
		return r.ss.err
	} else if !r.root {
		return jtext.Errorf(jtext.Unexpected, "cannot finish a nested %s reader", r.label())
	} else if !r.done {
		return r.ss.s.Errorf(jtext.Unexpected, "%s reader is not at end", r.label())
	} else if r.ss.s.Token() != jtext.EOF {
		return r.ss.fail(r.ss.s.Errorf(jtext.ExtraInput, "unexpected %s after root value", r.ss.s.Describe()))
	}
	return nil
}

// start consumes the separator before the next element of r, if any.
func (r *reader) start() error {
	if err := r.check(); err != nil {
		return err
	}
	s := r.ss.s
	if s.Token() == r.close {
		return s.Errorf(jtext.PastEnd, "no more elements in %s", r.label())
	}
	if !r.first {
		if err := s.Require(jtext.Comma, r.close); err != nil {
			return r.ss.fail(err)
		} else if err := r.ss.next(); err != nil {
			return err
		}
	}
	r.first = false
	return nil
}

// value positions the scanner on the value of the next element of r.
func (r *reader) value() (*jtext.Scanner, error) {
	if r.pending {
		return r.ss.s, r.check()
	} else if r.isObject() {
		if err := r.check(); err != nil {
			return nil, err
		}
		return nil, jtext.Errorf(jtext.Unexpected, "member name has not been read")
	} else if err := r.start(); err != nil {
		return nil, err
	}
	r.pending = true
	return r.ss.s, nil
}

// Peek reports the token that begins the value of the next element of r,
// without consuming it. For an object reader, the member name must already
// have been read.
func (r *reader) Peek() (jtext.Token, error) {
	s, err := r.value()
	if err != nil {
		return jtext.Invalid, err
	} else if tok := s.Token(); !startsValue(tok) {
		return jtext.Invalid, r.ss.fail(s.Errorf(jtext.Unexpected,
			`expected "{", "[" or primitive value, got %s`, s.Describe()))
	}
	return s.Token(), nil
}

func startsValue(tok jtext.Token) bool {
	return tok.IsPrimitive() || tok == jtext.LBrace || tok == jtext.LSquare
}

// want checks that the pending value has one of the given tokens. A value of
// some other kind is a TypeMismatch, and remains pending. A token that cannot
// begin a value is a grammar error.
func (r *reader) want(label string, tokens ...jtext.Token) (*jtext.Scanner, error) {
	s, err := r.value()
	if err != nil {
		return nil, err
	}
	tok := s.Token()
	for _, t := range tokens {
		if tok == t {
			return s, nil
		}
	}
	if startsValue(tok) {
		return nil, r.mismatch(label, s)
	}
	return nil, r.ss.fail(s.Errorf(jtext.Unexpected, "expected %s value, got %s", label, s.Describe()))
}

func (r *reader) mismatch(label string, s *jtext.Scanner) error {
	if r.isObject() {
		return s.Errorf(jtext.TypeMismatch, "member %q: expected %s, got %s", r.name, label, s.Describe())
	}
	return s.Errorf(jtext.TypeMismatch, "expected %s, got %s", label, s.Describe())
}

// finish completes the pending element after reading a primitive value.
func (r *reader) finish() error {
	r.pending = false
	return r.ss.next()
}

// ReadString reads a string value.
func (r *reader) ReadString() (string, error) {
	s, err := r.want("string", jtext.String)
	if err != nil {
		return "", err
	}
	v := s.Str()
	return v, r.finish()
}

// ReadInt32 reads an integer value in the range of int32.
func (r *reader) ReadInt32() (int32, error) {
	s, err := r.want("int32", jtext.Int32)
	if err != nil {
		return 0, err
	}
	v := int32(s.Int())
	return v, r.finish()
}

// ReadInt64 reads an integer value. Both int32 and int64 values are accepted.
func (r *reader) ReadInt64() (int64, error) {
	s, err := r.want("int64", jtext.Int32, jtext.Int64)
	if err != nil {
		return 0, err
	}
	v := s.Int()
	return v, r.finish()
}

// ReadFloat64 reads a number with a fractional part. Integers are not
// accepted.
func (r *reader) ReadFloat64() (float64, error) {
	s, err := r.want("float64", jtext.Float64)
	if err != nil {
		return 0, err
	}
	v := s.Float()
	return v, r.finish()
}

// ReadBool reads a Boolean value.
func (r *reader) ReadBool() (bool, error) {
	s, err := r.want("bool", jtext.True, jtext.False)
	if err != nil {
		return false, err
	}
	v := s.Bool()
	return v, r.finish()
}

// ReadNull reads a null value.
func (r *reader) ReadNull() error {
	if _, err := r.want("null", jtext.Null); err != nil {
		return err
	}
	return r.finish()
}

// ReadValue reads a complete value of any kind.
func (r *reader) ReadValue() (tree.Value, error) {
	s, err := r.value()
	if err != nil {
		return tree.Value{}, err
	}
	v, err := tree.ParseValue(s)
	if err != nil {
		return tree.Value{}, r.ss.fail(err)
	}
	r.pending = false
	return v, nil
}

// Skip reads and discards a complete value of any kind. Nested containers
// are consumed element by element, so the value is never materialized.
func (r *reader) Skip() error {
	tok, err := r.Peek()
	if err != nil {
		return err
	}
	switch tok {
	case jtext.LBrace:
		c, err := r.ReadObject()
		if err != nil {
			return err
		}
		return skipElements(c.reader, func() error {
			_, err := c.ReadName()
			return err
		})
	case jtext.LSquare:
		c, err := r.ReadArray()
		if err != nil {
			return err
		}
		return skipElements(c.reader, nil)
	default:
		return r.finish()
	}
}

func skipElements(c *reader, name func() error) error {
	for {
		end, err := c.AtEnd()
		if err != nil || end {
			return err
		}
		if name != nil {
			if err := name(); err != nil {
				return err
			}
		}
		if err := c.Skip(); err != nil {
			return err
		}
	}
}

// ReadObject returns a reader for an object value. The new reader must reach
// its end before r can be used again.
func (r *reader) ReadObject() (*ObjectReader, error) {
	if _, err := r.want("object", jtext.LBrace); err != nil {
		return nil, err
	}
	r.pending = false
	c, err := r.ss.open(jtext.RBrace)
	if err != nil {
		return nil, err
	}
	return &ObjectReader{c}, nil
}

// ReadArray returns a reader for an array value. The new reader must reach
// its end before r can be used again.
func (r *reader) ReadArray() (*ArrayReader, error) {
	if _, err := r.want("array", jtext.LSquare); err != nil {
		return nil, err
	}
	r.pending = false
	c, err := r.ss.open(jtext.RSquare)
	if err != nil {
		return nil, err
	}
	return &ArrayReader{c}, nil
}

// An ObjectReader reads the members of a JSON object in order. Each member is
// read by calling ReadName followed by one of the value methods.
type ObjectReader struct{ *reader }

// ReadName reads the name of the next member of the object. The value of the
// member must be read before the following name.
func (r *ObjectReader) ReadName() (string, error) {
	if err := r.check(); err != nil {
		return "", err
	} else if r.pending {
		return "", jtext.Errorf(jtext.Unexpected, "value of member %q has not been read", r.name)
	} else if err := r.start(); err != nil {
		return "", err
	}
	s := r.ss.s
	if s.Token() != jtext.String {
		return "", r.ss.fail(s.Errorf(jtext.BadKey, "expected string key, got %s", s.Describe()))
	}
	name := s.Str()
	if err := r.ss.next(); err != nil {
		return "", err
	} else if err := s.Require(jtext.Colon); err != nil {
		return "", r.ss.fail(err)
	} else if err := r.ss.next(); err != nil {
		return "", err
	}
	r.name, r.pending = name, true
	return name, nil
}

// An ArrayReader reads the elements of a JSON array in order.
type ArrayReader struct{ *reader }
