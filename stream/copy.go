// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package stream

import (
	"github.com/creachadair/jtext"
	"github.com/creachadair/jtext/tree"
)

// Copy reads a root object or array from s and writes it to p, formatted as
// tree.Serialize would format it, followed by a newline. Objects and arrays
// are streamed through readers and writers rather than being parsed into
// memory, except that a run of primitive elements at the start of an array is
// held until Copy can tell whether the array fits on a single line.
//
// Copy flushes p before returning.
func Copy(p *jtext.Printer, s *jtext.Scanner) error {
	var root interface{ Finish() error }
	switch s.Token() {
	case jtext.LBrace:
		r, err := NewObjectReader(s)
		if err != nil {
			return err
		}
		if err := copyObject(r, NewObjectWriter(p)); err != nil {
			return err
		}
		root = r
	case jtext.LSquare:
		r, err := NewArrayReader(s)
		if err != nil {
			return err
		}
		if err := copyArray(r, func(opts ...Option) *ArrayWriter { return NewArrayWriter(p, opts...) }); err != nil {
			return err
		}
		root = r
	default:
		if err := s.Err(); err != nil {
			return err
		}
		return s.Require(jtext.LBrace, jtext.LSquare)
	}
	if err := root.Finish(); err != nil {
		return err
	}
	p.Raw("\n")
	return p.Flush()
}

func copyObject(r *ObjectReader, w *ObjectWriter) error {
	for {
		end, err := r.AtEnd()
		if err != nil {
			return err
		} else if end {
			return w.Close()
		}
		name, err := r.ReadName()
		if err != nil {
			return err
		}
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
			if err := copyObject(c, w.WriteObject(name)); err != nil {
				return err
			}
		case jtext.LSquare:
			c, err := r.ReadArray()
			if err != nil {
				return err
			}
			if err := copyArray(c, func(opts ...Option) *ArrayWriter {
				return w.WriteArray(name, opts...)
			}); err != nil {
				return err
			}
		default:
			v, err := r.ReadValue()
			if err != nil {
				return err
			}
			w.WriteValue(name, v)
		}
	}
}

// copyArray copies the elements of r to a writer obtained from open. The
// writer is not opened until the layout of the array is known: an array whose
// elements are all primitive or empty is written on one line.
func copyArray(r *ArrayReader, open func(...Option) *ArrayWriter) error {
	var w *ArrayWriter
	var simple []tree.Value
	multiLine := func() {
		w = open()
		for _, v := range simple {
			w.WriteValue(v)
		}
		simple = nil
	}
	for {
		end, err := r.AtEnd()
		if err != nil {
			return err
		} else if end {
			break
		}
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
			if w == nil {
				if empty, err := c.AtEnd(); err != nil {
					return err
				} else if empty {
					simple = append(simple, tree.ObjectValue(nil))
					continue
				}
				multiLine()
			}
			if err := copyObject(c, w.WriteObject()); err != nil {
				return err
			}
		case jtext.LSquare:
			c, err := r.ReadArray()
			if err != nil {
				return err
			}
			if w == nil {
				if empty, err := c.AtEnd(); err != nil {
					return err
				} else if empty {
					simple = append(simple, tree.ArrayValue(nil))
					continue
				}
				multiLine()
			}
			if err := copyArray(c, w.WriteArray); err != nil {
				return err
			}
		default:
			v, err := r.ReadValue()
			if err != nil {
				return err
			}
			if w == nil {
				simple = append(simple, v)
			} else {
				w.WriteValue(v)
			}
		}
	}
	if w == nil {
		w = open(SingleLine())
		for _, v := range simple {
			w.WriteValue(v)
		}
	}
	return w.Close()
}
