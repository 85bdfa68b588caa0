// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package tree

import "github.com/creachadair/jtext"

// Path traverses a sequence of nested values starting from v, and returns the
// value at the end of the path. Each element of path must be one of:
//
//   - A string, which selects the first member of an object with that name.
//   - An int, which selects the element of an array at that index. A negative
//     index counts backward from the end of the array, so -1 is the last.
//   - A func(Value) (Value, error), which is called with the current value and
//     whose result becomes the next value.
//
// If the path cannot be followed, Path returns the zero Value and an error of
// kind NotFound, OutOfRange, or TypeMismatch. An empty path returns v itself.
func Path(v Value, path ...any) (Value, error) {
	cur := v
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			obj, err := cur.AsObject()
			if err != nil {
				return Value{}, jtext.Errorf(jtext.TypeMismatch, "cannot select %q from %v", t, cur.kind)
			}
			next, err := obj.Get(t)
			if err != nil {
				return Value{}, err
			}
			cur = next
		case int:
			arr, err := cur.AsArray()
			if err != nil {
				return Value{}, jtext.Errorf(jtext.TypeMismatch, "cannot index %v with %d", cur.kind, t)
			}
			i, ok := fixArrayBound(arr.Len(), t)
			if !ok {
				return Value{}, jtext.Errorf(jtext.OutOfRange, "array index %d out of bounds (n=%d)", t, arr.Len())
			}
			cur = arr.At(i)
		case func(Value) (Value, error):
			next, err := t(cur)
			if err != nil {
				return Value{}, err
			}
			cur = next
		default:
			return Value{}, jtext.Errorf(jtext.TypeMismatch, "invalid path element %T", elt)
		}
	}
	return cur, nil
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
