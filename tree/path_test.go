// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package tree_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jtext"
	"github.com/creachadair/jtext/tree"
	"github.com/google/go-cmp/cmp"
)

const testJSON = `{
  "list": [
    {
      "x": 1
    },
    {
      "x": 2
    }
  ],
  "y": {
    "hello": "there"
  },
  "o": ["hi", "yourself"],
  "xyz": {
    "p": true,
    "d": true,
    "q": false
  }
}`

// testPathFunc returns the length of an array or object value.
func testPathFunc(v tree.Value) (tree.Value, error) {
	switch v.Kind() {
	case tree.KindArray:
		a, _ := v.AsArray()
		return tree.Integer(int64(a.Len())), nil
	case tree.KindObject:
		o, _ := v.AsObject()
		return tree.Integer(int64(o.Len())), nil
	}
	return tree.Value{}, jtext.Errorf(jtext.TypeMismatch, "no length for %v", v.Kind())
}

func TestPath(t *testing.T) {
	v := mustParse(t, testJSON)

	tests := []struct {
		name string
		path []any
		want tree.Value
		kind jtext.ErrorKind
	}{
		{"NilInput", nil, v, jtext.NoError},
		{"NoMatch", []any{"nonesuch"}, tree.Value{}, jtext.NotFound},
		{"WrongType", []any{11}, tree.Value{}, jtext.TypeMismatch},

		{"ArrayPos", []any{"list", 1, "x"}, tree.Int32(2), jtext.NoError},
		{"ArrayNeg", []any{"list", -2, "x"}, tree.Int32(1), jtext.NoError},
		{"ArrayRange", []any{"o", 25}, tree.Value{}, jtext.OutOfRange},
		{"ArrayNegRange", []any{"o", -3}, tree.Value{}, jtext.OutOfRange},
		{"ObjPath", []any{"xyz", "d"}, tree.Bool(true), jtext.NoError},
		{"ObjOfString", []any{"y", "hello", "x"}, tree.Value{}, jtext.TypeMismatch},

		{"FuncArray", []any{"o", testPathFunc}, tree.Int32(2), jtext.NoError},
		{"FuncObj", []any{"xyz", testPathFunc}, tree.Int32(3), jtext.NoError},
		{"FuncWrong", []any{"xyz", "d", testPathFunc}, tree.Value{}, jtext.TypeMismatch},
		{"BadElement", []any{"list", 1.5}, tree.Value{}, jtext.TypeMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tree.Path(v, tc.path...)
			if tc.kind != jtext.NoError {
				if !errors.Is(err, tc.kind) {
					t.Errorf("Path %v: got error %v, want %v", tc.path, err, tc.kind)
				}
			} else if err != nil {
				t.Fatalf("Path %v: unexpected error: %v", tc.path, err)
			}
			if diff := cmp.Diff(tc.want, got, equalValues); diff != "" {
				t.Errorf("Path %v (-want, +got):\n%s", tc.path, diff)
			}
		})
	}
}
