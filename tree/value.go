// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package tree defines an in-memory object model for JSON values, a parser
// that constructs values from JSON source, and a printer that renders them.
package tree

import (
	"math"
	"strings"

	"github.com/creachadair/jtext"
)

// Kind identifies the type of a Value.
type Kind byte

// Constants defining the valid Kind values.
const (
	KindAbsent  Kind = iota // no value (the zero Value)
	KindNull                // null
	KindBool                // true or false
	KindInt32               // integer in the range of int32
	KindInt64               // integer in the range of int64
	KindFloat64             // floating-point number
	KindString              // string
	KindObject              // object
	KindArray               // array
)

var kindStr = [...]string{
	KindAbsent:  "absent",
	KindNull:    "null",
	KindBool:    "bool",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindFloat64: "float64",
	KindString:  "string",
	KindObject:  "object",
	KindArray:   "array",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return "invalid"
	}
	return kindStr[k]
}

// A Value is an arbitrary JSON value. The zero Value has kind KindAbsent and
// denotes the absence of a value, for example a missing object member; it is
// distinct from Null.
type Value struct {
	kind Kind
	num  uint64 // KindBool, KindInt32, KindInt64, KindFloat64
	str  string
	obj  *Object
	arr  *Array
}

// Null is the JSON null value.
var Null = Value{kind: KindNull}

// Bool returns a Boolean value.
func Bool(b bool) Value {
	var n uint64
	if b {
		n = 1
	}
	return Value{kind: KindBool, num: n}
}

// Int32 returns an int32 value.
func Int32(n int32) Value { return Value{kind: KindInt32, num: uint64(int64(n))} }

// Int64 returns an int64 value. Note that the parser represents integers in
// the range of int32 as KindInt32; see Integer.
func Int64(n int64) Value { return Value{kind: KindInt64, num: uint64(n)} }

// Integer returns an integer value with the same kind the parser assigns to
// n: KindInt32 if n is in the range of int32, otherwise KindInt64.
func Integer(n int64) Value {
	if n >= math.MinInt32 && n <= math.MaxInt32 {
		return Int32(int32(n))
	}
	return Int64(n)
}

// Float64 returns a floating-point value.
func Float64(f float64) Value { return Value{kind: KindFloat64, num: math.Float64bits(f)} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// ObjectValue returns a value for o. A nil o is treated as an empty object.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = new(Object)
	}
	return Value{kind: KindObject, obj: o}
}

// ArrayValue returns a value for a. A nil a is treated as an empty array.
func ArrayValue(a *Array) Value {
	if a == nil {
		a = new(Array)
	}
	return Value{kind: KindArray, arr: a}
}

// Kind reports the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsAbsent reports whether v is the zero Value.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// AsBool returns the Boolean value of v, or reports a TypeMismatch error.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, v.mismatch(KindBool)
	}
	return v.num != 0, nil
}

// AsInt32 returns the value of an int32 v, or reports a TypeMismatch error.
func (v Value) AsInt32() (int32, error) {
	if v.kind != KindInt32 {
		return 0, v.mismatch(KindInt32)
	}
	return int32(int64(v.num)), nil
}

// AsInt64 returns the value of an integer v, or reports a TypeMismatch error.
// Both KindInt32 and KindInt64 are accepted.
func (v Value) AsInt64() (int64, error) {
	if v.kind != KindInt32 && v.kind != KindInt64 {
		return 0, v.mismatch(KindInt64)
	}
	return int64(v.num), nil
}

// AsFloat64 returns the value of a floating-point v, or reports a
// TypeMismatch error.
func (v Value) AsFloat64() (float64, error) {
	if v.kind != KindFloat64 {
		return 0, v.mismatch(KindFloat64)
	}
	return math.Float64frombits(v.num), nil
}

// AsString returns the value of a string v, or reports a TypeMismatch error.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", v.mismatch(KindString)
	}
	return v.str, nil
}

// AsObject returns the object of v, or reports a TypeMismatch error.
func (v Value) AsObject() (*Object, error) {
	if v.kind != KindObject {
		return nil, v.mismatch(KindObject)
	}
	return v.obj, nil
}

// AsArray returns the array of v, or reports a TypeMismatch error.
func (v Value) AsArray() (*Array, error) {
	if v.kind != KindArray {
		return nil, v.mismatch(KindArray)
	}
	return v.arr, nil
}

// String renders v as pretty-printed JSON text, without a trailing newline.
// An absent value renders as an empty string.
func (v Value) String() string { return strings.TrimSuffix(Format(v), "\n") }

func (v Value) mismatch(want Kind) error {
	return jtext.Errorf(jtext.TypeMismatch, "expected %v, got %v", want, v.kind)
}

// isSimple reports whether v is a primitive or an empty object or array.
func (v Value) isSimple() bool {
	switch v.kind {
	case KindObject:
		return v.obj.Len() == 0
	case KindArray:
		return v.arr.Len() == 0
	}
	return true
}

// Equal reports whether a and b are structurally equal: they have the same
// kind, and equal contents. Objects are equal if they have equal members in
// the same order. Floating-point values are compared by their bits.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindObject:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		for i := range a.obj.names {
			if a.obj.names[i] != b.obj.names[i] || !Equal(a.obj.values[i], b.obj.values[i]) {
				return false
			}
		}
		return true
	case KindArray:
		if a.arr.Len() != b.arr.Len() {
			return false
		}
		for i, v := range a.arr.values {
			if !Equal(v, b.arr.values[i]) {
				return false
			}
		}
		return true
	}
	return a.num == b.num && a.str == b.str
}
