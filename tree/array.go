// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package tree

import "github.com/creachadair/jtext"

// An Array is an ordered sequence of values. The zero Array is empty and
// ready for use. Values can be appended but not removed or replaced.
type Array struct {
	values []Value
}

// NewArray constructs a new array containing the given values.
func NewArray(vs ...Value) *Array { return &Array{values: append([]Value(nil), vs...)} }

// Len reports the number of values in a.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.values)
}

// At returns the ith value of a. It panics if i is out of range.
func (a *Array) At(i int) Value { return a.values[i] }

// Values returns a copy of the values of a, in order.
func (a *Array) Values() []Value { return append([]Value(nil), a.values...) }

// Append appends v to a, and returns a to permit chaining.
func (a *Array) Append(v Value) *Array { a.values = append(a.values, v); return a }

// AppendString appends a string value to a.
func (a *Array) AppendString(s string) *Array { return a.Append(String(s)) }

// AppendInt32 appends an int32 value to a.
func (a *Array) AppendInt32(n int32) *Array { return a.Append(Int32(n)) }

// AppendInt64 appends an int64 value to a.
func (a *Array) AppendInt64(n int64) *Array { return a.Append(Int64(n)) }

// AppendFloat64 appends a floating-point value to a.
func (a *Array) AppendFloat64(f float64) *Array { return a.Append(Float64(f)) }

// AppendBool appends a Boolean value to a.
func (a *Array) AppendBool(b bool) *Array { return a.Append(Bool(b)) }

// AppendNull appends a null value to a.
func (a *Array) AppendNull() *Array { return a.Append(Null) }

// AppendObject appends a new empty object to a, and returns the new object so
// the caller can populate it.
func (a *Array) AppendObject() *Object {
	child := new(Object)
	a.Append(ObjectValue(child))
	return child
}

// AppendArray appends a new empty array to a, and returns the new array so
// the caller can populate it.
func (a *Array) AppendArray() *Array {
	child := new(Array)
	a.Append(ArrayValue(child))
	return child
}

// Get returns the ith value of a, or reports an OutOfRange error.
func (a *Array) Get(i int) (Value, error) {
	if i < 0 || i >= a.Len() {
		return Value{}, jtext.Errorf(jtext.OutOfRange, "index %d out of range (0..%d)", i, a.Len())
	}
	return a.values[i], nil
}

// GetString returns the ith value of a, which must be a string.
func (a *Array) GetString(i int) (string, error) { return index(a, i, Value.AsString) }

// GetInt32 returns the ith value of a, which must be an int32.
func (a *Array) GetInt32(i int) (int32, error) { return index(a, i, Value.AsInt32) }

// GetInt64 returns the ith value of a, which must be an integer.
func (a *Array) GetInt64(i int) (int64, error) { return index(a, i, Value.AsInt64) }

// GetFloat64 returns the ith value of a, which must be a floating-point value.
func (a *Array) GetFloat64(i int) (float64, error) { return index(a, i, Value.AsFloat64) }

// GetBool returns the ith value of a, which must be a Boolean.
func (a *Array) GetBool(i int) (bool, error) { return index(a, i, Value.AsBool) }

// GetObject returns the ith value of a, which must be an object.
func (a *Array) GetObject(i int) (*Object, error) { return index(a, i, Value.AsObject) }

// GetArray returns the ith value of a, which must be an array.
func (a *Array) GetArray(i int) (*Array, error) { return index(a, i, Value.AsArray) }

func index[T any](a *Array, i int, as func(Value) (T, error)) (T, error) {
	v, err := a.Get(i)
	if err != nil {
		var zero T
		return zero, err
	}
	t, err := as(v)
	if err != nil {
		return t, jtext.Errorf(jtext.TypeMismatch, "index %d: %w", i, err)
	}
	return t, nil
}
