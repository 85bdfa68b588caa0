// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"github.com/creachadair/jtext"
)

// An Object is an ordered collection of named members. Names need not be
// unique; lookups by name find the first member with that name. The zero
// Object is empty and ready for use.
//
// Members can be appended but not removed or replaced.
type Object struct {
	names  []string
	values []Value
}

// NewObject constructs a new empty object.
func NewObject() *Object { return new(Object) }

// Len reports the number of members in o.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.names)
}

// At returns the name and value of the ith member of o.
// It panics if i is out of range.
func (o *Object) At(i int) (string, Value) { return o.names[i], o.values[i] }

// Names returns the names of the members of o, in order.
func (o *Object) Names() []string { return append([]string(nil), o.names...) }

// Add appends a member with the given name and value to o, and returns o to
// permit chaining.
func (o *Object) Add(name string, v Value) *Object {
	o.names = append(o.names, name)
	o.values = append(o.values, v)
	return o
}

// AddString appends a string member to o.
func (o *Object) AddString(name, s string) *Object { return o.Add(name, String(s)) }

// AddInt32 appends an int32 member to o.
func (o *Object) AddInt32(name string, n int32) *Object { return o.Add(name, Int32(n)) }

// AddInt64 appends an int64 member to o.
func (o *Object) AddInt64(name string, n int64) *Object { return o.Add(name, Int64(n)) }

// AddFloat64 appends a floating-point member to o.
func (o *Object) AddFloat64(name string, f float64) *Object { return o.Add(name, Float64(f)) }

// AddBool appends a Boolean member to o.
func (o *Object) AddBool(name string, b bool) *Object { return o.Add(name, Bool(b)) }

// AddNull appends a null member to o.
func (o *Object) AddNull(name string) *Object { return o.Add(name, Null) }

// AddObject appends a new empty object as a member of o, and returns the new
// object so the caller can populate it.
func (o *Object) AddObject(name string) *Object {
	child := new(Object)
	o.Add(name, ObjectValue(child))
	return child
}

// AddArray appends a new empty array as a member of o, and returns the new
// array so the caller can populate it.
func (o *Object) AddArray(name string) *Array {
	child := new(Array)
	o.Add(name, ArrayValue(child))
	return child
}

// Index returns the index of the first member of o with the given name, or -1.
func (o *Object) Index(name string) int {
	for i, n := range o.names {
		if n == name {
			return i
		}
	}
	return -1
}

// Has reports whether o has a member with the given name.
func (o *Object) Has(name string) bool { return o.Index(name) >= 0 }

// Get returns the value of the first member of o with the given name, or
// reports a NotFound error.
func (o *Object) Get(name string) (Value, error) {
	if i := o.Index(name); i >= 0 {
		return o.values[i], nil
	}
	return Value{}, jtext.Errorf(jtext.NotFound, "member %q not found", name)
}

// GetOrNull returns the value of the first member of o with the given name.
// If there is no such member, it returns the zero (absent) Value. Note that a
// member whose value is null returns Null, not an absent value.
func (o *Object) GetOrNull(name string) Value {
	if i := o.Index(name); i >= 0 {
		return o.values[i]
	}
	return Value{}
}

// GetString returns the value of the named string member.
func (o *Object) GetString(name string) (string, error) { return get(o, name, Value.AsString) }

// GetInt32 returns the value of the named int32 member.
func (o *Object) GetInt32(name string) (int32, error) { return get(o, name, Value.AsInt32) }

// GetInt64 returns the value of the named integer member.
// Both int32 and int64 values are accepted.
func (o *Object) GetInt64(name string) (int64, error) { return get(o, name, Value.AsInt64) }

// GetFloat64 returns the value of the named floating-point member.
func (o *Object) GetFloat64(name string) (float64, error) { return get(o, name, Value.AsFloat64) }

// GetBool returns the value of the named Boolean member.
func (o *Object) GetBool(name string) (bool, error) { return get(o, name, Value.AsBool) }

// GetObject returns the value of the named object member.
func (o *Object) GetObject(name string) (*Object, error) { return get(o, name, Value.AsObject) }

// GetArray returns the value of the named array member.
func (o *Object) GetArray(name string) (*Array, error) { return get(o, name, Value.AsArray) }

// GetStringOrNull returns the value of the named string member. It reports
// false without error if the member is absent or null.
func (o *Object) GetStringOrNull(name string) (string, bool, error) {
	return lookup(o, name, Value.AsString)
}

// GetInt32OrNull returns the value of the named int32 member. It reports
// false without error if the member is absent or null.
func (o *Object) GetInt32OrNull(name string) (int32, bool, error) {
	return lookup(o, name, Value.AsInt32)
}

// GetInt64OrNull returns the value of the named integer member. It reports
// false without error if the member is absent or null.
func (o *Object) GetInt64OrNull(name string) (int64, bool, error) {
	return lookup(o, name, Value.AsInt64)
}

// GetFloat64OrNull returns the value of the named floating-point member. It
// reports false without error if the member is absent or null.
func (o *Object) GetFloat64OrNull(name string) (float64, bool, error) {
	return lookup(o, name, Value.AsFloat64)
}

// GetBoolOrNull returns the value of the named Boolean member. It reports
// false without error if the member is absent or null.
func (o *Object) GetBoolOrNull(name string) (bool, bool, error) {
	return lookup(o, name, Value.AsBool)
}

// GetObjectOrNull returns the value of the named object member. It reports
// false without error if the member is absent or null.
func (o *Object) GetObjectOrNull(name string) (*Object, bool, error) {
	return lookup(o, name, Value.AsObject)
}

// GetArrayOrNull returns the value of the named array member. It reports
// false without error if the member is absent or null.
func (o *Object) GetArrayOrNull(name string) (*Array, bool, error) {
	return lookup(o, name, Value.AsArray)
}

// GetStringOrDefault returns the value of the named string member, or def if
// the member is absent or null.
func (o *Object) GetStringOrDefault(name, def string) (string, error) {
	return orDefault(o, name, def, Value.AsString)
}

// GetInt32OrDefault returns the value of the named int32 member, or def if
// the member is absent or null.
func (o *Object) GetInt32OrDefault(name string, def int32) (int32, error) {
	return orDefault(o, name, def, Value.AsInt32)
}

// GetInt64OrDefault returns the value of the named integer member, or def if
// the member is absent or null. Both int32 and int64 values are accepted.
func (o *Object) GetInt64OrDefault(name string, def int64) (int64, error) {
	return orDefault(o, name, def, Value.AsInt64)
}

// GetFloat64OrDefault returns the value of the named floating-point member, or
// def if the member is absent or null.
func (o *Object) GetFloat64OrDefault(name string, def float64) (float64, error) {
	return orDefault(o, name, def, Value.AsFloat64)
}

// GetBoolOrDefault returns the value of the named Boolean member, or def if
// the member is absent or null.
func (o *Object) GetBoolOrDefault(name string, def bool) (bool, error) {
	return orDefault(o, name, def, Value.AsBool)
}

func get[T any](o *Object, name string, as func(Value) (T, error)) (T, error) {
	v, err := o.Get(name)
	if err != nil {
		var zero T
		return zero, err
	}
	return memberValue(name, v, as)
}

func lookup[T any](o *Object, name string, as func(Value) (T, error)) (T, bool, error) {
	var zero T
	v := o.GetOrNull(name)
	if v.kind == KindAbsent || v.kind == KindNull {
		return zero, false, nil
	}
	t, err := memberValue(name, v, as)
	if err != nil {
		return zero, false, err
	}
	return t, true, nil
}

func orDefault[T any](o *Object, name string, def T, as func(Value) (T, error)) (T, error) {
	t, ok, err := lookup(o, name, as)
	if err != nil {
		return t, err
	} else if !ok {
		return def, nil
	}
	return t, nil
}

func memberValue[T any](name string, v Value, as func(Value) (T, error)) (T, error) {
	t, err := as(v)
	if err != nil {
		return t, jtext.Errorf(jtext.TypeMismatch, "member %q: %w", name, err)
	}
	return t, nil
}
