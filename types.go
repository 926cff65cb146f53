// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Type predicate builtins. A failed predicate is undefined, not false:
// callers treat absence as "no truth value".

package regovm

func typeCheck(v Value, t Type) Value {
	if v != nil && v.Type() == t {
		return NewBoolean(true)
	}
	return nil
}

func IsNumber(v Value) Value { return typeCheck(v, TypeNumber) }

func IsString(v Value) Value { return typeCheck(v, TypeString) }

func IsBoolean(v Value) Value { return typeCheck(v, TypeBoolean) }

func IsArray(v Value) Value { return typeCheck(v, TypeArray) }

func IsSet(v Value) Value { return typeCheck(v, TypeSet) }

func IsObject(v Value) Value { return typeCheck(v, TypeObject) }

func IsNull(v Value) Value { return typeCheck(v, TypeNull) }

// TypeName returns the name of v's public variant.
func TypeName(v Value) Value {
	if v == nil {
		return nil
	}
	return NewString(v.Type().String())
}
