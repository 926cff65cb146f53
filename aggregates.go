// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regovm

import "github.com/cockroachdb/apd/v3"

// Count returns the size of a container, or the code point count of a
// string.
func Count(v Value) Value {
	switch v := v.(type) {
	case *String:
		return NewInt(int64(runeCount(v.v)))
	case *Array:
		return NewInt(int64(v.Len()))
	case *Object:
		return NewInt(int64(v.Len()))
	case *Set:
		return NewInt(int64(v.Len()))
	}
	return nil
}

func foldNumbers(v Value, init int64, name string, op func(res, x, y *apd.Decimal) (apd.Condition, error)) Value {
	acc := apd.New(init, 0)

	fold := func(elem Value) bool {
		x := numberToDec(elem)
		if x == nil {
			return false
		}
		acc = decOp(name, op, acc, x)
		return true
	}

	switch v := v.(type) {
	case *Array:
		for i := range v.elems {
			if !fold(v.elems[i].v) {
				return nil
			}
		}
	case *Set:
		for _, elem := range v.buckets {
			for ; elem != nil; elem = elem.next {
				if !fold(elem.v) {
					return nil
				}
			}
		}
	default:
		return nil
	}

	return decToNumber(acc)
}

// Sum adds the numbers in an array or set; mixed contents are undefined.
func Sum(v Value) Value {
	return foldNumbers(v, 0, "sum", decCtx.Add)
}

// Product multiplies the numbers in an array or set.
func Product(v Value) Value {
	return foldNumbers(v, 1, "product", decCtx.Mul)
}

// Max returns the largest element under the total order; the empty
// collection is undefined.
func Max(v Value) Value {
	var max Value
	switch v := v.(type) {
	case *Array:
		for i := range v.elems {
			if max == nil || Compare(max, v.elems[i].v) < 0 {
				max = v.elems[i].v
			}
		}
	case *Set:
		for _, elem := range v.buckets {
			for ; elem != nil; elem = elem.next {
				if max == nil || Compare(max, elem.v) < 0 {
					max = elem.v
				}
			}
		}
	default:
		return nil
	}
	return max
}

// Min returns the smallest element under the total order.
func Min(v Value) Value {
	var min Value
	switch v := v.(type) {
	case *Array:
		for i := range v.elems {
			if min == nil || Compare(min, v.elems[i].v) > 0 {
				min = v.elems[i].v
			}
		}
	case *Set:
		for _, elem := range v.buckets {
			for ; elem != nil; elem = elem.next {
				if min == nil || Compare(min, elem.v) > 0 {
					min = elem.v
				}
			}
		}
	default:
		return nil
	}
	return min
}

// Sort returns the elements of an array or set as a sorted array.
func Sort(v Value) Value {
	switch v := v.(type) {
	case *Array:
		r := ShallowCopy(v).(*Array)
		r.Sort(Compare)
		return r
	case *Set:
		r := NewArrayWithCap(v.Len())
		for _, elem := range v.buckets {
			for ; elem != nil; elem = elem.next {
				r.Append(elem.v)
			}
		}
		r.Sort(Compare)
		return r
	}
	return nil
}

// All reports whether every element of an array or set is true.
func All(v Value) Value {
	isTrue := func(v Value) bool {
		b, ok := v.(*Boolean)
		return ok && b.v
	}
	switch v := v.(type) {
	case *Array:
		for i := range v.elems {
			if !isTrue(v.elems[i].v) {
				return NewBoolean(false)
			}
		}
		return NewBoolean(true)
	case *Set:
		for _, elem := range v.buckets {
			for ; elem != nil; elem = elem.next {
				if !isTrue(elem.v) {
					return NewBoolean(false)
				}
			}
		}
		return NewBoolean(true)
	}
	return nil
}

// Any reports whether any element of an array or set is true. On sets
// this is a membership probe.
func Any(v Value) Value {
	switch v := v.(type) {
	case *Array:
		for i := range v.elems {
			if b, ok := v.elems[i].v.(*Boolean); ok && b.v {
				return NewBoolean(true)
			}
		}
		return NewBoolean(false)
	case *Set:
		if v.Len() == 0 {
			return NewBoolean(false)
		}
		return NewBoolean(v.Contains(True))
	}
	return nil
}
