// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regovm

// ArrayConcat returns the concatenation of two arrays.
func ArrayConcat(a, b Value) Value {
	x, ok := a.(*Array)
	if !ok {
		return nil
	}
	y, ok := b.(*Array)
	if !ok {
		return nil
	}
	r := NewArrayWithCap(x.Len() + y.Len())
	for i := range x.elems {
		r.Append(x.elems[i].v)
	}
	for i := range y.elems {
		r.Append(y.elems[i].v)
	}
	return r
}

// ArraySlice returns a[i:j] with both bounds clamped to the array.
func ArraySlice(a, i, j Value) Value {
	arr, ok := a.(*Array)
	if !ok {
		return nil
	}
	in, ok := i.(*Number)
	if !ok {
		return nil
	}
	jn, ok := j.(*Number)
	if !ok {
		return nil
	}
	start, ok := in.TryInt()
	if !ok {
		return nil
	}
	stop, ok := jn.TryInt()
	if !ok {
		return nil
	}

	if stop < 0 {
		stop = 0
	} else if stop > int64(arr.Len()) {
		stop = int64(arr.Len())
	}
	if start < 0 {
		start = 0
	} else if start > stop {
		start = stop
	}

	r := NewArrayWithCap(int(stop - start))
	for k := start; k < stop; k++ {
		r.Append(arr.elems[k].v)
	}
	return r
}

// ArrayReverse returns the elements of a in reverse order.
func ArrayReverse(a Value) Value {
	arr, ok := a.(*Array)
	if !ok {
		return nil
	}
	n := arr.Len()
	r := NewArrayWithCap(n)
	for i := 0; i < n; i++ {
		r.Append(arr.elems[n-1-i].v)
	}
	return r
}
