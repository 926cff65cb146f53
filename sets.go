// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regovm

// SetDiff returns the members of a not in b.
func SetDiff(a, b Value) Value {
	x, ok := a.(*Set)
	if !ok {
		return nil
	}
	y, ok := b.(*Set)
	if !ok {
		return nil
	}
	r := NewSet()
	for _, elem := range x.buckets {
		for ; elem != nil; elem = elem.next {
			if !y.Contains(elem.v) {
				r.Add(elem.v)
			}
		}
	}
	return r
}

// SetIntersection returns the members common to a and b.
func SetIntersection(a, b Value) Value {
	x, ok := a.(*Set)
	if !ok {
		return nil
	}
	y, ok := b.(*Set)
	if !ok {
		return nil
	}
	// Probe the smaller side against the larger.
	if y.Len() < x.Len() {
		x, y = y, x
	}
	r := NewSet()
	for _, elem := range x.buckets {
		for ; elem != nil; elem = elem.next {
			if y.Contains(elem.v) {
				r.Add(elem.v)
			}
		}
	}
	return r
}

// SetUnion returns the members of either a or b.
func SetUnion(a, b Value) Value {
	x, ok := a.(*Set)
	if !ok {
		return nil
	}
	y, ok := b.(*Set)
	if !ok {
		return nil
	}
	r := NewSetWithCap(x.Len() + y.Len())
	for _, elem := range x.buckets {
		for ; elem != nil; elem = elem.next {
			r.Add(elem.v)
		}
	}
	for _, elem := range y.buckets {
		for ; elem != nil; elem = elem.next {
			r.Add(elem.v)
		}
	}
	return r
}

// SetsIntersection intersects all member sets of xs. The empty outer
// set yields the empty set.
func SetsIntersection(xs Value) Value {
	outer, ok := xs.(*Set)
	if !ok {
		return nil
	}
	var r Value
	for _, elem := range outer.buckets {
		for ; elem != nil; elem = elem.next {
			if _, ok := elem.v.(*Set); !ok {
				return nil
			}
			if r == nil {
				r = elem.v
				continue
			}
			r = SetIntersection(r, elem.v)
		}
	}
	if r == nil {
		return NewSet()
	}
	// The single-member case must still return a fresh set.
	if _, ok := r.(*Set); ok && outer.Len() == 1 {
		return SetUnion(r, NewSet())
	}
	return r
}

// SetsUnion unions all member sets of xs.
func SetsUnion(xs Value) Value {
	outer, ok := xs.(*Set)
	if !ok {
		return nil
	}
	r := NewSet()
	for _, elem := range outer.buckets {
		for ; elem != nil; elem = elem.next {
			inner, ok := elem.v.(*Set)
			if !ok {
				return nil
			}
			for _, e := range inner.buckets {
				for ; e != nil; e = e.next {
					r.Add(e.v)
				}
			}
		}
	}
	return r
}
