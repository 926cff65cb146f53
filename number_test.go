// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regovm

import "testing"

func TestNumberTryInt(t *testing.T) {
	tests := []struct {
		n    *Number
		want int64
		ok   bool
	}{
		{NewInt(42), 42, true},
		{NewInt(-7), -7, true},
		{NewNumberRef("42"), 42, true},
		{NewNumberRef("-42"), -42, true},
		{NewNumberRef("4.5"), 0, false},
		{NewNumberRef("1e3"), 0, false}, // exponent form is not an int literal
		{NewNumberRef("9223372036854775807"), 9223372036854775807, true},
		{NewNumberRef("9223372036854775808"), 0, false},
	}
	for _, tt := range tests {
		got, ok := tt.n.TryInt()
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("TryInt(%s) = %d, %v; want %d, %v", DumpValue(tt.n), got, ok, tt.want, tt.ok)
		}
	}
}

func TestNumberFloat(t *testing.T) {
	if f := NewInt(3).Float(); f != 3.0 {
		t.Errorf("Float(3) = %v", f)
	}
	if f := NewNumberRef("2.5").Float(); f != 2.5 {
		t.Errorf("Float(2.5) = %v", f)
	}
	if f := NewNumberRef("1e3").Float(); f != 1000.0 {
		t.Errorf("Float(1e3) = %v", f)
	}
}

func TestDecToNumberNarrows(t *testing.T) {
	// Results in int32 range come back as ints and dump in decimal.
	v := Plus(NewInt(1), NewInt(2))
	n := v.(*Number)
	if n.repr != numberReprInt {
		t.Errorf("3 stored as repr %d", n.repr)
	}

	// Results beyond int32 fall back to a decimal string.
	v = Plus(NewInt(1<<40), NewInt(0))
	n = v.(*Number)
	if n.repr != numberReprRef {
		t.Errorf("2^40 stored as repr %d", n.repr)
	}
	if Compare(v, NewInt(1<<40)) != 0 {
		t.Errorf("2^40 round trip = %s", DumpValue(v))
	}
}

func TestNumberShallowCopy(t *testing.T) {
	for _, n := range []*Number{NewInt(7), NewNumberRef("7.5"), NewFloat(0.25)} {
		cpy := ShallowCopy(n)
		if cpy == Value(n) {
			t.Errorf("shallow copy returned the same number")
		}
		if Compare(cpy, n) != 0 {
			t.Errorf("copy of %s compares unequal", DumpValue(n))
		}
		if Hash(cpy) != Hash(n) {
			t.Errorf("copy of %s hashes differently", DumpValue(n))
		}
	}
}

func TestNumberHashAcrossReprs(t *testing.T) {
	// All representations of the same value hash identically.
	reprs := []Value{NewInt(2), NewNumberRef("2"), NewNumberRef("2.0"), NewNumberRef("2e0")}
	for _, a := range reprs {
		for _, b := range reprs {
			if Compare(a, b) != 0 {
				t.Errorf("%s != %s", DumpValue(a), DumpValue(b))
			}
			if Hash(a) != Hash(b) {
				t.Errorf("hash(%s) != hash(%s)", DumpValue(a), DumpValue(b))
			}
		}
	}
}
