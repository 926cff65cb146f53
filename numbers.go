// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regovm

import "github.com/cockroachdb/apd/v3"

// NumbersRange returns the inclusive integer range from a to b as an
// array, stepping by 1 or -1. Non-integer endpoints are undefined.
func NumbersRange(a, b Value) Value {
	x := numberToDec(a)
	y := numberToDec(b)
	if x == nil || y == nil {
		return nil
	}

	var i1, i2 apd.Decimal
	cond, err := decCtx.RoundToIntegralExact(&i1, x)
	if err != nil || cond&apd.Inexact != 0 {
		return nil
	}
	cond, err = decCtx.RoundToIntegralExact(&i2, y)
	if err != nil || cond&apd.Inexact != 0 {
		return nil
	}

	step := apd.New(1, 0)
	if i1.Cmp(&i2) > 0 {
		step = apd.New(-1, 0)
	}

	var diff apd.Decimal
	if _, err := decCtx.Sub(&diff, &i1, &i2); err != nil {
		trap("numbers.range: sub")
	}
	if _, err := decCtx.Abs(&diff, &diff); err != nil {
		trap("numbers.range: abs")
	}
	n, err := diff.Int64()
	if err != nil {
		trap("numbers.range: int")
	}

	arr := NewArrayWithCap(int(n) + 1)
	curr := new(apd.Decimal).Set(&i1)
	for ; n >= 0; n-- {
		arr.Append(newNumberDec(new(apd.Decimal).Set(curr)))
		if _, err := decCtx.Add(curr, curr, step); err != nil {
			trap("numbers.range: add")
		}
	}
	return arr
}
