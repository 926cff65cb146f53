// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regovm

import "github.com/cockroachdb/apd/v3"

// decOp applies a binary decimal operation, trapping on any condition
// the numeric layer cannot represent as a value.
func decOp(name string, op func(res, x, y *apd.Decimal) (apd.Condition, error), x, y *apd.Decimal) *apd.Decimal {
	res := new(apd.Decimal)
	cond, err := op(res, x, y)
	if err != nil || cond&apd.InvalidOperation != 0 {
		trap(name + ": invalid number")
	}
	return res
}

// Abs returns the absolute value of v.
func Abs(v Value) Value {
	x := numberToDec(v)
	if x == nil {
		return nil
	}
	res := new(apd.Decimal)
	if _, err := decCtx.Abs(res, x); err != nil {
		trap("abs: invalid number")
	}
	return decToNumber(res)
}

// Round rounds v to the nearest integer, halves away from zero.
func Round(v Value) Value {
	x := numberToDec(v)
	if x == nil {
		return nil
	}
	res := new(apd.Decimal)
	if _, err := decCtx.RoundToIntegralValue(res, x); err != nil {
		trap("round: invalid number")
	}
	return decToNumber(res)
}

// Ceil rounds v up to the nearest integer.
func Ceil(v Value) Value {
	x := numberToDec(v)
	if x == nil {
		return nil
	}
	res := new(apd.Decimal)
	if _, err := decCtx.Ceil(res, x); err != nil {
		trap("ceil: invalid number")
	}
	return decToNumber(res)
}

// Floor rounds v down to the nearest integer.
func Floor(v Value) Value {
	x := numberToDec(v)
	if x == nil {
		return nil
	}
	res := new(apd.Decimal)
	if _, err := decCtx.Floor(res, x); err != nil {
		trap("floor: invalid number")
	}
	return decToNumber(res)
}

// Plus returns a + b.
func Plus(a, b Value) Value {
	x, y := numberToDec(a), numberToDec(b)
	if x == nil || y == nil {
		return nil
	}
	return decToNumber(decOp("plus", decCtx.Add, x, y))
}

// Minus returns a - b on numbers, and the set difference on two sets.
func Minus(a, b Value) Value {
	x, y := numberToDec(a), numberToDec(b)
	if x != nil && y != nil {
		return decToNumber(decOp("minus", decCtx.Sub, x, y))
	}
	return SetDiff(a, b)
}

// Multiply returns a * b.
func Multiply(a, b Value) Value {
	x, y := numberToDec(a), numberToDec(b)
	if x == nil || y == nil {
		return nil
	}
	return decToNumber(decOp("multiply", decCtx.Mul, x, y))
}

// Divide returns a / b. Division by zero is undefined rather than a
// trap: the caller observes an absent result and propagates it.
func Divide(a, b Value) Value {
	x, y := numberToDec(a), numberToDec(b)
	if x == nil || y == nil {
		return nil
	}
	res := new(apd.Decimal)
	cond, err := decCtx.Quo(res, x, y)
	if cond&(apd.DivisionByZero|apd.DivisionUndefined) != 0 {
		return nil
	}
	if err != nil || cond&apd.InvalidOperation != 0 {
		trap("divide: invalid number")
	}
	return decToNumber(res)
}

// Rem returns the remainder of a / b; a remainder that cannot be
// represented exactly, or that is not an integer, traps.
func Rem(a, b Value) Value {
	x, y := numberToDec(a), numberToDec(b)
	if x == nil || y == nil {
		return nil
	}
	res := new(apd.Decimal)
	cond, err := decCtx.Rem(res, x, y)
	if err != nil || cond != 0 {
		trap("rem: non-integer remainder")
	}
	var integral apd.Decimal
	if cond, err := decCtx.RoundToIntegralExact(&integral, res); err != nil || cond&apd.Inexact != 0 {
		trap("rem: non-integer remainder")
	}
	return decToNumber(res)
}
