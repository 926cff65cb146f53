// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Bitwise builtins with arbitrary-width two's-complement semantics:
// ^x == -x-1, negatives behave as an infinite sign extension. math/big
// provides exactly these semantics for integers of any width.

package regovm

import (
	"math/big"

	"github.com/cockroachdb/apd/v3"
)

// numberToBigInt converts v to an arbitrary-precision integer. Values
// that are not numbers or not integral report false.
func numberToBigInt(v Value) (*big.Int, bool) {
	d := numberToDec(v)
	if d == nil {
		return nil, false
	}
	var r apd.Decimal
	cond, err := decCtx.RoundToIntegralExact(&r, d)
	if err != nil || cond&apd.Inexact != 0 {
		return nil, false
	}
	z, ok := new(big.Int).SetString(r.Text('f'), 10)
	if !ok {
		trap("bits: integer conversion")
	}
	return z, true
}

func bigIntToNumber(z *big.Int) Value {
	if z.IsInt64() {
		return decToNumber(apd.New(z.Int64(), 0))
	}
	return NewNumberRef(z.String())
}

// BitsAnd returns a & b.
func BitsAnd(a, b Value) Value {
	x, ok := numberToBigInt(a)
	if !ok {
		return nil
	}
	y, ok := numberToBigInt(b)
	if !ok {
		return nil
	}
	return bigIntToNumber(new(big.Int).And(x, y))
}

// BitsOr returns a | b.
func BitsOr(a, b Value) Value {
	x, ok := numberToBigInt(a)
	if !ok {
		return nil
	}
	y, ok := numberToBigInt(b)
	if !ok {
		return nil
	}
	return bigIntToNumber(new(big.Int).Or(x, y))
}

// BitsXor returns a ^ b.
func BitsXor(a, b Value) Value {
	x, ok := numberToBigInt(a)
	if !ok {
		return nil
	}
	y, ok := numberToBigInt(b)
	if !ok {
		return nil
	}
	return bigIntToNumber(new(big.Int).Xor(x, y))
}

// BitsNegate returns ^a == -a-1.
func BitsNegate(a Value) Value {
	x, ok := numberToBigInt(a)
	if !ok {
		return nil
	}
	return bigIntToNumber(new(big.Int).Not(x))
}

// BitsShiftLeft returns a << b.
func BitsShiftLeft(a, b Value) Value {
	x, ok := numberToBigInt(a)
	if !ok {
		return nil
	}
	n, ok := shiftCount(b)
	if !ok {
		return nil
	}
	return bigIntToNumber(new(big.Int).Lsh(x, n))
}

// BitsShiftRight returns a >> b (arithmetic shift).
func BitsShiftRight(a, b Value) Value {
	x, ok := numberToBigInt(a)
	if !ok {
		return nil
	}
	n, ok := shiftCount(b)
	if !ok {
		return nil
	}
	return bigIntToNumber(new(big.Int).Rsh(x, n))
}

func shiftCount(b Value) (uint, bool) {
	num, ok := b.(*Number)
	if !ok {
		return 0, false
	}
	n, ok := num.TryInt()
	if !ok || n < 0 {
		return 0, false
	}
	return uint(n), true
}
