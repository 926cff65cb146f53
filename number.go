// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regovm

import (
	"math"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

type numberRepr int

const (
	numberReprInt numberRepr = iota + 1
	numberReprRef
	numberReprDec
)

// Number is a JSON number. The representation is chosen at construction
// time and is not observable: equality, ordering and hashing are defined
// on the mathematical value.
type Number struct {
	repr numberRepr
	i    int64
	ref  string
	dec  *apd.Decimal
}

func NewInt(i int64) *Number {
	return &Number{repr: numberReprInt, i: i}
}

// NewNumberRef wraps a decimal string as parsed from a document. The
// string is kept verbatim so dumping round-trips the input exactly.
func NewNumberRef(s string) *Number {
	return &Number{repr: numberReprRef, ref: s}
}

// NewFloat stores f as its shortest decimal representation.
func NewFloat(f float64) *Number {
	return &Number{repr: numberReprRef, ref: strconv.FormatFloat(f, 'g', -1, 64)}
}

func newNumberDec(d *apd.Decimal) *Number {
	return &Number{repr: numberReprDec, dec: d}
}

func (*Number) Type() Type { return TypeNumber }

// TryInt reports the value as an int64 when it is exactly representable.
func (n *Number) TryInt() (int64, bool) {
	switch n.repr {
	case numberReprInt:
		return n.i, true
	case numberReprRef:
		i, err := strconv.ParseInt(n.ref, 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	case numberReprDec:
		i, err := n.dec.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	}
	trap("number: illegal repr")
	return 0, false
}

// Float returns the float64 projection of the value. The projection may
// be lossy; it backs hashing, where collisions across representations of
// the same value are the point.
func (n *Number) Float() float64 {
	switch n.repr {
	case numberReprInt:
		return float64(n.i)
	case numberReprRef:
		f, err := strconv.ParseFloat(n.ref, 64)
		if err != nil {
			trap("number: illegal ref")
		}
		return f
	case numberReprDec:
		f, err := n.dec.Float64()
		if err != nil {
			trap("number: illegal dec")
		}
		return f
	}
	trap("number: illegal repr")
	return 0
}

func (n *Number) shallowCopy() *Number {
	switch n.repr {
	case numberReprInt:
		return NewInt(n.i)
	case numberReprRef:
		return NewNumberRef(n.ref)
	case numberReprDec:
		// Decimal handles are content addressed and reshared.
		return newNumberDec(n.dec)
	}
	trap("number: illegal repr")
	return nil
}

// The decimal context: quiet status handling (no traps) and half-up
// rounding, shared by every operation in the numeric layer.
const decimalPrecision = 500

var decCtx = func() *apd.Context {
	c := apd.BaseContext.WithPrecision(decimalPrecision)
	c.Rounding = apd.RoundHalfUp
	c.Traps = 0
	return c
}()

// numberToDec converts a value-layer number into a decimal, or nil when
// v is not a number. A ref that fails to parse traps: the lexer already
// validated the grammar.
func numberToDec(v Value) *apd.Decimal {
	n, ok := v.(*Number)
	if !ok {
		return nil
	}
	switch n.repr {
	case numberReprInt:
		return apd.New(n.i, 0)
	case numberReprRef:
		d, _, err := apd.NewFromString(n.ref)
		if err != nil {
			trap("number: invalid ref")
		}
		return d
	case numberReprDec:
		return n.dec
	}
	trap("number: illegal repr")
	return nil
}

// decToNumber narrows d to an int32-ranged integer when exact, otherwise
// stores the scientific-notation text as a ref.
func decToNumber(d *apd.Decimal) Value {
	if d == nil {
		return nil
	}
	if i, err := d.Int64(); err == nil && i >= math.MinInt32 && i <= math.MaxInt32 {
		return NewInt(i)
	}
	return NewNumberRef(d.Text('g'))
}

func compareNumbers(a, b *Number) int {
	la, oka := a.TryInt()
	lb, okb := b.TryInt()
	if oka && okb {
		switch {
		case la < lb:
			return -1
		case la > lb:
			return 1
		}
		return 0
	}
	return numberToDec(a).Cmp(numberToDec(b))
}

// numberFromString parses s as a number, or returns nil when s is not a
// valid JSON number.
func numberFromString(s string) Value {
	lex := newJSONLexer(s)
	if tok := lex.read(); tok != jsonTokenNumber || lex.offset() != len(s) {
		return nil
	}
	return NewNumberRef(lex.buf)
}
