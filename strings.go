// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// String builtins. Operations index by UTF-8 code point unless noted;
// invalid UTF-8 encountered during text manipulation traps.

package regovm

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/apd/v3"
)

// runeCount returns the number of code points in s, trapping on invalid
// UTF-8 (overlong forms and surrogate encodings are invalid).
func runeCount(s string) int {
	n := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			trap("string: invalid unicode")
		}
		i += size
		n++
	}
	return n
}

func validOrTrap(s string) string {
	if !utf8.ValidString(s) {
		trap("string: invalid unicode")
	}
	return s
}

func stringValue(v Value) (string, bool) {
	s, ok := v.(*String)
	if !ok {
		return "", false
	}
	return s.v, true
}

// Concat joins an array or set of strings with a separator. Set
// elements join in set iteration order.
func Concat(sep, coll Value) Value {
	join, ok := stringValue(sep)
	if !ok {
		return nil
	}

	var parts []string
	switch coll := coll.(type) {
	case *Array:
		for i := range coll.elems {
			s, ok := stringValue(coll.elems[i].v)
			if !ok {
				return nil
			}
			parts = append(parts, s)
		}
	case *Set:
		it := NewIterator(coll)
		for v := it.Next(); v != nil; v = it.Next() {
			s, ok := stringValue(v)
			if !ok {
				return nil
			}
			parts = append(parts, s)
		}
	default:
		return nil
	}

	return NewString(strings.Join(parts, join))
}

// AnyPrefixMatch reports whether any string in a (string, array or set)
// starts with any prefix in b (string, array or set). Matching flattens
// one level per side.
func AnyPrefixMatch(a, b Value) Value {
	return anyMatch(a, b, func(s, prefix string) bool {
		return strings.HasPrefix(s, prefix)
	})
}

// AnySuffixMatch is AnyPrefixMatch for suffixes.
func AnySuffixMatch(a, b Value) Value {
	return anyMatch(a, b, func(s, suffix string) bool {
		return strings.HasSuffix(s, suffix)
	})
}

func anyMatch(a, b Value, match func(s, affix string) bool) Value {
	switch a.Type() {
	case TypeString:
	case TypeArray, TypeSet:
		it := NewIterator(a)
		for curr := it.Next(); curr != nil; curr = it.Next() {
			elem := Get(a, curr)
			if elem == nil || elem.Type() != TypeString {
				return nil
			}
			res := anyMatch(elem, b, match)
			if res == nil {
				return nil
			}
			if res.(*Boolean).v {
				return res
			}
		}
		return NewBoolean(false)
	default:
		return nil
	}

	switch b.Type() {
	case TypeString:
	case TypeArray, TypeSet:
		it := NewIterator(b)
		for curr := it.Next(); curr != nil; curr = it.Next() {
			elem := Get(b, curr)
			if elem == nil || elem.Type() != TypeString {
				return nil
			}
			res := anyMatch(a, elem, match)
			if res == nil {
				return nil
			}
			if res.(*Boolean).v {
				return res
			}
		}
		return NewBoolean(false)
	default:
		return nil
	}

	return NewBoolean(match(a.(*String).v, b.(*String).v))
}

// Contains reports whether b occurs as a byte substring of a.
func Contains(a, b Value) Value {
	s, ok := stringValue(a)
	if !ok {
		return nil
	}
	substr, ok := stringValue(b)
	if !ok {
		return nil
	}
	return NewBoolean(strings.Contains(s, substr))
}

// StartsWith reports whether a begins with b.
func StartsWith(a, b Value) Value {
	s, ok := stringValue(a)
	if !ok {
		return nil
	}
	prefix, ok := stringValue(b)
	if !ok {
		return nil
	}
	return NewBoolean(strings.HasPrefix(s, prefix))
}

// EndsWith reports whether a ends with b.
func EndsWith(a, b Value) Value {
	s, ok := stringValue(a)
	if !ok {
		return nil
	}
	suffix, ok := stringValue(b)
	if !ok {
		return nil
	}
	return NewBoolean(strings.HasSuffix(s, suffix))
}

// IndexOf returns the code point index of the first occurrence of b in
// a, or -1.
func IndexOf(a, b Value) Value {
	s, ok := stringValue(a)
	if !ok {
		return nil
	}
	substr, ok := stringValue(b)
	if !ok {
		return nil
	}
	n := strings.Index(s, substr)
	if n < 0 {
		return NewInt(-1)
	}
	return NewInt(int64(runeCount(s[:n])))
}

// FormatInt truncates a to an integer and formats it in base 2, 8, 10
// or 16.
func FormatInt(a, b Value) Value {
	if _, ok := a.(*Number); !ok {
		return nil
	}
	base, ok := b.(*Number)
	if !ok {
		return nil
	}
	v, ok := base.TryInt()
	if !ok {
		return nil
	}
	switch v {
	case 2, 8, 10, 16:
	default:
		return nil
	}

	input := numberToDec(a)
	var trunc apd.Decimal
	tctx := *decCtx
	tctx.Rounding = apd.RoundDown
	if _, err := tctx.RoundToIntegralValue(&trunc, input); err != nil {
		trap("strings: truncate failed")
	}
	w, err := trunc.Int64()
	if err != nil {
		trap("strings: integer conversion failed")
	}
	return NewString(strconv.FormatInt(w, int(v)))
}

// Replace replaces every occurrence of old in s with new.
func Replace(a, b, c Value) Value {
	s, ok := stringValue(a)
	if !ok {
		return nil
	}
	old, ok := stringValue(b)
	if !ok {
		return nil
	}
	repl, ok := stringValue(c)
	if !ok {
		return nil
	}
	return NewString(strings.ReplaceAll(s, old, repl))
}

// ReplaceN applies an old→new mapping to s in object iteration order,
// not simultaneously.
func ReplaceN(a, b Value) Value {
	patterns, ok := a.(*Object)
	if !ok {
		return nil
	}
	if _, ok := b.(*String); !ok {
		return nil
	}

	result := b
	for _, elem := range patterns.buckets {
		for ; elem != nil; elem = elem.next {
			if elem.k.Type() != TypeString || elem.v.Type() != TypeString {
				return nil
			}
			result = Replace(result, elem.k, elem.v)
		}
	}
	return result
}

// Reverse reverses s by code points.
func Reverse(a Value) Value {
	s, ok := stringValue(a)
	if !ok {
		return nil
	}
	reversed := make([]byte, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			trap("string: invalid unicode")
		}
		copy(reversed[len(s)-i-size:], s[i:i+size])
		i += size
	}
	return NewString(string(reversed))
}

// Split splits s around d. The empty delimiter splits at every code
// point boundary.
func Split(a, b Value) Value {
	s, ok := stringValue(a)
	if !ok {
		return nil
	}
	d, ok := stringValue(b)
	if !ok {
		return nil
	}

	if d == "" {
		arr := NewArray()
		for i := 0; i < len(s); {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				trap("string: invalid unicode")
			}
			arr.Append(NewString(s[i : i+size]))
			i += size
		}
		return arr
	}

	parts := strings.Split(s, d)
	arr := NewArrayWithCap(len(parts))
	for _, p := range parts {
		arr.Append(NewString(p))
	}
	return arr
}

// Substring returns length code points of s starting at code point
// index start. A negative length means to the end; start must be
// non-negative.
func Substring(a, b, c Value) Value {
	s, ok := stringValue(a)
	if !ok {
		return nil
	}
	bn, ok := b.(*Number)
	if !ok {
		return nil
	}
	cn, ok := c.(*Number)
	if !ok {
		return nil
	}
	start, ok := bn.TryInt()
	if !ok {
		return nil
	}
	length, ok := cn.TryInt()
	if !ok {
		return nil
	}
	if start < 0 {
		return nil
	}
	if length == 0 {
		return NewString("")
	}

	spos, epos := len(s), len(s)
	units := int64(0)
	for i := 0; i < len(s); units++ {
		if units == start {
			spos = i
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			trap("string: invalid unicode")
		}
		if units >= start {
			if length < 0 {
				// Everything from start to end.
				break
			}
			if length == units-start {
				epos = i
				break
			}
		}
		i += size
	}

	return NewString(s[spos:epos])
}

// Trim trims every leading and trailing code point of a contained in b.
func Trim(a, b Value) Value {
	s := TrimLeft(a, b)
	if s == nil {
		return nil
	}
	return TrimRight(s, b)
}

// TrimLeft trims leading code points of a contained in b.
func TrimLeft(a, b Value) Value {
	s, ok := stringValue(a)
	if !ok {
		return nil
	}
	cutset, ok := stringValue(b)
	if !ok {
		return nil
	}
	return NewString(strings.TrimLeft(validOrTrap(s), validOrTrap(cutset)))
}

// TrimRight trims trailing code points of a contained in b.
func TrimRight(a, b Value) Value {
	s, ok := stringValue(a)
	if !ok {
		return nil
	}
	cutset, ok := stringValue(b)
	if !ok {
		return nil
	}
	return NewString(strings.TrimRight(validOrTrap(s), validOrTrap(cutset)))
}

// TrimPrefix removes b from the front of a when present.
func TrimPrefix(a, b Value) Value {
	s, ok := stringValue(a)
	if !ok {
		return nil
	}
	prefix, ok := stringValue(b)
	if !ok {
		return nil
	}
	return NewString(strings.TrimPrefix(s, prefix))
}

// TrimSuffix removes b from the end of a when present.
func TrimSuffix(a, b Value) Value {
	s, ok := stringValue(a)
	if !ok {
		return nil
	}
	suffix, ok := stringValue(b)
	if !ok {
		return nil
	}
	return NewString(strings.TrimSuffix(s, suffix))
}

// TrimSpace trims code points with the Unicode White_Space property
// from both ends of a.
func TrimSpace(a Value) Value {
	s, ok := stringValue(a)
	if !ok {
		return nil
	}
	return NewString(strings.TrimSpace(validOrTrap(s)))
}

// Lower maps a to lower case.
func Lower(a Value) Value {
	s, ok := stringValue(a)
	if !ok {
		return nil
	}
	if isASCII(s) {
		b := make([]byte, len(s))
		for i := 0; i < len(s); i++ {
			c := s[i]
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			b[i] = c
		}
		return NewString(string(b))
	}
	return NewString(strings.ToLower(validOrTrap(s)))
}

// Upper maps a to upper case.
func Upper(a Value) Value {
	s, ok := stringValue(a)
	if !ok {
		return nil
	}
	if isASCII(s) {
		b := make([]byte, len(s))
		for i := 0; i < len(s); i++ {
			c := s[i]
			if 'a' <= c && c <= 'z' {
				c -= 'a' - 'A'
			}
			b[i] = c
		}
		return NewString(string(b))
	}
	return NewString(strings.ToUpper(validOrTrap(s)))
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
