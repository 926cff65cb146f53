// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Regex builtins over the RE2-compatible engine in package regexp.
// Compiled patterns are cached per VM, keyed by pattern source.

package regovm

import "regexp"

const (
	cacheSlotRegex = 0
	cacheSlotGlob  = 1
)

// RegexIsValid reports whether pattern compiles as RE2.
func RegexIsValid(pattern Value) Value {
	p, ok := pattern.(*String)
	if !ok {
		return NewBoolean(false)
	}
	_, err := regexp.Compile(p.v)
	return NewBoolean(err == nil)
}

func (vm *VM) regexCache() *builtinCache {
	c, _ := vm.heap.CacheGet(cacheSlotRegex).(*builtinCache)
	if c == nil {
		c = newBuiltinCache(0)
		vm.heap.CacheSet(cacheSlotRegex, c)
	}
	return c
}

// compileRegex compiles a pattern, using an earlier compilation if
// possible. Invalid patterns return nil.
func (vm *VM) compileRegex(pattern string) *regexp.Regexp {
	c := vm.regexCache()
	if re, ok := c.get(pattern); ok {
		return re.(*regexp.Regexp)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}
	c.put(pattern, re)
	return re
}

// RegexMatch reports whether value contains a match of pattern.
func (vm *VM) RegexMatch(pattern, value Value) Value {
	p, ok := pattern.(*String)
	if !ok {
		return nil
	}
	v, ok := value.(*String)
	if !ok {
		return nil
	}
	re := vm.compileRegex(p.v)
	if re == nil {
		return nil
	}
	return NewBoolean(re.MatchString(v.v))
}

// RegexFindAllStringSubmatch returns up to number matches of pattern in
// value, each an array of the match and its capture groups. number -1
// means all. Iteration follows the global-replace protocol: an empty
// match abutting the previous match end is skipped with a UTF-8-aware
// advance.
func (vm *VM) RegexFindAllStringSubmatch(pattern, value, number Value) Value {
	p, ok := pattern.(*String)
	if !ok {
		return nil
	}
	v, ok := value.(*String)
	if !ok {
		return nil
	}
	num, ok := number.(*Number)
	if !ok {
		return nil
	}
	limit, ok := num.TryInt()
	if !ok {
		return nil
	}

	re := vm.compileRegex(p.v)
	if re == nil {
		return nil
	}

	result := NewArray()
	matches := re.FindAllStringSubmatch(v.v, int(limit))
	for _, m := range matches {
		r := NewArrayWithCap(len(m))
		for _, sub := range m {
			r.Append(NewString(sub))
		}
		result.Append(r)
	}
	return result
}
