// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regovm

import "strings"

// GlobMatch reports whether match satisfies pattern. Delimiters bound
// what `?` and `*` can cross; compiled translations are cached per
// (pattern, delimiters).
func (vm *VM) GlobMatch(pattern, delimiters, match Value) Value {
	p, ok := pattern.(*String)
	if !ok {
		return nil
	}
	d, ok := delimiters.(*Array)
	if !ok {
		return nil
	}
	if _, ok := match.(*String); !ok {
		return nil
	}

	delims := make([]string, 0, d.Len())
	for i := range d.elems {
		s, ok := d.elems[i].v.(*String)
		if !ok {
			return nil
		}
		delims = append(delims, s.v)
	}

	c, _ := vm.heap.CacheGet(cacheSlotGlob).(*builtinCache)
	if c == nil {
		c = newBuiltinCache(0)
		vm.heap.CacheSet(cacheSlotGlob, c)
	}

	key := p.v + "\x00" + strings.Join(delims, "\x00")
	var re2 string
	if cached, ok := c.get(key); ok {
		re2 = cached.(string)
	} else {
		var errMsg string
		re2, errMsg = globTranslate(p.v, delims)
		if errMsg != "" {
			return nil
		}
		c.put(key, re2)
	}

	return vm.RegexMatch(NewString(re2), match)
}
