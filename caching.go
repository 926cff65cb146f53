// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regovm

// builtinCache is a string-keyed cache for builtin-local state such as
// compiled patterns. It lives in a heap cache slot, so a heap pointer
// reset discards it together with everything else evaluation built.
// The VM is single threaded; no locking is needed.
type builtinCache struct {
	entries    map[string]interface{}
	maxEntries int // 0 means unbounded

	// Statistics
	hits   uint64
	misses uint64
}

func newBuiltinCache(maxEntries int) *builtinCache {
	return &builtinCache{
		entries:    make(map[string]interface{}),
		maxEntries: maxEntries,
	}
}

func (c *builtinCache) get(key string) (interface{}, bool) {
	v, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

func (c *builtinCache) put(key string, v interface{}) {
	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		// Evict an arbitrary entry; patterns repeat heavily within an
		// evaluation, so precision does not pay for itself here.
		for k := range c.entries {
			delete(c.entries, k)
			break
		}
	}
	c.entries[key] = v
}

func (c *builtinCache) len() int { return len(c.entries) }
