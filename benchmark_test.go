// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regovm

import (
	"fmt"
	"testing"
)

func BenchmarkHeapAllocFree(b *testing.B) {
	h := NewHeap()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := h.Alloc(64)
		h.Free(p)
	}
}

func BenchmarkHeapCheckpoint(b *testing.B) {
	h := NewHeap()
	h0 := h.PtrGet()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := 0; j < 64; j++ {
			h.Alloc(uint32(16 + j))
		}
		h.PtrSet(h0)
	}
}

func BenchmarkHeapFreeBulk(b *testing.B) {
	h := NewHeap()
	ptrs := make([]uint32, 256)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := range ptrs {
			ptrs[j] = h.Alloc(200)
		}
		for j := range ptrs {
			h.FreeBulk(ptrs[j])
		}
		h.FreeBulkCommit()
	}
}

func BenchmarkCompare(b *testing.B) {
	x, _ := ParseJSON([]byte(`{"a":[1,2,3],"b":{"c":"d"}}`))
	y, _ := ParseJSON([]byte(`{"a":[1,2,3],"b":{"c":"e"}}`))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Compare(x, y)
	}
}

func BenchmarkObjectInsert(b *testing.B) {
	keys := make([]Value, 256)
	for i := range keys {
		keys[i] = NewString(fmt.Sprintf("key-%d", i))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		obj := NewObject()
		for _, k := range keys {
			obj.Insert(k, k)
		}
	}
}

func BenchmarkParseJSON(b *testing.B) {
	doc := []byte(`{"users":[{"name":"alice","roles":["admin","dev"]},{"name":"bob","roles":[]}],"count":2}`)
	b.SetBytes(int64(len(doc)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseJSON(doc); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDumpJSON(b *testing.B) {
	v, _ := ParseJSON([]byte(`{"users":[{"name":"alice","roles":["admin","dev"]}]}`))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		DumpJSON(v)
	}
}

func BenchmarkRegexMatchCached(b *testing.B) {
	vm := NewVM()
	pattern := str(`^user-[0-9]+$`)
	value := str("user-42")
	vm.RegexMatch(pattern, value)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		vm.RegexMatch(pattern, value)
	}
}

func BenchmarkGlobMatchCached(b *testing.B) {
	vm := NewVM()
	delims, _ := ParseJSON([]byte(`["/"]`))
	pattern := str("api/*/users/**")
	value := str("api/v1/users/42/roles")
	vm.GlobMatch(pattern, delims, value)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		vm.GlobMatch(pattern, delims, value)
	}
}
