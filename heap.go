// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// A specialized allocator over a linear memory growing in 64 KiB pages.
// Free blocks are kept on segregated lists: four fixed size classes and
// one address-ordered variable list. The bump pointer can be
// checkpointed and restored, which reclaims everything allocated above
// the checkpoint in one step.

package regovm

import (
	"encoding/binary"
	"sort"
)

const (
	wasmPageSize = 65536

	// Block header: size, prev, next as little-endian u32 offsets.
	// Offset 0 terminates a list; no block ever lives there.
	heapBlockHeaderSize = 12

	heapBaseDefault = 8
)

// freeList heads a doubly linked list of free blocks threaded through
// the block headers in linear memory.
type freeList struct {
	fixedSize bool
	size      uint32 // block size if fixed; minimum block size if not
	head      uint32
}

const heapVariableMin = 128

func newFreeLists() [5]freeList {
	return [5]freeList{
		{fixedSize: true, size: 4},
		{fixedSize: true, size: 8},
		{fixedSize: true, size: 16},
		{fixedSize: true, size: 64},
		{fixedSize: false, size: heapVariableMin},
	}
}

// Heap is the linear memory shared between the module and its host.
// All state is confined to the single thread owning the instance.
type Heap struct {
	mem       []byte
	base      uint32
	ptr       uint32
	top       uint32
	free      [5]freeList
	stash     [5]freeList
	bulk      []uint32 // deferred variable-size frees, arbitrary order
	bulkDirty bool
	cache     [8]interface{}
}

func NewHeap() *Heap {
	h := &Heap{mem: make([]byte, wasmPageSize)}
	h.Init(heapBaseDefault)
	return h
}

// Init places the heap base: everything below it belongs to the host
// (stack and data in a Wasm layout).
func (h *Heap) Init(base uint32) {
	h.base = base
	h.ptr = base
	h.top = uint32(len(h.mem))
	h.initFree()
	h.initStash()
}

func (h *Heap) initFree() {
	h.free = newFreeLists()
	h.bulk = h.bulk[:0]
	h.bulkDirty = false
	for i := range h.cache {
		h.cache[i] = nil
	}
}

func (h *Heap) initStash() {
	h.stash = newFreeLists()
}

func (h *Heap) u32(off uint32) uint32 {
	return binary.LittleEndian.Uint32(h.mem[off:])
}

func (h *Heap) setU32(off, v uint32) {
	binary.LittleEndian.PutUint32(h.mem[off:], v)
}

func (h *Heap) blockSize(b uint32) uint32   { return h.u32(b) }
func (h *Heap) setBlockSize(b, v uint32)    { h.setU32(b, v) }
func (h *Heap) blockPrev(b uint32) uint32   { return h.u32(b + 4) }
func (h *Heap) setBlockPrev(b, prev uint32) { h.setU32(b+4, prev) }
func (h *Heap) blockNext(b uint32) uint32   { return h.u32(b + 8) }
func (h *Heap) setBlockNext(b, next uint32) { h.setU32(b+8, next) }
func (h *Heap) blockData(b uint32) uint32   { return b + heapBlockHeaderSize }
func (h *Heap) blockEnd(b uint32) uint32    { return b + heapBlockHeaderSize + h.blockSize(b) }

// classFor returns the free list applicable for the requested size.
func (h *Heap) classFor(size uint32) *freeList {
	for i := 0; i < len(h.free)-1; i++ {
		if size <= h.free[i].size {
			return &h.free[i]
		}
	}
	return &h.free[len(h.free)-1]
}

func (h *Heap) grow(need uint32) {
	pages := need/wasmPageSize + 1
	h.mem = append(h.mem, make([]byte, pages*wasmPageSize)...)
	h.top += pages * wasmPageSize
}

func (h *Heap) newAllocation(size uint32) uint32 {
	b := h.ptr
	blockSize := heapBlockHeaderSize + size
	h.ptr += blockSize
	if h.ptr >= h.top {
		h.grow(blockSize)
	}
	h.setBlockSize(b, size)
	h.setBlockPrev(b, 0)
	h.setBlockNext(b, 0)
	return h.blockData(b)
}

// Alloc returns the offset of a region of at least size bytes. Free
// blocks are reused first; otherwise the bump pointer advances, growing
// the memory page-wise on demand.
func (h *Heap) Alloc(size uint32) uint32 {
	blocks := h.classFor(size)

	var b uint32
	if blocks.fixedSize {
		b = h.reuseFixed(blocks)
	} else {
		b = h.reuseVarying(blocks, size)
	}
	if b != 0 {
		return h.blockData(b)
	}

	if blocks.fixedSize {
		size = blocks.size
	}
	return h.newAllocation(size)
}

func (h *Heap) reuseFixed(blocks *freeList) uint32 {
	b := blocks.head
	if b == 0 {
		return 0
	}
	h.unlink(blocks, b)
	return b
}

// reuseVarying finds a free block of at least size bytes, splitting the
// found block when the tail still makes a useful block.
func (h *Heap) reuseVarying(blocks *freeList, size uint32) uint32 {
	if h.bulkDirty {
		h.FreeBulkCommit()
	}

	for b := blocks.head; b != 0; b = h.blockNext(b) {
		if h.blockSize(b) >= heapBlockHeaderSize+blocks.size+size {
			// Split: the tail block inherits this block's links.
			remaining := h.blockData(b) + size
			h.setBlockSize(remaining, h.blockSize(b)-(heapBlockHeaderSize+size))
			h.replace(blocks, b, remaining)
			h.setBlockSize(b, size)
			h.setBlockPrev(b, 0)
			h.setBlockNext(b, 0)
			return b
		}
		if h.blockSize(b) >= size {
			h.unlink(blocks, b)
			return b
		}
	}
	return 0
}

func (h *Heap) unlink(blocks *freeList, b uint32) {
	prev, next := h.blockPrev(b), h.blockNext(b)
	if prev == 0 {
		blocks.head = next
	} else {
		h.setBlockNext(prev, next)
	}
	if next != 0 {
		h.setBlockPrev(next, prev)
	}
	h.setBlockPrev(b, 0)
	h.setBlockNext(b, 0)
}

// replace installs nb in the list position of b.
func (h *Heap) replace(blocks *freeList, b, nb uint32) {
	prev, next := h.blockPrev(b), h.blockNext(b)
	h.setBlockPrev(nb, prev)
	h.setBlockNext(nb, next)
	if prev == 0 {
		blocks.head = nb
	} else {
		h.setBlockNext(prev, nb)
	}
	if next != 0 {
		h.setBlockPrev(next, nb)
	}
}

func (h *Heap) prepend(blocks *freeList, b uint32) {
	h.setBlockPrev(b, 0)
	h.setBlockNext(b, blocks.head)
	if blocks.head != 0 {
		h.setBlockPrev(blocks.head, b)
	}
	blocks.head = b
}

// Free returns the block holding data offset ptr to its free list.
// Variable-size blocks are inserted in address order and coalesced with
// their immediate neighbors.
func (h *Heap) Free(ptr uint32) {
	b := ptr - heapBlockHeaderSize
	blocks := h.classFor(h.blockSize(b))

	if blocks.fixedSize {
		h.prepend(blocks, b)
		return
	}

	// Find the free block just before this one.
	var prev uint32
	next := blocks.head
	for next != 0 && next < b {
		prev = next
		next = h.blockNext(next)
	}

	if prev != 0 && h.blockEnd(prev) == b {
		// Merge left, then possibly right.
		h.setBlockSize(prev, h.blockSize(prev)+heapBlockHeaderSize+h.blockSize(b))
		if next != 0 && h.blockEnd(prev) == next {
			h.setBlockSize(prev, h.blockSize(prev)+heapBlockHeaderSize+h.blockSize(next))
			h.setBlockNext(prev, h.blockNext(next))
			if h.blockNext(next) != 0 {
				h.setBlockPrev(h.blockNext(next), prev)
			}
		}
		return
	}

	if next != 0 && h.blockEnd(b) == next {
		// Merge right: b absorbs next and takes its place.
		h.setBlockSize(b, h.blockSize(b)+heapBlockHeaderSize+h.blockSize(next))
		h.setBlockPrev(b, prev)
		h.setBlockNext(b, h.blockNext(next))
		if prev == 0 {
			blocks.head = b
		} else {
			h.setBlockNext(prev, b)
		}
		if h.blockNext(next) != 0 {
			h.setBlockPrev(h.blockNext(next), b)
		}
		return
	}

	// Plain ordered insert between prev and next.
	h.setBlockPrev(b, prev)
	h.setBlockNext(b, next)
	if prev == 0 {
		blocks.head = b
	} else {
		h.setBlockNext(prev, b)
	}
	if next != 0 {
		h.setBlockPrev(next, b)
	}
}

// Realloc moves the allocation at ptr into a region of at least size
// bytes.
func (h *Heap) Realloc(ptr, size uint32) uint32 {
	b := ptr - heapBlockHeaderSize
	old := h.blockSize(b)
	if old > size {
		old = size
	}
	np := h.Alloc(size)
	copy(h.mem[np:np+old], h.mem[ptr:ptr+old])
	h.Free(ptr)
	return np
}

// FreeBulk defers the free of a variable-size block to the next commit;
// fixed-class blocks go straight to their list. O(1) per call.
func (h *Heap) FreeBulk(ptr uint32) {
	b := ptr - heapBlockHeaderSize
	blocks := h.classFor(h.blockSize(b))
	if blocks.fixedSize {
		h.prepend(blocks, b)
		return
	}
	h.bulk = append(h.bulk, b)
	h.bulkDirty = true
}

// FreeBulkCommit sorts the deferred blocks by address and merges them
// into the variable free list, coalescing adjacent blocks. Amortizes K
// deferred frees to O(K log K) against O(K^2) for K ordered inserts.
func (h *Heap) FreeBulkCommit() {
	blocks := &h.free[len(h.free)-1]

	sort.Slice(h.bulk, func(i, j int) bool { return h.bulk[i] < h.bulk[j] })

	// Merge the sorted run with the already ordered free list.
	var merged []uint32
	i, b := 0, blocks.head
	for i < len(h.bulk) || b != 0 {
		if b == 0 || (i < len(h.bulk) && h.bulk[i] < b) {
			merged = append(merged, h.bulk[i])
			i++
		} else {
			next := h.blockNext(b)
			merged = append(merged, b)
			b = next
		}
	}

	// Rebuild the list, combining adjacent blocks as they are appended.
	blocks.head = 0
	var tail uint32
	for _, b := range merged {
		if tail != 0 && h.blockEnd(tail) == b {
			h.setBlockSize(tail, h.blockSize(tail)+heapBlockHeaderSize+h.blockSize(b))
			continue
		}
		h.setBlockPrev(b, tail)
		h.setBlockNext(b, 0)
		if tail == 0 {
			blocks.head = b
		} else {
			h.setBlockNext(tail, b)
		}
		tail = b
	}

	h.bulk = h.bulk[:0]
	h.bulkDirty = false
}

// PtrGet returns the bump pointer for checkpointing.
func (h *Heap) PtrGet() uint32 { return h.ptr }

// PtrSet restores a checkpoint. Every block above the new pointer is
// implicitly gone, so all free lists and cache slots reinitialize.
func (h *Heap) PtrSet(ptr uint32) {
	h.ptr = ptr
	h.initFree()
}

func (h *Heap) moveFreeLists(dst, src *[5]freeList, failMsg string) {
	// The destination lists must be empty and every source block must
	// lie below the live bump pointer.
	for i := range src {
		if dst[i].head != 0 {
			trap(failMsg)
		}
		for b := src[i].head; b != 0; b = h.blockNext(b) {
			if h.blockEnd(b) > h.ptr {
				trap(failMsg)
			}
		}
	}
	for i := range src {
		dst[i].head = src[i].head
		src[i].head = 0
	}
}

// BlocksStash atomically moves all free lists aside so a PtrSet cycle
// can run without losing them.
func (h *Heap) BlocksStash() {
	if h.bulkDirty {
		h.FreeBulkCommit()
	}
	h.moveFreeLists(&h.stash, &h.free, "heap blocks stash: consistency check failed")
}

// BlocksRestore moves the stashed lists back. The live free lists must
// be empty.
func (h *Heap) BlocksRestore() {
	h.moveFreeLists(&h.free, &h.stash, "heap blocks restore: consistency check failed")
}

// StashClear drops the stashed lists.
func (h *Heap) StashClear() {
	h.initStash()
}

// FreeBlocks counts the blocks on the free lists, verifying list
// integrity both ways. Deferred bulk blocks are not counted until
// committed.
func (h *Heap) FreeBlocks() int {
	n := 0
	for i := range h.free {
		forward := 0
		var last uint32
		for b := h.free[i].head; b != 0; b = h.blockNext(b) {
			forward++
			last = b
		}
		backward := 0
		for b := last; b != 0; b = h.blockPrev(b) {
			backward++
		}
		if forward != backward {
			trap("heap: corrupted free list")
		}
		n += forward
	}
	return n
}

// CacheGet returns builtin cache slot i.
func (h *Heap) CacheGet(i int) interface{} {
	if i < 0 || i >= len(h.cache) {
		trap("heap: illegal builtin cache index")
	}
	return h.cache[i]
}

// CacheSet stores p in builtin cache slot i.
func (h *Heap) CacheSet(i int, p interface{}) {
	if i < 0 || i >= len(h.cache) {
		trap("heap: illegal builtin cache index")
	}
	h.cache[i] = p
}

// WriteBytes copies b into a fresh allocation and returns its offset.
func (h *Heap) WriteBytes(b []byte) uint32 {
	if len(b) == 0 {
		return h.Alloc(0)
	}
	off := h.Alloc(uint32(len(b)))
	copy(h.mem[off:], b)
	return off
}

// WriteString copies s into a fresh allocation with a NUL terminator
// and returns its offset. This is how eval results reach the host.
func (h *Heap) WriteString(s string) uint32 {
	off := h.Alloc(uint32(len(s)) + 1)
	copy(h.mem[off:], s)
	h.mem[off+uint32(len(s))] = 0
	return off
}

// Bytes returns a view of n bytes of linear memory at off.
func (h *Heap) Bytes(off, n uint32) []byte {
	return h.mem[off : off+n]
}

// CString reads the NUL-terminated string at off.
func (h *Heap) CString(off uint32) string {
	end := off
	for end < uint32(len(h.mem)) && h.mem[end] != 0 {
		end++
	}
	return string(h.mem[off:end])
}
