// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regovm

// memoFrame is one scope of rule memoization, chained to the enclosing
// scope. Frames are never freed explicitly: MemoizePop and MemoizeInit
// drop references and the Go collector reclaims them. Eval and heap
// pointer resets leave the stack untouched.
type memoFrame struct {
	prev  *memoFrame
	table *Object
}

// MemoizeInit resets the memoization stack to a single empty frame.
func (vm *VM) MemoizeInit() {
	vm.memo = &memoFrame{table: NewObject()}
}

// MemoizePush opens a new scope.
func (vm *VM) MemoizePush() {
	vm.memo = &memoFrame{prev: vm.memo, table: NewObject()}
}

// MemoizePop closes the current scope.
func (vm *VM) MemoizePop() {
	vm.memo = vm.memo.prev
}

// MemoizeInsert stores the value of rule index in the current scope.
func (vm *VM) MemoizeInsert(index int32, value Value) {
	vm.memo.table.Insert(NewInt(int64(index)), value)
}

// MemoizeGet returns the memoized value of rule index in the current
// scope, or nil.
func (vm *VM) MemoizeGet(index int32) Value {
	return vm.memo.table.Get(NewInt(int64(index)))
}
