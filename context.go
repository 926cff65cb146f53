// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The evaluation context and host entry point. The compiler-generated
// policy replaces EvalFunc; everything else here is the surface it and
// the host loader program against.

package regovm

// EvalContext carries one evaluation: the parsed input document, the
// data tree, the entrypoint selecting which planned policy runs, and
// the result the policy writes.
type EvalContext struct {
	Input      Value
	Data       Value
	Result     Value
	Entrypoint int32
}

func NewEvalContext() *EvalContext { return &EvalContext{} }

func (ctx *EvalContext) SetInput(v Value) { ctx.Input = v }

func (ctx *EvalContext) SetData(v Value) { ctx.Data = v }

func (ctx *EvalContext) SetEntrypoint(e int32) { ctx.Entrypoint = e }

func (ctx *EvalContext) GetResult() Value { return ctx.Result }

// VM owns the state one module instance owns: the heap, the builtin
// dispatch tables the compiler fills in, the path-to-builtin-id
// mapping, and the memoization stack. A VM belongs to exactly one host
// thread during a call.
type VM struct {
	heap *Heap

	// Builtin dispatch by arity. The compiler links the tables; ids it
	// never mapped dispatch as undefined.
	Builtin0 func(id int32) Value
	Builtin1 func(id int32, a Value) Value
	Builtin2 func(id int32, a, b Value) Value
	Builtin3 func(id int32, a, b, c Value) Value
	Builtin4 func(id int32, a, b, c, d Value) Value

	// EvalFunc is a placeholder the policy compiler overwrites with
	// generated code.
	EvalFunc func(ctx *EvalContext) int32

	mapping Value
	memo    *memoFrame
}

func NewVM() *VM {
	vm := &VM{heap: NewHeap()}
	vm.EvalFunc = func(ctx *EvalContext) int32 { return 0 }
	return vm
}

// Heap exposes the linear memory for the host lifecycle calls.
func (vm *VM) Heap() *Heap { return vm.heap }

// Eval is the host entry: it restores the heap checkpoint, parses the
// input bytes at (input, inputLen) in linear memory, runs the planned
// policy and dumps the result back into linear memory, returning the
// offset of the NUL-terminated text. wantValue selects the extended
// value form over standard JSON.
//
// reserved must be zero.
func (vm *VM) Eval(reserved uint32, entrypoint int32, data Value, input, inputLen uint32, heapPtr uint32, wantValue bool) (result uint32, err error) {
	defer recoverTrap(&err)

	if reserved != 0 {
		return 0, wrapError("eval", ErrReserved)
	}

	vm.heap.PtrSet(heapPtr)

	ctx := EvalContext{Entrypoint: entrypoint, Data: data}
	if inputLen > 0 {
		ctx.Input = parseJSON(string(vm.heap.Bytes(input, inputLen)), true)
		if ctx.Input == nil {
			return 0, wrapError("parse input", ErrParse)
		}
	}

	if vm.EvalFunc(&ctx) != 0 {
		return 0, wrapError("eval", ErrEval)
	}

	if wantValue {
		return vm.heap.WriteString(DumpValue(ctx.Result)), nil
	}
	return vm.heap.WriteString(DumpJSON(ctx.Result)), nil
}

// MappingInit parses the compiler-emitted JSON mapping of builtin paths
// to integer ids. The first successful call wins.
func (vm *VM) MappingInit(data []byte) {
	if vm.mapping == nil {
		vm.mapping = parseJSON(string(data), false)
	}
}

// MappingLookup resolves a builtin path against the mapping, returning
// its id, or 0 when the path is unmapped or no integer leaf is there.
func (vm *VM) MappingLookup(path Value) int32 {
	return lookup(vm.mapping, path)
}

// lookup walks path (an array of keys) through the mapping tree.
func lookup(mapping, path Value) int32 {
	arr, ok := path.(*Array)
	if !ok || arr.Len() == 0 {
		return 0
	}

	curr := mapping
	for idx := Iter(path, nil); idx != nil; idx = Iter(path, idx) {
		next := Get(curr, Get(path, idx))
		if next == nil {
			return 0
		}
		curr = next
	}

	if n, ok := curr.(*Number); ok {
		if i, ok := n.TryInt(); ok {
			return int32(i)
		}
	}
	return 0
}
