// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// End-to-end exercises of the host lifecycle: parse data, evaluate a
// hand-planned policy through the VM surface, read back results, and
// recycle the heap between calls.

package regovm

import "testing"

// planAllow is a stand-in for compiler output: input.role must appear
// in data.allowed, with the decision memoized per entrypoint.
func planAllow(vm *VM) func(ctx *EvalContext) int32 {
	return func(ctx *EvalContext) int32 {
		vm.MemoizeInit()

		if cached := vm.MemoizeGet(ctx.Entrypoint); cached != nil {
			ctx.Result = cached
			return 0
		}

		role := Get(ctx.Input, InternString("role"))
		allowed := Get(ctx.Data, InternString("allowed"))

		result := NewSet()
		if role != nil && allowed != nil {
			set, ok := allowed.(*Set)
			if ok && set.Contains(role) {
				result.Add(True)
			}
		}

		ctx.Result = result
		vm.MemoizeInsert(ctx.Entrypoint, result)
		return 0
	}
}

func TestEvalLifecycle(t *testing.T) {
	vm := NewVM()
	h := vm.Heap()
	vm.EvalFunc = planAllow(vm)

	data := mustParseValue(t, `{"allowed":{"admin","ops"}}`)

	input := []byte(`{"role":"admin","region":"eu"}`)
	inOff := h.WriteBytes(input)
	checkpoint := h.PtrGet()

	// First decision: allowed.
	off, err := vm.Eval(0, 0, data, inOff, uint32(len(input)), checkpoint, false)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got := h.CString(off); got != `[true]` {
		t.Errorf("decision = %q, want [true]", got)
	}

	// Second call from the same checkpoint: the heap recycles, the
	// decision stays the same.
	off, err = vm.Eval(0, 0, data, inOff, uint32(len(input)), checkpoint, true)
	if err != nil {
		t.Fatalf("second eval: %v", err)
	}
	if got := h.CString(off); got != `{true}` {
		t.Errorf("extended decision = %q, want {true}", got)
	}
	if n := h.FreeBlocks(); n != 0 {
		t.Errorf("free blocks = %d after recycled eval, want 0", n)
	}

	// A different input, written above the earlier results and evaluated
	// from a new checkpoint: denied.
	input = []byte(`{"role":"guest"}`)
	inOff = h.WriteBytes(input)
	checkpoint = h.PtrGet()
	off, err = vm.Eval(0, 0, data, inOff, uint32(len(input)), checkpoint, false)
	if err != nil {
		t.Fatalf("third eval: %v", err)
	}
	if got := h.CString(off); got != `[]` {
		t.Errorf("denied decision = %q, want []", got)
	}
}

func TestEvalWithDataMutation(t *testing.T) {
	vm := NewVM()
	h := vm.Heap()

	// The host maintains data across evaluations with add/remove path.
	data := mustParseValue(t, `{}`)
	path := mustParseValue(t, `["policies","p1","threshold"]`)
	if rc := AddPath(data, path, NewInt(42)); rc != ErrcOK {
		t.Fatalf("add_path: %v", rc)
	}

	vm.EvalFunc = func(ctx *EvalContext) int32 {
		ctx.Result = getAt(ctx.Data, path)
		return 0
	}
	off, err := vm.Eval(0, 0, data, 0, 0, h.PtrGet(), false)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got := h.CString(off); got != "42" {
		t.Errorf("result = %q, want 42", got)
	}

	if rc := RemovePath(data, path); rc != ErrcOK {
		t.Fatalf("remove_path: %v", rc)
	}
	if getAt(data, path) != nil {
		t.Errorf("path still present after remove")
	}
}

func TestEvalBuiltinDispatch(t *testing.T) {
	vm := NewVM()
	h := vm.Heap()

	// The compiler resolves builtin names through the mapping and
	// dispatches by id at run time.
	vm.MappingInit([]byte(`{"count":1,"plus":2,"glob":{"match":3}}`))

	vm.Builtin1 = func(id int32, a Value) Value {
		if id == 1 {
			return Count(a)
		}
		return nil
	}
	vm.Builtin2 = func(id int32, a, b Value) Value {
		if id == 2 {
			return Plus(a, b)
		}
		return nil
	}
	vm.Builtin3 = func(id int32, a, b, c Value) Value {
		if id == 3 {
			return vm.GlobMatch(a, b, c)
		}
		return nil
	}

	vm.EvalFunc = func(ctx *EvalContext) int32 {
		countID := vm.MappingLookup(mustParse(`["count"]`))
		plusID := vm.MappingLookup(mustParse(`["plus"]`))
		globID := vm.MappingLookup(mustParse(`["glob","match"]`))

		n := vm.Builtin1(countID, Get(ctx.Input, InternString("items")))
		total := vm.Builtin2(plusID, n, NewInt(10))
		match := vm.Builtin3(globID, NewString("a/*"), mustParse(`["/"]`), Get(ctx.Input, InternString("path")))

		result := NewObject()
		result.Insert(InternString("total"), total)
		result.Insert(InternString("match"), match)
		ctx.Result = result
		return 0
	}

	input := []byte(`{"items":[1,2,3],"path":"a/b"}`)
	inOff := h.WriteBytes(input)
	off, err := vm.Eval(0, 0, nil, inOff, uint32(len(input)), h.PtrGet(), false)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	got, err := ParseJSON([]byte(h.CString(off)))
	if err != nil {
		t.Fatalf("reparse result: %v", err)
	}
	want := mustParse(`{"total":13,"match":true}`)
	if Compare(got, want) != 0 {
		t.Errorf("result = %s, want %s", DumpJSON(got), DumpJSON(want))
	}
}

func mustParse(s string) Value {
	v := parseJSON(s, true)
	if v == nil {
		panic("parse: " + s)
	}
	return v
}

func TestStashAcrossEvalCycle(t *testing.T) {
	vm := NewVM()
	h := vm.Heap()

	// Free some buffers below the checkpoint, stash the lists, run an
	// evaluation cycle, restore. The free structure survives.
	a := h.Alloc(200)
	_ = h.Alloc(200)
	h.Free(a)
	checkpoint := h.PtrGet()

	h.BlocksStash()
	vm.EvalFunc = func(ctx *EvalContext) int32 {
		ctx.Result = NewNull()
		return 0
	}
	if _, err := vm.Eval(0, 0, nil, 0, 0, checkpoint, false); err != nil {
		t.Fatalf("eval: %v", err)
	}

	h.PtrSet(checkpoint)
	h.BlocksRestore()
	if n := h.FreeBlocks(); n != 1 {
		t.Errorf("free blocks = %d after restore, want 1", n)
	}

	// The restored block is usable.
	if p := h.Alloc(200); p != a {
		t.Errorf("restored block not reused: %d vs %d", p, a)
	}
}
