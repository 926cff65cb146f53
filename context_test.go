// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regovm

import (
	"errors"
	"testing"
)

func TestEvalContextAccessors(t *testing.T) {
	ctx := NewEvalContext()
	ctx.SetInput(NewInt(1))
	ctx.SetData(NewInt(2))
	ctx.SetEntrypoint(3)
	if Compare(ctx.Input, NewInt(1)) != 0 || Compare(ctx.Data, NewInt(2)) != 0 {
		t.Errorf("setters did not assign")
	}
	if ctx.Entrypoint != 3 {
		t.Errorf("entrypoint = %d", ctx.Entrypoint)
	}
	ctx.Result = NewString("r")
	if Compare(ctx.GetResult(), NewString("r")) != 0 {
		t.Errorf("result = %v", ctx.GetResult())
	}
}

func TestVMEval(t *testing.T) {
	vm := NewVM()
	h := vm.Heap()

	input := []byte(`{"role":"admin"}`)
	inOff := h.WriteBytes(input)
	heapPtr := h.PtrGet()

	data := mustParseValue(t, `{"allowed":["admin"]}`)

	vm.EvalFunc = func(ctx *EvalContext) int32 {
		if ctx.Entrypoint != 7 {
			t.Errorf("entrypoint = %d, want 7", ctx.Entrypoint)
		}
		if Compare(ctx.Data, data) != 0 {
			t.Errorf("data not passed through")
		}
		result := NewSet()
		result.Add(Get(ctx.Input, NewString("role")))
		ctx.Result = result
		return 0
	}

	off, err := vm.Eval(0, 7, data, inOff, uint32(len(input)), heapPtr, false)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got := h.CString(off); got != `["admin"]` {
		t.Errorf("result = %q", got)
	}

	// The extended dump keeps the set literal.
	off, err = vm.Eval(0, 7, data, inOff, uint32(len(input)), heapPtr, true)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got := h.CString(off); got != `{"admin"}` {
		t.Errorf("extended result = %q", got)
	}
}

func TestVMEvalErrors(t *testing.T) {
	vm := NewVM()
	h := vm.Heap()

	if _, err := vm.Eval(1, 0, nil, 0, 0, h.PtrGet(), false); !errors.Is(err, ErrReserved) {
		t.Errorf("reserved argument error = %v", err)
	}

	bad := []byte(`{{`)
	off := h.WriteBytes(bad)
	ptr := h.PtrGet()
	if _, err := vm.Eval(0, 0, nil, off, uint32(len(bad)), ptr, false); !errors.Is(err, ErrParse) {
		t.Errorf("parse error = %v", err)
	}

	vm.EvalFunc = func(ctx *EvalContext) int32 { return 1 }
	if _, err := vm.Eval(0, 0, nil, 0, 0, h.PtrGet(), false); !errors.Is(err, ErrEval) {
		t.Errorf("eval failure = %v", err)
	}
}

func TestVMEvalTrapSurfaces(t *testing.T) {
	vm := NewVM()
	vm.EvalFunc = func(ctx *EvalContext) int32 {
		trap("boom")
		return 0
	}
	_, err := vm.Eval(0, 0, nil, 0, 0, vm.Heap().PtrGet(), false)
	var te *TrapError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v, want *TrapError", err)
	}
	if te.Msg != "boom" {
		t.Errorf("trap message = %q", te.Msg)
	}
}

func TestVMEvalHeapDiscipline(t *testing.T) {
	vm := NewVM()
	h := vm.Heap()
	ptr := h.PtrGet()

	vm.EvalFunc = func(ctx *EvalContext) int32 {
		ctx.Result = NewArray()
		return 0
	}
	if _, err := vm.Eval(0, 0, nil, 0, 0, ptr, false); err != nil {
		t.Fatalf("eval: %v", err)
	}

	// Re-evaluating from the same checkpoint reclaims everything the
	// previous call allocated.
	if _, err := vm.Eval(0, 0, nil, 0, 0, ptr, false); err != nil {
		t.Fatalf("second eval: %v", err)
	}
	if n := h.FreeBlocks(); n != 0 {
		t.Errorf("free blocks = %d after checkpoint reset, want 0", n)
	}
}

func TestMapping(t *testing.T) {
	vm := NewVM()
	vm.MappingInit([]byte(`{"g":{"count":1},"max":2}`))

	if got := vm.MappingLookup(mustParseValue(t, `["g","count"]`)); got != 1 {
		t.Errorf("lookup g/count = %d, want 1", got)
	}
	if got := vm.MappingLookup(mustParseValue(t, `["max"]`)); got != 2 {
		t.Errorf("lookup max = %d, want 2", got)
	}
	if got := vm.MappingLookup(mustParseValue(t, `["g"]`)); got != 0 {
		t.Errorf("lookup interior node = %d, want 0", got)
	}
	if got := vm.MappingLookup(mustParseValue(t, `["zz"]`)); got != 0 {
		t.Errorf("lookup missing = %d, want 0", got)
	}
	if got := vm.MappingLookup(NewArray()); got != 0 {
		t.Errorf("lookup empty path = %d, want 0", got)
	}
	if got := vm.MappingLookup(NewString("g")); got != 0 {
		t.Errorf("lookup non-array = %d, want 0", got)
	}

	// Only the first init takes effect.
	vm.MappingInit([]byte(`{"max":99}`))
	if got := vm.MappingLookup(mustParseValue(t, `["max"]`)); got != 2 {
		t.Errorf("lookup after second init = %d, want 2", got)
	}
}

func TestMemoize(t *testing.T) {
	vm := NewVM()
	vm.MemoizeInit()

	if v := vm.MemoizeGet(1); v != nil {
		t.Errorf("get before insert = %v", v)
	}
	vm.MemoizeInsert(1, NewString("outer"))
	if v := vm.MemoizeGet(1); Compare(v, NewString("outer")) != 0 {
		t.Errorf("get = %v", v)
	}

	// A pushed frame starts empty and pops back to the previous one.
	vm.MemoizePush()
	if v := vm.MemoizeGet(1); v != nil {
		t.Errorf("inner frame sees outer value: %v", v)
	}
	vm.MemoizeInsert(1, NewString("inner"))
	if v := vm.MemoizeGet(1); Compare(v, NewString("inner")) != 0 {
		t.Errorf("inner get = %v", v)
	}
	vm.MemoizePop()
	if v := vm.MemoizeGet(1); Compare(v, NewString("outer")) != 0 {
		t.Errorf("get after pop = %v", v)
	}
}

func TestBuiltinDispatchTables(t *testing.T) {
	vm := NewVM()
	vm.Builtin1 = func(id int32, a Value) Value {
		if id == 42 {
			return Count(a)
		}
		return nil
	}
	got := vm.Builtin1(42, mustParseValue(t, `[1,2,3]`))
	if Compare(got, NewInt(3)) != 0 {
		t.Errorf("dispatched builtin = %v", got)
	}
	if v := vm.Builtin1(41, NewArray()); v != nil {
		t.Errorf("unmapped id = %v", v)
	}
}
