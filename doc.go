// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package regovm is the runtime value and builtin core of a policy
// evaluation engine targeted at WebAssembly execution. A policy
// compiler emits modules that call into this core to manipulate a
// dynamically typed value tree and to invoke a library of pure
// builtins; the host loader owns the instance lifecycle through the
// heap checkpoint calls.
//
// The core is strictly value-tree in, value-tree out: no streams, no
// callbacks, no concurrency inside an instance. Builtins signal "no
// result" by returning a nil Value; unrecoverable conditions trap and
// surface as *TrapError from the exported entry points.
package regovm
