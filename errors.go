// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regovm

import (
	"errors"
	"fmt"
)

// Errc is the status code returned by AddPath and RemovePath. Unlike a
// trap, an Errc lets the host distinguish bad input from an internal
// failure without losing the module instance.
type Errc int32

const (
	ErrcOK Errc = iota
	ErrcInternal
	ErrcInvalidType
	ErrcInvalidPath
)

func (e Errc) String() string {
	switch e {
	case ErrcOK:
		return "ok"
	case ErrcInternal:
		return "internal error"
	case ErrcInvalidType:
		return "invalid type"
	case ErrcInvalidPath:
		return "invalid path"
	}
	return fmt.Sprintf("errc(%d)", int32(e))
}

// CoreError represents an error that occurred inside the evaluation core.
// It includes the operation that failed so hosts can report context.
type CoreError struct {
	Op  string // Operation that failed (e.g., "parse input", "eval")
	Err error  // Underlying error
}

func (e *CoreError) Error() string {
	return fmt.Sprintf("regovm: %s: %v", e.Op, e.Err)
}

func (e *CoreError) Unwrap() error {
	return e.Err
}

// Common errors
var (
	// ErrParse indicates input text could not be parsed into a value
	ErrParse = errors.New("invalid input document")

	// ErrEval indicates the planned policy returned a non-zero status
	ErrEval = errors.New("evaluation failed")

	// ErrReserved indicates a reserved argument carried a value
	ErrReserved = errors.New("invalid reserved argument")
)

// wrapError wraps an error with operation context
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &CoreError{Op: op, Err: err}
}

// TrapError is the hard failure regime: an unrecoverable internal
// condition (invalid UTF-8 after validation, unexpected decimal status,
// allocator refusal). Internally it propagates as a panic so that no
// partial result can escape; the exported entry points recover it and
// hand it to the host as an ordinary error.
type TrapError struct {
	Msg string
}

func (e *TrapError) Error() string {
	return "regovm: trap: " + e.Msg
}

// trap aborts the current operation. It never returns.
func trap(msg string) {
	panic(&TrapError{Msg: msg})
}

// RuntimeError formats a source location as "loc:row:col: msg" and
// traps. Compiler-generated code calls this to report policy runtime
// failures; it never returns.
func RuntimeError(loc string, row, col int, msg string) {
	trap(fmt.Sprintf("%s:%d:%d: %s", loc, row, col, msg))
}

// recoverTrap converts an in-flight trap into *err. Non-trap panics are
// re-raised; they are bugs, not evaluation failures.
func recoverTrap(err *error) {
	if r := recover(); r != nil {
		if t, ok := r.(*TrapError); ok {
			*err = t
			return
		}
		panic(r)
	}
}
