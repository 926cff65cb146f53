// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regovm

func Equal(a, b Value) Value { return NewBoolean(Compare(a, b) == 0) }

func NotEqual(a, b Value) Value { return NewBoolean(Compare(a, b) != 0) }

func GreaterThan(a, b Value) Value { return NewBoolean(Compare(a, b) > 0) }

func GreaterThanEq(a, b Value) Value { return NewBoolean(Compare(a, b) >= 0) }

func LessThan(a, b Value) Value { return NewBoolean(Compare(a, b) < 0) }

func LessThanEq(a, b Value) Value { return NewBoolean(Compare(a, b) <= 0) }
