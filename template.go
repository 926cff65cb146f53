// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regovm

import "strings"

// templatePart renders a single part. Sets stand in for possibly
// undefined expressions: a singleton set unwraps to its member, while
// the empty set and any larger set render as the literal "<undefined>".
func templatePart(v Value) (string, bool) {
	if v == nil {
		return "", false
	}

	if set, ok := v.(*Set); ok {
		if set.Len() != 1 {
			return "<undefined>", true
		}
		for _, elem := range set.buckets {
			if elem != nil {
				v = elem.v
				break
			}
		}
	}

	if s, ok := v.(*String); ok {
		return s.v, true
	}
	return DumpValue(v), true
}

// TemplateString concatenates the parts array into one string,
// rendering non-strings through the extended dumper.
func TemplateString(a Value) Value {
	parts, ok := a.(*Array)
	if !ok {
		return nil
	}

	var buf strings.Builder
	for i := range parts.elems {
		s, ok := templatePart(parts.elems[i].v)
		if !ok {
			return nil
		}
		buf.WriteString(s)
	}
	return NewString(buf.String())
}
