// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Glob pattern compiler: pattern AST to an anchored RE2 source string.

package regovm

import "strings"

const globSpecialChars = ".,:\"=<>[]^/\\{}|*+?()$"

// globEscapeText escapes RE2 metacharacters in literal text.
func globEscapeText(s string) string {
	var x strings.Builder
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(globSpecialChars, s[i]) >= 0 {
			x.WriteByte('\\')
		}
		x.WriteByte(s[i])
	}
	return x.String()
}

func (n *globNode) re2(buf *strings.Builder, singleMark string) {
	switch n.kind {
	case globKindPattern:
		for _, child := range n.children {
			child.re2(buf, singleMark)
		}

	case globKindList:
		buf.WriteByte('[')
		if n.not {
			buf.WriteByte('^')
		}
		buf.WriteString(globEscapeText(n.text))
		buf.WriteByte(']')

	case globKindRange:
		buf.WriteByte('[')
		if n.not {
			buf.WriteByte('^')
		}
		buf.WriteString(n.lo)
		buf.WriteByte('-')
		buf.WriteString(n.hi)
		buf.WriteByte(']')

	case globKindText:
		buf.WriteString(globEscapeText(n.text))

	case globKindAny:
		buf.WriteString(singleMark)
		buf.WriteByte('*')

	case globKindSuper:
		buf.WriteString(".*")

	case globKindSingle:
		buf.WriteString(singleMark)

	case globKindAnyOf:
		buf.WriteByte('(')
		for i, child := range n.children {
			if i > 0 {
				buf.WriteByte('|')
			}
			child.re2(buf, singleMark)
		}
		buf.WriteByte(')')
	}
}

// globTranslate compiles a glob into an anchored RE2 source. `?` maps
// to a single non-delimiter character, `*` to a run of them, `**` to
// anything. An error message is returned for malformed patterns.
func globTranslate(glob string, delimiters []string) (string, string) {
	l := newGlobLexer(glob)
	root, errMsg := globParse(l)
	if errMsg != "" {
		return "", errMsg
	}

	singleMark := "."
	if len(delimiters) > 0 {
		var mark strings.Builder
		mark.WriteString("[^")
		for _, d := range delimiters {
			if !singleRune(d) {
				return "", "delimiter is not a single character"
			}
			mark.WriteString(globEscapeText(d))
		}
		mark.WriteByte(']')
		singleMark = mark.String()
	}

	var buf strings.Builder
	buf.WriteByte('^')
	root.re2(&buf, singleMark)
	buf.WriteByte('$')
	return buf.String(), ""
}
