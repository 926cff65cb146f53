// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Glob pattern lexer. Backslash escapes the next character inside text;
// comma separates alternatives only inside {}.

package regovm

import (
	"strings"
	"unicode/utf8"
)

type globTokenKind int

const (
	globTokenEOF globTokenKind = iota
	globTokenError
	globTokenText
	globTokenAny        // *
	globTokenSuper      // **
	globTokenSingle     // ?
	globTokenNot        // ! after [
	globTokenSeparator  // , inside {}
	globTokenRangeOpen  // [
	globTokenRangeClose // ]
	globTokenRangeLo
	globTokenRangeBetween // - inside []
	globTokenRangeHi
	globTokenTermsOpen  // {
	globTokenTermsClose // }
)

type globToken struct {
	kind globTokenKind
	s    string
}

const globEOF = rune(0)

type globRune struct {
	s  string
	n  int
	cp rune
}

type globLexer struct {
	input      string
	pos        int
	err        string
	tokens     []globToken
	termsLevel int
	hasRune    bool
	lastRune   globRune
}

func newGlobLexer(input string) *globLexer {
	return &globLexer{input: input}
}

func (l *globLexer) next() globToken {
	for {
		if l.err != "" {
			return globToken{kind: globTokenError, s: l.err}
		}
		if len(l.tokens) > 0 {
			t := l.tokens[0]
			l.tokens = l.tokens[1:]
			return t
		}
		l.fetchItem()
	}
}

func (l *globLexer) peek() globRune {
	if l.pos == len(l.input) {
		return globRune{cp: globEOF}
	}
	cp, n := utf8.DecodeRuneInString(l.input[l.pos:])
	if cp == utf8.RuneError && n == 1 {
		return globRune{cp: globEOF}
	}
	return globRune{s: l.input[l.pos : l.pos+n], n: n, cp: cp}
}

func (l *globLexer) read() globRune {
	if l.hasRune {
		l.hasRune = false
		l.pos += l.lastRune.n
		return l.lastRune
	}
	l.lastRune = l.peek()
	l.pos += l.lastRune.n
	return l.lastRune
}

func (l *globLexer) unread() {
	if l.hasRune {
		l.err = "could not unread rune"
		return
	}
	l.pos -= l.lastRune.n
	l.hasRune = true
}

func (l *globLexer) push(kind globTokenKind, s string) {
	l.tokens = append(l.tokens, globToken{kind: kind, s: s})
}

func (l *globLexer) inTerms() bool { return l.termsLevel > 0 }

func (l *globLexer) fetchItem() {
	r := l.read()
	switch {
	case r.cp == globEOF:
		l.push(globTokenEOF, "")
	case r.cp == '{':
		l.termsLevel++
		l.push(globTokenTermsOpen, r.s)
	case r.cp == ',' && l.inTerms():
		l.push(globTokenSeparator, r.s)
	case r.cp == '}' && l.inTerms():
		l.push(globTokenTermsClose, r.s)
		l.termsLevel--
	case r.cp == '[':
		l.push(globTokenRangeOpen, r.s)
		l.fetchRange()
	case r.cp == '?':
		l.push(globTokenSingle, r.s)
	case r.cp == '*':
		if n := l.read(); n.cp == '*' {
			l.push(globTokenSuper, "**")
		} else {
			l.unread()
			l.push(globTokenAny, r.s)
		}
	default:
		inText := []rune{'?', '*', '[', '{'}
		inTerms := []rune{'?', '*', '[', '{', '}', ','}

		l.unread()
		if l.inTerms() {
			l.fetchText(inTerms)
		} else {
			l.fetchText(inText)
		}
	}
}

func (l *globLexer) fetchRange() {
	wantHi := false
	wantClose := false
	seenNot := false
	for {
		r := l.read()
		if r.cp == globEOF {
			l.err = "unexpected end of input"
			return
		}

		if wantClose {
			if r.cp != ']' {
				l.err = "expected close range character"
			} else {
				l.push(globTokenRangeClose, r.s)
			}
			return
		}

		if wantHi {
			l.push(globTokenRangeHi, r.s)
			wantClose = true
			continue
		}

		if !seenNot && r.cp == '!' {
			l.push(globTokenNot, r.s)
			seenNot = true
			continue
		}

		if n := l.peek(); n.cp == '-' {
			l.pos += n.n
			l.push(globTokenRangeLo, r.s)
			l.push(globTokenRangeBetween, n.s)
			wantHi = true
			continue
		}

		// Not a lo-hi range: unread and fetch the chars as text.
		l.unread()
		l.fetchText([]rune{']'})
		wantClose = true
	}
}

func (l *globLexer) fetchText(breakers []rune) {
	var buf strings.Builder
	escaped := false

loop:
	for {
		r := l.read()
		if r.cp == globEOF {
			break
		}
		if !escaped {
			if r.cp == '\\' {
				escaped = true
				continue
			}
			for _, b := range breakers {
				if b == r.cp {
					l.unread()
					break loop
				}
			}
		}
		escaped = false
		buf.WriteString(r.s)
	}

	if buf.Len() > 0 {
		l.push(globTokenText, buf.String())
	}
}
