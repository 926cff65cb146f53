// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Glob pattern parser: token stream to pattern AST.

package regovm

import "unicode/utf8"

type globNodeKind int

const (
	globKindPattern globNodeKind = iota
	globKindText
	globKindAny
	globKindSuper
	globKindSingle
	globKindList
	globKindRange
	globKindAnyOf
)

type globNode struct {
	kind     globNodeKind
	text     string // globKindText and globKindList
	lo, hi   string // globKindRange
	not      bool   // globKindList and globKindRange
	parent   *globNode
	children []*globNode
}

func (n *globNode) insert(child *globNode) *globNode {
	n.children = append(n.children, child)
	child.parent = n
	return n
}

type globParseState struct {
	tree   *globNode
	parser func(s *globParseState, l *globLexer)
	err    string
}

// globParse parses the lexer's token stream into a pattern tree,
// returning an error message on malformed input.
func globParse(l *globLexer) (*globNode, string) {
	root := &globNode{kind: globKindPattern}

	for s := (globParseState{tree: root, parser: globParserMain}); s.parser != nil; {
		s.parser(&s, l)
		if s.err != "" {
			return nil, s.err
		}
	}
	return root, ""
}

func globParserMain(s *globParseState, l *globLexer) {
	token := l.next()

	switch token.kind {
	case globTokenEOF:
		s.parser = nil

	case globTokenError:
		s.parser = nil
		s.err = token.s

	case globTokenText:
		s.tree.insert(&globNode{kind: globKindText, text: token.s})

	case globTokenAny:
		s.tree.insert(&globNode{kind: globKindAny})

	case globTokenSuper:
		s.tree.insert(&globNode{kind: globKindSuper})

	case globTokenSingle:
		s.tree.insert(&globNode{kind: globKindSingle})

	case globTokenRangeOpen:
		s.parser = globParserRange

	case globTokenTermsOpen:
		a := &globNode{kind: globKindAnyOf}
		s.tree.insert(a)
		p := &globNode{kind: globKindPattern}
		a.insert(p)
		s.tree = p

	case globTokenSeparator:
		if s.tree.parent == nil {
			s.parser = nil
			s.err = "unexpected token"
			return
		}
		p := &globNode{kind: globKindPattern}
		s.tree.parent.insert(p)
		s.tree = p

	case globTokenTermsClose:
		if s.tree.parent == nil || s.tree.parent.parent == nil {
			s.parser = nil
			s.err = "unexpected token"
			return
		}
		s.tree = s.tree.parent.parent

	default:
		s.parser = nil
		s.err = "unexpected token"
	}
}

func globParserRange(s *globParseState, l *globLexer) {
	var (
		not    bool
		lo, hi string
		chars  string
	)

	for {
		token := l.next()

		switch token.kind {
		case globTokenEOF:
			s.parser = nil
			s.err = "unexpected end"
			return

		case globTokenError:
			s.parser = nil
			s.err = token.s
			return

		case globTokenNot:
			not = true

		case globTokenRangeLo:
			if !singleRune(token.s) {
				s.parser = nil
				s.err = "unexpected length of lo character"
				return
			}
			lo = token.s

		case globTokenRangeBetween:

		case globTokenRangeHi:
			if !singleRune(token.s) {
				s.parser = nil
				s.err = "unexpected length of hi character"
				return
			}
			hi = token.s
			if hi < lo {
				s.parser = nil
				s.err = "hi character should be greater than lo character"
				return
			}

		case globTokenText:
			chars = token.s

		case globTokenRangeClose:
			isRange := lo != "" && hi != ""
			isChars := chars != ""
			if isChars == isRange {
				s.parser = nil
				s.err = "could not parse range"
				return
			}
			if isRange {
				s.tree.insert(&globNode{kind: globKindRange, lo: lo, hi: hi, not: not})
			} else {
				s.tree.insert(&globNode{kind: globKindList, text: chars, not: not})
			}
			s.parser = globParserMain
			return
		}
	}
}

func singleRune(s string) bool {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && n == 1 {
		return false
	}
	return n == len(s)
}
