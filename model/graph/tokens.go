package graph

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	whitespaceCode = iota
	commentCode
	digraphCode
	openBraceCode
	closeBraceCode
	openBracketCode
	closeBracketCode
	arrowCode
	equalCode
	identifierCode
	quotedCode
)

var (
	whitespaceToken   = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	commentToken      = parsly.NewToken(commentCode, "Comment", &commentMatcher{})
	digraphToken      = parsly.NewToken(digraphCode, "digraph", matcher.NewFragment("digraph"))
	openBraceToken    = parsly.NewToken(openBraceCode, "{", matcher.NewByte('{'))
	closeBraceToken   = parsly.NewToken(closeBraceCode, "}", matcher.NewByte('}'))
	openBracketToken  = parsly.NewToken(openBracketCode, "[", matcher.NewByte('['))
	closeBracketToken = parsly.NewToken(closeBracketCode, "]", matcher.NewByte(']'))
	arrowToken        = parsly.NewToken(arrowCode, "->", matcher.NewFragment("->"))
	equalToken        = parsly.NewToken(equalCode, "=", matcher.NewByte('='))
	identifierToken   = parsly.NewToken(identifierCode, "Identifier", &identifierMatcher{})
	quotedToken       = parsly.NewToken(quotedCode, "Quoted", &quotedMatcher{})
)

// commentMatcher matches a // line comment up to the line end
type commentMatcher struct{}

func (m *commentMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	if pos+1 >= cursor.InputSize || input[pos] != '/' || input[pos+1] != '/' {
		return 0
	}
	matched := 2
	for i := pos + 2; i < cursor.InputSize && input[i] != '\n'; i++ {
		matched++
	}
	return matched
}

// identifierMatcher matches a bare DOT identifier
type identifierMatcher struct{}

func (m *identifierMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		if isDelimiter(input[i]) {
			break
		}
		matched++
	}
	return matched
}

// quotedMatcher matches a double quoted string honoring backslash escapes
type quotedMatcher struct{}

func (m *quotedMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	if pos >= cursor.InputSize || input[pos] != '"' {
		return 0
	}
	for i := pos + 1; i < cursor.InputSize; i++ {
		switch input[i] {
		case '\\':
			i++
		case '"':
			return i - pos + 1
		}
	}
	return 0
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '[', ']', '{', '}', '=', '"', ';':
		return true
	}
	return false
}
