package graph

import (
	"fmt"
	"strings"

	"github.com/viant/parsly"
)

// Parse reads a graph previously written by Render
func Parse(data []byte) (*Graph, error) {
	cursor := parsly.NewCursor("", data, 0)
	ret := &Graph{}

	matched := cursor.MatchAfterOptional(whitespaceToken, commentToken, digraphToken)
	switch matched.Code {
	case commentCode:
		header := strings.TrimPrefix(matched.Text(cursor), "//")
		ret.Header = strings.TrimSuffix(strings.TrimPrefix(header, " "), "\r")
		matched = cursor.MatchAfterOptional(whitespaceToken, digraphToken)
		if matched.Code != digraphCode {
			return nil, cursor.NewError(digraphToken)
		}
	case digraphCode:
	default:
		return nil, cursor.NewError(commentToken, digraphToken)
	}
	if matched = cursor.MatchAfterOptional(whitespaceToken, openBraceToken); matched.Code != openBraceCode {
		return nil, cursor.NewError(openBraceToken)
	}

	matched = cursor.MatchAfterOptional(whitespaceToken, closeBraceToken, identifierToken)
	for {
		switch matched.Code {
		case closeBraceCode:
			return ret, nil
		case identifierCode:
		default:
			return nil, cursor.NewError(closeBraceToken, identifierToken)
		}
		from := matched.Text(cursor)
		ret.AddNode(from)

		matched = cursor.MatchAfterOptional(whitespaceToken, arrowToken, openBracketToken, closeBraceToken, identifierToken)
		if matched.Code == openBracketCode {
			// node declaration
			if _, err := parseAttributes(cursor); err != nil {
				return nil, err
			}
			matched = cursor.MatchAfterOptional(whitespaceToken, closeBraceToken, identifierToken)
			continue
		}
		if matched.Code != arrowCode {
			// bare node statement
			continue
		}

		matched = cursor.MatchAfterOptional(whitespaceToken, identifierToken)
		if matched.Code != identifierCode {
			return nil, cursor.NewError(identifierToken)
		}
		edge := &Edge{From: from, To: matched.Text(cursor)}
		ret.AddNode(edge.To)
		ret.AddEdge(edge)

		matched = cursor.MatchAfterOptional(whitespaceToken, openBracketToken, closeBraceToken, identifierToken)
		if matched.Code != openBracketCode {
			continue
		}
		attributes, err := parseAttributes(cursor)
		if err != nil {
			return nil, err
		}
		edge.Label = attributes["label"]
		edge.Failure = strings.Trim(attributes["color"], `"`) == FailureColor
		matched = cursor.MatchAfterOptional(whitespaceToken, closeBraceToken, identifierToken)
	}
}

// parseAttributes reads key=value pairs up to the closing bracket; values keep their quotes
func parseAttributes(cursor *parsly.Cursor) (map[string]string, error) {
	ret := map[string]string{}
	for {
		matched := cursor.MatchAfterOptional(whitespaceToken, closeBracketToken, identifierToken)
		switch matched.Code {
		case closeBracketCode:
			return ret, nil
		case identifierCode:
		default:
			return nil, cursor.NewError(closeBracketToken, identifierToken)
		}
		key := matched.Text(cursor)
		if matched = cursor.MatchAfterOptional(whitespaceToken, equalToken); matched.Code != equalCode {
			return nil, cursor.NewError(equalToken)
		}
		matched = cursor.MatchAny(quotedToken, identifierToken)
		switch matched.Code {
		case quotedCode, identifierCode:
			ret[key] = matched.Text(cursor)
		default:
			return nil, fmt.Errorf("missing value for attribute %v at %d", key, cursor.Pos)
		}
	}
}
