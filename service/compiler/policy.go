package compiler

import (
	"fmt"
	"strings"
)

// TrailingPolicy controls the edge left pending by the last step of a document
type TrailingPolicy string

const (
	// TrailingDrop omits the pending edge
	TrailingDrop TrailingPolicy = "drop"
	// TrailingEnd routes the pending edge to the End node
	TrailingEnd TrailingPolicy = "end"
)

// ParseTrailingPolicy parses a policy name, empty means TrailingDrop
func ParseTrailingPolicy(name string) (TrailingPolicy, error) {
	switch TrailingPolicy(strings.ToLower(strings.TrimSpace(name))) {
	case "", TrailingDrop:
		return TrailingDrop, nil
	case TrailingEnd:
		return TrailingEnd, nil
	}
	return "", fmt.Errorf("unsupported trailing edge policy: %v", name)
}
