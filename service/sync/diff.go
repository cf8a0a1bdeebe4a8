package sync

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/pmezard/go-difflib/difflib"
	sgdiff "github.com/sourcegraph/go-diff/diff"
)

// Diff is a unified diff of two document contents with line statistics
type Diff struct {
	Text    string
	Added   int
	Changed int
	Deleted int
}

// EqualJSON reports whether two JSON contents hold the same value regardless of key order or formatting.
// Undecodable current content is reported as different.
func EqualJSON(current, desired []byte) (bool, error) {
	var desiredValue interface{}
	if err := json.Unmarshal(desired, &desiredValue); err != nil {
		return false, fmt.Errorf("invalid document content: %w", err)
	}
	var currentValue interface{}
	if err := json.Unmarshal(current, &currentValue); err != nil {
		return false, nil
	}
	return reflect.DeepEqual(currentValue, desiredValue), nil
}

// UnifiedDiff returns the unified diff of the indented current and desired contents
func UnifiedDiff(name string, current, desired []byte) (*Diff, error) {
	unified := difflib.UnifiedDiff{
		A:        difflib.SplitLines(indent(current)),
		B:        difflib.SplitLines(indent(desired)),
		FromFile: name + " (registry)",
		ToFile:   name + " (build)",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(unified)
	if err != nil {
		return nil, err
	}
	ret := &Diff{Text: text}
	if text == "" {
		return ret, nil
	}
	fileDiff, err := sgdiff.ParseFileDiff([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to parse diff of %s: %w", name, err)
	}
	stat := fileDiff.Stat()
	ret.Added, ret.Changed, ret.Deleted = int(stat.Added), int(stat.Changed), int(stat.Deleted)
	return ret, nil
}

func indent(content []byte) string {
	buf := &bytes.Buffer{}
	if err := json.Indent(buf, content, "", "  "); err != nil {
		return string(content)
	}
	buf.WriteByte('\n')
	return buf.String()
}
