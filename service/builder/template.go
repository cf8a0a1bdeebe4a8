package builder

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxTemplateBodySize is the exclusive upper bound of an inlined CloudFormation template
const MaxTemplateBodySize = 51200

// ConvertTemplate expands CloudFormation short form tags (!Sub, !GetAtt, ...) to
// their long form and returns the template as YAML with a two space indent.
func ConvertTemplate(data []byte) (string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}
	if len(root.Content) == 0 {
		return "", fmt.Errorf("template was empty")
	}
	expandIntrinsics(&root)
	buf := &bytes.Buffer{}
	encoder := yaml.NewEncoder(buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return "", fmt.Errorf("failed to encode template: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", err
	}
	body := buf.String()
	if len(body) >= MaxTemplateBodySize {
		return "", fmt.Errorf("template too long: %d bytes, must be less than %d", len(body), MaxTemplateBodySize)
	}
	return body, nil
}

func expandIntrinsics(node *yaml.Node) {
	for _, child := range node.Content {
		expandIntrinsics(child)
	}
	if node.Alias != nil || !isLocalTag(node.Tag) {
		return
	}
	name := intrinsicName(node.Tag[1:])
	value := *node
	value.Style &^= yaml.TaggedStyle
	value.HeadComment = ""
	switch value.Kind {
	case yaml.ScalarNode:
		value.Tag = "!!str"
		if name == "Fn::GetAtt" {
			value = yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for _, part := range strings.Split(node.Value, ".") {
				value.Content = append(value.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: part})
			}
		}
	case yaml.SequenceNode:
		value.Tag = "!!seq"
	case yaml.MappingNode:
		value.Tag = "!!map"
	}
	*node = yaml.Node{
		Kind:        yaml.MappingNode,
		Tag:         "!!map",
		Line:        node.Line,
		Column:      node.Column,
		HeadComment: node.HeadComment,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&value,
		},
	}
}

func isLocalTag(tag string) bool {
	return strings.HasPrefix(tag, "!") && !strings.HasPrefix(tag, "!!") && len(tag) > 1
}

func intrinsicName(tag string) string {
	switch tag {
	case "Ref", "Condition":
		return tag
	}
	return "Fn::" + tag
}
