package document

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/ssmdoc/internal/yml"
	"github.com/viant/ssmdoc/model"
	"github.com/viant/ssmdoc/service/meta"
	"gopkg.in/yaml.v3"
)

const (
	inputsNode  = "inputs"
	choicesNode = "Choices"
	defaultNode = "Default"
)

// Service loads automation documents
type Service struct {
	metaService   *meta.Service
	stepsNodeName string
}

// DecodeJSON decodes a document from JSON keeping field order
func (s *Service) DecodeJSON(encoded []byte) (*model.Document, error) {
	node, err := yml.DecodeJSON(encoded)
	if err != nil {
		return nil, err
	}
	return s.Parse("", node)
}

// DecodeYAML decodes a document from YAML
func (s *Service) DecodeYAML(encoded []byte) (*model.Document, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(encoded, &node); err != nil {
		return nil, err
	}
	return s.Parse("", (*yml.Node)(&node))
}

// Load loads a document from a JSON or YAML resource
func (s *Service) Load(ctx context.Context, URL string) (*model.Document, error) {
	if path.Ext(url.Path(URL)) == "" {
		URL += ".json"
	}
	node := &yml.Node{}
	if err := s.metaService.Load(ctx, URL, node); err != nil {
		return nil, fmt.Errorf("failed to load document from %s: %w", URL, err)
	}
	return s.Parse(URL, node)
}

// Parse converts a document tree into the document model; the tree is kept as the document source
func (s *Service) Parse(URL string, node *yml.Node) (*model.Document, error) {
	root := node.Root()
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("failed to parse document %s: root node should be a mapping", URL)
	}
	document := &model.Document{Name: documentName(URL), Source: root}
	if err := s.parseDocument(root, document); err != nil {
		return nil, fmt.Errorf("failed to parse document %s: %w", URL, err)
	}
	if issues := document.Validate(); len(issues) > 0 {
		return nil, issues[0]
	}
	return document, nil
}

func documentName(URL string) string {
	if URL == "" {
		return ""
	}
	base := path.Base(url.Path(URL))
	return strings.TrimSuffix(base, path.Ext(base))
}

func (s *Service) parseDocument(node *yml.Node, document *model.Document) error {
	return node.Pairs(func(key string, valueNode *yml.Node) error {
		switch key {
		case "description":
			document.Description = valueNode.String()
		case "schemaVersion":
			document.SchemaVersion = valueNode.String()
		case s.stepsNodeName:
			if valueNode.Kind != yaml.SequenceNode {
				return fmt.Errorf("%s should be a sequence", s.stepsNodeName)
			}
			return valueNode.Items(func(index int, stepNode *yml.Node) error {
				step, err := parseStep(stepNode)
				if err != nil {
					return fmt.Errorf("failed to parse step %d: %w", index, err)
				}
				document.Steps = append(document.Steps, step)
				return nil
			})
		}
		return nil
	})
}

func parseStep(node *yml.Node) (*model.Step, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("step node should be a mapping")
	}
	step := &model.Step{}
	// keys are matched as written; only flag and action values are case-insensitive
	err := node.Pairs(func(key string, valueNode *yml.Node) error {
		switch key {
		case "name":
			step.Name = valueNode.String()
		case "action":
			step.Action = valueNode.String()
		case "nextStep":
			step.NextStep = valueNode.String()
		case "isEnd":
			step.IsEnd = model.ParseFlag(valueNode.Interface())
		case "onFailure":
			step.OnFailure = valueNode.String()
		case "isCritical":
			step.IsCritical = model.ParseFlag(valueNode.Interface())
		case "inputs":
			return parseBranchInputs(valueNode, step)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return step, nil
}

// parseBranchInputs reads Choices and Default; other inputs are left to the source tree
func parseBranchInputs(node *yml.Node, step *model.Step) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	if choices := node.Lookup(choicesNode); choices != nil {
		if choices.Kind != yaml.SequenceNode {
			return fmt.Errorf("%s should be a sequence", choicesNode)
		}
		if err := choices.Items(func(index int, item *yml.Node) error {
			if item.Kind != yaml.MappingNode {
				return fmt.Errorf("choice %d should be a mapping", index)
			}
			step.Choices = append(step.Choices, model.ChoiceFromNode(item))
			return nil
		}); err != nil {
			return err
		}
	}
	step.Default = node.Lookup(defaultNode).String()
	return nil
}

// New creates a document service
func New(opts ...Option) *Service {
	ret := &Service{
		metaService:   meta.New(afs.New(), ""),
		stepsNodeName: "mainSteps",
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
