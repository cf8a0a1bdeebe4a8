package compiler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/viant/ssmdoc/internal/logattr"
	"github.com/viant/ssmdoc/model"
	"github.com/viant/ssmdoc/model/graph"
	"github.com/viant/ssmdoc/tracing"
)

// Service compiles automation documents into control-flow graphs
type Service struct {
	trailing TrailingPolicy
	logger   *slog.Logger
}

// Compile builds the graph of a document in a single pass over its steps
func (s *Service) Compile(ctx context.Context, document *model.Document) (ret *graph.Graph, err error) {
	if document == nil {
		return nil, fmt.Errorf("document was nil")
	}
	_, span := tracing.StartSpan(ctx, "compiler.compile")
	span.WithAttributes(map[string]string{"document": document.Name}).WithCount("steps", len(document.Steps))
	defer func() { tracing.EndSpan(span, err) }()

	ret = graph.New(document.Description)
	pending := NoPendingEdge
	for i, step := range document.Steps {
		if step == nil {
			return nil, fmt.Errorf("document %v: step %d: %w", document.Name, i, ErrNilStep)
		}
		if i == 0 {
			ret.AddEdge(&graph.Edge{From: graph.Start, To: step.Name})
		}
		transition, err := Resolve(step, pending)
		if err != nil {
			return nil, err
		}
		if transition.Dropped.IsSet() {
			s.logger.Debug("success transition replaced by failure transition",
				logattr.Document(document.Name), logattr.Step(step.Name))
		}
		ret.AddEdge(transition.Edges...)
		pending = transition.Pending
		ret.AddNode(step.Name)
	}

	if pending.IsSet() {
		switch s.trailing {
		case TrailingEnd:
			ret.AddEdge(pending.Resolve(graph.End))
		default:
			s.logger.Debug("dropped trailing transition",
				logattr.Document(document.Name), logattr.Step(pending.From), slog.String("label", pending.Label))
		}
	}
	return ret, nil
}

// Render compiles the document and returns its DOT text
func (s *Service) Render(ctx context.Context, document *model.Document) (string, error) {
	compiled, err := s.Compile(ctx, document)
	if err != nil {
		return "", err
	}
	return compiled.Render(), nil
}

// TrailingPolicy returns the configured trailing edge policy
func (s *Service) TrailingPolicy() TrailingPolicy {
	return s.trailing
}

// New creates a compiler service
func New(options ...Option) *Service {
	ret := &Service{
		trailing: TrailingDrop,
		logger:   slog.Default(),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}
