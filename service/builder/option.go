package builder

import (
	"log/slog"

	"github.com/viant/ssmdoc/service/compiler"
	"github.com/viant/ssmdoc/service/dao/document"
	"github.com/viant/ssmdoc/service/meta"
)

type Option func(s *Service)

// WithMetaService sets the service used to read sources and write artifacts
func WithMetaService(metaService *meta.Service) Option {
	return func(s *Service) {
		s.metaService = metaService
	}
}

// WithDocumentService sets the document parser
func WithDocumentService(documents *document.Service) Option {
	return func(s *Service) {
		s.documents = documents
	}
}

// WithCompiler sets the graph compiler
func WithCompiler(compiler *compiler.Service) Option {
	return func(s *Service) {
		s.compiler = compiler
	}
}

// WithOutputURL sets the artifact location
func WithOutputURL(URL string) Option {
	return func(s *Service) {
		s.outputURL = URL
	}
}

// WithWorkers sets the number of documents built concurrently
func WithWorkers(workers int) Option {
	return func(s *Service) {
		if workers > 0 {
			s.workers = workers
		}
	}
}

// WithGraph enables or disables writing <name>.dot next to each document
func WithGraph(enabled bool) Option {
	return func(s *Service) {
		s.graph = enabled
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
