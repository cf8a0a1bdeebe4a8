package sync

import (
	"log/slog"

	"github.com/viant/ssmdoc/service/meta"
)

type Option func(s *Service)

// WithMetaService sets the service used to read artifacts and configs
func WithMetaService(metaService *meta.Service) Option {
	return func(s *Service) {
		s.metaService = metaService
	}
}

// WithDocumentType sets the type of created documents
func WithDocumentType(documentType string) Option {
	return func(s *Service) {
		s.documentType = documentType
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
