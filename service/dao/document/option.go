package document

import "github.com/viant/ssmdoc/service/meta"

type Option func(*Service)

// WithMetaService sets the meta service
func WithMetaService(meta *meta.Service) Option {
	return func(s *Service) {
		s.metaService = meta
	}
}

// WithStepsNodeName sets the name of the node holding the document steps
func WithStepsNodeName(name string) Option {
	return func(s *Service) {
		s.stepsNodeName = name
	}
}
