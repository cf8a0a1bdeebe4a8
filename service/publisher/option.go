package publisher

import (
	"log/slog"

	"github.com/viant/afs/storage"
)

type Option func(s *Service)

// WithStorageOptions sets options passed to every storage call, for example credentials
func WithStorageOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.options = options
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
