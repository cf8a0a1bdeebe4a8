package compiler

import "log/slog"

type Option func(s *Service)

// WithTrailingPolicy sets how an edge still pending after the last step is handled
func WithTrailingPolicy(policy TrailingPolicy) Option {
	return func(s *Service) {
		s.trailing = policy
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
