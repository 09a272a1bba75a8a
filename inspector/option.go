package inspector

import (
	"github.com/viant/afs"
	"github.com/viant/calltrace/inspector/info"
)

// Option represents a Service option
type Option func(s *Service)

// WithParser selects the source parser backend by name
func WithParser(name string) Option {
	return func(s *Service) {
		s.parserName = name
	}
}

// WithTypedGlobals loads package globals with the type checker
func WithTypedGlobals(enabled bool) Option {
	return func(s *Service) {
		s.typed = enabled
	}
}

// WithConfig sets the inspection config
func WithConfig(config *info.Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithFS sets the file system used to load sources
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}
