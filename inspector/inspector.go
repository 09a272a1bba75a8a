// Package inspector recovers function and package level details from Go sources for live stack frames.
package inspector

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/calltrace/inspector/golang"
	"github.com/viant/calltrace/inspector/info"
	"github.com/viant/calltrace/inspector/repository"
	"golang.org/x/sync/singleflight"
)

// Parser names
const (
	ParserAST        = "ast"
	ParserTreeSitter = "tree-sitter"
)

// ErrFunctionNotFound is returned when no function encloses the requested line
var ErrFunctionNotFound = info.ErrFunctionNotFound

// Parser parses a Go source file
type Parser interface {
	// Parse parses src and returns a function source
	Parse(filename string, src []byte) (info.Source, error)
}

// Service locates functions and package globals for source positions
type Service struct {
	fs         afs.Service
	config     *info.Config
	parserName string
	typed      bool
	parser     Parser
	golang     *golang.Inspector
	detector   *repository.Detector

	group    singleflight.Group
	mux      sync.RWMutex
	sources  map[uint64]info.Source
	packages map[string]*info.Package
}

// New creates a Service
func New(options ...Option) (*Service, error) {
	s := &Service{
		parserName: ParserAST,
		sources:    map[uint64]info.Source{},
		packages:   map[string]*info.Package{},
	}
	for _, opt := range options {
		opt(s)
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	if s.config == nil {
		s.config = info.DefaultConfig()
	}
	s.golang = golang.NewInspector(s.config)
	s.detector = repository.New(s.fs)
	switch s.parserName {
	case ParserAST:
		s.parser = s.golang
	case ParserTreeSitter:
		s.parser = golang.NewTreeSitterInspector(s.config)
	default:
		return nil, fmt.Errorf("unsupported parser: %v", s.parserName)
	}
	return s, nil
}

// Function returns the function enclosing filename:line
func (s *Service) Function(ctx context.Context, filename string, line int) (*info.Function, error) {
	if !filepath.IsAbs(filename) {
		if abs, err := filepath.Abs(filename); err == nil {
			filename = abs
		}
	}
	src, err := s.fs.DownloadWithURL(ctx, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read source %s: %w", filename, err)
	}
	source, err := s.source(filename, src)
	if err != nil {
		return nil, err
	}
	return source.Function(line)
}

func (s *Service) source(filename string, src []byte) (info.Source, error) {
	key, err := Hash(src)
	if err != nil {
		return nil, err
	}
	s.mux.RLock()
	source, ok := s.sources[key]
	s.mux.RUnlock()
	if ok {
		return source, nil
	}
	value, err, _ := s.group.Do(strconv.FormatUint(key, 16), func() (interface{}, error) {
		source, err := s.parser.Parse(filename, src)
		if err != nil {
			return nil, err
		}
		s.mux.Lock()
		s.sources[key] = source
		s.mux.Unlock()
		return source, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(info.Source), nil
}

// Package returns package level symbols of the package in dir, qualified by the module import path
func (s *Service) Package(ctx context.Context, dir string) (*info.Package, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	s.mux.RLock()
	pkg, ok := s.packages[absDir]
	s.mux.RUnlock()
	if ok {
		return pkg, nil
	}
	value, err, _ := s.group.Do("pkg:"+absDir, func() (interface{}, error) {
		pkg, err := s.loadPackage(ctx, absDir)
		if err != nil {
			return nil, err
		}
		s.mux.Lock()
		s.packages[absDir] = pkg
		s.mux.Unlock()
		return pkg, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*info.Package), nil
}

func (s *Service) loadPackage(ctx context.Context, dir string) (*info.Package, error) {
	if s.typed {
		if pkg, err := s.golang.InspectTypedPackage(dir); err == nil {
			return pkg, nil
		}
	}
	pkg, err := s.golang.InspectPackage(dir)
	if err != nil {
		return nil, err
	}
	if project, err := s.detector.DetectProject(ctx, dir); err == nil {
		pkg.ImportPath = project.ImportPath()
	}
	return pkg, nil
}

// Builtins returns the predeclared identifiers of the universe scope
func (s *Service) Builtins() map[string]string {
	return golang.Builtins()
}
