package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

const goModFile = "go.mod"

// ErrNoModule is returned when no go.mod is found above the inspected location
var ErrNoModule = errors.New("no go.mod found")

// Detector identifies Go module root folders
type Detector struct {
	fs afs.Service
}

// New creates a new project detector instance
func New(fs afs.Service) *Detector {
	if fs == nil {
		fs = afs.New()
	}
	return &Detector{fs: fs}
}

// DetectProject identifies the module root for the given file or directory and returns project info
func (d *Detector) DetectProject(ctx context.Context, location string) (*Project, error) {
	absPath, err := filepath.Abs(location)
	if err != nil {
		return nil, err
	}

	// If it's a file, start from its parent directory
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath := findModuleRoot(startDir)
	if rootPath == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoModule, location)
	}
	relPath, err := filepath.Rel(rootPath, startDir)
	if err != nil {
		return nil, err
	}
	project := &Project{RootPath: rootPath, RelativePath: filepath.ToSlash(relPath)}
	if project.Module, err = d.parseModule(ctx, filepath.Join(rootPath, goModFile)); err != nil {
		return nil, err
	}
	return project, nil
}

// findModuleRoot searches up from the start directory for go.mod
func findModuleRoot(startDir string) string {
	dir := startDir
	for {
		if _, err := os.Stat(filepath.Join(dir, goModFile)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// We've reached the filesystem root with no match
			return ""
		}
		dir = parent
	}
}

func (d *Detector) parseModule(ctx context.Context, goModPath string) (*modfile.Module, error) {
	content, err := d.fs.DownloadWithURL(ctx, goModPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", goModPath, err)
	}
	mod, err := modfile.ParseLax(goModPath, content, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", goModPath, err)
	}
	return mod.Module, nil
}
