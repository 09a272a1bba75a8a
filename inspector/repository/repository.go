package repository

import (
	"path"

	"golang.org/x/mod/modfile"
)

// Project represents information about a detected Go module
type Project struct {
	RootPath     string // Absolute path to the module root directory
	RelativePath string // Slash separated path from the module root to the inspected location
	Module       *modfile.Module
}

// Name returns the module path, or the root folder name when go.mod declares none
func (p *Project) Name() string {
	if p.Module != nil && p.Module.Mod.Path != "" {
		return p.Module.Mod.Path
	}
	return path.Base(p.RootPath)
}

// ImportPath returns the import path of the inspected package
func (p *Project) ImportPath() string {
	if p.RelativePath == "" || p.RelativePath == "." {
		return p.Name()
	}
	return path.Join(p.Name(), p.RelativePath)
}
