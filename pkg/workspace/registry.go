// Package workspace discovers plugin packages in a workspace directory.
// A workspace is a directory whose immediate subdirectories each carry a
// package.yaml descriptor.
package workspace

import (
	"sort"

	"github.com/ajenti/ajenti-dev-multitool/pkg/descriptor"
)

// Package is a discovered package: its descriptor plus where it lives.
type Package struct {
	// Dir is the directory name inside the workspace (e.g., "demo-plugin")
	Dir string

	// Path is the absolute path to the package directory
	Path string

	// Descriptor is the parsed package.yaml
	Descriptor *descriptor.Descriptor
}

// Registry holds all discovered packages.
// Note: Registry is not thread-safe and should not be modified concurrently.
type Registry struct {
	// Packages is an ordered list of all discovered packages
	Packages []Package

	// ByName provides quick lookup by descriptor name (stores copies, not pointers)
	ByName map[string]Package

	// ByDir provides quick lookup by directory name
	ByDir map[string]Package
}

// NewRegistry creates an empty package registry.
func NewRegistry() *Registry {
	return &Registry{
		Packages: make([]Package, 0, 16),
		ByName:   make(map[string]Package),
		ByDir:    make(map[string]Package),
	}
}

// Add adds a package to the registry.
func (r *Registry) Add(pkg Package) {
	r.Packages = append(r.Packages, pkg)
	r.ByName[pkg.Descriptor.Name] = pkg
	r.ByDir[pkg.Dir] = pkg
}

// Get returns a package by descriptor name, or nil if not found.
func (r *Registry) Get(name string) *Package {
	if pkg, ok := r.ByName[name]; ok {
		return &pkg
	}
	return nil
}

// GetDir returns a package by directory name, or nil if not found.
func (r *Registry) GetDir(dir string) *Package {
	if pkg, ok := r.ByDir[dir]; ok {
		return &pkg
	}
	return nil
}

// Names returns all descriptor names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, len(r.Packages))
	for i, pkg := range r.Packages {
		names[i] = pkg.Descriptor.Name
	}
	sort.Strings(names)
	return names
}

// Len returns the number of discovered packages.
func (r *Registry) Len() int {
	return len(r.Packages)
}
