package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ajenti/ajenti-dev-multitool/pkg/descriptor"
)

// ParseError records a descriptor that could not be read or parsed during
// discovery. Discovery keeps going past broken descriptors so one bad file
// does not hide the rest of the workspace.
type ParseError struct {
	Dir string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Dir, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Discover scans the immediate subdirectories of root for package.yaml
// descriptors and returns a registry of everything that parsed, plus the
// parse failures encountered along the way.
func Discover(root string) (*Registry, []*ParseError, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, nil, fmt.Errorf("workspace not found: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("workspace path is not a directory: %s", root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read workspace: %w", err)
	}

	registry := NewRegistry()
	var failures []*ParseError

	// Deterministic order regardless of filesystem
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || name == "dist" {
			continue
		}

		dir := filepath.Join(root, name)
		if _, err := os.Stat(filepath.Join(dir, descriptor.FileName)); os.IsNotExist(err) {
			continue
		}

		pkg, err := loadPackage(root, name)
		if err != nil {
			failures = append(failures, &ParseError{Dir: name, Err: err})
			continue
		}
		registry.Add(*pkg)
	}

	return registry, failures, nil
}

// Load loads a single package by directory name.
func Load(root, dir string) (*Package, error) {
	pkg, err := loadPackage(root, dir)
	if err != nil {
		return nil, err
	}
	return pkg, nil
}

// Find resolves a package by descriptor name or directory name, descriptor
// name winning when the two disagree.
func Find(root, name string) (*Package, error) {
	registry, _, err := Discover(root)
	if err != nil {
		return nil, err
	}

	if pkg := registry.Get(name); pkg != nil {
		return pkg, nil
	}
	if pkg := registry.GetDir(name); pkg != nil {
		return pkg, nil
	}
	return nil, fmt.Errorf("package %q not found in workspace %s", name, root)
}

func loadPackage(root, dir string) (*Package, error) {
	path := filepath.Join(root, dir)

	d, err := descriptor.LoadDir(path)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	return &Package{Dir: dir, Path: abs, Descriptor: d}, nil
}
