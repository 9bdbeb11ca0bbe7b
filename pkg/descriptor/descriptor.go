// Package descriptor defines the package descriptor model used throughout
// the multitool. A descriptor is a declarative package.yaml file describing
// how a package is installed: its identity, release version, runtime
// dependency set and executable entry points.
package descriptor

import (
	"strings"
)

// FileName is the descriptor file looked for in each package directory.
const FileName = "package.yaml"

// Descriptor represents a single package.yaml file.
type Descriptor struct {
	// Name is the package identifier (e.g., "ajenti-dev-multitool")
	Name string `yaml:"name"`

	// Version is the dotted release version string (e.g., "1.0.14")
	Version string `yaml:"version"`

	// Description is a short free-text description, may be "-"
	Description string `yaml:"description,omitempty"`

	// Author is the package author's display name
	Author string `yaml:"author,omitempty"`

	// AuthorEmail is the author's contact address
	AuthorEmail string `yaml:"author_email,omitempty"`

	// URL points at the project homepage
	URL string `yaml:"url,omitempty"`

	// InstallRequires is the runtime dependency set, order-preserving
	InstallRequires []string `yaml:"install_requires,omitempty"`

	// Scripts lists the executable entry points installed with the package
	Scripts []string `yaml:"scripts"`
}

// Clone returns a deep copy of the descriptor.
func (d *Descriptor) Clone() *Descriptor {
	c := *d
	c.InstallRequires = append([]string(nil), d.InstallRequires...)
	c.Scripts = append([]string(nil), d.Scripts...)
	return &c
}

// DepSet returns the dependency set as a lookup map.
func (d *Descriptor) DepSet() map[string]bool {
	set := make(map[string]bool, len(d.InstallRequires))
	for _, dep := range d.InstallRequires {
		set[dep] = true
	}
	return set
}

// DepsEqual reports whether two descriptors declare the same dependency set.
// Order and duplicates are ignored; the observed revisions of a package vary
// only in which dependencies are present, not in how they are listed.
func (d *Descriptor) DepsEqual(other *Descriptor) bool {
	a, b := d.DepSet(), other.DepSet()
	if len(a) != len(b) {
		return false
	}
	for dep := range a {
		if !b[dep] {
			return false
		}
	}
	return true
}

// DiffDeps returns the dependencies added and removed going from d to other.
// Both lists come back sorted by first appearance in the other/current list.
func (d *Descriptor) DiffDeps(other *Descriptor) (added, removed []string) {
	have, want := d.DepSet(), other.DepSet()
	for _, dep := range other.InstallRequires {
		if !have[dep] {
			added = append(added, dep)
		}
	}
	for _, dep := range d.InstallRequires {
		if !want[dep] {
			removed = append(removed, dep)
		}
	}
	return added, removed
}

// normalize trims whitespace from list entries and drops blank ones.
func normalize(entries []string) []string {
	out := entries[:0]
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}
