// Package validation provides descriptor validation for the multitool.
package validation

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ajenti/ajenti-dev-multitool/pkg/descriptor"
	"github.com/ajenti/ajenti-dev-multitool/pkg/workspace"
)

// Severity represents the severity of a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue represents a validation issue found in a package descriptor.
type Issue struct {
	Package  string   `json:"package"`
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Result holds all validation results.
type Result struct {
	Issues []Issue `json:"issues"`
}

// HasErrors returns true if there are any error-level issues.
func (r *Result) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			count++
		}
	}
	return count
}

// Validator validates package descriptors in a workspace.
type Validator struct {
	Root string
}

// NewValidator creates a new Validator for a workspace root.
func NewValidator(root string) *Validator {
	return &Validator{Root: root}
}

var nameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// ValidateAll discovers every package in the workspace and validates it,
// including the cross-package check that no two directories declare the same
// descriptor name.
func (v *Validator) ValidateAll() (*Result, error) {
	registry, failures, err := workspace.Discover(v.Root)
	if err != nil {
		return nil, err
	}

	result := &Result{Issues: []Issue{}}

	for _, failure := range failures {
		result.Issues = append(result.Issues, Issue{
			Package:  failure.Dir,
			Message:  fmt.Sprintf("failed to parse descriptor: %v", failure.Err),
			Severity: SeverityError,
		})
	}

	seen := make(map[string]string) // descriptor name → first dir
	for _, pkg := range registry.Packages {
		result.Issues = append(result.Issues, v.ValidatePackage(&pkg)...)

		name := pkg.Descriptor.Name
		if name == "" {
			continue
		}
		if first, dup := seen[name]; dup {
			result.Issues = append(result.Issues, Issue{
				Package:  pkg.Dir,
				Field:    "name",
				Message:  fmt.Sprintf("name %q is already declared by %s/", name, first),
				Severity: SeverityError,
			})
		} else {
			seen[name] = pkg.Dir
		}
	}

	return result, nil
}

// ValidatePackage validates a single discovered package.
func (v *Validator) ValidatePackage(pkg *workspace.Package) []Issue {
	issues := []Issue{}
	d := pkg.Descriptor

	issues = append(issues, checkName(pkg.Dir, d)...)
	issues = append(issues, checkVersion(pkg.Dir, d)...)
	issues = append(issues, checkScripts(pkg)...)
	issues = append(issues, checkRequires(pkg.Dir, d)...)
	issues = append(issues, checkMetadata(pkg.Dir, d)...)

	return issues
}

func checkName(pkgID string, d *descriptor.Descriptor) []Issue {
	if strings.TrimSpace(d.Name) == "" {
		return []Issue{{
			Package:  pkgID,
			Field:    "name",
			Message:  "name is required",
			Severity: SeverityError,
		}}
	}
	if !nameRe.MatchString(d.Name) {
		return []Issue{{
			Package:  pkgID,
			Field:    "name",
			Message:  fmt.Sprintf("invalid name %q: must be lowercase alphanumeric with optional '.', '_' or '-'", d.Name),
			Severity: SeverityError,
		}}
	}
	return nil
}

func checkVersion(pkgID string, d *descriptor.Descriptor) []Issue {
	if strings.TrimSpace(d.Version) == "" {
		return []Issue{{
			Package:  pkgID,
			Field:    "version",
			Message:  "version is required",
			Severity: SeverityError,
		}}
	}
	if _, err := descriptor.ParseVersion(d.Version); err != nil {
		return []Issue{{
			Package:  pkgID,
			Field:    "version",
			Message:  err.Error(),
			Severity: SeverityError,
		}}
	}
	return nil
}

// checkScripts enforces the entry-point convention: a descriptor installs
// exactly one script, and every listed script exists in the package directory.
func checkScripts(pkg *workspace.Package) []Issue {
	issues := []Issue{}
	d := pkg.Descriptor

	if len(d.Scripts) == 0 {
		issues = append(issues, Issue{
			Package:  pkg.Dir,
			Field:    "scripts",
			Message:  "scripts must contain at least one entry point",
			Severity: SeverityError,
		})
		return issues
	}

	if len(d.Scripts) > 1 {
		issues = append(issues, Issue{
			Package:  pkg.Dir,
			Field:    "scripts",
			Message:  fmt.Sprintf("expected exactly one entry point, found %d", len(d.Scripts)),
			Severity: SeverityWarning,
		})
	}

	seen := make(map[string]bool)
	for _, script := range d.Scripts {
		if seen[script] {
			issues = append(issues, Issue{
				Package:  pkg.Dir,
				Field:    "scripts",
				Message:  fmt.Sprintf("duplicate script entry %q", script),
				Severity: SeverityWarning,
			})
			continue
		}
		seen[script] = true

		if _, err := os.Stat(filepath.Join(pkg.Path, script)); os.IsNotExist(err) {
			issues = append(issues, Issue{
				Package:  pkg.Dir,
				Field:    "scripts",
				Message:  fmt.Sprintf("script %q not found in package directory", script),
				Severity: SeverityError,
			})
		}
	}

	return issues
}

func checkRequires(pkgID string, d *descriptor.Descriptor) []Issue {
	issues := []Issue{}

	seen := make(map[string]bool)
	for _, dep := range d.InstallRequires {
		if seen[dep] {
			issues = append(issues, Issue{
				Package:  pkgID,
				Field:    "install_requires",
				Message:  fmt.Sprintf("duplicate dependency %q", dep),
				Severity: SeverityError,
			})
			continue
		}
		seen[dep] = true

		if dep != strings.ToLower(dep) || strings.Contains(dep, "_") {
			issues = append(issues, Issue{
				Package:  pkgID,
				Field:    "install_requires",
				Message:  fmt.Sprintf("dependency %q is not normalized (use lowercase and '-')", dep),
				Severity: SeverityWarning,
			})
		}
	}

	return issues
}

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func checkMetadata(pkgID string, d *descriptor.Descriptor) []Issue {
	issues := []Issue{}

	desc := strings.TrimSpace(d.Description)
	if desc == "" || desc == "-" {
		issues = append(issues, Issue{
			Package:  pkgID,
			Field:    "description",
			Message:  "description is empty",
			Severity: SeverityWarning,
		})
	}

	if d.AuthorEmail != "" && !emailRe.MatchString(d.AuthorEmail) {
		issues = append(issues, Issue{
			Package:  pkgID,
			Field:    "author_email",
			Message:  fmt.Sprintf("invalid email address %q", d.AuthorEmail),
			Severity: SeverityWarning,
		})
	}

	if d.URL != "" {
		u, err := url.Parse(d.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			issues = append(issues, Issue{
				Package:  pkgID,
				Field:    "url",
				Message:  fmt.Sprintf("invalid url %q", d.URL),
				Severity: SeverityWarning,
			})
		}
	}

	return issues
}
