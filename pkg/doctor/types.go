// Package doctor provides environment checking for the multitool.
package doctor

// CheckStatus represents the status of an environment check.
type CheckStatus int

const (
	// StatusOK indicates the check passed.
	StatusOK CheckStatus = iota
	// StatusMissing indicates a required tool or path is not present.
	StatusMissing
	// StatusError indicates an error occurred during the check.
	StatusError
	// StatusWarning indicates the check found issues but work can continue.
	StatusWarning
)

// String returns the string representation of the status.
func (s CheckStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMissing:
		return "missing"
	case StatusError:
		return "error"
	case StatusWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Check represents a single environment check result.
type Check struct {
	ID          string      // Unique identifier, e.g., "git", "workspace"
	Name        string      // Display name
	Description string      // What this check verifies
	Status      CheckStatus // Current status
	Message     string      // Status message (version info, error, etc.)
	FixHint     string      // How to fix the problem (empty if not fixable)
}

// CheckID constants for individual checks.
const (
	IDGit       = "git"
	IDWorkspace = "workspace"
	IDHistory   = "history"
	IDDist      = "dist"
)

// Summary represents an overall health summary.
type Summary struct {
	Total    int
	OK       int
	Missing  int
	Warnings int
	Errors   int
}
