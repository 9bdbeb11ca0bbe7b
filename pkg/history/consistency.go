package history

import (
	"fmt"
	"strings"

	"github.com/ajenti/ajenti-dev-multitool/pkg/descriptor"
)

// Level classifies a consistency finding.
type Level string

const (
	LevelError Level = "error"
	LevelWarn  Level = "warning"
	LevelInfo  Level = "info"
)

// Finding is a single consistency observation for a package.
type Finding struct {
	Dir     string
	Level   Level
	Message string
}

// CheckConsistency audits a package's recorded revisions, optionally ending
// with its current descriptor state. The rules follow what package metadata
// is expected to keep constant across revisions:
//
//   - the descriptor name never changes (error on drift)
//   - every revision installs exactly one entry-point script
//     (error when none, warning when more)
//   - versions may move backwards, since revisions can come from different
//     branches; a regression is only a warning
//   - dependency-set drift between consecutive revisions is reported as
//     informational findings
func CheckConsistency(dir string, revs []Revision, current *descriptor.Descriptor) []Finding {
	if current != nil {
		revs = append(revs, Revision{
			Dir:          dir,
			Name:         current.Name,
			Version:      current.Version,
			ScriptsCount: len(current.Scripts),
			Requires:     current.InstallRequires,
			Action:       ActionSnapshot,
		})
	}
	if len(revs) == 0 {
		return nil
	}

	var findings []Finding

	baseline := revs[0].Name
	for _, rev := range revs[1:] {
		if rev.Name != baseline {
			findings = append(findings, Finding{
				Dir:     dir,
				Level:   LevelError,
				Message: fmt.Sprintf("name changed from %q to %q across revisions", baseline, rev.Name),
			})
			baseline = rev.Name
		}
	}

	for _, rev := range revs {
		switch {
		case rev.ScriptsCount == 0:
			findings = append(findings, Finding{
				Dir:     dir,
				Level:   LevelError,
				Message: fmt.Sprintf("revision %s installs no entry-point script", rev.Version),
			})
		case rev.ScriptsCount > 1:
			findings = append(findings, Finding{
				Dir:     dir,
				Level:   LevelWarn,
				Message: fmt.Sprintf("revision %s installs %d entry-point scripts, expected exactly one", rev.Version, rev.ScriptsCount),
			})
		}
	}

	var prev descriptor.Version
	for _, rev := range revs {
		v, err := descriptor.ParseVersion(rev.Version)
		if err != nil {
			findings = append(findings, Finding{
				Dir:     dir,
				Level:   LevelError,
				Message: fmt.Sprintf("revision has unparseable version %q", rev.Version),
			})
			continue
		}
		if prev != nil && v.Compare(prev) < 0 {
			findings = append(findings, Finding{
				Dir:     dir,
				Level:   LevelWarn,
				Message: fmt.Sprintf("version moved backwards from %s to %s (parallel branch?)", prev, v),
			})
		}
		prev = v
	}

	for i := 1; i < len(revs); i++ {
		drift := DiffRequires(revs[i-1].Requires, revs[i].Requires)
		if len(drift) == 0 {
			continue
		}
		findings = append(findings, Finding{
			Dir:     dir,
			Level:   LevelInfo,
			Message: fmt.Sprintf("dependencies changed between %s and %s: %s", revs[i-1].Version, revs[i].Version, strings.Join(drift, " ")),
		})
	}

	return findings
}

// DiffRequires describes dependency drift between two dependency sets in
// "+added -removed" notation.
func DiffRequires(old, current []string) []string {
	a := &descriptor.Descriptor{InstallRequires: old}
	b := &descriptor.Descriptor{InstallRequires: current}
	added, removed := a.DiffDeps(b)

	var out []string
	for _, dep := range added {
		out = append(out, "+"+dep)
	}
	for _, dep := range removed {
		out = append(out, "-"+dep)
	}
	return out
}
