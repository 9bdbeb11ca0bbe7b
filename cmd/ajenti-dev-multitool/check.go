package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajenti/ajenti-dev-multitool/pkg/history"
	"github.com/ajenti/ajenti-dev-multitool/pkg/tui"
	"github.com/ajenti/ajenti-dev-multitool/pkg/workspace"
)

func newCheckCmd() *cobra.Command {
	var record bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Audit metadata consistency across revisions",
		Long: `Audit every package's recorded revision history together with its
current descriptor:

  - the descriptor name must never change across revisions
  - every revision installs exactly one entry-point script
  - versions moving backwards are flagged (parallel branches are normal,
    so this is a warning, not an error)
  - dependency-set changes between consecutive revisions are reported as
    informational findings

With --record, the current descriptor state of every consistent package is
appended to the history as a snapshot revision.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runCheck(record)
		},
	}

	cmd.Flags().BoolVar(&record, "record", false, "Snapshot the current state of consistent packages")

	return cmd
}

func runCheck(record bool) error {
	root, err := findWorkspace()
	if err != nil {
		return err
	}

	registry, _, err := workspace.Discover(root)
	if err != nil {
		return err
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	errorCount := 0
	checked := 0

	for _, pkg := range registry.Packages {
		revs, err := store.Revisions(pkg.Dir)
		if err != nil {
			return err
		}

		findings := history.CheckConsistency(pkg.Dir, revs, pkg.Descriptor)
		checked++

		pkgErrors := 0
		for _, finding := range findings {
			mark := tui.WarningStyle.Render("⚠")
			switch finding.Level {
			case history.LevelError:
				mark = tui.ErrorStyle.Render("✗")
				errorCount++
				pkgErrors++
			case history.LevelInfo:
				mark = tui.InfoStyle.Render("·")
			}
			fmt.Printf("%s %s: %s\n", mark, finding.Dir, finding.Message)
		}

		if record && pkgErrors == 0 {
			if err := store.RecordRevision(history.Revision{
				Dir:          pkg.Dir,
				Name:         pkg.Descriptor.Name,
				Version:      pkg.Descriptor.Version,
				ScriptsCount: len(pkg.Descriptor.Scripts),
				Requires:     pkg.Descriptor.InstallRequires,
				Action:       history.ActionSnapshot,
			}); err != nil {
				return err
			}
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("consistency check failed with %d error(s)", errorCount)
	}

	fmt.Printf("\n%s %d packages consistent.\n", tui.SuccessStyle.Render("✓"), checked)
	return nil
}
