package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajenti/ajenti-dev-multitool/pkg/descriptor"
	"github.com/ajenti/ajenti-dev-multitool/pkg/globalconfig"
	"github.com/ajenti/ajenti-dev-multitool/pkg/history"
	"github.com/ajenti/ajenti-dev-multitool/pkg/workspace"
)

func newBumpCmd() *cobra.Command {
	var major, minor, patch bool

	cmd := &cobra.Command{
		Use:   "bump <package>",
		Short: "Bump a package's release version",
		Long: `Bump the version field of a package descriptor and record the new
revision in the local history.

Without a segment flag the preferred segment from the global config is used
(patch unless configured otherwise).`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runBump(args[0], major, minor, patch)
		},
	}

	cmd.Flags().BoolVar(&major, "major", false, "Bump the major segment")
	cmd.Flags().BoolVar(&minor, "minor", false, "Bump the minor segment")
	cmd.Flags().BoolVar(&patch, "patch", false, "Bump the patch segment")
	cmd.MarkFlagsMutuallyExclusive("major", "minor", "patch")

	return cmd
}

func runBump(name string, major, minor, patch bool) error {
	root, err := findWorkspace()
	if err != nil {
		return err
	}

	seg, err := pickSegment(major, minor, patch)
	if err != nil {
		return err
	}

	pkg, err := workspace.Find(root, name)
	if err != nil {
		return err
	}
	d := pkg.Descriptor

	current, err := descriptor.ParseVersion(d.Version)
	if err != nil {
		return fmt.Errorf("cannot bump %s: %w", pkg.Dir, err)
	}
	next := current.Bump(seg)

	d.Version = next.String()
	if err := d.SaveDir(pkg.Path); err != nil {
		return fmt.Errorf("failed to rewrite descriptor: %w", err)
	}

	if err := recordRevision(pkg, history.ActionBump); err != nil {
		return err
	}

	fmt.Printf("%s: %s -> %s\n", d.Name, current, next)
	return nil
}

// pickSegment maps the bump flags to a version segment, falling back to the
// configured preference.
func pickSegment(major, minor, patch bool) (descriptor.Segment, error) {
	switch {
	case major:
		return descriptor.SegmentMajor, nil
	case minor:
		return descriptor.SegmentMinor, nil
	case patch:
		return descriptor.SegmentPatch, nil
	}

	cfg, err := globalconfig.LoadOrCreate()
	if err != nil {
		return 0, err
	}
	return descriptor.ParseSegment(cfg.Preferences.DefaultBumpSegment)
}

// recordRevision appends the package's current descriptor state to the
// history store.
func recordRevision(pkg *workspace.Package, action string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	return store.RecordRevision(history.Revision{
		Dir:          pkg.Dir,
		Name:         pkg.Descriptor.Name,
		Version:      pkg.Descriptor.Version,
		ScriptsCount: len(pkg.Descriptor.Scripts),
		Requires:     pkg.Descriptor.InstallRequires,
		Action:       action,
	})
}

// openHistory opens the history store at its configured location.
func openHistory() (*history.Store, error) {
	path, err := globalconfig.GetHistoryPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve history path: %w", err)
	}
	return history.Open(path)
}
