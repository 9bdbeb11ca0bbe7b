package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajenti/ajenti-dev-multitool/pkg/builder"
	"github.com/ajenti/ajenti-dev-multitool/pkg/history"
	"github.com/ajenti/ajenti-dev-multitool/pkg/tui"
	"github.com/ajenti/ajenti-dev-multitool/pkg/validation"
	"github.com/ajenti/ajenti-dev-multitool/pkg/workspace"
)

func newBuildCmd() *cobra.Command {
	var all, verbose bool
	var outputDir string

	cmd := &cobra.Command{
		Use:   "build [package]",
		Short: "Build package artifacts",
		Long: `Build a tar.xz artifact for a package (or for every package with --all).

Each package is validated first; validation errors abort its build. Finished
artifacts land in <workspace>/dist/ and are recorded in the local history
with a build id and checksum.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if all {
				if len(args) > 0 {
					return fmt.Errorf("--all does not take a package argument")
				}
				return runBuildAll(outputDir, verbose)
			}
			if len(args) == 0 {
				return fmt.Errorf("a package name is required (or use --all)")
			}
			return runBuild(args[0], outputDir, verbose)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Build every package in the workspace")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (defaults to <workspace>/dist)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Enable verbose output")

	return cmd
}

func runBuild(name, outputDir string, verbose bool) error {
	root, err := findWorkspace()
	if err != nil {
		return err
	}

	pkg, err := workspace.Find(root, name)
	if err != nil {
		return err
	}

	if err := buildOne(root, pkg, outputDir, verbose); err != nil {
		return err
	}
	fmt.Println("\nBuild complete!")
	return nil
}

func runBuildAll(outputDir string, verbose bool) error {
	root, err := findWorkspace()
	if err != nil {
		return err
	}

	registry, failures, err := workspace.Discover(root)
	if err != nil {
		return err
	}
	for _, failure := range failures {
		fmt.Printf("%s skipping %s: %v\n", tui.WarningStyle.Render("⚠"), failure.Dir, failure.Err)
	}
	if registry.Len() == 0 {
		return fmt.Errorf("no packages found in %s", root)
	}

	failed := 0
	for _, pkg := range registry.Packages {
		if err := buildOne(root, &pkg, outputDir, verbose); err != nil {
			fmt.Printf("%s %s: %v\n", tui.ErrorStyle.Render("✗"), pkg.Dir, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d builds failed", failed, registry.Len())
	}
	fmt.Println("\nBuild complete!")
	return nil
}

// buildOne validates a single package, builds its artifact and records the
// result in the history store.
func buildOne(root string, pkg *workspace.Package, outputDir string, verbose bool) error {
	validator := validation.NewValidator(root)
	issues := validator.ValidatePackage(pkg)

	errors := 0
	for _, issue := range issues {
		if issue.Severity == validation.SeverityError {
			errors++
		}
	}
	printIssues(issues)
	if errors > 0 {
		return fmt.Errorf("validation failed with %d error(s), fix errors before building", errors)
	}

	b := builder.NewBuilder(root)
	b.SetVerbose(verbose)

	result, err := b.Build(pkg, &builder.Options{OutputDir: outputDir})
	if err != nil {
		return err
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.RecordBuild(history.Build{
		ID:       result.BuildID,
		Name:     result.Name,
		Version:  result.Version,
		Artifact: result.Artifact,
		SHA256:   result.SHA256,
	}); err != nil {
		return err
	}
	if err := store.RecordRevision(history.Revision{
		Dir:          pkg.Dir,
		Name:         pkg.Descriptor.Name,
		Version:      pkg.Descriptor.Version,
		ScriptsCount: len(pkg.Descriptor.Scripts),
		Requires:     pkg.Descriptor.InstallRequires,
		Action:       history.ActionBuild,
	}); err != nil {
		return err
	}

	fmt.Printf("%s %s %s\n", tui.SuccessStyle.Render("✓"), result.Artifact, tui.LabelStyle.Render("sha256:"+result.SHA256[:12]))
	return nil
}
