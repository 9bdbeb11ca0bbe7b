package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ajenti/ajenti-dev-multitool/pkg/descriptor"
	"github.com/ajenti/ajenti-dev-multitool/pkg/history"
	"github.com/ajenti/ajenti-dev-multitool/pkg/tui"
	"github.com/ajenti/ajenti-dev-multitool/pkg/utils"
	"github.com/ajenti/ajenti-dev-multitool/pkg/workspace"
)

func newNewCmd() *cobra.Command {
	var noInput bool
	var pkgVersion, description, author, email, url string
	var requires []string

	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Scaffold a new package",
		Long: `Create a new package directory with a package.yaml descriptor and an
executable entry-point stub named after the package.

By default an interactive wizard collects the metadata; with --no-input the
descriptor is assembled from flags only.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return runNew(name, noInput, &descriptor.Descriptor{
				Version:         pkgVersion,
				Description:     description,
				Author:          author,
				AuthorEmail:     email,
				URL:             url,
				InstallRequires: requires,
			})
		},
	}

	cmd.Flags().BoolVar(&noInput, "no-input", false, "Skip the wizard and use flags only")
	cmd.Flags().StringVar(&pkgVersion, "set-version", "0.1.0", "Initial version")
	cmd.Flags().StringVar(&description, "description", "", "Package description")
	cmd.Flags().StringVar(&author, "author", "", "Author name")
	cmd.Flags().StringVar(&email, "email", "", "Author email")
	cmd.Flags().StringVar(&url, "url", "", "Project URL")
	cmd.Flags().StringSliceVar(&requires, "requires", nil, "Runtime dependencies")

	return cmd
}

func runNew(name string, noInput bool, flags *descriptor.Descriptor) error {
	root, err := findWorkspace()
	if err != nil {
		return err
	}

	var d *descriptor.Descriptor
	if noInput {
		if name == "" {
			return fmt.Errorf("a package name is required with --no-input")
		}
		d = flags
		d.Name = name
	} else {
		result, err := tui.RunWizard(tui.WizardDefaults{
			Name:        name,
			Version:     flags.Version,
			Author:      flags.Author,
			AuthorEmail: flags.AuthorEmail,
			URL:         flags.URL,
		})
		if err != nil {
			return err
		}
		if !result.Accepted {
			fmt.Println("Cancelled.")
			return nil
		}
		d = result.Descriptor
	}

	d.Name = utils.SanitizePackageName(d.Name)
	if err := utils.ValidatePackageName(d.Name); err != nil {
		return err
	}
	// The entry point is named after the package, so it follows any rename
	// sanitization made above
	d.Scripts = []string{d.Name}
	if _, err := descriptor.ParseVersion(d.Version); err != nil {
		return err
	}

	pkgDir := filepath.Join(root, d.Name)
	if _, err := os.Stat(pkgDir); err == nil {
		return fmt.Errorf("directory %s already exists", pkgDir)
	}
	if err := os.MkdirAll(pkgDir, 0755); err != nil {
		return fmt.Errorf("failed to create package directory: %w", err)
	}

	if err := d.SaveDir(pkgDir); err != nil {
		return err
	}
	if err := writeScriptStub(pkgDir, d.Name); err != nil {
		return err
	}

	pkg, err := workspace.Load(root, d.Name)
	if err != nil {
		return err
	}
	if err := recordRevision(pkg, history.ActionNew); err != nil {
		return err
	}

	fmt.Printf("%s Created %s\n", tui.SuccessStyle.Render("✓"), pkgDir)
	fmt.Printf("  - %s\n", filepath.Join(pkgDir, descriptor.FileName))
	fmt.Printf("  - %s\n", filepath.Join(pkgDir, d.Name))

	return nil
}

// writeScriptStub creates the executable entry-point stub.
func writeScriptStub(pkgDir, name string) error {
	stub := fmt.Sprintf("#!/bin/sh\n# %s entry point\necho \"%s: not implemented yet\"\n", name, name)
	path := filepath.Join(pkgDir, name)
	if err := os.WriteFile(path, []byte(stub), 0755); err != nil {
		return fmt.Errorf("failed to write entry-point stub: %w", err)
	}
	return nil
}
