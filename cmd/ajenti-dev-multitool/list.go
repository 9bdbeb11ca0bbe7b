package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajenti/ajenti-dev-multitool/pkg/tui"
	"github.com/ajenti/ajenti-dev-multitool/pkg/workspace"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List packages in the workspace",
		Long:  `List every package.yaml descriptor discovered in the workspace.`,
		RunE:  runList,
	}
}

func runList(_ *cobra.Command, _ []string) error {
	root, err := findWorkspace()
	if err != nil {
		return err
	}

	registry, failures, err := workspace.Discover(root)
	if err != nil {
		return fmt.Errorf("failed to discover packages: %w", err)
	}

	fmt.Printf("Found %d packages in %s:\n\n", registry.Len(), root)

	for _, pkg := range registry.Packages {
		d := pkg.Descriptor
		desc := d.Description
		if desc == "" || desc == "-" {
			desc = "(no description)"
		}
		fmt.Printf("  %s %s %s\n", tui.SuccessStyle.Render(d.Name), tui.LabelStyle.Render(d.Version), desc)
	}

	for _, failure := range failures {
		fmt.Printf("  %s %s: %v\n", tui.ErrorStyle.Render("✗"), failure.Dir, failure.Err)
	}

	return nil
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <package>",
		Short: "Show a package descriptor",
		Long:  `Show the full descriptor of one package, looked up by name or directory.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}
}

func runInfo(_ *cobra.Command, args []string) error {
	root, err := findWorkspace()
	if err != nil {
		return err
	}

	pkg, err := workspace.Find(root, args[0])
	if err != nil {
		return err
	}
	d := pkg.Descriptor

	fmt.Printf("%s\n\n", tui.TitleStyle.Render(d.Name))
	fmt.Printf("  Directory:  %s\n", pkg.Path)
	fmt.Printf("  Version:    %s\n", d.Version)
	if d.Description != "" {
		fmt.Printf("  About:      %s\n", d.Description)
	}
	if d.Author != "" {
		author := d.Author
		if d.AuthorEmail != "" {
			author = fmt.Sprintf("%s <%s>", d.Author, d.AuthorEmail)
		}
		fmt.Printf("  Author:     %s\n", author)
	}
	if d.URL != "" {
		fmt.Printf("  URL:        %s\n", d.URL)
	}
	if len(d.InstallRequires) > 0 {
		fmt.Printf("  Requires:   %s\n", strings.Join(d.InstallRequires, ", "))
	}
	fmt.Printf("  Scripts:    %s\n", strings.Join(d.Scripts, ", "))

	return nil
}
