// Package main provides the ajenti-dev-multitool CLI for maintaining a
// workspace of plugin packages and their package.yaml descriptors.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajenti/ajenti-dev-multitool/pkg/globalconfig"
)

// version is set via -ldflags during build
var version = "dev"

// workspaceFlag overrides the configured workspace path for one invocation.
var workspaceFlag string

func main() {
	rootCmd := newRootCmd()

	// Cobra handles error printing
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command for ajenti-dev-multitool.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ajenti-dev-multitool",
		Short: "Developer multitool for plugin package workspaces",
		Long: `ajenti-dev-multitool maintains a workspace of plugin packages, each
described by a package.yaml descriptor (name, version, dependencies and the
installed entry-point script).

It supports:
  - Discovering and listing packages in the workspace
  - Validating descriptors and auditing metadata consistency across revisions
  - Scaffolding new packages, interactively or from flags
  - Bumping release versions and building tar.xz artifacts`,
		Version: version,
	}

	rootCmd.PersistentFlags().StringVarP(&workspaceFlag, "workspace", "w", "",
		"Workspace root (defaults to the path set by 'init')")

	rootCmd.AddCommand(
		newInitCmd(),
		newListCmd(),
		newInfoCmd(),
		newNewCmd(),
		newValidateCmd(),
		newCheckCmd(),
		newBumpCmd(),
		newBuildCmd(),
		newHistoryCmd(),
		newDoctorCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// newVersionCmd reports the binary version, mirroring the --version flag.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the multitool version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("ajenti-dev-multitool version %s\n", version)
		},
	}
}

// findWorkspace resolves the workspace root: the --workspace flag wins,
// otherwise the path recorded by 'init' is used.
func findWorkspace() (string, error) {
	if workspaceFlag != "" {
		info, err := os.Stat(workspaceFlag)
		if err != nil {
			return "", fmt.Errorf("workspace not found: %w", err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("workspace path is not a directory: %s", workspaceFlag)
		}
		return workspaceFlag, nil
	}

	cfg, err := globalconfig.Load()
	if err != nil {
		return "", err
	}
	return cfg.WorkspaceDir()
}
