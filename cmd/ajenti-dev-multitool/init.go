package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajenti/ajenti-dev-multitool/pkg/globalconfig"
	"github.com/ajenti/ajenti-dev-multitool/pkg/workspace"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <path>",
		Short: "Initialize the multitool with a workspace path",
		Long: `Initialize the multitool by recording the workspace path in
~/.config/ajenti-dev-multitool/config.yaml.

The workspace is a directory whose subdirectories each contain a package.yaml
descriptor.

Examples:
  ajenti-dev-multitool init .                  # Use current directory
  ajenti-dev-multitool init ~/code/plugins     # Use absolute path`,
		Args: cobra.ExactArgs(1),
		RunE: runInit,
	}
}

func runInit(_ *cobra.Command, args []string) error {
	path := args[0]

	if path == "." {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
	}

	cfg, err := globalconfig.LoadOrCreate()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.SetWorkspacePath(path); err != nil {
		return err
	}

	// A workspace without a single descriptor is probably a wrong path
	registry, _, err := workspace.Discover(cfg.WorkspacePath)
	if err != nil {
		return err
	}
	if registry.Len() == 0 {
		fmt.Printf("Warning: no package.yaml descriptors found under %s\n", cfg.WorkspacePath)
		fmt.Println("Use 'ajenti-dev-multitool new <name>' to scaffold the first package.")
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	configPath, err := globalconfig.GetConfigPath()
	if err != nil {
		configPath = "~/.config/ajenti-dev-multitool/config.yaml" // fallback for display
	}
	fmt.Printf("Initialized with workspace: %s\n", cfg.WorkspacePath)
	fmt.Printf("Config saved to: %s\n", configPath)

	return nil
}
