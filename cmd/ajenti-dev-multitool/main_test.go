package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajenti/ajenti-dev-multitool/pkg/descriptor"
)

// seedWorkspace creates a workspace with one valid package and points both
// the config dir and the --workspace flag at temp locations.
func seedWorkspace(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := t.TempDir()
	dir := filepath.Join(root, "dashboard")
	require.NoError(t, os.MkdirAll(dir, 0755))

	d := &descriptor.Descriptor{
		Name:            "dashboard",
		Version:         "1.0.14",
		Description:     "Server dashboard",
		Author:          "Eugene Pankov",
		AuthorEmail:     "e@ajenti.org",
		URL:             "https://ajenti.org/",
		InstallRequires: []string{"coloredlogs"},
		Scripts:         []string{"dashboard"},
	}
	require.NoError(t, d.SaveDir(dir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dashboard"), []byte("#!/bin/sh\n"), 0755))

	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestNewRootCmd(t *testing.T) {
	rootCmd := newRootCmd()

	assert.Equal(t, "ajenti-dev-multitool", rootCmd.Use)
	assert.Equal(t, "Developer multitool for plugin package workspaces", rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCmdHelp(t *testing.T) {
	output, err := execute(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, output, "ajenti-dev-multitool")
	assert.Contains(t, output, "validate")
	assert.Contains(t, output, "check")
	assert.Contains(t, output, "bump")
	assert.Contains(t, output, "build")
	assert.Contains(t, output, "doctor")
}

func TestRootCmdVersion(t *testing.T) {
	output, err := execute(t, "--version")
	require.NoError(t, err)

	assert.Contains(t, output, "ajenti-dev-multitool version")
}

func TestValidateCmd(t *testing.T) {
	root := seedWorkspace(t)

	_, err := execute(t, "validate", "-w", root)
	assert.NoError(t, err)
}

func TestValidateCmd_FailsOnBrokenDescriptor(t *testing.T) {
	root := seedWorkspace(t)
	broken := filepath.Join(root, "broken")
	require.NoError(t, os.MkdirAll(broken, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(broken, descriptor.FileName), []byte("name: [\n"), 0644))

	_, err := execute(t, "validate", "-w", root)
	assert.Error(t, err)
}

func TestBumpCmd(t *testing.T) {
	root := seedWorkspace(t)

	_, err := execute(t, "bump", "dashboard", "--patch", "-w", root)
	require.NoError(t, err)

	d, err := descriptor.LoadDir(filepath.Join(root, "dashboard"))
	require.NoError(t, err)
	assert.Equal(t, "1.0.15", d.Version)
}

func TestCheckCmd(t *testing.T) {
	root := seedWorkspace(t)

	// Record a snapshot, bump, then audit the recorded history
	_, err := execute(t, "check", "--record", "-w", root)
	require.NoError(t, err)
	_, err = execute(t, "bump", "dashboard", "--minor", "-w", root)
	require.NoError(t, err)

	_, err = execute(t, "check", "-w", root)
	assert.NoError(t, err)
}

func TestBuildCmd(t *testing.T) {
	root := seedWorkspace(t)

	_, err := execute(t, "build", "dashboard", "-w", root)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(root, "dist", "dashboard-1.0.14.tar.xz"))
}

func TestNewCmd_NoInput(t *testing.T) {
	root := seedWorkspace(t)

	_, err := execute(t, "new", "notifications", "--no-input",
		"--set-version", "0.13", "--description", "Notification center", "-w", root)
	require.NoError(t, err)

	d, err := descriptor.LoadDir(filepath.Join(root, "notifications"))
	require.NoError(t, err)
	assert.Equal(t, "notifications", d.Name)
	assert.Equal(t, "0.13", d.Version)
	assert.Equal(t, []string{"notifications"}, d.Scripts)
}

func TestNewCmd_SanitizedNameKeepsScriptInSync(t *testing.T) {
	root := seedWorkspace(t)

	// The name needs rewriting; the entry-point script must follow it
	_, err := execute(t, "new", "PyYAML Helper", "--no-input", "-w", root)
	require.NoError(t, err)

	dir := filepath.Join(root, "pyyaml-helper")
	d, err := descriptor.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "pyyaml-helper", d.Name)
	assert.Equal(t, []string{"pyyaml-helper"}, d.Scripts)
	assert.FileExists(t, filepath.Join(dir, "pyyaml-helper"))

	_, err = execute(t, "validate", "-w", root)
	assert.NoError(t, err, "a freshly scaffolded package must validate cleanly")
}

func TestVersionCmd(t *testing.T) {
	output, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, output, "ajenti-dev-multitool version")
}

func TestHistoryCmd_EmptyHistory(t *testing.T) {
	root := seedWorkspace(t)

	_, err := execute(t, "history", "dashboard", "-w", root)
	assert.NoError(t, err)
}

func TestSubcommandHelp(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		expects []string
	}{
		{
			name:    "validate help",
			args:    []string{"validate", "--help"},
			expects: []string{"package.yaml", "workspace"},
		},
		{
			name:    "check help",
			args:    []string{"check", "--help"},
			expects: []string{"revision", "script"},
		},
		{
			name:    "bump help",
			args:    []string{"bump", "--help"},
			expects: []string{"version", "--patch"},
		},
		{
			name:    "build help",
			args:    []string{"build", "--help"},
			expects: []string{"tar.xz", "dist"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := execute(t, tt.args...)
			require.NoError(t, err)

			for _, expect := range tt.expects {
				assert.Contains(t, output, expect)
			}
		})
	}
}
