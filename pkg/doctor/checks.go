package doctor

import (
	"bytes"
	"os"
	"os/exec"
	"regexp"
)

// CommandExecutor is an interface for executing commands, allowing for testing.
type CommandExecutor interface {
	LookPath(file string) (string, error)
	Run(name string, args ...string) (string, error)
	FileExists(path string) bool
}

// RealExecutor is the default command executor that uses the real system.
type RealExecutor struct{}

// LookPath finds the path to an executable.
func (e *RealExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes a command and returns its output.
func (e *RealExecutor) Run(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		// Some tools report their version on stderr
		if stderr.Len() > 0 {
			return stderr.String(), err
		}
		return stdout.String(), err
	}
	output := stdout.String()
	if output == "" {
		output = stderr.String()
	}
	return output, nil
}

// FileExists checks if a file exists.
func (e *RealExecutor) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

var versionRe = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?(?:-[a-zA-Z0-9]+)?)`)

// CheckGit verifies that git is installed; workspaces are expected to be
// version-controlled.
func CheckGit(exec CommandExecutor) Check {
	check := Check{
		ID:          IDGit,
		Name:        "git",
		Description: "Version control for the plugin workspace",
		FixHint:     "install git (apt install git / brew install git)",
	}

	path, err := exec.LookPath("git")
	if err != nil {
		check.Status = StatusMissing
		check.Message = "not installed"
		return check
	}

	output, err := exec.Run(path, "--version")
	if err != nil {
		check.Status = StatusOK
		check.Message = "installed (version unknown)"
		return check
	}

	check.Status = StatusOK
	if matches := versionRe.FindStringSubmatch(output); len(matches) >= 2 {
		check.Message = matches[1]
	} else {
		check.Message = "installed"
	}
	return check
}

// CheckWorkspace verifies that a workspace is configured and present.
func CheckWorkspace(exec CommandExecutor, workspacePath string) Check {
	check := Check{
		ID:          IDWorkspace,
		Name:        "workspace",
		Description: "Configured plugin workspace directory",
		FixHint:     "run 'ajenti-dev-multitool init <path>'",
	}

	if workspacePath == "" {
		check.Status = StatusMissing
		check.Message = "no workspace configured"
		return check
	}
	if !exec.FileExists(workspacePath) {
		check.Status = StatusError
		check.Message = "configured workspace does not exist: " + workspacePath
		return check
	}

	check.Status = StatusOK
	check.Message = workspacePath
	return check
}

// CheckHistory verifies the history database location is usable.
func CheckHistory(exec CommandExecutor, historyPath string) Check {
	check := Check{
		ID:          IDHistory,
		Name:        "history",
		Description: "Revision and build history database",
	}

	if historyPath == "" {
		check.Status = StatusError
		check.Message = "history path could not be resolved"
		return check
	}

	if !exec.FileExists(historyPath) {
		// Created lazily on first bump/build
		check.Status = StatusWarning
		check.Message = "no history recorded yet"
		return check
	}

	check.Status = StatusOK
	check.Message = historyPath
	return check
}

// CheckDist verifies the artifact output directory can be written to.
func CheckDist(workspacePath string) Check {
	check := Check{
		ID:          IDDist,
		Name:        "dist",
		Description: "Artifact output directory",
	}

	if workspacePath == "" {
		check.Status = StatusWarning
		check.Message = "no workspace configured"
		return check
	}

	probe, err := os.CreateTemp(workspacePath, ".doctor-*")
	if err != nil {
		check.Status = StatusError
		check.Message = "workspace is not writable: " + err.Error()
		return check
	}
	probe.Close()
	os.Remove(probe.Name())

	check.Status = StatusOK
	check.Message = "writable"
	return check
}
