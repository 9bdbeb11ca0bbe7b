package doctor

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor is a CommandExecutor for tests.
type fakeExecutor struct {
	paths   map[string]string // tool name → resolved path
	outputs map[string]string // resolved path → run output
	files   map[string]bool
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if path, ok := f.paths[file]; ok {
		return path, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

func (f *fakeExecutor) Run(name string, _ ...string) (string, error) {
	if out, ok := f.outputs[name]; ok {
		return out, nil
	}
	return "", errors.New("run failed")
}

func (f *fakeExecutor) FileExists(path string) bool {
	return f.files[path]
}

func TestCheckGit(t *testing.T) {
	exec := &fakeExecutor{
		paths:   map[string]string{"git": "/usr/bin/git"},
		outputs: map[string]string{"/usr/bin/git": "git version 2.43.0\n"},
	}

	check := CheckGit(exec)
	assert.Equal(t, StatusOK, check.Status)
	assert.Equal(t, "2.43.0", check.Message)
}

func TestCheckGit_Missing(t *testing.T) {
	check := CheckGit(&fakeExecutor{})
	assert.Equal(t, StatusMissing, check.Status)
	assert.NotEmpty(t, check.FixHint)
}

func TestCheckGit_VersionUnknown(t *testing.T) {
	exec := &fakeExecutor{paths: map[string]string{"git": "/usr/bin/git"}}

	check := CheckGit(exec)
	assert.Equal(t, StatusOK, check.Status)
	assert.Equal(t, "installed (version unknown)", check.Message)
}

func TestCheckWorkspace(t *testing.T) {
	exec := &fakeExecutor{files: map[string]bool{"/ws": true}}

	assert.Equal(t, StatusOK, CheckWorkspace(exec, "/ws").Status)
	assert.Equal(t, StatusMissing, CheckWorkspace(exec, "").Status)
	assert.Equal(t, StatusError, CheckWorkspace(exec, "/gone").Status)
}

func TestCheckHistory(t *testing.T) {
	exec := &fakeExecutor{files: map[string]bool{"/cfg/history.db": true}}

	assert.Equal(t, StatusOK, CheckHistory(exec, "/cfg/history.db").Status)
	assert.Equal(t, StatusWarning, CheckHistory(exec, "/cfg/other.db").Status)
	assert.Equal(t, StatusError, CheckHistory(exec, "").Status)
}

func TestCheckDist(t *testing.T) {
	assert.Equal(t, StatusOK, CheckDist(t.TempDir()).Status)
	assert.Equal(t, StatusWarning, CheckDist("").Status)
	assert.Equal(t, StatusError, CheckDist(filepath.Join(t.TempDir(), "nope")).Status)
}

func TestCheckAllAndSummary(t *testing.T) {
	workspace := t.TempDir()
	exec := &fakeExecutor{
		paths:   map[string]string{"git": "/usr/bin/git"},
		outputs: map[string]string{"/usr/bin/git": "git version 2.43.0"},
		files:   map[string]bool{workspace: true},
	}

	checker := NewCheckerWithExecutor(exec, workspace, "/cfg/history.db")
	checks := checker.CheckAll()
	require.Len(t, checks, 4)

	summary := checker.GetSummary(checks)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 3, summary.OK)
	assert.Equal(t, 1, summary.Warnings)
	assert.True(t, summary.Healthy())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "ok", StatusOK.String())
	assert.Equal(t, "missing", StatusMissing.String())
	assert.Equal(t, "error", StatusError.String())
	assert.Equal(t, "warning", StatusWarning.String())
	assert.Equal(t, "unknown", CheckStatus(42).String())
}
