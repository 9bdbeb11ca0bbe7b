package builder

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"

	"github.com/ajenti/ajenti-dev-multitool/pkg/descriptor"
	"github.com/ajenti/ajenti-dev-multitool/pkg/workspace"
)

func setupPackage(t *testing.T) (string, *workspace.Package) {
	t.Helper()
	root := t.TempDir()
	pkgDir := filepath.Join(root, "dashboard")
	require.NoError(t, os.MkdirAll(pkgDir, 0755))

	d := &descriptor.Descriptor{
		Name:            "dashboard",
		Version:         "1.0.14",
		Description:     "Workspace dashboard",
		InstallRequires: []string{"pyyaml"},
		Scripts:         []string{"dashboard"},
	}
	require.NoError(t, d.SaveDir(pkgDir))
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "dashboard"), []byte("#!/bin/sh\necho hi\n"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(pkgDir, "resources"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "resources", "layout.yaml"), []byte("rows: 3\n"), 0644))

	// Must not end up in the artifact
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, ".hidden"), []byte("x"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(pkgDir, "dist"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "dist", "old.tar.xz"), []byte("x"), 0644))

	pkg, err := workspace.Load(root, "dashboard")
	require.NoError(t, err)
	return root, pkg
}

// archiveNames lists the entry names inside a tar.xz artifact.
func archiveNames(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	xzr, err := xz.NewReader(f)
	require.NoError(t, err)
	tr := tar.NewReader(xzr)

	var names []string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		names = append(names, hdr.Name)
	}
	return names
}

func TestBuild(t *testing.T) {
	root, pkg := setupPackage(t)

	result, err := NewBuilder(root).Build(pkg, nil)
	require.NoError(t, err)

	assert.Equal(t, "dashboard", result.Name)
	assert.Equal(t, "1.0.14", result.Version)
	assert.NotEmpty(t, result.BuildID)
	assert.Len(t, result.SHA256, 64)
	assert.Equal(t, filepath.Join(root, "dist", "dashboard-1.0.14.tar.xz"), result.Artifact)

	names := archiveNames(t, result.Artifact)
	assert.Contains(t, names, "dashboard-1.0.14/package.yaml")
	assert.Contains(t, names, "dashboard-1.0.14/dashboard")
	assert.Contains(t, names, "dashboard-1.0.14/resources/layout.yaml")

	for _, name := range names {
		assert.NotContains(t, name, ".hidden")
		assert.NotContains(t, name, "dist")
	}
}

func TestBuild_PreservesScriptMode(t *testing.T) {
	root, pkg := setupPackage(t)

	result, err := NewBuilder(root).Build(pkg, nil)
	require.NoError(t, err)

	f, err := os.Open(result.Artifact)
	require.NoError(t, err)
	defer f.Close()

	xzr, err := xz.NewReader(f)
	require.NoError(t, err)
	tr := tar.NewReader(xzr)

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		if hdr.Name == "dashboard-1.0.14/dashboard" {
			assert.NotZero(t, hdr.FileInfo().Mode()&0100, "entry script should stay executable")
			return
		}
	}
	t.Fatal("entry script not found in artifact")
}

func TestBuild_CustomOutputDir(t *testing.T) {
	root, pkg := setupPackage(t)
	outDir := filepath.Join(t.TempDir(), "artifacts")

	result, err := NewBuilder(root).Build(pkg, &Options{OutputDir: outDir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "dashboard-1.0.14.tar.xz"), result.Artifact)

	_, err = os.Stat(result.Artifact)
	assert.NoError(t, err)
}

func TestBuild_BadVersionRefused(t *testing.T) {
	root, pkg := setupPackage(t)
	pkg.Descriptor.Version = "one.two"

	_, err := NewBuilder(root).Build(pkg, nil)
	assert.Error(t, err)

	_, statErr := os.Stat(filepath.Join(root, "dist", "dashboard-one.two.tar.xz"))
	assert.True(t, os.IsNotExist(statErr))
}
