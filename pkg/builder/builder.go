// Package builder assembles distributable package artifacts. A build takes a
// package directory and produces a <name>-<version>.tar.xz archive in the
// workspace dist/ directory, identified by a build id and checksum.
package builder

import (
	"archive/tar"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/ulikunitz/xz"

	"github.com/ajenti/ajenti-dev-multitool/pkg/descriptor"
	"github.com/ajenti/ajenti-dev-multitool/pkg/workspace"
)

// Builder creates package artifacts from a workspace.
type Builder struct {
	root    string
	verbose bool
}

// NewBuilder creates a new Builder for a workspace root.
func NewBuilder(root string) *Builder {
	return &Builder{root: root}
}

// SetVerbose enables verbose output during build.
func (b *Builder) SetVerbose(verbose bool) {
	b.verbose = verbose
}

// Options control where an artifact is written.
type Options struct {
	// OutputDir is where the artifact lands. Defaults to <workspace>/dist.
	OutputDir string
}

// Result describes a finished build.
type Result struct {
	BuildID  string
	Name     string
	Version  string
	Artifact string
	SHA256   string
}

// Build archives a package directory into a tar.xz artifact.
func (b *Builder) Build(pkg *workspace.Package, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}

	// Step 1: the artifact name needs a parseable version
	if _, err := descriptor.ParseVersion(pkg.Descriptor.Version); err != nil {
		return nil, fmt.Errorf("cannot build %s: %w", pkg.Dir, err)
	}

	// Step 2: ensure output directory exists
	outDir := opts.OutputDir
	if outDir == "" {
		outDir = filepath.Join(b.root, "dist")
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	name := pkg.Descriptor.Name
	version := pkg.Descriptor.Version
	artifact := filepath.Join(outDir, fmt.Sprintf("%s-%s.tar.xz", name, version))

	b.log("Archiving %s into %s", pkg.Dir, artifact)

	// Step 3: write the archive
	if err := b.writeArchive(pkg, artifact); err != nil {
		os.Remove(artifact)
		return nil, err
	}

	// Step 4: checksum the finished artifact
	sum, err := fileSHA256(artifact)
	if err != nil {
		return nil, fmt.Errorf("failed to checksum artifact: %w", err)
	}

	return &Result{
		BuildID:  uuid.NewString(),
		Name:     name,
		Version:  version,
		Artifact: artifact,
		SHA256:   sum,
	}, nil
}

// writeArchive tars the package directory under a <name>-<version>/ prefix
// and compresses it with xz. Hidden entries and nested dist/ directories are
// left out of the artifact.
func (b *Builder) writeArchive(pkg *workspace.Package, artifact string) error {
	out, err := os.Create(artifact)
	if err != nil {
		return fmt.Errorf("failed to create artifact: %w", err)
	}
	defer out.Close()

	xzw, err := xz.NewWriter(out)
	if err != nil {
		return fmt.Errorf("failed to create xz writer: %w", err)
	}

	tw := tar.NewWriter(xzw)
	prefix := fmt.Sprintf("%s-%s", pkg.Descriptor.Name, pkg.Descriptor.Version)

	err = filepath.WalkDir(pkg.Path, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(pkg.Path, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		base := filepath.Base(rel)
		if strings.HasPrefix(base, ".") || base == "dist" {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(filepath.Join(prefix, rel))

		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(tw, f)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to archive %s: %w", pkg.Dir, err)
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to finish tar stream: %w", err)
	}
	if err := xzw.Close(); err != nil {
		return fmt.Errorf("failed to finish xz stream: %w", err)
	}
	return out.Close()
}

// fileSHA256 hashes a file's contents.
func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func (b *Builder) log(format string, args ...interface{}) {
	if b.verbose {
		fmt.Printf(format+"\n", args...)
	}
}
