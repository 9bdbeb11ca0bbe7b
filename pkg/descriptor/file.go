package descriptor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Parse decodes a descriptor from YAML bytes. Decoding is strict: unknown
// keys are an error so that typos in a hand-edited package.yaml surface
// immediately instead of being silently dropped.
func Parse(data []byte) (*Descriptor, error) {
	var d Descriptor
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to parse descriptor: %w", err)
	}

	d.InstallRequires = normalize(d.InstallRequires)
	d.Scripts = normalize(d.Scripts)

	return &d, nil
}

// Load reads and parses the descriptor file at path.
func Load(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor: %w", err)
	}

	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// LoadDir loads the package.yaml inside a package directory.
func LoadDir(dir string) (*Descriptor, error) {
	return Load(filepath.Join(dir, FileName))
}

// Marshal serializes the descriptor to YAML with a stable field order and
// two-space indentation.
func (d *Descriptor) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to marshal descriptor: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish marshalling: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the descriptor to path atomically: the content goes to a
// temporary file in the same directory first, then replaces the target with
// a rename. A crash mid-write never leaves a truncated package.yaml behind.
func (d *Descriptor) Save(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".package-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write descriptor: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace descriptor: %w", err)
	}

	return nil
}

// SaveDir writes the descriptor into a package directory as package.yaml.
func (d *Descriptor) SaveDir(dir string) error {
	return d.Save(filepath.Join(dir, FileName))
}
