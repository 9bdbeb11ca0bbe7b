package globalconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Version is the current config schema version.
const Version = "1.0"

var (
	// ErrNotInitialized is returned when config doesn't exist or has no workspace path.
	ErrNotInitialized = errors.New("not initialized: run 'ajenti-dev-multitool init <path>' first")
	// ErrWorkspaceNotFound is returned when the configured workspace path doesn't exist.
	ErrWorkspaceNotFound = errors.New("configured workspace path does not exist")
)

// Config represents the global multitool configuration.
type Config struct {
	Version       string      `yaml:"version"`
	WorkspacePath string      `yaml:"workspace_path"` // Set by `ajenti-dev-multitool init`
	Preferences   Preferences `yaml:"preferences"`
}

// Preferences represents user preferences.
type Preferences struct {
	DefaultBumpSegment string `yaml:"default_bump_segment,omitempty"` // major, minor or patch
	Color              bool   `yaml:"color"`                          // Styled terminal output
}

// NewConfig creates a new Config with defaults.
func NewConfig() *Config {
	return &Config{
		Version: Version,
		Preferences: Preferences{
			DefaultBumpSegment: "patch",
			Color:              true,
		},
	}
}

// Load loads the config from ~/.config/ajenti-dev-multitool/config.yaml.
// Returns ErrNotInitialized if the config doesn't exist or carries no
// workspace path.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.WorkspacePath == "" {
		return nil, ErrNotInitialized
	}

	if cfg.Preferences.DefaultBumpSegment == "" {
		cfg.Preferences.DefaultBumpSegment = "patch"
	}

	return &cfg, nil
}

// LoadOrCreate loads the config if it exists, or creates a new one.
// Unlike Load(), this doesn't require the config to be initialized.
func LoadOrCreate() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		if errors.Is(err, ErrNotInitialized) {
			return NewConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Save saves the config to ~/.config/ajenti-dev-multitool/config.yaml.
func (c *Config) Save() error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// WorkspaceDir returns the workspace path and validates it exists.
func (c *Config) WorkspaceDir() (string, error) {
	if c.WorkspacePath == "" {
		return "", ErrNotInitialized
	}

	info, err := os.Stat(c.WorkspacePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrWorkspaceNotFound, c.WorkspacePath)
		}
		return "", fmt.Errorf("failed to access workspace path: %w", err)
	}

	if !info.IsDir() {
		return "", fmt.Errorf("workspace path is not a directory: %s", c.WorkspacePath)
	}

	return c.WorkspacePath, nil
}

// DistDir returns the artifact output directory inside the workspace.
func (c *Config) DistDir() (string, error) {
	workspace, err := c.WorkspaceDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(workspace, "dist"), nil
}

// SetWorkspacePath sets and validates the workspace path.
func (c *Config) SetWorkspacePath(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s", absPath)
		}
		return fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", absPath)
	}

	c.WorkspacePath = absPath
	return nil
}

// IsInitialized checks if the config exists and has a valid workspace path.
func IsInitialized() bool {
	cfg, err := Load()
	if err != nil {
		return false
	}
	_, err = cfg.WorkspaceDir()
	return err == nil
}
