// Package config loads git-aiadd settings.
//
// Settings come from an optional .aiadd.yaml in the directory git-aiadd is
// invoked from. A missing file yields Default(); command-line flags are
// applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/git-aiadd/internal/workspace"
)

// FileName is the name of the optional settings file.
const FileName = ".aiadd.yaml"

// DefaultBatchSize is the number of paths passed to one git add invocation.
const DefaultBatchSize = 100

// ErrInvalidConfig indicates a settings file or flag value that cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Settings holds all git-aiadd configuration.
type Settings struct {
	// Discovery selects the workspace discovery strategy (shallow or manifest).
	Discovery string `yaml:"discovery"`

	// BatchSize caps the number of paths per git add invocation.
	BatchSize int `yaml:"batch_size"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Discovery: string(workspace.Shallow),
		BatchSize: DefaultBatchSize,
	}
}

// Load reads FileName from dir. A missing file is not an error.
func Load(dir string) (Settings, error) {
	settings := Default()

	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Default(), fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	if settings.Discovery == "" {
		settings.Discovery = string(workspace.Shallow)
	}
	if settings.BatchSize == 0 {
		settings.BatchSize = DefaultBatchSize
	}

	if err := settings.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return settings, nil
}

// Validate checks that every field holds a usable value.
func (s Settings) Validate() error {
	if _, err := workspace.ParseStrategy(s.Discovery); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if s.BatchSize < 1 {
		return fmt.Errorf("%w: batch_size must be at least 1, got %d", ErrInvalidConfig, s.BatchSize)
	}
	return nil
}

// Strategy returns the parsed discovery strategy. Settings must be valid.
func (s Settings) Strategy() workspace.Strategy {
	strategy, err := workspace.ParseStrategy(s.Discovery)
	if err != nil {
		return workspace.Shallow
	}
	return strategy
}
