package adapter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "github.com/metaneutrons/logtidy/internal/model"
)

// SchemeStore loads category scheme files.
type SchemeStore interface {
	// LoadScheme reads and validates a scheme YAML file. An empty path
	// yields the built-in default scheme.
	LoadScheme(path m.Path) (m.Scheme, error)
}

// LocalSchemeStore reads scheme files from disk.
type LocalSchemeStore struct{}

// NewSchemeStore constructs a LocalSchemeStore.
func NewSchemeStore() *LocalSchemeStore {
	return &LocalSchemeStore{}
}

// LoadScheme reads and validates the scheme at path, or the default scheme
// when path is empty.
func (s *LocalSchemeStore) LoadScheme(path m.Path) (m.Scheme, error) {
	if path == "" {
		return m.DefaultScheme(), nil
	}

	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.Scheme{}, fmt.Errorf("read scheme: %w", err)
	}

	var scheme m.Scheme
	if err := yaml.Unmarshal(data, &scheme); err != nil {
		return m.Scheme{}, fmt.Errorf("parse scheme: %w", err)
	}

	if scheme.Default == "" {
		scheme.Default = m.CategoryCore
	}

	if err := scheme.Validate(); err != nil {
		return m.Scheme{}, err
	}

	return scheme, nil
}
