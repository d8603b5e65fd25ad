package catalog

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ShayCichocki/orbit/pkg/models"
)

// orbFile is the on-disk layout of a YAML catalog file.
type orbFile struct {
	Orbs []models.Orb `yaml:"orbs"`
}

// YAMLStore reads orb records from a single YAML catalog file.
// The file holds a top-level "orbs" list; record order in the file is
// the catalog insertion order.
type YAMLStore struct {
	path string
}

// NewYAMLStore creates a store for the given catalog file path.
func NewYAMLStore(path string) *YAMLStore {
	return &YAMLStore{path: path}
}

// Path returns the catalog file path.
func (s *YAMLStore) Path() string {
	return s.path
}

// Load reads and decodes the catalog file.
func (s *YAMLStore) Load(ctx context.Context) ([]models.Orb, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var file orbFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}

	return file.Orbs, nil
}

// WriteYAMLStore writes orbs to a catalog file, creating or replacing it.
// Used by catalog seeding; evaluation never writes.
func WriteYAMLStore(path string, orbs []models.Orb) error {
	data, err := yaml.Marshal(orbFile{Orbs: orbs})
	if err != nil {
		return fmt.Errorf("encode catalog file: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write catalog file: %w", err)
	}
	return nil
}
