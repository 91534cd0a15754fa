package entities

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed is the configured dictionary of canonical names and their known
// variants. The resolver registry is rebuildable from a Seed alone.
type Seed struct {
	Entities []SeedEntity `yaml:"entities" json:"entities"`
}

// SeedEntity pairs a canonical name with the raw spellings known to denote it.
type SeedEntity struct {
	Name     string   `yaml:"name" json:"name"`
	Variants []string `yaml:"variants" json:"variants"`
}

// LoadSeed reads a seed dictionary from a YAML file.
func LoadSeed(path string) (Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("reading entity seed: %w", err)
	}
	var seed Seed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return Seed{}, fmt.Errorf("parsing entity seed: %w", err)
	}
	return seed, nil
}
