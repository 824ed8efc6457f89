package morphology

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type yamlFile struct {
	Prefixes []Affix `yaml:"prefixes"`
	Stems    []Stem  `yaml:"stems"`
	Suffixes []Affix `yaml:"suffixes"`
}

// ParseYAML builds a DB from a YAML lexicon document.
func ParseYAML(data []byte) (*DB, error) {
	var f yamlFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse morphology yaml: %w", err)
	}
	return NewDB(f.Prefixes, f.Stems, f.Suffixes)
}

// LoadYAML reads and parses a YAML lexicon file.
func LoadYAML(path string) (*DB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read morphology db %s: %w", path, err)
	}
	return ParseYAML(data)
}
