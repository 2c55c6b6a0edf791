package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

//go:embed seed.yaml
var defaultSeed []byte

type seedFile struct {
	Properties []Property `yaml:"properties"`
}

// LoadSeed reads listings from a YAML file, or from the built-in sample
// catalog when path is empty.
func LoadSeed(path string) ([]Property, error) {
	data := defaultSeed
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed: %w", err)
		}
		data = raw
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) ([]Property, error) {
	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return sf.Properties, nil
}
