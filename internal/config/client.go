package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nineteen58/pitchgen/internal/errors"
)

// ClientDocument is a nested string-keyed client configuration as loaded
// from disk. Values are scalars, sequences, or nested documents.
type ClientDocument map[string]any

// LoadClientDocument reads and parses a client configuration file. The YAML
// reader handles both the .yaml/.yml and legacy .json variants.
func LoadClientDocument(path string) (ClientDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigParseError(path, err)
	}

	var doc ClientDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.ConfigParseError(path, err)
	}
	return doc, nil
}
