package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// #region file-schema
// File is the on-disk catalog definition.
type File struct {
	Fallbacks []FallbackEntry `yaml:"fallbacks"`
}

// #endregion file-schema

// #region load
// LoadFile reads and validates a YAML catalog definition.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML catalog data, checks each entry and builds the catalog.
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	for i, e := range f.Fallbacks {
		if err := validate(e); err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, e.Name, err)
		}
	}
	return New(f.Fallbacks)
}

func validate(e FallbackEntry) error {
	r := e.Range
	if r.Start < 0 || r.End > 100 {
		return fmt.Errorf("range %s outside [0,100]", r)
	}
	if r.Start > r.End {
		return fmt.Errorf("range %s has start after end", r)
	}
	if len(e.Candidates) == 0 {
		return ErrNoCandidates
	}
	for _, c := range e.Candidates {
		if c == "" {
			return fmt.Errorf("empty candidate path")
		}
	}
	return nil
}

// #endregion load
