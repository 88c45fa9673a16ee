package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/hairfallback/internal/coverage"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture: a sequence
// of character snapshots and, optionally, the path each should resolve to.
type Fixture struct {
	Description string        `json:"description"`
	Cases       []FixtureCase `json:"cases"`
}

// FixtureCase is one query. An empty ExpectedPath is not checked; an
// ExpectedError names the error class ("no_fallback_range").
type FixtureCase struct {
	ID            string             `json:"id"`
	Character     coverage.Character `json:"character"`
	ExpectedPath  string             `json:"expected_path,omitempty"`
	ExpectedError string             `json:"expected_error,omitempty"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	for i := range f.Cases {
		if f.Cases[i].ID == "" {
			f.Cases[i].ID = fmt.Sprintf("case-%d", i+1)
		}
	}
	return &f, nil
}

// #endregion fixture-loader
