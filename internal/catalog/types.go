package catalog

import (
	"errors"
	"fmt"
)

// #region errors
var (
	// ErrNoFallbackRange means no declared range contains a measured percentage.
	// It signals a gap in the catalog configuration.
	ErrNoFallbackRange = errors.New("no fallback range")
	// ErrDuplicateRange is returned at load time when two entries declare the
	// exact same range.
	ErrDuplicateRange = errors.New("duplicate range declaration")
	// ErrNoCandidates is returned at load time for an entry with nothing to
	// fall back to.
	ErrNoCandidates = errors.New("fallback entry has no candidates")
)

// #endregion errors

// #region extent-range
// ExtentRange is a closed interval over the 0-100 bottom-extent metric.
type ExtentRange struct {
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`
}

// Contains reports whether pct lies in [Start, End].
func (r ExtentRange) Contains(pct int) bool {
	return pct >= r.Start && pct <= r.End
}

func (r ExtentRange) String() string {
	return fmt.Sprintf("[%d,%d]", r.Start, r.End)
}

// #endregion extent-range

// #region fallback-entry
// FallbackEntry maps a range to candidate substitute asset groups, in
// declared preference order.
type FallbackEntry struct {
	Name       string      `yaml:"name" json:"name"`
	Range      ExtentRange `yaml:"range" json:"range"`
	Candidates []string    `yaml:"candidates" json:"candidates"`
}

// #endregion fallback-entry
