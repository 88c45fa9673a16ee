package catalog

import (
	"fmt"

	"github.com/google/uuid"
)

// #region catalog
// Catalog is an immutable, ordered list of fallback entries. It is safe for
// concurrent use without locking.
type Catalog struct {
	id      string
	entries []FallbackEntry
}

// New validates entries and builds a catalog. Overlapping ranges are allowed
// and resolved by declaration order; byte-identical ranges and entries
// without candidates are rejected.
func New(entries []FallbackEntry) (*Catalog, error) {
	seen := make(map[ExtentRange]int, len(entries))
	copied := make([]FallbackEntry, len(entries))
	for i, e := range entries {
		if j, dup := seen[e.Range]; dup {
			return nil, fmt.Errorf("%w: %s declared by entries %d and %d", ErrDuplicateRange, e.Range, j, i)
		}
		if len(e.Candidates) == 0 {
			return nil, fmt.Errorf("%w: entry %d %s", ErrNoCandidates, i, e.Range)
		}
		seen[e.Range] = i
		e.Candidates = append([]string(nil), e.Candidates...)
		copied[i] = e
	}
	return &Catalog{id: uuid.New().String(), entries: copied}, nil
}

// ID identifies this loaded catalog instance.
func (c *Catalog) ID() string {
	return c.id
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the entries in declaration order.
func (c *Catalog) Entries() []FallbackEntry {
	out := make([]FallbackEntry, len(c.entries))
	for i, e := range c.entries {
		e.Candidates = append([]string(nil), e.Candidates...)
		out[i] = e
	}
	return out
}

// #endregion catalog

// #region range-for
// RangeFor returns the first declared entry whose range contains pct.
func (c *Catalog) RangeFor(pct int) (FallbackEntry, bool) {
	for _, e := range c.entries {
		if e.Range.Contains(pct) {
			return e, true
		}
	}
	return FallbackEntry{}, false
}

// Lookup is RangeFor that reports a miss as ErrNoFallbackRange.
func (c *Catalog) Lookup(pct int) (FallbackEntry, error) {
	e, ok := c.RangeFor(pct)
	if !ok {
		return FallbackEntry{}, fmt.Errorf("%w: %d%%", ErrNoFallbackRange, pct)
	}
	return e, nil
}

// Gaps returns the percentages in [0,100] that no entry covers.
func (c *Catalog) Gaps() []int {
	var gaps []int
	for p := 0; p <= 100; p++ {
		if _, ok := c.RangeFor(p); !ok {
			gaps = append(gaps, p)
		}
	}
	return gaps
}

// #endregion range-for
