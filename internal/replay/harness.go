package replay

import (
	"context"
	"errors"

	"github.com/danielpatrickdp/hairfallback/internal/catalog"
	"github.com/danielpatrickdp/hairfallback/internal/coverage"
	"github.com/danielpatrickdp/hairfallback/internal/resolver"
)

// ErrorNoFallbackRange is the fixture name for catalog.ErrNoFallbackRange.
const ErrorNoFallbackRange = "no_fallback_range"

// #region types

// Resolver is the part of hair.Service the harness drives.
type Resolver interface {
	Resolve(ctx context.Context, c coverage.Character) (resolver.Result, error)
}

// CaseResult captures the outcome of replaying one case.
type CaseResult struct {
	ID       string
	Path     string
	Variant  string
	Source   string
	Err      string
	Expected string
	Passed   bool
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	Total    int
	Passed   int
	Failed   int
	Errors   int
	Computed int
	Cached   int
}

// #endregion types

// #region replay

// Replay resolves every case in order. Later cases see the cache state left
// by earlier ones, as a long-running renderer would.
func Replay(ctx context.Context, r Resolver, f *Fixture) []CaseResult {
	results := make([]CaseResult, 0, len(f.Cases))
	for _, c := range f.Cases {
		res, err := r.Resolve(ctx, c.Character)
		cr := CaseResult{ID: c.ID, Expected: c.ExpectedPath}
		if err != nil {
			cr.Err = err.Error()
			cr.Passed = c.ExpectedError != "" && errorClass(err) == c.ExpectedError
			results = append(results, cr)
			continue
		}
		cr.Path = res.Path
		cr.Variant = res.Variant.String()
		cr.Source = string(res.Source)
		cr.Passed = c.ExpectedError == "" && (c.ExpectedPath == "" || c.ExpectedPath == res.Path)
		results = append(results, cr)
	}
	return results
}

// Summarize computes aggregate statistics from replay results.
func Summarize(results []CaseResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
		if r.Err != "" {
			s.Errors++
		}
		switch resolver.Source(r.Source) {
		case resolver.SourceComputed:
			s.Computed++
		case resolver.SourceCache:
			s.Cached++
		}
	}
	return s
}

func errorClass(err error) string {
	if errors.Is(err, catalog.ErrNoFallbackRange) {
		return ErrorNoFallbackRange
	}
	return "other"
}

// #endregion replay
