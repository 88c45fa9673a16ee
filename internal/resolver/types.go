package resolver

import (
	"fmt"
	"strings"

	"github.com/danielpatrickdp/hairfallback/internal/coverage"
	"github.com/danielpatrickdp/hairfallback/internal/extent"
)

// #region strategy
// Strategy selects how covered hairstyles without a native variant resolve.
type Strategy string

const (
	// StrategyStrict substitutes the built-in bald style.
	StrategyStrict Strategy = "strict"
	// StrategyFallback measures the hairstyle and picks a catalog substitute.
	StrategyFallback Strategy = "fallback"
)

// ParseStrategy accepts "strict" or "fallback".
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyStrict:
		return StrategyStrict, nil
	case StrategyFallback:
		return StrategyFallback, nil
	}
	return "", fmt.Errorf("unknown strategy %q", s)
}

// #endregion strategy

// #region variant
// Variant is the closed set of resolution behaviours.
type Variant int

const (
	NotCovered Variant = iota
	CoveredStrict
	CoveredFallback
)

func (v Variant) String() string {
	switch v {
	case NotCovered:
		return "not_covered"
	case CoveredStrict:
		return "covered_strict"
	case CoveredFallback:
		return "covered_fallback"
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// VariantFor selects the variant for one query.
func VariantFor(covered bool, s Strategy) Variant {
	if !covered {
		return NotCovered
	}
	if s == StrategyFallback {
		return CoveredFallback
	}
	return CoveredStrict
}

// #endregion variant

// #region result
// Source records where a resolved path came from.
type Source string

const (
	SourceNative   Source = "native"
	SourceBald     Source = "bald"
	SourceCache    Source = "cache"
	SourceComputed Source = "computed"
)

// Result is the outcome of one resolution.
type Result struct {
	Path    string
	Variant Variant
	Source  Source
	// Group is the substitute asset group for cache and computed results.
	Group string
}

// #endregion result

// #region audit
// Computation describes one computed (cache-miss) fallback choice.
type Computation struct {
	CatalogID  string
	Hairstyle  string
	Tag        coverage.Tag
	Percentage int
	Range      string
	Group      string
	Path       string
}

// Auditor receives every computed fallback choice.
type Auditor interface {
	Audit(Computation)
}

// AuditFunc adapts a function to Auditor.
type AuditFunc func(Computation)

// Audit calls f(c).
func (f AuditFunc) Audit(c Computation) { f(c) }

// #endregion audit

// #region config
// DefaultBaldPath is the built-in shaved style used when nothing else fits.
const DefaultBaldPath = "Things/Pawn/Humanlike/Hairs/Shaved"

// Config holds resolver settings.
type Config struct {
	Strategy Strategy
	BaldPath string
	// ProbeAngle is the angle whose variant image must exist for a native
	// coverage variant to count as present.
	ProbeAngle extent.Angle
	// MeasureAngle is the angle reference images are measured from.
	MeasureAngle extent.Angle
}

// DefaultConfig returns strict resolution with the built-in bald path.
func DefaultConfig() Config {
	return Config{
		Strategy:     StrategyStrict,
		BaldPath:     DefaultBaldPath,
		ProbeAngle:   extent.South,
		MeasureAngle: extent.MeasureAngle,
	}
}

// #endregion config
