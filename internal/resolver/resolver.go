package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielpatrickdp/hairfallback/internal/assetstore"
	"github.com/danielpatrickdp/hairfallback/internal/cache"
	"github.com/danielpatrickdp/hairfallback/internal/catalog"
	"github.com/danielpatrickdp/hairfallback/internal/coverage"
	"github.com/danielpatrickdp/hairfallback/internal/extent"
)

// #region deps
// Deps are the collaborators a Resolver needs. Catalog and Estimator are
// required for StrategyFallback; a nil Cache gets a fresh one.
type Deps struct {
	Store     assetstore.Store
	Estimator extent.Estimator
	Catalog   *catalog.Catalog
	Cache     *cache.Cache
	Auditor   Auditor
}

// #endregion deps

// #region resolver
// Resolver maps a hairstyle and governing coverage to an asset path.
// It is safe for concurrent use.
type Resolver struct {
	cfg   Config
	store assetstore.Store
	est   extent.Estimator
	cat   *catalog.Catalog
	cache *cache.Cache
	audit Auditor
}

// New validates the configuration against the supplied collaborators.
func New(cfg Config, deps Deps) (*Resolver, error) {
	def := DefaultConfig()
	if cfg.Strategy == "" {
		cfg.Strategy = def.Strategy
	}
	if cfg.BaldPath == "" {
		cfg.BaldPath = def.BaldPath
	}
	if cfg.ProbeAngle == "" {
		cfg.ProbeAngle = def.ProbeAngle
	}
	if cfg.MeasureAngle == "" {
		cfg.MeasureAngle = def.MeasureAngle
	}
	if cfg.Strategy != StrategyStrict && cfg.Strategy != StrategyFallback {
		return nil, fmt.Errorf("unknown strategy %q", cfg.Strategy)
	}
	if deps.Store == nil {
		return nil, errors.New("resolver: asset store is required")
	}
	if cfg.Strategy == StrategyFallback {
		if deps.Catalog == nil {
			return nil, errors.New("resolver: fallback strategy needs a catalog")
		}
		if deps.Estimator == nil {
			return nil, errors.New("resolver: fallback strategy needs an estimator")
		}
	}
	if deps.Cache == nil {
		deps.Cache = cache.New()
	}
	return &Resolver{
		cfg:   cfg,
		store: deps.Store,
		est:   deps.Estimator,
		cat:   deps.Catalog,
		cache: deps.Cache,
		audit: deps.Auditor,
	}, nil
}

// Config returns the effective configuration.
func (r *Resolver) Config() Config {
	return r.cfg
}

// Cache returns the resolution cache used by the fallback variant.
func (r *Resolver) Cache() *cache.Cache {
	return r.cache
}

// #endregion resolver

// #region resolve
// Resolve returns the asset path for hairstyle under gov.
//
// Errors wrap assetstore.ErrAssetUnavailable when the reference image of an
// unmeasured hairstyle cannot be loaded, or catalog.ErrNoFallbackRange when
// the measurement falls outside every catalog range.
func (r *Resolver) Resolve(ctx context.Context, hairstyle string, gov coverage.GoverningCoverage) (Result, error) {
	v := VariantFor(gov.Covered(), r.cfg.Strategy)
	switch v {
	case NotCovered:
		return Result{Path: hairstyle, Variant: v, Source: SourceNative}, nil
	case CoveredStrict:
		return r.resolveStrict(ctx, hairstyle, gov.Tag()), nil
	default:
		return r.resolveFallback(ctx, hairstyle, gov.Tag())
	}
}

func (r *Resolver) resolveStrict(ctx context.Context, hairstyle string, tag coverage.Tag) Result {
	if path, ok := r.native(ctx, hairstyle, tag); ok {
		return Result{Path: path, Variant: CoveredStrict, Source: SourceNative}
	}
	return Result{Path: r.cfg.BaldPath, Variant: CoveredStrict, Source: SourceBald}
}

func (r *Resolver) resolveFallback(ctx context.Context, hairstyle string, tag coverage.Tag) (Result, error) {
	if path, ok := r.native(ctx, hairstyle, tag); ok {
		return Result{Path: path, Variant: CoveredFallback, Source: SourceNative}, nil
	}

	group, hit, err := r.cache.GetOrCompute(hairstyle, func() (string, error) {
		return r.compute(ctx, hairstyle, tag)
	})
	if err != nil {
		return Result{}, fmt.Errorf("resolve %s: %w", hairstyle, err)
	}

	src := SourceComputed
	if hit {
		src = SourceCache
	}
	return Result{Path: variantPath(group, tag), Variant: CoveredFallback, Source: src, Group: group}, nil
}

// compute measures the hairstyle and picks the closest candidate of the
// matching catalog entry.
func (r *Resolver) compute(ctx context.Context, hairstyle string, tag coverage.Tag) (string, error) {
	pct, err := r.est.Estimate(ctx, hairstyle, r.cfg.MeasureAngle)
	if err != nil {
		return "", err
	}
	entry, err := r.cat.Lookup(pct)
	if err != nil {
		return "", err
	}
	group := entry.Closest(hairstyle)

	if r.audit != nil {
		r.audit.Audit(Computation{
			CatalogID:  r.cat.ID(),
			Hairstyle:  hairstyle,
			Tag:        tag,
			Percentage: pct,
			Range:      entry.Name,
			Group:      group,
			Path:       variantPath(group, tag),
		})
	}
	return group, nil
}

// native reports the native coverage variant path if its probe image exists.
func (r *Resolver) native(ctx context.Context, hairstyle string, tag coverage.Tag) (string, bool) {
	path := variantPath(hairstyle, tag)
	if !r.store.Exists(ctx, ProbePath(hairstyle, tag, r.cfg.ProbeAngle)) {
		return "", false
	}
	return path, true
}

// #endregion resolve

// #region paths
func variantPath(group string, tag coverage.Tag) string {
	return group + "/" + string(tag)
}

// ProbePath is the image checked to decide whether a native variant exists,
// e.g. "Hairs/Mop/Medium_south".
func ProbePath(hairstyle string, tag coverage.Tag, angle extent.Angle) string {
	return extent.ReferencePath(variantPath(hairstyle, tag), angle)
}

// #endregion paths
