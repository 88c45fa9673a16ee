package hair

// #region imports
import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/danielpatrickdp/hairfallback/internal/assetrpc"
	"github.com/danielpatrickdp/hairfallback/internal/assetstore"
	"github.com/danielpatrickdp/hairfallback/internal/catalog"
	"github.com/danielpatrickdp/hairfallback/internal/config"
	"github.com/danielpatrickdp/hairfallback/internal/coverage"
	"github.com/danielpatrickdp/hairfallback/internal/extent"
	"github.com/danielpatrickdp/hairfallback/internal/logging"
	"github.com/danielpatrickdp/hairfallback/internal/resolver"
)

// #endregion

// #region service-struct

// Service answers "which hair asset should this character show" for the
// rendering pipeline: coverage selection followed by resolution.
type Service struct {
	resolver *resolver.Resolver
	closers  []io.Closer
}

// NewService wraps an already-built resolver.
func NewService(r *resolver.Resolver) *Service {
	return &Service{resolver: r}
}

// #endregion

// #region build

// Build wires a Service from configuration: asset source, catalog,
// estimator and optional audit log.
func Build(cfg config.Config) (*Service, error) {
	svc := &Service{}

	store, err := svc.openStore(cfg)
	if err != nil {
		return nil, err
	}

	strategy, err := resolver.ParseStrategy(cfg.Strategy)
	if err != nil {
		svc.Close()
		return nil, err
	}

	rcfg := resolver.DefaultConfig()
	rcfg.Strategy = strategy
	if cfg.BaldPath != "" {
		rcfg.BaldPath = cfg.BaldPath
	}
	deps := resolver.Deps{Store: store}

	if strategy == resolver.StrategyFallback {
		cat, err := catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			svc.Close()
			return nil, err
		}
		if gaps := cat.Gaps(); len(gaps) > 0 {
			log.Printf("catalog %s leaves %d percentages uncovered (first %d)", cfg.CatalogPath, len(gaps), gaps[0])
		}
		policy, err := extent.ParseScanPolicy(cfg.ScanPolicy)
		if err != nil {
			svc.Close()
			return nil, err
		}
		deps.Catalog = cat
		deps.Estimator = extent.NewAlphaEstimator(store, policy)
	}

	if cfg.AuditDB != "" {
		audit, err := logging.Open(cfg.AuditDB)
		if err != nil {
			svc.Close()
			return nil, fmt.Errorf("open audit log: %w", err)
		}
		svc.closers = append(svc.closers, audit)
		deps.Auditor = AuditTo(audit)
	}

	r, err := resolver.New(rcfg, deps)
	if err != nil {
		svc.Close()
		return nil, err
	}
	svc.resolver = r
	return svc, nil
}

func (s *Service) openStore(cfg config.Config) (assetstore.Store, error) {
	switch {
	case cfg.AssetAddr != "":
		c, err := assetrpc.Dial(cfg.AssetAddr)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, c)
		return c, nil
	case cfg.AssetDB != "":
		db, err := assetstore.OpenSQLite(cfg.AssetDB)
		if err != nil {
			return nil, fmt.Errorf("open asset db: %w", err)
		}
		s.closers = append(s.closers, db)
		return db, nil
	default:
		return assetstore.NewDirStore(cfg.AssetRoot), nil
	}
}

// AuditTo records computed fallbacks in audit. Write failures are logged
// and never fail a resolution.
func AuditTo(audit *logging.AuditLog) resolver.Auditor {
	return resolver.AuditFunc(func(c resolver.Computation) {
		err := audit.Log(logging.ResolutionEntry{
			CatalogID:  c.CatalogID,
			Hairstyle:  c.Hairstyle,
			Tag:        string(c.Tag),
			Percentage: c.Percentage,
			RangeName:  c.Range,
			Chosen:     c.Group,
			Path:       c.Path,
		})
		if err != nil {
			log.Printf("audit %s: %v", c.Hairstyle, err)
		}
	})
}

// Close releases stores and audit connections opened by Build.
func (s *Service) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// Resolver exposes the underlying resolver.
func (s *Service) Resolver() *resolver.Resolver {
	return s.resolver
}

// #endregion

// #region hair-path

// Resolve picks the governing coverage for c and resolves its hairstyle.
// A missing reference image degrades to the bald path; a catalog gap is
// returned as an error.
func (s *Service) Resolve(ctx context.Context, c coverage.Character) (resolver.Result, error) {
	gov := coverage.ForCharacter(c)
	res, err := s.resolver.Resolve(ctx, c.Hairstyle, gov)
	if errors.Is(err, assetstore.ErrAssetUnavailable) {
		log.Printf("hair %s for %s: %v; using bald", c.Hairstyle, c.Name, err)
		return resolver.Result{
			Path:    s.resolver.Config().BaldPath,
			Variant: resolver.VariantFor(gov.Covered(), s.resolver.Config().Strategy),
			Source:  resolver.SourceBald,
		}, nil
	}
	if err != nil {
		return resolver.Result{}, err
	}
	return res, nil
}

// HairPath is Resolve returning only the path.
func (s *Service) HairPath(ctx context.Context, c coverage.Character) (string, error) {
	res, err := s.Resolve(ctx, c)
	if err != nil {
		return "", err
	}
	return res.Path, nil
}

// #endregion
