package operations

import (
	"github.com/npillmayer/nurbs/geometry"
	"github.com/npillmayer/nurbs/knots"
)

// Option configures a single knot operation.
type Option func(*config)

type config struct {
	check      bool                              // validate arguments and feasibility
	removalTol float64                           // distance tolerance for exact removal
	additional map[geometry.Direction][]float64 // extra refinement knots
}

func configure(opts []Option) *config {
	cfg := &config{
		check:      true,
		removalTol: knots.DefaultRemovalTolerance,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithoutChecks disables argument validation and the per-direction
// feasibility checks, for callers which computed feasible counts themselves.
// Primitive failures are still reported.
func WithoutChecks() Option {
	return func(cfg *config) {
		cfg.check = false
	}
}

// WithRemovalTolerance sets the distance below which knot removal counts as
// exact. Removal beyond the tolerance is carried out anyway and traced.
func WithRemovalTolerance(tol float64) Option {
	return func(cfg *config) {
		cfg.removalTol = tol
	}
}

// WithAdditionalKnots adds knots to be inserted when refining direction d.
// It has no effect on insertion and removal, nor on directions refined with
// density 0.
func WithAdditionalKnots(d geometry.Direction, ks ...float64) Option {
	return func(cfg *config) {
		if cfg.additional == nil {
			cfg.additional = make(map[geometry.Direction][]float64)
		}
		cfg.additional[d] = append(cfg.additional[d], ks...)
	}
}
