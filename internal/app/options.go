package service

import (
	"github.com/okian/venuematch/internal/adapters/projection"
	"github.com/okian/venuematch/internal/adapters/repository"
	"github.com/okian/venuematch/internal/config"
	"github.com/okian/venuematch/internal/domain/matching"
	"github.com/okian/venuematch/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig sets the run configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore replaces the file store built from the configured paths.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithEngine replaces the engine selected by configuration.
func WithEngine(engine matching.Engine) Option {
	return func(s *Service) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithGeocoder replaces the ArcGIS locator used by the remote engine.
func WithGeocoder(g matching.Geocoder) Option {
	return func(s *Service) {
		if g != nil {
			s.geocoder = g
		}
	}
}

// WithFinder replaces the ArcGIS network lookup used by the remote engine.
func WithFinder(f matching.Finder) Option {
	return func(s *Service) {
		if f != nil {
			s.finder = f
		}
	}
}

// WithTransformer sets the projection used for the final export.
func WithTransformer(t projection.Transformer) Option {
	return func(s *Service) {
		if t != nil {
			s.transformer = t
		}
	}
}
