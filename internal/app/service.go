// Package service runs one reconciliation pass: it loads the venue source
// and prior state, matches the working set, merges and persists the result.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/venuematch/internal/adapters/arcgis"
	"github.com/okian/venuematch/internal/adapters/dataset"
	"github.com/okian/venuematch/internal/adapters/projection"
	"github.com/okian/venuematch/internal/adapters/repository"
	"github.com/okian/venuematch/internal/config"
	"github.com/okian/venuematch/internal/domain/dedupe"
	"github.com/okian/venuematch/internal/domain/matcher"
	"github.com/okian/venuematch/internal/domain/matching"
	"github.com/okian/venuematch/internal/domain/model"
	"github.com/okian/venuematch/internal/domain/reconcile"
	"github.com/okian/venuematch/pkg/logger"
	"github.com/okian/venuematch/pkg/metrics"
)

// Service wires configuration, data sources, engine and store together.
type Service struct {
	cfg         *config.Config
	logger      logger.Logger
	store       repository.Store
	engine      matching.Engine
	geocoder    matching.Geocoder
	finder      matching.Finder
	transformer projection.Transformer
}

// Summary describes a finished run.
type Summary struct {
	RunID  string
	Engine string
	// Full is true when the run ignored prior state.
	Full bool
	// Attempted is the size of the working set.
	Attempted int
	// Resolved is the number of venues matched by this run.
	Resolved int
	// Matched and Unmatched are the sizes of the persisted collections.
	Matched   int
	Unmatched int
	// Total is the number of distinct venues in the source list.
	Total int
	// PersistFailures counts documents that could not be written.
	PersistFailures int
	Duration        time.Duration
}

// New constructs a Service. Without options it uses the default config.
func New(opts ...Option) *Service {
	s := &Service{
		cfg:         config.New(),
		logger:      logger.Default(),
		transformer: projection.NewSVY21(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		s.store = repository.NewFileStore(repository.Paths{
			Matched:   s.cfg.MatchedPath,
			Unmatched: s.cfg.UnmatchedPath,
			Final:     s.cfg.FinalPath,
		})
	}

	return s
}

// Run performs one reconciliation pass. A matching failure aborts the run
// before anything is written; write failures are counted in the summary.
func (s *Service) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	sum := Summary{RunID: uuid.NewString()}
	log := s.logger.With(logger.String("run_id", sum.RunID))

	venues, err := dataset.LoadVenues(ctx, s.cfg.VenuesPath)
	if err != nil {
		return sum, fmt.Errorf("%w: venues: %w", ErrLoadInput, err)
	}

	prior, err := s.store.LoadState(ctx)
	switch {
	case errors.Is(err, repository.ErrStateNotFound):
		log.Info(ctx, "no prior state, matching the full venue list")
		prior = nil
	case err != nil:
		return sum, fmt.Errorf("%w: %w", ErrLoadState, err)
	}

	plan := reconcile.NewPlan(venues, prior, reconcile.Mode{
		RematchAll:       s.cfg.RematchAll,
		IncludeNewVenues: s.cfg.IncludeNewVenues,
	})
	sum.Full = plan.Full
	sum.Attempted = len(plan.Working)

	engine, err := s.buildEngine(ctx, log)
	if err != nil {
		return sum, fmt.Errorf("%w: %w", ErrEngine, err)
	}
	sum.Engine = engine.Name()

	log.Info(ctx, "trying to match venues",
		logger.String("engine", sum.Engine),
		logger.Int("venues", sum.Attempted),
		logger.Bool("full", plan.Full),
		logger.Int("added", plan.Added),
	)

	res, err := engine.Match(ctx, plan.Working)
	if err != nil {
		return sum, fmt.Errorf("%w: %w", ErrMatch, err)
	}

	state := reconcile.Merge(plan.Base, res)
	universe := knownVenues(plan)
	if err := reconcile.Check(state, universe); err != nil {
		log.Warn(ctx, "state partition is inconsistent", logger.Error(err))
	}

	sum.Resolved = len(res.Matched)
	sum.Matched = len(state.Matched)
	sum.Unmatched = len(state.Unmatched)
	sum.Total = dedupe.Of(venues...).Size()
	sum.PersistFailures = s.persist(ctx, log, state, sum.Engine)

	sum.Duration = time.Since(start)
	metrics.UpdateState(sum.Matched, sum.Unmatched)
	metrics.RecordRunDuration(sum.Duration)

	log.Info(ctx, "found venues",
		logger.Int("resolved", sum.Resolved),
		logger.Int("matched", sum.Matched),
		logger.Int("total", sum.Total),
		logger.Int("unmatched", sum.Unmatched),
		logger.Int("persist_failures", sum.PersistFailures),
		logger.Duration("took", sum.Duration),
	)

	if s.cfg.MetricsPath != "" {
		if err := metrics.WriteTextfile(s.cfg.MetricsPath); err != nil {
			log.Warn(ctx, "metrics export failed", logger.Error(err))
		}
	}
	return sum, nil
}

func (s *Service) buildEngine(ctx context.Context, log logger.Logger) (matching.Engine, error) {
	if s.engine != nil {
		return s.engine, nil
	}

	switch s.cfg.Engine {
	case config.EngineLocal:
		rules, err := matcher.FromNames(s.cfg.Rules)
		if err != nil {
			return nil, err
		}
		rooms, err := dataset.LoadRooms(ctx, s.cfg.RoomsPath)
		if err != nil {
			return nil, fmt.Errorf("rooms: %w", err)
		}
		log.Debug(ctx, "room registry loaded", logger.Int("rooms", len(rooms)))
		return matching.NewLocalEngine(rooms,
			matching.WithRules(rules),
			matching.WithLocalLogger(log),
		), nil

	case config.EngineRemote:
		client := arcgis.New(
			arcgis.WithGeocodeURL(s.cfg.GeocodeURL),
			arcgis.WithFindURL(s.cfg.FindURL),
			arcgis.WithFindLayer(s.cfg.FindLayer),
			arcgis.WithTimeout(s.cfg.HTTPTimeout()),
			arcgis.WithLogger(log),
		)
		var geocoder matching.Geocoder = client
		if s.geocoder != nil {
			geocoder = s.geocoder
		}
		var finder matching.Finder
		switch {
		case s.finder != nil:
			finder = s.finder
		case s.cfg.FindURL != "":
			finder = client
		}
		return matching.NewRemoteEngine(geocoder,
			matching.WithBatchSize(s.cfg.BatchSize),
			matching.WithMinScore(s.cfg.MinScore),
			matching.WithEnrichConcurrency(s.cfg.EnrichConcurrency),
			matching.WithFinder(finder),
			matching.WithRemoteLogger(log),
		), nil

	default:
		return nil, fmt.Errorf("unknown engine %q", s.cfg.Engine)
	}
}

// persist writes every document, carrying on past failures. It returns the
// number of documents that could not be written.
func (s *Service) persist(ctx context.Context, log logger.Logger, state model.State, engine string) int {
	type write struct {
		doc string
		fn  func() error
	}
	writes := []write{
		{repository.DocMatched, func() error { return s.store.SaveMatched(ctx, state.Matched) }},
		{repository.DocUnmatched, func() error { return s.store.SaveUnmatched(ctx, state.Unmatched) }},
	}
	if engine == matching.EngineRemote {
		writes = append(writes, write{repository.DocFinal, func() error {
			return s.store.SaveFinal(ctx, BuildFinal(state, s.transformer))
		}})
	}

	failures := 0
	for _, w := range writes {
		if err := w.fn(); err != nil {
			failures++
			metrics.RecordPersistenceFailure(w.doc)
			log.Error(ctx, "persist failed", logger.String("document", w.doc), logger.Error(err))
		}
	}
	return failures
}

// knownVenues lists every venue the merged state must account for.
func knownVenues(plan reconcile.Plan) []string {
	out := make([]string, 0, len(plan.Base)+len(plan.Working))
	for _, rec := range plan.Base {
		out = append(out, rec.Venue)
	}
	out = append(out, plan.Working...)
	return dedupe.Unique(out)
}
