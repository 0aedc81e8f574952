package matching

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/venuematch/internal/adapters/worker"
	"github.com/okian/venuematch/internal/domain/model"
	"github.com/okian/venuematch/pkg/logger"
	"github.com/okian/venuematch/pkg/metrics"
)

// Default remote matching configuration.
const (
	DefaultBatchSize         = 50 // larger requests are rejected upstream (HTTP 414)
	DefaultMinScore          = 71
	DefaultEnrichConcurrency = 10
)

// RemoteEngine resolves venues with the campus geocoding service.
//
// Batches are sent one after another. A candidate is accepted only when its
// score is strictly above the threshold. Accepted matches are then enriched
// with network attributes, with a bounded number of lookups in flight.
type RemoteEngine struct {
	geocoder          Geocoder
	finder            Finder
	batchSize         int
	minScore          float64
	enrichConcurrency int
	logger            logger.Logger
}

// NewRemoteEngine creates an engine using geocoder for batch lookups.
func NewRemoteEngine(geocoder Geocoder, opts ...RemoteOption) *RemoteEngine {
	e := &RemoteEngine{
		geocoder:          geocoder,
		batchSize:         DefaultBatchSize,
		minScore:          DefaultMinScore,
		enrichConcurrency: DefaultEnrichConcurrency,
		logger:            logger.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.Named("remote")

	return e
}

// Name implements Engine.
func (e *RemoteEngine) Name() string { return EngineRemote }

// Accepts reports whether a candidate score clears the threshold.
func (e *RemoteEngine) Accepts(score float64) bool {
	return score > e.minScore
}

// Match implements Engine. A failed batch aborts the whole call with
// ErrBatchTransport; a failed enrichment only leaves that match unenriched.
// Cancelling ctx while enriching fails the call with the context error.
func (e *RemoteEngine) Match(ctx context.Context, venues []string) (Result, error) {
	res := Result{
		Matched:   make([]model.MatchRecord, 0, len(venues)),
		Unmatched: make([]string, 0),
	}

	for i, batch := range chunk(venues, e.batchSize) {
		matched, unmatched, err := e.locate(ctx, batch)
		if err != nil {
			return Result{}, fmt.Errorf("batch %d of %d venues: %w", i, len(batch), err)
		}
		res.Matched = append(res.Matched, matched...)
		res.Unmatched = append(res.Unmatched, unmatched...)
	}

	if e.finder != nil {
		if err := e.enrich(ctx, res.Matched); err != nil {
			return Result{}, fmt.Errorf("enrich %d matches: %w", len(res.Matched), err)
		}
	}

	metrics.RecordRun(EngineRemote, len(venues), len(res.Matched), len(res.Unmatched))
	return res, nil
}

// locate geocodes one batch and splits it by the acceptance threshold.
// Venues the service returned nothing for are unmatched.
func (e *RemoteEngine) locate(ctx context.Context, batch []string) ([]model.MatchRecord, []string, error) {
	records := make([]model.GeocodeRecord, len(batch))
	for i, venue := range batch {
		records[i] = model.GeocodeRecord{Index: i, Venue: venue}
	}

	start := time.Now()
	candidates, err := e.geocoder.GeocodeBatch(ctx, records)
	metrics.RecordGeocodeBatch(time.Since(start))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrBatchTransport, err)
	}

	slots := make([]*model.GeocodeCandidate, len(batch))
	for i := range candidates {
		idx := candidates[i].Attributes.ResultID
		if idx < 0 || idx >= len(batch) {
			return nil, nil, fmt.Errorf("%w: result id %d outside batch of %d", ErrMalformedResponse, idx, len(batch))
		}
		if slots[idx] == nil {
			slots[idx] = &candidates[i]
		}
	}

	var (
		matched   []model.MatchRecord
		unmatched []string
	)
	for i, venue := range batch {
		cand := slots[i]
		switch {
		case cand == nil:
			metrics.RecordGeocodeCandidate(metrics.OutcomeMissing)
			unmatched = append(unmatched, venue)
		case e.Accepts(cand.Score):
			metrics.RecordGeocodeCandidate(metrics.OutcomeAccepted)
			matched = append(matched, model.MatchRecord{Venue: venue, Geocode: cand})
		default:
			metrics.RecordGeocodeCandidate(metrics.OutcomeRejected)
			e.logger.Debug(ctx, "candidate below threshold",
				logger.String("venue", venue),
				logger.Float64("score", cand.Score),
			)
			unmatched = append(unmatched, venue)
		}
	}
	return matched, unmatched, nil
}

// enrich attaches network features to matches in place. Each lookup writes
// only its own slot. It returns the context error when ctx ends before every
// lookup has run.
func (e *RemoteEngine) enrich(ctx context.Context, matched []model.MatchRecord) error {
	pool := worker.NewPool(e.enrichConcurrency, worker.WithName("enrich"), worker.WithLogger(e.logger))
	e.logger.Debug(ctx, "enriching matches",
		logger.Int("matches", len(matched)),
		logger.Int("limit", pool.Limit()),
	)

	var stopped error

	for i := range matched {
		rec := &matched[i]
		err := pool.Go(ctx, func(ctx context.Context) {
			address := rec.Geocode.Address
			feature, err := e.finder.Find(ctx, address)
			switch {
			case err != nil:
				metrics.RecordEnrichment(metrics.LookupFailed)
				e.logger.Warn(ctx, "network lookup failed",
					logger.String("venue", rec.Venue),
					logger.String("address", address),
					logger.Error(err),
				)
			case feature == nil:
				metrics.RecordEnrichment(metrics.LookupEmpty)
			default:
				metrics.RecordEnrichment(metrics.LookupEnriched)
				rec.Network = feature
			}
		})
		if err != nil {
			e.logger.Warn(ctx, "enrichment stopped early",
				logger.Int("remaining", len(matched)-i),
				logger.Error(err),
			)
			stopped = err
			break
		}
	}
	pool.Wait()

	if stopped != nil {
		return stopped
	}
	return ctx.Err()
}

func chunk(venues []string, size int) [][]string {
	var out [][]string
	for start := 0; start < len(venues); start += size {
		end := min(start+size, len(venues))
		out = append(out, venues[start:end])
	}
	return out
}
