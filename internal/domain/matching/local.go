package matching

import (
	"context"
	"fmt"

	"github.com/okian/venuematch/internal/domain/matcher"
	"github.com/okian/venuematch/internal/domain/model"
	"github.com/okian/venuematch/pkg/logger"
	"github.com/okian/venuematch/pkg/metrics"
)

// LocalEngine matches venues against the room registry.
//
// For each venue the rules are tried in priority order and, within a rule,
// the rooms in registry order. The first (rule, room) hit wins, so a match
// by an earlier rule anywhere in the registry beats a match by a later rule.
// There is no scoring and no search for a better candidate.
type LocalEngine struct {
	rules  []matcher.Rule
	rooms  []model.Room
	logger logger.Logger
}

// NewLocalEngine creates an engine over rooms, which are never modified.
func NewLocalEngine(rooms []model.Room, opts ...LocalOption) *LocalEngine {
	e := &LocalEngine{
		rules:  matcher.DefaultRules(),
		rooms:  rooms,
		logger: logger.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.Named("local")

	return e
}

// Name implements Engine.
func (e *LocalEngine) Name() string { return EngineLocal }

// Resolve returns the first rule and room matching venue.
func (e *LocalEngine) Resolve(venue string) (matcher.Rule, model.Room, bool) {
	for _, rule := range e.rules {
		for _, room := range e.rooms {
			if rule.Match(venue, room) {
				return rule, room, true
			}
		}
	}
	return nil, model.Room{}, false
}

// Match implements Engine. Output keeps input order.
func (e *LocalEngine) Match(ctx context.Context, venues []string) (Result, error) {
	res := Result{
		Matched:   make([]model.MatchRecord, 0, len(venues)),
		Unmatched: make([]string, 0),
	}

	for _, venue := range venues {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("local match interrupted: %w", err)
		}

		rule, room, ok := e.Resolve(venue)
		if !ok {
			res.Unmatched = append(res.Unmatched, venue)
			continue
		}

		matched := room
		res.Matched = append(res.Matched, model.MatchRecord{
			Venue: venue,
			Rule:  rule.Name(),
			Room:  &matched,
		})
		metrics.RecordRuleHit(rule.Name())
		e.logger.Debug(ctx, "venue matched",
			logger.String("venue", venue),
			logger.String("rule", rule.Name()),
			logger.String("roomcode", room.RoomCode),
		)
	}

	metrics.RecordRun(EngineLocal, len(venues), len(res.Matched), len(res.Unmatched))
	return res, nil
}
