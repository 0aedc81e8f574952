package reconcile_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/venuematch/internal/domain/matching"
	"github.com/okian/venuematch/internal/domain/model"
	"github.com/okian/venuematch/internal/domain/reconcile"
	. "github.com/smartystreets/goconvey/convey"
)

func localMatch(rooms []model.Room, venues []string) matching.Result {
	res, err := matching.NewLocalEngine(rooms).Match(context.Background(), venues)
	So(err, ShouldBeNil)
	return res
}

func matchedVenues(state model.State) []string {
	out := make([]string, len(state.Matched))
	for i, m := range state.Matched {
		out[i] = m.Venue
	}
	return out
}

func TestPlan(t *testing.T) {
	source := []string{"LT14", "AS1-02-03", "UNKNOWN1", "LT14"}
	prior := &model.State{
		Matched:   []model.MatchRecord{{Venue: "LT14"}},
		Unmatched: []string{"UNKNOWN1"},
	}

	Convey("Given prior state", t, func() {
		Convey("When rematching all", func() {
			plan := reconcile.NewPlan(source, prior, reconcile.Mode{RematchAll: true})

			Convey("Then the whole source list is worked on from scratch", func() {
				So(plan.Full, ShouldBeTrue)
				So(plan.Working, ShouldResemble, []string{"LT14", "AS1-02-03", "UNKNOWN1"})
				So(plan.Base, ShouldBeEmpty)
			})
		})

		Convey("When retrying incrementally", func() {
			plan := reconcile.NewPlan(source, prior, reconcile.Mode{})

			Convey("Then only the prior unmatched list is worked on", func() {
				So(plan.Full, ShouldBeFalse)
				So(plan.Working, ShouldResemble, []string{"UNKNOWN1"})
				So(plan.Base, ShouldResemble, prior.Matched)
				So(plan.Added, ShouldEqual, 0)
			})
		})

		Convey("When new source venues are included", func() {
			plan := reconcile.NewPlan(source, prior, reconcile.Mode{IncludeNewVenues: true})

			Convey("Then never-classified venues join the working set", func() {
				So(plan.Working, ShouldResemble, []string{"UNKNOWN1", "AS1-02-03"})
				So(plan.Added, ShouldEqual, 1)
			})
		})

		Convey("When prior state lists a venue in both collections", func() {
			dirty := &model.State{
				Matched:   []model.MatchRecord{{Venue: "LT14"}},
				Unmatched: []string{"LT14", "UNKNOWN1"},
			}
			plan := reconcile.NewPlan(source, dirty, reconcile.Mode{})

			Convey("Then the matched one is not retried", func() {
				So(plan.Working, ShouldResemble, []string{"UNKNOWN1"})
			})
		})
	})

	Convey("Given no prior state", t, func() {
		plan := reconcile.NewPlan(source, nil, reconcile.Mode{})

		So(plan.Full, ShouldBeTrue)
		So(plan.Working, ShouldHaveLength, 3)
	})
}

func TestMerge(t *testing.T) {
	Convey("Given base matches and a run result", t, func() {
		base := []model.MatchRecord{{Venue: "A", Rule: "exact-code"}}
		res := matching.Result{
			Matched:   []model.MatchRecord{{Venue: "B"}, {Venue: "A", Rule: "segment-merge"}},
			Unmatched: []string{"C", "A", "C"},
		}

		state := reconcile.Merge(base, res)

		Convey("Then matches accumulate and earlier ones win", func() {
			So(matchedVenues(state), ShouldResemble, []string{"A", "B"})
			So(state.Matched[0].Rule, ShouldEqual, "exact-code")
		})

		Convey("Then unmatched is the run's leftovers minus matched venues", func() {
			So(state.Unmatched, ShouldResemble, []string{"C"})
		})
	})
}

func TestRuns(t *testing.T) {
	source := []string{"LT14", "AS1-02-03", "UNKNOWN1", "AS1-0405"}
	rooms := []model.Room{
		{RoomCode: "AS1-02-03", RoomName: "X", Dept: "Y"},
		{RoomCode: "LT-14", RoomName: "LECTURE THEATRE 14", Dept: "Z"},
	}

	Convey("Given a first full run", t, func() {
		plan := reconcile.NewPlan(source, nil, reconcile.Mode{})
		state := reconcile.Merge(plan.Base, localMatch(rooms, plan.Working))

		Convey("Then matched and unmatched partition the source", func() {
			So(reconcile.Check(state, source), ShouldBeNil)
			So(state.Unmatched, ShouldResemble, []string{"UNKNOWN1", "AS1-0405"})
		})

		Convey("When an incremental run follows after the registry grows", func() {
			grown := append(append([]model.Room{}, rooms...), model.Room{RoomCode: "AS1-04-05"})
			plan2 := reconcile.NewPlan(source, &state, reconcile.Mode{})
			state2 := reconcile.Merge(plan2.Base, localMatch(grown, plan2.Working))

			Convey("Then only the retried venue moves and the partition holds", func() {
				So(plan2.Working, ShouldResemble, []string{"UNKNOWN1", "AS1-0405"})
				So(matchedVenues(state2), ShouldResemble, []string{"LT14", "AS1-02-03", "AS1-0405"})
				So(state2.Unmatched, ShouldResemble, []string{"UNKNOWN1"})
				So(reconcile.Check(state2, source), ShouldBeNil)
			})
		})

		Convey("When everything is matched and an incremental run follows", func() {
			done := model.State{Matched: state.Matched, Unmatched: []string{}}
			plan2 := reconcile.NewPlan(source, &done, reconcile.Mode{})
			state2 := reconcile.Merge(plan2.Base, localMatch(rooms, plan2.Working))

			Convey("Then the state is unchanged", func() {
				So(plan2.Working, ShouldBeEmpty)
				So(state2.Matched, ShouldResemble, done.Matched)
				So(state2.Unmatched, ShouldBeEmpty)
			})
		})
	})
}

func TestCheck(t *testing.T) {
	Convey("Given states that break the partition", t, func() {
		universe := []string{"A", "B"}

		Convey("When a venue is in both collections", func() {
			err := reconcile.Check(model.State{
				Matched:   []model.MatchRecord{{Venue: "A"}},
				Unmatched: []string{"A", "B"},
			}, universe)
			So(errors.Is(err, reconcile.ErrOverlap), ShouldBeTrue)
		})

		Convey("When a venue is missing", func() {
			err := reconcile.Check(model.State{Unmatched: []string{"A"}}, universe)
			So(errors.Is(err, reconcile.ErrCoverage), ShouldBeTrue)
		})

		Convey("When a venue is not in the source", func() {
			err := reconcile.Check(model.State{Unmatched: []string{"A", "B", "C"}}, universe)
			So(errors.Is(err, reconcile.ErrCoverage), ShouldBeTrue)
		})
	})
}
