package service_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/venuematch/internal/adapters/projection"
	service "github.com/okian/venuematch/internal/app"
	"github.com/okian/venuematch/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBuildFinal(t *testing.T) {
	Convey("Given a merged state", t, func() {
		geocoded := func(venue, floor string, enriched bool) model.MatchRecord {
			rec := model.MatchRecord{
				Venue:   venue,
				Geocode: &model.GeocodeCandidate{Address: venue + "-POI", Location: model.Point{X: 28001.642, Y: 38744.572}},
			}
			if enriched {
				rec.Network = &model.NetworkFeature{Attributes: model.NetworkAttributes{Name: "NAME " + venue, Floor: floor}}
			}
			return rec
		}
		state := model.State{
			Matched: []model.MatchRecord{
				geocoded("A", "3A", true),
				geocoded("B", "B1", true),
				geocoded("C", "", false),
				{Venue: "D", Rule: "exact-code", Room: &model.Room{RoomCode: "D", RoomName: "ROOM D"}},
			},
			Unmatched: []string{"E"},
		}

		rows := service.BuildFinal(state, projection.NewSVY21())

		Convey("Then matched rows come first and unmatched rows last", func() {
			So(rows, ShouldHaveLength, 5)
			So(rows[4], ShouldResemble, model.FinalVenue{Venue: "E"})
		})

		Convey("Then the floor is the leading integer of the FLOOR attribute", func() {
			So(*rows[0].Details.Floor, ShouldEqual, 3)
			So(rows[1].Details.Floor, ShouldBeNil)
		})

		Convey("Then unenriched matches keep the locator address and coordinates", func() {
			d := rows[2].Details
			So(d, ShouldNotBeNil)
			So(d.RoomCode, ShouldEqual, "C-POI")
			So(d.RoomName, ShouldBeEmpty)
			So(d.Floor, ShouldBeNil)
			So(d.Location.WGS84.X, ShouldAlmostEqual, 103.8333333, 1e-6)
		})

		Convey("Then registry matches carry their room without coordinates", func() {
			So(rows[3].Details, ShouldNotBeNil)
			So(rows[3].Details.RoomCode, ShouldEqual, "D")
			So(rows[3].Details.RoomName, ShouldEqual, "ROOM D")
			So(rows[3].Details.Floor, ShouldBeNil)
			So(rows[3].Details.Location, ShouldBeNil)
		})

		Convey("Then a resolved row never looks like an unresolved one", func() {
			data, err := json.Marshal(rows[3])
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `{"corsRoomCode":"D","details":{"nusRoomCode":"D","roomName":"ROOM D","floor":null}}`)
		})
	})
}
