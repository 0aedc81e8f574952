package model_test

import (
	"encoding/json"
	"testing"

	model "github.com/okian/venuematch/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestFinalVenueJSON(t *testing.T) {
	convey.Convey("Given final venue rows", t, func() {
		convey.Convey("When the venue is unresolved", func() {
			data, err := json.Marshal(model.FinalVenue{Venue: "UNKNOWN1"})

			convey.Convey("Then only the venue name is exported", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldEqual, `{"corsRoomCode":"UNKNOWN1"}`)
			})
		})

		convey.Convey("When the floor is unknown", func() {
			data, err := json.Marshal(model.FinalVenue{
				Venue:   "LT14",
				Details: &model.VenueDetails{RoomCode: "LT-14"},
			})

			convey.Convey("Then floor is exported as null", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldContainSubstring, `"floor":null`)
				convey.So(string(data), convey.ShouldContainSubstring, `"nusRoomCode":"LT-14"`)
			})

			convey.Convey("Then a missing location is left out", func() {
				convey.So(string(data), convey.ShouldNotContainSubstring, `"location"`)
			})
		})
	})
}

func TestMatchRecordJSON(t *testing.T) {
	convey.Convey("Given a remote match record", t, func() {
		rec := model.MatchRecord{
			Venue:   "LT14",
			Geocode: &model.GeocodeCandidate{Address: "LT14", Score: 100},
		}

		convey.Convey("When it round-trips through JSON", func() {
			data, err := json.Marshal(rec)
			convey.So(err, convey.ShouldBeNil)

			var back model.MatchRecord
			convey.So(json.Unmarshal(data, &back), convey.ShouldBeNil)

			convey.Convey("Then local-only fields stay absent", func() {
				convey.So(string(data), convey.ShouldNotContainSubstring, `"room"`)
				convey.So(string(data), convey.ShouldContainSubstring, `"poiData"`)
				convey.So(back.Geocode.Score, convey.ShouldEqual, 100)
				convey.So(back.Network, convey.ShouldBeNil)
			})
		})
	})
}
