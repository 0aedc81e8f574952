package service

import (
	"strconv"
	"strings"

	"github.com/okian/venuematch/internal/adapters/projection"
	"github.com/okian/venuematch/internal/domain/model"
)

// BuildFinal denormalizes state into export rows: matched venues first,
// then unmatched ones without details. Geocoded matches carry coordinates;
// registry matches carry the room they resolved to.
func BuildFinal(state model.State, t projection.Transformer) []model.FinalVenue {
	out := make([]model.FinalVenue, 0, len(state.Matched)+len(state.Unmatched))

	for _, rec := range state.Matched {
		out = append(out, model.FinalVenue{Venue: rec.Venue, Details: details(rec, t)})
	}
	for _, venue := range state.Unmatched {
		out = append(out, model.FinalVenue{Venue: venue})
	}
	return out
}

func details(rec model.MatchRecord, t projection.Transformer) *model.VenueDetails {
	switch {
	case rec.Geocode != nil:
		d := &model.VenueDetails{
			RoomCode: rec.Geocode.Address,
			Location: &model.Location{
				EPSG3414: rec.Geocode.Location,
				WGS84:    t.Forward(rec.Geocode.Location),
			},
		}
		if rec.Network != nil {
			d.RoomName = rec.Network.Attributes.Name
			d.Floor = parseFloor(rec.Network.Attributes.Floor)
		}
		return d
	case rec.Room != nil:
		return &model.VenueDetails{
			RoomCode: rec.Room.RoomCode,
			RoomName: rec.Room.RoomName,
		}
	default:
		return nil
	}
}

// parseFloor reads the leading integer of a FLOOR attribute such as "2" or
// "3A". Anything else has no floor.
func parseFloor(raw string) *int {
	raw = strings.TrimSpace(raw)
	end := 0
	if end < len(raw) && (raw[end] == '-' || raw[end] == '+') {
		end++
	}
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(raw[:end])
	if err != nil {
		return nil
	}
	return &n
}
