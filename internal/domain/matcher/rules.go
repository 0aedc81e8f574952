package matcher

import (
	"strings"

	"github.com/okian/venuematch/internal/domain/model"
)

const (
	lectureTheatrePrefix = "LT"
	lectureTheatreName   = "LECTURE THEATRE "
	codeSeparator        = "-"
)

// ExactCode matches when the venue is the room code, byte for byte.
func ExactCode() Rule {
	return NewFunc(NameExactCode, func(venue string, room model.Room) bool {
		return venue == room.RoomCode
	})
}

// LectureTheatre matches venues such as LT14 against rooms named
// "LECTURE THEATRE 14". The suffix is taken verbatim, so LT-14 looks for
// "LECTURE THEATRE -14".
func LectureTheatre() Rule {
	return NewFunc(NameLectureTheatre, func(venue string, room model.Room) bool {
		suffix, ok := strings.CutPrefix(venue, lectureTheatrePrefix)
		if !ok {
			return false
		}
		return room.RoomName == lectureTheatreName+suffix
	})
}

// SegmentMerge matches informal codes that drop the last dash of a
// three-segment room code: room AS1-02-03 is venue AS1-0203.
func SegmentMerge() Rule {
	return NewFunc(NameSegmentMerge, func(venue string, room model.Room) bool {
		parts := strings.Split(room.RoomCode, codeSeparator)
		if len(parts) != 3 {
			return false
		}
		return venue == parts[0]+codeSeparator+parts[1]+parts[2]
	})
}
