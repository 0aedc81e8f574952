// Package projection converts between the SVY21 grid (EPSG:3414) used by
// the campus map service and WGS84 geographic coordinates.
package projection

import (
	"github.com/wroge/wgs84"

	"github.com/okian/venuematch/internal/domain/model"
)

// EPSG codes of the supported reference systems.
const (
	CodeSVY21 = 3414
	CodeWGS84 = 4326
)

// EPSG:3414 parameters: transverse Mercator on the WGS84 ellipsoid with no
// datum shift.
const (
	originLat   = 1.366666666666667 // degrees
	originLon   = 103.8333333333333 // degrees
	falseNorth  = 38744.572
	falseEast   = 28001.642
	scaleFactor = 1.0
)

// Transformer maps points between two reference systems.
type Transformer interface {
	Forward(p model.Point) model.Point
}

// SVY21 converts between EPSG:3414 and EPSG:4326.
type SVY21 struct {
	toWGS84   wgs84.Func
	fromWGS84 wgs84.Func
}

// NewSVY21 registers EPSG:3414 in a code repository and prepares both
// directions.
func NewSVY21() *SVY21 {
	repo := wgs84.EPSG()
	repo.Add(CodeSVY21, wgs84.WGS84().TransverseMercator(originLon, originLat, scaleFactor, falseEast, falseNorth))

	return &SVY21{
		toWGS84:   repo.Transform(CodeSVY21, CodeWGS84),
		fromWGS84: repo.Transform(CodeWGS84, CodeSVY21),
	}
}

// ToWGS84 converts an SVY21 easting (X) and northing (Y) into a point whose
// X is longitude and Y is latitude, in degrees. Z passes through.
func (s *SVY21) ToWGS84(p model.Point) model.Point {
	lon, lat, _ := s.toWGS84(p.X, p.Y, 0)
	return model.Point{X: lon, Y: lat, Z: p.Z}
}

// FromWGS84 converts longitude (X) and latitude (Y) in degrees into an SVY21
// easting (X) and northing (Y). Z passes through.
func (s *SVY21) FromWGS84(p model.Point) model.Point {
	east, north, _ := s.fromWGS84(p.X, p.Y, 0)
	return model.Point{X: east, Y: north, Z: p.Z}
}

// Forward implements Transformer in the SVY21 -> WGS84 direction.
func (s *SVY21) Forward(p model.Point) model.Point {
	return s.ToWGS84(p)
}
