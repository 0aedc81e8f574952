package projection_test

import (
	"testing"

	"github.com/okian/venuematch/internal/adapters/projection"
	"github.com/okian/venuematch/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSVY21(t *testing.T) {
	Convey("Given the SVY21 projection", t, func() {
		svy := projection.NewSVY21()

		Convey("When converting the false origin", func() {
			p := svy.ToWGS84(model.Point{X: 28001.642, Y: 38744.572, Z: 15})

			Convey("Then it lands on the projection origin", func() {
				So(p.X, ShouldAlmostEqual, 103.8333333333333, 1e-7)
				So(p.Y, ShouldAlmostEqual, 1.366666666666667, 1e-7)
				So(p.Z, ShouldEqual, 15)
			})
		})

		Convey("When converting a point on the Kent Ridge campus", func() {
			p := svy.Forward(model.Point{X: 21500, Y: 31500})

			Convey("Then it falls inside Singapore, south-west of the origin", func() {
				So(p.X, ShouldBeBetween, 103.6, 103.8333)
				So(p.Y, ShouldBeBetween, 1.2, 1.3667)
			})
		})

		Convey("When converting reference grid points", func() {
			cases := []struct {
				grid     model.Point
				lon, lat float64
			}{
				{model.Point{X: 21500, Y: 31500}, 103.774913137, 1.301148645},
				{model.Point{X: 30000, Y: 40000}, 103.851290047, 1.378020241},
				{model.Point{X: 12000, Y: 45000}, 103.689544227, 1.423234001},
			}

			Convey("Then they match the reference coordinates to within a centimetre", func() {
				for _, c := range cases {
					p := svy.ToWGS84(c.grid)
					So(p.X, ShouldAlmostEqual, c.lon, 1e-7)
					So(p.Y, ShouldAlmostEqual, c.lat, 1e-7)
				}
			})
		})

		Convey("When a point makes a round trip", func() {
			for _, orig := range []model.Point{
				{X: 21500, Y: 31500, Z: 3},
				{X: 30000, Y: 40000},
				{X: 12000, Y: 45000},
			} {
				back := svy.FromWGS84(svy.ToWGS84(orig))

				So(back.X, ShouldAlmostEqual, orig.X, 1e-3)
				So(back.Y, ShouldAlmostEqual, orig.Y, 1e-3)
				So(back.Z, ShouldEqual, orig.Z)
			}
		})

		Convey("When moving one kilometre north", func() {
			a := svy.ToWGS84(model.Point{X: 28001.642, Y: 38744.572})
			b := svy.ToWGS84(model.Point{X: 28001.642, Y: 39744.572})

			Convey("Then latitude grows by about 0.009 degrees", func() {
				So(b.Y-a.Y, ShouldAlmostEqual, 0.00904, 1e-4)
				So(b.X, ShouldAlmostEqual, a.X, 1e-9)
			})
		})
	})
}
