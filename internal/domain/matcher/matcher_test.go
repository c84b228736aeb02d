package matcher_test

import (
	"testing"

	"github.com/okian/spelltimer/internal/domain/matcher"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFind(t *testing.T) {
	Convey("Given a candidate list", t, func() {
		enemies := []string{"Ahri", "Lux"}

		Convey("When the text mentions exactly one candidate", func() {
			got, ok := matcher.Find("Lux just flashed", enemies)

			Convey("Then that candidate is returned", func() {
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, "Lux")
			})
		})

		Convey("When the text mentions two candidates", func() {
			got, ok := matcher.Find("B then A", []string{"A", "B"})

			Convey("Then candidate order wins over text position", func() {
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, "A")
			})
		})

		Convey("When no candidate appears", func() {
			got, ok := matcher.Find("Zed used Flash", enemies)

			Convey("Then nothing is returned", func() {
				So(ok, ShouldBeFalse)
				So(got, ShouldBeEmpty)
			})
		})

		Convey("When the candidate is embedded in a longer word", func() {
			got, ok := matcher.Find("Luxury skins", enemies)

			Convey("Then plain substring containment still matches", func() {
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, "Lux")
			})
		})

		Convey("When case differs", func() {
			_, ok := matcher.Find("lux used flash", enemies)

			Convey("Then it does not match", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When text has no spaces between tokens", func() {
			got, ok := matcher.Find("아리점멸", []string{"럭스", "아리"})

			Convey("Then the candidate is still found", func() {
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, "아리")
			})
		})

		Convey("When candidates contain an empty name", func() {
			got, ok := matcher.Find("anything", []string{"", "thing"})

			Convey("Then the empty name is skipped", func() {
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, "thing")
			})
		})

		Convey("When there are no candidates", func() {
			_, ok := matcher.Find("Lux", nil)
			So(ok, ShouldBeFalse)
		})
	})
}
