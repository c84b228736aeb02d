package cooldown_test

import (
	"errors"
	"testing"

	"github.com/okian/spelltimer/internal/domain/cooldown"
	. "github.com/smartystreets/goconvey/convey"
)

func TestKey(t *testing.T) {
	Convey("Given a cooldown key", t, func() {
		k := cooldown.Key{SummonerID: 42, Target: "아리", Spell: "점멸"}

		Convey("Then it serializes as id:target:spell", func() {
			So(k.String(), ShouldEqual, "42:아리:점멸")
			So(k.Value(), ShouldEqual, "아리:점멸")
			So(k.Validate(), ShouldBeNil)
		})

		Convey("Then keys differing in any part differ", func() {
			other := k
			other.SummonerID = 43
			So(other.String(), ShouldNotEqual, k.String())
		})
	})

	Convey("Given incomplete keys", t, func() {
		for _, k := range []cooldown.Key{
			{Target: "Lux", Spell: "Flash"},
			{SummonerID: 1, Spell: "Flash"},
			{SummonerID: 1, Target: "Lux", Spell: " "},
		} {
			So(errors.Is(k.Validate(), cooldown.ErrInvalidKey), ShouldBeTrue)
		}
	})
}
