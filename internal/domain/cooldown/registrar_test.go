package cooldown_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/spelltimer/internal/domain/cooldown"
	"github.com/okian/spelltimer/internal/domain/cooldown/mocks"
	"github.com/okian/spelltimer/internal/domain/spell"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/mock/gomock"
)

const (
	champLux  = 99
	champAhri = 103
	champZed  = 238
	champJinx = 222
)

var names = map[int64]string{
	champLux:  "Lux",
	champAhri: "Ahri",
	champZed:  "Zed",
	champJinx: "Jinx",
}

type registrarFixture struct {
	summoners *mocks.MockSummonerRepository
	matches   *mocks.MockMatchProvider
	champions *mocks.MockChampionResolver
	store     *mocks.MockStore
	registrar *cooldown.Registrar
	now       time.Time
}

func newRegistrarFixture(t *testing.T) *registrarFixture {
	ctrl := gomock.NewController(t)
	f := &registrarFixture{
		summoners: mocks.NewMockSummonerRepository(ctrl),
		matches:   mocks.NewMockMatchProvider(ctrl),
		champions: mocks.NewMockChampionResolver(ctrl),
		store:     mocks.NewMockStore(ctrl),
		now:       time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	f.registrar = cooldown.NewRegistrar(f.summoners, f.matches, f.champions, f.store,
		cooldown.WithCatalog(spell.English),
		cooldown.WithClock(func() time.Time { return f.now }),
	)
	return f
}

func (f *registrarFixture) expectSummoner() {
	f.summoners.EXPECT().GetByID(gomock.Any(), int64(7)).
		Return(cooldown.Summoner{ID: 7, PUUID: "me", Region: "kr"}, nil)
}

func (f *registrarFixture) expectMatch(participants ...cooldown.Participant) {
	f.matches.EXPECT().CurrentMatch(gomock.Any(), "me", "kr").
		Return(&cooldown.Match{GameID: 1, Participants: participants}, nil)
}

func (f *registrarFixture) expectNames() {
	f.champions.EXPECT().DisplayName(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id int64) (string, error) {
			return names[id], nil
		}).AnyTimes()
}

func standardMatch() []cooldown.Participant {
	return []cooldown.Participant{
		{PUUID: "me", TeamID: 100, ChampionID: champJinx},
		{PUUID: "ally", TeamID: 100, ChampionID: champZed},
		{PUUID: "e1", TeamID: 200, ChampionID: champAhri},
		{PUUID: "e2", TeamID: 200, ChampionID: champLux},
	}
}

func TestRegistrarRegister(t *testing.T) {
	Convey("Given a reporter in a live match", t, func() {
		ctx := context.Background()
		f := newRegistrarFixture(t)

		Convey("When the report names one enemy and one spell", func() {
			f.expectSummoner()
			f.expectMatch(standardMatch()...)
			f.expectNames()
			f.store.EXPECT().Set(gomock.Any(), "7:Lux:Flash", "Lux:Flash", 300*time.Second).Return(nil)

			reg, err := f.registrar.Register(ctx, cooldown.Report{SummonerID: 7, Text: "Lux used Flash"})

			Convey("Then a cooldown with the spell's TTL is written", func() {
				So(err, ShouldBeNil)
				So(reg.Target, ShouldEqual, "Lux")
				So(reg.Spell, ShouldEqual, "Flash")
				So(reg.Message, ShouldEqual, "Lux Flash cooldown registered!")
				So(reg.Entry.TTL, ShouldEqual, 300*time.Second)
				So(reg.Entry.ExpiresAt, ShouldEqual, f.now.Add(300*time.Second))
				So(reg.Entry.Key.String(), ShouldEqual, "7:Lux:Flash")
			})
		})

		Convey("When the report names two spells", func() {
			f.expectSummoner()
			f.expectMatch(standardMatch()...)
			f.expectNames()
			f.store.EXPECT().Set(gomock.Any(), "7:Ahri:Flash", "Ahri:Flash", 300*time.Second).Return(nil)

			reg, err := f.registrar.Register(ctx, cooldown.Report{SummonerID: 7, Text: "Ahri Teleport Flash"})

			Convey("Then catalog order picks the spell", func() {
				So(err, ShouldBeNil)
				So(reg.Spell, ShouldEqual, "Flash")
			})
		})

		Convey("When the report names two enemies", func() {
			f.expectSummoner()
			f.expectMatch(standardMatch()...)
			f.expectNames()
			f.store.EXPECT().Set(gomock.Any(), "7:Ahri:Smite", "Ahri:Smite", 90*time.Second).Return(nil)

			reg, err := f.registrar.Register(ctx, cooldown.Report{SummonerID: 7, Text: "Lux and Ahri Smite"})

			Convey("Then participant order picks the target", func() {
				So(err, ShouldBeNil)
				So(reg.Target, ShouldEqual, "Ahri")
			})
		})

		Convey("When the report names an ally", func() {
			f.expectSummoner()
			f.expectMatch(standardMatch()...)
			f.expectNames()

			_, err := f.registrar.Register(ctx, cooldown.Report{SummonerID: 7, Text: "Zed Flash"})

			Convey("Then no target is found", func() {
				So(errors.Is(err, cooldown.ErrNotFound), ShouldBeTrue)
				So(errors.Is(err, cooldown.ErrTargetNotMentioned), ShouldBeTrue)
			})
		})

		Convey("When the match has no enemies", func() {
			f.expectSummoner()
			f.expectMatch(
				cooldown.Participant{PUUID: "me", TeamID: 100, ChampionID: champJinx},
				cooldown.Participant{PUUID: "ally", TeamID: 100, ChampionID: champLux},
			)
			f.expectNames()

			_, err := f.registrar.Register(ctx, cooldown.Report{SummonerID: 7, Text: "Lux Flash"})

			Convey("Then the report is NotFound", func() {
				So(errors.Is(err, cooldown.ErrNotFound), ShouldBeTrue)
				So(errors.Is(err, cooldown.ErrTargetNotMentioned), ShouldBeTrue)
			})
		})

		Convey("When no spell is mentioned", func() {
			f.expectSummoner()
			f.expectMatch(standardMatch()...)
			f.expectNames()

			_, err := f.registrar.Register(ctx, cooldown.Report{SummonerID: 7, Text: "Lux is low"})

			Convey("Then the report is NotFound", func() {
				So(errors.Is(err, cooldown.ErrNotFound), ShouldBeTrue)
				So(errors.Is(err, cooldown.ErrSpellNotMentioned), ShouldBeTrue)
			})
		})

		Convey("When the reporter is not among the participants", func() {
			f.expectSummoner()
			f.expectMatch(
				cooldown.Participant{PUUID: "e1", TeamID: 200, ChampionID: champLux},
			)

			_, err := f.registrar.Register(ctx, cooldown.Report{SummonerID: 7, Text: "Lux Flash"})

			Convey("Then the team cannot be determined", func() {
				So(errors.Is(err, cooldown.ErrNotFound), ShouldBeTrue)
				So(errors.Is(err, cooldown.ErrTeamNotFound), ShouldBeTrue)
			})
		})

		Convey("When the reporter is not in a game", func() {
			f.expectSummoner()
			f.matches.EXPECT().CurrentMatch(gomock.Any(), "me", "kr").Return(nil, errors.New("404"))

			_, err := f.registrar.Register(ctx, cooldown.Report{SummonerID: 7, Text: "Lux Flash"})

			Convey("Then the report is NotFound", func() {
				So(errors.Is(err, cooldown.ErrNotFound), ShouldBeTrue)
				So(errors.Is(err, cooldown.ErrMatchNotFound), ShouldBeTrue)
			})
		})

		Convey("When the match is empty", func() {
			f.expectSummoner()
			f.expectMatch()

			_, err := f.registrar.Register(ctx, cooldown.Report{SummonerID: 7, Text: "Lux Flash"})

			Convey("Then the report is NotFound", func() {
				So(errors.Is(err, cooldown.ErrMatchNotFound), ShouldBeTrue)
			})
		})

		Convey("When the report overrides the region", func() {
			f.expectSummoner()
			f.matches.EXPECT().CurrentMatch(gomock.Any(), "me", "na1").
				Return(&cooldown.Match{Participants: standardMatch()}, nil)
			f.expectNames()
			f.store.EXPECT().Set(gomock.Any(), "7:Lux:Ignite", "Lux:Ignite", 180*time.Second).Return(nil)

			reg, err := f.registrar.Register(ctx, cooldown.Report{SummonerID: 7, Region: "na1", Text: "Lux Ignite"})

			Convey("Then the lookup uses the given region", func() {
				So(err, ShouldBeNil)
				So(reg.Spell, ShouldEqual, "Ignite")
			})
		})

		Convey("When the summoner is unknown", func() {
			f.summoners.EXPECT().GetByID(gomock.Any(), int64(7)).
				Return(cooldown.Summoner{}, cooldown.ErrSummonerNotFound)

			_, err := f.registrar.Register(ctx, cooldown.Report{SummonerID: 7, Text: "Lux Flash"})

			Convey("Then the report is NotFound", func() {
				So(errors.Is(err, cooldown.ErrNotFound), ShouldBeTrue)
				So(errors.Is(err, cooldown.ErrSummonerNotFound), ShouldBeTrue)
			})
		})

		Convey("When a champion name cannot be resolved", func() {
			f.expectSummoner()
			f.expectMatch(standardMatch()...)
			resolveErr := errors.New("champion data unavailable")
			f.champions.EXPECT().DisplayName(gomock.Any(), gomock.Any()).Return("", resolveErr).AnyTimes()

			_, err := f.registrar.Register(ctx, cooldown.Report{SummonerID: 7, Text: "Lux Flash"})

			Convey("Then the resolver error is returned", func() {
				So(errors.Is(err, resolveErr), ShouldBeTrue)
			})
		})

		Convey("When the store rejects the write", func() {
			f.expectSummoner()
			f.expectMatch(standardMatch()...)
			f.expectNames()
			f.store.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

			_, err := f.registrar.Register(ctx, cooldown.Report{SummonerID: 7, Text: "Lux Flash"})

			Convey("Then the error is Internal", func() {
				So(errors.Is(err, cooldown.ErrInternal), ShouldBeTrue)
				So(errors.Is(err, cooldown.ErrStoreUnavailable), ShouldBeTrue)
			})
		})

		Convey("When the report is empty", func() {
			_, err := f.registrar.Register(ctx, cooldown.Report{SummonerID: 7, Text: "   "})

			Convey("Then it is rejected without any lookup", func() {
				So(errors.Is(err, cooldown.ErrInvalid), ShouldBeTrue)
			})
		})
	})
}

func TestRegistrarKoreanCatalog(t *testing.T) {
	Convey("Given the default catalog and Korean champion names", t, func() {
		ctrl := gomock.NewController(t)
		summoners := mocks.NewMockSummonerRepository(ctrl)
		matches := mocks.NewMockMatchProvider(ctrl)
		champions := mocks.NewMockChampionResolver(ctrl)
		store := mocks.NewMockStore(ctrl)
		r := cooldown.NewRegistrar(summoners, matches, champions, store)

		summoners.EXPECT().GetByID(gomock.Any(), int64(1)).Return(cooldown.Summoner{ID: 1, PUUID: "me", Region: "kr"}, nil)
		matches.EXPECT().CurrentMatch(gomock.Any(), "me", "kr").Return(&cooldown.Match{Participants: []cooldown.Participant{
			{PUUID: "me", TeamID: 100, ChampionID: 1},
			{PUUID: "x", TeamID: 200, ChampionID: 2},
		}}, nil)
		champions.EXPECT().DisplayName(gomock.Any(), int64(2)).Return("럭스", nil)
		store.EXPECT().Set(gomock.Any(), "1:럭스:점멸", "럭스:점멸", 300*time.Second).Return(nil)

		reg, err := r.Register(context.Background(), cooldown.Report{SummonerID: 1, Text: "럭스점멸"})

		Convey("Then the Korean message is produced", func() {
			So(err, ShouldBeNil)
			So(reg.Message, ShouldEqual, "럭스 점멸 쿨타임 등록했습니다!")
			So(r.Catalog(), ShouldEqual, spell.Korean)
		})
	})
}
