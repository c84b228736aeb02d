package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/spelltimer/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.SpellLocale, convey.ShouldEqual, "ko")
			convey.So(cfg.StoreBackend, convey.ShouldEqual, config.BackendMemory)
			convey.So(cfg.WaitPollInterval(), convey.ShouldEqual, time.Second)
			convey.So(cfg.WaitCeiling(), convey.ShouldEqual, 6*time.Minute)
			convey.So(cfg.SweepInterval(), convey.ShouldEqual, 30*time.Second)
			convey.So(cfg.RiotTimeout(), convey.ShouldEqual, 5*time.Second)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs that break an invariant", t, func() {
		cases := []struct {
			name   string
			mutate func(*config.Config)
		}{
			{"empty addr", func(c *config.Config) { c.Addr = " " }},
			{"unknown backend", func(c *config.Config) { c.StoreBackend = "etcd" }},
			{"unknown locale", func(c *config.Config) { c.SpellLocale = "fr" }},
			{"redis without addr", func(c *config.Config) { c.StoreBackend = config.BackendRedis; c.RedisAddr = "" }},
			{"zero poll interval", func(c *config.Config) { c.WaitPollIntervalMS = 0 }},
			{"ceiling below interval", func(c *config.Config) { c.WaitCeilingMS = 500 }},
			{"zero sweep interval", func(c *config.Config) { c.SweepIntervalMS = 0 }},
			{"riot template without region", func(c *config.Config) {
				c.RiotAPIKey = "key"
				c.RiotBaseURLTemplate = "https://kr.api.riotgames.com"
			}},
			{"summoner without puuid", func(c *config.Config) {
				c.Summoners = map[int64]config.SummonerSeed{1: {Region: "kr"}}
			}},
		}

		for _, tc := range cases {
			cfg := config.New()
			tc.mutate(cfg)

			convey.Convey("Then "+tc.name+" is rejected", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		}
	})
}
