package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/okian/spelltimer/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init(logger.WithWriter(&bytes.Buffer{}))
}

type fakeService struct {
	mu         sync.Mutex
	healthy    bool
	requestIDs []string
	awaits     []string
}

func (f *fakeService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if !f.healthy {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("# metrics\n"))
	})
	mux.HandleFunc("/spell", func(w http.ResponseWriter, r *http.Request) {
		var req SpellRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.requestIDs = append(f.requestIDs, r.Header.Get(requestIDHeader))
		f.mu.Unlock()

		switch req.Text {
		case "bad":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"code":"bad_request"}`))
		case "boom":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			champion, spellName, _ := strings.Cut(req.Text, " ")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(SpellResponse{
				SummonerID:   req.SummonerID,
				ChampionName: champion,
				SpellName:    spellName,
				Message:      champion + " " + spellName + " 쿨타임 등록했습니다!",
			})
		}
	})
	mux.HandleFunc("/spell/await", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.awaits = append(f.awaits, r.URL.Query().Get("champion_name"))
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(AwaitResponse{SummonerID: 1, Message: "돌았습니다!", WaitedMs: 5})
	})
	return mux
}

func TestRun(t *testing.T) {
	Convey("Given a fake spell timer", t, func() {
		fake := &fakeService{healthy: true}
		srv := httptest.NewServer(fake.handler())
		defer srv.Close()

		config := &Config{
			BaseURL:    srv.URL + "/",
			SummonerID: 1,
			Texts:      []string{"럭스 점멸", "아리 점화"},
			Reports:    6,
			Workers:    3,
		}

		Convey("When every report is accepted", func() {
			stats, err := Run(context.Background(), config)

			Convey("Then the counters add up", func() {
				So(err, ShouldBeNil)
				So(stats.ReportsSubmitted, ShouldEqual, 6)
				So(stats.ReportsAccepted, ShouldEqual, 6)
				So(stats.ReportsRejected, ShouldEqual, 0)
				So(stats.ReportsFailed, ShouldEqual, 0)
				So(stats.Duration, ShouldBeGreaterThan, 0)
			})

			Convey("Then each request carries a distinct id from the run", func() {
				So(err, ShouldBeNil)
				So(fake.requestIDs, ShouldHaveLength, 6)
				seen := map[string]bool{}
				for _, id := range fake.requestIDs {
					So(strings.HasPrefix(id, stats.RunID+"-"), ShouldBeTrue)
					seen[id] = true
				}
				So(seen, ShouldHaveLength, 6)
			})

			Convey("Then nothing is awaited", func() {
				So(fake.awaits, ShouldBeEmpty)
			})
		})

		Convey("When await is enabled", func() {
			config.Await = true
			stats, err := Run(context.Background(), config)

			Convey("Then each distinct cooldown is awaited once", func() {
				So(err, ShouldBeNil)
				So(stats.AwaitsCompleted, ShouldEqual, 2)
				So(stats.AwaitsFailed, ShouldEqual, 0)
				So(fake.awaits, ShouldHaveLength, 2)
				So(fake.awaits, ShouldContain, "럭스")
				So(fake.awaits, ShouldContain, "아리")
			})
		})

		Convey("When some reports are rejected or fail", func() {
			config.Texts = []string{"럭스 점멸", "bad", "boom"}
			stats, err := Run(context.Background(), config)

			Convey("Then each outcome is counted", func() {
				So(err, ShouldBeNil)
				So(stats.ReportsAccepted, ShouldEqual, 2)
				So(stats.ReportsRejected, ShouldEqual, 2)
				So(stats.ReportsFailed, ShouldEqual, 2)
			})
		})

		Convey("When no report is accepted", func() {
			config.Texts = []string{"bad"}
			_, err := Run(context.Background(), config)

			Convey("Then the run fails", func() {
				So(errors.Is(err, ErrNoReportsAccepted), ShouldBeTrue)
			})
		})

		Convey("When the service is unhealthy", func() {
			fake.healthy = false
			_, err := Run(context.Background(), config)

			Convey("Then no report is posted", func() {
				So(errors.Is(err, ErrUnhealthy), ShouldBeTrue)
				So(fake.requestIDs, ShouldBeEmpty)
			})
		})
	})
}

func TestRunValidation(t *testing.T) {
	Convey("Given invalid configs", t, func() {
		cases := []struct {
			name   string
			config *Config
		}{
			{"nil", nil},
			{"no url", &Config{SummonerID: 1, Texts: []string{"x"}, Reports: 1}},
			{"no summoner", &Config{BaseURL: "http://x", Texts: []string{"x"}, Reports: 1}},
			{"no texts", &Config{BaseURL: "http://x", SummonerID: 1, Reports: 1}},
			{"no reports", &Config{BaseURL: "http://x", SummonerID: 1, Texts: []string{"x"}}},
		}
		for _, c := range cases {
			Convey("Then "+c.name+" is rejected", func() {
				_, err := Run(context.Background(), c.config)
				So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
			})
		}
	})
}

func TestShowHelp(t *testing.T) {
	Convey("ShowHelp lists the flags", t, func() {
		var buf bytes.Buffer
		ShowHelp(&buf)
		So(buf.String(), ShouldContainSubstring, "-summoner")
		So(buf.String(), ShouldContainSubstring, "-await")
	})
}

func TestAwaitPath(t *testing.T) {
	Convey("awaitPath encodes the cooldown key", t, func() {
		p := awaitPath(7, "미스 포츈", "점멸")
		So(p, ShouldStartWith, "/spell/await?")
		So(p, ShouldContainSubstring, "summoner_id=7")
		So(p, ShouldContainSubstring, "champion_name=%EB%AF%B8%EC%8A%A4+%ED%8F%AC%EC%B8%88")
	})
}
