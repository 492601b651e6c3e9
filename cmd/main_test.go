package main

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/okian/lootpool/internal/adapters/http/api"
	"github.com/okian/lootpool/internal/adapters/upstream"
	app "github.com/okian/lootpool/internal/app"
	"github.com/okian/lootpool/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainWiring(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("LOOTPOOL_ADDR", ":8080")
			_ = os.Setenv("LOOTPOOL_POOL_TTL_SECONDS", "60")
			defer func() {
				_ = os.Unsetenv("LOOTPOOL_ADDR")
				_ = os.Unsetenv("LOOTPOOL_POOL_TTL_SECONDS")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load()
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.PoolTTLSeconds, convey.ShouldEqual, 60)
			})
		})

		convey.Convey("When building the scoring engine from config", func() {
			cfg := config.New()
			cfg.TierThresholds = map[string][]int{"mythic": {1, 5, 15}}
			cfg.TierWeights = map[string]map[string]float64{
				"mythic": {"1-2": 13.55, "bogus": 2.0},
			}

			engine := buildEngine(cfg)

			convey.Convey("Then malformed step keys are skipped", func() {
				convey.So(engine, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When wiring the service and HTTP routes", func() {
			cfg := config.New()
			svc := app.New(
				upstream.NewPoolClient(cfg.PoolBaseURL),
				upstream.NewCategoryClient(cfg.CategoryBaseURL),
				upstream.NewProgressClient(cfg.PoolBaseURL),
				upstream.NewGambitClient(cfg.PoolBaseURL),
				app.WithEngine(buildEngine(cfg)),
			)
			convey.So(svc, convey.ShouldNotBeNil)

			mux := http.NewServeMux()
			api.NewServer(svc, svc).Register(context.Background(), mux)

			convey.Convey("Then the mux resolves the registered routes", func() {
				for _, path := range []string{"/healthz", "/stats", "/pools", "/summary", "/window", "/gambits"} {
					req, err := http.NewRequest(http.MethodGet, path, nil)
					convey.So(err, convey.ShouldBeNil)
					h, pattern := mux.Handler(req)
					convey.So(h, convey.ShouldNotBeNil)
					convey.So(pattern, convey.ShouldNotBeEmpty)
				}
			})
		})
	})
}
