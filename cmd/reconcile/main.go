// Command reconcile recomputes post counters (likes, comments) from the
// stored relations. Run it after an incident or on a schedule.
package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/thinkel-blog-api/config"
	pginfra "github.com/oksasatya/thinkel-blog-api/internal/infrastructure/postgres"
	"github.com/oksasatya/thinkel-blog-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-reconcile", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	fixed, err := pginfra.NewPostRepository(pool).RecountCounters(ctx)
	if err != nil {
		logger.WithError(err).Fatal("recount failed")
	}
	if fixed > 0 {
		logger.WithField("posts", fixed).Warn("post counters were out of step and have been corrected")
		return
	}
	logger.Info("post counters are consistent")
}
