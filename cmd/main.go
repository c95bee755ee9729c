package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/thinkel-blog-api/config"
	"github.com/oksasatya/thinkel-blog-api/internal/container"
	"github.com/oksasatya/thinkel-blog-api/internal/infrastructure/filestore"
	"github.com/oksasatya/thinkel-blog-api/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/thinkel-blog-api/internal/infrastructure/postgres"
	"github.com/oksasatya/thinkel-blog-api/internal/router"
	"github.com/oksasatya/thinkel-blog-api/pkg/helpers"
	"github.com/oksasatya/thinkel-blog-api/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Storage
	if cfg.UsesMemory() {
		store := memory.New()
		container.SetRepositories(store.Users(), store.Posts(), store.Comments())
		logger.Warn("using in-memory storage; data is lost on restart")
	} else {
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			logger.WithError(err).Fatal("migration failed")
		}
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to postgres")
		}
		defer pool.Close()
		container.SetPGPool(pool)
		container.SetRepositories(pginfra.NewUserRepository(pool), pginfra.NewPostRepository(pool), pginfra.NewCommentRepository(pool))
	}

	// Redis: sessions and the stats cache, optional
	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.WithError(err).Warn("redis unreachable; sessions fail open until it recovers")
		}
		defer func() { _ = rdb.Close() }()
		container.SetRedis(rdb)
	}

	// Uploads: GCS when a bucket is configured, local disk otherwise
	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			logger.WithError(err).Fatal("failed to init GCS client")
		}
		defer func() { _ = gcsClient.Close() }()
		container.SetFileStore(filestore.NewGCS(gcsClient, cfg.GCSBucket, "uploads"))
	} else {
		disk, err := filestore.NewDisk(cfg.UploadsDir, cfg.PublicBaseURL+"/uploads")
		if err != nil {
			logger.WithError(err).Fatal("failed to prepare uploads dir")
		}
		container.SetFileStore(disk)
	}

	// RabbitMQ: contact form email jobs, optional
	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; contact messages will only be logged")
		} else {
			defer pub.Close()
			container.SetRabbitPub(pub)
		}
	}

	// JWT
	container.SetJWT(helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL))
	container.SetConfig(cfg)
	container.SetLogger(logger)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router.NewEngine(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.WithFields(logrus.Fields{"port": cfg.Port, "storage": cfg.StorageDriver}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("listen")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
		return
	}
	logger.Info("server exited properly")
}
