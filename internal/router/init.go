package router

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/thinkel-blog-api/config"
	"github.com/oksasatya/thinkel-blog-api/internal/application"
	"github.com/oksasatya/thinkel-blog-api/internal/container"
	"github.com/oksasatya/thinkel-blog-api/internal/infrastructure/filestore"
	"github.com/oksasatya/thinkel-blog-api/internal/infrastructure/redisstore"
	handlers "github.com/oksasatya/thinkel-blog-api/internal/interface/http"
	"github.com/oksasatya/thinkel-blog-api/internal/interface/middleware"
	"github.com/oksasatya/thinkel-blog-api/internal/router/modules"
)

// Services are the application services shared by the HTTP modules.
type Services struct {
	Auth         *application.AuthService
	Posts        *application.PostService
	Comments     *application.CommentService
	Interactions *application.InteractionService
	Contact      *application.ContactService
}

func configOrDefault() *config.Config {
	if cfg := container.GetConfig(); cfg != nil {
		return cfg
	}
	return config.Load()
}

// BuildServices wires the services from the container. Optional backends
// that are not configured are left as nil interfaces.
func BuildServices() Services {
	cfg := configOrDefault()
	logger := container.GetLogger()

	var (
		sessions application.SessionStore
		stats    application.StatsCache
		queue    application.Publisher
	)
	if rdb := container.GetRedis(); rdb != nil {
		sessions = redisstore.NewSessions(rdb)
		stats = redisstore.NewStatsCache(rdb, cfg.StatsCacheTTL)
	}
	if pub := container.GetRabbitPub(); pub != nil {
		queue = pub
	}

	users, posts, comments := container.GetUsers(), container.GetPosts(), container.GetComments()
	return Services{
		Auth:         application.NewAuthService(users, container.GetJWT(), sessions, container.GetFileStore(), logger),
		Posts:        application.NewPostService(posts, users, stats, logger),
		Comments:     application.NewCommentService(comments, posts, users, stats, logger),
		Interactions: application.NewInteractionService(posts, comments, stats, logger),
		Contact:      application.NewContactService(queue, cfg.ContactInbox, cfg.ContactEnabled() && queue != nil, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := configOrDefault()
	logger := container.GetLogger()
	svc := BuildServices()
	auth := middleware.Auth(svc.Auth)

	commentHandler := handlers.NewCommentHandler(svc.Comments, svc.Interactions, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth, logger, cfg.CookieDomain, cfg.CookieSecure), auth))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Auth, logger)))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(svc.Posts, svc.Interactions, logger), commentHandler, auth))
	r.Add(modules.NewCommentModule(commentHandler, auth))
	r.Add(modules.NewContactModule(handlers.NewContactHandler(svc.Contact, logger)))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}

// InitSystemRoutes mounts the routes that live outside /api.
func InitSystemRoutes(engine *gin.Engine) {
	cfg := configOrDefault()
	sys := handlers.NewSystemHandler(cfg.AppName, cfg.Env)
	sys.Checks = healthChecks()
	engine.GET("/", sys.Root)
	engine.GET("/health", sys.Health)
	if disk, ok := container.GetFileStore().(*filestore.Disk); ok {
		engine.Static("/uploads", disk.Dir())
	}
	engine.NoRoute(sys.NotFound)
}

// healthChecks probes the backends that are configured in the container.
func healthChecks() map[string]handlers.HealthCheck {
	checks := map[string]handlers.HealthCheck{}
	if pool := container.GetPGPool(); pool != nil {
		checks["postgres"] = pool.Ping
	}
	if rdb := container.GetRedis(); rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	return checks
}
