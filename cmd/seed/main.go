package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/thinkel-blog-api/config"
	"github.com/oksasatya/thinkel-blog-api/internal/application"
	"github.com/oksasatya/thinkel-blog-api/internal/domain/entity"
	pginfra "github.com/oksasatya/thinkel-blog-api/internal/infrastructure/postgres"
	"github.com/oksasatya/thinkel-blog-api/pkg/apperr"
	"github.com/oksasatya/thinkel-blog-api/pkg/helpers"
)

const demoPassword = "password123"

var demoUsers = []application.RegisterInput{
	{Name: "Lucía Fernández", Email: "lucia@thinkel.dev", Password: demoPassword},
	{Name: "Mateo Ruiz", Email: "mateo@thinkel.dev", Password: demoPassword},
}

var demoPosts = []application.CreatePostInput{
	{
		Title:       "Primeros pasos con Thinkel",
		Description: "Cómo publicar tu primer artículo.",
		Content:     "Escribe, etiqueta y comparte. Así de simple.",
		Tags:        []string{"guia", "thinkel"},
	},
	{
		Title:       "Concurrencia sin miedo",
		Description: "Contadores atómicos y por qué importan.",
		Content:     "Cada like es una operación atómica sobre una sola fila.",
		Tags:        []string{"go", "postgres"},
	},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	posts := pginfra.NewPostRepository(pool)
	comments := pginfra.NewCommentRepository(pool)
	jwt := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	auth := application.NewAuthService(users, jwt, nil, nil, logger)
	postSvc := application.NewPostService(posts, users, nil, logger)
	commentSvc := application.NewCommentService(comments, posts, users, nil, logger)
	interactions := application.NewInteractionService(posts, comments, nil, logger)

	seeded := make([]*entity.User, 0, len(demoUsers))
	for _, in := range demoUsers {
		u, err := ensureUser(ctx, auth, in)
		if err != nil {
			logger.WithError(err).WithField("email", in.Email).Fatal("failed to seed user")
		}
		seeded = append(seeded, u)
		logger.WithFields(logrus.Fields{"id": u.ID, "email": u.Email, "password": in.Password}).Info("seeded user")
	}

	author, reader := seeded[0], seeded[1]
	existing, err := postSvc.ListMine(ctx, author.ID, application.ListQuery{Limit: 1})
	if err != nil {
		logger.WithError(err).Fatal("failed to check existing posts")
	}
	if existing.Total > 0 {
		logger.Info("posts already seeded")
		return
	}

	for _, in := range demoPosts {
		p, err := postSvc.Create(ctx, author.ID, in)
		if err != nil {
			logger.WithError(err).Fatal("failed to seed post")
		}
		top, err := commentSvc.Create(ctx, reader.ID, application.CreateCommentInput{PostID: p.ID, Content: "¡Muy útil, gracias!"})
		if err != nil {
			logger.WithError(err).Fatal("failed to seed comment")
		}
		if _, err := commentSvc.Create(ctx, author.ID, application.CreateCommentInput{PostID: p.ID, ParentID: top.ID, Content: "¡Gracias por leer!"}); err != nil {
			logger.WithError(err).Fatal("failed to seed reply")
		}
		if _, err := interactions.TogglePostLike(ctx, reader.ID, p.ID); err != nil {
			logger.WithError(err).Fatal("failed to seed like")
		}
		logger.WithFields(logrus.Fields{"id": p.ID, "slug": p.Slug}).Info("seeded post")
	}
}

// ensureUser registers the user, or logs in when the email already exists.
func ensureUser(ctx context.Context, auth *application.AuthService, in application.RegisterInput) (*entity.User, error) {
	u, _, err := auth.Register(ctx, in)
	if err == nil {
		return u, nil
	}
	if !apperr.Is(err, apperr.KindConflict) {
		return nil, err
	}
	u, _, err = auth.Login(ctx, in.Email, in.Password)
	return u, err
}
