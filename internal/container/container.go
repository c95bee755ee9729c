package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/thinkel-blog-api/config"
	"github.com/oksasatya/thinkel-blog-api/internal/application"
	repo "github.com/oksasatya/thinkel-blog-api/internal/domain/repository"
	"github.com/oksasatya/thinkel-blog-api/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router auto-wires modules from these singletons. Optional backends
// (Postgres, Redis, RabbitMQ, file store) stay nil when not configured.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client

	jwtManager *helpers.JWTManager

	rabbitPub *helpers.RabbitPublisher
	files     application.FileStore

	users    repo.UserRepository
	posts    repo.PostRepository
	comments repo.CommentRepository
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager {
	if jwtManager != nil {
		return jwtManager
	}
	return helpers.DefaultJWT()
}

func GetLogger() *logrus.Logger {
	if logger != nil {
		return logger
	}
	return helpers.NewNopLogger()
}

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }

func SetFileStore(f application.FileStore) { files = f }
func GetFileStore() application.FileStore  { return files }

// SetRepositories installs the storage backend (postgres or memory).
func SetRepositories(u repo.UserRepository, p repo.PostRepository, c repo.CommentRepository) {
	users, posts, comments = u, p, c
}

func GetUsers() repo.UserRepository       { return users }
func GetPosts() repo.PostRepository       { return posts }
func GetComments() repo.CommentRepository { return comments }

// Reset clears every component. Used by tests.
func Reset() {
	cfg, logger, pgPool, redisClient = nil, nil, nil, nil
	jwtManager, rabbitPub, files = nil, nil, nil
	users, posts, comments = nil, nil, nil
}
