package main

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/inkwell/config"
	"github.com/d60-Lab/inkwell/internal/api"
	"github.com/d60-Lab/inkwell/internal/api/handler"
	"github.com/d60-Lab/inkwell/internal/api/middleware"
	"github.com/d60-Lab/inkwell/internal/cache"
	"github.com/d60-Lab/inkwell/internal/repository"
	"github.com/d60-Lab/inkwell/internal/service"
	"github.com/d60-Lab/inkwell/internal/storage"
	"github.com/d60-Lab/inkwell/pkg/database"
	"github.com/d60-Lab/inkwell/pkg/logger"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func main() {
	cfg := must(config.Load())
	if err := logger.Init(cfg.Log.Level); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.Sentry.DSN,
		Environment: cfg.Server.Mode,
	}); err != nil {
		logger.Warn("sentry init failed", zap.Error(err))
	}
	defer sentry.Flush(2 * time.Second)

	db := must(database.InitDB(cfg))
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pageCache := cache.NewPageCache(rdb, cfg.Cache.TTL)
	store := must(storage.New(cfg))

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)

	users := service.NewUserService(userRepo)
	posts := service.NewPostService(postRepo, groupRepo, userRepo, commentRepo)
	comments := service.NewCommentService(commentRepo, postRepo)
	rels := service.NewRelationshipService(followRepo)

	sessions := middleware.NewSessions(cfg.Session.Secret, cfg.Session.MaxAge)
	h := handler.New(posts, comments, users, rels, groupRepo, sessions, store, pageCache)
	r := api.NewRouter(cfg, h, sessions, users, pageCache)

	logger.Info("server starting", zap.String("addr", cfg.Server.Addr))
	if err := r.Run(cfg.Server.Addr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
