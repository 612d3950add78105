package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	dbadapter "plume/internal/adapters/database"
	"plume/internal/adapters/httpapi"
	"plume/internal/adapters/memcache"
	redisadapter "plume/internal/adapters/redis"
	"plume/internal/adapters/storage"
	"plume/internal/config"
	"plume/internal/core/comment"
	commentapp "plume/internal/core/comment/service"
	feedapp "plume/internal/core/feed/service"
	"plume/internal/core/follow"
	followapp "plume/internal/core/follow/service"
	"plume/internal/core/group"
	"plume/internal/core/post"
	postapp "plume/internal/core/post/service"
	"plume/internal/core/user"
	userapp "plume/internal/core/user/service"
	feedcachePort "plume/internal/ports/feedcache"
	"plume/internal/workers"
)

func main() {
	config.InitLogger()
	config.Init()
	config.InitDB()

	if err := config.DB.AutoMigrate(
		&user.User{},
		&group.Group{},
		&post.Post{},
		&comment.Comment{},
		&follow.Follow{},
	); err != nil {
		config.Logger.Fatal("Error during migrations:", zap.Error(err))
	}
	config.Logger.Info("✅ Database migrations completed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Pick the feed-cache backend. Redis expires keys itself; the
	// in-process map gets a janitor.
	var cache feedcachePort.Cache
	switch config.CacheBackend() {
	case config.CacheBackendMemory:
		mem := memcache.NewFeedCacheMemory()
		cache = mem
		janitor := workers.NewCacheJanitor(mem, time.Minute, config.Logger)
		go janitor.Run(ctx)
	default:
		config.InitRedis()
		cache = redisadapter.NewFeedCacheRedis(config.RedisClient)
	}

	defer closeResources(config.Logger)

	images, err := storage.NewImageStoreFilesystem(config.MediaDir())
	if err != nil {
		config.Logger.Fatal("Error creating media dir:", zap.Error(err))
	}

	config.Logger.Info("App is running...")

	userRepo := dbadapter.NewUserRepositoryDatabase()
	groupRepo := dbadapter.NewGroupRepositoryDatabase()
	postRepo := dbadapter.NewPostRepositoryDatabase()
	commentRepo := dbadapter.NewCommentRepositoryDatabase()
	followRepo := dbadapter.NewFollowRepositoryDatabase()

	userSvc := userapp.NewUserService(userRepo, []byte(os.Getenv("JWT_SECRET")))
	postSvc := postapp.NewPostService(postRepo, groupRepo, images)
	commentSvc := commentapp.NewCommentService(commentRepo, postRepo)
	followSvc := followapp.NewFollowService(followRepo, userRepo)
	feedSvc := feedapp.NewFeedService(postRepo, groupRepo, userRepo, followRepo, cache, config.Logger)

	r := httpapi.SetupRoutes(userSvc, postSvc, commentSvc, followSvc, feedSvc)

	if err := r.Run(":" + os.Getenv("APP_PORT")); err != nil {
		config.Logger.Fatal("Server failed to start:", zap.Error(err))
	}
}

func closeResources(logger *zap.Logger) {
	if config.RedisClient != nil {
		if err := config.RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection:", zap.Error(err))
		}
	}

	sqlDB, err := config.DB.DB()
	if err != nil {
		logger.Error("Error getting raw DB:", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection:", zap.Error(err))
	}
}
