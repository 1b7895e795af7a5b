package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"vidshare-go/internal/api/handler"
	"vidshare-go/internal/api/middleware"
	"vidshare-go/internal/api/router"
	"vidshare-go/internal/config"
	"vidshare-go/internal/infra/database"
	infraES "vidshare-go/internal/infra/elasticsearch"
	"vidshare-go/internal/infra/email"
	infraKafka "vidshare-go/internal/infra/kafka"
	infraMinio "vidshare-go/internal/infra/minio"
	infraRedis "vidshare-go/internal/infra/redis"
	"vidshare-go/internal/model"
	"vidshare-go/internal/repository"
	"vidshare-go/internal/service"
	"vidshare-go/pkg/logger"

	_ "vidshare-go/api/openapi"
)

// @title VidShare API
// @version 1.0
// @description Video sharing platform backend

// @contact.name API Support
// @contact.email support@vidshare.dev

// @license.name MIT

// @host 127.0.0.1:8000
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Format: Bearer {token}

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.Output,
		cfg.Log.FilePath,
	); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	db, err := database.Open(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db,
		&model.User{},
		&model.Video{},
		&model.StreamVariant{},
		&model.ForgotPassword{},
		&model.WatchHistory{},
		&model.Playlist{},
		&model.PlaylistVideo{},
		&model.Comment{},
		&model.Like{},
		&model.Subscription{},
		&model.Community{},
	); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	redisClient, err := infraRedis.Open(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to open redis", zap.Error(err))
	}
	defer redisClient.Close()
	cache := infraRedis.NewCache(redisClient, 10*time.Minute)

	storage, err := infraMinio.New(&cfg.MinIO)
	if err != nil {
		logger.Fatal("Failed to init object storage", zap.Error(err))
	}

	producer := infraKafka.NewProducer(&cfg.Kafka)
	defer producer.Close()

	// Elasticsearch is optional. When it is down, search falls back to
	// the database.
	var searchIndex *infraES.Index
	if idx, err := infraES.New(&cfg.Elasticsearch); err != nil {
		logger.Warn("Elasticsearch init failed, search will fall back to DB", zap.Error(err))
	} else {
		searchIndex = idx
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := searchIndex.EnsureVideosIndex(ctx); err != nil {
			logger.Warn("Elasticsearch index init failed", zap.Error(err))
		}
		cancel()
	}

	mailer := email.NewSender(&cfg.Email)

	if err := os.MkdirAll(cfg.Upload.TempDir, 0o755); err != nil {
		logger.Fatal("Failed to create upload temp dir", zap.Error(err))
	}

	gin.SetMode(cfg.App.Mode)
	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.Origin))

	userRepo := repository.NewUserRepository(db)
	forgotRepo := repository.NewForgotPasswordRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	historyRepo := repository.NewWatchHistoryRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	communityRepo := repository.NewCommunityRepository(db)

	authService := service.NewAuthService(userRepo, forgotRepo, mailer, &cfg.Auth)
	userService := service.NewUserService(userRepo, subRepo, storage)
	videoService := service.NewVideoService(videoRepo, userRepo, likeRepo, subRepo, historyRepo, storage, producer, searchIndex, cache)
	processService := service.NewProcessService(videoRepo, userRepo, communityRepo, searchIndex, cache, cfg.Webhook.Secret)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo)
	commentService := service.NewCommentService(commentRepo, videoRepo)
	likeService := service.NewLikeService(likeRepo, videoRepo)
	subService := service.NewSubscriptionService(subRepo, userRepo)
	communityService := service.NewCommunityService(communityRepo, storage)
	searchService := service.NewSearchService(videoRepo, likeRepo, searchIndex)

	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService, &cfg.Auth),
		User:         handler.NewUserHandler(userService, cfg.Upload.TempDir),
		Video:        handler.NewVideoHandler(videoService, cfg.Upload.TempDir, cfg.Upload.MaxBytes),
		Search:       handler.NewSearchHandler(searchService),
		Playlist:     handler.NewPlaylistHandler(playlistService),
		Comment:      handler.NewCommentHandler(commentService),
		Like:         handler.NewLikeHandler(likeService),
		Subscription: handler.NewSubscriptionHandler(subService),
		Community:    handler.NewCommunityHandler(communityService, cfg.Upload.TempDir),
		Process:      handler.NewProcessHandler(processService),
	}

	authCfg := middleware.AuthConfig{
		AccessSecret: cfg.Auth.AccessSecret,
		CookieName:   "accesToken",
	}
	loginLimiter := middleware.RateLimit(cfg.RateLimit.LoginPerSec, cfg.RateLimit.LoginBurst)
	uploadLimiter := middleware.RateLimit(cfg.RateLimit.UploadPerSec, cfg.RateLimit.UploadBurst)

	r.GET("/healthz", healthCheckHandler(cfg))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.Setup(r, handlers, authCfg, loginLimiter, uploadLimiter)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
	)
	if err := r.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func healthCheckHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   cfg.App.Name,
			"version":   cfg.App.Version,
			"mode":      cfg.App.Mode,
		})
	}
}
