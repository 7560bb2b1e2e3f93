package main

import (
	"context"
	"log"
	"time"

	"campushub/config"
	"campushub/internal/domain/message"
	"campushub/internal/domain/post"
	"campushub/internal/domain/user"
	"campushub/internal/handler"
	"campushub/internal/redis"
	"campushub/internal/repository"
	"campushub/internal/server"
	"campushub/internal/services"
	"campushub/internal/storage"
	"campushub/pkg/database"
	"campushub/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	l := logger.New(cfg.AppMode)
	defer l.Sync()
	logger.SetGlobalLogger(l)

	database.Connect(cfg)

	if err := database.DB.AutoMigrate(
		&user.User{},
		&post.Post{},
		&message.Message{},
	); err != nil {
		log.Fatalf("Failed to apply GORM migrations: %v", err)
	}

	redis.Initialize(redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
	})
	limiter := redis.NewRateLimiter(redis.GetClient(), redis.DefaultRateLimitConfig())

	userRepo := repository.NewUserRepository(database.DB)
	postRepo := repository.NewPostRepository(database.DB)
	messageRepo := repository.NewMessageRepository(database.DB)

	authService := services.NewAuthService(userRepo, cfg)
	postService := services.NewPostService(postRepo)
	chatService := services.NewChatService(messageRepo)

	handlers := &server.Handlers{
		Auth: handler.NewAuthHandler(authService),
		Chat: handler.NewChatHandler(chatService),
		Post: handler.NewPostHandler(postService),
	}

	// S3 uploads are optional; without a bucket the upload routes are not mounted.
	if cfg.S3Bucket != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		storageClient, err := storage.NewClient(ctx, storage.S3Config{
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Endpoint:   cfg.S3Endpoint,
			PublicBase: cfg.S3PublicBase,
			PresignTTL: time.Duration(cfg.PresignTTLMin) * time.Minute,
		})
		cancel()
		if err != nil {
			log.Fatalf("Failed to initialize S3 storage: %v", err)
		}
		handlers.Upload = handler.NewUploadHandler(services.NewUploadService(storageClient))
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(handlers, authService, limiter)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}
