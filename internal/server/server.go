package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campushub/config"
	"campushub/internal/handler"
	"campushub/internal/middleware"
	"campushub/internal/redis"
	"campushub/internal/services"
	"campushub/internal/transport/httpdto"
	"campushub/pkg/database"
	"campushub/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Auth   *handler.AuthHandler
	Chat   *handler.ChatHandler
	Post   *handler.PostHandler
	Upload *handler.UploadHandler
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.AppPort),
			Handler: engine,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

func (s *Server) SetupRoutes(handlers *Handlers, authService *services.AuthService, limiter *redis.RateLimiter) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORSMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"message": "pong"}))
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(); err != nil {
			c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error(), "UNHEALTHY"))
			return
		}
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "healthy"}))
	})

	auth := s.engine.Group("/v1/auth")
	if limiter != nil {
		auth.Use(middleware.AuthRateLimitMiddleware(limiter))
	}
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", middleware.AuthMiddleware(authService), handlers.Auth.Me)
		auth.POST("/password/forgot", handlers.Auth.PasswordForgot)
		auth.POST("/password/reset", handlers.Auth.PasswordReset)
	}

	chat := s.engine.Group("/v1/chat", middleware.AuthMiddleware(authService))
	{
		send := handlers.Chat.Send
		if limiter != nil {
			chat.POST("/messages", middleware.MessageRateLimitMiddleware(limiter), send)
		} else {
			chat.POST("/messages", send)
		}
		chat.GET("/messages", handlers.Chat.List)
		chat.POST("/messages/:id/reactions", handlers.Chat.React)
		chat.POST("/messages/:id/votes", handlers.Chat.Vote)
	}

	posts := s.engine.Group("/v1/posts")
	{
		posts.GET("", handlers.Post.List)
		posts.GET("/:id", handlers.Post.Get)
		posts.POST("", middleware.AuthMiddleware(authService), handlers.Post.Create)
		posts.PUT("/:id", middleware.AuthMiddleware(authService), handlers.Post.Update)
		posts.DELETE("/:id", middleware.AuthMiddleware(authService), handlers.Post.Delete)
	}

	if handlers.Upload != nil {
		uploads := s.engine.Group("/v1/uploads", middleware.AuthMiddleware(authService))
		{
			uploads.POST("/presign", handlers.Upload.Presign)
		}
	}
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	if s.logger != nil {
		s.logger.Infof("Server is running on :%s", s.config.AppPort)
	}

	<-quit

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
