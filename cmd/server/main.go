package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/config"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/crypto"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/database"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/handlers"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/middleware"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/models"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/realtime"
	"github.com/shivamgupta951/YemmyChats-sub000/internal/routes"
	"github.com/shivamgupta951/YemmyChats-sub000/pkg/logger"
)

func main() {
	config.LoadConfig()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	logger.Info().Str("environment", env).Msg("Starting Yemmy Chats backend...")

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Database & Redis
	database.Connect()
	database.InitRedis()

	logger.Info().Msg("Running database migrations...")
	if err := database.DB.AutoMigrate(
		&models.User{},
		&models.Message{},
		&models.CompanionRequest{},
		&models.Companion{},
		&models.Post{},
		&models.PostLike{},
		&models.PostComment{},
		&models.TodoList{},
		&models.TodoItem{},
		&models.Storeroom{},
		&models.StoreroomFile{},
		&models.NotificationPrefs{},
		&models.NewsletterSubscriber{},
		&models.ContactMessage{},
	); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// OAuth
	handlers.InitOAuthConfig()

	// Realtime: presence registry + delivery hub + socket.io server
	registry := realtime.NewRegistry()
	hub := realtime.NewHub(registry, handlers.StampLastSeen)
	socketServer := realtime.InitSocketServer(hub)
	defer socketServer.Close()

	// Message codec: key derived once from the configured secret
	codec := crypto.NewCodec(config.AppConfig.MessageSecret)
	chatHandler := handlers.NewChatHandler(codec, hub)
	companionHandler := handlers.NewCompanionHandler(hub)
	handlers.SetPostsHub(hub)

	// Router
	r := gin.New()
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	// Exempt the socket transport from rate limiting
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/socket.io/") {
			c.Next()
			return
		}
		middleware.GeneralRateLimit()(c)
	})

	r.GET("/socket.io/*any", realtime.Handler(socketServer))
	r.POST("/socket.io/*any", realtime.Handler(socketServer))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		routes.RegisterAuthRoutes(auth)

		routes.RegisterUserRoutes(api)
		routes.RegisterChatRoutes(api, chatHandler)
		routes.RegisterCompanionRoutes(api, companionHandler)
		routes.RegisterPostRoutes(api)
		routes.RegisterTodoRoutes(api)
		routes.RegisterStoreroomRoutes(api)
		routes.RegisterNotificationRoutes(api)
		routes.RegisterUploadRoutes(api)
		routes.RegisterMarketingRoutes(api)
	}

	r.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		if sqlDB, err := database.DB.DB(); err != nil || sqlDB.Ping() != nil {
			dbStatus = "down"
		}
		redisStatus := "ok"
		if _, err := database.Redis.Ping(database.Ctx).Result(); err != nil {
			redisStatus = "down"
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"db":     dbStatus,
			"redis":  redisStatus,
		})
	})

	port := config.AppConfig.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Info().Str("port", port).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Forced shutdown")
	}
	logger.Info().Msg("Server exited")
}
