package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"symptra-health/internal/config"
	"symptra-health/internal/handler"
	"symptra-health/internal/middleware"
	"symptra-health/internal/repository"
	"symptra-health/internal/service"
)

const maxUploadSize = 10 * 1024 * 1024

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	zapLogger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	if cfg.JWTSecret == "" {
		zapLogger.Fatal("JWT_SECRET is not set")
	}

	db, err := config.NewPostgresDB(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	var redisClient *redis.Client
	if client, err := config.NewRedisClient(cfg); err != nil {
		zapLogger.Warn("redis unavailable, published articles will not be cached", zap.Error(err))
	} else {
		redisClient = client
		defer redisClient.Close()
	}

	var minioClient *minio.Client
	if client, err := config.NewMinIOClient(cfg, zapLogger); err != nil {
		zapLogger.Warn("minio unavailable, report uploads will not be stored", zap.Error(err))
	} else {
		minioClient = client
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, minioClient, cfg, zapLogger, service.Options{})
	handlers := handler.NewHandlers(services, db, cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(zapLogger, cfg.IsDevelopment()),
		BodyLimit:    maxUploadSize,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	handler.SetupRoutes(app, handlers, services.Auth, cfg.CookieName)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		zapLogger.Info("shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zapLogger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	zapLogger.Info("server starting", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zapLogger.Fatal("failed to start server", zap.Error(err))
	}
}
