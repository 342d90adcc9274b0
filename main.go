package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"

	"user-service/internal/cache"
	"user-service/internal/config"
	"user-service/internal/controllers"
	"user-service/internal/database"
	"user-service/internal/hasher"
	"user-service/internal/logger"
	"user-service/internal/repository"
	"user-service/internal/service"
)

func main() {
	cfg := config.Load()

	log := logger.InitLogger()

	// Connect to database
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.NewConnection(ctx, cfg.DatabaseURL(), cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()
	log.Info().Msg("Connected to PostgreSQL")

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure schema")
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to connect to Redis, continuing without cache")
			cacheClient = nil
		} else {
			log.Info().Msg("Connected to Redis cache")
		}
	}

	// Initialize layers
	userRepo := repository.NewUserRepository(db)
	passwordHasher := hasher.NewBcryptHasher(cfg.BcryptCost)

	userService := service.NewUserService(userRepo, cacheClient, log)
	authService := service.NewAuthService(userRepo, passwordHasher, log)

	userController := controllers.NewUserController(userService)
	authController := controllers.NewAuthController(authService)

	// Create a Gin router
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/users", userController.ListUsers)
	router.GET("/users/:id", userController.GetUser)
	router.POST("/users", userController.CreateUser)
	router.PUT("/users/:id", userController.UpdateUser)
	router.DELETE("/users/:id", userController.DeleteUser)

	router.POST("/register", authController.Register)
	router.POST("/login", authController.Login)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("User service is running")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Info().Msg("Shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Server stopped")
}
