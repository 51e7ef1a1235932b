package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/recipehub/recipehub-backend/config"
	"github.com/recipehub/recipehub-backend/internal/app/controller"
	"github.com/recipehub/recipehub-backend/internal/app/repository"
	"github.com/recipehub/recipehub-backend/internal/app/service"
	"github.com/recipehub/recipehub-backend/internal/db"
	"github.com/recipehub/recipehub-backend/internal/middleware"
	"github.com/recipehub/recipehub-backend/internal/router"
	"github.com/recipehub/recipehub-backend/internal/storage"
	"github.com/recipehub/recipehub-backend/pkg/logger"
	"github.com/recipehub/recipehub-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting RecipeHub Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed default tags (optional)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize Redis (optional, used for ingredient search caching)
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, continuing without cache", map[string]interface{}{
				"error": err.Error(),
			})
		}
		defer redis.Close()
	} else {
		logger.Info("Redis disabled, ingredient search cache is off")
	}

	// Initialize image storage (optional)
	var imageStore service.ImageStore
	if cfg.S3.Enabled {
		imageStore = storage.NewS3Storage(&cfg.S3)
		logger.Info("S3 image storage enabled", map[string]interface{}{
			"bucket": cfg.S3.Bucket,
			"region": cfg.S3.Region,
		})
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	tagRepo := repository.NewTagRepository(db.GetDB())
	ingredientRepo := repository.NewIngredientRepository(db.GetDB())
	recipeRepo := repository.NewRecipeRepository(db.GetDB())
	favoriteRepo := repository.NewFavoriteRepository(db.GetDB())
	cartRepo := repository.NewShoppingCartRepository(db.GetDB())
	subscriptionRepo := repository.NewSubscriptionRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	userService := service.NewUserService(userRepo, subscriptionRepo)
	tagService := service.NewTagService(tagRepo)
	ingredientService := service.NewIngredientService(ingredientRepo, redis.GetClient())
	recipeService := service.NewRecipeService(
		recipeRepo,
		tagRepo,
		ingredientRepo,
		favoriteRepo,
		cartRepo,
		subscriptionRepo,
		imageStore,
	)
	favoriteService := service.NewFavoriteService(favoriteRepo, recipeRepo)
	cartService := service.NewShoppingCartService(cartRepo, recipeRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo, recipeRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	userController := controller.NewUserController(userService, authService, subscriptionService)
	tagController := controller.NewTagController(tagService)
	ingredientController := controller.NewIngredientController(ingredientService)
	recipeController := controller.NewRecipeController(recipeService, favoriteService, cartService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		userController,
		tagController,
		ingredientController,
		recipeController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
