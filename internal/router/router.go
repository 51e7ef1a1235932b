package router

import (
	"github.com/gin-gonic/gin"
	"github.com/recipehub/recipehub-backend/config"
	"github.com/recipehub/recipehub-backend/internal/app/controller"
	"github.com/recipehub/recipehub-backend/internal/middleware"
)

type Router struct {
	authController       *controller.AuthController
	userController       *controller.UserController
	tagController        *controller.TagController
	ingredientController *controller.IngredientController
	recipeController     *controller.RecipeController
	authMiddleware       *middleware.AuthMiddleware
	config               *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	userController *controller.UserController,
	tagController *controller.TagController,
	ingredientController *controller.IngredientController,
	recipeController *controller.RecipeController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:       authController,
		userController:       userController,
		tagController:        tagController,
		ingredientController: ingredientController,
		recipeController:     recipeController,
		authMiddleware:       authMiddleware,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "RecipeHub API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/set_password", r.authMiddleware.Authenticate(), r.authController.SetPassword)
		}

		users := v1.Group("/users")
		{
			users.GET("", r.authMiddleware.OptionalAuthenticate(), r.userController.GetUsers)
			users.GET("/me", r.authMiddleware.Authenticate(), r.userController.GetMe)
			users.PUT("/me", r.authMiddleware.Authenticate(), r.userController.UpdateMe)
			users.GET("/subscriptions", r.authMiddleware.Authenticate(), r.userController.GetSubscriptions)
			users.GET("/:id", r.authMiddleware.OptionalAuthenticate(), r.userController.GetUser)
			users.POST("/:id/subscribe", r.authMiddleware.Authenticate(), r.userController.Subscribe)
			users.DELETE("/:id/subscribe", r.authMiddleware.Authenticate(), r.userController.Unsubscribe)
		}

		tags := v1.Group("/tags")
		{
			tags.GET("", r.tagController.GetTags)
			tags.GET("/:id", r.tagController.GetTag)
		}

		ingredients := v1.Group("/ingredients")
		{
			ingredients.GET("", r.ingredientController.SearchIngredients)
			ingredients.GET("/:id", r.ingredientController.GetIngredient)
		}

		recipes := v1.Group("/recipes")
		{
			recipes.GET("", r.authMiddleware.OptionalAuthenticate(), r.recipeController.GetRecipes)
			recipes.GET("/download_shopping_cart", r.authMiddleware.Authenticate(), r.recipeController.DownloadShoppingCart)
			recipes.GET("/:id", r.authMiddleware.OptionalAuthenticate(), r.recipeController.GetRecipe)

			recipes.POST("", r.authMiddleware.Authenticate(), r.recipeController.CreateRecipe)
			recipes.PUT("/:id", r.authMiddleware.Authenticate(), r.recipeController.UpdateRecipe)
			recipes.PATCH("/:id", r.authMiddleware.Authenticate(), r.recipeController.UpdateRecipe)
			recipes.DELETE("/:id", r.authMiddleware.Authenticate(), r.recipeController.DeleteRecipe)

			recipes.POST("/:id/favorite", r.authMiddleware.Authenticate(), r.recipeController.Favorite)
			recipes.DELETE("/:id/favorite", r.authMiddleware.Authenticate(), r.recipeController.Unfavorite)
			recipes.POST("/:id/shopping_cart", r.authMiddleware.Authenticate(), r.recipeController.AddToCart)
			recipes.DELETE("/:id/shopping_cart", r.authMiddleware.Authenticate(), r.recipeController.RemoveFromCart)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
