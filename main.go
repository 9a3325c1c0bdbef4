package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"spendly-be/internal/cache"
	"spendly-be/internal/config"
	"spendly-be/internal/controllers"
	"spendly-be/internal/database"
	"spendly-be/internal/jwt"
	"spendly-be/internal/middleware"
	"spendly-be/internal/repository"
	"spendly-be/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
		cacheClient = nil
	} else {
		log.Println("Connected to Redis cache")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)

	// Initialize JWT service
	jwtService, err := jwt.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTL)*time.Hour,
	)
	if err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	expenseService := service.NewExpenseService(expenseRepo, cacheClient)

	// Initialize controllers
	authController := controllers.NewAuthController(authService)
	expenseController := controllers.NewExpenseController(expenseService)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)

	// Create a Gin router
	router := gin.Default()

	// Health check endpoint (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API v1 routes group with general rate limiting
	api := router.Group("/api/v1")
	api.Use(generalRateLimiter.LimitMiddleware())
	{
		// Auth routes with stricter rate limiting
		auth := api.Group("/auth")
		auth.Use(authRateLimiter.LimitMiddleware())
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
		}

		// Protected routes - require JWT authentication
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(jwtService, userRepo, cacheClient))
		{
			protected.GET("/expenses", expenseController.List)
			protected.GET("/expenses/summary", expenseController.Summary)
			protected.GET("/expenses/:id", expenseController.GetByID)
			protected.POST("/expenses", expenseController.Create)
			protected.PUT("/expenses/:id", expenseController.Update)
			protected.DELETE("/expenses/:id", expenseController.Delete)
			protected.GET("/categories", expenseController.Categories)
		}
	}

	// Start the server
	log.Printf("Server starting on http://localhost:%s", cfg.Port)
	router.Run(":" + cfg.Port)
}
