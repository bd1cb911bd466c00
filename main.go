package main

import (
	"log"
	"net/http"
	"time"

	"github.com/dishiq/dishiq-api/config"
	"github.com/dishiq/dishiq-api/controllers"
	"github.com/dishiq/dishiq-api/middleware"
	"github.com/dishiq/dishiq-api/models"
	"github.com/dishiq/dishiq-api/services"
	"github.com/dishiq/dishiq-api/store"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Basic logging
	log.Println("Starting DishIQ API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Initialize the entity registry with snapshot persistence
	registry := store.Init(config.GetDB())
	if err := registry.AutoMigrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Subscribe the host's event service to the core's event hook
	if len(cfg.KafkaBrokers) > 0 {
		services.InitEventService(services.NewKafkaEventService(cfg.KafkaBrokers, cfg.KafkaTopic))
		log.Printf("Publishing domain events to Kafka topic %s", cfg.KafkaTopic)
	} else {
		services.InitEventService(services.NewLogEventService())
		log.Println("KAFKA_BROKERS not set, logging domain events locally")
	}

	// Optional Redis-backed menu cache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		services.InitMenuCacheService(client, 5*time.Minute)
		log.Printf("Menu cache enabled via Redis at %s", cfg.RedisAddr)
	}

	// QR codes for order tracking
	services.InitQRCodeService(cfg.QRBaseURL)

	// Wire configuration into the controller layer
	controllers.Init(cfg)

	// Initialize Gin router
	router := gin.Default()
	router.Use(cors.Default())

	registerRoutes(router)

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// registerRoutes declares the full API surface
func registerRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// User management
		v1.POST("/users", controllers.CreateUser)
		v1.GET("/users/:id", controllers.GetUser)

		// Visitor browsing and registration
		v1.GET("/menu", controllers.BrowseMenu)
		v1.POST("/visitors/:id/registration",
			middleware.RequirePermission(models.ActionApplyForRegistration), controllers.ApplyForRegistration)

		// Customer accounts and ordering
		v1.POST("/customers/:id/deposits",
			middleware.RequirePermission(models.ActionDepositFunds), controllers.DepositFunds)
		v1.POST("/customers/:id/withdrawals",
			middleware.RequirePermission(models.ActionWithdrawFunds), controllers.WithdrawFunds)
		v1.POST("/customers/:id/orders",
			middleware.RequirePermission(models.ActionPlaceOrder), controllers.PlaceOrder)
		v1.GET("/customers/:id/orders", controllers.ListOrders)
		v1.POST("/customers/:id/ratings",
			middleware.RequirePermission(models.ActionRateDish), controllers.RateDish)
		v1.POST("/customers/:id/feedback",
			middleware.RequireUser(), controllers.SubmitFeedback)

		// Chef menu management
		v1.POST("/chefs/:id/menu-items",
			middleware.RequirePermission(models.ActionCreateMenuItem), controllers.CreateMenuItem)
		v1.PATCH("/chefs/:id/menu-items/:itemID",
			middleware.RequirePermission(models.ActionUpdateMenuItem), controllers.UpdateMenuItem)
		v1.GET("/chefs/:id/feedback",
			middleware.RequirePermission(models.ActionViewFeedback), controllers.ChefFeedback)

		// Order lifecycle
		v1.POST("/orders/:id/cancel", middleware.RequireUser(), controllers.CancelOrder)
		v1.PUT("/orders/:id/status", middleware.RequireUser(), controllers.UpdateOrderStatus)
		v1.POST("/orders/:id/complaint", middleware.RequireUser(), controllers.FileComplaint)
		v1.GET("/orders/:id/qr", controllers.OrderQR)

		// Delivery coordination
		v1.POST("/delivery/bids", controllers.SubmitBid)
		v1.GET("/delivery/orders/:id/bids", controllers.ListBids)
		v1.PUT("/delivery/orders/:id/assign/:deliveryID", controllers.AssignDelivery)
		v1.PUT("/delivery/orders/:id/status", controllers.UpdateDeliveryStatus)

		// Feedback resolution
		v1.POST("/feedback/:id/response",
			middleware.RequirePermission(models.ActionReviewFeedback), controllers.RespondToFeedback)
		v1.POST("/feedback/:id/cancel-with-compliment",
			middleware.RequireUser(), controllers.CancelWithCompliment)

		// Manager policy enforcement
		v1.POST("/managers/:id/review-feedback",
			middleware.RequirePermission(models.ActionReviewFeedback), controllers.ReviewFeedback)
		v1.POST("/managers/:id/hr-actions",
			middleware.RequirePermission(models.ActionPerformHRAction), controllers.PerformHRAction)
		v1.POST("/managers/:id/account-closures",
			middleware.RequirePermission(models.ActionCloseAccount), controllers.CloseAccount)
		v1.GET("/managers/:id/applications",
			middleware.RequireUser(), controllers.ListApplications)
		v1.POST("/managers/:id/applications/:visitorID/approve",
			middleware.RequireUser(), controllers.ApproveApplication)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "DishIQ API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
